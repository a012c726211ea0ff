package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markjakearzadon/flatmate-gobackend/internal/db"
	"github.com/markjakearzadon/flatmate-gobackend/internal/handlers"
	"github.com/markjakearzadon/flatmate-gobackend/internal/models"
	"github.com/markjakearzadon/flatmate-gobackend/internal/services"
	"github.com/markjakearzadon/flatmate-gobackend/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	c, err := loadConfig(cCtx, logger)
	if err != nil {
		return err
	}

	client, err := db.Connect(ctx, c.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			logger.WithError(err).Error("error disconnecting from mongodb")
		}
	}()
	logger.WithField("database", c.MongoDatabase).Info("connected to mongodb")

	database := client.Database(c.MongoDatabase)

	store, err := newUploadStore(ctx, c)
	if err != nil {
		return err
	}

	userService := services.NewUserService(database)
	userHandler := handlers.NewUserHandler(userService, logger)

	requirementService := services.NewRequirementService(database)
	uploader := storage.NewUploader(store, models.MaxRequirementImages)
	requirementHandler := handlers.NewRequirementHandler(requirementService, uploader, c.MaxUploadBytes(), logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.ServerPort),
		Handler:           handlers.NewRouter(logger, c.PublicDir, userHandler, requirementHandler),
		ReadTimeout:       time.Duration(c.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(c.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(c.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return runServer(ctx, server, logger)
}

// runServer serves until ctx is cancelled or the listener fails. A listen
// failure is returned rather than logged fatally so the caller's deferred
// cleanup still runs.
func runServer(ctx context.Context, server *http.Server, logger *logrus.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
