package main

import (
	"context"
	"time"

	"github.com/markjakearzadon/flatmate-gobackend/internal/db"
	"github.com/markjakearzadon/flatmate-gobackend/internal/services"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:   "migrate",
	Usage:  "Create the MongoDB indexes the server relies on",
	Action: migrate,
}

func migrate(cCtx *cli.Context) error {
	logger := newLogger()

	c, err := loadConfig(cCtx, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, time.Minute)
	defer cancel()

	client, err := db.Connect(ctx, c.MongoURI)
	if err != nil {
		return err
	}
	defer db.Disconnect(client)

	database := client.Database(c.MongoDatabase)

	if err := services.NewUserService(database).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := services.NewRequirementService(database).EnsureIndexes(ctx); err != nil {
		return err
	}

	logger.WithField("database", c.MongoDatabase).Info("indexes ensured")
	return nil
}
