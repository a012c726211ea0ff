package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	appconfig "github.com/markjakearzadon/flatmate-gobackend/internal/config"
	"github.com/markjakearzadon/flatmate-gobackend/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context, logger *logrus.Logger) (*appconfig.Config, error) {
	envFile := cCtx.String("env-file")
	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).WithField("file", envFile).Warn("no dotenv file loaded")
	}

	c, err := appconfig.Load()
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	return c, nil
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

func newUploadStore(ctx context.Context, c *appconfig.Config) (storage.Store, error) {
	if c.UploadBackend == appconfig.UploadBackendS3 {
		awsConfig, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return storage.NewS3Store(s3.NewFromConfig(awsConfig), c.S3Bucket, c.S3PublicURL), nil
	}

	disk, err := storage.NewDiskStore(c.UploadDir, "/uploads")
	if err != nil {
		return nil, err
	}
	return disk, nil
}
