package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/liavyona/covid-gist/pkg"
)

var config *pkg.Config

func init() {
	cfg, err := pkg.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error while loading configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	config = cfg
}

func updateGist(ctx context.Context) error {
	_, err := pkg.NewRunner(config, &log.Logger).Run(ctx)
	return err
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(updateGist)
		return
	}
	err := updateGist(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to update gist")
	}
}
