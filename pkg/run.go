package pkg

import (
	"context"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type StatsFetcher interface {
	GetGlobalStats(ctx context.Context) (GlobalStats, error)
}

type GistPublisher interface {
	Publish(ctx context.Context, logger *zerolog.Logger, gistID string, creds Credentials, payload PublishPayload) (int, error)
}

// Runner performs one fetch, format and publish pass.
type Runner struct {
	Config    *Config
	Fetcher   StatsFetcher
	Publisher GistPublisher
	Logger    *zerolog.Logger
}

func NewRunner(cfg *Config, logger *zerolog.Logger) *Runner {
	return &Runner{
		Config:    cfg,
		Fetcher:   NewApiMetadata(SummaryURL, cfg.Timeout),
		Publisher: NewGistClient(GistAPIURL, cfg.Timeout),
		Logger:    logger,
	}
}

// Run returns the publish status code. Configuration is checked before any request is sent.
func (r *Runner) Run(ctx context.Context) (int, error) {
	logger := zerolog.Nop()
	if r.Logger != nil {
		logger = r.Logger.With().Str("run_id", uuid.NewString()).Logger()
	}

	err := r.Config.Validate()
	if err != nil {
		logger.Err(err).Msg("Invalid configuration")
		return 0, err
	}
	style, err := LookupStyle(r.Config.Style)
	if err != nil {
		return 0, err
	}
	logger = logger.With().Str("style", style.Name).Str("file", style.FileName).Logger()

	stats, err := r.Fetcher.GetGlobalStats(ctx)
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			err = &FetchError{Err: err}
		}
		logger.Err(err).Msg("Failed to get global stats")
		return 0, err
	}
	logger.Debug().Fields(structs.Map(stats)).Msg("Fetched global stats")

	content, err := FormatReport(stats, style)
	if err != nil {
		logger.Err(err).Int64("confirmed", stats.TotalConfirmed).Int64("recovered", stats.TotalRecovered).
			Msg("Failed to format report")
		return 0, err
	}

	status, err := r.Publisher.Publish(
		ctx,
		&logger,
		r.Config.GistID,
		r.Config.Credentials(),
		NewPublishPayload(style.FileName, content),
	)
	if err != nil {
		var publishErr *PublishError
		var configErr *ConfigurationError
		if !errors.As(err, &publishErr) && !errors.As(err, &configErr) {
			err = &PublishError{StatusCode: status, Err: err}
		}
		logger.Err(err).Int("status", status).Msg("Failed to publish gist")
		return status, err
	}

	logger.Info().Int("status", status).Msgf("Completed Work %d", status)
	return status, nil
}
