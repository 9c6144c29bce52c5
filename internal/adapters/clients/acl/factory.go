package acl

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
)

// Credentials authenticate against Ask Kodiak. Both halves are required.
type Credentials struct {
	GroupID string
	APIKey  string
}

// Options adjust NewFromConfig.
type Options struct {
	// Credentials override the configured ones when set.
	Credentials *Credentials

	// Steps run after auth, in order.
	Steps []pipeline.Step

	Logger *slog.Logger
}

// NewPipeline builds the request pipeline for kodiak: the configured NAICS
// edition, basic auth when credentials are present, then extra steps.
func NewPipeline(kodiak config.KodiakConfig, creds *Credentials, steps ...pipeline.Step) *pipeline.Pipeline {
	cfg := pipeline.Config{
		Edition: kodiak.NaicsEdition,
		Steps:   steps,
	}

	switch {
	case creds != nil:
		cfg.Auth = pipeline.BasicAuth(creds.GroupID, creds.APIKey)
	case kodiak.HasCredentials():
		cfg.Auth = pipeline.BasicAuth(kodiak.GroupID, kodiak.APIKey)
	}

	return pipeline.New(cfg)
}

// NewFromConfig wires the instrumented HTTP client and its pipeline into a
// KodiakClient.
func NewFromConfig(cfg *config.Config, opts Options) (*KodiakClient, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := NewPipeline(cfg.Kodiak, opts.Credentials, opts.Steps...)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Kodiak.BaseURL,
		ServiceName: cfg.Kodiak.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Pipeline:    p,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Kodiak.Name, err)
	}

	logger.Debug("ask kodiak client ready",
		slog.String("base_url", cfg.Kodiak.BaseURL),
		slog.Any("steps", p.StepNames()),
	)

	return NewKodiakClient(KodiakClientConfig{Client: httpClient, Logger: logger}), nil
}
