// Package app is the composition root shared by the serving commands. It
// wires configuration into the summarizer and runs an HTTP server until
// shutdown.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/config"
	"github.com/condenseio/condense/internal/fetch"
	"github.com/condenseio/condense/internal/llm"
	"github.com/condenseio/condense/internal/summarizer"
	"github.com/condenseio/condense/internal/webpage"
	"github.com/condenseio/condense/internal/youtube"
)

// NewSummarizer wires the extraction paths and the generator factory from
// configuration. The credential is not part of cfg; it arrives with each
// request and exists only inside the per-request generator.
func NewSummarizer(cfg config.Config, logger zerolog.Logger) *summarizer.Summarizer {
	fetcher := &fetch.Client{
		UserAgent:             cfg.UserAgent,
		Timeout:               cfg.FetchTimeout,
		InsecureSkipTLSVerify: cfg.InsecureSkipTLSVerify,
	}
	return &summarizer.Summarizer{
		Videos: &youtube.Loader{
			Client:    &youtube.Client{UserAgent: cfg.UserAgent},
			Languages: cfg.Languages,
		},
		Pages: &webpage.Loader{Client: fetcher},
		NewGenerator: func(apiKey string) (summarizer.Generator, error) {
			client, err := llm.NewClient(apiKey, cfg.LLMBaseURL)
			if err != nil {
				return nil, err
			}
			return &llm.Generator{Client: client, Model: cfg.Model}, nil
		},
		Logger: logger,
	}
}

// Serve runs srv until SIGINT or SIGTERM, then drains in-flight requests
// for up to ten seconds before returning.
func Serve(srv *http.Server, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
