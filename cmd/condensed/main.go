// Command condensed serves the JSON summarization API.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/condenseio/condense/internal/api"
	"github.com/condenseio/condense/internal/app"
	"github.com/condenseio/condense/internal/config"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		addr       string
		llmBase    string
		llmModel   string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", os.Getenv("CONDENSE_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&addr, "addr", "", "Listen address, e.g. :8080 (overrides config)")
	flag.StringVar(&llmBase, "llm.base", "", "OpenAI-compatible base URL (overrides the hosted Groq endpoint)")
	flag.StringVar(&llmModel, "llm.model", "", "Model name (overrides config)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if llmBase != "" {
		cfg.LLMBaseURL = llmBase
	}
	if llmModel != "" {
		cfg.Model = llmModel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	srv := &api.Server{
		Summarizer: app.NewSummarizer(cfg, log.Logger),
		Metrics:    api.NewMetrics(),
		Logger:     log.Logger,
	}
	if err := app.Serve(api.NewHTTPServer(cfg.Addr, srv.Routes()), log.Logger); err != nil {
		log.Fatal().Err(err).Msg("condensed failed")
	}
}
