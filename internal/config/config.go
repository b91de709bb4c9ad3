// Package config assembles service configuration from defaults, an
// optional YAML file, and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/condenseio/condense/internal/llm"
)

// DefaultUserAgent is the browser-identifying header sent with content
// fetches. Some origins serve reduced or blocked pages to non-browser
// agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5_1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"

// Config holds everything both front ends need. Environment variables
// override file values; command-line flags override both.
type Config struct {
	// Addr is the listen address of the serving process.
	Addr string `env:"CONDENSE_ADDR"`

	// LLMBaseURL overrides the hosted Groq endpoint, usually to point at
	// a local stub or proxy.
	LLMBaseURL string `env:"CONDENSE_LLM_BASE_URL"`
	// Model is the completion model requested from the service.
	Model string `env:"CONDENSE_MODEL"`

	// UserAgent identifies the fetcher to origin servers.
	UserAgent string `env:"CONDENSE_USER_AGENT"`
	// Languages lists preferred transcript languages in priority order.
	Languages []string `env:"CONDENSE_LANGUAGES"`
	// FetchTimeout bounds each content fetch.
	FetchTimeout time.Duration `env:"CONDENSE_FETCH_TIMEOUT"`
	// InsecureSkipTLSVerify disables certificate verification on the
	// generic fetch path. Off by default: a failed extraction is
	// preferred over silently trusting a broken chain.
	InsecureSkipTLSVerify bool `env:"CONDENSE_INSECURE_SKIP_TLS_VERIFY"`

	// LogLevel is a zerolog level name: debug, info, warn or error.
	LogLevel string `env:"CONDENSE_LOG_LEVEL"`
}

// fileConfig mirrors Config for the YAML file. Durations are strings so
// files can say "30s"; pointer fields distinguish absent from zero.
type fileConfig struct {
	Addr                  *string  `yaml:"addr"`
	LLMBaseURL            *string  `yaml:"llmBaseURL"`
	Model                 *string  `yaml:"model"`
	UserAgent             *string  `yaml:"userAgent"`
	Languages             []string `yaml:"languages"`
	FetchTimeout          *string  `yaml:"fetchTimeout"`
	InsecureSkipTLSVerify *bool    `yaml:"insecureSkipTLSVerify"`
	LogLevel              *string  `yaml:"logLevel"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Addr:         ":8080",
		Model:        llm.DefaultModel,
		UserAgent:    DefaultUserAgent,
		Languages:    []string{"en"},
		FetchTimeout: 30 * time.Second,
		LogLevel:     "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path when non-empty, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// applyFile overlays values present in the YAML file at path onto cfg.
func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.Addr != nil {
		cfg.Addr = *fc.Addr
	}
	if fc.LLMBaseURL != nil {
		cfg.LLMBaseURL = *fc.LLMBaseURL
	}
	if fc.Model != nil {
		cfg.Model = *fc.Model
	}
	if fc.UserAgent != nil {
		cfg.UserAgent = *fc.UserAgent
	}
	if len(fc.Languages) > 0 {
		cfg.Languages = fc.Languages
	}
	if fc.FetchTimeout != nil {
		d, err := time.ParseDuration(*fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("parse fetchTimeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if fc.InsecureSkipTLSVerify != nil {
		cfg.InsecureSkipTLSVerify = *fc.InsecureSkipTLSVerify
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}
