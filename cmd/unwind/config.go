package main

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/unwind/journal/provider"
)

const (
	envToken              = "HUGGINGFACE_TOKEN"
	envBaseURL            = "UNWIND_API_BASE_URL"
	envSentimentModel     = "UNWIND_SENTIMENT_MODEL"
	envGenerationModel    = "UNWIND_GENERATION_MODEL"
	envSentimentTimeout   = "UNWIND_SENTIMENT_TIMEOUT"
	envGenerationTimeout  = "UNWIND_GENERATION_TIMEOUT"
	envGenerationAttempts = "UNWIND_GENERATION_ATTEMPTS"
	envLogLevel           = "UNWIND_LOG_LEVEL"
	envLogFormat          = "UNWIND_LOG_FORMAT"
)

type Config struct {
	APIKey          string
	BaseURL         string
	SentimentModel  string
	GenerationModel string

	SentimentTimeout   time.Duration
	GenerationTimeout  time.Duration
	GenerationAttempts int

	LogLevel  string
	LogFormat string
}

// Validate checks everything except the token, whose absence has its own exit status.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("missing -base-url")
	}
	if c.SentimentModel == "" {
		return errors.New("missing -sentiment-model")
	}
	if c.GenerationModel == "" {
		return errors.New("missing -generation-model")
	}
	if c.SentimentTimeout <= 0 || c.GenerationTimeout <= 0 {
		return errors.New("timeouts must be > 0")
	}
	if c.GenerationAttempts < 1 {
		return errors.New("generation-attempts must be >= 1")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		BaseURL:            provider.DefaultBaseURL,
		SentimentModel:     provider.DefaultSentimentModel,
		GenerationModel:    provider.DefaultGenerationModel,
		SentimentTimeout:   provider.DefaultSentimentTimeout,
		GenerationTimeout:  provider.DefaultGenerationTimeout,
		GenerationAttempts: provider.DefaultGenerationAttempts,
		LogLevel:           "info",
		LogFormat:          "console",
	}
}

// configFromEnv layers environment overrides on top of defaultConfig. Unparseable values keep the default.
func configFromEnv(getenv func(string) string) Config {
	cfg := defaultConfig()
	cfg.APIKey = envString(getenv, envToken, cfg.APIKey)
	cfg.BaseURL = envString(getenv, envBaseURL, cfg.BaseURL)
	cfg.SentimentModel = envString(getenv, envSentimentModel, cfg.SentimentModel)
	cfg.GenerationModel = envString(getenv, envGenerationModel, cfg.GenerationModel)
	cfg.SentimentTimeout = envDuration(getenv, envSentimentTimeout, cfg.SentimentTimeout)
	cfg.GenerationTimeout = envDuration(getenv, envGenerationTimeout, cfg.GenerationTimeout)
	cfg.GenerationAttempts = envInt(getenv, envGenerationAttempts, cfg.GenerationAttempts)
	cfg.LogLevel = envString(getenv, envLogLevel, cfg.LogLevel)
	cfg.LogFormat = envString(getenv, envLogFormat, cfg.LogFormat)
	return cfg
}

func envString(getenv func(string) string, name, def string) string {
	if v := strings.TrimSpace(getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, name string, def int) int {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// envDuration accepts Go durations ("45s") or a bare number of seconds ("45").
func envDuration(getenv func(string) string, name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}
