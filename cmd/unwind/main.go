package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/theimaginaryfoundation/unwind/journal"
	"github.com/theimaginaryfoundation/unwind/journal/logger"
	"github.com/theimaginaryfoundation/unwind/journal/provider"
)

func main() {
	// A missing .env is fine; the token may come from the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Getenv))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, getenv func(string) string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stdout, "\nAn error occurred: %v\n", r)
			fmt.Fprintln(stdout, "Please try again later.")
			code = 0
		}
	}()

	cfg, err := parseFlags(flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError), args, getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if cfg.APIKey == "" {
		fmt.Fprintf(stdout, "ERROR: %s environment variable not set!\n", envToken)
		fmt.Fprintf(stdout, "Please create a .env file with: %s=your_token_here\n", envToken)
		fmt.Fprintln(stdout, "Or set the environment variable directly (or pass -api-key).")
		return 1
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	defer func() { _ = log.Sync() }()

	inference := provider.NewInferenceClient(provider.ClientConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	})
	console := journal.NewConsole(stdin, stdout)
	app := journal.App{
		Console: console,
		Out:     stdout,
		Log:     log,
		Session: &journal.Session{
			Console: console,
			Out:     stdout,
			Log:     log,
			Classifier: &provider.SentimentClassifier{
				Transport: inference,
				Model:     cfg.SentimentModel,
				Timeout:   cfg.SentimentTimeout,
				Log:       log,
			},
			Reflector: &provider.ReflectionGenerator{
				Transport:  inference,
				Model:      cfg.GenerationModel,
				Timeout:    cfg.GenerationTimeout,
				Parameters: provider.DefaultGenerationParameters,
				Retry:      provider.RetryPolicy{MaxAttempts: cfg.GenerationAttempts},
				Log:        log,
			},
		},
	}
	app.Run(ctx)
	return 0
}

func parseFlags(fs *flag.FlagSet, args []string, getenv func(string) string) (Config, error) {
	cfg := configFromEnv(getenv)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Hugging Face API token (overrides "+envToken+" env var)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Inference API base URL; models are posted to <base-url>/<model>")
	fs.StringVar(&cfg.SentimentModel, "sentiment-model", cfg.SentimentModel, "Text-classification model used for sentiment")
	fs.StringVar(&cfg.GenerationModel, "generation-model", cfg.GenerationModel, "Text-generation model used for reflections")
	fs.DurationVar(&cfg.SentimentTimeout, "sentiment-timeout", cfg.SentimentTimeout, "Timeout for the sentiment request")
	fs.DurationVar(&cfg.GenerationTimeout, "generation-timeout", cfg.GenerationTimeout, "Timeout for each reflection attempt")
	fs.IntVar(&cfg.GenerationAttempts, "generation-attempts", cfg.GenerationAttempts, "Reflection attempts; only timeouts are retried")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostic log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostic log format (console, json)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/unwind")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/unwind -log-level warn -generation-timeout 60s")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
