package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/theimaginaryfoundation/unwind/journal"
	"go.uber.org/zap"
)

const (
	DefaultGenerationModel    = "facebook/blenderbot-400M-distill"
	DefaultGenerationTimeout  = 45 * time.Second
	DefaultGenerationAttempts = 3
)

// GenerationParameters are the sampling settings sent with every generation request.
type GenerationParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
	TopP        float64 `json:"top_p"`
}

// DefaultGenerationParameters keeps replies short and mildly varied.
var DefaultGenerationParameters = GenerationParameters{
	MaxLength:   100,
	Temperature: 0.8,
	DoSample:    true,
	TopP:        0.9,
}

type generateRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters GenerationParameters `json:"parameters"`
}

type generatedItem struct {
	GeneratedText string `json:"generated_text"`
}

// ReflectionGenerator implements journal.Reflector against a text-generation model.
// Only timed-out attempts are retried.
type ReflectionGenerator struct {
	Transport  Transport
	Model      string
	Timeout    time.Duration
	Parameters GenerationParameters
	// Retry overrides the attempt policy. MaxAttempts 0 means DefaultGenerationAttempts.
	Retry RetryPolicy
	Log   *zap.SugaredLogger
}

// Reflect asks the model for a reflection on responses. The sentiment does not shape the prompt.
func (g *ReflectionGenerator) Reflect(ctx context.Context, responses []string, _ journal.Sentiment) (string, error) {
	log := g.logger()
	if g.Transport == nil {
		return "", fmt.Errorf("%w: no transport", journal.ErrReflectionUnavailable)
	}
	model := g.Model
	if model == "" {
		model = DefaultGenerationModel
	}
	timeout := g.Timeout
	if timeout == 0 {
		timeout = DefaultGenerationTimeout
	}
	params := g.Parameters
	if params == (GenerationParameters{}) {
		params = DefaultGenerationParameters
	}

	prompt := journal.BuildReflectionPrompt(responses)
	req := generateRequest{Inputs: prompt, Parameters: params}
	log.Infow("generating AI reflection", "model", model, "prompt", truncate(prompt, 100))

	policy := g.Retry
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = DefaultGenerationAttempts
	}
	if policy.Retryable == nil {
		policy.Retryable = IsTimeout
	}
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, err error) {
			log.Warnw("timeout, retrying", "attempt", attempt, "error", err.Error())
		}
	}

	status := 0
	body, err := CallWithRetry(ctx, policy, func(ctx context.Context) ([]byte, error) {
		b, st, err := g.Transport.Post(ctx, model, timeout, req)
		status = st
		return b, err
	})
	if err != nil {
		if errors.Is(err, ErrRetriesExhausted) {
			log.Warnw("max retries reached, giving up", "attempts", policy.MaxAttempts)
		} else {
			log.Warnw("AI generation failed", "status", status, "error", err.Error())
		}
		return "", fmt.Errorf("%w: %w", journal.ErrReflectionUnavailable, err)
	}

	log.Infow("response status", "status", status)
	if status != http.StatusOK {
		log.Warnw("AI generation failed", "status", status, "body", string(body))
		return "", fmt.Errorf("%w: status %d", journal.ErrReflectionUnavailable, status)
	}
	log.Debugw("response data", "body", string(body))

	var items []generatedItem
	if err := decodeInferenceJSON(body, &items); err != nil {
		log.Warnw("AI generation failed", "error", err.Error())
		return "", fmt.Errorf("%w: %w", journal.ErrReflectionUnavailable, err)
	}
	if len(items) == 0 {
		log.Warnw("AI generation failed", "reason", "empty result")
		return "", fmt.Errorf("%w: empty result", journal.ErrReflectionUnavailable)
	}

	reflection, ok := journal.CleanGeneratedText(items[0].GeneratedText, prompt)
	if !ok {
		log.Warnw("generated text too short", "text", reflection)
		return "", fmt.Errorf("%w: generated text too short (%q)", journal.ErrReflectionUnavailable, reflection)
	}
	log.Infow("AI generation successful", "generated", reflection)
	return reflection, nil
}

func (g *ReflectionGenerator) logger() *zap.SugaredLogger {
	if g.Log == nil {
		return zap.NewNop().Sugar()
	}
	return g.Log
}
