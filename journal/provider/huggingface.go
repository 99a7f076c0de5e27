// Package provider holds the Hugging Face Inference API clients used by guided sessions.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL is the model-scoped Inference API root.
const DefaultBaseURL = "https://api-inference.huggingface.co/models"

// Transport posts a JSON body to a model endpoint and returns the raw response body and status.
// A non-nil error may still carry the HTTP status when the server answered.
type Transport interface {
	Post(ctx context.Context, model string, timeout time.Duration, body any) ([]byte, int, error)
}

// ClientConfig configures an InferenceClient. The token is passed in explicitly rather than read from the environment.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// InferenceClient is a Transport backed by the openai-go request machinery.
// The SDK's own retries are disabled; callers decide what to retry.
type InferenceClient struct {
	client *openai.Client
}

// NewInferenceClient builds a client that sends "Authorization: Bearer <APIKey>" to BaseURL.
func NewInferenceClient(cfg ClientConfig) *InferenceClient {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimSuffix(baseURL, "/") + "/"),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("Content-Type", "application/json"),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	client := openai.NewClient(opts...)
	return &InferenceClient{client: &client}
}

// Post sends body as JSON to {base}/{model}. timeout bounds this single request; zero means no limit.
func (c *InferenceClient) Post(ctx context.Context, model string, timeout time.Duration, body any) ([]byte, int, error) {
	if c == nil || c.client == nil {
		return nil, 0, errors.New("InferenceClient: client is nil")
	}
	model = strings.Trim(strings.TrimSpace(model), "/")
	if model == "" {
		return nil, 0, errors.New("InferenceClient: model is empty")
	}

	var raw []byte
	var httpResp *http.Response
	opts := []option.RequestOption{option.WithResponseInto(&httpResp)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	if err := c.client.Post(ctx, model, body, &raw, opts...); err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, apiErr.StatusCode, fmt.Errorf("post %s: status %d: %w", model, apiErr.StatusCode, err)
		}
		return nil, 0, fmt.Errorf("post %s: %w", model, err)
	}

	status := http.StatusOK
	if httpResp != nil {
		status = httpResp.StatusCode
	}
	return raw, status, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
