package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theimaginaryfoundation/unwind/journal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var sampleResponses = []string{"anxious", "work", "some", "days", "walk"}

func generatorFor(t *testing.T, handler http.HandlerFunc) (*ReflectionGenerator, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return &ReflectionGenerator{
		Transport: NewInferenceClient(ClientConfig{BaseURL: server.URL, APIKey: "k"}),
		Timeout:   2 * time.Second,
	}, &hits
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestReflectionGenerator_Success(t *testing.T) {
	t.Parallel()

	prompt := journal.BuildReflectionPrompt(sampleResponses)
	var req generateRequest
	g, hits := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&req)
		b, _ := json.Marshal([]generatedItem{{GeneratedText: prompt + "\nIt is okay to slow down\nand breathe."}})
		writeJSON(w, http.StatusOK, string(b))
	})

	got, err := g.Reflect(context.Background(), sampleResponses, journal.SentimentNegative)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if got != "It is okay to slow down and breathe." {
		t.Fatalf("got=%q", got)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("hits=%d", atomic.LoadInt32(hits))
	}
	if req.Inputs != prompt {
		t.Fatalf("inputs=%q", req.Inputs)
	}
	if req.Parameters != DefaultGenerationParameters {
		t.Fatalf("parameters=%+v", req.Parameters)
	}
}

func TestReflectionGenerator_EchoPlusShortTextFails(t *testing.T) {
	t.Parallel()

	prompt := journal.BuildReflectionPrompt(sampleResponses)
	g, _ := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal([]generatedItem{{GeneratedText: prompt + " ok"}})
		writeJSON(w, http.StatusOK, string(b))
	})

	_, err := g.Reflect(context.Background(), sampleResponses, journal.SentimentNeutral)
	if !errors.Is(err, journal.ErrReflectionUnavailable) {
		t.Fatalf("err=%v", err)
	}
}

func TestReflectionGenerator_Unavailable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`},
		{"empty list", http.StatusOK, `[]`},
		{"missing text", http.StatusOK, `[{"score":1}]`},
		{"malformed", http.StatusOK, `{"generated_text":"not a list at all"}`},
	}
	for _, tc := range cases {
		g, hits := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, tc.status, tc.body)
		})
		_, err := g.Reflect(context.Background(), sampleResponses, journal.SentimentNeutral)
		if !errors.Is(err, journal.ErrReflectionUnavailable) {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
		if n := atomic.LoadInt32(hits); n != 1 {
			t.Fatalf("%s: hits=%d, want 1", tc.name, n)
		}
	}
}

func TestReflectionGenerator_RetriesOnlyTimeouts(t *testing.T) {
	t.Parallel()

	tr := &recordingTransport{err: context.DeadlineExceeded}
	g := &ReflectionGenerator{Transport: tr}
	_, err := g.Reflect(context.Background(), nil, journal.SentimentNeutral)
	if !errors.Is(err, journal.ErrReflectionUnavailable) || !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("err=%v", err)
	}
	if tr.calls != 3 {
		t.Fatalf("calls=%d, want 3", tr.calls)
	}
	if tr.model != DefaultGenerationModel || tr.timeout != 45*time.Second {
		t.Fatalf("model=%q timeout=%v", tr.model, tr.timeout)
	}

	tr = &recordingTransport{err: errors.New("connection reset by peer")}
	g = &ReflectionGenerator{Transport: tr}
	if _, err := g.Reflect(context.Background(), nil, journal.SentimentNeutral); !errors.Is(err, journal.ErrReflectionUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if tr.calls != 1 {
		t.Fatalf("calls=%d, want 1", tr.calls)
	}
}

func TestReflectionGenerator_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	tr := &recordingTransport{
		errs:   []error{context.DeadlineExceeded},
		resp:   []byte(`[{"generated_text":"Small steps still count as progress."}]`),
		status: http.StatusOK,
	}
	g := &ReflectionGenerator{Transport: tr, Log: zap.New(core).Sugar()}
	got, err := g.Reflect(context.Background(), nil, journal.SentimentNeutral)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if got != "Small steps still count as progress." || tr.calls != 2 {
		t.Fatalf("got=%q calls=%d", got, tr.calls)
	}
	if logs.FilterMessage("timeout, retrying").Len() != 1 {
		t.Fatalf("expected one retry log, got %v", logs.All())
	}
}

func TestReflectionGenerator_HTTPTimeoutIsRetried(t *testing.T) {
	t.Parallel()

	g, hits := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	g.Timeout = 50 * time.Millisecond

	_, err := g.Reflect(context.Background(), sampleResponses, journal.SentimentNeutral)
	if !errors.Is(err, journal.ErrReflectionUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if n := atomic.LoadInt32(hits); n != 3 {
		t.Fatalf("hits=%d, want 3", n)
	}
}

func TestReflectionGenerator_LogsPromptPreview(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	tr := &recordingTransport{status: http.StatusOK, resp: []byte(`[]`)}
	g := &ReflectionGenerator{Transport: tr, Log: zap.New(core).Sugar()}
	_, _ = g.Reflect(context.Background(), sampleResponses, journal.SentimentNeutral)

	entries := logs.FilterMessage("generating AI reflection").All()
	if len(entries) != 1 {
		t.Fatalf("entries=%v", logs.All())
	}
	prompt, _ := entries[0].ContextMap()["prompt"].(string)
	if !strings.HasSuffix(prompt, "...") || len([]rune(prompt)) != 103 {
		t.Fatalf("prompt preview=%q", prompt)
	}
}
