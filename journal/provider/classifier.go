package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/theimaginaryfoundation/unwind/journal"
	"go.uber.org/zap"
)

const (
	DefaultSentimentModel   = "VinMir/GordonAI-emotion_detection"
	DefaultSentimentTimeout = 15 * time.Second
)

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentClassifier implements journal.Classifier against a text-classification model.
// It makes one attempt and answers SentimentNeutral on any failure.
type SentimentClassifier struct {
	Transport Transport
	Model     string
	Timeout   time.Duration
	Log       *zap.SugaredLogger
}

// Classify labels text. It never fails.
func (c *SentimentClassifier) Classify(ctx context.Context, text string) journal.Sentiment {
	log := c.logger()
	if c.Transport == nil {
		log.Warnw("sentiment analysis skipped", "reason", "no transport")
		return journal.SentimentNeutral
	}
	model := c.Model
	if model == "" {
		model = DefaultSentimentModel
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultSentimentTimeout
	}

	log.Infow("analyzing sentiment", "model", model)
	body, status, err := c.Transport.Post(ctx, model, timeout, classifyRequest{Inputs: text})
	if err != nil {
		log.Warnw("sentiment analysis error", "status", status, "error", err.Error())
		return journal.SentimentNeutral
	}
	if status != http.StatusOK {
		log.Warnw("sentiment API failed", "status", status)
		return journal.SentimentNeutral
	}

	var data [][]labelScore
	if err := decodeInferenceJSON(body, &data); err != nil {
		log.Warnw("sentiment analysis error", "error", err.Error())
		return journal.SentimentNeutral
	}
	best, ok := topLabel(data)
	if !ok {
		log.Warnw("sentiment API failed", "status", status, "reason", "empty result")
		return journal.SentimentNeutral
	}
	s := journal.SentimentFromLabel(best.Label)
	log.Debugw("sentiment classified", "label", best.Label, "score", best.Score, "sentiment", s.String())
	return s
}

// topLabel picks the highest-scoring pair of the first result list. Ties keep the earlier pair.
func topLabel(data [][]labelScore) (labelScore, bool) {
	if len(data) == 0 || len(data[0]) == 0 {
		return labelScore{}, false
	}
	best := data[0][0]
	for _, ls := range data[0][1:] {
		if ls.Score > best.Score {
			best = ls
		}
	}
	return best, true
}

func (c *SentimentClassifier) logger() *zap.SugaredLogger {
	if c.Log == nil {
		return zap.NewNop().Sugar()
	}
	return c.Log
}
