package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrReflectionUnavailable reports that no usable AI reflection was produced.
var ErrReflectionUnavailable = errors.New("reflection unavailable")

// MinReflectionChars is the length a cleaned reflection must exceed to be shown.
const MinReflectionChars = 10

// Classifier labels the combined text of a session.
// Implementations degrade to SentimentNeutral instead of failing.
type Classifier interface {
	Classify(ctx context.Context, text string) Sentiment
}

// Reflector produces an AI reflection for a session's responses.
// A failure is reported as an error wrapping ErrReflectionUnavailable.
type Reflector interface {
	Reflect(ctx context.Context, responses []string, sentiment Sentiment) (string, error)
}

// BuildReflectionPrompt renders the generation prompt for a response set.
func BuildReflectionPrompt(responses []string) string {
	a := ResolveAnswers(responses, DefaultAnswers)
	return fmt.Sprintf(
		"I feel %s about %s. I have %s control over this situation that has been going on for %s. My positive action today is to %s. A compassionate reflection would be:",
		a.Feeling, a.Cause, a.Control, a.Duration, a.Action,
	)
}

// CleanGeneratedText strips the echoed prompt from model output and flattens it to one line.
// It returns the cleaned text and whether it is long enough to use.
func CleanGeneratedText(generated, prompt string) (string, bool) {
	s := strings.TrimSpace(generated)
	if prompt != "" {
		s = strings.TrimPrefix(s, prompt)
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) > MinReflectionChars
}

// JoinResponses builds the classifier input for a response set.
func JoinResponses(responses []string) string {
	return strings.Join(responses, " ")
}
