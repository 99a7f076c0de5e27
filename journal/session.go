package journal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReflectionSource records which generator produced a session's reflection.
type ReflectionSource string

const (
	SourceAI       ReflectionSource = "ai"
	SourceTemplate ReflectionSource = "template"
)

// SessionResult is everything one guided session produced. It is not kept after display.
type SessionResult struct {
	ID         string
	Responses  []string
	Sentiment  Sentiment
	Reflection string
	Source     ReflectionSource
}

// Session runs the guided unwind flow: five questions, classification, then an AI
// reflection with a template fallback.
type Session struct {
	Console    *Console
	Out        io.Writer
	Classifier Classifier
	Reflector  Reflector
	Log        *zap.SugaredLogger
}

// Run asks the guided questions and prints a reflection.
// Errors are limited to the user leaving (see IsStop); remote failures fall back silently.
func (s *Session) Run(ctx context.Context) (SessionResult, error) {
	res := SessionResult{ID: uuid.NewString()}
	log := s.logger().With("session_id", res.ID)

	fmt.Fprintln(s.Out, "\nUNWIND SESSION")
	fmt.Fprintln(s.Out, strings.Repeat("-", 30))
	fmt.Fprintln(s.Out, "Let's take a moment to reflect and unwind...")
	fmt.Fprintln(s.Out)

	responses, err := s.askQuestions(ctx)
	if err != nil {
		return res, err
	}
	res.Responses = responses

	res.Sentiment = SentimentNeutral
	if s.Classifier != nil {
		res.Sentiment = s.Classifier.Classify(ctx, JoinResponses(responses))
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	fmt.Fprintf(s.Out, "Detected sentiment: %s\n", res.Sentiment)
	fmt.Fprintln(s.Out)

	fmt.Fprintln(s.Out, "Generating your personalized reflection...")
	fmt.Fprintln(s.Out, strings.Repeat("-", 40))

	res.Source = SourceTemplate
	if s.Reflector != nil {
		text, err := s.Reflector.Reflect(ctx, responses, res.Sentiment)
		if err == nil {
			res.Reflection = text
			res.Source = SourceAI
		} else {
			log.Infow("using template reflection", "reason", err.Error())
		}
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	if res.Source == SourceAI {
		fmt.Fprintln(s.Out, "AI-Generated Reflection:")
	} else {
		res.Reflection = TemplateReflection(responses, res.Sentiment)
		fmt.Fprintln(s.Out, "Template-Based Reflection:")
	}
	fmt.Fprintln(s.Out, res.Reflection)

	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, strings.Repeat("-", 40))
	fmt.Fprintln(s.Out, "Thank you for taking time to unwind today!")
	fmt.Fprintln(s.Out, "Remember: Every small step towards self-care matters.")

	log.Debugw("session complete", "sentiment", res.Sentiment.String(), "source", string(res.Source))
	return res, nil
}

func (s *Session) askQuestions(ctx context.Context) ([]string, error) {
	responses := make([]string, 0, len(Questions))
	for i, q := range Questions {
		fmt.Fprintf(s.Out, "Question %d/%d:\n", i+1, len(Questions))
		fmt.Fprintf(s.Out, "   %s\n", q)
		line, err := s.Console.ReadLine(ctx, "   Your response: ")
		if err != nil {
			return nil, err
		}
		responses = append(responses, strings.TrimSpace(line))
		fmt.Fprintln(s.Out)
	}
	return responses, nil
}

func (s *Session) logger() *zap.SugaredLogger {
	if s.Log == nil {
		return zap.NewNop().Sugar()
	}
	return s.Log
}
