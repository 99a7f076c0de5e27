package journal

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func newTestApp(input string, ref Reflector) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(input), &out)
	return &App{
		Console: c,
		Out:     &out,
		Session: &Session{
			Console:    c,
			Out:        &out,
			Classifier: &fakeClassifier{sentiment: SentimentPositive},
			Reflector:  ref,
		},
	}, &out
}

func TestApp_InvalidChoiceRedisplaysMenu(t *testing.T) {
	t.Parallel()

	app, out := newTestApp("3\n", &fakeReflector{text: "unused reflection"})
	app.Run(context.Background())

	o := out.String()
	if !strings.Contains(o, "Invalid choice. Please enter 1 or 2.") {
		t.Fatalf("missing invalid choice message:\n%s", o)
	}
	if n := strings.Count(o, "EMPATHETIC JOURNALING APP"); n != 2 {
		t.Fatalf("menu shown %d times, want 2", n)
	}
	if strings.Contains(o, "do something else?") {
		t.Fatalf("continue prompt shown after invalid choice:\n%s", o)
	}
	if !strings.Contains(o, "Goodbye! Take care of yourself.") {
		t.Fatalf("missing farewell on EOF:\n%s", o)
	}
}

func TestApp_FreeEntryThenDecline(t *testing.T) {
	t.Parallel()

	app, out := newTestApp("1\nhello\n\n\nn\n", &fakeReflector{text: "unused reflection"})
	app.Run(context.Background())

	o := out.String()
	if !strings.Contains(o, "Entry: hello\n") {
		t.Fatalf("missing entry preview:\n%s", o)
	}
	if strings.Count(o, "do something else?") != 1 {
		t.Fatalf("continue prompt count wrong:\n%s", o)
	}
	if strings.Contains(o, "Goodbye!") {
		t.Fatalf("declining is not an interrupt:\n%s", o)
	}
	if !strings.HasSuffix(o, "Take care of yourself!\n") {
		t.Fatalf("missing final thank-you:\n%s", o)
	}
}

func TestApp_UnwindThenContinue(t *testing.T) {
	t.Parallel()

	app, out := newTestApp("2\na\nb\nc\nd\ne\nYES\n2\n\n\n\n\n\ny\n", &fakeReflector{text: "A kind AI reflection."})
	app.Run(context.Background())

	o := out.String()
	if n := strings.Count(o, "AI-Generated Reflection:"); n != 2 {
		t.Fatalf("sessions run=%d, want 2:\n%s", n, o)
	}
	if n := strings.Count(o, "EMPATHETIC JOURNALING APP"); n != 3 {
		t.Fatalf("menu shown %d times, want 3", n)
	}
}

type panickingReflector struct{}

func (panickingReflector) Reflect(ctx context.Context, responses []string, sentiment Sentiment) (string, error) {
	panic("model exploded")
}

func TestApp_ActionFailureKeepsLoopRunning(t *testing.T) {
	t.Parallel()

	app, out := newTestApp("2\na\nb\nc\nd\ne\n1\nok\n\n\nno\n", panickingReflector{})
	app.Run(context.Background())

	o := out.String()
	if !strings.Contains(o, "An error occurred: model exploded") || !strings.Contains(o, "Please try again.") {
		t.Fatalf("missing error report:\n%s", o)
	}
	if !strings.Contains(o, "Entry: ok\n") {
		t.Fatalf("loop did not continue:\n%s", o)
	}
}

func TestApp_InterruptedBeforeChoice(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app, out := newTestApp("", &fakeReflector{})
	app.Run(ctx)
	if !strings.Contains(out.String(), "Goodbye! Take care of yourself.") {
		t.Fatalf("missing farewell:\n%s", out.String())
	}
}

func TestIsAffirmative(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"y", "Y", "yes", " YES ", "Yes"} {
		if !IsAffirmative(s) {
			t.Fatalf("IsAffirmative(%q)=false", s)
		}
	}
	for _, s := range []string{"", "n", "no", "yep", "sure"} {
		if IsAffirmative(s) {
			t.Fatalf("IsAffirmative(%q)=true", s)
		}
	}
}
