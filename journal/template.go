package journal

import "fmt"

const templateReflection = "Today, it seems like your heart is feeling a bit %s. " +
	"This feeling has been lingering for %s, and it seems to be tied to %s. " +
	"It's completely understandable to feel stressed when you believe you have %s control over the situation. " +
	"But it's great that you've thought about a small action to take for yourself: %s. " +
	"That's a powerful first step towards taking care of yourself and moving forward with compassion."

// TemplateReflection builds the local fallback reflection. It never fails.
// The sentiment is accepted for symmetry with Reflector and does not change the text.
func TemplateReflection(responses []string, _ Sentiment) string {
	a := ResolveAnswers(responses, DefaultAnswers)
	return fmt.Sprintf(templateReflection, a.Feeling, a.Duration, a.Cause, a.Control, a.Action)
}
