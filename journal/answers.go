package journal

import "strings"

// Questions are the guided prompts of an unwind session, in answer order.
var Questions = [5]string{
	"How are you feeling right now? (e.g., anxious, sad, overwhelmed, hopeful, etc.)",
	"What's causing you stress or concern today?",
	"How much control do you feel you have over this situation? (e.g., none, some, a lot)",
	"How long have you been feeling this way? (e.g., a few hours, days, weeks)",
	"What's one small positive action you can take for yourself today?",
}

// Answers is the response set of a session with every position filled in.
type Answers struct {
	Feeling  string
	Cause    string
	Control  string
	Duration string
	Action   string
}

// DefaultAnswers holds the placeholder used for each missing or blank response.
var DefaultAnswers = Answers{
	Feeling:  "uncertain",
	Cause:    "various factors",
	Control:  "limited",
	Duration: "a while",
	Action:   "taking care of yourself",
}

// ResolveAnswers fills a fixed-size Answers from the raw responses, in question order.
// Missing positions and whitespace-only responses take the matching default.
// Responses past the fifth are ignored.
func ResolveAnswers(responses []string, defaults Answers) Answers {
	pick := func(i int, def string) string {
		if i < len(responses) && strings.TrimSpace(responses[i]) != "" {
			return responses[i]
		}
		return def
	}
	return Answers{
		Feeling:  pick(0, defaults.Feeling),
		Cause:    pick(1, defaults.Cause),
		Control:  pick(2, defaults.Control),
		Duration: pick(3, defaults.Duration),
		Action:   pick(4, defaults.Action),
	}
}
