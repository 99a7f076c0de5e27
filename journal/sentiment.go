package journal

// Sentiment is the coarse mood label attached to one guided session.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// SentimentFromLabel maps a classifier label to a Sentiment.
// The emotion model reports LABEL_0..LABEL_2; plain POSITIVE/NEGATIVE labels are accepted too.
// Unknown labels map to SentimentNeutral.
func SentimentFromLabel(label string) Sentiment {
	switch label {
	case "LABEL_2", "POSITIVE":
		return SentimentPositive
	case "LABEL_0", "NEGATIVE":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func (s Sentiment) String() string {
	if s == "" {
		return string(SentimentNeutral)
	}
	return string(s)
}
