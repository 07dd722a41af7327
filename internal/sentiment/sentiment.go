// Package sentiment classifies the confidence tone of candidate answers.
package sentiment

import "strings"

// Label is the coarse tone of an answer.
type Label string

const (
	Uncertain Label = "uncertain"
	Positive  Label = "positive"
	Neutral   Label = "neutral"
)

// Phrase sets are matched as case-insensitive substrings. Order matters:
// uncertainty wins over positivity when a message contains both, so "yes, but
// I'm not sure" still reads as uncertain.
var uncertainPhrases = []string{
	"don't know",
	"do not know",
	"not sure",
	"no idea",
	"sorry",
	"can't answer",
	"cannot answer",
	"unsure",
	"i am not familiar",
	"i am unfamiliar",
	"i haven't used",
	"never used",
	"i don't have experience",
	"i am not confident",
}

var positivePhrases = []string{
	"yes",
	"i know",
	"i am confident",
	"i have experience",
	"i am familiar",
	"i am comfortable",
	"i have used",
	"i am good at",
	"i am skilled",
}

// Classify maps free text to one of the three labels.
func Classify(text string) Label {
	lower := strings.ToLower(text)
	for _, p := range uncertainPhrases {
		if strings.Contains(lower, p) {
			return Uncertain
		}
	}
	for _, p := range positivePhrases {
		if strings.Contains(lower, p) {
			return Positive
		}
	}
	return Neutral
}
