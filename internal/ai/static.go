package ai

import (
	"context"
	"fmt"
	"strings"
)

// StaticSource is a deterministic QuestionSource used when no API key is
// configured and in tests. Questions are produced from a fixed template bank
// keyed only by the topic string.
type StaticSource struct{}

// NewStaticSource creates the offline question source.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

var staticTemplates = []string{
	"Describe a project where you used %s and the problems you solved with it.",
	"What are the main strengths and weaknesses of %s?",
	"How would you debug a performance issue in a %s application?",
	"Explain a concept in %s that beginners often get wrong.",
	"How do you test code written with %s?",
}

// Questions implements QuestionSource. The topic arrives as
// "<level> <technology>"; the technology part is substituted into the bank.
func (s *StaticSource) Questions(_ context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, nil
	}
	subject := topic
	if _, rest, ok := strings.Cut(topic, " "); ok && rest != "" {
		subject = rest
	}

	questions := make([]string, 0, len(staticTemplates))
	for _, tmpl := range staticTemplates {
		questions = append(questions, fmt.Sprintf(tmpl, subject))
	}
	return questions, nil
}

// FallbackReply implements QuestionSource.
func (s *StaticSource) FallbackReply(_ context.Context, _ string) (string, error) {
	return "I'm sorry, I didn't quite catch that. Could you rephrase it in the context of your application?", nil
}
