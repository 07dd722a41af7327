// Package ai provides the question-generation and fallback-reply collaborator.
package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("model returned empty response")

// QuestionSource generates technical interview questions and conversational
// fallback replies. Implementations must be safe for concurrent use.
type QuestionSource interface {
	// Questions returns an ordered list of questions for a topic string
	// such as "advanced Python". The list may be empty.
	Questions(ctx context.Context, topic string) ([]string, error)

	// FallbackReply produces a polite redirection for input the engine
	// could not route.
	FallbackReply(ctx context.Context, userText string) (string, error)
}
