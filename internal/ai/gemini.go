package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const questionPromptTemplate = `You are a technical interviewer. Generate 3-5 technical questions for a candidate on the topic: %s. Questions should assess practical proficiency. Return them as a numbered list, one question per line, with no extra commentary.`

const fallbackPromptTemplate = `You are a hiring assistant. The user's input could not be understood in the context of a candidate screening. Respond politely in one or two sentences asking them to clarify or rephrase, without deviating from the hiring context.
User input: %s`

// Gemini is a QuestionSource backed by the Gemini API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini-backed question source.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

// Questions implements QuestionSource.
func (g *Gemini) Questions(ctx context.Context, topic string) ([]string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(questionPromptTemplate, topic))
	if err != nil {
		return nil, fmt.Errorf("generate questions for %q: %w", topic, err)
	}
	return ParseQuestionList(text), nil
}

// FallbackReply implements QuestionSource.
func (g *Gemini) FallbackReply(ctx context.Context, userText string) (string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(fallbackPromptTemplate, userText))
	if err != nil {
		return "", fmt.Errorf("generate fallback reply: %w", err)
	}
	return text, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini source is not initialized")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

// ParseQuestionList turns model output into a clean question list. It strips
// numbering ("1.", "2)"), bullet markers, and blank lines.
func ParseQuestionList(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		// Strip a leading "12." or "12)" style ordinal.
		i := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
			line = strings.TrimSpace(line[i+1:])
		}
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}
