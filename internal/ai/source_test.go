package ai

import (
	"context"
	"strings"
	"testing"
)

func TestParseQuestionList(t *testing.T) {
	t.Parallel()

	raw := "1. What is a goroutine?\n\n2) Explain channels.\n- How does the scheduler work?\n* What is a mutex?\nPlain trailing question?"
	got := ParseQuestionList(raw)

	want := []string{
		"What is a goroutine?",
		"Explain channels.",
		"How does the scheduler work?",
		"What is a mutex?",
		"Plain trailing question?",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d questions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("question %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseQuestionListEmpty(t *testing.T) {
	t.Parallel()

	if got := ParseQuestionList("   \n\n  "); len(got) != 0 {
		t.Errorf("expected no questions, got %v", got)
	}
}

func TestStaticSourceQuestions(t *testing.T) {
	t.Parallel()

	src := NewStaticSource()
	qs, err := src.Questions(context.Background(), "advanced Python")
	if err != nil {
		t.Fatalf("Questions failed: %v", err)
	}
	if len(qs) == 0 {
		t.Fatal("expected at least one question")
	}
	for _, q := range qs {
		if !strings.Contains(q, "Python") {
			t.Errorf("question %q does not mention the technology", q)
		}
	}

	// Same topic yields the same list.
	again, err := src.Questions(context.Background(), "advanced Python")
	if err != nil {
		t.Fatalf("Questions failed: %v", err)
	}
	if len(again) != len(qs) || again[0] != qs[0] {
		t.Errorf("expected deterministic output, got %v vs %v", qs, again)
	}
}

func TestStaticSourceEmptyTopic(t *testing.T) {
	t.Parallel()

	src := NewStaticSource()
	qs, err := src.Questions(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Questions failed: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("expected no questions for empty topic, got %v", qs)
	}
}
