package resume

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
Backend Engineer
jane.doe@example.com | +1 555 123 4567
github.com/janedoe

Professional Experience
Developed payment services in Python and Go, backed by PostgreSQL and Redis.
Led a migration to Kubernetes on AWS.

Education
Bachelor of Science, Computer Science, State University
`

func TestParseText(t *testing.T) {
	t.Parallel()

	d := ParseText(sampleResume)

	if d.Name != "Jane Doe" {
		t.Errorf("expected name Jane Doe, got %q", d.Name)
	}
	if d.Email != "jane.doe@example.com" {
		t.Errorf("unexpected email %q", d.Email)
	}
	if d.Phone != "+15551234567" {
		t.Errorf("unexpected phone %q", d.Phone)
	}

	for _, want := range []string{"Python", "Go", "PostgreSQL", "Redis", "Kubernetes", "AWS"} {
		found := false
		for _, s := range d.Skills {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected skill %q in %v", want, d.Skills)
		}
	}

	if d.ATSScore <= 0 || d.ATSScore > 100 {
		t.Errorf("score out of range: %d", d.ATSScore)
	}
}

func TestParseTextSparse(t *testing.T) {
	t.Parallel()

	d := ParseText("just a single line with nothing useful")
	if d.Name != "" || d.Email != "" || d.Phone != "" {
		t.Errorf("expected empty contact details, got %+v", d)
	}
	if len(d.Skills) != 0 {
		t.Errorf("expected no skills, got %v", d.Skills)
	}

	rich := ParseText(sampleResume)
	if d.ATSScore >= rich.ATSScore {
		t.Errorf("sparse resume should score below a rich one: %d vs %d", d.ATSScore, rich.ATSScore)
	}
}

func TestSkillMatchIsWordBounded(t *testing.T) {
	t.Parallel()

	// "Google" and "Django" must not register the Go skill.
	d := ParseText("Worked at Google on Django applications.")
	for _, s := range d.Skills {
		if s == "Go" {
			t.Errorf("Go should not match inside other words: %v", d.Skills)
		}
	}
	if len(d.Skills) != 1 || d.Skills[0] != "Django" {
		t.Errorf("expected only Django, got %v", d.Skills)
	}
}

func TestGuessNameSkipsNoise(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"RESUME",
		"jane@example.com",
		"Jane Ann Doe",
		"Some Street 12",
	}, "\n")
	if got := ParseText(text).Name; got != "Jane Ann Doe" {
		t.Errorf("expected Jane Ann Doe, got %q", got)
	}
}

func TestNormalizePhoneRejectsShort(t *testing.T) {
	t.Parallel()

	if got := normalizePhone("12 34 56"); got != "" {
		t.Errorf("expected short number to be dropped, got %q", got)
	}
	if got := normalizePhone("+91 98765 43210"); got != "+919876543210" {
		t.Errorf("unexpected normalization: %q", got)
	}
}
