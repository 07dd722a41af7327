// Package resume extracts text and contact details from uploaded resumes.
package resume

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a document yields no extractable text.
var ErrNoText = errors.New("no text could be extracted")

// Details is what the screening flow learns from an uploaded resume.
type Details struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	ATSScore int      `json:"ats_score"`
	Text     string   `json:"text"`
}

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s()./-]{8,}\d`)
	linkPattern  = regexp.MustCompile(`(?i)(github\.com|linkedin\.com)/[\w./-]+`)
)

// knownSkills is the technology vocabulary matched against resume text.
var knownSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "C++", "C#", "Ruby",
	"PHP", "Kotlin", "Swift", "Rust", "SQL", "NoSQL", "PostgreSQL", "MySQL",
	"MongoDB", "Redis", "React", "Angular", "Vue", "Node", "Django", "Flask",
	"Spring", "Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform",
	"Kafka", "GraphQL", "Git", "Linux",
}

// educationKeywords and experienceKeywords feed the ATS score heuristics.
var educationKeywords = []string{"bachelor", "master", "b.tech", "b.e.", "m.tech", "degree", "university", "college"}
var experienceKeywords = []string{"experience", "worked", "developed", "built", "led", "managed", "intern"}

// ExtractPDFText pulls plain text out of a PDF document.
func ExtractPDFText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, textReader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// ParsePDF extracts text from a PDF and parses contact details out of it.
func ParsePDF(r io.ReaderAt, size int64) (*Details, error) {
	text, err := ExtractPDFText(r, size)
	if err != nil {
		return nil, err
	}
	return ParseText(text), nil
}

// ParseText pulls contact details and skills out of raw resume text.
func ParseText(text string) *Details {
	d := &Details{Text: text}

	d.Email = emailPattern.FindString(text)
	d.Phone = normalizePhone(phonePattern.FindString(text))
	d.Name = guessName(text)
	d.Skills = matchSkills(text)
	d.ATSScore = Score(d)

	return d
}

// Score rates resume completeness from 0 to 100.
func Score(d *Details) int {
	lower := strings.ToLower(d.Text)
	score := 0

	if d.Name != "" {
		score += 10
	}
	if d.Email != "" {
		score += 10
	}
	if d.Phone != "" {
		score += 10
	}

	if n := len(d.Skills) * 4; n > 20 {
		score += 20
	} else {
		score += n
	}

	if containsAny(lower, educationKeywords) {
		score += 15
	}
	if containsAny(lower, experienceKeywords) {
		score += 20
	}
	if linkPattern.MatchString(d.Text) {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// guessName takes the first plausible line: a few words, letters only, near
// the top of the document.
func guessName(text string) string {
	lines := strings.Split(text, "\n")
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if strings.ContainsAny(line, "@0123456789:/") {
			continue
		}
		return line
	}
	return ""
}

func matchSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string
	for _, skill := range knownSkills {
		if containsWord(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// containsWord matches skill as a whole token so "Go" does not fire on
// "Google" or "Django".
func containsWord(text, word string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		i = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if n := strings.TrimPrefix(digits, "+"); len(n) < 10 || len(n) > 15 {
		return ""
	}
	return digits
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
