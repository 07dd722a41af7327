// Package domain defines the core types for the candidate screening conversation.
package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// Location is a resolved pincode lookup result.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// CandidateInfo holds the validated slot values collected during the
// conversation. A field is populated only after its validator accepted input.
type CandidateInfo struct {
	FullName     string    `json:"full_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	CountryCode  string    `json:"country_code,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	Position     string    `json:"position,omitempty"`
	Location     string    `json:"location,omitempty"`
	Pincode      string    `json:"pincode,omitempty"`
	LocationInfo *Location `json:"location_info,omitempty"`
	TechStack    []string  `json:"tech_stack,omitempty"`
	ResumeText   string    `json:"resume_text,omitempty"`
}

// Session holds the state of one active screening conversation. Exactly one
// inbound message mutates a session at a time; callers must hold the session
// lock for the duration of that message.
type Session struct {
	mu sync.Mutex

	ID    string
	Stage Stage
	Info  CandidateInfo

	// Questions is populated once when the assessment sub-flow begins.
	Questions []string
	// Asked holds one accepted raw answer per presented question,
	// so len(Asked) never exceeds len(Questions).
	Asked []string
	// Clarifying marks that the last answer was terse and the current
	// question was re-presented; the next answer replaces the last slot.
	Clarifying bool

	CreatedAt time.Time

	// lastActivity is read by the TTL sweeper without the session lock.
	lastActivity atomic.Int64
}

// NewSession creates a fresh session at the greeting stage.
func NewSession(id string) *Session {
	s := &Session{
		ID:        id,
		Stage:     StageGreeting,
		CreatedAt: time.Now(),
	}
	s.Touch()
	return s
}

// Lock serializes message processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session for the next message.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity, deferring TTL-based cleanup.
func (s *Session) Touch() { s.lastActivity.Store(time.Now().UnixNano()) }

// LastSeen returns the time of the most recent activity.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastActivity.Load()) }

// CurrentQuestion returns the question the candidate is expected to be
// answering, or "" outside the assessment sub-flow. While a clarification is
// pending the question is the one whose answer is being re-collected.
func (s *Session) CurrentQuestion() string {
	if s.Stage != StageQuestions {
		return ""
	}
	i := len(s.Asked)
	if s.Clarifying {
		i--
	}
	if i < 0 || i >= len(s.Questions) {
		return ""
	}
	return s.Questions[i]
}

// ScreeningRecord is a completed screening as handed to the store.
type ScreeningRecord struct {
	SessionID string        `json:"session_id"`
	Info      CandidateInfo `json:"info"`
	Answers   []string      `json:"answers"`
	CreatedAt time.Time     `json:"created_at"`
}
