// Package engine implements the stateful screening dialogue: the per-session
// stage machine and the technical assessment sub-flow.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentscout/intake/internal/ai"
	"github.com/talentscout/intake/internal/domain"
	"github.com/talentscout/intake/internal/geo"
	"github.com/talentscout/intake/internal/session"
	"github.com/talentscout/intake/internal/store"
	"github.com/talentscout/intake/internal/validate"
)

// Termination keywords end the conversation from any stage. Matching is
// case-insensitive on word boundaries, so "ok bye" and "end please" terminate
// but "Backend Engineer" does not.
var doneKeywords = []string{"exit", "quit", "bye", "end", "finish"}

// Reply is the engine's answer to one inbound message. Next always names the
// stage the session will be in when the next message arrives.
type Reply struct {
	SessionID string       `json:"session_id"`
	Response  string       `json:"response"`
	Next      domain.Stage `json:"next"`
	Question  string       `json:"question,omitempty"`
	Submit    bool         `json:"submit,omitempty"`
}

type stageHandler func(ctx context.Context, s *domain.Session, msg string) *Reply

// Engine drives the screening conversation. All session mutation happens here
// and in the assessment sub-flow, one message at a time under the session lock.
type Engine struct {
	sessions *session.Manager
	lookup   geo.Lookup
	source   ai.QuestionSource
	repo     store.Repository
	phrases  PhraseProvider
	logger   *slog.Logger

	handlers map[domain.Stage]stageHandler
}

// New creates an engine. repo may be nil, in which case completed screenings
// are only logged.
func New(sessions *session.Manager, lookup geo.Lookup, source ai.QuestionSource, repo store.Repository, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		sessions: sessions,
		lookup:   lookup,
		source:   source,
		repo:     repo,
		phrases:  NewRotatingPhrases(0),
		logger:   logger,
	}

	e.handlers = map[domain.Stage]stageHandler{
		domain.StageGreeting:        e.handleGreeting,
		domain.StageFullName:        e.handleFullName,
		domain.StageEmail:           e.handleEmail,
		domain.StageCountryCode:     e.handleCountryCode,
		domain.StagePhone:           e.handlePhone,
		domain.StageExperience:      e.handleExperience,
		domain.StagePosition:        e.handlePosition,
		domain.StageLocation:        e.handleLocation,
		domain.StagePincode:         e.handlePincode,
		domain.StageLocationConfirm: e.handleLocationConfirm,
		domain.StageTechStack:       e.handleTechStack,
		domain.StageResumeUpload:    e.handleResumeUpload,
		domain.StageQuestions:       e.handleAnswer,
		domain.StageDone:            e.handleDone,
		domain.StageFallback:        e.handleFallback,
	}

	return e
}

// SetPhrases replaces the paraphrase provider. Intended for tests that pin
// exact prompt text.
func (e *Engine) SetPhrases(p PhraseProvider) {
	e.phrases = p
}

// AttachResumeText stores extracted resume text on a live session as an
// ordinary info value. Returns false when the session is unknown.
func (e *Engine) AttachResumeText(sessionID, text string) bool {
	s := e.sessions.Get(sessionID)
	if s == nil {
		return false
	}
	s.Lock()
	defer s.Unlock()
	s.Info.ResumeText = text
	return true
}

// HandleMessage processes one inbound message atomically against its session.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, message string) *Reply {
	s, created := e.sessions.ResolveOrCreate(sessionID)
	s.Lock()
	defer s.Unlock()
	s.Touch()

	if created {
		// The triggering message itself is not stored as data.
		s.Stage = domain.StageFullName
		return &Reply{
			SessionID: s.ID,
			Response:  welcomeMessage,
			Next:      domain.StageFullName,
		}
	}

	if containsDoneKeyword(message) {
		return e.end(s)
	}

	handler, ok := e.handlers[s.Stage]
	if !ok {
		// Catch-all for sessions in an undefined state.
		return e.handleFallback(ctx, s, message)
	}
	return handler(ctx, s, message)
}

// End terminates the session explicitly, regardless of its stage.
func (e *Engine) End(_ context.Context, sessionID string) *Reply {
	if s := e.sessions.Get(sessionID); s != nil {
		s.Lock()
		defer s.Unlock()
		return e.end(s)
	}
	return &Reply{
		SessionID: sessionID,
		Response:  endMessage,
		Next:      domain.StageDone,
	}
}

// end discards the session; callers hold the session lock.
func (e *Engine) end(s *domain.Session) *Reply {
	e.sessions.Discard(s.ID)
	s.Stage = domain.StageDone
	return &Reply{
		SessionID: s.ID,
		Response:  endMessage,
		Next:      domain.StageDone,
	}
}

func (e *Engine) handleGreeting(_ context.Context, s *domain.Session, _ string) *Reply {
	s.Stage = domain.StageFullName
	return &Reply{
		SessionID: s.ID,
		Response:  welcomeMessage,
		Next:      domain.StageFullName,
	}
}

func (e *Engine) handleFullName(_ context.Context, s *domain.Session, msg string) *Reply {
	s.Info.FullName = msg
	return e.advance(s, domain.StageEmail)
}

func (e *Engine) handleEmail(_ context.Context, s *domain.Session, msg string) *Reply {
	if !validate.Email(msg) {
		return e.reject(s)
	}
	s.Info.Email = msg
	return e.advance(s, domain.StageCountryCode)
}

func (e *Engine) handleCountryCode(_ context.Context, s *domain.Session, msg string) *Reply {
	s.Info.CountryCode = strings.TrimSpace(msg)
	return e.advance(s, domain.StagePhone)
}

func (e *Engine) handlePhone(_ context.Context, s *domain.Session, msg string) *Reply {
	full := s.Info.CountryCode + strings.TrimSpace(msg)
	if !validate.Phone(full) {
		return e.reject(s)
	}
	s.Info.Phone = full
	return e.advance(s, domain.StageExperience)
}

func (e *Engine) handleExperience(_ context.Context, s *domain.Session, msg string) *Reply {
	s.Info.Experience = msg
	return e.advance(s, domain.StagePosition)
}

func (e *Engine) handlePosition(_ context.Context, s *domain.Session, msg string) *Reply {
	s.Info.Position = msg
	return e.advance(s, domain.StageLocation)
}

func (e *Engine) handleLocation(_ context.Context, s *domain.Session, msg string) *Reply {
	if !validate.LocationName(msg) {
		return e.reject(s)
	}
	s.Info.Location = msg
	return e.advance(s, domain.StagePincode)
}

func (e *Engine) handlePincode(ctx context.Context, s *domain.Session, msg string) *Reply {
	pincode := strings.TrimSpace(msg)
	loc, err := e.lookup.Lookup(ctx, pincode)
	if err != nil {
		if err != geo.ErrNotFound {
			e.logger.Warn("Pincode lookup failed", "session_id", s.ID, "error", err)
		}
		return e.reject(s)
	}

	s.Info.Pincode = pincode
	s.Info.LocationInfo = loc
	s.Stage = domain.StageLocationConfirm
	// The confirmation embeds the resolved location verbatim.
	confirm := fmt.Sprintf("We found: %s, %s, %s. Is this correct? (yes/no)", loc.City, loc.State, loc.Country)
	return &Reply{
		SessionID: s.ID,
		Response:  confirm,
		Next:      domain.StageLocationConfirm,
	}
}

func (e *Engine) handleLocationConfirm(_ context.Context, s *domain.Session, msg string) *Reply {
	if strings.EqualFold(strings.TrimSpace(msg), "yes") {
		return e.advance(s, domain.StageTechStack)
	}

	// Discard the tentative location and collect it again.
	s.Info.Location = ""
	s.Info.Pincode = ""
	s.Info.LocationInfo = nil
	s.Stage = domain.StageLocation
	return &Reply{
		SessionID: s.ID,
		Response:  "Please re-enter your area/city:",
		Next:      domain.StageLocation,
	}
}

func (e *Engine) handleTechStack(_ context.Context, s *domain.Session, msg string) *Reply {
	techs := SplitTechStack(msg)
	if len(techs) == 0 {
		return e.reject(s)
	}
	s.Info.TechStack = techs
	return e.advance(s, domain.StageResumeUpload)
}

func (e *Engine) handleDone(_ context.Context, s *domain.Session, _ string) *Reply {
	// Completed sessions ignore further messages; a fresh session is needed
	// to start another screening.
	return &Reply{
		SessionID: s.ID,
		Response:  alreadyDoneMessage,
		Next:      domain.StageDone,
	}
}

func (e *Engine) handleFallback(ctx context.Context, s *domain.Session, msg string) *Reply {
	reply, err := e.source.FallbackReply(ctx, msg)
	if err != nil {
		e.logger.Warn("Fallback reply generation failed", "session_id", s.ID, "error", err)
		reply = "I'm sorry, I didn't quite catch that. Could you rephrase?"
	}
	return &Reply{
		SessionID: s.ID,
		Response:  reply,
		Next:      domain.StageFallback,
	}
}

// advance moves the session to next and prompts for it.
func (e *Engine) advance(s *domain.Session, next domain.Stage) *Reply {
	s.Stage = next
	return &Reply{
		SessionID: s.ID,
		Response:  e.phrases.Pick(string(next), stagePrompts[next]),
		Next:      next,
	}
}

// reject re-prompts for the current stage without mutating collected info.
func (e *Engine) reject(s *domain.Session) *Reply {
	return &Reply{
		SessionID: s.ID,
		Response:  e.phrases.Pick("reject:"+string(s.Stage), rePrompts[s.Stage]),
		Next:      s.Stage,
	}
}

// SplitTechStack normalizes a comma-separated technology list.
func SplitTechStack(raw string) []string {
	var techs []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			techs = append(techs, part)
		}
	}
	return techs
}

func containsDoneKeyword(message string) bool {
	words := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	for _, w := range words {
		for _, k := range doneKeywords {
			if w == k {
				return true
			}
		}
	}
	return false
}
