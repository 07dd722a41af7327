package engine

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/talentscout/intake/internal/domain"
	"github.com/talentscout/intake/internal/sentiment"
)

// maxQuestionsPerTopic caps how many generated questions each technology
// contributes to the assessment.
const maxQuestionsPerTopic = 5

// shortAnswerRunes is the length below which an answer counts as terse.
const shortAnswerRunes = 15

var vagueAnswers = map[string]bool{
	"yes":        true,
	"no":         true,
	"maybe":      true,
	"not sure":   true,
	"don't know": true,
	"idk":        true,
}

// experienceBucket maps the collected years-of-experience value to a question
// difficulty level. Non-numeric input deliberately parses as zero: candidates
// who answer "fresher" or leave it odd get the basic track rather than an
// error.
func experienceBucket(raw string) string {
	years, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || years < 0 {
		years = 0
	}
	switch {
	case years == 0:
		return "basic"
	case years == 1:
		return "junior"
	case years == 2:
		return "intermediate"
	case years <= 5:
		return "advanced"
	default:
		return "expert"
	}
}

// handleResumeUpload treats any message at the resume_upload stage (including
// "skip") as the trigger into the assessment sub-flow.
func (e *Engine) handleResumeUpload(ctx context.Context, s *domain.Session, _ string) *Reply {
	return e.beginAssessment(ctx, s)
}

// beginAssessment builds the question list and presents the first question.
func (e *Engine) beginAssessment(ctx context.Context, s *domain.Session) *Reply {
	bucket := experienceBucket(s.Info.Experience)

	var questions []string
	for _, tech := range s.Info.TechStack {
		topic := bucket + " " + tech
		qs, err := e.source.Questions(ctx, topic)
		if err != nil {
			// Generation being down must not kill the session; the
			// remaining technologies may still yield questions.
			e.logger.Error("Question generation failed", "session_id", s.ID, "topic", topic, "error", err)
			continue
		}
		if len(qs) > maxQuestionsPerTopic {
			qs = qs[:maxQuestionsPerTopic]
		}
		questions = append(questions, qs...)
	}

	if len(questions) == 0 {
		// Degenerate case: no technology produced a single question.
		// Complete immediately rather than presenting an empty assessment.
		e.logger.Warn("No questions generated for any technology", "session_id", s.ID, "tech_stack", s.Info.TechStack)
		e.persist(ctx, s)
		s.Stage = domain.StageDone
		return &Reply{
			SessionID: s.ID,
			Response:  emptyAssessmentMessage,
			Next:      domain.StageDone,
			Submit:    true,
		}
	}

	s.Questions = questions
	s.Asked = nil
	s.Clarifying = false
	s.Stage = domain.StageQuestions

	first := questions[0]
	return &Reply{
		SessionID: s.ID,
		Response:  "Thank you! Let's assess your skills. First question: " + first,
		Next:      domain.StageQuestions,
		Question:  first,
	}
}

// handleAnswer processes one answer while the session is in the questions
// stage.
func (e *Engine) handleAnswer(ctx context.Context, s *domain.Session, msg string) *Reply {
	label := sentiment.Classify(msg)

	// Record the raw answer. A clarification replaces the terse answer it
	// supersedes, keeping one slot per question.
	if s.Clarifying && len(s.Asked) > 0 {
		s.Asked[len(s.Asked)-1] = msg
	} else {
		s.Asked = append(s.Asked, msg)
	}

	// A terse answer that is not an admission of uncertainty gets pressed
	// for depth; an uncertain candidate has already declined and moves on.
	if isShortOrVague(msg) && label != sentiment.Uncertain {
		s.Clarifying = true
		return &Reply{
			SessionID: s.ID,
			Response:  e.phrases.Pick("clarify", clarifyPhrases),
			Next:      domain.StageQuestions,
			Question:  s.Questions[len(s.Asked)-1],
		}
	}
	s.Clarifying = false

	if len(s.Asked) < len(s.Questions) {
		next := s.Questions[len(s.Asked)]
		var response string
		switch label {
		case sentiment.Uncertain:
			response = e.phrases.Pick("leadin:uncertain", uncertainLeadIns) + next
		case sentiment.Positive:
			response = e.phrases.Pick("leadin:positive", positiveLeadIns) + next
		default:
			response = "Next question: " + next
		}
		return &Reply{
			SessionID: s.ID,
			Response:  response,
			Next:      domain.StageQuestions,
			Question:  next,
		}
	}

	// All questions answered.
	e.persist(ctx, s)
	s.Stage = domain.StageDone
	return &Reply{
		SessionID: s.ID,
		Response:  e.phrases.Pick("closing", closingPhrases),
		Next:      domain.StageDone,
		Submit:    true,
	}
}

// persist hands the finished screening to the store. Failures are surfaced to
// the operational log only; the candidate still gets the closing message.
func (e *Engine) persist(ctx context.Context, s *domain.Session) {
	rec := &domain.ScreeningRecord{
		SessionID: s.ID,
		Info:      s.Info,
		Answers:   append([]string(nil), s.Asked...),
		CreatedAt: time.Now(),
	}

	if e.repo == nil {
		e.logger.Info("No store configured, screening not persisted", "session_id", s.ID)
		return
	}
	if err := e.repo.SaveScreening(ctx, rec); err != nil {
		e.logger.Error("Failed to persist completed screening", "session_id", s.ID, "error", err)
		return
	}
	e.logger.Info("Screening persisted", "session_id", s.ID, "answers", len(rec.Answers))
}

func isShortOrVague(answer string) bool {
	t := strings.TrimSpace(answer)
	if utf8.RuneCountInString(t) < shortAnswerRunes {
		return true
	}
	return vagueAnswers[strings.ToLower(t)]
}
