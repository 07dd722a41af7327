package engine

import (
	"sync"

	"github.com/talentscout/intake/internal/domain"
)

const welcomeMessage = "Hello! I'm TalentScout's Hiring Assistant. I'll help screen your profile. Let's start with your full name."

const endMessage = "Conversation ended. Thank you for using TalentScout!"

const alreadyDoneMessage = "Your screening is already complete and submitted. Our team will be in touch if you are shortlisted."

const emptyAssessmentMessage = "Thank you! We could not prepare technical questions for your stack right now, so your profile has been submitted as-is. Our team will review it and contact you if you are shortlisted."

// stagePrompts holds the paraphrase sets shown when the conversation advances
// into a stage. Which paraphrase is chosen is cosmetic; the stage contract is
// what tests assert on.
var stagePrompts = map[domain.Stage][]string{
	domain.StageFullName: {
		"What's your full name?",
		"May I have your full name, please?",
		"Let's start with your name.",
	},
	domain.StageEmail: {
		"Thanks! What's your email address?",
		"Great. Could you share your email address?",
		"Please provide your email address.",
	},
	domain.StageCountryCode: {
		"Please select your country code (e.g., +91 for India, +1 for USA):",
	},
	domain.StagePhone: {
		"Now enter your phone number (digits only):",
	},
	domain.StageExperience: {
		"How many years of professional experience do you have?",
		"Could you share your total years of experience?",
		"What's your experience level in years?",
	},
	domain.StagePosition: {
		"What position(s) are you interested in applying for?",
		"Which roles are you targeting?",
		"What job titles are you seeking?",
	},
	domain.StageLocation: {
		"What's your current city or area?",
		"Where are you currently based?",
		"Please provide your city or locality.",
	},
	domain.StagePincode: {
		"Please enter your area pincode for verification:",
	},
	domain.StageTechStack: {
		"Please select the technologies you are proficient in (e.g., Python, Java, React, SQL, etc.).",
	},
	domain.StageResumeUpload: {
		"If you wish, you can upload your resume now. Otherwise, type \"skip\" to continue.",
	},
}

// rePrompts holds the paraphrase sets shown when input for a stage is rejected.
var rePrompts = map[domain.Stage][]string{
	domain.StageEmail: {
		"That does not look like a valid email. Could you please re-enter?",
		"Please provide a valid email address.",
		"Oops! That email seems invalid. Try again.",
	},
	domain.StagePhone: {
		"That does not look like a valid phone number. Please try again.",
		"Please enter a valid phone number with country code.",
		"Oops! Invalid phone number. Try again.",
	},
	domain.StageLocation: {
		"Please enter a valid city or area name:",
	},
	domain.StagePincode: {
		"Invalid pincode. Please enter a valid pincode:",
	},
	domain.StageTechStack: {
		"Please select at least one technology you are proficient in:",
	},
}

var clarifyPhrases = []string{
	"Could you please elaborate a bit more on your previous answer?",
	"Would you mind sharing more details about your response?",
	"Can you expand on that a little?",
}

var uncertainLeadIns = []string{
	"Thank you for your honesty. No worries! Let's move to the next question: ",
	"No problem! Let's continue with the next question: ",
	"Appreciate your candor. Here's the next question: ",
}

var positiveLeadIns = []string{
	"Great! You seem confident. Here's the next question: ",
	"Awesome! Let's move on: ",
	"Excellent! Next up: ",
}

var closingPhrases = []string{
	"Thank you for completing the technical questions! Your responses have been submitted. Our team will review your application and contact you if you are shortlisted. We appreciate your time and interest in TalentScout.",
	"Your answers have been received. Our team will review and get in touch if you are shortlisted. Thank you for your time!",
	"All done! We'll review your application and reach out if you are a match. Thanks for applying to TalentScout!",
}

// PhraseProvider selects one paraphrase from a fixed variant set. Providers
// must be pure with respect to session data so that tests can rely on stage
// and slot contracts instead of exact wording.
type PhraseProvider interface {
	Pick(key string, variants []string) string
}

// RotatingPhrases cycles through the variants of each key deterministically,
// offset by a seed. It replaces ad-hoc random choice so the same build always
// produces the same sequence of paraphrases.
type RotatingPhrases struct {
	mu     sync.Mutex
	seed   int
	counts map[string]int
}

// NewRotatingPhrases creates a rotating provider with the given seed.
func NewRotatingPhrases(seed int) *RotatingPhrases {
	return &RotatingPhrases{seed: seed, counts: make(map[string]int)}
}

// Pick implements PhraseProvider.
func (p *RotatingPhrases) Pick(key string, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.counts[key]
	p.counts[key] = n + 1
	return variants[(p.seed+n)%len(variants)]
}

// FixedPhrases always picks the first variant. Useful in tests that want to
// pin exact text.
type FixedPhrases struct{}

// Pick implements PhraseProvider.
func (FixedPhrases) Pick(_ string, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	return variants[0]
}
