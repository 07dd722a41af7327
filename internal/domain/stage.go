package domain

// Stage identifies the step of the screening conversation a session occupies.
type Stage string

const (
	StageGreeting        Stage = "greeting"
	StageFullName        Stage = "full_name"
	StageEmail           Stage = "email"
	StageCountryCode     Stage = "country_code"
	StagePhone           Stage = "phone"
	StageExperience      Stage = "experience"
	StagePosition        Stage = "position"
	StageLocation        Stage = "location"
	StagePincode         Stage = "pincode"
	StageLocationConfirm Stage = "location_confirm"
	StageTechStack       Stage = "tech_stack"
	StageResumeUpload    Stage = "resume_upload"
	StageQuestions       Stage = "questions"
	StageDone            Stage = "done"
	StageFallback        Stage = "fallback"
)

// Stages lists every defined stage in conversation order.
var Stages = []Stage{
	StageGreeting,
	StageFullName,
	StageEmail,
	StageCountryCode,
	StagePhone,
	StageExperience,
	StagePosition,
	StageLocation,
	StagePincode,
	StageLocationConfirm,
	StageTechStack,
	StageResumeUpload,
	StageQuestions,
	StageDone,
	StageFallback,
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Index returns the position of s in the conversation order, or -1 for
// unknown stages. Used by tests to assert monotonic progression.
func (s Stage) Index() int {
	for i, known := range Stages {
		if s == known {
			return i
		}
	}
	return -1
}
