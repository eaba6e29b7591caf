package types

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingSession is the durable, resumable record of an in-progress
// onboarding flow. The remote copy is the source of truth across devices;
// the device-local copy is a write-through cache.
type OnboardingSession struct {
	ID             uuid.UUID      `json:"id,omitempty"`
	UserID         uuid.UUID      `json:"userId"`
	CurrentStep    int            `json:"currentStep"`
	CompletedSteps []int          `json:"completedSteps"`
	FormData       OnboardingData `json:"formData"`
	StartedAt      time.Time      `json:"startedAt,omitempty"`
	LastSavedAt    time.Time      `json:"lastSavedAt"`
}

// Progress is a derived view over the wizard position. It is recomputed on
// demand and never persisted.
type Progress struct {
	CurrentStep     int   `json:"currentStep"`
	TotalSteps      int   `json:"totalSteps"`
	CompletedSteps  []int `json:"completedSteps"`
	PercentComplete int   `json:"percentComplete"`
	CanGoBack       bool  `json:"canGoBack"`
	IsLastStep      bool  `json:"isLastStep"`
}

// ValidationResult reports the outcome of validating one step. Errors are
// keyed by field name for display next to the offending input.
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// WelcomeBackState is the resumption summary shown when a user returns to a
// recent in-progress session.
type WelcomeBackState struct {
	LastStepName    Step   `json:"lastStepName"`
	PercentComplete int    `json:"percentComplete"`
	TimeAway        string `json:"timeAway"`
	Message         string `json:"message"`
}

// AnalyticsEvent is a fire-and-forget tracking event emitted as the user
// moves through the wizard. Emission failures are never surfaced.
type AnalyticsEvent struct {
	EventType  string `json:"eventType"`
	StepName   string `json:"stepName,omitempty"`
	FieldName  string `json:"fieldName,omitempty"`
	TimeOnStep int    `json:"timeOnStep,omitempty"`
}

// Analytics event types understood by the tracking endpoint.
const (
	EventStepStarted   = "step_started"
	EventStepCompleted = "step_completed"
	EventStepSkipped   = "step_skipped"
	EventResumed       = "resumed"
	EventCompleted     = "onboarding_completed"
)

// SkillSuggestion is a curated skill recommendation for a given role.
type SkillSuggestion struct {
	ID              uuid.UUID `json:"id"`
	Role            string    `json:"role"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	SuggestedSkills []string  `json:"suggested_skills"`
	Industry        string    `json:"industry,omitempty"`
	RelevanceScore  float64   `json:"relevance_score"`
}
