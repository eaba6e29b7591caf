package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// CompletionPayload is the flat wire form of the collected onboarding data,
// sent to PUT /profile/onboarding. Field names follow the snake_case wire
// convention; complete.Flatten and complete.Nest keep this mapping
// bidirectionally consistent with OnboardingData.
type CompletionPayload struct {
	// Identity
	FullName        string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	PreferredName   string `json:"preferred_name,omitempty" validate:"omitempty,max=100"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty" validate:"omitempty,url"`

	// Context
	CurrentStatus   string `json:"current_status,omitempty" validate:"omitempty,oneof=student professional transitioning exploring"`
	YearsExperience *int   `json:"years_experience,omitempty" validate:"omitempty,min=0,max=50"`
	Location        string `json:"location,omitempty"`
	IsRemoteOpen    bool   `json:"is_remote_open,omitempty"`

	// Import
	CVURL        string          `json:"cv_url,omitempty" validate:"omitempty,url"`
	LinkedInURL  string          `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	ImportedData json.RawMessage `json:"imported_data,omitempty"`

	// Expertise
	Skills        []string       `json:"skills,omitempty"`
	SkillLevels   map[string]int `json:"skill_levels,omitempty"`
	HiddenTalents []string       `json:"hidden_talents,omitempty"`

	// Aspirations
	DreamRole      string          `json:"dream_role,omitempty" validate:"omitempty,max=200"`
	TimelineMonths int             `json:"timeline_months,omitempty" validate:"omitempty,oneof=6 12 24 36 60"`
	SuccessMetrics *SuccessMetrics `json:"success_metrics,omitempty"`
	LongTermVision string          `json:"long_term_vision,omitempty"`
	TargetRoles    []string        `json:"target_roles,omitempty"`

	// Preferences
	WorkStyles    map[string]int `json:"work_styles,omitempty"`
	CultureValues []string       `json:"culture_values,omitempty"`
	DealBreakers  []string       `json:"deal_breakers,omitempty"`
	Industries    []string       `json:"industries,omitempty"`
}

// Validate validates the CompletionPayload using the validator.
func (p *CompletionPayload) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// CompletedProfile is the profile record returned by the completion endpoint.
// The server may recompute completeness and unlocks independently; when it
// does, the server-computed values are authoritative.
type CompletedProfile struct {
	CompletionPayload

	OnboardingCompleted bool     `json:"onboarding_completed"`
	OnboardingVersion   int      `json:"onboarding_version,omitempty"`
	ProfileCompleteness int      `json:"profile_completeness,omitempty"`
	FeaturesUnlocked    []string `json:"features_unlocked,omitempty"`
}
