package types

import "encoding/json"

// UserStatus describes where a user currently is in their career.
type UserStatus string

// Recognized user statuses.
const (
	StatusStudent       UserStatus = "student"
	StatusProfessional  UserStatus = "professional"
	StatusTransitioning UserStatus = "transitioning"
	StatusExploring     UserStatus = "exploring"
)

// Valid reports whether the status is one of the recognized values.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusStudent, StatusProfessional, StatusTransitioning, StatusExploring:
		return true
	}
	return false
}

// ValidTimelineMonths lists the accepted aspiration timelines, in months.
var ValidTimelineMonths = []int{6, 12, 24, 36, 60}

// ValidTimeline reports whether months is an accepted timeline value.
func ValidTimeline(months int) bool {
	for _, m := range ValidTimelineMonths {
		if months == m {
			return true
		}
	}
	return false
}

// Identity holds the identity step fields.
type Identity struct {
	FullName        string `json:"fullName"`
	PreferredName   string `json:"preferredName"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

// ContextInfo holds the context step fields. YearsExperience is a pointer so
// that zero ("just starting") is distinguishable from unset.
type ContextInfo struct {
	CurrentStatus   UserStatus `json:"currentStatus"`
	YearsExperience *int       `json:"yearsExperience,omitempty"`
	Location        string     `json:"location"`
	IsRemoteOpen    bool       `json:"isRemoteOpen"`
}

// ImportInfo holds optional imported-profile references. Parsing of the
// referenced documents happens outside the engine; only the references and
// the opaque parsed blob travel through the session.
type ImportInfo struct {
	CVURL        string          `json:"cvUrl,omitempty"`
	LinkedInURL  string          `json:"linkedinUrl,omitempty"`
	ImportedData json.RawMessage `json:"importedData,omitempty"`
}

// Expertise holds the expertise step fields.
type Expertise struct {
	Skills        []string       `json:"skills"`
	SkillLevels   map[string]int `json:"skillLevels,omitempty"`
	HiddenTalents []string       `json:"hiddenTalents,omitempty"`
}

// SuccessMetrics captures how a user measures success for their target role.
type SuccessMetrics struct {
	SalaryTarget    int    `json:"salaryTarget,omitempty" validate:"omitempty,min=0"`
	ImpactScope     string `json:"impactScope,omitempty" validate:"omitempty,oneof=team department company industry"`
	TeamSize        int    `json:"teamSize,omitempty" validate:"omitempty,min=0"`
	TechnicalDepth  int    `json:"technicalDepth,omitempty" validate:"omitempty,min=1,max=10"`
	LeadershipScope int    `json:"leadershipScope,omitempty" validate:"omitempty,min=1,max=10"`
}

// Aspirations holds the aspirations step fields. All fields are optional.
type Aspirations struct {
	DreamRole      string          `json:"dreamRole,omitempty"`
	TimelineMonths int             `json:"timelineMonths,omitempty"`
	SuccessMetrics *SuccessMetrics `json:"successMetrics,omitempty"`
	LongTermVision string          `json:"longTermVision,omitempty"`
	TargetRoles    []string        `json:"targetRoles,omitempty"`
}

// Preferences holds the preferences step fields. All fields are optional.
// WorkStyles maps a style key (remote, async, collaborative, independent,
// structured, flexible) to an importance score from 0 to 10.
type Preferences struct {
	WorkStyles    map[string]int `json:"workStyles,omitempty"`
	CultureValues []string       `json:"cultureValues,omitempty"`
	DealBreakers  []string       `json:"dealBreakers,omitempty"`
	Industries    []string       `json:"industries,omitempty"`
}

// OnboardingData accumulates the section records collected across the wizard.
// Sections are nil until their owning step first writes them. Sections are
// only ever added or overwritten, never removed, except by a full session
// clear.
type OnboardingData struct {
	Identity    *Identity    `json:"identity,omitempty"`
	Context     *ContextInfo `json:"context,omitempty"`
	Import      *ImportInfo  `json:"import,omitempty"`
	Expertise   *Expertise   `json:"expertise,omitempty"`
	Aspirations *Aspirations `json:"aspirations,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Merge overlays the sections present in update onto d. Each section present
// in update replaces the corresponding section wholesale; there is no
// deep-merge below the section level. Returns the keys of the sections that
// were replaced.
func (d *OnboardingData) Merge(update OnboardingData) []string {
	var sections []string
	if update.Identity != nil {
		d.Identity = update.Identity
		sections = append(sections, "identity")
	}
	if update.Context != nil {
		d.Context = update.Context
		sections = append(sections, "context")
	}
	if update.Import != nil {
		d.Import = update.Import
		sections = append(sections, "import")
	}
	if update.Expertise != nil {
		d.Expertise = update.Expertise
		sections = append(sections, "expertise")
	}
	if update.Aspirations != nil {
		d.Aspirations = update.Aspirations
		sections = append(sections, "aspirations")
	}
	if update.Preferences != nil {
		d.Preferences = update.Preferences
		sections = append(sections, "preferences")
	}
	return sections
}
