// Package engine implements the stateful multi-step onboarding wizard
// controller: step sequencing, per-step validation, derived progress, and
// debounced persistence of the collected data.
package engine

import (
	"strings"

	"github.com/jonathan/onboarding-engine/internal/types"
)

// minSkills is the number of skills required to pass the expertise step.
const minSkills = 3

// Validate runs the step-local rules for step against the collected data.
// Errors are keyed by field name for display next to the offending input.
// Aspirations and preferences carry no required fields; activation is never
// validated.
func Validate(step types.Step, data types.OnboardingData) types.ValidationResult {
	errors := map[string]string{}

	switch step {
	case types.StepIdentity:
		if data.Identity == nil || strings.TrimSpace(data.Identity.FullName) == "" {
			errors["fullName"] = "Please enter your full name"
		}
		if data.Identity == nil || strings.TrimSpace(data.Identity.PreferredName) == "" {
			errors["preferredName"] = "Please enter your preferred name"
		}

	case types.StepContext:
		if data.Context == nil || data.Context.CurrentStatus == "" {
			errors["currentStatus"] = "Please select your current status"
		} else if !data.Context.CurrentStatus.Valid() {
			errors["currentStatus"] = "Please select a valid status"
		}
		// Zero years is valid: "just starting" is an answer.
		if data.Context == nil || data.Context.YearsExperience == nil {
			errors["yearsExperience"] = "Please enter your years of experience"
		}
		if data.Context == nil || strings.TrimSpace(data.Context.Location) == "" {
			errors["location"] = "Please enter your location"
		}

	case types.StepExpertise:
		if data.Expertise == nil || len(data.Expertise.Skills) < minSkills {
			errors["skills"] = "Please add at least 3 skills"
		}

	case types.StepAspirations, types.StepPreferences, types.StepActivation:
		// No required fields.
	}

	return types.ValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// sectionFields maps a section key to the error keys its inputs can produce,
// so an update to a section clears exactly the errors it can fix.
var sectionFields = map[string][]string{
	"identity":  {"fullName", "preferredName", "profilePhotoUrl"},
	"context":   {"currentStatus", "yearsExperience", "location", "isRemoteOpen"},
	"import":    {"cvUrl", "linkedinUrl"},
	"expertise": {"skills", "skillLevels", "hiddenTalents"},
	"aspirations": {
		"dreamRole", "timelineMonths", "successMetrics", "longTermVision", "targetRoles",
	},
	"preferences": {"workStyles", "cultureValues", "dealBreakers", "industries"},
}
