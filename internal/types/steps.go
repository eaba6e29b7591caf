// Package types provides type definitions for structured data used throughout the onboarding engine.
package types

// Step identifies one stage of the onboarding wizard.
type Step string

// Wizard steps in their canonical order.
const (
	StepIdentity    Step = "identity"
	StepContext     Step = "context"
	StepExpertise   Step = "expertise"
	StepAspirations Step = "aspirations"
	StepPreferences Step = "preferences"
	StepActivation  Step = "activation"
)

// FinalDataStep is the last step that collects data. Advancing past it
// triggers the profile-completion submission before entering activation.
const FinalDataStep = StepPreferences

// stepOrder is the static ordering table for the wizard. Index positions in
// this table are the step indices recorded in session snapshots, so the order
// must never change between releases.
var stepOrder = []Step{
	StepIdentity,
	StepContext,
	StepExpertise,
	StepAspirations,
	StepPreferences,
	StepActivation,
}

// TotalSteps is the number of wizard steps, including the terminal
// activation step.
const TotalSteps = 6

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Index returns the position of s in the wizard order.
// The second return value is false for unknown steps.
func (s Step) Index() (int, bool) {
	for i, step := range stepOrder {
		if step == s {
			return i, true
		}
	}
	return 0, false
}

// StepAt returns the step at the given index.
// The second return value is false when the index is out of range.
func StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(stepOrder) {
		return "", false
	}
	return stepOrder[index], true
}

// Valid reports whether s is a known wizard step.
func (s Step) Valid() bool {
	_, ok := s.Index()
	return ok
}

// Optional reports whether the step may be skipped without satisfying
// its validation rules.
func (s Step) Optional() bool {
	return s == StepAspirations || s == StepPreferences
}

// Terminal reports whether the step has no outgoing transitions.
func (s Step) Terminal() bool {
	return s == StepActivation
}
