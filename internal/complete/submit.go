package complete

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/onboarding-engine/internal/types"
)

// ProfileAPI is the profile-completion endpoint the submitter calls.
type ProfileAPI interface {
	CompleteProfile(ctx context.Context, payload *types.CompletionPayload) (*types.CompletedProfile, error)
}

// SessionClearer wipes the persisted session after a verified-successful
// submission.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// ErrSubmitFailed wraps a failed completion submission. The session and the
// collected data stay intact; the user retries from the last data step.
type ErrSubmitFailed struct {
	Cause error
}

func (e *ErrSubmitFailed) Error() string {
	return fmt.Sprintf("profile completion failed: %v", e.Cause)
}

func (e *ErrSubmitFailed) Unwrap() error {
	return e.Cause
}

// Result carries the outcome of a successful submission for the activation
// step to render.
type Result struct {
	Profile      *types.CompletedProfile
	Completeness int
	Features     []string
}

// Submitter flattens the collected data, submits it, and clears the session
// on success.
type Submitter struct {
	api      ProfileAPI
	sessions SessionClearer
}

// NewSubmitter creates a Submitter.
func NewSubmitter(api ProfileAPI, sessions SessionClearer) *Submitter {
	return &Submitter{api: api, sessions: sessions}
}

// Submit sends the accumulated data to the profile-completion endpoint.
// On success the session is cleared and the derived completeness and unlock
// set are returned; the server-computed values win when the response carries
// them. On failure no state is cleared and an *ErrSubmitFailed is returned.
func (s *Submitter) Submit(ctx context.Context, data types.OnboardingData) (*Result, error) {
	payload := Flatten(data)
	if err := payload.Validate(); err != nil {
		return nil, &ErrSubmitFailed{Cause: fmt.Errorf("invalid payload: %w", err)}
	}

	profile, err := s.api.CompleteProfile(ctx, payload)
	if err != nil {
		return nil, &ErrSubmitFailed{Cause: err}
	}

	score := Completeness(payload)
	result := &Result{
		Profile:      profile,
		Completeness: score,
		Features:     UnlockedFeatures(score),
	}
	if profile != nil && profile.ProfileCompleteness > 0 {
		result.Completeness = profile.ProfileCompleteness
	}
	if profile != nil && len(profile.FeaturesUnlocked) > 0 {
		result.Features = profile.FeaturesUnlocked
	}

	// The submission is durable now; a failed cache wipe must not undo it.
	if err := s.sessions.Clear(ctx); err != nil {
		log.Printf("onboarding: session clear after completion failed: %v", err)
	}

	return result, nil
}
