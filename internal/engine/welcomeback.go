package engine

import (
	"fmt"
	"time"

	"github.com/jonathan/onboarding-engine/internal/types"
)

// welcomeBackMaxAge bounds how old a session can be and still greet the user
// as returning. Older sessions load silently; resuming week-old data with a
// cheery banner reads wrong even though the data itself is kept.
const welcomeBackMaxAge = 24 * time.Hour

// WelcomeBack computes the resumption summary for a loaded session, or nil
// when there is nothing worth greeting: no session, a session still on the
// first step, or a session older than 24 hours.
func WelcomeBack(sess *types.OnboardingSession, now time.Time) *types.WelcomeBackState {
	if sess == nil || sess.CurrentStep <= 0 {
		return nil
	}

	away := now.Sub(sess.LastSavedAt)
	if away >= welcomeBackMaxAge {
		return nil
	}

	step, ok := types.StepAt(sess.CurrentStep)
	if !ok {
		return nil
	}

	percent := CalculateProgress(sess.CurrentStep, sess.CompletedSteps).PercentComplete

	timeAway := "a few moments ago"
	if hours := int(away.Hours()); hours >= 1 {
		if hours == 1 {
			timeAway = "1 hour ago"
		} else {
			timeAway = fmt.Sprintf("%d hours ago", hours)
		}
	}

	return &types.WelcomeBackState{
		LastStepName:    step,
		PercentComplete: percent,
		TimeAway:        timeAway,
		Message:         fmt.Sprintf("Welcome back! You were %d%% through the setup.", percent),
	}
}
