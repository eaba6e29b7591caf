package engine

import (
	"math"

	"github.com/jonathan/onboarding-engine/internal/types"
)

// CalculateProgress derives the progress view for the given wizard position.
// The terminal activation step does not count toward completion, hence the
// totalSteps-1 denominator.
func CalculateProgress(currentStepIndex int, completedSteps []int) types.Progress {
	completed := make([]int, len(completedSteps))
	copy(completed, completedSteps)

	percent := int(math.Round(float64(len(completed)) / float64(types.TotalSteps-1) * 100))

	return types.Progress{
		CurrentStep:     currentStepIndex,
		TotalSteps:      types.TotalSteps,
		CompletedSteps:  completed,
		PercentComplete: percent,
		CanGoBack:       currentStepIndex > 0,
		IsLastStep:      currentStepIndex == types.TotalSteps-1,
	}
}
