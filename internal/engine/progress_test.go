package engine

import (
	"testing"

	"github.com/jonathan/onboarding-engine/internal/types"
)

func TestCalculateProgress_Percent(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		percent   int
	}{
		{"nothing done", nil, 0},
		{"one of five", []int{0}, 20},
		{"three of five", []int{0, 1, 2}, 60},
		{"all data steps", []int{0, 1, 2, 3, 4}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := CalculateProgress(0, tt.completed)
			if progress.PercentComplete != tt.percent {
				t.Errorf("PercentComplete = %d, expected %d", progress.PercentComplete, tt.percent)
			}
		})
	}
}

func TestCalculateProgress_Flags(t *testing.T) {
	first := CalculateProgress(0, nil)
	if first.CanGoBack {
		t.Error("CanGoBack should be false on the first step")
	}
	if first.IsLastStep {
		t.Error("IsLastStep should be false on the first step")
	}

	last := CalculateProgress(types.TotalSteps-1, []int{0, 1, 2, 3, 4})
	if !last.CanGoBack {
		t.Error("CanGoBack should be true on the last step")
	}
	if !last.IsLastStep {
		t.Error("IsLastStep should be true on the last step")
	}

	if got := first.TotalSteps; got != types.TotalSteps {
		t.Errorf("TotalSteps = %d, expected %d", got, types.TotalSteps)
	}
}

func TestCalculateProgress_CopiesCompletedSteps(t *testing.T) {
	completed := []int{0, 1}
	progress := CalculateProgress(2, completed)
	progress.CompletedSteps[0] = 99
	if completed[0] != 0 {
		t.Error("Progress should carry a copy of the completed-step set")
	}
}
