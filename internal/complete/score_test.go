package complete

import (
	"reflect"
	"testing"

	"github.com/jonathan/onboarding-engine/internal/types"
)

func intPtr(n int) *int { return &n }

func requiredPayload() *types.CompletionPayload {
	return &types.CompletionPayload{
		FullName:        "Ada Lovelace",
		CurrentStatus:   "professional",
		Location:        "London",
		YearsExperience: intPtr(7),
		Skills:          []string{"Go", "SQL", "Math"},
	}
}

func TestCompleteness_Empty(t *testing.T) {
	if got := Completeness(&types.CompletionPayload{}); got != 0 {
		t.Errorf("Completeness(empty) = %d, expected 0", got)
	}
}

func TestCompleteness_RequiredFields(t *testing.T) {
	if got := Completeness(requiredPayload()); got != 60 {
		t.Errorf("Completeness(required only) = %d, expected 60", got)
	}
}

func TestCompleteness_Weights(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.CompletionPayload)
		score  int
	}{
		{"dream role", func(p *types.CompletionPayload) { p.DreamRole = "Staff Engineer" }, 65},
		{"timeline", func(p *types.CompletionPayload) { p.TimelineMonths = 12 }, 65},
		{"long term vision", func(p *types.CompletionPayload) { p.LongTermVision = "lead a team" }, 65},
		{"target roles", func(p *types.CompletionPayload) { p.TargetRoles = []string{"backend"} }, 65},
		{"cv url", func(p *types.CompletionPayload) { p.CVURL = "https://example.com/cv.pdf" }, 70},
		{"linkedin url only", func(p *types.CompletionPayload) { p.LinkedInURL = "https://linkedin.com/in/ada" }, 70},
		{"work styles", func(p *types.CompletionPayload) { p.WorkStyles = map[string]int{"remote": 9} }, 65},
		{"culture values", func(p *types.CompletionPayload) { p.CultureValues = []string{"autonomy"} }, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := requiredPayload()
			tt.mutate(p)
			if got := Completeness(p); got != tt.score {
				t.Errorf("Completeness = %d, expected %d", got, tt.score)
			}
		})
	}
}

func TestCompleteness_CVAndLinkedInCountOnce(t *testing.T) {
	p := requiredPayload()
	p.CVURL = "https://example.com/cv.pdf"
	p.LinkedInURL = "https://linkedin.com/in/ada"
	if got := Completeness(p); got != 70 {
		t.Errorf("Completeness = %d, expected the import links to score once", got)
	}
}

func TestCompleteness_TooFewSkills(t *testing.T) {
	p := requiredPayload()
	p.Skills = []string{"Go", "SQL"}
	if got := Completeness(p); got != 40 {
		t.Errorf("Completeness = %d, expected 40 with under 3 skills", got)
	}
}

func TestCompleteness_FullProfileCapsAt100(t *testing.T) {
	p := requiredPayload()
	p.DreamRole = "Staff Engineer"
	p.TimelineMonths = 24
	p.LongTermVision = "lead platform engineering"
	p.TargetRoles = []string{"backend", "platform"}
	p.CVURL = "https://example.com/cv.pdf"
	p.WorkStyles = map[string]int{"remote": 9}
	p.CultureValues = []string{"autonomy"}

	if got := Completeness(p); got != 100 {
		t.Errorf("Completeness(full) = %d, expected 100", got)
	}
}

func TestUnlockedFeatures(t *testing.T) {
	tests := []struct {
		score    int
		features []string
	}{
		{0, []string{}},
		{29, []string{}},
		{30, []string{FeatureBasicMatching}},
		{50, []string{FeatureBasicMatching, FeatureAIRecommendations}},
		{69, []string{FeatureBasicMatching, FeatureAIRecommendations}},
		{70, []string{FeatureBasicMatching, FeatureAIRecommendations, FeaturePremiumInsights}},
		{100, []string{FeatureBasicMatching, FeatureAIRecommendations, FeaturePremiumInsights, FeatureFullAccess}},
	}

	for _, tt := range tests {
		if got := UnlockedFeatures(tt.score); !reflect.DeepEqual(got, tt.features) {
			t.Errorf("UnlockedFeatures(%d) = %v, expected %v", tt.score, got, tt.features)
		}
	}
}
