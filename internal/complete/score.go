package complete

import (
	"strings"

	"github.com/jonathan/onboarding-engine/internal/types"
)

// Features unlocked as the profile fills in.
const (
	FeatureBasicMatching     = "basic_matching"
	FeatureAIRecommendations = "ai_recommendations"
	FeaturePremiumInsights   = "premium_insights"
	FeatureFullAccess        = "full_access"
)

// unlockThresholds maps ascending completeness thresholds to the feature
// they unlock.
var unlockThresholds = []struct {
	Score   int
	Feature string
}{
	{30, FeatureBasicMatching},
	{50, FeatureAIRecommendations},
	{70, FeaturePremiumInsights},
	{90, FeatureFullAccess},
}

// minSkills is the skill count required for the skills portion of the score
// (and for passing expertise validation).
const minSkills = 3

// Completeness scores how much of the profile schema is populated, 0-100.
// Required identity/context/skills fields carry most of the weight; optional
// aspiration and preference fields top the score up.
func Completeness(p *types.CompletionPayload) int {
	score := 0

	// Required fields (60 points)
	if strings.TrimSpace(p.FullName) != "" {
		score += 10
	}
	if p.CurrentStatus != "" {
		score += 10
	}
	if strings.TrimSpace(p.Location) != "" {
		score += 10
	}
	if p.YearsExperience != nil {
		score += 10
	}
	if len(p.Skills) >= minSkills {
		score += 20
	}

	// Valuable optional fields (30 points)
	if p.DreamRole != "" {
		score += 5
	}
	if p.TimelineMonths != 0 {
		score += 5
	}
	if p.LongTermVision != "" {
		score += 5
	}
	if len(p.TargetRoles) > 0 {
		score += 5
	}
	if p.CVURL != "" || p.LinkedInURL != "" {
		score += 10
	}

	// Nice to have (10 points)
	if len(p.WorkStyles) > 0 {
		score += 5
	}
	if len(p.CultureValues) > 0 {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// UnlockedFeatures returns the features available at the given completeness
// score, in unlock order.
func UnlockedFeatures(score int) []string {
	features := []string{}
	for _, t := range unlockThresholds {
		if score >= t.Score {
			features = append(features, t.Feature)
		}
	}
	return features
}
