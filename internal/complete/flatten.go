// Package complete transforms accumulated onboarding data into the flat
// profile-completion submission and derives completeness and feature unlocks
// from it.
package complete

import (
	"github.com/jonathan/onboarding-engine/internal/types"
)

// Flatten maps the nested section records onto the flat snake_case wire
// payload. The mapping is exhaustive over every section field and is the
// inverse of Nest.
func Flatten(data types.OnboardingData) *types.CompletionPayload {
	p := &types.CompletionPayload{}

	if id := data.Identity; id != nil {
		p.FullName = id.FullName
		p.PreferredName = id.PreferredName
		p.ProfilePhotoURL = id.ProfilePhotoURL
	}
	if c := data.Context; c != nil {
		p.CurrentStatus = string(c.CurrentStatus)
		p.YearsExperience = c.YearsExperience
		p.Location = c.Location
		p.IsRemoteOpen = c.IsRemoteOpen
	}
	if imp := data.Import; imp != nil {
		p.CVURL = imp.CVURL
		p.LinkedInURL = imp.LinkedInURL
		p.ImportedData = imp.ImportedData
	}
	if ex := data.Expertise; ex != nil {
		p.Skills = ex.Skills
		p.SkillLevels = ex.SkillLevels
		p.HiddenTalents = ex.HiddenTalents
	}
	if asp := data.Aspirations; asp != nil {
		p.DreamRole = asp.DreamRole
		p.TimelineMonths = asp.TimelineMonths
		p.SuccessMetrics = asp.SuccessMetrics
		p.LongTermVision = asp.LongTermVision
		p.TargetRoles = asp.TargetRoles
	}
	if pref := data.Preferences; pref != nil {
		p.WorkStyles = pref.WorkStyles
		p.CultureValues = pref.CultureValues
		p.DealBreakers = pref.DealBreakers
		p.Industries = pref.Industries
	}

	return p
}

// Nest rebuilds the nested section records from a flat payload. Sections with
// no populated fields stay nil, matching a section that was never visited.
func Nest(p *types.CompletionPayload) types.OnboardingData {
	var data types.OnboardingData

	if p.FullName != "" || p.PreferredName != "" || p.ProfilePhotoURL != "" {
		data.Identity = &types.Identity{
			FullName:        p.FullName,
			PreferredName:   p.PreferredName,
			ProfilePhotoURL: p.ProfilePhotoURL,
		}
	}
	if p.CurrentStatus != "" || p.YearsExperience != nil || p.Location != "" || p.IsRemoteOpen {
		data.Context = &types.ContextInfo{
			CurrentStatus:   types.UserStatus(p.CurrentStatus),
			YearsExperience: p.YearsExperience,
			Location:        p.Location,
			IsRemoteOpen:    p.IsRemoteOpen,
		}
	}
	if p.CVURL != "" || p.LinkedInURL != "" || len(p.ImportedData) > 0 {
		data.Import = &types.ImportInfo{
			CVURL:        p.CVURL,
			LinkedInURL:  p.LinkedInURL,
			ImportedData: p.ImportedData,
		}
	}
	if len(p.Skills) > 0 || len(p.SkillLevels) > 0 || len(p.HiddenTalents) > 0 {
		data.Expertise = &types.Expertise{
			Skills:        p.Skills,
			SkillLevels:   p.SkillLevels,
			HiddenTalents: p.HiddenTalents,
		}
	}
	if p.DreamRole != "" || p.TimelineMonths != 0 || p.SuccessMetrics != nil ||
		p.LongTermVision != "" || len(p.TargetRoles) > 0 {
		data.Aspirations = &types.Aspirations{
			DreamRole:      p.DreamRole,
			TimelineMonths: p.TimelineMonths,
			SuccessMetrics: p.SuccessMetrics,
			LongTermVision: p.LongTermVision,
			TargetRoles:    p.TargetRoles,
		}
	}
	if len(p.WorkStyles) > 0 || len(p.CultureValues) > 0 || len(p.DealBreakers) > 0 || len(p.Industries) > 0 {
		data.Preferences = &types.Preferences{
			WorkStyles:    p.WorkStyles,
			CultureValues: p.CultureValues,
			DealBreakers:  p.DealBreakers,
			Industries:    p.Industries,
		}
	}

	return data
}
