// internal/service/score.go
package service

import (
	"strings"

	"github.com/civicworks/volunteerhub/internal/model"
)

// Component weights for the overall match score.
const (
	weightSkills       = 0.4
	weightAvailability = 0.3
	weightPreference   = 0.2
	weightDistance     = 0.1
)

// MatchScore is a weighted fit score with its per-component breakdown.
type MatchScore struct {
	Total        float64 `json:"total_score"`
	SkillMatch   float64 `json:"skill_match_score"`
	Availability float64 `json:"availability_score"`
	Preference   float64 `json:"preference_score"`
	Distance     float64 `json:"distance_score"`
}

// CalculateMatchScore scores how well a profile fits an opportunity.
// Each component lands in [0,1] and the total is their weighted sum.
func CalculateMatchScore(profile *model.Profile, opp *model.Opportunity) MatchScore {
	skillScore := skillMatchScore(profile.Skills, opp.RequiredSkills)

	// Any declared availability counts for now; window-level overlap
	// against event times needs schedule data the events don't carry yet.
	availabilityScore := 0.3
	if len(profile.Availability) > 0 {
		availabilityScore = 0.8
	}

	preferenceScore := preferenceScore(profile.Tags, opp)

	// Placeholder until profiles carry a location to measure against.
	distanceScore := 0.7

	total := skillScore*weightSkills +
		availabilityScore*weightAvailability +
		preferenceScore*weightPreference +
		distanceScore*weightDistance

	return MatchScore{
		Total:        total,
		SkillMatch:   skillScore,
		Availability: availabilityScore,
		Preference:   preferenceScore,
		Distance:     distanceScore,
	}
}

// skillMatchScore is the fraction of required skills the profile covers,
// compared case-insensitively. No requirements means a perfect fit.
func skillMatchScore(profileSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 1.0
	}
	if len(profileSkills) == 0 {
		return 0.0
	}

	have := make(map[string]struct{}, len(profileSkills))
	for _, skill := range profileSkills {
		have[strings.ToLower(skill)] = struct{}{}
	}

	required := make(map[string]struct{}, len(requiredSkills))
	for _, skill := range requiredSkills {
		required[strings.ToLower(skill)] = struct{}{}
	}

	matching := 0
	for skill := range required {
		if _, ok := have[skill]; ok {
			matching++
		}
	}
	return float64(matching) / float64(len(required))
}

// preferenceScore starts neutral at 0.5 and boosts for tags that line up
// with the opportunity's title, capped at 1.0.
func preferenceScore(tags []string, opp *model.Opportunity) float64 {
	if len(tags) == 0 {
		return 0.5
	}

	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[strings.ToLower(tag)] = struct{}{}
	}

	score := 0.5
	title := strings.ToLower(opp.Title)

	if _, ok := tagSet["experience"]; ok {
		score += 0.2
	}
	if _, ok := tagSet["leadership"]; ok && strings.Contains(title, "lead") {
		score += 0.2
	}
	if _, ok := tagSet["outdoors"]; ok {
		for _, word := range []string{"park", "cleanup", "outdoor"} {
			if strings.Contains(title, word) {
				score += 0.3
				break
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
