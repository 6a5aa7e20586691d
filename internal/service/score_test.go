package service_test

import (
	"testing"

	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestCalculateMatchScore(t *testing.T) {
	t.Run("full skill coverage with availability", func(t *testing.T) {
		profile := &model.Profile{
			DisplayName: "Jordan",
			Skills:      model.StringList{"First Aid", "cooking"},
			Availability: []model.AvailabilityWindow{
				{Weekday: 5, StartMinute: 540, EndMinute: 720},
			},
		}
		opp := &model.Opportunity{
			Title:          "Kitchen Helper",
			RequiredSkills: model.StringList{"cooking", "first aid"},
		}

		score := service.CalculateMatchScore(profile, opp)

		assert.Equal(t, 1.0, score.SkillMatch)
		assert.Equal(t, 0.8, score.Availability)
		assert.Equal(t, 0.5, score.Preference)
		assert.Equal(t, 0.7, score.Distance)
		// 1.0*0.4 + 0.8*0.3 + 0.5*0.2 + 0.7*0.1
		assert.InDelta(t, 0.81, score.Total, 1e-9)
	})

	t.Run("no availability lowers the component", func(t *testing.T) {
		profile := &model.Profile{Skills: model.StringList{"cooking"}}
		opp := &model.Opportunity{Title: "Kitchen Helper", RequiredSkills: model.StringList{"cooking"}}

		score := service.CalculateMatchScore(profile, opp)

		assert.Equal(t, 0.3, score.Availability)
		assert.InDelta(t, 0.66, score.Total, 1e-9)
	})

	t.Run("partial skill coverage", func(t *testing.T) {
		profile := &model.Profile{
			Skills: model.StringList{"cooking"},
			Availability: []model.AvailabilityWindow{
				{Weekday: 0, StartMinute: 0, EndMinute: 120},
			},
		}
		opp := &model.Opportunity{
			Title:          "Medic Station",
			RequiredSkills: model.StringList{"cooking", "first aid"},
		}

		score := service.CalculateMatchScore(profile, opp)
		assert.Equal(t, 0.5, score.SkillMatch)
	})

	t.Run("no required skills is a perfect skill fit", func(t *testing.T) {
		profile := &model.Profile{}
		opp := &model.Opportunity{Title: "General Help"}

		score := service.CalculateMatchScore(profile, opp)
		assert.Equal(t, 1.0, score.SkillMatch)
	})

	t.Run("empty profile skills score zero against requirements", func(t *testing.T) {
		profile := &model.Profile{}
		opp := &model.Opportunity{Title: "Medic Station", RequiredSkills: model.StringList{"first aid"}}

		score := service.CalculateMatchScore(profile, opp)
		assert.Equal(t, 0.0, score.SkillMatch)
	})

	t.Run("preference boosts stack and cap at one", func(t *testing.T) {
		profile := &model.Profile{
			Tags: model.StringList{"Experience", "leadership", "outdoors"},
		}
		opp := &model.Opportunity{Title: "Lead for Park Cleanup Crew"}

		score := service.CalculateMatchScore(profile, opp)
		// 0.5 + 0.2 + 0.2 + 0.3 capped
		assert.Equal(t, 1.0, score.Preference)
	})

	t.Run("leadership tag needs lead in the title", func(t *testing.T) {
		profile := &model.Profile{Tags: model.StringList{"leadership"}}
		opp := &model.Opportunity{Title: "Kitchen Helper"}

		score := service.CalculateMatchScore(profile, opp)
		assert.Equal(t, 0.5, score.Preference)
	})

	t.Run("outdoors tag matches cleanup titles", func(t *testing.T) {
		profile := &model.Profile{Tags: model.StringList{"outdoors"}}
		opp := &model.Opportunity{Title: "Beach Cleanup"}

		score := service.CalculateMatchScore(profile, opp)
		assert.InDelta(t, 0.8, score.Preference, 1e-9)
	})

	t.Run("no tags stays neutral", func(t *testing.T) {
		profile := &model.Profile{}
		opp := &model.Opportunity{Title: "Park Cleanup"}

		score := service.CalculateMatchScore(profile, opp)
		assert.Equal(t, 0.5, score.Preference)
	})
}
