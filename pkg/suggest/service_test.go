package suggest

import (
	"testing"

	"github.com/jordanlanch/crewops/pkg/models"
	"github.com/jordanlanch/crewops/pkg/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfectCrew() models.Crew {
	return models.Crew{
		ID:          "crew-perfect",
		Name:        "Alpha Crew",
		IsActive:    true,
		TerritoryID: strPtr("north"),
		Skills: []models.CrewSkill{
			{TagID: "vinyl", Proficiency: models.ProficiencyStandard},
		},
		MaxDailyFootage:  f64Ptr(200),
		ScheduledFootage: f64Ptr(100),
		DistanceMiles:    f64Ptr(5),
	}
}

func TestSuggest(t *testing.T) {
	s := New()

	t.Run("Preferred crew with perfect fit scores 100", func(t *testing.T) {
		job := JobContext{
			Date:                "2026-09-01",
			FootageEstimate:     f64Ptr(50),
			RequiredSkillTagIDs: []string{"vinyl"},
			TerritoryID:         strPtr("north"),
			PreferredCrewID:     strPtr("crew-perfect"),
		}

		results := s.Suggest([]models.Crew{perfectCrew()}, job)

		require.Len(t, results, 1)
		top := results[0]
		assert.Equal(t, 100.0, top.Score)
		assert.Equal(t, 100, top.MatchPercent)
		assert.True(t, top.IsPreferred)
		assert.True(t, top.HasAllSkills)
		assert.False(t, top.IsOverCapacity)
		assert.False(t, top.ShouldAvoid)
		assert.Equal(t, top.Score, top.Breakdown.Preference+top.Breakdown.Territory+top.Breakdown.Skills+top.Breakdown.Capacity+top.Breakdown.Proximity)
	})

	t.Run("Fully unknown crew lands on the neutral baseline", func(t *testing.T) {
		crew := models.Crew{ID: "crew-blank", Name: "Blank Crew", IsActive: true}
		job := JobContext{Date: "2026-09-01"}

		results := s.Suggest([]models.Crew{crew}, job)

		require.Len(t, results, 1)
		// 12.5 + 10 + 12.5 + 14 + 5
		assert.Equal(t, 54.0, results[0].Score)
		assert.Equal(t, 54, results[0].MatchPercent)
		require.Len(t, results[0].Reasons, 5)
		for _, r := range results[0].Reasons {
			assert.Equal(t, ReasonNeutral, r.Kind, r.Label)
		}
	})

	t.Run("Inactive crews are excluded", func(t *testing.T) {
		inactive := perfectCrew()
		inactive.ID = "crew-inactive"
		inactive.IsActive = false

		results := s.Suggest([]models.Crew{inactive, perfectCrew()}, JobContext{Date: "2026-09-01"})

		require.Len(t, results, 1)
		assert.Equal(t, "crew-perfect", results[0].Crew.ID)
	})

	t.Run("Avoided crews rank last regardless of score", func(t *testing.T) {
		strong := perfectCrew()
		weak := models.Crew{ID: "crew-weak", Name: "Weak Crew", IsActive: true}

		job := JobContext{
			Date:                "2026-09-01",
			FootageEstimate:     f64Ptr(50),
			RequiredSkillTagIDs: []string{"vinyl"},
			TerritoryID:         strPtr("north"),
			AvoidCrewIDs:        []string{"crew-perfect"},
		}

		results := s.Suggest([]models.Crew{strong, weak}, job)

		require.Len(t, results, 2)
		assert.Equal(t, "crew-weak", results[0].Crew.ID)
		assert.Equal(t, "crew-perfect", results[1].Crew.ID)
		assert.True(t, results[1].ShouldAvoid)
		assert.Greater(t, results[1].Score, results[0].Score)
	})

	t.Run("Avoid penalty can push match percent to zero", func(t *testing.T) {
		crew := models.Crew{ID: "crew-avoid", Name: "Avoid Crew", IsActive: true, TerritoryID: strPtr("south")}
		job := JobContext{
			Date:                "2026-09-01",
			TerritoryID:         strPtr("north"),
			RequiredSkillTagIDs: []string{"vinyl", "gates", "aluminum", "chain-link", "wood-privacy"},
			AvoidCrewIDs:        []string{"crew-avoid"},
		}

		results := s.Suggest([]models.Crew{crew}, job)

		require.Len(t, results, 1)
		assert.Less(t, results[0].Score, 10.0)
		assert.GreaterOrEqual(t, results[0].MatchPercent, 0)
	})

	t.Run("More skill coverage never scores lower", func(t *testing.T) {
		job := JobContext{
			Date:                "2026-09-01",
			RequiredSkillTagIDs: []string{"vinyl", "gates", "aluminum"},
		}

		var prev float64 = -1
		tags := []string{"vinyl", "gates", "aluminum"}
		for n := 0; n <= len(tags); n++ {
			crew := models.Crew{ID: "crew-cov", IsActive: true}
			for _, tag := range tags[:n] {
				crew.Skills = append(crew.Skills, models.CrewSkill{TagID: tag, Proficiency: models.ProficiencyStandard})
			}
			results := s.Suggest([]models.Crew{crew}, job)
			require.Len(t, results, 1)
			assert.GreaterOrEqual(t, results[0].Score, prev, "coverage=%d", n)
			prev = results[0].Score
		}
	})

	t.Run("Identical inputs produce identical rankings", func(t *testing.T) {
		crews := testdata.GenerateCrews(42, testdata.DefaultCrewGeneratorConfig(40))
		job := JobContext{
			Date:                "2026-09-01",
			FootageEstimate:     f64Ptr(80),
			RequiredSkillTagIDs: []string{"vinyl", "gates"},
			TerritoryID:         strPtr("north"),
			PreferredCrewID:     strPtr("crew-003"),
			AvoidCrewIDs:        []string{"crew-010", "crew-011"},
		}

		first := s.Suggest(crews, job)
		second := s.Suggest(crews, job)

		assert.Equal(t, first, second)
	})

	t.Run("Empty candidate list yields empty non-nil slice", func(t *testing.T) {
		results := s.Suggest(nil, JobContext{Date: "2026-09-01"})
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})
}

func TestQuickPicks(t *testing.T) {
	s := New()

	suggestions := []Suggestion{
		{Crew: models.Crew{ID: "a"}, Score: 90},
		{Crew: models.Crew{ID: "b"}, Score: 85, ShouldAvoid: true},
		{Crew: models.Crew{ID: "c"}, Score: 70},
		{Crew: models.Crew{ID: "d"}, Score: 55},
		{Crew: models.Crew{ID: "e"}, Score: 52},
		{Crew: models.Crew{ID: "f"}, Score: 40},
	}

	t.Run("Filters avoided and low scores, caps at limit", func(t *testing.T) {
		picks := s.QuickPicks(suggestions, 3)

		require.Len(t, picks, 3)
		assert.Equal(t, "a", picks[0].Crew.ID)
		assert.Equal(t, "c", picks[1].Crew.ID)
		assert.Equal(t, "d", picks[2].Crew.ID)
	})

	t.Run("Zero limit falls back to default", func(t *testing.T) {
		picks := s.QuickPicks(suggestions, 0)
		assert.Len(t, picks, 3)
	})

	t.Run("Score exactly at the floor qualifies", func(t *testing.T) {
		picks := s.QuickPicks([]Suggestion{{Crew: models.Crew{ID: "edge"}, Score: 50}}, 3)
		require.Len(t, picks, 1)
		assert.Equal(t, "edge", picks[0].Crew.ID)
	})
}

func TestBestMatch(t *testing.T) {
	s := New()

	t.Run("Returns top suggestion above the confidence floor", func(t *testing.T) {
		best := s.BestMatch([]Suggestion{
			{Crew: models.Crew{ID: "a"}, Score: 82},
			{Crew: models.Crew{ID: "b"}, Score: 60},
		})

		require.NotNil(t, best)
		assert.Equal(t, "a", best.Crew.ID)
	})

	t.Run("Nil when the top score is below the floor", func(t *testing.T) {
		best := s.BestMatch([]Suggestion{{Crew: models.Crew{ID: "a"}, Score: 59.9}})
		assert.Nil(t, best)
	})

	t.Run("Score exactly at the floor qualifies", func(t *testing.T) {
		best := s.BestMatch([]Suggestion{{Crew: models.Crew{ID: "a"}, Score: 60}})
		require.NotNil(t, best)
	})

	t.Run("Nil when the top suggestion is avoided", func(t *testing.T) {
		best := s.BestMatch([]Suggestion{{Crew: models.Crew{ID: "a"}, Score: 95, ShouldAvoid: true}})
		assert.Nil(t, best)
	})

	t.Run("Nil for empty input", func(t *testing.T) {
		assert.Nil(t, s.BestMatch(nil))
	})
}
