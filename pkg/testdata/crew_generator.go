package testdata

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/crewops/pkg/models"
)

// CrewGeneratorConfig configures crew snapshot generation
type CrewGeneratorConfig struct {
	Count          int
	Territories    []string
	SkillTags      []string
	ActiveRate     float64 // 0.0-1.0 (probability a crew is active)
	TerritoryRate  float64 // probability of having a home territory
	CapacityRate   float64 // probability of having a capacity snapshot
	DistanceRate   float64 // probability of having a distance
	MaxSkillsPer   int
	MaxFootageLow  float64
	MaxFootageHigh float64
}

// DefaultCrewGeneratorConfig returns a config producing a realistic mix
// of complete and sparse crew snapshots.
func DefaultCrewGeneratorConfig(count int) CrewGeneratorConfig {
	return CrewGeneratorConfig{
		Count:          count,
		Territories:    []string{"north", "south", "east", "west"},
		SkillTags:      []string{"vinyl", "wood-privacy", "chain-link", "aluminum", "gates"},
		ActiveRate:     0.9,
		TerritoryRate:  0.8,
		CapacityRate:   0.7,
		DistanceRate:   0.7,
		MaxSkillsPer:   4,
		MaxFootageLow:  150,
		MaxFootageHigh: 400,
	}
}

var crewNameSuffixes = []string{"Crew", "Team", "Install Co", "Fence Co", "Builders"}

// GenerateCrews produces deterministic crew snapshots for the given seed.
func GenerateCrews(seed int64, cfg CrewGeneratorConfig) []models.Crew {
	faker := gofakeit.New(seed)

	proficiencies := []models.Proficiency{
		models.ProficiencyTrainee,
		models.ProficiencyBasic,
		models.ProficiencyStandard,
		models.ProficiencyExpert,
	}

	crews := make([]models.Crew, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		crew := models.Crew{
			ID:       fmt.Sprintf("crew-%03d", i+1),
			Name:     fmt.Sprintf("%s %s", faker.LastName(), crewNameSuffixes[faker.Number(0, len(crewNameSuffixes)-1)]),
			IsActive: faker.Float64Range(0, 1) < cfg.ActiveRate,
		}

		if faker.Float64Range(0, 1) < cfg.TerritoryRate && len(cfg.Territories) > 0 {
			territory := cfg.Territories[faker.Number(0, len(cfg.Territories)-1)]
			crew.TerritoryID = &territory
		}

		maxFootage := faker.Float64Range(cfg.MaxFootageLow, cfg.MaxFootageHigh)
		crew.MaxDailyFootage = &maxFootage

		skillCount := faker.Number(0, cfg.MaxSkillsPer)
		seen := make(map[string]bool, skillCount)
		for s := 0; s < skillCount && len(cfg.SkillTags) > 0; s++ {
			tag := cfg.SkillTags[faker.Number(0, len(cfg.SkillTags)-1)]
			if seen[tag] {
				continue
			}
			seen[tag] = true
			crew.Skills = append(crew.Skills, models.CrewSkill{
				TagID:       tag,
				Proficiency: proficiencies[faker.Number(0, len(proficiencies)-1)],
			})
		}

		if faker.Float64Range(0, 1) < cfg.CapacityRate {
			scheduled := faker.Float64Range(0, maxFootage)
			crew.ScheduledFootage = &scheduled
		}

		if faker.Float64Range(0, 1) < cfg.DistanceRate {
			distance := faker.Float64Range(1, 80)
			crew.DistanceMiles = &distance
		}

		crews = append(crews, crew)
	}

	return crews
}

// GenerateDaySchedule produces deterministic schedule entries for one crew
// and date, used to exercise conflict checks.
func GenerateDaySchedule(seed int64, crewID, date string, count int) []models.ScheduleEntry {
	faker := gofakeit.New(seed)

	types := []models.EntryType{
		models.EntryTypeJobVisit,
		models.EntryTypeJobVisit,
		models.EntryTypeBlocked,
		models.EntryTypeMeeting,
	}

	entries := make([]models.ScheduleEntry, 0, count)
	for i := 0; i < count; i++ {
		startHour := faker.Number(7, 14)
		start := fmt.Sprintf("%02d:00", startHour)
		end := fmt.Sprintf("%02d:00", startHour+faker.Number(1, 3))
		footage := faker.Float64Range(20, 120)

		entries = append(entries, models.ScheduleEntry{
			ID:              fmt.Sprintf("entry-%03d", i+1),
			Title:           faker.Sentence(3),
			CrewID:          &crewID,
			Date:            date,
			StartTime:       &start,
			EndTime:         &end,
			FootageEstimate: &footage,
			Type:            types[faker.Number(0, len(types)-1)],
		})
	}

	return entries
}
