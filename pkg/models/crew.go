package models

// DefaultMaxDailyFootage is assumed for crews that have no configured
// daily maximum (linear feet).
const DefaultMaxDailyFootage = 200.0

// Proficiency is a crew's recorded skill level for a skill tag.
type Proficiency string

const (
	ProficiencyTrainee  Proficiency = "trainee"
	ProficiencyBasic    Proficiency = "basic"
	ProficiencyStandard Proficiency = "standard"
	ProficiencyExpert   Proficiency = "expert"
)

// CrewSkill pairs a skill tag with the crew's proficiency in it.
// Proficiency may be empty when the crew holds the tag but has no
// recorded rating.
type CrewSkill struct {
	TagID       string      `json:"tag_id" validate:"required"`
	Proficiency Proficiency `json:"proficiency,omitempty" validate:"omitempty,oneof=trainee basic standard expert"`
}

// Crew is a point-in-time snapshot of a candidate crew, supplied fresh by
// the caller for every evaluation. The scheduling engine never owns or
// mutates crew records.
type Crew struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`

	// TerritoryID is the crew's home territory; nil means the crew has no
	// home base and covers jobs anywhere.
	TerritoryID *string `json:"territory_id,omitempty"`

	// MaxDailyFootage is the most linear feet the crew can install in a
	// day; nil falls back to DefaultMaxDailyFootage.
	MaxDailyFootage *float64 `json:"max_daily_footage,omitempty" validate:"omitempty,gt=0"`

	Skills []CrewSkill `json:"skills,omitempty" validate:"omitempty,dive"`

	// LegacySkills holds product-type labels from before skill tags were
	// introduced (e.g. "vinyl", "wood-privacy").
	LegacySkills []string `json:"legacy_skills,omitempty"`

	// ScheduledFootage is the footage already committed for the evaluation
	// date; nil means no capacity snapshot was available.
	ScheduledFootage *float64 `json:"scheduled_footage,omitempty" validate:"omitempty,gte=0"`

	// DistanceMiles is the precomputed distance from the crew's base to
	// the job site; nil means no distance was supplied.
	DistanceMiles *float64 `json:"distance_miles,omitempty" validate:"omitempty,gte=0"`
}
