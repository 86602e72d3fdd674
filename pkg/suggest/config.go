package suggest

import "github.com/jordanlanch/crewops/pkg/models"

// Scoring weights. The five components sum to a 100-point scale.
const (
	// Preference (25 points max)
	WeightPreference = 25.0
	// Territory (20 points max)
	WeightTerritory = 20.0
	// Skills (25 points max)
	WeightSkills = 25.0
	// Capacity (20 points max)
	WeightCapacity = 20.0
	// Proximity (10 points max)
	WeightProximity = 10.0

	// MaxTotalScore is the sum of all component weights.
	MaxTotalScore = 100.0

	// AvoidPenalty is applied when the crew is on the builder's avoid
	// list. The only way a total score goes negative.
	AvoidPenalty = -10.0

	// MissingSkillPenalty is subtracted per required skill tag the crew
	// lacks.
	MissingSkillPenalty = 5.0
)

// Weights holds the maximum point allocation per scoring component.
type Weights struct {
	Preference float64
	Territory  float64
	Skills     float64
	Capacity   float64
	Proximity  float64
}

// Config is the immutable scoring configuration injected into a Suggester.
// Alternate weightings can be tested without touching evaluator code.
type Config struct {
	Weights                Weights
	ProficiencyMultipliers map[models.Proficiency]float64
	AvoidPenalty           float64
	MissingSkillPenalty    float64
	DefaultMaxDailyFootage float64

	// QuickPickMinScore and QuickPickLimit bound the quick-picks view.
	QuickPickMinScore float64
	QuickPickLimit    int

	// BestMatchMinScore is the confidence floor for an automatic
	// recommendation.
	BestMatchMinScore float64
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Preference: WeightPreference,
			Territory:  WeightTerritory,
			Skills:     WeightSkills,
			Capacity:   WeightCapacity,
			Proximity:  WeightProximity,
		},
		ProficiencyMultipliers: map[models.Proficiency]float64{
			models.ProficiencyTrainee:  0.6,
			models.ProficiencyBasic:    0.8,
			models.ProficiencyStandard: 1.0,
			models.ProficiencyExpert:   1.2,
		},
		AvoidPenalty:           AvoidPenalty,
		MissingSkillPenalty:    MissingSkillPenalty,
		DefaultMaxDailyFootage: models.DefaultMaxDailyFootage,
		QuickPickMinScore:      50,
		QuickPickLimit:         3,
		BestMatchMinScore:      60,
	}
}
