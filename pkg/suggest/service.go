package suggest

import (
	"math"
	"sort"

	"github.com/jordanlanch/crewops/pkg/models"
)

// Suggester ranks candidate crews for a job on a given date. It is pure
// and stateless: every call works over caller-supplied snapshots, so it is
// safe to invoke concurrently.
type Suggester struct {
	cfg Config
}

// New creates a Suggester with the production scoring configuration.
func New() *Suggester {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Suggester with a custom scoring configuration.
func NewWithConfig(cfg Config) *Suggester {
	return &Suggester{cfg: cfg}
}

// JobContext describes the job being scheduled. All optional fields degrade
// to a documented neutral credit rather than erroring.
type JobContext struct {
	Date                string   `json:"date" validate:"required,datetime=2006-01-02"`
	FootageEstimate     *float64 `json:"footage_estimate,omitempty" validate:"omitempty,gte=0"`
	RequiredSkillTagIDs []string `json:"required_skill_tag_ids,omitempty"`
	LegacyProductType   *string  `json:"legacy_product_type,omitempty"`
	TerritoryID         *string  `json:"territory_id,omitempty"`
	PreferredCrewID     *string  `json:"preferred_crew_id,omitempty"`
	AvoidCrewIDs        []string `json:"avoid_crew_ids,omitempty"`
}

// ReasonKind grades a reason for display.
type ReasonKind string

const (
	ReasonPositive ReasonKind = "positive"
	ReasonNeutral  ReasonKind = "neutral"
	ReasonWarning  ReasonKind = "warning"
)

// Reason is one human-readable line explaining a crew's score.
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Label  string     `json:"label"`
	Detail string     `json:"detail,omitempty"`
}

// Breakdown holds the five component subscores. Their sum equals the total
// score.
type Breakdown struct {
	Preference float64 `json:"preference"`
	Territory  float64 `json:"territory"`
	Skills     float64 `json:"skills"`
	Capacity   float64 `json:"capacity"`
	Proximity  float64 `json:"proximity"`
}

// Suggestion is a scored candidate crew with its explanation.
type Suggestion struct {
	Crew           models.Crew `json:"crew"`
	Score          float64     `json:"score"`
	MatchPercent   int         `json:"match_percent"`
	Reasons        []Reason    `json:"reasons"`
	Breakdown      Breakdown   `json:"breakdown"`
	IsPreferred    bool        `json:"is_preferred"`
	HasAllSkills   bool        `json:"has_all_skills"`
	IsOverCapacity bool        `json:"is_over_capacity"`
	ShouldAvoid    bool        `json:"should_avoid"`
}

// Suggest scores every active candidate crew against the job and returns
// them ranked. Inactive crews are silently excluded. Non-avoided crews
// always precede avoided crews regardless of numeric score; within each
// band results are ordered by descending score. The sort is stable, so
// identical inputs produce identical output.
func (s *Suggester) Suggest(candidates []models.Crew, job JobContext) []Suggestion {
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, crew := range candidates {
		if !crew.IsActive {
			continue
		}
		suggestions = append(suggestions, s.scoreCrew(crew, job))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].ShouldAvoid != suggestions[j].ShouldAvoid {
			return !suggestions[i].ShouldAvoid
		}
		return suggestions[i].Score > suggestions[j].Score
	})

	return suggestions
}

// QuickPicks returns up to limit non-avoided suggestions scoring at or
// above the quick-pick floor, preserving rank order. A limit of zero or
// less falls back to the configured default.
func (s *Suggester) QuickPicks(suggestions []Suggestion, limit int) []Suggestion {
	if limit <= 0 {
		limit = s.cfg.QuickPickLimit
	}

	picks := make([]Suggestion, 0, limit)
	for _, sg := range suggestions {
		if sg.ShouldAvoid || sg.Score < s.cfg.QuickPickMinScore {
			continue
		}
		picks = append(picks, sg)
		if len(picks) == limit {
			break
		}
	}
	return picks
}

// BestMatch returns the top-ranked suggestion when it is confident enough
// for an automatic recommendation, or nil when the caller should require a
// manual pick.
func (s *Suggester) BestMatch(suggestions []Suggestion) *Suggestion {
	if len(suggestions) == 0 {
		return nil
	}
	top := suggestions[0]
	if top.ShouldAvoid || top.Score < s.cfg.BestMatchMinScore {
		return nil
	}
	return &top
}

func (s *Suggester) scoreCrew(crew models.Crew, job JobContext) Suggestion {
	reasons := make([]Reason, 0, 6)

	prefPoints, prefReason, isPreferred, shouldAvoid := s.scorePreference(crew, job)
	reasons = append(reasons, prefReason)

	terrPoints, terrReason := s.scoreTerritory(crew, job)
	reasons = append(reasons, terrReason)

	skillPoints, skillReasons, hasAllSkills := s.scoreSkills(crew, job)
	reasons = append(reasons, skillReasons...)

	capPoints, capReason, overCapacity := s.scoreCapacity(crew, job)
	reasons = append(reasons, capReason)

	proxPoints, proxReason := s.scoreProximity(crew)
	reasons = append(reasons, proxReason)

	breakdown := Breakdown{
		Preference: prefPoints,
		Territory:  terrPoints,
		Skills:     skillPoints,
		Capacity:   capPoints,
		Proximity:  proxPoints,
	}
	score := prefPoints + terrPoints + skillPoints + capPoints + proxPoints

	return Suggestion{
		Crew:           crew,
		Score:          score,
		MatchPercent:   matchPercent(score),
		Reasons:        reasons,
		Breakdown:      breakdown,
		IsPreferred:    isPreferred,
		HasAllSkills:   hasAllSkills,
		IsOverCapacity: overCapacity,
		ShouldAvoid:    shouldAvoid,
	}
}

// matchPercent rounds the score against the 100-point scale, floored at
// zero for avoid-penalized crews.
func matchPercent(score float64) int {
	pct := int(math.Round(score))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
