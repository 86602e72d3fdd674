package suggest

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/crewops/pkg/models"
)

// scorePreference applies the builder/community preference signal.
// Full credit for the preferred crew, a flat penalty for avoid-listed
// crews, and half credit across the board when no preference exists.
func (s *Suggester) scorePreference(crew models.Crew, job JobContext) (float64, Reason, bool, bool) {
	w := s.cfg.Weights.Preference

	switch {
	case job.PreferredCrewID != nil && crew.ID == *job.PreferredCrewID:
		return w, Reason{Kind: ReasonPositive, Label: "Preferred crew for this builder"}, true, false
	case containsID(job.AvoidCrewIDs, crew.ID):
		return s.cfg.AvoidPenalty, Reason{Kind: ReasonWarning, Label: "On the avoid list for this builder/community"}, false, true
	case job.PreferredCrewID == nil:
		return w / 2, Reason{Kind: ReasonNeutral, Label: "No crew preference set for this builder"}, false, false
	default:
		return 0, Reason{Kind: ReasonNeutral, Label: "Another crew is preferred for this builder"}, false, false
	}
}

// scoreTerritory credits the crew's home territory against the job's
// required territory. Crews with no home base count as flexible general
// coverage and keep partial credit.
func (s *Suggester) scoreTerritory(crew models.Crew, job JobContext) (float64, Reason) {
	w := s.cfg.Weights.Territory

	switch {
	case job.TerritoryID == nil:
		return w / 2, Reason{Kind: ReasonNeutral, Label: "No territory requirement for this job"}
	case crew.TerritoryID != nil && *crew.TerritoryID == *job.TerritoryID:
		return w, Reason{Kind: ReasonPositive, Label: "Home territory matches the job"}
	case crew.TerritoryID == nil:
		return w * 0.3, Reason{Kind: ReasonNeutral, Label: "No home territory (general coverage crew)"}
	default:
		return 0, Reason{Kind: ReasonWarning, Label: "Based outside the required territory"}
	}
}

// scoreSkills computes coverage of the job's required skill tags, boosts
// by the average proficiency multiplier over matched tags, and penalizes
// each missing requirement. The legacy product-type label only scores when
// no tags are required; when tags exist it surfaces as a supplementary
// reason without double-crediting. The result is clamped to [0, weight].
func (s *Suggester) scoreSkills(crew models.Crew, job JobContext) (float64, []Reason, bool) {
	w := s.cfg.Weights.Skills
	required := job.RequiredSkillTagIDs

	if len(required) == 0 && job.LegacyProductType == nil {
		return w / 2, []Reason{{Kind: ReasonNeutral, Label: "No specific skills required"}}, true
	}

	crewSkills := make(map[string]models.Proficiency, len(crew.Skills))
	for _, sk := range crew.Skills {
		crewSkills[sk.TagID] = sk.Proficiency
	}

	matched := make([]models.Proficiency, 0, len(required))
	missing := 0
	for _, tag := range required {
		if prof, ok := crewSkills[tag]; ok {
			matched = append(matched, prof)
		} else {
			missing++
		}
	}

	legacyMatched := job.LegacyProductType != nil && containsFold(crew.LegacySkills, *job.LegacyProductType)

	var base float64
	switch {
	case len(required) > 0:
		base = w * float64(len(matched)) / float64(len(required))
	case legacyMatched:
		base = w
	}

	hasExpert := false
	if len(matched) > 0 {
		sum := 0.0
		for _, prof := range matched {
			mult, ok := s.cfg.ProficiencyMultipliers[prof]
			if !ok {
				mult = 1.0
			}
			sum += mult
			if prof == models.ProficiencyExpert {
				hasExpert = true
			}
		}
		base *= sum / float64(len(matched))
	}

	points := clamp(base-float64(missing)*s.cfg.MissingSkillPenalty, 0, w)

	reasons := make([]Reason, 0, 3)
	switch {
	case len(matched) > 0 && hasExpert:
		reasons = append(reasons, Reason{
			Kind:   ReasonPositive,
			Label:  "Has required skills with expert proficiency",
			Detail: fmt.Sprintf("%d/%d required skills", len(matched), len(required)),
		})
	case len(required) > 0 && missing == 0:
		reasons = append(reasons, Reason{
			Kind:  ReasonPositive,
			Label: fmt.Sprintf("Has all %d required skills", len(required)),
		})
	}
	if missing > 0 {
		reasons = append(reasons, Reason{
			Kind:  ReasonWarning,
			Label: fmt.Sprintf("Missing %d of %d required skills", missing, len(required)),
		})
	}
	if job.LegacyProductType != nil {
		if legacyMatched {
			reasons = append(reasons, Reason{
				Kind:  ReasonPositive,
				Label: fmt.Sprintf("Experienced with %s product type", *job.LegacyProductType),
			})
		} else if len(required) == 0 {
			reasons = append(reasons, Reason{
				Kind:  ReasonWarning,
				Label: fmt.Sprintf("No recorded experience with %s product type", *job.LegacyProductType),
			})
		}
	}

	return points, reasons, missing == 0
}

// scoreCapacity projects the crew's utilization if the job were added and
// grades it in tiers. Crews without a capacity snapshot are treated as a
// moderate unknown risk at 70% credit.
func (s *Suggester) scoreCapacity(crew models.Crew, job JobContext) (float64, Reason, bool) {
	w := s.cfg.Weights.Capacity

	if crew.ScheduledFootage == nil {
		return w * 0.7, Reason{Kind: ReasonNeutral, Label: "No capacity data for this date"}, false
	}

	maxFootage := s.cfg.DefaultMaxDailyFootage
	if crew.MaxDailyFootage != nil && *crew.MaxDailyFootage > 0 {
		maxFootage = *crew.MaxDailyFootage
	}

	var jobFootage float64
	if job.FootageEstimate != nil {
		jobFootage = *job.FootageEstimate
	}

	newTotal := *crew.ScheduledFootage + jobFootage
	utilization := newTotal / maxFootage
	pct := utilization * 100

	var points float64
	var reason Reason
	switch {
	case utilization <= 0.8:
		points = w
		reason = Reason{
			Kind:  ReasonPositive,
			Label: fmt.Sprintf("Available (%.0f%% of daily capacity)", pct),
		}
	case utilization <= 1.0:
		points = w * (1 - (utilization-0.8)/0.2*0.3)
		reason = Reason{
			Kind:  ReasonNeutral,
			Label: fmt.Sprintf("Near full capacity (%.0f%%)", pct),
		}
	case utilization <= 1.3:
		points = w * 0.3
		reason = Reason{
			Kind:   ReasonWarning,
			Label:  fmt.Sprintf("Would be over capacity (%.0f%%)", pct),
			Detail: fmt.Sprintf("%.0f/%.0f LF", newTotal, maxFootage),
		}
	default:
		points = w * 0.1
		reason = Reason{
			Kind:   ReasonWarning,
			Label:  fmt.Sprintf("Would be over capacity (%.0f%%)", pct),
			Detail: fmt.Sprintf("%.0f/%.0f LF", newTotal, maxFootage),
		}
	}

	return points, reason, utilization > 1.0
}

// scoreProximity credits the precomputed distance to the job site in
// mileage tiers. Unknown distance earns half credit.
func (s *Suggester) scoreProximity(crew models.Crew) (float64, Reason) {
	w := s.cfg.Weights.Proximity

	if crew.DistanceMiles == nil {
		return w / 2, Reason{Kind: ReasonNeutral, Label: "Distance to job site unknown"}
	}

	miles := *crew.DistanceMiles
	switch {
	case miles <= 10:
		return w, Reason{Kind: ReasonPositive, Label: fmt.Sprintf("Very close to job site (%.0f mi)", miles)}
	case miles <= 20:
		return w * 0.8, Reason{Kind: ReasonPositive, Label: fmt.Sprintf("Close to job site (%.0f mi)", miles)}
	case miles <= 30:
		return w * 0.6, Reason{Kind: ReasonNeutral, Label: fmt.Sprintf("Moderate drive to job site (%.0f mi)", miles)}
	case miles <= 50:
		return w * 0.4, Reason{Kind: ReasonNeutral, Label: fmt.Sprintf("Long drive to job site (%.0f mi)", miles)}
	default:
		return w * 0.2, Reason{Kind: ReasonWarning, Label: fmt.Sprintf("Far from job site (%.0f mi)", miles)}
	}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsFold(labels []string, label string) bool {
	for _, candidate := range labels {
		if strings.EqualFold(candidate, label) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
