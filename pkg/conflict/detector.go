package conflict

import (
	"fmt"
	"strings"
	"time"

	"github.com/jordanlanch/crewops/pkg/models"
)

// Type classifies a detected schedule conflict.
type Type string

const (
	TypeDoubleBooking     Type = "double_booking"
	TypeOverCapacity      Type = "over_capacity"
	TypeMissingSkills     Type = "missing_skills"
	TypeBuilderPreference Type = "builder_preference"
	TypeTimeOverlap       Type = "time_overlap"
)

// Severity grades a conflict. Error should block committing, warning
// should be surfaced prominently, info is advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Conflict is one graded finding against a prospective schedule entry.
type Conflict struct {
	Type           Type     `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Detail         string   `json:"detail,omitempty"`
	RelatedEntryID *string  `json:"related_entry_id,omitempty"`
}

// CheckInput describes the prospective schedule entry being validated.
// EntryID is set only when editing an existing entry so it can be excluded
// from comparison against itself.
type CheckInput struct {
	EntryID         *string          `json:"entry_id,omitempty"`
	CrewID          *string          `json:"crew_id,omitempty"`
	SalesRepID      *string          `json:"sales_rep_id,omitempty"`
	Date            string           `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       *string          `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime         *string          `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	FootageEstimate *float64         `json:"footage_estimate,omitempty" validate:"omitempty,gte=0"`
	Type            models.EntryType `json:"type" validate:"required,oneof=job_visit blocked meeting assessment other"`
	JobID           *string          `json:"job_id,omitempty"`
}

// CheckContext carries the commitments the entry is validated against.
//
// ExistingEntries MUST be pre-filtered by the caller to the same calendar
// date as the prospective entry; the detector does not filter by date.
// Passing entries from other dates produces false-positive conflicts.
type CheckContext struct {
	ExistingEntries []models.ScheduleEntry `json:"existing_entries"`
	MaxDailyFootage *float64               `json:"max_daily_footage,omitempty" validate:"omitempty,gt=0"`
	PreferredCrewID *string                `json:"preferred_crew_id,omitempty"`
	AvoidCrewIDs    []string               `json:"avoid_crew_ids,omitempty"`
}

// Detector validates prospective schedule entries. It is pure and
// stateless; absence of optional fields skips the corresponding check
// rather than erroring.
type Detector struct {
	defaultMaxFootage float64
}

// New creates a Detector with the default daily footage limit.
func New() *Detector {
	return &Detector{defaultMaxFootage: models.DefaultMaxDailyFootage}
}

// Detect runs all checks against the existing commitments and returns the
// concatenated findings in a fixed order: double-booking, capacity, time
// overlap, then builder preference.
func (d *Detector) Detect(input CheckInput, ctx CheckContext) []Conflict {
	others := excludeSelf(ctx.ExistingEntries, input.EntryID)

	conflicts := make([]Conflict, 0, 4)
	conflicts = append(conflicts, d.checkDoubleBooking(input, others)...)
	conflicts = append(conflicts, d.checkCapacity(input, ctx, others)...)
	conflicts = append(conflicts, d.checkTimeOverlap(input, others)...)
	conflicts = append(conflicts, d.checkPreference(input, ctx)...)
	return conflicts
}

// checkDoubleBooking flags non-job-visit bookings against a crew that
// already holds blocked or meeting entries that day, and notes repeated
// rep assessments. Multiple job visits per day are governed by capacity,
// not double-booking.
func (d *Detector) checkDoubleBooking(input CheckInput, others []models.ScheduleEntry) []Conflict {
	var conflicts []Conflict

	if input.CrewID != nil && input.Type != models.EntryTypeJobVisit {
		var held []models.ScheduleEntry
		for _, entry := range others {
			if entry.CrewID == nil || *entry.CrewID != *input.CrewID {
				continue
			}
			if entry.Type == models.EntryTypeBlocked || entry.Type == models.EntryTypeMeeting {
				held = append(held, entry)
			}
		}
		if len(held) > 0 {
			labels := make([]string, len(held))
			for i, entry := range held {
				labels[i] = entryLabel(entry)
			}
			related := held[0].ID
			conflicts = append(conflicts, Conflict{
				Type:           TypeDoubleBooking,
				Severity:       SeverityWarning,
				Message:        fmt.Sprintf("Crew already has %d %s this day", len(held), plural(len(held), "blocked/meeting entry", "blocked/meeting entries")),
				Detail:         strings.Join(labels, "; "),
				RelatedEntryID: &related,
			})
		}
	}

	if input.SalesRepID != nil && input.Type == models.EntryTypeAssessment {
		var starts []string
		var related *string
		for _, entry := range others {
			if entry.SalesRepID == nil || *entry.SalesRepID != *input.SalesRepID || entry.Type != models.EntryTypeAssessment {
				continue
			}
			if entry.StartTime != nil {
				starts = append(starts, *entry.StartTime)
			} else {
				starts = append(starts, "unscheduled")
			}
			if related == nil {
				id := entry.ID
				related = &id
			}
		}
		if len(starts) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:           TypeDoubleBooking,
				Severity:       SeverityInfo,
				Message:        fmt.Sprintf("Rep already has %d other %s this day", len(starts), plural(len(starts), "assessment", "assessments")),
				Detail:         "Starting at " + strings.Join(starts, ", "),
				RelatedEntryID: related,
			})
		}
	}

	return conflicts
}

// checkCapacity projects the crew's job-visit footage for the day and
// grades utilization: >150% error, >100% warning, >90% info. Only applies
// to job visits with both a crew and a footage estimate.
func (d *Detector) checkCapacity(input CheckInput, ctx CheckContext, others []models.ScheduleEntry) []Conflict {
	if input.Type != models.EntryTypeJobVisit || input.CrewID == nil || input.FootageEstimate == nil {
		return nil
	}

	var scheduled float64
	for _, entry := range others {
		if entry.CrewID == nil || *entry.CrewID != *input.CrewID {
			continue
		}
		if entry.Type == models.EntryTypeJobVisit && entry.FootageEstimate != nil {
			scheduled += *entry.FootageEstimate
		}
	}

	maxFootage := d.defaultMaxFootage
	if ctx.MaxDailyFootage != nil && *ctx.MaxDailyFootage > 0 {
		maxFootage = *ctx.MaxDailyFootage
	}

	total := scheduled + *input.FootageEstimate
	pct := total / maxFootage * 100

	var severity Severity
	switch {
	case pct > 150:
		severity = SeverityError
	case pct > 100:
		severity = SeverityWarning
	case pct > 90:
		severity = SeverityInfo
	default:
		return nil
	}

	return []Conflict{{
		Type:     TypeOverCapacity,
		Severity: severity,
		Message:  fmt.Sprintf("Crew would be at %.0f%% capacity (%.0f/%.0f LF)", pct, total, maxFootage),
	}}
}

// checkTimeOverlap compares the entry's time window against every other
// timed entry for the same crew or rep. Intervals are half-open, so an
// entry ending exactly when another starts does not conflict.
func (d *Detector) checkTimeOverlap(input CheckInput, others []models.ScheduleEntry) []Conflict {
	if input.StartTime == nil || input.EndTime == nil {
		return nil
	}
	start, ok := parseMinutes(*input.StartTime)
	if !ok {
		return nil
	}
	end, ok := parseMinutes(*input.EndTime)
	if !ok {
		return nil
	}

	var conflicts []Conflict
	for _, entry := range others {
		if entry.StartTime == nil || entry.EndTime == nil {
			continue
		}

		sameCrew := input.CrewID != nil && entry.CrewID != nil && *entry.CrewID == *input.CrewID
		sameRep := input.SalesRepID != nil && entry.SalesRepID != nil && *entry.SalesRepID == *input.SalesRepID
		if !sameCrew && !sameRep {
			continue
		}

		otherStart, ok := parseMinutes(*entry.StartTime)
		if !ok {
			continue
		}
		otherEnd, ok := parseMinutes(*entry.EndTime)
		if !ok {
			continue
		}

		if start < otherEnd && otherStart < end {
			side := "crew"
			if !sameCrew {
				side = "rep"
			}
			id := entry.ID
			conflicts = append(conflicts, Conflict{
				Type:           TypeTimeOverlap,
				Severity:       SeverityError,
				Message:        fmt.Sprintf("Overlaps an existing %s booking from %s to %s", side, *entry.StartTime, *entry.EndTime),
				Detail:         entryLabel(entry),
				RelatedEntryID: &id,
			})
		}
	}

	return conflicts
}

// checkPreference surfaces the builder/community preference as a soft
// signal: a warning for avoid-listed crews and a non-blocking nudge when a
// different crew is preferred.
func (d *Detector) checkPreference(input CheckInput, ctx CheckContext) []Conflict {
	if input.CrewID == nil {
		return nil
	}

	var conflicts []Conflict
	for _, id := range ctx.AvoidCrewIDs {
		if id == *input.CrewID {
			conflicts = append(conflicts, Conflict{
				Type:     TypeBuilderPreference,
				Severity: SeverityWarning,
				Message:  "Crew is marked as avoid for this builder/community",
			})
			break
		}
	}
	if ctx.PreferredCrewID != nil && *ctx.PreferredCrewID != *input.CrewID {
		conflicts = append(conflicts, Conflict{
			Type:     TypeBuilderPreference,
			Severity: SeverityInfo,
			Message:  "A different crew is preferred for this builder/community",
			Detail:   "Preferred crew: " + *ctx.PreferredCrewID,
		})
	}

	return conflicts
}

// HasBlockingConflicts reports whether any conflict is error severity.
func HasBlockingConflicts(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Summarize returns a short count-by-severity string such as
// "1 error, 2 warnings".
func Summarize(conflicts []Conflict) string {
	var errs, warns, infos int
	for _, c := range conflicts {
		switch c.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		case SeverityInfo:
			infos++
		}
	}

	var parts []string
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors")))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", warns, plural(warns, "warning", "warnings")))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", infos, plural(infos, "info note", "info notes")))
	}
	if len(parts) == 0 {
		return "no conflicts"
	}
	return strings.Join(parts, ", ")
}

func excludeSelf(entries []models.ScheduleEntry, entryID *string) []models.ScheduleEntry {
	if entryID == nil {
		return entries
	}
	filtered := make([]models.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == *entryID {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func entryLabel(entry models.ScheduleEntry) string {
	if entry.Title != "" {
		return entry.Title
	}
	return string(entry.Type)
}

func parseMinutes(value string) (int, bool) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
