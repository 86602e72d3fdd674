package schedule

import (
	"context"
	"fmt"

	"github.com/jordanlanch/crewops/pkg/conflict"
	"github.com/jordanlanch/crewops/pkg/domain"
	"github.com/jordanlanch/crewops/pkg/suggest"
)

// Planner is the orchestration layer the scheduling UI calls. It assembles
// consistent snapshots from the collaborating data sources and runs the
// pure suggestion and conflict engines over them. Callers should re-run
// CheckEntry immediately before committing a chosen assignment to guard
// against races between suggestion and commit.
type Planner struct {
	crews     domain.CrewDirectory
	entries   domain.ScheduleSource
	prefs     domain.PreferenceSource
	suggester *suggest.Suggester
	detector  *conflict.Detector
}

// NewPlanner creates a planner over the given data sources.
func NewPlanner(crews domain.CrewDirectory, entries domain.ScheduleSource, prefs domain.PreferenceSource) *Planner {
	return &Planner{
		crews:     crews,
		entries:   entries,
		prefs:     prefs,
		suggester: suggest.New(),
		detector:  conflict.New(),
	}
}

// Job describes the job a crew is being picked for.
type Job struct {
	ID                  string
	Date                string
	BuilderID           *string
	FootageEstimate     *float64
	RequiredSkillTagIDs []string
	LegacyProductType   *string
	TerritoryID         *string
}

// SuggestionSet is the ranked suggestion list with its derived views.
type SuggestionSet struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
	QuickPicks  []suggest.Suggestion `json:"quick_picks"`
	BestMatch   *suggest.Suggestion  `json:"best_match"`
}

// CheckResult is the conflict check outcome for a prospective entry.
type CheckResult struct {
	Conflicts []conflict.Conflict `json:"conflicts"`
	Blocking  bool                `json:"blocking"`
	Summary   string              `json:"summary"`
}

// SuggestCrews fetches the active crews and builder preferences for the
// job's date and returns ranked suggestions.
func (p *Planner) SuggestCrews(ctx context.Context, job Job) (*SuggestionSet, error) {
	candidates, err := p.crews.ActiveCrews(ctx, job.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crews: %w", err)
	}

	jobCtx := suggest.JobContext{
		Date:                job.Date,
		FootageEstimate:     job.FootageEstimate,
		RequiredSkillTagIDs: job.RequiredSkillTagIDs,
		LegacyProductType:   job.LegacyProductType,
		TerritoryID:         job.TerritoryID,
	}
	if job.BuilderID != nil {
		prefs, err := p.prefs.BuilderPreferences(ctx, *job.BuilderID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch builder preferences: %w", err)
		}
		jobCtx.PreferredCrewID = prefs.PreferredCrewID
		jobCtx.AvoidCrewIDs = prefs.AvoidCrewIDs
	}

	suggestions := p.suggester.Suggest(candidates, jobCtx)
	return &SuggestionSet{
		Suggestions: suggestions,
		QuickPicks:  p.suggester.QuickPicks(suggestions, 0),
		BestMatch:   p.suggester.BestMatch(suggestions),
	}, nil
}

// CheckEntry validates a prospective schedule entry against the existing
// commitments on its date. The detector requires its input entries to be
// pre-filtered to the entry's calendar date; that contract is enforced
// here so data sources returning wider ranges cannot produce
// false-positive conflicts.
func (p *Planner) CheckEntry(ctx context.Context, input conflict.CheckInput, builderID *string) (*CheckResult, error) {
	entries, err := p.entries.EntriesOn(ctx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule entries: %w", err)
	}

	sameDay := entries[:0:0]
	for _, entry := range entries {
		if entry.Date == input.Date {
			sameDay = append(sameDay, entry)
		}
	}

	checkCtx := conflict.CheckContext{ExistingEntries: sameDay}

	if input.CrewID != nil {
		crew, err := p.crews.CrewByID(ctx, *input.CrewID, input.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch crew: %w", err)
		}
		if crew != nil {
			checkCtx.MaxDailyFootage = crew.MaxDailyFootage
		}
	}

	if builderID != nil {
		prefs, err := p.prefs.BuilderPreferences(ctx, *builderID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch builder preferences: %w", err)
		}
		checkCtx.PreferredCrewID = prefs.PreferredCrewID
		checkCtx.AvoidCrewIDs = prefs.AvoidCrewIDs
	}

	conflicts := p.detector.Detect(input, checkCtx)
	return &CheckResult{
		Conflicts: conflicts,
		Blocking:  conflict.HasBlockingConflicts(conflicts),
		Summary:   conflict.Summarize(conflicts),
	}, nil
}
