package domain

import (
	"context"
	"time"

	"github.com/jordanlanch/crewops/pkg/models"
)

// CrewDirectory provides crew snapshots for a scheduling date. Implemented
// by the system of record, consumed by the scheduling engine.
type CrewDirectory interface {
	// ActiveCrews returns candidate crews with skills, territory, and the
	// capacity snapshot for the given date ("2006-01-02").
	ActiveCrews(ctx context.Context, date string) ([]models.Crew, error)

	// CrewByID returns one crew's snapshot for the date, or nil when the
	// crew does not exist.
	CrewByID(ctx context.Context, id, date string) (*models.Crew, error)
}

// ScheduleSource provides existing schedule entries.
type ScheduleSource interface {
	// EntriesOn returns every schedule entry on the given calendar date.
	EntriesOn(ctx context.Context, date string) ([]models.ScheduleEntry, error)
}

// BuilderPreferences is a builder or community's soft crew preference.
type BuilderPreferences struct {
	PreferredCrewID *string
	AvoidCrewIDs    []string
}

// PreferenceSource provides builder/community crew preferences.
type PreferenceSource interface {
	BuilderPreferences(ctx context.Context, builderID string) (BuilderPreferences, error)
}

// CacheRepository defines caching operations.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
