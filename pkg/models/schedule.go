package models

// EntryType classifies a schedule entry.
type EntryType string

const (
	EntryTypeJobVisit   EntryType = "job_visit"
	EntryTypeBlocked    EntryType = "blocked"
	EntryTypeMeeting    EntryType = "meeting"
	EntryTypeAssessment EntryType = "assessment"
	EntryTypeOther      EntryType = "other"
)

// ScheduleEntry is a read-only snapshot of a placed commitment for a crew
// or sales rep on a date. Dates are "2006-01-02", times "15:04".
type ScheduleEntry struct {
	ID              string    `json:"id"`
	Title           string    `json:"title,omitempty"`
	CrewID          *string   `json:"crew_id,omitempty"`
	SalesRepID      *string   `json:"sales_rep_id,omitempty"`
	Date            string    `json:"date"`
	StartTime       *string   `json:"start_time,omitempty"`
	EndTime         *string   `json:"end_time,omitempty"`
	FootageEstimate *float64  `json:"footage_estimate,omitempty"`
	Type            EntryType `json:"type"`
	JobID           *string   `json:"job_id,omitempty"`
}
