package model

import (
	"strings"
	"time"
)

// SessionType is the direction of a learning session
type SessionType string

const (
	SessionTeaching SessionType = "teaching"
	SessionLearning SessionType = "learning"
)

// SessionStatus is the lifecycle state of a session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// IsValid returns true if the status is known
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	default:
		return false
	}
}

// Layouts used by the scheduling forms
const (
	SessionDateLayout = "2006-01-02"
	SessionTimeLayout = "15:04"
)

// ScheduledSession is a teaching or learning session with another person.
// Sessions scheduled from any screen share one collection.
type ScheduledSession struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	ParticipantID   string        `json:"participantId"`
	ParticipantName string        `json:"participantName"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	DurationMinutes int           `json:"duration"`
	Location        string        `json:"location,omitempty"`
	Type            SessionType   `json:"type"`
	Status          SessionStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	Source          string        `json:"source,omitempty"` // people, community, profile
	CreatedAt       time.Time     `json:"createdAt"`
}

// StartsAt combines Date and Time in loc; ok is false when either is malformed
func (s ScheduledSession) StartsAt(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(SessionDateLayout+" "+SessionTimeLayout, s.Date+" "+s.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Session constraints
const (
	MaxSessionTitleLength = 100
	MaxSessionDuration    = 8 * 60
)

// ScheduleSessionRequest represents a request to schedule a session
type ScheduleSessionRequest struct {
	Title           string      `json:"title"`
	ParticipantID   string      `json:"participantId"`
	ParticipantName string      `json:"participantName"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	DurationMinutes int         `json:"duration"`
	Location        string      `json:"location,omitempty"`
	Type            SessionType `json:"type"`
	Notes           string      `json:"notes,omitempty"`
	Source          string      `json:"source,omitempty"`
}

// Validate checks if the schedule request is valid
func (r *ScheduleSessionRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs.Add("title", "Session title is required")
	} else if len([]rune(title)) > MaxSessionTitleLength {
		errs.Add("title", "Session title must be 100 characters or less")
	}

	if strings.TrimSpace(r.ParticipantID) == "" && strings.TrimSpace(r.ParticipantName) == "" {
		errs.Add("participant", "Choose who the session is with")
	}

	if r.Date == "" {
		errs.Add("date", "Date is required")
	} else if _, err := time.Parse(SessionDateLayout, r.Date); err != nil {
		errs.Add("date", "Date must be in YYYY-MM-DD format")
	}

	if r.Time == "" {
		errs.Add("time", "Time is required")
	} else if _, err := time.Parse(SessionTimeLayout, r.Time); err != nil {
		errs.Add("time", "Time must be in HH:MM format")
	}

	if r.DurationMinutes <= 0 {
		errs.Add("duration", "Duration must be greater than zero")
	} else if r.DurationMinutes > MaxSessionDuration {
		errs.Add("duration", "Sessions can last at most 8 hours")
	}

	if r.Type != SessionTeaching && r.Type != SessionLearning {
		errs.Add("type", "Choose teaching or learning")
	}

	return errs.OrNil()
}
