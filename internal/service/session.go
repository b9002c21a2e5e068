package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// SessionService manages scheduled sessions. Sessions scheduled from the
// people directory, a community or a profile all share one collection.
type SessionService struct {
	sessions *store.Collection[[]model.ScheduledSession]
	now      Clock
	newID    IDFunc
	loc      *time.Location
}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	Store    *store.Store
	Now      Clock
	NewID    IDFunc
	Location *time.Location // zone session dates and times are written in
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &SessionService{
		sessions: store.ListOf[model.ScheduledSession](cfg.Store, store.KeyScheduledSessions),
		now:      clockOrNow(cfg.Now),
		newID:    idOrUUID(cfg.NewID),
		loc:      loc,
	}
}

// Schedule validates req and appends a new scheduled session
func (s *SessionService) Schedule(ctx context.Context, req *model.ScheduleSessionRequest) (model.ScheduledSession, error) {
	if errs := req.Validate(); errs != nil {
		return model.ScheduledSession{}, errs
	}

	session := model.ScheduledSession{
		ID:              s.newID(),
		Title:           strings.TrimSpace(req.Title),
		ParticipantID:   strings.TrimSpace(req.ParticipantID),
		ParticipantName: strings.TrimSpace(req.ParticipantName),
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Location:        strings.TrimSpace(req.Location),
		Type:            req.Type,
		Status:          model.SessionScheduled,
		Notes:           strings.TrimSpace(req.Notes),
		Source:          req.Source,
		CreatedAt:       s.now(),
	}
	_, err := s.sessions.Mutate(ctx, func(current []model.ScheduledSession) ([]model.ScheduledSession, error) {
		return append(current, session), nil
	})
	if err != nil {
		return model.ScheduledSession{}, err
	}
	return session, nil
}

// List returns every session, optionally only those with status
func (s *SessionService) List(ctx context.Context, status model.SessionStatus) []model.ScheduledSession {
	all := s.sessions.Read(ctx)
	if status == "" {
		return all
	}
	out := make([]model.ScheduledSession, 0, len(all))
	for _, sess := range all {
		if sess.Status == status {
			out = append(out, sess)
		}
	}
	return out
}

// Get returns a session by id
func (s *SessionService) Get(ctx context.Context, id string) (model.ScheduledSession, error) {
	for _, sess := range s.sessions.Read(ctx) {
		if sess.ID == id {
			return sess, nil
		}
	}
	return model.ScheduledSession{}, ErrSessionNotFound
}

// UpdateStatus moves a session to status
func (s *SessionService) UpdateStatus(ctx context.Context, id string, status model.SessionStatus) (model.ScheduledSession, error) {
	if !status.IsValid() {
		return model.ScheduledSession{}, ErrInvalidStatus
	}

	var updated model.ScheduledSession
	_, err := s.sessions.Mutate(ctx, func(current []model.ScheduledSession) ([]model.ScheduledSession, error) {
		for i := range current {
			if current[i].ID == id {
				current[i].Status = status
				updated = current[i]
				return current, nil
			}
		}
		return current, ErrSessionNotFound
	})
	if err != nil {
		return model.ScheduledSession{}, err
	}
	return updated, nil
}

// Cancel marks a session cancelled
func (s *SessionService) Cancel(ctx context.Context, id string) (model.ScheduledSession, error) {
	return s.UpdateStatus(ctx, id, model.SessionCancelled)
}

// Complete marks a session completed
func (s *SessionService) Complete(ctx context.Context, id string) (model.ScheduledSession, error) {
	return s.UpdateStatus(ctx, id, model.SessionCompleted)
}

// Upcoming returns scheduled sessions that have not started yet, soonest
// first. Sessions with an unreadable date or time are left out.
func (s *SessionService) Upcoming(ctx context.Context) []model.ScheduledSession {
	now := s.now()

	type timed struct {
		session model.ScheduledSession
		at      time.Time
	}
	var upcoming []timed
	for _, sess := range s.sessions.Read(ctx) {
		if sess.Status != model.SessionScheduled {
			continue
		}
		at, ok := sess.StartsAt(s.loc)
		if !ok || at.Before(now) {
			continue
		}
		upcoming = append(upcoming, timed{session: sess, at: at})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})

	out := make([]model.ScheduledSession, 0, len(upcoming))
	for _, u := range upcoming {
		out = append(out, u.session)
	}
	return out
}
