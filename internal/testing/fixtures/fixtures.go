// Package fixtures provides test data factories for collection stores.
//
// Each factory method writes a record with sensible defaults while allowing
// customization via option functions, and returns the stored value.
//
// Usage:
//
//	f := fixtures.New(tdb.Store)
//	community := f.CreateCommunity(t)
//	post := f.CreatePost(t, model.PostScope{Type: model.ScopeCommunity, ID: community.ID})
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// Factory creates test records in a store
type Factory struct {
	store *store.Store
}

// New creates a new fixture factory
func New(s *store.Store) *Factory {
	return &Factory{store: s}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Now is the fixed time used for fixture timestamps
var Now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func write[T any](t *testing.T, c *store.Collection[[]T], item T) {
	t.Helper()
	_, err := c.Mutate(context.Background(), func(current []T) ([]T, error) {
		return append(current, item), nil
	})
	if err != nil {
		t.Fatalf("fixtures: failed to write %s: %v", c.Key(), err)
	}
}

// ============================================================================
// Community Fixtures
// ============================================================================

// CreateCommunity appends a custom community
func (f *Factory) CreateCommunity(t *testing.T, opts ...func(*model.Community)) model.Community {
	t.Helper()

	name := fmt.Sprintf("Community %s", randomID())
	c := model.Community{
		ID:          model.Slugify(name),
		Name:        name,
		Members:     1,
		Topics:      []string{"testing"},
		Description: "A community created for tests",
		CreatedAt:   Now,
		Category:    "Technology",
		IsCustom:    true,
	}
	for _, fn := range opts {
		fn(&c)
	}

	write(t, store.ListOf[model.Community](f.store, store.KeyCustomCommunities), c)
	return c
}

// Join writes ids as the membership set, replacing what was there
func (f *Factory) Join(t *testing.T, ids ...string) {
	t.Helper()
	if err := store.ListOf[string](f.store, store.KeyJoinedCommunities).Write(context.Background(), ids); err != nil {
		t.Fatalf("fixtures: failed to write joined communities: %v", err)
	}
}

// ============================================================================
// Post Fixtures
// ============================================================================

// CreatePost appends a post under scope
func (f *Factory) CreatePost(t *testing.T, scope model.PostScope, opts ...func(*model.Post)) model.Post {
	t.Helper()

	p := model.Post{
		ID:        randomID(),
		Author:    model.DefaultAuthor,
		Content:   "Fixture post " + randomID(),
		Tags:      []string{},
		Timestamp: Now,
		Comments:  []model.Comment{},
	}
	for _, fn := range opts {
		fn(&p)
	}

	key := store.CommunityPostsKey(scope.ID)
	if scope.Type == model.ScopeSkill {
		key = store.SkillPostsKey(scope.ID)
	}
	write(t, store.ListOf[model.Post](f.store, key), p)
	return p
}

// ============================================================================
// Session Fixtures
// ============================================================================

// CreateSession appends a scheduled session
func (f *Factory) CreateSession(t *testing.T, opts ...func(*model.ScheduledSession)) model.ScheduledSession {
	t.Helper()

	s := model.ScheduledSession{
		ID:              randomID(),
		Title:           "Fixture session",
		ParticipantID:   "sarah-chen",
		ParticipantName: "Sarah Chen",
		Date:            Now.AddDate(0, 0, 7).Format(model.SessionDateLayout),
		Time:            "18:00",
		DurationMinutes: 60,
		Type:            model.SessionLearning,
		Status:          model.SessionScheduled,
		CreatedAt:       Now,
	}
	for _, fn := range opts {
		fn(&s)
	}

	write(t, store.ListOf[model.ScheduledSession](f.store, store.KeyScheduledSessions), s)
	return s
}

// ============================================================================
// Profile Fixtures
// ============================================================================

// SaveProfile overwrites the profile
func (f *Factory) SaveProfile(t *testing.T, opts ...func(*model.Profile)) model.Profile {
	t.Helper()

	p := model.Profile{
		Name:         "Test User",
		Bio:          "Here for the tests",
		Location:     "San Francisco, CA",
		Interests:    []string{"Hiking"},
		Availability: []string{"Weekends"},
		UpdatedAt:    Now,
	}
	for _, fn := range opts {
		fn(&p)
	}

	if err := store.RecordOf[model.Profile](f.store, store.KeyProfile).Write(context.Background(), p); err != nil {
		t.Fatalf("fixtures: failed to write profile: %v", err)
	}
	return p
}

// AddSkills appends skills to the teach or learn collection
func (f *Factory) AddSkills(t *testing.T, kind model.SkillKind, skills ...model.Skill) {
	t.Helper()

	key := store.KeyTeachSkills
	if kind == model.SkillsToLearn {
		key = store.KeyLearnSkills
	}
	c := store.ListOf[model.Skill](f.store, key)
	for _, s := range skills {
		write(t, c, s)
	}
}
