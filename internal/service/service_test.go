package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/johndoniego/erudite/internal/catalog"
	"github.com/johndoniego/erudite/internal/testing/testdb"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// services wires every service over one isolated store
type services struct {
	tdb         *testdb.TestDB
	communities *CommunityService
	posts       *PostService
	saved       *SavedService
	sessions    *SessionService
	profiles    *ProfileService
	people      *PeopleService
}

func newServices(t *testing.T) *services {
	t.Helper()
	return newServicesOn(t, testdb.New(t))
}

func newServicesOn(t *testing.T, tdb *testdb.TestDB) *services {
	t.Helper()

	cat := catalog.MustLoad()
	now := func() time.Time { return testNow }
	var seq atomic.Int64
	newID := func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }

	communities := NewCommunityService(CommunityServiceConfig{Store: tdb.Store, Catalog: cat, Now: now})
	posts := NewPostService(PostServiceConfig{Store: tdb.Store, Communities: communities, Now: now, NewID: newID})
	profiles := NewProfileService(ProfileServiceConfig{Store: tdb.Store, Now: now})

	return &services{
		tdb:         tdb,
		communities: communities,
		posts:       posts,
		saved:       NewSavedService(SavedServiceConfig{Store: tdb.Store, Posts: posts, Now: now}),
		sessions:    NewSessionService(SessionServiceConfig{Store: tdb.Store, Now: now, NewID: newID, Location: time.UTC}),
		profiles:    profiles,
		people:      NewPeopleService(PeopleServiceConfig{Store: tdb.Store, Catalog: cat, Profiles: profiles, Now: now}),
	}
}
