package service

import (
	"context"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
	"github.com/johndoniego/erudite/internal/view"
)

// PeopleService handles discovery of people and the user's connections
type PeopleService struct {
	catalog     Catalog
	profiles    *ProfileService
	connections *store.Collection[[]model.Connection]
	now         Clock
}

// PeopleServiceConfig holds configuration for the people service
type PeopleServiceConfig struct {
	Store    *store.Store
	Catalog  Catalog
	Profiles *ProfileService
	Now      Clock
}

// NewPeopleService creates a new people service
func NewPeopleService(cfg PeopleServiceConfig) *PeopleService {
	return &PeopleService{
		catalog:     cfg.Catalog,
		profiles:    cfg.Profiles,
		connections: store.ListOf[model.Connection](cfg.Store, store.KeyConnections),
		now:         clockOrNow(cfg.Now),
	}
}

// DiscoverOptions narrows and orders a people listing
type DiscoverOptions struct {
	Query string
	Sort  string // defaults to best match first
}

// Discover scores every person in the directory against the current profile
// and skills, filters by query and sorts. Ties keep directory order.
func (s *PeopleService) Discover(ctx context.Context, opts DiscoverOptions) []model.PersonMatch {
	user := s.profiles.MatchProfile(ctx)
	connected := s.connectedIDs(ctx)

	people := s.catalog.People()
	ranked := make([]model.PersonMatch, 0, len(people))
	for _, p := range people {
		ranked = append(ranked, s.match(p, user, connected))
	}

	ranked = view.FilterByQuery(ranked, opts.Query)
	sortBy := opts.Sort
	if sortBy == "" {
		sortBy = "match"
	}
	if c, ok := view.ParseSortCriterion(sortBy); ok {
		ranked = view.SortBy(ranked, c, view.PersonKeys)
	}
	return ranked
}

// Get returns one scored person
func (s *PeopleService) Get(ctx context.Context, id string) (model.PersonMatch, error) {
	p, ok := s.catalog.Person(id)
	if !ok {
		return model.PersonMatch{}, ErrPersonNotFound
	}
	return s.match(p, s.profiles.MatchProfile(ctx), s.connectedIDs(ctx)), nil
}

func (s *PeopleService) match(p model.Person, user model.MatchProfile, connected []string) model.PersonMatch {
	return model.PersonMatch{
		Person:      p,
		MatchScore:  view.ComputeMatchScore(p.MatchProfile(), user),
		IsConnected: view.Contains(connected, p.ID),
	}
}

// Connections returns the user's connections in the order they were made
func (s *PeopleService) Connections(ctx context.Context) []model.Connection {
	return s.connections.Read(ctx)
}

// Connect adds a person as a connection. Connecting twice keeps the first record.
func (s *PeopleService) Connect(ctx context.Context, personID string) (model.Connection, error) {
	p, ok := s.catalog.Person(personID)
	if !ok {
		return model.Connection{}, ErrPersonNotFound
	}

	conn := model.Connection{ID: p.ID, Name: p.Name, Avatar: p.Avatar, ConnectedAt: s.now()}
	_, err := s.connections.Mutate(ctx, func(current []model.Connection) ([]model.Connection, error) {
		for _, c := range current {
			if c.ID == p.ID {
				conn = c
				return current, nil
			}
		}
		return append(current, conn), nil
	})
	if err != nil {
		return model.Connection{}, err
	}
	return conn, nil
}

// Disconnect removes a connection; removing an unknown one is a no-op
func (s *PeopleService) Disconnect(ctx context.Context, personID string) error {
	_, err := s.connections.Mutate(ctx, func(current []model.Connection) ([]model.Connection, error) {
		out := make([]model.Connection, 0, len(current))
		for _, c := range current {
			if c.ID != personID {
				out = append(out, c)
			}
		}
		return out, nil
	})
	return err
}

// Act performs the store side of a person action and returns where the UI
// should go next. Messaging or scheduling with someone connects them first;
// viewing a profile changes nothing.
func (s *PeopleService) Act(ctx context.Context, personID string, kind model.IntentKind) (model.Intent, error) {
	if !kind.IsValid() {
		return model.Intent{}, ErrInvalidIntent
	}
	if _, ok := s.catalog.Person(personID); !ok {
		return model.Intent{}, ErrPersonNotFound
	}

	if kind == model.IntentMessage || kind == model.IntentSchedule {
		if _, err := s.Connect(ctx, personID); err != nil {
			return model.Intent{}, err
		}
	}
	return model.Intent{Kind: kind, PersonID: personID}, nil
}

func (s *PeopleService) connectedIDs(ctx context.Context) []string {
	conns := s.connections.Read(ctx)
	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.ID)
	}
	return ids
}
