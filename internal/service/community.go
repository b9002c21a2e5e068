package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
	"github.com/johndoniego/erudite/internal/view"
)

// CommunityService handles community listing, membership and creation
type CommunityService struct {
	catalog Catalog
	joined  *store.Collection[[]string]
	custom  *store.Collection[[]model.Community]
	limit   int
	now     Clock
}

// CommunityServiceConfig holds configuration for the community service
type CommunityServiceConfig struct {
	Store           *store.Store
	Catalog         Catalog
	MembershipLimit int
	Now             Clock
}

// NewCommunityService creates a new community service
func NewCommunityService(cfg CommunityServiceConfig) *CommunityService {
	limit := cfg.MembershipLimit
	if limit <= 0 {
		limit = model.DefaultMembershipLimit
	}
	return &CommunityService{
		catalog: cfg.Catalog,
		joined:  store.ListOf[string](cfg.Store, store.KeyJoinedCommunities),
		custom:  store.ListOf[model.Community](cfg.Store, store.KeyCustomCommunities),
		limit:   limit,
		now:     clockOrNow(cfg.Now),
	}
}

// Limit returns the maximum number of joined communities
func (s *CommunityService) Limit() int {
	return s.limit
}

// All returns the static catalog followed by the user's custom communities
func (s *CommunityService) All(ctx context.Context) []model.Community {
	return view.MergeCatalog(s.catalog.Communities(), s.custom.Read(ctx))
}

// ListOptions narrows and orders a community listing
type ListOptions struct {
	Query string
	Sort  string
}

// List returns the merged catalog filtered by query and ordered by sort.
// An unknown sort keeps catalog order.
func (s *CommunityService) List(ctx context.Context, opts ListOptions) []model.Community {
	out := view.FilterByQuery(s.All(ctx), opts.Query)
	if c, ok := view.ParseSortCriterion(opts.Sort); ok {
		out = view.SortBy(out, c, view.CommunityKeys)
	}
	return out
}

// Get returns a community from the merged catalog
func (s *CommunityService) Get(ctx context.Context, id string) (model.Community, error) {
	for _, c := range s.All(ctx) {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Community{}, ErrCommunityNotFound
}

// JoinedIDs returns the joined community ids in join order
func (s *CommunityService) JoinedIDs(ctx context.Context) []string {
	return s.joined.Read(ctx)
}

// Joined resolves the joined ids against the merged catalog. Ids that no
// longer resolve are skipped.
func (s *CommunityService) Joined(ctx context.Context) []model.Community {
	found, _ := view.ResolveJoined(s.joined.Read(ctx), s.All(ctx))
	return found
}

// IsJoined reports whether the user has joined id
func (s *CommunityService) IsJoined(ctx context.Context, id string) bool {
	return view.Contains(s.joined.Read(ctx), id)
}

// Join adds id to the membership set. Joining an already joined community is
// a no-op. When the set is full a *LimitError is returned and nothing changes.
func (s *CommunityService) Join(ctx context.Context, id string) ([]string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.joined.Mutate(ctx, func(current []string) ([]string, error) {
		if view.Contains(current, id) {
			return current, nil
		}
		if view.EnforceMembershipLimit(current, s.limit) == view.LimitExceeded {
			return current, &LimitError{Limit: s.limit, Current: len(current)}
		}
		return append(current, id), nil
	})
}

// Leave removes id from the membership set. Leaving a community that was not
// joined is a no-op. Unknown ids are accepted so dangling entries can be cleared.
func (s *CommunityService) Leave(ctx context.Context, id string) ([]string, error) {
	return s.joined.Mutate(ctx, func(current []string) ([]string, error) {
		out := make([]string, 0, len(current))
		for _, v := range current {
			if v != id {
				out = append(out, v)
			}
		}
		return out, nil
	})
}

// Create validates req and appends a custom community whose id is the
// slugified name. An id already used by the catalog or by another custom
// community is rejected with a name field error.
func (s *CommunityService) Create(ctx context.Context, req *model.CreateCommunityRequest) (model.Community, error) {
	if errs := req.Validate(); errs != nil {
		return model.Community{}, errs
	}

	name := strings.TrimSpace(req.Name)
	community := model.Community{
		ID:               model.Slugify(name),
		Name:             name,
		Members:          1,
		Icon:             req.Icon,
		Topics:           model.CleanList(req.Topics),
		Description:      strings.TrimSpace(req.Description),
		CreatedAt:        s.now(),
		Category:         strings.TrimSpace(req.Category),
		IsPrivate:        req.IsPrivate,
		RequiresApproval: req.RequiresApproval,
		IsCustom:         true,
	}

	if _, taken := s.catalog.Community(community.ID); taken {
		return model.Community{}, duplicateName(community.ID)
	}

	_, err := s.custom.Mutate(ctx, func(current []model.Community) ([]model.Community, error) {
		for _, c := range current {
			if c.ID == community.ID {
				return current, duplicateName(community.ID)
			}
		}
		return append(current, community), nil
	})
	if err != nil {
		return model.Community{}, err
	}
	return community, nil
}

func duplicateName(id string) error {
	return fmt.Errorf("%w: %q: %w", ErrDuplicateIdentifier, id, model.ValidationErrors{
		"name": "A community with this name already exists",
	})
}
