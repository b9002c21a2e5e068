package service

import (
	"context"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
	"github.com/johndoniego/erudite/internal/view"
)

// SavedService manages bookmarked post snapshots. At most one record exists
// per post id.
type SavedService struct {
	posts *PostService
	saved *store.Collection[[]model.SavedPost]
	now   Clock
}

// SavedServiceConfig holds configuration for the saved service
type SavedServiceConfig struct {
	Store *store.Store
	Posts *PostService
	Now   Clock
}

// NewSavedService creates a new saved service
func NewSavedService(cfg SavedServiceConfig) *SavedService {
	return &SavedService{
		posts: cfg.Posts,
		saved: store.ListOf[model.SavedPost](cfg.Store, store.KeySavedPosts),
		now:   clockOrNow(cfg.Now),
	}
}

// Save records a snapshot of the post. Saving an already saved post is a
// no-op that returns the existing record.
func (s *SavedService) Save(ctx context.Context, scope model.PostScope, postID string) (model.SavedPost, error) {
	post, err := s.posts.Get(ctx, scope, postID)
	if err != nil {
		return model.SavedPost{}, err
	}
	snapshot := model.SnapshotPost(post.Post, scope, s.posts.SourceName(ctx, scope), s.now())
	snapshot.Likes = post.DisplayedLikes

	var record model.SavedPost
	_, err = s.saved.Mutate(ctx, func(current []model.SavedPost) ([]model.SavedPost, error) {
		for _, sp := range current {
			if sp.ID == postID {
				record = sp
				return current, nil
			}
		}
		record = snapshot
		return append(current, snapshot), nil
	})
	if err != nil {
		return model.SavedPost{}, err
	}
	return record, nil
}

// Unsave removes the record for postID. Unsaving a post that was never saved
// is a no-op.
func (s *SavedService) Unsave(ctx context.Context, postID string) error {
	_, err := s.saved.Mutate(ctx, func(current []model.SavedPost) ([]model.SavedPost, error) {
		out := make([]model.SavedPost, 0, len(current))
		for _, sp := range current {
			if sp.ID != postID {
				out = append(out, sp)
			}
		}
		return out, nil
	})
	return err
}

// Toggle saves the post if it is not saved and unsaves it otherwise.
// It returns whether the post is saved afterwards.
func (s *SavedService) Toggle(ctx context.Context, scope model.PostScope, postID string) (bool, error) {
	if s.IsSaved(ctx, postID) {
		return false, s.Unsave(ctx, postID)
	}
	if _, err := s.Save(ctx, scope, postID); err != nil {
		return false, err
	}
	return true, nil
}

// IsSaved reports whether postID has a saved record
func (s *SavedService) IsSaved(ctx context.Context, postID string) bool {
	for _, sp := range s.saved.Read(ctx) {
		if sp.ID == postID {
			return true
		}
	}
	return false
}

// List returns saved posts matching query, most recently saved first
func (s *SavedService) List(ctx context.Context, query string) []model.SavedPost {
	c, _ := view.ParseSortCriterion("recent")
	return view.SortBy(view.FilterByQuery(s.saved.Read(ctx), query), c, view.SavedPostKeys)
}
