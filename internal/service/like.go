package service

import (
	"context"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/view"
)

// ToggleLike likes or unlikes a post and returns it as now displayed.
// The stored like count never changes; the displayed count is derived from
// membership in the liked set.
func (s *PostService) ToggleLike(ctx context.Context, scope model.PostScope, postID string) (model.PostView, error) {
	post, err := s.Get(ctx, scope, postID)
	if err != nil {
		return model.PostView{}, err
	}

	liked, err := s.liked.Mutate(ctx, func(current []string) ([]string, error) {
		if view.Contains(current, postID) {
			out := make([]string, 0, len(current))
			for _, id := range current {
				if id != postID {
					out = append(out, id)
				}
			}
			return out, nil
		}
		return append(current, postID), nil
	})
	if err != nil {
		return model.PostView{}, err
	}

	return toView(post.Post, liked, s.savedIDs(ctx)), nil
}

// IsLiked reports whether the user has liked postID
func (s *PostService) IsLiked(ctx context.Context, postID string) bool {
	return view.Contains(s.liked.Read(ctx), postID)
}

// LikedIDs returns the ids of every liked post
func (s *PostService) LikedIDs(ctx context.Context) []string {
	return s.liked.Read(ctx)
}
