package service

import (
	"context"
	"strings"

	"github.com/johndoniego/erudite/internal/media"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
	"github.com/johndoniego/erudite/internal/view"
)

// PostService handles posts, comments and likes under a community or skill
type PostService struct {
	store       *store.Store
	communities *CommunityService
	liked       *store.Collection[[]string]
	saved       *store.Collection[[]model.SavedPost]
	now         Clock
	newID       IDFunc
}

// PostServiceConfig holds configuration for the post service
type PostServiceConfig struct {
	Store       *store.Store
	Communities *CommunityService
	Now         Clock
	NewID       IDFunc
}

// NewPostService creates a new post service
func NewPostService(cfg PostServiceConfig) *PostService {
	return &PostService{
		store:       cfg.Store,
		communities: cfg.Communities,
		liked:       store.ListOf[string](cfg.Store, store.KeyLikedPosts),
		saved:       store.ListOf[model.SavedPost](cfg.Store, store.KeySavedPosts),
		now:         clockOrNow(cfg.Now),
		newID:       idOrUUID(cfg.NewID),
	}
}

// collection returns the post collection for scope, checking that the scope exists
func (s *PostService) collection(ctx context.Context, scope model.PostScope) (*store.Collection[[]model.Post], error) {
	switch scope.Type {
	case model.ScopeCommunity:
		if _, err := s.communities.Get(ctx, scope.ID); err != nil {
			return nil, err
		}
		return store.ListOf[model.Post](s.store, store.CommunityPostsKey(scope.ID)), nil
	case model.ScopeSkill:
		if scope.ID == "" || model.Slugify(scope.ID) != scope.ID {
			return nil, ErrInvalidScope
		}
		return store.ListOf[model.Post](s.store, store.SkillPostsKey(scope.ID)), nil
	default:
		return nil, ErrInvalidScope
	}
}

// SourceName returns the display name of the community or skill owning scope
func (s *PostService) SourceName(ctx context.Context, scope model.PostScope) string {
	if scope.Type == model.ScopeCommunity {
		if c, err := s.communities.Get(ctx, scope.ID); err == nil {
			return c.Name
		}
	}
	return scope.ID
}

// List returns the posts under scope, newest first, matching query
func (s *PostService) List(ctx context.Context, scope model.PostScope, query string) ([]model.PostView, error) {
	posts, err := s.collection(ctx, scope)
	if err != nil {
		return nil, err
	}
	liked := s.liked.Read(ctx)
	saved := s.savedIDs(ctx)

	matching := view.FilterByQuery(posts.Read(ctx), query)
	out := make([]model.PostView, 0, len(matching))
	for _, p := range matching {
		out = append(out, toView(p, liked, saved))
	}
	return out, nil
}

// Get returns one post under scope
func (s *PostService) Get(ctx context.Context, scope model.PostScope, postID string) (model.PostView, error) {
	posts, err := s.collection(ctx, scope)
	if err != nil {
		return model.PostView{}, err
	}
	for _, p := range posts.Read(ctx) {
		if p.ID == postID {
			return toView(p, s.liked.Read(ctx), s.savedIDs(ctx)), nil
		}
	}
	return model.PostView{}, ErrPostNotFound
}

// Create validates req and adds a post at the top of scope. req.Image, when
// set, must already be a data reference produced by the media package.
func (s *PostService) Create(ctx context.Context, scope model.PostScope, req *model.CreatePostRequest) (model.Post, error) {
	errs := req.Validate()
	if req.Image != "" && !media.IsDataRef(req.Image) {
		if errs == nil {
			errs = model.ValidationErrors{}
		}
		errs.Add("image", "Attach a PNG, JPEG, GIF or WebP image")
	}
	if errs != nil {
		return model.Post{}, errs
	}

	posts, err := s.collection(ctx, scope)
	if err != nil {
		return model.Post{}, err
	}

	post := model.Post{
		ID:        s.newID(),
		Author:    authorOrDefault(req.Author),
		Content:   strings.TrimSpace(req.Content),
		Image:     req.Image,
		Tags:      model.CleanList(req.Tags),
		Timestamp: s.now(),
		Comments:  []model.Comment{},
	}
	_, err = posts.Mutate(ctx, func(current []model.Post) ([]model.Post, error) {
		return append([]model.Post{post}, current...), nil
	})
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// Delete removes a post. Only its author may delete it.
func (s *PostService) Delete(ctx context.Context, scope model.PostScope, postID, author string) error {
	posts, err := s.collection(ctx, scope)
	if err != nil {
		return err
	}
	author = authorOrDefault(author)

	_, err = posts.Mutate(ctx, func(current []model.Post) ([]model.Post, error) {
		for i, p := range current {
			if p.ID != postID {
				continue
			}
			if p.Author != author {
				return current, ErrNotPostAuthor
			}
			out := make([]model.Post, 0, len(current)-1)
			out = append(out, current[:i]...)
			return append(out, current[i+1:]...), nil
		}
		return current, ErrPostNotFound
	})
	return err
}

// Comment appends a comment to a post
func (s *PostService) Comment(ctx context.Context, scope model.PostScope, postID string, req *model.CreateCommentRequest) (model.Comment, error) {
	if errs := req.Validate(); errs != nil {
		return model.Comment{}, errs
	}
	posts, err := s.collection(ctx, scope)
	if err != nil {
		return model.Comment{}, err
	}

	comment := model.Comment{
		ID:        s.newID(),
		Author:    authorOrDefault(req.Author),
		Content:   strings.TrimSpace(req.Content),
		Timestamp: s.now(),
	}
	_, err = posts.Mutate(ctx, func(current []model.Post) ([]model.Post, error) {
		for i := range current {
			if current[i].ID == postID {
				current[i].Comments = append(current[i].Comments, comment)
				return current, nil
			}
		}
		return current, ErrPostNotFound
	})
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *PostService) savedIDs(ctx context.Context) []string {
	saved := s.saved.Read(ctx)
	ids := make([]string, 0, len(saved))
	for _, sp := range saved {
		ids = append(ids, sp.ID)
	}
	return ids
}

func toView(p model.Post, liked, saved []string) model.PostView {
	isLiked := view.Contains(liked, p.ID)
	return model.PostView{
		Post:           p,
		DisplayedLikes: view.DisplayedLikes(p.Likes, isLiked),
		Liked:          isLiked,
		Saved:          view.Contains(saved, p.ID),
	}
}

func authorOrDefault(author string) string {
	if a := strings.TrimSpace(author); a != "" {
		return a
	}
	return model.DefaultAuthor
}
