package model

import (
	"strings"
	"time"
)

// ScopeType identifies which kind of collection owns a post
type ScopeType string

const (
	ScopeCommunity ScopeType = "community"
	ScopeSkill     ScopeType = "skill"
)

// IsValid returns true if the scope type is known
func (s ScopeType) IsValid() bool {
	return s == ScopeCommunity || s == ScopeSkill
}

// PostScope names the community or skill a post lives under
type PostScope struct {
	Type ScopeType `json:"type"`
	ID   string    `json:"id"`
}

// Post is a community- or skill-scoped post
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"` // data: reference
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// SearchFields implements view.Searchable
func (p Post) SearchFields() (string, string, []string) {
	return p.Author, p.Content, p.Tags
}

// Comment is a reply on a post
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Post constraints
const (
	MaxPostContentLength    = 2000
	MaxCommentContentLength = 500
	MaxPostTags             = 10
	DefaultAuthor           = "You"
)

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Author  string   `json:"author,omitempty"`
	Content string   `json:"content"`
	Image   string   `json:"image,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreatePostRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	content := strings.TrimSpace(r.Content)
	if content == "" && r.Image == "" {
		errs.Add("content", "Write something or attach an image")
	} else if len([]rune(content)) > MaxPostContentLength {
		errs.Add("content", "Post must be 2000 characters or less")
	}
	if len(CleanList(r.Tags)) > MaxPostTags {
		errs.Add("tags", "Use at most 10 tags")
	}

	return errs.OrNil()
}

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	Author  string `json:"author,omitempty"`
	Content string `json:"content"`
}

// Validate checks if the comment request is valid
func (r *CreateCommentRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	content := strings.TrimSpace(r.Content)
	if content == "" {
		errs.Add("content", "Comment cannot be empty")
	} else if len([]rune(content)) > MaxCommentContentLength {
		errs.Add("content", "Comment must be 500 characters or less")
	}

	return errs.OrNil()
}

// SavedPost is a denormalised snapshot of a post the user bookmarked.
// At most one record exists per post id.
type SavedPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	SourceName string    `json:"sourceName"`
	SourceID   string    `json:"sourceId"`
	SourceType ScopeType `json:"sourceType"`
	SavedAt    time.Time `json:"savedAt"`
}

// SearchFields implements view.Searchable
func (s SavedPost) SearchFields() (string, string, []string) {
	return s.Title, s.Content, []string{s.Author, s.SourceName}
}

const savedTitleLength = 60

// SnapshotPost builds the saved record for post as it appears under sourceName
func SnapshotPost(post Post, scope PostScope, sourceName string, savedAt time.Time) SavedPost {
	return SavedPost{
		ID:         post.ID,
		Title:      titleFrom(post.Content),
		Content:    post.Content,
		Author:     post.Author,
		Likes:      post.Likes,
		Comments:   len(post.Comments),
		SourceName: sourceName,
		SourceID:   scope.ID,
		SourceType: scope.Type,
		SavedAt:    savedAt,
	}
}

func titleFrom(content string) string {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(content), "\n", 2)[0])
	runes := []rune(line)
	if len(runes) <= savedTitleLength {
		return line
	}
	return strings.TrimSpace(string(runes[:savedTitleLength])) + "…"
}

// PostView is a post as displayed to the user
type PostView struct {
	Post
	DisplayedLikes int  `json:"displayedLikes"`
	Liked          bool `json:"liked"`
	Saved          bool `json:"saved"`
}
