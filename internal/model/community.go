package model

import (
	"strings"
	"time"
)

// Community is a learning community, either from the static catalog or
// created by the user
type Community struct {
	ID               string    `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Members          int       `json:"members" yaml:"members"`
	Icon             string    `json:"icon,omitempty" yaml:"icon"`
	Topics           []string  `json:"topics" yaml:"topics"`
	Description      string    `json:"description" yaml:"description"`
	Events           int       `json:"events" yaml:"events"`
	Posts            int       `json:"posts" yaml:"posts"`
	CreatedAt        time.Time `json:"createdAt" yaml:"created_at"`
	Category         string    `json:"category" yaml:"category"`
	IsPrivate        bool      `json:"isPrivate" yaml:"is_private"`
	RequiresApproval bool      `json:"requiresApproval" yaml:"requires_approval"`
	IsCustom         bool      `json:"isCustom,omitempty" yaml:"-"`
}

// SearchFields implements view.Searchable
func (c Community) SearchFields() (string, string, []string) {
	return c.Name, c.Description, c.Topics
}

// Community constraints
const (
	MinCommunityNameLength = 3
	MaxCommunityNameLength = 60
	MinCommunityDescLength = 10
	MaxCommunityDescLength = 500
	DefaultMembershipLimit = 7
)

// CreateCommunityRequest represents a request to create a custom community
type CreateCommunityRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Topics           []string `json:"topics"`
	Icon             string   `json:"icon,omitempty"`
	IsPrivate        bool     `json:"isPrivate"`
	RequiresApproval bool     `json:"requiresApproval"`
}

// Validate checks if the create request is valid
func (r *CreateCommunityRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs.Add("name", "Community name is required")
	case len([]rune(name)) < MinCommunityNameLength:
		errs.Add("name", "Community name must be at least 3 characters")
	case len([]rune(name)) > MaxCommunityNameLength:
		errs.Add("name", "Community name must be 60 characters or less")
	case Slugify(name) == "":
		errs.Add("name", "Community name must contain Latin letters or numbers")
	}

	desc := strings.TrimSpace(r.Description)
	switch {
	case desc == "":
		errs.Add("description", "Description is required")
	case len([]rune(desc)) < MinCommunityDescLength:
		errs.Add("description", "Description must be at least 10 characters")
	case len([]rune(desc)) > MaxCommunityDescLength:
		errs.Add("description", "Description must be 500 characters or less")
	}

	if strings.TrimSpace(r.Category) == "" {
		errs.Add("category", "Please select a category")
	}

	if len(CleanList(r.Topics)) == 0 {
		errs.Add("topics", "Add at least one topic")
	}

	return errs.OrNil()
}

// Slugify derives a community id from its name: lowercase ASCII letters and
// digits, every other run of characters collapsed to a single hyphen, no
// leading or trailing hyphen. Non-ASCII letters are dropped.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// CleanList trims every entry and drops blanks and case-insensitive duplicates
func CleanList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k := strings.ToLower(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}
