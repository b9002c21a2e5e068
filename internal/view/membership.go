package view

import (
	"github.com/johndoniego/erudite/internal/model"
)

// LimitDecision is the outcome of a membership limit check
type LimitDecision int

const (
	Allowed LimitDecision = iota
	LimitExceeded
)

func (d LimitDecision) String() string {
	if d == LimitExceeded {
		return "limit_exceeded"
	}
	return "allowed"
}

// EnforceMembershipLimit reports whether one more community may be joined
// when current is already held. It does not modify current.
func EnforceMembershipLimit(current []string, maxSize int) LimitDecision {
	if len(current) >= maxSize {
		return LimitExceeded
	}
	return Allowed
}

// CheckMembershipSet reports whether a whole membership set fits the limit
func CheckMembershipSet(set []string, maxSize int) LimitDecision {
	if len(set) > maxSize {
		return LimitExceeded
	}
	return Allowed
}

// DisplayedLikes is the like count shown for a post with stored count base
func DisplayedLikes(base int, liked bool) int {
	if liked {
		return base + 1
	}
	return base
}

// MergeCatalog returns the static communities followed by the custom ones.
// A custom community whose id is already taken is dropped.
func MergeCatalog(static, custom []model.Community) []model.Community {
	out := make([]model.Community, 0, len(static)+len(custom))
	seen := make(map[string]bool, len(static)+len(custom))
	for _, c := range static {
		seen[c.ID] = true
		out = append(out, c)
	}
	for _, c := range custom {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.IsCustom = true
		out = append(out, c)
	}
	return out
}

// ResolveJoined looks up each joined id in catalog, preserving the joined
// order. Ids with no matching community are returned in missing.
func ResolveJoined(joined []string, catalog []model.Community) (found []model.Community, missing []string) {
	byID := make(map[string]model.Community, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	found = make([]model.Community, 0, len(joined))
	for _, id := range joined {
		if c, ok := byID[id]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// Contains reports whether id is in ids
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
