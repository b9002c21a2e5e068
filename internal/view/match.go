package view

import (
	"math"
	"strings"

	"github.com/johndoniego/erudite/internal/model"
)

// Match weights per shared item
const (
	WeightTeachMatch   = 15 // candidate teaches what the user wants to learn
	WeightLearnMatch   = 15 // candidate wants to learn what the user teaches
	WeightInterest     = 10
	WeightLocation     = 20 // flat
	WeightAvailability = 10
)

// ComputeMatchScore rates candidate against user on a 0..100 scale.
//
// Each category earns weight × shared items. The maximum is computed per
// candidate as weight × max(user list length, candidate list length), so
// scores are relative to each candidate's own list sizes and are not strictly
// comparable across candidates.
func ComputeMatchScore(candidate, user model.MatchProfile) int {
	var earned, possible float64

	add := func(weight float64, userItems, candidateItems []string) {
		u := normalize(userItems)
		c := normalize(candidateItems)
		possible += weight * float64(max(len(u), len(c)))
		earned += weight * float64(overlap(u, c))
	}

	add(WeightTeachMatch, user.SkillsToLearn, candidate.SkillsToTeach)
	add(WeightLearnMatch, user.SkillsToTeach, candidate.SkillsToLearn)
	add(WeightInterest, user.Interests, candidate.Interests)
	add(WeightAvailability, user.Availability, candidate.Availability)

	userLoc := fold(user.Location)
	candLoc := fold(candidate.Location)
	if userLoc != "" || candLoc != "" {
		possible += WeightLocation
		if userLoc == candLoc {
			earned += WeightLocation
		}
	}

	if possible == 0 {
		return 0
	}

	score := int(math.Round(100 * earned / possible))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// normalize trims, lowercases and de-duplicates items
func normalize(items []string) []string {
	cleaned := model.CleanList(items)
	for i, item := range cleaned {
		cleaned[i] = fold(item)
	}
	return cleaned
}

// overlap counts the user items present in candidate, each at most once
func overlap(user, candidate []string) int {
	set := make(map[string]bool, len(candidate))
	for _, c := range candidate {
		set[c] = true
	}
	n := 0
	for _, u := range user {
		if set[u] {
			n++
		}
	}
	return n
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
