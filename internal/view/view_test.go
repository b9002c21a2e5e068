package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoniego/erudite/internal/model"
)

// ============================================================================
// ComputeMatchScore Tests
// ============================================================================

func TestComputeMatchScore(t *testing.T) {
	t.Parallel()

	user := model.MatchProfile{
		SkillsToTeach: []string{"Go", "SQL"},
		SkillsToLearn: []string{"Rust", "Design"},
		Interests:     []string{"Hiking"},
		Location:      "Lisbon",
		Availability:  []string{"Evenings", "Weekends"},
	}

	tests := []struct {
		name      string
		candidate model.MatchProfile
		user      model.MatchProfile
		want      int
	}{
		{
			name: "perfect complement",
			candidate: model.MatchProfile{
				SkillsToTeach: []string{"rust", " design "},
				SkillsToLearn: []string{"GO", "sql"},
				Interests:     []string{"hiking"},
				Location:      "lisbon",
				Availability:  []string{"weekends", "evenings"},
			},
			user: user,
			want: 100,
		},
		{
			name: "nothing shared",
			candidate: model.MatchProfile{
				SkillsToTeach: []string{"Piano"},
				SkillsToLearn: []string{"Spanish"},
				Interests:     []string{"Chess"},
				Location:      "Porto",
				Availability:  []string{"Mornings"},
			},
			user: user,
			want: 0,
		},
		{
			name:      "half the wanted skills",
			candidate: model.MatchProfile{SkillsToTeach: []string{"Rust"}},
			user:      model.MatchProfile{SkillsToLearn: []string{"Rust", "Design"}},
			want:      50,
		},
		{
			name:      "location on one side only counts in denominator",
			candidate: model.MatchProfile{SkillsToTeach: []string{"Rust"}},
			user:      model.MatchProfile{SkillsToLearn: []string{"Rust"}, Location: "Lisbon"},
			want:      43, // 15 / 35
		},
		{
			name:      "duplicate user items count once",
			candidate: model.MatchProfile{Interests: []string{"chess"}},
			user:      model.MatchProfile{Interests: []string{"Chess", "chess "}},
			want:      100,
		},
		{
			name:      "everything empty",
			candidate: model.MatchProfile{},
			user:      model.MatchProfile{},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ComputeMatchScore(tt.candidate, tt.user))
		})
	}
}

func TestComputeMatchScore_DenominatorIsPerCandidate(t *testing.T) {
	t.Parallel()

	user := model.MatchProfile{SkillsToLearn: []string{"Rust"}}
	short := model.MatchProfile{SkillsToTeach: []string{"Rust"}}
	long := model.MatchProfile{SkillsToTeach: []string{"Rust", "Go", "C", "Zig"}}

	assert.Equal(t, 100, ComputeMatchScore(short, user))
	assert.Equal(t, 25, ComputeMatchScore(long, user))
}

func TestComputeMatchScore_AlwaysWithinBounds(t *testing.T) {
	t.Parallel()

	lists := [][]string{nil, {"a"}, {"a", "b"}, {"b", "c", "d"}, {"A", "a", " a"}}
	locations := []string{"", "x", "X "}

	for _, teach := range lists {
		for _, learn := range lists {
			for _, loc := range locations {
				c := model.MatchProfile{SkillsToTeach: teach, Interests: learn, Location: loc}
				u := model.MatchProfile{SkillsToLearn: learn, Interests: teach, Location: "x"}
				score := ComputeMatchScore(c, u)
				require.GreaterOrEqual(t, score, 0)
				require.LessOrEqual(t, score, 100)
			}
		}
	}
}

// ============================================================================
// FilterByQuery Tests
// ============================================================================

func testCommunities() []model.Community {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Community{
		{ID: "web-dev", Name: "Web Development", Description: "Build for the web", Topics: []string{"React", "CSS"}, Members: 200, Events: 3, CreatedAt: base},
		{ID: "photography", Name: "photography", Description: "Light and lenses", Topics: []string{"Film"}, Members: 50, Events: 9, CreatedAt: base.AddDate(0, 2, 0)},
		{ID: "music", Name: "Music Production", Description: "Beats and mixing", Topics: []string{"Ableton"}, Members: 200, Events: 1, CreatedAt: base.AddDate(0, 1, 0)},
	}
}

func TestFilterByQuery(t *testing.T) {
	t.Parallel()
	items := testCommunities()

	assert.Len(t, FilterByQuery(items, ""), 3)
	assert.Len(t, FilterByQuery(items, "   "), 3)

	byName := FilterByQuery(items, "WEB")
	require.Len(t, byName, 1)
	assert.Equal(t, "web-dev", byName[0].ID)

	byDesc := FilterByQuery(items, "lenses")
	require.Len(t, byDesc, 1)
	assert.Equal(t, "photography", byDesc[0].ID)

	byTopic := FilterByQuery(items, "ableton")
	require.Len(t, byTopic, 1)
	assert.Equal(t, "music", byTopic[0].ID)

	assert.Empty(t, FilterByQuery(items, "gardening"))
}

func TestFilterByQuery_People(t *testing.T) {
	t.Parallel()

	people := []model.PersonMatch{
		{Person: model.Person{ID: "1", Name: "Ada", SkillsToTeach: []string{"Interface Design"}}},
		{Person: model.Person{ID: "2", Name: "Linus", Bio: "Kernel hacker"}},
	}

	assert.Len(t, FilterByQuery(people, "DESIGN"), 1)
	assert.Len(t, FilterByQuery(people, "kernel"), 1)
}

// ============================================================================
// SortBy Tests
// ============================================================================

func ids(items []model.Community) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

func TestSortBy(t *testing.T) {
	t.Parallel()
	items := testCommunities()

	tests := []struct {
		option string
		want   []string
	}{
		{"name", []string{"music", "photography", "web-dev"}},
		{"name-desc", []string{"web-dev", "photography", "music"}},
		{"popular", []string{"web-dev", "music", "photography"}}, // tie keeps input order
		{"least-members", []string{"photography", "web-dev", "music"}},
		{"events", []string{"photography", "web-dev", "music"}},
		{"newest", []string{"photography", "music", "web-dev"}},
		{"oldest", []string{"web-dev", "music", "photography"}},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			t.Parallel()
			c, ok := ParseSortCriterion(tt.option)
			require.True(t, ok)
			assert.Equal(t, tt.want, ids(SortBy(items, c, CommunityKeys)))
		})
	}
}

func TestSortBy_DoesNotModifyInput(t *testing.T) {
	t.Parallel()
	items := testCommunities()

	c, _ := ParseSortCriterion("name-desc")
	_ = SortBy(items, c, CommunityKeys)

	assert.Equal(t, []string{"web-dev", "photography", "music"}, ids(items))
}

func TestSortBy_UnknownFieldKeepsOrder(t *testing.T) {
	t.Parallel()
	items := testCommunities()

	c, _ := ParseSortCriterion("mutual")
	assert.Equal(t, ids(items), ids(SortBy(items, c, CommunityKeys)))

	_, ok := ParseSortCriterion("random")
	assert.False(t, ok)
}

func TestSortBy_NameIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	people := []model.PersonMatch{
		{Person: model.Person{Name: "cherry"}},
		{Person: model.Person{Name: "Banana"}},
		{Person: model.Person{Name: "apple"}},
	}
	c, _ := ParseSortCriterion("name")
	sorted := SortBy(people, c, PersonKeys)

	assert.Equal(t, "apple", sorted[0].Name)
	assert.Equal(t, "Banana", sorted[1].Name)
	assert.Equal(t, "cherry", sorted[2].Name)
}

// ============================================================================
// Membership / Likes / Catalog Tests
// ============================================================================

func TestEnforceMembershipLimit(t *testing.T) {
	t.Parallel()

	current := []string{"a", "b", "c", "d", "e", "f"}
	assert.Equal(t, Allowed, EnforceMembershipLimit(current, 7))

	current = append(current, "g")
	assert.Equal(t, LimitExceeded, EnforceMembershipLimit(current, 7))
	assert.Len(t, current, 7)
	assert.Equal(t, "limit_exceeded", LimitExceeded.String())
}

func TestCheckMembershipSet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Allowed, CheckMembershipSet(nil, 7))
	assert.Equal(t, Allowed, CheckMembershipSet([]string{"a", "b", "c", "d", "e", "f", "g"}, 7))
	assert.Equal(t, LimitExceeded, CheckMembershipSet([]string{"a", "b", "c", "d", "e", "f", "g", "h"}, 7))
}

func TestDisplayedLikes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, DisplayedLikes(5, false))
	assert.Equal(t, 6, DisplayedLikes(5, true))
}

func TestMergeCatalog(t *testing.T) {
	t.Parallel()

	static := testCommunities()
	custom := []model.Community{
		{ID: "go-programmers", Name: "Go Programmers!"},
		{ID: "web-dev", Name: "Shadow"},
	}

	merged := MergeCatalog(static, custom)

	require.Len(t, merged, 4)
	assert.Equal(t, "Web Development", merged[0].Name)
	assert.Equal(t, "go-programmers", merged[3].ID)
	assert.True(t, merged[3].IsCustom)
	assert.False(t, merged[0].IsCustom)
}

func TestResolveJoined_ToleratesDanglingIDs(t *testing.T) {
	t.Parallel()

	found, missing := ResolveJoined([]string{"music", "gone", "web-dev"}, testCommunities())

	assert.Equal(t, []string{"music", "web-dev"}, ids(found))
	assert.Equal(t, []string{"gone"}, missing)
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains(nil, "b"))
}
