package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/testing/fixtures"
)

func validCreateRequest(name string) *model.CreateCommunityRequest {
	return &model.CreateCommunityRequest{
		Name:        name,
		Description: "People who like writing Go",
		Category:    "Technology",
		Topics:      []string{"Go", " concurrency ", "go"},
	}
}

// ============================================================================
// Membership
// ============================================================================

func TestCommunityService_JoinLeaveRejoin(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	joined, err := svc.communities.Join(ctx, "web-dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"web-dev"}, joined)
	assert.True(t, svc.communities.IsJoined(ctx, "web-dev"))

	joined, err = svc.communities.Leave(ctx, "web-dev")
	require.NoError(t, err)
	assert.Empty(t, joined)
	assert.False(t, svc.communities.IsJoined(ctx, "web-dev"))

	joined, err = svc.communities.Join(ctx, "web-dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"web-dev"}, joined)
}

func TestCommunityService_JoinTwiceIsNoOp(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	_, err := svc.communities.Join(ctx, "photography")
	require.NoError(t, err)
	joined, err := svc.communities.Join(ctx, "photography")
	require.NoError(t, err)

	assert.Equal(t, []string{"photography"}, joined)
}

func TestCommunityService_JoinUnknown(t *testing.T) {
	t.Parallel()
	svc := newServices(t)

	_, err := svc.communities.Join(svc.tdb.Ctx(), "does-not-exist")
	assert.ErrorIs(t, err, ErrCommunityNotFound)
	assert.Empty(t, svc.communities.JoinedIDs(svc.tdb.Ctx()))
}

func TestCommunityService_LeaveNotJoinedIsNoOp(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	_, err := svc.communities.Join(ctx, "web-dev")
	require.NoError(t, err)

	joined, err := svc.communities.Leave(ctx, "photography")
	require.NoError(t, err)
	assert.Equal(t, []string{"web-dev"}, joined)
}

func TestCommunityService_MembershipLimit(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	all := svc.communities.All(ctx)
	require.Len(t, all, 8)

	for _, c := range all[:model.DefaultMembershipLimit] {
		_, err := svc.communities.Join(ctx, c.ID)
		require.NoError(t, err)
	}

	_, err := svc.communities.Join(ctx, all[7].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMembershipLimitReached)

	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 7, limitErr.Limit)
	assert.Equal(t, 7, limitErr.Current)
	assert.Len(t, svc.communities.JoinedIDs(ctx), 7)

	// Re-joining a member while full stays a no-op
	_, err = svc.communities.Join(ctx, all[0].ID)
	assert.NoError(t, err)

	// Leaving frees a slot
	_, err = svc.communities.Leave(ctx, all[0].ID)
	require.NoError(t, err)
	_, err = svc.communities.Join(ctx, all[7].ID)
	assert.NoError(t, err)
}

func TestCommunityService_JoinedSkipsDanglingIDs(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()
	fixtures.New(svc.tdb.Store).Join(t, "web-dev", "removed-community", "photography")

	joined := svc.communities.Joined(ctx)

	require.Len(t, joined, 2)
	assert.Equal(t, "web-dev", joined[0].ID)
	assert.Equal(t, "photography", joined[1].ID)

	// The dangling id still counts and can be cleared
	assert.Len(t, svc.communities.JoinedIDs(ctx), 3)
	ids, err := svc.communities.Leave(ctx, "removed-community")
	require.NoError(t, err)
	assert.Equal(t, []string{"web-dev", "photography"}, ids)
}

// ============================================================================
// Creation
// ============================================================================

func TestCommunityService_Create(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	c, err := svc.communities.Create(ctx, validCreateRequest("Go Programmers!"))
	require.NoError(t, err)

	assert.Equal(t, "go-programmers", c.ID)
	assert.Equal(t, "Go Programmers!", c.Name)
	assert.Equal(t, 1, c.Members)
	assert.True(t, c.IsCustom)
	assert.Equal(t, []string{"Go", "concurrency"}, c.Topics)
	assert.Equal(t, testNow, c.CreatedAt)

	all := svc.communities.All(ctx)
	require.Len(t, all, 9)
	assert.Equal(t, "go-programmers", all[8].ID)

	got, err := svc.communities.Get(ctx, "go-programmers")
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)

	// Creating does not join
	assert.False(t, svc.communities.IsJoined(ctx, "go-programmers"))
}

func TestCommunityService_CreateDuplicateName(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	_, err := svc.communities.Create(ctx, validCreateRequest("Go Programmers!"))
	require.NoError(t, err)

	_, err = svc.communities.Create(ctx, validCreateRequest("go programmers"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	var verrs model.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "name")
	assert.Len(t, svc.communities.All(ctx), 9)
}

func TestCommunityService_CreateCollidesWithCatalog(t *testing.T) {
	t.Parallel()
	svc := newServices(t)

	_, err := svc.communities.Create(svc.tdb.Ctx(), validCreateRequest("Photography"))
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)
}

func TestCommunityService_CreateInvalid(t *testing.T) {
	t.Parallel()
	svc := newServices(t)

	_, err := svc.communities.Create(svc.tdb.Ctx(), &model.CreateCommunityRequest{Name: "Go"})

	var verrs model.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.ElementsMatch(t, []string{"name", "description", "category", "topics"}, verrs.Fields())
	assert.Len(t, svc.communities.All(svc.tdb.Ctx()), 8)
}

// ============================================================================
// Listing
// ============================================================================

func TestCommunityService_ListQueryAndSort(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := svc.tdb.Ctx()

	byName := svc.communities.List(ctx, ListOptions{Sort: "name"})
	require.Len(t, byName, 8)
	for i := 1; i < len(byName); i++ {
		assert.LessOrEqual(t, byName[i-1].Name, byName[i].Name)
	}

	popular := svc.communities.List(ctx, ListOptions{Sort: "popular"})
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Members, popular[i].Members)
	}

	photo := svc.communities.List(ctx, ListOptions{Query: "PHOTO"})
	ids := make([]string, 0, len(photo))
	for _, c := range photo {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "photography")

	unknown := svc.communities.List(ctx, ListOptions{Sort: "sideways"})
	assert.Equal(t, svc.communities.All(ctx), unknown)
}

func TestCommunityService_CustomCommunityFromAnotherTab(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	other := fixtures.New(svc.tdb.OpenTab().Store)

	created := other.CreateCommunity(t)

	got, err := svc.communities.Get(svc.tdb.Ctx(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCustom)
}
