package collab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroboard/internal/model"
)

func TestLeaveAndKick(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	ann := f.user(t, "+2", "@ann")
	bob := f.user(t, "+3", "@bob")
	id := f.board(t, "Retro", owner)
	require.NoError(t, f.e.AddMember(ctx, id, ann))
	require.NoError(t, f.e.AddMember(ctx, id, bob))

	require.NoError(t, f.e.Leave(ctx, id, ann))
	ok, err := f.e.IsMember(ctx, id, ann)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, f.e.Leave(ctx, id, ann), model.ErrNotFound)

	require.NoError(t, f.e.Kick(ctx, id, bob))
	ok, err = f.e.IsMember(ctx, id, bob)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, f.e.Kick(ctx, id, bob), model.ErrNotFound)

	feed := f.feedTexts(t, owner)
	assert.Contains(t, feed, `Left the board "Retro"`)
	assert.Contains(t, feed, `Was removed from the board "Retro"`)
}

func TestCreatorCannotLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	id := f.board(t, "Retro", owner)

	assert.ErrorIs(t, f.e.Leave(ctx, id, owner), model.ErrBadRequest)
	assert.ErrorIs(t, f.e.Kick(ctx, id, owner), model.ErrBadRequest)

	members, err := f.e.ListMembers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestLeaveMissingBoard(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "+1", "@u")
	assert.ErrorIs(t, f.e.Leave(context.Background(), 404, u), model.ErrNotFound)
}

func TestAddMemberDuplicateConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	ann := f.user(t, "+2", "@ann")
	id := f.board(t, "Retro", owner)

	require.NoError(t, f.e.AddMember(ctx, id, ann))
	assert.ErrorIs(t, f.e.AddMember(ctx, id, ann), model.ErrConflict)
	assert.ErrorIs(t, f.e.AddMember(ctx, id, 999), model.ErrNotFound)
	assert.ErrorIs(t, f.e.AddMember(ctx, 999, ann), model.ErrNotFound)

	members, err := f.e.ListMembers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestListMembersEmpty(t *testing.T) {
	f := newFixture(t)
	members, err := f.e.ListMembers(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestLastMemberOfBoardWithoutCreatorStays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	ann := f.user(t, "+2", "@ann")
	bob := f.user(t, "+3", "@bob")
	id := f.board(t, "Retro", owner)
	require.NoError(t, f.e.AddMember(ctx, id, ann))
	require.NoError(t, f.e.AddMember(ctx, id, bob))
	require.NoError(t, f.s.DeleteUser(ctx, owner))

	require.NoError(t, f.e.Leave(ctx, id, ann))
	assert.ErrorIs(t, f.e.Leave(ctx, id, bob), model.ErrBadRequest)
	assert.ErrorIs(t, f.e.Kick(ctx, id, bob), model.ErrBadRequest)

	members, err := f.e.ListMembers(ctx, id)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, bob, members[0].UserID)
}

func TestRemoveMemberRequiresUser(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "+1", "@owner")
	id := f.board(t, "Retro", owner)
	assert.ErrorIs(t, f.e.Leave(context.Background(), id, 0), model.ErrBadRequest)
}
