package collab

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroboard/internal/model"
)

func TestInviteRoundTrip(t *testing.T) {
	f := newFixture(t, WithInviteBaseURL("https://example.test/invite/"))
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	guest := f.user(t, "+2", "@guest")
	id := f.board(t, "Retro", owner)

	link, err := f.e.CreateInviteLink(ctx, id, owner)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("01", 16), link.Token)
	assert.Equal(t, "https://example.test/invite/"+link.Token, link.URL)

	inv, err := f.e.ResolveInvite(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, id, inv.BoardID)
	assert.Equal(t, model.InvitePending, inv.Status)

	name, err := f.e.InviteBoardName(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, "Retro", name)

	for i := 0; i < 2; i++ {
		joined, err := f.e.Respond(ctx, link.Token, guest, model.InviteAccepted)
		require.NoError(t, err)
		assert.Equal(t, i == 0, joined)

		ok, err := f.e.IsMember(ctx, id, guest)
		require.NoError(t, err)
		assert.True(t, ok)
		inv, err = f.e.ResolveInvite(ctx, link.Token)
		require.NoError(t, err)
		assert.Equal(t, model.InviteAccepted, inv.Status)
	}

	members, err := f.e.ListMembers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	joins := 0
	for _, text := range f.feedTexts(t, guest) {
		if text == `Joined the board "Retro" via invite link` {
			joins++
		}
	}
	assert.Equal(t, 1, joins)
}

func TestRespondValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	guest := f.user(t, "+2", "@guest")
	id := f.board(t, "Retro", owner)
	link, err := f.e.CreateInviteLink(ctx, id, owner)
	require.NoError(t, err)

	_, err = f.e.Respond(ctx, link.Token, guest, "maybe")
	assert.ErrorIs(t, err, model.ErrBadRequest)
	_, err = f.e.Respond(ctx, "unknown", guest, model.InviteAccepted)
	assert.ErrorIs(t, err, model.ErrNotFound)

	joined, err := f.e.Respond(ctx, link.Token, guest, model.InviteDeclined)
	require.NoError(t, err)
	assert.False(t, joined)
	ok, err := f.e.IsMember(ctx, id, guest)
	require.NoError(t, err)
	assert.False(t, ok)
	inv, err := f.e.ResolveInvite(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, model.InviteDeclined, inv.Status)
}

func TestInviteOutlivesBoard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	guest := f.user(t, "+2", "@guest")
	id := f.board(t, "Retro", owner)
	link, err := f.e.CreateInviteLink(ctx, id, owner)
	require.NoError(t, err)
	require.NoError(t, f.e.DeleteBoard(ctx, id))

	_, err = f.e.ResolveInvite(ctx, link.Token)
	require.NoError(t, err)
	_, err = f.e.InviteBoardName(ctx, link.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.e.Respond(ctx, link.Token, guest, model.InviteAccepted)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateInviteLinkChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	id := f.board(t, "Retro", owner)

	_, err := f.e.CreateInviteLink(ctx, 999, owner)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.e.CreateInviteLink(ctx, id, 0)
	assert.ErrorIs(t, err, model.ErrBadRequest)
}

func TestInviteByTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	guest := f.user(t, "+2", "@guest")
	id := f.board(t, "Retro", owner)

	assert.ErrorIs(t, f.e.InviteByTag(ctx, 999, owner, "@guest"), model.ErrNotFound)
	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, guest, "@guest"), model.ErrForbidden)
	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, owner, "@nobody"), model.ErrNotFound)

	require.NoError(t, f.e.InviteByTag(ctx, id, owner, "@guest"))
	ok, err := f.e.IsMember(ctx, id, guest)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, f.feedTexts(t, guest), `Joined the board "Retro"`)

	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, owner, "@guest"), model.ErrConflict)
}

func TestInviteLinksAreDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	id := f.board(t, "Retro", owner)

	first, err := f.e.CreateInviteLink(ctx, id, owner)
	require.NoError(t, err)
	second, err := f.e.CreateInviteLink(ctx, id, owner)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, strings.Repeat("02", 16), second.Token)
}

func TestInviteByTagRequiresRequester(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	f.user(t, "+2", "@guest")
	id := f.board(t, "Retro", owner)

	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, 0, "@guest"), model.ErrBadRequest)
}

func TestInviteByTagOnBoardWithoutCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "+1", "@owner")
	guest := f.user(t, "+2", "@guest")
	other := f.user(t, "+3", "@other")
	id := f.board(t, "Retro", owner)
	require.NoError(t, f.e.AddMember(ctx, id, other))
	require.NoError(t, f.s.DeleteUser(ctx, owner))

	v, err := f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, v.CreatorID)

	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, 0, "@guest"), model.ErrBadRequest)
	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, other, "@guest"), model.ErrForbidden)
	assert.ErrorIs(t, f.e.InviteByTag(ctx, id, owner, "@guest"), model.ErrForbidden)

	ok, err := f.e.IsMember(ctx, id, guest)
	require.NoError(t, err)
	assert.False(t, ok)
}
