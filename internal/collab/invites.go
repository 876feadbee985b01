package collab

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"retroboard/internal/model"
)

const inviteTokenBytes = 16

type InviteLink struct {
	Token string
	URL   string
}

// CreateInviteLink issues a pending invite for the board. Whether the inviter
// belongs to the board is not checked.
func (e *Engine) CreateInviteLink(ctx context.Context, boardID, inviterID int64) (InviteLink, error) {
	if inviterID <= 0 {
		return InviteLink{}, fmt.Errorf("create invite link: %w", model.Errorf(model.ErrBadRequest, "inviter id is required"))
	}
	if _, err := e.repo.GetBoard(ctx, boardID); err != nil {
		return InviteLink{}, fmt.Errorf("create invite link: %w", notFound(err, "board"))
	}
	token, err := e.newToken()
	if err != nil {
		return InviteLink{}, fmt.Errorf("create invite link: %w", err)
	}
	inv := model.Invite{
		Token:     token,
		BoardID:   boardID,
		InviterID: inviterID,
		Status:    model.InvitePending,
		CreatedAt: e.now(),
	}
	if err := e.repo.InsertInvite(ctx, inv); err != nil {
		return InviteLink{}, fmt.Errorf("create invite link: %w", err)
	}
	return InviteLink{Token: token, URL: e.inviteBaseURL + token}, nil
}

func (e *Engine) newToken() (string, error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := io.ReadFull(e.rand, b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ResolveInvite returns the invite whatever its status.
func (e *Engine) ResolveInvite(ctx context.Context, token string) (model.Invite, error) {
	inv, err := e.repo.InviteByToken(ctx, token)
	if err != nil {
		return model.Invite{}, fmt.Errorf("resolve invite: %w", notFound(err, "invite"))
	}
	return inv, nil
}

func (e *Engine) InviteBoardName(ctx context.Context, token string) (string, error) {
	inv, err := e.repo.InviteByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("invite board name: %w", notFound(err, "invite"))
	}
	b, err := e.repo.GetBoard(ctx, inv.BoardID)
	if err != nil {
		return "", fmt.Errorf("invite board name: %w", notFound(err, "board"))
	}
	return b.Name, nil
}

// Respond records the user's answer to an invite and reports whether the
// user joined the board as a result. Invites can be answered any number of
// times; the latest answer wins.
func (e *Engine) Respond(ctx context.Context, token string, userID int64, response model.InviteStatus) (bool, error) {
	if response != model.InviteAccepted && response != model.InviteDeclined {
		return false, fmt.Errorf("respond to invite: %w",
			model.Errorf(model.ErrBadRequest, "response must be %q or %q", model.InviteAccepted, model.InviteDeclined))
	}
	if userID <= 0 {
		return false, fmt.Errorf("respond to invite: %w", model.Errorf(model.ErrBadRequest, "user id is required"))
	}
	joined := false
	err := e.mutate(ctx, func(t *txn) error {
		joined = false
		inv, err := t.q.InviteByToken(ctx, token)
		if err != nil {
			return notFound(err, "invite")
		}
		if response == model.InviteAccepted {
			member, err := t.q.IsMember(ctx, inv.BoardID, userID)
			if err != nil {
				return err
			}
			if !member {
				b, err := t.q.GetBoard(ctx, inv.BoardID)
				if err != nil {
					return notFound(err, "board")
				}
				inserted, err := t.q.InsertMember(ctx, inv.BoardID, userID, e.now())
				if err != nil {
					if errors.Is(err, model.ErrBadRequest) {
						return model.Errorf(model.ErrNotFound, "user not found")
					}
					return err
				}
				// not inserted: a concurrent accept got there first
				if inserted {
					joined = true
					if err := t.record(ctx, Entry{
						BoardID:  &inv.BoardID,
						AuthorID: userID,
						Text:     "Joined the board " + quoted(b.Name) + " via invite link",
					}); err != nil {
						return err
					}
				}
			}
		}
		return notFound(t.q.SetInviteStatus(ctx, token, response), "invite")
	})
	if err != nil {
		return false, fmt.Errorf("respond to invite: %w", err)
	}
	return joined, nil
}

// InviteByTag adds the user with the given tag to the board. Only the board
// creator may do this, so a board whose creator is gone accepts no one.
func (e *Engine) InviteByTag(ctx context.Context, boardID, requesterID int64, tag string) error {
	if requesterID <= 0 {
		return fmt.Errorf("invite by tag: %w", model.Errorf(model.ErrBadRequest, "user id is required"))
	}
	err := e.mutate(ctx, func(t *txn) error {
		b, err := t.q.GetBoard(ctx, boardID)
		if err != nil {
			return notFound(err, "board")
		}
		if !b.CreatedBy(requesterID) {
			return model.Errorf(model.ErrForbidden, "only the board creator can invite users")
		}
		u, err := t.q.UserByTag(ctx, tag)
		if err != nil {
			return notFound(err, "user")
		}
		inserted, err := t.q.InsertMember(ctx, boardID, u.ID, e.now())
		if err != nil {
			return err
		}
		if !inserted {
			return model.Errorf(model.ErrConflict, "user is already a member of the board")
		}
		return t.record(ctx, Entry{BoardID: &boardID, AuthorID: u.ID, Text: "Joined the board " + quoted(b.Name)})
	})
	if err != nil {
		return fmt.Errorf("invite by tag: %w", err)
	}
	return nil
}
