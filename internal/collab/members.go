package collab

import (
	"context"
	"errors"
	"fmt"

	"retroboard/internal/model"
)

func (e *Engine) ListMembers(ctx context.Context, boardID int64) ([]model.Member, error) {
	ms, err := e.repo.ListMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return ms, nil
}

func (e *Engine) IsMember(ctx context.Context, boardID, userID int64) (bool, error) {
	ok, err := e.repo.IsMember(ctx, boardID, userID)
	if err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return ok, nil
}

// AddMember inserts a membership directly. A duplicate is a conflict.
func (e *Engine) AddMember(ctx context.Context, boardID, userID int64) error {
	err := e.mutate(ctx, func(t *txn) error {
		if _, err := t.q.GetBoard(ctx, boardID); err != nil {
			return notFound(err, "board")
		}
		if _, err := t.q.UserByID(ctx, userID); err != nil {
			return notFound(err, "user")
		}
		inserted, err := t.q.InsertMember(ctx, boardID, userID, e.now())
		if err != nil {
			return err
		}
		if !inserted {
			return model.Errorf(model.ErrConflict, "user is already a member of the board")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (e *Engine) Leave(ctx context.Context, boardID, userID int64) error {
	if err := e.removeMember(ctx, boardID, userID, "Left the board "); err != nil {
		return fmt.Errorf("leave board: %w", err)
	}
	return nil
}

// Kick removes userID from the board. The caller is not checked.
func (e *Engine) Kick(ctx context.Context, boardID, userID int64) error {
	if err := e.removeMember(ctx, boardID, userID, "Was removed from the board "); err != nil {
		return fmt.Errorf("kick from board: %w", err)
	}
	return nil
}

func (e *Engine) removeMember(ctx context.Context, boardID, userID int64, prefix string) error {
	if userID <= 0 {
		return model.Errorf(model.ErrBadRequest, "user id is required")
	}
	return e.mutate(ctx, func(t *txn) error {
		b, err := t.q.GetBoard(ctx, boardID)
		if err != nil {
			return notFound(err, "board")
		}
		ok, err := t.q.IsMember(ctx, boardID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return model.Errorf(model.ErrNotFound, "user is not a member of the board")
		}
		// the creator is the one member every board keeps
		if b.CreatedBy(userID) {
			return model.Errorf(model.ErrBadRequest, "the board creator cannot leave the board")
		}
		if b.CreatorID == nil {
			ms, err := t.q.ListMembers(ctx, boardID)
			if err != nil {
				return err
			}
			if len(ms) <= 1 {
				return model.Errorf(model.ErrBadRequest, "the last member cannot leave the board")
			}
		}
		if err := t.q.DeleteMember(ctx, boardID, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Errorf(model.ErrNotFound, "user is not a member of the board")
			}
			return err
		}
		return t.record(ctx, Entry{BoardID: &boardID, AuthorID: userID, Text: prefix + quoted(b.Name)})
	})
}
