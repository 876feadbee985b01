package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retroboard/internal/model"
	"retroboard/internal/store"
)

func (e *Engine) AddColumn(ctx context.Context, boardID int64, name string, colorID, actorID int64) (int64, error) {
	var id int64
	err := e.mutate(ctx, func(t *txn) error {
		if _, err := t.q.GetBoard(ctx, boardID); err != nil {
			return notFound(err, "board")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return model.Errorf(model.ErrBadRequest, "column name is required")
		}
		if _, err := t.q.ColorName(ctx, colorID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Errorf(model.ErrBadRequest, "unknown color id %d", colorID)
			}
			return err
		}
		if actorID <= 0 {
			return model.Errorf(model.ErrBadRequest, "user id is required")
		}
		var err error
		id, err = t.q.InsertColumn(ctx, boardID, name, colorID)
		if err != nil {
			return err
		}
		return t.record(ctx, Entry{BoardID: &boardID, AuthorID: actorID, Text: "Added column " + quoted(name)})
	})
	if err != nil {
		return 0, fmt.Errorf("add column: %w", err)
	}
	return id, nil
}

func (e *Engine) RenameColumn(ctx context.Context, boardID, columnID int64, newName string, actorID int64) error {
	err := e.mutate(ctx, func(t *txn) error {
		col, err := boardColumn(ctx, t.q, boardID, columnID)
		if err != nil {
			return err
		}
		newName = strings.TrimSpace(newName)
		if newName == "" {
			return model.Errorf(model.ErrBadRequest, "column name is required")
		}
		if actorID <= 0 {
			return model.Errorf(model.ErrBadRequest, "user id is required")
		}
		if err := t.q.RenameColumn(ctx, columnID, newName); err != nil {
			return notFound(err, "column")
		}
		return t.record(ctx, Entry{
			BoardID:  &boardID,
			AuthorID: actorID,
			Text:     "Renamed column " + quoted(col.Name) + " to " + quoted(newName),
		})
	})
	if err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	return nil
}

// DeleteColumn removes the column together with its records.
func (e *Engine) DeleteColumn(ctx context.Context, boardID, columnID, actorID int64) error {
	err := e.mutate(ctx, func(t *txn) error {
		col, err := boardColumn(ctx, t.q, boardID, columnID)
		if err != nil {
			return err
		}
		if actorID <= 0 {
			return model.Errorf(model.ErrBadRequest, "user id is required")
		}
		if err := t.q.DeleteColumn(ctx, columnID); err != nil {
			return notFound(err, "column")
		}
		return t.record(ctx, Entry{BoardID: &boardID, AuthorID: actorID, Text: "Deleted column " + quoted(col.Name)})
	})
	if err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	return nil
}

// boardColumn loads a column and checks it hangs off the given board.
func boardColumn(ctx context.Context, q store.Queries, boardID, columnID int64) (model.Column, error) {
	if _, err := q.GetBoard(ctx, boardID); err != nil {
		return model.Column{}, notFound(err, "board")
	}
	col, err := q.GetColumn(ctx, columnID)
	if err != nil {
		return model.Column{}, notFound(err, "column")
	}
	if col.BoardID != boardID {
		return model.Column{}, model.Errorf(model.ErrBadRequest, "column does not belong to board")
	}
	return col, nil
}
