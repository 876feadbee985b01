package collab

import (
	"context"
	"fmt"
	"strings"

	"retroboard/internal/model"
)

// AddRecord appends text to the column as written; only its trimmed form has
// to be non-empty.
func (e *Engine) AddRecord(ctx context.Context, boardID, columnID int64, text string, authorID int64) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("add record: %w", model.Errorf(model.ErrBadRequest, "text cannot be empty"))
	}
	if authorID <= 0 {
		return fmt.Errorf("add record: %w", model.Errorf(model.ErrBadRequest, "user id is required"))
	}
	err := e.mutate(ctx, func(t *txn) error {
		col, err := boardColumn(ctx, t.q, boardID, columnID)
		if err != nil {
			return err
		}
		if _, err := t.q.InsertRecord(ctx, columnID, authorID, text, e.now()); err != nil {
			return err
		}
		return t.record(ctx, Entry{
			BoardID:  &boardID,
			AuthorID: authorID,
			Text:     "Added record " + quoted(text) + " to column " + quoted(col.Name),
		})
	})
	if err != nil {
		return fmt.Errorf("add record: %w", err)
	}
	return nil
}

// DeleteRecord removes the oldest record in the column whose text equals
// exactText.
func (e *Engine) DeleteRecord(ctx context.Context, boardID, columnID int64, exactText string) error {
	if exactText == "" {
		return fmt.Errorf("delete record: %w", model.Errorf(model.ErrBadRequest, "text to delete is required"))
	}
	err := e.mutate(ctx, func(t *txn) error {
		if _, err := boardColumn(ctx, t.q, boardID, columnID); err != nil {
			return err
		}
		return notFound(t.q.DeleteOldestRecord(ctx, columnID, exactText), "record")
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
