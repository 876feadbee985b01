package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retroboard/internal/model"
	"retroboard/internal/store"
)

type defaultColumn struct {
	name  string
	color string
}

// Every new board starts with these columns, in this order.
var defaultColumns = []defaultColumn{
	{"Facts", "white"},
	{"Emotions", "red"},
	{"Advantages", "yellow"},
	{"Criticism", "black"},
	{"Decision", "green"},
	{"Control", "blue"},
}

// CreateBoard creates a board owned by memberIDs[0], who becomes its only
// member. Remaining ids are ignored; others join through invites.
func (e *Engine) CreateBoard(ctx context.Context, name, colorName string, memberIDs []int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, model.Errorf(model.ErrBadRequest, "board name is required")
	}
	if len(memberIDs) == 0 {
		return 0, model.Errorf(model.ErrBadRequest, "board users must include the creator")
	}
	creator := memberIDs[0]
	if creator <= 0 {
		return 0, model.Errorf(model.ErrBadRequest, "invalid creator id")
	}

	var id int64
	err := e.mutate(ctx, func(t *txn) error {
		if _, err := t.q.UserByID(ctx, creator); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Errorf(model.ErrBadRequest, "creator %d does not exist", creator)
			}
			return err
		}
		colorID, err := resolveColor(ctx, t.q, colorName)
		if err != nil {
			return err
		}
		now := e.now()
		id, err = t.q.InsertBoard(ctx, name, colorID, creator, now)
		if err != nil {
			return err
		}
		if _, err := t.q.InsertMember(ctx, id, creator, now); err != nil {
			return err
		}
		for _, d := range defaultColumns {
			cid, err := t.q.ColorID(ctx, d.color)
			if errors.Is(err, model.ErrNotFound) {
				e.log.Warn("default column color missing", "board_id", id, "column", d.name, "color", d.color)
				continue
			}
			if err != nil {
				return err
			}
			if _, err := t.q.InsertColumn(ctx, id, d.name, cid); err != nil {
				return err
			}
		}
		return t.record(ctx, Entry{BoardID: &id, AuthorID: creator, Text: "Created board " + quoted(name)})
	})
	if err != nil {
		return 0, fmt.Errorf("create board: %w", err)
	}
	return id, nil
}

// GetBoard returns the board with its columns and each column's records in
// insertion order.
func (e *Engine) GetBoard(ctx context.Context, id int64) (model.BoardView, error) {
	var (
		b    model.Board
		cols []model.Column
		recs []model.Record
	)
	// read under one transaction so the view is consistent
	err := e.repo.InTx(ctx, func(q store.Queries) error {
		var err error
		if b, err = q.GetBoard(ctx, id); err != nil {
			return notFound(err, "board")
		}
		if cols, err = q.ColumnsByBoard(ctx, id); err != nil {
			return err
		}
		recs, err = q.RecordsByBoard(ctx, id)
		return err
	})
	if err != nil {
		return model.BoardView{}, fmt.Errorf("get board: %w", err)
	}
	idx := make(map[int64]int, len(cols))
	for i, c := range cols {
		idx[c.ID] = i
	}
	for _, r := range recs {
		if i, ok := idx[r.ColumnID]; ok {
			cols[i].Records = append(cols[i].Records, r.Text)
		}
	}
	return model.BoardView{Board: b, Columns: cols}, nil
}

// DeleteBoard removes the board with its columns, records and memberships.
// Invites issued for it are kept.
func (e *Engine) DeleteBoard(ctx context.Context, id int64) error {
	err := e.mutate(ctx, func(t *txn) error {
		if _, err := t.q.GetBoard(ctx, id); err != nil {
			return notFound(err, "board")
		}
		return t.q.DeleteBoard(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

func (e *Engine) BoardsForUser(ctx context.Context, userID int64) ([]model.Board, error) {
	bs, err := e.repo.BoardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("boards for user: %w", err)
	}
	return bs, nil
}
