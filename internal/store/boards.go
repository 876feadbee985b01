package store

import (
	"context"
	"database/sql"
	"time"

	"retroboard/internal/model"
)

const boardSelect = `select b.id, b.name, b.color_id, c.name, b.creator_id, b.created_at
from boards b join colors c on c.id=b.color_id`

func scanBoard(row rowScanner) (model.Board, error) {
	var b model.Board
	var creator sql.NullInt64
	if err := row.Scan(&b.ID, &b.Name, &b.ColorID, &b.Color, &creator, &b.CreatedAt); err != nil {
		return model.Board{}, mapErr(err)
	}
	if creator.Valid {
		b.CreatorID = &creator.Int64
	}
	return b, nil
}

func (s *Store) InsertBoard(ctx context.Context, name string, colorID, creatorID int64, at time.Time) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`insert into boards(name, color_id, creator_id, created_at) values($1,$2,$3,$4) returning id`,
		name, colorID, creatorID, at).Scan(&id)
	return id, mapErr(err)
}

func (s *Store) GetBoard(ctx context.Context, id int64) (model.Board, error) {
	return scanBoard(s.q.QueryRowContext(ctx, boardSelect+` where b.id=$1`, id))
}

func (s *Store) BoardsForUser(ctx context.Context, userID int64) ([]model.Board, error) {
	rows, err := s.q.QueryContext(ctx, boardSelect+`
join board_members m on m.board_id=b.id
where m.user_id=$1
order by b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBoard removes the board with its records, columns and memberships.
// Feed posts keep their text and lose the board reference.
func (s *Store) DeleteBoard(ctx context.Context, id int64) error {
	stmts := []string{
		`delete from records where column_id in (select id from board_columns where board_id=$1)`,
		`delete from board_columns where board_id=$1`,
		`delete from board_members where board_id=$1`,
		`update posts set board_id=null where board_id=$1`,
	}
	for _, q := range stmts {
		if _, err := s.q.ExecContext(ctx, q, id); err != nil {
			return mapErr(err)
		}
	}
	res, err := s.q.ExecContext(ctx, `delete from boards where id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}
