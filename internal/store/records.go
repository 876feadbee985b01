package store

import (
	"context"
	"time"

	"retroboard/internal/model"
)

func (s *Store) InsertRecord(ctx context.Context, columnID, authorID int64, text string, at time.Time) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`insert into records(column_id, author_id, body, created_at) values($1,$2,$3,$4) returning id`,
		columnID, authorID, text, at).Scan(&id)
	return id, mapErr(err)
}

// RecordsByBoard returns every record on the board ordered by insertion.
func (s *Store) RecordsByBoard(ctx context.Context, boardID int64) ([]model.Record, error) {
	rows, err := s.q.QueryContext(ctx, `select r.id, r.column_id, coalesce(r.author_id,0), r.body
from records r join board_columns k on k.id=r.column_id
where k.board_id=$1
order by r.id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.ColumnID, &r.AuthorID, &r.Text); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteOldestRecord removes a single record, the earliest one in the column
// whose text matches exactly.
func (s *Store) DeleteOldestRecord(ctx context.Context, columnID int64, text string) error {
	res, err := s.q.ExecContext(ctx, `delete from records where id = (
    select id from records where column_id=$1 and body=$2 order by id limit 1
)`, columnID, text)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}
