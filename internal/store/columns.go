package store

import (
	"context"

	"retroboard/internal/model"
)

const columnSelect = `select k.id, k.board_id, k.name, k.color_id, c.name
from board_columns k join colors c on c.id=k.color_id`

func scanColumn(row rowScanner) (model.Column, error) {
	var k model.Column
	if err := row.Scan(&k.ID, &k.BoardID, &k.Name, &k.ColorID, &k.Color); err != nil {
		return model.Column{}, mapErr(err)
	}
	return k, nil
}

func (s *Store) InsertColumn(ctx context.Context, boardID int64, name string, colorID int64) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`insert into board_columns(board_id, name, color_id) values($1,$2,$3) returning id`,
		boardID, name, colorID).Scan(&id)
	return id, mapErr(err)
}

func (s *Store) GetColumn(ctx context.Context, id int64) (model.Column, error) {
	return scanColumn(s.q.QueryRowContext(ctx, columnSelect+` where k.id=$1`, id))
}

// ColumnsByBoard lists columns in creation order without records.
func (s *Store) ColumnsByBoard(ctx context.Context, boardID int64) ([]model.Column, error) {
	rows, err := s.q.QueryContext(ctx, columnSelect+` where k.board_id=$1 order by k.id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Column{}
	for rows.Next() {
		k, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		k.Records = []string{}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *Store) RenameColumn(ctx context.Context, id int64, name string) error {
	res, err := s.q.ExecContext(ctx, `update board_columns set name=$1 where id=$2`, name, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) DeleteColumn(ctx context.Context, id int64) error {
	if _, err := s.q.ExecContext(ctx, `delete from records where column_id=$1`, id); err != nil {
		return mapErr(err)
	}
	res, err := s.q.ExecContext(ctx, `delete from board_columns where id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}
