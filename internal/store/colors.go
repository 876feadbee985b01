package store

import (
	"context"

	"retroboard/internal/model"
)

func (s *Store) Colors(ctx context.Context) ([]model.Color, error) {
	rows, err := s.q.QueryContext(ctx, `select id, name from colors order by id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Color
	for rows.Next() {
		var c model.Color
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ColorID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx, `select id from colors where name=$1`, name).Scan(&id)
	return id, mapErr(err)
}

func (s *Store) ColorName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.q.QueryRowContext(ctx, `select name from colors where id=$1`, id).Scan(&name)
	return name, mapErr(err)
}
