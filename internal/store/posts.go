package store

import (
	"context"
	"database/sql"

	"retroboard/internal/model"
)

func (s *Store) InsertPost(ctx context.Context, p model.Post) (model.Post, error) {
	var board sql.NullInt64
	if p.BoardID != nil {
		board = sql.NullInt64{Int64: *p.BoardID, Valid: true}
	}
	var picture sql.NullString
	if p.Picture != "" {
		picture = sql.NullString{String: p.Picture, Valid: true}
	}
	err := s.q.QueryRowContext(ctx,
		`insert into posts(user_id, board_id, body, picture, post_date, post_time) values($1,$2,$3,$4,$5,$6) returning id`,
		p.UserID, board, p.Text, picture, p.Date, p.Time).Scan(&p.ID)
	if err != nil {
		return model.Post{}, mapErr(err)
	}
	p.Views = 0
	return p, nil
}

// IncrementPostViews bumps the counter atomically and returns the new value.
func (s *Store) IncrementPostViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := s.q.QueryRowContext(ctx, `update posts set views = views + 1 where id=$1 returning views`, id).Scan(&views)
	return views, mapErr(err)
}

// FeedForUser lists posts tied to boards the user belongs to, newest first.
func (s *Store) FeedForUser(ctx context.Context, userID int64) ([]model.FeedItem, error) {
	rows, err := s.q.QueryContext(ctx, `select p.id, p.user_id, p.board_id, p.body, coalesce(p.picture,''),
    p.post_date, p.post_time, p.views,
    u.name, coalesce(u.acctag,''), coalesce(u.avatar_url,''), b.name
from posts p
join board_members m on m.board_id=p.board_id and m.user_id=$1
join boards b on b.id=p.board_id
join users u on u.id=p.user_id
order by p.post_date desc, p.post_time desc, p.id desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.FeedItem{}
	for rows.Next() {
		var it model.FeedItem
		var board sql.NullInt64
		if err := rows.Scan(&it.ID, &it.UserID, &board, &it.Text, &it.Picture,
			&it.Date, &it.Time, &it.Views,
			&it.UserName, &it.UserTag, &it.AvatarURL, &it.BoardName); err != nil {
			return nil, err
		}
		if board.Valid {
			id := board.Int64
			it.BoardID = &id
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// DeletePostsBefore removes posts dated strictly before date (YYYY-MM-DD).
func (s *Store) DeletePostsBefore(ctx context.Context, date string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `delete from posts where post_date < $1`, date)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}
