package store

import (
	"context"
	"time"

	"retroboard/internal/model"
)

// InsertMember adds the membership and reports false when it already existed.
func (s *Store) InsertMember(ctx context.Context, boardID, userID int64, at time.Time) (bool, error) {
	res, err := s.q.ExecContext(ctx,
		`insert into board_members(board_id, user_id, joined_at) values($1,$2,$3)
on conflict (board_id, user_id) do nothing`, boardID, userID, at)
	if err != nil {
		return false, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) IsMember(ctx context.Context, boardID, userID int64) (bool, error) {
	var ok bool
	err := s.q.QueryRowContext(ctx,
		`select exists(select 1 from board_members where board_id=$1 and user_id=$2)`, boardID, userID).Scan(&ok)
	return ok, mapErr(err)
}

func (s *Store) DeleteMember(ctx context.Context, boardID, userID int64) error {
	res, err := s.q.ExecContext(ctx, `delete from board_members where board_id=$1 and user_id=$2`, boardID, userID)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) ListMembers(ctx context.Context, boardID int64) ([]model.Member, error) {
	rows, err := s.q.QueryContext(ctx, `select u.id, u.name, coalesce(u.acctag,''), coalesce(u.avatar_url,'')
from board_members m join users u on u.id=m.user_id
where m.board_id=$1
order by m.joined_at, u.id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Member{}
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Tag, &m.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
