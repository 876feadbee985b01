package store

import (
	"context"

	"retroboard/internal/model"
)

func (s *Store) InsertInvite(ctx context.Context, inv model.Invite) error {
	_, err := s.q.ExecContext(ctx,
		`insert into invites(token, board_id, inviter_id, status, created_at) values($1,$2,$3,$4,$5)`,
		inv.Token, inv.BoardID, inv.InviterID, string(inv.Status), inv.CreatedAt)
	return mapErr(err)
}

func (s *Store) InviteByToken(ctx context.Context, token string) (model.Invite, error) {
	var inv model.Invite
	var status string
	err := s.q.QueryRowContext(ctx,
		`select token, board_id, inviter_id, status, created_at from invites where token=$1`, token).
		Scan(&inv.Token, &inv.BoardID, &inv.InviterID, &status, &inv.CreatedAt)
	if err != nil {
		return model.Invite{}, mapErr(err)
	}
	inv.Status = model.InviteStatus(status)
	return inv, nil
}

func (s *Store) SetInviteStatus(ctx context.Context, token string, status model.InviteStatus) error {
	res, err := s.q.ExecContext(ctx, `update invites set status=$1 where token=$2`, string(status), token)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}
