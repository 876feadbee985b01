package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retroboard/internal/model"
)

const userColumns = `id, phone_number, coalesce(acctag,''), name, coalesce(avatar_url,''), ldap_auth, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (model.User, error) {
	var u model.User
	dest := append([]any{&u.ID, &u.Phone, &u.Tag, &u.Name, &u.AvatarURL, &u.Directory, &u.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.User{}, mapErr(err)
	}
	return u, nil
}

func (s *Store) InsertUser(ctx context.Context, phone, passwordHash string, directory bool, at time.Time) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`insert into users(phone_number, password_hash, ldap_auth, created_at) values($1,$2,$3,$4) returning id`,
		phone, passwordHash, directory, at).Scan(&id)
	return id, mapErr(err)
}

func (s *Store) SetUserIdentity(ctx context.Context, id int64, tag, name string) error {
	res, err := s.q.ExecContext(ctx, `update users set acctag=$1, name=$2 where id=$3`, tag, name, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) UserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(s.q.QueryRowContext(ctx, `select `+userColumns+` from users where id=$1`, id))
}

func (s *Store) UserByTag(ctx context.Context, tag string) (model.User, error) {
	return scanUser(s.q.QueryRowContext(ctx, `select `+userColumns+` from users where acctag=$1`, tag))
}

func (s *Store) UserByPhone(ctx context.Context, phone string) (model.User, error) {
	return scanUser(s.q.QueryRowContext(ctx, `select `+userColumns+` from users where phone_number=$1`, phone))
}

// UserCredentials looks a user up by phone number or tag and returns the
// stored password hash alongside.
func (s *Store) UserCredentials(ctx context.Context, identifier string) (model.User, string, error) {
	var hash string
	u, err := scanUser(s.q.QueryRowContext(ctx,
		`select `+userColumns+`, password_hash from users where phone_number=$1 or acctag=$1`, identifier), &hash)
	if err != nil {
		return model.User{}, "", err
	}
	return u, hash, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, name, phone, tag *string) error {
	set := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	add("name", name)
	add("phone_number", phone)
	add("acctag", tag)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	q := fmt.Sprintf("update users set %s where id=$%d", strings.Join(set, ", "), len(args))
	res, err := s.q.ExecContext(ctx, q, args...)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) SetAvatar(ctx context.Context, id int64, avatarURL string) error {
	res, err := s.q.ExecContext(ctx, `update users set avatar_url=$1 where id=$2`, avatarURL, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `delete from users where id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}
