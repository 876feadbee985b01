// Package accounts handles registration, login and profile settings.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"retroboard/internal/model"
	"retroboard/internal/store"
)

const minPasswordLen = 6

type Service struct {
	repo   store.Repository
	tokens *Tokens
	dir    Directory
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithDirectory enables directory-backed registration.
func WithDirectory(d Directory) Option { return func(s *Service) { s.dir = d } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo store.Repository, tokens *Tokens, opts ...Option) *Service {
	s := &Service{repo: repo, tokens: tokens, log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register creates a user with a generated tag and display name.
func (s *Service) Register(ctx context.Context, phone, password string) (model.User, error) {
	return s.register(ctx, phone, password, false)
}

// RegisterDirectory checks login and password against the directory first
// and then registers like Register, marking the account as directory backed.
func (s *Service) RegisterDirectory(ctx context.Context, login, phone, password string) (model.User, error) {
	if s.dir == nil {
		return model.User{}, model.Errorf(model.ErrUnavailable, "directory login is not configured")
	}
	if strings.TrimSpace(login) == "" || password == "" {
		return model.User{}, model.Errorf(model.ErrBadRequest, "login and password are required")
	}
	if err := s.dir.Authenticate(ctx, login, password); err != nil {
		s.log.Warn("directory bind", "login", login, "err", err)
		return model.User{}, err
	}
	return s.register(ctx, phone, password, true)
}

func (s *Service) register(ctx context.Context, phone, password string, directory bool) (model.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return model.User{}, model.Errorf(model.ErrBadRequest, "phone number and password are required")
	}
	if len(password) < minPasswordLen {
		return model.User{}, model.Errorf(model.ErrBadRequest, "password too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	var u model.User
	err = s.repo.InTx(ctx, func(q store.Queries) error {
		if _, err := q.UserByPhone(ctx, phone); err == nil {
			return model.Errorf(model.ErrConflict, "phone number is already registered")
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		id, err := q.InsertUser(ctx, phone, string(hash), directory, s.now())
		if err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.Errorf(model.ErrConflict, "phone number is already registered")
			}
			return err
		}
		if err := q.SetUserIdentity(ctx, id, fmt.Sprintf("@user%d", id), fmt.Sprintf("User %d", id)); err != nil {
			return err
		}
		u, err = q.UserByID(ctx, id)
		return err
	})
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

// Login accepts a phone number or tag as identifier and returns a signed token.
func (s *Service) Login(ctx context.Context, identifier, password string) (model.User, string, error) {
	if identifier == "" || password == "" {
		return model.User{}, "", model.Errorf(model.ErrBadRequest, "identifier and password are required")
	}
	u, hash, err := s.repo.UserCredentials(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", model.Errorf(model.ErrUnauthorized, "invalid credentials")
		}
		return model.User{}, "", fmt.Errorf("login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return model.User{}, "", model.Errorf(model.ErrUnauthorized, "invalid credentials")
	}
	tok, err := s.tokens.Sign(u.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return u, tok, nil
}

// Forgot resolves an identifier to its user id.
func (s *Service) Forgot(ctx context.Context, identifier string) (int64, error) {
	if identifier == "" {
		return 0, model.Errorf(model.ErrBadRequest, "phone number or tag is required")
	}
	u, _, err := s.repo.UserCredentials(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.Errorf(model.ErrNotFound, "user not found")
		}
		return 0, fmt.Errorf("forgot: %w", err)
	}
	return u.ID, nil
}

func (s *Service) User(ctx context.Context, id int64) (model.User, error) {
	u, err := s.repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.Errorf(model.ErrNotFound, "user not found")
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UserFromToken returns the user a bearer token was issued to.
func (s *Service) UserFromToken(ctx context.Context, token string) (model.User, error) {
	c, err := s.tokens.Parse(token)
	if err != nil {
		return model.User{}, model.Errorf(model.ErrUnauthorized, "invalid token")
	}
	u, err := s.User(ctx, c.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Errorf(model.ErrUnauthorized, "invalid token")
	}
	return u, err
}

// Settings holds the fields a settings update may change. Nil or empty
// fields are left alone.
type Settings struct {
	Name  *string
	Phone *string
	Tag   *string
}

func nonEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (s *Service) UpdateSettings(ctx context.Context, id int64, in Settings) error {
	name, phone, tag := nonEmpty(in.Name), nonEmpty(in.Phone), nonEmpty(in.Tag)
	if tag != nil && (!strings.HasPrefix(*tag, "@") || len(*tag) < 2) {
		return model.Errorf(model.ErrBadRequest, "tag must start with @")
	}
	err := s.repo.InTx(ctx, func(q store.Queries) error {
		if _, err := q.UserByID(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Errorf(model.ErrNotFound, "user not found")
			}
			return err
		}
		if tag != nil {
			if err := taken(q.UserByTag(ctx, *tag))(id, "tag is already taken"); err != nil {
				return err
			}
		}
		if phone != nil {
			if err := taken(q.UserByPhone(ctx, *phone))(id, "phone number is already in use"); err != nil {
				return err
			}
		}
		return q.UpdateUser(ctx, id, name, phone, tag)
	})
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// taken turns a lookup result into a conflict when the row belongs to
// someone other than self.
func taken(u model.User, err error) func(self int64, msg string) error {
	return func(self int64, msg string) error {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if u.ID != self {
			return model.Errorf(model.ErrConflict, "%s", msg)
		}
		return nil
	}
}

// Delete removes the account; memberships and posts go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Errorf(model.ErrNotFound, "user not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Service) SetAvatar(ctx context.Context, id int64, url string) error {
	if err := s.repo.SetAvatar(ctx, id, url); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Errorf(model.ErrNotFound, "user not found")
		}
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}
