package store

import (
	"context"
	"time"

	"retroboard/internal/model"
)

// Queries is the set of row operations the service layers run, either directly
// against the pool or inside a transaction.
type Queries interface {
	Colors(ctx context.Context) ([]model.Color, error)
	ColorID(ctx context.Context, name string) (int64, error)
	ColorName(ctx context.Context, id int64) (string, error)

	InsertUser(ctx context.Context, phone, passwordHash string, directory bool, at time.Time) (int64, error)
	SetUserIdentity(ctx context.Context, id int64, tag, name string) error
	UserByID(ctx context.Context, id int64) (model.User, error)
	UserByTag(ctx context.Context, tag string) (model.User, error)
	UserByPhone(ctx context.Context, phone string) (model.User, error)
	UserCredentials(ctx context.Context, identifier string) (model.User, string, error)
	UpdateUser(ctx context.Context, id int64, name, phone, tag *string) error
	SetAvatar(ctx context.Context, id int64, avatarURL string) error
	DeleteUser(ctx context.Context, id int64) error

	InsertBoard(ctx context.Context, name string, colorID, creatorID int64, at time.Time) (int64, error)
	GetBoard(ctx context.Context, id int64) (model.Board, error)
	BoardsForUser(ctx context.Context, userID int64) ([]model.Board, error)
	DeleteBoard(ctx context.Context, id int64) error

	InsertMember(ctx context.Context, boardID, userID int64, at time.Time) (bool, error)
	IsMember(ctx context.Context, boardID, userID int64) (bool, error)
	DeleteMember(ctx context.Context, boardID, userID int64) error
	ListMembers(ctx context.Context, boardID int64) ([]model.Member, error)

	InsertColumn(ctx context.Context, boardID int64, name string, colorID int64) (int64, error)
	GetColumn(ctx context.Context, id int64) (model.Column, error)
	ColumnsByBoard(ctx context.Context, boardID int64) ([]model.Column, error)
	RenameColumn(ctx context.Context, id int64, name string) error
	DeleteColumn(ctx context.Context, id int64) error

	InsertRecord(ctx context.Context, columnID, authorID int64, text string, at time.Time) (int64, error)
	RecordsByBoard(ctx context.Context, boardID int64) ([]model.Record, error)
	DeleteOldestRecord(ctx context.Context, columnID int64, text string) error

	InsertInvite(ctx context.Context, inv model.Invite) error
	InviteByToken(ctx context.Context, token string) (model.Invite, error)
	SetInviteStatus(ctx context.Context, token string, status model.InviteStatus) error

	InsertPost(ctx context.Context, p model.Post) (model.Post, error)
	IncrementPostViews(ctx context.Context, id int64) (int64, error)
	FeedForUser(ctx context.Context, userID int64) ([]model.FeedItem, error)
	DeletePostsBefore(ctx context.Context, date string) (int64, error)
}

// Repository is Queries plus a unit of work. fn receives Queries bound to
// the transaction; returning an error rolls everything back.
type Repository interface {
	Queries
	InTx(ctx context.Context, fn func(q Queries) error) error
}
