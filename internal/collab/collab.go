// Package collab implements the board collaboration engine: boards and their
// default columns, membership, invites, the column/record hierarchy and the
// activity feed written alongside every board mutation.
package collab

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"time"

	"retroboard/internal/events"
	"retroboard/internal/model"
	"retroboard/internal/store"
)

const DefaultInviteBaseURL = "https://yourapp.com/invite/"

type Engine struct {
	repo          store.Repository
	log           *slog.Logger
	pub           events.Publisher
	now           func() time.Time
	rand          io.Reader
	inviteBaseURL string
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithPublisher sets where committed feed entries are announced.
func WithPublisher(p events.Publisher) Option { return func(e *Engine) { e.pub = p } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithRandom replaces the invite token source.
func WithRandom(r io.Reader) Option { return func(e *Engine) { e.rand = r } }

func WithInviteBaseURL(u string) Option { return func(e *Engine) { e.inviteBaseURL = u } }

func New(repo store.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:          repo,
		log:           slog.Default(),
		pub:           events.Nop{},
		now:           time.Now,
		rand:          rand.Reader,
		inviteBaseURL: DefaultInviteBaseURL,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// txn is one unit of work. Feed entries recorded through it are published
// once the transaction commits.
type txn struct {
	e     *Engine
	q     store.Queries
	posts []model.Post
}

func (t *txn) record(ctx context.Context, en Entry) error {
	p, err := t.e.insertEntry(ctx, t.q, en)
	if err != nil {
		return err
	}
	t.posts = append(t.posts, p)
	return nil
}

func (e *Engine) mutate(ctx context.Context, fn func(t *txn) error) error {
	t := &txn{e: e}
	err := e.repo.InTx(ctx, func(q store.Queries) error {
		t.q = q
		t.posts = t.posts[:0]
		return fn(t)
	})
	if err != nil {
		return err
	}
	for _, p := range t.posts {
		e.announce(ctx, p)
	}
	return nil
}

func (e *Engine) announce(ctx context.Context, p model.Post) {
	ev := events.Event{Type: events.FeedCreated, At: e.now().UTC(), Payload: p}
	if p.BoardID != nil {
		ev.BoardID = *p.BoardID
	}
	if err := e.pub.Publish(ctx, ev); err != nil {
		e.log.Warn("publish feed event", "post_id", p.ID, "err", err)
	}
}

// notFound gives a bare store miss a message naming what was missing.
func notFound(err error, what string) error {
	if errors.Is(err, model.ErrNotFound) {
		var me *model.Error
		if errors.As(err, &me) {
			return err
		}
		return model.Errorf(model.ErrNotFound, "%s not found", what)
	}
	return err
}

func quoted(s string) string { return `"` + s + `"` }
