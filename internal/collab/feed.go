package collab

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"retroboard/internal/model"
	"retroboard/internal/store"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d:[0-5]\d$`)
)

// Entry is a feed entry to append. Empty Date and Time default to the
// current UTC date and time.
type Entry struct {
	BoardID  *int64
	AuthorID int64
	Text     string
	Picture  string
	Date     string
	Time     string
}

// Record appends a feed entry on its own.
func (e *Engine) Record(ctx context.Context, en Entry) (model.Post, error) {
	var p model.Post
	err := e.mutate(ctx, func(t *txn) error {
		if err := t.record(ctx, en); err != nil {
			return err
		}
		p = t.posts[len(t.posts)-1]
		return nil
	})
	if err != nil {
		return model.Post{}, fmt.Errorf("record feed entry: %w", err)
	}
	return p, nil
}

// CreatePost is a user-written post rather than an engine side effect.
func (e *Engine) CreatePost(ctx context.Context, en Entry) (model.Post, error) {
	if strings.TrimSpace(en.Text) == "" {
		return model.Post{}, fmt.Errorf("create post: %w", model.Errorf(model.ErrBadRequest, "post text cannot be empty"))
	}
	if en.AuthorID <= 0 {
		return model.Post{}, fmt.Errorf("create post: %w", model.Errorf(model.ErrBadRequest, "user id is required"))
	}
	return e.Record(ctx, en)
}

func (e *Engine) insertEntry(ctx context.Context, q store.Queries, en Entry) (model.Post, error) {
	now := e.now().UTC()
	date := en.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	} else if !dateRe.MatchString(date) {
		return model.Post{}, model.Errorf(model.ErrBadRequest, "invalid date format, want YYYY-MM-DD")
	}
	clock := en.Time
	if clock == "" {
		clock = now.Format(time.TimeOnly)
	} else if !timeRe.MatchString(clock) {
		return model.Post{}, model.Errorf(model.ErrBadRequest, "invalid time format, want HH:MM:SS")
	} else if len(clock) == len("9:00:00") {
		clock = "0" + clock
	}
	return q.InsertPost(ctx, model.Post{
		UserID:  en.AuthorID,
		BoardID: en.BoardID,
		Text:    en.Text,
		Picture: en.Picture,
		Date:    date,
		Time:    clock,
	})
}

func (e *Engine) IncrementViews(ctx context.Context, postID int64) (int64, error) {
	v, err := e.repo.IncrementPostViews(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", notFound(err, "post"))
	}
	return v, nil
}

// FeedForUser lists entries of boards the user belongs to, newest first.
func (e *Engine) FeedForUser(ctx context.Context, userID int64) ([]model.FeedItem, error) {
	items, err := e.repo.FeedForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("feed for user: %w", err)
	}
	return items, nil
}

// PurgeFeed deletes entries dated more than olderThanDays days ago and
// returns how many went.
func (e *Engine) PurgeFeed(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("purge feed: %w", model.Errorf(model.ErrBadRequest, "days must be positive"))
	}
	cutoff := e.now().UTC().AddDate(0, 0, -olderThanDays).Format(time.DateOnly)
	n, err := e.repo.DeletePostsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge feed: %w", err)
	}
	return n, nil
}
