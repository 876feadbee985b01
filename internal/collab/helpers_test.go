package collab

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"retroboard/internal/events"
	"retroboard/internal/model"
	"retroboard/internal/store"
)

var testNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

type fixture struct {
	s   *store.Store
	bus *events.Bus
	e   *Engine
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	s := setupTestStore(t)
	bus := events.NewBus()
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithPublisher(bus),
		WithRandom(&seqReader{}),
	}
	return &fixture{s: s, bus: bus, e: New(s, append(base, opts...)...)}
}

// seqReader fills the nth read with byte n, so tokens are predictable and
// distinct within a fixture.
type seqReader struct{ n byte }

func (r *seqReader) Read(p []byte) (int, error) {
	r.n++
	for i := range p {
		p[i] = r.n
	}
	return len(p), nil
}

func (f *fixture) user(t *testing.T, phone, tag string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := f.s.InsertUser(ctx, phone, "", false, testNow)
	require.NoError(t, err)
	require.NoError(t, f.s.SetUserIdentity(ctx, id, tag, "Name "+tag))
	return id
}

func (f *fixture) board(t *testing.T, name string, creator int64) int64 {
	t.Helper()
	id, err := f.e.CreateBoard(context.Background(), name, "blue", []int64{creator})
	require.NoError(t, err)
	return id
}

func (f *fixture) feedTexts(t *testing.T, userID int64) []string {
	t.Helper()
	items, err := f.e.FeedForUser(context.Background(), userID)
	require.NoError(t, err)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func columnByName(t *testing.T, v model.BoardView, name string) model.Column {
	t.Helper()
	for _, c := range v.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return model.Column{}
}
