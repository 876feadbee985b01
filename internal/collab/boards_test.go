package collab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroboard/internal/events"
	"retroboard/internal/model"
	"retroboard/internal/store"
)

func TestCreateBoardCreatorIsOnlyMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "+1", "@creator")
	other := f.user(t, "+2", "@other")

	id, err := f.e.CreateBoard(ctx, "  Weekly  ", "Blue", []int64{creator, other})
	require.NoError(t, err)

	members, err := f.e.ListMembers(ctx, id)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, creator, members[0].UserID)

	v, err := f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Weekly", v.Name)
	assert.Equal(t, "blue", v.Color)
	require.NotNil(t, v.CreatorID)
	assert.Equal(t, creator, *v.CreatorID)
}

func TestCreateBoardValidation(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "+1", "@u")

	cases := []struct {
		name    string
		board   string
		color   string
		members []int64
	}{
		{"empty name", "   ", "blue", []int64{u}},
		{"no members", "Retro", "blue", nil},
		{"zero creator", "Retro", "blue", []int64{0}},
		{"unknown creator", "Retro", "blue", []int64{999}},
		{"unknown color", "Retro", "magenta", []int64{u}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.e.CreateBoard(context.Background(), tc.board, tc.color, tc.members)
			assert.ErrorIs(t, err, model.ErrBadRequest)
		})
	}

	boards, err := f.e.BoardsForUser(context.Background(), u)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestSprintRetroScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "+7", "@seven")

	id, err := f.e.CreateBoard(ctx, "Sprint Retro", "blue", []int64{u})
	require.NoError(t, err)

	boards, err := f.e.BoardsForUser(ctx, u)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	ok, err := f.e.IsMember(ctx, id, u)
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	var names []string
	for _, c := range v.Columns {
		names = append(names, c.Name+"/"+c.Color)
		assert.Empty(t, c.Records)
	}
	assert.Equal(t, []string{
		"Facts/white", "Emotions/red", "Advantages/yellow",
		"Criticism/black", "Decision/green", "Control/blue",
	}, names)

	green, err := f.e.ResolveColor(ctx, "green")
	require.NoError(t, err)
	col, err := f.e.AddColumn(ctx, id, "Extra", green, u)
	require.NoError(t, err)
	v, err = f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Len(t, v.Columns, 7)

	require.NoError(t, f.e.RenameColumn(ctx, id, col, "Notes", u))
	v, err = f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Notes", v.Columns[6].Name)
	assert.Contains(t, f.feedTexts(t, u), `Renamed column "Extra" to "Notes"`)

	require.NoError(t, f.e.AddRecord(ctx, id, col, "note", u))
	require.NoError(t, f.e.DeleteBoard(ctx, id))

	_, err = f.e.GetBoard(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	cols, err := f.s.ColumnsByBoard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, cols)
	recs, err := f.s.RecordsByBoard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, recs)

	assert.ErrorIs(t, f.e.DeleteBoard(ctx, id), model.ErrNotFound)
}

func TestCreateBoardSkipsMissingDefaultColor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "+1", "@u")
	_, err := f.s.DB().ExecContext(ctx, `delete from colors where name='black'`)
	require.NoError(t, err)

	id := f.board(t, "Retro", u)
	v, err := f.e.GetBoard(ctx, id)
	require.NoError(t, err)
	require.Len(t, v.Columns, 5)
	for _, c := range v.Columns {
		assert.NotEqual(t, "Criticism", c.Name)
	}
}

// failingRepo breaks the nth column insert inside a transaction.
type failingRepo struct {
	*store.Store
	failAt int
}

func (r *failingRepo) InTx(ctx context.Context, fn func(q store.Queries) error) error {
	return r.Store.InTx(ctx, func(q store.Queries) error {
		return fn(&failingQueries{Queries: q, failAt: r.failAt})
	})
}

type failingQueries struct {
	store.Queries
	failAt int
	n      int
}

func (q *failingQueries) InsertColumn(ctx context.Context, boardID int64, name string, colorID int64) (int64, error) {
	q.n++
	if q.n == q.failAt {
		return 0, errors.New("disk full")
	}
	return q.Queries.InsertColumn(ctx, boardID, name, colorID)
}

func TestCreateBoardRollsBackOnColumnFailure(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	u, err := s.InsertUser(ctx, "+1", "", false, testNow)
	require.NoError(t, err)

	bus := events.NewBus()
	sub, cancel := bus.Subscribe(0)
	defer cancel()
	e := New(&failingRepo{Store: s, failAt: 4}, WithPublisher(bus))

	_, err = e.CreateBoard(ctx, "Doomed", "blue", []int64{u})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	boards, err := s.BoardsForUser(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, boards)
	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `select count(*) from boards`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, s.DB().QueryRowContext(ctx, `select count(*) from board_columns`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, s.DB().QueryRowContext(ctx, `select count(*) from posts`).Scan(&n))
	assert.Zero(t, n)
	assert.Len(t, sub, 0)
}

func TestFeedEventPublishedAfterCommit(t *testing.T) {
	f := newFixture(t)
	sub, cancel := f.bus.Subscribe(0)
	defer cancel()
	u := f.user(t, "+1", "@u")

	id := f.board(t, "Retro", u)

	require.Len(t, sub, 1)
	ev := <-sub
	assert.Equal(t, events.FeedCreated, ev.Type)
	assert.Equal(t, id, ev.BoardID)
	p, ok := ev.Payload.(model.Post)
	require.True(t, ok)
	assert.Equal(t, `Created board "Retro"`, p.Text)
	assert.Equal(t, "2024-05-01", p.Date)
	assert.Equal(t, "12:30:00", p.Time)
}

// snapshotRepo counts the transactions opened on the store.
type snapshotRepo struct {
	*store.Store
	txs int
}

func (r *snapshotRepo) InTx(ctx context.Context, fn func(q store.Queries) error) error {
	r.txs++
	return r.Store.InTx(ctx, fn)
}

func TestGetBoardReadsInOneTransaction(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	u, err := s.InsertUser(ctx, "+1", "", false, testNow)
	require.NoError(t, err)
	repo := &snapshotRepo{Store: s}
	e := New(repo, WithClock(func() time.Time { return testNow }))

	id, err := e.CreateBoard(ctx, "Retro", "blue", []int64{u})
	require.NoError(t, err)
	repo.txs = 0

	v, err := e.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Len(t, v.Columns, 6)
	assert.Equal(t, 1, repo.txs)

	_, err = e.GetBoard(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
