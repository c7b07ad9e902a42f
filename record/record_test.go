package record

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
)

var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func run(score int64, ended time.Time) Run {
	return Run{ID: uuid.NewString(), Score: score, EndedAt: ended}
}

func TestFromSummary(t *testing.T) {
	id := uuid.New()
	var destroyed [component.KindCount]int
	destroyed[component.KindLight] = 4
	destroyed[component.KindHeavy] = 1
	destroyed[component.KindHazard] = 2

	r := FromSummary(event.RunSummary{
		ID:         id,
		Score:      900,
		Destroyed:  destroyed,
		Collisions: 10,
		ShotsFired: 120,
		Duration:   90500 * time.Millisecond,
		EndedAt:    base,
	}, 42)

	assert.Equal(t, id.String(), r.ID)
	assert.Equal(t, uint64(42), r.Seed)
	assert.Equal(t, int64(900), r.Score)
	assert.Equal(t, 4, r.Light)
	assert.Equal(t, 0, r.Medium)
	assert.Equal(t, 7, r.Destroyed())
	assert.Equal(t, int64(90500), r.DurationMs)
	assert.Equal(t, 120, r.ShotsFired)
}

func TestStoreBestAndRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, ok, err := s.Best(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty ledger has no best")

	first := run(300, base)
	tie := run(300, base.Add(time.Minute))
	low := run(100, base.Add(2*time.Minute))
	for _, r := range []Run{first, tie, low} {
		require.NoError(t, s.Save(ctx, r))
	}

	best, ok, err := s.Best(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, best.ID, "earliest run wins a tie")

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, low.ID, recent[0].ID)
	assert.Equal(t, tie.ID, recent[1].ID)

	none, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestStoreRejectsDuplicateID(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	r := run(50, base)
	require.NoError(t, s.Save(ctx, r))
	assert.Error(t, s.Save(ctx, r))
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, run(700, base)))
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	best, ok, err := s.Best(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(700), best.Score)
	assert.True(t, best.EndedAt.Equal(base))
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), run(10, base)))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWriterRecordsDestroyedEvents(t *testing.T) {
	s := openTemp(t)
	w := NewWriter(s, 4, func() uint64 { return 7 }, zerolog.Nop())

	bus := event.NewBus()
	bus.Subscribe(w)

	id := uuid.New()
	bus.Publish(event.GameEvent{
		Type:    event.EventPlayerDestroyed,
		Payload: &event.PlayerDestroyedPayload{Summary: event.RunSummary{ID: id, Score: 250, EndedAt: base}},
	})
	w.Close()

	assert.Equal(t, uint64(1), w.Saved())
	best, ok, err := s.Best(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id.String(), best.ID)
	assert.Equal(t, uint64(7), best.Seed)

	assert.False(t, w.Enqueue(run(1, base)), "closed writer accepts nothing")
	w.Close()
}

// blockingSaver holds every Save until released
type blockingSaver struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	mu      sync.Mutex
	runs    []Run
	fail    error
}

func (b *blockingSaver) Save(_ context.Context, r Run) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	if b.fail != nil {
		return b.fail
	}
	b.mu.Lock()
	b.runs = append(b.runs, r)
	b.mu.Unlock()
	return nil
}

func TestWriterDropsWhenFull(t *testing.T) {
	saver := &blockingSaver{started: make(chan struct{}), release: make(chan struct{})}
	w := NewWriter(saver, 1, nil, zerolog.Nop())

	require.True(t, w.Enqueue(run(1, base)))
	<-saver.started // first run is in Save, the queue is empty again

	assert.True(t, w.Enqueue(run(2, base)))
	assert.False(t, w.Enqueue(run(3, base)))
	assert.Equal(t, uint64(1), w.Dropped())

	close(saver.release)
	w.Close()
	assert.Len(t, saver.runs, 2)
	assert.Equal(t, uint64(2), w.Saved())
}

func TestWriterCountsFailures(t *testing.T) {
	saver := &blockingSaver{started: make(chan struct{}), release: make(chan struct{}), fail: errors.New("disk full")}
	close(saver.release)
	w := NewWriter(saver, 2, nil, zerolog.Nop())

	w.Enqueue(run(1, base))
	w.Close()
	assert.Equal(t, uint64(1), w.Failed())
	assert.Zero(t, w.Saved())
}
