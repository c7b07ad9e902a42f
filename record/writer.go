package record

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/event"
)

// Saver persists a run, satisfied by *Store
type Saver interface {
	Save(ctx context.Context, run Run) error
}

// saveTimeout bounds a single write so Close cannot hang on a stuck database
const saveTimeout = 5 * time.Second

// Writer moves ledger writes off the simulation goroutine
// It subscribes to PlayerDestroyed and queues the summary for a background saver
type Writer struct {
	store  Saver
	seed   func() uint64
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Run
	done   chan struct{}

	saved   atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// NewWriter creates a writer with a queue of size entries and starts its goroutine
// seed reports the seed of the run being recorded, nil records 0
func NewWriter(store Saver, size int, seed func() uint64, log zerolog.Logger) *Writer {
	if size <= 0 {
		size = 1
	}
	w := &Writer{
		store:  store,
		seed:   seed,
		logger: log.With().Str("component", "record_writer").Logger(),
		queue:  make(chan Run, size),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// EventTypes implements event.Handler
func (w *Writer) EventTypes() []event.EventType {
	return []event.EventType{event.EventPlayerDestroyed}
}

// HandleEvent implements event.Handler
func (w *Writer) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PlayerDestroyedPayload)
	if !ok {
		return
	}
	var seed uint64
	if w.seed != nil {
		seed = w.seed()
	}
	w.Enqueue(FromSummary(p.Summary, seed))
}

// Enqueue queues run without blocking, false when full or closed
func (w *Writer) Enqueue(run Run) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- run:
		return true
	default:
		w.dropped.Add(1)
		w.logger.Warn().Str("run", run.ID).Int64("score", run.Score).Msg("ledger queue full, run not recorded")
		return false
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for run := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := w.store.Save(ctx, run)
		cancel()
		if err != nil {
			w.failed.Add(1)
			w.logger.Error().Err(err).Str("run", run.ID).Msg("failed to record run")
			continue
		}
		w.saved.Add(1)
		w.logger.Debug().Str("run", run.ID).Int64("score", run.Score).Msg("run recorded")
	}
}

// Close stops accepting runs and waits for queued writes to finish
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}

func (w *Writer) Saved() uint64   { return w.saved.Load() }
func (w *Writer) Failed() uint64  { return w.failed.Load() }
func (w *Writer) Dropped() uint64 { return w.dropped.Load() }
