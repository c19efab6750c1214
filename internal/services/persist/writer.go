package persist

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/repositories/archive"
	"github.com/NilsMeier1812/DDF5/internal/repositories/session"
)

// DefaultQueueSize is used when Config.QueueSize is not set
const DefaultQueueSize = 256

// Config holds configuration for the writer
type Config struct {
	// Repository dependencies
	SessionRepo session.Repository
	ArchiveRepo archive.Repository

	// QueueSize bounds the number of pending writes
	QueueSize int
}

type operation struct {
	name    string
	run     func(ctx context.Context) error
	reached chan struct{}
}

// Writer performs store writes on its own goroutine in enqueue order.
// Enqueueing never blocks: a full queue drops the write. Failures are logged
// and counted, never retried and never reported to the caller.
type Writer struct {
	sessionRepo session.Repository
	archiveRepo archive.Repository
	queue       chan operation

	dropped  atomic.Int64
	failures atomic.Int64
}

// New creates a new writer. Run must be started for writes to happen.
func New(cfg *Config) (*Writer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.ArchiveRepo == nil {
		return nil, errors.New("archive repository cannot be nil")
	}

	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	return &Writer{
		sessionRepo: cfg.SessionRepo,
		archiveRepo: cfg.ArchiveRepo,
		queue:       make(chan operation, size),
	}, nil
}

// Run executes queued writes until ctx is done, then drains what is
// already queued so a graceful shutdown does not lose accepted writes.
// Cancelling ctx stops the loop but never an individual write.
func (w *Writer) Run(ctx context.Context) {
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case op := <-w.queue:
			w.execute(writeCtx, op)
		case <-ctx.Done():
			w.drain(writeCtx)
			return
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	for {
		select {
		case op := <-w.queue:
			w.execute(ctx, op)
		default:
			return
		}
	}
}

func (w *Writer) execute(ctx context.Context, op operation) {
	if op.reached != nil {
		close(op.reached)
		return
	}

	if err := op.run(ctx); err != nil {
		w.failures.Add(1)
		log.Warn().Err(err).Str("op", op.name).Msg("persist: write failed")
	}
}

func (w *Writer) enqueue(op operation) {
	select {
	case w.queue <- op:
	default:
		w.dropped.Add(1)
		log.Warn().Str("op", op.name).Msg("persist: queue full, dropping write")
	}
}

// SaveSession writes a session document. The caller must not mutate the
// session afterwards; pass a Snapshot.
func (w *Writer) SaveSession(snapshot *models.Session) {
	w.enqueue(operation{
		name: "save session " + snapshot.ID,
		run: func(ctx context.Context) error {
			return w.sessionRepo.SaveSession(ctx, &session.SaveSessionInput{
				Session: snapshot,
			})
		},
	})
}

// SetActiveSession points the store at a session
func (w *Writer) SetActiveSession(sessionID string) {
	w.enqueue(operation{
		name: "set active session " + sessionID,
		run: func(ctx context.Context) error {
			return w.sessionRepo.SetActiveSessionID(ctx, &session.SetActiveSessionIDInput{
				SessionID: sessionID,
			})
		},
	})
}

// RetireSession records a replaced session
func (w *Writer) RetireSession(sessionID string, retiredAt time.Time) {
	w.enqueue(operation{
		name: "retire session " + sessionID,
		run: func(ctx context.Context) error {
			return w.sessionRepo.RetireSession(ctx, &session.RetireSessionInput{
				SessionID: sessionID,
				RetiredAt: retiredAt,
			})
		},
	})
}

// AppendRoundBlock appends an archived round-block
func (w *Writer) AppendRoundBlock(block *models.RoundBlock) {
	w.enqueue(operation{
		name: "append round block",
		run: func(ctx context.Context) error {
			return w.archiveRepo.AppendRoundBlock(ctx, &archive.AppendRoundBlockInput{
				Block: block,
			})
		},
	})
}

// Flush waits until every write enqueued before the call has been attempted
func (w *Writer) Flush(ctx context.Context) error {
	reached := make(chan struct{})

	select {
	case w.queue <- operation{name: "flush", reached: reached}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns the number of writes discarded because the queue was full
func (w *Writer) Dropped() int64 {
	return w.dropped.Load()
}

// Failures returns the number of writes the store rejected
func (w *Writer) Failures() int64 {
	return w.failures.Load()
}
