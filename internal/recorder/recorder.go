package recorder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrQueueFull is reported to the notifier when a record is dropped.
	ErrQueueFull = errors.New("recorder queue full")
	// ErrClosed is reported for records submitted after Close.
	ErrClosed = errors.New("recorder closed")
)

const (
	DefaultQueueSize    = 256
	DefaultWorkers      = 4
	DefaultWriteTimeout = 5 * time.Second
)

// Notifier is told about every record that could not be persisted.
type Notifier interface {
	NotifyFailure(rec domain.ForecastRecord, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(rec domain.ForecastRecord, err error)

func (f NotifierFunc) NotifyFailure(rec domain.ForecastRecord, err error) { f(rec, err) }

type Config struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// Stats is a snapshot of the recorder counters.
type Stats struct {
	Submitted int64 `json:"submitted"`
	Written   int64 `json:"written"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// Recorder persists forecast records in the background. Submit never blocks
// the caller; a full queue drops the record.
type Recorder struct {
	repo     repository.ForecastRepository
	notifier Notifier
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan domain.ForecastRecord

	base   context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	submitted atomic.Int64
	written   atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// New starts cfg.Workers writers. notifier may be nil.
func New(repo repository.ForecastRepository, notifier Notifier, cfg Config) *Recorder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if notifier == nil {
		notifier = NotifierFunc(func(domain.ForecastRecord, error) {})
	}

	base, cancel := context.WithCancel(context.Background())
	r := &Recorder{
		repo:     repo,
		notifier: notifier,
		timeout:  cfg.WriteTimeout,
		queue:    make(chan domain.ForecastRecord, cfg.QueueSize),
		base:     base,
		cancel:   cancel,
		group:    &errgroup.Group{},
	}

	for i := 0; i < cfg.Workers; i++ {
		workerID := i
		r.group.Go(func() error {
			r.work(workerID)
			return nil
		})
	}

	return r
}

// Submit enqueues rec and reports whether it was accepted.
func (r *Recorder) Submit(rec domain.ForecastRecord) bool {
	r.submitted.Add(1)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.reject(rec, ErrClosed)
		return false
	}

	select {
	case r.queue <- rec:
		return true
	default:
		r.reject(rec, ErrQueueFull)
		return false
	}
}

func (r *Recorder) reject(rec domain.ForecastRecord, err error) {
	r.dropped.Add(1)
	log.Warn().Err(err).Str("owner", rec.OwnerID).Str("medicine", rec.Medicine).Msg("forecast record dropped")
	r.notifier.NotifyFailure(rec, err)
}

func (r *Recorder) work(workerID int) {
	for rec := range r.queue {
		ctx, cancel := context.WithTimeout(r.base, r.timeout)
		_, err := r.repo.Insert(ctx, rec)
		cancel()

		if err != nil {
			r.failed.Add(1)
			log.Error().Err(err).
				Int("worker", workerID).
				Str("owner", rec.OwnerID).
				Str("medicine", rec.Medicine).
				Msg("failed to persist forecast record")
			r.notifier.NotifyFailure(rec, err)
			continue
		}
		r.written.Add(1)
	}
}

// Stats returns the current counters.
func (r *Recorder) Stats() Stats {
	return Stats{
		Submitted: r.submitted.Load(),
		Written:   r.written.Load(),
		Failed:    r.failed.Load(),
		Dropped:   r.dropped.Load(),
	}
}

// Close stops accepting records and waits for queued ones to be written. If ctx
// expires first, in-flight writes are cancelled and ctx.Err() is returned.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = r.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
