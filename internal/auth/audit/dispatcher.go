package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
)

const (
	defaultBufferSize  = 256
	defaultSinkTimeout = 5 * time.Second
)

// Dispatcher decouples auth operations from audit persistence. Events are
// queued onto a buffered channel and written by a single background worker.
// When the buffer is full the event is dropped and counted rather than
// blocking the caller.
type Dispatcher struct {
	sink    Sink
	logger  *slog.Logger
	events  chan domain.AuditEvent
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64

	closeOnce sync.Once
}

// NewDispatcher starts the background worker. Close must be called to
// drain pending events before shutdown.
func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		events: make(chan domain.AuditEvent, defaultBufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Record enqueues an event. It never blocks and never returns an error;
// audit failures must not surface to the authenticating user.
func (d *Dispatcher) Record(e domain.AuditEvent) {
	select {
	case d.events <- e:
	default:
		n := d.dropped.Add(1)
		d.logger.Warn("audit event dropped, buffer full",
			slog.String("action", string(e.Action)),
			slog.Int64("total_dropped", n),
		)
	}
}

// Dropped reports how many events were discarded due to a full buffer.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case e := <-d.events:
			d.write(e)
		case <-d.done:
			// Drain whatever is still queued.
			for {
				select {
				case e := <-d.events:
					d.write(e)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) write(e domain.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSinkTimeout)
	defer cancel()

	if err := d.sink.Record(ctx, e); err != nil {
		d.logger.Warn("failed to record audit event",
			slog.String("action", string(e.Action)),
			slog.String("user_id", e.UserID),
			slog.String("error", err.Error()),
		)
	}
}
