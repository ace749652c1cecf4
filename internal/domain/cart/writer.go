// internal/domain/cart/writer.go
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDebounceWindow is the quiescence period after which a pending
// cart write flushes.
const DefaultDebounceWindow = 500 * time.Millisecond

// SaveFunc persists a cart snapshot
type SaveFunc func(ctx context.Context, items Items) error

// Writer is a bounded-delay write-back cache for cart state: one pending
// slot holding the latest snapshot plus a cancellable timer. Every Schedule
// call within the quiescence window replaces the pending snapshot and
// restarts the timer (trailing-edge debounce), so N rapid mutations collapse
// into a single write of the final state.
//
// A failed write is logged and dropped; the in-memory cart remains
// authoritative and the next mutation schedules another attempt.
type Writer struct {
	mu      sync.Mutex
	delay   time.Duration
	save    SaveFunc
	logger  logrus.FieldLogger
	timer   *time.Timer
	pending Items
	stopped bool
}

// NewWriter creates a debounced cart writer
func NewWriter(delay time.Duration, save SaveFunc, logger logrus.FieldLogger) *Writer {
	return &Writer{
		delay:  delay,
		save:   save,
		logger: logger,
	}
}

// Schedule records the latest cart snapshot and (re)starts the quiescence
// timer. The snapshot is cloned so later mutations cannot leak into an
// in-flight write.
func (w *Writer) Schedule(items Items) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	w.pending = items.Clone()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// Flush writes any pending snapshot immediately, cancelling the timer.
// Used on checkout and session teardown where lag is not acceptable.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if pending == nil || w.save == nil {
		return nil
	}
	return w.save(ctx, pending)
}

// Stop cancels any pending write without flushing it
func (w *Writer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
}

func (w *Writer) fire() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.timer = nil
	stopped := w.stopped
	w.mu.Unlock()

	if stopped || pending == nil || w.save == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.save(ctx, pending); err != nil {
		// Not retried here. The in-memory state stays authoritative and the
		// next mutation's debounce cycle will attempt another write.
		w.logger.WithError(err).Warn("cart persistence write failed")
	}
}
