// Package lifecycle tracks one outbound request at a time through
// pending, succeeded, failed and cancelled states.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status of the tracked request.
type Status string

// Statuses
const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// ErrInFlight is returned by Begin while a request is pending.
var ErrInFlight = errors.New("a request is already in progress")

// TimeoutError is recorded when a request exceeds the tracker's timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.Timeout)
}

// Snapshot is the observable state of a tracker.
type Snapshot[T any] struct {
	ID         string     `json:"id,omitempty"`
	Status     Status     `json:"status"`
	Result     *T         `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Func performs the request. It must honor ctx.
type Func[T any] func(ctx context.Context) (T, error)

// Tracker runs at most one request at a time.
type Tracker[T any] struct {
	name      string
	timeout   time.Duration
	errorText func(error) string

	mu     sync.Mutex
	cur    Snapshot[T]
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Tracker.
type Option[T any] func(*Tracker[T])

// WithErrorText controls how failures are turned into display strings.
func WithErrorText[T any](fn func(error) string) Option[T] {
	return func(t *Tracker[T]) { t.errorText = fn }
}

// NewTracker creates an idle tracker. A zero timeout disables the deadline.
func NewTracker[T any](name string, timeout time.Duration, opts ...Option[T]) *Tracker[T] {
	t := &Tracker[T]{
		name:      name,
		timeout:   timeout,
		errorText: func(err error) string { return err.Error() },
		cur:       Snapshot[T]{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin starts fn in the background and returns the pending snapshot.
func (t *Tracker[T]) Begin(fn Func[T]) (Snapshot[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur.Status == StatusPending {
		return t.cur, ErrInFlight
	}

	ctx, cancel := context.WithCancel(context.Background())
	if t.timeout > 0 {
		ctx, cancel = contextWithTimeout(ctx, cancel, t.timeout)
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	t.cur = Snapshot[T]{ID: id, Status: StatusPending, StartedAt: &now}
	t.cancel = cancel

	log.Printf("[%s] request %s started", t.name, id)
	t.wg.Add(1)
	go t.run(ctx, cancel, id, fn)
	return t.cur, nil
}

func contextWithTimeout(parent context.Context, parentCancel context.CancelFunc, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		cancel()
		parentCancel()
	}
}

func (t *Tracker[T]) run(ctx context.Context, cancel context.CancelFunc, id string, fn Func[T]) {
	defer t.wg.Done()
	defer cancel()

	result, err := fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Cancelled or superseded requests never overwrite the current snapshot.
	if t.cur.ID != id || t.cur.Status != StatusPending {
		log.Printf("[%s] request %s finished after cancellation, result discarded", t.name, id)
		return
	}

	now := time.Now().UTC()
	t.cur.FinishedAt = &now
	t.cancel = nil

	switch {
	case err == nil:
		t.cur.Status = StatusSucceeded
		t.cur.Result = &result
		log.Printf("[%s] request %s succeeded", t.name, id)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		t.cur.Status = StatusFailed
		t.cur.Error = (&TimeoutError{Timeout: t.timeout}).Error()
		log.Printf("[%s] request %s timed out after %s", t.name, id, t.timeout)
	default:
		t.cur.Status = StatusFailed
		t.cur.Error = t.errorText(err)
		log.Printf("[%s] request %s failed: %v", t.name, id, err)
	}
}

// Snapshot returns the current state.
func (t *Tracker[T]) Snapshot() Snapshot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur
}

// Cancel aborts a pending request. It reports whether anything was pending.
func (t *Tracker[T]) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur.Status != StatusPending {
		return false
	}
	now := time.Now().UTC()
	t.cur.Status = StatusCancelled
	t.cur.FinishedAt = &now
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	log.Printf("[%s] request %s cancelled", t.name, t.cur.ID)
	return true
}

// Reset cancels any pending request and returns the tracker to idle.
func (t *Tracker[T]) Reset() {
	t.Cancel()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = Snapshot[T]{Status: StatusIdle}
}

// Wait blocks until every started request has returned.
func (t *Tracker[T]) Wait() {
	t.wg.Wait()
}

// Shutdown cancels a pending request and waits for it to return.
func (t *Tracker[T]) Shutdown() {
	t.Cancel()
	t.Wait()
}
