// Package poller watches asynchronous verifications. Each watch is an
// explicit cancellable task: it polls at a fixed interval, keeps only the
// latest snapshot, and stops on the first terminal answer, on
// cancellation, or after a bounded number of attempts.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kycflow/gateway/types"
	"github.com/kycflow/gateway/utils/logger"
)

// Fetcher fetches the current state of a verification.
type Fetcher interface {
	GetVerificationSnapshot(ctx context.Context, verificationID string) (*types.VerificationSnapshot, error)
}

type ErrWatchNotFound struct{}

func (e ErrWatchNotFound) Error() string { return "watch not found" }

// Status is the externally visible state of one watch.
type Status struct {
	ID             string                      `json:"id"`
	VerificationID string                      `json:"verification_id"`
	Snapshot       *types.VerificationSnapshot `json:"snapshot,omitempty"`
	Attempts       int                         `json:"attempts"`
	Done           bool                        `json:"done"`
	Terminal       bool                        `json:"terminal"`
	LastError      string                      `json:"last_error,omitempty"`
	StartedAt      time.Time                   `json:"started_at"`
	FinishedAt     *time.Time                  `json:"finished_at,omitempty"`
}

type watch struct {
	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// Watcher owns all live watches.
type Watcher struct {
	mu          sync.RWMutex
	watches     map[string]*watch
	fetcher     Fetcher
	interval    time.Duration
	maxAttempts int
}

// NewWatcher builds a watcher polling every interval, giving up after
// maxAttempts polls without a terminal answer.
func NewWatcher(fetcher Fetcher, interval time.Duration, maxAttempts int) *Watcher {
	return &Watcher{
		watches:     make(map[string]*watch),
		fetcher:     fetcher,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// Watch starts polling the given verification and returns the watch id.
// The first poll happens immediately.
func (w *Watcher) Watch(verificationID string) Status {
	ctx, cancel := context.WithCancel(context.Background())

	entry := &watch{
		status: Status{
			ID:             uuid.New().String(),
			VerificationID: verificationID,
			StartedAt:      time.Now(),
		},
		cancel: cancel,
	}

	w.mu.Lock()
	w.watches[entry.status.ID] = entry
	w.mu.Unlock()

	go w.run(ctx, entry)

	return entry.snapshotStatus()
}

func (w *Watcher) run(ctx context.Context, entry *watch) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if done := w.poll(ctx, entry); done {
			return
		}

		select {
		case <-ctx.Done():
			entry.finish()
			return
		case <-ticker.C:
		}
	}
}

// poll performs one fetch and reports whether the watch is finished.
func (w *Watcher) poll(ctx context.Context, entry *watch) bool {
	snapshot, err := w.fetcher.GetVerificationSnapshot(ctx, entry.status.VerificationID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.status.Attempts++
	if err != nil {
		// A failed poll is retried at the next tick; the previous
		// snapshot stays in place.
		entry.status.LastError = err.Error()
		logger.Warnf("verification poll %s attempt %d failed: %v",
			entry.status.VerificationID, entry.status.Attempts, err)
	} else {
		entry.status.LastError = ""
		entry.status.Snapshot = snapshot
		if snapshot.Terminal() {
			entry.status.Terminal = true
			entry.finishLocked()
			return true
		}
	}

	if entry.status.Attempts >= w.maxAttempts {
		logger.Warnf("verification poll %s gave up after %d attempts",
			entry.status.VerificationID, entry.status.Attempts)
		entry.finishLocked()
		return true
	}
	return false
}

// Get returns the current status of a watch.
func (w *Watcher) Get(id string) (Status, error) {
	w.mu.RLock()
	entry, ok := w.watches[id]
	w.mu.RUnlock()
	if !ok {
		return Status{}, ErrWatchNotFound{}
	}
	return entry.snapshotStatus(), nil
}

// Cancel stops a watch. The latest snapshot remains readable until the
// watch is swept.
func (w *Watcher) Cancel(id string) error {
	w.mu.RLock()
	entry, ok := w.watches[id]
	w.mu.RUnlock()
	if !ok {
		return ErrWatchNotFound{}
	}
	entry.cancel()
	return nil
}

// Sweep removes finished watches idle longer than the retention window.
// Run periodically by the cron scheduler.
func (w *Watcher) Sweep(retention time.Duration) {
	cutoff := time.Now().Add(-retention)

	w.mu.Lock()
	defer w.mu.Unlock()

	for id, entry := range w.watches {
		status := entry.snapshotStatus()
		if status.Done && status.FinishedAt != nil && status.FinishedAt.Before(cutoff) {
			delete(w.watches, id)
		}
	}
}

// Len returns the number of tracked watches, finished ones included.
func (w *Watcher) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.watches)
}

func (e *watch) snapshotStatus() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *watch) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finishLocked()
}

func (e *watch) finishLocked() {
	if e.status.Done {
		return
	}
	e.status.Done = true
	now := time.Now()
	e.status.FinishedAt = &now
	e.cancel()
}
