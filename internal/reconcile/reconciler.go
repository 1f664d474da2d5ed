// Package reconcile merges the locally persisted collection with the remote
// snapshot on startup and pushes local state back out after changes.
//
// The sync design is last-write-wins by accepted limitation: the push sends
// the whole collection with no version check, so two instances saving within
// the same debounce window silently lose one side's changes. Sync status is
// informational only and never gates mutations.
package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"stockledger/internal/remote"
	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
)

// Status describes the last observed sync outcome.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// LocalStore is the local persistence capability.
type LocalStore interface {
	Load() (models.Snapshot, bool, error)
	Save(snapshot models.Snapshot) error
}

// Reconciler owns the debounced remote push. Each collection change cancels
// any pending push and reschedules it, so only the final state after a burst
// of edits ever goes out.
type Reconciler struct {
	remote    remote.Store
	local     LocalStore
	log       *zap.Logger
	pushDelay time.Duration

	mu       sync.Mutex
	status   Status
	onStatus func(Status)
	timer    *time.Timer
	pending  *models.Snapshot
}

func NewReconciler(remoteStore remote.Store, local LocalStore, pushDelay time.Duration, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		remote:    remoteStore,
		local:     local,
		log:       logger,
		pushDelay: pushDelay,
		status:    StatusIdle,
	}
}

// Load resolves the startup collection: remote snapshot first, then the local
// snapshot, then an empty collection. A failed or empty remote fetch is
// recorded as status and never fatal.
func (r *Reconciler) Load(ctx context.Context) []models.Item {
	r.setStatus(StatusLoading)

	if r.remote != nil {
		snapshot, found, err := r.remote.FetchSnapshot(ctx)
		switch {
		case err == nil && found:
			r.setStatus(StatusSuccess)
			return snapshot.CloneItems()
		case err != nil:
			r.log.Warn("remote fetch failed, falling back to local snapshot",
				zap.Error(&custom_error.SyncFailure{Op: "fetch", Err: err}))
			r.setStatus(StatusError)
		default:
			// Remote reachable but holds nothing yet.
			r.setStatus(StatusIdle)
		}
	} else {
		r.setStatus(StatusIdle)
	}

	snapshot, found, err := r.local.Load()
	if err != nil {
		r.log.Warn("local snapshot unreadable, starting empty", zap.Error(err))
		return []models.Item{}
	}
	if !found {
		return []models.Item{}
	}

	return snapshot.CloneItems()
}

// CollectionChanged persists the snapshot locally right away and reschedules
// the debounced remote push from this change.
func (r *Reconciler) CollectionChanged(snapshot models.Snapshot) {
	if err := r.local.Save(snapshot); err != nil {
		r.log.Error("local snapshot save failed", zap.Error(err))
	}

	if r.remote == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = &snapshot
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.pushDelay, func() {
		r.pushPending(context.Background())
	})
}

// Flush pushes any pending snapshot immediately, cancelling the scheduled
// push. Deterministic alternative to waiting out the debounce.
func (r *Reconciler) Flush(ctx context.Context) error {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()

	return r.pushPending(ctx)
}

// HasPendingPush reports whether a snapshot is waiting to go out.
func (r *Reconciler) HasPendingPush() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

func (r *Reconciler) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Close cancels any scheduled push without sending it. An abandoned push is
// rescheduled by the next mutation; there is no retry.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Reconciler) pushPending(ctx context.Context) error {
	r.mu.Lock()
	snapshot := r.pending
	r.pending = nil
	r.mu.Unlock()

	if snapshot == nil || r.remote == nil {
		return nil
	}

	if err := r.remote.PushSnapshot(ctx, *snapshot); err != nil {
		failure := &custom_error.SyncFailure{Op: "push", Err: err}
		r.log.Warn("remote push failed, keeping local copy", zap.Error(failure))
		r.setStatus(StatusError)
		return failure
	}

	r.setStatus(StatusSuccess)
	return nil
}

// OnStatusChange registers a listener called after every status transition,
// outside the reconciler lock. Set it before the first Load or mutation.
func (r *Reconciler) OnStatusChange(fn func(Status)) {
	r.mu.Lock()
	r.onStatus = fn
	r.mu.Unlock()
}

func (r *Reconciler) setStatus(status Status) {
	r.mu.Lock()
	r.status = status
	fn := r.onStatus
	r.mu.Unlock()

	if fn != nil {
		fn(status)
	}
}
