package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/inventory"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/repository"
)

// Transition is a pure step from one snapshot to the next. It reports
// whether anything changed; an unchanged result is not persisted.
type Transition func(db domain.Database) (domain.Database, bool, error)

// Workspace owns the in-memory snapshot. Every mutation runs under one lock:
// transition, reconcile, persist, then swap. The snapshot is replaced only
// after the store accepted the new document.
type Workspace struct {
	mu       sync.Mutex
	store    repository.DocumentStore
	db       domain.Database
	loaded   bool
	location *time.Location
	now      func() time.Time
}

func NewWorkspace(store repository.DocumentStore, location *time.Location) *Workspace {
	if location == nil {
		location = time.Local
	}
	return &Workspace{store: store, location: location, now: time.Now}
}

// SetClock replaces the wall clock. Tests use it to pin "now".
func (w *Workspace) SetClock(now func() time.Time) {
	w.mu.Lock()
	w.now = now
	w.mu.Unlock()
}

// Now is the current time in the business timezone
func (w *Workspace) Now() time.Time {
	return w.now().In(w.location)
}

func (w *Workspace) Location() *time.Location {
	return w.location
}

// Store exposes the underlying document store for raw export and import
func (w *Workspace) Store() repository.DocumentStore {
	return w.store
}

// Snapshot returns the current database, loading it on first use. Callers
// get their own copy.
func (w *Workspace) Snapshot(ctx context.Context) (domain.Database, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureLoaded(ctx); err != nil {
		return domain.Database{}, err
	}
	return w.db.Clone(), nil
}

// Reload discards the in-memory snapshot and reads the store again.
func (w *Workspace) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.load(ctx)
}

// Apply runs fn against the current snapshot and persists the result. When
// the store reports a concurrent change the snapshot is reloaded and fn is
// run once more against it.
func (w *Workspace) Apply(ctx context.Context, method string, fn Transition) (domain.Database, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureLoaded(ctx); err != nil {
		return domain.Database{}, false, err
	}

	next, changed, err := w.commit(ctx, fn)
	if err == nil && !changed {
		logger.Debug("Nothing to persist", "method", method)
	}
	if errors.Is(err, domain.ErrConflict) {
		logger.Warn("Document changed in storage, reloading", "method", method)
		if loadErr := w.load(ctx); loadErr != nil {
			return domain.Database{}, false, loadErr
		}
		next, changed, err = w.commit(ctx, fn)
	}
	if err != nil {
		return domain.Database{}, false, err
	}
	return next.Clone(), changed, nil
}

func (w *Workspace) commit(ctx context.Context, fn Transition) (domain.Database, bool, error) {
	next, changed, err := fn(w.db)
	if err != nil || !changed {
		return w.db, false, err
	}

	next = inventory.Reconcile(next)
	if err := w.store.Save(ctx, next); err != nil {
		return domain.Database{}, false, err
	}
	for _, e := range inventory.Shortfall(next) {
		logger.Warn("Equipment has negative available stock", "equipment_id", e.ID, "name", e.Name, "available_stock", e.AvailableStock)
	}
	w.db = next
	return next, true, nil
}

func (w *Workspace) ensureLoaded(ctx context.Context) error {
	if w.loaded {
		return nil
	}
	return w.load(ctx)
}

func (w *Workspace) load(ctx context.Context) error {
	db, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	w.db = inventory.Reconcile(db)
	w.loaded = true
	return nil
}
