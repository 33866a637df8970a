package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/rs/zerolog"
)

// Engine owns the dashboard's in-process application list. Every
// list-changing operation is an optimistic transaction: the cache mutates
// immediately, the remote call runs in the background, and a remote
// failure restores the exact pre-mutation snapshot wholesale. The cache
// is a mirror of the remote store, never an independent source of truth.
type Engine struct {
	mu       sync.Mutex
	store    RemoteStore
	notifier *Notifier
	log      zerolog.Logger

	cache    []model.Application
	selected map[uuid.UUID]struct{}
	inflight sync.WaitGroup
}

func NewEngine(store RemoteStore, notifier *Notifier, log zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		log:      log,
		selected: make(map[uuid.UUID]struct{}),
	}
}

// Applications returns a copy of the current cache.
func (e *Engine) Applications() []model.Application {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.cache)
}

// transact is the optimistic-mutation helper: snapshot, apply, issue the
// remote call without blocking the caller, then commit (no-op) or roll
// the whole list back to the snapshot. Rollback replaces the full list
// rather than patching one record so it cannot interleave with a
// concurrent poll's wholesale replace.
func (e *Engine) transact(ctx context.Context, mutate func([]model.Application) []model.Application, remote func(context.Context) error, onCommit, onRollback func()) {
	e.mu.Lock()
	snapshot := slices.Clone(e.cache)
	e.cache = mutate(slices.Clone(e.cache))
	e.mu.Unlock()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		if err := remote(ctx); err != nil {
			e.mu.Lock()
			e.cache = snapshot
			e.mu.Unlock()
			e.log.Error().Err(err).Msg("remote write failed, rolled back")
			if onRollback != nil {
				onRollback()
			}
			return
		}
		if onCommit != nil {
			onCommit()
		}
	}()
}

// ApplyStatusChange optimistically sets a cached record's status and
// issues the remote update. Overlapping calls for the same id are not
// serialized; the last write observed by the remote store wins.
func (e *Engine) ApplyStatusChange(ctx context.Context, id uuid.UUID, newStatus string, notify bool) error {
	if !model.ValidStatus(newStatus) {
		return fmt.Errorf("unknown status %q", newStatus)
	}
	e.mu.Lock()
	found := false
	for i := range e.cache {
		if e.cache[i].ID == id {
			found = true
			break
		}
	}
	e.mu.Unlock()
	if !found {
		return fmt.Errorf("application %s not in cache", id)
	}

	e.transact(ctx,
		func(cache []model.Application) []model.Application {
			for i := range cache {
				if cache[i].ID == id {
					cache[i].Status = newStatus
				}
			}
			return cache
		},
		func(ctx context.Context) error {
			_, err := e.store.UpdateApplication(ctx, id, dto.UpdateApplicationRequest{Status: &newStatus})
			return err
		},
		func() {
			if notify {
				e.notifier.Success(fmt.Sprintf("Application %s successfully!", newStatus))
			}
		},
		func() {
			if notify {
				e.notifier.Error("Failed to update status.")
			}
		},
	)
	return nil
}

// OpenDetail returns the record for the detail view. A pending record is
// silently promoted to reviewing first; the returned copy already carries
// the promoted status, and no toast is raised for that transition.
func (e *Engine) OpenDetail(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	e.mu.Lock()
	var current *model.Application
	for i := range e.cache {
		if e.cache[i].ID == id {
			current = &e.cache[i]
			break
		}
	}
	if current == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("application %s not in cache", id)
	}
	pending := current.Status == model.StatusPending
	e.mu.Unlock()

	if pending {
		if err := e.ApplyStatusChange(ctx, id, model.StatusReviewing, false); err != nil {
			return nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.cache {
		if e.cache[i].ID == id {
			out := e.cache[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("application %s not in cache", id)
}

// BulkDelete optimistically removes the records and issues one batched
// remote delete. The selection entries for those ids are cleared once the
// remote confirms.
func (e *Engine) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("no ids to delete")
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	e.transact(ctx,
		func(cache []model.Application) []model.Application {
			return slices.DeleteFunc(cache, func(a model.Application) bool {
				_, gone := drop[a.ID]
				return gone
			})
		},
		func(ctx context.Context) error {
			return e.store.BulkDeleteApplications(ctx, ids)
		},
		func() {
			e.mu.Lock()
			for _, id := range ids {
				delete(e.selected, id)
			}
			e.mu.Unlock()
			e.notifier.Success("Deleted successfully")
		},
		func() {
			e.notifier.Error("Failed to delete")
		},
	)
	return nil
}

// Refresh replaces the cache wholesale with the remote list, newest
// first. Silent refreshes (the background poll) swallow errors entirely;
// the next tick retries. A non-silent failure raises one error toast and
// leaves the cache untouched.
func (e *Engine) Refresh(ctx context.Context, silent bool) error {
	apps, err := e.store.ListApplications(ctx)
	if err != nil {
		if silent {
			e.log.Debug().Err(err).Msg("silent refresh failed")
		} else {
			e.log.Error().Err(err).Msg("refresh failed")
			e.notifier.Error("Failed to fetch applications.")
		}
		return err
	}
	e.mu.Lock()
	e.cache = apps
	e.mu.Unlock()
	return nil
}

func (e *Engine) Select(id uuid.UUID, on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if on {
		e.selected[id] = struct{}{}
	} else {
		delete(e.selected, id)
	}
}

func (e *Engine) Selected() []uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]uuid.UUID, 0, len(e.selected))
	for id := range e.selected {
		out = append(out, id)
	}
	return out
}

// Wait blocks until every in-flight remote operation has settled. Used on
// shutdown so pending writes are not abandoned mid-reconcile.
func (e *Engine) Wait() {
	e.inflight.Wait()
}
