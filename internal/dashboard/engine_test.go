package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	apps        []model.Application
	listErr     error
	updateErr   error
	deleteErr   error
	updateCalls int
	deleted     [][]uuid.UUID
	block       chan struct{} // when set, UpdateApplication waits on it
}

func (f *fakeStore) ListApplications(ctx context.Context) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Application, len(f.apps))
	copy(out, f.apps)
	return out, nil
}

func (f *fakeStore) UpdateApplication(ctx context.Context, id uuid.UUID, req dto.UpdateApplicationRequest) (*model.Application, error) {
	f.mu.Lock()
	block := f.block
	f.updateCalls++
	err := f.updateErr
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &model.Application{ID: id}, nil
}

func (f *fakeStore) BulkDeleteApplications(ctx context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids)
	return f.deleteErr
}

func (f *fakeStore) CreateApplication(ctx context.Context, req dto.CreateApplicationRequest) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (f *fakeStore) ResumeURL(ctx context.Context, key string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

type toastRecorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *toastRecorder) sink(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *toastRecorder) count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, note := range r.notes {
		if note.Level == level {
			n++
		}
	}
	return n
}

func newTestEngine(store RemoteStore, rec *toastRecorder) *Engine {
	notifier := NewNotifierWithTimings(rec.sink, time.Millisecond, time.Millisecond)
	return NewEngine(store, notifier, zerolog.Nop())
}

func seedApps(n int) []model.Application {
	apps := make([]model.Application, n)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := range apps {
		apps[i] = model.Application{
			ID:          uuid.New(),
			FirstName:   "Applicant",
			LastName:    string(rune('A' + i)),
			Email:       "a@example.com",
			Status:      model.StatusPending,
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return apps
}

func TestApplyStatusChangeIsOptimistic(t *testing.T) {
	apps := seedApps(1)
	block := make(chan struct{})
	store := &fakeStore{apps: apps, block: block}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)
	require.NoError(t, engine.Refresh(context.Background(), false))

	require.NoError(t, engine.ApplyStatusChange(context.Background(), apps[0].ID, model.StatusApproved, true))

	// The cache reflects the new status while the remote call is still
	// in flight.
	got := engine.Applications()
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusApproved, got[0].Status)

	close(block)
	engine.Wait()

	got = engine.Applications()
	assert.Equal(t, model.StatusApproved, got[0].Status)
	assert.Eventually(t, func() bool {
		return rec.count(LevelSuccess) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, rec.count(LevelError))
}

func TestApplyStatusChangeRollsBackOnFailure(t *testing.T) {
	apps := seedApps(2)
	store := &fakeStore{apps: apps, updateErr: errors.New("store down")}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)
	require.NoError(t, engine.Refresh(context.Background(), false))

	before := engine.Applications()
	require.NoError(t, engine.ApplyStatusChange(context.Background(), apps[0].ID, model.StatusRejected, true))
	engine.Wait()

	// Rollback restores the exact pre-mutation snapshot.
	assert.Equal(t, before, engine.Applications())
	assert.Eventually(t, func() bool {
		return rec.count(LevelError) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, rec.count(LevelSuccess))
}

func TestApplyStatusChangeUnknownRecord(t *testing.T) {
	store := &fakeStore{apps: seedApps(1)}
	engine := newTestEngine(store, &toastRecorder{})
	require.NoError(t, engine.Refresh(context.Background(), false))

	err := engine.ApplyStatusChange(context.Background(), uuid.New(), model.StatusApproved, true)
	assert.Error(t, err)
}

func TestApplyStatusChangeRejectsUnknownStatus(t *testing.T) {
	store := &fakeStore{apps: seedApps(1)}
	engine := newTestEngine(store, &toastRecorder{})
	require.NoError(t, engine.Refresh(context.Background(), false))

	err := engine.ApplyStatusChange(context.Background(), store.apps[0].ID, "archived", true)
	assert.Error(t, err)
}

func TestOpenDetailPromotesPendingOnce(t *testing.T) {
	apps := seedApps(1)
	store := &fakeStore{apps: apps}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)
	require.NoError(t, engine.Refresh(context.Background(), false))

	got, err := engine.OpenDetail(context.Background(), apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReviewing, got.Status)
	engine.Wait()

	// Second open must not issue another update, and the silent
	// transition never raises a toast.
	got, err = engine.OpenDetail(context.Background(), apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReviewing, got.Status)
	engine.Wait()

	store.mu.Lock()
	calls := store.updateCalls
	store.mu.Unlock()
	assert.Equal(t, 1, calls)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, rec.count(LevelSuccess))
	assert.Equal(t, 0, rec.count(LevelError))
}

func TestOpenDetailNonPendingUntouched(t *testing.T) {
	apps := seedApps(1)
	apps[0].Status = model.StatusApproved
	store := &fakeStore{apps: apps}
	engine := newTestEngine(store, &toastRecorder{})
	require.NoError(t, engine.Refresh(context.Background(), false))

	got, err := engine.OpenDetail(context.Background(), apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)

	store.mu.Lock()
	calls := store.updateCalls
	store.mu.Unlock()
	assert.Equal(t, 0, calls)
}

func TestBulkDeleteRemovesAndClearsSelection(t *testing.T) {
	apps := seedApps(5)
	store := &fakeStore{apps: apps}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)
	require.NoError(t, engine.Refresh(context.Background(), false))

	ids := []uuid.UUID{apps[1].ID, apps[2].ID}
	engine.Select(apps[1].ID, true)
	engine.Select(apps[2].ID, true)

	require.NoError(t, engine.BulkDelete(context.Background(), ids))
	engine.Wait()

	got := engine.Applications()
	assert.Len(t, got, 3)
	for _, app := range got {
		assert.NotContains(t, ids, app.ID)
	}
	assert.Empty(t, engine.Selected())
	assert.Eventually(t, func() bool {
		return rec.count(LevelSuccess) == 1
	}, time.Second, 5*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.deleted, 1)
	assert.ElementsMatch(t, ids, store.deleted[0])
}

func TestBulkDeleteRollsBackOnFailure(t *testing.T) {
	apps := seedApps(4)
	store := &fakeStore{apps: apps, deleteErr: errors.New("store down")}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)
	require.NoError(t, engine.Refresh(context.Background(), false))

	before := engine.Applications()
	require.NoError(t, engine.BulkDelete(context.Background(), []uuid.UUID{apps[0].ID}))
	engine.Wait()

	assert.Equal(t, before, engine.Applications())
	assert.Eventually(t, func() bool {
		return rec.count(LevelError) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBulkDeleteEmpty(t *testing.T) {
	engine := newTestEngine(&fakeStore{}, &toastRecorder{})
	assert.Error(t, engine.BulkDelete(context.Background(), nil))
}

func TestRefreshSilentSwallowsErrors(t *testing.T) {
	store := &fakeStore{listErr: errors.New("store down")}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)

	err := engine.Refresh(context.Background(), true)
	assert.Error(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, rec.count(LevelError))
}

func TestRefreshLoudFailureNotifies(t *testing.T) {
	store := &fakeStore{listErr: errors.New("store down")}
	rec := &toastRecorder{}
	engine := newTestEngine(store, rec)

	err := engine.Refresh(context.Background(), false)
	assert.Error(t, err)
	assert.Empty(t, engine.Applications())
	assert.Eventually(t, func() bool {
		return rec.count(LevelError) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	store := &fakeStore{apps: seedApps(2)}
	engine := newTestEngine(store, &toastRecorder{})
	require.NoError(t, engine.Refresh(context.Background(), false))
	assert.Len(t, engine.Applications(), 2)

	store.mu.Lock()
	store.apps = seedApps(5)
	store.mu.Unlock()

	require.NoError(t, engine.Refresh(context.Background(), true))
	assert.Len(t, engine.Applications(), 5)
}

func TestPollerPause(t *testing.T) {
	store := &fakeStore{apps: seedApps(1)}
	engine := newTestEngine(store, &toastRecorder{})
	poller := NewPoller(engine, 10*time.Millisecond)
	poller.Pause(true)
	poller.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, engine.Applications())

	poller.Pause(false)
	assert.Eventually(t, func() bool {
		return len(engine.Applications()) == 1
	}, time.Second, 5*time.Millisecond)
	poller.Stop()
}
