package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierCollapsesRapidRequests(t *testing.T) {
	rec := &toastRecorder{}
	n := NewNotifierWithTimings(rec.sink, 20*time.Millisecond, 100*time.Millisecond)

	// Five requests inside the debounce window: one visible toast.
	assert.True(t, n.Success("first"))
	for i := 0; i < 4; i++ {
		assert.False(t, n.Success("dropped"))
	}

	assert.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.notes) == 1
	}, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	assert.Equal(t, "first", rec.notes[0].Message)
	rec.mu.Unlock()

	// After the cooldown has passed, exactly one more gets through.
	time.Sleep(150 * time.Millisecond)
	assert.True(t, n.Error("second"))
	assert.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.notes) == 2
	}, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	assert.Equal(t, LevelError, rec.notes[1].Level)
	rec.mu.Unlock()
}

func TestNotifierDropsWhileLocked(t *testing.T) {
	rec := &toastRecorder{}
	n := NewNotifierWithTimings(rec.sink, 10*time.Millisecond, 200*time.Millisecond)

	assert.True(t, n.Success("shown"))

	// Wait past the debounce so the toast displayed, then request again
	// during the cooldown: dropped entirely, not queued.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, n.Success("during cooldown"))

	time.Sleep(250 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.notes, 1)
}

func TestNotifierNilSink(t *testing.T) {
	n := NewNotifierWithTimings(nil, time.Millisecond, time.Millisecond)
	assert.True(t, n.Success("no panic"))
	time.Sleep(10 * time.Millisecond)
}
