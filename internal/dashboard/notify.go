package dashboard

import (
	"sync"
	"time"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

type Notification struct {
	Level   Level
	Message string
}

// Sink receives the notifications that survive the limiter.
type Sink func(Notification)

const (
	notifyDebounce = 150 * time.Millisecond
	notifyCooldown = 1500 * time.Millisecond
)

// Notifier is a single-slot rate limiter for user-facing toasts. At most
// one notification is in flight at a time; requests arriving while the
// slot is locked are dropped, not queued. A new request waits a leading
// debounce before display so rapid-fire calls collapse into one, and the
// slot stays locked for a cooldown after display.
type Notifier struct {
	mu       sync.Mutex
	locked   bool
	debounce time.Duration
	cooldown time.Duration
	sink     Sink
}

func NewNotifier(sink Sink) *Notifier {
	return &Notifier{
		debounce: notifyDebounce,
		cooldown: notifyCooldown,
		sink:     sink,
	}
}

// NewNotifierWithTimings exists for callers that need shorter windows,
// mostly tests.
func NewNotifierWithTimings(sink Sink, debounce, cooldown time.Duration) *Notifier {
	return &Notifier{debounce: debounce, cooldown: cooldown, sink: sink}
}

// Notify requests a toast. Returns false when the slot was locked and the
// request was dropped.
func (n *Notifier) Notify(level Level, message string) bool {
	n.mu.Lock()
	if n.locked {
		n.mu.Unlock()
		return false
	}
	n.locked = true
	n.mu.Unlock()

	time.AfterFunc(n.debounce, func() {
		if n.sink != nil {
			n.sink(Notification{Level: level, Message: message})
		}
		time.AfterFunc(n.cooldown, func() {
			n.mu.Lock()
			n.locked = false
			n.mu.Unlock()
		})
	})
	return true
}

func (n *Notifier) Success(message string) bool {
	return n.Notify(LevelSuccess, message)
}

func (n *Notifier) Error(message string) bool {
	return n.Notify(LevelError, message)
}
