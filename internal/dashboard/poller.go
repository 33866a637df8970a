package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultPollInterval = 5 * time.Second

// Poller drives silent background refreshes on a fixed interval while the
// dashboard is mounted. Polling is deliberately last-writer-wins against
// in-flight mutations; staleness of up to one interval is accepted.
type Poller struct {
	engine   *Engine
	interval time.Duration
	paused   atomic.Bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewPoller(engine *Engine, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if p.paused.Load() {
					continue
				}
				_ = p.engine.Refresh(ctx, true)
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Pause suppresses ticks without stopping the ticker. Exposed for callers
// that need to hold the list still; nothing pauses by default.
func (p *Poller) Pause(on bool) {
	p.paused.Store(on)
}

// Stop halts polling and waits for the loop to exit.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}
