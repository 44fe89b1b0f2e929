package poller

import (
	"context"
	"sync"
	"time"

	"statusplay/internal/logger"
)

// TickFunc performs one poll cycle: fetch a snapshot, reconcile it and
// dispatch re-renders. A failed fetch must log and return; the next tick
// proceeds on schedule with no backoff.
type TickFunc func(ctx context.Context)

// Poller owns the repeating snapshot timer. At most one timer loop is
// active at a time: starting while running restarts cleanly, stopping
// while stopped is a no-op. Ticks run serialized on a single goroutine,
// so a tick's fetch always completes before its reconciliation and two
// polls are never in flight together.
type Poller struct {
	mu       sync.Mutex
	interval time.Duration
	tick     TickFunc
	stop     chan struct{}
	kick     chan struct{}
	running  bool
}

// New creates a poller with the given cadence
func New(interval time.Duration, tick TickFunc) *Poller {
	return &Poller{
		interval: interval,
		tick:     tick,
	}
}

// Start launches the timer loop, first cancelling any existing one so
// repeated login/logout cycles never stack timers
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		close(p.stop)
	}

	p.stop = make(chan struct{})
	p.kick = make(chan struct{}, 1)
	p.running = true

	go p.loop(p.stop, p.kick)
	logger.Debug("Poller started", "interval", p.interval)
}

// Stop cancels the timer. In-flight work on the current tick is not
// interrupted; only the schedule is torn down.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stop)
	p.running = false
	logger.Debug("Poller stopped")
}

// PollNow requests an out-of-cadence tick so a user action is reflected
// within one round trip instead of waiting for the next timer fire.
// No-op when the poller is not running.
func (p *Poller) PollNow() {
	p.mu.Lock()
	kick := p.kick
	running := p.running
	p.mu.Unlock()

	if !running {
		return
	}
	select {
	case kick <- struct{}{}:
	default:
		// A kick is already pending; one refresh covers both
	}
}

// Running reports whether a timer loop is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) loop(stop, kick chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.tick(context.Background())
		case <-kick:
			p.tick(context.Background())
		}
	}
}
