package cache

import (
	"context"
	"sync"
	"time"
)

// Poller re-runs a query on a fixed interval for as long as at least one
// watcher remains mounted. The first watcher starts the loop (with an
// immediate run), the last one stopping cancels it.
type Poller struct {
	interval time.Duration
	run      func(context.Context)

	mu     sync.Mutex
	refs   int
	cancel context.CancelFunc
}

func NewPoller(interval time.Duration, run func(context.Context)) *Poller {
	return &Poller{interval: interval, run: run}
}

// Watch registers a consumer and returns its stop func. Stop is idempotent.
func (p *Poller) Watch() (stop func()) {
	p.mu.Lock()
	p.refs++
	if p.refs == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		go p.loop(ctx)
	}
	p.mu.Unlock()

	var once sync.Once
	return func() { once.Do(p.unwatch) }
}

func (p *Poller) unwatch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs--
	if p.refs <= 0 && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) loop(ctx context.Context) {
	p.run(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}
