package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller(t *testing.T) {
	var runs int32
	p := NewPoller(20*time.Millisecond, func(context.Context) {
		atomic.AddInt32(&runs, 1)
	})

	stop1 := p.Watch()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 1
	}, time.Second, 5*time.Millisecond, "the first watcher triggers an immediate run")

	stop2 := p.Watch()
	stop1()
	stop1() // idempotent

	// still one watcher left: the loop keeps ticking
	before := atomic.LoadInt32(&runs)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) > before
	}, time.Second, 5*time.Millisecond)

	stop2()
	time.Sleep(50 * time.Millisecond)
	after := atomic.LoadInt32(&runs)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs), "the last stop halts the loop")
}

func TestPoller_restartsAfterLastStop(t *testing.T) {
	var runs int32
	p := NewPoller(time.Hour, func(context.Context) {
		atomic.AddInt32(&runs, 1)
	})

	stop := p.Watch()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) == 1
	}, time.Second, 5*time.Millisecond)
	stop()

	stop = p.Watch()
	defer stop()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) == 2
	}, time.Second, 5*time.Millisecond, "a new first watcher restarts the loop")
}
