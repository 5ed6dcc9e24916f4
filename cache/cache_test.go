package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestQuery_cachesUntilInvalidated(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls int32

	fetch := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	}

	got, err := Query(ctx, c, "faqs", []string{"FAQ"}, fetch)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = Query(ctx, c, "faqs", []string{"FAQ"}, fetch)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "fresh hit must not re-fetch")

	c.Invalidate("FAQ")
	_, err = Query(ctx, c, "faqs", []string{"FAQ"}, fetch)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "stale entry must re-fetch")
}

func TestQuery_unrelatedTagUntouched(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls int32

	fetch := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	_, _ = Query(ctx, c, "leads", []string{"Lead"}, fetch)
	c.Invalidate("Contato")
	_, _ = Query(ctx, c, "leads", []string{"Lead"}, fetch)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestQuery_dedupesConcurrentFetches(t *testing.T) {
	c := New(Options{})
	var calls int32
	release := make(chan struct{})

	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Query(context.Background(), c, "escolas", []string{"Escola"}, fetch)
		}(i)
	}

	// let every goroutine join the flight before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.NoError(t, errs[i])
		assert.Equal(t, "value", results[i])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent consumers must share one fetch")
}

func TestQuery_failureKeepsPriorData(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()

	_, err := Query(ctx, c, "eventos", []string{"Evento"}, func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	assert.NoError(t, err)

	c.Invalidate("Evento")
	boom := errors.New("backend down")
	_, err = Query(ctx, c, "eventos", []string{"Evento"}, func(context.Context) ([]int, error) {
		return nil, boom
	})
	assert.Equal(t, boom, errors.Cause(err))

	data, status, err := Peek[[]int](c, "eventos")
	assert.Equal(t, StatusError, status)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Equal(t, []int{1, 2}, data, "prior data must survive a failed refresh")
}

func TestQuery_abandonedResponseDiscarded(t *testing.T) {
	c := New(Options{})
	release := make(chan struct{})
	var fetchCtxErr error

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Query(ctx, c, "status", []string{"Gateway"}, func(fctx context.Context) (string, error) {
			<-release
			fetchCtxErr = fctx.Err()
			return "late", nil
		})
		assert.Equal(t, context.Canceled, err)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	// let the abandoned fetch finish and settle
	close(release)
	assert.Eventually(t, func() bool {
		_, status, _ := Peek[string](c, "status")
		return status != StatusLoading
	}, time.Second, 10*time.Millisecond)

	_, status, err := Peek[string](c, "status")
	assert.Equal(t, StatusUninitialized, status, "a response nobody waited for must not be cached")
	assert.NoError(t, err)
	assert.Equal(t, context.Canceled, fetchCtxErr, "the flight context must be cancelled with its last waiter")
}

func TestQuery_joinAfterAbandonRefetches(t *testing.T) {
	c := New(Options{})
	release := make(chan struct{})
	var calls int32

	// first consumer gives up while its fetch is stuck
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Query(ctx, c, "escolas", []string{"Escola"}, func(fctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return "stuck", fctx.Err()
		})
		assert.Equal(t, context.Canceled, err)
	}()

	assert.Eventually(t, func() bool {
		_, status, _ := Peek[string](c, "escolas")
		return status == StatusLoading
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	// a later consumer with a healthy context must not inherit the
	// cancelled flight
	got, err := Query(context.Background(), c, "escolas", []string{"Escola"}, func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "fresh", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "fresh", got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	// the dead fetch settles late; its outcome must not shadow the fresh one
	close(release)
	assert.Eventually(t, func() bool {
		v, status, err := Peek[string](c, "escolas")
		return status == StatusSuccess && err == nil && v == "fresh"
	}, time.Second, 10*time.Millisecond)
}

func TestMutate(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls int32

	fetch := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 1, nil
	}
	_, _ = Query(ctx, c, "contatos", []string{"Contato"}, fetch)

	err := c.Mutate(ctx, []string{"Contato"}, func(context.Context) error { return nil })
	assert.NoError(t, err)
	_, _ = Query(ctx, c, "contatos", []string{"Contato"}, fetch)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "a successful mutation must invalidate before returning")

	boom := errors.New("rejected")
	err = c.Mutate(ctx, []string{"Contato"}, func(context.Context) error { return boom })
	assert.Equal(t, boom, err)
	_, _ = Query(ctx, c, "contatos", []string{"Contato"}, fetch)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "a failed mutation must not invalidate")
}

func TestPeek_statuses(t *testing.T) {
	c := New(Options{})

	_, status, err := Peek[string](c, "nothing")
	assert.Equal(t, StatusUninitialized, status)
	assert.NoError(t, err)

	release := make(chan struct{})
	go func() {
		_, _ = Query(context.Background(), c, "slow", nil, func(context.Context) (string, error) {
			<-release
			return "ok", nil
		})
	}()
	assert.Eventually(t, func() bool {
		_, status, _ := Peek[string](c, "slow")
		return status == StatusLoading
	}, time.Second, 10*time.Millisecond)
	close(release)

	assert.Eventually(t, func() bool {
		v, status, _ := Peek[string](c, "slow")
		return status == StatusSuccess && v == "ok"
	}, time.Second, 10*time.Millisecond)
}
