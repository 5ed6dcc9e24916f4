// Package gateway talks to the external WhatsApp gateway. It lives on a
// different host than the API and authenticates with the school's
// messaging token, not the user's session token.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
)

const defaultPollDelta = 5 * time.Second

type (
	Options struct {
		Client    *restclient.Client
		PollDelta time.Duration
		Logger    core.Logger
	}

	Service struct {
		client  *restclient.Client
		breaker *gobreaker.CircuitBreaker
		log     core.Logger
		poller  *cache.Poller

		mu          sync.Mutex
		subscribers map[int]func(Status, error)
		nextSub     int
	}
)

func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	pollDelta := opts.PollDelta
	if pollDelta == 0 {
		pollDelta = defaultPollDelta
	}
	svc := &Service{
		client:      opts.Client,
		log:         logger,
		subscribers: make(map[int]func(Status, error)),
	}
	// the gateway is a flaky third party; stop hammering it after 3
	// consecutive failures
	svc.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "WhatsApp-Gateway",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("gateway: circuit breaker state change", map[string]interface{}{
				"name": name, "from": from.String(), "to": to.String(),
			})
		},
	})
	svc.poller = cache.NewPoller(pollDelta, svc.poll)
	return svc
}

// Status asks the gateway for the current instance session state. Never
// cached: the state lives on the gateway, not in this process.
func (svc *Service) Status(ctx context.Context) (Status, error) {
	out, err := svc.breaker.Execute(func() (interface{}, error) {
		var resp statusResponse
		if err := svc.client.Get(ctx, "/instance/status", nil, &resp); err != nil {
			return Status{}, err
		}
		return resp.Instance.toStatus(resp.Status.Connected, resp.Status.LoggedIn), nil
	})
	if err != nil {
		return Status{}, err
	}
	return out.(Status), nil
}

// Connect starts a gateway session; while connecting the returned status
// carries the QR code to scan.
func (svc *Service) Connect(ctx context.Context) (Status, error) {
	out, err := svc.breaker.Execute(func() (interface{}, error) {
		var resp connectResponse
		if err := svc.client.Post(ctx, "/instance/connect", struct{}{}, &resp); err != nil {
			return Status{}, err
		}
		return resp.Instance.toStatus(resp.Connected, resp.LoggedIn), nil
	})
	if err != nil {
		return Status{}, err
	}
	return out.(Status), nil
}

func (svc *Service) Disconnect(ctx context.Context) error {
	_, err := svc.breaker.Execute(func() (interface{}, error) {
		return nil, svc.client.Post(ctx, "/instance/disconnect", struct{}{}, nil)
	})
	return err
}

// WatchStatus polls the gateway on the configured interval for as long as
// at least one watcher remains; the last stop cancels the polling.
func (svc *Service) WatchStatus(fn func(Status, error)) (stop func()) {
	svc.mu.Lock()
	id := svc.nextSub
	svc.nextSub++
	svc.subscribers[id] = fn
	svc.mu.Unlock()

	stopPolling := svc.poller.Watch()
	var once sync.Once
	return func() {
		once.Do(func() {
			stopPolling()
			svc.mu.Lock()
			defer svc.mu.Unlock()
			delete(svc.subscribers, id)
		})
	}
}

func (svc *Service) poll(ctx context.Context) {
	st, err := svc.Status(ctx)
	svc.mu.Lock()
	fns := make([]func(Status, error), 0, len(svc.subscribers))
	for _, fn := range svc.subscribers {
		fns = append(fns, fn)
	}
	svc.mu.Unlock()
	for _, fn := range fns {
		fn(st, err)
	}
}
