package gateway_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"

	"github.com/eleveia/eleve-go/core/gateway"
	"github.com/eleveia/eleve-go/restclient"
	testutil "github.com/eleveia/eleve-go/tests"
)

func TestService_connectFlow(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	status, err := env.Gateway.Status(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	status, err = env.Gateway.Connect(ctx)
	assert.NoError(t, err)
	assert.True(t, status.Connecting)
	assert.NotEmpty(t, status.QRCode, "a connecting instance exposes its QR code")

	// the mock reports connected on the next poll, as if the code was scanned
	status, err = env.Gateway.Status(ctx)
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.True(t, status.LoggedIn)

	assert.NoError(t, env.Gateway.Disconnect(ctx))
	status, err = env.Gateway.Status(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestService_WatchStatus(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	svc := gateway.NewService(gateway.Options{
		Client: restclient.New(restclient.Options{
			BaseURL: env.Server.URL,
			Tokens:  env.Escolas.MessagingTokens(),
		}),
		PollDelta: 20 * time.Millisecond,
	})

	var mu sync.Mutex
	var updates []gateway.Status
	stop := svc.WatchStatus(func(st gateway.Status, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		updates = append(updates, st)
		mu.Unlock()
	})
	defer stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(updates) >= 2
	}, time.Second, 10*time.Millisecond, "the poller must keep reporting status")

	stop()
	stop() // idempotent
}

func TestService_breakerOpensOnRepeatedFailures(t *testing.T) {
	svc := gateway.NewService(gateway.Options{
		Client: restclient.New(restclient.Options{BaseURL: "http://127.0.0.1:1"}),
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Status(ctx)
		var netErr *restclient.NetworkError
		assert.ErrorAs(t, err, &netErr)
	}

	// after three consecutive failures the breaker rejects without dialing
	_, err := svc.Status(ctx)
	assert.Equal(t, gobreaker.ErrOpenState, err)
}
