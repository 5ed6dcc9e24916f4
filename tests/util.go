package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/core/evento"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/gateway"
	"github.com/eleveia/eleve-go/core/lead"
	"github.com/eleveia/eleve-go/core/session"
	"github.com/eleveia/eleve-go/restclient"
	"github.com/eleveia/eleve-go/services/mockapi"
	"github.com/eleveia/eleve-go/storage/credstore"
)

// Username and Password match the account the mock API seeds.
const (
	Username = "admin"
	Password = "secret"
)

// Env is the SDK wired against an in-process mock API.
type Env struct {
	Server   *httptest.Server
	Store    *credstore.MemStore
	Client   *restclient.Client
	Cache    *cache.Cache
	Validate *core.Validator

	Session  *session.Service
	Escolas  *escola.Service
	Faqs     *faq.Service
	Eventos  *evento.Service
	Contatos *contato.Service
	Leads    *lead.Service
	Gateway  *gateway.Service
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	srv := httptest.NewServer(mockapi.NewServer(&mockapi.Options{DisableReqLogs: true}))
	t.Cleanup(srv.Close)

	store := credstore.NewMemStore()
	client := restclient.New(restclient.Options{
		BaseURL: srv.URL + "/api",
		Tokens:  credstore.Tokens(store),
	})
	memCache := cache.New(cache.Options{})
	validate := core.NewValidator()

	escolaSvc := escola.NewService(client, memCache, validate, core.NopLogger{})
	gatewayClient := restclient.New(restclient.Options{
		BaseURL: srv.URL,
		Tokens:  escolaSvc.MessagingTokens(),
	})

	return &Env{
		Server:   srv,
		Store:    store,
		Client:   client,
		Cache:    memCache,
		Validate: validate,
		Session:  session.NewService(client, store, validate, core.NopLogger{}),
		Escolas:  escolaSvc,
		Faqs:     faq.NewService(client, memCache, validate, core.NopLogger{}),
		Eventos:  evento.NewService(client, memCache, validate, core.NopLogger{}),
		Contatos: contato.NewService(client, memCache, validate, core.NopLogger{}),
		Leads:    lead.NewService(client, memCache, validate, core.NopLogger{}),
		Gateway:  gateway.NewService(gateway.Options{Client: gatewayClient}),
	}
}

// Login signs in with the seeded account and fails the test on error.
func (e *Env) Login(t *testing.T) {
	t.Helper()
	creds := session.Credentials{Username: Username, Password: Password}
	if err := e.Session.Login(context.Background(), creds); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}
