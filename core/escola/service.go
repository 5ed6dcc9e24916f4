package escola

import (
	"context"
	"fmt"
	"time"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/session"
	"github.com/eleveia/eleve-go/restclient"
)

// Tag invalidates every cached school read after a successful mutation.
const Tag = "Escola"

type Service struct {
	client   *restclient.Client
	cache    *cache.Cache
	validate *core.Validator
	log      core.Logger
}

func NewService(client *restclient.Client, c *cache.Cache, validate *core.Validator, log core.Logger) *Service {
	return &Service{client: client, cache: c, validate: validate, log: log}
}

// List returns the authenticated user's schools; normally exactly one is
// "current".
func (svc *Service) List(ctx context.Context) ([]Escola, error) {
	return cache.Query(ctx, svc.cache, "escolas", []string{Tag}, func(ctx context.Context) ([]Escola, error) {
		var page restclient.Page[Escola]
		if err := svc.client.Get(ctx, "/escolas/", nil, &page); err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Escola, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("escola:%d", id), []string{Tag}, func(ctx context.Context) (Escola, error) {
		var esc Escola
		err := svc.client.Get(ctx, fmt.Sprintf("/escolas/%d/", id), nil, &esc)
		return esc, err
	})
}

func (svc *Service) Create(ctx context.Context, data NewEscola) (Escola, error) {
	if err := svc.validate.Check(data); err != nil {
		return Escola{}, err
	}
	var created Escola
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, "/escolas/", data, &created)
	})
	return created, err
}

func (svc *Service) Update(ctx context.Context, id int, data UpdateEscola) (Escola, error) {
	if err := svc.validate.Check(data); err != nil {
		return Escola{}, err
	}
	var updated Escola
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Patch(ctx, fmt.Sprintf("/escolas/%d/", id), data, &updated)
	})
	return updated, err
}

// Delete exists on the API but is unused by the main dashboard views.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Delete(ctx, fmt.Sprintf("/escolas/%d/", id))
	})
}

// Usuarios lists the accounts attached to a school.
func (svc *Service) Usuarios(ctx context.Context, id int) ([]session.User, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("escola:%d:usuarios", id), []string{Tag}, func(ctx context.Context) ([]session.User, error) {
		var users []session.User
		err := svc.client.Get(ctx, fmt.Sprintf("/escolas/%d/usuarios/", id), nil, &users)
		return users, err
	})
}

// MessagingTokens yields the first school's messaging-integration token,
// the credential the WhatsApp gateway authenticates with. It rides the
// school cache, so gateway calls do not hit /escolas/ every time.
func (svc *Service) MessagingTokens() restclient.TokenSource {
	return restclient.TokenSourceFunc(func(ctx context.Context) (string, bool) {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		escolas, err := svc.List(ctx)
		if err != nil {
			svc.log.Warn("escola: loading messaging token", map[string]interface{}{"error": err.Error()})
			return "", false
		}
		for _, esc := range escolas {
			if esc.TokenMensagens != "" {
				return esc.TokenMensagens, true
			}
		}
		return "", false
	})
}
