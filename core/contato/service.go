package contato

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
)

const Tag = "Contato"

// QueryFilter applies AND semantics; Search is a free-text match done
// server-side on name, email or phone.
type QueryFilter struct {
	Status string
	Origem string
	Search string
}

func (f QueryFilter) values() url.Values {
	v := make(url.Values)
	if f.Status != "" {
		v.Add("status", f.Status)
	}
	if f.Origem != "" {
		v.Add("origem", f.Origem)
	}
	if f.Search != "" {
		v.Add("search", f.Search)
	}
	return v
}

type Service struct {
	client   *restclient.Client
	cache    *cache.Cache
	validate *core.Validator
	log      core.Logger
}

func NewService(client *restclient.Client, c *cache.Cache, validate *core.Validator, log core.Logger) *Service {
	return &Service{client: client, cache: c, validate: validate, log: log}
}

func (svc *Service) List(ctx context.Context, filter QueryFilter) ([]Contato, error) {
	params := filter.values()
	return cache.Query(ctx, svc.cache, "contatos?"+params.Encode(), []string{Tag}, func(ctx context.Context) ([]Contato, error) {
		var page restclient.Page[Contato]
		if err := svc.client.Get(ctx, "/contatos/", params, &page); err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Contato, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("contato:%d", id), []string{Tag}, func(ctx context.Context) (Contato, error) {
		var ct Contato
		err := svc.client.Get(ctx, fmt.Sprintf("/contatos/%d/", id), nil, &ct)
		return ct, err
	})
}

func (svc *Service) Create(ctx context.Context, data NewContato) (Contato, error) {
	if err := svc.validate.Check(data); err != nil {
		return Contato{}, err
	}
	var created Contato
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, "/contatos/", data, &created)
	})
	return created, err
}

func (svc *Service) Update(ctx context.Context, id int, data UpdateContato) (Contato, error) {
	if err := svc.validate.Check(data); err != nil {
		return Contato{}, err
	}
	var updated Contato
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Patch(ctx, fmt.Sprintf("/contatos/%d/", id), data, &updated)
	})
	return updated, err
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Delete(ctx, fmt.Sprintf("/contatos/%d/", id))
	})
}

// RegistrarInteracao stamps the contact's last-interaction time.
func (svc *Service) RegistrarInteracao(ctx context.Context, id int) (Contato, error) {
	var ct Contato
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, fmt.Sprintf("/contatos/%d/registrar_interacao/", id), nil, &ct)
	})
	return ct, err
}

func (svc *Service) Estatisticas(ctx context.Context) (Stats, error) {
	return cache.Query(ctx, svc.cache, "contatos:estatisticas", []string{Tag}, func(ctx context.Context) (Stats, error) {
		var stats Stats
		err := svc.client.Get(ctx, "/contatos/estatisticas/", nil, &stats)
		return stats, err
	})
}
