package evento

import (
	"context"
	"fmt"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
)

const Tag = "Evento"

type Service struct {
	client   *restclient.Client
	cache    *cache.Cache
	validate *core.Validator
	log      core.Logger
}

func NewService(client *restclient.Client, c *cache.Cache, validate *core.Validator, log core.Logger) *Service {
	return &Service{client: client, cache: c, validate: validate, log: log}
}

func (svc *Service) List(ctx context.Context) ([]Evento, error) {
	return cache.Query(ctx, svc.cache, "eventos", []string{Tag}, func(ctx context.Context) ([]Evento, error) {
		var page restclient.Page[Evento]
		if err := svc.client.Get(ctx, "/eventos/", nil, &page); err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Evento, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("evento:%d", id), []string{Tag}, func(ctx context.Context) (Evento, error) {
		var ev Evento
		err := svc.client.Get(ctx, fmt.Sprintf("/eventos/%d/", id), nil, &ev)
		return ev, err
	})
}

func (svc *Service) Create(ctx context.Context, data NewEvento) (Evento, error) {
	if err := svc.validate.Check(data); err != nil {
		return Evento{}, err
	}
	var created Evento
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, "/eventos/", data, &created)
	})
	return created, err
}

func (svc *Service) Update(ctx context.Context, id int, data UpdateEvento) (Evento, error) {
	if err := svc.validate.Check(data); err != nil {
		return Evento{}, err
	}
	var updated Evento
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Patch(ctx, fmt.Sprintf("/eventos/%d/", id), data, &updated)
	})
	return updated, err
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Delete(ctx, fmt.Sprintf("/eventos/%d/", id))
	})
}

// Proximos returns the upcoming events the dashboard highlights.
func (svc *Service) Proximos(ctx context.Context) ([]Evento, error) {
	return cache.Query(ctx, svc.cache, "eventos:proximos", []string{Tag}, func(ctx context.Context) ([]Evento, error) {
		var eventos []Evento
		err := svc.client.Get(ctx, "/eventos/proximos_eventos/", nil, &eventos)
		return eventos, err
	})
}
