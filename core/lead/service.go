package lead

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
)

const Tag = "Lead"

var ErrUnknownStatus = errors.New("status de lead desconhecido")

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

func (svc *Service) List(ctx context.Context, filter QueryFilter) ([]Lead, error) {
	params := filter.values()
	return cache.Query(ctx, svc.cache, "leads?"+params.Encode(), []string{Tag}, func(ctx context.Context) ([]Lead, error) {
		var page restclient.Page[Lead]
		if err := svc.client.Get(ctx, "/leads/", params, &page); err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Lead, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("lead:%d", id), []string{Tag}, func(ctx context.Context) (Lead, error) {
		var ld Lead
		err := svc.client.Get(ctx, fmt.Sprintf("/leads/%d/", id), nil, &ld)
		return ld, err
	})
}

func (svc *Service) Create(ctx context.Context, data NewLead) (Lead, error) {
	if err := svc.validate.Check(data); err != nil {
		return Lead{}, err
	}
	var created Lead
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, "/leads/", data, &created)
	})
	return created, err
}

func (svc *Service) Update(ctx context.Context, id int, data UpdateLead) (Lead, error) {
	if err := svc.validate.Check(data); err != nil {
		return Lead{}, err
	}
	var updated Lead
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Patch(ctx, fmt.Sprintf("/leads/%d/", id), data, &updated)
	})
	return updated, err
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Delete(ctx, fmt.Sprintf("/leads/%d/", id))
	})
}

// MudarStatus moves a lead along the funnel.
func (svc *Service) MudarStatus(ctx context.Context, id int, status string) (Lead, error) {
	var known bool
	for _, s := range AllStatuses {
		if s == status {
			known = true
			break
		}
	}
	if !known {
		return Lead{}, errors.Wrap(ErrUnknownStatus, status)
	}
	var ld Lead
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		body := map[string]string{"status": status}
		return svc.client.Post(ctx, fmt.Sprintf("/leads/%d/mudar_status/", id), body, &ld)
	})
	return ld, err
}

func (svc *Service) Estatisticas(ctx context.Context) (Stats, error) {
	return cache.Query(ctx, svc.cache, "leads:estatisticas", []string{Tag}, func(ctx context.Context) (Stats, error) {
		var stats Stats
		err := svc.client.Get(ctx, "/leads/estatisticas/", nil, &stats)
		return stats, err
	})
}

// Recentes returns the latest leads shown on the dashboard.
func (svc *Service) Recentes(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{"limit": []string{strconv.Itoa(limit)}}
	key := "leads:recentes?" + params.Encode()
	return cache.Query(ctx, svc.cache, key, []string{Tag}, func(ctx context.Context) ([]Lead, error) {
		var leads []Lead
		err := svc.client.Get(ctx, "/leads/recentes/", params, &leads)
		return leads, err
	})
}

// ExportarCSV downloads the lead export; never cached.
func (svc *Service) ExportarCSV(ctx context.Context) ([]byte, error) {
	return svc.client.GetRaw(ctx, "/leads/exportar_csv/", nil)
}
