package faq

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
)

const Tag = "FAQ"

type QueryFilter struct {
	Status string
}

func (f QueryFilter) values() url.Values {
	v := make(url.Values)
	if f.Status != "" {
		v.Add("status", f.Status)
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

func (svc *Service) List(ctx context.Context, filter QueryFilter) ([]FAQ, error) {
	params := filter.values()
	return cache.Query(ctx, svc.cache, "faqs?"+params.Encode(), []string{Tag}, func(ctx context.Context) ([]FAQ, error) {
		var page restclient.Page[FAQ]
		if err := svc.client.Get(ctx, "/faqs/", params, &page); err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (svc *Service) Get(ctx context.Context, id int) (FAQ, error) {
	return cache.Query(ctx, svc.cache, fmt.Sprintf("faq:%d", id), []string{Tag}, func(ctx context.Context) (FAQ, error) {
		var f FAQ
		err := svc.client.Get(ctx, fmt.Sprintf("/faqs/%d/", id), nil, &f)
		return f, err
	})
}

func (svc *Service) Create(ctx context.Context, data NewFAQ) (FAQ, error) {
	if err := svc.validate.Check(data); err != nil {
		return FAQ{}, err
	}
	var created FAQ
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Post(ctx, "/faqs/", data, &created)
	})
	return created, err
}

func (svc *Service) Update(ctx context.Context, id int, data UpdateFAQ) (FAQ, error) {
	if err := svc.validate.Check(data); err != nil {
		return FAQ{}, err
	}
	var updated FAQ
	err := svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Patch(ctx, fmt.Sprintf("/faqs/%d/", id), data, &updated)
	})
	return updated, err
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.cache.Mutate(ctx, []string{Tag}, func(ctx context.Context) error {
		return svc.client.Delete(ctx, fmt.Sprintf("/faqs/%d/", id))
	})
}
