package faq_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/faq"
	testutil "github.com/eleveia/eleve-go/tests"
)

func TestService_CRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	created, err := env.Faqs.Create(ctx, faq.NewFAQ{
		Pergunta:  "Qual o horário de funcionamento?",
		Resposta:  "Das 7h às 18h.",
		Categoria: "geral",
	})
	assert.NoError(t, err)
	assert.Equal(t, faq.StatusAtiva, created.Status, "new FAQs default to active")
	assert.Equal(t, "Escola Modelo", created.EscolaNome)

	list, err := env.Faqs.List(ctx, faq.QueryFilter{})
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := env.Faqs.Update(ctx, created.ID, faq.UpdateFAQ{Status: faq.StatusInativa})
	assert.NoError(t, err)
	assert.Equal(t, faq.StatusInativa, updated.Status)

	// status filter is served by the API, with separate cache keys
	list, err = env.Faqs.List(ctx, faq.QueryFilter{Status: faq.StatusAtiva})
	assert.NoError(t, err)
	assert.Empty(t, list)
	list, err = env.Faqs.List(ctx, faq.QueryFilter{Status: faq.StatusInativa})
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, env.Faqs.Delete(ctx, created.ID))
	list, err = env.Faqs.List(ctx, faq.QueryFilter{})
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Create_validation(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	_, err := env.Faqs.Create(context.Background(), faq.NewFAQ{Pergunta: "Oi?"})
	assert.True(t, core.IsValidationError(err))
}
