package lead_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/lead"
	testutil "github.com/eleveia/eleve-go/tests"
)

func TestService_CRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	first, err := env.Leads.Create(ctx, lead.NewLead{
		Nome:     "João Pereira",
		Email:    "joao@example.com",
		Telefone: "(11) 91234-5678",
		Origem:   lead.OrigemSite,
	})
	assert.NoError(t, err)
	assert.Equal(t, lead.StatusNovo, first.Status)

	second, err := env.Leads.Create(ctx, lead.NewLead{
		Nome:     "Ana Costa",
		Email:    "ana@example.com",
		Telefone: "(21) 99876-5432",
		Origem:   lead.OrigemWhatsapp,
	})
	assert.NoError(t, err)

	list, err := env.Leads.List(ctx, lead.QueryFilter{})
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	// deleting must invalidate: the next list may not contain the lead
	assert.NoError(t, env.Leads.Delete(ctx, second.ID))
	list, err = env.Leads.List(ctx, lead.QueryFilter{})
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, first.ID, list[0].ID)
	}

	moved, err := env.Leads.MudarStatus(ctx, first.ID, lead.StatusContato)
	assert.NoError(t, err)
	assert.Equal(t, lead.StatusContato, moved.Status)
	assert.True(t, moved.ContatadoEm.Valid, "moving to contato stamps the timestamp")

	moved, err = env.Leads.MudarStatus(ctx, first.ID, lead.StatusConversao)
	assert.NoError(t, err)
	assert.True(t, moved.ConvertidoEm.Valid)

	_, err = env.Leads.MudarStatus(ctx, first.ID, "arquivado")
	assert.Equal(t, lead.ErrUnknownStatus, errors.Cause(err))
}

func TestService_Estatisticas(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	ld, err := env.Leads.Create(ctx, lead.NewLead{
		Nome:     "João Pereira",
		Email:    "joao@example.com",
		Telefone: "(11) 91234-5678",
		Origem:   lead.OrigemIndicacao,
	})
	assert.NoError(t, err)
	_, err = env.Leads.MudarStatus(ctx, ld.ID, lead.StatusConversao)
	assert.NoError(t, err)

	stats, err := env.Leads.Estatisticas(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Conversao)
	assert.Equal(t, 1, stats.NovosHoje)
	assert.Equal(t, 1, stats.PorOrigem[lead.OrigemIndicacao])
	assert.Equal(t, 1.0, stats.TaxaConversao)
}

func TestService_Recentes(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	names := []string{"Primeiro Lead", "Segundo Lead", "Terceiro Lead"}
	for i, name := range names {
		_, err := env.Leads.Create(ctx, lead.NewLead{
			Nome:     name,
			Email:    "lead@example.com",
			Telefone: "(11) 91234-567" + string(rune('0'+i)),
			Origem:   lead.OrigemSite,
		})
		assert.NoError(t, err)
	}

	recent, err := env.Leads.Recentes(ctx, 2)
	assert.NoError(t, err)
	if assert.Len(t, recent, 2) {
		assert.Equal(t, "Terceiro Lead", recent[0].Nome, "newest first")
		assert.Equal(t, "Segundo Lead", recent[1].Nome)
	}
}

func TestService_ExportarCSV(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	ld, err := env.Leads.Create(ctx, lead.NewLead{
		Nome:     "João Pereira",
		Email:    "joao@example.com",
		Telefone: "(11) 91234-5678",
		Origem:   lead.OrigemSite,
	})
	assert.NoError(t, err)

	csv, err := env.Leads.ExportarCSV(ctx)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	if assert.Len(t, lines, 2) {
		assert.Equal(t, "id,nome,email,telefone,status,origem", lines[0])
		assert.Contains(t, lines[1], ld.Nome)
	}
}

func TestService_Create_validation(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	_, err := env.Leads.Create(context.Background(), lead.NewLead{
		Nome:     "João Pereira",
		Email:    "not-an-email",
		Telefone: "(11) 91234-5678",
		Origem:   lead.OrigemSite,
	})
	assert.True(t, core.IsValidationError(err))
}
