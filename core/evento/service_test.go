package evento_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/evento"
	testutil "github.com/eleveia/eleve-go/tests"
)

func TestService_Proximos(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	past := time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	_, err := env.Eventos.Create(ctx, evento.NewEvento{
		Data:   past,
		Evento: "Prova bimestral",
		Tipo:   evento.TipoProva,
	})
	assert.NoError(t, err)
	_, err = env.Eventos.Create(ctx, evento.NewEvento{
		Data:   future,
		Evento: "Festa junina",
		Tipo:   evento.TipoEventoCultural,
	})
	assert.NoError(t, err)

	all, err := env.Eventos.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := env.Eventos.Proximos(ctx)
	assert.NoError(t, err)
	if assert.Len(t, upcoming, 1) {
		assert.Equal(t, "Festa junina", upcoming[0].Evento)
	}
}

func TestService_Create_validation(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	_, err := env.Eventos.Create(ctx, evento.NewEvento{
		Data:   "01/06/2025",
		Evento: "Festa junina",
		Tipo:   evento.TipoEventoCultural,
	})
	assert.True(t, core.IsValidationError(err), "dates must be ISO formatted")

	_, err = env.Eventos.Create(ctx, evento.NewEvento{
		Data:   "2025-06-01",
		Evento: "Festa junina",
		Tipo:   "aniversario",
	})
	assert.True(t, core.IsValidationError(err), "unknown event types are rejected")
}
