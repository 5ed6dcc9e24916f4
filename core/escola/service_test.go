package escola_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/services/mockapi"
	testutil "github.com/eleveia/eleve-go/tests"
)

func TestService_List(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	escolas, err := env.Escolas.List(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, escolas, 1) {
		assert.Equal(t, "Escola Modelo", escolas[0].NomeEscola)
		assert.True(t, escolas[0].NiveisEnsino.Medio)
	}
}

func TestService_List_unauthenticated(t *testing.T) {
	env := testutil.NewEnv(t)

	_, err := env.Escolas.List(context.Background())
	assert.Error(t, err)
	assert.EqualError(t, errors.Cause(err), "As credenciais de autenticação não foram fornecidas.")
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)
	ctx := context.Background()

	escolas, err := env.Escolas.List(ctx)
	assert.NoError(t, err)
	id := escolas[0].ID

	updated, err := env.Escolas.Update(ctx, id, escola.UpdateEscola{Telefone: "(11) 3333-4444"})
	assert.NoError(t, err)
	assert.Equal(t, "(11) 3333-4444", updated.Telefone)

	got, err := env.Escolas.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "(11) 3333-4444", got.Telefone, "the mutation must invalidate cached reads")
}

func TestService_Update_validation(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	_, err := env.Escolas.Update(context.Background(), 1, escola.UpdateEscola{CNPJ: "123"})
	assert.True(t, core.IsValidationError(err))
	vErr := errors.Cause(err).(*core.ValidationError)
	assert.Equal(t, "CNPJ inválido", vErr.FieldMessage("CNPJ"))
}

func TestService_Usuarios(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	users, err := env.Escolas.Usuarios(context.Background(), 1)
	assert.NoError(t, err)
	if assert.Len(t, users, 1) {
		assert.Equal(t, testutil.Username, users[0].Username)
	}
}

func TestService_MessagingTokens(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	token, ok := env.Escolas.MessagingTokens().Token(context.Background())
	assert.True(t, ok)
	assert.Equal(t, mockapi.MessagingToken, token)
}

func TestService_MessagingTokens_cancelledCaller(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Login(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := env.Escolas.MessagingTokens().Token(ctx)
	assert.False(t, ok, "a cancelled caller must not wait for the school list")
}

func TestService_MessagingTokens_anonymous(t *testing.T) {
	env := testutil.NewEnv(t)

	// without a session the school list is unavailable, so no token
	_, ok := env.Escolas.MessagingTokens().Token(context.Background())
	assert.False(t, ok)
}
