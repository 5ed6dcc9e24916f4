package restclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(Options{
		BaseURL: srv.URL,
		Tokens:  TokenSourceFunc(func(context.Context) (string, bool) { return "abc123", true }),
	})
	err := client.Get(context.Background(), "/escolas/", nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, "Token abc123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestClient_noTokenNoAuthHeader(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(Options{
		BaseURL: srv.URL,
		Tokens:  TokenSourceFunc(func(context.Context) (string, bool) { return "", false }),
	})
	err := client.Get(context.Background(), "/escolas/", nil, nil)
	assert.NoError(t, err)

	_, present := got["Authorization"]
	assert.False(t, present, "anonymous requests must not carry an Authorization header")
}

func TestClient_tokenSourceGetsRequestContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	type ctxKey struct{}
	var seen interface{}
	client := New(Options{
		BaseURL: srv.URL,
		Tokens: TokenSourceFunc(func(ctx context.Context) (string, bool) {
			seen = ctx.Value(ctxKey{})
			return "abc123", true
		}),
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "request-scoped")
	err := client.Get(ctx, "/escolas/", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "request-scoped", seen, "the token source must see the caller's context")
}

func TestClient_decodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"id":7}]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	var page Page[struct {
		ID int `json:"id"`
	}]
	err := client.Get(context.Background(), "/leads/", nil, &page)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	if assert.Len(t, page.Results, 1) {
		assert.Equal(t, 7, page.Results[0].ID)
	}
}

func TestClient_serverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token inválido."}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	err := client.Get(context.Background(), "/auth/perfil/", nil, nil)

	apiErr, ok := err.(*APIError)
	if assert.True(t, ok, "want *APIError, got %T", err) {
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Token inválido.", apiErr.Message)
	}
	assert.True(t, IsAuthError(err))
	assert.Equal(t, http.StatusUnauthorized, ErrorStatus(err))
}

func TestClient_networkError(t *testing.T) {
	client := New(Options{BaseURL: "http://127.0.0.1:1"})
	err := client.Get(context.Background(), "/escolas/", nil, nil)

	_, ok := err.(*NetworkError)
	assert.True(t, ok, "want *NetworkError, got %T", err)
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(err))
	assert.False(t, IsAuthError(err))
}

func TestClient_getRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,nome\n1,Maria\n"))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	body, err := client.GetRaw(context.Background(), "/leads/exportar_csv/", nil)
	assert.NoError(t, err)
	assert.Equal(t, "id,nome\n1,Maria\n", string(body))
}
