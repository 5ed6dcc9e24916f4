// Package mockapi implements the REST contract the SDK consumes (auth,
// resources and the WhatsApp gateway's instance endpoints) against
// in-memory fixtures. Integration tests mount it with httptest; it also
// runs standalone for front-end development.
package mockapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		data *dataset
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
		data: newDataset(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.HideBanner = true

	api := s.app.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/registro", s.register)

	authed := api.Group("", s.requireToken)
	authed.POST("/auth/logout", s.logout)
	authed.GET("/auth/perfil", s.perfil)
	authed.PUT("/auth/atualizar-perfil", s.atualizarPerfil)

	registerEscolaAPI(authed, s.data)
	registerFaqAPI(authed, s.data)
	registerEventoAPI(authed, s.data)
	registerContatoAPI(authed, s.data)
	registerLeadAPI(authed, s.data)

	// the gateway lives on its own host in production; here it shares the
	// mux under a different base path
	registerGatewayAPI(s.app.Group("/instance", s.requireGatewayToken), s.data)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
