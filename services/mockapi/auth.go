package mockapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eleveia/eleve-go/core/session"
)

const (
	userKey  = "mockapi.user"
	tokenKey = "mockapi.token"
)

// detail renders a DRF-style {"detail": "..."} error body.
func detail(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, map[string]string{"detail": msg})
}

// fieldErrors renders DRF-style field-level validation errors.
func fieldErrors(ctx echo.Context, fields map[string][]string) error {
	return ctx.JSON(http.StatusBadRequest, fields)
}

// envelope wraps results in the {count, next, previous, results} page shape.
func envelope(ctx echo.Context, results interface{}, count int) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"count":    count,
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Token ") {
		return ""
	}
	return strings.TrimPrefix(header, "Token ")
}

func (s *server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token := bearerToken(ctx)
		if token == "" {
			return detail(ctx, http.StatusUnauthorized, "As credenciais de autenticação não foram fornecidas.")
		}
		usr, ok := s.data.authenticate(token)
		if !ok {
			return detail(ctx, http.StatusUnauthorized, "Token inválido.")
		}
		ctx.Set(userKey, usr)
		ctx.Set(tokenKey, token)
		return next(ctx)
	}
}

func (s *server) requireGatewayToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if bearerToken(ctx) != s.data.gatewayToken {
			return detail(ctx, http.StatusUnauthorized, "invalid instance token")
		}
		return next(ctx)
	}
}

func currentUser(ctx echo.Context) *session.User {
	usr, _ := ctx.Get(userKey).(*session.User)
	return usr
}

func (s *server) login(ctx echo.Context) error {
	var creds session.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	token, usr, ok := s.data.login(creds.Username, creds.Password)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Não é possível fazer login com as credenciais fornecidas."},
		})
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login realizado com sucesso",
		"token":   token,
		"user":    usr,
	})
}

func (s *server) register(ctx echo.Context) error {
	var data session.RegisterData
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	flds := make(map[string][]string)
	if data.Username == "" {
		flds["username"] = []string{"Este campo é obrigatório."}
	}
	if data.Password == "" {
		flds["password"] = []string{"Este campo é obrigatório."}
	}
	if data.Password != data.Password2 {
		flds["password2"] = []string{"As senhas não coincidem."}
	}
	if len(flds) > 0 {
		return fieldErrors(ctx, flds)
	}
	token, usr, ok := s.data.register(data)
	if !ok {
		return fieldErrors(ctx, map[string][]string{"username": {"Um usuário com este nome já existe."}})
	}
	return ctx.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Usuário registrado com sucesso",
		"token":   token,
		"user":    usr,
	})
}

func (s *server) logout(ctx echo.Context) error {
	token, _ := ctx.Get(tokenKey).(string)
	s.data.revoke(token)
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}

func (s *server) perfil(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, currentUser(ctx))
}

func (s *server) atualizarPerfil(ctx echo.Context) error {
	var data session.UpdateProfileData
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	usr := currentUser(ctx)

	s.data.mu.Lock()
	acc := s.data.accounts[usr.Username]
	if data.Email != "" {
		acc.user.Email = data.Email
	}
	if data.FirstName != "" {
		acc.user.FirstName = data.FirstName
	}
	if data.LastName != "" {
		acc.user.LastName = data.LastName
	}
	updated := acc.user
	s.data.mu.Unlock()

	return ctx.JSON(http.StatusOK, &updated)
}
