package session

// Profile types
const (
	TipoGestor   = "gestor"
	TipoOperador = "operador"
)

type (
	// Perfil ties a user to a school with a role type.
	Perfil struct {
		ID          int    `json:"id"`
		Escola      int    `json:"escola"`
		EscolaNome  string `json:"escola_nome"`
		Tipo        string `json:"tipo"`
		TipoDisplay string `json:"tipo_display"`
		Ativo       bool   `json:"ativo"`
	}

	// User is the authenticated identity; replaced wholesale on login or
	// profile fetch, never mutated field by field.
	User struct {
		ID          int     `json:"id"`
		Username    string  `json:"username"`
		Email       string  `json:"email"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Superuser   bool    `json:"is_superuser"`
		Staff       bool    `json:"is_staff"`
		Perfil      *Perfil `json:"perfil,omitempty"`
	}

	Credentials struct {
		Username string `json:"username" label:"Usuário" validate:"required"`
		Password string `json:"password" label:"Senha" validate:"required"`
	}

	RegisterData struct {
		Username   string `json:"username" label:"Usuário" validate:"required,min=3"`
		Email      string `json:"email" label:"Email" validate:"required,email"`
		Password   string `json:"password" label:"Senha" validate:"required,senha_forte"`
		Password2  string `json:"password2" label:"Confirmação de senha" validate:"required,eqfield=Password"`
		FirstName  string `json:"first_name,omitempty"`
		LastName   string `json:"last_name,omitempty"`
		EscolaID   int    `json:"escola_id" label:"Escola" validate:"required"`
		TipoPerfil string `json:"tipo_perfil" label:"Tipo de perfil" validate:"required,oneof=gestor operador"`
	}

	UpdateProfileData struct {
		Email     string `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		FirstName string `json:"first_name,omitempty"`
		LastName  string `json:"last_name,omitempty"`
	}

	authResponse struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
)

func (u *User) IsGestor() bool {
	return u != nil && u.Perfil != nil && u.Perfil.Tipo == TipoGestor
}

func (u *User) IsOperador() bool {
	return u != nil && u.Perfil != nil && u.Perfil.Tipo == TipoOperador
}

func (u *User) IsSuperuser() bool {
	return u != nil && u.Superuser
}

// EscolaID returns the school the user belongs to, when a profile exists.
func (u *User) EscolaID() (int, bool) {
	if u == nil || u.Perfil == nil {
		return 0, false
	}
	return u.Perfil.Escola, true
}

func (u *User) EscolaNome() string {
	if u == nil || u.Perfil == nil {
		return ""
	}
	return u.Perfil.EscolaNome
}
