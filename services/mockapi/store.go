package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/core/evento"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/lead"
	"github.com/eleveia/eleve-go/core/session"
)

type account struct {
	user     session.User
	password string
}

// dataset is the in-memory fixture state behind the mock server.
type dataset struct {
	mu sync.Mutex

	accounts map[string]*account // by username
	tokens   map[string]string   // token -> username

	escolas  map[int]*escola.Escola
	faqs     map[int]*faq.FAQ
	eventos  map[int]*evento.Evento
	contatos map[int]*contato.Contato
	leads    map[int]*lead.Lead
	nextID   int

	gatewayToken      string
	gatewayConnected  bool
	gatewayConnecting bool
	gatewayQRCode     string
}

// MessagingToken is the gateway credential the seeded school carries.
const MessagingToken = "mensagens-token-escola-1"

func newDataset() *dataset {
	ds := &dataset{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		escolas:  make(map[int]*escola.Escola),
		faqs:     make(map[int]*faq.FAQ),
		eventos:  make(map[int]*evento.Evento),
		contatos: make(map[int]*contato.Contato),
		leads:    make(map[int]*lead.Lead),
		nextID:   1,
	}
	ds.seed()
	return ds
}

func (ds *dataset) seed() {
	now := time.Now().UTC()
	esc := &escola.Escola{
		ID:             ds.id(),
		NomeEscola:     "Escola Modelo",
		CNPJ:           "12.345.678/0001-90",
		Telefone:       "(11) 98765-4321",
		Email:          "contato@escolamodelo.com.br",
		CEP:            "01310-100",
		Endereco:       "Av. Paulista, 1000",
		Cidade:         "São Paulo",
		Estado:         "SP",
		Sobre:          "Escola de ensino fundamental e médio.",
		NiveisEnsino:   escola.NiveisEnsino{FundamentoI: true, FundamentoII: true, Medio: true},
		TokenMensagens: MessagingToken,
		CriadoEm:       now,
		AtualizadoEm:   now,
	}
	ds.escolas[esc.ID] = esc
	ds.gatewayToken = MessagingToken

	ds.accounts["admin"] = &account{
		password: "secret",
		user: session.User{
			ID:       1,
			Username: "admin",
			Email:    "admin@escolamodelo.com.br",
			Perfil: &session.Perfil{
				ID:          1,
				Escola:      esc.ID,
				EscolaNome:  esc.NomeEscola,
				Tipo:        session.TipoGestor,
				TipoDisplay: "Gestor",
				Ativo:       true,
			},
		},
	}
}

func (ds *dataset) id() int {
	id := ds.nextID
	ds.nextID++
	return id
}

func (ds *dataset) login(username, password string) (string, *session.User, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	acc := ds.accounts[username]
	if acc == nil || acc.password != password {
		return "", nil, false
	}
	token := uuid.NewString()
	ds.tokens[token] = username
	usr := acc.user
	return token, &usr, true
}

func (ds *dataset) register(data session.RegisterData) (string, *session.User, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, exists := ds.accounts[data.Username]; exists {
		return "", nil, false
	}
	esc := ds.escolas[data.EscolaID]
	usr := session.User{
		ID:        len(ds.accounts) + 1,
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
	}
	if esc != nil {
		usr.Perfil = &session.Perfil{
			ID:         usr.ID,
			Escola:     esc.ID,
			EscolaNome: esc.NomeEscola,
			Tipo:       data.TipoPerfil,
			Ativo:      true,
		}
	}
	ds.accounts[data.Username] = &account{user: usr, password: data.Password}
	token := uuid.NewString()
	ds.tokens[token] = data.Username
	return token, &usr, true
}

func (ds *dataset) authenticate(token string) (*session.User, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	username, ok := ds.tokens[token]
	if !ok {
		return nil, false
	}
	acc := ds.accounts[username]
	if acc == nil {
		return nil, false
	}
	usr := acc.user
	return &usr, true
}

func (ds *dataset) revoke(token string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.tokens, token)
}

func (ds *dataset) firstEscola() *escola.Escola {
	ids := make([]int, 0, len(ds.escolas))
	for id := range ds.escolas {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if len(ids) == 0 {
		return nil
	}
	return ds.escolas[ids[0]]
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func nullableDate(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
