package escola

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	// NiveisEnsino flags which education levels the school offers. Field
	// names follow the API payload as-is.
	NiveisEnsino struct {
		Infantil     bool `json:"infantil,omitempty"`
		FundamentoI  bool `json:"fundamentoI,omitempty"`
		FundamentoII bool `json:"fundamentoII,omitempty"`
		Medio        bool `json:"medio,omitempty"`
	}

	Escola struct {
		ID             int          `json:"id"`
		NomeEscola     string       `json:"nome_escola"`
		CNPJ           string       `json:"cnpj"`
		Telefone       string       `json:"telefone"`
		Email          string       `json:"email"`
		Website        string       `json:"website"`
		Logo           null.String  `json:"logo"`
		CEP            string       `json:"cep"`
		Endereco       string       `json:"endereco"`
		Cidade         string       `json:"cidade"`
		Estado         string       `json:"estado"`
		Complemento    string       `json:"complemento"`
		Sobre          string       `json:"sobre"`
		NiveisEnsino   NiveisEnsino `json:"niveis_ensino"`
		TokenMensagens string       `json:"token_mensagens"`
		CriadoEm       time.Time    `json:"criado_em"`
		AtualizadoEm   time.Time    `json:"atualizado_em"`
	}

	NewEscola struct {
		NomeEscola   string        `json:"nome_escola" label:"Nome da escola" validate:"required,min=3"`
		CNPJ         string        `json:"cnpj,omitempty" label:"CNPJ" validate:"omitempty,cnpj"`
		Telefone     string        `json:"telefone,omitempty" label:"Telefone" validate:"omitempty,telefone_br"`
		Email        string        `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		Website      string        `json:"website,omitempty" label:"Website" validate:"omitempty,url"`
		CEP          string        `json:"cep,omitempty" label:"CEP" validate:"omitempty,cep"`
		Endereco     string        `json:"endereco,omitempty"`
		Cidade       string        `json:"cidade,omitempty"`
		Estado       string        `json:"estado,omitempty"`
		Complemento  string        `json:"complemento,omitempty"`
		Sobre        string        `json:"sobre,omitempty"`
		NiveisEnsino *NiveisEnsino `json:"niveis_ensino,omitempty"`
	}

	// UpdateEscola is a partial patch: zero fields are left out of the
	// request entirely.
	UpdateEscola struct {
		NomeEscola   string        `json:"nome_escola,omitempty" label:"Nome da escola" validate:"omitempty,min=3"`
		CNPJ         string        `json:"cnpj,omitempty" label:"CNPJ" validate:"omitempty,cnpj"`
		Telefone     string        `json:"telefone,omitempty" label:"Telefone" validate:"omitempty,telefone_br"`
		Email        string        `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		Website      string        `json:"website,omitempty" label:"Website" validate:"omitempty,url"`
		CEP          string        `json:"cep,omitempty" label:"CEP" validate:"omitempty,cep"`
		Endereco     string        `json:"endereco,omitempty"`
		Cidade       string        `json:"cidade,omitempty"`
		Estado       string        `json:"estado,omitempty"`
		Complemento  string        `json:"complemento,omitempty"`
		Sobre        string        `json:"sobre,omitempty"`
		NiveisEnsino *NiveisEnsino `json:"niveis_ensino,omitempty"`
	}
)
