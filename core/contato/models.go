package contato

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Contact statuses
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

type (
	Contato struct {
		ID              int         `json:"id"`
		Escola          int         `json:"escola"`
		EscolaNome      string      `json:"escola_nome"`
		Nome            string      `json:"nome"`
		Email           string      `json:"email"`
		Telefone        string      `json:"telefone"`
		DataNascimento  null.String `json:"data_nascimento"`
		Status          string      `json:"status"`
		StatusDisplay   string      `json:"status_display"`
		Origem          string      `json:"origem"`
		OrigemDisplay   string      `json:"origem_display"`
		UltimaInteracao null.Time   `json:"ultima_interacao"`
		Observacoes     string      `json:"observacoes"`
		Tags            string      `json:"tags"`
		CriadoEm        time.Time   `json:"criado_em"`
		AtualizadoEm    time.Time   `json:"atualizado_em"`
	}

	NewContato struct {
		Nome           string `json:"nome" label:"Nome" validate:"required,nome_completo"`
		Email          string `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		Telefone       string `json:"telefone" label:"Telefone" validate:"required,telefone_br"`
		DataNascimento string `json:"data_nascimento,omitempty" label:"Data de nascimento" validate:"omitempty,datetime=2006-01-02"`
		Origem         string `json:"origem" label:"Origem" validate:"required"`
		Status         string `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=ativo inativo"`
		Observacoes    string `json:"observacoes,omitempty"`
		Tags           string `json:"tags,omitempty"`
	}

	UpdateContato struct {
		Nome           string `json:"nome,omitempty" label:"Nome" validate:"omitempty,nome_completo"`
		Email          string `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		Telefone       string `json:"telefone,omitempty" label:"Telefone" validate:"omitempty,telefone_br"`
		DataNascimento string `json:"data_nascimento,omitempty" label:"Data de nascimento" validate:"omitempty,datetime=2006-01-02"`
		Origem         string `json:"origem,omitempty"`
		Status         string `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=ativo inativo"`
		Observacoes    string `json:"observacoes,omitempty"`
		Tags           string `json:"tags,omitempty"`
	}

	// Stats is the /contatos/estatisticas/ payload.
	Stats struct {
		Total     int            `json:"total"`
		Ativos    int            `json:"ativos"`
		Inativos  int            `json:"inativos"`
		PorOrigem map[string]int `json:"por_origem"`
	}
)
