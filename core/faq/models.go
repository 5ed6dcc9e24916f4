package faq

import "time"

// FAQ statuses
const (
	StatusAtiva   = "ativa"
	StatusInativa = "inativa"
)

type (
	FAQ struct {
		ID           int       `json:"id"`
		Escola       int       `json:"escola"`
		EscolaNome   string    `json:"escola_nome"`
		Pergunta     string    `json:"pergunta"`
		Resposta     string    `json:"resposta"`
		Categoria    string    `json:"categoria"`
		Status       string    `json:"status"`
		CriadoEm     time.Time `json:"criado_em"`
		AtualizadoEm time.Time `json:"atualizado_em"`
	}

	NewFAQ struct {
		Pergunta  string `json:"pergunta" label:"Pergunta" validate:"required,min=5"`
		Resposta  string `json:"resposta" label:"Resposta" validate:"required"`
		Categoria string `json:"categoria" label:"Categoria" validate:"required"`
		Status    string `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=ativa inativa"`
	}

	UpdateFAQ struct {
		Pergunta  string `json:"pergunta,omitempty" label:"Pergunta" validate:"omitempty,min=5"`
		Resposta  string `json:"resposta,omitempty"`
		Categoria string `json:"categoria,omitempty"`
		Status    string `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=ativa inativa"`
	}
)
