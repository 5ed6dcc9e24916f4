package lead

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Lead statuses (the funnel)
const (
	StatusNovo        = "novo"
	StatusContato     = "contato"
	StatusQualificado = "qualificado"
	StatusConversao   = "conversao"
	StatusPerdido     = "perdido"
)

// Lead origins
const (
	OrigemSite      = "site"
	OrigemWhatsapp  = "whatsapp"
	OrigemIndicacao = "indicacao"
	OrigemLigacao   = "ligacao"
	OrigemEmail     = "email"
	OrigemFacebook  = "facebook"
	OrigemInstagram = "instagram"
)

var AllStatuses = []string{StatusNovo, StatusContato, StatusQualificado, StatusConversao, StatusPerdido}

type (
	Lead struct {
		ID            int                    `json:"id"`
		Escola        int                    `json:"escola"`
		EscolaNome    string                 `json:"escola_nome"`
		Nome          string                 `json:"nome"`
		Email         string                 `json:"email"`
		Telefone      string                 `json:"telefone"`
		Status        string                 `json:"status"`
		StatusDisplay string                 `json:"status_display"`
		Origem        string                 `json:"origem"`
		OrigemDisplay string                 `json:"origem_display"`
		Observacoes   string                 `json:"observacoes"`
		Interesses    map[string]interface{} `json:"interesses"`
		ContatadoEm   null.Time              `json:"contatado_em"`
		ConvertidoEm  null.Time              `json:"convertido_em"`
		CriadoEm      time.Time              `json:"criado_em"`
		AtualizadoEm  time.Time              `json:"atualizado_em"`
	}

	NewLead struct {
		Nome        string                 `json:"nome" label:"Nome" validate:"required,min=3"`
		Email       string                 `json:"email" label:"Email" validate:"required,email"`
		Telefone    string                 `json:"telefone" label:"Telefone" validate:"required,telefone_br"`
		Origem      string                 `json:"origem" label:"Origem" validate:"required,oneof=site whatsapp indicacao ligacao email facebook instagram"`
		Status      string                 `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=novo contato qualificado conversao perdido"`
		Observacoes string                 `json:"observacoes,omitempty"`
		Interesses  map[string]interface{} `json:"interesses,omitempty"`
	}

	UpdateLead struct {
		Nome        string                 `json:"nome,omitempty" label:"Nome" validate:"omitempty,min=3"`
		Email       string                 `json:"email,omitempty" label:"Email" validate:"omitempty,email"`
		Telefone    string                 `json:"telefone,omitempty" label:"Telefone" validate:"omitempty,telefone_br"`
		Origem      string                 `json:"origem,omitempty" label:"Origem" validate:"omitempty,oneof=site whatsapp indicacao ligacao email facebook instagram"`
		Status      string                 `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=novo contato qualificado conversao perdido"`
		Observacoes string                 `json:"observacoes,omitempty"`
		Interesses  map[string]interface{} `json:"interesses,omitempty"`
	}

	// Stats is the /leads/estatisticas/ payload.
	Stats struct {
		Total         int            `json:"total"`
		Novo          int            `json:"novo"`
		Contato       int            `json:"contato"`
		Qualificado   int            `json:"qualificado"`
		Conversao     int            `json:"conversao"`
		Perdido       int            `json:"perdido"`
		PorOrigem     map[string]int `json:"por_origem"`
		NovosHoje     int            `json:"novos_hoje"`
		TaxaConversao float64        `json:"taxa_conversao"`
	}
)
