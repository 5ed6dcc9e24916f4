package evento

import "time"

// Event types
const (
	TipoFeriado        = "feriado"
	TipoProva          = "prova"
	TipoFormatura      = "formatura"
	TipoEventoCultural = "evento_cultural"
)

type (
	Evento struct {
		ID         int    `json:"id"`
		Escola     int    `json:"escola"`
		EscolaNome string `json:"escola_nome"`
		// Data is the calendar date in "2006-01-02" form, as the API sends it.
		Data         string    `json:"data"`
		Evento       string    `json:"evento"`
		Tipo         string    `json:"tipo"`
		CriadoEm     time.Time `json:"criado_em"`
		AtualizadoEm time.Time `json:"atualizado_em"`
	}

	NewEvento struct {
		Data   string `json:"data" label:"Data" validate:"required,datetime=2006-01-02"`
		Evento string `json:"evento" label:"Evento" validate:"required,min=3"`
		Tipo   string `json:"tipo" label:"Tipo" validate:"required,oneof=feriado prova formatura evento_cultural"`
	}

	UpdateEvento struct {
		Data   string `json:"data,omitempty" label:"Data" validate:"omitempty,datetime=2006-01-02"`
		Evento string `json:"evento,omitempty" label:"Evento" validate:"omitempty,min=3"`
		Tipo   string `json:"tipo,omitempty" label:"Tipo" validate:"omitempty,oneof=feriado prova formatura evento_cultural"`
	}
)
