package mockapi

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/core/evento"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/lead"
	"github.com/eleveia/eleve-go/core/session"
)

func pathID(ctx echo.Context) (int, error) {
	return strconv.Atoi(ctx.Param("id"))
}

// display mimics DRF's get_FOO_display for the mock payloads.
func display(v string) string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func userEscola(ctx echo.Context, ds *dataset) *escola.Escola {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if usr := currentUser(ctx); usr != nil {
		if id, ok := usr.EscolaID(); ok {
			if esc := ds.escolas[id]; esc != nil {
				return esc
			}
		}
	}
	return ds.firstEscola()
}

// ---------------------------------------------------------------- escolas

type escolaAPI struct{ data *dataset }

func registerEscolaAPI(g *echo.Group, ds *dataset) {
	api := &escolaAPI{data: ds}
	g.GET("/escolas", api.list)
	g.POST("/escolas", api.create)
	g.GET("/escolas/:id", api.get)
	g.PATCH("/escolas/:id", api.update)
	g.DELETE("/escolas/:id", api.delete)
	g.GET("/escolas/:id/usuarios", api.usuarios)
}

func (api *escolaAPI) list(ctx echo.Context) error {
	api.data.mu.Lock()
	escolas := make([]*escola.Escola, 0, len(api.data.escolas))
	for _, esc := range api.data.escolas {
		escolas = append(escolas, esc)
	}
	api.data.mu.Unlock()
	sort.Slice(escolas, func(i, j int) bool { return escolas[i].ID < escolas[j].ID })
	return envelope(ctx, escolas, len(escolas))
}

func (api *escolaAPI) get(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	esc := api.data.escolas[id]
	api.data.mu.Unlock()
	if esc == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	return ctx.JSON(http.StatusOK, esc)
}

func (api *escolaAPI) create(ctx echo.Context) error {
	var data escola.NewEscola
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	if data.NomeEscola == "" {
		return fieldErrors(ctx, map[string][]string{"nome_escola": {"Este campo é obrigatório."}})
	}
	now := time.Now().UTC()
	api.data.mu.Lock()
	esc := &escola.Escola{
		ID:           api.data.id(),
		NomeEscola:   data.NomeEscola,
		CNPJ:         data.CNPJ,
		Telefone:     data.Telefone,
		Email:        data.Email,
		Website:      data.Website,
		CEP:          data.CEP,
		Endereco:     data.Endereco,
		Cidade:       data.Cidade,
		Estado:       data.Estado,
		Complemento:  data.Complemento,
		Sobre:        data.Sobre,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	if data.NiveisEnsino != nil {
		esc.NiveisEnsino = *data.NiveisEnsino
	}
	api.data.escolas[esc.ID] = esc
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusCreated, esc)
}

func (api *escolaAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var data escola.UpdateEscola
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	esc := api.data.escolas[id]
	if esc == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	if data.NomeEscola != "" {
		esc.NomeEscola = data.NomeEscola
	}
	if data.CNPJ != "" {
		esc.CNPJ = data.CNPJ
	}
	if data.Telefone != "" {
		esc.Telefone = data.Telefone
	}
	if data.Email != "" {
		esc.Email = data.Email
	}
	if data.Website != "" {
		esc.Website = data.Website
	}
	if data.CEP != "" {
		esc.CEP = data.CEP
	}
	if data.Endereco != "" {
		esc.Endereco = data.Endereco
	}
	if data.Cidade != "" {
		esc.Cidade = data.Cidade
	}
	if data.Estado != "" {
		esc.Estado = data.Estado
	}
	if data.Complemento != "" {
		esc.Complemento = data.Complemento
	}
	if data.Sobre != "" {
		esc.Sobre = data.Sobre
	}
	if data.NiveisEnsino != nil {
		esc.NiveisEnsino = *data.NiveisEnsino
	}
	esc.AtualizadoEm = time.Now().UTC()
	return ctx.JSON(http.StatusOK, esc)
}

func (api *escolaAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	delete(api.data.escolas, id)
	api.data.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *escolaAPI) usuarios(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	users := make([]session.User, 0)
	for _, acc := range api.data.accounts {
		if acc.user.Perfil != nil && acc.user.Perfil.Escola == id {
			users = append(users, acc.user)
		}
	}
	api.data.mu.Unlock()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return ctx.JSON(http.StatusOK, users)
}

// ------------------------------------------------------------------- faqs

type faqAPI struct{ data *dataset }

func registerFaqAPI(g *echo.Group, ds *dataset) {
	api := &faqAPI{data: ds}
	g.GET("/faqs", api.list)
	g.POST("/faqs", api.create)
	g.GET("/faqs/:id", api.get)
	g.PATCH("/faqs/:id", api.update)
	g.DELETE("/faqs/:id", api.delete)
}

func (api *faqAPI) list(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	api.data.mu.Lock()
	faqs := make([]*faq.FAQ, 0, len(api.data.faqs))
	for _, f := range api.data.faqs {
		if status != "" && f.Status != status {
			continue
		}
		faqs = append(faqs, f)
	}
	api.data.mu.Unlock()
	sort.Slice(faqs, func(i, j int) bool { return faqs[i].ID < faqs[j].ID })
	return envelope(ctx, faqs, len(faqs))
}

func (api *faqAPI) get(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	f := api.data.faqs[id]
	api.data.mu.Unlock()
	if f == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *faqAPI) create(ctx echo.Context) error {
	var data faq.NewFAQ
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	flds := make(map[string][]string)
	if data.Pergunta == "" {
		flds["pergunta"] = []string{"Este campo é obrigatório."}
	}
	if data.Resposta == "" {
		flds["resposta"] = []string{"Este campo é obrigatório."}
	}
	if len(flds) > 0 {
		return fieldErrors(ctx, flds)
	}
	status := data.Status
	if status == "" {
		status = faq.StatusAtiva
	}
	esc := userEscola(ctx, api.data)
	now := time.Now().UTC()
	api.data.mu.Lock()
	f := &faq.FAQ{
		ID:           api.data.id(),
		Escola:       esc.ID,
		EscolaNome:   esc.NomeEscola,
		Pergunta:     data.Pergunta,
		Resposta:     data.Resposta,
		Categoria:    data.Categoria,
		Status:       status,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	api.data.faqs[f.ID] = f
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusCreated, f)
}

func (api *faqAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var data faq.UpdateFAQ
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	f := api.data.faqs[id]
	if f == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	if data.Pergunta != "" {
		f.Pergunta = data.Pergunta
	}
	if data.Resposta != "" {
		f.Resposta = data.Resposta
	}
	if data.Categoria != "" {
		f.Categoria = data.Categoria
	}
	if data.Status != "" {
		f.Status = data.Status
	}
	f.AtualizadoEm = time.Now().UTC()
	return ctx.JSON(http.StatusOK, f)
}

func (api *faqAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	delete(api.data.faqs, id)
	api.data.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

// ---------------------------------------------------------------- eventos

type eventoAPI struct{ data *dataset }

func registerEventoAPI(g *echo.Group, ds *dataset) {
	api := &eventoAPI{data: ds}
	g.GET("/eventos", api.list)
	g.POST("/eventos", api.create)
	g.GET("/eventos/proximos_eventos", api.proximos)
	g.GET("/eventos/:id", api.get)
	g.PATCH("/eventos/:id", api.update)
	g.DELETE("/eventos/:id", api.delete)
}

func (api *eventoAPI) list(ctx echo.Context) error {
	api.data.mu.Lock()
	eventos := make([]*evento.Evento, 0, len(api.data.eventos))
	for _, ev := range api.data.eventos {
		eventos = append(eventos, ev)
	}
	api.data.mu.Unlock()
	sort.Slice(eventos, func(i, j int) bool { return eventos[i].Data < eventos[j].Data })
	return envelope(ctx, eventos, len(eventos))
}

func (api *eventoAPI) proximos(ctx echo.Context) error {
	today := time.Now().UTC().Format("2006-01-02")
	api.data.mu.Lock()
	eventos := make([]*evento.Evento, 0)
	for _, ev := range api.data.eventos {
		if ev.Data >= today {
			eventos = append(eventos, ev)
		}
	}
	api.data.mu.Unlock()
	sort.Slice(eventos, func(i, j int) bool { return eventos[i].Data < eventos[j].Data })
	return ctx.JSON(http.StatusOK, eventos)
}

func (api *eventoAPI) get(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	ev := api.data.eventos[id]
	api.data.mu.Unlock()
	if ev == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventoAPI) create(ctx echo.Context) error {
	var data evento.NewEvento
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	flds := make(map[string][]string)
	if data.Data == "" {
		flds["data"] = []string{"Este campo é obrigatório."}
	}
	if data.Evento == "" {
		flds["evento"] = []string{"Este campo é obrigatório."}
	}
	if len(flds) > 0 {
		return fieldErrors(ctx, flds)
	}
	esc := userEscola(ctx, api.data)
	now := time.Now().UTC()
	api.data.mu.Lock()
	ev := &evento.Evento{
		ID:           api.data.id(),
		Escola:       esc.ID,
		EscolaNome:   esc.NomeEscola,
		Data:         data.Data,
		Evento:       data.Evento,
		Tipo:         data.Tipo,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	api.data.eventos[ev.ID] = ev
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *eventoAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var data evento.UpdateEvento
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	ev := api.data.eventos[id]
	if ev == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	if data.Data != "" {
		ev.Data = data.Data
	}
	if data.Evento != "" {
		ev.Evento = data.Evento
	}
	if data.Tipo != "" {
		ev.Tipo = data.Tipo
	}
	ev.AtualizadoEm = time.Now().UTC()
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventoAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	delete(api.data.eventos, id)
	api.data.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

// --------------------------------------------------------------- contatos

type contatoAPI struct{ data *dataset }

func registerContatoAPI(g *echo.Group, ds *dataset) {
	api := &contatoAPI{data: ds}
	g.GET("/contatos", api.list)
	g.POST("/contatos", api.create)
	g.GET("/contatos/estatisticas", api.estatisticas)
	g.GET("/contatos/:id", api.get)
	g.PATCH("/contatos/:id", api.update)
	g.DELETE("/contatos/:id", api.delete)
	g.POST("/contatos/:id/registrar_interacao", api.registrarInteracao)
}

func (api *contatoAPI) list(ctx echo.Context) error {
	status, origem, search := ctx.QueryParam("status"), ctx.QueryParam("origem"), ctx.QueryParam("search")
	api.data.mu.Lock()
	contatos := make([]*contato.Contato, 0, len(api.data.contatos))
	for _, ct := range api.data.contatos {
		if status != "" && ct.Status != status {
			continue
		}
		if origem != "" && ct.Origem != origem {
			continue
		}
		if !matches(search, ct.Nome, ct.Email, ct.Telefone) {
			continue
		}
		contatos = append(contatos, ct)
	}
	api.data.mu.Unlock()
	sort.Slice(contatos, func(i, j int) bool { return contatos[i].ID < contatos[j].ID })
	return envelope(ctx, contatos, len(contatos))
}

func (api *contatoAPI) get(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	ct := api.data.contatos[id]
	api.data.mu.Unlock()
	if ct == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	return ctx.JSON(http.StatusOK, ct)
}

func (api *contatoAPI) create(ctx echo.Context) error {
	var data contato.NewContato
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	flds := make(map[string][]string)
	if data.Nome == "" {
		flds["nome"] = []string{"Este campo é obrigatório."}
	}
	if data.Telefone == "" {
		flds["telefone"] = []string{"Este campo é obrigatório."}
	}
	if data.Origem == "" {
		flds["origem"] = []string{"Este campo é obrigatório."}
	}
	if len(flds) > 0 {
		return fieldErrors(ctx, flds)
	}
	status := data.Status
	if status == "" {
		status = contato.StatusAtivo
	}
	esc := userEscola(ctx, api.data)
	now := time.Now().UTC()
	api.data.mu.Lock()
	ct := &contato.Contato{
		ID:             api.data.id(),
		Escola:         esc.ID,
		EscolaNome:     esc.NomeEscola,
		Nome:           data.Nome,
		Email:          data.Email,
		Telefone:       data.Telefone,
		DataNascimento: nullableDate(data.DataNascimento),
		Status:         status,
		StatusDisplay:  display(status),
		Origem:         data.Origem,
		OrigemDisplay:  display(data.Origem),
		Observacoes:    data.Observacoes,
		Tags:           data.Tags,
		CriadoEm:       now,
		AtualizadoEm:   now,
	}
	api.data.contatos[ct.ID] = ct
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusCreated, ct)
}

func (api *contatoAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var data contato.UpdateContato
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	ct := api.data.contatos[id]
	if ct == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	if data.Nome != "" {
		ct.Nome = data.Nome
	}
	if data.Email != "" {
		ct.Email = data.Email
	}
	if data.Telefone != "" {
		ct.Telefone = data.Telefone
	}
	if data.DataNascimento != "" {
		ct.DataNascimento = nullableDate(data.DataNascimento)
	}
	if data.Origem != "" {
		ct.Origem = data.Origem
		ct.OrigemDisplay = display(data.Origem)
	}
	if data.Status != "" {
		ct.Status = data.Status
		ct.StatusDisplay = display(data.Status)
	}
	if data.Observacoes != "" {
		ct.Observacoes = data.Observacoes
	}
	if data.Tags != "" {
		ct.Tags = data.Tags
	}
	ct.AtualizadoEm = time.Now().UTC()
	return ctx.JSON(http.StatusOK, ct)
}

func (api *contatoAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	delete(api.data.contatos, id)
	api.data.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contatoAPI) registrarInteracao(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	ct := api.data.contatos[id]
	if ct == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	now := time.Now().UTC()
	ct.UltimaInteracao.SetValid(now)
	ct.AtualizadoEm = now
	return ctx.JSON(http.StatusOK, ct)
}

func (api *contatoAPI) estatisticas(ctx echo.Context) error {
	api.data.mu.Lock()
	stats := contato.Stats{PorOrigem: make(map[string]int)}
	for _, ct := range api.data.contatos {
		stats.Total++
		if ct.Status == contato.StatusAtivo {
			stats.Ativos++
		} else {
			stats.Inativos++
		}
		stats.PorOrigem[ct.Origem]++
	}
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusOK, stats)
}

// ------------------------------------------------------------------ leads

type leadAPI struct{ data *dataset }

func registerLeadAPI(g *echo.Group, ds *dataset) {
	api := &leadAPI{data: ds}
	g.GET("/leads", api.list)
	g.POST("/leads", api.create)
	g.GET("/leads/estatisticas", api.estatisticas)
	g.GET("/leads/recentes", api.recentes)
	g.GET("/leads/exportar_csv", api.exportarCSV)
	g.GET("/leads/:id", api.get)
	g.PATCH("/leads/:id", api.update)
	g.DELETE("/leads/:id", api.delete)
	g.POST("/leads/:id/mudar_status", api.mudarStatus)
}

func (api *leadAPI) list(ctx echo.Context) error {
	status, origem, search := ctx.QueryParam("status"), ctx.QueryParam("origem"), ctx.QueryParam("search")
	api.data.mu.Lock()
	leads := make([]*lead.Lead, 0, len(api.data.leads))
	for _, ld := range api.data.leads {
		if status != "" && ld.Status != status {
			continue
		}
		if origem != "" && ld.Origem != origem {
			continue
		}
		if !matches(search, ld.Nome, ld.Email, ld.Telefone) {
			continue
		}
		leads = append(leads, ld)
	}
	api.data.mu.Unlock()
	sort.Slice(leads, func(i, j int) bool { return leads[i].ID < leads[j].ID })
	return envelope(ctx, leads, len(leads))
}

func (api *leadAPI) get(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	ld := api.data.leads[id]
	api.data.mu.Unlock()
	if ld == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	return ctx.JSON(http.StatusOK, ld)
}

func (api *leadAPI) create(ctx echo.Context) error {
	var data lead.NewLead
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	flds := make(map[string][]string)
	if data.Nome == "" {
		flds["nome"] = []string{"Este campo é obrigatório."}
	}
	if data.Email == "" {
		flds["email"] = []string{"Este campo é obrigatório."}
	}
	if data.Telefone == "" {
		flds["telefone"] = []string{"Este campo é obrigatório."}
	}
	if len(flds) > 0 {
		return fieldErrors(ctx, flds)
	}
	status := data.Status
	if status == "" {
		status = lead.StatusNovo
	}
	esc := userEscola(ctx, api.data)
	now := time.Now().UTC()
	api.data.mu.Lock()
	ld := &lead.Lead{
		ID:            api.data.id(),
		Escola:        esc.ID,
		EscolaNome:    esc.NomeEscola,
		Nome:          data.Nome,
		Email:         data.Email,
		Telefone:      data.Telefone,
		Status:        status,
		StatusDisplay: display(status),
		Origem:        data.Origem,
		OrigemDisplay: display(data.Origem),
		Observacoes:   data.Observacoes,
		Interesses:    data.Interesses,
		CriadoEm:      now,
		AtualizadoEm:  now,
	}
	api.data.leads[ld.ID] = ld
	api.data.mu.Unlock()
	return ctx.JSON(http.StatusCreated, ld)
}

func (api *leadAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var data lead.UpdateLead
	if err := ctx.Bind(&data); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	ld := api.data.leads[id]
	if ld == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	if data.Nome != "" {
		ld.Nome = data.Nome
	}
	if data.Email != "" {
		ld.Email = data.Email
	}
	if data.Telefone != "" {
		ld.Telefone = data.Telefone
	}
	if data.Origem != "" {
		ld.Origem = data.Origem
		ld.OrigemDisplay = display(data.Origem)
	}
	if data.Status != "" {
		ld.Status = data.Status
		ld.StatusDisplay = display(data.Status)
	}
	if data.Observacoes != "" {
		ld.Observacoes = data.Observacoes
	}
	if data.Interesses != nil {
		ld.Interesses = data.Interesses
	}
	ld.AtualizadoEm = time.Now().UTC()
	return ctx.JSON(http.StatusOK, ld)
}

func (api *leadAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	api.data.mu.Lock()
	delete(api.data.leads, id)
	api.data.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *leadAPI) mudarStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return detail(ctx, http.StatusBadRequest, "corpo de requisição inválido")
	}
	var known bool
	for _, s := range lead.AllStatuses {
		if s == body.Status {
			known = true
			break
		}
	}
	if !known {
		return fieldErrors(ctx, map[string][]string{"status": {"Status inválido."}})
	}
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	ld := api.data.leads[id]
	if ld == nil {
		return detail(ctx, http.StatusNotFound, "Não encontrado.")
	}
	now := time.Now().UTC()
	ld.Status = body.Status
	ld.StatusDisplay = display(body.Status)
	switch body.Status {
	case lead.StatusContato:
		ld.ContatadoEm.SetValid(now)
	case lead.StatusConversao:
		ld.ConvertidoEm.SetValid(now)
	}
	ld.AtualizadoEm = now
	return ctx.JSON(http.StatusOK, ld)
}

func (api *leadAPI) estatisticas(ctx echo.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	api.data.mu.Lock()
	stats := lead.Stats{PorOrigem: make(map[string]int)}
	for _, ld := range api.data.leads {
		stats.Total++
		switch ld.Status {
		case lead.StatusNovo:
			stats.Novo++
		case lead.StatusContato:
			stats.Contato++
		case lead.StatusQualificado:
			stats.Qualificado++
		case lead.StatusConversao:
			stats.Conversao++
		case lead.StatusPerdido:
			stats.Perdido++
		}
		stats.PorOrigem[ld.Origem]++
		if !ld.CriadoEm.Before(today) {
			stats.NovosHoje++
		}
	}
	api.data.mu.Unlock()
	if stats.Total > 0 {
		stats.TaxaConversao = float64(stats.Conversao) / float64(stats.Total)
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *leadAPI) recentes(ctx echo.Context) error {
	limit, err := strconv.Atoi(ctx.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	api.data.mu.Lock()
	leads := make([]*lead.Lead, 0, len(api.data.leads))
	for _, ld := range api.data.leads {
		leads = append(leads, ld)
	}
	api.data.mu.Unlock()
	sort.Slice(leads, func(i, j int) bool { return leads[i].ID > leads[j].ID })
	if len(leads) > limit {
		leads = leads[:limit]
	}
	return ctx.JSON(http.StatusOK, leads)
}

func (api *leadAPI) exportarCSV(ctx echo.Context) error {
	api.data.mu.Lock()
	leads := make([]*lead.Lead, 0, len(api.data.leads))
	for _, ld := range api.data.leads {
		leads = append(leads, ld)
	}
	api.data.mu.Unlock()
	sort.Slice(leads, func(i, j int) bool { return leads[i].ID < leads[j].ID })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "nome", "email", "telefone", "status", "origem"})
	for _, ld := range leads {
		_ = w.Write([]string{strconv.Itoa(ld.ID), ld.Nome, ld.Email, ld.Telefone, ld.Status, ld.Origem})
	}
	w.Flush()
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
