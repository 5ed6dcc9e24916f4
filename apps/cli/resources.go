package main

import (
	"context"
	"fmt"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/lead"
)

func (cli *commandLine) listEscolas() error {
	escolas, err := cli.escolas.List(context.Background())
	if err != nil {
		return err
	}
	for _, esc := range escolas {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\n", esc.ID, esc.NomeEscola, esc.Cidade)
	}
	return nil
}

func (cli *commandLine) listFaqs(status string) error {
	faqs, err := cli.faqs.List(context.Background(), faq.QueryFilter{Status: status})
	if err != nil {
		return err
	}
	for _, f := range faqs {
		fmt.Fprintf(cli.out, "%d\t[%s]\t%s\n", f.ID, f.Status, f.Pergunta)
	}
	return nil
}

func (cli *commandLine) listEventos(proximos bool) error {
	ctx := context.Background()
	list := cli.eventos.List
	if proximos {
		list = cli.eventos.Proximos
	}
	eventos, err := list(ctx)
	if err != nil {
		return err
	}
	for _, ev := range eventos {
		fmt.Fprintf(cli.out, "%s\t%s\t%s\n", ev.Data, ev.Tipo, ev.Evento)
	}
	return nil
}

func (cli *commandLine) listContatos(filter contato.QueryFilter) error {
	contatos, err := cli.contatos.List(context.Background(), filter)
	if err != nil {
		return err
	}
	for _, ct := range contatos {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\t%s\n", ct.ID, ct.Nome, ct.Telefone, ct.Status)
	}
	return nil
}

func (cli *commandLine) listLeads(filter lead.QueryFilter) error {
	leads, err := cli.leads.List(context.Background(), filter)
	if err != nil {
		return err
	}
	printLeads(cli, leads)
	return nil
}

func (cli *commandLine) listRecentLeads(limit int) error {
	leads, err := cli.leads.Recentes(context.Background(), limit)
	if err != nil {
		return err
	}
	printLeads(cli, leads)
	return nil
}

func printLeads(cli *commandLine, leads []lead.Lead) {
	for _, ld := range leads {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\t%s\n", ld.ID, ld.Nome, ld.Email, ld.Status)
	}
}

func (cli *commandLine) changeLeadStatus(id int, status string) error {
	ld, err := cli.leads.MudarStatus(context.Background(), id, status)
	if err != nil {
		return err
	}
	cli.flashes.Push(core.FlashSuccess, fmt.Sprintf("lead %d is now %s", ld.ID, ld.Status))
	return nil
}

func (cli *commandLine) exportLeads() error {
	csv, err := cli.leads.ExportarCSV(context.Background())
	if err != nil {
		return err
	}
	_, err = cli.out.Write(csv)
	return err
}

func (cli *commandLine) stats() error {
	ctx := context.Background()
	ctStats, err := cli.contatos.Estatisticas(ctx)
	if err != nil {
		return err
	}
	ldStats, err := cli.leads.Estatisticas(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "contatos: %d total, %d ativos, %d inativos\n", ctStats.Total, ctStats.Ativos, ctStats.Inativos)
	fmt.Fprintf(cli.out, "leads:    %d total, %d novos hoje, %.0f%% conversao\n", ldStats.Total, ldStats.NovosHoje, ldStats.TaxaConversao*100)
	return nil
}
