package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/core/evento"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/gateway"
	"github.com/eleveia/eleve-go/core/lead"
	"github.com/eleveia/eleve-go/core/nav"
	"github.com/eleveia/eleve-go/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	session  *session.Service
	escolas  *escola.Service
	faqs     *faq.Service
	eventos  *evento.Service
	contatos *contato.Service
	leads    *lead.Service
	gateway  *gateway.Service
	nav      *nav.State
	flashes  *core.Flashes
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME           - sign in; the password is prompted next")
	fmt.Fprintln(cli.out, "  logout                             - sign out and drop stored credentials")
	fmt.Fprintln(cli.out, "  perfil                             - show the signed-in user's profile")
	fmt.Fprintln(cli.out, "  escolas                            - list schools")
	fmt.Fprintln(cli.out, "  faqs [-status ativa|inativa]       - list FAQs")
	fmt.Fprintln(cli.out, "  eventos [-proximos]                - list calendar events")
	fmt.Fprintln(cli.out, "  contatos [-status S] [-origem O] [-search Q] - list contacts")
	fmt.Fprintln(cli.out, "  leads [-status S] [-origem O] [-search Q] [-recentes N] - list leads")
	fmt.Fprintln(cli.out, "  leadstatus -id ID -status STATUS   - move a lead through the funnel")
	fmt.Fprintln(cli.out, "  exportleads                        - dump leads as CSV to stdout")
	fmt.Fprintln(cli.out, "  stats                              - contact and lead statistics")
	fmt.Fprintln(cli.out, "  whatsapp -action status|connect|disconnect - manage the WhatsApp instance")
	fmt.Fprintln(cli.out, "  open -module MODULE                - switch the active dashboard module")
}

func (cli *commandLine) run(args []string) error {
	err := cli.dispatch(args)
	if err != nil && err != errHelp {
		cli.flashes.PushSticky(core.FlashError, err.Error())
	}
	cli.renderFlashes()
	return err
}

// renderFlashes prints the pending banners. Sticky ones are dropped once
// shown; a short-lived success banner can carry over into the next command
// until it expires.
func (cli *commandLine) renderFlashes() {
	for _, fl := range cli.flashes.Active() {
		prefix := "ok"
		if fl.Kind == core.FlashError {
			prefix = "erro"
		}
		fmt.Fprintf(cli.out, "[%s] %s\n", prefix, fl.Message)
	}
	cli.flashes.Dismiss()
}

func (cli *commandLine) dispatch(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The account's username. The password will be prompted next.")

	faqsCmd := flag.NewFlagSet("faqs", flag.ExitOnError)
	faqsStatus := faqsCmd.String("status", "", "Filter by status: ativa or inativa.")

	eventosCmd := flag.NewFlagSet("eventos", flag.ExitOnError)
	eventosProximos := eventosCmd.Bool("proximos", false, "Only upcoming events.")

	contatosCmd := flag.NewFlagSet("contatos", flag.ExitOnError)
	contatosStatus := contatosCmd.String("status", "", "Filter by status: ativo or inativo.")
	contatosOrigem := contatosCmd.String("origem", "", "Filter by origin.")
	contatosSearch := contatosCmd.String("search", "", "Search name, email or phone.")

	leadsCmd := flag.NewFlagSet("leads", flag.ExitOnError)
	leadsStatus := leadsCmd.String("status", "", "Filter by funnel status.")
	leadsOrigem := leadsCmd.String("origem", "", "Filter by origin.")
	leadsSearch := leadsCmd.String("search", "", "Search name, email or phone.")
	leadsRecentes := leadsCmd.Int("recentes", 0, "Show only the N most recent leads.")

	leadStatusCmd := flag.NewFlagSet("leadstatus", flag.ExitOnError)
	leadStatusID := leadStatusCmd.Int("id", 0, "The lead's id.")
	leadStatusTo := leadStatusCmd.String("status", "", "Target status: novo, contato, qualificado, conversao or perdido.")

	whatsappCmd := flag.NewFlagSet("whatsapp", flag.ExitOnError)
	whatsappAction := whatsappCmd.String("action", "status", "One of status, connect or disconnect.")

	openCmd := flag.NewFlagSet("open", flag.ExitOnError)
	openModule := openCmd.String("module", "", "The dashboard module to activate.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, string(pwd))
	case "logout":
		return cli.logout()
	case "perfil":
		return cli.perfil()
	case "escolas":
		return cli.listEscolas()
	case "faqs":
		if err := faqsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listFaqs(*faqsStatus)
	case "eventos":
		if err := eventosCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listEventos(*eventosProximos)
	case "contatos":
		if err := contatosCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listContatos(contato.QueryFilter{
			Status: *contatosStatus,
			Origem: *contatosOrigem,
			Search: *contatosSearch,
		})
	case "leads":
		if err := leadsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *leadsRecentes > 0 {
			return cli.listRecentLeads(*leadsRecentes)
		}
		return cli.listLeads(lead.QueryFilter{
			Status: *leadsStatus,
			Origem: *leadsOrigem,
			Search: *leadsSearch,
		})
	case "leadstatus":
		if err := leadStatusCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *leadStatusID == 0 || *leadStatusTo == "" {
			leadStatusCmd.Usage()
			return errHelp
		}
		return cli.changeLeadStatus(*leadStatusID, *leadStatusTo)
	case "exportleads":
		return cli.exportLeads()
	case "stats":
		return cli.stats()
	case "whatsapp":
		if err := whatsappCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.whatsapp(*whatsappAction)
	case "open":
		if err := openCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *openModule == "" {
			openCmd.Usage()
			return errHelp
		}
		return cli.open(*openModule)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) open(module string) error {
	resolved := nav.Resolve(nav.Module(module))
	cli.nav.SetActive(resolved)
	if resolved != nav.Module(module) {
		fmt.Fprintf(cli.out, "%q: no such module, showing %s\n", module, resolved)
		return nil
	}
	fmt.Fprintf(cli.out, "now on %s\n", resolved)
	return nil
}
