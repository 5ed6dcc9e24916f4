package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/nav"
	testutil "github.com/eleveia/eleve-go/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	env := testutil.NewEnv(t)
	out := &bytes.Buffer{}
	return &commandLine{
		out:      out,
		session:  env.Session,
		escolas:  env.Escolas,
		faqs:     env.Faqs,
		eventos:  env.Eventos,
		contatos: env.Contatos,
		leads:    env.Leads,
		gateway:  env.Gateway,
		nav:      nav.NewState(),
		flashes:  core.NewFlashes(5 * time.Second),
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
	wantOut    string
}

func Test_commandLine_login(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"login"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"login", "-username", "admin"}, wantErr: errHelp},
		{
			name:       "bad credentials",
			args:       []string{"login", "-username", "admin"},
			pwd:        "nope",
			wantErrStr: "Não é possível fazer login com as credenciais fornecidas.",
		},
		{
			name:    "ok",
			args:    []string{"login", "-username", testutil.Username},
			pwd:     testutil.Password,
			wantOut: "signed in as admin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			readPasswordFunc = func(fd int) ([]byte, error) {
				return []byte(tt.pwd), nil
			}

			err := cli.run(append([]string{"eleve"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				if err != nil {
					t.Fatalf("cli.run() unexpected error = %v", err)
				}
				if !strings.Contains(out.String(), tt.wantOut) {
					t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
				}
			}
		})
	}
}

func Test_commandLine_resources(t *testing.T) {
	cli, out := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte(testutil.Password), nil
	}
	if err := cli.run([]string{"eleve", "login", "-username", testutil.Username}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tests := []cliTest{
		{name: "escolas", args: []string{"escolas"}, wantOut: "Escola Modelo"},
		{name: "faqs", args: []string{"faqs"}},
		{name: "faqs filtered", args: []string{"faqs", "-status", "ativa"}},
		{name: "eventos", args: []string{"eventos"}},
		{name: "eventos proximos", args: []string{"eventos", "-proximos"}},
		{name: "contatos", args: []string{"contatos", "-search", "maria"}},
		{name: "leads", args: []string{"leads"}},
		{name: "leads recentes", args: []string{"leads", "-recentes", "3"}},
		{name: "leadstatus missing flags", args: []string{"leadstatus"}, wantErr: errHelp},
		{name: "leadstatus unknown lead", args: []string{"leadstatus", "-id", "99", "-status", "contato"}, wantErrStr: "Não encontrado."},
		{name: "exportleads", args: []string{"exportleads"}, wantOut: "id,nome,email,telefone,status,origem"},
		{name: "stats", args: []string{"stats"}, wantOut: "contatos: 0 total"},
		{name: "perfil", args: []string{"perfil"}, wantOut: "admin@escolamodelo.com.br"},
		{name: "open missing flag", args: []string{"open"}, wantErr: errHelp},
		{name: "open leads", args: []string{"open", "-module", "leads"}, wantOut: "now on leads"},
		{name: "open unknown module", args: []string{"open", "-module", "lol"}, wantOut: "showing dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(append([]string{"eleve"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				if err != nil {
					t.Fatalf("cli.run() unexpected error = %v", err)
				}
				if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
					t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
				}
			}
		})
	}
}

func Test_commandLine_flashes(t *testing.T) {
	cli, out := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte(testutil.Password), nil
	}
	if err := cli.run([]string{"eleve", "login", "-username", testutil.Username}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// a failed command surfaces as an error banner
	out.Reset()
	if err := cli.run([]string{"eleve", "leadstatus", "-id", "99", "-status", "contato"}); err == nil {
		t.Fatal("cli.run() expected an error for an unknown lead")
	}
	if !strings.Contains(out.String(), "[erro] Não encontrado.") {
		t.Errorf("cli.run() output = %q, want an error banner", out.String())
	}

	// rendered once, it does not linger into the next command
	out.Reset()
	if err := cli.run([]string{"eleve", "escolas"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	if strings.Contains(out.String(), "[erro]") {
		t.Errorf("cli.run() output = %q, error banner should be gone", out.String())
	}

	// a successful mutation flashes a confirmation
	out.Reset()
	if err := cli.run([]string{"eleve", "whatsapp", "-action", "disconnect"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	if !strings.Contains(out.String(), "[ok] instance disconnected") {
		t.Errorf("cli.run() output = %q, want a success banner", out.String())
	}
}

func Test_commandLine_whatsapp(t *testing.T) {
	cli, out := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte(testutil.Password), nil
	}
	if err := cli.run([]string{"eleve", "login", "-username", testutil.Username}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	steps := []cliTest{
		{name: "unknown action", args: []string{"whatsapp", "-action", "lol"}, wantErrStr: `"lol": no such action`},
		{name: "status while disconnected", args: []string{"whatsapp"}, wantOut: "instance disconnected"},
		{name: "connect", args: []string{"whatsapp", "-action", "connect"}, wantOut: "scan the QR code"},
		{name: "status after scan", args: []string{"whatsapp"}, wantOut: "instance connected"},
		{name: "disconnect", args: []string{"whatsapp", "-action", "disconnect"}, wantOut: "instance disconnected"},
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(append([]string{"eleve"}, tt.args...))
			if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}
