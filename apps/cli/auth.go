package main

import (
	"context"
	"fmt"

	"github.com/eleveia/eleve-go/core/session"
)

func (cli *commandLine) login(username, password string) error {
	ctx := context.Background()
	creds := session.Credentials{Username: username, Password: password}
	if err := cli.session.Login(ctx, creds); err != nil {
		return err
	}
	usr := cli.session.User()
	fmt.Fprintf(cli.out, "signed in as %s\n", usr.Username)
	return nil
}

func (cli *commandLine) logout() error {
	cli.session.Logout(context.Background())
	fmt.Fprintln(cli.out, "signed out")
	return nil
}

func (cli *commandLine) perfil() error {
	if err := cli.session.RefreshProfile(context.Background()); err != nil {
		return err
	}
	usr := cli.session.User()
	fmt.Fprintf(cli.out, "username: %s\n", usr.Username)
	fmt.Fprintf(cli.out, "email:    %s\n", usr.Email)
	if usr.FirstName != "" || usr.LastName != "" {
		fmt.Fprintf(cli.out, "name:     %s %s\n", usr.FirstName, usr.LastName)
	}
	if usr.Perfil != nil {
		fmt.Fprintf(cli.out, "perfil:   %s @ %s\n", usr.Perfil.TipoDisplay, usr.Perfil.EscolaNome)
	}
	return nil
}
