package main

import (
	"context"
	"fmt"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/gateway"
)

func (cli *commandLine) whatsapp(action string) error {
	ctx := context.Background()
	switch action {
	case "status":
		status, err := cli.gateway.Status(ctx)
		if err != nil {
			return err
		}
		cli.printGatewayStatus(status)
	case "connect":
		status, err := cli.gateway.Connect(ctx)
		if err != nil {
			return err
		}
		cli.printGatewayStatus(status)
	case "disconnect":
		if err := cli.gateway.Disconnect(ctx); err != nil {
			return err
		}
		cli.flashes.Push(core.FlashSuccess, "instance disconnected")
	default:
		return fmt.Errorf("%q: no such action", action)
	}
	return nil
}

func (cli *commandLine) printGatewayStatus(status gateway.Status) {
	switch {
	case status.Connected:
		fmt.Fprintln(cli.out, "instance connected")
	case status.Connecting && status.QRCode != "":
		fmt.Fprintln(cli.out, "scan the QR code to finish connecting:")
		fmt.Fprintln(cli.out, status.QRCode)
	case status.Connecting:
		fmt.Fprintln(cli.out, "instance connecting")
	default:
		fmt.Fprintln(cli.out, "instance disconnected")
	}
}
