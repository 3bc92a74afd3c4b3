package cmd

import (
	"os"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/run"
)

type listenCommandState struct {
	Address   string `help:"The address to listen on"`
	Transport string `help:"udp or tcp; TCP accepts both octet-counted and newline-delimited frames"`
	Raw       bool   `help:"Print payloads as they are received"`
}

var listenCmd listenCommandState = listenCommandState{
	Address:   "127.0.0.1:5514",
	Transport: string(relayconfig.TransportUDP),
	Raw:       false,
}

func (cmd *listenCommandState) run(args []string) {
	transport := relayconfig.Transport(cmd.Transport)
	if transport != relayconfig.TransportUDP && transport != relayconfig.TransportTCP {
		logger.Fatalf("unsupported transport '%s'", cmd.Transport)
	}
	if err := run.Listen(transport, cmd.Address, cmd.Raw, os.Stdout, nil); err != nil {
		logger.Fatal(err)
	}
}
