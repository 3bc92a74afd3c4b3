package cmd

import (
	"fmt"
	"os"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/run"
	"golang.org/x/exp/slices"
)

type configCommandState struct{}

var configCmd configCommandState

func (cmd *configCommandState) run(args []string) {
	cfg, cerr := run.LoadConfig(relayconfig.OSEnvironment())

	variables := relayconfig.ListRelayVariables()
	slices.Sort(variables)

	doc, err := run.DumpConfig(cfg, variables)
	if err != nil {
		logger.Fatal("failed to dump config: ", err)
	}
	fmt.Print(doc)

	if cerr != nil {
		os.Exit(1)
	}
}
