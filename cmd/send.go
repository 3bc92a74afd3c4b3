package cmd

import (
	"strings"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/run"
)

type sendCommandState struct {
	Host  string `help:"Target host in event metadata"`
	Task  string `help:"Task name in event metadata"`
	MsgID string `name:"msgid" help:"MSGID header of RFC 5424 messages"`
}

var sendCmd sendCommandState

func (cmd *sendCommandState) run(args []string) {
	if len(args) < 2 {
		logger.Fatal("usage: send <kind> <text...>")
	}
	kind := base.ParseEventKind(args[0])
	text := strings.Join(args[1:], " ")

	run.SendOne(kind, text, relayconfig.OSEnvironment(), promreg.NewMetricFactory(defs.MetricPrefix, nil, nil),
		base.MetaHost, cmd.Host,
		base.MetaTask, cmd.Task,
		base.MetaMsgID, cmd.MsgID,
	)
}
