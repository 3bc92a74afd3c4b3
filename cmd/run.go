package cmd

import (
	"context"
	"net/http"
	"os"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/input/adapter"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/run"
	"github.com/relex/slog-relay/util"
)

type runCommandState struct {
	Format      string `help:"Format of host events on stdin: json (one record per line) or msgpack"`
	MetricsAddr string `help:"The listener address to expose Prometheus metrics and debug information, empty to disable"`
}

var runCmd runCommandState = runCommandState{
	Format:      string(adapter.StreamJSON),
	MetricsAddr: "",
}

func (cmd *runCommandState) run(args []string) {
	format, err := adapter.ParseStreamFormat(cmd.Format)
	if err != nil {
		logger.Fatal(err)
	}

	var msrv *http.Server
	if cmd.MetricsAddr != "" {
		msrv = util.LaunchMetricsListener(cmd.MetricsAddr)
	}

	if err := run.RunStream(os.Stdin, format, relayconfig.OSEnvironment(), promreg.NewMetricFactory(defs.MetricPrefix, nil, nil)); err != nil {
		// the host runner shouldn't be affected by the relay
		logger.Warn("stopped relaying: ", err)
	}

	if msrv != nil {
		if err := msrv.Shutdown(context.Background()); err != nil {
			logger.Errorf("error shutting down metrics listener: %v", err)
		}
	}
}
