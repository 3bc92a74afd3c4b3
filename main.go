package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/cmd"
)

var version string

func main() {
	logger.Debugf("version: %s", version)

	registerInfoMetric()

	cmd.Execute()
}

func registerInfoMetric() {
	opts := prometheus.GaugeOpts{}
	opts.Name = "slog_relay_info"
	opts.Help = "slog-relay application information"
	gauge := prometheus.NewGaugeVec(opts, []string{"version"})
	gauge.WithLabelValues(version).Set(1)
	prometheus.MustRegister(gauge)
}
