package run

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/slog-relay/defs"
)

var (
	streamSuccessCounter prometheus.Counter
	streamFailureCounter prometheus.Counter

	receivedVec               *prometheus.CounterVec
	receivedParsedCounter     prometheus.Counter
	receivedUnparsableCounter prometheus.Counter
)

func init() {
	opts := prometheus.CounterOpts{}
	opts.Name = defs.MetricPrefix + "streams_total"
	opts.Help = "Numbers of event streams read to the end or failed"
	vec := prometheus.NewCounterVec(opts, []string{"status"})
	prometheus.MustRegister(vec)

	streamSuccessCounter = vec.WithLabelValues("success")
	streamFailureCounter = vec.WithLabelValues("failure")

	ropts := prometheus.CounterOpts{}
	ropts.Name = defs.MetricPrefix + "listener_received_total"
	ropts.Help = "Numbers of syslog payloads received by the diagnostic listener"
	receivedVec = prometheus.NewCounterVec(ropts, []string{"status"})
	prometheus.MustRegister(receivedVec)

	receivedParsedCounter = receivedVec.WithLabelValues("parsed")
	receivedUnparsableCounter = receivedVec.WithLabelValues("unparsable")
}
