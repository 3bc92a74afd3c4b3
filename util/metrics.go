package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
)

// metricsEndpoints lists the paths served by the metrics listener, as shown on its index page
var metricsEndpoints = []string{"/metrics", "/debug/pprof/"}

func init() {
	_ = pprof.Handler // to trigger registrations under "/debug/pprof/"
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/", serveMetricsIndex)
}

func serveMetricsIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "slog-relay metrics listener")
	for _, path := range metricsEndpoints {
		fmt.Fprintln(w, path)
	}
}

// LaunchMetricsListener starts a HTTP server for Prometheus metrics and profiling of the running command
func LaunchMetricsListener(address string) *http.Server {
	mlogger := logger.WithFields(logger.Fields{defs.LabelComponent: "MetricsListener", defs.LabelAddress: address})
	server := &http.Server{}
	server.Addr = address
	go func() {
		mlogger.Info("listening for metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mlogger.Error("metrics listener error: ", err)
		}
	}()
	return server
}

// SumMetricValues sums the values of all counters and gauges in a Prometheus Collector, e.g. a CounterVec over
// all label values
func SumMetricValues(c prometheus.Collector) float64 {
	metricChan := make(chan prometheus.Metric)
	go func() {
		c.Collect(metricChan)
		close(metricChan)
	}()

	sum := 0.0
	for m := range metricChan {
		pb := &dto.Metric{}
		if err := m.Write(pb); err != nil {
			logger.Errorf("failed to read metric '%s': %s", m.Desc(), err.Error())
			continue
		}
		switch {
		case pb.Counter != nil:
			sum += pb.Counter.GetValue()
		case pb.Gauge != nil:
			sum += pb.Gauge.GetValue()
		case pb.Untyped != nil:
			sum += pb.Untyped.GetValue()
		}
	}
	return sum
}
