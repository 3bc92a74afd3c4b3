package relay

import (
	"github.com/relex/gotils/promexporter/promext"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/syslogprotocol"
)

// kindLabelUnknown replaces unrecognized kinds in metric labels to keep the numbers of series bounded
const kindLabelUnknown = "unknown"

type relayMetrics struct {
	relayedEventsTotal      func(kind string, severity string) promext.RWCounter
	filteredEventsTotal     func(kind string) promext.RWCounter
	fallbackPrioritiesTotal promext.RWCounter
}

func newRelayMetrics(metricCreator promreg.MetricCreator) relayMetrics {
	relayedVec := metricCreator.AddOrGetCounterVec("relayed_events_total", "Numbers of events sent to syslog server", []string{"kind", "severity"}, nil)
	filteredVec := metricCreator.AddOrGetCounterVec("filtered_events_total", "Numbers of events excluded by the EVENTS filter", []string{"kind"}, nil)
	return relayMetrics{
		relayedEventsTotal: func(kind string, severity string) promext.RWCounter {
			return relayedVec.WithLabelValues(kind, severity)
		},
		filteredEventsTotal: func(kind string) promext.RWCounter {
			return filteredVec.WithLabelValues(kind)
		},
		fallbackPrioritiesTotal: metricCreator.AddOrGetCounter("fallback_priorities_total", "Numbers of events sent with the fallback priority user.info", nil, nil),
	}
}

func (metrics *relayMetrics) OnRelayed(kind base.EventKind, severity syslogprotocol.Severity) {
	metrics.relayedEventsTotal(kindLabel(kind), severity.String()).Inc()
}

func (metrics *relayMetrics) OnFiltered(kind base.EventKind) {
	metrics.filteredEventsTotal(kindLabel(kind)).Inc()
}

func (metrics *relayMetrics) OnFallback() {
	metrics.fallbackPrioritiesTotal.Inc()
}

func kindLabel(kind base.EventKind) string {
	if kind.IsKnown() {
		return string(kind)
	}
	return kindLabelUnknown
}
