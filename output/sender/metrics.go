package sender

import (
	"github.com/relex/gotils/promexporter/promext"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/util"
)

// failureReasons lists all values of util.DescribeNetworkError plus the reason for a closed sender
var failureReasons = []string{"resolve", "timeout", "refused", "closed", "network", "other", reasonClosedSender}

const reasonClosedSender = "closed_sender"

type senderMetrics struct {
	sentPayloadsTotal      promext.RWCounter
	sentBytesTotal         promext.RWCounter
	openedConnectionsTotal promext.RWCounter
	failedPayloadsTotal    map[string]promext.RWCounter // by reason
}

func newSenderMetrics(metricCreator promreg.MetricCreator, transport string) senderMetrics {
	senderMetricCreator := metricCreator.AddOrGetPrefix("sender_", []string{"transport"}, []string{transport})
	failedVec := senderMetricCreator.AddOrGetCounterVec("failed_payloads_total", "Numbers of payloads lost due to errors", []string{"reason"}, nil)
	metrics := senderMetrics{
		sentPayloadsTotal:      senderMetricCreator.AddOrGetCounter("sent_payloads_total", "Numbers of payloads written to syslog server", nil, nil),
		sentBytesTotal:         senderMetricCreator.AddOrGetCounter("sent_bytes_total", "Total length in bytes of written payloads including framing", nil, nil),
		openedConnectionsTotal: senderMetricCreator.AddOrGetCounter("opened_connections_total", "Numbers of opened connections", nil, nil),
		failedPayloadsTotal:    make(map[string]promext.RWCounter, len(failureReasons)),
	}
	for _, reason := range failureReasons {
		metrics.failedPayloadsTotal[reason] = failedVec.WithLabelValues(reason)
	}
	return metrics
}

func (metrics *senderMetrics) OnSent(length int) {
	metrics.sentPayloadsTotal.Inc()
	metrics.sentBytesTotal.Add(uint64(length))
}

func (metrics *senderMetrics) OnOpened() {
	metrics.openedConnectionsTotal.Inc()
}

// OnFailed counts a lost payload; nil error means the sender has been closed
func (metrics *senderMetrics) OnFailed(err error) {
	reason := reasonClosedSender
	if err != nil {
		reason = util.DescribeNetworkError(err)
	}
	metrics.failedPayloadsTotal[reason].Inc()
}
