// Package relay ties classification, priority encoding, formatting and sending of events together
package relay

import (
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/classifier"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/output/formatter"
	"github.com/relex/slog-relay/output/sender"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/syslogprotocol"
)

// fallbackPriority is used when the configured facility cannot be encoded
var fallbackPriority = syslogprotocol.MustEncode(syslogprotocol.FacilityUser, syslogprotocol.SeverityInfo)

// Relay turns events into syslog payloads and sends them
//
// Relay keeps no state besides the config and is safe for concurrent use
type Relay struct {
	logger     logger.Logger
	config     *relayconfig.RelayConfig
	classifier *classifier.Classifier
	formatter  *formatter.Formatter
	sender     base.PayloadSender
	metrics    relayMetrics
	now        func() time.Time
}

// New creates a Relay with the given formatter and sender
func New(parentLogger logger.Logger, config *relayconfig.RelayConfig, fmtr *formatter.Formatter, payloadSender base.PayloadSender,
	metricCreator promreg.MetricCreator) *Relay {

	rlogger := parentLogger.WithField(defs.LabelComponent, "Relay")
	return &Relay{
		logger:     rlogger,
		config:     config,
		classifier: classifier.New(rlogger, config),
		formatter:  fmtr,
		sender:     payloadSender,
		metrics:    newRelayMetrics(metricCreator),
		now:        time.Now,
	}
}

// Start creates a Relay sending to the server in config, identified by hostname and PID of the current process
func Start(parentLogger logger.Logger, config *relayconfig.RelayConfig, metricCreator promreg.MetricCreator) *Relay {
	return New(parentLogger, config, formatter.NewForLocalProcess(config), sender.NewSender(parentLogger, config, metricCreator), metricCreator)
}

// WithClock replaces the source of message timestamps, for reproducible output
func (r *Relay) WithClock(now func() time.Time) *Relay {
	r.now = now
	return r
}

// Classifier returns the classifier used to determine severities
func (r *Relay) Classifier() *classifier.Classifier {
	return r.classifier
}

// Emit relays the event at the severity of its kind, if the kind is accepted by the EVENTS filter
func (r *Relay) Emit(event base.Event) {
	if !r.classifier.Accept(event.Kind) {
		r.metrics.OnFiltered(event.Kind)
		return
	}
	r.emit(event, r.classifier.ClassifyEvent(event))
}

// EmitAt relays the event at the given severity, bypassing the EVENTS filter
func (r *Relay) EmitAt(event base.Event, severity syslogprotocol.Severity) {
	r.emit(event, severity)
}

// Close closes the underlying sender
func (r *Relay) Close() {
	r.sender.Close()
}

func (r *Relay) emit(event base.Event, severity syslogprotocol.Severity) {
	priority, err := syslogprotocol.Encode(r.config.Facility, severity)
	if err != nil {
		if r.config.Debug {
			r.logger.Warnf("falling back to %d for kind '%s': %s", fallbackPriority, event.Kind, err.Error())
		}
		r.metrics.OnFallback()
		priority = fallbackPriority
		_, severity = priority.Decode()
	}
	payload := r.formatter.Format(event, priority, r.now())
	if r.config.Debug {
		r.logger.Debugf("relay %s: %s", event.Kind, payload)
	}
	r.sender.Send(payload)
	r.metrics.OnRelayed(event.Kind, severity)
}
