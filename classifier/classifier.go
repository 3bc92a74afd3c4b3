// Package classifier maps automation lifecycle events to syslog severities
package classifier

import (
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/syslogprotocol"
	"golang.org/x/exp/maps"
)

// DefaultLevels is the built-in severity of each known event kind
var DefaultLevels = map[base.EventKind]syslogprotocol.Severity{
	base.KindPlaybookStart:   syslogprotocol.SeverityInfo,
	base.KindPlayStart:       syslogprotocol.SeverityInfo,
	base.KindTaskStart:       syslogprotocol.SeverityDebug,
	base.KindOk:              syslogprotocol.SeverityInfo,
	base.KindChanged:         syslogprotocol.SeverityInfo,
	base.KindFailed:          syslogprotocol.SeverityErr,
	base.KindUnreachable:     syslogprotocol.SeverityEmerg,
	base.KindSkipped:         syslogprotocol.SeverityNotice,
	base.KindRetry:           syslogprotocol.SeverityWarning,
	base.KindItemOk:          syslogprotocol.SeverityInfo,
	base.KindItemFailed:      syslogprotocol.SeverityErr,
	base.KindItemSkipped:     syslogprotocol.SeverityNotice,
	base.KindSummaryStart:    syslogprotocol.SeverityInfo,
	base.KindSummaryHost:     syslogprotocol.SeverityInfo,
	base.KindSummaryComplete: syslogprotocol.SeverityInfo,
}

// DefaultStatLevels is the built-in severity of per-host summary lines by stat name
var DefaultStatLevels = map[string]syslogprotocol.Severity{
	"ok":          syslogprotocol.SeverityInfo,
	"changed":     syslogprotocol.SeverityInfo,
	"failures":    syslogprotocol.SeverityErr,
	"unreachable": syslogprotocol.SeverityEmerg,
	"skipped":     syslogprotocol.SeverityNotice,
	"rescued":     syslogprotocol.SeverityNotice,
	"ignored":     syslogprotocol.SeverityNotice,
}

// Classifier resolves severities from configured overrides and built-in defaults
//
// Classifier is immutable and safe for concurrent use
type Classifier struct {
	logger       logger.Logger
	config       *relayconfig.RelayConfig
	levels       map[base.EventKind]syslogprotocol.Severity
	statLevels   map[string]syslogprotocol.Severity
	unknownLevel syslogprotocol.Severity
}

// New creates a Classifier for the given config
func New(parentLogger logger.Logger, config *relayconfig.RelayConfig) *Classifier {
	levels := maps.Clone(DefaultLevels)
	maps.Copy(levels, config.LevelOverrides)

	// explicit stat level > explicit summary_host level > default stat level
	statLevels := maps.Clone(DefaultStatLevels)
	if hostLevel, ok := config.LevelOverrides[base.KindSummaryHost]; ok {
		for stat := range statLevels {
			statLevels[stat] = hostLevel
		}
	}
	maps.Copy(statLevels, config.StatLevelOverrides)

	return &Classifier{
		logger:       parentLogger.WithField(defs.LabelComponent, "Classifier"),
		config:       config,
		levels:       levels,
		statLevels:   statLevels,
		unknownLevel: config.UnknownLevel,
	}
}

// Classify returns the severity for events of the given kind
//
// Unknown kinds get the configured unknown level and are logged locally in debug mode
func (c *Classifier) Classify(kind base.EventKind) syslogprotocol.Severity {
	if s, ok := c.levels[kind]; ok {
		return s
	}
	if c.config.Debug {
		c.logger.Warnf("unknown event kind '%s', using %s", kind, c.unknownLevel.SymbolicName())
	}
	return c.unknownLevel
}

// ClassifyStat returns the severity of a per-host summary line for the given stat, e.g. "failures"
//
// An explicit summary_host level replaces the default of every stat, but not explicit stat levels.
// Unknown stats get the same severity as summary_host.
func (c *Classifier) ClassifyStat(stat string) syslogprotocol.Severity {
	if s, ok := c.statLevels[stat]; ok {
		return s
	}
	return c.Classify(base.KindSummaryHost)
}

// ClassifyEvent returns the severity of an event, using the stat severity for summary_host lines carrying a stat
func (c *Classifier) ClassifyEvent(event base.Event) syslogprotocol.Severity {
	if event.Kind == base.KindSummaryHost {
		if stat, ok := event.Metadata[base.MetaStat]; ok {
			return c.ClassifyStat(stat)
		}
	}
	return c.Classify(event.Kind)
}

// Levels returns the effective severity of each known event kind
func (c *Classifier) Levels() map[base.EventKind]syslogprotocol.Severity {
	return maps.Clone(c.levels)
}

// StatLevels returns the effective severity of each known summary stat
func (c *Classifier) StatLevels() map[string]syslogprotocol.Severity {
	return maps.Clone(c.statLevels)
}

// Accept checks whether events of the given kind should be relayed
func (c *Classifier) Accept(kind base.EventKind) bool {
	return c.config.AcceptsKind(kind)
}
