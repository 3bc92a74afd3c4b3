package base

import (
	"github.com/relex/slog-relay/syslogprotocol"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Well-known metadata keys of events
const (
	MetaHost       = "host"
	MetaTask       = "task"
	MetaPlay       = "play"
	MetaPlaybook   = "playbook"
	MetaItem       = "item"
	MetaMsg        = "msg"
	MetaRetries    = "retries"
	MetaSkipReason = "skip_reason"
	MetaStat       = "stat"
	MetaCount      = "count"
	MetaMsgID      = "msgid" // rendered as the MSGID header field in RFC 5424 instead of structured data
)

// Metadata contains optional key/value pairs of an event, rendered as structured data in RFC 5424
type Metadata map[string]string

// SortedKeys returns the keys in alphabetical order
func (meta Metadata) SortedKeys() []string {
	keys := maps.Keys(meta)
	slices.Sort(keys)
	return keys
}

// Event is one normalized notification from the host runner
//
// Events are created per callback, relayed once and then discarded
type Event struct {
	Kind     EventKind
	Text     string
	Metadata Metadata // may be nil
}

// NewEvent creates an Event with optional metadata pairs; empty values are omitted
func NewEvent(kind EventKind, text string, keyValues ...string) Event {
	var meta Metadata
	for i := 0; i+1 < len(keyValues); i += 2 {
		if keyValues[i+1] == "" {
			continue
		}
		if meta == nil {
			meta = make(Metadata, len(keyValues)/2)
		}
		meta[keyValues[i]] = keyValues[i+1]
	}
	return Event{Kind: kind, Text: text, Metadata: meta}
}

// EventEmitter accepts events to relay
//
// Implementations must be safe for concurrent use and must never block for long or fail the caller
type EventEmitter interface {
	// Emit relays the event with the severity determined by its kind
	Emit(event Event)

	// EmitAt relays the event with an explicit severity, e.g. LOG_ALERT for internal errors
	EmitAt(event Event, severity syslogprotocol.Severity)
}

// PayloadSender delivers formatted syslog payloads on best-effort basis
type PayloadSender interface {
	// Send delivers one payload. Failures are handled inside and never returned.
	Send(payload string)

	// Close releases network resources
	Close()
}
