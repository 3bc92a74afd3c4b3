// Package formatter renders relay events into RFC 3164 or RFC 5424 syslog payloads
package formatter

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/syslogprotocol"
	"github.com/relex/slog-relay/util"
)

// StructuredDataID is the SD-ID of the structured data element carrying event metadata in RFC 5424
const StructuredDataID = "ansible@0"

// Message contains all parts of a syslog message before rendering
//
// Message is built per event and discarded after sending
type Message struct {
	Priority  syslogprotocol.Priority
	Timestamp time.Time
	Hostname  string
	AppName   string // TAG in RFC 3164
	ProcID    string // may be empty
	MsgID     string // may be empty
	Kind      base.EventKind
	Metadata  base.Metadata
	Text      string
}

// Formatter renders messages in the configured format
//
// Formatter is immutable and safe for concurrent use
type Formatter struct {
	format    relayconfig.Format
	hostname  string
	shortHost string
	appName   string
	tag       string
	procID    string
	maxSize   int
}

// New creates a Formatter with the given identity of local machine and process
//
// pid is only used if enabled in config
func New(config *relayconfig.RelayConfig, hostname string, pid int) *Formatter {
	procID := ""
	if config.IncludePID {
		procID = strconv.Itoa(pid)
	}
	return &Formatter{
		format:    config.Format,
		hostname:  hostname,
		shortHost: shortHostname(hostname),
		appName:   config.AppName,
		tag:       config.Tag,
		procID:    procID,
		maxSize:   int(config.MaxSize.Bytes()),
	}
}

// NewForLocalProcess creates a Formatter using hostname and PID of the current process
func NewForLocalProcess(config *relayconfig.RelayConfig) *Formatter {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	return New(config, hostname, os.Getpid())
}

// Build creates the Message of an event
func (f *Formatter) Build(event base.Event, priority syslogprotocol.Priority, now time.Time) Message {
	msg := Message{
		Priority:  priority,
		Timestamp: now,
		Hostname:  f.hostname,
		ProcID:    f.procID,
		MsgID:     event.Metadata[base.MetaMsgID],
		Kind:      event.Kind,
		Metadata:  event.Metadata,
		Text:      event.Text,
	}
	if f.format == relayconfig.FormatRFC3164 {
		msg.Hostname = f.shortHost
		msg.AppName = f.tag
	} else {
		msg.AppName = f.appName
	}
	return msg
}

// Render renders the message into a wire-ready payload, truncated to the max size
func (f *Formatter) Render(msg Message) string {
	if f.format == relayconfig.FormatRFC5424 {
		return renderRFC5424(msg, f.maxSize)
	}
	payload := RenderRFC3164(msg)
	if f.maxSize > 0 {
		payload = util.TruncateUTF8(payload, f.maxSize)
	}
	return payload
}

// Format builds and renders an event into payload
func (f *Formatter) Format(event base.Event, priority syslogprotocol.Priority, now time.Time) string {
	return f.Render(f.Build(event, priority, now))
}

// shortHostname returns the hostname up to the first dot, unless it's an IP address
func shortHostname(hostname string) string {
	if isIPv4(hostname) {
		return hostname
	}
	if end := strings.IndexByte(hostname, '.'); end > 0 {
		return hostname[:end]
	}
	return hostname
}

func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 8); err != nil {
			return false
		}
	}
	return true
}
