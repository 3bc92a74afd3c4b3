package base

import (
	"strings"
)

// EventKind identifies the moment in the automation lifecycle an event comes from
//
// The set is closed, but unknown kinds from newer host runners are still passed through and classified with the
// default severity for unknown kinds
type EventKind string

// Known event kinds
const (
	KindPlaybookStart   EventKind = "playbook_start"
	KindPlayStart       EventKind = "play_start"
	KindTaskStart       EventKind = "task_start"
	KindOk              EventKind = "ok"
	KindChanged         EventKind = "changed"
	KindFailed          EventKind = "failed"
	KindUnreachable     EventKind = "unreachable"
	KindSkipped         EventKind = "skipped"
	KindRetry           EventKind = "retry"
	KindItemOk          EventKind = "item_ok"
	KindItemFailed      EventKind = "item_failed"
	KindItemSkipped     EventKind = "item_skipped"
	KindSummaryStart    EventKind = "summary_start"
	KindSummaryHost     EventKind = "summary_host"
	KindSummaryComplete EventKind = "summary_complete"
)

// AllEventKinds lists all known event kinds in lifecycle order
var AllEventKinds = []EventKind{
	KindPlaybookStart,
	KindPlayStart,
	KindTaskStart,
	KindOk,
	KindChanged,
	KindFailed,
	KindUnreachable,
	KindSkipped,
	KindRetry,
	KindItemOk,
	KindItemFailed,
	KindItemSkipped,
	KindSummaryStart,
	KindSummaryHost,
	KindSummaryComplete,
}

// IsKnown checks whether the kind is one of AllEventKinds
func (kind EventKind) IsKnown() bool {
	for _, k := range AllEventKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// EnvSuffix returns the upper-case form used in environment variable names, e.g. "ITEM_OK"
func (kind EventKind) EnvSuffix() string {
	return strings.ToUpper(string(kind))
}

// ParseEventKind normalizes the given name to an EventKind, e.g. "Item-OK" to "item_ok"
//
// Unknown names are kept as they are after normalization
func ParseEventKind(name string) EventKind {
	name = strings.ToLower(strings.TrimSpace(name))
	return EventKind(strings.ReplaceAll(name, "-", "_"))
}

// SummaryStats lists the per-host counters reported by the host runner at the end of a playbook, in reporting order
var SummaryStats = []string{"ok", "failures", "unreachable", "changed", "skipped", "rescued", "ignored"}
