// Package syslogprotocol provides shared types and constants of the syslog protocol (RFC 3164 and RFC 5424),
// including the priority codec: PRI = facility * 8 + severity
package syslogprotocol

// Facility is the syslog facility code, 0-23
type Facility int

// Severity is the syslog severity (log level) code, 0-7; lower is more severe
type Severity int

// Priority is the syslog PRI value, 0-191
type Priority int

// Facilities
const (
	FacilityKern Facility = iota
	FacilityUser
	FacilityMail
	FacilityDaemon
	FacilityAuth
	FacilitySyslog
	FacilityLpr
	FacilityNews
	FacilityUucp
	FacilityCron
	FacilityAuthpriv
	FacilityFtp
	FacilityNtp
	FacilityAudit
	FacilityAlert
	FacilityClock
	FacilityLocal0
	FacilityLocal1
	FacilityLocal2
	FacilityLocal3
	FacilityLocal4
	FacilityLocal5
	FacilityLocal6
	FacilityLocal7
)

// Severities
const (
	SeverityEmerg Severity = iota
	SeverityAlert
	SeverityCrit
	SeverityErr
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Ranges of valid codes
const (
	MaxFacility = FacilityLocal7
	MaxSeverity = SeverityDebug
	MaxPriority = Priority(int(MaxFacility)<<3 | int(MaxSeverity))
)

// FacilityNames contains the mapping of facility numbers to readable names
var FacilityNames = []string{
	"kern",     // 0
	"user",     // 1
	"mail",     // 2
	"daemon",   // 3
	"auth",     // 4
	"syslog",   // 5
	"lpr",      // 6
	"news",     // 7
	"uucp",     // 8
	"cron",     // 9
	"authpriv", // 10
	"ftp",      // 11
	"ntp",      // 12
	"audit",    // 13
	"alert",    // 14
	"clock",    // 15
	"local0",   // 16
	"local1",   // 17
	"local2",   // 18
	"local3",   // 19
	"local4",   // 20
	"local5",   // 21
	"local6",   // 22
	"local7",   // 23
}

// SeverityNames contains the mapping of severity (level) numbers to readable names
var SeverityNames = []string{
	"emerg",   // 0
	"alert",   // 1
	"crit",    // 2
	"err",     // 3
	"warning", // 4
	"notice",  // 5
	"info",    // 6
	"debug",   // 7
}

// facilityAliases are alternative names found in syslog.h, rsyslog and the Python syslog module
var facilityAliases = map[string]Facility{
	"security":  FacilityAuth,
	"log_audit": FacilityAudit,
	"log_alert": FacilityAlert,
	"logaudit":  FacilityAudit,
	"logalert":  FacilityAlert,
}

// severityAliases are alternative names found in syslog.h, rsyslog and RFC 5424
var severityAliases = map[string]Severity{
	"panic":         SeverityEmerg,
	"emergency":     SeverityEmerg,
	"critical":      SeverityCrit,
	"error":         SeverityErr,
	"warn":          SeverityWarning,
	"informational": SeverityInfo,
}

// IsValid checks whether the facility is within 0-23
func (f Facility) IsValid() bool {
	return f >= 0 && f <= MaxFacility
}

func (f Facility) String() string {
	if !f.IsValid() {
		return "invalid"
	}
	return FacilityNames[f]
}

// IsValid checks whether the severity is within 0-7
func (s Severity) IsValid() bool {
	return s >= 0 && s <= MaxSeverity
}

func (s Severity) String() string {
	if !s.IsValid() {
		return "invalid"
	}
	return SeverityNames[s]
}

// SymbolicName returns the C constant name of severity, e.g. "LOG_ERR"
func (s Severity) SymbolicName() string {
	if !s.IsValid() {
		return "invalid"
	}
	return "LOG_" + upperASCII(SeverityNames[s])
}

// MarshalYAML exports severity as its C constant name. The result is accepted by ParseSeverity.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.SymbolicName(), nil
}

// MarshalYAML exports facility as its readable name. The result is accepted by ParseFacility.
func (f Facility) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

func upperASCII(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if c >= 'a' && c <= 'z' {
			buf[i] = c - 'a' + 'A'
		}
	}
	return string(buf)
}
