package syslogprotocol

import (
	"strconv"
	"strings"
)

// Code is a facility or severity as written by operators: either a symbolic name ("local0", "LOG_ERR") or a
// numeric code ("16", "3")
//
// Codes are resolved to canonical Facility or Severity values once, at configuration time
type Code struct {
	Name    string // symbolic name, lower-cased; empty if numeric
	Number  int    // numeric code; only meaningful if Numeric is true
	Numeric bool
}

// ParseCode splits the input into a numeric or symbolic Code
func ParseCode(s string) Code {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Code{Number: n, Numeric: true}
	}
	return Code{Name: strings.ToLower(s)}
}

// Facility resolves the code as a syslog facility
func (c Code) Facility() (Facility, error) {
	if c.Numeric {
		f := Facility(c.Number)
		if !f.IsValid() {
			return 0, &InvalidCodeError{Kind: KindFacility, Code: c.Number}
		}
		return f, nil
	}
	if f, ok := facilityAliases[c.Name]; ok {
		return f, nil
	}
	bare := trimLogPrefix(c.Name)
	for i, name := range FacilityNames {
		if name == bare {
			return Facility(i), nil
		}
	}
	return 0, &UnknownNameError{Kind: KindFacility, Name: c.Name}
}

// Severity resolves the code as a syslog severity
func (c Code) Severity() (Severity, error) {
	if c.Numeric {
		s := Severity(c.Number)
		if !s.IsValid() {
			return 0, &InvalidCodeError{Kind: KindSeverity, Code: c.Number}
		}
		return s, nil
	}
	bare := trimLogPrefix(c.Name)
	for i, name := range SeverityNames {
		if name == bare {
			return Severity(i), nil
		}
	}
	if s, ok := severityAliases[bare]; ok {
		return s, nil
	}
	return 0, &UnknownNameError{Kind: KindSeverity, Name: c.Name}
}

func (c Code) String() string {
	if c.Numeric {
		return strconv.Itoa(c.Number)
	}
	return c.Name
}

// ParseFacility parses a facility name (case-insensitive, optional "LOG_" prefix) or numeric code
func ParseFacility(s string) (Facility, error) {
	return ParseCode(s).Facility()
}

// ParseSeverity parses a severity name (case-insensitive, optional "LOG_" prefix) or numeric code
func ParseSeverity(s string) (Severity, error) {
	return ParseCode(s).Severity()
}

func trimLogPrefix(name string) string {
	return strings.TrimPrefix(name, "log_")
}
