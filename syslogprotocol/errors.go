package syslogprotocol

import (
	"fmt"
)

// CodeKind tells which part of priority a code belongs to
type CodeKind string

// Code kinds
const (
	KindFacility CodeKind = "facility"
	KindSeverity CodeKind = "severity"
)

// InvalidCodeError is returned for numeric facility or severity values out of range
type InvalidCodeError struct {
	Kind CodeKind
	Code int
}

func (err *InvalidCodeError) Error() string {
	switch err.Kind {
	case KindFacility:
		return fmt.Sprintf("invalid syslog facility %d: must be within 0-%d", err.Code, MaxFacility)
	default:
		return fmt.Sprintf("invalid syslog severity %d: must be within 0-%d", err.Code, MaxSeverity)
	}
}

// UnknownNameError is returned for symbolic facility or severity names not recognized
type UnknownNameError struct {
	Kind CodeKind
	Name string
}

func (err *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown syslog %s '%s'", err.Kind, err.Name)
}
