package syslogprotocol

// Encode computes the PRI value of a facility and a severity
//
// Returns InvalidCodeError if either value is out of range
func Encode(facility Facility, severity Severity) (Priority, error) {
	if !facility.IsValid() {
		return 0, &InvalidCodeError{Kind: KindFacility, Code: int(facility)}
	}
	if !severity.IsValid() {
		return 0, &InvalidCodeError{Kind: KindSeverity, Code: int(severity)}
	}
	return Priority(int(facility)<<3 | int(severity)), nil
}

// EncodeCodes computes the PRI value of raw numeric codes, e.g. from operator overrides
func EncodeCodes(facility int, severity int) (Priority, error) {
	return Encode(Facility(facility), Severity(severity))
}

// MustEncode computes the PRI value or panics if either value is out of range
func MustEncode(facility Facility, severity Severity) Priority {
	pri, err := Encode(facility, severity)
	if err != nil {
		panic(err)
	}
	return pri
}

// IsValid checks whether the priority is within 0-191
func (pri Priority) IsValid() bool {
	return pri >= 0 && pri <= MaxPriority
}

// Decode splits priority into facility and severity
func (pri Priority) Decode() (Facility, Severity) {
	return Facility(int(pri) >> 3), Severity(int(pri) & 0b111)
}
