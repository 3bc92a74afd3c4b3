package syslogprotocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeAllPairs(t *testing.T) {
	for f := FacilityKern; f <= MaxFacility; f++ {
		for s := SeverityEmerg; s <= MaxSeverity; s++ {
			pri, err := Encode(f, s)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, Priority(int(f)*8+int(s)), pri)
			assert.True(t, pri.IsValid())
			df, ds := pri.Decode()
			assert.Equal(t, f, df)
			assert.Equal(t, s, ds)
		}
	}
	assert.Equal(t, Priority(191), MaxPriority)
}

func TestEncodeSamples(t *testing.T) {
	assert.Equal(t, Priority(11), MustEncode(FacilityUser, SeverityErr))
	assert.Equal(t, Priority(14), MustEncode(FacilityUser, SeverityInfo))
	assert.Equal(t, Priority(134), MustEncode(FacilityLocal0, SeverityInfo))
	assert.Equal(t, Priority(0), MustEncode(FacilityKern, SeverityEmerg))

	pri, err := EncodeCodes(1, 6)
	assert.NoError(t, err)
	assert.Equal(t, Priority(14), pri)
}

func TestEncodeInvalid(t *testing.T) {
	var codeErr *InvalidCodeError

	_, err := EncodeCodes(24, 0)
	if assert.True(t, errors.As(err, &codeErr)) {
		assert.Equal(t, KindFacility, codeErr.Kind)
		assert.Equal(t, 24, codeErr.Code)
	}

	_, err = EncodeCodes(1, 8)
	if assert.True(t, errors.As(err, &codeErr)) {
		assert.Equal(t, KindSeverity, codeErr.Kind)
	}

	_, err = EncodeCodes(-1, 3)
	assert.Error(t, err)
	_, err = EncodeCodes(3, -1)
	assert.Error(t, err)

	assert.Panics(t, func() { MustEncode(Facility(99), SeverityInfo) })
}

func TestNames(t *testing.T) {
	assert.Len(t, FacilityNames, int(MaxFacility)+1)
	assert.Len(t, SeverityNames, int(MaxSeverity)+1)
	assert.Equal(t, "local7", FacilityLocal7.String())
	assert.Equal(t, "invalid", Facility(24).String())
	assert.Equal(t, "err", SeverityErr.String())
	assert.Equal(t, "LOG_WARNING", SeverityWarning.SymbolicName())
	assert.Equal(t, "invalid", Severity(8).String())
}
