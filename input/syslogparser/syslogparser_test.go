package syslogparser

import (
	"testing"

	"github.com/relex/slog-relay/syslogprotocol"
	"github.com/stretchr/testify/assert"
)

func TestParseRFC3164(t *testing.T) {
	msg, err := Parse("<14>Oct  4 09:05:07 web01 ansible: task ok")
	if assert.NoError(t, err) {
		assert.Equal(t, syslogprotocol.Priority(14), msg.Priority)
		assert.Equal(t, syslogprotocol.FacilityUser, msg.Facility)
		assert.Equal(t, syslogprotocol.SeverityInfo, msg.Severity)
		assert.Equal(t, 0, msg.Version)
		assert.Equal(t, "Oct  4 09:05:07", msg.Timestamp)
		assert.Equal(t, "web01", msg.Hostname)
		assert.Equal(t, "ansible", msg.AppName)
		assert.Equal(t, "", msg.ProcID)
		assert.Equal(t, "task ok", msg.Text)
	}

	msg, err = Parse("<11>Dec 31 23:59:59 ctl deploy[4211]: web01 | install | failed: no space")
	if assert.NoError(t, err) {
		assert.Equal(t, syslogprotocol.SeverityErr, msg.Severity)
		assert.Equal(t, "deploy", msg.AppName)
		assert.Equal(t, "4211", msg.ProcID)
		assert.Equal(t, "web01 | install | failed: no space", msg.Text)
	}

	msg, err = Parse("<14>Oct  4 09:05:07 web01 ansible:")
	if assert.NoError(t, err) {
		assert.Equal(t, "ansible", msg.AppName)
		assert.Equal(t, "", msg.Text)
	}
}

func TestParseRFC5424(t *testing.T) {
	const line = `<163>1 2019-08-15T15:50:46.866915+03:00 local1 my-app1 123 fn1 [ansible@0 host="web01" task="install \"pkg\" \] \\"] Something`
	msg, err := Parse(line)
	if assert.NoError(t, err) {
		assert.Equal(t, 1, msg.Version)
		assert.Equal(t, syslogprotocol.FacilityLocal4, msg.Facility)
		assert.Equal(t, syslogprotocol.SeverityErr, msg.Severity)
		assert.Equal(t, "2019-08-15T15:50:46.866915+03:00", msg.Timestamp)
		assert.Equal(t, "local1", msg.Hostname)
		assert.Equal(t, "my-app1", msg.AppName)
		assert.Equal(t, "123", msg.ProcID)
		assert.Equal(t, "fn1", msg.MsgID)
		assert.Equal(t, map[string]map[string]string{
			"ansible@0": {"host": "web01", "task": `install "pkg" ] \`},
		}, msg.StructuredData)
		assert.Equal(t, "Something", msg.Text)
	}

	msg, err = Parse("<14>1 2020-09-17T16:51:47.867Z host app - - -")
	if assert.NoError(t, err) {
		assert.Equal(t, "", msg.ProcID)
		assert.Equal(t, "", msg.MsgID)
		assert.Nil(t, msg.StructuredData)
		assert.Equal(t, "", msg.Text)
	}

	msg, err = Parse(`<14>1 2020-09-17T16:51:47.867Z host app - - [a@0 x="1"][b@0] two elements`)
	if assert.NoError(t, err) {
		assert.Len(t, msg.StructuredData, 2)
		assert.Equal(t, "1", msg.StructuredData["a@0"]["x"])
		assert.Empty(t, msg.StructuredData["b@0"])
		assert.Equal(t, "two elements", msg.Text)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"something",
		"<>1 x",
		"<abc>1 x",
		"<192>Oct  4 09:05:07 web01 ansible: x",
		"<14>Octob",
		"<14>Oct  4 09:05:07",
		"<14>1 2020-09-17T16:51:47.867Z host app",
		`<14>1 2020-09-17T16:51:47.867Z host app - - [a@0 x="1] text`,
		`<14>1 2020-09-17T16:51:47.867Z host app - - [a@0 x="1"`,
		`<14>1 2020-09-17T16:51:47.867Z host app - - nosd`,
		`<14>1 2020-09-17T16:51:47.867Z host app - - -text`,
	} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}
