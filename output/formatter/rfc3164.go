package formatter

import (
	"strconv"
	"strings"
)

// RFC3164TimeLayout is the timestamp layout of RFC 3164, with day of month padded by space
const RFC3164TimeLayout = "Jan _2 15:04:05"

const maxTagLength = 32

// RenderRFC3164 renders message as "<PRI>Mmm dd hh:mm:ss HOSTNAME TAG[PID]: MSG"
//
// The timestamp is written in its own location; callers should pass local time
func RenderRFC3164(msg Message) string {
	var sb strings.Builder
	sb.Grow(64 + len(msg.Text))
	sb.WriteByte('<')
	sb.WriteString(strconv.Itoa(int(msg.Priority)))
	sb.WriteByte('>')
	sb.WriteString(msg.Timestamp.Format(RFC3164TimeLayout))
	sb.WriteByte(' ')
	sb.WriteString(headerField(msg.Hostname, maxHostnameLength, "localhost"))
	sb.WriteByte(' ')
	sb.WriteString(tagField(msg.AppName))
	if msg.ProcID != "" {
		sb.WriteByte('[')
		sb.WriteString(headerField(msg.ProcID, maxProcIDLength, ""))
		sb.WriteByte(']')
	}
	sb.WriteString(": ")
	sb.WriteString(singleLine(msg.Text))
	return sb.String()
}

// tagField sanitizes TAG, which ends at the first non-alphanumeric character by RFC 3164 but is commonly
// allowed to contain punctuation except for ':' and '['
func tagField(tag string) string {
	clean := strings.Map(func(r rune) rune {
		if r <= ' ' || r > '~' || r == ':' || r == '[' || r == ']' {
			return '_'
		}
		return r
	}, tag)
	if len(clean) > maxTagLength {
		clean = clean[:maxTagLength]
	}
	if clean == "" {
		return "-"
	}
	return clean
}
