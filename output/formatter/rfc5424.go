package formatter

import (
	"strconv"
	"strings"

	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/util"
	"golang.org/x/exp/slices"
)

// RFC5424TimeLayout is the timestamp layout of RFC 5424 (RFC 3339 with microseconds)
const RFC5424TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// NilValue is the placeholder of empty header fields or structured data in RFC 5424
const NilValue = "-"

// Max lengths of header fields and SD names from RFC 5424
const (
	maxHostnameLength = 255
	maxAppNameLength  = 48
	maxProcIDLength   = 128
	maxMsgIDLength    = 32
	maxSDNameLength   = 32
)

// RenderRFC5424 renders message as "<PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID STRUCTURED-DATA MSG"
//
// Structured data contains the event kind followed by all metadata in alphabetical order of keys, except for msgid
func RenderRFC5424(msg Message) string {
	return renderRFC5424(msg, 0)
}

// renderRFC5424 renders message within maxSize bytes if positive
//
// Oversized messages keep the header intact. Structured data is given at least half of the remaining space, with
// param values cut or dropped so that the element stays closed, and the text takes what is left.
func renderRFC5424(msg Message, maxSize int) string {
	header := rfc5424Header(msg)
	text := singleLine(msg.Text)
	sd := structuredData(msg, 0)
	if maxSize <= 0 || len(header)+len(sd)+len(" ")+len(text) <= maxSize {
		return joinRFC5424(header, sd, text)
	}

	budget := maxSize - len(header)
	if budget < len(NilValue) {
		return util.TruncateUTF8(joinRFC5424(header, sd, text), maxSize)
	}
	textReserve := 0
	if text != "" {
		textReserve = len(" ") + len(text)
		if textReserve > budget/2 {
			textReserve = budget / 2
		}
	}
	sd = structuredData(msg, budget-textReserve)
	if room := budget - len(sd) - len(" "); room > 0 {
		text = util.TruncateUTF8(text, room)
	} else {
		text = ""
	}
	return joinRFC5424(header, sd, text)
}

func rfc5424Header(msg Message) string {
	var sb strings.Builder
	sb.Grow(128)
	sb.WriteByte('<')
	sb.WriteString(strconv.Itoa(int(msg.Priority)))
	sb.WriteString(">1 ")
	if msg.Timestamp.IsZero() {
		sb.WriteString(NilValue)
	} else {
		sb.WriteString(msg.Timestamp.Format(RFC5424TimeLayout))
	}
	sb.WriteByte(' ')
	sb.WriteString(headerField(msg.Hostname, maxHostnameLength, NilValue))
	sb.WriteByte(' ')
	sb.WriteString(headerField(msg.AppName, maxAppNameLength, NilValue))
	sb.WriteByte(' ')
	sb.WriteString(headerField(msg.ProcID, maxProcIDLength, NilValue))
	sb.WriteByte(' ')
	sb.WriteString(headerField(msg.MsgID, maxMsgIDLength, NilValue))
	sb.WriteByte(' ')
	return sb.String()
}

func joinRFC5424(header string, sd string, text string) string {
	if text == "" {
		return header + sd
	}
	return header + sd + " " + text
}

type sdParam struct {
	name  string
	value string // escaped
}

// structuredData renders the SD-ELEMENT of event kind and metadata within limit bytes if positive
//
// When over the limit, the space left after names and quotes is shared by values: short values are kept whole and
// long ones are cut to equal shares. Trailing params are dropped if not even their names fit.
func structuredData(msg Message, limit int) string {
	if msg.Kind == "" && len(msg.Metadata) == 0 {
		return NilValue
	}
	params := make([]sdParam, 0, len(msg.Metadata)+1)
	if msg.Kind != "" {
		params = append(params, sdParam{"kind", escapeParamValue(string(msg.Kind))})
	}
	for _, key := range msg.Metadata.SortedKeys() {
		if key == base.MetaMsgID {
			continue
		}
		if name := sdName(key); name != "" {
			params = append(params, sdParam{name, escapeParamValue(msg.Metadata[key])})
		}
	}
	if limit > 0 {
		params = fitParams(params, limit-len("["+StructuredDataID+"]"))
		if params == nil {
			return NilValue
		}
	}

	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(StructuredDataID)
	for _, p := range params {
		sb.WriteByte(' ')
		sb.WriteString(p.name)
		sb.WriteString(`="`)
		sb.WriteString(p.value)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}

// fitParams cuts param values so that all params take at most room bytes, or returns nil if room is negative
func fitParams(params []sdParam, room int) []sdParam {
	if room < 0 {
		return nil
	}
	fixed := 0
	total := 0
	for i, p := range params {
		overhead := len(` =""`) + len(p.name)
		if fixed+overhead > room {
			params = params[:i]
			break
		}
		fixed += overhead
		total += len(p.value)
	}
	if fixed+total <= room {
		return params
	}

	order := make([]int, len(params))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) bool { return len(params[a].value) < len(params[b].value) })

	remaining := room - fixed
	for n, i := range order {
		share := remaining / (len(order) - n)
		if len(params[i].value) > share {
			params[i].value = truncateEscaped(params[i].value, share)
		}
		remaining -= len(params[i].value)
	}
	return params
}

// truncateEscaped cuts an escaped PARAM-VALUE without leaving a dangling backslash
func truncateEscaped(escaped string, maxBytes int) string {
	cut := util.TruncateUTF8(escaped, maxBytes)
	backslashes := 0
	for i := len(cut) - 1; i >= 0 && cut[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// sdName sanitizes PARAM-NAME: PRINTUSASCII except '=', SP, ']' and '"', at most 32 characters
func sdName(key string) string {
	clean := strings.Map(func(r rune) rune {
		if r <= ' ' || r > '~' || r == '=' || r == ']' || r == '"' {
			return -1
		}
		return r
	}, key)
	if len(clean) > maxSDNameLength {
		clean = clean[:maxSDNameLength]
	}
	return clean
}

var paramValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `]`, `\]`, "\r", " ", "\n", " ")

func escapeParamValue(value string) string {
	return paramValueEscaper.Replace(value)
}

// headerField sanitizes header field to PRINTUSASCII within the max length, or returns nilValue if empty
func headerField(value string, maxLength int, nilValue string) string {
	clean := strings.Map(func(r rune) rune {
		if r <= ' ' || r > '~' {
			return '_'
		}
		return r
	}, value)
	if len(clean) > maxLength {
		clean = clean[:maxLength]
	}
	if clean == "" {
		return nilValue
	}
	return clean
}

var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine keeps the message on one line for receivers splitting input by newlines
func singleLine(text string) string {
	return lineBreakReplacer.Replace(text)
}
