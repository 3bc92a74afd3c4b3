package util

import (
	"unicode/utf8"
)

// TruncateUTF8 cuts the string to at most maxBytes without splitting a multi-byte character
func TruncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	end := maxBytes
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
