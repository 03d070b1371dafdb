package common

import "unicode"

// WipeByteArray overwrites b with zeros so a password read from the
// terminal does not linger in memory. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Sentence upper-cases the first letter of msg. Errors are written in
// lower case by convention; the CLI shows them as sentences.
func Sentence(msg string) string {
	for i, r := range msg {
		return string(unicode.ToUpper(r)) + msg[i+len(string(r)):]
	}
	return msg
}
