package logs

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// decodeLine converts raw bytes to text, replacing invalid UTF-8 sequences
// with U+FFFD and dropping a trailing carriage return.
func decodeLine(raw []byte) string {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// splitLines splits appended content on newlines and keeps non-blank lines in
// order. A trailing fragment without a newline is kept as its own line.
func splitLines(data []byte) []string {
	var lines []string
	for _, part := range bytes.Split(data, []byte{'\n'}) {
		line := decodeLine(part)
		if isBlank(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
