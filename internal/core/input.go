package core

// input.go cleans pasted and uploaded text before parsing. Spreadsheet
// clipboards and exported files bring a UTF-8 BOM (Excel), stray bytes from
// legacy code pages, and CRLF or bare CR line endings.

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const byteOrderMark = "\uFEFF"

// lineEndings maps CRLF and bare CR to LF. CRLF is listed first so it wins
// over the bare CR at the same position.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText strips a leading BOM, replaces every invalid UTF-8 byte
// with '?' and converts all line endings to LF.
func NormalizeText(s string) string {
	s = strings.TrimPrefix(s, byteOrderMark)
	if !utf8.ValidString(s) {
		s = replaceInvalidUTF8(s)
	}
	if strings.IndexByte(s, '\r') >= 0 {
		s = lineEndings.Replace(s)
	}
	return s
}

// replaceInvalidUTF8 substitutes '?' byte for byte, so offsets into the
// surrounding ASCII stay put.
func replaceInvalidUTF8(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte('?')
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// ReadInput reads at most limit bytes from r and normalizes them.
// A limit of zero or less reads everything.
func ReadInput(r io.Reader, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("read input: request body too large (limit %d bytes)", limit)
	}
	return NormalizeText(string(data)), nil
}
