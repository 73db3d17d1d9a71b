package vnwire

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StringRun walks a run of null-terminated strings at the tail of a payload.
// Trailing bytes with no terminator are silently dropped, matching the wire
// producers which pad the final field.
//
// A StringRun is a value; copying it restarts nothing, but calling Strings()
// or iterating a copy is independent of the original.
type StringRun struct {
	rest []byte
	cur  []byte
}

// NewStringRun returns an iterator over the strings in buf.
func NewStringRun(buf []byte) StringRun {
	return StringRun{rest: buf}
}

// Next advances to the next string, returning false at the end of the run.
func (s *StringRun) Next() bool {
	if len(s.rest) == 0 {
		return false
	}
	pos := findNull(s.rest)
	if pos < 0 {
		s.rest = nil
		return false
	}
	s.cur = s.rest[:pos]
	s.rest = s.rest[pos+1:]
	return true
}

// Bytes returns the string produced by the last successful Next.
func (s *StringRun) Bytes() []byte {
	return s.cur
}

// Strings collects the whole run, decoding each entry as text.
func (s StringRun) Strings() []string {
	var out []string
	for s.Next() {
		out = append(out, lossyString(s.Bytes()))
	}
	return out
}

func (s StringRun) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s.Strings() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", v)
	}
	b.WriteByte(']')
	return b.String()
}

// lossyString renders field bytes as text, falling back to a length marker
// when the bytes are not valid UTF-8.
func lossyString(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return fmt.Sprintf("<%d raw bytes>", len(data))
}
