package vnwire

import (
	"encoding/binary"
	"fmt"
)

// ResFromTag carries a single null-terminated result string.
type ResFromTag struct {
	value []byte
}

// ParseResFromTag decodes a RESFROMTAG payload.
func ParseResFromTag(data []byte) (ResFromTag, error) {
	if len(data) < 1 {
		return ResFromTag{}, fmt.Errorf("res from tag needs 1 byte, have 0: %w", ErrTruncated)
	}

	c := newCursor(data)
	value, err := c.cstring("res from tag")
	if err != nil {
		return ResFromTag{}, err
	}
	return ResFromTag{value: value}, nil
}

// Value returns the raw result bytes.
func (m ResFromTag) Value() []byte {
	return m.value
}

func (m ResFromTag) String() string {
	return fmt.Sprintf("ResFromTag(%q)", lossyString(m.value))
}

// Cancel aborts a pending operation, identified by its message code.
type Cancel struct {
	data []byte
}

// ParseCancel decodes a CANCEL payload.
func ParseCancel(data []byte) (Cancel, error) {
	if len(data) < 2 {
		return Cancel{}, fmt.Errorf("cancel needs 2 bytes, have %d: %w", len(data), ErrTruncated)
	}
	return Cancel{data: data[:2]}, nil
}

// OpCode returns the code of the operation being cancelled.
func (m Cancel) OpCode() MCode {
	return MCode(binary.BigEndian.Uint16(m.data))
}

func (m Cancel) String() string {
	return fmt.Sprintf("Cancel(%s)", m.OpCode())
}
