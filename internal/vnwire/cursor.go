package vnwire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// cursor walks a byte slice with bounds-checked reads. Every read either
// advances past the bytes it consumed or fails without reading out of range;
// there is no panic path. The field name passed to each read ends up in the
// error so a decode failure names the field that could not be parsed.
type cursor struct {
	buf []byte
}

func newCursor(buf []byte) cursor {
	return cursor{buf: buf}
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.buf)
}

// rest returns the unread bytes without consuming them.
func (c *cursor) rest() []byte {
	return c.buf
}

func (c *cursor) need(n int, field string) error {
	if len(c.buf) < n {
		return fmt.Errorf("%s needs %d bytes, have %d: %w", field, n, len(c.buf), ErrTruncated)
	}
	return nil
}

func (c *cursor) u8(field string) (uint8, error) {
	if err := c.need(1, field); err != nil {
		return 0, err
	}
	v := c.buf[0]
	c.buf = c.buf[1:]
	return v, nil
}

func (c *cursor) u16(field string) (uint16, error) {
	if err := c.need(2, field); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf)
	c.buf = c.buf[2:]
	return v, nil
}

func (c *cursor) i16(field string) (int16, error) {
	v, err := c.u16(field)
	return int16(v), err
}

func (c *cursor) u32(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf)
	c.buf = c.buf[4:]
	return v, nil
}

// take consumes exactly n bytes and returns them as a view into the buffer.
func (c *cursor) take(n int, field string) ([]byte, error) {
	if err := c.need(n, field); err != nil {
		return nil, err
	}
	v := c.buf[:n]
	c.buf = c.buf[n:]
	return v, nil
}

// cstring consumes bytes up to and including the next null terminator and
// returns the bytes before it.
func (c *cursor) cstring(field string) ([]byte, error) {
	pos := findNull(c.buf)
	if pos < 0 {
		return nil, fmt.Errorf("%s: %w", field, ErrNoTerminator)
	}
	v := c.buf[:pos]
	c.buf = c.buf[pos+1:]
	return v, nil
}

// findNull reports the index of the first zero byte, or -1.
func findNull(buf []byte) int {
	return bytes.IndexByte(buf, 0)
}
