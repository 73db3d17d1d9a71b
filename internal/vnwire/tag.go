package vnwire

import "fmt"

// tagHeaderLen is the fixed TLV overhead: 1-byte code + 2-byte length.
const tagHeaderLen = 3

// Tag is one TLV unit. The payload is a view into the parsed buffer. Unknown
// tag codes parse normally; only framing violations fail.
type Tag struct {
	code    TagCode
	payload []byte
}

// ParseTag reads a single TLV record from the front of buf.
func ParseTag(buf []byte) (Tag, error) {
	if len(buf) < tagHeaderLen {
		return Tag{}, fmt.Errorf("tag needs %d bytes, have %d: %w", tagHeaderLen, len(buf), ErrTruncated)
	}

	c := newCursor(buf)
	code, _ := c.u8("tag code")
	length, _ := c.u16("tag length")

	payload, err := c.take(int(length), "tag payload")
	if err != nil {
		return Tag{}, fmt.Errorf("tag 0x%02x length %d: %w", code, length, ErrLengthOverrun)
	}

	return Tag{code: TagCode(code), payload: payload}, nil
}

// Code returns the raw tag code.
func (t Tag) Code() TagCode {
	return t.code
}

// Payload returns the tag value bytes.
func (t Tag) Payload() []byte {
	return t.payload
}

// wireLen is the total encoded size of the tag including its header.
func (t Tag) wireLen() int {
	return tagHeaderLen + len(t.payload)
}

func (t Tag) String() string {
	return fmt.Sprintf("Tag{type: %s, payload: %d}", t.code, len(t.payload))
}

// TagIter walks a contiguous run of TLV records, bufio.Scanner style:
//
//	it := NewTagIter(buf)
//	for it.Next() {
//		tag := it.Tag()
//	}
//	if err := it.Err(); err != nil { ... }
//
// The first malformed record stops the iteration with Err set; the iterator
// does not resynchronize. A TagIter is a value: copying one, or calling
// NewTagIter again on the same buffer, yields an independent iteration.
type TagIter struct {
	rest []byte
	tag  Tag
	err  error
}

// NewTagIter returns an iterator over the TLV records at the front of buf.
// An empty buffer yields no tags and no error.
func NewTagIter(buf []byte) TagIter {
	return TagIter{rest: buf}
}

// Next advances to the next tag. It returns false when the run is exhausted
// or a record fails to parse.
func (it *TagIter) Next() bool {
	if it.err != nil || len(it.rest) == 0 {
		return false
	}
	tag, err := ParseTag(it.rest)
	if err != nil {
		it.err = err
		it.rest = nil
		return false
	}
	it.tag = tag
	it.rest = it.rest[tag.wireLen():]
	return true
}

// Tag returns the record produced by the last successful Next.
func (it *TagIter) Tag() Tag {
	return it.tag
}

// Err returns the parse error that terminated the run, if any.
func (it *TagIter) Err() error {
	return it.err
}
