package vnwire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Packet is a read-only view over one received datagram. It keeps a reference
// to the buffer it was parsed from and computes every field lazily; it is
// valid only until that buffer is overwritten by the next receive.
type Packet struct {
	data []byte
}

// ParsePacket validates the envelope framing of data and returns a view over
// it. It requires at least HeaderLength bytes and a declared length covering
// at least the fixed header and no more than the bytes following the length
// field.
func ParsePacket(data []byte) (Packet, error) {
	if len(data) < HeaderLength {
		return Packet{}, fmt.Errorf("packet needs %d bytes, have %d: %w", HeaderLength, len(data), ErrTruncated)
	}

	length := int(binary.BigEndian.Uint16(data))
	if length < HeaderLength-2 {
		return Packet{}, fmt.Errorf("packet length %d below fixed header size %d: %w", length, HeaderLength-2, ErrTruncated)
	}
	if length > len(data)-2 {
		return Packet{}, fmt.Errorf("packet length %d exceeds %d available: %w", length, len(data)-2, ErrLengthOverrun)
	}

	return Packet{data: data}, nil
}

// Length returns the declared length field: the byte count of the fixed
// header after the length field plus the payload.
func (p Packet) Length() int {
	return int(binary.BigEndian.Uint16(p.data))
}

// Code returns the message type code.
func (p Packet) Code() MCode {
	return MCode(binary.BigEndian.Uint16(p.data[2:]))
}

// FsmID returns the session correlation id.
func (p Packet) FsmID() uint32 {
	return binary.BigEndian.Uint32(p.data[4:])
}

// Key returns the signed correlation key.
func (p Packet) Key() int16 {
	return int16(binary.BigEndian.Uint16(p.data[8:]))
}

// SN returns the sequence number.
func (p Packet) SN() uint16 {
	return binary.BigEndian.Uint16(p.data[10:])
}

// Payload returns the message body, Length()-10 bytes starting at offset 12.
func (p Packet) Payload() []byte {
	return p.data[HeaderLength : 2+p.Length()]
}

// PathData returns the side-channel bytes trailing the protocol body. They
// are not covered by the length field.
func (p Packet) PathData() []byte {
	return p.data[2+p.Length():]
}

// PathString returns the trailing bytes as text, or an error if they are not
// valid UTF-8.
func (p Packet) PathString() (string, error) {
	data := p.PathData()
	if !utf8.Valid(data) {
		return "", fmt.Errorf("packet path is not valid utf-8 (%d bytes)", len(data))
	}
	return string(data), nil
}

// Header returns an owning Header carrying this packet's fixed fields,
// usable to construct a reply.
func (p Packet) Header() Header {
	return Header{
		Code:  p.Code(),
		FsmID: p.FsmID(),
		Key:   p.Key(),
		SN:    p.SN(),
	}
}

func (p Packet) String() string {
	return fmt.Sprintf("Packet{length: %d, code: %s, fsm_id: %d, key: %d, sn: %d, payload: %d}",
		p.Length(), p.Code(), p.FsmID(), p.Key(), p.SN(), len(p.Payload()))
}

// Header holds the fixed fields of an outgoing packet. WriteTo computes and
// writes the length field itself.
type Header struct {
	Code  MCode
	FsmID uint32
	Key   int16
	SN    uint16
}

// WriteTo serializes the header followed by payload into dst and returns the
// total bytes written. payload may be nil for header-only packets.
func (h Header) WriteTo(dst []byte, payload []byte) (int, error) {
	total := HeaderLength + len(payload)
	if len(dst) < total {
		return 0, fmt.Errorf("packet needs %d bytes, dst has %d: %w", total, len(dst), ErrTruncated)
	}

	binary.BigEndian.PutUint16(dst, uint16(total-2))
	binary.BigEndian.PutUint16(dst[2:], uint16(h.Code))
	binary.BigEndian.PutUint32(dst[4:], h.FsmID)
	binary.BigEndian.PutUint16(dst[8:], uint16(h.Key))
	binary.BigEndian.PutUint16(dst[10:], h.SN)
	copy(dst[HeaderLength:], payload)

	return total, nil
}

func (h Header) String() string {
	return fmt.Sprintf("Header{code: %s, fsm_id: %d, key: %d, sn: %d}", h.Code, h.FsmID, h.Key, h.SN)
}
