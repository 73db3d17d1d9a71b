package vnwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x00}
	h := Header{
		Code:  CodeRequestChannel,
		FsmID: 123456,
		Key:   -5,
		SN:    42,
	}

	buf := make([]byte, 64)
	n, err := h.WriteTo(buf, payload)
	require.NoError(t, err)
	require.Equal(t, HeaderLength+len(payload), n)

	pkt, err := ParsePacket(buf[:n])
	require.NoError(t, err)

	assert.Equal(t, 10+len(payload), pkt.Length())
	assert.Equal(t, CodeRequestChannel, pkt.Code())
	assert.Equal(t, uint32(123456), pkt.FsmID())
	assert.Equal(t, int16(-5), pkt.Key())
	assert.Equal(t, uint16(42), pkt.SN())
	assert.Equal(t, payload, pkt.Payload())
	assert.Empty(t, pkt.PathData())
}

func TestHeaderWriteHeaderOnly(t *testing.T) {
	h := Header{Code: CodeCnisup, FsmID: 5_000_000}

	buf := make([]byte, 32)
	n, err := h.WriteTo(buf, nil)
	require.NoError(t, err)
	require.Equal(t, HeaderLength, n)

	pkt, err := ParsePacket(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, CodeCnisup, pkt.Code())
	assert.Equal(t, 10, pkt.Length())
	assert.Equal(t, uint32(5_000_000), pkt.FsmID())
	assert.Empty(t, pkt.Payload())
}

func TestHeaderWriteShortDst(t *testing.T) {
	h := Header{Code: CodeCnisup}
	_, err := h.WriteTo(make([]byte, 8), nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParsePacketTooShort(t *testing.T) {
	for n := 0; n < HeaderLength; n++ {
		_, err := ParsePacket(make([]byte, n))
		assert.ErrorIs(t, err, ErrTruncated, "length %d", n)
	}
}

func TestParsePacketLengthBelowHeader(t *testing.T) {
	// A declared length below the fixed header size would invert the payload
	// bounds; it must be rejected at parse time, not fault on access.
	for _, length := range []byte{0, 5, 9} {
		buf := make([]byte, HeaderLength)
		buf[1] = length
		_, err := ParsePacket(buf)
		assert.ErrorIs(t, err, ErrTruncated, "length %d", length)
	}
}

func TestParsePacketLengthOverrun(t *testing.T) {
	// Declared length 11 but only 10 bytes follow the length field.
	buf := make([]byte, HeaderLength)
	buf[0] = 0x00
	buf[1] = 11
	_, err := ParsePacket(buf)
	assert.ErrorIs(t, err, ErrLengthOverrun)
}

func TestPacketPathSideChannel(t *testing.T) {
	h := Header{Code: CodeRegisterAck, FsmID: 7}
	buf := make([]byte, 64)
	n, err := h.WriteTo(buf, []byte{0})
	require.NoError(t, err)

	// The path string trails the protocol body uncounted by the length field.
	trailer := append(buf[:n:n], []byte("/var/run/cin/mscn7")...)
	pkt, err := ParsePacket(trailer)
	require.NoError(t, err)

	assert.Equal(t, []byte{0}, pkt.Payload())
	path, err := pkt.PathString()
	require.NoError(t, err)
	assert.Equal(t, "/var/run/cin/mscn7", path)
}

func TestPacketHeaderEcho(t *testing.T) {
	h := Header{Code: CodePlay, FsmID: 99, Key: 3, SN: 8}
	buf := make([]byte, 32)
	n, err := h.WriteTo(buf, nil)
	require.NoError(t, err)

	pkt, err := ParsePacket(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, h, pkt.Header())
}

func TestMCodeString(t *testing.T) {
	assert.Equal(t, "CNISUP(0xff03)", CodeCnisup.String())
	assert.Equal(t, "Unknown(21)", MCode(0x15).String())
	assert.True(t, CodeHeartbeat.Known())
	assert.False(t, MCode(0x1234).Known())
}
