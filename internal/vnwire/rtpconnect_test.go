package vnwire

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rtpInfoBytes(port uint16) []byte {
	buf := []byte{
		192, 168, 1, 2,
		byte(port >> 8), byte(port),
		0x00, // audio
		96,   // internal payload type
		97,   // negotiated payload type
	}
	buf = append(buf, []byte("sendrecv\x00")...)
	buf = append(buf, 101, 1)
	return append(buf, []byte("d1\x00d2\x00")...)
}

func TestParseRtpInfo(t *testing.T) {
	m, err := ParseRtpInfo(rtpInfoBytes(10000))
	require.NoError(t, err)

	assert.Equal(t, netip.AddrFrom4([4]byte{192, 168, 1, 2}), m.IP())
	assert.Equal(t, uint16(10000), m.Port())
	assert.Equal(t, RtpMediaAudio, m.MediaType())
	assert.Equal(t, uint8(96), m.InternalPayloadT())
	assert.Equal(t, uint8(97), m.NegotiatedPayloadT())
	assert.Equal(t, "sendrecv", m.AttributeString())
	assert.Equal(t, uint8(101), m.TeleEvent())
	assert.Equal(t, uint8(1), m.Direction())
	assert.Equal(t, []string{"d1", "d2"}, m.Descriptions().Strings())
}

func TestParseRtpInfoTooShort(t *testing.T) {
	_, err := ParseRtpInfo(make([]byte, rtpInfoMinLen-1))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseOpenRtpConnect(t *testing.T) {
	buf := []byte{2}
	buf = append(buf, tagBytes(TagRtpInfo, rtpInfoBytes(10000))...)
	buf = append(buf, tagBytes(TagRtpInfo, rtpInfoBytes(10002))...)

	m, err := ParseOpenRtpConnect(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), m.NumTags())

	infos, err := m.RtpInfos()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, uint16(10000), infos[0].Port())
	assert.Equal(t, uint16(10002), infos[1].Port())
}

func TestParseOpenRtpConnectCountMismatch(t *testing.T) {
	// Declared count 3 but only one tag follows; the run drives decoding.
	buf := []byte{3}
	buf = append(buf, tagBytes(TagRtpInfo, rtpInfoBytes(10000))...)

	m, err := ParseOpenRtpConnect(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), m.NumTags())

	infos, err := m.RtpInfos()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestOpenRtpConnectRejectsForeignTag(t *testing.T) {
	buf := []byte{1}
	buf = append(buf, tagBytes(TagFilename, []byte("x"))...)

	m, err := ParseOpenRtpConnect(buf)
	require.NoError(t, err)

	_, err = m.RtpInfos()
	assert.ErrorIs(t, err, ErrTagMismatch)
}

func TestParseOpenRtpConnectEmpty(t *testing.T) {
	_, err := ParseOpenRtpConnect(nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSingleByteMessages(t *testing.T) {
	ack, err := ParseOpenRtpConnectAck([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), ack.Result)

	cls, err := ParseCloseRtpConnect([]byte{7})
	require.NoError(t, err)
	assert.Equal(t, uint8(7), cls.Value)

	clsAck, err := ParseCloseRtpConnectAck([]byte{0})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), clsAck.Result)

	_, err = ParseOpenRtpConnectAck(nil)
	assert.ErrorIs(t, err, ErrTruncated)
}
