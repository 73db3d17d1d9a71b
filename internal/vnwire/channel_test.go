package vnwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestChannelBytes(mediaType byte, agora []byte) []byte {
	buf := []byte{
		0x01,       // ice type webrtc
		0x00, 0x3c, // life 60s
		mediaType,
	}
	buf = append(buf, []byte("call-1\x00")...)
	if agora != nil {
		buf = append(buf, agora...)
		buf = append(buf, 0x00)
	}
	buf = append(buf,
		0x01,       // nbup
		0x14,       // ptime 20
		0x01,       // caller
		0x08,       // codec
		0x01, 0x02, // amr mode
	)
	return append(buf, []byte("a=x\x00b=y\x00")...)
}

func TestParseRequestChannelWithAgora(t *testing.T) {
	for _, mediaType := range []byte{4, 7} {
		m, err := ParseRequestChannel(requestChannelBytes(mediaType, []byte("agora-token")))
		require.NoError(t, err, "media type %d", mediaType)

		assert.Equal(t, IceWebrtc, m.IceType())
		assert.Equal(t, uint16(60), m.LifeSeconds())
		assert.Equal(t, "call-1", m.CallIDString())

		info, ok := m.AgoraInfo()
		require.True(t, ok, "media type %d", mediaType)
		assert.Equal(t, []byte("agora-token"), info)

		assert.True(t, m.IsNbup())
		assert.Equal(t, uint8(20), m.Ptime())
		assert.True(t, m.IsCaller())
		assert.Equal(t, uint8(8), m.Codec())
		assert.Equal(t, uint16(0x0102), m.AmrMode())
		assert.Equal(t, []string{"a=x", "b=y"}, m.WebrtcParams().Strings())
	}
}

func TestParseRequestChannelWithoutAgora(t *testing.T) {
	m, err := ParseRequestChannel(requestChannelBytes(1, nil))
	require.NoError(t, err)

	assert.Equal(t, MediaAudioOnly, m.MediaType())
	_, ok := m.AgoraInfo()
	assert.False(t, ok)
	assert.Equal(t, uint16(0x0102), m.AmrMode())
}

func TestParseRequestChannelUnterminatedCallID(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x3c, 0x01}
	buf = append(buf, []byte("call-without-end")...)
	_, err := ParseRequestChannel(buf)
	assert.ErrorIs(t, err, ErrNoTerminator)
}

func TestParseRequestChannelTooShort(t *testing.T) {
	_, err := ParseRequestChannel(make([]byte, requestChannelMinLen-1))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseRequestChannelAck(t *testing.T) {
	buf := []byte{
		0x00,       // result ok
		0x1f, 0x40, // audio 8000
		0x1f, 0x42, // video 8002
		0x1f, 0x44, // fax 8004
		0x02, // audio+video
	}
	buf = append(buf, []byte("fingerprint=ab\x00")...)

	m, err := ParseRequestChannelAck(buf)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), m.Result())
	assert.Equal(t, uint16(8000), m.AudioPort())
	assert.Equal(t, uint16(8002), m.VideoPort())
	assert.Equal(t, uint16(8004), m.FaxPort())
	assert.Equal(t, MediaAudioVideo, m.MediaType())
	assert.Equal(t, []string{"fingerprint=ab"}, m.WebrtcParams().Strings())
}

func TestParseRequestChannelAckTooShort(t *testing.T) {
	_, err := ParseRequestChannelAck(make([]byte, requestChannelAckMinLen-1))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestStringRun(t *testing.T) {
	run := NewStringRun([]byte("one\x00two\x00tail"))
	assert.Equal(t, []string{"one", "two"}, run.Strings())

	empty := NewStringRun(nil)
	assert.False(t, empty.Next())
}
