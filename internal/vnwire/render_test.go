package vnwire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packetFor(t *testing.T, code MCode, payload []byte) Packet {
	t.Helper()
	buf := make([]byte, HeaderLength+len(payload))
	n, err := Header{Code: code, FsmID: 1}.WriteTo(buf, payload)
	require.NoError(t, err)
	pkt, err := ParsePacket(buf[:n])
	require.NoError(t, err)
	return pkt
}

func TestRenderRegister(t *testing.T) {
	payload := append([]byte{10, 0, 0, 1},
		tagBytes(TagMediaInfo, []byte{0x01, 0x00, 0x00, 0x00})...)

	out := RenderPacket(packetFor(t, CodeRegister, payload))
	assert.Contains(t, out, "REGISTER(0xff01)")
	assert.Contains(t, out, "ip: 10.0.0.1")
	assert.Contains(t, out, "support_t38: false")
}

func TestRenderUnknownCode(t *testing.T) {
	out := RenderPacket(packetFor(t, MCode(0x1234), nil))
	assert.Contains(t, out, "unknown message code")
}

func TestRenderUndecodedKnownCode(t *testing.T) {
	out := RenderPacket(packetFor(t, CodeCollectDigit, []byte{1, 2, 3}))
	assert.Contains(t, out, "no decoder for this code")
}

func TestRenderReleaseChannelEnvelopeOnly(t *testing.T) {
	out := RenderPacket(packetFor(t, CodeReleaseChannel, nil))
	assert.Contains(t, out, "RELEASECHANNEL")
	assert.Equal(t, 1, strings.Count(out, "\n")+1, "expected a single line: %q", out)
}

func TestRenderMalformedBody(t *testing.T) {
	out := RenderPacket(packetFor(t, CodeRegister, []byte{10, 0}))
	assert.Contains(t, out, "decode failed")
}

func TestRenderOpenRtpConnectCountMismatch(t *testing.T) {
	payload := append([]byte{3}, tagBytes(TagRtpInfo, rtpInfoBytes(10000))...)
	out := RenderPacket(packetFor(t, CodeOpenRtpConnect, payload))
	assert.Contains(t, out, "warning: declared 3 tags, found 1")
}
