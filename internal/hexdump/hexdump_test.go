package hexdump

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	var buf bytes.Buffer
	offset, err := ParseLine("0\t00 35 00 01 00 00 00 02 00 05 00 06 01 00 16 00", &buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, []byte{
		0x00, 0x35, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x05, 0x00, 0x06, 0x01, 0x00, 0x16, 0x00,
	}, buf.Bytes())
}

func TestParseLineStopsAtAsciiGutter(t *testing.T) {
	var buf bytes.Buffer
	offset, err := ParseLine("16  01 00 04 01 0a 00 00 01  ........", &buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), offset)
	assert.Len(t, buf.Bytes(), 8)
}

func TestParseLineTwoCharGutterThirdColumn(t *testing.T) {
	// A short line's gutter can be exactly two characters wide where the
	// third byte column would sit.
	var buf bytes.Buffer
	_, err := ParseLine("0 00 35 .5", &buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x35}, buf.Bytes())
}

func TestParseLineBadByte(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseLine("0 00 zz 35", &buf)
	assert.Error(t, err)
}

func TestParseLineBadOffset(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseLine("offset 00", &buf)
	assert.Error(t, err)
}

func TestDecodeText(t *testing.T) {
	text := "\n0   00 0c ff 03 00 4c 4b 40 00 00 00 00\n\n"
	data, err := DecodeText(text)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0c, 0xff, 0x03, 0x00, 0x4c, 0x4b, 0x40, 0x00, 0x00, 0x00, 0x00}, data)
}

func TestDecodeTextBadLine(t *testing.T) {
	_, err := DecodeText("0 00 01\nnot a line\n")
	assert.Error(t, err)
}
