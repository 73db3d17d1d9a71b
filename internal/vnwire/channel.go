package vnwire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	requestChannelPart1Len = 4
	requestChannelPart2Len = 6
	requestChannelMinLen   = requestChannelPart1Len + 1 + requestChannelPart2Len + 1

	requestChannelAckPart1Len = 8
	requestChannelAckMinLen   = requestChannelAckPart1Len + 1
)

// RequestChannel asks the CN to allocate a media channel. The payload is two
// fixed parts around a call-id string, with an agora-info string present only
// when the media type byte is 4 or 7, and a trailing run of webrtc parameter
// strings.
type RequestChannel struct {
	part1     []byte
	callID    []byte
	agoraInfo []byte // nil unless media type gates it in
	hasAgora  bool
	part2     []byte
	webrtc    []byte
}

// ParseRequestChannel decodes a REQUESTCHANNEL payload in one forward pass.
func ParseRequestChannel(data []byte) (*RequestChannel, error) {
	if len(data) < requestChannelMinLen {
		return nil, fmt.Errorf("request channel needs %d bytes, have %d: %w", requestChannelMinLen, len(data), ErrTruncated)
	}

	c := newCursor(data)
	m := &RequestChannel{}

	m.part1, _ = c.take(requestChannelPart1Len, "request channel part1")

	var err error
	if m.callID, err = c.cstring("as_call_id"); err != nil {
		return nil, fmt.Errorf("request channel: %w", err)
	}

	switch m.part1[3] {
	case 4, 7:
		if m.agoraInfo, err = c.cstring("agora_info"); err != nil {
			return nil, fmt.Errorf("request channel: %w", err)
		}
		m.hasAgora = true
	}

	if m.part2, err = c.take(requestChannelPart2Len, "request channel part2"); err != nil {
		return nil, err
	}

	m.webrtc = c.rest()
	return m, nil
}

func (m *RequestChannel) IceType() IceType     { return IceType(m.part1[0]) }
func (m *RequestChannel) LifeSeconds() uint16  { return binary.BigEndian.Uint16(m.part1[1:3]) }
func (m *RequestChannel) MediaType() MediaType { return MediaType(m.part1[3]) }
func (m *RequestChannel) CallID() []byte       { return m.callID }
func (m *RequestChannel) CallIDString() string { return lossyString(m.callID) }

// AgoraInfo returns the conditional agora info string; ok is false when the
// media type did not gate the field in.
func (m *RequestChannel) AgoraInfo() (info []byte, ok bool) {
	return m.agoraInfo, m.hasAgora
}

func (m *RequestChannel) IsNbup() bool    { return m.part2[0] != 0 }
func (m *RequestChannel) Ptime() uint8    { return m.part2[1] }
func (m *RequestChannel) IsCaller() bool  { return m.part2[2] != 0 }
func (m *RequestChannel) Codec() uint8    { return m.part2[3] }
func (m *RequestChannel) AmrMode() uint16 { return binary.BigEndian.Uint16(m.part2[4:6]) }

// WebrtcParams returns the trailing parameter string run.
func (m *RequestChannel) WebrtcParams() StringRun {
	return NewStringRun(m.webrtc)
}

func (m *RequestChannel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "RequestChannel{ice: %s, life: %d, media: %s, as_call_id: %q",
		m.IceType(), m.LifeSeconds(), m.MediaType(), m.CallIDString())
	if m.hasAgora {
		fmt.Fprintf(&b, ", agora_info: %q", lossyString(m.agoraInfo))
	} else {
		b.WriteString(", agora_info: <none>")
	}
	fmt.Fprintf(&b, ", is_nbup: %t, ptime: %d, is_caller: %t, codec: %d, amr_mode: %d, webrtc: %s}",
		m.IsNbup(), m.Ptime(), m.IsCaller(), m.Codec(), m.AmrMode(), m.WebrtcParams())
	return b.String()
}

// RequestChannelAck is the CN's answer to RequestChannel: a result code, the
// allocated media ports and a trailing webrtc parameter run.
type RequestChannelAck struct {
	part1  []byte
	webrtc []byte
}

// ParseRequestChannelAck decodes a REQUESTCHANNEL_ACK payload.
func ParseRequestChannelAck(data []byte) (*RequestChannelAck, error) {
	if len(data) < requestChannelAckMinLen {
		return nil, fmt.Errorf("request channel ack needs %d bytes, have %d: %w", requestChannelAckMinLen, len(data), ErrTruncated)
	}

	c := newCursor(data)
	part1, _ := c.take(requestChannelAckPart1Len, "request channel ack part1")

	return &RequestChannelAck{part1: part1, webrtc: c.rest()}, nil
}

func (m *RequestChannelAck) Result() uint8        { return m.part1[0] }
func (m *RequestChannelAck) AudioPort() uint16    { return binary.BigEndian.Uint16(m.part1[1:3]) }
func (m *RequestChannelAck) VideoPort() uint16    { return binary.BigEndian.Uint16(m.part1[3:5]) }
func (m *RequestChannelAck) FaxPort() uint16      { return binary.BigEndian.Uint16(m.part1[5:7]) }
func (m *RequestChannelAck) MediaType() MediaType { return MediaType(m.part1[7]) }

// WebrtcParams returns the trailing parameter string run.
func (m *RequestChannelAck) WebrtcParams() StringRun {
	return NewStringRun(m.webrtc)
}

func (m *RequestChannelAck) String() string {
	return fmt.Sprintf("RequestChannelAck{result: %d, audio_port: %d, video_port: %d, fax_port: %d, media_type: %s, webrtc: %s}",
		m.Result(), m.AudioPort(), m.VideoPort(), m.FaxPort(), m.MediaType(), m.WebrtcParams())
}
