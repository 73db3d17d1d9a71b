package vnwire

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"
)

const (
	rtpInfoPart1Len = 9
	rtpInfoPart2Len = 2
	// The producer always appends at least six bytes of description strings
	// after part2; the minimum reflects that.
	rtpInfoMinLen = rtpInfoPart1Len + 1 + rtpInfoPart2Len + 6
)

// OpenRtpConnect instructs the CN to open RTP legs. The payload is a declared
// tag count followed by a run of RtpInfo tags.
//
// The count byte is informational: iteration is driven by buffer exhaustion,
// matching the peer, which never cross-checks the two. Callers that care can
// compare NumTags against the run they walk.
type OpenRtpConnect struct {
	numTags uint8
	tags    []byte
}

// ParseOpenRtpConnect decodes an OPENRTPCONNECT payload.
func ParseOpenRtpConnect(data []byte) (*OpenRtpConnect, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("open rtp connect needs 1 byte, have 0: %w", ErrTruncated)
	}
	return &OpenRtpConnect{numTags: data[0], tags: data[1:]}, nil
}

// NumTags returns the declared tag count.
func (m *OpenRtpConnect) NumTags() uint8 {
	return m.numTags
}

// Tags returns an iterator over the raw tag run.
func (m *OpenRtpConnect) Tags() TagIter {
	return NewTagIter(m.tags)
}

// RtpInfos walks the tag run requiring every tag to be RtpInfo-typed and
// decodes each payload. The run length is decided by the buffer, not by
// NumTags.
func (m *OpenRtpConnect) RtpInfos() ([]*RtpInfo, error) {
	var out []*RtpInfo
	it := m.Tags()
	for it.Next() {
		tag := it.Tag()
		if tag.Code() != TagRtpInfo {
			return out, fmt.Errorf("open rtp connect expects %s tag, got %s: %w", TagRtpInfo, tag.Code(), ErrTagMismatch)
		}
		info, err := ParseRtpInfo(tag.Payload())
		if err != nil {
			return out, fmt.Errorf("open rtp connect: %w", err)
		}
		out = append(out, info)
	}
	return out, it.Err()
}

func (m *OpenRtpConnect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OpenRtpConnect{num: %d, rtpinfos: [", m.numTags)
	infos, err := m.RtpInfos()
	for i, info := range infos {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(info.String())
	}
	if err != nil {
		if len(infos) > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "Err(%v)", err)
	}
	b.WriteString("]}")
	return b.String()
}

// RtpInfo describes one RTP leg: endpoint address, payload type mapping, an
// attribute string, telephone-event and direction flags, and trailing
// description strings.
type RtpInfo struct {
	part1     []byte
	attribute []byte
	part2     []byte
	desc      []byte
}

// ParseRtpInfo decodes an RtpInfo tag payload.
func ParseRtpInfo(data []byte) (*RtpInfo, error) {
	if len(data) < rtpInfoMinLen {
		return nil, fmt.Errorf("rtp info needs %d bytes, have %d: %w", rtpInfoMinLen, len(data), ErrTruncated)
	}

	c := newCursor(data)
	m := &RtpInfo{}

	m.part1, _ = c.take(rtpInfoPart1Len, "rtp info part1")

	var err error
	if m.attribute, err = c.cstring("rtp info attribute"); err != nil {
		return nil, err
	}
	if m.part2, err = c.take(rtpInfoPart2Len, "rtp info part2"); err != nil {
		return nil, err
	}

	m.desc = c.rest()
	return m, nil
}

func (m *RtpInfo) IP() netip.Addr {
	return netip.AddrFrom4([4]byte(m.part1[:4]))
}

func (m *RtpInfo) Port() uint16              { return binary.BigEndian.Uint16(m.part1[4:6]) }
func (m *RtpInfo) MediaType() RtpMediaType   { return RtpMediaType(m.part1[6]) }
func (m *RtpInfo) InternalPayloadT() uint8   { return m.part1[7] }
func (m *RtpInfo) NegotiatedPayloadT() uint8 { return m.part1[8] }

func (m *RtpInfo) Attribute() []byte       { return m.attribute }
func (m *RtpInfo) AttributeString() string { return lossyString(m.attribute) }

func (m *RtpInfo) TeleEvent() uint8 { return m.part2[0] }
func (m *RtpInfo) Direction() uint8 { return m.part2[1] }

// Descriptions returns the trailing description string run.
func (m *RtpInfo) Descriptions() StringRun {
	return NewStringRun(m.desc)
}

func (m *RtpInfo) String() string {
	return fmt.Sprintf("RtpInfo{ip: %s, port: %d, media_type: %s, internal_pltyp: %d, nego_pltyp: %d, attribute: %q, tele_event: %d, direction: %d, desc: %s}",
		m.IP(), m.Port(), m.MediaType(), m.InternalPayloadT(), m.NegotiatedPayloadT(),
		m.AttributeString(), m.TeleEvent(), m.Direction(), m.Descriptions())
}

// parseResultByte decodes the single-byte payload shared by several acks.
func parseResultByte(name string, data []byte) (uint8, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("%s needs 1 byte, have 0: %w", name, ErrTruncated)
	}
	return data[0], nil
}

// OpenRtpConnectAck carries a single result byte.
type OpenRtpConnectAck struct {
	Result uint8
}

func ParseOpenRtpConnectAck(data []byte) (OpenRtpConnectAck, error) {
	v, err := parseResultByte("open rtp connect ack", data)
	return OpenRtpConnectAck{Result: v}, err
}

func (m OpenRtpConnectAck) String() string {
	return fmt.Sprintf("OpenRtpConnectAck(%d)", m.Result)
}

// CloseRtpConnect carries a single value byte.
type CloseRtpConnect struct {
	Value uint8
}

func ParseCloseRtpConnect(data []byte) (CloseRtpConnect, error) {
	v, err := parseResultByte("close rtp connect", data)
	return CloseRtpConnect{Value: v}, err
}

func (m CloseRtpConnect) String() string {
	return fmt.Sprintf("CloseRtpConnect(%d)", m.Value)
}

// CloseRtpConnectAck carries a single result byte.
type CloseRtpConnectAck struct {
	Result uint8
}

func ParseCloseRtpConnectAck(data []byte) (CloseRtpConnectAck, error) {
	v, err := parseResultByte("close rtp connect ack", data)
	return CloseRtpConnectAck{Result: v}, err
}

func (m CloseRtpConnectAck) String() string {
	return fmt.Sprintf("CloseRtpConnectAck(%d)", m.Result)
}
