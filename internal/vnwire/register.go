package vnwire

import (
	"fmt"
	"net/netip"
	"strings"
)

const (
	registerMinLen  = 4 + mediaInfoMinLen
	mediaInfoMinLen = 4
	codecDescMinLen = 3
)

// Register is the MS registration announcement: the media server's IPv4
// address plus a mandatory MediaInfo tag describing its capabilities.
type Register struct {
	IP        netip.Addr
	MediaInfo MediaInfo
}

// ParseRegister decodes a REGISTER payload.
func ParseRegister(data []byte) (Register, error) {
	if len(data) < registerMinLen {
		return Register{}, fmt.Errorf("register needs %d bytes, have %d: %w", registerMinLen, len(data), ErrTruncated)
	}

	tag, err := ParseTag(data[4:])
	if err != nil {
		return Register{}, fmt.Errorf("register media info tag: %w", err)
	}
	if tag.Code() != TagMediaInfo {
		return Register{}, fmt.Errorf("register expects %s tag, got %s: %w", TagMediaInfo, tag.Code(), ErrTagMismatch)
	}

	_, info, err := ParseMediaInfo(tag.Payload())
	if err != nil {
		return Register{}, fmt.Errorf("register: %w", err)
	}

	return Register{
		IP:        netip.AddrFrom4([4]byte(data[:4])),
		MediaInfo: info,
	}, nil
}

func (m Register) String() string {
	return fmt.Sprintf("Register{ip: %s, media_info: %s}", m.IP, m.MediaInfo)
}

// MediaInfo describes media capabilities: T38 fax support and the advertised
// audio, video and fax codec lists.
//
// The wire encodes the T38 flag inverted: byte value 1 means unsupported, any
// other value means supported.
type MediaInfo struct {
	SupportT38  bool
	AudioCodecs []CodecDesc
	VideoCodecs []CodecDesc
	FaxCodecs   []CodecDesc
}

// ParseMediaInfo decodes a MediaInfo structure from the front of data and
// also returns the number of bytes consumed, so a caller embedding it can
// advance past it without re-scanning.
func ParseMediaInfo(data []byte) (int, MediaInfo, error) {
	if len(data) < mediaInfoMinLen {
		return 0, MediaInfo{}, fmt.Errorf("media info needs %d bytes, have %d: %w", mediaInfoMinLen, len(data), ErrTruncated)
	}

	c := newCursor(data)
	t38, _ := c.u8("t38 flag")

	info := MediaInfo{SupportT38: t38 != 1}

	var err error
	if info.AudioCodecs, err = parseCodecList(&c, "audio codecs"); err != nil {
		return 0, MediaInfo{}, err
	}
	if info.VideoCodecs, err = parseCodecList(&c, "video codecs"); err != nil {
		return 0, MediaInfo{}, err
	}
	if info.FaxCodecs, err = parseCodecList(&c, "fax codecs"); err != nil {
		return 0, MediaInfo{}, err
	}

	return len(data) - c.remaining(), info, nil
}

func (m MediaInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MediaInfo{support_t38: %t", m.SupportT38)
	writeCodecList(&b, "audio", m.AudioCodecs)
	writeCodecList(&b, "video", m.VideoCodecs)
	writeCodecList(&b, "fax", m.FaxCodecs)
	b.WriteByte('}')
	return b.String()
}

func writeCodecList(b *strings.Builder, name string, codecs []CodecDesc) {
	fmt.Fprintf(b, ", %s: [", name)
	for i, d := range codecs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteByte(']')
}

// CodecDesc is one codec descriptor: list index, RTP payload type and the
// codec map string (e.g. "96 AMR/8000").
type CodecDesc struct {
	Index       uint8
	PayloadType uint8
	mapData     []byte
}

// parseCodecList reads a one-byte count followed by that many descriptors.
func parseCodecList(c *cursor, field string) ([]CodecDesc, error) {
	count, err := c.u8(field + " count")
	if err != nil {
		return nil, err
	}
	list := make([]CodecDesc, 0, count)
	for i := 0; i < int(count); i++ {
		n, desc, err := parseCodecDesc(c.rest())
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		if _, err := c.take(n, field); err != nil {
			return nil, err
		}
		list = append(list, desc)
	}
	return list, nil
}

// parseCodecDesc decodes one descriptor and reports the bytes consumed.
func parseCodecDesc(data []byte) (int, CodecDesc, error) {
	if len(data) < codecDescMinLen {
		return 0, CodecDesc{}, fmt.Errorf("codec needs %d bytes, have %d: %w", codecDescMinLen, len(data), ErrTruncated)
	}

	c := newCursor(data)
	index, _ := c.u8("codec index")
	pltype, _ := c.u8("codec payload type")
	mapData, err := c.cstring("codec map string")
	if err != nil {
		return 0, CodecDesc{}, err
	}

	return len(data) - c.remaining(), CodecDesc{
		Index:       index,
		PayloadType: pltype,
		mapData:     mapData,
	}, nil
}

// MapData returns the raw codec map bytes.
func (d CodecDesc) MapData() []byte {
	return d.mapData
}

// MapString returns the codec map as text.
func (d CodecDesc) MapString() string {
	return lossyString(d.mapData)
}

func (d CodecDesc) String() string {
	return fmt.Sprintf("CodecDesc{index: %d, payload_type: %d, mapstr: %q}", d.Index, d.PayloadType, d.MapString())
}
