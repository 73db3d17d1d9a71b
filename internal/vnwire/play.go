package vnwire

import (
	"encoding/binary"
	"fmt"
)

const (
	playPart1Len    = 16
	playAckPart1Len = 5
)

// Play starts media playback: a 16-byte fixed part followed by a tag run
// carrying Filename and option tags.
type Play struct {
	part1 []byte
	tags  []byte
}

// ParsePlay decodes a PLAY payload.
func ParsePlay(data []byte) (*Play, error) {
	if len(data) < playPart1Len {
		return nil, fmt.Errorf("play needs %d bytes, have %d: %w", playPart1Len, len(data), ErrTruncated)
	}
	return &Play{part1: data[:playPart1Len], tags: data[playPart1Len:]}, nil
}

func (m *Play) Interval() uint32    { return binary.BigEndian.Uint32(m.part1[0:4]) }
func (m *Play) PlayTimes() uint16   { return binary.BigEndian.Uint16(m.part1[4:6]) }
func (m *Play) MaxDuration() uint32 { return binary.BigEndian.Uint32(m.part1[6:10]) }
func (m *Play) KeyMask() uint16     { return binary.BigEndian.Uint16(m.part1[10:12]) }
func (m *Play) Record() bool        { return m.part1[12] != 0 }
func (m *Play) SpeechBarge() bool   { return m.part1[13] != 0 }
func (m *Play) EraseDtmf() bool     { return m.part1[14] != 0 }
func (m *Play) NumTags() uint8      { return m.part1[15] }

// Tags returns an iterator over the option tag run.
func (m *Play) Tags() TagIter {
	return NewTagIter(m.tags)
}

func (m *Play) String() string {
	return fmt.Sprintf("Play{interval: %d, play_times: %d, max_duration: %d, key_mask: %d, record: %t, speech_barge: %t, erase_dtmf: %t, num_tlv: %d, tags: %s}",
		m.Interval(), m.PlayTimes(), m.MaxDuration(), m.KeyMask(),
		m.Record(), m.SpeechBarge(), m.EraseDtmf(), m.NumTags(), renderTagRun(m.Tags()))
}

// PlayAck reports playback completion: result, elapsed duration and a tag run.
type PlayAck struct {
	part1 []byte
	tags  []byte
}

// ParsePlayAck decodes a PLAY_ACK payload.
func ParsePlayAck(data []byte) (*PlayAck, error) {
	if len(data) < playAckPart1Len {
		return nil, fmt.Errorf("play ack needs %d bytes, have %d: %w", playAckPart1Len, len(data), ErrTruncated)
	}
	return &PlayAck{part1: data[:playAckPart1Len], tags: data[playAckPart1Len:]}, nil
}

func (m *PlayAck) Result() uint8        { return m.part1[0] }
func (m *PlayAck) PlayDuration() uint32 { return binary.BigEndian.Uint32(m.part1[1:5]) }

// Tags returns an iterator over the trailing tag run.
func (m *PlayAck) Tags() TagIter {
	return NewTagIter(m.tags)
}

func (m *PlayAck) String() string {
	return fmt.Sprintf("PlayAck{result: %d, play_duration: %d, tags: %s}",
		m.Result(), m.PlayDuration(), renderTagRun(m.Tags()))
}

// Filename is the payload of a Filename tag: a format byte and the file name.
type Filename struct {
	Format uint8
	name   []byte
}

// ParseFilename decodes a Filename tag payload.
func ParseFilename(data []byte) (Filename, error) {
	if len(data) < 1 {
		return Filename{}, fmt.Errorf("filename needs 1 byte, have 0: %w", ErrTruncated)
	}

	c := newCursor(data)
	format, _ := c.u8("filename format")
	name, err := c.cstring("filename")
	if err != nil {
		return Filename{}, err
	}

	return Filename{Format: format, name: name}, nil
}

// Name returns the raw file name bytes.
func (m Filename) Name() []byte {
	return m.name
}

// NameString returns the file name as text.
func (m Filename) NameString() string {
	return lossyString(m.name)
}

func (m Filename) String() string {
	return fmt.Sprintf("Filename{format: %d, filename: %q}", m.Format, m.NameString())
}
