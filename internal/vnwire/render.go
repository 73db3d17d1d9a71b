package vnwire

import (
	"fmt"
	"strings"
)

// renderTagRun walks a tag run and renders each record with its typed value
// when the tag code is recognized. The iterator is taken by value so the
// caller's copy stays rewound.
func renderTagRun(it TagIter) string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for it.Next() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(renderTag(it.Tag()))
	}
	if err := it.Err(); err != nil {
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "Err(%v)", err)
	}
	b.WriteByte(']')
	return b.String()
}

// renderTag renders one tag, decoding the payload for known tag types.
func renderTag(tag Tag) string {
	switch tag.Code() {
	case TagMediaInfo:
		_, info, err := ParseMediaInfo(tag.Payload())
		if err != nil {
			return fmt.Sprintf("Tag{type: %s, value: Err(%v)}", tag.Code(), err)
		}
		return fmt.Sprintf("Tag{type: %s, value: %s}", tag.Code(), info)
	case TagFilename:
		fn, err := ParseFilename(tag.Payload())
		if err != nil {
			return fmt.Sprintf("Tag{type: %s, value: Err(%v)}", tag.Code(), err)
		}
		return fmt.Sprintf("Tag{type: %s, value: %s}", tag.Code(), fn)
	case TagRtpInfo:
		info, err := ParseRtpInfo(tag.Payload())
		if err != nil {
			return fmt.Sprintf("Tag{type: %s, value: Err(%v)}", tag.Code(), err)
		}
		return fmt.Sprintf("Tag{type: %s, value: %s}", tag.Code(), info)
	}
	return tag.String()
}

// RenderPacket produces the human-readable form of a parsed packet: the
// envelope line followed by the decoded message body when the code is known.
// Unknown codes and codes with no decoder render as notes, never as errors;
// a malformed body of a known code renders the decode failure.
func RenderPacket(p Packet) string {
	var b strings.Builder
	b.WriteString(p.String())

	body, ok := renderMessage(p.Code(), p.Payload())
	if ok {
		b.WriteByte('\n')
		b.WriteString(body)
	}
	return b.String()
}

// renderMessage decodes payload per code. ok is false when there is nothing
// to add below the envelope line.
func renderMessage(code MCode, payload []byte) (string, bool) {
	if !code.Known() {
		return "unknown message code", true
	}

	switch code {
	case CodeRegister:
		return renderOrErr(ParseRegister(payload))
	case CodeRequestChannel:
		return renderOrErr(ParseRequestChannel(payload))
	case CodeRequestChannelAck:
		return renderOrErr(ParseRequestChannelAck(payload))
	case CodeOpenRtpConnect:
		m, err := ParseOpenRtpConnect(payload)
		if err != nil {
			return fmt.Sprintf("decode failed: %v", err), true
		}
		s := m.String()
		if n := countTags(m.Tags()); int(m.NumTags()) != n {
			s += fmt.Sprintf("\nwarning: declared %d tags, found %d", m.NumTags(), n)
		}
		return s, true
	case CodeOpenRtpConnectAck:
		return renderOrErr(ParseOpenRtpConnectAck(payload))
	case CodeCloseRtpConnect:
		return renderOrErr(ParseCloseRtpConnect(payload))
	case CodeCloseRtpConnectAck:
		return renderOrErr(ParseCloseRtpConnectAck(payload))
	case CodeResFromTag:
		return renderOrErr(ParseResFromTag(payload))
	case CodePlay:
		return renderOrErr(ParsePlay(payload))
	case CodePlayAck:
		return renderOrErr(ParsePlayAck(payload))
	case CodeCancel:
		return renderOrErr(ParseCancel(payload))
	case CodeReleaseChannel:
		// no payload
		return "", false
	}

	return "no decoder for this code", true
}

func renderOrErr[T fmt.Stringer](m T, err error) (string, bool) {
	if err != nil {
		return fmt.Sprintf("decode failed: %v", err), true
	}
	return m.String(), true
}

func countTags(it TagIter) int {
	n := 0
	for it.Next() {
		n++
	}
	return n
}
