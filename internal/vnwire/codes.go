// Package vnwire implements the binary CN/MS control protocol: the 12-byte
// packet envelope, the TLV tag sub-format, and one read-only view per message
// payload type.
//
// Packet layout (all integers big-endian):
//
//	Offset  Size  Description
//	------  ----  -----------
//	0       2     length — byte count of everything after this field (10 + payload)
//	2       2     message code
//	4       4     fsm id (session correlation)
//	8       2     key (signed)
//	10      2     sequence number
//	12      …     payload (length−10 bytes)
//
// Bytes beyond 2+length are not part of the protocol body; they carry a
// side-channel path string retrievable via Packet.PathData.
//
// Every view type borrows from the buffer handed to its parse function and is
// only valid until that buffer is reused for the next datagram.
package vnwire

import "fmt"

// HeaderLength is the fixed envelope size in bytes.
const HeaderLength = 12

// MCode is a message type code. Values outside the known table are legal on
// the wire and render as Unknown(value).
type MCode uint16

const (
	CodeHeartbeat   MCode = 0xffff
	CodeRegister    MCode = 0xff01
	CodeRegisterAck MCode = 0xff02
	CodeCnisup      MCode = 0xff03
	CodeCnisupAck   MCode = 0xff04

	CodeRequestChannel       MCode = 0x1
	CodeRequestChannelAck    MCode = 0x2
	CodePlay                 MCode = 0x3
	CodePlayAck              MCode = 0x4
	CodeCollectDigit         MCode = 0x5
	CodeCollectDigitAck      MCode = 0x6
	CodeRecord               MCode = 0x7
	CodeRecordAck            MCode = 0x8
	CodeSendFax              MCode = 0x9
	CodeSendFaxAck           MCode = 0xa
	CodeReceiveFax           MCode = 0xb
	CodeReceiveFaxAck        MCode = 0xc
	CodeOpenRtpConnect       MCode = 0xd
	CodeOpenRtpConnectAck    MCode = 0xe
	CodeSetRtpConnect        MCode = 0xf
	CodeSetRtpConnectAck     MCode = 0x10
	CodeCloseRtpConnect      MCode = 0x11
	CodeCloseRtpConnectAck   MCode = 0x12
	CodeCancel               MCode = 0x13
	CodeReleaseChannel       MCode = 0x14
	CodeFaxEvent             MCode = 0x16
	CodeAudioDetect          MCode = 0x17
	CodeAudioDetectAck       MCode = 0x18
	CodeDtmfRcv              MCode = 0x19
	CodeDtmfRcvAck           MCode = 0x1a
	CodeGet3PartyPort        MCode = 0x1b
	CodeGet3PartyPortAck     MCode = 0x1c
	CodeBridge               MCode = 0x1d
	CodeBridgeAck            MCode = 0x1e
	CodeHttpDownload         MCode = 0x1f
	CodeTHeartbeat           MCode = 0x20
	CodeUnbridge             MCode = 0x21
	CodeResetLifeTimer       MCode = 0x22
	CodeInfoDtmf             MCode = 0x23
	CodeNbupInfo             MCode = 0x24
	CodeModifyChannel        MCode = 0x25
	CodeModifyChannelAck     MCode = 0x26
	CodeAddVideoAck          MCode = 0x27
	CodeEraseVideoAck        MCode = 0x28
	CodeOpenRtmpConnect      MCode = 0x29
	CodeOpenRtmpConnectAck   MCode = 0x2a
	CodeCloseRtmpConnect     MCode = 0x2b
	CodeCloseRtmpConnectAck  MCode = 0x2c
	CodeFaceRecog            MCode = 0x2d
	CodeFaceRecogAck         MCode = 0x2e
	CodeResFromTag           MCode = 0x2f
	CodeAgoraSubscribe       MCode = 0x30
	CodeAgoraUnsubscribe     MCode = 0x31
	CodeIvrMsgNameListLength MCode = 0x32
)

var mcodeNames = map[MCode]string{
	CodeHeartbeat:   "HEARTBEAT",
	CodeRegister:    "REGISTER",
	CodeRegisterAck: "REGISTER_ACK",
	CodeCnisup:      "CNISUP",
	CodeCnisupAck:   "CNISUP_ACK",

	CodeRequestChannel:       "REQUESTCHANNEL",
	CodeRequestChannelAck:    "REQUESTCHANNEL_ACK",
	CodePlay:                 "PLAY",
	CodePlayAck:              "PLAY_ACK",
	CodeCollectDigit:         "COLLECTDIGIT",
	CodeCollectDigitAck:      "COLLECTDIGIT_ACK",
	CodeRecord:               "RECORD",
	CodeRecordAck:            "RECORD_ACK",
	CodeSendFax:              "SENDFAX",
	CodeSendFaxAck:           "SENDFAX_ACK",
	CodeReceiveFax:           "RECEIVEFAX",
	CodeReceiveFaxAck:        "RECEIVEFAX_ACK",
	CodeOpenRtpConnect:       "OPENRTPCONNECT",
	CodeOpenRtpConnectAck:    "OPENRTPCONNECT_ACK",
	CodeSetRtpConnect:        "SETRTPCONNECT",
	CodeSetRtpConnectAck:     "SETRTPCONNECT_ACK",
	CodeCloseRtpConnect:      "CLOSERTPCONNECT",
	CodeCloseRtpConnectAck:   "CLOSERTPCONNECT_ACK",
	CodeCancel:               "CANCEL",
	CodeReleaseChannel:       "RELEASECHANNEL",
	CodeFaxEvent:             "FAXEVENT",
	CodeAudioDetect:          "AUDIODETECT",
	CodeAudioDetectAck:       "AUDIODETECT_ACK",
	CodeDtmfRcv:              "DTMFRCV",
	CodeDtmfRcvAck:           "DTMFRCV_ACK",
	CodeGet3PartyPort:        "GET3PARTYPORT",
	CodeGet3PartyPortAck:     "GET3PARTYPORT_ACK",
	CodeBridge:               "BRIDGE",
	CodeBridgeAck:            "BRIDGE_ACK",
	CodeHttpDownload:         "HTTPDOWNLOAD",
	CodeTHeartbeat:           "THEARTBEAT",
	CodeUnbridge:             "UNBRIDGE",
	CodeResetLifeTimer:       "RESETLIFETIMER",
	CodeInfoDtmf:             "INFODTMF",
	CodeNbupInfo:             "NBUPINFO",
	CodeModifyChannel:        "MODIFYCHANNEL",
	CodeModifyChannelAck:     "MODIFYCHANNEL_ACK",
	CodeAddVideoAck:          "ADDVIDEO_ACK",
	CodeEraseVideoAck:        "ERASEVIDEO_ACK",
	CodeOpenRtmpConnect:      "OPENRTMPCONNECT",
	CodeOpenRtmpConnectAck:   "OPENRTMPCONNECT_ACK",
	CodeCloseRtmpConnect:     "CLOSERTMPCONNECT",
	CodeCloseRtmpConnectAck:  "CLOSERTMPCONNECT_ACK",
	CodeFaceRecog:            "FACERECOG",
	CodeFaceRecogAck:         "FACERECOG_ACK",
	CodeResFromTag:           "RESFROMTAG",
	CodeAgoraSubscribe:       "AGORASUBSCRIBE",
	CodeAgoraUnsubscribe:     "AGORAUNSUBSCRIBE",
	CodeIvrMsgNameListLength: "IVRMSGNAMELISTLENGTH",
}

// Known reports whether the code is in the known message table.
func (c MCode) Known() bool {
	_, ok := mcodeNames[c]
	return ok
}

func (c MCode) String() string {
	if name, ok := mcodeNames[c]; ok {
		return fmt.Sprintf("%s(0x%04x)", name, uint16(c))
	}
	return fmt.Sprintf("Unknown(%d)", uint16(c))
}

// TagCode is a one-byte TLV tag code.
type TagCode uint8

const (
	TagMediaInfo TagCode = 0x01
	TagFilename  TagCode = 0x02
	TagRtpInfo   TagCode = 0x06
)

// Known reports whether the tag code has a recognized type.
func (c TagCode) Known() bool {
	switch c {
	case TagMediaInfo, TagFilename, TagRtpInfo:
		return true
	}
	return false
}

func (c TagCode) String() string {
	switch c {
	case TagMediaInfo:
		return "MEDIAINFO"
	case TagFilename:
		return "FILENAME"
	case TagRtpInfo:
		return "RTPINFO"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(c))
}

// IceType classifies the transport security mode requested for a channel.
type IceType uint8

const (
	IceSimple   IceType = 0 // no stun, dtls, srtp
	IceWebrtc   IceType = 1 // stun + dtls + srtp
	IceStunOnly IceType = 2 // stun without dtls/srtp
)

func (t IceType) String() string {
	switch t {
	case IceSimple:
		return fmt.Sprintf("Simple(%d)", uint8(t))
	case IceWebrtc:
		return fmt.Sprintf("Webrtc(%d)", uint8(t))
	case IceStunOnly:
		return fmt.Sprintf("StunOnly(%d)", uint8(t))
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// MediaType classifies the media carried by a channel.
type MediaType uint8

const (
	MediaAudioOnly  MediaType = 1
	MediaAudioVideo MediaType = 2
	MediaImage      MediaType = 3
	MediaAgora      MediaType = 4
	MediaRtmp       MediaType = 8
	MediaTRtc       MediaType = 9
	MediaTRtcVideo  MediaType = 10
	MediaBRtc       MediaType = 11
	MediaVideoOnly  MediaType = 12
	MediaPRtc       MediaType = 13
)

var mediaTypeNames = map[MediaType]string{
	MediaAudioOnly:  "AudioOnly",
	MediaAudioVideo: "AudioVideo",
	MediaImage:      "Image",
	MediaAgora:      "Agora",
	MediaRtmp:       "Rtmp",
	MediaTRtc:       "TRtc",
	MediaTRtcVideo:  "TRtcVideo",
	MediaBRtc:       "BRtc",
	MediaVideoOnly:  "VideoOnly",
	MediaPRtc:       "PRtc",
}

func (t MediaType) String() string {
	if name, ok := mediaTypeNames[t]; ok {
		return fmt.Sprintf("%s(%d)", name, uint8(t))
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// RtpMediaType identifies the stream kind inside an RtpInfo element.
type RtpMediaType uint8

const (
	RtpMediaAudio RtpMediaType = 0
	RtpMediaVideo RtpMediaType = 1
	RtpMediaT38   RtpMediaType = 2
)

func (t RtpMediaType) String() string {
	switch t {
	case RtpMediaAudio:
		return fmt.Sprintf("Audio(%d)", uint8(t))
	case RtpMediaVideo:
		return fmt.Sprintf("Video(%d)", uint8(t))
	case RtpMediaT38:
		return fmt.Sprintf("T38(%d)", uint8(t))
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}
