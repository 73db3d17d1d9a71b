package vnwire

import "errors"

// Decode error taxonomy. Parsers wrap these with the message and field that
// failed, so callers can both print a precise diagnosis and branch with
// errors.Is. Unknown message or tag codes are deliberately not errors; they
// classify via MCode.Known / TagCode.Known instead.
var (
	// ErrTruncated means the buffer is shorter than the fixed minimum a
	// structure requires.
	ErrTruncated = errors.New("buffer too short")

	// ErrLengthOverrun means a declared length field exceeds the bytes
	// actually available.
	ErrLengthOverrun = errors.New("declared length exceeds buffer")

	// ErrNoTerminator means a required null-terminated string has no null
	// byte in the remaining buffer.
	ErrNoTerminator = errors.New("missing null terminator")

	// ErrTagMismatch means a mandatory nested tag is not of the expected type.
	ErrTagMismatch = errors.New("unexpected tag type")

	// ErrCodeMismatch means a packet carries a different message code than
	// the protocol state requires.
	ErrCodeMismatch = errors.New("unexpected message code")
)
