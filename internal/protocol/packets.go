package protocol

import "fmt"

const (
	// Magic is the protocol version byte carried by Hello and Goodbye.
	Magic byte = 0x42

	// MaxDatagramSize bounds every datagram handled by either side.
	MaxDatagramSize = 128
)

// Tag is the leading packet discriminator byte.
type Tag uint8

const (
	TagHello   Tag = 1
	TagSetMode Tag = 2
	TagData    Tag = 3
	TagGoodbye Tag = 4
	TagAck     Tag = 5
)

func (t Tag) String() string {
	switch t {
	case TagHello:
		return "hello"
	case TagSetMode:
		return "set_mode"
	case TagData:
		return "data"
	case TagGoodbye:
		return "goodbye"
	case TagAck:
		return "ack"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// DataMode selects the Data/Goodbye schema family for a session. It is
// negotiated once per session and never renegotiated.
type DataMode uint8

const (
	ModeNovelty      DataMode = 1
	ModeNoveltyBeats DataMode = 2
)

func (m DataMode) Valid() bool {
	return m == ModeNovelty || m == ModeNoveltyBeats
}

func (m DataMode) String() string {
	switch m {
	case ModeNovelty:
		return "novelty"
	case ModeNoveltyBeats:
		return "novelty_beats"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// AckStatus is the per-message acknowledgment outcome.
type AckStatus uint8

const (
	AckOk    AckStatus = 1
	AckQuit  AckStatus = 2
	AckAbort AckStatus = 3
)

func (s AckStatus) Valid() bool {
	return s == AckOk || s == AckQuit || s == AckAbort
}

func (s AckStatus) String() string {
	switch s {
	case AckOk:
		return "ok"
	case AckQuit:
		return "quit"
	case AckAbort:
		return "abort"
	default:
		return fmt.Sprintf("ack(%d)", uint8(s))
	}
}

// Hello is the rendezvous packet. The server echoes it back verbatim so
// the remote can verify both the version byte and its own nonce.
type Hello struct {
	Magic  byte
	Random byte
}

// SetMode fixes the schema family for the rest of the session.
type SetMode struct {
	Mode DataMode
}

// Data carries one telemetry sample. Beat is only on the wire under
// ModeNoveltyBeats; under ModeNovelty it must stay false.
type Data struct {
	Value float64
	Peak  float64
	Beat  bool
}

// Goodbye requests session teardown.
type Goodbye struct {
	Magic byte
	Force bool
}

// Ack completes one request/reply exchange.
type Ack struct {
	Status AckStatus
}
