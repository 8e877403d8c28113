package protocol

import (
	"encoding/binary"
	"math"
)

// Packet sizes in bytes, tag included.
const (
	helloSize   = 3
	setModeSize = 2
	goodbyeSize = 3
	ackSize     = 2

	dataNoveltySize      = 17
	dataNoveltyBeatsSize = 18
)

// EncodeHello serializes h. The magic byte is written as given so the
// server can echo a Hello back verbatim.
func EncodeHello(h Hello) []byte {
	return []byte{byte(TagHello), h.Magic, h.Random}
}

// EncodeSetMode serializes m.
func EncodeSetMode(m SetMode) ([]byte, error) {
	if !m.Mode.Valid() {
		return nil, ErrInvalidMode
	}
	return []byte{byte(TagSetMode), byte(m.Mode)}, nil
}

// EncodeData serializes d under the session's negotiated mode. The beat
// flag is only carried by the ModeNoveltyBeats shape.
func EncodeData(mode DataMode, d Data) ([]byte, error) {
	switch mode {
	case ModeNovelty:
		buf := make([]byte, dataNoveltySize)
		buf[0] = byte(TagData)
		binary.BigEndian.PutUint64(buf[1:9], math.Float64bits(d.Value))
		binary.BigEndian.PutUint64(buf[9:17], math.Float64bits(d.Peak))
		return buf, nil
	case ModeNoveltyBeats:
		buf := make([]byte, dataNoveltyBeatsSize)
		buf[0] = byte(TagData)
		binary.BigEndian.PutUint64(buf[1:9], math.Float64bits(d.Value))
		binary.BigEndian.PutUint64(buf[9:17], math.Float64bits(d.Peak))
		buf[17] = encodeBool(d.Beat)
		return buf, nil
	default:
		return nil, ErrInvalidMode
	}
}

// EncodeGoodbye serializes g.
func EncodeGoodbye(g Goodbye) []byte {
	return []byte{byte(TagGoodbye), g.Magic, encodeBool(g.Force)}
}

// EncodeAck serializes a.
func EncodeAck(a Ack) ([]byte, error) {
	if !a.Status.Valid() {
		return nil, ErrInvalidAckStatus
	}
	return []byte{byte(TagAck), byte(a.Status)}, nil
}

func encodeBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
