package protocol

import (
	"encoding/binary"
	"math"
)

// PeekTag returns the packet tag without decoding the body.
func PeekTag(buf []byte) (Tag, error) {
	if len(buf) < 1 {
		return 0, ErrShortPacket
	}
	t := Tag(buf[0])
	switch t {
	case TagHello, TagSetMode, TagData, TagGoodbye, TagAck:
		return t, nil
	default:
		return 0, ErrUnknownTag
	}
}

// DecodeHello validates and decodes a Hello packet. The magic byte must
// equal the protocol version byte.
func DecodeHello(buf []byte) (Hello, error) {
	if err := checkTag(buf, TagHello); err != nil {
		return Hello{}, err
	}
	if len(buf) != helloSize {
		return Hello{}, ErrInvalidLength
	}
	if buf[1] != Magic {
		return Hello{}, ErrInvalidMagic
	}
	return Hello{Magic: buf[1], Random: buf[2]}, nil
}

// DecodeSetMode validates and decodes a SetMode packet.
func DecodeSetMode(buf []byte) (SetMode, error) {
	if err := checkTag(buf, TagSetMode); err != nil {
		return SetMode{}, err
	}
	if len(buf) != setModeSize {
		return SetMode{}, ErrInvalidLength
	}
	mode := DataMode(buf[1])
	if !mode.Valid() {
		return SetMode{}, ErrInvalidMode
	}
	return SetMode{Mode: mode}, nil
}

// DecodeData validates and decodes a Data packet under the session's
// negotiated mode. A payload shaped for the other schema family fails
// the length check here rather than misparse.
func DecodeData(mode DataMode, buf []byte) (Data, error) {
	if err := checkTag(buf, TagData); err != nil {
		return Data{}, err
	}
	switch mode {
	case ModeNovelty:
		if len(buf) != dataNoveltySize {
			return Data{}, ErrInvalidLength
		}
		return Data{
			Value: math.Float64frombits(binary.BigEndian.Uint64(buf[1:9])),
			Peak:  math.Float64frombits(binary.BigEndian.Uint64(buf[9:17])),
		}, nil
	case ModeNoveltyBeats:
		if len(buf) != dataNoveltyBeatsSize {
			return Data{}, ErrInvalidLength
		}
		beat, err := decodeBool(buf[17])
		if err != nil {
			return Data{}, err
		}
		return Data{
			Value: math.Float64frombits(binary.BigEndian.Uint64(buf[1:9])),
			Peak:  math.Float64frombits(binary.BigEndian.Uint64(buf[9:17])),
			Beat:  beat,
		}, nil
	default:
		return Data{}, ErrInvalidMode
	}
}

// DecodeGoodbye validates and decodes a Goodbye packet. The magic byte
// must equal the protocol version byte.
func DecodeGoodbye(buf []byte) (Goodbye, error) {
	if err := checkTag(buf, TagGoodbye); err != nil {
		return Goodbye{}, err
	}
	if len(buf) != goodbyeSize {
		return Goodbye{}, ErrInvalidLength
	}
	if buf[1] != Magic {
		return Goodbye{}, ErrInvalidMagic
	}
	force, err := decodeBool(buf[2])
	if err != nil {
		return Goodbye{}, err
	}
	return Goodbye{Magic: buf[1], Force: force}, nil
}

// DecodeAck validates and decodes an Ack packet.
func DecodeAck(buf []byte) (Ack, error) {
	if err := checkTag(buf, TagAck); err != nil {
		return Ack{}, err
	}
	if len(buf) != ackSize {
		return Ack{}, ErrInvalidLength
	}
	status := AckStatus(buf[1])
	if !status.Valid() {
		return Ack{}, ErrInvalidAckStatus
	}
	return Ack{Status: status}, nil
}

func checkTag(buf []byte, want Tag) error {
	got, err := PeekTag(buf)
	if err != nil {
		return err
	}
	if got != want {
		return ErrTagMismatch
	}
	return nil
}

func decodeBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}
