package protocol

import "errors"

var (
	ErrShortPacket      = errors.New("protocol: short packet")
	ErrInvalidLength    = errors.New("protocol: invalid packet length")
	ErrUnknownTag       = errors.New("protocol: unknown packet tag")
	ErrTagMismatch      = errors.New("protocol: unexpected packet tag")
	ErrInvalidMagic     = errors.New("protocol: invalid magic")
	ErrInvalidMode      = errors.New("protocol: invalid data mode")
	ErrInvalidBool      = errors.New("protocol: invalid bool value")
	ErrInvalidAckStatus = errors.New("protocol: invalid ack status")
)
