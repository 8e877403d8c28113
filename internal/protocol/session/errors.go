package session

import "errors"

var (
	ErrHandshakeFailed = errors.New("session: handshake failed")
	ErrServerAborted   = errors.New("session: server aborted")
	ErrAlreadyStopped  = errors.New("session: already stopped")
	ErrZeroPeak        = errors.New("session: data packet with zero peak")
)
