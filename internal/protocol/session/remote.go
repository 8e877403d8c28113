package session

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/wavectl/internal/protocol"
)

// RemoteConfig configures the remote (telemetry-sending) role.
type RemoteConfig struct {
	ServerAddr string
	Mode       protocol.DataMode
	// NoAck disables the per-send blocking wait for an acknowledgment.
	NoAck bool
}

func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		ServerAddr: "127.0.0.1:20200",
		Mode:       protocol.ModeNoveltyBeats,
	}
}

// Remote is one side of a telemetry session: it handshakes, fixes the
// data mode and then streams samples one in-flight message at a time.
type Remote struct {
	conn    *net.UDPConn
	mode    protocol.DataMode
	noAck   bool
	log     zerolog.Logger
	rng     *rand.Rand
	stopped bool

	buf [protocol.MaxDatagramSize]byte
}

// Dial connects the datagram socket. No packet is sent until
// Handshake.
func Dial(cfg RemoteConfig, log zerolog.Logger) (*Remote, error) {
	if !cfg.Mode.Valid() {
		return nil, protocol.ErrInvalidMode
	}
	addr, err := net.ResolveUDPAddr("udp", cfg.ServerAddr)
	if err != nil {
		return nil, fmt.Errorf("session: resolve %s: %w", cfg.ServerAddr, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("session: dial %s: %w", cfg.ServerAddr, err)
	}
	return &Remote{
		conn:  conn,
		mode:  cfg.Mode,
		noAck: cfg.NoAck,
		log:   log.With().Str("component", "session").Logger(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Handshake sends the Hello, verifies the server's echo byte for byte
// and fixes the data mode. A mismatched echo fails the session before
// any telemetry is sent.
func (r *Remote) Handshake() error {
	hello := protocol.Hello{
		Magic:  protocol.Magic,
		Random: byte(r.rng.Intn(256)),
	}
	if err := r.send(protocol.EncodeHello(hello)); err != nil {
		return err
	}

	buf, err := r.recv()
	if err != nil {
		return err
	}
	echo, err := protocol.DecodeHello(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}
	if echo.Magic != hello.Magic || echo.Random != hello.Random {
		return fmt.Errorf("%w: echo mismatch", ErrHandshakeFailed)
	}

	mode, err := protocol.EncodeSetMode(protocol.SetMode{Mode: r.mode})
	if err != nil {
		return err
	}
	if err := r.send(mode); err != nil {
		return err
	}
	r.log.Info().Stringer("mode", r.mode).Msg("handshake complete")
	return nil
}

// Send streams one telemetry sample. Unless NoAck is configured it
// blocks until the server acknowledges; anything but Ack::Ok is fatal
// to the session.
func (r *Remote) Send(d protocol.Data) error {
	if r.stopped {
		return ErrAlreadyStopped
	}
	buf, err := protocol.EncodeData(r.mode, d)
	if err != nil {
		return err
	}
	if err := r.send(buf); err != nil {
		return err
	}
	if r.noAck {
		return nil
	}
	ack, err := r.recvAck()
	if err != nil {
		return err
	}
	if ack.Status != protocol.AckOk {
		return fmt.Errorf("%w: %s", ErrServerAborted, ack.Status)
	}
	return nil
}

// Stop performs the teardown exchange: Goodbye out, Ack::Quit back.
func (r *Remote) Stop(force bool) error {
	if r.stopped {
		return ErrAlreadyStopped
	}
	if err := r.send(protocol.EncodeGoodbye(protocol.Goodbye{Magic: protocol.Magic, Force: force})); err != nil {
		return err
	}
	ack, err := r.recvAck()
	if err != nil {
		return err
	}
	if ack.Status != protocol.AckQuit {
		return fmt.Errorf("%w: expected quit, got %s", ErrServerAborted, ack.Status)
	}
	r.stopped = true
	r.log.Info().Msg("session stopped")
	return nil
}

// Close releases the socket. Closing without a completed Stop is a
// contract violation by the caller and is logged, not escalated.
func (r *Remote) Close() error {
	if !r.stopped {
		r.log.Warn().Msg("closing without a completed stop")
	}
	return r.conn.Close()
}

func (r *Remote) send(buf []byte) error {
	if _, err := r.conn.Write(buf); err != nil {
		return fmt.Errorf("session: send: %w", err)
	}
	return nil
}

func (r *Remote) recv() ([]byte, error) {
	n, err := r.conn.Read(r.buf[:])
	if err != nil {
		return nil, fmt.Errorf("session: recv: %w", err)
	}
	return r.buf[:n], nil
}

func (r *Remote) recvAck() (protocol.Ack, error) {
	buf, err := r.recv()
	if err != nil {
		return protocol.Ack{}, err
	}
	return protocol.DecodeAck(buf)
}
