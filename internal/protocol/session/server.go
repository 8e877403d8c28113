package session

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/wavectl/internal/mailbox"
	"github.com/danmuck/wavectl/internal/observability"
	"github.com/danmuck/wavectl/internal/protocol"
)

// ServerConfig configures the session server.
type ServerConfig struct {
	ListenAddr string
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{ListenAddr: ":20200"}
}

// Server accepts one remote at a time over UDP and forwards decoded
// telemetry into the actuation mailbox. Datagrams from any address
// other than the bound peer are ignored until the session ends.
type Server struct {
	conn *net.UDPConn
	box  *mailbox.Mailbox
	log  zerolog.Logger

	peer *net.UDPAddr
	mode protocol.DataMode
	buf  [protocol.MaxDatagramSize]byte
}

func NewServer(cfg ServerConfig, box *mailbox.Mailbox, log zerolog.Logger) (*Server, error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("session: resolve %s: %w", cfg.ListenAddr, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("session: listen %s: %w", cfg.ListenAddr, err)
	}
	return &Server{
		conn: conn,
		box:  box,
		log:  log.With().Str("component", "session").Logger(),
	}, nil
}

// LocalAddr returns the bound UDP address.
func (s *Server) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Serve runs sessions back to back until ctx ends or the mailbox
// closes. Between sessions the scheduler is put on standby.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.conn.Close()
	})
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.box.Update(mailbox.Control{Kind: mailbox.Standby}); err != nil {
			return fmt.Errorf("session: standby: %w", err)
		}
		if err := s.serveSession(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// Close releases the socket. Closing while a peer is still bound is a
// contract violation by the caller and is logged, not escalated. A
// socket already closed by a cancelled Serve is not an error.
func (s *Server) Close() error {
	if s.peer != nil {
		s.log.Warn().Stringer("peer", s.peer).Msg("closing with a bound peer, teardown skipped")
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// serveSession runs one full session: bind, handshake, stream, unbind.
// Validation failures abort the session and return nil so the caller
// goes back to listening; socket and mailbox errors are returned.
func (s *Server) serveSession() error {
	hello, err := s.waitForRemote()
	if err != nil {
		return err
	}

	sid := uuid.NewString()
	log := s.log.With().Str("session", sid).Stringer("peer", s.peer).Logger()
	log.Info().Msg("peer bound")

	// Echo the hello back verbatim to complete the rendezvous.
	if err := s.send(protocol.EncodeHello(hello)); err != nil {
		return err
	}

	buf, err := s.recvFromPeer()
	if err != nil {
		return err
	}
	setMode, err := protocol.DecodeSetMode(buf)
	if err != nil {
		log.Warn().Err(err).Msg("bad set_mode, aborting session")
		return s.abort()
	}
	s.mode = setMode.Mode
	log.Info().Stringer("mode", s.mode).Msg("mode negotiated")
	observability.RecordSessionStart()

	if err := s.box.Update(mailbox.Control{Kind: mailbox.RandomRunner}); err != nil {
		return fmt.Errorf("session: runner select: %w", err)
	}

	for {
		buf, err := s.recvFromPeer()
		if err != nil {
			return err
		}
		done, err := s.handleStreaming(log, buf)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handleStreaming processes one datagram in the Streaming state. It
// reports done=true when the session ended (goodbye or abort).
func (s *Server) handleStreaming(log zerolog.Logger, buf []byte) (bool, error) {
	tag, err := protocol.PeekTag(buf)
	if err != nil {
		log.Warn().Err(err).Msg("unreadable datagram, aborting session")
		return true, s.abort()
	}
	observability.RecordDatagram(tag.String())

	switch tag {
	case protocol.TagData:
		data, err := protocol.DecodeData(s.mode, buf)
		if err != nil {
			log.Warn().Err(err).Msg("bad data packet, aborting session")
			return true, s.abort()
		}
		if data.Peak == 0 {
			log.Warn().Err(ErrZeroPeak).Msg("aborting session")
			return true, s.abort()
		}
		ctl := mailbox.Control{
			Kind:    mailbox.Analysis,
			Novelty: data.Value / data.Peak,
			IsBeat:  data.Beat,
		}
		if err := s.box.Update(ctl); err != nil {
			return true, fmt.Errorf("session: forward analysis: %w", err)
		}
		return false, s.sendAck(protocol.AckOk)

	case protocol.TagGoodbye:
		goodbye, err := protocol.DecodeGoodbye(buf)
		if err != nil {
			log.Warn().Err(err).Msg("bad goodbye, aborting session")
			return true, s.abort()
		}
		log.Info().Bool("force", goodbye.Force).Msg("goodbye, session closed")
		if err := s.sendAck(protocol.AckQuit); err != nil {
			return true, err
		}
		s.unbind()
		return true, nil

	default:
		log.Warn().Stringer("tag", tag).Msg("unexpected packet, aborting session")
		return true, s.abort()
	}
}

// waitForRemote blocks until a datagram arrives, binds its sender and
// validates it as a Hello. A malformed first datagram aborts without
// establishing a session.
func (s *Server) waitForRemote() (protocol.Hello, error) {
	for {
		n, peer, err := s.conn.ReadFromUDP(s.buf[:])
		if err != nil {
			return protocol.Hello{}, fmt.Errorf("session: recv: %w", err)
		}
		s.peer = peer
		hello, err := protocol.DecodeHello(s.buf[:n])
		if err != nil {
			s.log.Warn().Err(err).Stringer("peer", peer).Msg("bad hello, rejecting peer")
			if err := s.abort(); err != nil {
				return protocol.Hello{}, err
			}
			continue
		}
		return hello, nil
	}
}

// recvFromPeer reads the next datagram from the bound peer, silently
// dropping traffic from anyone else.
func (s *Server) recvFromPeer() ([]byte, error) {
	for {
		n, from, err := s.conn.ReadFromUDP(s.buf[:])
		if err != nil {
			return nil, fmt.Errorf("session: recv: %w", err)
		}
		if s.peer == nil || from.String() != s.peer.String() {
			s.log.Debug().Stringer("from", from).Msg("dropping datagram from unbound address")
			continue
		}
		return s.buf[:n], nil
	}
}

func (s *Server) send(buf []byte) error {
	if _, err := s.conn.WriteToUDP(buf, s.peer); err != nil {
		return fmt.Errorf("session: send: %w", err)
	}
	return nil
}

func (s *Server) sendAck(status protocol.AckStatus) error {
	buf, err := protocol.EncodeAck(protocol.Ack{Status: status})
	if err != nil {
		return err
	}
	return s.send(buf)
}

// abort sends Ack::Abort and unbinds the peer. The process stays alive
// and the caller returns to listening.
func (s *Server) abort() error {
	observability.RecordAbort()
	if err := s.sendAck(protocol.AckAbort); err != nil {
		return err
	}
	s.unbind()
	return nil
}

func (s *Server) unbind() {
	s.peer = nil
	s.mode = 0
}
