// Package session implements the control-node side of the CN/MS exchange: a
// unixgram socket bound to the node's well-known path, the
// CNISUP/REGISTER registration handshake, and the steady-state receive loop
// that dispatches peer messages.
package session

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/simon-fu/cin-rms/internal/log"
	"github.com/simon-fu/cin-rms/internal/vnwire"
)

// DefaultBufferSize fits any datagram the peer produces.
const DefaultBufferSize = 1700

// Config locates the socket directory and identifies this control node.
type Config struct {
	SocketDir  string `mapstructure:"socket_dir" yaml:"socket_dir"`
	NodeID     uint32 `mapstructure:"node_id" yaml:"node_id"`
	BufferSize int    `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// CNPath returns the well-known path this node binds.
func (c Config) CNPath() string {
	return filepath.Join(c.SocketDir, fmt.Sprintf("mscn%d", c.NodeID))
}

// MSPath returns the media server's well-known path.
func (c Config) MSPath() string {
	return filepath.Join(c.SocketDir, "msvn")
}

// FsmID derives the session correlation id from the node id.
func (c Config) FsmID() uint32 {
	return c.NodeID * 1_000_000
}

// Session drives one CN registration and its steady-state message loop. It
// exclusively owns the socket and both scratch buffers; the receive buffer is
// reused in place, so parsed packet views never outlive one loop iteration.
type Session struct {
	cfg     Config
	conn    *net.UnixConn
	msAddr  *net.UnixAddr
	sendBuf []byte
	recvBuf []byte
	logger  log.Logger

	// handle is invoked for every packet received after the handshake.
	handle func(vnwire.Packet)
}

// New binds the CN socket, removing a stale socket file first.
func New(cfg Config) (*Session, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}

	cnPath := cfg.CNPath()
	if err := os.RemoveAll(cnPath); err != nil {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", cnPath, err)
	}
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: cnPath, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket %s: %w", cnPath, err)
	}

	s := &Session{
		cfg:     cfg,
		conn:    conn,
		msAddr:  &net.UnixAddr{Name: cfg.MSPath(), Net: "unixgram"},
		sendBuf: make([]byte, cfg.BufferSize),
		recvBuf: make([]byte, cfg.BufferSize),
		logger:  log.GetLogger().WithField("cn_id", cfg.NodeID),
	}
	s.handle = s.logPacket
	return s, nil
}

// SetHandler replaces the steady-state dispatch function. The packet passed
// to the handler borrows the session receive buffer and must not be retained
// past the call.
func (s *Session) SetHandler(fn func(vnwire.Packet)) {
	s.handle = fn
}

// Close releases the socket and removes the socket file.
func (s *Session) Close() error {
	err := s.conn.Close()
	os.RemoveAll(s.cfg.CNPath())
	return err
}

// Run executes the registration handshake and then the steady-state loop.
// It returns when ctx is cancelled or a handshake step fails; the underlying
// socket stays owned by the Session and is released by Close.
//
// Handshake: send CNISUP, require CNISUP_ACK, await REGISTER, answer
// REGISTER_ACK. Any parse failure or unexpected code before the steady state
// is fatal to the session attempt.
func (s *Session) Run(ctx context.Context) error {
	// Unblock pending reads when the host cancels.
	stop := context.AfterFunc(ctx, func() {
		s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := s.handshake(ctx); err != nil {
		return err
	}

	s.logger.Info("session established")

	for {
		pkt, err := s.recvPacket(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Per-message decode failures do not end an established
			// session; transport failures do.
			if _, ok := err.(*decodeError); ok {
				s.logger.WithError(err).Warn("dropping malformed packet")
				continue
			}
			return err
		}
		s.handle(pkt)
	}
}

func (s *Session) handshake(ctx context.Context) error {
	header := vnwire.Header{
		Code:  vnwire.CodeCnisup,
		FsmID: s.cfg.FsmID(),
	}
	if err := s.sendPacket(header, nil); err != nil {
		return err
	}
	s.logger.WithField("header", header).Debug("sent CNISUP")

	pkt, err := s.recvPacket(ctx)
	if err != nil {
		return fmt.Errorf("awaiting CNISUP_ACK: %w", err)
	}
	if pkt.Code() != vnwire.CodeCnisupAck {
		return fmt.Errorf("expect CNISUP_ACK but got %s: %w", pkt.Code(), vnwire.ErrCodeMismatch)
	}
	s.logger.WithField("packet", pkt).Debug("received CNISUP_ACK")

	pkt, err = s.recvPacket(ctx)
	if err != nil {
		return fmt.Errorf("awaiting REGISTER: %w", err)
	}
	if pkt.Code() != vnwire.CodeRegister {
		return fmt.Errorf("expect REGISTER but got %s: %w", pkt.Code(), vnwire.ErrCodeMismatch)
	}

	reg, err := vnwire.ParseRegister(pkt.Payload())
	if err != nil {
		return fmt.Errorf("parse register: %w", err)
	}
	s.logger.WithField("register", reg).Info("media server registered")

	ack := vnwire.Header{
		Code:  vnwire.CodeRegisterAck,
		FsmID: s.cfg.FsmID(),
	}
	if err := s.sendPacket(ack, []byte{0}); err != nil {
		return err
	}
	s.logger.WithField("header", ack).Debug("sent REGISTER_ACK")

	return nil
}

// sendPacket serializes header+payload into the send buffer and hands it to
// the transport before returning.
func (s *Session) sendPacket(header vnwire.Header, payload []byte) error {
	n, err := header.WriteTo(s.sendBuf, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", header.Code, err)
	}
	if _, err := s.conn.WriteToUnix(s.sendBuf[:n], s.msAddr); err != nil {
		return fmt.Errorf("sendto %s: %w", s.msAddr.Name, err)
	}
	return nil
}

// recvPacket blocks for the next datagram and validates its envelope. The
// returned Packet borrows the receive buffer and is valid until the next
// recvPacket call.
func (s *Session) recvPacket(ctx context.Context) (vnwire.Packet, error) {
	n, from, err := s.conn.ReadFromUnix(s.recvBuf)
	if err != nil {
		if ctx.Err() != nil {
			return vnwire.Packet{}, ctx.Err()
		}
		return vnwire.Packet{}, fmt.Errorf("recvfrom: %w", err)
	}
	s.logger.WithFields(map[string]interface{}{
		"from":  from.Name,
		"bytes": n,
	}).Debug("received datagram")

	pkt, err := vnwire.ParsePacket(s.recvBuf[:n])
	if err != nil {
		return vnwire.Packet{}, &decodeError{err: err}
	}
	return pkt, nil
}

func (s *Session) logPacket(pkt vnwire.Packet) {
	s.logger.Info(vnwire.RenderPacket(pkt))
}

// decodeError separates codec failures from transport failures so the steady
// loop can drop a bad datagram without ending the session.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }
