// internal/uart/session.go
package uart

import (
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
)

// State is the session state. There is no terminal state.
type State uint8

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "Connected"
	}
	return "Disconnected"
}

// Session owns one serial connection and the remembered port used for
// auto-reconnect.
//
// Invariant: conn is non-nil iff the session is Connected.
// The remembered port and baud survive every disconnect.
// Not safe for concurrent use.
type Session struct {
	open Opener
	list Lister
	log  zerolog.Logger

	conn io.WriteCloser
	path string
	baud int

	rememberedPath string
	rememberedBaud int
}

func NewSession(open Opener, list Lister, log zerolog.Logger) *Session {
	return &Session{open: open, list: list, log: log}
}

func (s *Session) State() State {
	if s.conn != nil {
		return Connected
	}
	return Disconnected
}

func (s *Session) Connected() bool {
	return s.conn != nil
}

// Port returns the connected path and baud; empty when disconnected.
func (s *Session) Port() (string, int) {
	if s.conn == nil {
		return "", 0
	}
	return s.path, s.baud
}

// Remembered returns the last successfully connected port.
func (s *Session) Remembered() (path string, baud int, ok bool) {
	return s.rememberedPath, s.rememberedBaud, s.rememberedPath != ""
}

// ListPorts returns the currently available ports.
func (s *Session) ListPorts() ([]Port, error) {
	return s.list()
}

// Connect opens path at baud. On success the port is remembered.
// On failure the remembered port is unchanged.
// An open connection is closed first, so the same port can be reopened.
func (s *Session) Connect(path string, baud int) error {
	if path == "" {
		return fmt.Errorf("%w: empty port path", ErrPortUnavailable)
	}

	if s.conn != nil {
		_ = s.drop()
	}

	conn, err := s.open(path, baud)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPortUnavailable, path, err)
	}

	s.conn = conn
	s.path, s.baud = path, baud
	s.rememberedPath, s.rememberedBaud = path, baud

	s.log.Info().Str("port", path).Int("baud", baud).Msg("serial connected")
	return nil
}

// Disconnect closes the connection. Memory is kept.
func (s *Session) Disconnect() error {
	if s.conn == nil {
		return nil
	}
	err := s.drop()
	s.log.Info().Str("port", s.rememberedPath).Msg("serial disconnected")
	return err
}

// AutoReconnect makes ONE attempt to reopen the remembered port, and only
// if it is currently listed. Every failure is absorbed.
func (s *Session) AutoReconnect() bool {
	if s.conn != nil || s.rememberedPath == "" {
		return false
	}

	ports, err := s.list()
	if err != nil {
		s.log.Debug().Err(err).Msg("auto-reconnect: port listing failed")
		return false
	}
	if !slices.ContainsFunc(ports, func(p Port) bool { return p.Path == s.rememberedPath }) {
		return false
	}

	if err := s.Connect(s.rememberedPath, s.rememberedBaud); err != nil {
		s.log.Debug().
			Err(err).
			Str("port", s.rememberedPath).
			Str("reason", reason(err)).
			Msg("auto-reconnect failed")
		return false
	}
	return true
}

// Send writes b in one write. Any failure drops the connection; the frame
// is not retried.
func (s *Session) Send(b []byte) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	n, err := s.conn.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		path := s.path
		_ = s.drop()
		s.log.Warn().
			Err(err).
			Str("port", path).
			Str("reason", reason(err)).
			Msg("serial write failed, disconnected")
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func (s *Session) drop() error {
	err := s.conn.Close()
	s.conn = nil
	s.path, s.baud = "", 0
	return err
}
