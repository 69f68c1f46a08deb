// Package conn drives a connection through the protocol state machine:
// handshake, then status or login, then play. The play loop answers the
// packets that demand a response and forwards everything else to the
// gamestate projector.
package conn

import (
	"errors"
	"fmt"
	"log/slog"
	stdnet "net"
	"strconv"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

// State represents the connection state.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StatePlay
	StateClosed
)

// ErrProtocol marks a packet that is not legal in the current state, or an
// out-of-order handshake or login exchange.
var ErrProtocol = errors.New("protocol violation")

// DisconnectError carries the server-issued reason for a graceful
// disconnect. It is a termination, not a failure.
type DisconnectError struct {
	Reason string
}

func (e *DisconnectError) Error() string {
	return "disconnected by server: " + e.Reason
}

// Connection manages a single client connection through the state machine.
type Connection struct {
	conn      stdnet.Conn
	transport *mcnet.Transport
	log       *slog.Logger

	host string
	port uint16

	state    State
	username string
}

// Dial opens a TCP connection to the server. The connection starts in the
// handshake state.
func Dial(host string, port uint16, log *slog.Logger) (*Connection, error) {
	conn, err := stdnet.Dial("tcp", stdnet.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", host, port, err)
	}
	return NewConnection(conn, host, port, log), nil
}

// NewConnection wraps an established byte stream.
func NewConnection(conn stdnet.Conn, host string, port uint16, log *slog.Logger) *Connection {
	return &Connection{
		conn:      conn,
		transport: mcnet.NewTransport(conn),
		log:       log.With("addr", conn.RemoteAddr().String()),
		host:      host,
		port:      port,
		state:     StateHandshake,
	}
}

// Close tears the connection down. Safe to call twice.
func (c *Connection) Close() error {
	if c.state == StateClosed {
		return nil
	}
	c.state = StateClosed
	return c.conn.Close()
}

// State returns the current protocol state.
func (c *Connection) State() State {
	return c.state
}

// Handshake sends the opening frame and transitions to the requested state.
// The server does not answer a handshake.
func (c *Connection) Handshake(protocol int32, nextState int32) error {
	if c.state != StateHandshake {
		return fmt.Errorf("handshake in state %d: %w", c.state, ErrProtocol)
	}
	if nextState != packet.NextStateStatus && nextState != packet.NextStateLogin {
		return fmt.Errorf("handshake next state %d: %w", nextState, ErrProtocol)
	}

	err := c.writePacket(&packet.Handshake{
		ProtocolVersion: protocol,
		ServerAddress:   c.host,
		ServerPort:      c.port,
		NextState:       nextState,
	})
	if err != nil {
		return fmt.Errorf("write handshake: %w", err)
	}

	switch nextState {
	case packet.NextStateStatus:
		c.state = StateStatus
	case packet.NextStateLogin:
		c.state = StateLogin
	}
	c.log.Debug("handshake sent", "protocol", protocol, "nextState", nextState)
	return nil
}

func (c *Connection) writePacket(p mcnet.Packet) error {
	data, err := mcnet.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal packet 0x%02X: %w", p.PacketID(), err)
	}
	return c.transport.WritePacket(p.PacketID(), data)
}
