package conn

import (
	"encoding/json"
	"fmt"
	"time"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

// ServerStatus is the decoded server list response. Raw carries the full
// JSON for fields the struct does not model.
type ServerStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description json.RawMessage `json:"description"`

	Raw string `json:"-"`
}

// Status requests the server list JSON. Valid only in the status state.
func (c *Connection) Status() (*ServerStatus, error) {
	if c.state != StateStatus {
		return nil, fmt.Errorf("status request in state %d: %w", c.state, ErrProtocol)
	}

	if err := c.writePacket(&packet.StatusRequest{}); err != nil {
		return nil, fmt.Errorf("write status request: %w", err)
	}

	id, data, err := c.transport.ReadPacket()
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	if id != packet.IDStatusResponse {
		return nil, fmt.Errorf("expected status response 0x00, got 0x%02X: %w", id, ErrProtocol)
	}

	var resp packet.StatusResponse
	if err := mcnet.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal status response: %w", err)
	}

	status := &ServerStatus{Raw: resp.JSONResponse}
	if err := json.Unmarshal([]byte(resp.JSONResponse), status); err != nil {
		// The raw payload is still useful to the caller.
		c.log.Warn("status JSON does not decode", "error", err)
	}
	return status, nil
}

// Ping measures the server round trip. The payload is a timestamp the
// server echoes verbatim; latency is measured against it.
func (c *Connection) Ping() (time.Duration, error) {
	if c.state != StateStatus {
		return 0, fmt.Errorf("ping in state %d: %w", c.state, ErrProtocol)
	}

	sent := time.Now()
	if err := c.writePacket(&packet.PingRequest{Payload: sent.UnixMilli()}); err != nil {
		return 0, fmt.Errorf("write ping request: %w", err)
	}

	id, data, err := c.transport.ReadPacket()
	if err != nil {
		return 0, fmt.Errorf("read ping response: %w", err)
	}
	if id != packet.IDPingResponse {
		return 0, fmt.Errorf("expected ping response 0x01, got 0x%02X: %w", id, ErrProtocol)
	}

	var pong packet.PingResponse
	if err := mcnet.Unmarshal(data, &pong); err != nil {
		return 0, fmt.Errorf("unmarshal ping response: %w", err)
	}
	if pong.Payload != sent.UnixMilli() {
		return 0, fmt.Errorf("ping echo %d does not match %d: %w", pong.Payload, sent.UnixMilli(), ErrProtocol)
	}
	return time.Since(sent), nil
}
