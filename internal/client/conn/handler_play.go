package conn

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/minecraft-client/internal/client/game"
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

// rawPacket is one buffered frame awaiting a bundle close.
type rawPacket struct {
	id   int32
	data []byte
}

// Play runs the play-state read loop until the server disconnects or the
// transport fails. Packet-level failures (malformed payloads, handler
// aborts) discard the offending packet and keep the session alive;
// transport errors end it.
func (c *Connection) Play(v *version.Version, g *game.Gamestate) error {
	if c.state != StatePlay {
		return fmt.Errorf("play in state %d: %w", c.state, ErrProtocol)
	}

	var bundle []rawPacket
	bundleOpen := false

	for {
		id, data, err := c.transport.ReadPacket()
		if err != nil {
			return fmt.Errorf("read play packet: %w", err)
		}

		switch id {
		case packet.IDBundleDelimiter:
			if !bundleOpen {
				bundleOpen = true
				bundle = bundle[:0]
				continue
			}
			// Closing delimiter: the batch applies in wire order, and a
			// failure at packet k discards k and everything after it.
			bundleOpen = false
			batchErr := error(nil)
			for _, p := range bundle {
				if err := g.Apply(v, p.id, p.data); err != nil {
					batchErr = err
					break
				}
			}
			bundle = bundle[:0]
			if batchErr != nil {
				c.packetFailure(batchErr)
			}

		case packet.IDDisconnectPlay:
			var disconnect packet.DisconnectPlay
			if err := mcnet.Unmarshal(data, &disconnect); err != nil {
				return fmt.Errorf("unmarshal disconnect: %w", err)
			}
			c.log.Info("disconnected", "reason", disconnect.Reason)
			_ = c.Close()
			return nil

		case packet.IDKeepAlive:
			var keepAlive packet.KeepAlive
			if err := mcnet.Unmarshal(data, &keepAlive); err != nil {
				c.packetFailure(err)
				continue
			}
			if err := c.writePacket(&packet.KeepAliveResponse{KeepAliveID: keepAlive.KeepAliveID}); err != nil {
				return fmt.Errorf("echo keep-alive: %w", err)
			}

		case packet.IDPingPlay:
			var ping packet.Ping
			if err := mcnet.Unmarshal(data, &ping); err != nil {
				c.packetFailure(err)
				continue
			}
			if err := c.writePacket(&packet.Pong{PingID: ping.PingID}); err != nil {
				return fmt.Errorf("echo play ping: %w", err)
			}

		case packet.IDSynchronizePlayerPosition:
			teleportID, err := g.ApplySynchronizePosition(mcnet.NewReader(data))
			if err != nil && !errors.Is(err, game.ErrHandlerAbort) {
				c.packetFailure(err)
				continue
			}
			if err := c.writePacket(&packet.ConfirmTeleportation{TeleportID: teleportID}); err != nil {
				return fmt.Errorf("confirm teleportation: %w", err)
			}

		default:
			if bundleOpen {
				bundle = append(bundle, rawPacket{id: id, data: data})
				continue
			}
			if err := g.Apply(v, id, data); err != nil {
				c.packetFailure(err)
			}
		}
	}
}

// packetFailure records a packet-level failure without ending the session.
func (c *Connection) packetFailure(err error) {
	c.log.Error("packet discarded", "error", err)
}
