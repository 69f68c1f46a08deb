// Package packet declares the per-state packet id tables for protocol 763
// and the typed packets the client exchanges. Packet ids are namespaced by
// connection state and direction; the same numeric id means different
// packets in different states.
package packet

// Handshake state, serverbound.
const (
	IDHandshake            int32 = 0x00
	IDLegacyServerListPing int32 = 0xFE
)

// Next-state values carried by the handshake.
const (
	NextStateStatus int32 = 1
	NextStateLogin  int32 = 2
)

// Handshake opens every connection and selects the next state.
type Handshake struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (Handshake) PacketID() int32 { return IDHandshake }
