package game

import (
	"github.com/google/uuid"
)

// Player-info-update action bits; each set bit selects one sub-record per
// roster entry.
const (
	InfoAddPlayer      uint8 = 0x01
	InfoInitChat       uint8 = 0x02
	InfoUpdateGamemode uint8 = 0x04
	InfoUpdateListed   uint8 = 0x08
	InfoUpdatePing     uint8 = 0x10
	InfoDisplayName    uint8 = 0x20
)

// RosterEntry is one row of the player list.
type RosterEntry struct {
	UUID       uuid.UUID
	Name       string
	Properties []RosterProperty

	HasChatSession bool
	ChatSessionID  uuid.UUID

	Gamemode int32
	Listed   bool
	Ping     int32

	HasDisplayName bool
	DisplayName    string
}

// RosterProperty is a signed profile property (skin textures).
type RosterProperty struct {
	Name      string
	Value     string
	Signature string
	Signed    bool
}
