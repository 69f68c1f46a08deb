package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrHandlerAbort is returned when an event handler rejects a packet by
// returning a negative value. It propagates like any other packet failure.
var ErrHandlerAbort = errors.New("event handler aborted packet")

// genericEvents is the size of the Game-Event sub-id hook table.
const genericEvents = 16

// Events is the table of optional application callbacks. A nil entry is
// skipped. Handlers return a non-negative value to continue; a negative
// value aborts the packet. They run synchronously on the read loop and must
// not reenter the connection.
type Events struct {
	SpawnEntity   func(e *Entity) int
	RemoveEntity  func(e *Entity) int
	Damage        func(e *Entity, sourceType int32) int
	HurtAnimation func(e *Entity, yaw float32) int
	Chat          func(message string, overlay bool) int
	Container     func(c *Container) int
	BlockUpdate   func(b *Block, x, y, z int) int
	ChunkLoad     func(c *Chunk) int
	ChunkUnload   func(x, z int32) int
	Particle      func(particleID int32, x, y, z float64, count int32) int
	Sound         func(soundID int32, category int32) int
	Death         func(message string) int
	Position      func(p *Player) int
	RosterUpdate  func(e *RosterEntry) int
	RosterRemove  func(id uuid.UUID) int

	// Generic dispatches Game-Event sub-ids to hooks indexed by the
	// event byte.
	Generic [genericEvents]func(value float32) int
}

// fire runs the handler result through the abort contract.
func fire(result int) error {
	if result < 0 {
		return fmt.Errorf("handler returned %d: %w", result, ErrHandlerAbort)
	}
	return nil
}
