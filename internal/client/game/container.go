package game

import (
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
)

// PlayerInventoryID is the window id the server uses for the player's own
// inventory.
const PlayerInventoryID = 0

// Container is an open window: the player inventory, a chest, a furnace.
// Flags holds the window-type specific property values (furnace progress,
// enchantment seeds) keyed by property index.
type Container struct {
	ID    uint8
	Type  int32
	Title string
	Slots []mcnet.Slot
	Flags map[int16]int16
}

func newContainer(id uint8, typ int32, title string) *Container {
	return &Container{ID: id, Type: typ, Title: title, Flags: make(map[int16]int16)}
}

// SetSlot stores item at index, growing the slot array as needed.
func (c *Container) SetSlot(index int, item mcnet.Slot) {
	if index < 0 {
		return
	}
	for len(c.Slots) <= index {
		c.Slots = append(c.Slots, mcnet.Slot{})
	}
	c.Slots[index] = item
}
