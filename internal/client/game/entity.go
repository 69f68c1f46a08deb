package game

import (
	"github.com/google/uuid"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
)

// velocityScale converts the wire-encoded 16-bit velocity into blocks per
// tick; positions deltas use deltaScale.
const (
	velocityScale = 8000.0
	deltaScale    = 4096.0
)

// NoEntity marks an empty weak entity reference.
const NoEntity int32 = -1

// maxEntitySlots caps an entity's equipment inventory.
const maxEntitySlots = 128

// Entity mirrors one server-side entity. Linked holds a weak reference to
// another entity by id; resolve it through the gamestate, never cache the
// pointer across list mutations.
type Entity struct {
	ID      int32
	UUID    uuid.UUID
	Type    int32
	X, Y, Z float64
	Pitch   mcnet.Angle
	Yaw     mcnet.Angle
	HeadYaw mcnet.Angle

	OnGround bool
	Data     int32

	VelocityX, VelocityY, VelocityZ float32

	Animation uint8
	Status    int8

	Linked     int32
	Metadata   map[uint8]Metadata
	Attributes []Attribute
	Effects    []Effect
	Items      []mcnet.Slot
	Passengers []int32
}

func newEntity(id int32) *Entity {
	return &Entity{ID: id, Linked: NoEntity}
}

// SetItem stores an equipment slot, growing the inventory up to the cap.
func (e *Entity) SetItem(index int, item mcnet.Slot) {
	if index < 0 || index >= maxEntitySlots {
		return
	}
	for len(e.Items) <= index {
		e.Items = append(e.Items, mcnet.Slot{})
	}
	e.Items[index] = item
}

// Attribute is a named entity property with a base value and its modifiers.
type Attribute struct {
	Key       string
	Value     float64
	Modifiers []AttributeModifier
}

type AttributeModifier struct {
	UUID      uuid.UUID
	Amount    float64
	Operation uint8
}

// Effect is an active status effect.
type Effect struct {
	ID        int32
	Amplifier uint8
	Duration  int32
	Flags     uint8
}
