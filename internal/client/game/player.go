package game

import (
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
)

// Player ability flag bits.
const (
	AbilityInvulnerable uint8 = 0x01
	AbilityFlying       uint8 = 0x02
	AbilityAllowFlight  uint8 = 0x04
	AbilityCreativeMode uint8 = 0x08
)

// Player is the client's own avatar. CurrentChunk and Camera are weak
// references resolved through the gamestate on use.
type Player struct {
	EntityID         int32
	Gamemode         uint8
	PreviousGamemode int8
	HeldSlot         uint8

	Inventory Container
	Carried   mcnet.Slot
	Cooldowns map[int32]int32

	X, Y, Z    float64
	Yaw, Pitch float32

	VelocityX, VelocityY, VelocityZ float32

	Abilities   uint8
	FlyingSpeed float32
	FOVModifier float32

	// CurrentChunkX/Z identify the chunk the view centres on.
	CurrentChunkX, CurrentChunkZ int32

	Health     float32
	Food       int32
	Saturation float32

	ExperienceBar   float32
	TotalExperience int32
	Level           int32

	Camera int32
}
