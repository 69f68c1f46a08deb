package game

import (
	"github.com/OCharnyshevich/minecraft-client/internal/client/nbt"
)

const (
	// SectionsPerChunk covers the world height of -64..319.
	SectionsPerChunk = 24
	// MinSectionY is the y-index of the lowest section.
	MinSectionY = -4

	// StageRemove is the destroy stage that unloads a block instead of
	// animating it.
	StageRemove = 10
	// StageNone means no destroy animation is active.
	StageNone = 0xFF

	biomesPerSection = 64
)

// Block is one loaded voxel. Coordinates are local to the owning section.
type Block struct {
	Name        string
	StateID     int32
	Stage       uint8
	ActionID    uint8
	ActionParam uint8
	Entity      *nbt.Tag
	X, Y, Z     int
}

// Section is a 16x16x16 cube of a chunk column. A nil block means air and
// is never allocated.
type Section struct {
	Y      int
	NonAir int16
	Blocks [16][16][16]*Block
	Biomes [biomesPerSection]int32
}

// Chunk is one vertical column of 24 sections.
type Chunk struct {
	X, Z     int32
	Sections [SectionsPerChunk]*Section
}

// sectionIndex converts a world y coordinate into the section slot.
func sectionIndex(y int) int {
	return (y + 64) >> 4
}

// Block returns the block at world-local coordinates inside this column, or
// nil for air and unloaded sections.
func (c *Chunk) Block(x, y, z int) *Block {
	idx := sectionIndex(y)
	if idx < 0 || idx >= SectionsPerChunk || c.Sections[idx] == nil {
		return nil
	}
	return c.Sections[idx].Blocks[x&15][y&15][z&15]
}

// SetBlock stores b at world-local coordinates, allocating the section when
// needed. A nil b clears the slot.
func (c *Chunk) SetBlock(x, y, z int, b *Block) {
	idx := sectionIndex(y)
	if idx < 0 || idx >= SectionsPerChunk {
		return
	}
	if c.Sections[idx] == nil {
		if b == nil {
			return
		}
		c.Sections[idx] = &Section{Y: idx + MinSectionY}
	}
	c.Sections[idx].Blocks[x&15][y&15][z&15] = b
}
