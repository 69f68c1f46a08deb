package game

import (
	"fmt"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

func (g *Gamestate) applyAcknowledgeBlockChange(r *mcnet.Reader) error {
	sequenceID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := range g.PendingChanges {
		change := g.PendingChanges[i]
		if change.SequenceID != sequenceID {
			continue
		}
		if change.Status == DigFinished {
			g.setBlockAt(change.X, change.Y, change.Z, nil)
		}
		g.PendingChanges = append(g.PendingChanges[:i], g.PendingChanges[i+1:]...)
		return nil
	}
	return nil
}

func (g *Gamestate) applySetBlockDestroyStage(r *mcnet.Reader) error {
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // breaker entity id
		return err
	}
	x, y, z, err := mcnet.ReadPosition(r)
	if err != nil {
		return err
	}
	stage, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	b := g.BlockAt(x, y, z)
	if b == nil {
		return nil
	}
	if stage < StageRemove {
		b.Stage = stage
	} else {
		g.setBlockAt(x, y, z, nil)
	}
	return nil
}

func (g *Gamestate) applyBlockEntityData(r *mcnet.Reader) error {
	x, y, z, err := mcnet.ReadPosition(r)
	if err != nil {
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // block entity type
		return err
	}
	tag, err := mcnet.ReadNBT(r)
	if err != nil {
		return err
	}
	if b := g.BlockAt(x, y, z); b != nil {
		b.Entity = tag
	}
	return nil
}

func (g *Gamestate) applyBlockAction(r *mcnet.Reader) error {
	x, y, z, err := mcnet.ReadPosition(r)
	if err != nil {
		return err
	}
	actionID, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	actionParam, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // block type
		return err
	}
	if b := g.BlockAt(x, y, z); b != nil {
		b.ActionID = actionID
		b.ActionParam = actionParam
	}
	return nil
}

func (g *Gamestate) applyBlockUpdate(r *mcnet.Reader, v *version.Version) error {
	x, y, z, err := mcnet.ReadPosition(r)
	if err != nil {
		return err
	}
	stateID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	return g.updateBlock(v, x, y, z, stateID)
}

// updateBlock rewrites the block at world coordinates to the given state,
// removing it when the state resolves to air.
func (g *Gamestate) updateBlock(v *version.Version, x, y, z int, stateID int32) error {
	if !v.BlockStates.Contains(stateID) {
		return fmt.Errorf("block state %d outside palette of %d: %w", stateID, len(v.BlockStates), mcnet.ErrOverflow)
	}
	name := v.BlockStates.Name(stateID)
	if v.IsAir(name) {
		g.setBlockAt(x, y, z, nil)
	} else {
		g.setBlockAt(x, y, z, &Block{
			Name:    name,
			StateID: stateID,
			Stage:   StageNone,
			X:       x & 15, Y: y & 15, Z: z & 15,
		})
	}
	b := g.BlockAt(x, y, z)
	if g.Events.BlockUpdate != nil {
		return fire(g.Events.BlockUpdate(b, x, y, z))
	}
	return nil
}

func (g *Gamestate) applyUpdateSectionBlocks(r *mcnet.Reader, v *version.Version) error {
	packed, err := mcnet.ReadI64(r)
	if err != nil {
		return err
	}
	sectionX := int(packed >> 42)
	sectionY := int(packed << 44 >> 44)
	sectionZ := int(packed << 22 >> 42)

	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		entry, _, err := mcnet.ReadVarLong(r)
		if err != nil {
			return err
		}
		stateID := int32(entry >> 12)
		localX := int(entry>>8) & 15
		localZ := int(entry>>4) & 15
		localY := int(entry) & 15
		x := sectionX*16 + localX
		y := sectionY*16 + localY
		z := sectionZ*16 + localZ
		if err := g.updateBlock(v, x, y, z, stateID); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gamestate) applyExplosion(r *mcnet.Reader) error {
	x, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	y, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	z, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	if _, err := mcnet.ReadF32(r); err != nil { // strength
		return err
	}
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var dx, dy, dz int8
		if dx, err = mcnet.ReadI8(r); err != nil {
			return err
		}
		if dy, err = mcnet.ReadI8(r); err != nil {
			return err
		}
		if dz, err = mcnet.ReadI8(r); err != nil {
			return err
		}
		g.setBlockAt(int(x)+int(dx), int(y)+int(dy), int(z)+int(dz), nil)
	}
	var px, py, pz float32
	if px, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	if py, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	if pz, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	g.Player.VelocityX += px
	g.Player.VelocityY += py
	g.Player.VelocityZ += pz
	return nil
}

func (g *Gamestate) applyChunkData(r *mcnet.Reader, v *version.Version) error {
	chunkX, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	chunkZ, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	// Heightmaps travel as an unprefixed NBT compound the client has no use
	// for.
	if err := mcnet.SkipNBT(r); err != nil {
		return fmt.Errorf("skip heightmaps: %w", err)
	}

	data, err := mcnet.ReadByteArray(r)
	if err != nil {
		return fmt.Errorf("read section data: %w", err)
	}

	chunk := &Chunk{X: chunkX, Z: chunkZ}
	sr := mcnet.NewReader(data)
	for idx := 0; idx < SectionsPerChunk && sr.Len() > 0; idx++ {
		section, err := readSection(sr, v)
		if err != nil {
			return fmt.Errorf("section %d: %w", idx, err)
		}
		section.Y = idx + MinSectionY
		chunk.Sections[idx] = section
	}

	// Block entities follow, keyed by packed in-chunk coordinates.
	blockEntityCount, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < blockEntityCount; i++ {
		packedXZ, err := mcnet.ReadU8(r)
		if err != nil {
			return err
		}
		blockY, err := mcnet.ReadI16(r)
		if err != nil {
			return err
		}
		if _, _, err := mcnet.ReadVarInt(r); err != nil { // block entity type
			return err
		}
		tag, err := mcnet.ReadNBT(r)
		if err != nil {
			return err
		}
		localX := int(packedXZ >> 4)
		localZ := int(packedXZ & 15)
		if b := chunk.Block(localX, int(blockY), localZ); b != nil {
			b.Entity = tag
		}
	}

	// Light data trails the packet and is accepted but discarded.

	g.Chunks.PushBack(chunk)
	if g.Events.ChunkLoad != nil {
		return fire(g.Events.ChunkLoad(chunk))
	}
	return nil
}

func readSection(r *mcnet.Reader, v *version.Version) (*Section, error) {
	section := &Section{}
	nonAir, err := mcnet.ReadI16(r)
	if err != nil {
		return nil, err
	}
	section.NonAir = nonAir

	blocks, err := mcnet.ReadPalettedContainer(r,
		mcnet.BlockBitsLowest, mcnet.BlockBitsThreshold, len(v.BlockStates), mcnet.BlockEntries)
	if err != nil {
		return nil, fmt.Errorf("block states: %w", err)
	}
	// A uniform air container allocates nothing.
	uniformName := ""
	if blocks.Uniform() {
		uniformName = v.BlockStates.Name(blocks.Global(0))
	}
	if !blocks.Uniform() || !v.IsAir(uniformName) {
		for i := 0; i < mcnet.BlockEntries; i++ {
			stateID := blocks.Global(i)
			if !v.BlockStates.Contains(stateID) {
				return nil, fmt.Errorf("block state %d outside palette: %w", stateID, mcnet.ErrOverflow)
			}
			name := v.BlockStates.Name(stateID)
			if v.IsAir(name) {
				continue
			}
			// Entries order y, then z, then x.
			x := i & 15
			z := (i >> 4) & 15
			y := (i >> 8) & 15
			section.Blocks[x][y][z] = &Block{
				Name:    name,
				StateID: stateID,
				Stage:   StageNone,
				X:       x, Y: y, Z: z,
			}
		}
	}

	biomes, err := mcnet.ReadPalettedContainer(r,
		mcnet.BiomeBitsLowest, mcnet.BiomeBitsThreshold, len(v.Biomes), mcnet.BiomeEntries)
	if err != nil {
		return nil, fmt.Errorf("biomes: %w", err)
	}
	for i := 0; i < biomesPerSection; i++ {
		section.Biomes[i] = biomes.Global(i)
	}

	return section, nil
}

func (g *Gamestate) applyChunkBiomes(r *mcnet.Reader, v *version.Version) error {
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		chunkX, err := mcnet.ReadI32(r)
		if err != nil {
			return err
		}
		chunkZ, err := mcnet.ReadI32(r)
		if err != nil {
			return err
		}
		data, err := mcnet.ReadByteArray(r)
		if err != nil {
			return err
		}
		chunk := g.Chunk(chunkX, chunkZ)
		br := mcnet.NewReader(data)
		for idx := 0; idx < SectionsPerChunk && br.Len() > 0; idx++ {
			biomes, err := mcnet.ReadPalettedContainer(br,
				mcnet.BiomeBitsLowest, mcnet.BiomeBitsThreshold, len(v.Biomes), mcnet.BiomeEntries)
			if err != nil {
				return fmt.Errorf("chunk (%d,%d) biomes %d: %w", chunkX, chunkZ, idx, err)
			}
			if chunk == nil {
				continue
			}
			if chunk.Sections[idx] == nil {
				chunk.Sections[idx] = &Section{Y: idx + MinSectionY}
			}
			for b := 0; b < biomesPerSection; b++ {
				chunk.Sections[idx].Biomes[b] = biomes.Global(b)
			}
		}
	}
	return nil
}

func (g *Gamestate) applyUnloadChunk(r *mcnet.Reader) error {
	chunkX, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	chunkZ, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	g.unloadChunk(chunkX, chunkZ)
	if g.Events.ChunkUnload != nil {
		return fire(g.Events.ChunkUnload(chunkX, chunkZ))
	}
	return nil
}

func (g *Gamestate) unloadChunk(x, z int32) {
	el := g.Chunks.Find(func(c *Chunk) bool { return c.X == x && c.Z == z })
	if el == nil {
		return
	}
	chunk := g.Chunks.Remove(el)
	for i := range chunk.Sections {
		chunk.Sections[i] = nil
	}
}

func (g *Gamestate) applySetCenterChunk(r *mcnet.Reader) error {
	chunkX, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	chunkZ, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	g.Player.CurrentChunkX = chunkX
	g.Player.CurrentChunkZ = chunkZ

	// Evict anything outside the view envelope around the new centre.
	if g.ViewDistance <= 0 {
		return nil
	}
	limit := g.ViewDistance + 1
	for e := g.Chunks.Front(); e != nil; {
		next := e.Next()
		c := e.Value
		dx := c.X - chunkX
		dz := c.Z - chunkZ
		if dx > limit || dx < -limit || dz > limit || dz < -limit {
			g.Chunks.Remove(e)
			for i := range c.Sections {
				c.Sections[i] = nil
			}
			if g.Events.ChunkUnload != nil {
				if err := fire(g.Events.ChunkUnload(c.X, c.Z)); err != nil {
					return err
				}
			}
		}
		e = next
	}
	return nil
}

func (g *Gamestate) applyInitializeWorldBorder(r *mcnet.Reader) error {
	var err error
	if g.Border.CenterX, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if g.Border.CenterZ, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if g.Border.OldDiameter, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if g.Border.NewDiameter, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if g.Border.Speed, _, err = mcnet.ReadVarLong(r); err != nil {
		return err
	}
	if g.Border.PortalBoundary, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if g.Border.WarningBlocks, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if g.Border.WarningTime, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	g.Border.Diameter = g.Border.OldDiameter
	return nil
}

func (g *Gamestate) applySetBorderCenter(r *mcnet.Reader) error {
	var err error
	if g.Border.CenterX, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	g.Border.CenterZ, err = mcnet.ReadF64(r)
	return err
}

func (g *Gamestate) applySetBorderLerpSize(r *mcnet.Reader) error {
	var err error
	if g.Border.OldDiameter, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if g.Border.NewDiameter, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	g.Border.Speed, _, err = mcnet.ReadVarLong(r)
	return err
}

func (g *Gamestate) applySetBorderSize(r *mcnet.Reader) error {
	diameter, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	g.Border.Diameter = diameter
	g.Border.OldDiameter = diameter
	g.Border.NewDiameter = diameter
	return nil
}

func (g *Gamestate) applySetBorderWarningDelay(r *mcnet.Reader) error {
	var err error
	g.Border.WarningTime, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applySetBorderWarningDistance(r *mcnet.Reader) error {
	var err error
	g.Border.WarningBlocks, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applyWorldEvent(r *mcnet.Reader) error {
	if _, err := mcnet.ReadI32(r); err != nil { // event id
		return err
	}
	if _, _, _, err := mcnet.ReadPosition(r); err != nil {
		return err
	}
	if _, err := mcnet.ReadI32(r); err != nil { // event data
		return err
	}
	_, err := mcnet.ReadBool(r) // disable relative volume
	return err
}

func (g *Gamestate) applyParticle(r *mcnet.Reader) error {
	particleID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if _, err := mcnet.ReadBool(r); err != nil { // long distance
		return err
	}
	x, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	y, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	z, err := mcnet.ReadF64(r)
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ { // offsets
		if _, err := mcnet.ReadF32(r); err != nil {
			return err
		}
	}
	if _, err := mcnet.ReadF32(r); err != nil { // max speed
		return err
	}
	count, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	// Per-kind trailing data is consumed with the rest of the payload and
	// dropped.
	if err := r.Skip(r.Len()); err != nil {
		return err
	}
	if g.Events.Particle != nil {
		return fire(g.Events.Particle(particleID, x, y, z, count))
	}
	return nil
}
