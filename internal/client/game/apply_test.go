package game

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-client/internal/client/nbt"
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

// testVersion builds a small but complete palette set: state 0 is air,
// states 1..3 belong to stone and grass.
func testVersion() *version.Version {
	return &version.Version{
		Entities:    version.Palette{"minecraft:item", "minecraft:experience_orb", "minecraft:zombie", "minecraft:player"},
		BlockTypes:  version.Palette{"minecraft:air", "minecraft:stone", "minecraft:grass_block"},
		BlockStates: version.Palette{"minecraft:air", "minecraft:stone", "minecraft:grass_block", "minecraft:grass_block"},
		Biomes:      version.Palette{"minecraft:plains", "minecraft:desert"},
		AirTypes:    []string{"minecraft:air"},
	}
}

func spawnEntityPayload(t *testing.T, id int32, entityType int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := mcnet.WriteVarInt(&buf, id); err != nil {
		t.Fatal(err)
	}
	if _, err := mcnet.WriteUUID(&buf, uuid.New()); err != nil {
		t.Fatal(err)
	}
	if _, err := mcnet.WriteVarInt(&buf, entityType); err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{1.5, 64, -2.5} {
		if err := mcnet.WriteField(&buf, "f64", v); err != nil {
			t.Fatal(err)
		}
	}
	buf.Write([]byte{0, 64, 128})                         // pitch, yaw, head yaw
	if _, err := mcnet.WriteVarInt(&buf, 0); err != nil { // data
		t.Fatal(err)
	}
	// Velocity of (8000, -8000, 4000) wire units.
	for _, v := range []int16{8000, -8000, 4000} {
		if err := mcnet.WriteField(&buf, "i16", v); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestSpawnEntityProjection(t *testing.T) {
	g := NewGamestate()
	v := testVersion()

	if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 7, 2)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	e := g.Entity(7)
	if e == nil {
		t.Fatal("entity 7 not in gamestate")
	}
	if e.Type != 2 || e.X != 1.5 || e.Y != 64 || e.Z != -2.5 {
		t.Errorf("entity = %+v", e)
	}
	if e.VelocityX != 1 || e.VelocityY != -1 || e.VelocityZ != 0.5 {
		t.Errorf("velocity = (%v,%v,%v), want (1,-1,0.5)", e.VelocityX, e.VelocityY, e.VelocityZ)
	}
}

func TestEntityIDUniquenessAfterSpawnRemove(t *testing.T) {
	g := NewGamestate()
	v := testVersion()

	for _, id := range []int32{1, 2, 3} {
		if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, id, 0)); err != nil {
			t.Fatal(err)
		}
	}

	var remove bytes.Buffer
	_, _ = mcnet.WriteVarInt(&remove, 2)
	_, _ = mcnet.WriteVarInt(&remove, 2)
	_, _ = mcnet.WriteVarInt(&remove, 99) // unknown ids are ignored
	if err := g.Apply(v, packet.IDRemoveEntities, remove.Bytes()); err != nil {
		t.Fatal(err)
	}

	if g.Entities.Len() != 2 {
		t.Fatalf("entity count = %d, want 2", g.Entities.Len())
	}
	seen := map[int32]bool{}
	for e := g.Entities.Front(); e != nil; e = e.Next() {
		if seen[e.Value.ID] {
			t.Fatalf("duplicate entity id %d", e.Value.ID)
		}
		seen[e.Value.ID] = true
	}
	if g.Entity(2) != nil {
		t.Error("entity 2 survived removal")
	}
}

func TestEntityDeltaMove(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 5, 0)); err != nil {
		t.Fatal(err)
	}

	var move bytes.Buffer
	_, _ = mcnet.WriteVarInt(&move, 5)
	for _, d := range []int16{4096, -4096, 2048} { // +1, -1, +0.5 blocks
		_ = mcnet.WriteField(&move, "i16", d)
	}
	move.WriteByte(1) // on ground
	if err := g.Apply(v, packet.IDUpdateEntityPosition, move.Bytes()); err != nil {
		t.Fatal(err)
	}

	e := g.Entity(5)
	if e.X != 2.5 || e.Y != 63 || e.Z != -2 {
		t.Errorf("position = (%v,%v,%v), want (2.5,63,-2)", e.X, e.Y, e.Z)
	}
	if !e.OnGround {
		t.Error("on-ground flag lost")
	}
}

// chunkPayload builds a Chunk-Data packet with a uniform stone bottom
// section and air everywhere else.
func chunkPayload(t *testing.T, chunkX, chunkZ int32, v *version.Version) []byte {
	t.Helper()
	var buf bytes.Buffer
	_ = mcnet.WriteField(&buf, "i32", chunkX)
	_ = mcnet.WriteField(&buf, "i32", chunkZ)

	// Empty heightmaps compound.
	buf.Write([]byte{nbt.TagCompound, 0, 0, nbt.TagEnd})

	var sections bytes.Buffer
	for i := 0; i < SectionsPerChunk; i++ {
		stateID := int32(0) // air
		nonAir := int16(0)
		if i == 0 {
			stateID = 1 // stone
			nonAir = 4096
		}
		_ = mcnet.WriteField(&sections, "i16", nonAir)
		// Single-value block container, then single-value biome container.
		sections.WriteByte(0)
		_, _ = mcnet.WriteVarInt(&sections, stateID)
		_, _ = mcnet.WriteVarInt(&sections, 0)
		sections.WriteByte(0)
		_, _ = mcnet.WriteVarInt(&sections, 1)
		_, _ = mcnet.WriteVarInt(&sections, 0)
	}
	if _, err := mcnet.WriteByteArray(&buf, sections.Bytes()); err != nil {
		t.Fatal(err)
	}
	_, _ = mcnet.WriteVarInt(&buf, 0) // no block entities
	return buf.Bytes()
}

func TestChunkDataThenUnload(t *testing.T) {
	g := NewGamestate()
	v := testVersion()

	if err := g.Apply(v, packet.IDChunkDataAndUpdateLight, chunkPayload(t, 3, -2, v)); err != nil {
		t.Fatalf("chunk data: %v", err)
	}

	c := g.Chunk(3, -2)
	if c == nil {
		t.Fatal("chunk not loaded")
	}
	// The bottom section is solid stone, the one above is air.
	b := c.Block(5, -60, 5)
	if b == nil || b.Name != "minecraft:stone" {
		t.Fatalf("block at y=-60 = %+v", b)
	}
	if c.Block(5, 0, 5) != nil {
		t.Error("air must not be allocated")
	}
	if c.Sections[0].Biomes[0] != 1 {
		t.Errorf("biome = %d, want 1", c.Sections[0].Biomes[0])
	}

	var unload bytes.Buffer
	_ = mcnet.WriteField(&unload, "i32", int32(3))
	_ = mcnet.WriteField(&unload, "i32", int32(-2))
	if err := g.Apply(v, packet.IDUnloadChunk, unload.Bytes()); err != nil {
		t.Fatal(err)
	}
	if g.Chunk(3, -2) != nil {
		t.Error("chunk survived unload")
	}
	if g.Chunks.Len() != 0 {
		t.Errorf("chunk list length = %d, want 0", g.Chunks.Len())
	}
}

func TestBlockUpdateAndDestroyStage(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDChunkDataAndUpdateLight, chunkPayload(t, 0, 0, v)); err != nil {
		t.Fatal(err)
	}

	// Grass replaces stone at (1, -64, 2).
	var update bytes.Buffer
	_ = mcnet.WriteField(&update, "position", mcnet.EncodePosition(1, -64, 2))
	_, _ = mcnet.WriteVarInt(&update, 2)
	if err := g.Apply(v, packet.IDBlockUpdate, update.Bytes()); err != nil {
		t.Fatal(err)
	}
	b := g.BlockAt(1, -64, 2)
	if b == nil || b.Name != "minecraft:grass_block" || b.StateID != 2 {
		t.Fatalf("block = %+v", b)
	}

	// A state outside the palette is an overflow.
	update.Reset()
	_ = mcnet.WriteField(&update, "position", mcnet.EncodePosition(1, -64, 2))
	_, _ = mcnet.WriteVarInt(&update, 999)
	if err := g.Apply(v, packet.IDBlockUpdate, update.Bytes()); !errors.Is(err, mcnet.ErrOverflow) {
		t.Errorf("err = %v, want ErrOverflow", err)
	}

	// Stage 4 animates; stage 10 removes.
	var stage bytes.Buffer
	_, _ = mcnet.WriteVarInt(&stage, 1)
	_ = mcnet.WriteField(&stage, "position", mcnet.EncodePosition(1, -64, 2))
	stage.WriteByte(4)
	if err := g.Apply(v, packet.IDSetBlockDestroyStage, stage.Bytes()); err != nil {
		t.Fatal(err)
	}
	if b := g.BlockAt(1, -64, 2); b == nil || b.Stage != 4 {
		t.Fatalf("stage = %+v", b)
	}

	stage.Reset()
	_, _ = mcnet.WriteVarInt(&stage, 1)
	_ = mcnet.WriteField(&stage, "position", mcnet.EncodePosition(1, -64, 2))
	stage.WriteByte(10)
	if err := g.Apply(v, packet.IDSetBlockDestroyStage, stage.Bytes()); err != nil {
		t.Fatal(err)
	}
	if g.BlockAt(1, -64, 2) != nil {
		t.Error("stage 10 must remove the block")
	}
}

func TestAcknowledgeBlockChange(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDChunkDataAndUpdateLight, chunkPayload(t, 0, 0, v)); err != nil {
		t.Fatal(err)
	}

	g.PushBlockChange(11, DigFinished, 4, -64, 4)
	g.PushBlockChange(12, DigStarted, 5, -64, 5)

	var ack bytes.Buffer
	_, _ = mcnet.WriteVarInt(&ack, 11)
	if err := g.Apply(v, packet.IDAcknowledgeBlockChange, ack.Bytes()); err != nil {
		t.Fatal(err)
	}
	if g.BlockAt(4, -64, 4) != nil {
		t.Error("finished dig must free the block")
	}
	if len(g.PendingChanges) != 1 || g.PendingChanges[0].SequenceID != 12 {
		t.Errorf("pending = %+v", g.PendingChanges)
	}

	// A non-finished acknowledgement leaves the block alone.
	ack.Reset()
	_, _ = mcnet.WriteVarInt(&ack, 12)
	if err := g.Apply(v, packet.IDAcknowledgeBlockChange, ack.Bytes()); err != nil {
		t.Fatal(err)
	}
	if g.BlockAt(5, -64, 5) == nil {
		t.Error("started dig must not free the block")
	}
	if len(g.PendingChanges) != 0 {
		t.Errorf("pending = %+v", g.PendingChanges)
	}
}

func TestSetContainerSlotLastWriteWins(t *testing.T) {
	g := NewGamestate()
	v := testVersion()

	slotPayload := func(window int8, index int16, itemID int32, count uint8) []byte {
		var buf bytes.Buffer
		_ = mcnet.WriteField(&buf, "i8", window)
		_, _ = mcnet.WriteVarInt(&buf, 1) // state id
		_ = mcnet.WriteField(&buf, "i16", index)
		buf.WriteByte(1) // present
		_, _ = mcnet.WriteVarInt(&buf, itemID)
		buf.WriteByte(byte(count))
		buf.WriteByte(0) // no NBT
		return buf.Bytes()
	}

	for _, p := range [][]byte{
		slotPayload(0, 3, 100, 1),
		slotPayload(0, 3, 200, 2),
		slotPayload(0, 3, 300, 64),
	} {
		if err := g.Apply(v, packet.IDSetContainerSlot, p); err != nil {
			t.Fatal(err)
		}
	}

	got := g.Player.Inventory.Slots[3]
	if !got.Present || got.ItemID != 300 || got.Count != 64 {
		t.Errorf("slot 3 = %+v, want item 300 x64", got)
	}
}

func TestLoginPlayProjection(t *testing.T) {
	g := NewGamestate()
	v := testVersion()

	var buf bytes.Buffer
	_ = mcnet.WriteField(&buf, "i32", int32(4321)) // entity id
	buf.WriteByte(1)                               // hardcore
	buf.WriteByte(0)                               // gamemode
	_ = mcnet.WriteField(&buf, "i8", int8(-1))     // previous gamemode
	_, _ = mcnet.WriteVarInt(&buf, 2)
	_, _ = mcnet.WriteString(&buf, "minecraft:overworld")
	_, _ = mcnet.WriteString(&buf, "minecraft:the_nether")
	// Registry codec: {"":{"answer":42L}} as a compound.
	buf.Write([]byte{nbt.TagCompound, 0, 0})
	buf.Write([]byte{nbt.TagLong, 0, 6})
	buf.WriteString("answer")
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 42})
	buf.WriteByte(nbt.TagEnd)
	_, _ = mcnet.WriteString(&buf, "minecraft:overworld")
	_, _ = mcnet.WriteString(&buf, "minecraft:overworld")
	_ = mcnet.WriteField(&buf, "i64", int64(-777))
	_, _ = mcnet.WriteVarInt(&buf, 20) // max players
	_, _ = mcnet.WriteVarInt(&buf, 10) // view distance
	_, _ = mcnet.WriteVarInt(&buf, 8)  // simulation distance
	buf.Write([]byte{0, 1, 0, 1})      // reduced debug, respawn screen, debug, flat
	buf.WriteByte(1)                   // has death location
	_, _ = mcnet.WriteString(&buf, "minecraft:overworld")
	_ = mcnet.WriteField(&buf, "position", mcnet.EncodePosition(10, 70, -10))
	_, _ = mcnet.WriteVarInt(&buf, 0) // portal cooldown

	if err := g.Apply(v, packet.IDLoginPlay, buf.Bytes()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !g.LoginPlay {
		t.Error("loginPlay gate not set")
	}
	if g.Player.EntityID != 4321 || !g.Hardcore || !g.Flat || g.Debug {
		t.Errorf("gamestate = %+v", g)
	}
	if len(g.Dimensions) != 2 || g.Dimensions[1] != "minecraft:the_nether" {
		t.Errorf("dimensions = %v", g.Dimensions)
	}
	if g.RegistryCodec == nil || g.RegistryCodec.Type != nbt.TagCompound {
		t.Fatal("registry codec not a compound")
	}
	if answer, ok := g.RegistryCodec.Get("answer"); !ok || answer.Long != 42 {
		t.Errorf("registry codec content lost")
	}
	if !g.HasDeathLocation || g.DeathX != 10 || g.DeathY != 70 || g.DeathZ != -10 {
		t.Errorf("death location = (%d,%d,%d)", g.DeathX, g.DeathY, g.DeathZ)
	}
	if g.ViewDistance != 10 || g.SimulationDistance != 8 {
		t.Errorf("distances = %d/%d", g.ViewDistance, g.SimulationDistance)
	}
}

func TestSetCenterChunkEviction(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	g.ViewDistance = 2

	for _, pos := range [][2]int32{{0, 0}, {1, 1}, {10, 10}} {
		if err := g.Apply(v, packet.IDChunkDataAndUpdateLight, chunkPayload(t, pos[0], pos[1], v)); err != nil {
			t.Fatal(err)
		}
	}

	var center bytes.Buffer
	_, _ = mcnet.WriteVarInt(&center, 0)
	_, _ = mcnet.WriteVarInt(&center, 0)
	if err := g.Apply(v, packet.IDSetCenterChunk, center.Bytes()); err != nil {
		t.Fatal(err)
	}

	if g.Player.CurrentChunkX != 0 || g.Player.CurrentChunkZ != 0 {
		t.Errorf("centre = (%d,%d)", g.Player.CurrentChunkX, g.Player.CurrentChunkZ)
	}
	if g.Chunk(0, 0) == nil || g.Chunk(1, 1) == nil {
		t.Error("chunks inside the envelope evicted")
	}
	if g.Chunk(10, 10) != nil {
		t.Error("chunk outside the envelope survived")
	}
}

func TestPlayerInfoUpdateAndRemove(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	var add bytes.Buffer
	add.WriteByte(InfoAddPlayer | InfoUpdateListed | InfoUpdatePing)
	_, _ = mcnet.WriteVarInt(&add, 1)
	_, _ = mcnet.WriteUUID(&add, id)
	_, _ = mcnet.WriteString(&add, "Steve")
	_, _ = mcnet.WriteVarInt(&add, 0) // no properties
	add.WriteByte(1)                  // listed
	_, _ = mcnet.WriteVarInt(&add, 42)
	if err := g.Apply(v, packet.IDPlayerInfoUpdate, add.Bytes()); err != nil {
		t.Fatalf("info update: %v", err)
	}

	entry := g.RosterFind(id)
	if entry == nil || entry.Name != "Steve" || !entry.Listed || entry.Ping != 42 {
		t.Fatalf("entry = %+v", entry)
	}

	// A second update touches only the ping and keeps the rest.
	var update bytes.Buffer
	update.WriteByte(InfoUpdatePing)
	_, _ = mcnet.WriteVarInt(&update, 1)
	_, _ = mcnet.WriteUUID(&update, id)
	_, _ = mcnet.WriteVarInt(&update, 7)
	if err := g.Apply(v, packet.IDPlayerInfoUpdate, update.Bytes()); err != nil {
		t.Fatal(err)
	}
	if entry := g.RosterFind(id); entry.Ping != 7 || entry.Name != "Steve" {
		t.Errorf("entry after update = %+v", entry)
	}
	if g.Roster.Len() != 1 {
		t.Errorf("roster length = %d, want 1", g.Roster.Len())
	}

	var remove bytes.Buffer
	_, _ = mcnet.WriteVarInt(&remove, 1)
	_, _ = mcnet.WriteUUID(&remove, id)
	if err := g.Apply(v, packet.IDPlayerInfoRemove, remove.Bytes()); err != nil {
		t.Fatal(err)
	}
	if g.Roster.Len() != 0 {
		t.Error("roster entry survived removal")
	}
}

func TestHandlerAbortPropagates(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	g.Events.SpawnEntity = func(*Entity) int { return -1 }

	err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 1, 0))
	if !errors.Is(err, ErrHandlerAbort) {
		t.Errorf("err = %v, want ErrHandlerAbort", err)
	}
}

func TestExplosionClearsBlocks(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDChunkDataAndUpdateLight, chunkPayload(t, 0, 0, v)); err != nil {
		t.Fatal(err)
	}

	var boom bytes.Buffer
	for _, c := range []float64{8, -64, 8} {
		_ = mcnet.WriteField(&boom, "f64", c)
	}
	_ = mcnet.WriteField(&boom, "f32", float32(4))
	_, _ = mcnet.WriteVarInt(&boom, 2)
	boom.Write([]byte{0, 0, 0})    // (8,-64,8)
	boom.Write([]byte{1, 0, 0xFF}) // (9,-64,7)
	for i := 0; i < 3; i++ {
		_ = mcnet.WriteField(&boom, "f32", float32(i))
	}
	if err := g.Apply(v, packet.IDExplosion, boom.Bytes()); err != nil {
		t.Fatal(err)
	}

	if g.BlockAt(8, -64, 8) != nil || g.BlockAt(9, -64, 7) != nil {
		t.Error("explosion offsets not cleared")
	}
	if g.BlockAt(7, -64, 8) == nil {
		t.Error("untouched block lost")
	}
	if g.Player.VelocityY != 1 || g.Player.VelocityZ != 2 {
		t.Errorf("player push = (%v,%v,%v)", g.Player.VelocityX, g.Player.VelocityY, g.Player.VelocityZ)
	}
}
