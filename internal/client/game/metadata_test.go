package game

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

func TestReadMetadataMixedEntries(t *testing.T) {
	var buf bytes.Buffer

	buf.WriteByte(0) // index 0: byte
	_, _ = mcnet.WriteVarInt(&buf, MetaByte)
	buf.WriteByte(0x21)

	buf.WriteByte(2) // index 2: float
	_, _ = mcnet.WriteVarInt(&buf, MetaFloat)
	_ = mcnet.WriteField(&buf, "f32", float32(19.5))

	buf.WriteByte(5) // index 5: optional chat, present
	_, _ = mcnet.WriteVarInt(&buf, MetaOptChat)
	buf.WriteByte(1)
	_, _ = mcnet.WriteString(&buf, `{"text":"name"}`)

	buf.WriteByte(6) // index 6: pose
	_, _ = mcnet.WriteVarInt(&buf, MetaPose)
	_, _ = mcnet.WriteVarInt(&buf, 3)

	buf.WriteByte(7) // index 7: optional uuid, absent
	_, _ = mcnet.WriteVarInt(&buf, MetaOptUUID)
	buf.WriteByte(0)

	buf.WriteByte(8) // index 8: villager data
	_, _ = mcnet.WriteVarInt(&buf, MetaVillagerData)
	for _, v := range []int32{1, 2, 3} {
		_, _ = mcnet.WriteVarInt(&buf, v)
	}

	buf.WriteByte(9) // index 9: position
	_, _ = mcnet.WriteVarInt(&buf, MetaPosition)
	_ = mcnet.WriteField(&buf, "position", mcnet.EncodePosition(100, -32, 7))

	buf.WriteByte(metadataEnd)

	got, err := readMetadata(mcnet.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("readMetadata: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("entry count = %d, want 7", len(got))
	}
	if got[0].Byte != 0x21 {
		t.Errorf("byte entry = %+v", got[0])
	}
	if got[2].Float != 19.5 {
		t.Errorf("float entry = %+v", got[2])
	}
	if !got[5].Present || got[5].String != `{"text":"name"}` {
		t.Errorf("opt-chat entry = %+v", got[5])
	}
	if got[6].Int != 3 {
		t.Errorf("pose entry = %+v", got[6])
	}
	if got[7].Present {
		t.Errorf("absent opt-uuid marked present: %+v", got[7])
	}
	if got[8].VillagerProfession != 2 || got[8].VillagerLevel != 3 {
		t.Errorf("villager entry = %+v", got[8])
	}
	if got[9].X != 100 || got[9].Y != -32 || got[9].Z != 7 {
		t.Errorf("position entry = %+v", got[9])
	}
}

func TestReadMetadataSlotEntry(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(3)
	_, _ = mcnet.WriteVarInt(&buf, MetaSlot)
	buf.WriteByte(1) // present
	_, _ = mcnet.WriteVarInt(&buf, 276)
	buf.WriteByte(1)
	buf.WriteByte(0) // no NBT
	buf.WriteByte(metadataEnd)

	got, err := readMetadata(mcnet.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("readMetadata: %v", err)
	}
	if s := got[3].Slot; !s.Present || s.ItemID != 276 || s.Count != 1 {
		t.Errorf("slot = %+v", s)
	}
}

func TestReadMetadataUnknownType(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0)
	_, _ = mcnet.WriteVarInt(&buf, 28) // past the last variant
	buf.WriteByte(metadataEnd)

	_, err := readMetadata(mcnet.NewReader(buf.Bytes()))
	if !errors.Is(err, mcnet.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestSetEntityMetadataMergesEntries(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 9, 0)); err != nil {
		t.Fatal(err)
	}

	payload := func(index byte, value int8) []byte {
		var buf bytes.Buffer
		_, _ = mcnet.WriteVarInt(&buf, 9)
		buf.WriteByte(index)
		_, _ = mcnet.WriteVarInt(&buf, MetaByte)
		_ = mcnet.WriteField(&buf, "i8", value)
		buf.WriteByte(metadataEnd)
		return buf.Bytes()
	}

	if err := g.Apply(v, packet.IDSetEntityMetadata, payload(0, 1)); err != nil {
		t.Fatal(err)
	}
	if err := g.Apply(v, packet.IDSetEntityMetadata, payload(4, 2)); err != nil {
		t.Fatal(err)
	}

	e := g.Entity(9)
	if len(e.Metadata) != 2 || e.Metadata[0].Byte != 1 || e.Metadata[4].Byte != 2 {
		t.Errorf("metadata = %+v", e.Metadata)
	}
}

func TestSetEquipmentChain(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 4, 0)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	_, _ = mcnet.WriteVarInt(&buf, 4)
	// Slot 0 with the continuation bit, then slot 5 terminal.
	buf.WriteByte(0x80)
	buf.WriteByte(1)
	_, _ = mcnet.WriteVarInt(&buf, 100)
	buf.WriteByte(1)
	buf.WriteByte(0)
	buf.WriteByte(5)
	buf.WriteByte(1)
	_, _ = mcnet.WriteVarInt(&buf, 200)
	buf.WriteByte(2)
	buf.WriteByte(0)

	if err := g.Apply(v, packet.IDSetEquipment, buf.Bytes()); err != nil {
		t.Fatal(err)
	}

	e := g.Entity(4)
	if len(e.Items) != 6 {
		t.Fatalf("items length = %d, want 6", len(e.Items))
	}
	if e.Items[0].ItemID != 100 || e.Items[5].ItemID != 200 {
		t.Errorf("equipment = %+v", e.Items)
	}
}

func TestAttributesAndEffects(t *testing.T) {
	g := NewGamestate()
	v := testVersion()
	if err := g.Apply(v, packet.IDSpawnEntity, spawnEntityPayload(t, 8, 0)); err != nil {
		t.Fatal(err)
	}

	var attrs bytes.Buffer
	_, _ = mcnet.WriteVarInt(&attrs, 8)
	_, _ = mcnet.WriteVarInt(&attrs, 1)
	_, _ = mcnet.WriteString(&attrs, "minecraft:generic.movement_speed")
	_ = mcnet.WriteField(&attrs, "f64", 0.7)
	_, _ = mcnet.WriteVarInt(&attrs, 1)
	_, _ = mcnet.WriteUUID(&attrs, uuid.New())
	_ = mcnet.WriteField(&attrs, "f64", 0.2)
	attrs.WriteByte(1)
	if err := g.Apply(v, packet.IDUpdateAttributes, attrs.Bytes()); err != nil {
		t.Fatal(err)
	}

	e := g.Entity(8)
	if len(e.Attributes) != 1 {
		t.Fatalf("attributes = %+v", e.Attributes)
	}
	a := e.Attributes[0]
	if a.Key != "minecraft:generic.movement_speed" || a.Value != 0.7 || len(a.Modifiers) != 1 {
		t.Errorf("attribute = %+v", a)
	}

	var effect bytes.Buffer
	_, _ = mcnet.WriteVarInt(&effect, 8)
	_, _ = mcnet.WriteVarInt(&effect, 1) // speed
	effect.WriteByte(2)
	_, _ = mcnet.WriteVarInt(&effect, 600)
	effect.WriteByte(0)
	effect.WriteByte(0) // no factor data
	if err := g.Apply(v, packet.IDEntityEffect, effect.Bytes()); err != nil {
		t.Fatal(err)
	}
	if len(e.Effects) != 1 || e.Effects[0].Amplifier != 2 {
		t.Errorf("effects = %+v", e.Effects)
	}

	var remove bytes.Buffer
	_, _ = mcnet.WriteVarInt(&remove, 8)
	_, _ = mcnet.WriteVarInt(&remove, 1)
	if err := g.Apply(v, packet.IDRemoveEntityEffect, remove.Bytes()); err != nil {
		t.Fatal(err)
	}
	if len(e.Effects) != 0 {
		t.Errorf("effect survived removal: %+v", e.Effects)
	}
}
