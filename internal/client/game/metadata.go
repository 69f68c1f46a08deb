package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-client/internal/client/nbt"
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
)

// Metadata value type tags for protocol 763.
const (
	MetaByte            int32 = 0
	MetaVarInt          int32 = 1
	MetaVarLong         int32 = 2
	MetaFloat           int32 = 3
	MetaString          int32 = 4
	MetaChat            int32 = 5
	MetaOptChat         int32 = 6
	MetaSlot            int32 = 7
	MetaBool            int32 = 8
	MetaRotation        int32 = 9
	MetaPosition        int32 = 10
	MetaOptPosition     int32 = 11
	MetaDirection       int32 = 12
	MetaOptUUID         int32 = 13
	MetaBlockID         int32 = 14
	MetaOptBlockID      int32 = 15
	MetaNBT             int32 = 16
	MetaParticle        int32 = 17
	MetaVillagerData    int32 = 18
	MetaOptVarInt       int32 = 19
	MetaPose            int32 = 20
	MetaCatVariant      int32 = 21
	MetaFrogVariant     int32 = 22
	MetaOptGlobalPos    int32 = 23
	MetaPaintingVariant int32 = 24
	MetaSnifferState    int32 = 25
	MetaVec3            int32 = 26
	MetaQuaternion      int32 = 27
)

// metadataEnd terminates the entry sequence.
const metadataEnd = 0xFF

// Metadata is one typed entity metadata value. Type selects the meaningful
// fields; optional variants set Present.
type Metadata struct {
	Type    int32
	Present bool

	Byte    int8
	Int     int32
	Long    int64
	Float   float32
	String  string
	Bool    bool
	Slot    mcnet.Slot
	Floats  []float32
	X, Y, Z int
	UUID    uuid.UUID
	NBT     *nbt.Tag

	VillagerType       int32
	VillagerProfession int32
	VillagerLevel      int32

	ParticleID int32
	Dimension  string
}

// readMetadata consumes {index, type, value} entries up to the 0xFF
// terminator.
func readMetadata(r *mcnet.Reader) (map[uint8]Metadata, error) {
	out := make(map[uint8]Metadata)
	for {
		index, err := mcnet.ReadU8(r)
		if err != nil {
			return nil, fmt.Errorf("read metadata index: %w", err)
		}
		if index == metadataEnd {
			return out, nil
		}
		typ, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return nil, fmt.Errorf("read metadata type: %w", err)
		}
		value, err := readMetadataValue(r, typ)
		if err != nil {
			return nil, fmt.Errorf("read metadata %d type %d: %w", index, typ, err)
		}
		out[index] = value
	}
}

func readMetadataValue(r *mcnet.Reader, typ int32) (Metadata, error) {
	m := Metadata{Type: typ}
	var err error
	switch typ {
	case MetaByte:
		m.Byte, err = mcnet.ReadI8(r)
	case MetaVarInt, MetaDirection, MetaBlockID, MetaPose,
		MetaCatVariant, MetaFrogVariant, MetaPaintingVariant, MetaSnifferState:
		m.Int, _, err = mcnet.ReadVarInt(r)
	case MetaVarLong:
		m.Long, _, err = mcnet.ReadVarLong(r)
	case MetaFloat:
		m.Float, err = mcnet.ReadF32(r)
	case MetaString, MetaChat:
		m.String, err = mcnet.ReadString(r)
	case MetaOptChat:
		if m.Present, err = mcnet.ReadBool(r); err == nil && m.Present {
			m.String, err = mcnet.ReadString(r)
		}
	case MetaSlot:
		m.Slot, err = mcnet.ReadSlot(r)
	case MetaBool:
		m.Bool, err = mcnet.ReadBool(r)
	case MetaRotation, MetaVec3:
		m.Floats, err = readFloats(r, 3)
	case MetaQuaternion:
		m.Floats, err = readFloats(r, 4)
	case MetaPosition:
		m.X, m.Y, m.Z, err = mcnet.ReadPosition(r)
	case MetaOptPosition:
		if m.Present, err = mcnet.ReadBool(r); err == nil && m.Present {
			m.X, m.Y, m.Z, err = mcnet.ReadPosition(r)
		}
	case MetaOptUUID:
		if m.Present, err = mcnet.ReadBool(r); err == nil && m.Present {
			m.UUID, err = mcnet.ReadUUID(r)
		}
	case MetaOptBlockID, MetaOptVarInt:
		// Zero doubles as "absent"; the wire shifts real values by one.
		m.Int, _, err = mcnet.ReadVarInt(r)
		m.Present = m.Int != 0
	case MetaNBT:
		m.NBT, err = mcnet.ReadNBT(r)
	case MetaParticle:
		m.ParticleID, _, err = mcnet.ReadVarInt(r)
		if err == nil {
			err = skipParticleData(r, m.ParticleID)
		}
	case MetaVillagerData:
		if m.VillagerType, _, err = mcnet.ReadVarInt(r); err != nil {
			break
		}
		if m.VillagerProfession, _, err = mcnet.ReadVarInt(r); err != nil {
			break
		}
		m.VillagerLevel, _, err = mcnet.ReadVarInt(r)
	case MetaOptGlobalPos:
		if m.Present, err = mcnet.ReadBool(r); err == nil && m.Present {
			if m.Dimension, err = mcnet.ReadString(r); err != nil {
				break
			}
			m.X, m.Y, m.Z, err = mcnet.ReadPosition(r)
		}
	default:
		return m, fmt.Errorf("metadata type %d: %w", typ, mcnet.ErrMalformed)
	}
	return m, err
}

func readFloats(r *mcnet.Reader, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		var err error
		if out[i], err = mcnet.ReadF32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Particle ids that carry trailing data in protocol 763. The payloads are
// consumed to keep the stream aligned and then dropped.
const (
	particleBlock          int32 = 2
	particleBlockMarker    int32 = 3
	particleDust           int32 = 14
	particleDustTransition int32 = 15
	particleFallingDust    int32 = 25
	particleSculkCharge    int32 = 30
	particleItem           int32 = 39
	particleVibration      int32 = 40
	particleShriek         int32 = 91
)

func skipParticleData(r *mcnet.Reader, id int32) error {
	var err error
	switch id {
	case particleBlock, particleBlockMarker, particleFallingDust, particleShriek:
		_, _, err = mcnet.ReadVarInt(r)
	case particleDust:
		_, err = readFloats(r, 4)
	case particleDustTransition:
		_, err = readFloats(r, 7)
	case particleSculkCharge:
		_, err = mcnet.ReadF32(r)
	case particleItem:
		_, err = mcnet.ReadSlot(r)
	case particleVibration:
		err = skipVibrationSource(r)
	}
	return err
}

func skipVibrationSource(r *mcnet.Reader) error {
	sourceType, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	switch sourceType {
	case 0: // block
		if _, _, _, err = mcnet.ReadPosition(r); err != nil {
			return err
		}
	case 1: // entity
		if _, _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
		if _, err = mcnet.ReadF32(r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("vibration source %d: %w", sourceType, mcnet.ErrMalformed)
	}
	_, _, err = mcnet.ReadVarInt(r) // arrival ticks
	return err
}
