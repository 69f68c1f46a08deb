package game

import (
	"fmt"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

func (g *Gamestate) applySpawnEntity(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	e := newEntity(id)
	if e.UUID, err = mcnet.ReadUUID(r); err != nil {
		return err
	}
	if e.Type, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if e.X, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Y, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Z, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Pitch, err = mcnet.ReadAngle(r); err != nil {
		return err
	}
	if e.Yaw, err = mcnet.ReadAngle(r); err != nil {
		return err
	}
	if e.HeadYaw, err = mcnet.ReadAngle(r); err != nil {
		return err
	}
	if e.Data, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	var vx, vy, vz int16
	if vx, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if vy, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if vz, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	e.VelocityX = float32(vx) / velocityScale
	e.VelocityY = float32(vy) / velocityScale
	e.VelocityZ = float32(vz) / velocityScale

	g.Entities.PushBack(e)
	if g.Events.SpawnEntity != nil {
		return fire(g.Events.SpawnEntity(e))
	}
	return nil
}

func (g *Gamestate) applySpawnExperienceOrb(r *mcnet.Reader, v *version.Version) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	e := newEntity(id)
	e.Type = v.EntityID("minecraft:experience_orb")
	if e.X, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Y, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Z, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	count, err := mcnet.ReadI16(r)
	if err != nil {
		return err
	}
	e.Data = int32(count)

	g.Entities.PushBack(e)
	if g.Events.SpawnEntity != nil {
		return fire(g.Events.SpawnEntity(e))
	}
	return nil
}

func (g *Gamestate) applySpawnPlayer(r *mcnet.Reader, v *version.Version) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	e := newEntity(id)
	e.Type = v.EntityID("minecraft:player")
	if e.UUID, err = mcnet.ReadUUID(r); err != nil {
		return err
	}
	if e.X, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Y, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Z, err = mcnet.ReadF64(r); err != nil {
		return err
	}
	if e.Yaw, err = mcnet.ReadAngle(r); err != nil {
		return err
	}
	if e.Pitch, err = mcnet.ReadAngle(r); err != nil {
		return err
	}

	g.Entities.PushBack(e)
	if g.Events.SpawnEntity != nil {
		return fire(g.Events.SpawnEntity(e))
	}
	return nil
}

func (g *Gamestate) applyEntityAnimation(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	animation, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.Animation = animation
	}
	return nil
}

func (g *Gamestate) applyEntityEvent(r *mcnet.Reader) error {
	id, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	status, err := mcnet.ReadI8(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.Status = status
	}
	return nil
}

func (g *Gamestate) applyHurtAnimation(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	yaw, err := mcnet.ReadF32(r)
	if err != nil {
		return err
	}
	e := g.Entity(id)
	if e != nil && g.Events.HurtAnimation != nil {
		return fire(g.Events.HurtAnimation(e, yaw))
	}
	return nil
}

func (g *Gamestate) applyDamageEvent(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	sourceType, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if _, _, err = mcnet.ReadVarInt(r); err != nil { // source cause id
		return err
	}
	if _, _, err = mcnet.ReadVarInt(r); err != nil { // source direct id
		return err
	}
	hasPosition, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if hasPosition {
		for i := 0; i < 3; i++ {
			if _, err = mcnet.ReadF64(r); err != nil {
				return err
			}
		}
	}
	e := g.Entity(id)
	if e != nil && g.Events.Damage != nil {
		return fire(g.Events.Damage(e, sourceType))
	}
	return nil
}

func (g *Gamestate) applySetHeadRotation(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	headYaw, err := mcnet.ReadAngle(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.HeadYaw = headYaw
	}
	return nil
}

func (g *Gamestate) applySetEntityVelocity(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	var vx, vy, vz int16
	if vx, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if vy, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if vz, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.VelocityX = float32(vx) / velocityScale
		e.VelocityY = float32(vy) / velocityScale
		e.VelocityZ = float32(vz) / velocityScale
	}
	return nil
}

// applyEntityPosition handles the delta-move packets; withRotation selects
// the move-and-rotate variant.
func (g *Gamestate) applyEntityPosition(r *mcnet.Reader, withRotation bool) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	var dx, dy, dz int16
	if dx, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if dy, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	if dz, err = mcnet.ReadI16(r); err != nil {
		return err
	}
	var yaw, pitch mcnet.Angle
	if withRotation {
		if yaw, err = mcnet.ReadAngle(r); err != nil {
			return err
		}
		if pitch, err = mcnet.ReadAngle(r); err != nil {
			return err
		}
	}
	onGround, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}

	if e := g.Entity(id); e != nil {
		e.X += float64(dx) / deltaScale
		e.Y += float64(dy) / deltaScale
		e.Z += float64(dz) / deltaScale
		if withRotation {
			e.Yaw = yaw
			e.Pitch = pitch
		}
		e.OnGround = onGround
	}
	return nil
}

func (g *Gamestate) applyEntityRotation(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	yaw, err := mcnet.ReadAngle(r)
	if err != nil {
		return err
	}
	pitch, err := mcnet.ReadAngle(r)
	if err != nil {
		return err
	}
	onGround, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.Yaw = yaw
		e.Pitch = pitch
		e.OnGround = onGround
	}
	return nil
}

func (g *Gamestate) applyTeleportEntity(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
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
	yaw, err := mcnet.ReadAngle(r)
	if err != nil {
		return err
	}
	pitch, err := mcnet.ReadAngle(r)
	if err != nil {
		return err
	}
	onGround, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		e.X, e.Y, e.Z = x, y, z
		e.Yaw, e.Pitch = yaw, pitch
		e.OnGround = onGround
	}
	return nil
}

func (g *Gamestate) applyLinkEntities(r *mcnet.Reader) error {
	attached, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	holding, err := mcnet.ReadI32(r)
	if err != nil {
		return err
	}
	if e := g.Entity(attached); e != nil {
		e.Linked = holding
	}
	return nil
}

func (g *Gamestate) applySetEntityMetadata(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	metadata, err := readMetadata(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		if e.Metadata == nil {
			e.Metadata = metadata
			return nil
		}
		for index, value := range metadata {
			e.Metadata[index] = value
		}
	}
	return nil
}

func (g *Gamestate) applySetEquipment(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	e := g.Entity(id)
	for {
		slotByte, err := mcnet.ReadI8(r)
		if err != nil {
			return err
		}
		item, err := mcnet.ReadSlot(r)
		if err != nil {
			return err
		}
		if e != nil {
			e.SetItem(int(slotByte&0x7F), item)
		}
		// The top bit chains another equipment entry.
		if slotByte >= 0 {
			return nil
		}
	}
}

func (g *Gamestate) applyUpdateAttributes(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("negative attribute count %d: %w", count, mcnet.ErrMalformed)
	}
	attributes := make([]Attribute, 0, count)
	for i := int32(0); i < count; i++ {
		var a Attribute
		if a.Key, err = mcnet.ReadString(r); err != nil {
			return err
		}
		if a.Value, err = mcnet.ReadF64(r); err != nil {
			return err
		}
		modCount, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return err
		}
		for m := int32(0); m < modCount; m++ {
			var mod AttributeModifier
			if mod.UUID, err = mcnet.ReadUUID(r); err != nil {
				return err
			}
			if mod.Amount, err = mcnet.ReadF64(r); err != nil {
				return err
			}
			if mod.Operation, err = mcnet.ReadU8(r); err != nil {
				return err
			}
			a.Modifiers = append(a.Modifiers, mod)
		}
		attributes = append(attributes, a)
	}
	if e := g.Entity(id); e != nil {
		e.Attributes = attributes
	}
	return nil
}

func (g *Gamestate) applyEntityEffect(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	var effect Effect
	if effect.ID, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if effect.Amplifier, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	if effect.Duration, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if effect.Flags, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	hasFactorData, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if hasFactorData {
		if err := mcnet.SkipNBT(r); err != nil {
			return err
		}
	}
	if e := g.Entity(id); e != nil {
		for i := range e.Effects {
			if e.Effects[i].ID == effect.ID {
				e.Effects[i] = effect
				return nil
			}
		}
		e.Effects = append(e.Effects, effect)
	}
	return nil
}

func (g *Gamestate) applyRemoveEntityEffect(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	effectID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if e := g.Entity(id); e != nil {
		for i := range e.Effects {
			if e.Effects[i].ID == effectID {
				e.Effects = append(e.Effects[:i], e.Effects[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (g *Gamestate) applySetPassengers(r *mcnet.Reader) error {
	id, err := readEntityID(r)
	if err != nil {
		return err
	}
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("negative passenger count %d: %w", count, mcnet.ErrMalformed)
	}
	passengers := make([]int32, count)
	for i := range passengers {
		if passengers[i], _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
	}
	if e := g.Entity(id); e != nil {
		e.Passengers = passengers
	}
	return nil
}

func (g *Gamestate) applyRemoveEntities(r *mcnet.Reader) error {
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		id, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return err
		}
		el := g.Entities.Find(func(e *Entity) bool { return e.ID == id })
		if el == nil {
			continue
		}
		removed := g.Entities.Remove(el)
		if g.Events.RemoveEntity != nil {
			if err := fire(g.Events.RemoveEntity(removed)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Gamestate) applyPickupItem(r *mcnet.Reader) error {
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // collected entity
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // collector entity
		return err
	}
	_, _, err := mcnet.ReadVarInt(r) // item count
	return err
}
