package game

import (
	"fmt"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

func (g *Gamestate) applyLoginPlay(r *mcnet.Reader) error {
	var err error
	if g.Player.EntityID, err = mcnet.ReadI32(r); err != nil {
		return err
	}
	if g.Hardcore, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if g.Player.Gamemode, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	if g.Player.PreviousGamemode, err = mcnet.ReadI8(r); err != nil {
		return err
	}
	if g.Dimensions, err = mcnet.ReadStringArray(r); err != nil {
		return err
	}
	if g.RegistryCodec, err = mcnet.ReadNBT(r); err != nil {
		return fmt.Errorf("registry codec: %w", err)
	}
	if g.DimensionType, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.DimensionName, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.HashedSeed, err = mcnet.ReadI64(r); err != nil {
		return err
	}
	if g.MaxPlayers, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if g.ViewDistance, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if g.SimulationDistance, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	if g.ReducedDebugInfo, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if g.RespawnScreen, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if g.Debug, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if g.Flat, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if err = g.readDeathLocation(r); err != nil {
		return err
	}
	if g.PortalCooldown, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}

	// Gate for replying in play state.
	g.LoginPlay = true
	return nil
}

func (g *Gamestate) readDeathLocation(r *mcnet.Reader) error {
	var err error
	if g.HasDeathLocation, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if !g.HasDeathLocation {
		g.DeathDimension = ""
		g.DeathX, g.DeathY, g.DeathZ = 0, 0, 0
		return nil
	}
	if g.DeathDimension, err = mcnet.ReadString(r); err != nil {
		return err
	}
	g.DeathX, g.DeathY, g.DeathZ, err = mcnet.ReadPosition(r)
	return err
}

func (g *Gamestate) applyRespawn(r *mcnet.Reader) error {
	var err error
	if g.DimensionType, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.DimensionName, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.HashedSeed, err = mcnet.ReadI64(r); err != nil {
		return err
	}
	if g.Player.Gamemode, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	if g.Player.PreviousGamemode, err = mcnet.ReadI8(r); err != nil {
		return err
	}
	if g.Debug, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if g.Flat, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	if _, err = mcnet.ReadU8(r); err != nil { // data kept
		return err
	}
	if err = g.readDeathLocation(r); err != nil {
		return err
	}
	g.PortalCooldown, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applyPlayerAbilities(r *mcnet.Reader) error {
	var err error
	if g.Player.Abilities, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	if g.Player.FlyingSpeed, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	g.Player.FOVModifier, err = mcnet.ReadF32(r)
	return err
}

func (g *Gamestate) applySetHealth(r *mcnet.Reader) error {
	var err error
	if g.Player.Health, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	if g.Player.Food, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	g.Player.Saturation, err = mcnet.ReadF32(r)
	return err
}

func (g *Gamestate) applySetExperience(r *mcnet.Reader) error {
	var err error
	if g.Player.ExperienceBar, err = mcnet.ReadF32(r); err != nil {
		return err
	}
	if g.Player.TotalExperience, _, err = mcnet.ReadVarInt(r); err != nil {
		return err
	}
	g.Player.Level, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applySetHeldItem(r *mcnet.Reader) error {
	var err error
	g.Player.HeldSlot, err = mcnet.ReadU8(r)
	return err
}

func (g *Gamestate) applySetCamera(r *mcnet.Reader) error {
	var err error
	g.Player.Camera, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applySetRenderDistance(r *mcnet.Reader) error {
	var err error
	g.ViewDistance, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applySetSimulationDistance(r *mcnet.Reader) error {
	var err error
	g.SimulationDistance, _, err = mcnet.ReadVarInt(r)
	return err
}

func (g *Gamestate) applySetDefaultSpawn(r *mcnet.Reader) error {
	var err error
	if g.SpawnX, g.SpawnY, g.SpawnZ, err = mcnet.ReadPosition(r); err != nil {
		return err
	}
	g.SpawnAngle, err = mcnet.ReadF32(r)
	return err
}

func (g *Gamestate) applyUpdateTime(r *mcnet.Reader) error {
	var err error
	if g.WorldAge, err = mcnet.ReadI64(r); err != nil {
		return err
	}
	g.TimeOfDay, err = mcnet.ReadI64(r)
	return err
}

func (g *Gamestate) applySetTitleTimes(r *mcnet.Reader) error {
	var err error
	if g.Times.FadeIn, err = mcnet.ReadI32(r); err != nil {
		return err
	}
	if g.Times.Stay, err = mcnet.ReadI32(r); err != nil {
		return err
	}
	g.Times.FadeOut, err = mcnet.ReadI32(r)
	return err
}

func (g *Gamestate) applySetActionBar(r *mcnet.Reader) error {
	var err error
	g.ActionBar, err = mcnet.ReadString(r)
	return err
}

func (g *Gamestate) applyTabList(r *mcnet.Reader) error {
	var err error
	if g.TabHeader, err = mcnet.ReadString(r); err != nil {
		return err
	}
	g.TabFooter, err = mcnet.ReadString(r)
	return err
}

func (g *Gamestate) applyServerData(r *mcnet.Reader) error {
	var err error
	if g.Server.MOTD, err = mcnet.ReadString(r); err != nil {
		return err
	}
	hasIcon, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if hasIcon {
		if g.Server.Icon, err = mcnet.ReadByteArray(r); err != nil {
			return err
		}
	} else {
		g.Server.Icon = nil
	}
	g.Server.EnforcesSecureChat, err = mcnet.ReadBool(r)
	return err
}

func (g *Gamestate) applyFeatureFlags(r *mcnet.Reader) error {
	var err error
	g.FeatureFlags, err = mcnet.ReadStringArray(r)
	return err
}

func (g *Gamestate) applyResourcePack(r *mcnet.Reader) error {
	var err error
	if g.Pack.URL, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.Pack.Hash, err = mcnet.ReadString(r); err != nil {
		return err
	}
	if g.Pack.Forced, err = mcnet.ReadBool(r); err != nil {
		return err
	}
	hasPrompt, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if hasPrompt {
		if g.Pack.Prompt, err = mcnet.ReadString(r); err != nil {
			return err
		}
	} else {
		g.Pack.Prompt = ""
	}
	return nil
}

func (g *Gamestate) applySound(r *mcnet.Reader, id int32) error {
	soundID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if soundID == 0 {
		// Inline sound event: identifier plus optional fixed range.
		if _, err := mcnet.ReadString(r); err != nil {
			return err
		}
		hasRange, err := mcnet.ReadBool(r)
		if err != nil {
			return err
		}
		if hasRange {
			if _, err := mcnet.ReadF32(r); err != nil {
				return err
			}
		}
	}
	category, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if id == packet.IDSoundEffect {
		for i := 0; i < 3; i++ { // fixed-point effect position
			if _, err := mcnet.ReadI32(r); err != nil {
				return err
			}
		}
	} else {
		if _, _, err := mcnet.ReadVarInt(r); err != nil { // entity id
			return err
		}
	}
	if _, err := mcnet.ReadF32(r); err != nil { // volume
		return err
	}
	if _, err := mcnet.ReadF32(r); err != nil { // pitch
		return err
	}
	if _, err := mcnet.ReadI64(r); err != nil { // seed
		return err
	}
	if g.Events.Sound != nil {
		return fire(g.Events.Sound(soundID, category))
	}
	return nil
}

func (g *Gamestate) applyPlayerInfoRemove(r *mcnet.Reader) error {
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		id, err := mcnet.ReadUUID(r)
		if err != nil {
			return err
		}
		el := g.Roster.Find(func(e *RosterEntry) bool { return e.UUID == id })
		if el == nil {
			continue
		}
		g.Roster.Remove(el)
		if g.Events.RosterRemove != nil {
			if err := fire(g.Events.RosterRemove(id)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Gamestate) applyPlayerInfoUpdate(r *mcnet.Reader) error {
	actions, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		id, err := mcnet.ReadUUID(r)
		if err != nil {
			return err
		}
		entry := g.RosterFind(id)
		if entry == nil {
			entry = &RosterEntry{UUID: id}
			g.Roster.PushBack(entry)
		}
		if err := g.readInfoActions(r, entry, actions); err != nil {
			return err
		}
		if g.Events.RosterUpdate != nil {
			if err := fire(g.Events.RosterUpdate(entry)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Gamestate) readInfoActions(r *mcnet.Reader, entry *RosterEntry, actions uint8) error {
	var err error
	if actions&InfoAddPlayer != 0 {
		if entry.Name, err = mcnet.ReadString(r); err != nil {
			return err
		}
		propCount, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return err
		}
		entry.Properties = make([]RosterProperty, 0, propCount)
		for p := int32(0); p < propCount; p++ {
			var prop RosterProperty
			if prop.Name, err = mcnet.ReadString(r); err != nil {
				return err
			}
			if prop.Value, err = mcnet.ReadString(r); err != nil {
				return err
			}
			if prop.Signed, err = mcnet.ReadBool(r); err != nil {
				return err
			}
			if prop.Signed {
				if prop.Signature, err = mcnet.ReadString(r); err != nil {
					return err
				}
			}
			entry.Properties = append(entry.Properties, prop)
		}
	}
	if actions&InfoInitChat != 0 {
		if entry.HasChatSession, err = mcnet.ReadBool(r); err != nil {
			return err
		}
		if entry.HasChatSession {
			if entry.ChatSessionID, err = mcnet.ReadUUID(r); err != nil {
				return err
			}
			// Public key expiry, key bytes and signature are not retained.
			if _, err = mcnet.ReadI64(r); err != nil {
				return err
			}
			if _, err = mcnet.ReadByteArray(r); err != nil {
				return err
			}
			if _, err = mcnet.ReadByteArray(r); err != nil {
				return err
			}
		}
	}
	if actions&InfoUpdateGamemode != 0 {
		if entry.Gamemode, _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
	}
	if actions&InfoUpdateListed != 0 {
		if entry.Listed, err = mcnet.ReadBool(r); err != nil {
			return err
		}
	}
	if actions&InfoUpdatePing != 0 {
		if entry.Ping, _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
	}
	if actions&InfoDisplayName != 0 {
		if entry.HasDisplayName, err = mcnet.ReadBool(r); err != nil {
			return err
		}
		if entry.HasDisplayName {
			if entry.DisplayName, err = mcnet.ReadString(r); err != nil {
				return err
			}
		} else {
			entry.DisplayName = ""
		}
	}
	return nil
}
