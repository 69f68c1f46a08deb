package game

import (
	"fmt"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
)

func (g *Gamestate) applyAwardStatistics(r *mcnet.Reader) error {
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		for f := 0; f < 3; f++ { // category, statistic, value
			if _, _, err := mcnet.ReadVarInt(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// Boss bar actions.
const (
	bossBarAdd          int32 = 0
	bossBarRemove       int32 = 1
	bossBarUpdateHealth int32 = 2
	bossBarUpdateTitle  int32 = 3
	bossBarUpdateStyle  int32 = 4
	bossBarUpdateFlags  int32 = 5
)

func (g *Gamestate) applyBossBar(r *mcnet.Reader) error {
	id, err := mcnet.ReadUUID(r)
	if err != nil {
		return err
	}
	action, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}

	find := func() *BossBar {
		for i := range g.BossBars {
			if g.BossBars[i].UUID == id {
				return &g.BossBars[i]
			}
		}
		return nil
	}

	switch action {
	case bossBarAdd:
		bar := BossBar{UUID: id}
		if bar.Title, err = mcnet.ReadString(r); err != nil {
			return err
		}
		if bar.Health, err = mcnet.ReadF32(r); err != nil {
			return err
		}
		if bar.Color, _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
		if bar.Division, _, err = mcnet.ReadVarInt(r); err != nil {
			return err
		}
		if bar.Flags, err = mcnet.ReadU8(r); err != nil {
			return err
		}
		if existing := find(); existing != nil {
			*existing = bar
		} else {
			g.BossBars = append(g.BossBars, bar)
		}
	case bossBarRemove:
		for i := range g.BossBars {
			if g.BossBars[i].UUID == id {
				g.BossBars = append(g.BossBars[:i], g.BossBars[i+1:]...)
				break
			}
		}
	case bossBarUpdateHealth:
		health, err := mcnet.ReadF32(r)
		if err != nil {
			return err
		}
		if bar := find(); bar != nil {
			bar.Health = health
		}
	case bossBarUpdateTitle:
		title, err := mcnet.ReadString(r)
		if err != nil {
			return err
		}
		if bar := find(); bar != nil {
			bar.Title = title
		}
	case bossBarUpdateStyle:
		color, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return err
		}
		division, _, err := mcnet.ReadVarInt(r)
		if err != nil {
			return err
		}
		if bar := find(); bar != nil {
			bar.Color = color
			bar.Division = division
		}
	case bossBarUpdateFlags:
		flags, err := mcnet.ReadU8(r)
		if err != nil {
			return err
		}
		if bar := find(); bar != nil {
			bar.Flags = flags
		}
	default:
		return fmt.Errorf("boss bar action %d: %w", action, mcnet.ErrMalformed)
	}
	return nil
}

func (g *Gamestate) applyChangeDifficulty(r *mcnet.Reader) error {
	var err error
	if g.Difficulty, err = mcnet.ReadU8(r); err != nil {
		return err
	}
	g.DifficultyLocked, err = mcnet.ReadBool(r)
	return err
}

func (g *Gamestate) applyClearTitles(r *mcnet.Reader) error {
	reset, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	g.Title = ""
	g.Subtitle = ""
	g.ActionBar = ""
	if reset {
		g.Times = TitleTimes{}
	}
	return nil
}

func (g *Gamestate) applyCloseContainer(r *mcnet.Reader) error {
	if _, err := mcnet.ReadU8(r); err != nil { // window id
		return err
	}
	g.OpenContainer = nil
	return nil
}

func (g *Gamestate) applySetContainerContent(r *mcnet.Reader) error {
	windowID, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // state id
		return err
	}
	count, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("negative slot count %d: %w", count, mcnet.ErrMalformed)
	}
	slots := make([]mcnet.Slot, count)
	for i := range slots {
		if slots[i], err = mcnet.ReadSlot(r); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	carried, err := mcnet.ReadSlot(r)
	if err != nil {
		return fmt.Errorf("carried slot: %w", err)
	}

	g.Player.Carried = carried
	c := g.Container(windowID)
	if c == nil {
		return nil
	}
	c.Slots = slots
	if g.Events.Container != nil {
		return fire(g.Events.Container(c))
	}
	return nil
}

func (g *Gamestate) applySetContainerProperty(r *mcnet.Reader) error {
	windowID, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	property, err := mcnet.ReadI16(r)
	if err != nil {
		return err
	}
	value, err := mcnet.ReadI16(r)
	if err != nil {
		return err
	}
	if c := g.Container(windowID); c != nil {
		if c.Flags == nil {
			c.Flags = make(map[int16]int16)
		}
		c.Flags[property] = value
		if g.Events.Container != nil {
			return fire(g.Events.Container(c))
		}
	}
	return nil
}

func (g *Gamestate) applySetContainerSlot(r *mcnet.Reader) error {
	windowID, err := mcnet.ReadI8(r)
	if err != nil {
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // state id
		return err
	}
	slotIndex, err := mcnet.ReadI16(r)
	if err != nil {
		return err
	}
	item, err := mcnet.ReadSlot(r)
	if err != nil {
		return err
	}

	// Window -1 with slot -1 replaces the carried stack.
	if windowID == -1 && slotIndex == -1 {
		g.Player.Carried = item
		return nil
	}
	c := g.Container(uint8(windowID))
	if c == nil {
		return nil
	}
	c.SetSlot(int(slotIndex), item)
	if g.Events.Container != nil {
		return fire(g.Events.Container(c))
	}
	return nil
}

func (g *Gamestate) applySetCooldown(r *mcnet.Reader) error {
	itemID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	ticks, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if ticks == 0 {
		delete(g.Player.Cooldowns, itemID)
	} else {
		g.Player.Cooldowns[itemID] = ticks
	}
	return nil
}

func (g *Gamestate) applyOpenScreen(r *mcnet.Reader) error {
	windowID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	windowType, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	title, err := mcnet.ReadString(r)
	if err != nil {
		return err
	}
	g.OpenContainer = newContainer(uint8(windowID), windowType, title)
	if g.Events.Container != nil {
		return fire(g.Events.Container(g.OpenContainer))
	}
	return nil
}

// horseScreenType marks containers opened by the horse screen, which has no
// entry in the window-type registry.
const horseScreenType int32 = -1

func (g *Gamestate) applyOpenHorseScreen(r *mcnet.Reader) error {
	windowID, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	slotCount, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	if _, err := mcnet.ReadI32(r); err != nil { // horse entity id
		return err
	}
	c := newContainer(windowID, horseScreenType, "")
	c.Slots = make([]mcnet.Slot, slotCount)
	g.OpenContainer = c
	if g.Events.Container != nil {
		return fire(g.Events.Container(c))
	}
	return nil
}

func (g *Gamestate) applyPluginMessage(r *mcnet.Reader) error {
	if _, err := mcnet.ReadString(r); err != nil { // channel identifier
		return err
	}
	return r.Skip(r.Len())
}

func (g *Gamestate) applyDisguisedChat(r *mcnet.Reader) error {
	message, err := mcnet.ReadString(r)
	if err != nil {
		return err
	}
	if err := r.Skip(r.Len()); err != nil { // chat type and names
		return err
	}
	g.ChatLog = append(g.ChatLog, ChatEntry{Message: message})
	if g.Events.Chat != nil {
		return fire(g.Events.Chat(message, false))
	}
	return nil
}

func (g *Gamestate) applyPlayerChat(r *mcnet.Reader) error {
	sender, err := mcnet.ReadUUID(r)
	if err != nil {
		return err
	}
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // message index
		return err
	}
	hasSignature, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	if hasSignature {
		if err := r.Skip(256); err != nil {
			return err
		}
	}
	message, err := mcnet.ReadString(r)
	if err != nil {
		return err
	}
	// Timestamps, salt, previous-message chain, filtering and chat-type
	// formatting follow; the log keeps the plain body only.
	if err := r.Skip(r.Len()); err != nil {
		return err
	}
	g.ChatLog = append(g.ChatLog, ChatEntry{Message: message, Sender: sender})
	if g.Events.Chat != nil {
		return fire(g.Events.Chat(message, false))
	}
	return nil
}

func (g *Gamestate) applySystemChat(r *mcnet.Reader) error {
	message, err := mcnet.ReadString(r)
	if err != nil {
		return err
	}
	overlay, err := mcnet.ReadBool(r)
	if err != nil {
		return err
	}
	g.ChatLog = append(g.ChatLog, ChatEntry{Message: message, System: true})
	if g.Events.Chat != nil {
		return fire(g.Events.Chat(message, overlay))
	}
	return nil
}

func (g *Gamestate) applyTagQueryResponse(r *mcnet.Reader) error {
	transactionID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return err
	}
	tag, err := mcnet.ReadNBT(r)
	if err != nil {
		return err
	}
	for i := range g.NBTQueries {
		if g.NBTQueries[i].TransactionID == transactionID {
			g.NBTQueries[i].Result = tag
			return nil
		}
	}
	return nil
}

func (g *Gamestate) applyEndCombat(r *mcnet.Reader) error {
	g.InCombat = false
	_, _, err := mcnet.ReadVarInt(r) // duration
	return err
}

func (g *Gamestate) applyCombatDeath(r *mcnet.Reader) error {
	if _, _, err := mcnet.ReadVarInt(r); err != nil { // player entity id
		return err
	}
	message, err := mcnet.ReadString(r)
	if err != nil {
		return err
	}
	if g.Events.Death != nil {
		return fire(g.Events.Death(message))
	}
	return nil
}

// Game-event sub-ids with gamestate side effects.
const (
	gameEventChangeGamemode uint8 = 3
	gameEventRainStart      uint8 = 1
	gameEventRainEnd        uint8 = 2
)

func (g *Gamestate) applyGameEvent(r *mcnet.Reader) error {
	event, err := mcnet.ReadU8(r)
	if err != nil {
		return err
	}
	value, err := mcnet.ReadF32(r)
	if err != nil {
		return err
	}
	if event == gameEventChangeGamemode {
		g.Player.Gamemode = uint8(value)
	}
	if int(event) < genericEvents && g.Events.Generic[event] != nil {
		return fire(g.Events.Generic[event](value))
	}
	return nil
}
