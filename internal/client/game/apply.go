package game

import (
	"fmt"
	"io"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

// Apply projects one clientbound play packet onto the gamestate. Responsive
// packets (keep-alive, play ping, position synchronisation, disconnect,
// bundle delimiters) belong to the connection layer and never reach here.
// A failure discards the packet and leaves prior mutations in place.
func (g *Gamestate) Apply(v *version.Version, id int32, payload []byte) error {
	r := mcnet.NewReader(payload)

	var err error
	switch id {
	case packet.IDSpawnEntity:
		err = g.applySpawnEntity(r)
	case packet.IDSpawnExperienceOrb:
		err = g.applySpawnExperienceOrb(r, v)
	case packet.IDSpawnPlayer:
		err = g.applySpawnPlayer(r, v)
	case packet.IDEntityAnimation:
		err = g.applyEntityAnimation(r)
	case packet.IDAwardStatistics:
		err = g.applyAwardStatistics(r)
	case packet.IDAcknowledgeBlockChange:
		err = g.applyAcknowledgeBlockChange(r)
	case packet.IDSetBlockDestroyStage:
		err = g.applySetBlockDestroyStage(r)
	case packet.IDBlockEntityData:
		err = g.applyBlockEntityData(r)
	case packet.IDBlockAction:
		err = g.applyBlockAction(r)
	case packet.IDBlockUpdate:
		err = g.applyBlockUpdate(r, v)
	case packet.IDBossBar:
		err = g.applyBossBar(r)
	case packet.IDChangeDifficulty:
		err = g.applyChangeDifficulty(r)
	case packet.IDChunkBiomes:
		err = g.applyChunkBiomes(r, v)
	case packet.IDClearTitles:
		err = g.applyClearTitles(r)
	case packet.IDCommandSuggestionsResponse, packet.IDCommands, packet.IDChatSuggestions,
		packet.IDDeleteMessage, packet.IDMapData, packet.IDMerchantOffers,
		packet.IDOpenBook, packet.IDOpenSignEditor, packet.IDPlaceGhostRecipe,
		packet.IDLookAt, packet.IDUpdateRecipeBook, packet.IDSelectAdvancementsTab,
		packet.IDDisplayObjective, packet.IDUpdateObjectives, packet.IDUpdateTeams,
		packet.IDUpdateScore, packet.IDStopSound,
		packet.IDUpdateAdvancements, packet.IDUpdateRecipes, packet.IDUpdateTags,
		packet.IDUpdateLight, packet.IDMoveVehicle:
		err = g.applyDiscarded(r, id)
	case packet.IDCloseContainer:
		err = g.applyCloseContainer(r)
	case packet.IDSetContainerContent:
		err = g.applySetContainerContent(r)
	case packet.IDSetContainerProperty:
		err = g.applySetContainerProperty(r)
	case packet.IDSetContainerSlot:
		err = g.applySetContainerSlot(r)
	case packet.IDSetCooldown:
		err = g.applySetCooldown(r)
	case packet.IDPluginMessage:
		err = g.applyPluginMessage(r)
	case packet.IDDamageEvent:
		err = g.applyDamageEvent(r)
	case packet.IDDisguisedChatMessage:
		err = g.applyDisguisedChat(r)
	case packet.IDEntityEvent:
		err = g.applyEntityEvent(r)
	case packet.IDExplosion:
		err = g.applyExplosion(r)
	case packet.IDUnloadChunk:
		err = g.applyUnloadChunk(r)
	case packet.IDGameEvent:
		err = g.applyGameEvent(r)
	case packet.IDOpenHorseScreen:
		err = g.applyOpenHorseScreen(r)
	case packet.IDHurtAnimation:
		err = g.applyHurtAnimation(r)
	case packet.IDInitializeWorldBorder:
		err = g.applyInitializeWorldBorder(r)
	case packet.IDChunkDataAndUpdateLight:
		err = g.applyChunkData(r, v)
	case packet.IDWorldEvent:
		err = g.applyWorldEvent(r)
	case packet.IDParticle:
		err = g.applyParticle(r)
	case packet.IDLoginPlay:
		err = g.applyLoginPlay(r)
	case packet.IDUpdateEntityPosition:
		err = g.applyEntityPosition(r, false)
	case packet.IDUpdateEntityPositionAndRotation:
		err = g.applyEntityPosition(r, true)
	case packet.IDUpdateEntityRotation:
		err = g.applyEntityRotation(r)
	case packet.IDOpenScreen:
		err = g.applyOpenScreen(r)
	case packet.IDPlayerAbilities:
		err = g.applyPlayerAbilities(r)
	case packet.IDPlayerChatMessage:
		err = g.applyPlayerChat(r)
	case packet.IDEndCombat:
		err = g.applyEndCombat(r)
	case packet.IDEnterCombat:
		g.InCombat = true
	case packet.IDCombatDeath:
		err = g.applyCombatDeath(r)
	case packet.IDPlayerInfoRemove:
		err = g.applyPlayerInfoRemove(r)
	case packet.IDPlayerInfoUpdate:
		err = g.applyPlayerInfoUpdate(r)
	case packet.IDRemoveEntities:
		err = g.applyRemoveEntities(r)
	case packet.IDRemoveEntityEffect:
		err = g.applyRemoveEntityEffect(r)
	case packet.IDResourcePack:
		err = g.applyResourcePack(r)
	case packet.IDRespawn:
		err = g.applyRespawn(r)
	case packet.IDSetHeadRotation:
		err = g.applySetHeadRotation(r)
	case packet.IDUpdateSectionBlocks:
		err = g.applyUpdateSectionBlocks(r, v)
	case packet.IDServerData:
		err = g.applyServerData(r)
	case packet.IDSetActionBarText:
		err = g.applySetActionBar(r)
	case packet.IDSetBorderCenter:
		err = g.applySetBorderCenter(r)
	case packet.IDSetBorderLerpSize:
		err = g.applySetBorderLerpSize(r)
	case packet.IDSetBorderSize:
		err = g.applySetBorderSize(r)
	case packet.IDSetBorderWarningDelay:
		err = g.applySetBorderWarningDelay(r)
	case packet.IDSetBorderWarningDistance:
		err = g.applySetBorderWarningDistance(r)
	case packet.IDSetCamera:
		err = g.applySetCamera(r)
	case packet.IDSetHeldItem:
		err = g.applySetHeldItem(r)
	case packet.IDSetCenterChunk:
		err = g.applySetCenterChunk(r)
	case packet.IDSetRenderDistance:
		err = g.applySetRenderDistance(r)
	case packet.IDSetDefaultSpawnPosition:
		err = g.applySetDefaultSpawn(r)
	case packet.IDSetEntityMetadata:
		err = g.applySetEntityMetadata(r)
	case packet.IDLinkEntities:
		err = g.applyLinkEntities(r)
	case packet.IDSetEntityVelocity:
		err = g.applySetEntityVelocity(r)
	case packet.IDSetEquipment:
		err = g.applySetEquipment(r)
	case packet.IDSetExperience:
		err = g.applySetExperience(r)
	case packet.IDSetHealth:
		err = g.applySetHealth(r)
	case packet.IDSetPassengers:
		err = g.applySetPassengers(r)
	case packet.IDSetSimulationDistance:
		err = g.applySetSimulationDistance(r)
	case packet.IDSetSubtitleText:
		g.Subtitle, err = mcnet.ReadString(r)
	case packet.IDUpdateTime:
		err = g.applyUpdateTime(r)
	case packet.IDSetTitleText:
		g.Title, err = mcnet.ReadString(r)
	case packet.IDSetTitleAnimationTimes:
		err = g.applySetTitleTimes(r)
	case packet.IDEntitySoundEffect, packet.IDSoundEffect:
		err = g.applySound(r, id)
	case packet.IDSystemChatMessage:
		err = g.applySystemChat(r)
	case packet.IDSetTabListHeaderAndFooter:
		err = g.applyTabList(r)
	case packet.IDTagQueryResponse:
		err = g.applyTagQueryResponse(r)
	case packet.IDPickupItem:
		err = g.applyPickupItem(r)
	case packet.IDTeleportEntity:
		err = g.applyTeleportEntity(r)
	case packet.IDUpdateAttributes:
		err = g.applyUpdateAttributes(r)
	case packet.IDFeatureFlags:
		err = g.applyFeatureFlags(r)
	case packet.IDEntityEffect:
		err = g.applyEntityEffect(r)
	default:
		return fmt.Errorf("play packet %#02x outside the clientbound table: %w", id, mcnet.ErrMalformed)
	}

	if err != nil {
		return fmt.Errorf("apply play packet %#02x: %w", id, err)
	}
	return nil
}

// applyDiscarded acknowledges a cold-path packet: the payload is consumed
// whole and dropped without side effect.
func (g *Gamestate) applyDiscarded(r *mcnet.Reader, _ int32) error {
	_, err := io.ReadAll(r)
	return err
}

func readEntityID(r *mcnet.Reader) (int32, error) {
	id, _, err := mcnet.ReadVarInt(r)
	return id, err
}
