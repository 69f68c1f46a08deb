package packet

// Play state, clientbound. The table is dense through 0x6E.
const (
	IDBundleDelimiter                 int32 = 0x00
	IDSpawnEntity                     int32 = 0x01
	IDSpawnExperienceOrb              int32 = 0x02
	IDSpawnPlayer                     int32 = 0x03
	IDEntityAnimation                 int32 = 0x04
	IDAwardStatistics                 int32 = 0x05
	IDAcknowledgeBlockChange          int32 = 0x06
	IDSetBlockDestroyStage            int32 = 0x07
	IDBlockEntityData                 int32 = 0x08
	IDBlockAction                     int32 = 0x09
	IDBlockUpdate                     int32 = 0x0A
	IDBossBar                         int32 = 0x0B
	IDChangeDifficulty                int32 = 0x0C
	IDChunkBiomes                     int32 = 0x0D
	IDClearTitles                     int32 = 0x0E
	IDCommandSuggestionsResponse      int32 = 0x0F
	IDCommands                        int32 = 0x10
	IDCloseContainer                  int32 = 0x11
	IDSetContainerContent             int32 = 0x12
	IDSetContainerProperty            int32 = 0x13
	IDSetContainerSlot                int32 = 0x14
	IDSetCooldown                     int32 = 0x15
	IDChatSuggestions                 int32 = 0x16
	IDPluginMessage                   int32 = 0x17
	IDDamageEvent                     int32 = 0x18
	IDDeleteMessage                   int32 = 0x19
	IDDisconnectPlay                  int32 = 0x1A
	IDDisguisedChatMessage            int32 = 0x1B
	IDEntityEvent                     int32 = 0x1C
	IDExplosion                       int32 = 0x1D
	IDUnloadChunk                     int32 = 0x1E
	IDGameEvent                       int32 = 0x1F
	IDOpenHorseScreen                 int32 = 0x20
	IDHurtAnimation                   int32 = 0x21
	IDInitializeWorldBorder           int32 = 0x22
	IDKeepAlive                       int32 = 0x23
	IDChunkDataAndUpdateLight         int32 = 0x24
	IDWorldEvent                      int32 = 0x25
	IDParticle                        int32 = 0x26
	IDUpdateLight                     int32 = 0x27
	IDLoginPlay                       int32 = 0x28
	IDMapData                         int32 = 0x29
	IDMerchantOffers                  int32 = 0x2A
	IDUpdateEntityPosition            int32 = 0x2B
	IDUpdateEntityPositionAndRotation int32 = 0x2C
	IDUpdateEntityRotation            int32 = 0x2D
	IDMoveVehicle                     int32 = 0x2E
	IDOpenBook                        int32 = 0x2F
	IDOpenScreen                      int32 = 0x30
	IDOpenSignEditor                  int32 = 0x31
	IDPingPlay                        int32 = 0x32
	IDPlaceGhostRecipe                int32 = 0x33
	IDPlayerAbilities                 int32 = 0x34
	IDPlayerChatMessage               int32 = 0x35
	IDEndCombat                       int32 = 0x36
	IDEnterCombat                     int32 = 0x37
	IDCombatDeath                     int32 = 0x38
	IDPlayerInfoRemove                int32 = 0x39
	IDPlayerInfoUpdate                int32 = 0x3A
	IDLookAt                          int32 = 0x3B
	IDSynchronizePlayerPosition       int32 = 0x3C
	IDUpdateRecipeBook                int32 = 0x3D
	IDRemoveEntities                  int32 = 0x3E
	IDRemoveEntityEffect              int32 = 0x3F
	IDResourcePack                    int32 = 0x40
	IDRespawn                         int32 = 0x41
	IDSetHeadRotation                 int32 = 0x42
	IDUpdateSectionBlocks             int32 = 0x43
	IDSelectAdvancementsTab           int32 = 0x44
	IDServerData                      int32 = 0x45
	IDSetActionBarText                int32 = 0x46
	IDSetBorderCenter                 int32 = 0x47
	IDSetBorderLerpSize               int32 = 0x48
	IDSetBorderSize                   int32 = 0x49
	IDSetBorderWarningDelay           int32 = 0x4A
	IDSetBorderWarningDistance        int32 = 0x4B
	IDSetCamera                       int32 = 0x4C
	IDSetHeldItem                     int32 = 0x4D
	IDSetCenterChunk                  int32 = 0x4E
	IDSetRenderDistance               int32 = 0x4F
	IDSetDefaultSpawnPosition         int32 = 0x50
	IDDisplayObjective                int32 = 0x51
	IDSetEntityMetadata               int32 = 0x52
	IDLinkEntities                    int32 = 0x53
	IDSetEntityVelocity               int32 = 0x54
	IDSetEquipment                    int32 = 0x55
	IDSetExperience                   int32 = 0x56
	IDSetHealth                       int32 = 0x57
	IDUpdateObjectives                int32 = 0x58
	IDSetPassengers                   int32 = 0x59
	IDUpdateTeams                     int32 = 0x5A
	IDUpdateScore                     int32 = 0x5B
	IDSetSimulationDistance           int32 = 0x5C
	IDSetSubtitleText                 int32 = 0x5D
	IDUpdateTime                      int32 = 0x5E
	IDSetTitleText                    int32 = 0x5F
	IDSetTitleAnimationTimes          int32 = 0x60
	IDEntitySoundEffect               int32 = 0x61
	IDSoundEffect                     int32 = 0x62
	IDStopSound                       int32 = 0x63
	IDSystemChatMessage               int32 = 0x64
	IDSetTabListHeaderAndFooter       int32 = 0x65
	IDTagQueryResponse                int32 = 0x66
	IDPickupItem                      int32 = 0x67
	IDTeleportEntity                  int32 = 0x68
	IDUpdateAdvancements              int32 = 0x69
	IDUpdateAttributes                int32 = 0x6A
	IDFeatureFlags                    int32 = 0x6B
	IDEntityEffect                    int32 = 0x6C
	IDUpdateRecipes                   int32 = 0x6D
	IDUpdateTags                      int32 = 0x6E
)

// Play state, serverbound. Only a handful are emitted by a headless client,
// but the table is dense through 0x32.
const (
	IDConfirmTeleportation       int32 = 0x00
	IDQueryBlockEntityTag        int32 = 0x01
	IDChangeDifficultyRequest    int32 = 0x02
	IDMessageAcknowledgment      int32 = 0x03
	IDChatCommand                int32 = 0x04
	IDChatMessage                int32 = 0x05
	IDPlayerSession              int32 = 0x06
	IDClientCommand              int32 = 0x07
	IDClientInformation          int32 = 0x08
	IDCommandSuggestionsRequest  int32 = 0x09
	IDClickContainerButton       int32 = 0x0A
	IDClickContainer             int32 = 0x0B
	IDCloseContainerRequest      int32 = 0x0C
	IDPluginMessageServerbound   int32 = 0x0D
	IDEditBook                   int32 = 0x0E
	IDQueryEntityTag             int32 = 0x0F
	IDInteract                   int32 = 0x10
	IDJigsawGenerate             int32 = 0x11
	IDKeepAliveServerbound       int32 = 0x12
	IDLockDifficulty             int32 = 0x13
	IDSetPlayerPosition          int32 = 0x14
	IDSetPlayerPositionRotation  int32 = 0x15
	IDSetPlayerRotation          int32 = 0x16
	IDSetPlayerOnGround          int32 = 0x17
	IDMoveVehicleServerbound     int32 = 0x18
	IDPaddleBoat                 int32 = 0x19
	IDPickItem                   int32 = 0x1A
	IDPlaceRecipe                int32 = 0x1B
	IDPlayerAbilitiesServerbound int32 = 0x1C
	IDPlayerAction               int32 = 0x1D
	IDPlayerCommand              int32 = 0x1E
	IDPlayerInput                int32 = 0x1F
	IDPongPlay                   int32 = 0x20
	IDChangeRecipeBookSettings   int32 = 0x21
	IDSetSeenRecipe              int32 = 0x22
	IDRenameItem                 int32 = 0x23
	IDResourcePackResponse       int32 = 0x24
	IDSeenAdvancements           int32 = 0x25
	IDSelectTrade                int32 = 0x26
	IDSetBeaconEffect            int32 = 0x27
	IDSetHeldItemServerbound     int32 = 0x28
	IDProgramCommandBlock        int32 = 0x29
	IDProgramCommandBlockCart    int32 = 0x2A
	IDSetCreativeModeSlot        int32 = 0x2B
	IDProgramJigsawBlock         int32 = 0x2C
	IDProgramStructureBlock      int32 = 0x2D
	IDUpdateSign                 int32 = 0x2E
	IDSwingArm                   int32 = 0x2F
	IDTeleportToEntity           int32 = 0x30
	IDUseItemOn                  int32 = 0x31
	IDUseItem                    int32 = 0x32
)

// KeepAlive is echoed verbatim on the serverbound keep-alive id.
type KeepAlive struct {
	KeepAliveID int64 `mc:"i64"`
}

func (KeepAlive) PacketID() int32 { return IDKeepAlive }

// KeepAliveResponse is the client echo of a KeepAlive.
type KeepAliveResponse struct {
	KeepAliveID int64 `mc:"i64"`
}

func (KeepAliveResponse) PacketID() int32 { return IDKeepAliveServerbound }

// Ping is echoed verbatim on the serverbound pong id.
type Ping struct {
	PingID int32 `mc:"i32"`
}

func (Ping) PacketID() int32 { return IDPingPlay }

// Pong is the client echo of a play-state Ping.
type Pong struct {
	PingID int32 `mc:"i32"`
}

func (Pong) PacketID() int32 { return IDPongPlay }

// ConfirmTeleportation acknowledges a Synchronize-Player-Position.
type ConfirmTeleportation struct {
	TeleportID int32 `mc:"varint"`
}

func (ConfirmTeleportation) PacketID() int32 { return IDConfirmTeleportation }

// DisconnectPlay terminates the play state with a JSON chat reason.
type DisconnectPlay struct {
	Reason string `mc:"string"`
}

func (DisconnectPlay) PacketID() int32 { return IDDisconnectPlay }

// Synchronize-Player-Position flag bits; a set bit makes the matching field
// a delta instead of an absolute value.
const (
	TeleportRelativeX    = 0x01
	TeleportRelativeY    = 0x02
	TeleportRelativeZ    = 0x04
	TeleportRelativeYRot = 0x08
	TeleportRelativeXRot = 0x10
)
