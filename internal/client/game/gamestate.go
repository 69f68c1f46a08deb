package game

import (
	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-client/internal/client/nbt"
	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

// Block-change statuses mirrored from the player-action packet.
const (
	DigStarted   int32 = 0
	DigCancelled int32 = 1
	DigFinished  int32 = 2
)

// BlockChange is a client-initiated block mutation awaiting the server's
// acknowledgement.
type BlockChange struct {
	SequenceID int32
	Status     int32
	X, Y, Z    int
}

// NBTQuery is a pending block-entity tag query; the response fills Result.
type NBTQuery struct {
	TransactionID int32
	Result        *nbt.Tag
}

// BossBar is one active boss fight display.
type BossBar struct {
	UUID     uuid.UUID
	Title    string
	Health   float32
	Color    int32
	Division int32
	Flags    uint8
}

// ChatEntry is one received chat line, already reduced to its JSON text.
type ChatEntry struct {
	Message string
	Sender  uuid.UUID
	System  bool
}

// ServerData carries the server's self-description.
type ServerData struct {
	MOTD               string
	Icon               []byte
	EnforcesSecureChat bool
}

// ResourcePack is the last resource pack push received.
type ResourcePack struct {
	URL    string
	Hash   string
	Forced bool
	Prompt string
}

// TitleTimes are the fade timings for the current title.
type TitleTimes struct {
	FadeIn, Stay, FadeOut int32
}

// Gamestate is the in-memory mirror of the server-authoritative world. It
// owns every entity, chunk, container and roster entry it holds; weak
// references (entity links, the camera, the centre chunk) are stored as ids
// and resolved on use.
type Gamestate struct {
	Player Player

	WorldAge  int64
	TimeOfDay int64

	Hardcore      bool
	Dimensions    []string
	RegistryCodec *nbt.Tag
	DimensionType string
	DimensionName string
	HashedSeed    int64

	MaxPlayers         int32
	ViewDistance       int32
	SimulationDistance int32

	ReducedDebugInfo bool
	RespawnScreen    bool
	Debug            bool
	Flat             bool
	InCombat         bool
	LoginPlay        bool

	HasDeathLocation       bool
	DeathDimension         string
	DeathX, DeathY, DeathZ int

	PortalCooldown int32

	Entities *List[*Entity]
	Chunks   *List[*Chunk]
	Roster   *List[*RosterEntry]

	PendingChanges []BlockChange
	NBTQueries     []NBTQuery

	Difficulty       uint8
	DifficultyLocked bool

	OpenContainer *Container

	Border   WorldBorder
	BossBars []BossBar

	FeatureFlags []string
	Server       ServerData
	Pack         ResourcePack

	SpawnX, SpawnY, SpawnZ int
	SpawnAngle             float32

	Title     string
	Subtitle  string
	ActionBar string
	Times     TitleTimes
	TabHeader string
	TabFooter string
	ChatLog   []ChatEntry

	Events Events
}

func NewGamestate() *Gamestate {
	g := &Gamestate{
		Entities: NewList[*Entity](),
		Chunks:   NewList[*Chunk](),
		Roster:   NewList[*RosterEntry](),
	}
	g.Player.Inventory.Flags = make(map[int16]int16)
	g.Player.Cooldowns = make(map[int32]int32)
	g.Player.Camera = NoEntity
	return g
}

// Close releases everything the gamestate transitively owns in one pass.
func (g *Gamestate) Close() {
	g.Entities.Clear(nil)
	g.Chunks.Clear(func(c *Chunk) {
		for i := range c.Sections {
			c.Sections[i] = nil
		}
	})
	g.Roster.Clear(nil)
	g.OpenContainer = nil
	g.RegistryCodec = nil
	g.PendingChanges = nil
	g.NBTQueries = nil
}

// Entity resolves an entity id against the live set.
func (g *Gamestate) Entity(id int32) *Entity {
	e := g.Entities.Find(func(e *Entity) bool { return e.ID == id })
	if e == nil {
		return nil
	}
	return e.Value
}

// Chunk resolves chunk coordinates against the loaded set.
func (g *Gamestate) Chunk(x, z int32) *Chunk {
	e := g.Chunks.Find(func(c *Chunk) bool { return c.X == x && c.Z == z })
	if e == nil {
		return nil
	}
	return e.Value
}

// BlockAt returns the loaded block at world coordinates, or nil.
func (g *Gamestate) BlockAt(x, y, z int) *Block {
	c := g.Chunk(int32(x>>4), int32(z>>4))
	if c == nil {
		return nil
	}
	return c.Block(x, y, z)
}

// setBlockAt stores (or clears, for nil) the block at world coordinates.
func (g *Gamestate) setBlockAt(x, y, z int, b *Block) {
	c := g.Chunk(int32(x>>4), int32(z>>4))
	if c == nil {
		return
	}
	c.SetBlock(x, y, z, b)
}

// Container resolves a window id: 0 is the player inventory, any other id
// must match the open container.
func (g *Gamestate) Container(windowID uint8) *Container {
	if windowID == PlayerInventoryID {
		return &g.Player.Inventory
	}
	if g.OpenContainer != nil && g.OpenContainer.ID == windowID {
		return g.OpenContainer
	}
	return nil
}

// RosterFind resolves a roster entry by UUID.
func (g *Gamestate) RosterFind(id uuid.UUID) *RosterEntry {
	e := g.Roster.Find(func(r *RosterEntry) bool { return r.UUID == id })
	if e == nil {
		return nil
	}
	return e.Value
}

// PushBlockChange records a client-initiated change awaiting acknowledgement.
func (g *Gamestate) PushBlockChange(sequenceID, status int32, x, y, z int) {
	g.PendingChanges = append(g.PendingChanges, BlockChange{
		SequenceID: sequenceID,
		Status:     status,
		X:          x, Y: y, Z: z,
	})
}

// PushNBTQuery registers a block-entity tag query transaction.
func (g *Gamestate) PushNBTQuery(transactionID int32) {
	g.NBTQueries = append(g.NBTQueries, NBTQuery{TransactionID: transactionID})
}

// ApplySynchronizePosition applies a Synchronize-Player-Position payload and
// returns the teleport id to confirm. Each flag bit makes the matching
// field additive instead of absolute.
func (g *Gamestate) ApplySynchronizePosition(r *mcnet.Reader) (int32, error) {
	x, err := mcnet.ReadF64(r)
	if err != nil {
		return 0, err
	}
	y, err := mcnet.ReadF64(r)
	if err != nil {
		return 0, err
	}
	z, err := mcnet.ReadF64(r)
	if err != nil {
		return 0, err
	}
	yaw, err := mcnet.ReadF32(r)
	if err != nil {
		return 0, err
	}
	pitch, err := mcnet.ReadF32(r)
	if err != nil {
		return 0, err
	}
	flags, err := mcnet.ReadU8(r)
	if err != nil {
		return 0, err
	}
	teleportID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return 0, err
	}

	apply64 := func(dst *float64, v float64, relative bool) {
		if relative {
			*dst += v
		} else {
			*dst = v
		}
	}
	apply32 := func(dst *float32, v float32, relative bool) {
		if relative {
			*dst += v
		} else {
			*dst = v
		}
	}

	p := &g.Player
	apply64(&p.X, x, flags&packet.TeleportRelativeX != 0)
	apply64(&p.Y, y, flags&packet.TeleportRelativeY != 0)
	apply64(&p.Z, z, flags&packet.TeleportRelativeZ != 0)
	apply32(&p.Yaw, yaw, flags&packet.TeleportRelativeYRot != 0)
	apply32(&p.Pitch, pitch, flags&packet.TeleportRelativeXRot != 0)

	if g.Events.Position != nil {
		if err := fire(g.Events.Position(p)); err != nil {
			return teleportID, err
		}
	}
	return teleportID, nil
}
