package game

import "fmt"

// File tile.go holds the terrain that makes up a level.

// TileKind is the type of terrain in one grid of a level.
type TileKind int

const (
	Floor TileKind = iota
	Granite
	Vein
	Rubble
	DoorClosed
	DoorOpen
	DoorLocked
	DoorBroken
	Trap
	HiddenTrap
	StairUp
	StairDown
	ShopEntrance
)

// tileInfo is the fixed description of a kind of tile.
type tileInfo struct {
	glyph    rune
	name     string
	passable bool

	// strength is how many successful turns of work it takes to remove,
	// unlock, or disarm the tile. Zero means it cannot be worked on.
	strength int
}

var tileTable = map[TileKind]tileInfo{
	Floor:        {glyph: '.', name: "floor", passable: true},
	Granite:      {glyph: '#', name: "granite wall"},
	Vein:         {glyph: '%', name: "mineral vein", strength: 3},
	Rubble:       {glyph: ':', name: "pile of rubble", strength: 2},
	DoorClosed:   {glyph: '+', name: "closed door"},
	DoorOpen:     {glyph: '\'', name: "open door", passable: true},
	DoorLocked:   {glyph: '&', name: "locked door", strength: 3},
	DoorBroken:   {glyph: '/', name: "broken door", passable: true},
	Trap:         {glyph: '^', name: "trap", passable: true, strength: 2},
	HiddenTrap:   {glyph: ';', name: "floor", passable: true, strength: 2},
	StairUp:      {glyph: '<', name: "up staircase", passable: true},
	StairDown:    {glyph: '>', name: "down staircase", passable: true},
	ShopEntrance: {glyph: '1', name: "shop entrance", passable: true},
}

var tilesByGlyph = func() map[rune]TileKind {
	m := map[rune]TileKind{}
	for k, info := range tileTable {
		m[info.glyph] = k
	}
	return m
}()

// Tile is one grid of a level.
type Tile struct {
	Kind TileKind

	// Work is how much of the tile's strength has been worn away by tunneling,
	// lock picking, bashing, or disarming.
	Work int
}

// Glyph returns the map character for the tile. Hidden traps are shown as
// floor.
func (t Tile) Glyph() rune {
	if t.Kind == HiddenTrap {
		return tileTable[Floor].glyph
	}
	return tileTable[t.Kind].glyph
}

// Name returns what the player would call the tile.
func (t Tile) Name() string {
	return tileTable[t.Kind].name
}

// Passable returns whether the player can walk onto the tile.
func (t Tile) Passable() bool {
	return tileTable[t.Kind].passable
}

// Remaining returns how much more work the tile takes before it gives way.
func (t Tile) Remaining() int {
	r := tileTable[t.Kind].strength - t.Work
	if r < 0 {
		return 0
	}
	return r
}

// IsDoor returns whether the tile is any kind of door.
func (t Tile) IsDoor() bool {
	switch t.Kind {
	case DoorClosed, DoorOpen, DoorLocked, DoorBroken:
		return true
	default:
		return false
	}
}

// IsClosedDoor returns whether the tile is a door that blocks movement.
func (t Tile) IsClosedDoor() bool {
	return t.Kind == DoorClosed || t.Kind == DoorLocked
}

// IsKnownTrap returns whether the tile is a trap the player knows about.
func (t Tile) IsKnownTrap() bool {
	return t.Kind == Trap
}

func (t Tile) String() string {
	return fmt.Sprintf("Tile(%s)", t.Name())
}
