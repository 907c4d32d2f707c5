package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gamecmd/internal/direction"
)

// File level.go holds the grid the player moves around in.

// Level is a rectangular grid of tiles. Coordinates are (x, y) with y growing
// downward; (0, 0) is the top-left grid.
type Level struct {
	// Name is the name of the level shown to the player.
	Name string

	// Depth is how far down the dungeon the level is. The town is depth 0.
	Depth int

	width  int
	height int
	tiles  []Tile

	// changes counts calls to Set so that anything derived from the terrain
	// can tell when it is out of date.
	changes int
}

// NewLevel creates a level from rows of map glyphs. All rows must be the same
// length and every glyph must be a known tile or '@'. The position of the '@'
// is returned as the player start; it is floor.
func NewLevel(name string, depth int, rows []string) (lvl *Level, startX, startY int, err error) {
	if len(rows) == 0 {
		return nil, 0, 0, fmt.Errorf("map has no rows")
	}

	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, 0, 0, fmt.Errorf("map rows are empty")
	}

	lvl = &Level{
		Name:   name,
		Depth:  depth,
		width:  width,
		height: len(rows),
		tiles:  make([]Tile, width*len(rows)),
	}

	foundStart := false
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, 0, 0, fmt.Errorf("row %d: has %d columns but row 0 has %d", y, len(runes), width)
		}

		for x, ch := range runes {
			if ch == '@' {
				if foundStart {
					return nil, 0, 0, fmt.Errorf("row %d: second player start at column %d", y, x)
				}
				foundStart = true
				startX, startY = x, y
				ch = '.'
			}

			kind, ok := tilesByGlyph[ch]
			if !ok {
				return nil, 0, 0, fmt.Errorf("row %d: unknown map glyph %q at column %d", y, ch, x)
			}
			lvl.tiles[y*width+x] = Tile{Kind: kind}
		}
	}

	if !foundStart {
		return nil, 0, 0, fmt.Errorf("map has no player start ('@')")
	}

	return lvl, startX, startY, nil
}

// Width returns the number of columns in the level.
func (lvl *Level) Width() int {
	return lvl.width
}

// Height returns the number of rows in the level.
func (lvl *Level) Height() int {
	return lvl.height
}

// InBounds returns whether (x, y) is a grid in the level.
func (lvl *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < lvl.width && y < lvl.height
}

// At returns the tile at (x, y). Grids outside the level are granite.
func (lvl *Level) At(x, y int) Tile {
	if !lvl.InBounds(x, y) {
		return Tile{Kind: Granite}
	}
	return lvl.tiles[y*lvl.width+x]
}

// Set replaces the tile at (x, y). Grids outside the level are ignored.
func (lvl *Level) Set(x, y int, t Tile) {
	if !lvl.InBounds(x, y) {
		return
	}
	lvl.tiles[y*lvl.width+x] = t
	lvl.changes++
}

// Rows gives the level as map glyphs, with the player shown at (px, py).
func (lvl *Level) Rows(px, py int) []string {
	rows := make([]string, lvl.height)
	for y := 0; y < lvl.height; y++ {
		var sb strings.Builder
		for x := 0; x < lvl.width; x++ {
			if x == px && y == py {
				sb.WriteRune('@')
				continue
			}
			t := lvl.At(x, y)
			if t.Kind == HiddenTrap {
				// saved maps must keep hidden traps
				sb.WriteRune(tileTable[HiddenTrap].glyph)
				continue
			}
			sb.WriteRune(t.Glyph())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Render gives the level as the player sees it, with the player shown at
// (px, py).
func (lvl *Level) Render(px, py int) string {
	var sb strings.Builder
	for y := 0; y < lvl.height; y++ {
		for x := 0; x < lvl.width; x++ {
			if x == px && y == py {
				sb.WriteRune('@')
			} else {
				sb.WriteRune(lvl.At(x, y).Glyph())
			}
		}
		if y+1 < lvl.height {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// countAdjacent counts the grids next to (x, y) whose tile matches test. If
// under is true, the grid at (x, y) itself is also checked. The location of
// the last match is returned.
func (lvl *Level) countAdjacent(x, y int, under bool, test func(Tile) bool) (count, mx, my int) {
	check := func(cx, cy int) {
		if lvl.InBounds(cx, cy) && test(lvl.At(cx, cy)) {
			count++
			mx, my = cx, cy
		}
	}

	if under {
		check(x, y)
	}
	for _, d := range direction.Compass() {
		dx, dy := d.Offset()
		check(x+dx, y+dy)
	}
	return count, mx, my
}
