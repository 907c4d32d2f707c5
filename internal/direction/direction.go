// Package direction contains the keypad direction codes used by commands that
// act on an adjacent grid or aim at something.
//
// Codes follow the numeric keypad with y increasing downward: 8 is north, 2 is
// south, 5 is the center. The center code doubles as "at the current target"
// when a direction is used for aiming.
package direction

import (
	"fmt"
	"strconv"
	"strings"
)

// Dir is a keypad direction code.
type Dir int

const (
	Unknown Dir = 0
	SW      Dir = 1
	S       Dir = 2
	SE      Dir = 3
	W       Dir = 4
	None    Dir = 5
	E       Dir = 6
	NW      Dir = 7
	N       Dir = 8
	NE      Dir = 9

	// Target shares its code with None. When aiming, it means "at the current
	// target" rather than "no direction".
	Target Dir = None
)

var (
	// dx and dy are the grid offsets for each code, indexed by the code.
	dx = [10]int{0, -1, 0, 1, -1, 0, 1, -1, 0, 1}
	dy = [10]int{0, 1, 1, 1, 0, 0, 0, -1, -1, -1}

	// compass is the order used when looping over all adjacent grids.
	compass = []Dir{N, S, E, W, NE, NW, SE, SW}

	names = map[Dir]string{
		Unknown: "unknown",
		SW:      "southwest",
		S:       "south",
		SE:      "southeast",
		W:       "west",
		None:    "none",
		E:       "east",
		NW:      "northwest",
		N:       "north",
		NE:      "northeast",
	}

	aliases = map[string]Dir{
		"N": N, "NORTH": N, "UP": N,
		"S": S, "SOUTH": S, "DOWN": S,
		"E": E, "EAST": E, "RIGHT": E,
		"W": W, "WEST": W, "LEFT": W,
		"NE": NE, "NORTHEAST": NE,
		"NW": NW, "NORTHWEST": NW,
		"SE": SE, "SOUTHEAST": SE,
		"SW": SW, "SOUTHWEST": SW,
		".": None, "HERE": None, "NONE": None,
		"*": Target, "'": Target, "T": Target, "TARGET": Target,
	}
)

// String gives the compass name of the direction.
func (d Dir) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	return fmt.Sprintf("Dir(%d)", int(d))
}

// Valid returns whether d is one of the ten defined codes.
func (d Dir) Valid() bool {
	return d >= Unknown && d <= NE
}

// Known returns whether d is an actual direction, i.e. it is valid and not
// Unknown.
func (d Dir) Known() bool {
	return d.Valid() && d != Unknown
}

// Offset gives the change in x and y that moving one step in direction d
// results in. Unknown and None both give (0, 0).
func (d Dir) Offset() (int, int) {
	if !d.Valid() {
		return 0, 0
	}
	return dx[d], dy[d]
}

// Compass returns the eight movement directions in the order that adjacent
// grids are conventionally scanned.
func Compass() []Dir {
	return append([]Dir{}, compass...)
}

// Motion gives the direction that moves one step from (x1, y1) towards
// (x2, y2). Diagonal motion is used whenever possible. If the two points are
// the same, None is returned.
func Motion(x1, y1, x2, y2 int) Dir {
	switch {
	case x1 == x2 && y1 == y2:
		return None
	case x1 == x2:
		if y1 < y2 {
			return S
		}
		return N
	case y1 == y2:
		if x1 < x2 {
			return E
		}
		return W
	case y1 < y2:
		if x1 < x2 {
			return SE
		}
		return SW
	default:
		if x1 < x2 {
			return NE
		}
		return NW
	}
}

// Parse reads a direction from user text. Compass names and abbreviations,
// keypad digits, "." for none and "*" or "target" for the current target are
// all understood. Case is ignored.
func Parse(s string) (Dir, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if norm == "" {
		return Unknown, fmt.Errorf("empty direction")
	}

	if d, ok := aliases[norm]; ok {
		return d, nil
	}

	if n, err := strconv.Atoi(norm); err == nil {
		d := Dir(n)
		if d.Known() {
			return d, nil
		}
	}

	return Unknown, fmt.Errorf("%q is not a direction", s)
}
