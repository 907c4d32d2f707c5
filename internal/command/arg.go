package command

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gamecmd/internal/direction"
)

// Kind is the type of value held in an argument slot. Each Kind is a single
// bit so that kinds can be combined into a KindSet.
type Kind uint8

const (
	KindNone      Kind = 0
	KindString    Kind = 0x01
	KindChoice    Kind = 0x02
	KindNumber    Kind = 0x04
	KindItem      Kind = 0x08
	KindDirection Kind = 0x10
	KindTarget    Kind = 0x20
	KindPoint     Kind = 0x40
)

var allKinds = []Kind{KindString, KindChoice, KindNumber, KindItem, KindDirection, KindTarget, KindPoint}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindChoice:
		return "choice"
	case KindNumber:
		return "number"
	case KindItem:
		return "item"
	case KindDirection:
		return "direction"
	case KindTarget:
		return "target"
	case KindPoint:
		return "point"
	default:
		return fmt.Sprintf("Kind(%#x)", uint8(k))
	}
}

// KindSet is the set of kinds that a registry entry accepts in one argument
// slot.
type KindSet uint8

// Kinds returns a KindSet containing each of the given kinds.
func Kinds(ks ...Kind) KindSet {
	var set KindSet
	for _, k := range ks {
		set |= KindSet(k)
	}
	return set
}

// Has returns whether k is in the set. KindNone is never in a set.
func (ks KindSet) Has(k Kind) bool {
	return k != KindNone && ks&KindSet(k) == KindSet(k)
}

// Empty returns whether the set accepts nothing.
func (ks KindSet) Empty() bool {
	return ks == 0
}

// Elements returns the kinds in the set in ascending bit order.
func (ks KindSet) Elements() []Kind {
	var elems []Kind
	for _, k := range allKinds {
		if ks.Has(k) {
			elems = append(elems, k)
		}
	}
	return elems
}

func (ks KindSet) String() string {
	elems := ks.Elements()
	if len(elems) == 0 {
		return "none"
	}

	names := make([]string, len(elems))
	for i := range elems {
		names[i] = elems[i].String()
	}
	return strings.Join(names, "|")
}

// Arg is the value held in an argument slot. Exactly one of the Arg types in
// this package is held, and the Kind it reports always matches its type.
type Arg interface {
	Kind() Kind
	String() string

	isArg()
}

// StringArg is a free-text argument, such as an inscription.
type StringArg string

// ChoiceArg is an index into a list of options presented to the player.
type ChoiceArg int

// NumberArg is a count or quantity.
type NumberArg int

// ItemArg is a reference to an object in the game. It may go stale if the
// object is destroyed before the command is dispatched.
type ItemArg int

// DirectionArg is a direction of motion or action.
type DirectionArg direction.Dir

// TargetArg is an aiming direction. direction.Target means the current target.
type TargetArg direction.Dir

// PointArg is a location on the map.
type PointArg struct {
	X, Y int
}

func (StringArg) Kind() Kind    { return KindString }
func (ChoiceArg) Kind() Kind    { return KindChoice }
func (NumberArg) Kind() Kind    { return KindNumber }
func (ItemArg) Kind() Kind      { return KindItem }
func (DirectionArg) Kind() Kind { return KindDirection }
func (TargetArg) Kind() Kind    { return KindTarget }
func (PointArg) Kind() Kind     { return KindPoint }

func (StringArg) isArg()    {}
func (ChoiceArg) isArg()    {}
func (NumberArg) isArg()    {}
func (ItemArg) isArg()      {}
func (DirectionArg) isArg() {}
func (TargetArg) isArg()    {}
func (PointArg) isArg()     {}

func (a StringArg) String() string    { return fmt.Sprintf("%q", string(a)) }
func (a ChoiceArg) String() string    { return fmt.Sprintf("choice %d", int(a)) }
func (a NumberArg) String() string    { return fmt.Sprintf("%d", int(a)) }
func (a ItemArg) String() string      { return fmt.Sprintf("item #%d", int(a)) }
func (a DirectionArg) String() string { return direction.Dir(a).String() }
func (a PointArg) String() string     { return fmt.Sprintf("(%d, %d)", a.X, a.Y) }

func (a TargetArg) String() string {
	if direction.Dir(a) == direction.Target {
		return "target"
	}
	return "toward " + direction.Dir(a).String()
}

// Text returns the string in slot n, if slot n holds a StringArg.
func (a Args) Text(n int) (string, bool) {
	v, ok := a.Get(n)
	if !ok {
		return "", false
	}
	s, ok := v.(StringArg)
	return string(s), ok
}

// Choice returns the choice in slot n, if slot n holds a ChoiceArg.
func (a Args) Choice(n int) (int, bool) {
	v, ok := a.Get(n)
	if !ok {
		return 0, false
	}
	c, ok := v.(ChoiceArg)
	return int(c), ok
}

// Number returns the number in slot n, if slot n holds a NumberArg.
func (a Args) Number(n int) (int, bool) {
	v, ok := a.Get(n)
	if !ok {
		return 0, false
	}
	num, ok := v.(NumberArg)
	return int(num), ok
}

// Item returns the item reference in slot n, if slot n holds an ItemArg.
func (a Args) Item(n int) (int, bool) {
	v, ok := a.Get(n)
	if !ok {
		return 0, false
	}
	it, ok := v.(ItemArg)
	return int(it), ok
}

// Direction returns the direction in slot n, if slot n holds a DirectionArg.
func (a Args) Direction(n int) (direction.Dir, bool) {
	v, ok := a.Get(n)
	if !ok {
		return direction.Unknown, false
	}
	d, ok := v.(DirectionArg)
	return direction.Dir(d), ok
}

// Target returns the aim in slot n, if slot n holds a TargetArg.
func (a Args) Target(n int) (direction.Dir, bool) {
	v, ok := a.Get(n)
	if !ok {
		return direction.Unknown, false
	}
	t, ok := v.(TargetArg)
	return direction.Dir(t), ok
}

// Point returns the location in slot n, if slot n holds a PointArg.
func (a Args) Point(n int) (PointArg, bool) {
	v, ok := a.Get(n)
	if !ok {
		return PointArg{}, false
	}
	p, ok := v.(PointArg)
	return p, ok
}

// Aim returns the direction in slot n whether it was given as a DirectionArg
// or a TargetArg. Slots that hold neither, or that are unset, give
// direction.Unknown and false.
func (a Args) Aim(n int) (direction.Dir, bool) {
	if d, ok := a.Direction(n); ok {
		return d, true
	}
	return a.Target(n)
}
