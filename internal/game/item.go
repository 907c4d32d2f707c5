package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/gamecmd/internal/util"
)

// File item.go holds symbols related to objects and inventory.

// Class is the broad type of an object. It decides which commands can use the
// object.
type Class int

const (
	ClassJunk Class = iota
	ClassFood
	ClassPotion
	ClassScroll
	ClassStaff
	ClassWand
	ClassRod
	ClassWeapon
	ClassBow
	ClassAmmo
	ClassArmor
	ClassRing
	ClassAmulet
	ClassLight
	ClassFlask
	ClassBook
	ClassSpike
)

var classNames = map[Class]string{
	ClassJunk:   "junk",
	ClassFood:   "food",
	ClassPotion: "potion",
	ClassScroll: "scroll",
	ClassStaff:  "staff",
	ClassWand:   "wand",
	ClassRod:    "rod",
	ClassWeapon: "weapon",
	ClassBow:    "bow",
	ClassAmmo:   "ammo",
	ClassArmor:  "armor",
	ClassRing:   "ring",
	ClassAmulet: "amulet",
	ClassLight:  "light",
	ClassFlask:  "flask",
	ClassBook:   "book",
	ClassSpike:  "spike",
}

func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass gives the Class with the given name.
func ParseClass(s string) (Class, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for c, name := range classNames {
		if name == norm {
			return c, nil
		}
	}
	return ClassJunk, fmt.Errorf("%q is not an object class", s)
}

// Location is where an object is.
type Location int

const (
	InInventory Location = iota
	InEquipment
	OnFloor
	InStore
	InHome
)

var locationNames = map[Location]string{
	InInventory: "inventory",
	InEquipment: "equipment",
	OnFloor:     "floor",
	InStore:     "store",
	InHome:      "home",
}

func (loc Location) String() string {
	if n, ok := locationNames[loc]; ok {
		return n
	}
	return fmt.Sprintf("Location(%d)", int(loc))
}

// ParseLocation gives the Location with the given name.
func ParseLocation(s string) (Location, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for loc, name := range locationNames {
		if name == norm {
			return loc, nil
		}
	}
	return InInventory, fmt.Errorf("%q is not an object location", s)
}

// Equipment slots. Two ring slots exist; every other class that can be worn
// has exactly one.
const (
	SlotWeapon = iota
	SlotBow
	SlotRingLeft
	SlotRingRight
	SlotAmulet
	SlotLight
	SlotBody
	SlotCount
)

var slotNames = [SlotCount]string{"weapon", "bow", "left ring", "right ring", "amulet", "light", "body"}

// Object is a thing that can be carried, worn, used, or sold. Objects are
// referred to by their Ref everywhere outside this package; once an object is
// used up or destroyed its Ref is never valid again.
type Object struct {
	// Ref is the unique reference of the object.
	Ref int

	// Label is the kind of object. Objects with the same label stack.
	Label string

	// Name is the singular name of the object.
	Name string

	Class Class

	// Count is how many are in the stack.
	Count int

	// Note is the player's inscription on the object.
	Note string

	// Charges is the charges left in a wand or staff, or the turns of fuel in
	// a light.
	Charges int

	// Aimed is whether using the object requires an aim.
	Aimed bool

	// Activates is whether a worn object can be activated.
	Activates bool

	// Value is the price of one of the object in a store.
	Value int

	Where Location

	// X and Y are the location of an object on the floor.
	X, Y int

	// Slot is the equipment slot of a worn object.
	Slot int
}

func (obj Object) String() string {
	return fmt.Sprintf("Object(#%d, %q x%d, %s)", obj.Ref, obj.Label, obj.Count, obj.Where)
}

// Describe gives the name of the object with a count or article, and its
// inscription.
func (obj Object) Describe() string {
	var desc string
	if obj.Count == 1 {
		desc = strings.ToLower(util.ArticleFor(obj.Name, false)) + " " + obj.Name
	} else {
		desc = fmt.Sprintf("%d %s", obj.Count, util.Pluralize(obj.Name))
	}

	if obj.Note != "" {
		desc += " {" + obj.Note + "}"
	}
	return desc
}

// Wearable returns whether the object can go in an equipment slot.
func (obj Object) Wearable() bool {
	return obj.wieldSlot() >= 0
}

// wieldSlot returns the slot the object is worn in, or -1 if it cannot be
// worn. Rings give the left slot.
func (obj Object) wieldSlot() int {
	switch obj.Class {
	case ClassWeapon:
		return SlotWeapon
	case ClassBow:
		return SlotBow
	case ClassRing:
		return SlotRingLeft
	case ClassAmulet:
		return SlotAmulet
	case ClassLight:
		return SlotLight
	case ClassArmor:
		return SlotBody
	default:
		return -1
	}
}

// Useable returns whether the object can be eaten, quaffed, read, aimed,
// zapped, used or activated.
func (obj Object) Useable() bool {
	switch obj.Class {
	case ClassFood, ClassPotion, ClassScroll, ClassStaff, ClassWand, ClassRod, ClassAmmo:
		return true
	default:
		return obj.Activates && obj.Where == InEquipment
	}
}

// UsedAimed returns whether using the object needs an aim by its nature.
func (obj Object) UsedAimed() bool {
	return obj.Class == ClassWand || obj.Class == ClassRod || obj.Class == ClassAmmo
}

// NeedsAim returns whether the object must be aimed when it is used.
func (obj Object) NeedsAim() bool {
	return obj.Aimed || obj.Class == ClassWand || obj.Class == ClassAmmo
}

// Inventory is a set of objects keyed by reference.
type Inventory map[int]*Object

// Sorted returns the objects for which keep returns true, ordered by
// reference. If keep is nil, every object is returned.
func (inv Inventory) Sorted(keep func(*Object) bool) []*Object {
	var objs []*Object
	for _, obj := range inv {
		if keep == nil || keep(obj) {
			objs = append(objs, obj)
		}
	}
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].Ref < objs[j].Ref
	})
	return objs
}
