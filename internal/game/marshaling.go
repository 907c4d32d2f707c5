package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// File marshaling.go holds the on-disk TOML level format.

// LevelData is everything loaded from a level file.
type LevelData struct {
	Level   *Level
	Player  Player
	Objects []Object
}

type lvlPlayer struct {
	HP        int   `toml:"hp"`
	MaxHP     int   `toml:"max_hp"`
	Gold      int   `toml:"gold"`
	Searching bool  `toml:"searching,omitempty"`
	Spells    []int `toml:"spells,omitempty"`
}

type lvlMap struct {
	Name  string   `toml:"name"`
	Depth int      `toml:"depth"`
	Rows  []string `toml:"map"`
}

type lvlObject struct {
	Ref       int    `toml:"ref,omitempty"`
	Label     string `toml:"label"`
	Name      string `toml:"name"`
	Class     string `toml:"class"`
	Count     int    `toml:"count,omitempty"`
	Note      string `toml:"note,omitempty"`
	Charges   int    `toml:"charges,omitempty"`
	Aimed     bool   `toml:"aimed,omitempty"`
	Activates bool   `toml:"activates,omitempty"`
	Value     int    `toml:"value,omitempty"`
	Where     string `toml:"where"`
	X         int    `toml:"x,omitempty"`
	Y         int    `toml:"y,omitempty"`
}

func (lo lvlObject) toObject() (Object, error) {
	class, err := ParseClass(lo.Class)
	if err != nil {
		return Object{}, err
	}
	where, err := ParseLocation(lo.Where)
	if err != nil {
		return Object{}, err
	}

	return Object{
		Ref:       lo.Ref,
		Label:     strings.ToUpper(lo.Label),
		Name:      lo.Name,
		Class:     class,
		Count:     lo.Count,
		Note:      lo.Note,
		Charges:   lo.Charges,
		Aimed:     lo.Aimed,
		Activates: lo.Activates,
		Value:     lo.Value,
		Where:     where,
		X:         lo.X,
		Y:         lo.Y,
	}, nil
}

func objectToLvl(obj Object) lvlObject {
	return lvlObject{
		Ref:       obj.Ref,
		Label:     obj.Label,
		Name:      obj.Name,
		Class:     obj.Class.String(),
		Count:     obj.Count,
		Note:      obj.Note,
		Charges:   obj.Charges,
		Aimed:     obj.Aimed,
		Activates: obj.Activates,
		Value:     obj.Value,
		Where:     obj.Where.String(),
		X:         obj.X,
		Y:         obj.Y,
	}
}

// lvlFile is the top-level structure containing all keys in a complete level
// file.
type lvlFile struct {
	Format  string      `toml:"format"`
	Type    string      `toml:"type"`
	Level   lvlMap      `toml:"level"`
	Player  lvlPlayer   `toml:"player"`
	Objects []lvlObject `toml:"objects"`
}

// ParseLevelFromTOML takes in raw TOML bytes, reads it for a level
// definition, and returns the level along with the player and objects in it.
func ParseLevelFromTOML(tomlData []byte) (LevelData, error) {
	var lf lvlFile
	if tomlErr := toml.Unmarshal(tomlData, &lf); tomlErr != nil {
		return LevelData{}, tomlErr
	}

	if strings.ToUpper(lf.Format) != "GAMECMD" {
		return LevelData{}, fmt.Errorf("in header: 'format' key must exist and be set to 'GAMECMD'")
	}
	if strings.ToUpper(lf.Type) != "LEVEL" {
		return LevelData{}, fmt.Errorf("in header: 'type' must exist and be set to 'LEVEL'")
	}

	return parseUnmarshaledLevel(lf)
}

func parseUnmarshaledLevel(lf lvlFile) (LevelData, error) {
	var data LevelData

	if lf.Level.Name == "" {
		return data, fmt.Errorf("parsing: level: must have non-blank 'name' field")
	}
	if lf.Level.Depth < 0 {
		return data, fmt.Errorf("parsing: level: 'depth' cannot be negative")
	}

	lvl, px, py, err := NewLevel(lf.Level.Name, lf.Level.Depth, lf.Level.Rows)
	if err != nil {
		return data, fmt.Errorf("parsing: level: map: %w", err)
	}
	data.Level = lvl

	if err := validatePlayerDef(lf.Player); err != nil {
		return data, fmt.Errorf("parsing: player: %w", err)
	}
	data.Player = Player{
		X:         px,
		Y:         py,
		HP:        lf.Player.HP,
		MaxHP:     lf.Player.MaxHP,
		Gold:      lf.Player.Gold,
		Searching: lf.Player.Searching,
	}
	if len(lf.Player.Spells) > 0 {
		data.Player.Spells = map[int]bool{}
		for _, sp := range lf.Player.Spells {
			data.Player.Spells.Add(sp)
		}
	}

	seenRefs := map[int]int{}
	for idx, lo := range lf.Objects {
		if objErr := validateObjectDef(lo, lvl); objErr != nil {
			return data, fmt.Errorf("parsing: objects[%d (%q)]: %w", idx, lo.Label, objErr)
		}
		if lo.Ref != 0 {
			if prev, ok := seenRefs[lo.Ref]; ok {
				return data, fmt.Errorf("parsing: objects[%d (%q)]: ref %d already used by objects[%d]", idx, lo.Label, lo.Ref, prev)
			}
			seenRefs[lo.Ref] = idx
		}

		obj, err := lo.toObject()
		if err != nil {
			return data, fmt.Errorf("parsing: objects[%d (%q)]: %w", idx, lo.Label, err)
		}
		data.Objects = append(data.Objects, obj)
	}

	return data, nil
}

// MarshalLevelToTOML converts the current state of play into level file TOML
// that ParseLevelFromTOML can read back.
func MarshalLevelToTOML(s *State) ([]byte, error) {
	lf := lvlFile{
		Format: "GAMECMD",
		Type:   "LEVEL",
		Level: lvlMap{
			Name:  s.Level.Name,
			Depth: s.Level.Depth,
			Rows:  s.Level.Rows(s.Player.X, s.Player.Y),
		},
		Player: lvlPlayer{
			HP:        s.Player.HP,
			MaxHP:     s.Player.MaxHP,
			Gold:      s.Player.Gold,
			Searching: s.Player.Searching,
		},
	}

	for _, sp := range s.Player.Spells.Elements() {
		lf.Player.Spells = append(lf.Player.Spells, sp)
	}
	sort.Ints(lf.Player.Spells)

	for _, obj := range s.Objects.Sorted(nil) {
		lf.Objects = append(lf.Objects, objectToLvl(*obj))
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(lf); err != nil {
		return nil, fmt.Errorf("encoding level: %w", err)
	}
	return []byte(sb.String()), nil
}

func validatePlayerDef(p lvlPlayer) error {
	if p.MaxHP < 1 {
		return fmt.Errorf("must have positive 'max_hp' field")
	}
	if p.HP < 0 || p.HP > p.MaxHP {
		return fmt.Errorf("'hp' must be between 0 and 'max_hp'")
	}
	if p.Gold < 0 {
		return fmt.Errorf("'gold' cannot be negative")
	}
	return nil
}

func validateObjectDef(lo lvlObject, lvl *Level) error {
	if lo.Label == "" {
		return fmt.Errorf("must have non-blank 'label' field")
	}
	if lo.Name == "" {
		return fmt.Errorf("must have non-blank 'name' field")
	}
	if lo.Count < 0 {
		return fmt.Errorf("'count' cannot be negative")
	}
	if lo.Ref < 0 {
		return fmt.Errorf("'ref' cannot be negative")
	}
	if _, err := ParseClass(lo.Class); err != nil {
		return fmt.Errorf("'class': %w", err)
	}
	where, err := ParseLocation(lo.Where)
	if err != nil {
		return fmt.Errorf("'where': %w", err)
	}
	if where == OnFloor {
		if !lvl.InBounds(lo.X, lo.Y) {
			return fmt.Errorf("floor position (%d, %d) is outside the map", lo.X, lo.Y)
		}
		if !lvl.At(lo.X, lo.Y).Passable() {
			return fmt.Errorf("floor position (%d, %d) is inside a %s", lo.X, lo.Y, lvl.At(lo.X, lo.Y).Name())
		}
	}
	return nil
}
