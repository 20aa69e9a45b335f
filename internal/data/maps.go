package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EncounterSlot is one wild-encounter entry for a map: which species can
// appear in its grass, at what levels, with what per-step chance weight.
type EncounterSlot struct {
	Species  string `yaml:"species"`
	LevelMin int    `yaml:"level_min"`
	LevelMax int    `yaml:"level_max"`
	Rate     int    `yaml:"rate"` // percent weight, all slots on a map sum to <=100
}

// MapInfo holds metadata and tile layout for a single map, loaded from
// map_list.yaml. Tiles are tileset cell indices, row-major.
type MapInfo struct {
	MapID      int32           `yaml:"map_id"`
	Name       string          `yaml:"name"`
	Width      int32           `yaml:"width"`
	Height     int32           `yaml:"height"`
	Tileset    int32           `yaml:"tileset"`
	Tiles      []int32         `yaml:"tiles"`
	Encounters []EncounterSlot `yaml:"encounters"`
}

// TileAt returns the tile index at x,y; out-of-bounds coordinates report -1
// so callers treat the border as impassable.
func (m *MapInfo) TileAt(x, y int32) int32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return -1
	}
	return m.Tiles[y*m.Width+x]
}

type mapListFile struct {
	Maps []MapInfo `yaml:"maps"`
}

// MapTable provides map lookups by ID.
type MapTable struct {
	maps map[int32]*MapInfo
}

// LoadMapTable loads map metadata and tile layouts from YAML.
func LoadMapTable(path string) (*MapTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map list %s: %w", path, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map list %s: %w", path, err)
	}

	t := &MapTable{maps: make(map[int32]*MapInfo, len(file.Maps))}
	for i := range file.Maps {
		m := &file.Maps[i]
		if want := int(m.Width * m.Height); len(m.Tiles) != want {
			return nil, fmt.Errorf("map %d (%s): %d tiles, want %d", m.MapID, m.Name, len(m.Tiles), want)
		}
		if _, dup := t.maps[m.MapID]; dup {
			return nil, fmt.Errorf("map %d (%s): duplicate map_id", m.MapID, m.Name)
		}
		t.maps[m.MapID] = m
	}
	return t, nil
}

func (t *MapTable) Get(id int32) *MapInfo { return t.maps[id] }
func (t *MapTable) Count() int            { return len(t.maps) }

// Each visits every map. Iteration order is unspecified.
func (t *MapTable) Each(fn func(*MapInfo)) {
	for _, m := range t.maps {
		fn(m)
	}
}
