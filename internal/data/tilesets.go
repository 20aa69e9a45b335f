package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TilesetInfo describes one tileset: which cells block movement and which
// count as tall grass for wild-encounter rolls.
type TilesetInfo struct {
	TilesetID int32   `yaml:"tileset_id"`
	Name      string  `yaml:"name"`
	CellCount int32   `yaml:"cell_count"`
	Blocked   []int32 `yaml:"blocked"`
	Grass     []int32 `yaml:"grass"`

	blockedSet map[int32]struct{}
	grassSet   map[int32]struct{}
}

// Passable reports whether a tile index can be walked onto. Unknown or
// negative indices (map border) are impassable.
func (ts *TilesetInfo) Passable(tile int32) bool {
	if tile < 0 || tile >= ts.CellCount {
		return false
	}
	_, blocked := ts.blockedSet[tile]
	return !blocked
}

// IsGrass reports whether a tile index triggers encounter rolls.
func (ts *TilesetInfo) IsGrass(tile int32) bool {
	_, ok := ts.grassSet[tile]
	return ok
}

type tilesetListFile struct {
	Tilesets []TilesetInfo `yaml:"tilesets"`
}

// TilesetTable provides tileset lookups by ID.
type TilesetTable struct {
	tilesets map[int32]*TilesetInfo
}

// LoadTilesetTable loads tileset definitions from YAML.
func LoadTilesetTable(path string) (*TilesetTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tileset list %s: %w", path, err)
	}
	var file tilesetListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse tileset list %s: %w", path, err)
	}

	t := &TilesetTable{tilesets: make(map[int32]*TilesetInfo, len(file.Tilesets))}
	for i := range file.Tilesets {
		ts := &file.Tilesets[i]
		if _, dup := t.tilesets[ts.TilesetID]; dup {
			return nil, fmt.Errorf("tileset %d (%s): duplicate tileset_id", ts.TilesetID, ts.Name)
		}
		ts.blockedSet = make(map[int32]struct{}, len(ts.Blocked))
		for _, b := range ts.Blocked {
			ts.blockedSet[b] = struct{}{}
		}
		ts.grassSet = make(map[int32]struct{}, len(ts.Grass))
		for _, g := range ts.Grass {
			ts.grassSet[g] = struct{}{}
		}
		t.tilesets[ts.TilesetID] = ts
	}
	return t, nil
}

func (t *TilesetTable) Get(id int32) *TilesetInfo { return t.tilesets[id] }
func (t *TilesetTable) Count() int                { return len(t.tilesets) }
