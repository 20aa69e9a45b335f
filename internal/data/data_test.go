package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleMaps = `
maps:
  - map_id: 1
    name: Pallet Outskirts
    width: 3
    height: 2
    tileset: 10
    tiles: [0, 1, 0, 2, 0, 0]
    encounters:
      - {species: rattata, level_min: 2, level_max: 4, rate: 60}
      - {species: pidgey, level_min: 3, level_max: 5, rate: 40}
`

const sampleTilesets = `
tilesets:
  - tileset_id: 10
    name: overworld
    cell_count: 4
    blocked: [2]
    grass: [1]
`

func TestLoadMapTable(t *testing.T) {
	table, err := LoadMapTable(writeFile(t, "map_list.yaml", sampleMaps))
	require.NoError(t, err)
	require.Equal(t, 1, table.Count())

	m := table.Get(1)
	require.NotNil(t, m)
	assert.Equal(t, "Pallet Outskirts", m.Name)
	assert.Equal(t, int32(1), m.TileAt(1, 0))
	assert.Equal(t, int32(2), m.TileAt(0, 1))
	assert.Equal(t, int32(-1), m.TileAt(3, 0), "out of bounds is border")
	assert.Equal(t, int32(-1), m.TileAt(-1, 0))
	require.Len(t, m.Encounters, 2)
	assert.Equal(t, "rattata", m.Encounters[0].Species)
}

func TestLoadMapTable_TileCountMismatch(t *testing.T) {
	bad := `
maps:
  - map_id: 1
    name: broken
    width: 3
    height: 2
    tileset: 10
    tiles: [0, 1]
`
	_, err := LoadMapTable(writeFile(t, "map_list.yaml", bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 6")
}

func TestLoadTilesetTable(t *testing.T) {
	table, err := LoadTilesetTable(writeFile(t, "tileset_list.yaml", sampleTilesets))
	require.NoError(t, err)
	require.Equal(t, 1, table.Count())

	ts := table.Get(10)
	require.NotNil(t, ts)
	assert.True(t, ts.Passable(0))
	assert.False(t, ts.Passable(2), "blocked cell")
	assert.False(t, ts.Passable(-1), "border")
	assert.False(t, ts.Passable(99), "beyond cell_count")
	assert.True(t, ts.IsGrass(1))
	assert.False(t, ts.IsGrass(0))
}
