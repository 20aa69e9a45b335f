// mapcheck validates the engine's YAML map and tileset tables without
// starting the engine: dangling tileset references, unreachable maps made
// entirely of blocked tiles, and encounter slot rates summing past 100.
//
// Usage:
//
//	go run ./cmd/mapcheck [-data path]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fuddlesworth/pokesharp/internal/data"
)

func main() {
	dataDir := flag.String("data", "data/yaml", "directory containing map_list.yaml and tileset_list.yaml")
	flag.Parse()

	problems, err := check(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapcheck: %v\n", err)
		os.Exit(1)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("  ✗ %s\n", p)
		}
		fmt.Printf("%d problem(s)\n", len(problems))
		os.Exit(1)
	}
	fmt.Println("  ✓ all maps valid")
}

func check(dir string) ([]string, error) {
	maps, err := data.LoadMapTable(filepath.Join(dir, "map_list.yaml"))
	if err != nil {
		return nil, err
	}
	tilesets, err := data.LoadTilesetTable(filepath.Join(dir, "tileset_list.yaml"))
	if err != nil {
		return nil, err
	}
	fmt.Printf("  maps: %d, tilesets: %d\n", maps.Count(), tilesets.Count())

	var problems []string
	maps.Each(func(m *data.MapInfo) {
		ts := tilesets.Get(m.Tileset)
		if ts == nil {
			problems = append(problems, fmt.Sprintf("map %d (%s): unknown tileset %d", m.MapID, m.Name, m.Tileset))
			return
		}

		passable := 0
		for y := int32(0); y < m.Height; y++ {
			for x := int32(0); x < m.Width; x++ {
				tile := m.TileAt(x, y)
				if tile >= ts.CellCount {
					problems = append(problems, fmt.Sprintf("map %d (%s): tile %d at (%d,%d) beyond tileset cell count %d",
						m.MapID, m.Name, tile, x, y, ts.CellCount))
				}
				if ts.Passable(tile) {
					passable++
				}
			}
		}
		if passable == 0 {
			problems = append(problems, fmt.Sprintf("map %d (%s): no passable tiles", m.MapID, m.Name))
		}

		rateSum := 0
		for _, slot := range m.Encounters {
			if slot.LevelMin > slot.LevelMax {
				problems = append(problems, fmt.Sprintf("map %d (%s): encounter %s has level_min > level_max",
					m.MapID, m.Name, slot.Species))
			}
			rateSum += slot.Rate
		}
		if rateSum > 100 {
			problems = append(problems, fmt.Sprintf("map %d (%s): encounter rates sum to %d", m.MapID, m.Name, rateSum))
		}
	})
	return problems, nil
}
