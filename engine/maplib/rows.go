package maplib

import "fmt"

// Row glyphs understood by FromRows and printed by Glyph
var rowTerrain = map[rune]TerrainType{
	'.': TerrainGrass,
	',': TerrainRoad,
	'f': TerrainForest,
	'~': TerrainWater,
	'=': TerrainBridge,
	'c': TerrainCoast,
	'#': TerrainCliff,
	' ': TerrainVoid,
}

// FromRows builds a layer from equal-length strings, one per row.
// 'B' is grass with a static building on it.
func FromRows(z int, rows []string) (*Layer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("layer %d: no rows", z)
	}
	width := len([]rune(rows[0]))
	l := NewLayer(z, width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("layer %d: row %d has width %d, want %d", z, y, len(runes), width)
		}
		for x, r := range runes {
			if r == 'B' {
				l.SetOccupied(x, y, true)
				continue
			}
			terrain, ok := rowTerrain[r]
			if !ok {
				return nil, fmt.Errorf("layer %d: unknown glyph %q at (%d,%d)", z, r, x, y)
			}
			l.SetTerrain(x, y, x, y, terrain)
		}
	}
	return l, nil
}

// MapFromRows builds a labelled map with one layer per row set
func MapFromRows(name string, layers ...[]string) (*Map, error) {
	m := &Map{Name: name}
	for z, rows := range layers {
		l, err := FromRows(z, rows)
		if err != nil {
			return nil, err
		}
		m.Layers = append(m.Layers, l)
	}
	m.ComputeLandmasses()
	return m, nil
}

// Glyph returns the FromRows character for a tile
func Glyph(t Tile) rune {
	if t.Flags&FlagBuilding != 0 {
		return 'B'
	}
	for r, terrain := range rowTerrain {
		if terrain == t.Terrain {
			return r
		}
	}
	return '.'
}
