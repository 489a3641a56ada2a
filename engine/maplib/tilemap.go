package maplib

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zyedidia/generic/mapset"
)

// TerrainType defines the terrain of a tile
type TerrainType uint8

const (
	TerrainGrass TerrainType = iota
	TerrainDirt
	TerrainSand
	TerrainWater
	TerrainDeepWater
	TerrainRock
	TerrainCliff
	TerrainRoad
	TerrainBridge
	TerrainCoast
	TerrainSnow
	TerrainUrban
	TerrainForest
	TerrainVoid
)

// TileFlag is the terrain movement bitmask of a tile
type TileFlag uint8

const (
	FlagLand TileFlag = 1 << iota // land-passable
	FlagWater                     // water-passable
	FlagAir                       // air-passable
	FlagBuilding                  // occupied by a static building

	FlagNone    TileFlag = 0
	FlagPassAll TileFlag = FlagLand | FlagWater | FlagAir
)

// Pos is an integer tile coordinate
type Pos struct{ X, Y int }

// Add returns p offset by (dx, dy)
func (p Pos) Add(dx, dy int) Pos { return Pos{p.X + dx, p.Y + dy} }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is a footprint in tiles
type Size struct{ W, H int }

// One is the footprint of a single-tile unit
var One = Size{1, 1}

// Valid reports whether both dimensions are positive
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Tile represents a single map tile
type Tile struct {
	Terrain TerrainType `json:"terrain"`
	Flags   TileFlag    `json:"flags"`

	// Connectivity labels, filled by Map.ComputeLandmasses. A bridge or
	// coast tile carries both a Landmass and a Sea.
	Landmass int `json:"-"` // land component
	Sea      int `json:"-"` // water component
	World    int `json:"-"` // air component
}

// Component returns t's label for a movement mask that uses exactly one
// passability class. ok is false for masks spanning several classes.
func (t *Tile) Component(mask TileFlag) (id int, ok bool) {
	switch mask & FlagPassAll {
	case FlagLand:
		return t.Landmass, true
	case FlagWater:
		return t.Sea, true
	case FlagAir:
		return t.World, true
	}
	return 0, false
}

// Layer is one stacked 2D grid of tiles
type Layer struct {
	Z      int    `json:"z"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`
}

// NewLayer creates a layer filled with grass
func NewLayer(z, width, height int) *Layer {
	l := &Layer{
		Z:      z,
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for i := range l.Tiles {
		l.Tiles[i] = Tile{Terrain: TerrainGrass, Flags: TerrainFlags(TerrainGrass)}
	}
	return l
}

// InBounds checks if coordinates are within layer bounds
func (l *Layer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// Contains checks if p is within layer bounds
func (l *Layer) Contains(p Pos) bool { return l.InBounds(p.X, p.Y) }

// RectInBounds checks that a footprint placed at p lies fully on the layer
func (l *Layer) RectInBounds(p Pos, s Size) bool {
	return l.InBounds(p.X, p.Y) && l.InBounds(p.X+s.W-1, p.Y+s.H-1)
}

// Index flattens an in-bounds position
func (l *Layer) Index(p Pos) int { return p.Y*l.Width + p.X }

// PosOf is the inverse of Index
func (l *Layer) PosOf(index int) Pos { return Pos{index % l.Width, index / l.Width} }

// At returns a pointer to the tile at p, or nil off-map
func (l *Layer) At(p Pos) *Tile {
	if !l.Contains(p) {
		return nil
	}
	return &l.Tiles[l.Index(p)]
}

// Flags returns the movement flags at p (FlagNone off-map)
func (l *Layer) Flags(p Pos) TileFlag {
	if t := l.At(p); t != nil {
		return t.Flags
	}
	return FlagNone
}

// SetTerrain sets terrain for a rectangular region and re-derives flags
func (l *Layer) SetTerrain(x1, y1, x2, y2 int, terrain TerrainType) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := l.At(Pos{x, y}); t != nil {
				t.Terrain = terrain
				t.Flags = TerrainFlags(terrain) | t.Flags&FlagBuilding
			}
		}
	}
}

// SetOccupied marks a tile as occupied/unoccupied by a building
func (l *Layer) SetOccupied(x, y int, occupied bool) {
	t := l.At(Pos{x, y})
	if t == nil {
		return
	}
	if occupied {
		t.Flags |= FlagBuilding
	} else {
		t.Flags &^= FlagBuilding
	}
}

// TerrainFlags returns the passability a terrain type grants
func TerrainFlags(terrain TerrainType) TileFlag {
	switch terrain {
	case TerrainWater, TerrainDeepWater:
		return FlagWater | FlagAir
	case TerrainCliff:
		return FlagAir
	case TerrainBridge, TerrainCoast:
		return FlagLand | FlagWater | FlagAir
	case TerrainVoid:
		return FlagNone
	default:
		return FlagLand | FlagAir
	}
}

// Map is a stack of equally addressed layers
type Map struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Layers      []*Layer `json:"layers"`

	borders    map[int]mapset.Set[int] // land <-> sea adjacency
	links      map[int]mapset.Set[int] // connections the grid cannot see
	landmasses int
	worlds     int
}

// NewMap creates a map with a single grass layer
func NewMap(name string, width, height int) *Map {
	m := &Map{Name: name}
	m.AddLayer(width, height)
	return m
}

// AddLayer appends a new grass layer and returns it
func (m *Map) AddLayer(width, height int) *Layer {
	l := NewLayer(len(m.Layers), width, height)
	m.Layers = append(m.Layers, l)
	return l
}

// Layer returns layer z, or nil if there is none
func (m *Map) Layer(z int) *Layer {
	if z < 0 || z >= len(m.Layers) {
		return nil
	}
	return m.Layers[z]
}

// SaveJSON saves the map to a JSON file
func (m *Map) SaveJSON(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file and labels its landmasses
func LoadJSON(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode map %s: %w", path, err)
	}
	for z, l := range m.Layers {
		if l == nil || l.Width <= 0 || l.Height <= 0 || len(l.Tiles) != l.Width*l.Height {
			return nil, fmt.Errorf("map %s: layer %d has inconsistent dimensions", path, z)
		}
		l.Z = z
	}
	m.ComputeLandmasses()
	return &m, nil
}
