package main

import (
	"fmt"
	"math"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

const (
	MapWidth  = 64
	MapHeight = 40
)

// generateDemoMap creates a single-layer map with a river, one bridge,
// forests and a cliff wall
func generateDemoMap() *maplib.Map {
	m := maplib.NewMap("Demo Crossing", MapWidth, MapHeight)
	l := m.Layer(0)

	// River down the middle
	for y := 0; y < MapHeight; y++ {
		x := MapWidth/2 + int(3*math.Sin(float64(y)*0.2))
		l.SetTerrain(x-1, y, x+1, y, maplib.TerrainWater)
	}

	// Bridge
	by := MapHeight / 2
	bx := MapWidth/2 + int(3*math.Sin(float64(by)*0.2))
	l.SetTerrain(bx-2, by-1, bx+2, by+1, maplib.TerrainBridge)

	forests := [][4]int{
		{5, 5, 12, 10}, {44, 6, 52, 12}, {14, 28, 22, 34},
	}
	for _, f := range forests {
		l.SetTerrain(f[0], f[1], f[2], f[3], maplib.TerrainForest)
	}

	// Cliff wall with a gap
	l.SetTerrain(14, 12, 15, 24, maplib.TerrainCliff)
	l.SetTerrain(14, 17, 15, 18, maplib.TerrainGrass)
	l.SetTerrain(40, 26, 50, 27, maplib.TerrainCliff)

	for x := 0; x < MapWidth; x++ {
		l.SetTerrain(x, 3, x, 3, maplib.TerrainRoad)
	}

	m.ComputeLandmasses()
	return m
}

// spawnSide places a 2x2 depot for player and count tanks around it
func spawnSide(w *core.World, paths *pathfind.Context, player int, depotAt maplib.Pos, count int) error {
	depot := core.NewUnit(fmt.Sprintf("depot-%d", player), maplib.DomainLand, 0, depotAt)
	depot.Owner = player
	depot.Size = maplib.Size{W: 2, H: 2}
	depot.Building = true
	if _, err := w.Spawn(depot); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		u := core.NewUnit(fmt.Sprintf("tank-%d-%d", player, i), maplib.DomainLand, 0, depotAt)
		u.Owner = player
		u.AttackRange = 3
		u.SightRange = 6
		if err := systems.SpawnNear(w, paths, u, depot, 6); err != nil {
			return err
		}
	}
	return nil
}
