package debugdraw

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

func TestRenderLayer(t *testing.T) {
	l, err := maplib.FromRows(0, []string{
		"....",
		".~B.",
		"....",
	})
	require.NoError(t, err)
	tank := core.NewUnit("tank", maplib.DomainLand, 0, maplib.Pos{X: 3, Y: 0})
	goal := pathfind.PointGoal(0, maplib.Pos{X: 3, Y: 2})

	img := RenderLayer(l, Overlay{
		Units: []*core.Unit{tank},
		Start: maplib.Pos{X: 0, Y: 0},
		Steps: []pathfind.Direction{pathfind.SouthEast, pathfind.East},
		Goal:  &goal,
	})
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Equal(t, ColorStart, img.RGBAAt(0, 0))
	assert.Equal(t, ColorPath, img.RGBAAt(1, 1))
	assert.Equal(t, ColorPath, img.RGBAAt(2, 1), "path drawn over the building")
	assert.Equal(t, ColorUnit, img.RGBAAt(3, 0))
	assert.Equal(t, ColorGoal, img.RGBAAt(3, 2))
	assert.Equal(t, Palette[maplib.TerrainGrass], img.RGBAAt(0, 2))

	plain := RenderLayer(l, Overlay{})
	assert.Equal(t, Palette[maplib.TerrainWater], plain.RGBAAt(1, 1))
	assert.Equal(t, ColorBuilding, plain.RGBAAt(2, 1))
}

func TestPathTiles(t *testing.T) {
	got := PathTiles(maplib.Pos{X: 2, Y: 2}, []pathfind.Direction{pathfind.North, pathfind.West})
	assert.Equal(t, []maplib.Pos{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}}, got)
}

func TestScaleAndSave(t *testing.T) {
	l, err := maplib.FromRows(0, []string{".~"})
	require.NoError(t, err)
	big := Scale(RenderLayer(l, Overlay{}), 8)
	assert.Equal(t, 16, big.Bounds().Dx())
	assert.Equal(t, 8, big.Bounds().Dy())
	assert.Equal(t, Palette[maplib.TerrainGrass], big.RGBAAt(7, 7))
	assert.Equal(t, Palette[maplib.TerrainWater], big.RGBAAt(8, 0))
	assert.Equal(t, 2, Scale(RenderLayer(l, Overlay{}), 0).Bounds().Dx())

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, big))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, big.Bounds(), decoded.Bounds())

	require.NoError(t, SavePNG(filepath.Join(t.TempDir(), "layer.png"), big))
	assert.Error(t, SavePNG(filepath.Join(t.TempDir(), "missing", "layer.png"), big))
}
