// Package debugdraw renders map layers, units and paths to images for
// inspecting pathfinder output.
package debugdraw

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// Terrain colours, one pixel per tile before scaling
var Palette = map[maplib.TerrainType]color.RGBA{
	maplib.TerrainGrass:     {R: 82, G: 128, B: 58, A: 255},
	maplib.TerrainDirt:      {R: 126, G: 98, B: 66, A: 255},
	maplib.TerrainSand:      {R: 175, G: 161, B: 114, A: 255},
	maplib.TerrainWater:     {R: 40, G: 80, B: 150, A: 255},
	maplib.TerrainDeepWater: {R: 20, G: 45, B: 110, A: 255},
	maplib.TerrainRock:      {R: 110, G: 105, B: 100, A: 255},
	maplib.TerrainCliff:     {R: 70, G: 60, B: 55, A: 255},
	maplib.TerrainRoad:      {R: 95, G: 93, B: 88, A: 255},
	maplib.TerrainBridge:    {R: 120, G: 90, B: 60, A: 255},
	maplib.TerrainCoast:     {R: 150, G: 145, B: 100, A: 255},
	maplib.TerrainSnow:      {R: 230, G: 235, B: 240, A: 255},
	maplib.TerrainUrban:     {R: 140, G: 140, B: 140, A: 255},
	maplib.TerrainForest:    {R: 40, G: 90, B: 40, A: 255},
	maplib.TerrainVoid:      {R: 0, G: 0, B: 0, A: 255},
}

var (
	ColorBuilding = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	ColorUnit     = color.RGBA{R: 60, G: 140, B: 230, A: 255}
	ColorPath     = color.RGBA{R: 240, G: 220, B: 60, A: 255}
	ColorStart    = color.RGBA{R: 80, G: 230, B: 80, A: 255}
	ColorGoal     = color.RGBA{R: 230, G: 60, B: 60, A: 255}
)

// Overlay is what gets drawn over the terrain
type Overlay struct {
	Units []*core.Unit
	// Path is drawn from Start following Steps
	Start maplib.Pos
	Steps []pathfind.Direction
	Goal  *pathfind.Goal
}

// PathTiles returns the tiles visited by following steps from start,
// start included
func PathTiles(start maplib.Pos, steps []pathfind.Direction) []maplib.Pos {
	out := make([]maplib.Pos, 0, len(steps)+1)
	out = append(out, start)
	p := start
	for _, d := range steps {
		p = p.Add(d.Delta().X, d.Delta().Y)
		out = append(out, p)
	}
	return out
}

// RenderLayer draws l at one pixel per tile
func RenderLayer(l *maplib.Layer, ov Overlay) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	for i, t := range l.Tiles {
		p := l.PosOf(i)
		c, ok := Palette[t.Terrain]
		if !ok {
			c = Palette[maplib.TerrainVoid]
		}
		if t.Flags&maplib.FlagBuilding != 0 {
			c = ColorBuilding
		}
		img.SetRGBA(p.X, p.Y, c)
	}
	for _, u := range ov.Units {
		if !u.OnMap() || u.Layer != l.Z {
			continue
		}
		c := ColorUnit
		if u.Building {
			c = ColorBuilding
		}
		for _, p := range u.Footprint() {
			img.SetRGBA(p.X, p.Y, c)
		}
	}
	if ov.Goal != nil {
		for y := ov.Goal.Pos.Y; y < ov.Goal.Pos.Y+ov.Goal.Size.H; y++ {
			for x := ov.Goal.Pos.X; x < ov.Goal.Pos.X+ov.Goal.Size.W; x++ {
				img.SetRGBA(x, y, ColorGoal)
			}
		}
	}
	if len(ov.Steps) > 0 {
		tiles := PathTiles(ov.Start, ov.Steps)
		for _, p := range tiles[1:] {
			img.SetRGBA(p.X, p.Y, ColorPath)
		}
		img.SetRGBA(ov.Start.X, ov.Start.Y, ColorStart)
	}
	return img
}

// Scale enlarges src by factor with nearest-neighbour sampling so tiles
// stay crisp
func Scale(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
