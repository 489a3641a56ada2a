package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1siamBot/rts-pathfinder/engine/debugdraw"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

const (
	glyphUnit  = 'u'
	glyphPath  = '*'
	glyphStart = 'S'
	glyphGoal  = 'G'
)

var (
	styleLand     = lipgloss.NewStyle().Foreground(lipgloss.Color("64"))
	styleWater    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleBlocked  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBuilding = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	styleUnit     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	stylePath     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleStart    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleGoal     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// asciiGrid lays the overlay over the row glyphs of l. Later marks win:
// terrain, units, goal, path, start.
func asciiGrid(l *maplib.Layer, ov debugdraw.Overlay) [][]rune {
	grid := make([][]rune, l.Height)
	for y := range grid {
		grid[y] = make([]rune, l.Width)
		for x := range grid[y] {
			grid[y][x] = maplib.Glyph(*l.At(maplib.Pos{X: x, Y: y}))
		}
	}
	mark := func(p maplib.Pos, r rune) {
		if l.Contains(p) {
			grid[p.Y][p.X] = r
		}
	}
	for _, u := range ov.Units {
		if !u.OnMap() || u.Layer != l.Z {
			continue
		}
		for _, p := range u.Footprint() {
			mark(p, glyphUnit)
		}
	}
	if ov.Goal != nil {
		for y := 0; y < ov.Goal.Size.H; y++ {
			for x := 0; x < ov.Goal.Size.W; x++ {
				mark(ov.Goal.Pos.Add(x, y), glyphGoal)
			}
		}
	}
	if len(ov.Steps) > 0 {
		for _, p := range debugdraw.PathTiles(ov.Start, ov.Steps)[1:] {
			mark(p, glyphPath)
		}
	}
	mark(ov.Start, glyphStart)
	return grid
}

func styleOf(r rune) lipgloss.Style {
	switch r {
	case glyphUnit:
		return styleUnit
	case glyphPath:
		return stylePath
	case glyphStart:
		return styleStart
	case glyphGoal:
		return styleGoal
	case 'B':
		return styleBuilding
	case '~', '=', 'c':
		return styleWater
	case '#', ' ':
		return styleBlocked
	}
	return styleLand
}

// renderGrid colours each glyph. Without a colour terminal lipgloss emits
// the plain glyphs.
func renderGrid(grid [][]rune) string {
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			b.WriteString(styleOf(r).Render(string(r)))
		}
	}
	return b.String()
}
