package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/debugdraw"
	"github.com/1siamBot/rts-pathfinder/engine/input"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/orders"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

const localPlayer = 0

var (
	colorFriendly = color.RGBA{60, 120, 255, 255}
	colorEnemy    = color.RGBA{220, 60, 60, 255}
	colorSelected = color.RGBA{0, 255, 0, 200}
	colorWaiting  = color.RGBA{255, 160, 0, 255}
	colorHover    = color.RGBA{255, 255, 0, 120}
	colorShroud   = color.RGBA{0, 0, 0, 200}
	colorExplored = color.RGBA{0, 0, 0, 110}
)

// Game implements ebiten.Game
type Game struct {
	world *core.World
	loop  *core.GameLoop
	paths *pathfind.Context
	moves *systems.MovementSystem
	queue *orders.Queue
	fog   *systems.FogSystem
	input *input.InputState
	grid  input.Grid

	terrain  *ebiten.Image
	selected map[core.EntityID]bool

	showFog  bool
	showGrid bool

	reached, unreachable, blocked int
}

func NewGame(w *core.World, paths *pathfind.Context, moves *systems.MovementSystem, queue *orders.Queue, fog *systems.FogSystem) *Game {
	g := &Game{
		world:    w,
		loop:     core.NewGameLoop(w),
		paths:    paths,
		moves:    moves,
		queue:    queue,
		fog:      fog,
		input:    input.NewInputState(),
		grid:     input.Grid{OriginX: 0, OriginY: HUDHeight, TileSize: TileSize},
		selected: make(map[core.EntityID]bool),
		showFog:  true,
	}
	w.Events.On(core.EvtGoalReached, func(core.Event) { g.reached++ })
	w.Events.On(core.EvtGoalUnreachable, func(core.Event) { g.unreachable++ })
	w.Events.On(core.EvtMoveBlocked, func(core.Event) { g.blocked++ })
	w.Events.On(core.EvtUnitDestroyed, func(e core.Event) { delete(g.selected, e.Unit) })
	g.loop.Play()
	return g
}

func (g *Game) Update() error {
	g.input.Update()

	if g.input.IsKeyJustPressed(ebiten.KeySpace) {
		if g.loop.State == core.StatePlaying {
			g.loop.Pause()
		} else {
			g.loop.Play()
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyN) && g.loop.State == core.StatePaused {
		g.loop.Step()
	}
	if g.input.IsKeyJustPressed(ebiten.KeyF) {
		g.showFog = !g.showFog
	}
	if g.input.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if g.input.IsKeyJustPressed(ebiten.KeyEscape) {
		clear(g.selected)
	}
	if g.input.IsKeyJustPressed(ebiten.KeyS) {
		for id := range g.selected {
			g.queue.Schedule(orders.GameCommand{Tick: g.world.TickCount, PlayerID: localPlayer, Type: orders.CmdStop, Unit: id})
		}
	}

	if g.input.LeftJustReleased {
		g.selectUnits()
	}
	if g.input.RightJustPressed {
		g.orderSelected(g.input.Hovered(g.grid))
	}

	g.loop.Update()
	return nil
}

// selectUnits handles a click or a drag box over own units
func (g *Game) selectUnits() {
	if !g.input.KeysPressed[ebiten.KeyShift] {
		clear(g.selected)
	}
	var at maplib.Pos
	var area maplib.Size
	if g.input.Dragging {
		at, area = g.grid.TileRect(g.input.DragStartX, g.input.DragStartY, g.input.MouseX, g.input.MouseY)
	} else {
		at, area = g.input.Hovered(g.grid), maplib.One
	}
	for _, u := range g.world.Units() {
		if u.Owner != localPlayer || u.Building || !u.OnMap() {
			continue
		}
		if maplib.RectDistance(u.Pos, u.Size, at, area) == 0 {
			g.selected[u.ID] = true
		}
	}
}

// orderSelected queues a move for the coming tick. Clicking an enemy
// orders an approach to attack range instead of the tile itself.
func (g *Game) orderSelected(p maplib.Pos) {
	l := g.world.Map.Layer(0)
	if !l.Contains(p) {
		return
	}
	for id := range g.selected {
		u := g.world.Unit(id)
		if u == nil {
			continue
		}
		goal := pathfind.PointGoal(u.Layer, p)
		for _, o := range g.world.UnitsAt(u.Layer, p) {
			if o.Owner != localPlayer {
				goal = pathfind.Goal{Pos: o.Pos, Size: o.Size, MaxRange: max(u.AttackRange, 1), Layer: o.Layer}
				break
			}
		}
		g.queue.Schedule(orders.MoveCommand(g.world.TickCount, localPlayer, id, goal))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})
	l := g.world.Map.Layer(0)

	if g.terrain == nil {
		img := debugdraw.Scale(debugdraw.RenderLayer(l, debugdraw.Overlay{}), TileSize)
		g.terrain = ebiten.NewImageFromImage(img)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.grid.OriginX), float64(g.grid.OriginY))
	screen.DrawImage(g.terrain, op)

	if g.showGrid {
		g.drawGrid(screen, l)
	}

	for _, u := range g.world.Units() {
		if !u.OnMap() || u.Layer != 0 {
			continue
		}
		if u.Owner != localPlayer && g.showFog && !g.visible(u) {
			continue
		}
		g.drawUnit(screen, u)
	}

	if g.showFog {
		g.drawFog(screen, l)
	}

	hover := g.input.Hovered(g.grid)
	if l.Contains(hover) {
		x, y := g.grid.ScreenOf(hover)
		vector.StrokeRect(screen, float32(x), float32(y), TileSize, TileSize, 2, colorHover, false)
	}
	if x1, y1, x2, y2, active := g.input.DragRect(); active {
		vector.StrokeRect(screen, float32(min(x1, x2)), float32(min(y1, y2)),
			float32(abs(x2-x1)), float32(abs(y2-y1)), 1, colorSelected, false)
	}

	g.drawHUD(screen, l, hover)
}

func (g *Game) visible(u *core.Unit) bool {
	fog := g.fog.Fogs[localPlayer]
	if fog == nil {
		return true
	}
	for _, p := range u.Footprint() {
		if fog.IsVisible(p) {
			return true
		}
	}
	return false
}

func (g *Game) drawUnit(screen *ebiten.Image, u *core.Unit) {
	x, y := g.grid.ScreenOf(u.Pos)
	w := float32(u.Size.W * TileSize)
	h := float32(u.Size.H * TileSize)
	c := colorFriendly
	if u.Owner != localPlayer {
		c = colorEnemy
	}
	if u.Building {
		vector.DrawFilledRect(screen, float32(x), float32(y), w, h, debugdraw.ColorBuilding, false)
		vector.StrokeRect(screen, float32(x), float32(y), w, h, 2, c, false)
		return
	}

	cx := float32(x) + w/2
	cy := float32(y) + h/2
	if o := g.moves.OrderOf(u.ID); o != nil {
		g.drawPath(screen, u, o)
		if o.Cache.Waiting() {
			c = colorWaiting
		}
	}
	if g.selected[u.ID] {
		vector.StrokeCircle(screen, cx, cy, w/2+2, 2, colorSelected, false)
	}
	vector.DrawFilledCircle(screen, cx, cy, w/2-2, c, false)
}

// drawPath traces the steps still cached for u's order
func (g *Game) drawPath(screen *ebiten.Image, u *core.Unit, o *systems.MoveOrder) {
	tiles := debugdraw.PathTiles(u.Pos, o.Cache.Remaining())
	half := float32(TileSize) / 2
	for i := 1; i < len(tiles); i++ {
		x1, y1 := g.grid.ScreenOf(tiles[i-1])
		x2, y2 := g.grid.ScreenOf(tiles[i])
		vector.StrokeLine(screen, float32(x1)+half, float32(y1)+half, float32(x2)+half, float32(y2)+half, 2, debugdraw.ColorPath, false)
	}
	goal := o.Cache.Goal()
	gx, gy := g.grid.ScreenOf(goal.Pos)
	vector.StrokeRect(screen, float32(gx), float32(gy),
		float32(goal.Size.W*TileSize), float32(goal.Size.H*TileSize), 1, debugdraw.ColorGoal, false)
}

func (g *Game) drawFog(screen *ebiten.Image, l *maplib.Layer) {
	fog := g.fog.Fogs[localPlayer]
	if fog == nil {
		return
	}
	for i := range l.Tiles {
		p := l.PosOf(i)
		var c color.RGBA
		switch fog.At(p) {
		case systems.FogShroud:
			c = colorShroud
		case systems.FogExplored:
			c = colorExplored
		default:
			continue
		}
		x, y := g.grid.ScreenOf(p)
		vector.DrawFilledRect(screen, float32(x), float32(y), TileSize, TileSize, c, false)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image, l *maplib.Layer) {
	c := color.RGBA{255, 255, 255, 30}
	for x := 0; x <= l.Width; x++ {
		sx, sy := g.grid.ScreenOf(maplib.Pos{X: x})
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx), float32(sy+l.Height*TileSize), 1, c, false)
	}
	for y := 0; y <= l.Height; y++ {
		sx, sy := g.grid.ScreenOf(maplib.Pos{Y: y})
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx+l.Width*TileSize), float32(sy), 1, c, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, l *maplib.Layer, hover maplib.Pos) {
	tile := "out of bounds"
	if t := l.At(hover); t != nil {
		tile = fmt.Sprintf("%c land %d sea %d world %d", maplib.Glyph(*t), t.Landmass, t.Sea, t.World)
	}
	state := "playing"
	if g.loop.State == core.StatePaused {
		state = "paused"
	}
	info := fmt.Sprintf(
		"Tick: %d (%s) | FPS: %.0f | Units: %d | Orders: %d | Selected: %d\n"+
			"Tile %v: %s\n"+
			"Reached: %d  Unreachable: %d  Blocked ticks: %d | Queued commands: %d\n"+
			"[LClick/drag] Select [RClick] Move [S] Stop [Space] Pause [N] Step [F] Fog [G] Grid",
		g.loop.CurrentTick(), state, ebiten.ActualFPS(),
		g.world.EntityCount(), g.moves.Active(), len(g.selected),
		hover, tile,
		g.reached, g.unreachable, g.blocked, g.queue.Pending(),
	)
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
