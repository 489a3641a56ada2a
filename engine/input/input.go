// Package input samples ebiten mouse and keyboard state once per frame and
// maps screen coordinates onto the tile grid of a top-down view.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// Keys the viewer reacts to
var watchedKeys = []ebiten.Key{
	ebiten.KeySpace, ebiten.KeyN, ebiten.KeyEscape,
	ebiten.KeyShift, ebiten.KeyS,
	ebiten.KeyF, ebiten.KeyG,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool

	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	KeysPressed map[ebiten.Key]bool
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		KeysPressed:   make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftPressed = leftDown
	s.RightPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)

	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	// Dragging stays set on the release frame so callers can tell a box
	// selection from a click
	if !leftDown && !s.LeftJustReleased {
		s.Dragging = false
	}

	for _, k := range watchedKeys {
		s.KeysPressed[k] = ebiten.IsKeyPressed(k)
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// DragRect returns the selection rectangle if dragging
func (s *InputState) DragRect() (x1, y1, x2, y2 int, active bool) {
	if !s.Dragging {
		return 0, 0, 0, 0, false
	}
	return s.DragStartX, s.DragStartY, s.MouseX, s.MouseY, true
}

// Grid maps screen pixels to tiles for a top-down view drawn at
// OriginX, OriginY with square tiles of TileSize pixels
type Grid struct {
	OriginX, OriginY int
	TileSize         int
}

// TileAt returns the tile under screen point x, y
func (g Grid) TileAt(x, y int) maplib.Pos {
	return maplib.Pos{X: floorDiv(x-g.OriginX, g.TileSize), Y: floorDiv(y-g.OriginY, g.TileSize)}
}

// ScreenOf returns the top-left pixel of tile p
func (g Grid) ScreenOf(p maplib.Pos) (x, y int) {
	return g.OriginX + p.X*g.TileSize, g.OriginY + p.Y*g.TileSize
}

// TileRect returns the tiles covered by the screen rectangle spanned by two
// corners, as a top-left tile and a size
func (g Grid) TileRect(x1, y1, x2, y2 int) (maplib.Pos, maplib.Size) {
	a := g.TileAt(min(x1, x2), min(y1, y2))
	b := g.TileAt(max(x1, x2), max(y1, y2))
	return a, maplib.Size{W: b.X - a.X + 1, H: b.Y - a.Y + 1}
}

// Hovered returns the tile under the cursor
func (s *InputState) Hovered(g Grid) maplib.Pos {
	return g.TileAt(s.MouseX, s.MouseY)
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
