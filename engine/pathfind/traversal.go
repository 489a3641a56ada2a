package pathfind

import (
	"github.com/zyedidia/generic/queue"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// VisitResult tells Traversal.Run what to do with a newly reached tile
type VisitResult uint8

const (
	VisitOK       VisitResult = iota // label the tile and expand from it
	VisitDeadEnd                     // label the tile but do not expand
	VisitFinished                    // stop; Run returns true
	VisitCancel                      // stop; Run returns false
	VisitSkip                        // leave the tile unlabelled
)

// Visitor is called once per unvisited tile p reached from tile from
type Visitor func(t *Traversal, p, from maplib.Pos) VisitResult

const (
	unvisited = 0
	invalid   = -1
)

// Traversal labels tiles with their breadth-first distance from a set of
// seeds. Values live in a grid one tile larger on every side; the border
// holds invalid so neighbour lookups never leave the buffer.
type Traversal struct {
	Width, Height int

	values []int
	queue  *queue.Queue[maplib.Pos]
}

// NewTraversal creates a traversal sized for layer l and initialised
func NewTraversal(l *maplib.Layer) *Traversal {
	t := &Traversal{}
	t.SetSize(l.Width, l.Height)
	t.Init()
	return t
}

// SetSize sets the labelled area. Init must be called before use.
func (t *Traversal) SetSize(w, h int) {
	t.Width, t.Height = w, h
	if n := (w + 2) * (h + 2); cap(t.values) >= n {
		t.values = t.values[:n]
	} else {
		t.values = make([]int, n)
	}
}

// Init marks every tile unvisited and the border invalid
func (t *Traversal) Init() {
	stride := t.Width + 2
	for i := range t.values {
		x, y := i%stride, i/stride
		if x == 0 || y == 0 || x == stride-1 || y == t.Height+1 {
			t.values[i] = invalid
		} else {
			t.values[i] = unvisited
		}
	}
	t.queue = queue.New[maplib.Pos]()
}

func (t *Traversal) index(p maplib.Pos) int {
	return (p.Y+1)*(t.Width+2) + p.X + 1
}

func (t *Traversal) inBuffer(p maplib.Pos) bool {
	return p.X >= -1 && p.Y >= -1 && p.X <= t.Width && p.Y <= t.Height
}

// Get returns the label of p: 0 unvisited, -1 outside the area, otherwise
// the distance
func (t *Traversal) Get(p maplib.Pos) int {
	if !t.inBuffer(p) {
		return invalid
	}
	return t.values[t.index(p)]
}

func (t *Traversal) set(p maplib.Pos, v int) { t.values[t.index(p)] = v }

// IsVisited reports whether p carries a label (the border counts as visited)
func (t *Traversal) IsVisited(p maplib.Pos) bool { return t.Get(p) != unvisited }

// IsInvalid reports whether p lies outside the labelled area
func (t *Traversal) IsInvalid(p maplib.Pos) bool { return t.Get(p) == invalid }

// PushPos seeds p with distance 1 if it is inside the area and unvisited
func (t *Traversal) PushPos(p maplib.Pos) bool {
	if t.Get(p) != unvisited {
		return false
	}
	t.set(p, 1)
	t.queue.Enqueue(p)
	return true
}

// PushNeighbors seeds the 8 tiles around p
func (t *Traversal) PushNeighbors(p maplib.Pos) {
	for d := Direction(0); d < NumDirections; d++ {
		t.PushPos(p.Add(d.Delta().X, d.Delta().Y))
	}
}

// PushUnitPosAndNeighbors seeds u's footprint and the ring around it
func (t *Traversal) PushUnitPosAndNeighbors(u *core.Unit) {
	for y := u.Pos.Y - 1; y <= u.Pos.Y+u.Size.H; y++ {
		for x := u.Pos.X - 1; x <= u.Pos.X+u.Size.W; x++ {
			t.PushPos(maplib.Pos{X: x, Y: y})
		}
	}
}

// Run expands the queue breadth first, asking visit about each new tile.
// It returns true if the visitor finished the walk and false if the walk
// was cancelled or ran out of tiles.
func (t *Traversal) Run(visit Visitor) bool {
	for !t.queue.Empty() {
		from := t.queue.Dequeue()
		dist := t.Get(from) + 1
		for d := Direction(0); d < NumDirections; d++ {
			p := from.Add(d.Delta().X, d.Delta().Y)
			if t.Get(p) != unvisited {
				continue
			}
			switch visit(t, p, from) {
			case VisitOK:
				t.set(p, dist)
				t.queue.Enqueue(p)
			case VisitDeadEnd:
				t.set(p, dist)
			case VisitFinished:
				return true
			case VisitCancel:
				return false
			}
			// VisitSkip: p may be offered again from another neighbour
		}
	}
	return false
}

// FloodFill labels every tile of l reachable from seeds through tiles
// accepted by passable. Seeds and tiles that fail passable stay unvisited,
// so IsVisited means reachable.
func FloodFill(l *maplib.Layer, seeds []maplib.Pos, passable func(maplib.Pos) bool) *Traversal {
	t := NewTraversal(l)
	for _, s := range seeds {
		if l.Contains(s) && passable(s) {
			t.PushPos(s)
		}
	}
	t.Run(func(_ *Traversal, p, _ maplib.Pos) VisitResult {
		if passable(p) {
			return VisitOK
		}
		return VisitSkip
	})
	return t
}

// Passable returns a FloodFill predicate accepting the tiles u's footprint
// could stand on, ignoring other units
func (c *Context) Passable(u *core.Unit) func(maplib.Pos) bool {
	l := c.layer(u.Layer)
	return func(p maplib.Pos) bool {
		return l != nil && terrainOK(l, u, p, u.Size)
	}
}
