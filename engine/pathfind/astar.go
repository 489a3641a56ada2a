package pathfind

import (
	"fmt"

	"github.com/zyedidia/generic/heap"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// Status is the outcome of a path query
type Status uint8

const (
	StatusMove        Status = iota // steps remain toward the goal
	StatusReached                   // already within range
	StatusUnreachable               // no path under current terrain and occupancy
	StatusWait                      // next step is blocked, try again next tick
)

var statusNames = [...]string{"move", "reached", "unreachable", "wait"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Goal is where a unit wants to be: within [MinRange, MaxRange] tiles of
// the Size footprint at Pos on layer Layer. Range 0 means standing on the
// footprint, range 1 adjacent to or on it.
type Goal struct {
	Pos      maplib.Pos
	Size     maplib.Size
	MinRange int
	MaxRange int
	Layer    int
}

// PointGoal is a single-tile goal the mover must stand on
func PointGoal(z int, p maplib.Pos) Goal {
	return Goal{Pos: p, Size: maplib.One, Layer: z}
}

// Request is a one-shot path query for a mover of footprint Size at Start
type Request struct {
	Start maplib.Pos
	Size  maplib.Size
	Goal  Goal
	// MaxLength stops expanding nodes this many steps from the start (0 = no limit)
	MaxLength int
}

// Result of FindPath
type Result struct {
	Status Status
	// Steps holds the first min(Length, MaxPathLength) headings from the start
	Steps []Direction
	// Length is the step count of the whole path
	Length int
	// Exhausted is set when the expansion budget ran out before a result
	Exhausted bool
	Expanded  int
}

type node struct {
	idx  int
	g, h int
	tie  int
	seq  uint64
}

func lessNode(a, b node) bool {
	if fa, fb := a.g+a.h, b.g+b.h; fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.tie != b.tie {
		return a.tie < b.tie
	}
	return a.seq < b.seq
}

// scratch holds per-layer search state. A tile's entries are valid only
// when its stamp equals the current generation.
type scratch struct {
	gen    uint32
	stamp  []uint32
	closed []uint32
	g      []int
	steps  []int
	prev   []int32
	dir    []Direction
}

func newScratch(n int) *scratch {
	return &scratch{
		stamp:  make([]uint32, n),
		closed: make([]uint32, n),
		g:      make([]int, n),
		steps:  make([]int, n),
		prev:   make([]int32, n),
		dir:    make([]Direction, n),
	}
}

func (s *scratch) reset() {
	s.gen++
	if s.gen == 0 {
		clear(s.stamp)
		clear(s.closed)
		s.gen = 1
	}
}

func (s *scratch) seen(i int) bool     { return s.stamp[i] == s.gen }
func (s *scratch) isClosed(i int) bool { return s.closed[i] == s.gen }

// validate checks the request and returns the goal clamped to the layer
func (c *Context) validate(u *core.Unit, req Request) (*maplib.Layer, Goal, error) {
	g := req.Goal
	if u == nil {
		return nil, g, ErrNilUnit
	}
	l := c.layer(g.Layer)
	if l == nil {
		return nil, g, fmt.Errorf("layer %d: %w", g.Layer, ErrBadLayer)
	}
	if !req.Size.Valid() || !g.Size.Valid() {
		return nil, g, fmt.Errorf("mover %v goal %v: %w", req.Size, g.Size, ErrBadSize)
	}
	if g.MinRange < 0 || g.MaxRange < g.MinRange {
		return nil, g, fmt.Errorf("range [%d,%d]: %w", g.MinRange, g.MaxRange, ErrBadRange)
	}
	if !l.RectInBounds(req.Start, req.Size) {
		return nil, g, fmt.Errorf("start %v: %w", req.Start, ErrOutOfBounds)
	}
	if !l.Contains(g.Pos) {
		return nil, g, fmt.Errorf("goal %v: %w", g.Pos, ErrOutOfBounds)
	}
	// Large goal footprints at the map edge are clamped rather than rejected
	g.Size.W = min(g.Size.W, l.Width-g.Pos.X)
	g.Size.H = min(g.Size.H, l.Height-g.Pos.Y)
	return l, g, nil
}

// FindPath runs A* for unit u from req.Start to any tile satisfying the goal
// range. u supplies the domain, movement mask and identity; the footprint
// comes from req.Size. Unreachable goals are a Status, not an error; errors
// are reserved for malformed requests.
func (c *Context) FindPath(u *core.Unit, req Request) (Result, error) {
	l, goal, err := c.validate(u, req)
	if err != nil {
		return Result{Status: StatusUnreachable}, err
	}
	if inRange(req.Start, req.Size, goal) {
		return Result{Status: StatusReached}, nil
	}

	pool := c.pools[goal.Layer]
	s := pool.Get().(*scratch)
	defer pool.Put(s)
	s.reset()

	open := heap.New(lessNode)
	var seq uint64
	start := l.Index(req.Start)
	s.stamp[start] = s.gen
	s.g[start] = 0
	s.steps[start] = 0
	s.prev[start] = -1
	open.Push(node{idx: start, h: goalHeuristic(req.Start, req.Size, goal)})

	found := -1
	res := Result{Status: StatusUnreachable}
	for open.Size() > 0 {
		n, _ := open.Pop()
		if s.isClosed(n.idx) || n.g != s.g[n.idx] {
			continue // stale entry
		}
		s.closed[n.idx] = s.gen
		p := l.PosOf(n.idx)
		if n.h == 0 && inRange(p, req.Size, goal) {
			found = n.idx
			break
		}
		res.Expanded++
		if c.cfg.MaxExpansions > 0 && res.Expanded > c.cfg.MaxExpansions {
			res.Exhausted = true
			break
		}
		if req.MaxLength > 0 && s.steps[n.idx] >= req.MaxLength {
			continue
		}
		for d := Direction(0); d < NumDirections; d++ {
			np := p.Add(d.Delta().X, d.Delta().Y)
			if !l.Contains(np) {
				continue
			}
			ni := l.Index(np)
			if s.isClosed(ni) {
				continue
			}
			cost := c.Cost(u, goal.Layer, np, req.Size)
			if cost == CostImpassable {
				continue
			}
			ng := n.g + cost
			if s.seen(ni) && ng >= s.g[ni] {
				continue
			}
			s.stamp[ni] = s.gen
			s.g[ni] = ng
			s.steps[ni] = s.steps[n.idx] + 1
			s.prev[ni] = int32(n.idx)
			s.dir[ni] = d
			seq++
			open.Push(node{
				idx: ni,
				g:   ng,
				h:   goalHeuristic(np, req.Size, goal),
				tie: goalTieBreak(np, req.Size, goal),
				seq: seq,
			})
		}
	}

	if found < 0 {
		c.log.Debug("no path",
			"unit", u.ID, "layer", goal.Layer, "goal", goal.Pos,
			"expanded", res.Expanded, "exhausted", res.Exhausted)
		return res, nil
	}
	return c.reconstruct(u, s, found, goal, res), nil
}

// reconstruct walks predecessors back from end, keeping the first
// MaxPathLength headings
func (c *Context) reconstruct(u *core.Unit, s *scratch, end int, goal Goal, res Result) Result {
	length := s.steps[end]
	keep := min(length, c.cfg.MaxPathLength)
	steps := make([]Direction, keep)
	k := length - 1
	for i := end; s.prev[i] >= 0; i = int(s.prev[i]) {
		p := int(s.prev[i])
		if c.softBlocked(s.g[i] - s.g[p]) {
			c.log.Debug("path crosses a blocked tile",
				"unit", u.ID, "layer", goal.Layer, "goal", goal.Pos)
			res.Status = StatusUnreachable
			return res
		}
		if k < keep {
			steps[k] = s.dir[i]
		}
		k--
	}
	res.Status = StatusMove
	res.Steps = steps
	res.Length = length
	return res
}
