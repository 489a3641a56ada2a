// Package pathfind finds tile paths for units over a layered tile map.
//
// A Context owns the per-layer search buffers for one map. FindPath runs a
// one-shot A* query, NextPathElement drives a unit one tile per tick from
// its PathCache, and PlaceReachable/UnitReachable answer planning queries
// without keeping a path. Traversal is the breadth-first labelling used by
// placement and sight checks.
package pathfind

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/1siamBot/rts-pathfinder/engine/config"
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

var (
	ErrNilUnit     = errors.New("nil unit")
	ErrBadLayer    = errors.New("invalid layer")
	ErrOutOfBounds = errors.New("position outside layer")
	ErrBadSize     = errors.New("footprint must be at least 1x1")
	ErrBadRange    = errors.New("invalid range")
)

// Occupancy reports which units stand on a tile. core.World implements it.
type Occupancy interface {
	UnitsAt(z int, p maplib.Pos) []*core.Unit
}

// Context is the pathfinder for one map. Searches on a Context may run in
// parallel as long as the map and occupancy are not mutated meanwhile.
type Context struct {
	Map *maplib.Map
	Occ Occupancy

	cfg   config.Pathfinding
	log   *slog.Logger
	pools []*sync.Pool // one per layer
}

// Option configures a Context
type Option func(*Context)

// WithLogger sets the logger used for search diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// New creates a pathfinder over m. occ may be nil for terrain-only queries.
func New(m *maplib.Map, occ Occupancy, cfg config.Pathfinding, opts ...Option) *Context {
	c := &Context{Map: m, Occ: occ, cfg: cfg, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	c.pools = make([]*sync.Pool, len(m.Layers))
	for z, l := range m.Layers {
		n := l.Width * l.Height
		c.pools[z] = &sync.Pool{New: func() any { return newScratch(n) }}
	}
	return c
}

// Config returns the tuning the context was built with
func (c *Context) Config() config.Pathfinding { return c.cfg }

func (c *Context) layer(z int) *maplib.Layer {
	if z < 0 || z >= len(c.pools) {
		return nil
	}
	return c.Map.Layer(z)
}
