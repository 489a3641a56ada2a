package core

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// EntityID is a unique identifier for game entities
type EntityID uint64

var entityCounter uint64

// NewEntityID generates a unique entity ID
func NewEntityID() EntityID {
	return EntityID(atomic.AddUint64(&entityCounter, 1))
}

var (
	ErrOffMap       = errors.New("unit footprint is off the map")
	ErrUnknownUnit  = errors.New("unknown unit")
	ErrNotOnMap     = errors.New("unit is not on the map")
	ErrInvalidShape = errors.New("unit footprint must be at least 1x1")
)

// World holds all units, the map they stand on and a per-tile occupancy index
type World struct {
	Map       *maplib.Map
	Events    *EventBus
	TickCount uint64
	TickRate  float64 // ticks per second (for deterministic lockstep)

	units     map[EntityID]*Unit
	occupancy [][][]EntityID // layer -> tile index -> units standing there
	systems   []System
	toRemove  []EntityID
}

// System processes the world each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a world over m
func NewWorld(m *maplib.Map, tickRate float64) *World {
	w := &World{
		Map:      m,
		Events:   NewEventBus(),
		TickRate: tickRate,
		units:    make(map[EntityID]*Unit),
	}
	for _, l := range m.Layers {
		w.occupancy = append(w.occupancy, make([][]EntityID, l.Width*l.Height))
	}
	return w
}

// Spawn places a unit on the map and returns its ID. A unit with a
// Container is registered but not placed on any tile.
func (w *World) Spawn(u *Unit) (EntityID, error) {
	if !u.Size.Valid() {
		return 0, fmt.Errorf("spawn %q: %w", u.Name, ErrInvalidShape)
	}
	if u.Container == nil {
		if err := w.checkFootprint(u.Layer, u.Pos, u.Size); err != nil {
			return 0, fmt.Errorf("spawn %q at %v: %w", u.Name, u.Pos, err)
		}
	}
	if u.ID == 0 {
		u.ID = NewEntityID()
	}
	u.Removed = false
	w.units[u.ID] = u
	if u.Container == nil {
		w.index(u, true)
	}
	w.Events.Emit(Event{Type: EvtUnitCreated, Tick: w.TickCount, Unit: u.ID})
	return u.ID, nil
}

func (w *World) checkFootprint(z int, p maplib.Pos, s maplib.Size) error {
	l := w.Map.Layer(z)
	if l == nil || z >= len(w.occupancy) {
		return fmt.Errorf("layer %d: %w", z, ErrOffMap)
	}
	if !l.RectInBounds(p, s) {
		return ErrOffMap
	}
	return nil
}

// index adds or removes u from every tile of its footprint
func (w *World) index(u *Unit, add bool) {
	l := w.Map.Layer(u.Layer)
	cells := w.occupancy[u.Layer]
	for _, p := range u.Footprint() {
		i := l.Index(p)
		if add {
			cells[i] = append(cells[i], u.ID)
			continue
		}
		ids := cells[i]
		for k, id := range ids {
			if id == u.ID {
				cells[i] = append(ids[:k], ids[k+1:]...)
				break
			}
		}
	}
}

// Unit returns the unit with the given ID, or nil
func (w *World) Unit(id EntityID) *Unit {
	return w.units[id]
}

// Units returns every live unit ordered by ID
func (w *World) Units() []*Unit {
	out := make([]*Unit, 0, len(w.units))
	for _, u := range w.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnitsAt returns the units whose footprint covers tile p of layer z
func (w *World) UnitsAt(z int, p maplib.Pos) []*Unit {
	l := w.Map.Layer(z)
	if l == nil || z >= len(w.occupancy) || !l.Contains(p) {
		return nil
	}
	ids := w.occupancy[z][l.Index(p)]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Unit, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.units[id])
	}
	return out
}

// MoveUnit relocates a unit on its current layer
func (w *World) MoveUnit(u *Unit, to maplib.Pos) error {
	if w.units[u.ID] != u {
		return ErrUnknownUnit
	}
	if !u.OnMap() {
		return ErrNotOnMap
	}
	if err := w.checkFootprint(u.Layer, to, u.Size); err != nil {
		return fmt.Errorf("move %d to %v: %w", u.ID, to, err)
	}
	w.index(u, false)
	u.Pos = to
	w.index(u, true)
	w.Events.Emit(Event{Type: EvtUnitMoved, Tick: w.TickCount, Unit: u.ID})
	return nil
}

// Board takes u off the map and puts it inside container
func (w *World) Board(u, container *Unit) error {
	if w.units[u.ID] != u || w.units[container.ID] != container {
		return ErrUnknownUnit
	}
	if !u.OnMap() {
		return ErrNotOnMap
	}
	w.index(u, false)
	u.Container = container
	u.Moving = false
	return nil
}

// Unboard puts a contained unit back on the map at p on its container's layer
func (w *World) Unboard(u *Unit, p maplib.Pos) error {
	if w.units[u.ID] != u {
		return ErrUnknownUnit
	}
	if u.Container == nil {
		return fmt.Errorf("unboard %d: not contained", u.ID)
	}
	z := u.Container.Layer
	if err := w.checkFootprint(z, p, u.Size); err != nil {
		return fmt.Errorf("unboard %d at %v: %w", u.ID, p, err)
	}
	u.Container = nil
	u.Layer = z
	u.Pos = p
	w.index(u, true)
	return nil
}

// Destroy marks a unit for removal at the end of the tick
func (w *World) Destroy(id EntityID) {
	w.toRemove = append(w.toRemove, id)
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once, removes destroyed units and dispatches events
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	for _, id := range w.toRemove {
		u, ok := w.units[id]
		if !ok {
			continue
		}
		if u.OnMap() {
			w.index(u, false)
		}
		u.Removed = true
		delete(w.units, id)
		w.Events.Emit(Event{Type: EvtUnitDestroyed, Tick: w.TickCount, Unit: id})
	}
	w.toRemove = w.toRemove[:0]
	w.Events.Dispatch()
	w.TickCount++
}

// EntityCount returns the number of alive units
func (w *World) EntityCount() int {
	return len(w.units)
}
