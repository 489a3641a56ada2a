package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	World       *World
	State       GameState
	TickRate    float64 // fixed ticks per second
	accumulator float64
	lastTime    time.Time
	now         func() time.Time
}

// NewGameLoop creates a game loop with fixed tick rate over w
func NewGameLoop(w *World) *GameLoop {
	return &GameLoop{
		World:    w,
		TickRate: w.TickRate,
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep and returns the interpolation alpha for rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	gl.Advance(frameTime)
	return gl.accumulator / (1.0 / gl.TickRate)
}

// Advance feeds frameTime seconds into the accumulator and returns how many
// ticks ran
func (gl *GameLoop) Advance(frameTime float64) int {
	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	ticks := 0
	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.World.Tick(dt)
			ticks++
		}
		gl.accumulator -= dt
	}
	return ticks
}

// Step runs exactly one tick regardless of state
func (gl *GameLoop) Step() {
	gl.World.Tick(1.0 / gl.TickRate)
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
