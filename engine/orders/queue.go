package orders

import (
	"log/slog"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

// Queue holds commands until their tick and hands them to the movement
// system. It runs before movement so an order given for tick N moves the
// unit on tick N.
type Queue struct {
	Moves *systems.MovementSystem
	// Recorder, when set, receives every applied command
	Recorder *Replay
	Log      *slog.Logger

	pending map[uint64][]GameCommand
	err     error
}

func NewQueue(moves *systems.MovementSystem) *Queue {
	return &Queue{
		Moves:   moves,
		Log:     slog.Default(),
		pending: make(map[uint64][]GameCommand),
	}
}

func (q *Queue) Priority() int { return 5 }

// Schedule queues a command for its tick. Commands for the same tick run
// in the order they were scheduled.
func (q *Queue) Schedule(cmd GameCommand) {
	q.pending[cmd.Tick] = append(q.pending[cmd.Tick], cmd)
}

// Play schedules every command of a replay
func (q *Queue) Play(r *Replay) {
	for _, c := range r.Commands {
		q.Schedule(c)
	}
}

// Err returns the first error hit while recording
func (q *Queue) Err() error { return q.err }

// Pending returns the number of commands not yet applied
func (q *Queue) Pending() int {
	n := 0
	for _, cmds := range q.pending {
		n += len(cmds)
	}
	return n
}

func (q *Queue) Update(w *core.World, _ float64) {
	cmds := q.pending[w.TickCount]
	delete(q.pending, w.TickCount)
	for _, c := range cmds {
		if q.apply(w, c) && q.Recorder != nil {
			if err := q.Recorder.Record(c); err != nil && q.err == nil {
				q.err = err
			}
		}
	}
}

// apply runs one command, dropping those for unknown or foreign units
func (q *Queue) apply(w *core.World, c GameCommand) bool {
	u := w.Unit(c.Unit)
	if u == nil || u.Owner != c.PlayerID {
		q.Log.Debug("command dropped", "type", c.Type, "unit", c.Unit, "player", c.PlayerID)
		return false
	}
	switch c.Type {
	case CmdMove:
		q.Moves.Order(w, u, c.Goal())
	case CmdStop:
		q.Moves.Stop(u)
	default:
		return false
	}
	return true
}
