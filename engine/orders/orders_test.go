package orders

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-pathfinder/engine/config"
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

func TestCommandEncoding(t *testing.T) {
	g := pathfind.Goal{Pos: maplib.Pos{X: 7, Y: 3}, Size: maplib.Size{W: 2, H: 2}, MinRange: 1, MaxRange: 4, Layer: 1}
	cmd := MoveCommand(42, 2, 99, g)

	var buf bytes.Buffer
	require.NoError(t, cmd.Encode(&buf))
	require.NoError(t, (&GameCommand{Tick: 43, Type: CmdStop, Unit: 99}).Encode(&buf))

	var got GameCommand
	require.NoError(t, got.Decode(&buf))
	assert.Equal(t, cmd, got)
	assert.Equal(t, g, got.Goal())

	require.NoError(t, got.Decode(&buf))
	assert.Equal(t, CmdStop, got.Type)
	assert.Equal(t, maplib.One, got.Goal().Size, "zero footprint reads as 1x1")

	assert.ErrorIs(t, got.Decode(&buf), io.EOF)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&GameCommand{Type: 9}).Encode(&buf))
	var c GameCommand
	assert.Error(t, c.Decode(&buf))

	buf.Reset()
	require.NoError(t, (&GameCommand{Type: CmdMove}).Encode(&buf))
	short := bytes.NewReader(buf.Bytes()[:buf.Len()-3])
	assert.ErrorIs(t, c.Decode(short), io.ErrUnexpectedEOF)
}

type sim struct {
	w     *core.World
	q     *Queue
	ms    *systems.MovementSystem
	units []*core.Unit
}

// newSim builds the same small battle every time, with fixed unit IDs so
// commands can be replayed against a fresh world
func newSim(t *testing.T) *sim {
	t.Helper()
	m, err := maplib.MapFromRows("replay", []string{
		"..........",
		"..~~~.....",
		"..~~~..#..",
		".......#..",
		"..........",
	})
	require.NoError(t, err)
	w := core.NewWorld(m, 20)
	paths := pathfind.New(m, w, config.DefaultPathfinding())
	ms := systems.NewMovementSystem(w, paths)
	q := NewQueue(ms)
	w.AddSystem(ms)
	w.AddSystem(q)

	s := &sim{w: w, q: q, ms: ms}
	for i, p := range []maplib.Pos{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 9, Y: 4}} {
		u := core.NewUnit("tank", maplib.DomainLand, 0, p)
		u.ID = core.EntityID(1<<40 + i)
		u.Owner = 1
		_, err := w.Spawn(u)
		require.NoError(t, err)
		s.units = append(s.units, u)
	}
	return s
}

func (s *sim) run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.w.Tick(0.05)
	}
}

func (s *sim) positions() []maplib.Pos {
	var out []maplib.Pos
	for _, u := range s.units {
		out = append(out, u.Pos)
	}
	return out
}

func TestQueueAppliesCommandsOnTheirTick(t *testing.T) {
	s := newSim(t)
	u := s.units[0]
	s.q.Schedule(MoveCommand(2, 1, u.ID, pathfind.PointGoal(0, maplib.Pos{X: 5, Y: 0})))
	s.q.Schedule(MoveCommand(2, 2, s.units[1].ID, pathfind.PointGoal(0, maplib.Pos{X: 5, Y: 4})))
	require.Equal(t, 2, s.q.Pending())

	s.run(2)
	assert.Equal(t, maplib.Pos{X: 0, Y: 0}, u.Pos)
	s.run(1)
	assert.Equal(t, maplib.Pos{X: 1, Y: 0}, u.Pos, "ordered and stepped on tick 2")
	assert.Nil(t, s.ms.OrderOf(s.units[1].ID), "player 2 does not own that unit")
	assert.Zero(t, s.q.Pending())

	s.q.Schedule(GameCommand{Tick: s.w.TickCount, PlayerID: 1, Type: CmdStop, Unit: u.ID})
	s.run(1)
	assert.Equal(t, maplib.Pos{X: 1, Y: 0}, u.Pos)
	assert.Nil(t, s.ms.OrderOf(u.ID))
}

func TestReplayReproducesGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.replay")
	live := newSim(t)
	rec, err := NewReplayRecorder(path)
	require.NoError(t, err)
	live.q.Recorder = rec

	a, b, c := live.units[0].ID, live.units[1].ID, live.units[2].ID
	live.q.Schedule(MoveCommand(0, 1, a, pathfind.PointGoal(0, maplib.Pos{X: 9, Y: 0})))
	live.q.Schedule(MoveCommand(1, 1, b, pathfind.PointGoal(0, maplib.Pos{X: 9, Y: 1})))
	live.q.Schedule(MoveCommand(1, 1, c, pathfind.Goal{Pos: maplib.Pos{X: 0, Y: 0}, Size: maplib.One, MaxRange: 2}))
	live.q.Schedule(MoveCommand(3, 9, c, pathfind.PointGoal(0, maplib.Pos{X: 5, Y: 4}))) // not player 9's unit
	live.q.Schedule(GameCommand{Tick: 6, PlayerID: 1, Type: CmdStop, Unit: b})
	live.run(20)
	require.NoError(t, rec.Close())
	require.NoError(t, live.q.Err())

	replay, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, replay.Commands, 4, "dropped commands are not recorded")
	assert.Len(t, replay.CommandsForTick(1), 2)

	again := newSim(t)
	again.q.Play(replay)
	again.run(20)
	assert.Equal(t, live.positions(), again.positions())
}

func TestLoadReplayErrors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.replay"))
	assert.Error(t, err)
}
