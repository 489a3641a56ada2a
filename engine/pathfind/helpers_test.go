package pathfind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-pathfinder/engine/config"
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

func openRows(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return rows
}

func newFixture(t *testing.T, layers ...[]string) (*core.World, *Context) {
	t.Helper()
	return newFixtureWith(t, config.DefaultPathfinding(), layers...)
}

func newFixtureWith(t *testing.T, cfg config.Pathfinding, layers ...[]string) (*core.World, *Context) {
	t.Helper()
	m, err := maplib.MapFromRows(t.Name(), layers...)
	require.NoError(t, err)
	w := core.NewWorld(m, 20)
	return w, New(m, w, cfg)
}

func spawn(t *testing.T, w *core.World, name string, d maplib.Domain, p maplib.Pos) *core.Unit {
	t.Helper()
	u := core.NewUnit(name, d, 0, p)
	_, err := w.Spawn(u)
	require.NoError(t, err)
	return u
}

func pos(x, y int) maplib.Pos { return maplib.Pos{X: x, Y: y} }

func walk(p maplib.Pos, steps []Direction) maplib.Pos {
	for _, d := range steps {
		p = p.Add(d.Delta().X, d.Delta().Y)
	}
	return p
}

// find runs a 1x1 query on layer 0
func find(t *testing.T, c *Context, u *core.Unit, from maplib.Pos, g Goal) Result {
	t.Helper()
	res, err := c.FindPath(u, Request{Start: from, Size: maplib.One, Goal: g})
	require.NoError(t, err)
	return res
}
