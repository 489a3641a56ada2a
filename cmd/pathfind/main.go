// Command pathfind runs a single path query against a map and prints the
// result as a coloured tile grid.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/1siamBot/rts-pathfinder/engine/config"
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/debugdraw"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// demoRows is used when no -map is given
var demoRows = []string{
	"........................",
	"........................",
	"...######.......~~~~....",
	"........#......~~~~~~...",
	"...B....#......~~==~~...",
	"........#.......~==~....",
	"..ffff..#........==.....",
	"..ffff..######...==.....",
	"..................==....",
	"........................",
	"...,,,,,,,,,,,,,,,,,,...",
	"........................",
}

type query struct {
	from, to  maplib.Pos
	size      maplib.Size
	goalSize  maplib.Size
	minRange  int
	maxRange  int
	maxLength int
	layer     int
	domain    maplib.Domain
	blockers  []maplib.Pos
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML tuning file")
		mapPath    = flag.String("map", "", "map JSON file (default: built-in demo)")
		from       = flag.String("from", "1,1", "start tile x,y")
		to         = flag.String("to", "20,8", "goal tile x,y")
		size       = flag.String("size", "1x1", "unit footprint WxH")
		goalSize   = flag.String("goal-size", "1x1", "goal footprint WxH")
		domain     = flag.String("domain", "land", "land, water, air or air-low")
		minRange   = flag.Int("min-range", 0, "minimum distance to the goal")
		maxRange   = flag.Int("range", 0, "maximum distance to the goal")
		maxLength  = flag.Int("max-length", 0, "search length limit (0 = none)")
		layer      = flag.Int("layer", 0, "map layer")
		pngPath    = flag.String("png", "", "also write the grid as a PNG")
		scale      = flag.Int("scale", 12, "PNG pixels per tile")
		blocks     []maplib.Pos
	)
	flag.Func("block", "stationary unit at x,y (repeatable)", func(s string) error {
		p, err := parsePos(s)
		if err != nil {
			return err
		}
		blocks = append(blocks, p)
		return nil
	})
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	q := query{minRange: *minRange, maxRange: *maxRange, maxLength: *maxLength, layer: *layer, blockers: blocks}
	if q.from, err = parsePos(*from); err == nil {
		if q.to, err = parsePos(*to); err == nil {
			if q.size, err = parseSize(*size); err == nil {
				if q.goalSize, err = parseSize(*goalSize); err == nil {
					q.domain, err = maplib.ParseDomain(*domain)
				}
			}
		}
	}
	if err != nil {
		slog.Error("bad arguments", "error", err)
		os.Exit(2)
	}

	m, err := loadMap(*mapPath)
	if err != nil {
		slog.Error("failed to load map", "error", err)
		os.Exit(1)
	}

	ov, res, err := run(m, cfg, q, os.Stdout)
	if err != nil {
		slog.Error("query failed", "error", err)
		os.Exit(1)
	}
	slog.Debug("query finished", "status", res.Status, "expanded", res.Expanded)

	if *pngPath != "" {
		img := debugdraw.Scale(debugdraw.RenderLayer(m.Layer(q.layer), ov), *scale)
		if err := debugdraw.SavePNG(*pngPath, img); err != nil {
			slog.Error("failed to write png", "error", err)
			os.Exit(1)
		}
		slog.Info("png written", "path", *pngPath)
	}
	if res.Status == pathfind.StatusUnreachable {
		os.Exit(3)
	}
}

func loadMap(path string) (*maplib.Map, error) {
	if path == "" {
		return maplib.MapFromRows("demo", demoRows)
	}
	return maplib.LoadJSON(path)
}

// run spawns the mover and any blockers, searches, and prints the grid and
// a one-line summary to out
func run(m *maplib.Map, cfg config.Config, q query, out io.Writer) (debugdraw.Overlay, pathfind.Result, error) {
	w := core.NewWorld(m, cfg.Simulation.TickRate)
	u := core.NewUnit("mover", q.domain, q.layer, q.from)
	u.Size = q.size
	if _, err := w.Spawn(u); err != nil {
		return debugdraw.Overlay{}, pathfind.Result{}, err
	}
	for i, p := range q.blockers {
		b := core.NewUnit(fmt.Sprintf("blocker-%d", i), q.domain, q.layer, p)
		if _, err := w.Spawn(b); err != nil {
			return debugdraw.Overlay{}, pathfind.Result{}, err
		}
	}

	paths := pathfind.New(m, w, cfg.Pathfinding)
	goal := pathfind.Goal{
		Pos:      q.to,
		Size:     q.goalSize,
		MinRange: q.minRange,
		MaxRange: q.maxRange,
		Layer:    q.layer,
	}
	res, err := paths.FindPath(u, pathfind.Request{Start: q.from, Size: q.size, Goal: goal, MaxLength: q.maxLength})
	if err != nil {
		return debugdraw.Overlay{}, pathfind.Result{}, err
	}

	ov := debugdraw.Overlay{Units: w.Units(), Start: q.from, Steps: res.Steps, Goal: &goal}
	fmt.Fprintln(out, renderGrid(asciiGrid(m.Layer(q.layer), ov)))
	fmt.Fprintf(out, "%s length=%d steps=%d expanded=%d", res.Status, res.Length, len(res.Steps), res.Expanded)
	if res.Exhausted {
		fmt.Fprint(out, " exhausted")
	}
	if len(res.Steps) > 0 {
		dirs := make([]string, len(res.Steps))
		for i, d := range res.Steps {
			dirs[i] = d.String()
		}
		fmt.Fprintf(out, "\n%s", strings.Join(dirs, " "))
	}
	fmt.Fprintln(out)
	return ov, res, nil
}

func parsePos(s string) (maplib.Pos, error) {
	x, y, err := parsePair(s, ",")
	return maplib.Pos{X: x, Y: y}, err
}

func parseSize(s string) (maplib.Size, error) {
	w, h, err := parsePair(s, "x")
	if err == nil && (w <= 0 || h <= 0) {
		err = fmt.Errorf("size %q must be positive", s)
	}
	return maplib.Size{W: w, H: h}, err
}

func parsePair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%q: want two numbers separated by %q", s, sep)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	return x, y, nil
}
