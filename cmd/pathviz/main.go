// Command pathviz is an interactive viewer for the pathfinder: select units
// with the left mouse button, right-click to send them somewhere and watch
// their cached paths get consumed tick by tick.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/rts-pathfinder/engine/ai"
	"github.com/1siamBot/rts-pathfinder/engine/config"
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/orders"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TileSize     = 16
	HUDHeight    = 64
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML tuning file")
		mapPath    = flag.String("map", "", "map JSON file (default: generated demo)")
		record     = flag.String("record", "", "write applied commands to this replay file")
		replay     = flag.String("replay", "", "play back a replay file")
		enemy      = flag.Bool("ai", true, "let an AI player attack")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(2)
		}
	}
	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		slog.Error("bad log level", "error", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	m := generateDemoMap()
	if *mapPath != "" {
		if m, err = maplib.LoadJSON(*mapPath); err != nil {
			slog.Error("failed to load map", "error", err)
			os.Exit(1)
		}
	}

	w := core.NewWorld(m, cfg.Simulation.TickRate)
	paths := pathfind.New(m, w, cfg.Pathfinding, pathfind.WithLogger(logger))
	moves := systems.NewMovementSystem(w, paths)
	queue := orders.NewQueue(moves)
	players := core.NewPlayerManager()
	players.AddPlayer(&core.Player{ID: 0, Name: "Player 1", TeamID: 0})
	players.AddPlayer(&core.Player{ID: 1, Name: "AI Enemy", TeamID: 1, IsAI: true})
	fog := systems.NewFogSystem(m.Layer(0), players)

	w.AddSystem(fog)
	w.AddSystem(queue)
	w.AddSystem(moves)
	if *enemy {
		w.AddSystem(&ai.AISystem{
			Controllers: []*ai.AIController{ai.NewAIController(1, ai.DiffMedium, paths, moves)},
			Players:     players,
		})
	}

	l := m.Layer(0)
	if err := spawnSide(w, paths, 0, maplib.Pos{X: 4, Y: 6}, 6); err != nil {
		slog.Error("failed to spawn player units", "error", err)
		os.Exit(1)
	}
	if err := spawnSide(w, paths, 1, maplib.Pos{X: l.Width - 8, Y: l.Height - 8}, 6); err != nil {
		slog.Error("failed to spawn enemy units", "error", err)
		os.Exit(1)
	}

	if *replay != "" {
		r, err := orders.LoadReplay(*replay)
		if err != nil {
			slog.Error("failed to load replay", "error", err)
			os.Exit(1)
		}
		queue.Play(r)
		slog.Info("replay loaded", "path", *replay, "commands", len(r.Commands))
	}
	if *record != "" {
		r, err := orders.NewReplayRecorder(*record)
		if err != nil {
			slog.Error("failed to create replay", "error", err)
			os.Exit(1)
		}
		defer r.Close()
		queue.Recorder = r
	}

	game := NewGame(w, paths, moves, queue, fog)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("RTS Pathfinder Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("viewer stopped", "error", err)
	}
	if err := queue.Err(); err != nil {
		slog.Error("replay recording failed", "error", err)
	}
}
