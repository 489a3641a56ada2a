package ai

import (
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
	"github.com/1siamBot/rts-pathfinder/engine/systems"
)

// Difficulty controls AI behavior
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

// AIController manages one AI player: idle combat units are sent after
// the nearest enemy they can actually reach
type AIController struct {
	PlayerID   int
	Difficulty Difficulty
	Paths      *pathfind.Context
	Moves      *systems.MovementSystem
	// MaxSearch bounds the path length considered when picking targets
	MaxSearch int
	// ThreatRadius is how far around a target hostile units count toward
	// its threat when two targets are equally close
	ThreatRadius int

	tickTimer     float64
	thinkInterval float64
	orders        int
}

func NewAIController(playerID int, diff Difficulty, paths *pathfind.Context, moves *systems.MovementSystem) *AIController {
	interval := 5.0
	maxSearch := 48
	switch diff {
	case DiffEasy:
		interval = 8.0
		maxSearch = 24
	case DiffHard:
		interval = 3.0
		maxSearch = 0
	}
	return &AIController{
		PlayerID:      playerID,
		Difficulty:    diff,
		Paths:         paths,
		Moves:         moves,
		MaxSearch:     maxSearch,
		ThreatRadius:  4,
		thinkInterval: interval,
	}
}

// OrdersIssued returns how many attack orders the controller has given
func (ai *AIController) OrdersIssued() int { return ai.orders }

// AISystem runs all AI controllers
type AISystem struct {
	Controllers []*AIController
	Players     *core.PlayerManager
}

func (s *AISystem) Priority() int { return 50 }

func (s *AISystem) Update(w *core.World, dt float64) {
	for _, ai := range s.Controllers {
		ai.tickTimer += dt
		if ai.tickTimer >= ai.thinkInterval {
			ai.tickTimer = 0
			ai.Think(w, s.Players)
		}
	}
}

// Think is the main AI decision loop
func (ai *AIController) Think(w *core.World, pm *core.PlayerManager) {
	player := pm.GetPlayer(ai.PlayerID)
	if player == nil || player.Defeated {
		return
	}
	for _, u := range w.Units() {
		if u.Owner != ai.PlayerID || u.Building || u.Moving || !u.OnMap() {
			continue
		}
		target, _ := ai.NearestReachableEnemy(w, pm, u)
		if target == nil {
			continue
		}
		ai.Moves.Order(w, u, pathfind.Goal{
			Pos:      target.Pos,
			Size:     target.Size,
			MaxRange: max(u.AttackRange, 1),
			Layer:    target.Layer,
		})
		ai.orders++
	}
}

func (ai *AIController) hostile(pm *core.PlayerManager, owner int) bool {
	return owner != ai.PlayerID && !pm.AreAllies(ai.PlayerID, owner)
}

// NearestReachableEnemy returns the enemy u can get in range of in the
// fewest steps, and that step count. Among equally close enemies the one
// with the lowest ThreatAssessment around it wins, then the lower ID.
func (ai *AIController) NearestReachableEnemy(w *core.World, pm *core.PlayerManager, u *core.Unit) (*core.Unit, int) {
	var best *core.Unit
	bestDist := 0
	bestThreat := -1.0 // not computed yet
	for _, e := range w.Units() {
		if !ai.hostile(pm, e.Owner) || !e.OnMap() || e.Layer != u.Layer {
			continue
		}
		d := ai.Paths.UnitReachable(u, e, u.AttackRange, ai.MaxSearch, false)
		if d == 0 {
			continue
		}
		switch {
		case best == nil || d < bestDist:
			best, bestDist, bestThreat = e, d, -1
		case d == bestDist:
			if bestThreat < 0 {
				bestThreat = ThreatAssessment(w, pm, ai.PlayerID, best.Pos, ai.ThreatRadius)
			}
			if th := ThreatAssessment(w, pm, ai.PlayerID, e.Pos, ai.ThreatRadius); th < bestThreat {
				best, bestThreat = e, th
			}
		}
	}
	return best, bestDist
}

// ThreatAssessment sums the attack ranges of hostile units within radius
// tiles of p, weighted by how close they are
func ThreatAssessment(w *core.World, pm *core.PlayerManager, playerID int, p maplib.Pos, radius int) float64 {
	threat := 0.0
	for _, u := range w.Units() {
		if u.Owner == playerID || pm.AreAllies(playerID, u.Owner) || !u.OnMap() || u.Building {
			continue
		}
		d := maplib.RectDistance(p, maplib.One, u.Pos, u.Size)
		if d <= radius {
			threat += float64(u.AttackRange) * (1.0 - float64(d)/float64(radius+1))
		}
	}
	return threat
}
