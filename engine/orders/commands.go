// Package orders carries player move orders into the simulation: a compact
// binary command encoding, a per-tick queue that applies commands before
// movement runs, and replay files of applied commands.
package orders

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// CmdType identifies a command
type CmdType uint8

const (
	CmdMove CmdType = iota
	CmdStop
)

func (t CmdType) String() string {
	switch t {
	case CmdMove:
		return "move"
	case CmdStop:
		return "stop"
	}
	return fmt.Sprintf("cmd(%d)", uint8(t))
}

// GameCommand is a deterministic command that modifies game state
type GameCommand struct {
	Tick     uint64
	PlayerID int
	Type     CmdType
	Unit     core.EntityID
	Layer    int32
	TargetX  int32
	TargetY  int32
	TargetW  uint16 // goal footprint, 0 reads as 1
	TargetH  uint16
	MinRange uint16
	MaxRange uint16
}

// MoveCommand orders unit to within [minRange, maxRange] of goal
func MoveCommand(tick uint64, player int, unit core.EntityID, g pathfind.Goal) GameCommand {
	return GameCommand{
		Tick:     tick,
		PlayerID: player,
		Type:     CmdMove,
		Unit:     unit,
		Layer:    int32(g.Layer),
		TargetX:  int32(g.Pos.X),
		TargetY:  int32(g.Pos.Y),
		TargetW:  uint16(g.Size.W),
		TargetH:  uint16(g.Size.H),
		MinRange: uint16(g.MinRange),
		MaxRange: uint16(g.MaxRange),
	}
}

// Goal returns the move target carried by the command
func (c GameCommand) Goal() pathfind.Goal {
	return pathfind.Goal{
		Pos:      maplib.Pos{X: int(c.TargetX), Y: int(c.TargetY)},
		Size:     maplib.Size{W: max(int(c.TargetW), 1), H: max(int(c.TargetH), 1)},
		MinRange: int(c.MinRange),
		MaxRange: int(c.MaxRange),
		Layer:    int(c.Layer),
	}
}

// wire is the fixed-size little-endian layout of a command
type wire struct {
	Tick     uint64
	PlayerID int32
	Type     CmdType
	Unit     uint64
	Layer    int32
	TargetX  int32
	TargetY  int32
	TargetW  uint16
	TargetH  uint16
	MinRange uint16
	MaxRange uint16
}

// Encode writes a command to binary
func (c *GameCommand) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, wire{
		Tick:     c.Tick,
		PlayerID: int32(c.PlayerID),
		Type:     c.Type,
		Unit:     uint64(c.Unit),
		Layer:    c.Layer,
		TargetX:  c.TargetX,
		TargetY:  c.TargetY,
		TargetW:  c.TargetW,
		TargetH:  c.TargetH,
		MinRange: c.MinRange,
		MaxRange: c.MaxRange,
	})
}

// Decode reads a command from binary. A clean end of input returns io.EOF.
func (c *GameCommand) Decode(r io.Reader) error {
	var v wire
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	if v.Type > CmdStop {
		return fmt.Errorf("decode command: unknown type %d", v.Type)
	}
	*c = GameCommand{
		Tick:     v.Tick,
		PlayerID: int(v.PlayerID),
		Type:     v.Type,
		Unit:     core.EntityID(v.Unit),
		Layer:    v.Layer,
		TargetX:  v.TargetX,
		TargetY:  v.TargetY,
		TargetW:  v.TargetW,
		TargetH:  v.TargetH,
		MinRange: v.MinRange,
		MaxRange: v.MaxRange,
	}
	return nil
}
