package pathfind

import (
	"fmt"

	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// Direction is one of the 8 compass headings a unit steps in. Y grows
// downward, so North is (0,-1).
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// NumDirections is the number of headings
const NumDirections = 8

var directionDeltas = [NumDirections]maplib.Pos{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Delta returns the one-tile offset of the heading
func (d Direction) Delta() maplib.Pos {
	return directionDeltas[d%NumDirections]
}

// DirectionOf returns the heading for a one-tile offset. ok is false for
// (0,0) and for offsets longer than one tile.
func DirectionOf(dx, dy int) (d Direction, ok bool) {
	for i, delta := range directionDeltas {
		if delta.X == dx && delta.Y == dy {
			return Direction(i), true
		}
	}
	return 0, false
}

func (d Direction) String() string {
	if d < NumDirections {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}
