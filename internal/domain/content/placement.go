package content

import (
	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

// Offset is a local placement window relative to a storefront: Forward is
// along the facing direction, Lateral to either side.
type Offset struct {
	MinForward float64
	MaxForward float64
	Lateral    float64
}

var (
	ClueOffset      = Offset{MinForward: 2, MaxForward: 4, Lateral: 1.5}
	IndicatorOffset = Offset{MinForward: 1, MaxForward: 2.5, Lateral: 1}
)

// PlaceInFront rotates a randomized local offset into the shop's facing, so
// content lands in front of the storefront whatever way the street runs.
func PlaceInFront(r *rng.Stream, at Position, off Offset) world.Point {
	forward := r.Between(off.MinForward, off.MaxForward)
	lateral := r.Between(-off.Lateral, off.Lateral)
	return Rotate(at, forward, lateral)
}

func Rotate(at Position, forward, lateral float64) world.Point {
	f := at.Forward()
	// right-hand vector of the facing direction
	rx, rz := f.Z, -f.X
	return world.Point{
		X: at.X + f.X*forward + rx*lateral,
		Z: at.Z + f.Z*forward + rz*lateral,
	}
}
