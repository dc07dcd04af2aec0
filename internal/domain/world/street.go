package world

import (
	"math"

	"cityverse/internal/domain/collision"
)

type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Z-o.Z)
}

// Toward moves p toward o by at most step without overshooting.
func (p Point) Toward(o Point, step float64) Point {
	d := p.Dist(o)
	if d <= step || d == 0 {
		return o
	}
	return Point{X: p.X + (o.X-p.X)/d*step, Z: p.Z + (o.Z-p.Z)/d*step}
}

type Landmark struct {
	Name string `json:"name"`
	At   Point  `json:"at"`
}

var Landmarks = []Landmark{
	{Name: "the fountain", At: Point{X: 0, Z: 0}},
	{Name: "the clock tower", At: Point{X: 0, Z: -100}},
	{Name: "the north plaza", At: Point{X: 0, Z: 100}},
}

func NearestLandmark(p Point) (Landmark, float64) {
	best := Landmarks[0]
	bestDist := p.Dist(best.At)
	for _, l := range Landmarks[1:] {
		if d := p.Dist(l.At); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best, bestDist
}

// Direction names the compass direction from a to b. North is +Z.
func Direction(from, to Point) string {
	dx := to.X - from.X
	dz := to.Z - from.Z
	if math.Abs(dz) >= math.Abs(dx) {
		if dz >= 0 {
			return "north"
		}
		return "south"
	}
	if dx >= 0 {
		return "east"
	}
	return "west"
}

type Placement string

const (
	PlacementBoulevard   Placement = "boulevard"
	PlacementCrossStreet Placement = "cross_street"
)

// PlacementOf reports whether a storefront faces the main boulevard or one of
// the cross streets cutting through the building rows.
func PlacementOf(p Point) Placement {
	if math.Abs(p.X) > collision.SidewalkOuter &&
		math.Abs(math.Abs(p.Z)-collision.CrossStreetZ) <= collision.CrossStreetHalf {
		return PlacementCrossStreet
	}
	return PlacementBoulevard
}

type Side string

const (
	SideEast Side = "east"
	SideWest Side = "west"
)

func SideOf(p Point) Side {
	if p.X < 0 {
		return SideWest
	}
	return SideEast
}
