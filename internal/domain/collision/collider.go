package collision

import "math"

// Collider is one of Box, Cylinder or Surface.
type Collider interface {
	collider()
}

type Box struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MinZ float64 `json:"min_z" yaml:"min_z"`
	MaxZ float64 `json:"max_z" yaml:"max_z"`
}

// Cylinder blocks only below its Height, so a player standing on top of a
// low post is not pushed off it.
type Cylinder struct {
	X      float64 `json:"x" yaml:"x"`
	Z      float64 `json:"z" yaml:"z"`
	Radius float64 `json:"radius" yaml:"radius"`
	Height float64 `json:"height" yaml:"height"`
}

type Surface struct {
	Footprint    Footprint
	Height       float64
	RequiresJump bool
	AltModeOnly  bool
}

func (Box) collider()      {}
func (Cylinder) collider() {}
func (Surface) collider()  {}

// Footprint is one of Circle or Rect.
type Footprint interface {
	footprint()
	Contains(x, z float64) bool
}

type Circle struct {
	X      float64
	Z      float64
	Radius float64
}

type Rect struct {
	MinX float64
	MaxX float64
	MinZ float64
	MaxZ float64
}

func (Circle) footprint() {}
func (Rect) footprint()   {}

func (c Circle) Contains(x, z float64) bool {
	dx := x - c.X
	dz := z - c.Z
	return dx*dx+dz*dz <= c.Radius*c.Radius
}

func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Inflate grows the box by r on all sides.
func (b Box) Inflate(r float64) Box {
	return Box{MinX: b.MinX - r, MaxX: b.MaxX + r, MinZ: b.MinZ - r, MaxZ: b.MaxZ + r}
}

func (b Box) containsStrict(x, z float64) bool {
	return x > b.MinX && x < b.MaxX && z > b.MinZ && z < b.MaxZ
}

func (c Cylinder) overlaps(x, z, y, radius float64) bool {
	if y >= c.Height {
		return false
	}
	return math.Hypot(x-c.X, z-c.Z) < c.Radius+radius
}
