package collision

import "math"

const (
	GroundHeight   = 0.25
	BuildingHeight = 12.0
	CameraRadius   = 0.2
)

type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
}

// Clamp keeps a circle of the given radius inside the bounds.
func (b Bounds) Clamp(x, z, radius float64) (float64, float64) {
	return clamp(x, b.MinX+radius, b.MaxX-radius), clamp(z, b.MinZ+radius, b.MaxZ-radius)
}

type Contact struct {
	Height       float64 `json:"height"`
	RequiresJump bool    `json:"requires_jump"`
	OnSurface    bool    `json:"on_surface"`
}

// Model is immutable once built and safe for concurrent readers.
type Model struct {
	boxes     []Box
	cylinders []Cylinder
	surfaces  []Surface
	bounds    Bounds
}

func NewModel(bounds Bounds, colliders ...Collider) *Model {
	m := &Model{bounds: bounds}
	for _, c := range colliders {
		switch v := c.(type) {
		case Box:
			m.boxes = append(m.boxes, v)
		case Cylinder:
			m.cylinders = append(m.cylinders, v)
		case Surface:
			if v.Footprint != nil {
				m.surfaces = append(m.surfaces, v)
			}
		}
	}
	return m
}

func (m *Model) Bounds() Bounds { return m.bounds }

func (m *Model) Colliders() []Collider {
	out := make([]Collider, 0, len(m.boxes)+len(m.cylinders)+len(m.surfaces))
	for _, b := range m.boxes {
		out = append(out, b)
	}
	for _, c := range m.cylinders {
		out = append(out, c)
	}
	for _, s := range m.surfaces {
		out = append(out, s)
	}
	return out
}

// IsBlocked tests a circle at (x,z) with feet at height y against every box
// and cylinder. Negative or NaN radii are treated as zero.
func (m *Model) IsBlocked(x, z, y, radius float64) bool {
	if math.IsNaN(x) || math.IsNaN(z) {
		return true
	}
	if math.IsNaN(radius) || radius < 0 {
		radius = 0
	}
	for _, b := range m.boxes {
		if b.Inflate(radius).containsStrict(x, z) {
			return true
		}
	}
	for _, c := range m.cylinders {
		if c.overlaps(x, z, y, radius) {
			return true
		}
	}
	return false
}

// SurfaceAt returns the tallest standable surface under (x,z). Surfaces
// flagged AltModeOnly count only when altMode is set.
func (m *Model) SurfaceAt(x, z float64, altMode bool) Contact {
	out := Contact{Height: GroundHeight}
	for _, s := range m.surfaces {
		if s.AltModeOnly && !altMode {
			continue
		}
		// sunken footprints never replace the ground contact
		if !s.Footprint.Contains(x, z) || s.Height < GroundHeight {
			continue
		}
		if !out.OnSurface || s.Height > out.Height {
			out = Contact{Height: s.Height, RequiresJump: s.RequiresJump, OnSurface: true}
		}
	}
	return out
}

// CameraBlocked is the reduced check used for camera placement: anything at
// or above building height is always clear.
func (m *Model) CameraBlocked(x, y, z float64) bool {
	if y >= BuildingHeight {
		return false
	}
	return m.IsBlocked(x, z, y, CameraRadius)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
