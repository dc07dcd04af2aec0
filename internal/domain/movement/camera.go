package movement

import "math"

const (
	minPolar = 0.05
	maxPolar = math.Pi - 0.05
)

func (c Controller) Camera(k Kinematics, in Input) Camera {
	polar := clampFloat(in.Orbit.Polar, minPolar, maxPolar)
	if in.Orbit.Polar == 0 {
		polar = math.Pi / 3
	}
	az := in.Orbit.Azimuth
	if math.IsNaN(az) || math.IsInf(az, 0) {
		az = 0
	}
	unit := Vec3{
		X: math.Sin(polar) * math.Sin(az),
		Y: math.Cos(polar),
		Z: math.Sin(polar) * math.Cos(az),
	}

	if in.Mode == CameraFirstPerson {
		eye := Vec3{X: k.Position.X, Y: k.Position.Y + c.params.EyeHeight, Z: k.Position.Z}
		return Camera{
			Mode:     CameraFirstPerson,
			Position: eye,
			LookAt:   Vec3{X: eye.X - unit.X, Y: eye.Y - unit.Y, Z: eye.Z - unit.Z},
		}
	}

	target := Vec3{X: k.Position.X, Y: k.Position.Y + c.params.LookHeight, Z: k.Position.Z}
	dist := in.Orbit.Distance
	if dist <= 0 || math.IsNaN(dist) {
		dist = c.params.CameraDistance
	}
	dist = clampFloat(dist, c.params.CameraMinDist, c.params.CameraMaxDist)

	at := func(d float64) Vec3 {
		return Vec3{X: target.X + unit.X*d, Y: target.Y + unit.Y*d, Z: target.Z + unit.Z*d}
	}
	blocked := func(d float64) bool {
		p := at(d)
		return c.geo.CameraBlocked(p.X, p.Y, p.Z)
	}

	if blocked(dist) {
		lo, hi := c.params.CameraMinDist, dist
		for i := 0; i < c.params.CameraSearchMax; i++ {
			mid := (lo + hi) / 2
			if blocked(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		dist = lo
	}

	return Camera{Mode: CameraThirdPerson, Position: at(dist), LookAt: target, Distance: dist}
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
