package movement

import (
	"math"
)

const heightEpsilon = 1e-6

type Controller struct {
	geo    Geometry
	params Params
}

func NewController(geo Geometry, params Params) Controller {
	return Controller{geo: geo, params: params.Sanitize()}
}

func (c Controller) Params() Params { return c.params }

// Step advances one tick. It is the only writer of Kinematics; the returned
// events are emitted once per occurrence and never need polling.
func (c Controller) Step(k Kinematics, in Input, dt float64) (Kinematics, Camera, []Event) {
	frames := c.frames(dt)
	var events []Event

	before := c.geo.SurfaceAt(k.Position.X, k.Position.Z, in.AltMode)
	wasGrounded := !k.IsJumping && k.VerticalVelocity == 0 && k.Position.Y-before.Height <= heightEpsilon
	moved := 0.0

	dir := in.Direction
	if math.IsNaN(dir.X) || math.IsNaN(dir.Z) || math.IsInf(dir.X, 0) || math.IsInf(dir.Z, 0) {
		dir = Vec2{}
	}
	if l := dir.Len(); l > 0 && frames > 0 {
		dx := dir.X / l
		dz := dir.Z / l
		step := c.params.Speed * frames
		moved = c.moveHorizontal(&k, dx*step, dz*step, in.AltMode)
		k.FacingAngle = math.Atan2(dx, dz)
	}

	contact := c.geo.SurfaceAt(k.Position.X, k.Position.Z, in.AltMode)

	jumped := false
	if in.Jump && wasGrounded {
		k.VerticalVelocity = c.params.JumpImpulse
		k.IsJumping = true
		jumped = true
		events = append(events, Event{Type: EventJump, Position: k.Position})
	}

	drop := k.Position.Y - contact.Height
	airborne := k.IsJumping || k.VerticalVelocity != 0 || drop > heightEpsilon
	if wasGrounded && !jumped && drop <= c.params.StepThreshold {
		airborne = false
	}

	if airborne {
		k.Position.Y += k.VerticalVelocity * frames
		k.VerticalVelocity -= c.params.Gravity * frames
		if k.VerticalVelocity <= 0 && k.Position.Y <= contact.Height {
			impact := -k.VerticalVelocity
			k.Position.Y = contact.Height
			k.VerticalVelocity = 0
			k.IsJumping = false
			events = append(events, Event{Type: EventLanding, Position: k.Position, Impact: impact})
		}
	} else {
		k.Position.Y = contact.Height
		k.VerticalVelocity = 0
		k.IsJumping = false
	}

	bounds := c.geo.Bounds()
	k.Position.X, k.Position.Z = bounds.Clamp(k.Position.X, k.Position.Z, c.params.Radius)

	if !airborne && moved > 0 {
		k.Stride += moved
		if k.Stride >= c.params.StrideLength {
			k.Stride = math.Mod(k.Stride, c.params.StrideLength)
			events = append(events, Event{Type: EventFootstep, Position: k.Position})
		}
	}

	return k, c.Camera(k, in), events
}

func (c Controller) frames(dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	f := dt * c.params.FrameRate
	if f > c.params.MaxFrames {
		f = c.params.MaxFrames
	}
	return f
}

// moveHorizontal tries the full move first, then slides along each axis.
func (c Controller) moveHorizontal(k *Kinematics, dx, dz float64, alt bool) float64 {
	from := k.Position
	bounds := c.geo.Bounds()
	candidates := [][2]float64{
		{from.X + dx, from.Z + dz},
		{from.X + dx, from.Z},
		{from.X, from.Z + dz},
	}
	for i, cand := range candidates {
		if i > 0 && ((i == 1 && dx == 0) || (i == 2 && dz == 0)) {
			continue
		}
		x, z := bounds.Clamp(cand[0], cand[1], c.params.Radius)
		if !c.canEnter(from, x, z, alt) {
			continue
		}
		k.Position.X = x
		k.Position.Z = z
		return math.Hypot(x-from.X, z-from.Z)
	}
	return 0
}

// canEnter rejects blocked cells and ledges the player cannot step onto:
// a higher surface is enterable only by auto-step (low and not jump-only)
// or once the feet are already above it.
func (c Controller) canEnter(from Vec3, x, z float64, alt bool) bool {
	if c.geo.IsBlocked(x, z, from.Y, c.params.Radius) {
		return false
	}
	target := c.geo.SurfaceAt(x, z, alt)
	rise := target.Height - from.Y
	if rise <= heightEpsilon {
		return true
	}
	return rise <= c.params.StepThreshold && !target.RequiresJump
}
