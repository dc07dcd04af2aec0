package movement

import (
	"math"
	"testing"

	"cityverse/internal/domain/collision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func newStreetController() Controller {
	return NewController(collision.StreetLayout(), DefaultParams())
}

func TestStep_JumpOntoFountainPlatform(t *testing.T) {
	c := newStreetController()
	k := Kinematics{Position: Vec3{X: 0, Y: 0.25, Z: 4}, VerticalVelocity: 0.35}

	peak := k.Position.Y
	landed := false
	for i := 0; i < 300 && !landed; i++ {
		var events []Event
		k, _, events = c.Step(k, Input{}, frame)
		peak = math.Max(peak, k.Position.Y)
		for _, e := range events {
			if e.Type == EventLanding {
				landed = true
			}
		}
	}
	require.True(t, landed, "player never landed")
	assert.Greater(t, peak, collision.FountainHeight)
	assert.Equal(t, collision.FountainHeight, k.Position.Y)
	assert.Equal(t, 0.0, k.VerticalVelocity)
	assert.False(t, k.IsJumping)
	assert.LessOrEqual(t, k.Position.X*k.Position.X+k.Position.Z*k.Position.Z, collision.FountainRadius*collision.FountainRadius)

	for i := 0; i < 30; i++ {
		k, _, _ = c.Step(k, Input{}, frame)
	}
	assert.Equal(t, collision.FountainHeight, k.Position.Y, "stays on the platform")
}

func TestStep_FountainRequiresJump(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, 6)
	for i := 0; i < 100; i++ {
		k, _, _ = c.Step(k, Input{Direction: Vec2{Z: -1}}, frame)
	}
	assert.Greater(t, k.Position.Z, collision.FountainRadius)
	assert.Equal(t, collision.GroundHeight, k.Position.Y)
}

func TestStep_AutoStepOntoKerb(t *testing.T) {
	c := newStreetController()
	k := Spawn(9.5, 5)
	for i := 0; i < 20; i++ {
		k, _, _ = c.Step(k, Input{Direction: Vec2{X: 1}}, frame)
	}
	assert.Greater(t, k.Position.X, collision.BoulevardHalf)
	assert.Equal(t, collision.KerbHeight, k.Position.Y)
	assert.False(t, k.IsJumping)

	for i := 0; i < 200; i++ {
		k, _, _ = c.Step(k, Input{Direction: Vec2{X: 1}}, frame)
	}
	assert.LessOrEqual(t, k.Position.X, collision.SidewalkOuter-c.Params().Radius, "building face stops the player")
}

func TestStep_JumpOntoBench(t *testing.T) {
	c := newStreetController()
	k := Spawn(8, 18.4)

	k, _, _ = c.Step(k, Input{Direction: Vec2{Z: 1}, Jump: true}, frame)
	require.True(t, k.IsJumping)
	for i := 0; i < 300; i++ {
		in := Input{}
		if k.Position.Z < 20 {
			in.Direction = Vec2{Z: 1}
		}
		k, _, _ = c.Step(k, in, frame)
	}
	assert.Equal(t, collision.BenchHeight, k.Position.Y)
	assert.False(t, k.IsJumping)
}

func TestStep_BenchBlocksWithoutJump(t *testing.T) {
	c := newStreetController()
	k := Spawn(8, 18.4)
	for i := 0; i < 60; i++ {
		k, _, _ = c.Step(k, Input{Direction: Vec2{Z: 1}}, frame)
	}
	assert.Less(t, k.Position.Z, 19.0)
	assert.Equal(t, collision.GroundHeight, k.Position.Y)
}

func TestStep_JumpOnlyWhenGrounded(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, -30)
	k, _, events := c.Step(k, Input{Jump: true}, frame)
	require.Len(t, events, 1)
	assert.Equal(t, EventJump, events[0].Type)

	vv := k.VerticalVelocity
	k, _, events = c.Step(k, Input{Jump: true}, frame)
	assert.Empty(t, events)
	assert.InDelta(t, vv-c.Params().Gravity, k.VerticalVelocity, 1e-12)
}

func TestStep_FrameRateIndependentHorizontal(t *testing.T) {
	c := newStreetController()
	a := Spawn(0, -30)
	b := a
	in := Input{Direction: Vec2{Z: -1}}
	a, _, _ = c.Step(a, in, frame)
	a, _, _ = c.Step(a, in, frame)
	b, _, _ = c.Step(b, in, 2*frame)
	assert.InDelta(t, a.Position.Z, b.Position.Z, 1e-9)
}

func TestStep_ClampsToBounds(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, -collision.StreetHalfLength+0.6)
	for i := 0; i < 30; i++ {
		k, _, _ = c.Step(k, Input{Direction: Vec2{Z: -1}}, frame)
	}
	assert.Equal(t, -collision.StreetHalfLength+c.Params().Radius, k.Position.Z)
}

func TestStep_IgnoresNaNIntent(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, -30)
	next, _, _ := c.Step(k, Input{Direction: Vec2{X: math.NaN(), Z: 1}}, frame)
	assert.Equal(t, k.Position, next.Position)
}

func TestStep_EmitsFootsteps(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, -30)
	steps := 0
	for i := 0; i < 60; i++ {
		var events []Event
		k, _, events = c.Step(k, Input{Direction: Vec2{Z: -1}}, frame)
		for _, e := range events {
			if e.Type == EventFootstep {
				steps++
			}
		}
	}
	assert.GreaterOrEqual(t, steps, 5)
}

func TestCamera_ThirdPersonPullsInFromBuildings(t *testing.T) {
	c := newStreetController()
	k := Kinematics{Position: Vec3{X: 11, Y: collision.KerbHeight, Z: 0}}

	cam := c.Camera(k, Input{Orbit: Orbit{Azimuth: math.Pi / 2, Polar: math.Pi / 3, Distance: 6}})
	assert.Less(t, cam.Distance, 6.0)
	assert.GreaterOrEqual(t, cam.Distance, 1.0)
	assert.False(t, collision.StreetLayout().CameraBlocked(cam.Position.X, cam.Position.Y, cam.Position.Z))

	open := c.Camera(k, Input{Orbit: Orbit{Azimuth: -math.Pi / 2, Polar: math.Pi / 3, Distance: 6}})
	assert.Equal(t, 6.0, open.Distance)
	assert.Equal(t, CameraThirdPerson, open.Mode)
}

func TestCamera_FirstPersonAtEyeHeight(t *testing.T) {
	c := newStreetController()
	k := Spawn(0, -30)
	cam := c.Camera(k, Input{Mode: CameraFirstPerson, Orbit: Orbit{Polar: math.Pi / 2}})
	assert.Equal(t, CameraFirstPerson, cam.Mode)
	assert.InDelta(t, k.Position.Y+c.Params().EyeHeight, cam.Position.Y, 1e-12)
	assert.InDelta(t, cam.Position.Y, cam.LookAt.Y, 1e-9)
}

func TestParams_Sanitize(t *testing.T) {
	p := Params{Speed: -1, Gravity: math.NaN(), CameraSearchMax: 99}.Sanitize()
	def := DefaultParams()
	assert.Equal(t, def.Speed, p.Speed)
	assert.Equal(t, def.Gravity, p.Gravity)
	assert.Equal(t, def.CameraSearchMax, p.CameraSearchMax)
}
