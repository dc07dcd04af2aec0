package movement

import (
	"math"

	"cityverse/internal/domain/collision"
)

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 is a direction on the ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

type Kinematics struct {
	Position         Vec3    `json:"position"`
	VerticalVelocity float64 `json:"vertical_velocity"`
	IsJumping        bool    `json:"is_jumping"`
	FacingAngle      float64 `json:"facing_angle"`
	Stride           float64 `json:"-"`
}

// Spawn places a player standing on the ground at (x,z).
func Spawn(x, z float64) Kinematics {
	return Kinematics{Position: Vec3{X: x, Y: collision.GroundHeight, Z: z}}
}

type CameraMode string

const (
	CameraThirdPerson CameraMode = "third_person"
	CameraFirstPerson CameraMode = "first_person"
)

type Orbit struct {
	Azimuth  float64 `json:"azimuth"`
	Polar    float64 `json:"polar"`
	Distance float64 `json:"distance"`
}

// Input is one frame of host intent. Direction is already camera-relative.
type Input struct {
	Direction Vec2       `json:"direction"`
	Jump      bool       `json:"jump"`
	Orbit     Orbit      `json:"orbit"`
	Mode      CameraMode `json:"mode"`
	AltMode   bool       `json:"alt_mode"`
}

type Camera struct {
	Mode     CameraMode `json:"mode"`
	Position Vec3       `json:"position"`
	LookAt   Vec3       `json:"look_at"`
	Distance float64    `json:"distance"`
}

type EventType string

const (
	EventFootstep EventType = "footstep"
	EventJump     EventType = "jump"
	EventLanding  EventType = "landing"
)

type Event struct {
	Type     EventType `json:"type"`
	Position Vec3      `json:"position"`
	Impact   float64   `json:"impact,omitempty"`
}

// Geometry is the read side of the collision model the controller needs.
type Geometry interface {
	IsBlocked(x, z, y, radius float64) bool
	SurfaceAt(x, z float64, altMode bool) collision.Contact
	CameraBlocked(x, y, z float64) bool
	Bounds() collision.Bounds
}
