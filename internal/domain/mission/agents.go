package mission

import (
	"fmt"
	"math"

	"cityverse/internal/domain/collision"
	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

type Behavior string

const (
	// zombies
	BehaviorChaser    Behavior = "chaser"
	BehaviorFlanker   Behavior = "flanker"
	BehaviorAmbusher  Behavior = "ambusher"
	BehaviorPatroller Behavior = "patroller"
	// ghosts
	BehaviorWanderer  Behavior = "wanderer"
	BehaviorLurker    Behavior = "lurker"
	BehaviorTrickster Behavior = "trickster"
	BehaviorShadow    Behavior = "shadow"
	// drones
	BehaviorPatrol   Behavior = "patrol"
	BehaviorSentinel Behavior = "sentinel"
	BehaviorHunter   Behavior = "hunter"
)

var behaviorMix = map[Kind][]Behavior{
	KindEscape: {BehaviorChaser, BehaviorFlanker, BehaviorAmbusher, BehaviorPatroller},
	KindHunt:   {BehaviorWanderer, BehaviorLurker, BehaviorTrickster, BehaviorShadow},
	KindHeist:  {BehaviorPatrol, BehaviorSentinel, BehaviorHunter},
}

var agentNoun = map[Kind]string{KindEscape: "zombie", KindHunt: "ghost", KindHeist: "drone"}

const (
	MinSpawnDistance = 20.0
	ContactRadius    = 1.0

	ambushRange     = 12.0
	chaseRange      = 6.0
	flankOffset     = 4.0
	flankCommit     = 5.0
	lurkRange       = 10.0
	shadowGap       = 3.0
	tricksterRadius = 6.0
	tricksterEvery  = 4.0
	patrolSpan      = 15.0
	hunterBoost     = 1.5
)

type Agent struct {
	ID       string      `json:"id"`
	Behavior Behavior    `json:"behavior"`
	Position world.Point `json:"position"`
	Home     world.Point `json:"home"`
	Speed    float64     `json:"speed"`
	Revealed bool        `json:"revealed,omitempty"`
	Alerted  bool        `json:"alerted,omitempty"`
	Captured bool        `json:"captured,omitempty"`

	// Heading is the patrol direction (+1/-1) or the wander angle.
	Heading float64 `json:"-"`
	Timer   float64 `json:"-"`
}

// candidatePool is the fixed grid of boulevard spawn points agents are drawn
// from.
func candidatePool() []world.Point {
	var out []world.Point
	for z := -110.0; z <= 110; z += 10 {
		for _, x := range []float64{-8, -4, 0, 4, 8} {
			out = append(out, world.Point{X: x, Z: z})
		}
	}
	return out
}

// BuildRoster draws count agents from the candidate pool, skipping points
// within MinSpawnDistance of the player's spawn. Escape rosters always lead
// with a direct chaser.
func BuildRoster(r *rng.Stream, kind Kind, spawn world.Point, count int, speed float64) []Agent {
	if count <= 0 {
		return nil
	}
	var pool []world.Point
	for _, p := range candidatePool() {
		if p.Dist(spawn) >= MinSpawnDistance {
			pool = append(pool, p)
		}
	}
	rng.Shuffle(r, pool)
	if count > len(pool) {
		count = len(pool)
	}

	mix := append([]Behavior(nil), behaviorMix[kind]...)
	rng.Shuffle(r, mix)
	if kind == KindEscape {
		for i, b := range mix {
			if b == BehaviorChaser {
				mix[0], mix[i] = mix[i], mix[0]
			}
		}
	}

	out := make([]Agent, 0, count)
	for i := 0; i < count; i++ {
		a := Agent{
			ID:       fmt.Sprintf("%s-%d", agentNoun[kind], i+1),
			Behavior: mix[i%len(mix)],
			Position: pool[i],
			Home:     pool[i],
			Speed:    speed,
			Heading:  1,
		}
		if r.Chance(0.5) {
			a.Heading = -1
		}
		if a.Behavior == BehaviorWanderer {
			a.Heading = r.Between(0, 2*math.Pi)
		}
		out = append(out, a)
	}
	return out
}

// advance moves one agent by one tick. Movement is a plain seek/patrol; the
// street geometry only bounds it.
func advance(a Agent, player world.Point, dt float64, r *rng.Stream) Agent {
	step := a.Speed * dt
	dist := a.Position.Dist(player)

	switch a.Behavior {
	case BehaviorChaser:
		a.Position = a.Position.Toward(player, step)
	case BehaviorFlanker:
		if dist <= flankCommit {
			a.Position = a.Position.Toward(player, step)
			break
		}
		// aim beside the player, perpendicular to the line of approach
		dx, dz := (player.X-a.Position.X)/dist, (player.Z-a.Position.Z)/dist
		aim := world.Point{X: player.X - dz*flankOffset*a.Heading, Z: player.Z + dx*flankOffset*a.Heading}
		a.Position = a.Position.Toward(aim, step)
	case BehaviorAmbusher:
		if dist <= ambushRange {
			a.Position = a.Position.Toward(player, step)
		}
	case BehaviorPatroller, BehaviorPatrol:
		if a.Behavior == BehaviorPatroller && dist <= chaseRange {
			a.Position = a.Position.Toward(player, step)
			break
		}
		a = patrol(a, step)
	case BehaviorWanderer:
		if r.Chance(math.Min(1, dt)) {
			a.Heading = r.Between(0, 2*math.Pi)
		}
		a.Position = world.Point{X: a.Position.X + math.Sin(a.Heading)*step, Z: a.Position.Z + math.Cos(a.Heading)*step}
	case BehaviorLurker:
		if dist <= lurkRange {
			a.Position = a.Position.Toward(player, step/2)
		}
	case BehaviorTrickster:
		a.Timer += dt
		if a.Timer >= tricksterEvery {
			a.Timer = 0
			angle := r.Between(0, 2*math.Pi)
			a.Position = world.Point{X: player.X + math.Sin(angle)*tricksterRadius, Z: player.Z + math.Cos(angle)*tricksterRadius}
		}
	case BehaviorShadow:
		if dist > shadowGap {
			trail := player.Toward(a.Position, shadowGap)
			a.Position = a.Position.Toward(trail, step)
		}
	case BehaviorSentinel:
	case BehaviorHunter:
		if a.Alerted {
			a.Position = a.Position.Toward(player, step*hunterBoost)
			break
		}
		a = patrol(a, step)
	}

	b := collision.StreetBounds()
	a.Position.X, a.Position.Z = b.Clamp(a.Position.X, a.Position.Z, ContactRadius/2)
	return a
}

func patrol(a Agent, step float64) Agent {
	if a.Heading == 0 {
		a.Heading = 1
	}
	a.Position = a.Position.Toward(world.Point{X: a.Home.X, Z: a.Home.Z + a.Heading*patrolSpan}, step)
	if math.Abs(a.Position.Z-(a.Home.Z+a.Heading*patrolSpan)) < 1e-9 {
		a.Heading = -a.Heading
	}
	return a
}

func cloneAgents(in []Agent) []Agent {
	if in == nil {
		return nil
	}
	return append([]Agent(nil), in...)
}
