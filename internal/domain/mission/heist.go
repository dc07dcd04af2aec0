package mission

import (
	"strconv"

	"cityverse/internal/domain/world"
)

const (
	ExtractRadius  = 3.0
	JamDuration    = 4.0
	LaserOnTime    = 3.0
	LaserOffTime   = 2.0
	laserDepth     = 0.6
	jammerCharges  = 3.0
	jammerCooldown = 6.0
)

// heistRules: slip past the drones into the target shop, hack every
// terminal, then get back to the spawn point with the item.
type heistRules struct{}

func (heistRules) firstPhase() Phase { return PhaseInfiltrate }

func (heistRules) setup(st *step, lvl Level) {
	st.s.Equipment = Equipment{
		ToolJammer: {Charge: jammerCharges, MaxCharge: jammerCharges, Cost: 1, CooldownLength: jammerCooldown},
	}
	for _, code := range st.s.Content.Codes {
		st.s.Terminals = append(st.s.Terminals, Terminal{Code: code})
	}
	st.s.Lasers = layLasers(st.s.Spawn, st.s.Target, lvl.Lasers)
	for i, l := range st.s.Lasers {
		next := LaserOffTime
		if l.Active {
			next = LaserOnTime
		}
		st.s.Schedule.At(next, TaskBeamToggle, strconv.Itoa(i))
	}
}

// layLasers spaces n beams evenly between spawn and target, alternating
// which start switched on.
func layLasers(spawn, target world.Point, n int) []Laser {
	if n <= 0 {
		return nil
	}
	out := make([]Laser, 0, n)
	for i := 1; i <= n; i++ {
		z := spawn.Z + (target.Z-spawn.Z)*float64(i)/float64(n+1)
		out = append(out, Laser{MinZ: z - laserDepth/2, MaxZ: z + laserDepth/2, Active: i%2 == 1})
	}
	return out
}

func (heistRules) tick(st *step, t Tick) {
	detect := st.level().DetectRadius
	touched := false
	for i, a := range st.s.Agents {
		a = advance(a, t.Player, t.Dt, &st.s.Rand)
		d := a.Position.Dist(t.Player)
		if !st.s.Jammed && !a.Alerted && d <= detect {
			a.Alerted = true
			st.notify(Notice{Type: NoticeAlerted, Ref: a.ID})
		}
		if a.Alerted && d < ContactRadius {
			touched = true
		}
		st.s.Agents[i] = a
	}
	if touched {
		st.damage(FailDetected)
		if !st.s.Active() {
			return
		}
	}
	for _, l := range st.s.Lasers {
		if l.Hits(t.Player) {
			st.damage(FailLaser)
			return
		}
	}
}

func (heistRules) handle(st *step, ev Event) {
	switch ev := ev.(type) {
	case EnterTarget:
		if st.s.Phase != PhaseInfiltrate || !st.s.AtTarget(ev.Player) {
			return
		}
		st.setPhase(PhaseHack)
		if len(st.s.Terminals) == 0 {
			collect(st)
		}
	case Hack:
		if st.s.Phase != PhaseHack || ev.Terminal < 0 || ev.Terminal >= len(st.s.Terminals) {
			return
		}
		term := st.s.Terminals[ev.Terminal]
		if term.Hacked {
			return
		}
		if ev.Code != term.Code {
			st.damage(FailDetected)
			return
		}
		st.s.Terminals[ev.Terminal].Hacked = true
		st.notify(Notice{Type: NoticeHacked, Ref: strconv.Itoa(ev.Terminal)})
		for _, tm := range st.s.Terminals {
			if !tm.Hacked {
				return
			}
		}
		collect(st)
	case UseTool:
		if ev.Tool != ToolJammer {
			return
		}
		jam := st.s.Equipment[ToolJammer]
		if !jam.use() {
			return
		}
		st.s.Equipment[ToolJammer] = jam
		st.s.Jammed = true
		for i := range st.s.Agents {
			st.s.Agents[i].Alerted = false
		}
		st.s.Schedule.Cancel(TaskJamEnd, "")
		st.s.Schedule.At(st.s.Elapsed+JamDuration, TaskJamEnd, "")
	case Extract:
		if st.s.Phase == PhaseExfiltrate && ev.Player.Dist(st.s.Spawn) <= ExtractRadius {
			st.complete()
		}
	}
}

func (heistRules) fire(st *step, t Task) {
	switch t.Kind {
	case TaskJamEnd:
		st.s.Jammed = false
	case TaskBeamToggle:
		i, err := strconv.Atoi(t.Ref)
		if err != nil || i < 0 || i >= len(st.s.Lasers) {
			return
		}
		st.s.Lasers[i].Active = !st.s.Lasers[i].Active
		next := LaserOffTime
		if st.s.Lasers[i].Active {
			next = LaserOnTime
		}
		st.s.Schedule.At(t.FireAt+next, TaskBeamToggle, t.Ref)
	}
}

func collect(st *step) {
	st.s.ItemCollected = true
	st.notify(Notice{Type: NoticeItemCollected})
	st.setPhase(PhaseExfiltrate)
}
