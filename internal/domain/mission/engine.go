package mission

import (
	"math"

	"cityverse/internal/domain/rng"
)

// Engine applies events to mission state. It holds configuration only, so
// Apply is a pure function of its inputs.
type Engine struct {
	levels LevelTable
}

func NewEngine(levels LevelTable) Engine {
	if len(levels) == 0 {
		levels = DefaultLevels()
	}
	return Engine{levels: levels}
}

func (e Engine) Levels() LevelTable { return e.levels }

func (e Engine) Level(kind Kind, level int) Level { return e.levels.Get(kind, level) }

// Apply returns the next state and the notices produced on the way. The
// input state is never modified. Out-of-order or invalid events return the
// state unchanged with no notices.
func (e Engine) Apply(s State, ev Event) (State, []Notice) {
	st := &step{e: e, s: s.clone()}
	switch ev := ev.(type) {
	case Activate:
		st.activate(ev)
	case Begin:
		st.begin()
	case Tick:
		st.tick(ev)
	case Reset:
		st.reset(ev.Full)
	case Retry:
		st.retry()
	case SelectLevel:
		st.selectLevel(ev.Level)
	case Contact:
		if st.s.Active() && ContactReason(ev.Reason) {
			st.damage(ev.Reason)
		}
	default:
		if st.s.Active() {
			st.rules().handle(st, ev)
		}
	}
	return st.s, st.notices
}

// rules is the per-kind part of the machine.
type rules interface {
	setup(st *step, lvl Level)
	firstPhase() Phase
	tick(st *step, t Tick)
	handle(st *step, ev Event)
	fire(st *step, t Task)
}

func rulesFor(k Kind) rules {
	switch k {
	case KindEscape:
		return escapeRules{}
	case KindHunt:
		return huntRules{}
	case KindHeist:
		return heistRules{}
	}
	return nil
}

// step is the working copy of one Apply call.
type step struct {
	e       Engine
	s       State
	notices []Notice
}

func (st *step) rules() rules { return rulesFor(st.s.Kind) }

func (st *step) level() Level { return st.e.levels.Get(st.s.Kind, st.s.Level) }

func (st *step) notify(n Notice) {
	n.Lives = st.s.Lives
	st.notices = append(st.notices, n)
}

func (st *step) setPhase(p Phase) {
	if st.s.Phase == p {
		return
	}
	from := st.s.Phase
	st.s.Phase = p
	st.notify(Notice{Type: NoticePhase, Phase: p, From: from})
}

func (st *step) activate(ev Activate) { st.activateAt(ev, 0) }

// activateAt starts ev at level, or at the selected tier when level is 0.
func (st *step) activateAt(ev Activate, level int) {
	if st.s.Busy() || !ev.Kind.Valid() || ev.Content.Empty() {
		return
	}
	st.s.Progression = st.s.Progression.Normalize()
	if level < 1 {
		level = st.s.Progression.Level
	}
	sched := st.s.Schedule
	if len(sched.Tasks) > 0 {
		sched.Clear()
	}
	prev := st.s.Phase
	lvl := st.e.levels.Get(ev.Kind, level)

	st.s.Instance = Instance{
		Kind:          ev.Kind,
		Phase:         prev,
		Level:         level,
		TimeRemaining: lvl.TimeLimit,
		Lives:         lvl.Lives,
		Content:       ev.Content,
		Target:        ev.Content.Target.Position.Point(),
		Spawn:         ev.Spawn,
		Schedule:      sched,
		Rand:          *rng.New(ev.Seed),
		Origin:        ev,
	}
	st.s.Agents = BuildRoster(&st.s.Rand, ev.Kind, ev.Spawn, lvl.Agents, lvl.AgentSpeed)
	st.rules().setup(st, lvl)
	if lvl.StartProtection > 0 {
		st.protect(lvl.StartProtection)
	}
	st.setPhase(PhaseBriefing)
}

func (st *step) begin() {
	if st.s.Phase != PhaseBriefing {
		return
	}
	st.setPhase(st.rules().firstPhase())
}

func (st *step) tick(t Tick) {
	if !st.s.Active() || math.IsNaN(t.Dt) || t.Dt <= 0 {
		return
	}
	st.s.Elapsed += t.Dt
	st.s.TimeRemaining -= t.Dt
	if st.s.TimeRemaining <= 0 {
		st.s.TimeRemaining = 0
		st.fail(FailTime)
		return
	}

	for _, task := range st.s.Schedule.Due(st.s.Elapsed) {
		// a task may end the mission; the rest of the batch is then stale
		if !st.s.Schedule.Live(task) || !st.s.Active() {
			break
		}
		if task.Kind == TaskProtectionEnd {
			st.s.Protected = false
			continue
		}
		st.rules().fire(st, task)
	}
	if !st.s.Active() {
		return
	}

	for name, tool := range st.s.Equipment {
		tool.cool(t.Dt)
		st.s.Equipment[name] = tool
	}
	st.rules().tick(st, t)
}

// damage costs a life unless the player is protected. The last life fails
// the mission with reason.
func (st *step) damage(reason FailReason) {
	if !st.s.Active() || st.s.Protected {
		return
	}
	st.s.Lives--
	if st.s.Lives <= 0 {
		st.s.Lives = 0
		st.notify(Notice{Type: NoticeDamage, Reason: reason})
		st.fail(reason)
		return
	}
	st.notify(Notice{Type: NoticeDamage, Reason: reason})
	if hp := st.level().HitProtection; hp > 0 {
		st.protect(hp)
	}
}

func (st *step) protect(d float64) {
	st.s.Protected = true
	st.s.Schedule.Cancel(TaskProtectionEnd, "")
	st.s.Schedule.At(st.s.Elapsed+d, TaskProtectionEnd, "")
}

func (st *step) fail(reason FailReason) {
	st.s.Reason = reason
	st.end(PhaseFailed)
	st.notify(Notice{Type: NoticeOutcome, Phase: PhaseFailed, Reason: reason, Level: st.s.Level})
}

func (st *step) complete() {
	st.end(PhaseCompleted)
	if p, ok := st.s.Progression.Advance(st.s.Level); ok {
		st.s.Progression = p
		st.notify(Notice{Type: NoticeUnlocked, Level: p.Unlocked})
	}
	st.notify(Notice{Type: NoticeOutcome, Phase: PhaseCompleted, Success: true, Level: st.s.Level})
}

// end cancels every deferred effect before the terminal phase is entered.
func (st *step) end(p Phase) {
	st.s.Schedule.Clear()
	st.s.Protected = false
	for name, tool := range st.s.Equipment {
		tool.Active = false
		st.s.Equipment[name] = tool
	}
	st.setPhase(p)
}

func (st *step) reset(full bool) {
	sched := st.s.Schedule
	if st.s.Phase != PhaseInactive || len(sched.Tasks) > 0 {
		sched.Clear()
	}
	prev := st.s.Phase
	st.s.Instance = Instance{Phase: PhaseInactive, Schedule: Schedule{Gen: sched.Gen, Seq: sched.Seq}}
	if full {
		st.s.Progression = NewProgression()
	}
	if prev != PhaseInactive {
		st.notify(Notice{Type: NoticePhase, Phase: PhaseInactive, From: prev})
	}
}

// retry re-runs the failed attempt's activation at the same level.
func (st *step) retry() {
	if st.s.Phase != PhaseFailed {
		return
	}
	origin, level := st.s.Origin, st.s.Level
	st.reset(false)
	st.activateAt(origin, level)
}

func (st *step) selectLevel(level int) {
	if st.s.Busy() || !st.s.Progression.CanSelect(level) {
		return
	}
	st.s.Progression.Level = level
}
