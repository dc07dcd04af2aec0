package mission

const (
	FlashlightRange      = 5.0
	CameraRange          = 8.0
	CaptureRange         = 3.0
	RevealDuration       = 5.0
	FlashlightRegenDelay = 6.0
	flashlightCapacity   = 100.0
	flashlightDrain      = 10.0
	cameraCooldown       = 4.0
)

// huntRules: reveal ghosts with the flashlight or the camera flash, then
// trap them. Only revealed ghosts in range can be captured.
type huntRules struct{}

func (huntRules) firstPhase() Phase { return PhaseHunting }

func (huntRules) setup(st *step, lvl Level) {
	traps := float64(lvl.RequiredCaptures + 1)
	st.s.Equipment = Equipment{
		ToolFlashlight: {Charge: flashlightCapacity, MaxCharge: flashlightCapacity, Drain: flashlightDrain},
		ToolCamera:     {Charge: 1, MaxCharge: 1, CooldownLength: cameraCooldown},
		ToolTrap:       {Charge: traps, MaxCharge: traps, Cost: 1},
	}
}

func (r huntRules) tick(st *step, t Tick) {
	fl := st.s.Equipment[ToolFlashlight]
	if fl.Active {
		fl.Charge -= fl.Drain * t.Dt
		if fl.Charge <= 0 {
			fl.Charge = 0
			fl.Active = false
			fl.Locked = true
			st.notify(Notice{Type: NoticeToolLocked, Ref: ToolFlashlight})
			st.s.Schedule.At(st.s.Elapsed+FlashlightRegenDelay, TaskFlashlightRegen, ToolFlashlight)
		}
		st.s.Equipment[ToolFlashlight] = fl
	}

	touched := false
	for i, a := range st.s.Agents {
		if a.Captured {
			continue
		}
		a = advance(a, t.Player, t.Dt, &st.s.Rand)
		st.s.Agents[i] = a
		if fl.Active && a.Position.Dist(t.Player) <= FlashlightRange {
			r.reveal(st, i)
		}
		if st.s.Agents[i].Position.Dist(t.Player) < ContactRadius {
			touched = true
		}
	}
	if touched {
		st.damage(FailDeath)
	}
}

func (r huntRules) handle(st *step, ev Event) {
	switch ev := ev.(type) {
	case UseTool:
		switch ev.Tool {
		case ToolFlashlight:
			fl := st.s.Equipment[ToolFlashlight]
			if ev.On && (fl.Locked || fl.Charge <= 0) {
				return
			}
			fl.Active = ev.On
			st.s.Equipment[ToolFlashlight] = fl
		case ToolCamera:
			cam := st.s.Equipment[ToolCamera]
			if !cam.use() {
				return
			}
			st.s.Equipment[ToolCamera] = cam
			for i, a := range st.s.Agents {
				if !a.Captured && a.Position.Dist(ev.Player) <= CameraRange {
					r.reveal(st, i)
				}
			}
		}
	case Capture:
		idx := -1
		for i, a := range st.s.Agents {
			if a.ID == ev.AgentID {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		a := st.s.Agents[idx]
		if a.Captured || !a.Revealed || a.Position.Dist(ev.Player) > CaptureRange {
			return
		}
		trap := st.s.Equipment[ToolTrap]
		if !trap.use() {
			return
		}
		st.s.Equipment[ToolTrap] = trap
		a.Captured = true
		a.Revealed = false
		st.s.Agents[idx] = a
		st.s.Schedule.Cancel(TaskRevealEnd, a.ID)
		st.s.Captures++
		st.notify(Notice{Type: NoticeCaptured, Ref: a.ID})
		if st.s.Captures >= st.level().RequiredCaptures {
			st.complete()
		}
	}
}

func (huntRules) fire(st *step, t Task) {
	switch t.Kind {
	case TaskFlashlightRegen:
		fl := st.s.Equipment[ToolFlashlight]
		fl.Charge = fl.MaxCharge
		fl.Locked = false
		st.s.Equipment[ToolFlashlight] = fl
		st.notify(Notice{Type: NoticeToolRestored, Ref: ToolFlashlight})
	case TaskRevealEnd:
		for i, a := range st.s.Agents {
			if a.ID == t.Ref {
				st.s.Agents[i].Revealed = false
			}
		}
	}
}

// reveal marks a ghost visible and restarts its reveal window.
func (huntRules) reveal(st *step, i int) {
	a := st.s.Agents[i]
	if !a.Revealed {
		st.notify(Notice{Type: NoticeRevealed, Ref: a.ID})
	}
	st.s.Agents[i].Revealed = true
	st.s.Schedule.Cancel(TaskRevealEnd, a.ID)
	st.s.Schedule.At(st.s.Elapsed+RevealDuration, TaskRevealEnd, a.ID)
}
