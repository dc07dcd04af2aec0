package mission

// escapeRules: reach the target shop, observe it, then answer questions
// about it while zombies roam outside. Walking into the shop a second time
// is the jumpscare.
type escapeRules struct{}

func (escapeRules) firstPhase() Phase { return PhaseEscape }

func (escapeRules) setup(st *step, _ Level) {
	st.s.Equipment = Equipment{}
}

func (escapeRules) tick(st *step, t Tick) {
	if st.s.Phase != PhaseEscape {
		// zombies are held off while the player is inside
		return
	}
	touched := false
	for i, a := range st.s.Agents {
		a = advance(a, t.Player, t.Dt, &st.s.Rand)
		st.s.Agents[i] = a
		if a.Position.Dist(t.Player) < ContactRadius {
			touched = true
		}
	}
	if touched {
		st.damage(FailDeath)
	}
}

func (r escapeRules) handle(st *step, ev Event) {
	switch ev := ev.(type) {
	case EnterTarget:
		if !st.s.AtTarget(ev.Player) {
			return
		}
		st.s.Entries++
		if st.s.Entries > 1 {
			st.fail(FailJumpscare)
			return
		}
		if st.s.Phase == PhaseEscape {
			st.setPhase(PhaseObserve)
			st.s.Schedule.At(st.s.Elapsed+st.level().ObserveWindow, TaskObserveEnd, "")
		}
	case Ready:
		if st.s.Phase == PhaseObserve {
			st.s.Schedule.Cancel(TaskObserveEnd, "")
			r.toQuestion(st)
		}
	case Answer:
		q, ok := st.s.CurrentQuestion()
		if !ok {
			return
		}
		if q.Correct(ev.Option) {
			st.s.QuestionIndex++
			st.notify(Notice{Type: NoticeAnswer, Success: true, Ref: q.Prompt})
			if st.s.QuestionIndex >= len(st.s.Content.Questions) {
				st.complete()
			}
			return
		}
		st.notify(Notice{Type: NoticeAnswer, Ref: q.Prompt})
		st.damage(FailDeath)
		if st.s.Active() {
			st.s.Ejected = true
			st.setPhase(PhaseEscape)
		}
	case Inspect:
		if st.s.Phase != PhaseEscape || ev.Indicator < 0 || ev.Indicator >= len(st.s.Content.Indicators) {
			return
		}
		ind := st.s.Content.Indicators[ev.Indicator]
		if ind.Decoy {
			st.damage(FailTrap)
			return
		}
		st.notify(Notice{Type: NoticeIndicator, Ref: ind.ShopID})
		if st.s.Ejected {
			st.s.Ejected = false
			r.toQuestion(st)
		}
	}
}

func (r escapeRules) fire(st *step, t Task) {
	if t.Kind == TaskObserveEnd && st.s.Phase == PhaseObserve {
		r.toQuestion(st)
	}
}

func (escapeRules) toQuestion(st *step) {
	if st.s.QuestionIndex >= len(st.s.Content.Questions) {
		st.complete()
		return
	}
	st.setPhase(PhaseQuestion)
}
