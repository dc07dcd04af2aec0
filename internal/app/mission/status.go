package mission

import (
	"math"
	"time"

	"cityverse/internal/app/session"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/world"
)

func (u UseCase) view(s *session.Session, st domain.State, now time.Time) StatusView {
	worldPhase, _ := u.Clock.PhaseAt(now)
	out := StatusView{
		SessionID:            s.ID,
		Kind:                 st.Kind,
		Phase:                st.Phase,
		Level:                st.Level,
		TimeRemaining:        st.TimeRemaining,
		TimeRemainingSeconds: int(math.Ceil(st.TimeRemaining)),
		Lives:                st.Lives,
		Protected:            st.Protected,
		Reason:               st.Reason,
		Progression:          st.Progression,
		Agents:               st.Agents,
		Equipment:            st.Equipment,
		Lasers:               st.Lasers,
		Captures:             st.Captures,
		ItemCollected:        st.ItemCollected,
		Jammed:               st.Jammed,
		WorldPhase:           worldPhase,
		Actions:              availableActions(st),
	}
	for i, term := range st.Terminals {
		tv := TerminalView{Index: i, Hacked: term.Hacked}
		if st.Phase == domain.PhaseHack && !term.Hacked {
			tv.Sequence = term.Code
		}
		out.Terminals = append(out.Terminals, tv)
	}
	if st.Phase == domain.PhaseInactive {
		out.Level = st.Progression.Level
		return out
	}
	if st.Kind == domain.KindHunt {
		out.RequiredCaptures = u.Sessions.Engine().Level(st.Kind, st.Level).RequiredCaptures
	}

	c := st.Content
	if !c.Empty() {
		out.Target = &TargetView{
			ShopID:   c.Target.ID,
			Name:     c.Target.Name,
			Category: c.Target.Category,
			Position: c.Target.Position,
		}
		out.Clues = c.Clues
	}
	player := s.Player()
	day := worldPhase != world.PhaseNight
	for i, ind := range c.Indicators {
		out.Indicators = append(out.Indicators, IndicatorView{
			Index:   i,
			ShopID:  ind.ShopID,
			At:      ind.At,
			Tell:    ind.Tell,
			Visible: ind.Visible(day, player.Dist(ind.At)),
		})
	}
	if q, ok := st.CurrentQuestion(); ok {
		out.Question = &QuestionView{
			Index:   st.QuestionIndex,
			Total:   len(c.Questions),
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}
	return out
}

func availableActions(st domain.State) []ActionType {
	out := []ActionType{}
	if !st.Busy() {
		return out
	}
	for _, t := range SupportedActions() {
		spec, _ := lookupAction(t)
		if !spec.allows(st.Kind) {
			continue
		}
		if (t == ActionBegin) != (st.Phase == domain.PhaseBriefing) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}
