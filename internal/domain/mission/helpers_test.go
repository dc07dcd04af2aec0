package mission

import (
	"testing"

	"cityverse/internal/domain/content"
	"cityverse/internal/domain/world"

	"github.com/stretchr/testify/require"
)

func testBundle() content.Bundle {
	return content.Bundle{
		Target: content.Shop{
			ID: "t", Name: "Paper Moon", Position: content.Position{X: 14, Z: 30},
			Category: "books", ItemCount: 3, Status: content.StatusActive,
		},
		Indicators: []content.Indicator{
			{ShopID: "t"},
			{ShopID: "d", Decoy: true, Tell: content.TellGlitch},
		},
		Questions: []content.Question{
			{Prompt: "q1", Options: []string{"books", "coffee"}, Answer: 0},
			{Prompt: "q2", Options: []string{"Yes", "No"}, Answer: 1},
		},
		Codes: []string{"1234", "9876"},
	}
}

func uniform(l Level) LevelTable {
	t := LevelTable{}
	for _, k := range Kinds {
		for i := 0; i < MaxLevel; i++ {
			t[k] = append(t[k], l)
		}
	}
	return t
}

func activate(t *testing.T, e Engine, kind Kind) State {
	t.Helper()
	s, _ := e.Apply(NewState(NewProgression()), Activate{Kind: kind, Content: testBundle(), Seed: 7})
	require.Equal(t, PhaseBriefing, s.Phase)
	return s
}

func started(t *testing.T, e Engine, kind Kind) State {
	t.Helper()
	s, _ := e.Apply(activate(t, e, kind), Begin{})
	require.True(t, s.Active())
	return s
}

// run applies events in order and returns the final state with every notice.
func run(e Engine, s State, events ...Event) (State, []Notice) {
	var all []Notice
	for _, ev := range events {
		var ns []Notice
		s, ns = e.Apply(s, ev)
		all = append(all, ns...)
	}
	return s, all
}

func hasNotice(ns []Notice, typ NoticeType) bool {
	for _, n := range ns {
		if n.Type == typ {
			return true
		}
	}
	return false
}

func tick(dt float64) Tick { return Tick{Dt: dt} }

func at(x, z float64) world.Point { return world.Point{X: x, Z: z} }

// enter is the player standing at testBundle's shop front.
var enter = EnterTarget{Player: at(14, 30)}
