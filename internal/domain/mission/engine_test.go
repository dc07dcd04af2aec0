package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate_BuildsInstanceAndBriefs(t *testing.T) {
	e := NewEngine(nil)
	s, notices := e.Apply(NewState(NewProgression()), Activate{Kind: KindEscape, Content: testBundle(), Seed: 3})

	lvl := e.Level(KindEscape, 1)
	assert.Equal(t, PhaseBriefing, s.Phase)
	assert.Equal(t, lvl.Lives, s.Lives)
	assert.Equal(t, lvl.TimeLimit, s.TimeRemaining)
	assert.Len(t, s.Agents, lvl.Agents)
	assert.True(t, s.Protected, "start protection")
	assert.Equal(t, at(14, 30), s.Target)
	require.Len(t, notices, 1)
	assert.Equal(t, Notice{Type: NoticePhase, Phase: PhaseBriefing, From: PhaseInactive, Lives: lvl.Lives}, notices[0])

	// briefing does not run the clock
	same, ns := e.Apply(s, tick(5))
	assert.Equal(t, s, same)
	assert.Empty(t, ns)
}

func TestActivate_RejectedWhileBusyOrWithoutContent(t *testing.T) {
	e := NewEngine(nil)
	s := started(t, e, KindHunt)

	again, ns := e.Apply(s, Activate{Kind: KindEscape, Content: testBundle()})
	assert.Equal(t, s, again)
	assert.Empty(t, ns)

	idle := NewState(NewProgression())
	out, ns := e.Apply(idle, Activate{Kind: KindEscape})
	assert.Equal(t, idle, out)
	assert.Empty(t, ns)

	out, _ = e.Apply(idle, Activate{Kind: "mirror", Content: testBundle()})
	assert.Equal(t, idle, out)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3, RequiredCaptures: 1}))
	s := started(t, e, KindHunt)
	s, _ = e.Apply(s, UseTool{Tool: ToolFlashlight, On: true})
	before := s.Clone()

	_, _ = e.Apply(s, tick(2))
	assert.Equal(t, before, s)
}

func TestTick_TimeBoundaryFailsSameTick(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 3, Lives: 3}))
	s := started(t, e, KindEscape)

	s, _ = run(e, s, tick(1), tick(1))
	require.True(t, s.Active())
	assert.Equal(t, 1.0, s.TimeRemaining)

	s, ns := e.Apply(s, tick(1))
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, FailTime, s.Reason)
	assert.Equal(t, 0.0, s.TimeRemaining)
	assert.True(t, hasNotice(ns, NoticeOutcome))
	assert.Empty(t, s.Schedule.Tasks)
}

func TestDamage_LivesCountDownToFailure(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3}))
	s := started(t, e, KindEscape)
	require.False(t, s.Protected)

	var ns []Notice
	for _, want := range []int{2, 1} {
		s, ns = e.Apply(s, Contact{Reason: FailTrap})
		assert.Equal(t, want, s.Lives)
		assert.True(t, s.Active())
		require.Len(t, ns, 1)
		assert.Equal(t, NoticeDamage, ns[0].Type)
	}
	s, ns = e.Apply(s, Contact{Reason: FailTrap})
	assert.Equal(t, 0, s.Lives)
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, FailTrap, s.Reason)
	assert.True(t, hasNotice(ns, NoticeOutcome))

	// terminal: further contact is ignored
	after, ns := e.Apply(s, Contact{Reason: FailTrap})
	assert.Equal(t, s, after)
	assert.Empty(t, ns)
}

func TestDamage_ProtectedIsNoop(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3, StartProtection: 2}))
	s := started(t, e, KindEscape)
	require.True(t, s.Protected)

	after, ns := e.Apply(s, Contact{Reason: FailDeath})
	assert.Equal(t, s, after)
	assert.Empty(t, ns)

	s, _ = e.Apply(s, tick(2))
	assert.False(t, s.Protected)
	s, _ = e.Apply(s, Contact{Reason: FailDeath})
	assert.Equal(t, 2, s.Lives)
}

func TestDamage_HitProtectionWindow(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3, HitProtection: 1.5}))
	s := started(t, e, KindEscape)

	s, _ = run(e, s, Contact{Reason: FailDeath}, Contact{Reason: FailDeath})
	assert.Equal(t, 2, s.Lives)
	assert.True(t, s.Protected)

	s, _ = run(e, s, tick(1), Contact{Reason: FailDeath})
	assert.Equal(t, 2, s.Lives, "still inside the window")

	s, _ = run(e, s, tick(0.5), Contact{Reason: FailDeath})
	assert.Equal(t, 1, s.Lives)
}

func TestContact_RejectsMachineOnlyReasons(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3}))
	s := started(t, e, KindEscape)
	for _, r := range []FailReason{FailTime, FailJumpscare, "bogus"} {
		after, ns := e.Apply(s, Contact{Reason: r})
		assert.Equal(t, s, after)
		assert.Empty(t, ns)
	}
}

func TestReset_IdempotentAndKeepsProgression(t *testing.T) {
	e := NewEngine(nil)
	s := started(t, e, KindHunt)
	s.Progression = Progression{Level: 2, Unlocked: 3}

	once, ns := e.Apply(s, Reset{})
	twice, ns2 := e.Apply(once, Reset{})
	assert.Equal(t, once, twice)
	assert.NotEmpty(t, ns)
	assert.Empty(t, ns2)

	assert.Equal(t, PhaseInactive, once.Phase)
	assert.Empty(t, once.Agents)
	assert.Empty(t, once.Equipment)
	assert.Empty(t, once.Schedule.Tasks)
	assert.Equal(t, Progression{Level: 2, Unlocked: 3}, once.Progression)

	full, _ := e.Apply(s, Reset{Full: true})
	fullTwice, _ := e.Apply(full, Reset{Full: true})
	assert.Equal(t, NewProgression(), full.Progression)
	assert.Equal(t, full, fullTwice)
}

func TestReset_InvalidatesPendingTasks(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3, StartProtection: 5}))
	s := started(t, e, KindEscape)
	require.True(t, s.Schedule.Pending(TaskProtectionEnd, ""))
	stale := s.Schedule.Tasks[0]

	s, _ = e.Apply(s, Reset{})
	assert.Empty(t, s.Schedule.Tasks)
	assert.False(t, s.Schedule.Live(stale))

	// the next attempt starts with its own protection window
	s, _ = run(e, s, Activate{Kind: KindEscape, Content: testBundle()}, Begin{})
	assert.True(t, s.Protected)
	s, _ = e.Apply(s, tick(4))
	assert.True(t, s.Protected)
	s, _ = e.Apply(s, tick(1))
	assert.False(t, s.Protected)
}

func TestRetry_SameLevelSameRoster(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 2, Lives: 1, Agents: 4}))
	first := activate(t, e, KindEscape)

	s, _ := run(e, first, Begin{}, tick(2))
	require.Equal(t, PhaseFailed, s.Phase)

	s, ns := e.Apply(s, Retry{})
	assert.Equal(t, PhaseBriefing, s.Phase)
	assert.Equal(t, first.Agents, s.Agents)
	assert.Equal(t, first.Level, s.Level)
	assert.Equal(t, 1, s.Lives)
	assert.True(t, hasNotice(ns, NoticePhase))

	// retry only applies to a failed attempt
	after, ns := e.Apply(s, Retry{})
	assert.Equal(t, s, after)
	assert.Empty(t, ns)
}

func TestRetry_KeepsFailedAttemptLevel(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 2, Lives: 1}))
	s, _ := e.Apply(NewState(Progression{Level: 2, Unlocked: 2}), Activate{Kind: KindHunt, Content: testBundle(), Seed: 7})
	s, _ = run(e, s, Begin{}, tick(2))
	require.Equal(t, PhaseFailed, s.Phase)
	require.Equal(t, 2, s.Level)

	s, _ = run(e, s, SelectLevel{Level: 1}, Retry{})
	assert.Equal(t, PhaseBriefing, s.Phase)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 1, s.Progression.Level, "the selection applies to the next fresh activation")

	s, _ = run(e, s, Reset{}, Activate{Kind: KindHunt, Content: testBundle(), Seed: 7})
	assert.Equal(t, 1, s.Level)
}

func TestLevelTable_HuntNeedsACapture(t *testing.T) {
	table := LevelTable{KindHunt: {{TimeLimit: 10, Lives: 1, Agents: 2}}}
	assert.Equal(t, 1, table.Get(KindHunt, 1).RequiredCaptures)

	ghostless := LevelTable{KindHunt: {{TimeLimit: 10, Lives: 1, RequiredCaptures: 3}}}
	assert.Equal(t, 0, ghostless.Get(KindHunt, 1).RequiredCaptures)

	heist := LevelTable{KindHeist: {{TimeLimit: 10, Lives: 1, Agents: 2}}}
	assert.Equal(t, 0, heist.Get(KindHeist, 1).RequiredCaptures)
}

func TestProgression(t *testing.T) {
	p, ok := NewProgression().Advance(1)
	assert.True(t, ok)
	assert.Equal(t, Progression{Level: 1, Unlocked: 2}, p)

	same, ok := p.Advance(1)
	assert.False(t, ok, "replaying a lower level does not unlock")
	assert.Equal(t, p, same)

	_, ok = Progression{Level: MaxLevel, Unlocked: MaxLevel}.Advance(MaxLevel)
	assert.False(t, ok)

	assert.Equal(t, Progression{Level: 3, Unlocked: 3}, Progression{Level: 9, Unlocked: 3}.Normalize())
	assert.Equal(t, NewProgression(), Progression{}.Normalize())
	assert.Equal(t, MaxLevel, Progression{Unlocked: 99}.Normalize().Unlocked)
}

func TestSelectLevel(t *testing.T) {
	e := NewEngine(nil)
	s := NewState(Progression{Level: 1, Unlocked: 3})

	s, _ = e.Apply(s, SelectLevel{Level: 3})
	assert.Equal(t, 3, s.Progression.Level)

	locked, _ := e.Apply(s, SelectLevel{Level: 4})
	assert.Equal(t, s, locked)

	busy := started(t, e, KindEscape)
	after, _ := e.Apply(busy, SelectLevel{Level: 1})
	assert.Equal(t, busy, after)
}

func TestComplete_UnlocksOnlyFromCeiling(t *testing.T) {
	e := NewEngine(uniform(Level{TimeLimit: 100, Lives: 3}))
	answerAll := []Event{Begin{}, enter, Ready{}, Answer{Option: 0}, Answer{Option: 1}}

	s, _ := e.Apply(NewState(Progression{Level: 2, Unlocked: 2}), Activate{Kind: KindEscape, Content: testBundle()})
	s, ns := run(e, s, answerAll...)
	require.Equal(t, PhaseCompleted, s.Phase)
	assert.Equal(t, Progression{Level: 2, Unlocked: 3}, s.Progression)
	assert.True(t, hasNotice(ns, NoticeUnlocked))

	s, _ = run(e, s, SelectLevel{Level: 1}, Activate{Kind: KindEscape, Content: testBundle()})
	s, ns = run(e, s, answerAll...)
	require.Equal(t, PhaseCompleted, s.Phase)
	assert.Equal(t, Progression{Level: 1, Unlocked: 3}, s.Progression)
	assert.False(t, hasNotice(ns, NoticeUnlocked))
}

func TestMachine(t *testing.T) {
	m := NewMachine(NewEngine(uniform(Level{TimeLimit: 100, Lives: 3})), Progression{})
	assert.Equal(t, NewProgression(), m.Progression())

	ns := m.Apply(Activate{Kind: KindHeist, Content: testBundle()})
	assert.Len(t, ns, 1)
	st := m.State()
	st.Equipment[ToolJammer] = Tool{}
	assert.NotEqual(t, Tool{}, m.State().Equipment[ToolJammer], "State returns a copy")
}
