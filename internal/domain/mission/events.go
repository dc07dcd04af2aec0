package mission

import (
	"cityverse/internal/domain/content"
	"cityverse/internal/domain/world"
)

// Event is the closed set of inputs accepted by Apply.
type Event interface{ event() }

// Activate starts a mission at the current progression level. Seed drives
// the roster and every later random draw of the attempt.
type Activate struct {
	Kind    Kind
	Content content.Bundle
	Spawn   world.Point
	Seed    uint32
}

// Begin ends the briefing and starts the countdown.
type Begin struct{}

type Tick struct {
	Dt     float64
	Player world.Point
}

// EnterTarget is reported by the host each time the player walks into the
// target shop.
type EnterTarget struct{ Player world.Point }

// Ready ends the escape mission's observation window early.
type Ready struct{}

type Answer struct{ Option int }

type Inspect struct{ Indicator int }

type UseTool struct {
	Tool   string
	On     bool
	Player world.Point
}

type Capture struct {
	AgentID string
	Player  world.Point
}

type Hack struct {
	Terminal int
	Code     string
}

type Extract struct{ Player world.Point }

// Contact is a host-detected hit (trap, laser, agent touch).
type Contact struct{ Reason FailReason }

type Reset struct{ Full bool }

type Retry struct{}

type SelectLevel struct{ Level int }

func (Activate) event()    {}
func (Begin) event()       {}
func (Tick) event()        {}
func (EnterTarget) event() {}
func (Ready) event()       {}
func (Answer) event()      {}
func (Inspect) event()     {}
func (UseTool) event()     {}
func (Capture) event()     {}
func (Hack) event()        {}
func (Extract) event()     {}
func (Contact) event()     {}
func (Reset) event()       {}
func (Retry) event()       {}
func (SelectLevel) event() {}

type NoticeType string

const (
	NoticePhase         NoticeType = "phase_changed"
	NoticeDamage        NoticeType = "damage"
	NoticeOutcome       NoticeType = "mission_outcome"
	NoticeUnlocked      NoticeType = "level_unlocked"
	NoticeRevealed      NoticeType = "agent_revealed"
	NoticeCaptured      NoticeType = "agent_captured"
	NoticeAlerted       NoticeType = "agent_alerted"
	NoticeToolLocked    NoticeType = "tool_locked"
	NoticeToolRestored  NoticeType = "tool_restored"
	NoticeAnswer        NoticeType = "answer"
	NoticeIndicator     NoticeType = "indicator_confirmed"
	NoticeHacked        NoticeType = "terminal_hacked"
	NoticeItemCollected NoticeType = "item_collected"
)

// Notice is an output event for the host; the machine never does I/O.
type Notice struct {
	Type    NoticeType `json:"type"`
	Phase   Phase      `json:"phase,omitempty"`
	From    Phase      `json:"from,omitempty"`
	Reason  FailReason `json:"reason,omitempty"`
	Lives   int        `json:"lives"`
	Ref     string     `json:"ref,omitempty"`
	Success bool       `json:"success,omitempty"`
	Level   int        `json:"level,omitempty"`
}
