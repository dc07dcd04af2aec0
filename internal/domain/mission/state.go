package mission

import (
	"math"

	"cityverse/internal/domain/collision"
	"cityverse/internal/domain/content"
	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

type Terminal struct {
	Code   string `json:"-"`
	Hacked bool   `json:"hacked"`
}

// Laser is a beam band across the boulevard between MinZ and MaxZ.
type Laser struct {
	MinZ   float64 `json:"min_z"`
	MaxZ   float64 `json:"max_z"`
	Active bool    `json:"active"`
}

func (l Laser) Hits(p world.Point) bool {
	return l.Active && math.Abs(p.X) <= collision.BoulevardHalf && p.Z >= l.MinZ && p.Z <= l.MaxZ
}

// Instance is everything scoped to one mission attempt. Reset replaces it
// wholesale.
type Instance struct {
	Kind          Kind           `json:"kind,omitempty"`
	Phase         Phase          `json:"phase"`
	Level         int            `json:"level,omitempty"`
	TimeRemaining float64        `json:"time_remaining"`
	Elapsed       float64        `json:"elapsed"`
	Lives         int            `json:"lives"`
	Protected     bool           `json:"protected"`
	Reason        FailReason     `json:"reason,omitempty"`
	Equipment     Equipment      `json:"equipment,omitempty"`
	Agents        []Agent        `json:"agents,omitempty"`
	Content       content.Bundle `json:"content"`
	Target        world.Point    `json:"target"`
	Spawn         world.Point    `json:"spawn"`

	Entries       int        `json:"entries,omitempty"`
	Ejected       bool       `json:"ejected,omitempty"`
	QuestionIndex int        `json:"question_index,omitempty"`
	Captures      int        `json:"captures,omitempty"`
	Terminals     []Terminal `json:"terminals,omitempty"`
	Lasers        []Laser    `json:"lasers,omitempty"`
	ItemCollected bool       `json:"item_collected,omitempty"`
	Jammed        bool       `json:"jammed,omitempty"`

	Schedule Schedule   `json:"schedule"`
	Rand     rng.Stream `json:"-"`
	Origin   Activate   `json:"-"`
}

type State struct {
	Instance
	Progression Progression `json:"progression"`
}

func NewState(p Progression) State {
	return State{Instance: Instance{Phase: PhaseInactive}, Progression: p.Normalize()}
}

func (s State) Active() bool { return s.Phase.Active() }

// Busy reports a mission between activation and its outcome.
func (s State) Busy() bool { return s.Phase == PhaseBriefing || s.Phase.Active() }

func (s State) clone() State {
	s.Equipment = s.Equipment.clone()
	s.Agents = cloneAgents(s.Agents)
	if s.Terminals != nil {
		s.Terminals = append([]Terminal(nil), s.Terminals...)
	}
	if s.Lasers != nil {
		s.Lasers = append([]Laser(nil), s.Lasers...)
	}
	s.Schedule = s.Schedule.clone()
	return s
}

// Clone returns a deep copy of the mutable parts; content is immutable and
// shared.
func (s State) Clone() State { return s.clone() }

// EntryRadius is how close to the shop front counts as being inside it.
const EntryRadius = 3.0

func (s State) AtTarget(p world.Point) bool {
	return p.Dist(s.Target) <= EntryRadius
}

func (s State) Agent(id string) (Agent, bool) {
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}

func (s State) CurrentQuestion() (content.Question, bool) {
	if s.Phase != PhaseQuestion || s.QuestionIndex >= len(s.Content.Questions) {
		return content.Question{}, false
	}
	return s.Content.Questions[s.QuestionIndex], true
}
