package mission

type Kind string

const (
	KindEscape Kind = "escape"
	KindHunt   Kind = "hunt"
	KindHeist  Kind = "heist"
)

var Kinds = []Kind{KindEscape, KindHunt, KindHeist}

func (k Kind) Valid() bool {
	switch k {
	case KindEscape, KindHunt, KindHeist:
		return true
	}
	return false
}

type Phase string

const (
	PhaseInactive  Phase = "inactive"
	PhaseBriefing  Phase = "briefing"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"

	// escape
	PhaseEscape   Phase = "escape"
	PhaseObserve  Phase = "observe"
	PhaseQuestion Phase = "question"
	// hunt
	PhaseHunting Phase = "hunting"
	// heist
	PhaseInfiltrate Phase = "infiltrate"
	PhaseHack       Phase = "hack"
	PhaseExfiltrate Phase = "exfiltrate"
)

// Active reports whether the countdown is running.
func (p Phase) Active() bool {
	switch p {
	case PhaseInactive, PhaseBriefing, PhaseCompleted, PhaseFailed, "":
		return false
	}
	return true
}

func (p Phase) Terminal() bool { return p == PhaseCompleted || p == PhaseFailed }

type FailReason string

const (
	FailTime      FailReason = "time"
	FailDeath     FailReason = "death"
	FailDetected  FailReason = "detected"
	FailLaser     FailReason = "laser"
	FailTrap      FailReason = "trap"
	FailJumpscare FailReason = "jumpscare"
)

// ContactReason reports whether r may be delivered by an external contact.
// Time-outs and the jumpscare are only ever raised by the machine itself.
func ContactReason(r FailReason) bool {
	switch r {
	case FailDeath, FailDetected, FailLaser, FailTrap:
		return true
	}
	return false
}
