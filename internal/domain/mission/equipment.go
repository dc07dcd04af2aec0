package mission

const (
	ToolFlashlight = "flashlight"
	ToolCamera     = "camera"
	ToolTrap       = "trap"
	ToolJammer     = "jammer"
)

// Tool is one piece of mission equipment. Charge depletes on use (Cost) or
// continuously while Active (Drain per second); Cooldown blocks reuse.
type Tool struct {
	Charge         float64 `json:"charge"`
	MaxCharge      float64 `json:"max_charge"`
	Drain          float64 `json:"drain,omitempty"`
	Cost           float64 `json:"cost,omitempty"`
	Cooldown       float64 `json:"cooldown"`
	CooldownLength float64 `json:"cooldown_length,omitempty"`
	Active         bool    `json:"active"`
	Locked         bool    `json:"locked"`
}

func (t Tool) Ready() bool {
	return !t.Locked && t.Cooldown <= 0 && t.Charge > 0 && t.Charge >= t.Cost
}

func (t *Tool) use() bool {
	if !t.Ready() {
		return false
	}
	t.Charge -= t.Cost
	t.Cooldown = t.CooldownLength
	return true
}

func (t *Tool) cool(dt float64) {
	if t.Cooldown > 0 {
		t.Cooldown -= dt
		if t.Cooldown < 0 {
			t.Cooldown = 0
		}
	}
}

type Equipment map[string]Tool

func (e Equipment) clone() Equipment {
	if e == nil {
		return nil
	}
	out := make(Equipment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
