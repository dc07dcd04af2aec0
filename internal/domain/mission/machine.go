package mission

// Machine owns one session's mission state and is its only writer.
// It is not safe for concurrent use.
type Machine struct {
	engine Engine
	state  State
}

func NewMachine(engine Engine, p Progression) *Machine {
	return &Machine{engine: engine, state: NewState(p)}
}

func (m *Machine) Apply(ev Event) []Notice {
	next, notices := m.engine.Apply(m.state, ev)
	m.state = next
	return notices
}

// State returns a copy safe to hand to readers.
func (m *Machine) State() State { return m.state.clone() }

func (m *Machine) Progression() Progression { return m.state.Progression }

func (m *Machine) Engine() Engine { return m.engine }
