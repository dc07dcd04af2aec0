package mission

// MaxLevel is the fixed progression ceiling.
const MaxLevel = 5

type Level struct {
	Agents           int     `json:"agents" yaml:"agents"`
	TimeLimit        float64 `json:"time_limit" yaml:"time_limit"`
	Lives            int     `json:"lives" yaml:"lives"`
	StartProtection  float64 `json:"start_protection" yaml:"start_protection"`
	HitProtection    float64 `json:"hit_protection" yaml:"hit_protection"`
	AgentSpeed       float64 `json:"agent_speed" yaml:"agent_speed"`
	RequiredCaptures int     `json:"required_captures,omitempty" yaml:"required_captures"`
	Questions        int     `json:"questions,omitempty" yaml:"questions"`
	ObserveWindow    float64 `json:"observe_window,omitempty" yaml:"observe_window"`
	Terminals        int     `json:"terminals,omitempty" yaml:"terminals"`
	Lasers           int     `json:"lasers,omitempty" yaml:"lasers"`
	DetectRadius     float64 `json:"detect_radius,omitempty" yaml:"detect_radius"`
}

// LevelTable holds levels 1..n per kind at index n-1.
type LevelTable map[Kind][]Level

func DefaultLevels() LevelTable {
	t := LevelTable{}
	for n := 1; n <= MaxLevel; n++ {
		f := float64(n - 1)
		t[KindEscape] = append(t[KindEscape], Level{
			Agents:          3 + n,
			TimeLimit:       180 - 15*f,
			Lives:           3,
			StartProtection: 3,
			HitProtection:   2,
			AgentSpeed:      2 + 0.3*f,
			Questions:       2 + n/3,
			ObserveWindow:   12 - f,
		})
		t[KindHunt] = append(t[KindHunt], Level{
			Agents:           3 + n,
			TimeLimit:        240 - 20*f,
			Lives:            3,
			StartProtection:  3,
			HitProtection:    2,
			AgentSpeed:       1.5 + 0.25*f,
			RequiredCaptures: 2 + n,
		})
		t[KindHeist] = append(t[KindHeist], Level{
			Agents:          2 + n,
			TimeLimit:       240 - 20*f,
			Lives:           3,
			StartProtection: 3,
			HitProtection:   1.5,
			AgentSpeed:      2.5 + 0.25*f,
			Terminals:       1 + (n+1)/2,
			Lasers:          n,
			DetectRadius:    6 + 0.5*f,
		})
	}
	return t
}

// Get clamps level into the table and falls back to the defaults for a
// missing kind.
func (t LevelTable) Get(kind Kind, level int) Level {
	levels := t[kind]
	if len(levels) == 0 {
		levels = DefaultLevels()[kind]
	}
	if len(levels) == 0 {
		return Level{}
	}
	if level < 1 {
		level = 1
	}
	if level > len(levels) {
		level = len(levels)
	}
	return levels[level-1].sanitize(kind)
}

func (l Level) sanitize(kind Kind) Level {
	if l.Lives <= 0 {
		l.Lives = 1
	}
	if l.TimeLimit <= 0 {
		l.TimeLimit = 60
	}
	if l.Agents < 0 {
		l.Agents = 0
	}
	if l.AgentSpeed < 0 {
		l.AgentSpeed = 0
	}
	if l.RequiredCaptures > l.Agents {
		l.RequiredCaptures = l.Agents
	}
	if kind == KindHunt && l.Agents > 0 && l.RequiredCaptures < 1 {
		l.RequiredCaptures = 1
	}
	if l.ObserveWindow <= 0 {
		l.ObserveWindow = 10
	}
	return l
}

// Progression outlives single attempts. Level is the selected tier and
// Unlocked the highest tier ever reached.
type Progression struct {
	Level    int `json:"level"`
	Unlocked int `json:"unlocked"`
}

func NewProgression() Progression { return Progression{Level: 1, Unlocked: 1} }

func (p Progression) Normalize() Progression {
	if p.Unlocked < 1 {
		p.Unlocked = 1
	}
	if p.Unlocked > MaxLevel {
		p.Unlocked = MaxLevel
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Level > p.Unlocked {
		p.Level = p.Unlocked
	}
	return p
}

func (p Progression) CanSelect(level int) bool {
	return level >= 1 && level <= p.Unlocked
}

// Advance raises the ceiling by one step, and only when the completed level
// was the highest unlocked one.
func (p Progression) Advance(completed int) (Progression, bool) {
	if completed >= p.Unlocked && p.Unlocked < MaxLevel {
		p.Unlocked++
		return p, true
	}
	return p, false
}
