package world

import "time"

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

type ClockConfig struct {
	StartAt       time.Time     `yaml:"-"`
	DayDuration   time.Duration `yaml:"day"`
	NightDuration time.Duration `yaml:"night"`
}

// Clock is the street's day/night cycle. Decoys carrying the day-only tell
// are hidden at night, so the cycle has to be shared by every session.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.DayDuration <= 0 {
		cfg.DayDuration = 4 * time.Minute
	}
	if cfg.NightDuration <= 0 {
		cfg.NightDuration = 2 * time.Minute
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) PhaseAt(now time.Time) (Phase, time.Duration) {
	total := c.cfg.DayDuration + c.cfg.NightDuration
	if total <= 0 {
		return PhaseDay, 0
	}
	elapsed := now.Sub(c.cfg.StartAt)
	if elapsed < 0 {
		elapsed = 0
	}
	offset := elapsed % total
	if offset < c.cfg.DayDuration {
		return PhaseDay, c.cfg.DayDuration - offset
	}
	return PhaseNight, total - offset
}

func (c Clock) IsDay(now time.Time) bool {
	phase, _ := c.PhaseAt(now)
	return phase == PhaseDay
}
