package world

import (
	"testing"
	"time"
)

func TestClockPhaseCycle(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(ClockConfig{
		StartAt:       start,
		DayDuration:   4 * time.Minute,
		NightDuration: 2 * time.Minute,
	})

	phase, remain := clock.PhaseAt(start)
	if phase != PhaseDay {
		t.Fatalf("expected day at start, got %s", phase)
	}
	if remain != 4*time.Minute {
		t.Fatalf("expected 4m remain, got %s", remain)
	}

	phase, remain = clock.PhaseAt(start.Add(5 * time.Minute))
	if phase != PhaseNight {
		t.Fatalf("expected night at +5m, got %s", phase)
	}
	if remain != time.Minute {
		t.Fatalf("expected 1m remain, got %s", remain)
	}

	if !clock.IsDay(start.Add(6 * time.Minute)) {
		t.Fatalf("expected cycle back to day")
	}
	if !clock.IsDay(start.Add(-time.Hour)) {
		t.Fatalf("times before the start count as the first day")
	}
}

func TestDefaultClockDurations(t *testing.T) {
	c := DefaultClock()
	if _, remain := c.PhaseAt(time.Unix(0, 0)); remain != 4*time.Minute {
		t.Fatalf("expected default day length 4m, got %s", remain)
	}
}
