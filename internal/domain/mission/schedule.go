package mission

import "sort"

type TaskKind string

const (
	TaskProtectionEnd   TaskKind = "protection_end"
	TaskObserveEnd      TaskKind = "observe_end"
	TaskFlashlightRegen TaskKind = "flashlight_regen"
	TaskRevealEnd       TaskKind = "reveal_end"
	TaskJamEnd          TaskKind = "jam_end"
	TaskBeamToggle      TaskKind = "beam_toggle"
)

// Task is a deferred effect keyed by mission time. Gen is the schedule
// generation it was created in; a task from an older generation never fires.
type Task struct {
	ID     uint64   `json:"id"`
	Kind   TaskKind `json:"kind"`
	Ref    string   `json:"ref,omitempty"`
	FireAt float64  `json:"fire_at"`
	Gen    uint64   `json:"gen"`
}

type Schedule struct {
	Gen   uint64 `json:"gen"`
	Seq   uint64 `json:"seq"`
	Tasks []Task `json:"tasks,omitempty"`
}

func (s *Schedule) At(fireAt float64, kind TaskKind, ref string) uint64 {
	s.Seq++
	s.Tasks = append(s.Tasks, Task{ID: s.Seq, Kind: kind, Ref: ref, FireAt: fireAt, Gen: s.Gen})
	return s.Seq
}

// Cancel drops pending tasks of kind with ref and returns how many were
// dropped.
func (s *Schedule) Cancel(kind TaskKind, ref string) int {
	kept := s.Tasks[:0]
	n := 0
	for _, t := range s.Tasks {
		if t.Kind == kind && t.Ref == ref {
			n++
			continue
		}
		kept = append(kept, t)
	}
	s.Tasks = kept
	if len(s.Tasks) == 0 {
		s.Tasks = nil
	}
	return n
}

func (s *Schedule) Pending(kind TaskKind, ref string) bool {
	for _, t := range s.Tasks {
		if t.Kind == kind && t.Ref == ref {
			return true
		}
	}
	return false
}

// Due removes and returns tasks with FireAt <= now, oldest first.
func (s *Schedule) Due(now float64) []Task {
	var due []Task
	kept := s.Tasks[:0]
	for _, t := range s.Tasks {
		if t.FireAt <= now {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	s.Tasks = kept
	if len(s.Tasks) == 0 {
		s.Tasks = nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].FireAt != due[j].FireAt {
			return due[i].FireAt < due[j].FireAt
		}
		return due[i].ID < due[j].ID
	})
	return due
}

func (s *Schedule) Live(t Task) bool { return t.Gen == s.Gen }

// Clear discards every pending task and bumps the generation, so tasks
// already handed out by Due are stale as well.
func (s *Schedule) Clear() {
	s.Gen++
	s.Tasks = nil
}

func (s Schedule) clone() Schedule {
	if s.Tasks != nil {
		s.Tasks = append([]Task(nil), s.Tasks...)
	}
	return s
}
