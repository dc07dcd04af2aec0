package inmemory

import (
	"sync"

	"cityverse/internal/domain/mission"
)

type Snapshot struct {
	MissionActivated uint64            `json:"mission_activated"`
	MissionCompleted uint64            `json:"mission_completed"`
	MissionFailed    uint64            `json:"mission_failed"`
	ProgressConflict uint64            `json:"progress_conflict"`
	RequestRejected  uint64            `json:"request_rejected"`
	ByKind           map[string]uint64 `json:"activated_by_kind"`
	ByFailReason     map[string]uint64 `json:"failed_by_reason"`
}

type Recorder struct {
	mu        sync.Mutex
	activated uint64
	completed uint64
	failed    uint64
	conflict  uint64
	rejected  uint64
	byKind    map[string]uint64
	byReason  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:   map[string]uint64{},
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordActivation(kind mission.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activated++
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordOutcome(_ mission.Kind, success bool, reason mission.FailReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.completed++
		return
	}
	r.failed++
	r.byReason[string(reason)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		MissionActivated: r.activated,
		MissionCompleted: r.completed,
		MissionFailed:    r.failed,
		ProgressConflict: r.conflict,
		RequestRejected:  r.rejected,
		ByKind:           make(map[string]uint64, len(r.byKind)),
		ByFailReason:     make(map[string]uint64, len(r.byReason)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	for k, v := range r.byReason {
		out.ByFailReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
