package history

import (
	"time"

	"cityverse/internal/domain/mission"
)

type Request struct {
	PlayerID string
	Limit    int
	Kind     mission.Kind
	// EndedFrom and EndedTo are unix seconds; zero leaves the bound open.
	EndedFrom int64
	EndedTo   int64
}

type OutcomeView struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	Kind          mission.Kind       `json:"kind"`
	Level         int                `json:"level"`
	Success       bool               `json:"success"`
	Reason        mission.FailReason `json:"reason,omitempty"`
	TargetShopID  string             `json:"target_shop_id,omitempty"`
	TimeRemaining float64            `json:"time_remaining"`
	Elapsed       float64            `json:"elapsed"`
	Lives         int                `json:"lives"`
	Captures      int                `json:"captures,omitempty"`
	Notices       []mission.Notice   `json:"notices,omitempty"`
	EndedAt       time.Time          `json:"ended_at"`
}

type Summary struct {
	Played    int                        `json:"played"`
	Completed int                        `json:"completed"`
	Failed    map[mission.FailReason]int `json:"failed"`
	BestLevel map[mission.Kind]int       `json:"best_level"`
}

type Response struct {
	Outcomes []OutcomeView `json:"outcomes"`
	Summary  Summary       `json:"summary"`
}
