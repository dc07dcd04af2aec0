package mission

import (
	"cityverse/internal/domain/content"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/world"
)

type ActivateRequest struct {
	SessionID string
	Kind      domain.Kind
	// Replay re-runs the session's previous activation with the same
	// content, roster and seed.
	Replay bool
}

type TickRequest struct {
	SessionID string
	Dt        float64
}

type ActRequest struct {
	SessionID string
	Intent    Intent
}

type ResetRequest struct {
	SessionID string
	Full      bool
}

type SelectLevelRequest struct {
	SessionID string
	Level     int
}

type Response struct {
	Notices []domain.Notice `json:"notices"`
	Status  StatusView      `json:"status"`
}

// TerminalView shows a terminal's access sequence once the player is inside
// the target shop.
type TerminalView struct {
	Index    int    `json:"index"`
	Hacked   bool   `json:"hacked"`
	Sequence string `json:"sequence,omitempty"`
}

type TargetView struct {
	ShopID   string           `json:"shop_id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Position content.Position `json:"position"`
}

// IndicatorView hides whether an indicator is a decoy; the tell is what the
// player has to read.
type IndicatorView struct {
	Index   int          `json:"index"`
	ShopID  string       `json:"shop_id"`
	At      world.Point  `json:"at"`
	Tell    content.Tell `json:"tell,omitempty"`
	Visible bool         `json:"visible"`
}

type QuestionView struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type StatusView struct {
	SessionID            string             `json:"session_id"`
	Kind                 domain.Kind        `json:"kind,omitempty"`
	Phase                domain.Phase       `json:"phase"`
	Level                int                `json:"level"`
	TimeRemaining        float64            `json:"time_remaining"`
	TimeRemainingSeconds int                `json:"time_remaining_seconds"`
	Lives                int                `json:"lives"`
	Protected            bool               `json:"protected"`
	Reason               domain.FailReason  `json:"reason,omitempty"`
	Progression          domain.Progression `json:"progression"`
	Target               *TargetView        `json:"target,omitempty"`
	Clues                []content.Clue     `json:"clues,omitempty"`
	Indicators           []IndicatorView    `json:"indicators,omitempty"`
	Question             *QuestionView      `json:"question,omitempty"`
	Agents               []domain.Agent     `json:"agents,omitempty"`
	Equipment            domain.Equipment   `json:"equipment,omitempty"`
	Terminals            []TerminalView     `json:"terminals,omitempty"`
	Lasers               []domain.Laser     `json:"lasers,omitempty"`
	Captures             int                `json:"captures,omitempty"`
	RequiredCaptures     int                `json:"required_captures,omitempty"`
	ItemCollected        bool               `json:"item_collected,omitempty"`
	Jammed               bool               `json:"jammed,omitempty"`
	WorldPhase           world.Phase        `json:"world_phase"`
	Actions              []ActionType       `json:"actions"`
}
