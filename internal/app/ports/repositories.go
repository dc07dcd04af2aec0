package ports

import (
	"context"
	"time"

	"cityverse/internal/domain/content"
	"cityverse/internal/domain/mission"
)

// ShopRepository is the read side of the shop catalogue. Implementations
// return a snapshot; callers never see later edits mid-mission.
type ShopRepository interface {
	ListShops(ctx context.Context) ([]content.Shop, error)
}

type ProgressionRecord struct {
	PlayerID    string
	Progression mission.Progression
	Version     int64
	UpdatedAt   time.Time
}

type ProgressionRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (ProgressionRecord, error)
	// SaveWithVersion inserts when expectedVersion is 0 and otherwise
	// updates only if the stored version still matches.
	SaveWithVersion(ctx context.Context, rec ProgressionRecord, expectedVersion int64) error
}

type OutcomeRecord struct {
	ID            string
	PlayerID      string
	SessionID     string
	Kind          mission.Kind
	Level         int
	Success       bool
	Reason        mission.FailReason
	TargetShopID  string
	TimeRemaining float64
	Elapsed       float64
	Lives         int
	Captures      int
	Notices       []mission.Notice
	EndedAt       time.Time
}

type OutcomeRepository interface {
	Append(ctx context.Context, rec OutcomeRecord) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]OutcomeRecord, error)
}

// WorldClockRepository keeps the day/night anchor so the cycle survives
// restarts and is shared by every server on the same store.
type WorldClockRepository interface {
	// Anchor returns the stored start time, storing fallback first when
	// none exists yet.
	Anchor(ctx context.Context, fallback time.Time) (time.Time, error)
}
