package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"cityverse/internal/adapter/repo/gorm/model"
	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutcomeRepo struct {
	db *gorm.DB
}

func NewOutcomeRepo(db *gorm.DB) OutcomeRepo {
	return OutcomeRepo{db: db}
}

func (r OutcomeRepo) Append(ctx context.Context, rec ports.OutcomeRecord) error {
	notices := rec.Notices
	if notices == nil {
		notices = []mission.Notice{}
	}
	b, err := json.Marshal(notices)
	if err != nil {
		return fmt.Errorf("encode notices: %w", err)
	}
	row := model.MissionOutcome{
		OutcomeID:     rec.ID,
		PlayerID:      rec.PlayerID,
		SessionID:     rec.SessionID,
		Kind:          string(rec.Kind),
		Level:         int32(rec.Level),
		Success:       rec.Success,
		Reason:        string(rec.Reason),
		TargetShopID:  rec.TargetShopID,
		TimeRemaining: rec.TimeRemaining,
		Elapsed:       rec.Elapsed,
		Lives:         int32(rec.Lives),
		Captures:      int32(rec.Captures),
		Notices:       b,
		EndedAt:       rec.EndedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r OutcomeRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.OutcomeRecord, error) {
	rows := []model.MissionOutcome{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.MissionOutcome{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "ended_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.OutcomeRecord, 0, len(rows))
	for _, row := range rows {
		var notices []mission.Notice
		if len(row.Notices) > 0 {
			_ = json.Unmarshal(row.Notices, &notices)
		}
		out = append(out, ports.OutcomeRecord{
			ID:            row.OutcomeID,
			PlayerID:      row.PlayerID,
			SessionID:     row.SessionID,
			Kind:          mission.Kind(row.Kind),
			Level:         int(row.Level),
			Success:       row.Success,
			Reason:        mission.FailReason(row.Reason),
			TargetShopID:  row.TargetShopID,
			TimeRemaining: row.TimeRemaining,
			Elapsed:       row.Elapsed,
			Lives:         int(row.Lives),
			Captures:      int(row.Captures),
			Notices:       notices,
			EndedAt:       row.EndedAt,
		})
	}
	return out, nil
}
