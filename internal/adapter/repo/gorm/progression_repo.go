package gormrepo

import (
	"context"
	"errors"

	"cityverse/internal/adapter/repo/gorm/model"
	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"

	"gorm.io/gorm"
)

type ProgressionRepo struct {
	db *gorm.DB
}

func NewProgressionRepo(db *gorm.DB) ProgressionRepo {
	return ProgressionRepo{db: db}
}

func (r ProgressionRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.ProgressionRecord, error) {
	var m model.PlayerProgression
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProgressionRecord{}, ports.ErrNotFound
		}
		return ports.ProgressionRecord{}, err
	}
	return ports.ProgressionRecord{
		PlayerID:    m.PlayerID,
		Progression: mission.Progression{Level: int(m.Level), Unlocked: int(m.Unlocked)}.Normalize(),
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r ProgressionRepo) SaveWithVersion(ctx context.Context, rec ports.ProgressionRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.PlayerProgression{
			PlayerID:  rec.PlayerID,
			Level:     int32(rec.Progression.Level),
			Unlocked:  int32(rec.Progression.Unlocked),
			Version:   rec.Version,
			UpdatedAt: rec.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"level":      int32(rec.Progression.Level),
		"unlocked":   int32(rec.Progression.Unlocked),
		"version":    rec.Version,
		"updated_at": rec.UpdatedAt,
	}
	res := db.Model(&model.PlayerProgression{}).
		Where("player_id = ? AND version = ?", rec.PlayerID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
