package gormrepo

import (
	"context"
	"time"

	"cityverse/internal/adapter/repo/gorm/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const globalClockKey = "global"

type WorldClockRepo struct {
	db *gorm.DB
}

func NewWorldClockRepo(db *gorm.DB) WorldClockRepo {
	return WorldClockRepo{db: db}
}

// Anchor inserts fallback unless a row exists, then reads back whichever
// start time won.
func (r WorldClockRepo) Anchor(ctx context.Context, fallback time.Time) (time.Time, error) {
	db := getDBFromCtx(ctx, r.db)
	row := model.WorldClock{ClockKey: globalClockKey, StartAt: fallback.UTC(), CreatedAt: time.Now().UTC()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return time.Time{}, err
	}
	var stored model.WorldClock
	if err := db.Where("clock_key = ?", globalClockKey).First(&stored).Error; err != nil {
		return time.Time{}, err
	}
	return stored.StartAt.UTC(), nil
}
