package sqlitejournal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"
)

func (j *Journal) GetByPlayerID(ctx context.Context, playerID string) (ports.ProgressionRecord, error) {
	var (
		level, unlocked int
		version         int64
		updated         int64
	)
	err := j.conn(ctx).QueryRowContext(ctx,
		`SELECT level, unlocked, version, updated_at FROM progressions WHERE player_id = ?`, playerID,
	).Scan(&level, &unlocked, &version, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ProgressionRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.ProgressionRecord{}, err
	}
	return ports.ProgressionRecord{
		PlayerID:    playerID,
		Progression: mission.Progression{Level: level, Unlocked: unlocked}.Normalize(),
		Version:     version,
		UpdatedAt:   time.Unix(0, updated).UTC(),
	}, nil
}

func (j *Journal) SaveWithVersion(ctx context.Context, rec ports.ProgressionRecord, expectedVersion int64) error {
	var (
		res sql.Result
		err error
	)
	if expectedVersion == 0 {
		res, err = j.conn(ctx).ExecContext(ctx,
			`INSERT INTO progressions(player_id, level, unlocked, version, updated_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(player_id) DO NOTHING`,
			rec.PlayerID, rec.Progression.Level, rec.Progression.Unlocked, rec.Version, rec.UpdatedAt.UnixNano())
	} else {
		res, err = j.conn(ctx).ExecContext(ctx,
			`UPDATE progressions SET level = ?, unlocked = ?, version = ?, updated_at = ?
			 WHERE player_id = ? AND version = ?`,
			rec.Progression.Level, rec.Progression.Unlocked, rec.Version, rec.UpdatedAt.UnixNano(),
			rec.PlayerID, expectedVersion)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrConflict
	}
	return nil
}
