package sqlitejournal

import (
	"context"
	"time"
)

func (j *Journal) Anchor(ctx context.Context, fallback time.Time) (time.Time, error) {
	q := j.conn(ctx)
	if _, err := q.ExecContext(ctx,
		`INSERT INTO world_clock(clock_key, start_at) VALUES ('global', ?) ON CONFLICT(clock_key) DO NOTHING`,
		fallback.UnixNano()); err != nil {
		return time.Time{}, err
	}
	var ns int64
	if err := q.QueryRowContext(ctx, `SELECT start_at FROM world_clock WHERE clock_key = 'global'`).Scan(&ns); err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, ns).UTC(), nil
}
