package memory

import (
	"context"

	"cityverse/internal/app/ports"
)

type ProgressionRepo struct {
	store *Store
}

func NewProgressionRepo(store *Store) ProgressionRepo {
	return ProgressionRepo{store: store}
}

func (r ProgressionRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.ProgressionRecord, error) {
	var (
		rec ports.ProgressionRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.progression[playerID]
	})
	if !ok {
		return ports.ProgressionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r ProgressionRepo) SaveWithVersion(ctx context.Context, rec ports.ProgressionRecord, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.progression[rec.PlayerID]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.progression[rec.PlayerID] = rec
			return nil
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.progression[rec.PlayerID] = rec
		return nil
	})
}
