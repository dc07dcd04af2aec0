package memory

import (
	"context"

	"cityverse/internal/app/ports"
)

type OutcomeRepo struct {
	store *Store
}

func NewOutcomeRepo(store *Store) OutcomeRepo {
	return OutcomeRepo{store: store}
}

func (r OutcomeRepo) Append(ctx context.Context, rec ports.OutcomeRecord) error {
	return r.store.write(ctx, func() error {
		r.store.outcomes[rec.PlayerID] = append(r.store.outcomes[rec.PlayerID], rec)
		return nil
	})
}

// ListByPlayerID returns the newest outcomes first.
func (r OutcomeRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.OutcomeRecord, error) {
	var out []ports.OutcomeRecord
	r.store.read(ctx, func() {
		all := r.store.outcomes[playerID]
		for i := len(all) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, all[i])
		}
	})
	return out, nil
}
