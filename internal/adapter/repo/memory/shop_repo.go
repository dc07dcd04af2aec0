package memory

import (
	"context"

	"cityverse/internal/domain/content"
)

type ShopRepo struct {
	store *Store
}

func NewShopRepo(store *Store) ShopRepo {
	return ShopRepo{store: store}
}

func (r ShopRepo) ListShops(ctx context.Context) ([]content.Shop, error) {
	var out []content.Shop
	r.store.read(ctx, func() {
		out = cloneShops(r.store.shops)
	})
	return out, nil
}
