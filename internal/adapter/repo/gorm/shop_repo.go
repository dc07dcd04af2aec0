package gormrepo

import (
	"context"
	"time"

	"cityverse/internal/adapter/repo/gorm/model"
	"cityverse/internal/domain/content"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepo {
	return ShopRepo{db: db}
}

func (r ShopRepo) ListShops(ctx context.Context) ([]content.Shop, error) {
	db := getDBFromCtx(ctx, r.db)
	var rows []model.Shop
	if err := db.Order("shop_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []content.Shop{}, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ShopID)
	}
	var items []model.ShopItem
	err := db.Where("shop_id IN ?", ids).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "shop_id"}},
			{Column: clause.Column{Name: "position"}},
		}}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	byShop := make(map[string][]content.Item, len(rows))
	for _, it := range items {
		byShop[it.ShopID] = append(byShop[it.ShopID], content.Item{Title: it.Title, Description: it.Description})
	}

	out := make([]content.Shop, 0, len(rows))
	for _, row := range rows {
		out = append(out, content.Shop{
			ID:              row.ShopID,
			Name:            row.Name,
			Category:        row.Category,
			Position:        content.Position{X: row.PosX, Z: row.PosZ, Rotation: row.Rotation},
			ItemCount:       int(row.ItemCount),
			HasLogo:         row.HasLogo,
			HasExternalLink: row.HasExternalLink,
			Status:          content.Status(row.Status),
			Items:           byShop[row.ShopID],
		})
	}
	return out, nil
}

// SeedShops inserts shops that are not stored yet. Existing rows win, so
// reseeding never clobbers catalogue edits.
func (r ShopRepo) SeedShops(ctx context.Context, shops []content.Shop) (int64, error) {
	var inserted int64
	err := getDBFromCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, s := range shops {
			row := model.Shop{
				ShopID:          s.ID,
				Name:            s.Name,
				Category:        s.Category,
				PosX:            s.Position.X,
				PosZ:            s.Position.Z,
				Rotation:        s.Position.Rotation,
				ItemCount:       int32(s.ItemCount),
				HasLogo:         s.HasLogo,
				HasExternalLink: s.HasExternalLink,
				Status:          string(s.Status),
				UpdatedAt:       now,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			inserted++
			if len(s.Items) == 0 {
				continue
			}
			items := make([]model.ShopItem, 0, len(s.Items))
			for i, it := range s.Items {
				items = append(items, model.ShopItem{
					ShopID:      s.ID,
					Position:    int32(i),
					Title:       it.Title,
					Description: it.Description,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return inserted, err
}
