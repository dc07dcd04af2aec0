package content

import "math"

const facingWest = -math.Pi / 2
const facingEast = math.Pi / 2

func streetShops() []Shop {
	return []Shop{
		{
			ID: "s1", Name: "Bloom", Position: Position{X: 14, Z: -20, Rotation: facingWest},
			Category: "flowers", ItemCount: 3, HasLogo: true, Status: StatusActive,
			Items: []Item{{Title: "Tulip bouquet", Description: "Fresh tulips from the market"}},
		},
		{
			ID: "s2", Name: "Paper Moon", Position: Position{X: 14, Z: 0, Rotation: facingWest},
			Category: "books", ItemCount: 5, HasExternalLink: true, Status: StatusActive,
			Items: []Item{
				{Title: "Atlas of lost cities", Description: "Hardcover atlas, maps and engravings"},
				{Title: "Poetry chapbook"},
			},
		},
		{
			ID: "s3", Name: "Bean There", Position: Position{X: 14, Z: 20, Rotation: facingWest},
			Category: "coffee", ItemCount: 2, HasLogo: true, HasExternalLink: true, Status: StatusActive,
			Items: []Item{{Title: "Espresso blend"}},
		},
		{
			ID: "s4", Name: "Sole Mates", Position: Position{X: -14, Z: 10, Rotation: facingEast},
			Category: "shoes", ItemCount: 4, Status: StatusActive,
			Items: []Item{{Title: "Leather boots"}},
		},
		{ID: "s5", Name: "Soon", Position: Position{X: -14, Z: 30}, Category: "toys", ItemCount: 2, Status: StatusPending},
		{ID: "s6", Name: "Nameless", Position: Position{X: 14, Z: 60}, ItemCount: 2, Status: StatusActive},
		{ID: "s7", Name: "Empty", Position: Position{X: -14, Z: 60}, Category: "music", Status: StatusActive},
	}
}

func shopByID(shops []Shop, id string) Shop {
	for _, s := range shops {
		if s.ID == id {
			return s
		}
	}
	return Shop{}
}
