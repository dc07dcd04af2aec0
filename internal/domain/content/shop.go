package content

import (
	"errors"
	"math"

	"cityverse/internal/domain/world"
)

var (
	ErrNoEligibleShops = errors.New("no eligible shops")
	ErrNotEnoughShops  = errors.New("not enough eligible shops")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusDisabled Status = "disabled"
)

// Position is a storefront anchor. Rotation is the facing angle in radians,
// measured the same way as the player's facing: 0 faces +Z.
type Position struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

func (p Position) Point() world.Point { return world.Point{X: p.X, Z: p.Z} }

// Forward is the unit vector the storefront faces.
func (p Position) Forward() world.Point {
	return world.Point{X: math.Sin(p.Rotation), Z: math.Cos(p.Rotation)}
}

type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MaxItemsPerShop bounds the keyword input per shop.
const MaxItemsPerShop = 5

type Shop struct {
	ID              string   `json:"shop_id"`
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Category        string   `json:"category"`
	ItemCount       int      `json:"item_count"`
	HasLogo         bool     `json:"has_logo"`
	HasExternalLink bool     `json:"has_external_link"`
	Status          Status   `json:"status"`
	Items           []Item   `json:"items,omitempty"`
}

func (s Shop) Eligible() bool {
	return s.Status == StatusActive && s.Category != "" && s.ItemCount > 0
}

// Eligible keeps the order of the input.
func Eligible(shops []Shop) []Shop {
	out := make([]Shop, 0, len(shops))
	for _, s := range shops {
		if s.Eligible() {
			out = append(out, s)
		}
	}
	return out
}

func others(shops []Shop, id string) []Shop {
	out := make([]Shop, 0, len(shops))
	for _, s := range shops {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
