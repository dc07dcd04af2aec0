package tuning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cityverse/internal/domain/collision"
	"cityverse/internal/domain/content"
	"cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"
	"cityverse/internal/domain/world"
)

const DefaultMinShops = 3

// Tuning is the operator-editable configuration. Unset keys keep their
// defaults; a kind listed under levels replaces that kind's whole table.
type Tuning struct {
	Physics       movement.Params    `yaml:"physics"`
	RecentTargets int                `yaml:"recent_targets"`
	MinShops      int                `yaml:"min_shops"`
	Clock         world.ClockConfig  `yaml:"clock"`
	Levels        mission.LevelTable `yaml:"levels"`
	Obstacles     Obstacles          `yaml:"obstacles"`
	DemoShops     []ShopConfig       `yaml:"demo_shops"`
}

// Obstacles are extra colliders placed on top of the default street.
type Obstacles struct {
	Boxes     []collision.Box      `yaml:"boxes"`
	Cylinders []collision.Cylinder `yaml:"cylinders"`
}

type ShopConfig struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	Category        string       `yaml:"category"`
	X               float64      `yaml:"x"`
	Z               float64      `yaml:"z"`
	Rotation        float64      `yaml:"rotation"`
	HasLogo         bool         `yaml:"has_logo"`
	HasExternalLink bool         `yaml:"has_external_link"`
	Status          string       `yaml:"status"`
	ItemCount       int          `yaml:"item_count"`
	Items           []ItemConfig `yaml:"items"`
}

type ItemConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

func Defaults() Tuning {
	return Tuning{
		Physics:       movement.DefaultParams(),
		RecentTargets: content.DefaultRecentWindow,
		MinShops:      DefaultMinShops,
		Levels:        mission.DefaultLevels(),
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Tuning, error) {
	t := Defaults()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Defaults(), fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.validate(); err != nil {
		return Defaults(), fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.Physics.FrameRate <= 0 {
		return errors.New("physics.frame_rate must be positive")
	}
	if t.Physics.Radius <= 0 {
		return errors.New("physics.radius must be positive")
	}
	if t.RecentTargets < 0 {
		return errors.New("recent_targets must not be negative")
	}
	if t.MinShops < 0 {
		return errors.New("min_shops must not be negative")
	}
	for kind, levels := range t.Levels {
		if !kind.Valid() {
			return fmt.Errorf("levels: unknown mission kind %q", kind)
		}
		if len(levels) == 0 {
			return fmt.Errorf("levels.%s: at least one level is required", kind)
		}
		if kind != mission.KindHunt {
			continue
		}
		for i, l := range levels {
			if l.Agents < 1 {
				return fmt.Errorf("levels.hunt[%d]: agents must be positive", i)
			}
		}
	}
	seen := map[string]bool{}
	for i, s := range t.DemoShops {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("demo_shops[%d]: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("demo_shops[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		switch content.Status(s.Status) {
		case "", content.StatusActive, content.StatusPending, content.StatusDisabled:
		default:
			return fmt.Errorf("demo_shops[%d]: unknown status %q", i, s.Status)
		}
	}
	return nil
}

// Street returns the default street with the configured obstacles added.
func (t Tuning) Street() *collision.Model {
	base := collision.StreetLayout()
	if len(t.Obstacles.Boxes) == 0 && len(t.Obstacles.Cylinders) == 0 {
		return base
	}
	colliders := base.Colliders()
	for _, b := range t.Obstacles.Boxes {
		colliders = append(colliders, b)
	}
	for _, c := range t.Obstacles.Cylinders {
		colliders = append(colliders, c)
	}
	return collision.NewModel(base.Bounds(), colliders...)
}

func (t Tuning) WorldClock() world.Clock { return world.NewClock(t.Clock) }

func (t Tuning) Shops() []content.Shop {
	out := make([]content.Shop, 0, len(t.DemoShops))
	for _, s := range t.DemoShops {
		status := content.Status(s.Status)
		if status == "" {
			status = content.StatusActive
		}
		shop := content.Shop{
			ID:              s.ID,
			Name:            s.Name,
			Category:        s.Category,
			Position:        content.Position{X: s.X, Z: s.Z, Rotation: s.Rotation},
			HasLogo:         s.HasLogo,
			HasExternalLink: s.HasExternalLink,
			Status:          status,
			ItemCount:       s.ItemCount,
		}
		if shop.ItemCount == 0 {
			shop.ItemCount = len(s.Items)
		}
		for _, it := range s.Items {
			shop.Items = append(shop.Items, content.Item{Title: it.Title, Description: it.Description})
		}
		out = append(out, shop)
	}
	return out
}
