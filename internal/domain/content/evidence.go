package content

import (
	"math"
	"sort"

	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

// Evidence is everything the clue templates may state about the target.
// Exclusionary facts are only recorded when some other eligible shop differs,
// otherwise they would not narrow anything down.
type Evidence struct {
	Target       Shop
	Placement    world.Placement
	Side         world.Side
	Before       *Shop
	After        *Shop
	BeforeDir    string
	AfterDir     string
	Landmark     world.Landmark
	LandmarkDist float64
	LandmarkDir  string
	Keywords     []string

	UniqueCategory  bool
	ForeignCategory string
	LogoDiffers     bool
	LinkDiffers     bool
}

func BuildEvidence(r *rng.Stream, target Shop, eligible []Shop) Evidence {
	at := target.Position.Point()
	ev := Evidence{
		Target:    target,
		Placement: world.PlacementOf(at),
		Side:      world.SideOf(at),
		Keywords:  Keywords(target.Items),
	}
	ev.Landmark, ev.LandmarkDist = world.NearestLandmark(at)
	ev.LandmarkDir = world.Direction(ev.Landmark.At, at)
	ev.Before, ev.After = rowNeighbours(target, eligible)
	if ev.Before != nil {
		ev.BeforeDir = world.Direction(at, ev.Before.Position.Point())
	}
	if ev.After != nil {
		ev.AfterDir = world.Direction(at, ev.After.Position.Point())
	}

	rest := others(eligible, target.ID)
	ev.UniqueCategory = len(rest) > 0
	var foreign []string
	for _, s := range rest {
		if s.Category == target.Category {
			ev.UniqueCategory = false
		} else {
			foreign = append(foreign, s.Category)
		}
		if s.HasLogo != target.HasLogo {
			ev.LogoDiffers = true
		}
		if s.HasExternalLink != target.HasExternalLink {
			ev.LinkDiffers = true
		}
	}
	if c, ok := rng.Choice(r, foreign); ok {
		ev.ForeignCategory = c
	}
	return ev
}

// rowNeighbours returns the nearest shops in the same row on either side of
// the target. Boulevard rows run along Z, cross-street rows along X.
func rowNeighbours(target Shop, eligible []Shop) (*Shop, *Shop) {
	at := target.Position.Point()
	placement := world.PlacementOf(at)
	side := world.SideOf(at)
	along := func(p world.Point) float64 {
		if placement == world.PlacementCrossStreet {
			return p.X
		}
		return p.Z
	}

	row := make([]Shop, 0, len(eligible))
	for _, s := range eligible {
		p := s.Position.Point()
		if s.ID == target.ID || world.PlacementOf(p) != placement || world.SideOf(p) != side {
			continue
		}
		if placement == world.PlacementCrossStreet && math.Signbit(p.Z) != math.Signbit(at.Z) {
			continue
		}
		row = append(row, s)
	}
	sort.SliceStable(row, func(i, j int) bool { return along(row[i].Position.Point()) < along(row[j].Position.Point()) })

	var before, after *Shop
	key := along(at)
	for i := range row {
		v := along(row[i].Position.Point())
		if v < key {
			before = &row[i]
		} else if v > key && after == nil {
			after = &row[i]
		}
	}
	return before, after
}
