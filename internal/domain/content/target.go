package content

import (
	"cityverse/internal/domain/rng"
)

const (
	freshWeight = 3.0
	logoWeight  = 1.2
	linkWeight  = 1.1
)

func TargetWeight(s Shop, recent bool) float64 {
	w := 1.0
	if !recent {
		w *= freshWeight
	}
	items := s.ItemCount
	if items > MaxItemsPerShop {
		items = MaxItemsPerShop
	}
	w *= float64(items)
	if s.HasLogo {
		w *= logoWeight
	}
	if s.HasExternalLink {
		w *= linkWeight
	}
	return w
}

// SelectTarget filters the snapshot to eligible shops and makes one weighted
// draw. The recent list is not updated here.
func SelectTarget(r *rng.Stream, shops []Shop, recent *RecentTargets) (Shop, error) {
	eligible := Eligible(shops)
	if len(eligible) == 0 {
		return Shop{}, ErrNoEligibleShops
	}
	weights := make([]float64, len(eligible))
	for i, s := range eligible {
		weights[i] = TargetWeight(s, recent.Contains(s.ID))
	}
	idx := rng.WeightedChoice(r, weights)
	if idx < 0 {
		return Shop{}, ErrNoEligibleShops
	}
	return eligible[idx], nil
}
