package content

import (
	"errors"
	"fmt"

	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

// Tell is the one deterministic cue that gives a decoy away.
type Tell string

const (
	TellFadesOnApproach Tell = "fades_on_approach"
	TellFlickers        Tell = "flickers"
	TellReversed        Tell = "reversed"
	TellDayOnly         Tell = "day_only"
	TellGlitch          Tell = "glitch"
)

var Tells = []Tell{TellFadesOnApproach, TellFlickers, TellReversed, TellDayOnly, TellGlitch}

func (t Tell) Valid() bool {
	for _, v := range Tells {
		if v == t {
			return true
		}
	}
	return false
}

const (
	MaxDecoys = 2
	// FadeDistance is how close a player gets before a fading decoy vanishes.
	FadeDistance = 4.0
)

var ErrUnfairIndicators = errors.New("unfair indicators")

type Indicator struct {
	ShopID string      `json:"shop_id"`
	At     world.Point `json:"at"`
	Decoy  bool        `json:"decoy"`
	Tell   Tell        `json:"tell,omitempty"`
}

// Visible reports whether the indicator can be seen from dist away. Only the
// fading and day-only tells affect visibility; the others are presentation.
func (i Indicator) Visible(day bool, dist float64) bool {
	switch i.Tell {
	case TellDayOnly:
		return day
	case TellFadesOnApproach:
		return dist > FadeDistance
	default:
		return true
	}
}

// GenerateIndicators places the true indicator in front of the target and
// 0..MaxDecoys decoys in front of other shops, each decoy with a distinct tell.
func GenerateIndicators(r *rng.Stream, target Shop, eligible []Shop) []Indicator {
	pool := others(eligible, target.ID)
	rng.Shuffle(r, pool)
	decoys := r.Intn(MaxDecoys + 1)
	if decoys > len(pool) {
		decoys = len(pool)
	}
	tells := append([]Tell(nil), Tells...)
	rng.Shuffle(r, tells)

	out := make([]Indicator, 0, decoys+1)
	out = append(out, Indicator{ShopID: target.ID, At: PlaceInFront(r, target.Position, IndicatorOffset)})
	for i := 0; i < decoys; i++ {
		out = append(out, Indicator{
			ShopID: pool[i].ID,
			At:     PlaceInFront(r, pool[i].Position, IndicatorOffset),
			Decoy:  true,
			Tell:   tells[i],
		})
	}
	rng.Shuffle(r, out)
	return out
}

// CheckFairness verifies exactly one true indicator without a tell and that
// every decoy carries exactly one known tell.
func CheckFairness(inds []Indicator) error {
	truth := 0
	decoys := 0
	for _, ind := range inds {
		if !ind.Decoy {
			truth++
			if ind.Tell != "" {
				return fmt.Errorf("%w: true indicator at %s carries tell %q", ErrUnfairIndicators, ind.ShopID, ind.Tell)
			}
			continue
		}
		decoys++
		if !ind.Tell.Valid() {
			return fmt.Errorf("%w: decoy at %s has tell %q", ErrUnfairIndicators, ind.ShopID, ind.Tell)
		}
	}
	if truth != 1 {
		return fmt.Errorf("%w: %d true indicators", ErrUnfairIndicators, truth)
	}
	if decoys > MaxDecoys {
		return fmt.Errorf("%w: %d decoys", ErrUnfairIndicators, decoys)
	}
	return nil
}
