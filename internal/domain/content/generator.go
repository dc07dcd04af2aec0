package content

import (
	"fmt"

	"cityverse/internal/domain/rng"
)

type Request struct {
	MinShops   int
	Questions  int
	Terminals  int
	CodeLength int
}

// Bundle is the generated content of one mission activation. It is
// immutable once built.
type Bundle struct {
	Target     Shop        `json:"target"`
	Clues      []Clue      `json:"clues"`
	Indicators []Indicator `json:"indicators"`
	Questions  []Question  `json:"questions,omitempty"`
	Codes      []string    `json:"-"`
}

func (b Bundle) Empty() bool { return b.Target.ID == "" }

// Generate runs target selection and clue/indicator generation off one
// stream, so the same seed and snapshot reproduce the same mission.
func Generate(r *rng.Stream, shops []Shop, recent *RecentTargets, req Request) (Bundle, error) {
	eligible := Eligible(shops)
	if len(eligible) == 0 {
		return Bundle{}, ErrNoEligibleShops
	}
	if req.MinShops > 0 && len(eligible) < req.MinShops {
		return Bundle{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShops, len(eligible), req.MinShops)
	}

	target, err := SelectTarget(r, eligible, recent)
	if err != nil {
		return Bundle{}, err
	}
	ev := BuildEvidence(r, target, eligible)
	b := Bundle{
		Target:     target,
		Clues:      GenerateClues(r, ev, eligible),
		Indicators: GenerateIndicators(r, target, eligible),
	}
	if req.Questions > 0 {
		b.Questions = GenerateQuestions(r, target, eligible, req.Questions)
	}
	if req.Terminals > 0 {
		b.Codes = TerminalCodes(r, req.Terminals, req.CodeLength)
	}
	return b, nil
}
