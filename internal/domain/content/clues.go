package content

import (
	"fmt"
	"math"
	"strings"

	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"
)

type ClueKind string

const (
	CluePositional   ClueKind = "positional"
	ClueItem         ClueKind = "item"
	ClueExclusionary ClueKind = "exclusionary"
)

var ClueKinds = []ClueKind{CluePositional, ClueItem, ClueExclusionary}

type Clue struct {
	Kind    ClueKind    `json:"kind"`
	Text    string      `json:"text"`
	Generic bool        `json:"generic"`
	ShopID  string      `json:"shop_id"`
	At      world.Point `json:"at"`
}

// template produces a clue from the evidence, or false when the evidence does
// not support it.
type template func(Evidence) (string, bool)

var templates = map[ClueKind][]template{
	CluePositional: {
		func(ev Evidence) (string, bool) {
			if ev.Before == nil || ev.After == nil {
				return "", false
			}
			return fmt.Sprintf("It sits between %s and %s.", ev.Before.Name, ev.After.Name), true
		},
		func(ev Evidence) (string, bool) {
			if ev.After == nil {
				return "", false
			}
			return fmt.Sprintf("Its %s neighbour is %s.", ev.AfterDir, ev.After.Name), true
		},
		func(ev Evidence) (string, bool) {
			if ev.Before == nil {
				return "", false
			}
			return fmt.Sprintf("Its %s neighbour is %s.", ev.BeforeDir, ev.Before.Name), true
		},
		func(ev Evidence) (string, bool) {
			if ev.LandmarkDist < 1 {
				return "", false
			}
			return fmt.Sprintf("It is about %d steps %s of %s.", int(math.Round(ev.LandmarkDist)), ev.LandmarkDir, ev.Landmark.Name), true
		},
		func(ev Evidence) (string, bool) {
			street := "the boulevard"
			if ev.Placement == world.PlacementCrossStreet {
				street = "a cross street"
			}
			return fmt.Sprintf("It faces %s from the %s side.", street, ev.Side), true
		},
	},
	ClueItem: {
		func(ev Evidence) (string, bool) {
			if len(ev.Keywords) < 2 {
				return "", false
			}
			return fmt.Sprintf("They sell things like %q and %q.", ev.Keywords[0], ev.Keywords[1]), true
		},
		func(ev Evidence) (string, bool) {
			if len(ev.Keywords) == 0 {
				return "", false
			}
			return fmt.Sprintf("Look for something described as %q.", ev.Keywords[len(ev.Keywords)-1]), true
		},
		func(ev Evidence) (string, bool) {
			if len(ev.Target.Items) == 0 || strings.TrimSpace(ev.Target.Items[0].Title) == "" {
				return "", false
			}
			return fmt.Sprintf("Someone was just asking about the %s.", strings.TrimSpace(ev.Target.Items[0].Title)), true
		},
	},
	ClueExclusionary: {
		func(ev Evidence) (string, bool) {
			if !ev.UniqueCategory {
				return "", false
			}
			return fmt.Sprintf("It is the only %s shop on the street.", ev.Target.Category), true
		},
		func(ev Evidence) (string, bool) {
			if ev.ForeignCategory == "" {
				return "", false
			}
			return fmt.Sprintf("Whatever it is, it is not a %s shop.", ev.ForeignCategory), true
		},
		func(ev Evidence) (string, bool) {
			if !ev.LogoDiffers {
				return "", false
			}
			if ev.Target.HasLogo {
				return "Unlike some of its neighbours, it shows a logo.", true
			}
			return "There is no logo above its door.", true
		},
		func(ev Evidence) (string, bool) {
			if !ev.LinkDiffers {
				return "", false
			}
			if ev.Target.HasExternalLink {
				return "It advertises a website of its own.", true
			}
			return "It has no website to speak of.", true
		},
	},
}

var genericClues = map[ClueKind]string{
	CluePositional:   "It is somewhere on this street.",
	ClueItem:         "It sells something worth a closer look.",
	ClueExclusionary: "Not every shop here is the one you want.",
}

// ClueText runs every template of the kind and picks one of the valid
// results, falling back to a generic line when none applies.
func ClueText(r *rng.Stream, kind ClueKind, ev Evidence) (string, bool) {
	var valid []string
	for _, t := range templates[kind] {
		if s, ok := t(ev); ok {
			valid = append(valid, s)
		}
	}
	if s, ok := rng.Choice(r, valid); ok {
		return s, false
	}
	return genericClues[kind], true
}

// GenerateClues yields one clue per kind, each placed in front of a
// different shop where the street allows it.
func GenerateClues(r *rng.Stream, ev Evidence, eligible []Shop) []Clue {
	hosts := others(eligible, ev.Target.ID)
	rng.Shuffle(r, hosts)
	if len(hosts) == 0 {
		hosts = []Shop{ev.Target}
	}
	out := make([]Clue, 0, len(ClueKinds))
	for i, kind := range ClueKinds {
		text, generic := ClueText(r, kind, ev)
		host := hosts[i%len(hosts)]
		out = append(out, Clue{
			Kind:    kind,
			Text:    text,
			Generic: generic,
			ShopID:  host.ID,
			At:      PlaceInFront(r, host.Position, ClueOffset),
		})
	}
	return out
}
