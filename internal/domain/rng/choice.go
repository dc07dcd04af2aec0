package rng

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](s *Stream, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// WeightedChoice maps cumulative weight ranges contiguously onto
// [0,total) in item order. Non-positive weights are never picked; -1 means
// nothing was pickable.
func WeightedChoice(s *Stream, weights []float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if total <= 0 {
		return -1
	}
	r := s.Next() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return i
		}
	}
	return last
}

func Choice[T any](s *Stream, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.Intn(len(items))], true
}
