package content

const DefaultRecentWindow = 5

// RecentTargets is a bounded trailing list of target shop ids. Recent shops
// are down-weighted, never excluded.
type RecentTargets struct {
	window int
	ids    []string
}

func NewRecentTargets(window int) *RecentTargets {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &RecentTargets{window: window}
}

func (r *RecentTargets) Contains(id string) bool {
	if r == nil {
		return false
	}
	for _, v := range r.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (r *RecentTargets) Push(id string) {
	if r == nil || id == "" {
		return
	}
	kept := r.ids[:0]
	for _, v := range r.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	r.ids = append(kept, id)
	if over := len(r.ids) - r.window; over > 0 {
		r.ids = append([]string(nil), r.ids[over:]...)
	}
}

func (r *RecentTargets) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}
