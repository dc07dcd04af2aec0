package mission

import (
	"context"
	"sync"
	"testing"
	"time"

	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/content"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/world"
)

type stubShops struct {
	shops []content.Shop
	err   error
}

func (s stubShops) ListShops(context.Context) ([]content.Shop, error) {
	return append([]content.Shop(nil), s.shops...), s.err
}

type stubProgress struct {
	mu        sync.Mutex
	records   map[string]ports.ProgressionRecord
	conflicts int
	saves     int
}

func newStubProgress() *stubProgress {
	return &stubProgress{records: map[string]ports.ProgressionRecord{}}
}

func (s *stubProgress) GetByPlayerID(_ context.Context, playerID string) (ports.ProgressionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[playerID]
	if !ok {
		return ports.ProgressionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (s *stubProgress) SaveWithVersion(_ context.Context, rec ports.ProgressionRecord, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts > 0 {
		s.conflicts--
		return ports.ErrConflict
	}
	if cur := s.records[rec.PlayerID]; cur.Version != expected {
		return ports.ErrConflict
	}
	s.records[rec.PlayerID] = rec
	s.saves++
	return nil
}

type stubOutcomes struct {
	mu      sync.Mutex
	records []ports.OutcomeRecord
}

func (s *stubOutcomes) Append(_ context.Context, rec ports.OutcomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *stubOutcomes) ListByPlayerID(_ context.Context, playerID string, _ int) ([]ports.OutcomeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.OutcomeRecord
	for _, r := range s.records {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubMetrics struct {
	activations int
	successes   int
	failures    map[domain.FailReason]int
	conflicts   int
	rejected    int
}

func (m *stubMetrics) RecordActivation(domain.Kind) { m.activations++ }

func (m *stubMetrics) RecordOutcome(_ domain.Kind, success bool, reason domain.FailReason) {
	if success {
		m.successes++
		return
	}
	if m.failures == nil {
		m.failures = map[domain.FailReason]int{}
	}
	m.failures[reason]++
}

func (m *stubMetrics) RecordConflict() { m.conflicts++ }
func (m *stubMetrics) RecordRejected() { m.rejected++ }

type capturePublisher struct {
	events []ports.OutputEvent
}

func (p *capturePublisher) Publish(_ context.Context, events []ports.OutputEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func testShops() []content.Shop {
	mk := func(id, name, cat string, x, z, rot float64, items ...string) content.Shop {
		s := content.Shop{
			ID: id, Name: name, Category: cat, Status: content.StatusActive,
			Position: content.Position{X: x, Z: z, Rotation: rot},
			HasLogo:  len(items)%2 == 0,
		}
		for _, it := range items {
			s.Items = append(s.Items, content.Item{Title: it, Description: it + " handmade locally"})
		}
		s.ItemCount = len(s.Items)
		return s
	}
	return []content.Shop{
		mk("s1", "Paper Moon", "books", 14, -30, -1.5708, "Atlas", "Poetry anthology"),
		mk("s2", "Bean There", "coffee", 14, -10, -1.5708, "Espresso beans", "Ceramic mugs", "Grinder"),
		mk("s3", "Loom", "textiles", 14, 20, -1.5708, "Woven scarves"),
		mk("s4", "Gearbox", "bicycles", -14, 25, 1.5708, "Road bikes", "Helmets"),
		mk("s5", "Petal", "flowers", -14, -25, 1.5708, "Tulips", "Orchids", "Succulents"),
		mk("s6", "Byte", "electronics", -14, 10, 1.5708, "Headphones", "Cables"),
	}
}

type fixture struct {
	uc       UseCase
	reg      *session.Registry
	progress *stubProgress
	outcomes *stubOutcomes
	metrics  *stubMetrics
	pub      *capturePublisher
}

// calmLevel keeps agents away so flows are driven by actions alone.
var calmLevel = domain.Level{
	Agents: 0, TimeLimit: 30, Lives: 2, Questions: 2, ObserveWindow: 10,
	Terminals: 2, RequiredCaptures: 0,
}

func uniformLevels(l domain.Level) domain.LevelTable {
	t := domain.LevelTable{}
	for _, k := range domain.Kinds {
		for i := 0; i < domain.MaxLevel; i++ {
			t[k] = append(t[k], l)
		}
	}
	return t
}

func newFixture(t *testing.T, levels domain.LevelTable) *fixture {
	t.Helper()
	ids := 0
	reg := session.NewRegistry(session.Config{
		Engine: domain.NewEngine(levels),
		NewID: func() string {
			ids++
			if ids == 1 {
				return "s-1"
			}
			return "s-x"
		},
	})
	f := &fixture{
		reg:      reg,
		progress: newStubProgress(),
		outcomes: &stubOutcomes{},
		metrics:  &stubMetrics{},
		pub:      &capturePublisher{},
	}
	outcomeIDs := 0
	f.uc = UseCase{
		Sessions:  reg,
		Shops:     stubShops{shops: testShops()},
		Progress:  f.progress,
		Outcomes:  f.outcomes,
		TxManager: passthroughTx{},
		Metrics:   f.metrics,
		Publisher: f.pub,
		Clock:     world.DefaultClock(),
		MinShops:  3,
		Now:       func() time.Time { return time.Unix(60, 0) },
		NewID: func() string {
			outcomeIDs++
			return "o-" + string(rune('0'+outcomeIDs))
		},
	}
	reg.Open("p1", domain.NewProgression(), 0)
	return f
}

func (f *fixture) session(t *testing.T) *session.Session {
	t.Helper()
	s, err := f.reg.Get("s-1")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func (f *fixture) state(t *testing.T) domain.State {
	t.Helper()
	var st domain.State
	_ = f.session(t).Do(func(s *session.Session) error {
		st = s.Machine.State()
		return nil
	})
	return st
}

// moveTo teleports the player on the mission plane.
func (f *fixture) moveTo(t *testing.T, x, z float64) {
	t.Helper()
	_ = f.session(t).Do(func(s *session.Session) error {
		s.Kinematics.Position.X, s.Kinematics.Position.Z = x, z
		return nil
	})
}

// enterTarget walks the player to the target shop's front and enters it.
func (f *fixture) enterTarget(t *testing.T) Response {
	t.Helper()
	st, err := f.uc.Status(context.Background(), "s-1")
	if err != nil || st.Target == nil {
		t.Fatalf("status has no target: %v", err)
	}
	f.moveTo(t, st.Target.Position.X, st.Target.Position.Z)
	out, err := f.uc.Act(context.Background(), ActRequest{SessionID: "s-1", Intent: Intent{Type: ActionEnterTarget}})
	if err != nil {
		t.Fatalf("act enter_target: %v", err)
	}
	return out
}

func intp(v int) *int { return &v }

func hasNotice(ns []domain.Notice, typ domain.NoticeType) bool {
	for _, n := range ns {
		if n.Type == typ {
			return true
		}
	}
	return false
}
