package session

import (
	"errors"
	"sync"
	"time"

	"cityverse/internal/domain/content"
	"cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"
	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// DefaultSpawn is on the boulevard south of the fountain.
var DefaultSpawn = world.Point{X: 0, Z: -20}

// Session is one player's live simulation. Every field is owned by the
// goroutine holding the session lock; use Do.
type Session struct {
	mu sync.Mutex

	ID       string
	PlayerID string
	Seed     uint32
	OpenedAt time.Time

	Kinematics  movement.Kinematics
	Machine     *mission.Machine
	Recent      *content.RecentTargets
	Activations int
	// LastActivation is the event that started the most recent mission;
	// replaying it reproduces the same layout.
	LastActivation *mission.Activate
	// ProgressVersion is the stored version of the player's progression.
	ProgressVersion int64
}

// Do runs fn with the session locked. Sessions are single-writer.
func (s *Session) Do(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Player is the mission-plane position of the player.
func (s *Session) Player() world.Point {
	return world.Point{X: s.Kinematics.Position.X, Z: s.Kinematics.Position.Z}
}

type Config struct {
	Engine       mission.Engine
	RecentWindow int
	Spawn        world.Point
	Now          func() time.Time
	NewID        func() string
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
}

func NewRegistry(cfg Config) *Registry {
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = content.DefaultRecentWindow
	}
	if cfg.Spawn == (world.Point{}) {
		cfg.Spawn = DefaultSpawn
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if len(cfg.Engine.Levels()) == 0 {
		cfg.Engine = mission.NewEngine(nil)
	}
	return &Registry{sessions: map[string]*Session{}, cfg: cfg}
}

func (r *Registry) Engine() mission.Engine { return r.cfg.Engine }

// Open registers a new session for playerID starting from progression p.
func (r *Registry) Open(playerID string, p mission.Progression, version int64) *Session {
	id := r.cfg.NewID()
	s := &Session{
		ID:              id,
		PlayerID:        playerID,
		Seed:            rng.SeedFromString(id),
		OpenedAt:        r.cfg.Now(),
		Kinematics:      movement.Spawn(r.cfg.Spawn.X, r.cfg.Spawn.Z),
		Machine:         mission.NewMachine(r.cfg.Engine, p),
		Recent:          content.NewRecentTargets(r.cfg.RecentWindow),
		ProgressVersion: version,
	}
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
