package mission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/content"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/rng"
	"cityverse/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

var (
	ErrInvalidRequest      = errors.New("invalid mission request")
	ErrInvalidActionParams = errors.New("invalid mission action params")
	ErrActionNotAllowed    = errors.New("action not allowed for this mission")
	ErrMissionBusy         = errors.New("mission in progress")
	ErrNoActiveMission     = errors.New("no active mission")
	ErrCannotActivate      = errors.New("mission cannot be activated")
	ErrNothingToReplay     = errors.New("no previous mission to replay")
	ErrLevelLocked         = errors.New("level locked")
)

// maxTickDt bounds one simulation step; hosts that stall longer resume
// with several ticks.
const maxTickDt = 1.0

type UseCase struct {
	Sessions  *session.Registry
	Shops     ports.ShopRepository
	Progress  ports.ProgressionRepository
	Outcomes  ports.OutcomeRepository
	TxManager ports.TxManager
	Metrics   ports.MissionMetrics
	Publisher ports.EventPublisher
	Clock     world.Clock
	// MinShops is the smallest catalogue a mission is generated from.
	MinShops int
	Now      func() time.Time
	NewID    func() string
}

func (u UseCase) Activate(ctx context.Context, req ActivateRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Kind = domain.Kind(strings.ToLower(strings.TrimSpace(string(req.Kind))))
	if req.SessionID == "" || (!req.Replay && !req.Kind.Valid()) || (req.Kind != "" && !req.Kind.Valid()) {
		return Response{}, ErrInvalidRequest
	}

	var shops []content.Shop
	if !req.Replay {
		var err error
		shops, err = u.Shops.ListShops(ctx)
		if err != nil {
			return Response{}, fmt.Errorf("list shops: %w", err)
		}
	}

	return u.run(ctx, req.SessionID, func(s *session.Session) ([]domain.Notice, error) {
		st := s.Machine.State()
		if st.Busy() {
			return nil, ErrMissionBusy
		}

		var ev domain.Activate
		if req.Replay {
			if s.LastActivation == nil || (req.Kind != "" && req.Kind != s.LastActivation.Kind) {
				return nil, ErrNothingToReplay
			}
			ev = *s.LastActivation
		} else {
			lvl := s.Machine.Engine().Level(req.Kind, st.Progression.Level)
			label := fmt.Sprintf("%s#%d", req.Kind, s.Activations)
			bundle, err := content.Generate(rng.Derive(s.Seed, label), shops, s.Recent, content.Request{
				MinShops:   u.MinShops,
				Questions:  lvl.Questions,
				Terminals:  lvl.Terminals,
				CodeLength: content.DefaultCodeLength,
			})
			if err != nil {
				return nil, err
			}
			ev = domain.Activate{
				Kind:    req.Kind,
				Content: bundle,
				Spawn:   s.Player(),
				Seed:    rng.Derive(s.Seed, label+"/agents").Seed(),
			}
		}

		notices := s.Machine.Apply(ev)
		if len(notices) == 0 {
			return nil, ErrCannotActivate
		}
		if !req.Replay {
			s.Recent.Push(ev.Content.Target.ID)
			s.Activations++
			s.LastActivation = &ev
		}
		if u.Metrics != nil {
			u.Metrics.RecordActivation(ev.Kind)
		}
		hlog.CtxInfof(ctx, "mission activated session=%s kind=%s level=%d target=%s replay=%t",
			s.ID, ev.Kind, s.Machine.Progression().Level, ev.Content.Target.ID, req.Replay)
		return notices, nil
	})
}

func (u UseCase) Tick(ctx context.Context, req TickRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || math.IsNaN(req.Dt) || req.Dt <= 0 || req.Dt > maxTickDt {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.SessionID, func(s *session.Session) ([]domain.Notice, error) {
		return s.Machine.Apply(domain.Tick{Dt: req.Dt, Player: s.Player()}), nil
	})
}

// Act applies a player action. Actions that do not fit the current phase
// are ignored and produce no notices.
func (u UseCase) Act(ctx context.Context, req ActRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Intent = normalizeIntent(req.Intent)
	spec, ok := lookupAction(req.Intent.Type)
	if req.SessionID == "" || !ok {
		return Response{}, ErrInvalidRequest
	}
	if !spec.validate(req.Intent) {
		return Response{}, ErrInvalidActionParams
	}
	return u.run(ctx, req.SessionID, func(s *session.Session) ([]domain.Notice, error) {
		st := s.Machine.State()
		if !st.Busy() {
			return nil, ErrNoActiveMission
		}
		if !spec.allows(st.Kind) {
			return nil, ErrActionNotAllowed
		}
		return s.Machine.Apply(spec.event(req.Intent, s.Player())), nil
	})
}

func (u UseCase) Reset(ctx context.Context, req ResetRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.SessionID, func(s *session.Session) ([]domain.Notice, error) {
		return s.Machine.Apply(domain.Reset{Full: req.Full}), nil
	})
}

// Retry restarts a failed mission with the same layout. Anything but a
// failed mission is left untouched.
func (u UseCase) Retry(ctx context.Context, sessionID string) (Response, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, sessionID, func(s *session.Session) ([]domain.Notice, error) {
		notices := s.Machine.Apply(domain.Retry{})
		if st := s.Machine.State(); len(notices) > 0 && st.Phase == domain.PhaseBriefing && u.Metrics != nil {
			u.Metrics.RecordActivation(st.Kind)
		}
		return notices, nil
	})
}

func (u UseCase) SelectLevel(ctx context.Context, req SelectLevelRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || req.Level < 1 || req.Level > domain.MaxLevel {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.SessionID, func(s *session.Session) ([]domain.Notice, error) {
		st := s.Machine.State()
		if st.Busy() {
			return nil, ErrMissionBusy
		}
		if !st.Progression.CanSelect(req.Level) {
			return nil, ErrLevelLocked
		}
		return s.Machine.Apply(domain.SelectLevel{Level: req.Level}), nil
	})
}

func (u UseCase) Status(_ context.Context, sessionID string) (StatusView, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return StatusView{}, ErrInvalidRequest
	}
	s, err := u.Sessions.Get(sessionID)
	if err != nil {
		return StatusView{}, err
	}
	var out StatusView
	_ = s.Do(func(s *session.Session) error {
		out = u.view(s, s.Machine.State(), u.now())
		return nil
	})
	return out, nil
}

// run applies fn under the session lock, then persists progression and
// outcomes when they changed and publishes the notices.
func (u UseCase) run(ctx context.Context, sessionID string, fn func(s *session.Session) ([]domain.Notice, error)) (Response, error) {
	s, err := u.Sessions.Get(sessionID)
	if err != nil {
		return Response{}, err
	}

	var out Response
	err = s.Do(func(s *session.Session) error {
		before := s.Machine.Progression()
		notices, err := fn(s)
		if err != nil {
			if u.Metrics != nil {
				u.Metrics.RecordRejected()
			}
			return err
		}
		st := s.Machine.State()
		now := u.now()

		var rec *ports.OutcomeRecord
		if n, ok := outcomeNotice(notices); ok {
			r := u.outcomeRecord(s, st, n, notices, now)
			rec = &r
			if u.Metrics != nil {
				u.Metrics.RecordOutcome(r.Kind, r.Success, r.Reason)
			}
			hlog.CtxInfof(ctx, "mission outcome session=%s player=%s kind=%s level=%d success=%t reason=%s",
				s.ID, s.PlayerID, r.Kind, r.Level, r.Success, r.Reason)
		}
		if rec != nil || st.Progression != before {
			u.persist(ctx, s, st.Progression, rec, now)
		}

		if notices == nil {
			notices = []domain.Notice{}
		}
		out = Response{Notices: notices, Status: u.view(s, st, now)}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	u.publish(ctx, sessionID, out.Notices)
	return out, nil
}

// persist stores the outcome and progression in one transaction. A version
// conflict means another session of the same player saved first; the
// stored record is merged and the save retried once. Failures are logged,
// never surfaced: the mission result stands either way.
func (u UseCase) persist(ctx context.Context, s *session.Session, p domain.Progression, rec *ports.OutcomeRecord, now time.Time) {
	if u.Progress == nil || u.TxManager == nil {
		return
	}
	save := func(p domain.Progression, expected int64) error {
		return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if rec != nil && u.Outcomes != nil {
				if err := u.Outcomes.Append(txCtx, *rec); err != nil {
					return err
				}
			}
			return u.Progress.SaveWithVersion(txCtx, ports.ProgressionRecord{
				PlayerID:    s.PlayerID,
				Progression: p,
				Version:     expected + 1,
				UpdatedAt:   now,
			}, expected)
		})
	}

	err := save(p, s.ProgressVersion)
	if errors.Is(err, ports.ErrConflict) {
		if u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
		var stored ports.ProgressionRecord
		stored, err = u.Progress.GetByPlayerID(ctx, s.PlayerID)
		if err == nil {
			s.ProgressVersion = stored.Version
			err = save(mergeProgression(p, stored.Progression), stored.Version)
		}
	}
	if err != nil {
		hlog.CtxErrorf(ctx, "persist mission progress session=%s player=%s: %v", s.ID, s.PlayerID, err)
		return
	}
	s.ProgressVersion++
}

// mergeProgression keeps the highest unlock either writer reached.
func mergeProgression(mine, stored domain.Progression) domain.Progression {
	if stored.Unlocked > mine.Unlocked {
		mine.Unlocked = stored.Unlocked
	}
	return mine.Normalize()
}

func outcomeNotice(notices []domain.Notice) (domain.Notice, bool) {
	for _, n := range notices {
		if n.Type == domain.NoticeOutcome {
			return n, true
		}
	}
	return domain.Notice{}, false
}

func (u UseCase) outcomeRecord(s *session.Session, st domain.State, n domain.Notice, notices []domain.Notice, now time.Time) ports.OutcomeRecord {
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return ports.OutcomeRecord{
		ID:            newID(),
		PlayerID:      s.PlayerID,
		SessionID:     s.ID,
		Kind:          st.Kind,
		Level:         n.Level,
		Success:       n.Success,
		Reason:        n.Reason,
		TargetShopID:  st.Content.Target.ID,
		TimeRemaining: st.TimeRemaining,
		Elapsed:       st.Elapsed,
		Lives:         st.Lives,
		Captures:      st.Captures,
		Notices:       append([]domain.Notice(nil), notices...),
		EndedAt:       now,
	}
}

func (u UseCase) publish(ctx context.Context, sessionID string, notices []domain.Notice) {
	if u.Publisher == nil || len(notices) == 0 {
		return
	}
	at := u.now()
	events := make([]ports.OutputEvent, 0, len(notices))
	for _, n := range notices {
		events = append(events, ports.OutputEvent{
			SessionID: sessionID,
			Source:    ports.SourceMission,
			Type:      string(n.Type),
			At:        at,
			Data:      n,
		})
	}
	if err := u.Publisher.Publish(ctx, events); err != nil {
		hlog.CtxWarnf(ctx, "publish mission notices session=%s: %v", sessionID, err)
	}
}
