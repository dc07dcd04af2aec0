package history

import (
	"context"
	"errors"
	"strings"

	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"
)

var ErrInvalidRequest = errors.New("invalid history request")

const (
	defaultLimit = 20
	maxLimit     = 200
)

type UseCase struct {
	Outcomes ports.OutcomeRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" || req.Limit < 0 || (req.Kind != "" && !req.Kind.Valid()) {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	records, err := u.Outcomes.ListByPlayerID(ctx, req.PlayerID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	records = filter(records, req)

	out := Response{Outcomes: make([]OutcomeView, 0, len(records)), Summary: summarize(records)}
	for _, r := range records {
		out.Outcomes = append(out.Outcomes, OutcomeView{
			ID:            r.ID,
			SessionID:     r.SessionID,
			Kind:          r.Kind,
			Level:         r.Level,
			Success:       r.Success,
			Reason:        r.Reason,
			TargetShopID:  r.TargetShopID,
			TimeRemaining: r.TimeRemaining,
			Elapsed:       r.Elapsed,
			Lives:         r.Lives,
			Captures:      r.Captures,
			Notices:       r.Notices,
			EndedAt:       r.EndedAt,
		})
	}
	return out, nil
}

func filter(records []ports.OutcomeRecord, req Request) []ports.OutcomeRecord {
	if req.Kind == "" && req.EndedFrom <= 0 && req.EndedTo <= 0 {
		return records
	}
	out := make([]ports.OutcomeRecord, 0, len(records))
	for _, r := range records {
		if req.Kind != "" && r.Kind != req.Kind {
			continue
		}
		ts := r.EndedAt.Unix()
		if req.EndedFrom > 0 && ts < req.EndedFrom {
			continue
		}
		if req.EndedTo > 0 && ts > req.EndedTo {
			continue
		}
		out = append(out, r)
	}
	return out
}

func summarize(records []ports.OutcomeRecord) Summary {
	s := Summary{Failed: map[mission.FailReason]int{}, BestLevel: map[mission.Kind]int{}}
	for _, r := range records {
		s.Played++
		if !r.Success {
			s.Failed[r.Reason]++
			continue
		}
		s.Completed++
		if r.Level > s.BestLevel[r.Kind] {
			s.BestLevel[r.Kind] = r.Level
		}
	}
	return s
}
