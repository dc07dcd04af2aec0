package session

import (
	"context"
	"errors"
	"strings"

	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"
)

var ErrInvalidRequest = errors.New("invalid session request")

const maxPlayerIDLen = 64

type OpenRequest struct {
	PlayerID string
}

type OpenResponse struct {
	SessionID   string              `json:"session_id"`
	PlayerID    string              `json:"player_id"`
	Seed        uint32              `json:"seed"`
	Kinematics  movement.Kinematics `json:"kinematics"`
	Progression mission.Progression `json:"progression"`
}

type UseCase struct {
	Registry *Registry
	Progress ports.ProgressionRepository
}

// Open starts a session. A player without stored progression starts at
// level 1; an empty player id plays anonymously as the session itself.
func (u UseCase) Open(ctx context.Context, req OpenRequest) (OpenResponse, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if len(req.PlayerID) > maxPlayerIDLen {
		return OpenResponse{}, ErrInvalidRequest
	}

	prog := mission.NewProgression()
	var version int64
	if req.PlayerID != "" && u.Progress != nil {
		rec, err := u.Progress.GetByPlayerID(ctx, req.PlayerID)
		switch {
		case err == nil:
			prog, version = rec.Progression, rec.Version
		case errors.Is(err, ports.ErrNotFound):
		default:
			return OpenResponse{}, err
		}
	}

	s := u.Registry.Open(req.PlayerID, prog, version)
	var out OpenResponse
	_ = s.Do(func(s *Session) error {
		if s.PlayerID == "" {
			s.PlayerID = s.ID
		}
		out = OpenResponse{
			SessionID:   s.ID,
			PlayerID:    s.PlayerID,
			Seed:        s.Seed,
			Kinematics:  s.Kinematics,
			Progression: s.Machine.Progression(),
		}
		return nil
	})
	return out, nil
}

func (u UseCase) Close(_ context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidRequest
	}
	return u.Registry.Close(sessionID)
}
