package frame

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/movement"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidRequest = errors.New("invalid frame request")

// maxFrameDt rejects host stalls; the controller clamps shorter hitches.
const maxFrameDt = 1.0

type Request struct {
	SessionID string
	Dt        float64
	Input     movement.Input
}

type Response struct {
	Kinematics movement.Kinematics `json:"kinematics"`
	Camera     movement.Camera     `json:"camera"`
	Events     []movement.Event    `json:"events"`
}

type UseCase struct {
	Sessions   *session.Registry
	Controller movement.Controller
	Publisher  ports.EventPublisher
	Now        func() time.Time
}

func (u UseCase) Step(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || math.IsNaN(req.Dt) || req.Dt <= 0 || req.Dt > maxFrameDt {
		return Response{}, ErrInvalidRequest
	}
	if req.Input.Mode == "" {
		req.Input.Mode = movement.CameraThirdPerson
	}
	if req.Input.Mode != movement.CameraThirdPerson && req.Input.Mode != movement.CameraFirstPerson {
		return Response{}, ErrInvalidRequest
	}
	s, err := u.Sessions.Get(req.SessionID)
	if err != nil {
		return Response{}, err
	}

	var out Response
	_ = s.Do(func(s *session.Session) error {
		k, cam, events := u.Controller.Step(s.Kinematics, req.Input, req.Dt)
		s.Kinematics = k
		out = Response{Kinematics: k, Camera: cam, Events: events}
		return nil
	})
	if out.Events == nil {
		out.Events = []movement.Event{}
	}
	u.publish(ctx, req.SessionID, out.Events)
	return out, nil
}

func (u UseCase) publish(ctx context.Context, sessionID string, events []movement.Event) {
	if u.Publisher == nil || len(events) == 0 {
		return
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	at := nowFn()
	out := make([]ports.OutputEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, ports.OutputEvent{
			SessionID: sessionID,
			Source:    ports.SourceMovement,
			Type:      string(ev.Type),
			At:        at,
			Data:      ev,
		})
	}
	if err := u.Publisher.Publish(ctx, out); err != nil {
		hlog.CtxWarnf(ctx, "publish movement events session=%s: %v", sessionID, err)
	}
}
