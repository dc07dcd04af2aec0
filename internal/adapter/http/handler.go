package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"cityverse/internal/app/frame"
	"cityverse/internal/app/history"
	"cityverse/internal/app/mission"
	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/content"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const sessionIDHeader = "X-Session-ID"

type Handler struct {
	SessionUC session.UseCase
	FrameUC   frame.UseCase
	MissionUC mission.UseCase
	HistoryUC history.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	sess := s.Group("/api/session")
	sess.POST("/open", h.openSession)
	sess.POST("/close", h.closeSession)
	sess.POST("/frame", h.frame)

	m := s.Group("/api/mission")
	m.POST("/activate", h.activate)
	m.POST("/tick", h.tick)
	m.POST("/action", h.action)
	m.POST("/reset", h.reset)
	m.POST("/retry", h.retry)
	m.POST("/level", h.selectLevel)
	m.POST("/status", h.status)
	m.GET("/actions", h.actions)

	s.GET("/api/history", h.history)
	s.GET("/ops/kpi", h.kpi)
}

type openRequest struct {
	PlayerID string `json:"player_id"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type frameRequest struct {
	SessionID string         `json:"session_id"`
	Dt        float64        `json:"dt"`
	Input     movement.Input `json:"input"`
}

type activateRequest struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Replay    bool   `json:"replay,omitempty"`
}

type tickRequest struct {
	SessionID string  `json:"session_id"`
	Dt        float64 `json:"dt"`
}

type actionRequest struct {
	SessionID string         `json:"session_id"`
	Intent    mission.Intent `json:"intent"`
}

type resetRequest struct {
	SessionID string `json:"session_id"`
	Full      bool   `json:"full,omitempty"`
}

type levelRequest struct {
	SessionID string `json:"session_id"`
	Level     int    `json:"level"`
}

func (h Handler) openSession(c context.Context, ctx *app.RequestContext) {
	var body openRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SessionUC.Open(c, session.OpenRequest{PlayerID: body.PlayerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) closeSession(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.SessionUC.Close(c, sessionID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"session_id": sessionID, "closed": true})
}

func (h Handler) frame(c context.Context, ctx *app.RequestContext) {
	var body frameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.FrameUC.Step(c, frame.Request{SessionID: sessionID, Dt: body.Dt, Input: body.Input})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) activate(c context.Context, ctx *app.RequestContext) {
	var body activateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	for _, field := range []string{"seed", "content"} {
		if hasJSONField(ctx.Request.Body(), field) {
			writeErrorBody(ctx, consts.StatusBadRequest, field+"_managed_by_server", field+" is managed by server")
			return
		}
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Activate(c, mission.ActivateRequest{
		SessionID: sessionID,
		Kind:      domain.Kind(body.Kind),
		Replay:    body.Replay,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Tick(c, mission.TickRequest{SessionID: sessionID, Dt: body.Dt})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Act(c, mission.ActRequest{SessionID: sessionID, Intent: body.Intent})
	if err != nil {
		if writeActionRejectedFromErr(ctx, body.Intent.Type, err) {
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	var body resetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Reset(c, mission.ResetRequest{SessionID: sessionID, Full: body.Full})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) retry(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Retry(c, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) selectLevel(c context.Context, ctx *app.RequestContext) {
	var body levelRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.SelectLevel(c, mission.SelectLevelRequest{SessionID: sessionID, Level: body.Level})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID, err := requireSessionID(ctx, body.SessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MissionUC.Status(c, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) actions(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"actions": mission.SupportedActions()})
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	endedFrom, _ := strconv.ParseInt(string(ctx.Query("ended_from")), 10, 64)
	endedTo, _ := strconv.ParseInt(string(ctx.Query("ended_to")), 10, 64)
	resp, err := h.HistoryUC.Execute(c, history.Request{
		PlayerID:  string(ctx.Query("player_id")),
		Limit:     limit,
		Kind:      domain.Kind(string(ctx.Query("kind"))),
		EndedFrom: endedFrom,
		EndedTo:   endedTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func hasJSONField(body []byte, key string) bool {
	if len(body) == 0 {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}

var ErrMissingSessionID = errors.New("missing session id")
var ErrSessionIDMismatch = errors.New("session id in header and body differ")

// requireSessionID accepts the session from the body or the X-Session-ID
// header. When both are sent they must agree.
func requireSessionID(ctx *app.RequestContext, fromBody string) (string, error) {
	fromBody = strings.TrimSpace(fromBody)
	fromHeader := strings.TrimSpace(string(ctx.GetHeader(sessionIDHeader)))
	switch {
	case fromBody == "" && fromHeader == "":
		return "", ErrMissingSessionID
	case fromBody == "":
		return fromHeader, nil
	case fromHeader != "" && fromHeader != fromBody:
		return "", ErrSessionIDMismatch
	default:
		return fromBody, nil
	}
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSessionID):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, ErrSessionIDMismatch):
		writeErrorBody(ctx, consts.StatusBadRequest, "session_id_mismatch", err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, mission.ErrMissionBusy):
		writeErrorBody(ctx, consts.StatusConflict, "mission_busy", err.Error())
	case errors.Is(err, mission.ErrNoActiveMission):
		writeErrorBody(ctx, consts.StatusConflict, "no_active_mission", err.Error())
	case errors.Is(err, mission.ErrActionNotAllowed):
		writeErrorBody(ctx, consts.StatusConflict, "action_not_allowed", err.Error())
	case errors.Is(err, mission.ErrCannotActivate):
		writeErrorBody(ctx, consts.StatusConflict, "cannot_activate", err.Error())
	case errors.Is(err, mission.ErrNothingToReplay):
		writeErrorBody(ctx, consts.StatusConflict, "nothing_to_replay", err.Error())
	case errors.Is(err, mission.ErrLevelLocked):
		writeErrorBody(ctx, consts.StatusConflict, "level_locked", err.Error())
	case errors.Is(err, content.ErrNoEligibleShops), errors.Is(err, content.ErrNotEnoughShops):
		writeErrorBody(ctx, consts.StatusConflict, "not_enough_shops", err.Error())
	case errors.Is(err, mission.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, mission.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, frame.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeActionRejectedFromErr(ctx *app.RequestContext, intent mission.ActionType, err error) bool {
	switch {
	case errors.Is(err, mission.ErrActionNotAllowed):
		writeActionRejected(ctx, consts.StatusConflict, "action_not_allowed", err.Error(), false, []string{"WRONG_MISSION_KIND"}, map[string]any{"intent": string(intent)})
		return true
	case errors.Is(err, mission.ErrNoActiveMission):
		writeActionRejected(ctx, consts.StatusConflict, "no_active_mission", err.Error(), false, []string{"NO_ACTIVE_MISSION"}, nil)
		return true
	case errors.Is(err, mission.ErrInvalidActionParams):
		writeActionRejected(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error(), false, []string{"REQUIREMENT_NOT_MET"}, map[string]any{"intent": string(intent)})
		return true
	case errors.Is(err, mission.ErrInvalidRequest):
		writeActionRejected(ctx, consts.StatusBadRequest, "bad_request", err.Error(), false, []string{"REQUIREMENT_NOT_MET"}, map[string]any{
			"supported": mission.SupportedActions(),
		})
		return true
	default:
		return false
	}
}

func writeActionRejected(ctx *app.RequestContext, status int, code, message string, retryable bool, blockedBy []string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"result_code": "REJECTED",
		"notices":     []domain.Notice{},
		"error": map[string]any{
			"code":       code,
			"message":    message,
			"retryable":  retryable,
			"blocked_by": blockedBy,
			"details":    details,
		},
	})
}
