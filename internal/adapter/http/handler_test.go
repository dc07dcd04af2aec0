package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	metricsinmem "cityverse/internal/adapter/metrics/inmemory"
	"cityverse/internal/adapter/repo/memory"
	"cityverse/internal/app/frame"
	"cityverse/internal/app/history"
	"cityverse/internal/app/mission"
	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/collision"
	"cityverse/internal/domain/content"
	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"
	"cityverse/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type testEnv struct {
	h       Handler
	reg     *session.Registry
	metrics *metricsinmem.Recorder
}

func demoShops() []content.Shop {
	out := make([]content.Shop, 0, 5)
	cats := []string{"books", "coffee", "tea", "flowers", "bikes"}
	for i, cat := range cats {
		x := 14.0
		if i%2 == 1 {
			x = -14
		}
		out = append(out, content.Shop{
			ID:        fmt.Sprintf("shop-%d", i+1),
			Name:      fmt.Sprintf("Shop %d", i+1),
			Category:  cat,
			Status:    content.StatusActive,
			Position:  content.Position{X: x, Z: float64(-60 + 30*i)},
			ItemCount: 1,
			Items:     []content.Item{{Title: cat + " sampler", Description: "a little of everything " + cat}},
		})
	}
	return out
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	store.SeedShops(demoShops())
	now := func() time.Time { return time.Unix(1700000000, 0).UTC() }
	reg := session.NewRegistry(session.Config{Now: now})
	progress := memory.NewProgressionRepo(store)
	outcomes := memory.NewOutcomeRepo(store)
	rec := metricsinmem.NewRecorder()
	return testEnv{
		reg:     reg,
		metrics: rec,
		h: Handler{
			SessionUC: session.UseCase{Registry: reg, Progress: progress},
			FrameUC: frame.UseCase{
				Sessions:   reg,
				Controller: movement.NewController(collision.StreetLayout(), movement.DefaultParams()),
				Now:        now,
			},
			MissionUC: mission.UseCase{
				Sessions:  reg,
				Shops:     memory.NewShopRepo(store),
				Progress:  progress,
				Outcomes:  outcomes,
				TxManager: memory.NewTxManager(store),
				Metrics:   rec,
				Clock:     world.DefaultClock(),
				MinShops:  3,
				Now:       now,
			},
			HistoryUC: history.UseCase{Outcomes: outcomes},
			KPI:       rec,
		},
	}
}

func call(fn app.HandlerFunc, body string, headers map[string]string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	for k, v := range headers {
		ctx.Request.Header.Set(k, v)
	}
	fn(context.Background(), ctx)
	return ctx
}

func decodeBody(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal response: %v (body=%s)", err, ctx.Response.Body())
	}
	return out
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	body := decodeBody(t, ctx)
	e, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error object: %v", body)
	}
	code, _ := e["code"].(string)
	return code
}

func openSession(t *testing.T, env testEnv, playerID string) string {
	t.Helper()
	ctx := call(env.h.openSession, fmt.Sprintf(`{"player_id":%q}`, playerID), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("open status=%d body=%s", got, ctx.Response.Body())
	}
	id, _ := decodeBody(t, ctx)["session_id"].(string)
	if id == "" {
		t.Fatalf("missing session_id")
	}
	return id
}

func TestOpenSession_ReturnsSessionAndProgression(t *testing.T) {
	env := newTestEnv(t)
	ctx := call(env.h.openSession, `{"player_id":"p1"}`, nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("status mismatch: got=%d", got)
	}
	body := decodeBody(t, ctx)
	if body["player_id"] != "p1" {
		t.Fatalf("unexpected player id: %v", body["player_id"])
	}
	prog, _ := body["progression"].(map[string]any)
	if prog["level"] != float64(1) || prog["unlocked"] != float64(1) {
		t.Fatalf("unexpected progression: %v", prog)
	}
	if env.reg.Len() != 1 {
		t.Fatalf("expected one registered session, got %d", env.reg.Len())
	}
}

func TestOpenSession_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	ctx := call(env.h.openSession, `{"player_id":`, nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "invalid_json" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
}

func TestActivate_RejectsServerManagedFields(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")
	ctx := call(env.h.activate, fmt.Sprintf(`{"session_id":%q,"kind":"escape","seed":42}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "seed_managed_by_server" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
}

func TestActivate_BriefingThenBusy(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")

	ctx := call(env.h.activate, fmt.Sprintf(`{"session_id":%q,"kind":"escape"}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	var resp mission.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status.Phase != domain.PhaseBriefing || resp.Status.Kind != domain.KindEscape {
		t.Fatalf("unexpected status: %+v", resp.Status)
	}
	if len(resp.Notices) == 0 {
		t.Fatalf("expected activation notices")
	}

	ctx = call(env.h.activate, `{"kind":"hunt"}`, map[string]string{sessionIDHeader: id})
	if got := ctx.Response.StatusCode(); got != consts.StatusConflict {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "mission_busy" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
	if snap := env.metrics.Snapshot(); snap.MissionActivated != 1 || snap.RequestRejected != 1 {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
}

func TestAction_RejectedShapes(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"no active mission", fmt.Sprintf(`{"session_id":%q,"intent":{"type":"begin"}}`, id), consts.StatusConflict, "no_active_mission"},
		{"unknown intent", fmt.Sprintf(`{"session_id":%q,"intent":{"type":"fly"}}`, id), consts.StatusBadRequest, "bad_request"},
		{"bad params", fmt.Sprintf(`{"session_id":%q,"intent":{"type":"answer"}}`, id), consts.StatusBadRequest, "invalid_action_params"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := call(env.h.action, tc.body, nil)
			if got := ctx.Response.StatusCode(); got != tc.status {
				t.Fatalf("status mismatch: got=%d want=%d body=%s", got, tc.status, ctx.Response.Body())
			}
			body := decodeBody(t, ctx)
			if body["result_code"] != "REJECTED" {
				t.Fatalf("expected REJECTED result code: %v", body)
			}
			if got := errorCode(t, ctx); got != tc.code {
				t.Fatalf("error code mismatch: got=%q want=%q", got, tc.code)
			}
		})
	}
}

func TestAction_WrongKindIsNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")
	if ctx := call(env.h.activate, fmt.Sprintf(`{"session_id":%q,"kind":"hunt"}`, id), nil); ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("activate failed: %s", ctx.Response.Body())
	}
	ctx := call(env.h.action, fmt.Sprintf(`{"session_id":%q,"intent":{"type":"hack","terminal":0,"code":"1234"}}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusConflict {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	details, _ := body["error"].(map[string]any)["details"].(map[string]any)
	if details["intent"] != "hack" {
		t.Fatalf("expected intent in details: %v", body)
	}
}

func TestSessionID_MissingOrMismatched(t *testing.T) {
	env := newTestEnv(t)
	ctx := call(env.h.status, `{}`, nil)
	if got := errorCode(t, ctx); got != "missing_session_id" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
	ctx = call(env.h.status, `{"session_id":"a"}`, map[string]string{sessionIDHeader: "b"})
	if got := errorCode(t, ctx); got != "session_id_mismatch" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
	ctx = call(env.h.status, `{"session_id":"missing"}`, nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "session_not_found" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
}

func TestFrame_StepsKinematics(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")

	ctx := call(env.h.frame, fmt.Sprintf(`{"session_id":%q,"dt":0}`, id), nil)
	if got := errorCode(t, ctx); got != "bad_request" {
		t.Fatalf("error code mismatch: got=%q", got)
	}

	ctx = call(env.h.frame, fmt.Sprintf(`{"session_id":%q,"dt":0.016,"input":{"direction":{"x":0,"z":1}}}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	var resp frame.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Kinematics.Position.Z <= session.DefaultSpawn.Z {
		t.Fatalf("expected forward progress, got %+v", resp.Kinematics.Position)
	}
	if resp.Events == nil {
		t.Fatalf("events must be an array")
	}
}

func TestCloseSession_RemovesSession(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")
	ctx := call(env.h.closeSession, fmt.Sprintf(`{"session_id":%q}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d", got)
	}
	ctx = call(env.h.closeSession, fmt.Sprintf(`{"session_id":%q}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("second close should be 404, got=%d", got)
	}
}

func TestSelectLevel_Locked(t *testing.T) {
	env := newTestEnv(t)
	id := openSession(t, env, "p1")
	ctx := call(env.h.selectLevel, fmt.Sprintf(`{"session_id":%q,"level":3}`, id), nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusConflict {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "level_locked" {
		t.Fatalf("error code mismatch: got=%q", got)
	}
}

func TestHistory_QueryValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/history")
	env.h.history(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status mismatch: got=%d", got)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/history?player_id=p1&limit=5&kind=heist")
	env.h.history(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	var resp history.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Outcomes) != 0 || resp.Summary.Played != 0 {
		t.Fatalf("expected empty history: %+v", resp)
	}
}

func TestKPI(t *testing.T) {
	ctx := call(Handler{}.kpi, "", nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status mismatch: got=%d", got)
	}
	env := newTestEnv(t)
	ctx = call(env.h.kpi, "", nil)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if _, ok := decodeBody(t, ctx)["mission_activated"]; !ok {
		t.Fatalf("expected kpi counters: %s", ctx.Response.Body())
	}
}

func TestActions_ListsSupported(t *testing.T) {
	ctx := call(Handler{}.actions, "", nil)
	body := decodeBody(t, ctx)
	list, _ := body["actions"].([]any)
	if len(list) != len(mission.SupportedActions()) {
		t.Fatalf("unexpected actions: %v", body)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{mission.ErrCannotActivate, consts.StatusConflict, "cannot_activate"},
		{mission.ErrNothingToReplay, consts.StatusConflict, "nothing_to_replay"},
		{fmt.Errorf("generate: %w", content.ErrNotEnoughShops), consts.StatusConflict, "not_enough_shops"},
		{content.ErrNoEligibleShops, consts.StatusConflict, "not_enough_shops"},
		{session.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{history.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status mismatch: got=%d want=%d", tc.err, got, tc.status)
		}
		if got := errorCode(t, ctx); got != tc.code {
			t.Fatalf("%v: code mismatch: got=%q want=%q", tc.err, got, tc.code)
		}
	}
}

func TestCORSMiddleware_ShortCircuitsPreflight(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)
	corsMiddleware()(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNoContent {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if !ctx.IsAborted() {
		t.Fatalf("expected preflight to abort the chain")
	}
}
