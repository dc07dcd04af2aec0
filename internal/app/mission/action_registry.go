package mission

import (
	"strings"

	domain "cityverse/internal/domain/mission"
	"cityverse/internal/domain/world"
)

type ActionType string

const (
	ActionBegin       ActionType = "begin"
	ActionEnterTarget ActionType = "enter_target"
	ActionReady       ActionType = "ready"
	ActionAnswer      ActionType = "answer"
	ActionInspect     ActionType = "inspect"
	ActionUseTool     ActionType = "use_tool"
	ActionCapture     ActionType = "capture"
	ActionHack        ActionType = "hack"
	ActionExtract     ActionType = "extract"
	ActionContact     ActionType = "contact"
)

// Intent is the host's request to act inside the running mission.
type Intent struct {
	Type      ActionType `json:"type"`
	Option    *int       `json:"option,omitempty"`
	Indicator *int       `json:"indicator,omitempty"`
	Tool      string     `json:"tool,omitempty"`
	On        bool       `json:"on,omitempty"`
	AgentID   string     `json:"agent_id,omitempty"`
	Terminal  *int       `json:"terminal,omitempty"`
	Code      string     `json:"code,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

type actionSpec struct {
	validate func(Intent) bool
	// kinds limits the action to some missions; nil allows every kind.
	kinds []domain.Kind
	event func(in Intent, player world.Point) domain.Event
}

func always(Intent) bool { return true }

var actionRegistry = map[ActionType]actionSpec{
	ActionBegin: {
		validate: always,
		event:    func(Intent, world.Point) domain.Event { return domain.Begin{} },
	},
	ActionEnterTarget: {
		validate: always,
		kinds:    []domain.Kind{domain.KindEscape, domain.KindHeist},
		event:    func(_ Intent, p world.Point) domain.Event { return domain.EnterTarget{Player: p} },
	},
	ActionReady: {
		validate: always,
		kinds:    []domain.Kind{domain.KindEscape},
		event:    func(Intent, world.Point) domain.Event { return domain.Ready{} },
	},
	ActionAnswer: {
		validate: func(in Intent) bool { return in.Option != nil && *in.Option >= 0 },
		kinds:    []domain.Kind{domain.KindEscape},
		event:    func(in Intent, _ world.Point) domain.Event { return domain.Answer{Option: *in.Option} },
	},
	ActionInspect: {
		validate: func(in Intent) bool { return in.Indicator != nil && *in.Indicator >= 0 },
		kinds:    []domain.Kind{domain.KindEscape},
		event:    func(in Intent, _ world.Point) domain.Event { return domain.Inspect{Indicator: *in.Indicator} },
	},
	ActionUseTool: {
		validate: func(in Intent) bool { return in.Tool != "" },
		kinds:    []domain.Kind{domain.KindHunt, domain.KindHeist},
		event: func(in Intent, p world.Point) domain.Event {
			return domain.UseTool{Tool: in.Tool, On: in.On, Player: p}
		},
	},
	ActionCapture: {
		validate: func(in Intent) bool { return in.AgentID != "" },
		kinds:    []domain.Kind{domain.KindHunt},
		event: func(in Intent, p world.Point) domain.Event {
			return domain.Capture{AgentID: in.AgentID, Player: p}
		},
	},
	ActionHack: {
		validate: func(in Intent) bool { return in.Terminal != nil && *in.Terminal >= 0 && in.Code != "" },
		kinds:    []domain.Kind{domain.KindHeist},
		event: func(in Intent, _ world.Point) domain.Event {
			return domain.Hack{Terminal: *in.Terminal, Code: in.Code}
		},
	},
	ActionExtract: {
		validate: always,
		kinds:    []domain.Kind{domain.KindHeist},
		event:    func(_ Intent, p world.Point) domain.Event { return domain.Extract{Player: p} },
	},
	ActionContact: {
		validate: func(in Intent) bool { return domain.ContactReason(domain.FailReason(in.Reason)) },
		event: func(in Intent, _ world.Point) domain.Event {
			return domain.Contact{Reason: domain.FailReason(in.Reason)}
		},
	},
}

func normalizeIntent(in Intent) Intent {
	in.Type = ActionType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.Tool = strings.ToLower(strings.TrimSpace(in.Tool))
	in.AgentID = strings.TrimSpace(in.AgentID)
	in.Code = strings.TrimSpace(in.Code)
	in.Reason = strings.ToLower(strings.TrimSpace(in.Reason))
	return in
}

func lookupAction(t ActionType) (actionSpec, bool) {
	spec, ok := actionRegistry[t]
	return spec, ok
}

func (s actionSpec) allows(k domain.Kind) bool {
	if s.kinds == nil {
		return true
	}
	for _, kind := range s.kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func SupportedActions() []ActionType {
	out := make([]ActionType, 0, len(actionRegistry))
	for _, t := range []ActionType{
		ActionBegin, ActionEnterTarget, ActionReady, ActionAnswer, ActionInspect,
		ActionUseTool, ActionCapture, ActionHack, ActionExtract, ActionContact,
	} {
		if _, ok := actionRegistry[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
