package planner

import (
	"context"
	"log/slog"
)

// Stage names one step of a generate or regenerate call.
type Stage string

const (
	StageTemplateMatch Stage = "template_match"
	StageAICall        Stage = "ai_call"
	StageAIFallback    Stage = "ai_fallback"
	StageMerge         Stage = "merge"
	StageClamp         Stage = "clamp"
	StageValidation    Stage = "validation"
	StageAutoFix       Stage = "auto_fix"
	StageFinalize      Stage = "finalize"
)

// Event is emitted once per stage reached by a call.
type Event struct {
	Operation string // "generate" or "regenerate"
	Stage     Stage
	UserID    string
	PlanID    string
	Message   string
	Err       error
}

type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes every event to logger. Events carrying an error are
// logged at warn level, the rest at debug.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) Observe(ctx context.Context, ev Event) {
	attrs := []any{
		"op", ev.Operation,
		"stage", string(ev.Stage),
		"user_id", ev.UserID,
		"plan_id", ev.PlanID,
	}
	if ev.Err != nil {
		o.logger.WarnContext(ctx, ev.Message, append(attrs, "error", ev.Err)...)
		return
	}
	o.logger.DebugContext(ctx, ev.Message, attrs...)
}
