package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// LoggingHooks logs navigator events at debug level, failures at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnScreenEnter: func(ctx context.Context, e *domain.ScreenEvent) {
			logger.DebugContext(ctx, "screen_enter", "screen", e.Screen)
		},
		OnScreenLeave: func(ctx context.Context, e *domain.ScreenEvent) {
			logger.DebugContext(ctx, "screen_leave", "screen", e.Screen)
		},
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "action_start", "action", e.Action, "host", e.Host)
		},
		OnActionFinish: func(ctx context.Context, e *domain.ActionEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "action_failed", "action", e.Action, "host", e.Host, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "action_finish", "action", e.Action, "result", e.Result)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "step_failed", "screen", e.Screen, "step", e.Step.String(), "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "step", "screen", e.Screen, "step", e.Step.String(), "duration", e.Duration)
		},
	}
}
