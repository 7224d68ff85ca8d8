package runtime

import (
	"context"
	"time"

	"github.com/aretw0/screenwalk/pkg/domain"
)

func (n *Navigator) emitScreenEnter(ctx context.Context, s domain.Screen) {
	if n.hooks.OnScreenEnter == nil {
		return
	}
	n.hooks.OnScreenEnter(ctx, &domain.ScreenEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScreenEnter},
		Screen:    s,
	})
}

func (n *Navigator) emitScreenLeave(ctx context.Context, s domain.Screen) {
	if n.hooks.OnScreenLeave == nil {
		return
	}
	n.hooks.OnScreenLeave(ctx, &domain.ScreenEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScreenLeave},
		Screen:    s,
	})
}

func (n *Navigator) emitActionStart(ctx context.Context, e *domain.ActionEvent) {
	if n.hooks.OnActionStart != nil {
		n.hooks.OnActionStart(ctx, e)
	}
}

func (n *Navigator) emitActionFinish(ctx context.Context, e *domain.ActionEvent) {
	if n.hooks.OnActionFinish != nil {
		n.hooks.OnActionFinish(ctx, e)
	}
}

func (n *Navigator) emitStep(ctx context.Context, e *domain.StepEvent) {
	if n.hooks.OnStep != nil {
		n.hooks.OnStep(ctx, e)
	}
}
