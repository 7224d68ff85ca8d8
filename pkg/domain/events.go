package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventScreenEnter  EventType = "screen_enter"
	EventScreenLeave  EventType = "screen_leave"
	EventActionStart  EventType = "action_start"
	EventActionFinish EventType = "action_finish"
	EventStep         EventType = "step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ScreenEvent represents entry or exit from a screen.
type ScreenEvent struct {
	EventBase
	Screen Screen `json:"screen"`
}

// ActionEvent represents an action invocation.
type ActionEvent struct {
	EventBase
	Action Action `json:"action"`
	Host   Screen `json:"host"`
	Result Screen `json:"result,omitempty"`
	Err    error  `json:"-"`
}

// StepEvent represents one primitive interaction sent to the driver.
type StepEvent struct {
	EventBase
	Screen   Screen        `json:"screen"`
	Step     Step          `json:"step"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnScreenEnter  func(context.Context, *ScreenEvent)
	OnScreenLeave  func(context.Context, *ScreenEvent)
	OnActionStart  func(context.Context, *ActionEvent)
	OnActionFinish func(context.Context, *ActionEvent)
	OnStep         func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnScreenEnter:  chain(h.OnScreenEnter, other.OnScreenEnter),
		OnScreenLeave:  chain(h.OnScreenLeave, other.OnScreenLeave),
		OnActionStart:  chain(h.OnActionStart, other.OnActionStart),
		OnActionFinish: chain(h.OnActionFinish, other.OnActionFinish),
		OnStep:         chain(h.OnStep, other.OnStep),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
