package runtime

import (
	"log/slog"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets a custom structured logger for the navigator.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Hooks run on the
// goroutine driving the app; they may read Current and Stack but must not
// call Goto, PerformAction, OpenURL, NowAt, Start or Path.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithWaitOptions bounds every poll the navigator makes against the app.
func WithWaitOptions(opts wait.Options) Option {
	return func(n *Navigator) {
		n.wait = opts
	}
}
