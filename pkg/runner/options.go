package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/aretw0/screenwalk/pkg/session"
	"github.com/aretw0/screenwalk/pkg/uitest"
)

// DefaultCaseTimeout bounds a case that sets no timeout of its own.
const DefaultCaseTimeout = 2 * time.Minute

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithRegistry selects the tests to run from. Defaults to uitest.Default.
func WithRegistry(reg *uitest.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithFilter restricts the run to the named tests.
func WithFilter(names ...string) Option {
	return func(r *Runner) {
		r.filter = append(r.filter, names...)
	}
}

// WithSessions shares a device lease manager between runners.
func WithSessions(m *session.Manager) Option {
	return func(r *Runner) {
		r.sessions = m
	}
}

// WithDeviceID overrides the lease key, which defaults to the device name.
func WithDeviceID(id string) Option {
	return func(r *Runner) {
		r.deviceID = id
	}
}

// WithStore configures where reports are persisted.
func WithStore(store ports.ReportStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithMetrics records navigator events and case outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks adds navigator hooks to every case.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithWaitOptions bounds every poll against the app.
func WithWaitOptions(opts wait.Options) Option {
	return func(r *Runner) {
		r.wait = opts
	}
}

// WithCaseTimeout sets the default timeout of a case.
func WithCaseTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.caseTimeout = d
		}
	}
}

// WithTestPageBase sets the address test pages are served from.
func WithTestPageBase(base string) Option {
	return func(r *Runner) {
		r.testPage = base
	}
}

// WithGraph replaces the browser graph.
func WithGraph(g *domain.Graph) Option {
	return func(r *Runner) {
		r.graph = g
	}
}
