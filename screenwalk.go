package screenwalk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/screenwalk/internal/runtime"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// Version is the harness release.
const Version = "0.3.0"

// ErrNotStarted is returned when the harness is used before Start.
var ErrNotStarted = errors.New("harness not started")

// Harness is the high-level entry point: a navigator over the browser graph
// bound to a driver.
type Harness struct {
	driver ports.Driver
	graph  *domain.Graph
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	wait   wait.Options
	nav    *runtime.Navigator
}

// Option configures the Harness.
type Option func(*Harness)

// WithGraph replaces the browser graph.
func WithGraph(g *domain.Graph) Option {
	return func(h *Harness) {
		h.graph = g
	}
}

// WithLogger sets a custom structured logger for the navigator.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(h *Harness) {
		h.hooks = hooks
	}
}

// WithWaitOptions bounds every poll against the app.
func WithWaitOptions(opts wait.Options) Option {
	return func(h *Harness) {
		h.wait = opts
	}
}

// New creates a harness. Start must be called once the app is launched.
func New(driver ports.Driver, opts ...Option) *Harness {
	h := &Harness{driver: driver}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start positions a fresh navigator on the launch screen. Unless a graph was
// given, the browser graph is laid out for the driver's device.
func (h *Harness) Start(ctx context.Context) error {
	g := h.graph
	if g == nil {
		device, err := h.driver.Device(ctx)
		if err != nil {
			return fmt.Errorf("failed to describe device: %w", err)
		}
		g, err = browser.NewGraph(device)
		if err != nil {
			return err
		}
	}

	h.nav = runtime.NewNavigator(g, h.driver,
		runtime.WithLogger(h.logger),
		runtime.WithLifecycleHooks(h.hooks),
		runtime.WithWaitOptions(h.wait),
	)
	return h.nav.Start(ctx)
}

// Driver returns the driver the harness talks to.
func (h *Harness) Driver() ports.Driver {
	return h.driver
}

// WaitOptions returns the poll bounds used by the harness.
func (h *Harness) WaitOptions() wait.Options {
	return h.wait
}

// Graph returns the graph being walked, or nil before Start.
func (h *Harness) Graph() *domain.Graph {
	if h.nav == nil {
		return h.graph
	}
	return h.nav.Graph()
}

// Current returns the screen the navigator believes the app is on.
func (h *Harness) Current() domain.Screen {
	if h.nav == nil {
		return domain.ScreenUnknown
	}
	return h.nav.Current()
}

// Stack returns the navigation stack, bottom first.
func (h *Harness) Stack() []domain.Screen {
	if h.nav == nil {
		return nil
	}
	return h.nav.Stack()
}

// Goto drives the app to target.
func (h *Harness) Goto(ctx context.Context, target domain.Screen) error {
	if h.nav == nil {
		return ErrNotStarted
	}
	return h.nav.Goto(ctx, target)
}

// PerformAction runs action with state from the nearest screen hosting it.
func (h *Harness) PerformAction(ctx context.Context, action domain.Action, state domain.UserState) error {
	if h.nav == nil {
		return ErrNotStarted
	}
	return h.nav.PerformAction(ctx, action, state)
}

// OpenURL loads url in the current tab.
func (h *Harness) OpenURL(ctx context.Context, url string) error {
	if h.nav == nil {
		return ErrNotStarted
	}
	return h.nav.OpenURL(ctx, url)
}

// NowAt tells the navigator the app moved to s outside the graph.
func (h *Harness) NowAt(s domain.Screen) {
	if h.nav != nil {
		h.nav.NowAt(s)
	}
}

// Path returns the transitions Goto would follow to reach target.
func (h *Harness) Path(target domain.Screen) ([]domain.Transition, error) {
	if h.nav == nil {
		return nil, ErrNotStarted
	}
	return h.nav.Path(target)
}

var _ ports.Navigator = (*Harness)(nil)
