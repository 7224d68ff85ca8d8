package sim

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// FixtureTopSites is the prefilled database holding a thousand top sites.
const FixtureTopSites = "testBookmarksDatabase1000-browser.db"

// DefaultTopSites is the number of suggested sites on a fresh profile.
const DefaultTopSites = 5

var fixtures = map[string]int{
	FixtureTopSites: 1000,
}

type view int

const (
	viewURLBar view = iota + 1
	viewTabTray
	viewMenu
	viewSettings
	viewHomeSettings
	viewRowsPicker
)

type panel int

const (
	panelTopSites panel = iota
	panelBookmarks
	panelHistory
)

type homeMode int

const (
	homeFirefox homeMode = iota
	homeBookmarks
	homeHistory
	homeCustom
)

// historyFixedRows are the history panel rows shown regardless of history:
// clear recent history, recently closed and synced devices.
const historyFixedRows = 3

// App is an in-memory browser implementing ports.Driver. It models only what
// the home page settings tests observe and is meant as a test double.
type App struct {
	mu     sync.Mutex
	logger *slog.Logger
	device domain.DeviceInfo

	launched   bool
	launchArgs []string
	topSites   int

	// Open tab: a loaded page, or the home panels when url is empty.
	url   string
	panel panel

	overlays []view

	addressText string
	homeMode    homeMode
	homePage    string
	homeField   string
	editing     bool
	pasteMenu   bool
	rows        int

	bookmarks []string
	history   []string
	clipboard string
}

// Option configures the simulated app.
type Option func(*App)

// WithDevice sets the simulated device.
func WithDevice(d domain.DeviceInfo) Option {
	return func(a *App) {
		a.device = d
	}
}

// WithLogger sets a structured logger that traces every interaction.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a simulated browser on a phone in portrait.
func New(opts ...Option) *App {
	a := &App{
		logger: logging.NewNop(),
		device: Phone,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Phone and Tablet are the devices the simulator knows how to lay out.
var (
	Phone  = domain.DeviceInfo{Name: "Simulated iPhone", Idiom: domain.IdiomPhone, Orientation: domain.Portrait}
	Tablet = domain.DeviceInfo{Name: "Simulated iPad", Idiom: domain.IdiomTablet, Orientation: domain.Portrait}
)

var _ ports.Driver = (*App)(nil)

// Launch starts the app from a fresh profile.
func (a *App) Launch(_ context.Context, args []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	topSites := DefaultTopSites
	for _, arg := range args {
		name, ok := strings.CutPrefix(arg, domain.LaunchLoadDatabasePrefix)
		if !ok {
			continue
		}
		n, known := fixtures[name]
		if !known {
			return fmt.Errorf("unknown fixture database %q", name)
		}
		topSites = n
	}

	a.launched = true
	a.launchArgs = slices.Clone(args)
	a.topSites = topSites
	a.url, a.panel, a.overlays = "", panelTopSites, nil
	a.addressText = ""
	a.homeMode, a.homePage, a.homeField = homeFirefox, "", ""
	a.editing, a.pasteMenu = false, false
	a.rows = domain.DefaultTopSitesRows
	a.bookmarks, a.history = nil, nil
	a.logger.Debug("app launched", "args", args, "top_sites", topSites)
	return nil
}

// LaunchArgs returns the arguments of the last launch.
func (a *App) LaunchArgs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.launchArgs)
}

func (a *App) Terminate(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.launched = false
	return nil
}

func (a *App) Query(_ context.Context, sel domain.Selector) ([]domain.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return nil, domain.ErrNotLaunched
	}
	nodes := find(a.tree(), sel)
	out := make([]domain.Element, len(nodes))
	for i, n := range nodes {
		out[i] = n.el
	}
	return out, nil
}

func (a *App) Tap(_ context.Context, sel domain.Selector) error {
	return a.interact(sel, func(n *node) error {
		a.logger.Debug("tap", "element", sel.String())
		if n.tap != nil {
			n.tap()
		}
		return nil
	})
}

func (a *App) TypeText(_ context.Context, sel domain.Selector, text string) error {
	return a.interact(sel, func(n *node) error {
		if n.typeText == nil {
			return fmt.Errorf("%s does not accept text", sel)
		}
		a.logger.Debug("type", "element", sel.String(), "text", text)
		n.typeText(text)
		return nil
	})
}

func (a *App) Press(_ context.Context, sel domain.Selector, d time.Duration) error {
	return a.interact(sel, func(n *node) error {
		a.logger.Debug("press", "element", sel.String(), "duration", d)
		if n.press != nil {
			n.press()
		}
		return nil
	})
}

func (a *App) SetClipboard(_ context.Context, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clipboard = text
	return nil
}

func (a *App) SetOrientation(_ context.Context, o domain.Orientation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.device.Orientation = o
	return nil
}

func (a *App) Device(context.Context) (domain.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.device, nil
}

func (a *App) DebugDescription(context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return "", domain.ErrNotLaunched
	}
	var b strings.Builder
	describe(&b, a.tree(), 0)
	return b.String(), nil
}

// interact runs fn on the first node matching sel.
func (a *App) interact(sel domain.Selector, fn func(*node) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return domain.ErrNotLaunched
	}
	nodes := find(a.tree(), sel)
	if len(nodes) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, sel)
	}
	return fn(nodes[0])
}
