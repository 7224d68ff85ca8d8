package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// settlePolls is how many consecutive polls an unchanged candidate marker
// must stay the only one present before an action is taken to have left the
// app where it was.
const settlePolls = 4

// Navigator walks the screen graph against a live application.
// It tracks the navigation stack it believes the app is showing; the top of
// the stack is the current screen.
//
// Operations are serialized by op. The stack has its own lock, so lifecycle
// hooks may call Current and Stack, but not operations that drive the app.
type Navigator struct {
	op     sync.Mutex
	mu     sync.RWMutex
	graph  *domain.Graph
	driver ports.Driver
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	wait   wait.Options
	stack  []domain.Screen
}

// NewNavigator creates a navigator positioned on the graph's launch screen.
func NewNavigator(graph *domain.Graph, driver ports.Driver, opts ...Option) *Navigator {
	n := &Navigator{
		graph:  graph,
		driver: driver,
		logger: logging.NewNop(),
		stack:  []domain.Screen{graph.Launch},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var _ ports.Navigator = (*Navigator)(nil)

// Graph returns the graph being walked.
func (n *Navigator) Graph() *domain.Graph {
	return n.graph
}

// Current returns the screen the navigator believes the app is on.
func (n *Navigator) Current() domain.Screen {
	return n.top()
}

// Stack returns a copy of the navigation stack, bottom first.
func (n *Navigator) Stack() []domain.Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]domain.Screen(nil), n.stack...)
}

// Start waits for the launch screen to show up and announces it.
func (n *Navigator) Start(ctx context.Context) error {
	n.op.Lock()
	defer n.op.Unlock()

	n.mu.Lock()
	n.stack = []domain.Screen{n.graph.Launch}
	n.mu.Unlock()
	n.emitScreenEnter(ctx, n.graph.Launch)
	return n.awaitScreen(ctx, n.graph.Launch)
}

// NowAt tells the navigator the app moved to s outside of the graph, for
// example after a test tapped an element directly.
func (n *Navigator) NowAt(s domain.Screen) {
	n.op.Lock()
	defer n.op.Unlock()
	n.move(context.Background(), []domain.Screen{s})
}

// Path returns the transitions Goto would follow to reach target.
func (n *Navigator) Path(target domain.Screen) ([]domain.Transition, error) {
	n.op.Lock()
	defer n.op.Unlock()

	hops, err := n.plan(target.String(), func(s domain.Screen) bool { return s == target })
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transition, len(hops))
	for i, h := range hops {
		out[i] = h.transition
	}
	return out, nil
}

// Goto drives the app along the shortest path to target.
func (n *Navigator) Goto(ctx context.Context, target domain.Screen) error {
	n.op.Lock()
	defer n.op.Unlock()

	if _, ok := n.graph.Screen(target); !ok {
		return fmt.Errorf("%w: %s is not part of the graph", domain.ErrNoPath, target)
	}
	hops, err := n.plan(target.String(), func(s domain.Screen) bool { return s == target })
	if err != nil {
		return err
	}
	return n.walk(ctx, hops)
}

// PerformAction walks to the nearest screen hosting action, then runs the
// action with the given configuration and moves to the screen it lands on.
func (n *Navigator) PerformAction(ctx context.Context, action domain.Action, state domain.UserState) error {
	n.op.Lock()
	defer n.op.Unlock()

	def, ok := n.graph.Action(action)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAction, action)
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}

	hops, err := n.plan(action.String(), func(s domain.Screen) bool { return contains(def.Hosts, s) })
	if err != nil {
		return fmt.Errorf("%w: %s from %s", domain.ErrActionUnavailable, action, n.top())
	}
	if err := n.walk(ctx, hops); err != nil {
		return err
	}

	host := n.top()
	event := &domain.ActionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventActionStart},
		Action:    action,
		Host:      host,
	}
	n.emitActionStart(ctx, event)
	n.logger.Debug("performing action", "action", action, "host", host)

	result, err := n.runAction(ctx, def, host, state)

	finish := *event
	finish.Timestamp = time.Now()
	finish.Type = domain.EventActionFinish
	finish.Result = result
	finish.Err = err
	n.emitActionFinish(ctx, &finish)

	if err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}
	return nil
}

// OpenURL loads url in the current tab.
func (n *Navigator) OpenURL(ctx context.Context, url string) error {
	state := domain.DefaultUserState()
	state.URL = url
	return n.PerformAction(ctx, domain.LoadURL, state)
}

func (n *Navigator) runAction(ctx context.Context, def *domain.ActionDef, host domain.Screen, state domain.UserState) (domain.Screen, error) {
	steps, err := def.Effect(state)
	if err != nil {
		return host, err
	}

	// With several possible outcomes, remember what was on screen before the
	// effect so a marker left over from the host is not taken for the result.
	var before map[domain.Screen]bool
	if len(def.Results) > 1 {
		if before, err = n.present(ctx, def.Results); err != nil {
			return host, err
		}
	}

	for _, st := range steps {
		if err := n.exec(ctx, host, st); err != nil {
			return host, err
		}
	}

	switch len(def.Results) {
	case 0:
		return host, n.awaitScreen(ctx, host)
	case 1:
		result := def.Results[0]
		n.move(ctx, []domain.Screen{result})
		return result, n.awaitScreen(ctx, result)
	}

	result, err := n.observe(ctx, def.Results, before)
	if err != nil {
		return host, err
	}
	n.move(ctx, []domain.Screen{result})
	return result, nil
}

// hop is one transition taken from a screen.
type hop struct {
	from       domain.Screen
	transition domain.Transition
}

type frontier struct {
	stack []domain.Screen
	path  []hop
}

// plan runs a breadth-first search over navigation stacks, starting from the
// current one, until a stack whose top satisfies goal is found.
func (n *Navigator) plan(goalName string, goal func(domain.Screen) bool) ([]hop, error) {
	start := n.Stack()
	if goal(start[len(start)-1]) {
		return nil, nil
	}

	// Stacks deeper than this only repeat screens already on them.
	maxDepth := len(start) + len(n.graph.Screens)
	visited := map[string]bool{formatStack(start): true}
	queue := []frontier{{stack: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		top := cur.stack[len(cur.stack)-1]

		def, ok := n.graph.Screen(top)
		if !ok {
			continue
		}
		for _, t := range def.Transitions {
			next, ok := t.Apply(cur.stack)
			if !ok || len(next) > maxDepth {
				continue
			}
			key := formatStack(next)
			if visited[key] {
				continue
			}
			visited[key] = true
			to := next[len(next)-1]

			path := make([]hop, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, hop{from: top, transition: t})

			if goal(to) {
				return path, nil
			}
			queue = append(queue, frontier{stack: next, path: path})
		}
	}
	return nil, fmt.Errorf("%w: %s from %s", domain.ErrNoPath, goalName, n.top())
}

func (n *Navigator) walk(ctx context.Context, hops []hop) error {
	for _, h := range hops {
		stack := n.Stack()
		next, ok := h.transition.Apply(stack)
		if !ok {
			return fmt.Errorf("%w: stack %s cannot %s", domain.ErrNoPath, formatStack(stack), h.transition.Kind)
		}
		n.logger.Debug("navigating", "from", h.from, "to", next[len(next)-1], "kind", h.transition.Kind)

		for _, st := range h.transition.Steps {
			if err := n.exec(ctx, h.from, st); err != nil {
				return err
			}
		}
		n.move(ctx, next)
		if err := n.awaitScreen(ctx, n.top()); err != nil {
			return err
		}
	}
	return nil
}

// exec sends one step to the driver. Interactions first wait for their
// target to exist, the way a user would wait for it to appear.
func (n *Navigator) exec(ctx context.Context, screen domain.Screen, st domain.Step) error {
	started := time.Now()
	err := n.execStep(ctx, st)

	n.emitStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
		Screen:    screen,
		Step:      st,
		Duration:  time.Since(started),
		Err:       err,
	})
	if err != nil {
		return &StepError{Screen: screen, Step: st, Err: err}
	}
	return nil
}

func (n *Navigator) execStep(ctx context.Context, st domain.Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch st.Kind {
	case domain.StepTap:
		if err := n.exists(ctx, st.Target); err != nil {
			return err
		}
		return n.driver.Tap(ctx, st.Target)
	case domain.StepTypeText:
		if err := n.exists(ctx, st.Target); err != nil {
			return err
		}
		return n.driver.TypeText(ctx, st.Target, st.Text)
	case domain.StepPress:
		if err := n.exists(ctx, st.Target); err != nil {
			return err
		}
		return n.driver.Press(ctx, st.Target, st.Duration)
	case domain.StepWaitExists:
		return n.exists(ctx, st.Target)
	case domain.StepWaitValueContains:
		return wait.Until(ctx, n.wait, func(ctx context.Context) (bool, error) {
			els, err := n.driver.Query(ctx, st.Target)
			if err != nil {
				return false, err
			}
			return len(els) > 0 && strings.Contains(els[0].Value, st.Text), nil
		})
	default:
		return fmt.Errorf("unsupported step kind %s", st.Kind)
	}
}

func (n *Navigator) exists(ctx context.Context, sel domain.Selector) error {
	return wait.Until(ctx, n.wait, func(ctx context.Context) (bool, error) {
		els, err := n.driver.Query(ctx, sel)
		return len(els) > 0, err
	})
}

// awaitScreen checks that the app actually shows s.
func (n *Navigator) awaitScreen(ctx context.Context, s domain.Screen) error {
	def, ok := n.graph.Screen(s)
	if !ok || def.Marker == nil {
		return nil
	}
	if err := n.exists(ctx, *def.Marker); err != nil {
		return &MarkerError{Screen: s, Marker: *def.Marker, Err: err}
	}
	return nil
}

// present reports which of the candidate screens currently show their marker.
func (n *Navigator) present(ctx context.Context, candidates []domain.Screen) (map[domain.Screen]bool, error) {
	out := make(map[domain.Screen]bool, len(candidates))
	for _, c := range candidates {
		def, ok := n.graph.Screen(c)
		if !ok || def.Marker == nil {
			continue
		}
		els, err := n.driver.Query(ctx, *def.Marker)
		if err != nil {
			return nil, err
		}
		if len(els) > 0 {
			out[c] = true
		}
	}
	return out, nil
}

// observe waits until the app settles on one of the candidate screens.
// A marker absent from before, or one that vanished and came back, is taken
// at once. A marker that was already showing is taken only once it has stayed
// the only one for settlePolls polls.
func (n *Navigator) observe(ctx context.Context, candidates []domain.Screen, before map[domain.Screen]bool) (domain.Screen, error) {
	stale := make(map[domain.Screen]bool, len(before))
	for c, ok := range before {
		stale[c] = ok
	}

	var found domain.Screen
	stable := 0
	err := wait.Until(ctx, n.wait, func(ctx context.Context) (bool, error) {
		now, err := n.present(ctx, candidates)
		if err != nil {
			return false, err
		}
		for c := range stale {
			if !now[c] {
				stale[c] = false
			}
		}

		var settled domain.Screen
		for _, c := range candidates {
			if !now[c] {
				continue
			}
			if !stale[c] {
				found = c
				return true, nil
			}
			if settled == domain.ScreenUnknown {
				settled = c
			}
		}

		if settled == domain.ScreenUnknown {
			stable = 0
			return false, nil
		}
		stable++
		if stable >= settlePolls {
			found = settled
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return domain.ScreenUnknown, fmt.Errorf("none of %s appeared: %w", formatStack(candidates), err)
	}
	return found, nil
}

func (n *Navigator) move(ctx context.Context, next []domain.Screen) {
	n.mu.Lock()
	prev := topOf(n.stack)
	n.stack = next
	cur := topOf(n.stack)
	n.mu.Unlock()

	if cur != prev {
		n.emitScreenLeave(ctx, prev)
		n.emitScreenEnter(ctx, cur)
	}
}

func (n *Navigator) top() domain.Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return topOf(n.stack)
}

func topOf(stack []domain.Screen) domain.Screen {
	if len(stack) == 0 {
		return domain.ScreenUnknown
	}
	return stack[len(stack)-1]
}

func contains(list []domain.Screen, s domain.Screen) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func formatStack(stack []domain.Screen) string {
	names := make([]string, len(stack))
	for i, s := range stack {
		names[i] = s.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
