package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/aretw0/screenwalk/pkg/session"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/google/uuid"
)

// Runner runs acceptance tests sequentially on one device.
type Runner struct {
	driver   ports.Driver
	registry *uitest.Registry
	filter   []string
	sessions *session.Manager
	deviceID string
	store    ports.ReportStore
	metrics  *observability.Metrics
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	wait     wait.Options
	graph    *domain.Graph
	testPage string

	caseTimeout time.Duration
}

// New creates a runner driving the app through driver.
func New(driver ports.Driver, opts ...Option) *Runner {
	r := &Runner{
		driver:      driver,
		registry:    uitest.Default,
		logger:      logging.NewNop(),
		caseTimeout: DefaultCaseTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sessions == nil {
		r.sessions = session.NewManager(session.WithLogger(r.logger))
	}
	return r
}

// Selected returns the tests a run would execute, in registration order.
func (r *Runner) Selected() ([]*uitest.Test, error) {
	if len(r.filter) == 0 {
		return r.registry.Tests(), nil
	}

	want := make(map[string]bool, len(r.filter))
	for _, name := range r.filter {
		if _, ok := r.registry.Lookup(name); !ok {
			return nil, fmt.Errorf("no test named %q", name)
		}
		want[name] = true
	}

	var out []*uitest.Test
	for _, t := range r.registry.Tests() {
		if want[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Run executes the selected tests and returns their report. Test failures
// are part of the report; the error is reserved for the run itself failing.
func (r *Runner) Run(ctx context.Context) (*domain.Report, error) {
	tests, err := r.Selected()
	if err != nil {
		return nil, err
	}

	device, err := r.driver.Device(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe device: %w", err)
	}
	deviceID := r.deviceID
	if deviceID == "" {
		deviceID = device.Name
	}

	report := &domain.Report{
		ID:        uuid.NewString(),
		Device:    device,
		StartedAt: time.Now().UTC(),
	}

	err = r.sessions.WithLock(ctx, deviceID, func(ctx context.Context) error {
		for _, t := range tests {
			if ctx.Err() != nil {
				report.Results = append(report.Results, domain.CaseResult{
					Name:   t.Name,
					Status: domain.CaseSkipped,
					Errors: []string{ctx.Err().Error()},
				})
				continue
			}
			res := r.runCase(ctx, t)
			report.Results = append(report.Results, res)
			if r.metrics != nil {
				r.metrics.ObserveCase(res)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.FinishedAt = time.Now().UTC()

	r.logger.Info("suite finished",
		"report", report.ID,
		"device", device.Name,
		"passed", report.Count(domain.CasePassed),
		"failed", report.Count(domain.CaseFailed),
		"skipped", report.Count(domain.CaseSkipped),
	)

	if r.store != nil {
		if err := r.store.Save(ctx, report); err != nil {
			return report, fmt.Errorf("failed to save report %s: %w", report.ID, err)
		}
	}
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, t *uitest.Test) domain.CaseResult {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = r.caseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	result := domain.CaseResult{Name: t.Name, Status: domain.CasePassed}
	fail := func(format string, args ...any) domain.CaseResult {
		result.Status = domain.CaseFailed
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		result.Duration = time.Since(started)
		r.logger.Info("case failed", "case", t.Name, "err", result.Errors[0])
		return result
	}

	args := t.LaunchArgs
	if args == nil {
		args = domain.DefaultLaunchArguments()
	}
	if err := r.driver.Launch(ctx, args); err != nil {
		return fail("launch: %v", err)
	}
	defer func() {
		if err := r.driver.Terminate(context.Background()); err != nil {
			r.logger.Warn("failed to terminate app", "case", t.Name, "err", err)
		}
	}()

	hooks := r.hooks
	if r.metrics != nil {
		hooks = hooks.Merge(r.metrics.Hooks())
	}
	h := screenwalk.New(r.driver,
		screenwalk.WithGraph(r.graph),
		screenwalk.WithLogger(r.logger),
		screenwalk.WithLifecycleHooks(hooks),
		screenwalk.WithWaitOptions(r.wait),
	)
	if err := h.Start(ctx); err != nil {
		return fail("start: %v", err)
	}

	stateOpts := []uitest.StateOption{uitest.WithLogger(r.logger)}
	if r.testPage != "" {
		stateOpts = append(stateOpts, uitest.WithTestPageBase(r.testPage))
	}
	state := uitest.NewState(ctx, t.Name, h, stateOpts...)
	state.Run(t.Func)

	result.Logs = state.Logs()
	result.Duration = time.Since(started)
	if !state.Failed() {
		r.logger.Info("case passed", "case", t.Name, "duration", result.Duration)
		return result
	}

	result.Status = domain.CaseFailed
	result.Errors = state.Errors()
	descCtx, descCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer descCancel()
	if desc, err := r.driver.DebugDescription(descCtx); err == nil {
		result.Logs = append(result.Logs, desc)
	}
	r.logger.Info("case failed", "case", t.Name, "screen", h.Current(), "err", firstOr(result.Errors, "unknown"))
	return result
}

func firstOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}
