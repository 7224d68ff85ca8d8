package uitest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// State is what a test body sees: the navigator, the app and the outcome of
// the case so far. Failures stop the body the same way testing.T.FailNow does.
type State struct {
	ctx      context.Context
	name     string
	harness  *screenwalk.Harness
	logger   *slog.Logger
	testPage string

	mu     sync.Mutex
	failed bool
	errs   []string
	logs   []string
	device *domain.DeviceInfo
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger mirrors case logs to logger.
func WithLogger(logger *slog.Logger) StateOption {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTestPageBase sets the address test pages are served from.
func WithTestPageBase(base string) StateOption {
	return func(s *State) {
		s.testPage = strings.TrimSuffix(base, "/")
	}
}

// NewState creates the state of one case. The harness must already be started.
func NewState(ctx context.Context, name string, h *screenwalk.Harness, opts ...StateOption) *State {
	s := &State{
		ctx:      ctx,
		name:     name,
		harness:  h,
		logger:   logging.NewNop(),
		testPage: "http://localhost:6571/test-fixture",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes fn on its own goroutine and waits for it, so that Fatal can
// stop the body without stopping the caller.
func (s *State) Run(fn TestFunc) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				s.record(fmt.Sprintf("panic: %v", r))
			}
		}()
		fn(s)
	}()
	<-done

	if errors.Is(s.ctx.Err(), context.DeadlineExceeded) {
		s.record("case timed out")
	}
}

// Context returns the context bounding the case.
func (s *State) Context() context.Context { return s.ctx }

// Name returns the case name.
func (s *State) Name() string { return s.name }

// Nav returns the navigator.
func (s *State) Nav() *screenwalk.Harness { return s.harness }

// App returns the driver of the application under test.
func (s *State) App() ports.Driver { return s.harness.Driver() }

// UserState returns the configuration every action starts from. Bodies copy
// and adjust it before passing it to PerformAction.
func (s *State) UserState() domain.UserState { return domain.DefaultUserState() }

// TestPage returns the address of a page served by the test web server.
func (s *State) TestPage(name string) string {
	return s.testPage + "/" + strings.TrimPrefix(name, "/")
}

// Device describes the device the app runs on.
func (s *State) Device() domain.DeviceInfo {
	s.mu.Lock()
	cached := s.device
	s.mu.Unlock()
	if cached != nil {
		return *cached
	}

	d, err := s.App().Device(s.ctx)
	if err != nil {
		s.Fatalf("describe device: %v", err)
	}
	s.mu.Lock()
	s.device = &d
	s.mu.Unlock()
	return d
}

// IsTablet reports whether the app uses the tablet layout.
func (s *State) IsTablet() bool { return s.Device().IsTablet() }

// Log records a message in the case log.
func (s *State) Log(args ...any) {
	s.log(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Logf records a formatted message in the case log.
func (s *State) Logf(format string, args ...any) {
	s.log(fmt.Sprintf(format, args...))
}

func (s *State) log(msg string) {
	s.mu.Lock()
	s.logs = append(s.logs, msg)
	s.mu.Unlock()
	s.logger.Debug(msg, "case", s.name)
}

// Error marks the case failed and continues.
func (s *State) Error(args ...any) {
	s.record(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Errorf marks the case failed and continues.
func (s *State) Errorf(format string, args ...any) {
	s.record(fmt.Sprintf(format, args...))
}

// Fatal marks the case failed and stops the body.
func (s *State) Fatal(args ...any) {
	s.Error(args...)
	s.FailNow()
}

// Fatalf marks the case failed and stops the body.
func (s *State) Fatalf(format string, args ...any) {
	s.Errorf(format, args...)
	s.FailNow()
}

// FailNow stops the body. It must be called from the body's goroutine.
func (s *State) FailNow() {
	s.mu.Lock()
	s.failed = true
	s.mu.Unlock()
	goruntime.Goexit()
}

// Helper is a no-op kept for the testify TestingT interface.
func (s *State) Helper() {}

func (s *State) record(msg string) {
	s.mu.Lock()
	s.failed = true
	s.errs = append(s.errs, msg)
	s.mu.Unlock()
	s.logger.Debug("case failure", "case", s.name, "err", msg)
}

// Failed reports whether the case failed.
func (s *State) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Errors returns the failure messages, in order.
func (s *State) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errs...)
}

// Logs returns the case log, in order.
func (s *State) Logs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logs...)
}

func (s *State) waitOptions() wait.Options {
	return s.harness.WaitOptions()
}
