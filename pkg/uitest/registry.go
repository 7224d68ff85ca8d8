package uitest

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// TestFunc is the body of an acceptance test.
type TestFunc func(s *State)

// Test is a registered acceptance test case.
type Test struct {
	Name string
	Desc string
	Func TestFunc

	// LaunchArgs overrides the default launch arguments when set.
	LaunchArgs []string

	// Timeout bounds the whole case. Zero uses the runner default.
	Timeout time.Duration
}

// Registry manages the available tests.
type Registry struct {
	mu    sync.RWMutex
	tests map[string]*Test
	order []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tests: make(map[string]*Test),
	}
}

// Add registers a test. Names must be unique.
func (r *Registry) Add(t *Test) error {
	if t == nil || t.Name == "" || t.Func == nil {
		return fmt.Errorf("test needs a name and a body")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tests[t.Name]; ok {
		return fmt.Errorf("test %q already registered", t.Name)
	}
	r.tests[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Lookup returns the test registered under name.
func (r *Registry) Lookup(name string) (*Test, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tests[name]
	return t, ok
}

// Tests returns the registered tests in registration order.
func (r *Registry) Tests() []*Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Test, len(r.order))
	for i, name := range r.order {
		out[i] = r.tests[name]
	}
	return out
}

// Names returns the registered test names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// Default is the registry suites add themselves to.
var Default = NewRegistry()

// AddTest registers t in the default registry and panics on conflicts.
// Suites call it from init.
func AddTest(t *Test) {
	if err := Default.Add(t); err != nil {
		panic(err)
	}
}
