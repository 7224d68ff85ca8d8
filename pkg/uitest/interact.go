package uitest

import (
	"context"
	"strings"
	"time"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
)

// Goto drives the app to screen.
func (s *State) Goto(screen domain.Screen) {
	if err := s.harness.Goto(s.ctx, screen); err != nil {
		s.Fatalf("goto %s: %v", screen, err)
	}
}

// PerformAction runs action with the given configuration.
func (s *State) PerformAction(action domain.Action, state domain.UserState) {
	if err := s.harness.PerformAction(s.ctx, action, state); err != nil {
		s.Fatalf("perform %s: %v", action, err)
	}
}

// OpenURL loads url in the current tab.
func (s *State) OpenURL(url string) {
	if err := s.harness.OpenURL(s.ctx, url); err != nil {
		s.Fatalf("open %s: %v", url, err)
	}
}

// NowAt tells the navigator the body moved the app to screen by hand.
func (s *State) NowAt(screen domain.Screen) {
	s.harness.NowAt(screen)
}

// Tap waits for the element and taps it.
func (s *State) Tap(sel domain.Selector) {
	s.WaitForExistence(sel)
	if err := s.App().Tap(s.ctx, sel); err != nil {
		s.Fatalf("tap %s: %v", sel, err)
	}
}

// TypeText waits for the element and types text into it.
func (s *State) TypeText(sel domain.Selector, text string) {
	s.WaitForExistence(sel)
	if err := s.App().TypeText(s.ctx, sel, text); err != nil {
		s.Fatalf("type into %s: %v", sel, err)
	}
}

// Press waits for the element and long-presses it for d.
func (s *State) Press(sel domain.Selector, d time.Duration) {
	s.WaitForExistence(sel)
	if err := s.App().Press(s.ctx, sel, d); err != nil {
		s.Fatalf("press %s: %v", sel, err)
	}
}

// SetClipboard replaces the device pasteboard.
func (s *State) SetClipboard(text string) {
	if err := s.App().SetClipboard(s.ctx, text); err != nil {
		s.Fatalf("set clipboard: %v", err)
	}
}

// SetOrientation rotates the device.
func (s *State) SetOrientation(o domain.Orientation) {
	if err := s.App().SetOrientation(s.ctx, o); err != nil {
		s.Fatalf("set orientation %s: %v", o, err)
	}
	s.mu.Lock()
	s.device = nil
	s.mu.Unlock()
}

// Query returns the elements currently matching sel.
func (s *State) Query(sel domain.Selector) []domain.Element {
	els, err := s.App().Query(s.ctx, sel)
	if err != nil {
		s.Fatalf("query %s: %v", sel, err)
	}
	return els
}

// Exists reports whether sel currently matches anything.
func (s *State) Exists(sel domain.Selector) bool {
	return len(s.Query(sel)) > 0
}

// Count returns how many elements currently match sel.
func (s *State) Count(sel domain.Selector) int {
	return len(s.Query(sel))
}

// Element returns the first element matching sel, failing the case if none does.
func (s *State) Element(sel domain.Selector) domain.Element {
	els := s.Query(sel)
	if len(els) == 0 {
		s.Fatalf("%s does not exist", sel)
	}
	return els[0]
}

// WaitForExistence polls until sel matches. An optional timeout overrides
// the harness default.
func (s *State) WaitForExistence(sel domain.Selector, timeout ...time.Duration) {
	s.waitFor(sel, timeout, "exist", func(els []domain.Element) bool {
		return len(els) > 0
	})
}

// WaitForValueContains polls until the value of sel contains value.
func (s *State) WaitForValueContains(sel domain.Selector, value string, timeout ...time.Duration) {
	s.waitFor(sel, timeout, "contain "+value, func(els []domain.Element) bool {
		return len(els) > 0 && strings.Contains(els[0].Value, value)
	})
}

// WaitForTabsButton waits for the tabs button of the current layout.
func (s *State) WaitForTabsButton() {
	s.WaitForExistence(domain.Button(browser.TabsButton(s.Device())))
}

// WaitUntilPageLoad waits for the stop button to turn back into reload.
func (s *State) WaitUntilPageLoad() {
	sel := domain.Button(browser.IDStopReloadButton)
	s.waitFor(sel, nil, "finish loading", func(els []domain.Element) bool {
		return len(els) > 0 && els[0].Label == browser.LabelReload
	})
}

func (s *State) waitFor(sel domain.Selector, timeout []time.Duration, what string, ok func([]domain.Element) bool) {
	opts := s.waitOptions()
	if len(timeout) > 0 {
		opts.Timeout = timeout[0]
	}
	err := wait.Until(s.ctx, opts, func(ctx context.Context) (bool, error) {
		els, err := s.App().Query(ctx, sel)
		if err != nil {
			return false, err
		}
		return ok(els), nil
	})
	if err != nil {
		s.Fatalf("%s did not %s: %v", sel, what, err)
	}
}
