package dsl

import "github.com/aretw0/screenwalk/pkg/domain"

// ScreenBuilder provides a fluent API for configuring a screen.
type ScreenBuilder struct {
	def domain.ScreenDef
}

// Marker sets the element whose existence proves the app is on this screen.
func (s *ScreenBuilder) Marker(sel domain.Selector) *ScreenBuilder {
	s.def.Marker = &sel
	return s
}

// Push adds a transition that opens target on top of this screen.
func (s *ScreenBuilder) Push(target domain.Screen, steps ...domain.Step) *ScreenBuilder {
	s.def.Transitions = append(s.def.Transitions, domain.Transition{
		Kind:  domain.TransitionPush,
		To:    target,
		Steps: steps,
	})
	return s
}

// Pop adds a transition that dismisses depth screens, this one included.
func (s *ScreenBuilder) Pop(depth int, steps ...domain.Step) *ScreenBuilder {
	s.def.Transitions = append(s.def.Transitions, domain.Transition{
		Kind:  domain.TransitionPop,
		Depth: depth,
		Steps: steps,
	})
	return s
}

// Reset adds a transition after which target is the only screen on the stack.
func (s *ScreenBuilder) Reset(target domain.Screen, steps ...domain.Step) *ScreenBuilder {
	s.def.Transitions = append(s.def.Transitions, domain.Transition{
		Kind:  domain.TransitionReset,
		To:    target,
		Steps: steps,
	})
	return s
}

// Build returns the underlying domain.ScreenDef.
func (s *ScreenBuilder) Build() domain.ScreenDef {
	def := s.def
	def.Transitions = append([]domain.Transition(nil), s.def.Transitions...)
	return def
}

// ActionBuilder provides a fluent API for configuring an action.
type ActionBuilder struct {
	def domain.ActionDef
}

// On sets the screens the action can be performed from.
func (a *ActionBuilder) On(hosts ...domain.Screen) *ActionBuilder {
	a.def.Hosts = append(a.def.Hosts, hosts...)
	return a
}

// Do sets an effect computed from the invocation's UserState.
func (a *ActionBuilder) Do(effect domain.Effect) *ActionBuilder {
	a.def.Effect = effect
	return a
}

// Steps sets a fixed effect.
func (a *ActionBuilder) Steps(steps ...domain.Step) *ActionBuilder {
	a.def.Effect = func(domain.UserState) ([]domain.Step, error) {
		return steps, nil
	}
	return a
}

// To sets the screens the app may land on. Without results the app stays on the host.
func (a *ActionBuilder) To(results ...domain.Screen) *ActionBuilder {
	a.def.Results = append(a.def.Results, results...)
	return a
}

// Build returns the underlying domain.ActionDef.
func (a *ActionBuilder) Build() domain.ActionDef {
	def := a.def
	def.Hosts = append([]domain.Screen(nil), a.def.Hosts...)
	def.Results = append([]domain.Screen(nil), a.def.Results...)
	return def
}
