package domain

import "sort"

// Effect renders the steps of an action for a given configuration.
type Effect func(state UserState) ([]Step, error)

// ScreenDef describes a screen: how to recognize it and how to leave it.
type ScreenDef struct {
	Screen      Screen
	Marker      *Selector
	Transitions []Transition
}

// ActionDef describes an action: where it can run, what it does and where it lands.
// With no Results the application stays on the host screen.
// With several Results the navigator observes markers to decide.
type ActionDef struct {
	Action  Action
	Hosts   []Screen
	Effect  Effect
	Results []Screen
}

// Graph is the screen graph walked by the navigator.
// Graphs are produced by the dsl package, which validates them.
type Graph struct {
	Launch  Screen
	Screens map[Screen]*ScreenDef
	Actions map[Action]*ActionDef
}

// Screen returns the definition of s.
func (g *Graph) Screen(s Screen) (*ScreenDef, bool) {
	def, ok := g.Screens[s]
	return def, ok
}

// Action returns the definition of a.
func (g *Graph) Action(a Action) (*ActionDef, bool) {
	def, ok := g.Actions[a]
	return def, ok
}

// ScreenList returns the defined screens in declaration order.
func (g *Graph) ScreenList() []Screen {
	out := make([]Screen, 0, len(g.Screens))
	for s := range g.Screens {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ActionList returns the defined actions in declaration order.
func (g *Graph) ActionList() []Action {
	out := make([]Action, 0, len(g.Actions))
	for a := range g.Actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
