package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/screenwalk/internal/validator"
	"github.com/aretw0/screenwalk/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	launch   domain.Screen
	screens  map[domain.Screen]*ScreenBuilder
	actions  map[domain.Action]*ActionBuilder
	problems []string
}

// New creates a new graph builder whose navigator starts at launch.
func New(launch domain.Screen) *Builder {
	return &Builder{
		launch:  launch,
		screens: make(map[domain.Screen]*ScreenBuilder),
		actions: make(map[domain.Action]*ActionBuilder),
	}
}

// Screen declares a screen in the graph.
// If the screen already exists, it returns the existing builder.
func (b *Builder) Screen(s domain.Screen) *ScreenBuilder {
	if sb, ok := b.screens[s]; ok {
		return sb
	}
	sb := &ScreenBuilder{def: domain.ScreenDef{Screen: s}}
	b.screens[s] = sb
	return sb
}

// Action declares an action in the graph.
// Declaring the same action twice is a construction error reported by Build.
func (b *Builder) Action(a domain.Action) *ActionBuilder {
	if ab, ok := b.actions[a]; ok {
		b.problems = append(b.problems, fmt.Sprintf("action '%s' declared twice", a))
		return ab
	}
	ab := &ActionBuilder{def: domain.ActionDef{Action: a}}
	b.actions[a] = ab
	return ab
}

// Build compiles and validates the graph.
// Invalid graphs are rejected here, before any navigator can walk them.
func (b *Builder) Build() (*domain.Graph, error) {
	g := &domain.Graph{
		Launch:  b.launch,
		Screens: make(map[domain.Screen]*domain.ScreenDef, len(b.screens)),
		Actions: make(map[domain.Action]*domain.ActionDef, len(b.actions)),
	}
	for s, sb := range b.screens {
		def := sb.Build()
		g.Screens[s] = &def
	}
	for a, ab := range b.actions {
		def := ab.Build()
		g.Actions[a] = &def
	}

	problems := append([]string(nil), b.problems...)
	if err := validator.ValidateGraph(g); err != nil {
		var verr *validator.Error
		if !errors.As(err, &verr) {
			return nil, fmt.Errorf("invalid graph: %w", err)
		}
		problems = append(problems, verr.Problems...)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid graph: %w", &validator.Error{Problems: problems})
	}
	return g, nil
}

// MustBuild is like Build but panics on an invalid graph.
// Intended for package-level graph definitions.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
