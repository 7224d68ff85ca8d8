package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// Error lists every problem found in a graph.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// ValidateGraph checks a graph for broken links, malformed definitions and
// screens that cannot be reached from the launch screen.
func ValidateGraph(g *domain.Graph) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !g.Launch.Valid() {
		report("launch screen is not set")
	} else if _, ok := g.Screens[g.Launch]; !ok {
		report("launch screen '%s' is not defined", g.Launch)
	}

	for _, s := range g.ScreenList() {
		def := g.Screens[s]
		if !s.Valid() {
			report("invalid screen %s", s)
			continue
		}
		for i, t := range def.Transitions {
			switch t.Kind {
			case domain.TransitionPush, domain.TransitionReset:
				if _, ok := g.Screens[t.To]; !ok {
					report("screen '%s' transition %d targets undefined screen '%s'", s, i, t.To)
				}
			case domain.TransitionPop:
				if t.Depth < 1 {
					report("screen '%s' transition %d pops %d screens", s, i, t.Depth)
				}
			default:
				report("screen '%s' transition %d has no kind", s, i)
			}
			if len(t.Steps) == 0 {
				report("screen '%s' transition %d has no steps", s, i)
			}
		}
	}

	for _, a := range g.ActionList() {
		def := g.Actions[a]
		if !a.Valid() {
			report("invalid action %s", a)
			continue
		}
		if len(def.Hosts) == 0 {
			report("action '%s' has no host screen", a)
		}
		for _, h := range def.Hosts {
			if _, ok := g.Screens[h]; !ok {
				report("action '%s' is hosted on undefined screen '%s'", a, h)
			}
		}
		if def.Effect == nil {
			report("action '%s' has no effect", a)
		}
		for _, r := range def.Results {
			if _, ok := g.Screens[r]; !ok {
				report("action '%s' leads to undefined screen '%s'", a, r)
			}
		}
		if len(def.Results) > 1 {
			for _, r := range def.Results {
				if sd, ok := g.Screens[r]; ok && sd.Marker == nil {
					report("action '%s' has several results but screen '%s' has no marker", a, r)
				}
			}
		}
	}

	if len(problems) == 0 {
		for _, s := range unreachable(g) {
			report("screen '%s' is unreachable from '%s'", s, g.Launch)
		}
	}

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}

// unreachable crawls the graph from the launch screen following push and
// reset edges and the results of hosted actions. Pop edges lead back to
// screens already visited, so they never extend reachability.
func unreachable(g *domain.Graph) []domain.Screen {
	visited := map[domain.Screen]bool{}
	queue := []domain.Screen{g.Launch}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, t := range g.Screens[current].Transitions {
			if t.Kind != domain.TransitionPop && !visited[t.To] {
				queue = append(queue, t.To)
			}
		}
		for _, a := range g.ActionList() {
			def := g.Actions[a]
			if !hosts(def, current) {
				continue
			}
			for _, r := range def.Results {
				if !visited[r] {
					queue = append(queue, r)
				}
			}
		}
	}

	var out []domain.Screen
	for _, s := range g.ScreenList() {
		if !visited[s] {
			out = append(out, s)
		}
	}
	return out
}

func hosts(def *domain.ActionDef, s domain.Screen) bool {
	for _, h := range def.Hosts {
		if h == s {
			return true
		}
	}
	return false
}
