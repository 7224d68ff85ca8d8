package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// Overlay contains navigation state to highlight on the graph.
type Overlay struct {
	Visited []domain.Screen
	Current domain.Screen
}

// GenerateMermaid produces a Mermaid flowchart of the screen graph.
//   - Launch screen: ((Circle))
//   - Push: -->
//   - Pop: -.->|back n| to every screen the pop can land on
//   - Reset: ==>
//   - Action: -->|action: Name| from each host to each result
//
// Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	pops := popTargets(g)

	for _, s := range g.ScreenList() {
		def := g.Screens[s]

		opener, closer := "[", "]"
		if s == g.Launch {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", s, opener, s, closer)

		for i, t := range def.Transitions {
			switch t.Kind {
			case domain.TransitionPush:
				fmt.Fprintf(&sb, "    %s --> %s\n", s, t.To)
			case domain.TransitionReset:
				fmt.Fprintf(&sb, "    %s ==> %s\n", s, t.To)
			case domain.TransitionPop:
				for _, to := range pops[edge{s, i}] {
					fmt.Fprintf(&sb, "    %s -.->|back %d| %s\n", s, t.Depth, to)
				}
			}
		}
	}

	for _, a := range g.ActionList() {
		def := g.Actions[a]
		for _, host := range def.Hosts {
			results := def.Results
			if len(results) == 0 {
				results = []domain.Screen{host}
			}
			for _, to := range results {
				fmt.Fprintf(&sb, "    %s -->|action: %s| %s\n", host, a, to)
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps labels readable on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Screen]bool)
		for _, s := range overlay.Visited {
			if !seen[s] && s.Valid() {
				seen[s] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", s)
			}
		}
		if overlay.Current.Valid() {
			fmt.Fprintf(&sb, "    class %s current;\n", overlay.Current)
		}
	}

	return sb.String()
}

type edge struct {
	from  domain.Screen
	index int
}

// popTargets explores every navigation stack reachable from the launch screen
// and records where each pop transition can land.
func popTargets(g *domain.Graph) map[edge][]domain.Screen {
	out := make(map[edge][]domain.Screen)
	maxDepth := len(g.Screens)

	start := []domain.Screen{g.Launch}
	seen := map[string]bool{stackKey(start): true}
	queue := [][]domain.Screen{start}

	visit := func(next []domain.Screen) {
		if len(next) > maxDepth {
			return
		}
		if k := stackKey(next); !seen[k] {
			seen[k] = true
			queue = append(queue, next)
		}
	}

	for len(queue) > 0 {
		stack := queue[0]
		queue = queue[1:]
		top := stack[len(stack)-1]

		def, ok := g.Screens[top]
		if !ok {
			continue
		}
		for i, t := range def.Transitions {
			next, ok := t.Apply(stack)
			if !ok {
				continue
			}
			if t.Kind == domain.TransitionPop {
				e := edge{top, i}
				if to := next[len(next)-1]; !slices.Contains(out[e], to) {
					out[e] = append(out[e], to)
				}
			}
			visit(next)
		}
		for _, a := range g.Actions {
			if !slices.Contains(a.Hosts, top) {
				continue
			}
			for _, r := range a.Results {
				visit([]domain.Screen{r})
			}
		}
	}

	for e := range out {
		slices.Sort(out[e])
	}
	return out
}

func stackKey(stack []domain.Screen) string {
	parts := make([]string, len(stack))
	for i, s := range stack {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
