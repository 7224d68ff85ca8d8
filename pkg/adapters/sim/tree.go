package sim

import (
	"fmt"
	"strings"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// node is one element of the simulated accessibility tree together with the
// behavior it triggers.
type node struct {
	el       domain.Element
	children []*node
	tap      func()
	typeText func(string)
	press    func()
}

func el(kind domain.ElementKind, id, label string, children ...*node) *node {
	return &node{
		el:       domain.Element{Kind: kind, Identifier: id, Label: label, Enabled: true},
		children: children,
	}
}

func (n *node) onTap(f func()) *node {
	n.tap = f
	return n
}

func (n *node) withValue(v string) *node {
	n.el.Value = v
	return n
}

// find returns every node under roots matching sel, honoring its scope.
func find(roots []*node, sel domain.Selector) []*node {
	if sel.Within == nil {
		var out []*node
		walk(roots, func(n *node) {
			if sel.Matches(n.el) {
				out = append(out, n)
			}
		})
		return out
	}

	unscoped := sel
	unscoped.Within = nil
	var out []*node
	for _, parent := range find(roots, *sel.Within) {
		out = append(out, find(parent.children, unscoped)...)
	}
	return out
}

func walk(nodes []*node, visit func(*node)) {
	for _, n := range nodes {
		visit(n)
		walk(n.children, visit)
	}
}

func describe(b *strings.Builder, nodes []*node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s%s", strings.Repeat("  ", depth), n.el.Kind)
		if n.el.Identifier != "" {
			fmt.Fprintf(b, ", identifier: '%s'", n.el.Identifier)
		}
		if n.el.Label != "" {
			fmt.Fprintf(b, ", label: '%s'", n.el.Label)
		}
		if n.el.Value != "" {
			fmt.Fprintf(b, ", value: %s", n.el.Value)
		}
		if !n.el.Enabled {
			b.WriteString(", disabled")
		}
		b.WriteByte('\n')
		describe(b, n.children, depth+1)
	}
}
