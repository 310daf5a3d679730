package compose

import (
	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/graph"
)

// breakCycles scans for cycles formed strictly from parameter links. A
// cycle containing a deferrable node is broken by deferring that node:
// every parameter link into it is satisfied by a forwarding placeholder
// and the node itself drops out of this resolution. A cycle with no
// deferrable member fails the whole resolution.
func (g *Graph) breakCycles() error {
	for {
		pg := g.paramGraph()

		cycles := pg.DetectCycles()
		if len(cycles) == 0 {
			return nil
		}

		for _, scc := range cycles {
			members := make(map[string]bool, len(scc))
			for _, name := range scc {
				members[name] = true
			}

			victim := g.deferrableIn(members)
			if victim == nil {
				chain := pg.FindCyclePath(scc[0])
				if chain == nil {
					chain = scc
				}
				return errs.Cyclic(chain)
			}
			if err := g.deferNode(victim); err != nil {
				return err
			}
		}
	}
}

// paramGraph projects the current parameter links onto a plain directed
// graph for the cycle scan. Deferred and removed links do not count.
func (g *Graph) paramGraph() *graph.Graph {
	pg := graph.New()

	deps := make(map[*Node][]string)
	for _, l := range g.links {
		if l.kind != ParamLink || l.removed || l.b.deferred {
			continue
		}
		deps[l.from] = append(deps[l.from], l.b.target.Name())
	}

	for _, n := range g.order {
		if n.immutable || n.deferred {
			continue
		}
		pg.AddNode(n.Name(), deps[n])
	}
	return pg
}

// deferrableIn picks the first deferrable cycle member in work-list order.
func (g *Graph) deferrableIn(members map[string]bool) *Node {
	for _, n := range g.order {
		if n.immutable || n.deferred || n.detached {
			continue
		}
		if members[n.Name()] && n.allDeferrable() {
			return n
		}
	}
	return nil
}

// deferNode realizes a deferrable node as a forwarding placeholder. The
// node's pending cache entry is abandoned; it will be instantiated by its
// own resolution on the placeholder's first access. A consumer receives
// one placeholder regardless of the node's recipe count, so declarations
// are cardinality-checked against that count here rather than silently
// passing and failing on first unwrap.
func (g *Graph) deferNode(n *Node) error {
	n.deferred = true
	g.placeholders[n] = n.scope.DeferredFor(n.id)
	n.scope.AbandonEntry(n.id)

	for _, other := range g.order {
		if other == n || other.immutable {
			continue
		}
		for ri, slot := range other.bindings {
			for _, b := range slot {
				if b.target != n {
					continue
				}
				if err := b.dep.Cardinality().Check(n.Name(), other.recipes[ri].Name(), len(n.recipes)); err != nil {
					return err
				}
				b.deferred = true
			}
		}
	}

	// the node is not built in this resolution; its own dependencies no
	// longer constrain anything here
	for _, l := range g.linksFrom[n] {
		l.removed = true
	}

	g.log.Debug("deferred capability to break constructor cycle", "capability", n.Name())
	return nil
}
