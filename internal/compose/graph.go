package compose

import (
	"log/slog"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Graph is the transient composition graph of one top-level resolution.
// It is built, mutated and discarded within a single call.
type Graph struct {
	log *slog.Logger

	nodes map[*ident.ID]*Node
	order []*Node
	links []*Link

	linksFrom map[*Node][]*Link

	// shared empty-result node for absent optional dependencies
	empty *Node

	placeholders map[*Node]any
}

func New(log *slog.Logger) *Graph {
	if log == nil {
		log = slog.Default()
	}
	return &Graph{
		log:          log,
		nodes:        make(map[*ident.ID]*Node),
		linksFrom:    make(map[*Node][]*Link),
		placeholders: make(map[*Node]any),
	}
}

// Resolve runs the full composition for a root capability: discovery,
// cycle handling, iterative instantiation, field binding and validation.
// It returns the root node's values in recipe order.
func (g *Graph) Resolve(root *ident.ID, from Scope) ([]any, error) {
	rootNode, ok, err := g.nodeFor(root, from)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.UnknownCapability(root.Name())
	}
	return g.run(rootNode)
}

// ResolveRecipes composes an ad-hoc root from an explicit recipe list.
// The root's values are not written to any cache; its dependencies are
// resolved and cached normally.
func (g *Graph) ResolveRecipes(label string, recipes []*recipe.Recipe, from Scope) ([]any, error) {
	rootNode := newDetachedNode(label, from, recipes)
	g.order = append(g.order, rootNode)
	return g.run(rootNode)
}

func (g *Graph) run(rootNode *Node) ([]any, error) {
	if err := g.expand(); err != nil {
		return nil, err
	}
	if err := g.breakCycles(); err != nil {
		return nil, err
	}
	if err := g.instantiate(); err != nil {
		return nil, err
	}
	if err := g.checkComplete(); err != nil {
		return nil, err
	}
	if err := g.bindFields(); err != nil {
		return nil, err
	}

	if rootNode.deferred {
		return []any{g.placeholders[rootNode]}, nil
	}
	return rootNode.Values(), nil
}

// nodeFor resolves an identifier to its graph node, creating one on first
// sight. Discovery walks outward from the dependent's scope: the whole
// ancestor chain is checked for a complete cached entry first, then for a
// catalog entry, nearest scope first in both passes.
func (g *Graph) nodeFor(id *ident.ID, from Scope) (*Node, bool, error) {
	if n, ok := g.nodes[id]; ok {
		return n, true, nil
	}

	for s := from; s != nil; s = s.ParentScope() {
		vals, complete, err := s.CachedComplete(id)
		if err != nil {
			return nil, false, err
		}
		if complete {
			n := newImmutableNode(id, s, vals)
			g.nodes[id] = n
			g.order = append(g.order, n)
			return n, true, nil
		}
	}

	for s := from; s != nil; s = s.ParentScope() {
		rs, ok := s.OwnsRecipes(id)
		if !ok {
			continue
		}

		n := newPendingNode(id, s, rs)
		g.nodes[id] = n
		g.order = append(g.order, n)
		s.BeginEntry(id, len(rs))

		g.log.Debug("discovered capability", "capability", id.Name(), "scope", s.Label(), "recipes", len(rs))
		return n, true, nil
	}

	return nil, false, nil
}

// expand pops pending nodes off the discovery stack and resolves every
// dependency declaration of every recipe slot, adding links where they
// are informative.
func (g *Graph) expand() error {
	// order doubles as the discovery stack: nodes appended by nodeFor
	// are picked up as the scan reaches them.
	for i := 0; i < len(g.order); i++ {
		n := g.order[i]
		if n.immutable {
			continue
		}

		for ri, r := range n.recipes {
			for _, d := range r.Deps() {
				target, ok, err := g.nodeFor(d.ID(), n.scope)
				if err != nil {
					return err
				}
				if !ok {
					if err := d.Cardinality().Check(d.ID().Name(), r.Name(), 0); err != nil {
						return err
					}
					target = g.emptyNode(n.scope)
				}

				b := &binding{dep: d, target: target}
				n.bindings[ri] = append(n.bindings[ri], b)

				switch d.Kind() {
				case recipe.DepParam:
					if !target.Instantiated() {
						g.addLink(n, ri, b, ParamLink)
					}
				case recipe.DepField:
					if !n.immutable {
						g.addLink(n, ri, b, FieldLink)
					}
				}
			}
		}
	}
	return nil
}

func (g *Graph) addLink(from *Node, fromSlot int, b *binding, kind LinkKind) {
	l := &Link{from: from, fromSlot: fromSlot, kind: kind, b: b}
	g.links = append(g.links, l)
	g.linksFrom[from] = append(g.linksFrom[from], l)
}

// emptyNode returns the shared immutable node representing zero matches.
func (g *Graph) emptyNode(scope Scope) *Node {
	if g.empty == nil {
		g.empty = newImmutableNode(nil, scope, nil)
		g.empty.label = "<none>"
	}
	return g.empty
}

// valuesFor gathers the values satisfying one binding.
func (g *Graph) valuesFor(b *binding) []any {
	if b.deferred {
		return []any{g.placeholders[b.target]}
	}
	return b.target.Values()
}
