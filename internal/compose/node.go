package compose

import (
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// binding records the resolved provider for one dependency declaration of
// a node's recipe slot. A deferred binding is satisfied by a forwarding
// placeholder instead of the provider's values.
type binding struct {
	dep      recipe.Dep
	target   *Node
	deferred bool
}

// Node is one capability inside a composition graph: the identifier, the
// engine that owns it, the recipe list being built for it, and per-slot
// production state. An immutable node wraps already-cached values and is
// never expanded or instantiated again.
type Node struct {
	id    *ident.ID
	label string
	scope Scope

	recipes  []*recipe.Recipe
	values   []any
	produced []bool

	// bindings[i] holds the resolved dependencies of recipes[i].
	bindings [][]*binding

	immutable bool
	deferred  bool
	detached  bool
}

func newPendingNode(id *ident.ID, scope Scope, recipes []*recipe.Recipe) *Node {
	return &Node{
		id:       id,
		label:    id.Name(),
		scope:    scope,
		recipes:  recipes,
		values:   make([]any, len(recipes)),
		produced: make([]bool, len(recipes)),
		bindings: make([][]*binding, len(recipes)),
	}
}

func newImmutableNode(id *ident.ID, scope Scope, values []any) *Node {
	label := ""
	if id != nil {
		label = id.Name()
	}
	return &Node{
		id:        id,
		label:     label,
		scope:     scope,
		values:    values,
		immutable: true,
	}
}

func newDetachedNode(label string, scope Scope, recipes []*recipe.Recipe) *Node {
	return &Node{
		label:    label,
		scope:    scope,
		recipes:  recipes,
		values:   make([]any, len(recipes)),
		produced: make([]bool, len(recipes)),
		bindings: make([][]*binding, len(recipes)),
		detached: true,
	}
}

func (n *Node) Name() string {
	return n.label
}

// Instantiated reports whether every recipe slot has produced its value.
// Immutable nodes are instantiated by construction.
func (n *Node) Instantiated() bool {
	if n.immutable {
		return true
	}
	for _, p := range n.produced {
		if !p {
			return false
		}
	}
	return true
}

// Values returns the produced values in recipe order.
func (n *Node) Values() []any {
	out := make([]any, len(n.values))
	copy(out, n.values)
	return out
}

// allDeferrable reports whether deferring instantiation of this node is
// permitted: every recipe must be a deferrable constructor recipe.
func (n *Node) allDeferrable() bool {
	if n.immutable || len(n.recipes) == 0 {
		return false
	}
	for _, r := range n.recipes {
		if r.IsValue() || !r.Deferrable() {
			return false
		}
	}
	return true
}
