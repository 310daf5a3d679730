package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/recipe"
)

// instantiate processes the work list in rounds: each round activates
// every node whose outgoing parameter links are all satisfied. A round
// that makes no progress means an unresolvable remainder; the cycle scan
// should already have caught it, so this is a defensive stop.
func (g *Graph) instantiate() error {
	var pending []*Node
	// reversed work list, so dependencies discovered last come first
	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.order[i]
		if n.immutable || n.deferred {
			continue
		}
		pending = append(pending, n)
	}

	for len(pending) > 0 {
		var next []*Node
		progress := false

		for _, n := range pending {
			if n.deferred {
				continue
			}
			if !g.paramsSatisfied(n) {
				next = append(next, n)
				continue
			}
			if err := g.activate(n); err != nil {
				return err
			}
			progress = true
		}

		if !progress && len(next) > 0 {
			names := make([]string, len(next))
			for i, n := range next {
				names[i] = n.Name()
			}
			return errs.Stalled(names)
		}
		pending = next
	}
	return nil
}

func (g *Graph) paramsSatisfied(n *Node) bool {
	for _, l := range g.linksFrom[n] {
		if l.kind != ParamLink || l.removed {
			continue
		}
		if !l.satisfied() {
			return false
		}
	}
	return true
}

// activate runs every recipe slot of an eligible node: gather each
// parameter dependency's values, cardinality-check them against the
// declaration, invoke the recipe, and record the value in the node and
// the owning scope's cache.
func (g *Graph) activate(n *Node) error {
	for ri, r := range n.recipes {
		params := make(map[int][]any)

		for _, b := range n.bindings[ri] {
			if b.dep.Kind() != recipe.DepParam {
				continue
			}
			vals := g.valuesFor(b)
			if err := b.dep.Cardinality().Check(b.dep.ID().Name(), r.Name(), len(vals)); err != nil {
				return err
			}
			params[b.dep.Slot()] = vals
		}

		v, err := r.Activate(params)
		if err != nil {
			var coded *errs.Error
			if errors.As(err, &coded) {
				return err
			}
			return errs.Activation(n.Name(), err)
		}

		n.values[ri] = v
		n.produced[ri] = true
		if !n.detached {
			n.scope.StoreSlot(n.id, ri, v)
		}
	}

	for _, l := range g.linksFrom[n] {
		if l.kind == ParamLink {
			l.removed = true
		}
	}

	g.log.Debug("instantiated capability", "capability", n.Name(), "slots", len(n.recipes))
	return nil
}

// checkComplete validates the post-instantiation invariants: every node
// instantiated, every parameter link gone.
func (g *Graph) checkComplete() error {
	var remaining []string
	for _, n := range g.order {
		if n.immutable || n.deferred {
			continue
		}
		if !n.Instantiated() {
			remaining = append(remaining, n.Name())
		}
	}
	if len(remaining) > 0 {
		return errs.Incomplete(
			fmt.Sprintf("capabilities left uninstantiated: %s", strings.Join(remaining, ", ")),
		)
	}

	var unsatisfied []string
	for _, l := range g.links {
		if l.kind == ParamLink && !l.removed {
			unsatisfied = append(unsatisfied, l.String())
		}
	}
	if len(unsatisfied) > 0 {
		return errs.Incomplete(
			fmt.Sprintf("parameter links left unsatisfied: %s", strings.Join(unsatisfied, "; ")),
		)
	}
	return nil
}
