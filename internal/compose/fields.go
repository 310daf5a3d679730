package compose

import (
	"fmt"
	"strings"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/recipe"
	"github.com/kiln-di/kiln/internal/reflectx"
)

// bindFields runs the second instantiation phase: every remaining field
// link whose source and target are both instantiated is bound by
// assigning the resolved value onto the named field of the source
// instance. A field link that still cannot be bound afterwards is a
// required field without a match and fails the resolution.
func (g *Graph) bindFields() error {
	for _, l := range g.links {
		if l.kind != FieldLink || l.removed {
			continue
		}

		n := l.from
		if n.deferred {
			// bound when the deferred node is actually instantiated,
			// in its own resolution
			l.removed = true
			continue
		}
		if n.immutable || !n.Instantiated() {
			continue
		}

		b := l.b
		if !b.deferred && !b.target.Instantiated() {
			continue
		}

		if err := g.bindField(n, l.fromSlot, b); err != nil {
			return err
		}
		l.removed = true
	}

	var remaining []string
	for _, l := range g.links {
		if l.kind == FieldLink && !l.removed {
			remaining = append(remaining, l.String())
		}
	}
	if len(remaining) > 0 {
		return errs.Incomplete(
			fmt.Sprintf("required field links left unsatisfied: %s", strings.Join(remaining, "; ")),
		)
	}
	return nil
}

func (g *Graph) bindField(n *Node, slot int, b *binding) error {
	composer := n.recipes[slot].Name()
	vals := g.valuesFor(b)

	if err := b.dep.Cardinality().Check(b.dep.ID().Name(), composer, len(vals)); err != nil {
		return err
	}

	instance := n.values[slot]
	field := b.dep.FieldName()

	var err error
	switch b.dep.Cardinality() {
	case recipe.ZeroOrMore:
		err = reflectx.SetFieldSlice(instance, field, vals)
	case recipe.ZeroOrOne:
		if len(vals) == 0 {
			// absent counts as a valid binding for an optional field
			return nil
		}
		err = reflectx.SetField(instance, field, vals[0])
	default:
		err = reflectx.SetField(instance, field, vals[0])
	}
	if err != nil {
		return errs.InvalidRecipe(fmt.Sprintf("%s: %v", composer, err))
	}

	g.log.Debug("bound field", "capability", n.Name(), "field", field, "target", b.dep.ID().Name())
	return nil
}
