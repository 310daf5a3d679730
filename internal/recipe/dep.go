package recipe

import (
	"fmt"

	"github.com/kiln-di/kiln/internal/ident"
)

// DepKind distinguishes constructor-slot from field dependencies.
type DepKind int

const (
	DepParam DepKind = iota
	DepField
)

// Dep is a single dependency declaration: a constructor slot or a named
// field on the composed instance, the target capability, and how many
// matches the declaration tolerates. Declarations are immutable.
type Dep struct {
	kind  DepKind
	id    *ident.ID
	slot  int
	field string
	card  Cardinality
}

// Param declares that constructor slot receives the target capability.
func Param(slot int, id *ident.ID, card Cardinality) Dep {
	return Dep{kind: DepParam, id: id, slot: slot, card: card}
}

// Field declares that the named exported field receives the target
// capability after construction.
func Field(name string, id *ident.ID, card Cardinality) Dep {
	return Dep{kind: DepField, id: id, field: name, card: card}
}

func (d Dep) Kind() DepKind            { return d.kind }
func (d Dep) ID() *ident.ID            { return d.id }
func (d Dep) Slot() int                { return d.slot }
func (d Dep) FieldName() string        { return d.field }
func (d Dep) Cardinality() Cardinality { return d.card }

func (d Dep) String() string {
	if d.kind == DepParam {
		return fmt.Sprintf("slot %d <- %s (%s)", d.slot, d.id, d.card)
	}
	return fmt.Sprintf("field %s <- %s (%s)", d.field, d.id, d.card)
}
