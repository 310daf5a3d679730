package compose

import "fmt"

type LinkKind int

const (
	// ParamLink must be satisfied before the dependent's constructor runs.
	ParamLink LinkKind = iota
	// FieldLink is satisfied after the dependent is instantiated.
	FieldLink
)

func (k LinkKind) String() string {
	if k == ParamLink {
		return "param"
	}
	return "field"
}

// Link is a directed edge from a dependent node to the node satisfying
// one of its dependency declarations. It carries the declaration (through
// the shared binding) and the dependent's recipe-slot index. A link is
// removed once its dependency is observably satisfied.
type Link struct {
	from     *Node
	fromSlot int
	kind     LinkKind
	b        *binding
	removed  bool
}

// satisfied reports whether the dependency no longer blocks the
// dependent: either the target is instantiated or a placeholder stands
// in for it.
func (l *Link) satisfied() bool {
	return l.b.deferred || l.b.target.Instantiated()
}

func (l *Link) String() string {
	return fmt.Sprintf("%s --%s--> %s (%s)", l.from.Name(), l.kind, l.b.target.Name(), l.b.dep)
}
