package recipe

import "github.com/kiln-di/kiln/internal/errs"

// Cardinality states how many matches a dependency or request tolerates.
type Cardinality int

const (
	ExactlyOne Cardinality = iota
	ZeroOrOne
	ZeroOrMore
)

func (c Cardinality) String() string {
	switch c {
	case ExactlyOne:
		return "exactly one"
	case ZeroOrOne:
		return "zero or one"
	case ZeroOrMore:
		return "zero or more"
	default:
		return "unknown"
	}
}

// Check validates a match count against the cardinality. The capability
// name and, when known, the composing recipe name tag the error.
func (c Cardinality) Check(capability, composer string, n int) error {
	switch c {
	case ExactlyOne:
		if n != 1 {
			return errs.Cardinality(capability, composer, c.String(), n)
		}
	case ZeroOrOne:
		if n > 1 {
			return errs.Cardinality(capability, composer, c.String(), n)
		}
	case ZeroOrMore:
	}
	return nil
}
