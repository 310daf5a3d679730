package kiln

import "github.com/kiln-di/kiln/internal/ident"

// ID is an interned capability identifier; equality is identity.
type ID = ident.ID

// Registry interns capability identifiers by name.
type Registry = ident.Registry

// Well-known identifier names every engine registers itself under.
const (
	EngineCapability   = ident.EngineName
	ProviderCapability = ident.ProviderName
)

// NewRegistry creates an identifier registry. Construct one at program
// start and share it by reference between catalogs and engines.
func NewRegistry() *Registry {
	return ident.NewRegistry()
}
