// Package poly implements the polymorphism matching engine and
// prerequisite checker of spec.md §4.4-4.5: deciding whether a concrete
// type satisfies a polymorphic pattern, binding $T/$#N type variables
// into a catalog, and evaluating the seven named prerequisites plus
// named-composite structural subtyping.
//
// Grounded on original_source's src/IRGEN/ir_gen_polymorphable.c and
// src/IRGEN/ir_gen_check_prereq.c, reworked from the original's
// linearized element-array walk onto the tree-shaped ast.Type this
// module already uses for infer.
package poly

import "github.com/adept-lang/adeptcore/internal/ast"

// Catalog is the substitution record a successful match populates:
// every $T -> type and $#N -> count binding (spec.md §4.4).
type Catalog struct {
	Types  map[string]*ast.Type
	Counts map[string]uint64
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Types: map[string]*ast.Type{}, Counts: map[string]uint64{}}
}

func (c *Catalog) findType(name string) (*ast.Type, bool) {
	t, ok := c.Types[name]
	return t, ok
}

func (c *Catalog) addType(name string, t *ast.Type) {
	c.Types[name] = t
}

func (c *Catalog) findCount(name string) (uint64, bool) {
	n, ok := c.Counts[name]
	return n, ok
}

func (c *Catalog) addCount(name string, n uint64) {
	c.Counts[name] = n
}
