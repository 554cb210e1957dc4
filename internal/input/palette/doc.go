// Package palette provides the registry of insertable math components.
//
// Each Entry maps an identifier (e.g. "frac", "alpha", "pmatrix") to the
// component it builds: a Symbol leaf with a literal markup string, a
// Template component bound to a fixed markup template, or a Matrix. The
// palette is a lookup table: it holds no editing state, and Build always
// returns a fresh detached component in the given expression.
//
// Basic usage:
//
//	p := palette.Builtin()
//
//	entry, ok := p.Get("frac")
//	fmt.Println(entry.Arity()) // 2
//
//	id, err := p.Build(expr, "frac")
//	cursor.InsertComponent(id)
//
//	// Fuzzy search over identifiers and titles
//	for _, r := range p.Search("sq", 5) {
//	    fmt.Println(r.Entry.ID, r.Score)
//	}
//
// Thread Safety:
//
// Palette is safe for concurrent use.
package palette
