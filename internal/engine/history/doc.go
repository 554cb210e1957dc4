// Package history keeps the expressions a user has committed.
//
// Each commit becomes an Entry carrying a unique ID, the committed markup and
// the time of the commit. The list is bounded: once it holds maxEntries
// entries, the oldest are dropped as new ones arrive.
//
// Basic usage:
//
//	h := history.New(100)
//	entry := h.Push(expr)
//	last, err := h.Last()
//
// History is safe for concurrent use.
package history
