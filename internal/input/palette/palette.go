package palette

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/dshills/mathstorm/internal/engine/tree"
)

// Palette provides lookup and search over insertable entries.
type Palette struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty palette.
func New() *Palette {
	return &Palette{
		entries: make(map[string]*Entry),
	}
}

// Register adds an entry to the palette.
// If an entry with the same ID exists, it is replaced.
func (p *Palette) Register(e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	p.entries[e.ID] = e
	p.mu.Unlock()
	return nil
}

// RegisterAll adds multiple entries to the palette.
func (p *Palette) RegisterAll(entries []*Entry) error {
	for _, e := range entries {
		if err := p.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves an entry by ID.
func (p *Palette) Get(id string) (*Entry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[id]
	return e, ok
}

// Has checks if an entry exists.
func (p *Palette) Has(id string) bool {
	_, ok := p.Get(id)
	return ok
}

// Build creates a detached component for entry id in expr.
func (p *Palette) Build(expr *tree.Expression, id string) (tree.NodeID, error) {
	e, ok := p.Get(id)
	if !ok {
		return tree.None, fmt.Errorf("%w: %s", ErrUnknownEntry, id)
	}
	return e.Build(expr), nil
}

// Count returns the number of registered entries.
func (p *Palette) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// All returns all entries sorted by ID.
func (p *Palette) All() []*Entry {
	result := p.snapshot()
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Categories returns all distinct categories, sorted.
func (p *Palette) Categories() []Category {
	seen := make(map[Category]bool)
	var result []Category
	for _, e := range p.snapshot() {
		if !seen[e.Category] {
			seen[e.Category] = true
			result = append(result, e.Category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

// ByCategory returns the entries of one category sorted by ID.
func (p *Palette) ByCategory(cat Category) []*Entry {
	var result []*Entry
	for _, e := range p.All() {
		if e.Category == cat {
			result = append(result, e)
		}
	}
	return result
}

// SearchResult is a matched entry with its fuzzy score.
type SearchResult struct {
	// Entry is the matched entry.
	Entry *Entry

	// Score is the match score (higher is better).
	Score int

	// Matches holds the matched character indexes in the searched string.
	Matches []int
}

// entrySource adapts a slice of entries to fuzzy.Source, searching
// "id title" so both the identifier and the name can match.
type entrySource []*Entry

func (s entrySource) String(i int) string {
	return s[i].ID + " " + s[i].Title
}

func (s entrySource) Len() int {
	return len(s)
}

// Search finds entries matching query by fuzzy match over ID and title.
// An empty query returns all entries sorted by ID. A limit of zero or less
// means no limit.
func (p *Palette) Search(query string, limit int) []SearchResult {
	all := p.All()

	var results []SearchResult
	if query == "" {
		results = make([]SearchResult, 0, len(all))
		for _, e := range all {
			results = append(results, SearchResult{Entry: e})
		}
	} else {
		matches := fuzzy.FindFrom(query, entrySource(all))
		results = make([]SearchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, SearchResult{
				Entry:   all[m.Index],
				Score:   m.Score,
				Matches: m.MatchedIndexes,
			})
		}
		// Exact identifier hits always come first.
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Entry.ID == query && results[j].Entry.ID != query
		})
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (p *Palette) snapshot() []*Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]*Entry, 0, len(p.entries))
	for _, e := range p.entries {
		result = append(result, e)
	}
	return result
}
