package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mathstorm/internal/engine/tree"
)

// DefaultMaxEntries is used when New is given a non-positive bound.
const DefaultMaxEntries = 1000

// Common errors for history operations.
var (
	ErrHistoryEmpty  = errors.New("history is empty")
	ErrEntryNotFound = errors.New("history entry not found")
)

// Entry is one committed expression.
type Entry struct {
	// ID uniquely identifies the entry.
	ID uuid.UUID

	// Markup is the expression markup at commit time.
	Markup string

	// Expression is the committed tree. It must not be mutated after commit.
	Expression *tree.Expression

	// CommittedAt is when the entry was pushed.
	CommittedAt time.Time
}

// History is a bounded list of committed expressions, oldest first.
type History struct {
	mu         sync.Mutex
	entries    []*Entry
	maxEntries int
}

// New creates a history holding at most maxEntries entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records expr as a new entry and returns it.
// The oldest entries are dropped if the bound is exceeded.
func (h *History) Push(expr *tree.Expression) *Entry {
	entry := &Entry{
		ID:          uuid.New(),
		Markup:      expr.Markup(),
		Expression:  expr,
		CommittedAt: time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		clear(h.entries[:excess])
		h.entries = h.entries[excess:]
	}
	return entry
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// MaxEntries returns the bound.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []*Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]*Entry, len(h.entries))
	copy(result, h.entries)
	return result
}

// Last returns the most recent entry.
func (h *History) Last() (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return nil, ErrHistoryEmpty
	}
	return h.entries[len(h.entries)-1], nil
}

// Get returns the entry with the given ID.
func (h *History) Get(id uuid.UUID) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}
