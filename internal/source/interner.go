package source

import (
	"slices"
	"sync"
)

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates strings into compact ids. ID 0 is reserved for the
// empty string. Safe for concurrent use: unit passes run in parallel and
// share one interner per workspace.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the id for s, inserting it on first use.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	// Own copy so we never pin a caller's larger backing buffer.
	cpy := string([]byte(s))
	id = StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) for an unknown id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string id")
	}
	return s
}

func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings in id order.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
