// Package intern provides process-wide string interning and the small
// newtype-wrapped integer handle (Ident) that the rest of the compiler
// threads through instead of raw strings.
package intern

import "sync"

// Ident is a small non-zero handle returned by the Interner. The zero value
// is reserved and never returned by Intern.
type Ident uint32

// Interner guarantees that equal strings map to equal Idents for the
// lifetime of a compile. It is append-only: once a string is interned its
// Ident is stable. Reads (Resolve, Lookup) may run concurrently with each
// other; writes (Intern) are serialized, mirroring the "many readers, rare
// append" shape used for side-name registration elsewhere in this family of
// tools.
type Interner struct {
	mu      sync.RWMutex
	strToID map[string]Ident
	idToStr []string // idToStr[id-1] == the string for Ident(id)
}

// New returns an empty interner.
func New() *Interner {
	return &Interner{
		strToID: make(map[string]Ident),
	}
}

// Intern returns the Ident for s, allocating a new one if s has not been
// seen before. Safe for concurrent use.
func (in *Interner) Intern(s string) Ident {
	in.mu.RLock()
	if id, ok := in.strToID[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.strToID[s]; ok {
		return id
	}
	in.idToStr = append(in.idToStr, s)
	id := Ident(len(in.idToStr))
	in.strToID[s] = id
	return id
}

// Resolve returns the string for id, or "" and false if id is unknown.
func (in *Interner) Resolve(id Ident) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == 0 || int(id) > len(in.idToStr) {
		return "", false
	}
	return in.idToStr[id-1], true
}

// MustResolve resolves id or panics; id is expected to have come from this
// same interner.
func (in *Interner) MustResolve(id Ident) string {
	s, ok := in.Resolve(id)
	if !ok {
		panic("intern: unknown ident")
	}
	return s
}

// Lookup returns the Ident already assigned to s without allocating a new
// one.
func (in *Interner) Lookup(s string) (Ident, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.strToID[s]
	return id, ok
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.idToStr)
}
