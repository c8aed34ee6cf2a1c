// Package symtab implements the insertion-order-preserving name/value
// table shared by the encoding and feature loaders. A hash index gives
// O(1) lookup; an append-only slice of entries gives reproducible,
// insertion-ordered iteration for dump output.
package symtab

import "fmt"

// MaxNameLen is the longest a key name may be.
const MaxNameLen = 47

// MaxValueLen is the longest a value's byte payload may be.
const MaxValueLen = 47

// Entry is one symbol table row: an immutable name and a mutable,
// fixed-capacity value.
type Entry struct {
	Name  string
	Value [MaxValueLen]byte
	Len   int
}

// Bytes returns the entry's active value bytes.
func (e *Entry) Bytes() []byte {
	return e.Value[:e.Len]
}

// Empty reports whether the entry carries no bytes.
func (e *Entry) Empty() bool {
	return e.Len == 0
}

// SetBytes copies b into the entry's value, failing if b doesn't fit.
func (e *Entry) SetBytes(b []byte) error {
	if len(b) > MaxValueLen {
		return fmt.Errorf("symtab: value for %q is %d bytes, exceeds the %d byte limit", e.Name, len(b), MaxValueLen)
	}
	e.Len = copy(e.Value[:], b)
	return nil
}

// Table is an ordered map keyed by short names.
type Table struct {
	index   map[string]int
	entries []*Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Lookup returns the entry for name and whether it exists.
func (t *Table) Lookup(name string) (*Entry, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.entries[i], true
}

// Insert adds a new entry with an empty value, or returns the existing
// one if name is already present. The second return is true when a new
// entry was created.
func (t *Table) Insert(name string) (*Entry, bool) {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	if e, ok := t.Lookup(name); ok {
		return e, false
	}
	e := &Entry{Name: name}
	t.entries = append(t.entries, e)
	t.index[name] = len(t.entries) - 1
	return e, true
}

// Set inserts name if absent and sets its value, overwriting silently
// (per spec.md §4.4: "Duplicate names overwrite silently").
func (t *Table) Set(name string, value []byte) error {
	e, _ := t.Insert(name)
	return e.SetBytes(value)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// All iterates entries in insertion order.
func (t *Table) All() []*Entry {
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clear removes every entry, bulk deletion per spec.md §4.3.
func (t *Table) Clear() {
	t.index = make(map[string]int)
	t.entries = nil
}
