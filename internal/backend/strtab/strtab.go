// Package strtab implements the string interning table of spec.md §4.7:
// a binary-search index keyed by (length, lexicographic bytes) that
// deduplicates identical cstring constants across a module's lowering
// pass, handing the backend a stable, monotonically increasing index
// to name each distinct native global "S<hex-counter>".
//
// Kept independent of internal/backend/llvmgen's llir dependency: the
// interning rule itself is pure data-structure work, and separating it
// lets the table be tested without constructing any LLVM IR.
package strtab

import (
	"bytes"
	"sort"
)

type entry struct {
	data  []byte
	index int
}

// Table is the interning index. The zero value is not usable; use New.
type Table struct {
	entries []entry
	counter int
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

func less(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return bytes.Compare(a, b) < 0
}

func (t *Table) search(data []byte) int {
	return sort.Search(len(t.entries), func(i int) bool { return !less(t.entries[i].data, data) })
}

// Intern returns data's stable index, creating a new entry (and
// advancing the counter) only if an identical byte sequence was not
// already present. isNew tells the caller whether to actually emit a
// native global for this call (spec.md §4.7: "On hit, reuse the
// existing native global. On miss, create a new ... global").
func (t *Table) Intern(data []byte) (index int, isNew bool) {
	pos := t.search(data)
	if pos < len(t.entries) && bytes.Equal(t.entries[pos].data, data) {
		return t.entries[pos].index, false
	}

	idx := t.counter
	t.counter++

	t.entries = append(t.entries, entry{})
	copy(t.entries[pos+1:], t.entries[pos:])
	t.entries[pos] = entry{data: append([]byte(nil), data...), index: idx}

	return idx, true
}

// Len reports how many distinct strings have been interned.
func (t *Table) Len() int {
	return len(t.entries)
}
