package store

import "github.com/mjhale/govol/internal/govolerr"

const maxAtomNameLen = 15

// AtomEntry is one slot of the atom table: a symbol's name, its current
// value, the stack of values it shadows under shallow binding, and its
// property list.
type AtomEntry struct {
	Name      string
	Value     Value
	BindStack []Value
	PList     Value
}

type atomTable struct {
	entries []AtomEntry
}

func newAtomTable(capacity int) atomTable {
	return atomTable{entries: make([]AtomEntry, capacity)}
}

// hash combines the first character, last character, and length of name,
// the same three features the original table hashed on.
func (t *atomTable) hash(name string) int {
	n := len(t.entries)
	h := int(name[0])*131 + int(name[len(name)-1])*31 + len(name)
	if h < 0 {
		h = -h
	}
	return h % n
}

// AtomName returns the name stored at atom-table index idx.
func (t *Tables) AtomName(idx int) string {
	return t.atoms.entries[idx].Name
}

// AtomEntryPtr returns a mutable pointer into the atom table, used for
// binding, plist mutation, and assignment.
func (t *Tables) AtomEntryPtr(idx int) *AtomEntry {
	return &t.atoms.entries[idx]
}

// AtomValue returns the current value stored for the atom at idx.
func (t *Tables) AtomValue(idx int) Value {
	return t.atoms.entries[idx].Value
}

// OrdAtom interns name, returning the existing atom if already present or
// installing a fresh one (with an undefined value) otherwise. Lookup uses
// linear probing over a fixed-size table; two full wrap-arounds without
// finding an empty slot means the table is full.
func (t *Tables) OrdAtom(name string) Value {
	if len(name) == 0 || len(name) > maxAtomNameLen {
		panic(govolerr.New(govolerr.Syntax, "atom name %q exceeds %d characters", name, maxAtomNameLen))
	}
	n := len(t.atoms.entries)
	j := t.atoms.hash(name)
	wraps := 0
	for t.atoms.entries[j].Name != "" {
		if t.atoms.entries[j].Name == name {
			return Value{Tag: TagOrdinary, Idx: j}
		}
		j++
		if j >= n {
			j = 0
			wraps++
			if wraps > 1 {
				panic(govolerr.New(govolerr.Capacity, "atom table is full"))
			}
		}
	}
	t.atoms.entries[j] = AtomEntry{
		Name:  name,
		Value: Value{Tag: TagUndefined, Idx: j},
		PList: t.Nil,
	}
	return Value{Tag: TagOrdinary, Idx: j}
}

// RestoreTopLevelBindings collapses every atom's bind stack back to its
// original top-level value. It is the single routine every error-unwind
// path invokes before the REPL resumes the prompt, undoing whatever
// shallow bindings were left in place when a panic skipped the normal
// unbind-on-return sequence.
func (t *Tables) RestoreTopLevelBindings() {
	for i := range t.atoms.entries {
		e := &t.atoms.entries[i]
		if len(e.BindStack) == 0 {
			continue
		}
		e.Value = e.BindStack[0]
		e.BindStack = nil
	}
}

// Bool maps a Go boolean onto the two self-evaluating constants.
func (t *Tables) Bool(b bool) Value {
	if b {
		return t.True
	}
	return t.Nil
}
