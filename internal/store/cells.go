package store

import "github.com/mjhale/govol/internal/govolerr"

type cell struct {
	Car, Cdr Value
}

type listArea struct {
	entries  []cell
	marked   []bool
	freeHead int
	numFree  int
}

// newListArea reserves index 0 (never allocated, matching the original
// list area's convention) and threads every other slot onto the free list.
func newListArea(capacity int) listArea {
	la := listArea{
		entries: make([]cell, capacity),
		marked:  make([]bool, capacity),
	}
	la.freeHead = -1
	for i := capacity - 1; i >= 1; i-- {
		la.entries[i].Cdr = Value{Tag: TagPair, Idx: la.freeHead}
		la.freeHead = i
	}
	la.numFree = capacity - 1
	return la
}

// Car returns the car of v, or Nil if v is not a pair.
func (t *Tables) Car(v Value) Value {
	if v.Tag != TagPair {
		return t.Nil
	}
	return t.cells.entries[v.Idx].Car
}

// Cdr returns the cdr of v, or Nil if v is not a pair.
func (t *Tables) Cdr(v Value) Value {
	if v.Tag != TagPair {
		return t.Nil
	}
	return t.cells.entries[v.Idx].Cdr
}

// SetCar destructively replaces the car of a pair already allocated.
func (t *Tables) SetCar(pair, v Value) {
	t.cells.entries[pair.Idx].Car = v
}

// SetCdr destructively replaces the cdr of a pair already allocated.
func (t *Tables) SetCdr(pair, v Value) {
	t.cells.entries[pair.Idx].Cdr = v
}

// NewLoc allocates a fresh cons cell holding (car . cdr). If the list area
// is exhausted, car and cdr are marked as extra roots (they are not yet
// reachable from anywhere else), the collector runs once, and allocation is
// retried; a list area still full after that is a genuine capacity error.
func (t *Tables) NewLoc(car, cdr Value) Value {
	if t.cells.freeHead < 0 {
		t.gcMarkValue(car)
		t.gcMarkValue(cdr)
		t.GC()
		if t.cells.freeHead < 0 {
			panic(govolerr.New(govolerr.OutOfSpace, "list area exhausted"))
		}
	}
	idx := t.cells.freeHead
	t.cells.freeHead = t.cells.entries[idx].Cdr.Idx
	t.cells.entries[idx] = cell{Car: car, Cdr: cdr}
	t.cells.numFree--
	return Value{Tag: TagPair, Idx: idx}
}
