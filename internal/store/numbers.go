package store

import (
	"math"

	"github.com/mjhale/govol/internal/govolerr"
)

type numberEntry struct {
	Num  float64
	Next int // free-list link, meaningful only while the slot is free
}

type numberTable struct {
	entries   []numberEntry
	hashIndex []int
	marked    []bool
	free      int
}

func newNumberTable(capacity int) numberTable {
	nt := numberTable{
		entries:   make([]numberEntry, capacity),
		hashIndex: make([]int, capacity),
		marked:    make([]bool, capacity),
		free:      0,
	}
	for i := range nt.hashIndex {
		nt.hashIndex[i] = -1
	}
	for i := range nt.entries {
		if i == capacity-1 {
			nt.entries[i].Next = -1
		} else {
			nt.entries[i].Next = i + 1
		}
	}
	return nt
}

// hashFloat hashes the raw bits of v, matching the original table's choice
// to key lookup on the double's bit pattern rather than a decimal digest.
func hashFloat(v float64, n int) int {
	bits := math.Float64bits(v)
	h := int64(bits &^ (1 << 63))
	return int(h % int64(n))
}

// NumberValue returns the float64 stored at number-table index idx.
func (t *Tables) NumberValue(idx int) float64 {
	return t.numbers.entries[idx].Num
}

// NumAtom interns v, returning the existing number atom if one with the
// same bit pattern already exists or allocating a fresh slot (running the
// collector once if the table is full) otherwise.
func (t *Tables) NumAtom(v float64) Value {
	n := len(t.numbers.hashIndex)
	j := hashFloat(v, n)
	for t.numbers.hashIndex[j] != -1 {
		if t.numbers.entries[t.numbers.hashIndex[j]].Num == v {
			return Value{Tag: TagNumber, Idx: t.numbers.hashIndex[j]}
		}
		j = (j + 1) % n
	}
	if t.numbers.free < 0 {
		t.GC()
		if t.numbers.free < 0 {
			panic(govolerr.New(govolerr.Capacity, "number table is full"))
		}
		j = hashFloat(v, n)
		for t.numbers.hashIndex[j] != -1 {
			j = (j + 1) % n
		}
	}
	idx := t.numbers.free
	t.numbers.free = t.numbers.entries[idx].Next
	t.numbers.entries[idx] = numberEntry{Num: v}
	t.numbers.hashIndex[j] = idx
	return Value{Tag: TagNumber, Idx: idx}
}
