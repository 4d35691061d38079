package store

// Tables owns the atom table, number table, and list area, plus the three
// explicit GC-root stacks that stand in for the original interpreter's
// CURRENTIN, EAL, and sreadlist atoms.
type Tables struct {
	cfg     Config
	atoms   atomTable
	numbers numberTable
	cells   listArea

	currentIn []Value
	evalArgs  []Value
	readStack []Value

	Nil   Value
	True  Value
	Quote Value
}

// NewTables builds a fresh set of tables at the given capacities, interning
// NIL, T, and QUOTE the way the original bootstrap does before any source
// is read.
func NewTables(cfg Config) *Tables {
	t := &Tables{
		cfg:     cfg,
		atoms:   newAtomTable(cfg.AtomCapacity),
		numbers: newNumberTable(cfg.NumberCapacity),
		cells:   newListArea(cfg.ListCapacity),
	}

	nilAtom := t.OrdAtom("NIL")
	t.Nil = nilAtom
	t.AtomEntryPtr(nilAtom.Idx).Value = nilAtom
	t.AtomEntryPtr(nilAtom.Idx).PList = t.Nil

	trueAtom := t.OrdAtom("T")
	t.True = trueAtom
	t.AtomEntryPtr(trueAtom.Idx).Value = trueAtom
	t.AtomEntryPtr(trueAtom.Idx).PList = t.Nil

	t.Quote = t.OrdAtom("QUOTE")

	return t
}

// PushCurrentIn records v as the form currently under evaluation. evalForm
// later replaces the frame with the form's unevaluated argument list.
func (t *Tables) PushCurrentIn(v Value) { t.currentIn = append(t.currentIn, v) }

// PopCurrentIn discards the innermost CURRENTIN frame.
func (t *Tables) PopCurrentIn() { t.currentIn = t.currentIn[:len(t.currentIn)-1] }

// SetTopCurrentIn replaces the innermost CURRENTIN frame in place.
func (t *Tables) SetTopCurrentIn(v Value) { t.currentIn[len(t.currentIn)-1] = v }

// PushEvalArgs opens a new argument-list-under-construction frame.
func (t *Tables) PushEvalArgs(v Value) { t.evalArgs = append(t.evalArgs, v) }

// PopEvalArgs discards the innermost EAL frame.
func (t *Tables) PopEvalArgs() { t.evalArgs = t.evalArgs[:len(t.evalArgs)-1] }

// SetTopEvalArgs updates the innermost EAL frame as arguments are consed on.
func (t *Tables) SetTopEvalArgs(v Value) { t.evalArgs[len(t.evalArgs)-1] = v }

// PushRead records a list cell under construction by the reader.
func (t *Tables) PushRead(v Value) { t.readStack = append(t.readStack, v) }

// PopRead discards the innermost read-in-progress frame.
func (t *Tables) PopRead() { t.readStack = t.readStack[:len(t.readStack)-1] }

// ResetStacks empties the three GC-root stacks. A panic can unwind through
// several evalForm/readList frames without running their deferred pops, so
// the REPL calls this alongside RestoreTopLevelBindings after every error.
func (t *Tables) ResetStacks() {
	t.currentIn = t.currentIn[:0]
	t.evalArgs = t.evalArgs[:0]
	t.readStack = t.readStack[:0]
}

// Stats reports current table occupancy, used by diagnostics and tests.
type Stats struct {
	AtomsUsed    int
	NumbersFree  int
	CellsFree    int
	CellsTotal   int
	NumbersTotal int
}

// Stats summarizes table occupancy for diagnostics and tests.
func (t *Tables) Stats() Stats {
	used := 0
	for _, e := range t.atoms.entries {
		if e.Name != "" {
			used++
		}
	}
	return Stats{
		AtomsUsed:    used,
		NumbersFree:  countFreeNumbers(&t.numbers),
		CellsFree:    t.cells.numFree,
		CellsTotal:   len(t.cells.entries) - 1,
		NumbersTotal: len(t.numbers.entries),
	}
}

func countFreeNumbers(nt *numberTable) int {
	n := 0
	for i := nt.free; i >= 0; i = nt.entries[i].Next {
		n++
	}
	return n
}
