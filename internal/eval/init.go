package eval

import "github.com/mjhale/govol/internal/store"

type builtinSpec struct {
	name string
	tag  store.Tag
	fn   Impl
}

// builtinTable is the full roster: thirty-nine names, each either a
// function (arguments evaluated first) or a special form (arguments passed
// through raw).
var builtinTable = []builtinSpec{
	{"CAR", store.TagBuiltinFn, carBuiltin},
	{"CDR", store.TagBuiltinFn, cdrBuiltin},
	{"CONS", store.TagBuiltinFn, consBuiltin},
	{"LAMBDA", store.TagBuiltinSF, lambdaBuiltin},
	{"SPECIAL", store.TagBuiltinSF, specialBuiltin},
	{"SETQ", store.TagBuiltinSF, setqBuiltin},
	{"ATOM", store.TagBuiltinFn, atomBuiltin},
	{"NUMBERP", store.TagBuiltinFn, numberpBuiltin},
	{"QUOTE", store.TagBuiltinSF, quoteBuiltin},
	{"LIST", store.TagBuiltinFn, listBuiltin},
	{"DO", store.TagBuiltinFn, doBuiltin},
	{"COND", store.TagBuiltinSF, condBuiltin},
	{"PLUS", store.TagBuiltinFn, plusBuiltin},
	{"TIMES", store.TagBuiltinFn, timesBuiltin},
	{"DIFFERENCE", store.TagBuiltinFn, differenceBuiltin},
	{"QUOTIENT", store.TagBuiltinFn, quotientBuiltin},
	{"POWER", store.TagBuiltinFn, powerBuiltin},
	{"FLOOR", store.TagBuiltinFn, floorBuiltin},
	{"MINUS", store.TagBuiltinFn, minusBuiltin},
	{"LESSP", store.TagBuiltinFn, lesspBuiltin},
	{"GREATERP", store.TagBuiltinFn, greaterpBuiltin},
	{"EVAL", store.TagBuiltinFn, evalBuiltin},
	{"EQ", store.TagBuiltinFn, eqBuiltin},
	{"AND", store.TagBuiltinFn, andBuiltin},
	{"OR", store.TagBuiltinFn, orBuiltin},
	{"SUM", store.TagBuiltinFn, sumBuiltin},
	{"PRODUCT", store.TagBuiltinFn, productBuiltin},
	{"PUTPLIST", store.TagBuiltinFn, putplistBuiltin},
	{"GETPLIST", store.TagBuiltinFn, getplistBuiltin},
	{"READ", store.TagBuiltinFn, readBuiltin},
	{"PRINT", store.TagBuiltinFn, printBuiltin},
	{"PRINTCR", store.TagBuiltinFn, printcrBuiltin},
	{"MKATOM", store.TagBuiltinFn, mkatomBuiltin},
	{"BODY", store.TagBuiltinFn, bodyBuiltin},
	{"RPLACA", store.TagBuiltinFn, rplacaBuiltin},
	{"RPLACD", store.TagBuiltinFn, rplacdBuiltin},
	{"TSETQ", store.TagBuiltinSF, tsetqBuiltin},
	{"NULL", store.TagBuiltinFn, nullBuiltin},
	{"SET", store.TagBuiltinSF, setBuiltin},
}

func (in *Interpreter) installBuiltins() {
	for _, spec := range builtinTable {
		atom := in.Tables.OrdAtom(spec.name)
		in.Tables.AtomEntryPtr(atom.Idx).Value = store.Value{Tag: spec.tag, Idx: atom.Idx}
		kind := Function
		if spec.tag == store.TagBuiltinSF {
			kind = SpecialForm
		}
		in.builtins[atom.Idx] = &Builtin{Name: spec.name, Kind: kind, Fn: spec.fn}
	}
}
