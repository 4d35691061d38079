package eval

import (
	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/store"
)

// assignValue evaluates expr to get the value an assignment should store.
// A named reference to a function or special form (tags produced only at
// evaluation time) is replaced by the atom's own raw stored value, so that
// "(SETQ X CAR)" makes X an independent alias of CAR's dispatch target
// rather than of the transient "X is a callable named CAR" view.
func assignValue(in *Interpreter, expr store.Value) store.Value {
	v := in.Eval(expr)
	if store.IsNamedFunctionForm(v.Tag) {
		return in.Tables.AtomValue(v.Idx)
	}
	return v
}

func setqBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagOrdinary {
		panic(govolerr.New(govolerr.BadArgument, "illegal assignment target"))
	}
	val := assignValue(in, in.Tables.Car(in.Tables.Cdr(args)))
	in.Tables.AtomEntryPtr(target.Idx).Value = val
	return in.evalQuiet(target)
}

// tsetqBuiltin assigns through to the bottom of the target's bind stack
// (its original top-level value) rather than its current, possibly
// shadowed, value. With no active shadowing it behaves exactly like SETQ.
func tsetqBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagOrdinary {
		panic(govolerr.New(govolerr.BadArgument, "illegal assignment target"))
	}
	val := assignValue(in, in.Tables.Car(in.Tables.Cdr(args)))
	e := in.Tables.AtomEntryPtr(target.Idx)
	if len(e.BindStack) == 0 {
		e.Value = val
	} else {
		e.BindStack[0] = val
	}
	return in.evalQuiet(target)
}

func setBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Eval(in.Tables.Car(args))
	if target.Tag != store.TagOrdinary {
		panic(govolerr.New(govolerr.BadArgument, "illegal assignment target"))
	}
	val := assignValue(in, in.Tables.Car(in.Tables.Cdr(args)))
	in.Tables.AtomEntryPtr(target.Idx).Value = val
	return in.evalQuiet(target)
}
