package eval

import (
	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/store"
)

func carBuiltin(in *Interpreter, args store.Value) store.Value {
	x := in.Tables.Car(args)
	if x.Tag != store.TagPair {
		panic(govolerr.New(govolerr.BadArgument, "illegal CAR argument"))
	}
	return in.Tables.Car(x)
}

func cdrBuiltin(in *Interpreter, args store.Value) store.Value {
	x := in.Tables.Car(args)
	if x.Tag != store.TagPair {
		panic(govolerr.New(govolerr.BadArgument, "illegal CDR argument"))
	}
	return in.Tables.Cdr(x)
}

func consBuiltin(in *Interpreter, args store.Value) store.Value {
	a := in.Tables.Car(args)
	b := in.Tables.Car(in.Tables.Cdr(args))
	if !store.IsSExpr(a.Tag) || !store.IsSExpr(b.Tag) {
		panic(govolerr.New(govolerr.BadArgument, "illegal CONS arguments"))
	}
	return in.Tables.NewLoc(a, b)
}

func lambdaBuiltin(in *Interpreter, args store.Value) store.Value {
	pair := in.Tables.NewLoc(in.Tables.Car(args), in.Tables.Car(in.Tables.Cdr(args)))
	return store.Value{Tag: store.TagLambda, Idx: pair.Idx}
}

func specialBuiltin(in *Interpreter, args store.Value) store.Value {
	pair := in.Tables.NewLoc(in.Tables.Car(args), in.Tables.Car(in.Tables.Cdr(args)))
	return store.Value{Tag: store.TagSpecialLambda, Idx: pair.Idx}
}

func atomBuiltin(in *Interpreter, args store.Value) store.Value {
	x := in.Tables.Car(args)
	return in.Tables.Bool(x.Tag == store.TagOrdinary || x.Tag == store.TagNumber)
}

func numberpBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Tables.Bool(in.Tables.Car(args).Tag == store.TagNumber)
}

func quoteBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Tables.Car(args)
}

func listBuiltin(in *Interpreter, args store.Value) store.Value {
	return args
}

func doBuiltin(in *Interpreter, args store.Value) store.Value {
	result := in.Tables.Nil
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		result = in.Tables.Car(p)
	}
	return result
}

func condBuiltin(in *Interpreter, args store.Value) store.Value {
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		clause := in.Tables.Car(p)
		test := in.Tables.Car(clause)
		if in.Eval(test) != in.Tables.Nil {
			return in.Eval(in.Tables.Car(in.Tables.Cdr(clause)))
		}
	}
	return in.Tables.Nil
}

func evalBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Eval(in.Tables.Car(args))
}

func eqBuiltin(in *Interpreter, args store.Value) store.Value {
	a := in.Tables.Car(args)
	b := in.Tables.Car(in.Tables.Cdr(args))
	return in.Tables.Bool(a == b)
}

func nullBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Tables.Bool(in.Tables.Car(args) == in.Tables.Nil)
}

func andBuiltin(in *Interpreter, args store.Value) store.Value {
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		if in.Tables.Car(p) == in.Tables.Nil {
			return in.Tables.Nil
		}
	}
	return in.Tables.True
}

func orBuiltin(in *Interpreter, args store.Value) store.Value {
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		if in.Tables.Car(p) != in.Tables.Nil {
			return in.Tables.True
		}
	}
	return in.Tables.Nil
}

func rplacaBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagPair {
		panic(govolerr.New(govolerr.BadArgument, "illegal RPLACA argument"))
	}
	newCar := in.Tables.Car(in.Tables.Cdr(args))
	if !store.IsSExpr(newCar.Tag) {
		panic(govolerr.New(govolerr.BadArgument, "illegal RPLACA argument"))
	}
	in.Tables.SetCar(target, newCar)
	return target
}

func rplacdBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagPair {
		panic(govolerr.New(govolerr.BadArgument, "illegal RPLACD argument"))
	}
	newCdr := in.Tables.Car(in.Tables.Cdr(args))
	if !store.IsSExpr(newCdr.Tag) {
		panic(govolerr.New(govolerr.BadArgument, "illegal RPLACD argument"))
	}
	in.Tables.SetCdr(target, newCdr)
	return target
}

func bodyBuiltin(in *Interpreter, args store.Value) store.Value {
	x := in.Tables.Car(args)
	switch x.Tag {
	case store.TagLambda, store.TagSpecialLambda:
		return store.Value{Tag: store.TagPair, Idx: x.Idx}
	case store.TagUserFn, store.TagUserSF:
		raw := in.Tables.AtomValue(x.Idx)
		return store.Value{Tag: store.TagPair, Idx: raw.Idx}
	default:
		panic(govolerr.New(govolerr.BadArgument, "illegal BODY argument"))
	}
}

func mkatomBuiltin(in *Interpreter, args store.Value) store.Value {
	a := in.Tables.Car(args)
	b := in.Tables.Car(in.Tables.Cdr(args))
	return in.Tables.OrdAtom(atomText(in, a) + atomText(in, b))
}

// atomText renders the text MKATOM splices together: an ordinary atom
// contributes its name, a number contributes its printed form.
func atomText(in *Interpreter, v store.Value) string {
	switch v.Tag {
	case store.TagOrdinary:
		return in.Tables.AtomName(v.Idx)
	case store.TagNumber:
		return store.Write(in.Tables, v)
	default:
		panic(govolerr.New(govolerr.BadArgument, "illegal MKATOM argument"))
	}
}

func putplistBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagOrdinary {
		panic(govolerr.New(govolerr.BadArgument, "illegal PUTPLIST argument"))
	}
	newPlist := in.Tables.Car(in.Tables.Cdr(args))
	in.Tables.AtomEntryPtr(target.Idx).PList = newPlist
	return target
}

func getplistBuiltin(in *Interpreter, args store.Value) store.Value {
	target := in.Tables.Car(args)
	if target.Tag != store.TagOrdinary {
		panic(govolerr.New(govolerr.BadArgument, "illegal GETPLIST argument"))
	}
	return in.Tables.AtomEntryPtr(target.Idx).PList
}
