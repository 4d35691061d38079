package eval

import (
	"math"

	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/store"
)

func (in *Interpreter) num(v store.Value) float64 {
	if v.Tag != store.TagNumber {
		panic(govolerr.New(govolerr.BadArgument, "expected a number"))
	}
	return in.Tables.NumberValue(v.Idx)
}

func mathBinary(fn func(a, b float64) float64) Impl {
	return func(in *Interpreter, args store.Value) store.Value {
		a := in.num(in.Tables.Car(args))
		b := in.num(in.Tables.Car(in.Tables.Cdr(args)))
		return in.Tables.NumAtom(fn(a, b))
	}
}

func boolBinary(fn func(a, b float64) bool) Impl {
	return func(in *Interpreter, args store.Value) store.Value {
		a := in.num(in.Tables.Car(args))
		b := in.num(in.Tables.Car(in.Tables.Cdr(args)))
		return in.Tables.Bool(fn(a, b))
	}
}

var (
	plusBuiltin       = mathBinary(func(a, b float64) float64 { return a + b })
	timesBuiltin      = mathBinary(func(a, b float64) float64 { return a * b })
	differenceBuiltin = mathBinary(func(a, b float64) float64 { return a - b })
	quotientBuiltin   = mathBinary(func(a, b float64) float64 {
		if b == 0 {
			panic(govolerr.New(govolerr.BadArgument, "division by zero"))
		}
		return a / b
	})
	powerBuiltin = mathBinary(math.Pow)

	lesspBuiltin    = boolBinary(func(a, b float64) bool { return a < b })
	greaterpBuiltin = boolBinary(func(a, b float64) bool { return a > b })
)

func floorBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Tables.NumAtom(math.Floor(in.num(in.Tables.Car(args))))
}

func minusBuiltin(in *Interpreter, args store.Value) store.Value {
	return in.Tables.NumAtom(-in.num(in.Tables.Car(args)))
}

func sumBuiltin(in *Interpreter, args store.Value) store.Value {
	total := 0.0
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		total += in.num(in.Tables.Car(p))
	}
	return in.Tables.NumAtom(total)
}

func productBuiltin(in *Interpreter, args store.Value) store.Value {
	total := 1.0
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		total *= in.num(in.Tables.Car(p))
	}
	return in.Tables.NumAtom(total)
}
