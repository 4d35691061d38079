package eval

import (
	"fmt"

	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/store"
)

func readBuiltin(in *Interpreter, args store.Value) store.Value {
	if in.reader == nil {
		panic(govolerr.New(govolerr.IO, "no input stream available to READ"))
	}
	return in.reader.Read()
}

func printBuiltin(in *Interpreter, args store.Value) store.Value {
	result := in.Tables.Nil
	first := true
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		if !first {
			fmt.Fprint(in.Out, " ")
		}
		first = false
		result = in.Tables.Car(p)
		fmt.Fprint(in.Out, store.Write(in.Tables, result))
	}
	return result
}

func printcrBuiltin(in *Interpreter, args store.Value) store.Value {
	result := in.Tables.Nil
	for p := args; p.Tag == store.TagPair; p = in.Tables.Cdr(p) {
		result = in.Tables.Car(p)
		fmt.Fprintln(in.Out, store.Write(in.Tables, result))
	}
	return result
}
