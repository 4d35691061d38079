package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Write renders v the way PRINT/PRINTCR and the REPL's result line do:
// proper lists as "(a b c)", improper ones as "(a b . c)", numbers with
// Go's shortest round-tripping decimal form, and function/special-form
// values as the bracketed descriptions the original printer used.
func Write(t *Tables, v Value) string {
	var b strings.Builder
	writeValue(&b, t, v)
	return b.String()
}

func writeValue(b *strings.Builder, t *Tables, v Value) {
	switch v.Tag {
	case TagPair:
		writeList(b, t, v)
	case TagOrdinary:
		b.WriteString(t.AtomName(v.Idx))
	case TagNumber:
		b.WriteString(formatNumber(t.NumberValue(v.Idx)))
	case TagBuiltinFn:
		fmt.Fprintf(b, "{builtin function: %s}", t.AtomName(v.Idx))
	case TagBuiltinSF:
		fmt.Fprintf(b, "{builtin special form: %s}", t.AtomName(v.Idx))
	case TagUserFn:
		fmt.Fprintf(b, "{user defined function: %s}", t.AtomName(v.Idx))
	case TagUserSF:
		fmt.Fprintf(b, "{user defined special form: %s}", t.AtomName(v.Idx))
	case TagLambda:
		b.WriteString("{unnamed function}")
	case TagSpecialLambda:
		b.WriteString("{unnamed special form}")
	case TagUndefined:
		b.WriteString("{undefined}")
	default:
		b.WriteString("{?}")
	}
}

// writeList walks the cdr chain. It does not guard against cycles: a
// circular list, built with RPLACD, will loop forever here exactly as it
// would in the original printer.
func writeList(b *strings.Builder, t *Tables, v Value) {
	b.WriteByte('(')
	writeValue(b, t, t.Car(v))
	rest := t.Cdr(v)
	for rest.Tag == TagPair {
		b.WriteByte(' ')
		writeValue(b, t, t.Car(rest))
		rest = t.Cdr(rest)
	}
	if rest != t.Nil {
		b.WriteString(" . ")
		writeValue(b, t, rest)
	}
	b.WriteByte(')')
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
