// Package eval implements SEVAL: the tree-walking evaluator, its table of
// roughly forty builtin functions and special forms, and the shallow
// (dynamic) binding discipline that governs every function call.
package eval

import (
	"io"
	"strings"

	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/store"
	"github.com/sirupsen/logrus"
)

// ExprReader is the interface the READ builtin uses to pull one more
// S-expression from whatever input stream is currently active. It is
// satisfied by *reader.Reader; the dependency is inverted here so eval does
// not need to import reader; the REPL wires the two together.
type ExprReader interface {
	Read() store.Value
}

// Impl is the Go function backing one builtin. For a function (Kind ==
// Function) args is the already-evaluated argument list; for a special
// form (Kind == SpecialForm) args is the raw, unevaluated argument list.
type Impl func(in *Interpreter, args store.Value) store.Value

// Kind distinguishes functions (arguments evaluated before the call) from
// special forms (arguments passed through raw).
type Kind int

const (
	Function Kind = iota
	SpecialForm
)

// Builtin pairs a Go implementation with the bookkeeping the evaluator
// needs to dispatch to it.
type Builtin struct {
	Name string
	Kind Kind
	Fn   Impl
}

// Interpreter ties the storage tables to the builtin dispatch table and the
// side channels (trace output, structured logging, the active reader) a
// running evaluation needs.
type Interpreter struct {
	Tables   *store.Tables
	Out      io.Writer
	Log      *logrus.Logger
	MaxDepth int

	builtins map[int]*Builtin
	reader   ExprReader

	traceOn   bool
	suppress  int
	traceRows int
	callDepth int
}

// New builds an Interpreter and installs the builtin table into tables.
func New(tables *store.Tables, out io.Writer, log *logrus.Logger, maxDepth int) *Interpreter {
	in := &Interpreter{
		Tables:   tables,
		Out:      out,
		Log:      log,
		MaxDepth: maxDepth,
		builtins: make(map[int]*Builtin),
	}
	in.installBuiltins()
	return in
}

// SetReader wires the active S-expression reader in, letting the READ
// builtin consume more input from whatever stream the REPL has open.
func (in *Interpreter) SetReader(r ExprReader) { in.reader = r }

// SetTrace enables or disables the "n seval:/n result:" trace.
func (in *Interpreter) SetTrace(on bool) { in.traceOn = on }

// Tracing reports whether tracing is currently enabled.
func (in *Interpreter) Tracing() bool { return in.traceOn }

// ResetDepth clears the trace-depth and call-depth counters, called by the
// REPL after unwinding from an error.
func (in *Interpreter) ResetDepth() {
	in.traceRows = 0
	in.callDepth = 0
	in.suppress = 0
}

// Eval is SEVAL's entry point: evaluate one expression and return its
// value, honoring the trace switch and the maximum call-depth guard.
func (in *Interpreter) Eval(p store.Value) store.Value {
	in.callDepth++
	if in.MaxDepth > 0 && in.callDepth > in.MaxDepth {
		in.callDepth--
		panic(govolerr.New(govolerr.Capacity, "stack too deep"))
	}
	in.traceEnter(p)
	v := in.evalExpr(p)
	in.traceExit(v)
	in.callDepth--
	return v
}

// evalQuiet evaluates v with tracing suppressed, used for the head of a
// form and for the re-evaluation SETQ/TSETQ/SET perform to compute their
// own return value.
func (in *Interpreter) evalQuiet(v store.Value) store.Value {
	in.suppress++
	defer func() { in.suppress-- }()
	return in.Eval(v)
}

func (in *Interpreter) evalExpr(p store.Value) store.Value {
	if p.Tag != store.TagPair {
		return in.evalAtomic(p)
	}
	return in.evalForm(p)
}

// evalAtomic evaluates a non-cons expression: numbers and the various
// function-form tags are self-evaluating, and ordinary atoms are looked up
// (with the "!TRACE" / "!NOTRACE" pseudo-atoms intercepted first).
func (in *Interpreter) evalAtomic(p store.Value) store.Value {
	if p.Tag != store.TagOrdinary {
		return p
	}
	name := in.Tables.AtomName(p.Idx)
	if strings.HasPrefix(name, "!") {
		panic(govolerr.TraceToggle{Enable: name == "!TRACE"})
	}
	v := in.Tables.AtomValue(p.Idx)
	if v.Tag == store.TagUndefined {
		panic(govolerr.New(govolerr.UnboundVariable, "%s is undefined", name))
	}
	if store.IsNamedFunctionForm(v.Tag) {
		// A callable bound to an atom prints by the referring atom's own
		// name, not the name of whatever it was originally defined as.
		return store.Value{Tag: v.Tag, Idx: p.Idx}
	}
	return v
}

// evalForm evaluates a cons-form: resolve the head to a function or
// special form, evaluate the arguments if it is a function, and dispatch.
func (in *Interpreter) evalForm(p store.Value) store.Value {
	in.Tables.PushCurrentIn(p)

	f := in.evalQuiet(in.Tables.Car(p))
	ty := f.Tag
	if !store.IsFunctionForm(ty) {
		in.Tables.PopCurrentIn()
		panic(govolerr.New(govolerr.NotAFunction, "invalid function or special form"))
	}
	if store.IsNamedFunctionForm(ty) {
		f = in.Tables.AtomValue(f.Idx)
		ty = f.Tag
		if !store.IsFunctionForm(ty) {
			in.Tables.PopCurrentIn()
			panic(govolerr.New(govolerr.NotAFunction, "invalid function or special form"))
		}
	}

	in.Tables.SetTopCurrentIn(in.Tables.Cdr(p))

	args := in.Tables.Cdr(p)
	isFunc := store.IsCallableFunction(ty)
	if isFunc {
		args = in.evalArgList(args)
	}

	var result store.Value
	switch ty {
	case store.TagBuiltinFn, store.TagBuiltinSF:
		b, ok := in.builtins[f.Idx]
		if !ok {
			panic(govolerr.New(govolerr.NotAFunction, "unregistered builtin"))
		}
		result = b.Fn(in, args)
	case store.TagLambda, store.TagSpecialLambda:
		result = in.applyUserDefined(f.Idx, args)
	default:
		panic(govolerr.New(govolerr.NotAFunction, "invalid function or special form"))
	}

	if isFunc {
		in.Tables.PopEvalArgs()
	}
	in.Tables.PopCurrentIn()
	return result
}

// evalArgList evaluates each element of an unevaluated argument list in
// order, consing the results into a fresh list kept live as a GC root
// while later elements (which may themselves trigger a collection) are
// still being evaluated.
func (in *Interpreter) evalArgList(list store.Value) store.Value {
	in.Tables.PushEvalArgs(in.Tables.Nil)
	head := in.Tables.Nil
	tail := in.Tables.Nil
	for list.Tag == store.TagPair {
		elem := in.Eval(in.Tables.Car(list))
		cell := in.Tables.NewLoc(elem, in.Tables.Nil)
		if head == in.Tables.Nil {
			head = cell
		} else {
			in.Tables.SetCdr(tail, cell)
		}
		tail = cell
		in.Tables.SetTopEvalArgs(head)
		list = in.Tables.Cdr(list)
	}
	return head
}

type boundFormal struct{ atomIdx int }

func (in *Interpreter) bindFormal(atomIdx int, value store.Value) boundFormal {
	e := in.Tables.AtomEntryPtr(atomIdx)
	e.BindStack = append(e.BindStack, e.Value)
	e.Value = value
	return boundFormal{atomIdx}
}

func (in *Interpreter) unbindAll(bound []boundFormal) {
	for i := len(bound) - 1; i >= 0; i-- {
		e := in.Tables.AtomEntryPtr(bound[i].atomIdx)
		n := len(e.BindStack)
		e.Value = e.BindStack[n-1]
		e.BindStack = e.BindStack[:n-1]
	}
}

// applyUserDefined shallow-binds the formals of a user-defined (unnamed)
// function or special form to args, evaluates the body, and restores the
// previous bindings before returning.
//
// A single ordinary atom in formal position binds to the whole argument
// list. A proper list of formals binds pairwise; passing more actuals than
// formals is an arity error, but passing fewer leaves the extra formals
// bound to whatever they already held (this asymmetry is intentional, not
// a bug: it is the documented quirk of the original evaluator).
func (in *Interpreter) applyUserDefined(bodyIdx int, args store.Value) store.Value {
	bodyPair := store.Value{Tag: store.TagPair, Idx: bodyIdx}
	formals := in.Tables.Car(bodyPair)
	body := in.Tables.Cdr(bodyPair)

	var bound []boundFormal
	if formals.Tag == store.TagOrdinary && formals != in.Tables.Nil {
		bound = append(bound, in.bindFormal(formals.Idx, args))
	} else {
		fa, p := formals, args
		for p.Tag == store.TagPair && fa.Tag == store.TagPair {
			formal := in.Tables.Car(fa)
			if formal.Tag != store.TagOrdinary {
				in.unbindAll(bound)
				panic(govolerr.New(govolerr.BadArgument, "formal parameter is not an atom"))
			}
			actual := in.Tables.Car(p)
			if store.IsNamedFunctionForm(actual.Tag) {
				actual = in.Tables.AtomValue(actual.Idx)
			}
			bound = append(bound, in.bindFormal(formal.Idx, actual))
			fa = in.Tables.Cdr(fa)
			p = in.Tables.Cdr(p)
		}
		if p != in.Tables.Nil {
			in.unbindAll(bound)
			panic(govolerr.New(govolerr.Arity, "too many actuals"))
		}
	}

	result := in.Eval(body)
	in.unbindAll(bound)
	return result
}
