package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/lexer"
	"github.com/mjhale/govol/internal/prelude"
	"github.com/mjhale/govol/internal/reader"
	"github.com/mjhale/govol/internal/source"
	"github.com/mjhale/govol/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSession bundles a fresh interpreter and a way to feed it more source,
// letting tests run several top-level forms in sequence against the same
// tables the way the REPL does.
type testSession struct {
	tables *store.Tables
	interp *Interpreter
	src    *source.Source
	rd     *reader.Reader
	out    *bytes.Buffer
}

func newSession(t *testing.T, withPrelude bool) *testSession {
	return newSessionDepth(t, withPrelude, 100000)
}

func newSessionDepth(t *testing.T, withPrelude bool, maxDepth int) *testSession {
	t.Helper()
	tb := store.NewTables(store.DefaultConfig())
	out := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	interp := New(tb, out, log, maxDepth)

	src := source.New(strings.NewReader(""), nil)
	lx := lexer.New(src, tb)
	rd := reader.New(lx, tb)
	interp.SetReader(rd)

	s := &testSession{tables: tb, interp: interp, src: src, rd: rd, out: out}
	if withPrelude {
		s.src.PushReader("lispinit", strings.NewReader(prelude.Source))
		s.evalAll(t)
	}
	return s
}

// evalAll runs every form currently queued in s.src to completion, ignoring
// the normal top-level EOF signal, and returns the last value produced.
func (s *testSession) evalAll(t *testing.T) store.Value {
	t.Helper()
	last := s.tables.Nil
	for {
		v, ok := s.evalOne()
		if !ok {
			return last
		}
		last = v
	}
}

func (s *testSession) evalOne() (v store.Value, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isEOF := r.(govolerr.EOFSignal); isEOF {
				ok = false
				return
			}
			panic(r)
		}
	}()
	expr := s.rd.Read()
	return s.interp.Eval(expr), true
}

func (s *testSession) run(t *testing.T, text string) store.Value {
	t.Helper()
	s.src.PushReader("test", strings.NewReader(text))
	return s.evalAll(t)
}

func TestArithmeticBuiltins(t *testing.T) {
	s := newSession(t, false)
	v := s.run(t, "(PLUS 2 3)\n")
	assert.Equal(t, "5", store.Write(s.tables, v))

	v = s.run(t, "(TIMES 2 (DIFFERENCE 9 4))\n")
	assert.Equal(t, "10", store.Write(s.tables, v))

	v = s.run(t, "(LESSP 2 3)\n")
	assert.Equal(t, "T", store.Write(s.tables, v))
}

func TestQuotientByZeroPanics(t *testing.T) {
	s := newSession(t, false)
	require.Panics(t, func() {
		s.run(t, "(QUOTIENT 1 0)\n")
	})
}

func TestCarCdrConsQuote(t *testing.T) {
	s := newSession(t, false)
	v := s.run(t, "(CAR (QUOTE (A B C)))\n")
	assert.Equal(t, "A", store.Write(s.tables, v))

	v = s.run(t, "(CDR (QUOTE (A B C)))\n")
	assert.Equal(t, "(B C)", store.Write(s.tables, v))

	v = s.run(t, "(CONS (QUOTE A) (QUOTE (B C)))\n")
	assert.Equal(t, "(A B C)", store.Write(s.tables, v))
}

func TestCarOfNonPairIsBadArgument(t *testing.T) {
	s := newSession(t, false)
	require.PanicsWithValue(t, &govolerr.EvalError{Kind: govolerr.BadArgument, Message: "illegal CAR argument"}, func() {
		s.run(t, "(CAR (QUOTE A))\n")
	})
}

func TestSetqThenReadBack(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ X 10)\n")
	v := s.run(t, "X\n")
	assert.Equal(t, "10", store.Write(s.tables, v))
}

func TestUnboundVariablePanics(t *testing.T) {
	s := newSession(t, false)
	require.Panics(t, func() {
		s.run(t, "FOOBAR\n")
	})
}

func TestLambdaDefinitionAndCall(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ DOUBLE (LAMBDA (X) (PLUS X X)))\n")
	v := s.run(t, "(DOUBLE 21)\n")
	assert.Equal(t, "42", store.Write(s.tables, v))
}

func TestCondFirstTrueBranchWins(t *testing.T) {
	s := newSession(t, false)
	v := s.run(t, "(COND (NIL 1) (T 2) (T 3))\n")
	assert.Equal(t, "2", store.Write(s.tables, v))
}

func TestArityTooManyActualsPanics(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ ONE (LAMBDA (X) X))\n")
	require.Panics(t, func() {
		s.run(t, "(ONE 1 2)\n")
	})
}

func TestArityFewerActualsLeavesExtraFormalsUntouched(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ Y 99)\n")
	s.run(t, "(SETQ TWOARG (LAMBDA (X Y) (PLUS X Y)))\n")
	v := s.run(t, "(TWOARG 1)\n")
	// Y keeps whatever it was already bound to at call time (99), the
	// documented asymmetry: too many actuals errors, too few does not.
	assert.Equal(t, "100", store.Write(s.tables, v))
}

func TestShallowBindingRestoredAfterCall(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ X 1)\n")
	s.run(t, "(SETQ ID (LAMBDA (X) X))\n")
	s.run(t, "(ID 2)\n")
	v := s.run(t, "X\n")
	assert.Equal(t, "1", store.Write(s.tables, v))
}

func TestTsetqAssignsThroughBinding(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ X 1)\n")
	s.run(t, "(SETQ SHADOW (LAMBDA (X) (TSETQ X 2)))\n")
	s.run(t, "(SHADOW 99)\n")
	v := s.run(t, "X\n")
	assert.Equal(t, "2", store.Write(s.tables, v))
}

func TestNamedFunctionAliasDereferencesToRawValue(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ MYCAR CAR)\n")
	v := s.run(t, "(MYCAR (QUOTE (A B)))\n")
	assert.Equal(t, "A", store.Write(s.tables, v))
}

func TestMkatomSplicesAtomAndNumber(t *testing.T) {
	s := newSession(t, false)
	v := s.run(t, "(MKATOM (QUOTE X) 5)\n")
	assert.Equal(t, "X5", store.Write(s.tables, v))
}

func TestPutplistGetplist(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(PUTPLIST (QUOTE X) (QUOTE ((A . 1))))\n")
	v := s.run(t, "(GETPLIST (QUOTE X))\n")
	assert.Equal(t, "((A . 1))", store.Write(s.tables, v))
}

func TestTraceToggleBubblesUpAsDistinctPanicType(t *testing.T) {
	s := newSession(t, false)
	require.PanicsWithValue(t, govolerr.TraceToggle{Enable: true}, func() {
		s.run(t, "!TRACE\n")
	})
}

func TestPreludeAppendReverseEqual(t *testing.T) {
	s := newSession(t, true)

	v := s.run(t, "(APPEND (QUOTE (A B)) (QUOTE (C D)))\n")
	assert.Equal(t, "(A B C D)", store.Write(s.tables, v))

	v = s.run(t, "(REVERSE (QUOTE (A B C)))\n")
	assert.Equal(t, "(C B A)", store.Write(s.tables, v))

	v = s.run(t, "(EQUAL (QUOTE (A B)) (QUOTE (A B)))\n")
	assert.Equal(t, "T", store.Write(s.tables, v))

	v = s.run(t, "(EQUAL (QUOTE (A B)) (QUOTE (A C)))\n")
	assert.Equal(t, "NIL", store.Write(s.tables, v))
}

func TestPreludeApplyCallsFunctionOnArguments(t *testing.T) {
	s := newSession(t, true)
	v := s.run(t, "(APPLY (QUOTE PLUS) (QUOTE (2 3)))\n")
	assert.Equal(t, "5", store.Write(s.tables, v))
}

func TestPreludeAssocAndProplist(t *testing.T) {
	s := newSession(t, true)
	v := s.run(t, "(PUTPROP (QUOTE X) (QUOTE COLOR) (QUOTE RED))\n")
	assert.Equal(t, "RED", store.Write(s.tables, v))

	v = s.run(t, "(GETPROP (QUOTE X) (QUOTE COLOR))\n")
	assert.Equal(t, "RED", store.Write(s.tables, v))

	s.run(t, "(REMPROP (QUOTE X) (QUOTE COLOR))\n")
	v = s.run(t, "(GETPROP (QUOTE X) (QUOTE COLOR))\n")
	assert.Equal(t, "NIL", store.Write(s.tables, v))
}

func TestPreludeOntoIntoMutateBoundList(t *testing.T) {
	// ONTO/INTO are dynamically-scoped FEXPRs whose own formal parameter is
	// named L; a caller-side variable also named L would be captured, so
	// this test (like any real govol program using them) picks a distinct
	// name for the list it mutates.
	s := newSession(t, true)
	s.run(t, "(SETQ MYLIST (QUOTE (B C)))\n")
	s.run(t, "(ONTO (QUOTE A) MYLIST)\n")
	v := s.run(t, "MYLIST\n")
	assert.Equal(t, "(A B C)", store.Write(s.tables, v))

	s.run(t, "(INTO (QUOTE D) MYLIST)\n")
	v = s.run(t, "MYLIST\n")
	assert.Equal(t, "(A B C D)", store.Write(s.tables, v))
}

func TestRecursiveFactorial(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ F (LAMBDA (N) (COND ((EQ N 0) 1) (T (TIMES N (F (DIFFERENCE N 1)))))))\n")
	v := s.run(t, "(F 5)\n")
	assert.Equal(t, "120", store.Write(s.tables, v))
}

func TestSingleSymbolFormalReceivesWholeArgumentList(t *testing.T) {
	s := newSession(t, false)
	s.run(t, "(SETQ F (LAMBDA L L))\n")
	v := s.run(t, "(F 1 2 3)\n")
	assert.Equal(t, "(1 2 3)", store.Write(s.tables, v))
}

func TestEvalOfQuoteMatchesDirectEvaluation(t *testing.T) {
	s := newSession(t, false)
	direct := s.run(t, "(PLUS 1 2)\n")
	viaEval := s.run(t, "(EVAL (QUOTE (PLUS 1 2)))\n")
	assert.Equal(t, store.Write(s.tables, direct), store.Write(s.tables, viaEval))
}

func TestMaxDepthGuardPanicsOnDeepRecursion(t *testing.T) {
	s := newSessionDepth(t, false, 10)
	s.run(t, "(SETQ LOOP (LAMBDA (X) (LOOP X)))\n")
	require.Panics(t, func() {
		s.run(t, "(LOOP 1)\n")
	})
}
