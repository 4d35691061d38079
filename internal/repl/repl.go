// Package repl drives the read-eval-print loop: it owns the error-unwind
// handler that recovers from a panicked *govolerr.EvalError, restores every
// shallow binding to its top-level value, and resumes the prompt, the way
// the original interpreter's setjmp/longjmp handler did.
package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/mjhale/govol/internal/eval"
	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/lexer"
	"github.com/mjhale/govol/internal/reader"
	"github.com/mjhale/govol/internal/source"
	"github.com/mjhale/govol/internal/store"
	"github.com/sirupsen/logrus"
)

// Options configures a Session's behaviour; every field has a direct
// counterpart among the CLI flags.
type Options struct {
	ShowPrompt bool
	Prompt     string
	MaxDepth   int
}

// Session wires the storage tables, character source, tokenizer, reader,
// and evaluator into a single read-eval-print loop.
type Session struct {
	Tables *store.Tables
	Src    *source.Source
	Interp *eval.Interpreter

	reader *reader.Reader
	out    io.Writer
	log    *logrus.Logger
	opts   Options
}

// New builds a Session. src should already have any startup streams (a
// prelude, files named on the command line) pushed onto it; Run begins
// reading from whatever is on top of that stack.
func New(tables *store.Tables, src *source.Source, out io.Writer, log *logrus.Logger, opts Options) *Session {
	interp := eval.New(tables, out, log, opts.MaxDepth)
	lex := lexer.New(src, tables)
	rd := reader.New(lex, tables)
	interp.SetReader(rd)

	s := &Session{Tables: tables, Src: src, Interp: interp, reader: rd, out: out, log: log, opts: opts}
	if opts.ShowPrompt {
		src.PromptFn = func(p byte) { fmt.Fprintf(out, "%s", opts.Prompt) }
	}
	return s
}

// Run reads, evaluates, and prints forms until the input stream is
// exhausted, at which point it exits the process with status 0 — matching
// the original interpreter's behaviour of treating top-level EOF as a
// normal, successful shutdown rather than an error.
func (s *Session) Run() {
	for {
		s.step()
	}
}

func (s *Session) step() {
	defer s.recover()
	expr := s.reader.Read()
	result := s.Interp.Eval(expr)
	fmt.Fprintln(s.out, store.Write(s.Tables, result))
}

func (s *Session) recover() {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case govolerr.EOFSignal:
		os.Exit(0)
	case govolerr.TraceToggle:
		s.Interp.SetTrace(e.Enable)
		s.Tables.RestoreTopLevelBindings()
		s.Tables.ResetStacks()
		s.Interp.ResetDepth()
	case *govolerr.EvalError:
		fmt.Fprintln(s.out, "::"+e.Error())
		s.log.WithField("kind", e.Kind.String()).Warn(e.Message)
		s.Tables.RestoreTopLevelBindings()
		s.Tables.ResetStacks()
		s.Interp.ResetDepth()
	default:
		panic(r)
	}
}
