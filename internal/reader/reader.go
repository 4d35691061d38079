// Package reader implements SREAD: building one S-expression out of the
// token stream produced by internal/lexer.
package reader

import (
	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/lexer"
	"github.com/mjhale/govol/internal/store"
	"github.com/mjhale/govol/internal/token"
)

// Reader builds store.Value S-expression trees from a token stream.
type Reader struct {
	lex    *lexer.Lexer
	tables *store.Tables
}

// New creates a Reader pulling tokens from lex and allocating into tables.
func New(lex *lexer.Lexer, tables *store.Tables) *Reader {
	return &Reader{lex: lex, tables: tables}
}

// Read consumes and returns one complete S-expression. It panics with
// govolerr.EOFSignal if the underlying stream is exhausted before a
// complete expression is read, and with a *govolerr.EvalError of kind
// Syntax on malformed input.
func (r *Reader) Read() store.Value {
	tok, v := r.lex.Next()
	switch tok.Type {
	case token.Atom, token.Number:
		return v
	case token.Quote:
		x := r.Read()
		return r.tables.NewLoc(r.tables.Quote, r.tables.NewLoc(x, r.tables.Nil))
	case token.Open:
		return r.readList()
	default:
		panic(govolerr.New(govolerr.Syntax, "unexpected %s", tok))
	}
}

// readList reads the contents of a list after the opening paren has
// already been consumed, threading the cell being built through the
// reader's GC root stack as it grows.
func (r *Reader) readList() store.Value {
	head := r.tables.NewLoc(r.tables.Nil, r.tables.Nil)
	r.tables.PushRead(head)
	defer r.tables.PopRead()

	j := head
	r.tables.SetCar(j, r.Read())

	for {
		tok, v := r.lex.Next()
		switch tok.Type {
		case token.Atom, token.Number, token.Open, token.Quote:
			r.lex.Back(tok, v)
			next := r.tables.NewLoc(r.tables.Nil, r.tables.Nil)
			r.tables.SetCdr(j, next)
			j = next
			r.tables.SetCar(j, r.Read())
		case token.Dot:
			r.tables.SetCdr(j, r.Read())
			closeTok, _ := r.lex.Next()
			if closeTok.Type != token.Close {
				panic(govolerr.New(govolerr.Syntax, "missing ) after dotted tail"))
			}
			return head
		case token.Close:
			return head
		default:
			panic(govolerr.New(govolerr.Syntax, "unexpected %s inside list", tok))
		}
	}
}
