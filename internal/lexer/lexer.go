// Package lexer turns a character source into a stream of tokens, interning
// each atom or number directly into the storage tables the way the original
// tokenizer returned an already-tagged pointer rather than raw text.
package lexer

import (
	"strconv"
	"strings"

	"github.com/mjhale/govol/internal/govolerr"
	"github.com/mjhale/govol/internal/source"
	"github.com/mjhale/govol/internal/store"
	"github.com/mjhale/govol/internal/token"
)

// Lexer scans tokens from a character Source, interning Atom and Number
// tokens into the store as it goes. It supports one token of pushback,
// matching the reader's need to look one token ahead when deciding whether
// a list continues or ends.
type Lexer struct {
	src     *source.Source
	tables  *store.Tables
	pending *token.Token
	pendVal store.Value
}

// New creates a Lexer reading from src and interning into tables.
func New(src *source.Source, tables *store.Tables) *Lexer {
	return &Lexer{src: src, tables: tables}
}

// Back pushes tok (with its interned value v) back onto the stream; the
// next call to Next returns it again.
func (l *Lexer) Back(tok token.Token, v store.Value) {
	l.pending = &tok
	l.pendVal = v
}

// Next returns the next token. For Atom and Number tokens it also returns
// the store.Value the token was interned as; for punctuation tokens the
// returned Value is the zero Value and should be ignored.
func (l *Lexer) Next() (token.Token, store.Value) {
	if l.pending != nil {
		tok, v := *l.pending, l.pendVal
		l.pending = nil
		return tok, v
	}
	return l.scan()
}

func (l *Lexer) scan() (token.Token, store.Value) {
	for {
		r, ok := l.src.Next()
		if !ok {
			panic(govolerr.EOFSignal{})
		}
		switch {
		case r == ' ' || r == '\n':
			continue
		case r == '(':
			return l.openOrNil()
		case r == ')':
			return token.Token{Type: token.Close}, store.Value{}
		case r == '\'':
			return token.Token{Type: token.Quote}, store.Value{}
		case r == '.':
			if pr, ok := l.src.Peek(); ok && isDigit(pr) {
				return l.number('.')
			}
			return token.Token{Type: token.Dot}, store.Value{}
		case r == '+' || r == '-':
			if pr, ok := l.src.Peek(); ok && (isDigit(pr) || pr == '.') {
				return l.number(r)
			}
			return l.atom(r)
		case isDigit(r):
			return l.number(r)
		default:
			return l.atom(r)
		}
	}
}

// openOrNil consumes whitespace following an open paren and, if it is
// immediately followed by a close paren, collapses "()" into the single
// atom NIL rather than an Open token, matching the reader's own shortcut.
func (l *Lexer) openOrNil() (token.Token, store.Value) {
	for {
		r, ok := l.src.Peek()
		if !ok || r != ' ' {
			break
		}
		l.src.Next()
	}
	if r, ok := l.src.Peek(); ok && r == ')' {
		l.src.Next()
		return token.Token{Type: token.Atom, Text: "NIL"}, l.tables.Nil
	}
	return token.Token{Type: token.Open}, store.Value{}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isDelim(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '(' || r == ')' || r == '.' || r == '\''
}

func (l *Lexer) readRun(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for {
		r, ok := l.src.Peek()
		if !ok || isDelim(r) {
			break
		}
		l.src.Next()
		b.WriteRune(r)
	}
	return b.String()
}

func (l *Lexer) number(first rune) (token.Token, store.Value) {
	var b strings.Builder
	b.WriteRune(first)
	if first != '.' {
		for {
			r, ok := l.src.Peek()
			if !ok || !isDigit(r) {
				break
			}
			l.src.Next()
			b.WriteRune(r)
		}
		if r, ok := l.src.Peek(); ok && r == '.' {
			l.src.Next()
			b.WriteRune('.')
			l.digits(&b)
		}
	} else {
		l.digits(&b)
	}
	text := b.String()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		panic(govolerr.New(govolerr.Syntax, "bad number syntax: %s", text))
	}
	return token.Token{Type: token.Number, Num: f}, l.tables.NumAtom(f)
}

func (l *Lexer) digits(b *strings.Builder) {
	for {
		r, ok := l.src.Peek()
		if !ok || !isDigit(r) {
			break
		}
		l.src.Next()
		b.WriteRune(r)
	}
}

func (l *Lexer) atom(first rune) (token.Token, store.Value) {
	text := l.readRun(first)
	if strings.HasPrefix(text, "@") {
		name := text[1:]
		if err := l.src.PushFile(name); err != nil {
			panic(govolerr.New(govolerr.IO, "%v", err))
		}
		return l.scan()
	}
	upper := strings.ToUpper(text)
	return token.Token{Type: token.Atom, Text: upper}, l.tables.OrdAtom(upper)
}
