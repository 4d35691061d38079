package govolerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(BadArgument, "illegal %s argument", "CAR")
	assert.Equal(t, "bad-argument: illegal CAR argument", err.Error())
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		Syntax:          "syntax",
		UnboundVariable: "unbound-variable",
		NotAFunction:    "not-a-function",
		BadArgument:     "bad-argument",
		Arity:           "arity",
		Capacity:        "capacity",
		OutOfSpace:      "out-of-space",
		IO:              "io",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestEOFSignalAndTraceToggleMessages(t *testing.T) {
	var err error = EOFSignal{}
	assert.Equal(t, "end of file", err.Error())

	var tt error = TraceToggle{Enable: true}
	assert.Equal(t, "", tt.Error())
}
