package eval

import (
	"fmt"

	"github.com/mjhale/govol/internal/store"
)

// traceEnter and traceExit implement the "n seval:/n result:" trace pairs.
// Printing is suppressed while suppress > 0, which evalQuiet uses to hide
// the sub-evaluation of a form's head and of SETQ/TSETQ/SET's own return
// value, matching what a reader of the transcript actually wants to see.
func (in *Interpreter) traceEnter(p store.Value) {
	if !in.traceOn || in.suppress > 0 {
		return
	}
	in.traceRows++
	line := fmt.Sprintf("%d seval:%s", in.traceRows, store.Write(in.Tables, p))
	fmt.Fprintln(in.Out, line)
	in.Log.WithField("depth", in.traceRows).Debug("seval")
}

func (in *Interpreter) traceExit(v store.Value) {
	if !in.traceOn || in.suppress > 0 {
		return
	}
	line := fmt.Sprintf("%d result:%s", in.traceRows, store.Write(in.Tables, v))
	fmt.Fprintln(in.Out, line)
	in.Log.WithField("depth", in.traceRows).Debug("result")
	in.traceRows--
}
