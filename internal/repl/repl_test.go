package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mjhale/govol/internal/source"
	"github.com/mjhale/govol/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestSession(t *testing.T, text string) (*Session, *bytes.Buffer) {
	t.Helper()
	tb := store.NewTables(store.DefaultConfig())
	out := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	src := source.New(strings.NewReader(text), nil)
	s := New(tb, src, out, log, Options{ShowPrompt: false, MaxDepth: 1000})
	return s, out
}

// drive calls Session.step directly instead of Run (which calls os.Exit on
// EOF), so a test can observe output across several top-level forms.
func drive(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.step()
	}
}

func TestReplEvaluatesAndPrintsResults(t *testing.T) {
	s, out := newTestSession(t, "(PLUS 1 2)\n(TIMES 3 4)\n")
	drive(s, 2)
	assert.Equal(t, "3\n12\n", out.String())
}

func TestReplRecoversFromErrorAndContinues(t *testing.T) {
	s, out := newTestSession(t, "(CAR (QUOTE A))\n(PLUS 1 1)\n")
	drive(s, 2)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Contains(t, lines[0], "bad-argument")
	assert.Equal(t, "2", lines[1])
}

func TestReplErrorRestoresShadowedBindings(t *testing.T) {
	s, out := newTestSession(t,
		"(SETQ X 1)\n"+
			"(SETQ BAD (LAMBDA (X) (CAR X)))\n"+
			"(BAD 2)\n"+
			"X\n")
	drive(s, 4)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// Line 0: SETQ X -> 1, line 1: SETQ BAD -> {unnamed function}, line 2:
	// the CAR error, line 3: X restored to its pre-call value of 1.
	assert.Equal(t, "1", lines[len(lines)-1])
}

func TestReplTraceToggleEnablesTracing(t *testing.T) {
	s, out := newTestSession(t, "!TRACE\n(PLUS 1 1)\n")
	drive(s, 2)
	assert.Contains(t, out.String(), "seval:")
	assert.True(t, s.Interp.Tracing())
}
