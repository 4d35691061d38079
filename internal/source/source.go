// Package source manages the stack of character streams govol reads from:
// the interactive terminal (or a script fed on stdin) at the bottom, and
// zero or more files pushed on top of it by the "@file" directive. It
// handles line buffering, comment stripping, tab expansion, and the
// terminal prompt/transcript tee; it knows nothing about token syntax.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type frame struct {
	name       string
	reader     *bufio.Reader
	lineFn     func(prompt string) (string, error)
	closer     io.Closer
	line       string
	pos        int
	isTerminal bool
}

// Source is a stack of character streams with single-rune lookahead.
type Source struct {
	frames []*frame
	log    io.Writer

	// Prompt is the character shown before the next line is read from the
	// terminal: '>' at top level, '@' partway through a file switch.
	Prompt byte
	// PromptFn, if set, is called with Prompt immediately before each line
	// is read from the terminal frame.
	PromptFn func(prompt byte)
}

// New creates a Source whose bottom frame reads from r (typically stdin).
// Lines read from that bottom frame are also copied to log, if non-nil,
// forming the plain-text session transcript.
func New(r io.Reader, log io.Writer) *Source {
	return &Source{
		frames: []*frame{{
			name:       "<stdin>",
			reader:     bufio.NewReader(r),
			isTerminal: true,
		}},
		log:    log,
		Prompt: '>',
	}
}

// NewInteractive creates a Source whose bottom frame is driven by lineFn
// (typically a readline instance's Readline method) instead of a raw
// io.Reader, so the terminal gets history and line editing for free.
func NewInteractive(lineFn func(prompt string) (string, error), log io.Writer) *Source {
	return &Source{
		frames: []*frame{{
			name:       "<stdin>",
			lineFn:     lineFn,
			isTerminal: true,
		}},
		log:    log,
		Prompt: '>',
	}
}

// Inject queues text as if it had just been typed at the terminal, ahead of
// whatever is left of the terminal frame's current line.
func (s *Source) Inject(text string) {
	bottom := s.frames[0]
	bottom.line = text + bottom.line[bottom.pos:]
	bottom.pos = 0
}

func (s *Source) top() *frame { return s.frames[len(s.frames)-1] }

// refill ensures the current frame has a non-empty line available,
// descending the stream stack past exhausted file frames. It returns false
// only when the terminal (bottom) frame itself is exhausted.
func (s *Source) refill() bool {
	for {
		f := s.top()
		if f.pos < len(f.line) {
			return true
		}
		var line string
		var err error
		if f.lineFn != nil {
			line, err = f.lineFn(string(s.Prompt) + " ")
		} else {
			if f.isTerminal && s.PromptFn != nil {
				s.PromptFn(s.Prompt)
			}
			line, err = f.reader.ReadString('\n')
		}
		if err != nil && line == "" {
			if len(s.frames) == 1 {
				return false
			}
			s.popFrame()
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		line = strings.ReplaceAll(line, "\t", "        ")
		if strings.HasPrefix(strings.TrimLeft(line, " "), "/") {
			continue
		}
		if f.isTerminal && s.log != nil {
			io.WriteString(s.log, line+"\n")
		}
		f.line = line + " "
		f.pos = 0
		if len(s.frames) == 1 {
			s.Prompt = '>'
		}
		return true
	}
}

func (s *Source) popFrame() {
	f := s.frames[len(s.frames)-1]
	if f.closer != nil {
		f.closer.Close()
	}
	s.frames = s.frames[:len(s.frames)-1]
	if len(s.frames) == 1 {
		s.Prompt = '>'
	}
}

// Peek returns the next rune without consuming it.
func (s *Source) Peek() (rune, bool) {
	if !s.refill() {
		return 0, false
	}
	f := s.top()
	r, _ := utf8.DecodeRuneInString(f.line[f.pos:])
	return r, true
}

// Next returns and consumes the next rune.
func (s *Source) Next() (rune, bool) {
	if !s.refill() {
		return 0, false
	}
	f := s.top()
	r, size := utf8.DecodeRuneInString(f.line[f.pos:])
	f.pos += size
	return r, true
}

// PushFile opens name and pushes it atop the stream stack; subsequent
// characters come from the file until it is exhausted, at which point
// reading resumes from whatever stream was active before.
func (s *Source) PushFile(name string) error {
	fd, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "cannot open @%s", name)
	}
	s.frames = append(s.frames, &frame{
		name:   name,
		reader: bufio.NewReader(fd),
		closer: fd,
	})
	s.Prompt = '@'
	return nil
}

// PushReader pushes an in-memory stream atop the stack, the way an embedded
// prelude is loaded without there being a real file on disk to open.
func (s *Source) PushReader(name string, r io.Reader) {
	s.frames = append(s.frames, &frame{
		name:   name,
		reader: bufio.NewReader(r),
	})
	s.Prompt = '@'
}

// Depth reports how many stream frames are currently open (1 means only
// the terminal).
func (s *Source) Depth() int { return len(s.frames) }
