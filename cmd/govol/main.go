// Command govol is an implementation of the language defined in the first
// few pages of the LISP 1.5 Programmer's Manual by McCarthy, Abrahams,
// Edwards, Hart, and Levin, from MIT in 1962: a tagged-pointer value store
// with mark-sweep collection, a recursive-descent reader, and a
// tree-walking evaluator with shallow (dynamic) binding.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mjhale/govol/internal/config"
	"github.com/mjhale/govol/internal/prelude"
	"github.com/mjhale/govol/internal/repl"
	"github.com/mjhale/govol/internal/source"
	"github.com/mjhale/govol/internal/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagShowPrompt bool
	flagPrompt     string
	flagDepth      int
	flagTrace      bool
	flagLogPath    string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "govol [file ...]",
		Short: "A tagged-pointer LISP 1.5 interpreter",
		Long: "govol reads and evaluates LISP 1.5 source, either from files named\n" +
			"on the command line or interactively from the terminal afterward.",
		RunE: runGovol,
	}
	cmd.Flags().BoolVar(&flagShowPrompt, "prompt", true, "show the interactive prompt")
	cmd.Flags().StringVar(&flagPrompt, "prompt-text", "> ", "interactive prompt text")
	cmd.Flags().IntVar(&flagDepth, "depth", 100000, "maximum evaluation call depth; 0 means no limit")
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "start with SEVAL tracing enabled")
	cmd.Flags().StringVar(&flagLogPath, "log", "", "transcript/diagnostic log path (overrides GOVOL_LOG_PATH)")
	return cmd
}

func runGovol(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}
	if flagLogPath != "" {
		cfg.LogPath = flagLogPath
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening transcript log %s", cfg.LogPath)
	}
	defer logFile.Close()

	log := logrus.New()
	log.SetOutput(logFile)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)

	tables := store.NewTables(cfg.StoreConfig())

	stdoutTee := io.MultiWriter(os.Stdout, logFile)

	src, closeSrc, err := newSource(stdoutTee, logFile)
	if err != nil {
		return err
	}
	defer closeSrc()

	// The stack is LIFO, so push in reverse to make args[0] the first thing
	// read, then push the prelude last so it is read before any of them.
	for i := len(args) - 1; i >= 0; i-- {
		if err := src.PushFile(args[i]); err != nil {
			return errors.Wrapf(err, "loading %s", args[i])
		}
	}
	src.PushReader("lispinit", strings.NewReader(prelude.Source))

	opts := repl.Options{
		ShowPrompt: flagShowPrompt,
		Prompt:     flagPrompt,
		MaxDepth:   flagDepth,
	}
	session := repl.New(tables, src, stdoutTee, log, opts)
	session.Interp.SetTrace(flagTrace)
	session.Run()
	return nil
}

// newSource builds the terminal-level character source: readline-backed
// (with history and line editing) when stdin is a real terminal, a plain
// buffered reader over stdin otherwise.
func newSource(out io.Writer, log io.Writer) (*source.Source, func(), error) {
	if !isTerminal(os.Stdin) {
		return source.New(os.Stdin, log), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "starting readline")
	}
	lineFn := func(string) (string, error) {
		prompt := ""
		if flagShowPrompt {
			prompt = flagPrompt
		}
		rl.SetPrompt(prompt)
		return rl.Readline()
	}
	return source.NewInteractive(lineFn, log), func() { rl.Close() }, nil
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".govol_history"
	}
	return home + "/.govol_history"
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
