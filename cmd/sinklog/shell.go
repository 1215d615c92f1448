package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler"
	"github.com/philipp01105/sinklog/logger"
)

// shell is the interactive prompt.
type shell struct {
	rl *readline.Instance
}

func newShell() (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sinklog> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &shell{rl: rl}, nil
}

// Stdout returns a writer that does not clobber the prompt.
func (s *shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

func (s *shell) Close() error {
	return s.rl.Close()
}

// Run reads commands until quit or EOF.
func (s *shell) Run(log *logger.Logger) {
	defer s.rl.Close()
	out := s.rl.Stdout()
	printHelp(out)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}
		if !execute(log, out, line) {
			return
		}
	}
}

// execute runs one command line and reports whether the prompt should
// keep going.
func execute(log *logger.Logger, out io.Writer, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		printHelp(out)
	case "handlers", "h":
		for _, h := range log.Handlers() {
			fmt.Fprintf(out, "  %-12s %s%s\n", h.Name(), h.Level(), stats(h))
		}
	case "threshold":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: threshold <handler> <level>")
			break
		}
		h, ok := log.Handler(args[0])
		if !ok {
			fmt.Fprintf(out, "no handler %q\n", args[0])
			break
		}
		level, err := core.ParseLevel(args[1])
		if err == nil {
			err = h.SetLevel(level)
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
	case "rotate", "reset":
		if len(args) != 1 {
			fmt.Fprintf(out, "usage: %s <handler>\n", cmd)
			break
		}
		h, ok := log.Handler(args[0])
		if !ok {
			fmt.Fprintf(out, "no handler %q\n", args[0])
			break
		}
		fh, ok := h.(interface {
			Rotate()
			DeleteLogs()
		})
		if !ok {
			fmt.Fprintf(out, "handler %q does not keep files\n", h.Name())
			break
		}
		if cmd == "rotate" {
			fh.Rotate()
		} else {
			fh.DeleteLogs()
		}
	default:
		level, err := core.ParseLevel(cmd)
		if err != nil {
			fmt.Fprintf(out, "unknown command %q, type help\n", cmd)
			break
		}
		log.Log(level, strings.Join(args, " "))
	}
	return true
}

func stats(h handler.Handler) string {
	sp, ok := h.(handler.StatsProvider)
	if !ok {
		return ""
	}
	s := sp.Stats()
	return fmt.Sprintf("  processed=%d filtered=%d failed=%d rotated=%d", s.Processed, s.Filtered, s.Failed, s.Rotated)
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  <level> <message>            log a message (emergency, alert, critical, error, warning, notice, info, debug)
  handlers                     list handlers with threshold and counters
  threshold <handler> <level>  change a handler threshold
  rotate <handler>             rotate a file handler now
  reset <handler>              delete the files of a file handler
  help                         show this help
  quit                         leave
`)
}
