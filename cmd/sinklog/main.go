// Command sinklog emits log events through a configured set of handlers.
//
// Usage:
//
//	sinklog [flags] message...
//	sinklog [flags] -i
//
// Flags:
//
//	-config string   Configuration file path (default: console handler at DEBUG)
//	-level string    Event severity (default "info")
//	-sys int         Registered system id (default: none)
//	-error int       Registered error id (default: none)
//	-context string  Event context
//	-i               Interactive mode
//
// Examples:
//
//	# Send one event to every handler of a config file
//	sinklog -config /etc/sinklog.yaml -level error -sys 1 -context boot "link lost"
//
//	# Type events at a prompt
//	sinklog -config /etc/sinklog.yaml -i
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipp01105/sinklog/config"
	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler/consolehandler"
	"github.com/philipp01105/sinklog/logger"
)

// options holds the parsed command line.
type options struct {
	ConfigFile  string
	Level       string
	System      int
	Error       int
	Context     string
	Interactive bool
	Message     string
}

func main() {
	var opts options
	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.Level, "level", "info", "Event severity: emergency .. debug")
	flag.IntVar(&opts.System, "sys", -1, "Registered system id")
	flag.IntVar(&opts.Error, "error", -1, "Registered error id")
	flag.StringVar(&opts.Context, "context", "", "Event context")
	flag.BoolVar(&opts.Interactive, "i", false, "Interactive mode")
	flag.Parse()
	opts.Message = strings.Join(flag.Args(), " ")

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "sinklog:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.Interactive {
		sh, err := newShell()
		if err != nil {
			return err
		}
		log, err := build(opts.ConfigFile, sh.Stdout())
		if err != nil {
			sh.Close()
			return err
		}
		defer log.Close()
		sh.Run(log)
		return nil
	}

	if opts.Message == "" {
		return fmt.Errorf("no message given")
	}
	level, err := core.ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	log, err := build(opts.ConfigFile, os.Stdout)
	if err != nil {
		return err
	}

	var fields []core.Field
	if opts.System >= 0 {
		fields = append(fields, logger.System(core.SystemID(opts.System)))
	}
	if opts.Error >= 0 {
		fields = append(fields, logger.ErrorCode(core.ErrorID(opts.Error)))
	}
	if opts.Context != "" {
		fields = append(fields, logger.Context(opts.Context))
	}
	log.Log(level, opts.Message, fields...)
	return log.Close()
}

// build creates the logger from the config file, or a single console
// handler at DEBUG when no file is given.
func build(path string, out io.Writer) (*logger.Logger, error) {
	if path == "" {
		cfg := consolehandler.DefaultConsoleConfig(core.NewRegistry())
		cfg.Level = core.DebugLevel
		cfg.Writer = out
		h, err := consolehandler.NewConsoleHandler(cfg)
		if err != nil {
			return nil, err
		}
		return logger.New(h)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log, _, err := cfg.Build(config.BuildOptions{ConsoleWriter: out})
	return log, err
}
