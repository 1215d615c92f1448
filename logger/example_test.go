package logger_test

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler/consolehandler"
	"github.com/philipp01105/sinklog/logger"
)

// Use the package-level default logger for quick, no-setup logging.
// Only WARNING and more severe events reach the default console handler.
func Example() {
	logger.Info("application started")
	logger.Warn("disk almost full")
}

// Create a custom Logger with the Builder pattern.
func ExampleNewBuilder() {
	reg := core.NewRegistry()
	network, _ := reg.RegisterSystem("NETWORK")

	cfg := consolehandler.DefaultConsoleConfig(reg)
	cfg.Level = core.InfoLevel
	cfg.Writer = os.Stdout
	ch, err := consolehandler.NewConsoleHandler(cfg)
	if err != nil {
		panic(err)
	}

	log, err := logger.NewBuilder().
		WithHandler(ch).
		WithClock(core.FixedClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local))).
		Build()
	if err != nil {
		panic(err)
	}
	defer log.Close()

	log.Info("link up", logger.System(network), logger.Context("eth 0"))
	log.Debug("not shown")
	// Output:
	// 2026-01-15T12:00:00 [INFO] NETWORK@eth_0 link up
}

// Log an event and hand the error back to the caller.
func ExampleLogger_Escalate() {
	reg := core.NewRegistry()
	cfg := consolehandler.DefaultConsoleConfig(reg)
	cfg.Template = "[{level}] {msg}"
	ch, _ := consolehandler.NewConsoleHandler(cfg)
	log, _ := logger.New(ch)

	err := log.Escalate(logger.CriticalLevel, "config unreadable", errors.New("permission denied"))
	fmt.Println(err)
	// Output:
	// [CRITICAL] config unreadable
	// config unreadable: permission denied
}
