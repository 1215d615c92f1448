package benchmark

import (
	"bytes"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/handler"
	"github.com/philipp01105/sinklog/handler/consolehandler"
	"github.com/philipp01105/sinklog/handler/filehandler"
	"github.com/philipp01105/sinklog/handler/sysloghandler"
	"github.com/philipp01105/sinklog/logger"
)

// discardWriter is a no-op writer for benchmarking
type discardWriter struct{}

func (w discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// benchRegistry returns a registry with one system and one error code.
func benchRegistry(b *testing.B) (*core.Registry, core.SystemID, core.ErrorID) {
	b.Helper()
	reg := core.NewRegistry()
	sys, err := reg.RegisterSystem("NETWORK")
	if err != nil {
		b.Fatal(err)
	}
	code, err := reg.RegisterError("Connection timeout")
	if err != nil {
		b.Fatal(err)
	}
	return reg, sys, code
}

func newConsole(b *testing.B, name string, level core.Level, reg *core.Registry) *consolehandler.ConsoleHandler {
	b.Helper()
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Name:     name,
		Level:    level,
		Writer:   discardWriter{},
		Registry: reg,
	})
	if err != nil {
		b.Fatal(err)
	}
	return h
}

func mustLogger(b *testing.B, bld *logger.Builder) *logger.Logger {
	b.Helper()
	l, err := bld.Build()
	if err != nil {
		b.Fatal(err)
	}
	return l
}

// Benchmark a plain message through one console handler
func BenchmarkInfoNoFields(b *testing.B) {
	reg, _, _ := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.DebugLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("test message")
	}
}

// Benchmark all three optional fields
func BenchmarkInfoAllFields(b *testing.B) {
	reg, sys, code := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.DebugLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Error("link lost",
			logger.System(sys),
			logger.Context("eth 0"),
			logger.ErrorCode(code),
		)
	}
}

// Benchmark an event every handler filters out
func BenchmarkFilteredLevel(b *testing.B) {
	reg, _, _ := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.ErrorLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Debug("should be skipped")
	}
}

// Benchmark an event dropped for naming an unregistered system
func BenchmarkUnknownSystem(b *testing.B) {
	reg, _, _ := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.DebugLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("dropped", logger.System(999))
	}
}

func BenchmarkFormattedLogging(b *testing.B) {
	reg, _, _ := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.DebugLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Infof("user %d logged in from %s", i, "10.0.0.1")
	}
}

// Benchmark the formatter alone
func BenchmarkLineFormatter(b *testing.B) {
	reg, sys, code := benchRegistry(b)
	templates := []struct {
		name    string
		pattern string
	}{
		{"Default", formatter.DefaultTemplate},
		{"MessageOnly", "{msg}"},
		{"Syslog", "<{priority}>{timestamp} dev1 app: {sys}{context} {err_title}{msg}"},
	}
	entry := &core.Entry{Time: time.Now(), Level: core.ErrorLevel, Message: "link lost", Context: "eth0"}
	entry.Apply(logger.System(sys), logger.ErrorCode(code))

	for _, tt := range templates {
		b.Run(tt.name, func(b *testing.B) {
			f, err := formatter.NewLine(formatter.Config{
				Template: formatter.MustCompile(tt.pattern, nil),
				Registry: reg,
			})
			if err != nil {
				b.Fatal(err)
			}
			var buf bytes.Buffer
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				f.FormatEntry(entry, &buf)
			}
		})
	}
}

func BenchmarkEntryPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e := core.GetEntry()
		e.Message = "test"
		core.PutEntry(e)
	}
}

func BenchmarkBufferPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := formatter.GetBuffer()
		buf.WriteString("test message")
		formatter.PutBuffer(buf)
	}
}

// Benchmark unbuffered file writes including rotation
func BenchmarkFileHandler(b *testing.B) {
	limits := []int64{filehandler.DefaultSizeLimit, 1 << 20}
	for _, limit := range limits {
		b.Run(fmt.Sprintf("SizeLimit_%d", limit), func(b *testing.B) {
			reg, _, _ := benchRegistry(b)
			cfg := filehandler.DefaultFileConfig("bench", reg)
			cfg.Dir = b.TempDir()
			cfg.SizeLimit = limit
			h, err := filehandler.NewFileHandler(cfg)
			if err != nil {
				b.Fatal(err)
			}
			log := mustLogger(b, logger.NewBuilder().WithHandler(h))
			defer log.Close()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Error("test message")
			}
		})
	}
}

// Benchmark datagrams to a loopback syslog listener
func BenchmarkSyslogHandler(b *testing.B) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		b.Fatal(err)
	}
	defer pc.Close()
	go func() {
		buf := make([]byte, 2048)
		for {
			if _, _, err := pc.ReadFrom(buf); err != nil {
				return
			}
		}
	}()

	formats := []sysloghandler.Format{sysloghandler.FormatRFC3164, sysloghandler.FormatRFC5424}
	for _, format := range formats {
		b.Run(format.String(), func(b *testing.B) {
			reg, _, _ := benchRegistry(b)
			cfg := sysloghandler.DefaultSyslogConfig("remote", "127.0.0.1", reg)
			cfg.Port = pc.LocalAddr().(*net.UDPAddr).Port
			cfg.Format = format
			cfg.Hostname = "bench"
			cfg.Appname = "sinklog"
			h, err := sysloghandler.NewSyslogHandler(cfg)
			if err != nil {
				b.Fatal(err)
			}
			log := mustLogger(b, logger.NewBuilder().WithHandler(h))
			defer log.Close()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Error("test message")
			}
		})
	}
}

// Benchmark fan-out cost by handler count
func BenchmarkHandlerCount(b *testing.B) {
	for _, n := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("Handlers_%d", n), func(b *testing.B) {
			reg, _, _ := benchRegistry(b)
			bld := logger.NewBuilder()
			for i := 0; i < n; i++ {
				bld.WithHandler(newConsole(b, fmt.Sprintf("console%d", i), core.DebugLevel, reg))
			}
			log := mustLogger(b, bld)
			defer log.Close()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Info("test message")
			}
		})
	}
}

// Benchmark the dispatcher alone
func BenchmarkNoopHandler(b *testing.B) {
	var handlers []handler.Handler
	for i := 0; i < 3; i++ {
		handlers = append(handlers, newNoopHandler(fmt.Sprintf("noop%d", i)))
	}
	log, err := logger.New(handlers...)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Info("test message")
	}
}

func BenchmarkConcurrentLogging(b *testing.B) {
	reg, sys, _ := benchRegistry(b)
	log := mustLogger(b, logger.NewBuilder().WithHandler(newConsole(b, "console", core.DebugLevel, reg)))
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			log.Info("concurrent message", logger.System(sys))
		}
	})
}

// Benchmark coarse clock vs standard clock
func BenchmarkCoarseClock_InfoNoFields(b *testing.B) {
	tests := []struct {
		name  string
		clock core.Clock
	}{
		{"Standard", core.SystemClock},
		{"CoarseClock", core.CoarseClock()},
	}
	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg, _, _ := benchRegistry(b)
			log := mustLogger(b, logger.NewBuilder().
				WithHandler(newConsole(b, "console", core.DebugLevel, reg)).
				WithClock(tt.clock))
			defer log.Close()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Info("test message")
			}
		})
	}
}
