// Package config builds a registry and a Logger from a YAML file.
//
//	diagnostics: {level: warn, output: stderr}
//	registry_snapshot: defs.cbor
//	systems:
//	  - {name: NETWORK, id: 1}
//	  - {name: SENSOR}
//	errors:
//	  - {description: Connection timeout, id: 10}
//	handlers:
//	  - {type: console, level: info}
//	  - {type: file, name: app, level: debug, dir: /var/log, size_limit: 20480, backup_count: 3}
//	  - {type: syslog, name: remote, host: 10.0.0.1, format: rfc5424, timeout: 1s}
//
// Systems and errors without an id get the next free one. A registry
// snapshot, if named, is merged before them; a relative snapshot path is
// resolved against the directory of the config file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler"
	"github.com/philipp01105/sinklog/handler/consolehandler"
	"github.com/philipp01105/sinklog/handler/filehandler"
	"github.com/philipp01105/sinklog/handler/sysloghandler"
	"github.com/philipp01105/sinklog/internal/diag"
	"github.com/philipp01105/sinklog/logger"
)

// Handler types accepted in HandlerConfig.Type.
const (
	TypeConsole = "console"
	TypeFile    = "file"
	TypeSyslog  = "syslog"
)

// Config is the root of a configuration file.
type Config struct {
	Diagnostics      diag.Config     `yaml:"diagnostics"`
	RegistrySnapshot string          `yaml:"registry_snapshot"`
	Systems          []SystemDef     `yaml:"systems"`
	Errors           []ErrorDef      `yaml:"errors"`
	Handlers         []HandlerConfig `yaml:"handlers"`

	// baseDir resolves a relative RegistrySnapshot. Set by Load.
	baseDir string
}

// SystemDef registers a system label. A nil ID means auto-assign.
type SystemDef struct {
	Name string `yaml:"name"`
	ID   *int   `yaml:"id"`
}

// ErrorDef registers an error description. A nil ID means auto-assign.
type ErrorDef struct {
	Description string `yaml:"description"`
	ID          *int   `yaml:"id"`
}

// HandlerConfig describes one handler. Fields that do not apply to Type
// are ignored; zero values take the handler defaults.
type HandlerConfig struct {
	Type     string `yaml:"type"`
	Name     string `yaml:"name"`
	Level    string `yaml:"level"`
	Template string `yaml:"template"`

	// file
	Dir         string `yaml:"dir"`
	SizeLimit   int64  `yaml:"size_limit"`
	BackupCount int    `yaml:"backup_count"`

	// syslog
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Hostname string        `yaml:"hostname"`
	Appname  string        `yaml:"appname"`
	Format   string        `yaml:"format"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// BuildOptions overrides parts of the configuration at build time.
type BuildOptions struct {
	// ConsoleWriter replaces stdout for console handlers
	ConsoleWriter io.Writer
	// Clock stamps events (default: core.SystemClock)
	Clock core.Clock
	// Diagnostics replaces the logger built from the diagnostics section
	Diagnostics *zap.Logger
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", core.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// Validate checks everything that can be checked without touching the
// file system or the network. All problems are reported together.
func (c *Config) Validate() error {
	var errs error
	for i, s := range c.Systems {
		if strings.TrimSpace(s.Name) == "" {
			errs = multierr.Append(errs, core.Configf(fmt.Sprintf("systems[%d].name", i), "must be a non-empty string"))
		}
	}
	for i, e := range c.Errors {
		if strings.TrimSpace(e.Description) == "" {
			errs = multierr.Append(errs, core.Configf(fmt.Sprintf("errors[%d].description", i), "must be a non-empty string"))
		}
	}

	seen := make(map[string]bool, len(c.Handlers))
	for i, h := range c.Handlers {
		field := fmt.Sprintf("handlers[%d]", i)
		if _, err := h.level(); err != nil {
			errs = multierr.Append(errs, core.Configf(field+".level", "unknown level %q", h.Level))
		}
		switch h.Type {
		case TypeConsole:
		case TypeFile, TypeSyslog:
			if strings.TrimSpace(h.Name) == "" {
				errs = multierr.Append(errs, core.Configf(field+".name", "is required for %s handlers", h.Type))
			}
		default:
			errs = multierr.Append(errs, core.Configf(field+".type", "unknown handler type %q", h.Type))
			continue
		}
		if h.Type == TypeSyslog {
			if strings.TrimSpace(h.Host) == "" {
				errs = multierr.Append(errs, core.Configf(field+".host", "is required for syslog handlers"))
			}
			if _, err := sysloghandler.ParseFormat(h.Format); err != nil {
				errs = multierr.Append(errs, core.Configf(field+".format", "unknown syslog format %q", h.Format))
			}
		}

		name := h.name()
		if n, err := handler.NormalizeName(name); err == nil {
			if seen[n] {
				errs = multierr.Append(errs, core.Configf(field+".name", "duplicate handler name %q", n))
			}
			seen[n] = true
		}
	}
	return errs
}

func (h HandlerConfig) name() string {
	if h.Name == "" && h.Type == TypeConsole {
		return consolehandler.DefaultName
	}
	return h.Name
}

func (h HandlerConfig) level() (core.Level, error) {
	if strings.TrimSpace(h.Level) == "" {
		return core.WarningLevel, nil
	}
	return core.ParseLevel(h.Level)
}

// Build creates the registry, the handlers and the Logger. Handlers that
// were opened before a failure are closed again.
func (c *Config) Build(opts BuildOptions) (*logger.Logger, *core.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	d := opts.Diagnostics
	if d == nil {
		var err error
		if d, err = diag.New(c.Diagnostics); err != nil {
			return nil, nil, err
		}
	}

	reg, err := c.BuildRegistry()
	if err != nil {
		return nil, nil, err
	}

	b := logger.NewBuilder().WithClock(opts.Clock).WithDiagnostics(d)
	var built []handler.Handler
	for i, hc := range c.Handlers {
		h, err := hc.build(reg, opts, d)
		if err != nil {
			for _, h := range built {
				err = multierr.Append(err, h.Close())
			}
			return nil, nil, fmt.Errorf("handlers[%d]: %w", i, err)
		}
		built = append(built, h)
		b.WithHandler(h)
	}

	l, err := b.Build()
	if err != nil {
		for _, h := range built {
			err = multierr.Append(err, h.Close())
		}
		return nil, nil, err
	}
	return l, reg, nil
}

// BuildRegistry creates a registry holding the snapshot (if any) followed
// by the systems and errors of the configuration.
func (c *Config) BuildRegistry() (*core.Registry, error) {
	reg := core.NewRegistry()

	if c.RegistrySnapshot != "" {
		path := c.RegistrySnapshot
		if !filepath.IsAbs(path) && c.baseDir != "" {
			path = filepath.Join(c.baseDir, path)
		}
		if err := LoadSnapshot(path, reg); err != nil {
			return nil, err
		}
	}

	for _, s := range c.Systems {
		var err error
		if s.ID == nil {
			_, err = reg.RegisterSystem(s.Name)
		} else {
			err = mergeSystem(reg, core.SystemID(*s.ID), s.Name)
		}
		if err != nil {
			return nil, err
		}
	}
	for _, e := range c.Errors {
		var err error
		if e.ID == nil {
			_, err = reg.RegisterError(e.Description)
		} else {
			err = mergeError(reg, core.ErrorID(*e.ID), e.Description)
		}
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (h HandlerConfig) build(reg *core.Registry, opts BuildOptions, d *zap.Logger) (handler.Handler, error) {
	level, err := h.level()
	if err != nil {
		return nil, err
	}

	switch h.Type {
	case TypeConsole:
		cfg := consolehandler.DefaultConsoleConfig(reg)
		cfg.Name = h.name()
		cfg.Level = level
		cfg.Writer = opts.ConsoleWriter
		cfg.Template = h.Template
		cfg.Clock = opts.Clock
		cfg.Diagnostics = d
		h, err := consolehandler.NewConsoleHandler(cfg)
		if err != nil {
			return nil, err
		}
		return h, nil

	case TypeFile:
		cfg := filehandler.DefaultFileConfig(h.Name, reg)
		cfg.Level = level
		cfg.Template = h.Template
		cfg.Clock = opts.Clock
		cfg.Diagnostics = d
		if h.Dir != "" {
			cfg.Dir = h.Dir
		}
		if h.SizeLimit != 0 {
			cfg.SizeLimit = h.SizeLimit
		}
		if h.BackupCount != 0 {
			cfg.BackupCount = h.BackupCount
		}
		h, err := filehandler.NewFileHandler(cfg)
		if err != nil {
			return nil, err
		}
		return h, nil

	case TypeSyslog:
		format, err := sysloghandler.ParseFormat(h.Format)
		if err != nil {
			return nil, err
		}
		cfg := sysloghandler.DefaultSyslogConfig(h.Name, h.Host, reg)
		cfg.Level = level
		cfg.Hostname = h.Hostname
		cfg.Appname = h.Appname
		cfg.Format = format
		cfg.Clock = opts.Clock
		cfg.Diagnostics = d
		if h.Port != 0 {
			cfg.Port = h.Port
		}
		if h.Timeout != 0 {
			cfg.Timeout = h.Timeout
		}
		if h.CacheTTL != 0 {
			cfg.CacheTTL = h.CacheTTL
		}
		h, err := sysloghandler.NewSyslogHandler(cfg)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	return nil, core.Configf("type", "unknown handler type %q", h.Type)
}
