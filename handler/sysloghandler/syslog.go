package sysloghandler

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/handler"
)

// Format selects the syslog framing.
type Format uint8

const (
	// FormatRFC3164 is the BSD syslog framing
	FormatRFC3164 Format = iota
	// FormatRFC5424 is the structured syslog framing
	FormatRFC5424
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatRFC3164:
		return "rfc3164"
	case FormatRFC5424:
		return "rfc5424"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat parses "rfc3164" or "rfc5424", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rfc3164", "":
		return FormatRFC3164, nil
	case "rfc5424":
		return FormatRFC5424, nil
	}
	return 0, core.Configf("format", "unknown syslog format %q", s)
}

// Defaults applied when the corresponding SyslogConfig field is zero.
const (
	DefaultPort     = 514
	DefaultTimeout  = time.Second
	DefaultCacheTTL = 60 * time.Second
)

// Resolver maps a "host:port" address to a UDP address.
type Resolver func(network, address string) (*net.UDPAddr, error)

const (
	rfc3164Template = "<{priority}>{timestamp}{host}{app} {sys}{context} {err_title}{msg}"
	rfc5424Template = "<{priority}>1 {timestamp} {host} {app} - - - BOM{sys}{context} {err_title}{msg}"
)

// SyslogConfig holds configuration for syslog handler
type SyslogConfig struct {
	// Name identifies the handler
	Name string
	// Level is the severity threshold
	Level core.Level
	// Host is the syslog server host name or IP (required)
	Host string
	// Port is the syslog server UDP port (default: 514)
	Port int
	// Hostname is reported in the HOSTNAME field (optional)
	Hostname string
	// Appname is reported as the tag / APP-NAME (optional)
	Appname string
	// Format selects RFC3164 (default) or RFC5424 framing
	Format Format
	// Timeout bounds each datagram send (default: 1s)
	Timeout time.Duration
	// CacheTTL is how long a resolved address is reused (default: 60s)
	CacheTTL time.Duration
	// Registry resolves system and error labels (required)
	Registry *core.Registry
	// Clock stamps entries without a time and ages the address cache (default: core.SystemClock)
	Clock core.Clock
	// Resolver resolves Host (default: net.ResolveUDPAddr)
	Resolver Resolver
	// Diagnostics receives transport failures (default: no-op)
	Diagnostics *zap.Logger
}

// DefaultSyslogConfig returns a config with the WARNING threshold, port 514
// and RFC3164 framing.
func DefaultSyslogConfig(name, host string, reg *core.Registry) SyslogConfig {
	return SyslogConfig{
		Name:     name,
		Level:    core.WarningLevel,
		Host:     host,
		Port:     DefaultPort,
		Format:   FormatRFC3164,
		Timeout:  DefaultTimeout,
		CacheTTL: DefaultCacheTTL,
		Registry: reg,
	}
}

// SyslogHandler sends one UDP datagram per accepted entry.
type SyslogHandler struct {
	handler.Base

	mu         sync.Mutex // protects everything below
	conn       net.PacketConn
	address    string
	timeout    time.Duration
	ttl        time.Duration
	resolve    Resolver
	clock      core.Clock
	cached     *net.UDPAddr
	resolvedAt time.Time
	buf        bytes.Buffer
}

// NewSyslogHandler validates cfg and opens an unconnected UDP socket. The
// server address is resolved lazily on the first send.
func NewSyslogHandler(cfg SyslogConfig) (*SyslogHandler, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, core.Configf("host", "is required")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, core.Configf("port", "must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, core.Configf("timeout", "must be positive, got %s", cfg.Timeout)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.CacheTTL < 0 {
		return nil, core.Configf("cache_ttl", "must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock
	}
	if cfg.Resolver == nil {
		cfg.Resolver = net.ResolveUDPAddr
	}

	tmpl, layout, err := compileTemplate(cfg.Format, strings.TrimSpace(cfg.Hostname), strings.TrimSpace(cfg.Appname))
	if err != nil {
		return nil, err
	}
	f, err := formatter.NewLine(formatter.Config{
		Template:        tmpl,
		TimestampLayout: layout,
		Registry:        cfg.Registry,
		Clock:           cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	h := &SyslogHandler{
		address: net.JoinHostPort(strings.TrimSpace(cfg.Host), strconv.Itoa(cfg.Port)),
		timeout: cfg.Timeout,
		ttl:     cfg.CacheTTL,
		resolve: cfg.Resolver,
		clock:   cfg.Clock,
	}
	if err := h.Init(cfg.Name, cfg.Level, f, cfg.Diagnostics); err != nil {
		return nil, err
	}

	conn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, err
	}
	h.conn = conn
	h.buf.Grow(256)
	return h, nil
}

// compileTemplate freezes hostname and appname into the framing template.
func compileTemplate(format Format, hostname, appname string) (*formatter.Template, string, error) {
	switch format {
	case FormatRFC3164:
		host, app := " ", ""
		if hostname != "" {
			host = " " + hostname
		}
		if appname != "" {
			app = " " + appname + ":"
		}
		tmpl, err := formatter.Compile(rfc3164Template, map[string]string{"host": host, "app": app})
		return tmpl, formatter.RFC3164Layout, err
	case FormatRFC5424:
		host, app := "-", "-"
		if hostname != "" {
			host = hostname
		}
		if appname != "" {
			app = appname
		}
		tmpl, err := formatter.Compile(rfc5424Template, map[string]string{"host": host, "app": app})
		return tmpl, formatter.ISOLayout, err
	}
	return nil, "", core.Configf("format", "unknown syslog format %d", format)
}

// Address returns the configured "host:port".
func (h *SyslogHandler) Address() string {
	return h.address
}

// Handle implements handler.Handler. Resolution and send failures are
// reported to the diagnostics logger and never returned.
func (h *SyslogHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return nil
	}
	h.buf.Reset()
	if !h.Prepare(entry, &h.buf) {
		return nil
	}

	addr, err := h.remoteAddr()
	if err != nil {
		h.fail("resolve syslog server", err)
		return nil
	}
	if err := h.conn.SetWriteDeadline(time.Now().Add(h.timeout)); err != nil {
		h.fail("set write deadline", err)
		return nil
	}
	if _, err := h.conn.WriteTo(h.buf.Bytes(), addr); err != nil {
		h.fail("send syslog datagram", err)
		return nil
	}
	h.Counters().IncrementProcessed()
	return nil
}

// remoteAddr returns the cached server address, resolving it again once
// the cache is older than the TTL.
func (h *SyslogHandler) remoteAddr() (*net.UDPAddr, error) {
	now := h.clock()
	if h.cached != nil && now.Sub(h.resolvedAt) < h.ttl {
		return h.cached, nil
	}
	addr, err := h.resolve("udp", h.address)
	if err != nil {
		return nil, err
	}
	h.cached = addr
	h.resolvedAt = now
	return addr, nil
}

func (h *SyslogHandler) fail(msg string, err error) {
	h.Counters().IncrementFailed()
	h.Diag().Warn(msg, zap.String("address", h.address), zap.Error(err))
}

// Close implements handler.Handler.
func (h *SyslogHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}

var _ handler.Handler = (*SyslogHandler)(nil)
