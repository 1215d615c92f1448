package formatter

import (
	"strings"

	"github.com/philipp01105/sinklog/core"
)

// Placeholder names understood by Compile.
const (
	PlaceTimestamp = "timestamp"
	PlaceLevel     = "level"
	PlacePriority  = "priority"
	PlaceSystem    = "sys"
	PlaceContext   = "context"
	PlaceErrTitle  = "err_title"
	PlaceMessage   = "msg"
)

// DefaultTemplate is the console and file line layout.
const DefaultTemplate = "{timestamp} [{level}] {sys}{context} {err_title}{msg}"

type placeholder uint8

const (
	literal placeholder = iota
	timestamp
	level
	priority
	system
	context
	errTitle
	message
)

var placeholders = map[string]placeholder{
	PlaceTimestamp: timestamp,
	PlaceLevel:     level,
	PlacePriority:  priority,
	PlaceSystem:    system,
	PlaceContext:   context,
	PlaceErrTitle:  errTitle,
	PlaceMessage:   message,
}

type segment struct {
	kind placeholder
	text string
}

// Template is a compiled line layout.
type Template struct {
	pattern  string
	segments []segment
}

// Compile parses pattern into a Template. Every {name} must be one of the
// Place* names or a key of consts; the latter are substituted once, here,
// and never re-parsed, so their values may contain braces.
func Compile(pattern string, consts map[string]string) (*Template, error) {
	t := &Template{pattern: pattern}
	rest := pattern
	var lit strings.Builder

	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if stray := strings.IndexByte(rest, '}'); stray >= 0 && (open < 0 || stray < open) {
			return nil, core.Configf("template", "unbalanced '}' in %q", pattern)
		}
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, core.Configf("template", "unterminated placeholder in %q", pattern)
		}
		lit.WriteString(rest[:open])
		name := rest[open+1 : open+end]
		rest = rest[open+end+1:]

		if v, ok := consts[name]; ok {
			lit.WriteString(v)
			continue
		}
		kind, ok := placeholders[name]
		if !ok {
			return nil, core.Configf("template", "unknown placeholder {%s}", name)
		}
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{kind: literal, text: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{kind: kind})
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{kind: literal, text: lit.String()})
	}
	return t, nil
}

// MustCompile is like Compile but panics on error. Intended for package-level
// templates that are known to be valid.
func MustCompile(pattern string, consts map[string]string) *Template {
	t, err := Compile(pattern, consts)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the pattern the template was compiled from.
func (t *Template) String() string {
	return t.pattern
}
