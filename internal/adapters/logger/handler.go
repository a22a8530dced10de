package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/ui/output"
	"go.trai.ch/pinfile/internal/ui/style"
)

// Attribute keys that locate a message in a manifest. They match the zerr
// metadata keys used across pinfile and are printed as a prefix, not as key=value.
const (
	KeyPath    = "path"
	KeyLine    = "line"
	KeyPackage = "package"
	KeyRule    = "rule"
)

var locationKeys = []string{KeyPath, KeyLine, KeyPackage, KeyRule}

// location is where a log line points to.
type location struct {
	path string
	line int64
	pkg  string
	rule string
}

// take records a as part of the location. It reports false for other keys.
func (l *location) take(a slog.Attr) bool {
	switch a.Key {
	case KeyPath:
		l.path = a.Value.String()
	case KeyLine:
		switch a.Value.Kind() {
		case slog.KindInt64:
			l.line = a.Value.Int64()
		case slog.KindUint64:
			l.line = int64(a.Value.Uint64()) //nolint:gosec // line numbers are small
		default:
			n, err := strconv.ParseInt(a.Value.String(), 10, 64)
			if err != nil {
				return false
			}
			l.line = n
		}
	case KeyPackage:
		l.pkg = a.Value.String()
	case KeyRule:
		l.rule = a.Value.String()
	default:
		return false
	}
	return true
}

// String renders "path:line package [rule]", leaving out what is unknown.
func (l location) String() string {
	var parts []string
	switch {
	case l.path != "" && l.line > 0:
		parts = append(parts, l.path+":"+strconv.FormatInt(l.line, 10))
	case l.path != "":
		parts = append(parts, l.path)
	case l.line > 0:
		parts = append(parts, "line "+strconv.FormatInt(l.line, 10))
	}
	if l.pkg != "" {
		parts = append(parts, l.pkg)
	}
	if l.rule != "" {
		parts = append(parts, "["+l.rule+"]")
	}
	return strings.Join(parts, " ")
}

// PrettyHandler is a slog.Handler for terminals. Warnings and errors carry
// the violation icons of the reports, and location attributes become a
// "requirements.txt:3 numpy [order]: " prefix.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	loc    location
	fields []string
	group  string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	loc := h.loc
	fields := slices.Clone(h.fields)
	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(&loc, fields, a)
		return true
	})

	var sb strings.Builder
	color := style.Slate
	if sev := levelSeverity(r.Level); sev != domain.SeverityOff {
		var icon string
		icon, color = style.Severity(sev)
		sb.WriteString(icon + " ")
	}
	if prefix := loc.String(); prefix != "" {
		sb.WriteString(prefix + ": ")
	}
	sb.WriteString(r.Message)
	if len(fields) > 0 {
		sb.WriteString(" " + strings.Join(fields, " "))
	}

	styled := h.out.String(sb.String()).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = slices.Clone(h.fields)
	for _, a := range attrs {
		next.fields = next.appendAttr(&next.loc, next.fields, a)
	}
	return &next
}

// WithGroup returns a handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.fields = slices.Clone(h.fields)
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

// appendAttr stores top-level location attributes in loc and formats the rest.
func (h *PrettyHandler) appendAttr(loc *location, fields []string, a slog.Attr) []string {
	if a.Equal(slog.Attr{}) {
		return fields
	}
	if h.group == "" && loc.take(a) {
		return fields
	}
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return append(fields, key+"="+a.Value.String())
}

func levelSeverity(level slog.Level) domain.Severity {
	switch {
	case level >= slog.LevelError:
		return domain.SeverityError
	case level >= slog.LevelWarn:
		return domain.SeverityWarning
	default:
		return domain.SeverityOff
	}
}
