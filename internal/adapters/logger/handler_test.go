package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinfile/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_DebugFiltered(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))
	lg.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("manifest", "requirements.txt")}).
		WithGroup("check")
	slog.New(h).Info("done", slog.Int("violations", 2))

	assert.Equal(t, "done manifest=requirements.txt check.violations=2\n", buf.String())
}

func TestPrettyHandler_Location(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		attrs      []any
		goldenName string
	}{
		{
			name:  "path line package rule",
			level: slog.LevelWarn,
			attrs: []any{
				slog.String(logger.KeyPath, "requirements.txt"),
				slog.Int(logger.KeyLine, 3),
				slog.String(logger.KeyPackage, "pandas"),
				slog.String(logger.KeyRule, "order"),
			},
			goldenName: "location_full",
		},
		{
			name:       "path only with extra field",
			level:      slog.LevelError,
			attrs:      []any{slog.String(logger.KeyPath, ".pinfile.yaml"), slog.Int("attempt", 2)},
			goldenName: "location_path",
		},
		{
			name:       "line without path",
			level:      slog.LevelInfo,
			attrs:      []any{slog.String(logger.KeyLine, "7")},
			goldenName: "location_line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, nil))
			lg.Log(t.Context(), tt.level, "pin out of order", tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_LocationFromWithAttrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil).WithAttrs([]slog.Attr{slog.String(logger.KeyPath, "requirements.txt")})
	slog.New(h).Warn("would be rewritten")
	slog.New(h.WithGroup("check")).Warn("grouped", slog.Int(logger.KeyLine, 2))

	assert.Equal(t,
		"! requirements.txt: would be rewritten\n! requirements.txt: grouped check.line=2\n",
		buf.String())
}
