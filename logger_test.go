package imdraw_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-theft-auto/imdraw"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if imdraw.Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	imdraw.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { imdraw.SetLogger(nil) })

	_, _ = buildASCIIAtlas(t, imdraw.FontAtlasFlagsNone)
	out := buf.String()
	if !strings.Contains(out, "font atlas built") || !strings.Contains(out, "glyphs=95") {
		t.Errorf("build log missing statistics:\n%s", out)
	}

	imdraw.SetLogger(nil)
	if imdraw.Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
