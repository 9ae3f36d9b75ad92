package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"InfoAtInfo", log.InfoLevel, func(l *log.Logger) { l.Info("loaded") }, true},
		{"DebugAtInfo", log.InfoLevel, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"DebugAtDebug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache miss") }, true},
		{"WarnAtInfo", log.InfoLevel, func(l *log.Logger) { l.Warn("redis cache unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)

	prog.done("Loaded 3 modules from file:projects.json")

	out := buf.String()
	if !strings.Contains(out, "Loaded 3 modules from file:projects.json (1.5") {
		t.Errorf("progress line = %q", out)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnLoadStart(ctx, "file:projects.json")
	h.OnLoadComplete(ctx, "file:projects.json", 3, time.Millisecond, nil)
	h.OnRebuild(ctx, "overlap", 3, 1, time.Microsecond)
	h.OnExportComplete(ctx, "png", "/tmp/graph-1234abcd.png", 2048, time.Millisecond, nil)
	h.OnCacheHit(ctx, "dev:snapshot:0123456789abcdef0123456789abcdef")

	out := buf.String()
	for _, want := range []string{"loading dataset", "modules=3", "rebuild", "graph-1234abcd.png", "cache hit", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnRebuild(context.Background(), "overlap", 3, 1, time.Microsecond)
	if buf.Len() != 0 {
		t.Errorf("debug hooks should be silent at info level, got %q", buf.String())
	}
}
