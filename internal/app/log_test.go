package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLineHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name      string
		sessionID string
		level     slog.Level
		message   string
		attrs     []slog.Attr
		want      string
	}{
		{
			name:      "basic info message",
			sessionID: "20240615T143045Z",
			level:     slog.LevelInfo,
			message:   "store initialized",
			want:      "2024-06-15T14:30:45Z\tINFO\t20240615T143045Z\tstore initialized\n",
		},
		{
			name:      "debug level",
			sessionID: "s-2",
			level:     slog.LevelDebug,
			message:   "persisted key missing, using default",
			want:      "2024-06-15T14:30:45Z\tDEBUG\ts-2\tpersisted key missing, using default\n",
		},
		{
			name:      "with record attrs",
			sessionID: "s-3",
			level:     slog.LevelWarn,
			message:   "persisted key unparsable, using default",
			attrs:     []slog.Attr{slog.String("key", "likedPosts"), slog.Int("user", 1)},
			want:      "2024-06-15T14:30:45Z\tWARN\ts-3\tpersisted key unparsable, using default\tkey=likedPosts\tuser=1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &lineHandler{w: &buf, level: slog.LevelDebug, sessionID: tt.sessionID}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			r.AddAttrs(tt.attrs...)

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestLineHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &lineHandler{w: &buf, sessionID: "s-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "store")}).(*lineHandler)
	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}

	r := slog.NewRecord(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), slog.LevelInfo, "like", 0)
	r.AddAttrs(slog.Int64("post", 7))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"a=1", "component=store", "post=7"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %s", got, want)
		}
	}
}

func TestLineHandler_Enabled(t *testing.T) {
	h := &lineHandler{level: slog.LevelWarn}

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTeeHandler(t *testing.T) {
	var all, warn bytes.Buffer
	logger := slog.New(teeHandler{
		&lineHandler{w: &all, level: slog.LevelDebug, sessionID: "s"},
		&lineHandler{w: &warn, level: slog.LevelWarn, sessionID: "s"},
	}).With("user", 1)

	logger.Info("store initialized")
	logger.Error("persisting state failed", "key", "posts")

	if n := strings.Count(all.String(), "\n"); n != 2 {
		t.Errorf("debug handler got %d lines, want 2:\n%s", n, all.String())
	}
	if n := strings.Count(warn.String(), "\n"); n != 1 {
		t.Errorf("warn handler got %d lines, want 1:\n%s", n, warn.String())
	}
	if !strings.Contains(warn.String(), "user=1\tkey=posts") {
		t.Errorf("warn output %q missing attrs", warn.String())
	}
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	logger, f, err := newLogger(dir, "test-session")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Debug("hello", "k", "v")

	data, err := os.ReadFile(filepath.Join(dir, "careerhub.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "\tDEBUG\ttest-session\thello\tk=v\n") {
		t.Errorf("log file = %q", data)
	}
}
