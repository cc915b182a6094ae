package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("toggle") }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("toggle") }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("toggle") }, true},
		{log.WarnLevel, func(l *log.Logger) { l.Info("toggle") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("loaded", "tiers", 3)

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
	if !strings.Contains(buf.String(), "tiers=3") {
		t.Errorf("output %q should carry key/value pairs", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Loaded 2 tiers")

	if !regexp.MustCompile(`Loaded 2 tiers \([\d.]+m?s\)`).MatchString(buf.String()) {
		t.Errorf("progress output %q should end with the elapsed time", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"missing", context.Background(), log.Default()},
		{"nil context", nil, log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestLoadHierarchyLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	if _, err := loadHierarchy(ctx, testHierarchy); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Loaded 2 tiers, 4 leaves") {
		t.Errorf("missing load summary in %q", buf.String())
	}
}
