package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "InfoAtInfoLevel",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("hello") },
			wantLog: true,
		},
		{
			name:    "DebugAtInfoLevel",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("hello") },
			wantLog: false,
		},
		{
			name:    "DebugAtDebugLevel",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("hello") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	newProgress(logger).done("export complete")

	if !strings.Contains(buf.String(), "export complete") {
		t.Errorf("output missing message: %q", buf.String())
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}

	// Without a logger attached the default is returned, never nil.
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext returned nil for a bare context")
	}
}
