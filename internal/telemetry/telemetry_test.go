package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// --- Logging Tests ---

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "INFO", Format: "json", Writer: &buf})

	WithTask(WithWorkerID(logger, "worker-1"), "story_0").Info("task completed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "task completed" {
		t.Errorf("expected msg, got %v", entry["msg"])
	}
	if entry["worker_id"] != "worker-1" || entry["task"] != "story_0" {
		t.Errorf("expected worker_id and task attrs, got %v", entry)
	}
}

func TestNewLogger_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "WARN", Format: "text", Writer: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("INFO should be filtered at WARN level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("WARN should be logged")
	}
}

func TestFromContext(t *testing.T) {
	logger := NewLogger(LoggerConfig{Writer: &bytes.Buffer{}})
	ctx := WithLogger(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Error("expected logger from context")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger")
	}
}

// --- Metrics Tests ---

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.TaskFinished("SUCCEEDED", time.Second)
	m.TaskFinished("SUCCEEDED", time.Second)
	m.TaskFinished("FAILED", time.Millisecond)
	m.WorkerStarted()
	m.WorkerStarted()
	m.WorkerStopped()
	m.RegionEntered()

	if got := testutil.ToFloat64(m.tasks.WithLabelValues("SUCCEEDED")); got != 2 {
		t.Errorf("expected 2 succeeded, got %v", got)
	}
	if got := testutil.ToFloat64(m.workers); got != 1 {
		t.Errorf("expected 1 active worker, got %v", got)
	}
	if got := testutil.ToFloat64(m.exclusive); got != 1 {
		t.Errorf("expected region active, got %v", got)
	}

	m.RegionLeft()
	if got := testutil.ToFloat64(m.exclusive); got != 0 {
		t.Errorf("expected region idle, got %v", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.TaskFinished("FAILED", time.Second)
	m.GateWaited(time.Second)
	m.WorkerStarted()
	m.WorkerStopped()
	m.RegionEntered()
	m.RegionLeft()
}
