package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller info missing or wrong when enabled: %s", buf.String())
	}

	buf.Reset()

	logger = Make(&buf, WithCaller(false), WithFormat(FormatJSON))
	logger.Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}

		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
	})

	for _, pretty := range []bool{false, true} {
		name := "text"
		if pretty {
			name = "pretty"
		}

		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithFormat(FormatText), WithPretty(pretty))
			logger.Info("test message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, "test message") {
				t.Error("message not found in text output")
			}

			if !strings.Contains(output, "key=value") {
				t.Errorf("key=value not found in text output: %s", output)
			}
		})
	}
}

func TestLogger_AllLevels_LogSuccessfully(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...slog.Attr)
		level   string
	}{
		{"trace", Logger.Trace, "TRACE"},
		{"debug", Logger.Debug, "DEBUG"},
		{"info", Logger.Info, "INFO"},
		{"warn", Logger.Warn, "WARN"},
		{"error", Logger.Error, "ERROR"},
	}

	for _, tt := range tests {
		for _, pretty := range []bool{false, true} {
			t.Run(tt.name, func(t *testing.T) {
				var buf bytes.Buffer
				logger := Make(&buf, WithLevel(LevelTrace), WithPretty(pretty))

				tt.logFunc(logger, "test message")

				output := buf.String()
				if !strings.Contains(output, "test message") {
					t.Errorf("expected %s message to be logged", tt.name)
				}

				// trace must not render as DEBUG-4
				if !strings.Contains(output, tt.level) {
					t.Errorf("expected output to contain level %q, got: %s", tt.level, output)
				}
			})
		}
	}
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if hasOutput := buf.Len() > 0; hasOutput != tt.logged {
				t.Errorf("expected logged=%v, got output length=%d", tt.logged, buf.Len())
			}
		})
	}
}

func TestLogger_ContextMethods_LogSuccessfully(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		logFunc func(Logger, string)
	}{
		{"trace", func(l Logger, msg string) { l.TraceContext(ctx, msg) }},
		{"debug", func(l Logger, msg string) { l.DebugContext(ctx, msg) }},
		{"info", func(l Logger, msg string) { l.InfoContext(ctx, msg) }},
		{"warn", func(l Logger, msg string) { l.WarnContext(ctx, msg) }},
		{"error", func(l Logger, msg string) { l.ErrorContext(ctx, msg) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(LevelTrace))

			tt.logFunc(logger, "test message")

			if !strings.Contains(buf.String(), "test message") {
				t.Errorf("expected %s message to be logged", tt.name)
			}
		})
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf syncBuffer

		logger := Make(&buf, WithPretty(pretty))

		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)

			go func(id int) {
				defer wg.Done()
				logger.Info("concurrent message", slog.Int("id", id))
			}(i)
		}

		wg.Wait()

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 100 {
			t.Errorf("pretty=%v: expected 100 log lines, got %d", pretty, len(lines))
		}
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON)).With(slog.String("key", "value"))
		logger.Info("test message")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to unmarshal log entry: %v", err)
		}

		if val, ok := entry["key"]; !ok || val != "value" {
			t.Errorf("expected key=value in log entry, got %v", val)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithPretty(true)).With(slog.String("session", "a1"))
		logger.Info("test message", slog.Group("tokens", slog.String("alias", ":")))

		output := buf.String()
		if !strings.Contains(output, "session=a1") {
			t.Errorf("expected pre-set attribute, got: %s", output)
		}

		if !strings.Contains(output, "tokens.alias=:") {
			t.Errorf("expected grouped attribute, got: %s", output)
		}
	})
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")
	l.TraceContext(context.Background(), "test")

	if l2 := l.With(slog.String("key", "value")); l2.Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("zero value level = %v, want %v", l.Level(), DefaultLevel)
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("wrapped message")
	base.Debug("base message")

	if first.Len() != 0 {
		t.Errorf("base logger changed by Wrap: %s", first.String())
	}

	if !strings.Contains(second.String(), "wrapped message") {
		t.Errorf("wrapped logger did not log: %s", second.String())
	}
}

func TestLogger_EmptyTimeLayout_OmitsTime(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))
	l.Info("test")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
}

func TestPackage_Functions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"InfoContext", func(msg string, attrs ...slog.Attr) {
			InfoContext(context.Background(), msg, attrs...)
		}, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, "package message") {
				t.Errorf("expected message, got: %s", output)
			}

			if !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %q, got: %s", tt.level, output)
			}

			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("expected attribute, got: %s", output)
			}
		})
	}

	buf.Reset()
	With(slog.String("component", "bind")).Info("scoped")

	if !strings.Contains(buf.String(), `"component":"bind"`) {
		t.Errorf("expected With attribute, got: %s", buf.String())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(true))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf)

	for b.Loop() {
		logger.Trace("filtered message", slog.Int("n", 1))
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestLogger_Enabled(t *testing.T) {
	ctx := context.Background()
	logger := Make(&bytes.Buffer{}, WithLevel(LevelDebug))

	tests := []struct {
		level Level
		want  bool
	}{
		{LevelTrace, false},
		{LevelDebug, true},
		{LevelError, true},
	}

	for _, tt := range tests {
		if got := logger.Enabled(ctx, tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}

	var zero Logger
	if zero.Enabled(ctx, LevelError) {
		t.Error("zero value Logger reports Enabled")
	}
}
