package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNew_JSONWritesStructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	logger.Info("competition fetched", "competition", "england/premier-league", "fixtures", 3)
	logger.Debug("suppressed")
	logger.With("component", "aggregator").Warn("competition failed", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("debug entry must be filtered at info level: %s", out)
	}
	for _, want := range []string{
		`"msg":"competition fetched"`,
		`"competition":"england/premier-league"`,
		`"fixtures":3`,
		`"component":"aggregator"`,
		`"error":"boom"`,
		`"level":"WARN"`,
		`"caller":"logging/logger_test.go`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in output: %s", want, out)
		}
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: "Console", Output: &buf}).Named("board")
	logger.Debug("reload requested", "leagues", 2)

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console encoding, got %s", out)
	}
	for _, want := range []string{"DEBUG", "board", "reload requested", `"leagues": 2`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %s", want, out)
		}
	}
}

func TestInfoContext_AddsTraceIdentifiers(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	New(Options{Level: LevelInfo, Output: &buf}).InfoContext(ctx, "pass done")

	out := buf.String()
	if !strings.Contains(out, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) || !strings.Contains(out, `"span_id":"00f067aa0ba902b7"`) {
		t.Fatalf("expected trace fields, got %s", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	logger.With("k", "v").Warn("still no panic")
	if logger.Zap() == nil {
		t.Fatalf("expected nop zap logger")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
	if logger.Enabled(LevelError) {
		t.Fatalf("nop default logger must not be enabled")
	}
}
