// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package logging

import (
	"bytes"
	stdlog "log"
	"os"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// resetLogger restores the default logger after a test mutated the
// global state.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		mu.Lock()
		_ = initLogger(DefaultConfig())
		mu.Unlock()
	})
}

// decodeLines parses each non-empty line of buf as a JSON event.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event map[string]interface{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("failed to parse log line %q: %v", line, err)
		}
		events = append(events, event)
	}
	return events
}

func TestInitJSONOutput(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &buf})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info().Str("invoice_id", "INV-1").Msg("Invoice received")

	events := decodeLines(t, &buf)
	if len(events) != 2 {
		t.Fatalf("expected 2 events (init + message), got %d", len(events))
	}

	event := events[1]
	if event["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", event["level"])
	}
	if event["message"] != "Invoice received" {
		t.Errorf("message = %v, want Invoice received", event["message"])
	}
	if event["invoice_id"] != "INV-1" {
		t.Errorf("invoice_id = %v, want INV-1", event["invoice_id"])
	}
	if _, ok := event["timestamp"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestInitIdempotent(t *testing.T) {
	resetLogger(t)

	var first bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &first}); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}

	var second bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &second}); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}

	firstLen := first.Len()
	Info().Msg("after reinit")

	if first.Len() != firstLen {
		t.Error("first sink still receiving output after reinitialization")
	}
	events := decodeLines(t, &second)
	if len(events) != 2 {
		t.Fatalf("expected exactly 2 events on second sink, got %d", len(events))
	}
	if events[1]["message"] != "after reinit" {
		t.Errorf("message = %v, want after reinit", events[1]["message"])
	}
}

func TestLevelNames(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "DEBUG", Format: "json", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	Debug().Msg("d")
	Info().Msg("i")
	Warn().Msg("w")
	Error().Msg("e")
	Critical().Msg("c")

	events := decodeLines(t, &buf)
	want := []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, expected := range want {
		if events[i]["level"] != expected {
			t.Errorf("event %d level = %v, want %s", i, events[i]["level"], expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "WARNING", Format: "json", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	Debug().Msg("hidden")
	Info().Msg("hidden")
	Warn().Msg("visible")

	events := decodeLines(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 event at WARNING threshold, got %d", len(events))
	}
	if events[0]["message"] != "visible" {
		t.Errorf("message = %v, want visible", events[0]["message"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"DEBUG", zerolog.DebugLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"WARNING", zerolog.WarnLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"ERROR", zerolog.ErrorLevel, false},
		{"CRITICAL", zerolog.FatalLevel, false},
		{"fatal", zerolog.FatalLevel, false},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLevel(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLevel(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitInvalidLevel(t *testing.T) {
	resetLogger(t)

	err := Init(Config{Level: "LOUD", Format: "json", ConsoleOutput: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if !strings.Contains(err.Error(), "LOUD") {
		t.Errorf("error %q should name the rejected level", err)
	}
}

func TestInitUnwritableFile(t *testing.T) {
	resetLogger(t)

	err := Init(Config{
		Level:         "INFO",
		Format:        "json",
		File:          "/proc/nonexistent/app.log",
		ConsoleOutput: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for unwritable log file path")
	}
}

func TestFileSinkAlwaysJSON(t *testing.T) {
	resetLogger(t)

	logFile := t.TempDir() + "/app.log"
	var buf bytes.Buffer
	err := Init(Config{
		Level:         "INFO",
		Format:        "text",
		File:          logFile,
		FileMaxBytes:  1024 * 1024,
		ConsoleOutput: &buf,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info().Str("invoice_id", "INV-2").Msg("persisted")
	Shutdown()

	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	data := string(raw)
	lines := strings.Split(strings.TrimSpace(data), "\n")
	for _, line := range lines {
		var event map[string]interface{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("file sink line %q is not JSON: %v", line, err)
		}
	}
	if !strings.Contains(data, "INV-2") {
		t.Error("file sink missing logged field")
	}
	if strings.Contains(data, "\x1b[") {
		t.Error("file sink contains ANSI escape sequences")
	}
}

func TestTextFormatNoColorForBuffer(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "text", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	Info().Msg("plain line")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("non-terminal output should not be colorized: %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("text output missing level name: %q", out)
	}
	if !strings.Contains(out, "plain line") {
		t.Errorf("text output missing message: %q", out)
	}
}

func TestNonSerializableFieldStringified(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	// Channels have no JSON representation.
	Info().Interface("ch", make(chan int)).Msg("fallback")

	events := decodeLines(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if _, ok := events[0]["ch"].(string); !ok {
		t.Errorf("non-serializable field should fall back to a string, got %T", events[0]["ch"])
	}
}

func TestNamedLogger(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	logger := Named("invoice.Processor")
	logger.Info().Msg("named")

	events := decodeLines(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0]["logger"] != "invoice.Processor" {
		t.Errorf("logger = %v, want invoice.Processor", events[0]["logger"])
	}
}

func TestMaxSizeMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int
	}{
		{0, 10},
		{-1, 10},
		{1, 1},
		{1024 * 1024, 1},
		{1024*1024 + 1, 2},
		{10 * 1024 * 1024, 10},
	}
	for _, tt := range tests {
		if got := maxSizeMB(tt.bytes); got != tt.want {
			t.Errorf("maxSizeMB(%d) = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}

func TestStdlogBridge(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	if err := Init(Config{Level: "INFO", Format: "json", ConsoleOutput: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	buf.Reset()

	stdlog.Print("third-party noise")

	events := decodeLines(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0]["level"] != "WARNING" {
		t.Errorf("stdlib log output should be WARNING, got %v", events[0]["level"])
	}
	if events[0]["logger"] != "stdlog" {
		t.Errorf("logger = %v, want stdlog", events[0]["logger"])
	}
	if events[0]["message"] != "third-party noise" {
		t.Errorf("message = %v, want third-party noise", events[0]["message"])
	}
}
