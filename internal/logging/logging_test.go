package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewJSONIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, FormatJSON, &buf)

	UnknownElement(logger, "SPEC-OBJECT", "VENDOR-THING")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "unknown_element" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["element"] != "VENDOR-THING" {
		t.Errorf("element = %v", record["element"])
	}
	if record["parent"] != "SPEC-OBJECT" {
		t.Errorf("parent = %v", record["parent"])
	}
	if record["level"] != "WARN" {
		t.Errorf("level = %v", record["level"])
	}
	if _, err := time.Parse(time.RFC3339, record["time"].(string)); err != nil {
		t.Errorf("time not RFC3339: %v", record["time"])
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
	}{
		{"debug passes", LevelDebug, true},
		{"info drops debug", LevelInfo, false},
		{"warn drops debug", LevelWarn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level, FormatText, &buf)
			Timing(logger, "read", time.Now())
			if got := strings.Contains(buf.String(), "timing"); got != tt.wantDebug {
				t.Errorf("debug output present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := New(LevelInfo, FormatJSON, &buf)

	ctx := WithDocument(context.Background(), "sample.reqif")
	if got := GetDocument(ctx); got != "sample.reqif" {
		t.Fatalf("GetDocument() = %q", got)
	}

	LoadEvent(LoggerFromContext(ctx, base), "loaded", "memory")
	if !strings.Contains(buf.String(), `"document":"sample.reqif"`) {
		t.Errorf("document attribute missing: %s", buf.String())
	}
	if GetDocument(context.Background()) != "" {
		t.Error("GetDocument on empty context should be empty")
	}
}

func TestLoggerFromContextDefaults(t *testing.T) {
	if LoggerFromContext(context.Background(), nil) != GetLogger() {
		t.Error("nil base should fall back to the global logger")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger should not be enabled for error level")
	}
	UnknownElement(logger, "a", "b")
}
