package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, ожидалось %v", in, got, want)
		}
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)

	With("run_id", "abc").Info("run finished", "games", 2)
	Get().Debug("не должно попасть в вывод")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("ожидалась одна строка лога, получено %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("лог не в формате json: %v", err)
	}
	if entry["msg"] != "run finished" || entry["run_id"] != "abc" {
		t.Fatalf("неожиданная запись лога: %v", entry)
	}
	if entry["games"] != float64(2) {
		t.Fatalf("ожидалось games=2, получено %v", entry["games"])
	}
}
