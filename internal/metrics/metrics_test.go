package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRun(t *testing.T) {
	m := New()

	m.ObserveRun(1500*time.Millisecond, nil)
	if got := testutil.ToFloat64(m.LastRunSuccess); got != 1 {
		t.Fatalf("last_run_success = %v", got)
	}
	if got := testutil.ToFloat64(m.LastRunDuration); got != 1.5 {
		t.Fatalf("last_run_duration_seconds = %v", got)
	}

	m.ObserveRun(time.Second, errors.New("boom"))
	if got := testutil.ToFloat64(m.LastRunSuccess); got != 0 {
		t.Fatalf("last_run_success после ошибки = %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.GamesGenerated.Add(2)
	m.FilesWritten.WithLabelValues("json").Add(2)

	path := filepath.Join(t.TempDir(), "seeder.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{
		"diffgame_seeder_games_generated_total 2",
		`diffgame_seeder_files_written_total{kind="json"} 2`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("в файле нет %q:\n%s", want, text)
		}
	}
}
