package stats

import (
	"testing"

	"github.com/medbridge/edgepipe/logger"
)

func TestLoadWatcherReportsIntegerTransitionsOnly(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	var reports []int
	w := NewLoadWatcher(log, "test-load", 12000)
	w.OnProgress = func(pct int) {
		reports = append(reports, pct)
	}
	// Three batches of 5000/5000/2000 rows.
	w.AddRowsDone(5000)
	w.AddRowsDone(5000)
	w.AddRowsDone(2000)
	w.Stop()
	// 5000/12000 = 41%, 10000/12000 = 83%, final = exactly 100%.
	expected := []int{41, 83, 100}
	if len(reports) != len(expected) {
		t.Fatal("unexpected reports: ", reports)
	}
	for i := range expected {
		if reports[i] != expected[i] {
			t.Fatal("unexpected reports: ", reports)
		}
	}
}

func TestLoadWatcherSilentWithinSamePercent(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	var reports []int
	w := NewLoadWatcher(log, "test-load", 1000)
	w.OnProgress = func(pct int) {
		reports = append(reports, pct)
	}
	// Row-at-a-time accounting only reports when the integer percent moves.
	for i := 0; i < 25; i++ {
		w.AddRowsDone(1)
	}
	expected := []int{0, 1, 2}
	if len(reports) != len(expected) || reports[0] != 0 || reports[1] != 1 || reports[2] != 2 {
		t.Fatal("unexpected reports: ", reports)
	}
	if w.RowsDone() != 25 {
		t.Fatal("unexpected rows done: ", w.RowsDone())
	}
}
