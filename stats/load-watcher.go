package stats

import (
	"sync/atomic"
	"time"

	h "github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
)

// LoadWatcher tracks warehouse load progress for a given step.
// Progress is reported as a percentage of total rows inserted so far and only
// when the integer percentage value changes, so repeated updates inside the
// same percent are silent. The final row always reports exactly 100%.
type LoadWatcher struct {
	log         logger.Logger
	stepName    string
	totalRows   int64
	rowsDone    int64
	reportedPct int64 // last integer percentage reported; -1 until first report.
	startTime   time.Time
	isRunning   h.AtomBool
	// OnProgress, when set, receives each integer percentage transition.
	// Used by the CLI to draw progress on a terminal.
	OnProgress func(pct int)
}

func NewLoadWatcher(log logger.Logger, stepName string, totalRows int) *LoadWatcher {
	w := &LoadWatcher{
		log:         log,
		stepName:    stepName,
		totalRows:   int64(totalRows),
		reportedPct: -1,
		startTime:   time.Now(),
	}
	w.isRunning.Set(true)
	return w
}

// AddRowsDone accounts for n more rows inserted and reports the new percentage
// if its integer value changed.
func (w *LoadWatcher) AddRowsDone(n int) {
	done := atomic.AddInt64(&w.rowsDone, int64(n))
	if w.totalRows <= 0 {
		return
	}
	pct := done * 100 / w.totalRows
	if done >= w.totalRows { // round the final batch's completion to exactly 100%.
		pct = 100
	}
	if pct != atomic.LoadInt64(&w.reportedPct) { // if the integer percentage moved...
		atomic.StoreInt64(&w.reportedPct, pct)
		w.log.Info(w.stepName, " progress: ", pct, "%")
		if w.OnProgress != nil {
			w.OnProgress(int(pct))
		}
	}
}

// RowsDone returns the number of rows accounted for so far.
func (w *LoadWatcher) RowsDone() int {
	return int(atomic.LoadInt64(&w.rowsDone))
}

// LastReportedPct returns the last integer percentage reported, or -1.
func (w *LoadWatcher) LastReportedPct() int {
	return int(atomic.LoadInt64(&w.reportedPct))
}

// Stop marks the watcher as finished and logs the elapsed duration.
func (w *LoadWatcher) Stop() {
	if w.isRunning.Get() {
		w.isRunning.Set(false)
		w.log.Debug(w.stepName, " loaded ", w.RowsDone(), " rows in ", time.Since(w.startTime))
	}
}
