package analysis_metrics

import (
	"errors"

	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
)

// ErrZeroRuntime is returned when percentage shares are requested for an
// application whose runtime is zero; propagating the division would leak
// NaN/Inf into the published rows.
var ErrZeroRuntime = errors.New("application runtime is zero, cannot compute time shares")

// ApplicationRuntimeSec derives the application runtime from its lifecycle
// events: the earliest application-start timestamp to the latest
// application-end timestamp. When multiple lifecycle events exist this
// tie-break is deterministic regardless of row order. Returns 0 when either
// event is absent.
func ApplicationRuntimeSec(events []datamodels.EventRecord) float64 {
	var startMs, endMs int64
	var haveStart, haveEnd bool

	for _, ev := range events {
		switch ev.Type {
		case datamodels.EventTypeApplicationStart:
			if !haveStart || ev.TimestampMs < startMs {
				startMs = ev.TimestampMs
				haveStart = true
			}
		case datamodels.EventTypeApplicationEnd:
			if !haveEnd || ev.TimestampMs > endMs {
				endMs = ev.TimestampMs
				haveEnd = true
			}
		}
	}

	if !haveStart || !haveEnd {
		return 0.0
	}
	return float64(endMs-startMs) / 1000.0
}

// ExecutorWallClockSec is the non-overlapping wall-clock time covered by the
// tasks' launch/finish windows. Tasks missing either timestamp are dropped as
// unusable data.
func ExecutorWallClockSec(tasks []datamodels.TaskRecord) float64 {
	intervals := make([]Interval, 0, len(tasks))
	for _, t := range tasks {
		if t.LaunchTimeMs == nil || t.FinishTimeMs == nil {
			continue
		}
		intervals = append(intervals, Interval{
			StartSec: float64(*t.LaunchTimeMs) / 1000.0,
			EndSec:   float64(*t.FinishTimeMs) / 1000.0,
		})
	}
	return TotalCoverageSec(intervals)
}

// TimeShares returns the executor and driver percentage shares of the
// application runtime. The driver share may be negative when executor-reported
// time exceeds the application runtime (clock skew or overlapping
// driver/executor accounting); that is surfaced as-is.
func TimeShares(appRuntimeSec, executorWallClockSec float64) (executorPct, driverPct float64, err error) {
	if appRuntimeSec == 0.0 {
		return 0, 0, ErrZeroRuntime
	}
	executorPct = 100 * executorWallClockSec / appRuntimeSec
	driverPct = 100 * (appRuntimeSec - executorWallClockSec) / appRuntimeSec
	return executorPct, driverPct, nil
}
