package analysis_metrics

import (
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
)

// CriticalPathSec estimates the lower-bound serial duration of the
// application: stages are assumed to execute as a serial chain, each gated by
// its slowest task. Tasks without a reported run time contribute nothing.
// Returns ok=false when no stage has a usable task; zero would falsely read
// as an instant-stage workload.
func CriticalPathSec(tasks []datamodels.TaskRecord) (float64, bool) {
	maxPerStage := make(map[int64]int64)
	for _, t := range tasks {
		if t.RunTimeMs == nil {
			continue
		}
		if cur, seen := maxPerStage[t.StageID]; !seen || *t.RunTimeMs > cur {
			maxPerStage[t.StageID] = *t.RunTimeMs
		}
	}

	if len(maxPerStage) == 0 {
		return 0, false
	}

	var totalMs int64
	for _, ms := range maxPerStage {
		totalMs += ms
	}
	return float64(totalMs) / 1000.0, true
}
