package analysis_metrics

import (
	"fmt"

	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
)

// PredictRuntimeScaling projects the estimated application duration at each
// executor-count multiplier. The model splits the total task time into the
// critical path (the non-parallelizable floor) and a parallelizable remainder
// divided across the projected executors; driver and executor phases are then
// composed with an overlap weight that blends between pure-overlap (max) and
// pure-serial (sum). Returns an empty set when the total task time or the
// executor wall clock is zero, since the model is undefined there.
func PredictRuntimeScaling(
	appID string,
	totalTaskTimeMs float64,
	criticalPathMs float64,
	currentExecutors int,
	executorWallClockSec float64,
	driverWallClockSec float64,
) []datamodels.ScalingPrediction {
	if totalTaskTimeMs == 0 || executorWallClockSec == 0 {
		return nil
	}

	parallelizableMs := totalTaskTimeMs - criticalPathMs

	predictions := make([]datamodels.ScalingPrediction, 0, len(constants.ExecutorMultipliers))
	for _, multiplier := range constants.ExecutorMultipliers {
		newExecutors := int(float64(currentExecutors) * multiplier)
		if newExecutors < 1 {
			newExecutors = 1
		}

		estimatedExecutorSec := (criticalPathMs + parallelizableMs/float64(newExecutors)) / 1000.0

		// Higher driver share means less driver/executor overlap.
		overlapWeight := 1 - driverWallClockSec/(driverWallClockSec+estimatedExecutorSec)

		appDurationSec := maxFloat(driverWallClockSec, estimatedExecutorSec) +
			overlapWeight*minFloat(driverWallClockSec, estimatedExecutorSec)

		predictions = append(predictions, datamodels.ScalingPrediction{
			ApplicationID:              appID,
			ExecutorCount:              newExecutors,
			ExecutorMultiplier:         fmt.Sprintf("%d%%", int(multiplier*100)),
			EstimatedExecutorWallClock: formatMinutesSeconds(estimatedExecutorSec),
			EstimatedTotalDuration:     formatMinutesSeconds(appDurationSec),
		})
	}

	return predictions
}

// formatMinutesSeconds renders a duration as e.g. "12m 34s".
func formatMinutesSeconds(sec float64) string {
	return fmt.Sprintf("%dm %ds", int(sec)/60, int(sec)%60)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
