package analysis_metrics

import (
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
)

const noRecommendationsText = "No performance recommendations found."

// EvaluateRecommendations runs the advisory rule set over the computed time
// shares and the application metadata. Rules fire independently, in fixed
// order; when none fires a single "no recommendations" row is returned so the
// result set is never empty.
func EvaluateRecommendations(meta datamodels.ApplicationMetadata, executorPct, driverPct float64) []datamodels.Recommendation {
	var texts []string

	if driverPct > 70 {
		texts = append(texts, "This Spark job is driver-heavy (driver time > 70%). Consider parallelizing more operations to offload work to executors.")
	}

	if meta.NativeExecutionEnabled.Valid && !isTruthy(meta.NativeExecutionEnabled.String) && executorPct > 50 {
		texts = append(texts, "Native execution is disabled, but executors are doing significant work. Enable native execution for performance gains without added cost.")
	}

	if driverPct > 99 {
		texts = append(texts, "This appears to be driver-only code. Run it on a non-distributed kernel or refactor it into Spark operations for better parallelism.")
	}

	highConcurrencyOff := !meta.IsHighConcurrencyEnabled.Valid || !meta.IsHighConcurrencyEnabled.Bool
	if highConcurrencyOff && meta.ArtifactType.Valid && meta.ArtifactType.String == constants.ArtifactTypeNotebook {
		texts = append(texts, "High Concurrency is disabled for this notebook. Consider enabling High Concurrency mode to pack more notebooks into fewer sessions and save costs.")
	}

	if len(texts) == 0 {
		texts = []string{noRecommendationsText}
	}

	recommendations := make([]datamodels.Recommendation, 0, len(texts))
	for _, text := range texts {
		recommendations = append(recommendations, datamodels.Recommendation{
			ApplicationID:  meta.ApplicationID,
			Recommendation: text,
		})
	}
	return recommendations
}

func isTruthy(flag string) bool {
	return flag == "true" || flag == "1"
}
