package analysis_metrics

import (
	"errors"
	"math"

	"github.com/newrelic/infra-integrations-sdk/v3/log"
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
)

// ErrMissingLifecycleEvent is returned when an application run carries no
// application-start event; the run is skipped and reported as an error row.
var ErrMissingLifecycleEvent = errors.New("missing SparkListenerApplicationStart event")

// AnalyzeApplication runs the full one-shot analysis for a single application
// run. It is pure with respect to its inputs: no state crosses run boundaries
// and the returned result is never mutated afterward.
func AnalyzeApplication(events []datamodels.EventRecord, meta datamodels.ApplicationMetadata) (*datamodels.ApplicationAnalysis, error) {
	appID := meta.ApplicationID

	if !hasApplicationStart(events) {
		return nil, ErrMissingLifecycleEvent
	}

	// Failed task attempts are excluded from every aggregation.
	tasks := successfulTasks(events)

	appRuntimeSec := ApplicationRuntimeSec(events)
	executorWallClockSec := ExecutorWallClockSec(tasks)
	driverWallClockSec := appRuntimeSec - executorWallClockSec

	executorPct, driverPct, err := TimeShares(appRuntimeSec, executorWallClockSec)
	if err != nil {
		return nil, err
	}

	maxExecutors := distinctExecutorCount(tasks)
	criticalPathSec, criticalPathDefined := CriticalPathSec(tasks)

	metrics := []datamodels.MetricsResult{
		{ApplicationID: appID, Metric: constants.MetricApplicationDurationSec, Value: round2(appRuntimeSec)},
		{ApplicationID: appID, Metric: constants.MetricExecutorWallClockSec, Value: round2(executorWallClockSec)},
		{ApplicationID: appID, Metric: constants.MetricDriverWallClockSec, Value: round2(driverWallClockSec)},
		{ApplicationID: appID, Metric: constants.MetricExecutorTimePct, Value: round2(executorPct)},
		{ApplicationID: appID, Metric: constants.MetricDriverTimePct, Value: round2(driverPct)},
		{ApplicationID: appID, Metric: constants.MetricMaxExecutors, Value: float64(maxExecutors)},
	}

	var predictions []datamodels.ScalingPrediction
	if criticalPathDefined {
		metrics = append(metrics, datamodels.MetricsResult{
			ApplicationID: appID,
			Metric:        constants.MetricCriticalPathSec,
			Value:         round2(criticalPathSec),
		})
		predictions = PredictRuntimeScaling(
			appID,
			totalTaskTimeMs(tasks),
			criticalPathSec*1000,
			maxExecutors,
			executorWallClockSec,
			driverWallClockSec,
		)
	} else {
		log.Warn("Critical path could not be computed for application %s; skipping scaling predictions", appID)
	}

	return &datamodels.ApplicationAnalysis{
		ApplicationID:   appID,
		StageSummaries:  SummarizeStages(appID, tasks),
		Metrics:         metrics,
		Predictions:     predictions,
		Recommendations: EvaluateRecommendations(meta, executorPct, driverPct),
	}, nil
}

func hasApplicationStart(events []datamodels.EventRecord) bool {
	for _, ev := range events {
		if ev.Type == datamodels.EventTypeApplicationStart {
			return true
		}
	}
	return false
}

func successfulTasks(events []datamodels.EventRecord) []datamodels.TaskRecord {
	var tasks []datamodels.TaskRecord
	for _, ev := range events {
		if ev.Type != datamodels.EventTypeTaskEnd || ev.Task == nil {
			continue
		}
		if ev.Task.Failed {
			continue
		}
		tasks = append(tasks, *ev.Task)
	}
	return tasks
}

func distinctExecutorCount(tasks []datamodels.TaskRecord) int {
	executors := make(map[string]struct{})
	for _, t := range tasks {
		executors[t.ExecutorID] = struct{}{}
	}
	return len(executors)
}

func totalTaskTimeMs(tasks []datamodels.TaskRecord) float64 {
	var total float64
	for _, t := range tasks {
		if t.RunTimeMs != nil {
			total += float64(*t.RunTimeMs)
		}
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
