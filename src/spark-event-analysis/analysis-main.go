package sparkeventanalysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/newrelic/infra-integrations-sdk/v3/integration"
	"github.com/newrelic/infra-integrations-sdk/v3/log"
	arguments "github.com/newrelic/nri-sparklens/src/args"
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	analysismetrics "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-metrics"
	commonutils "github.com/newrelic/nri-sparklens/src/spark-event-analysis/common-utils"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
	eventdecoder "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-decoder"
	eventstore "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-store"
	validator "github.com/newrelic/nri-sparklens/src/spark-event-analysis/validator"
)

// runResult is the outcome of one application run's analysis: either the
// four result sets or a single error placeholder row.
type runResult struct {
	analysis *datamodels.ApplicationAnalysis
	errRow   *datamodels.AnalysisError
}

// PopulateAnalysisMetrics runs the batch analysis over every application run
// awaiting analysis in the event store and publishes the results.
func PopulateAnalysisMetrics(args arguments.ArgumentList, e *integration.Entity, i *integration.Integration) {
	dsn := eventstore.GenerateDSN(args)

	db, err := eventstore.OpenSQLXDB(dsn)
	commonutils.FatalIfErr(err)
	defer db.Close()

	if !validator.ValidatePreconditions(db) {
		commonutils.FatalIfErr(fmt.Errorf("preconditions failed: event store is not ready"))
	}

	appIDs, err := eventstore.FetchApplicationIDs(db)
	commonutils.FatalIfErr(err)
	log.Debug("Found %d applications awaiting analysis", len(appIDs))

	results := make([]runResult, 0, len(appIDs))
	for n, appID := range appIDs {
		start := time.Now()
		log.Debug("Analyzing application %s (%d of %d)", appID, n+1, len(appIDs))
		results = append(results, analyzeOneApplication(db, appID))
		log.Debug("Completed analysis of application %s in %v", appID, time.Since(start))
	}

	publishResults(results, i, args)
}

// analyzeOneApplication loads, decodes and analyzes a single application run.
// Every failure is scoped to this run: it is logged and converted into an
// error placeholder row so the batch continues with the remaining runs.
func analyzeOneApplication(db eventstore.DataSource, appID string) (result runResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected failure analyzing application %s: %v", appID, r)
			result = errorResult(appID, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	rows, err := eventstore.FetchEventRows(db, appID)
	if err != nil {
		log.Error("Error loading events for application %s: %v", appID, err)
		return errorResult(appID, err.Error())
	}

	meta, err := eventstore.FetchApplicationMetadata(db, appID)
	if err != nil {
		log.Error("Error loading metadata for application %s: %v", appID, err)
		return errorResult(appID, err.Error())
	}

	events := eventdecoder.DecodeEventRows(rows)

	analysis, err := analysismetrics.AnalyzeApplication(events, meta)
	if err != nil {
		if errors.Is(err, analysismetrics.ErrMissingLifecycleEvent) {
			log.Warn("Missing SparkListenerApplicationStart event for application %s", appID)
		} else {
			log.Error("Error analyzing application %s: %v", appID, err)
		}
		return errorResult(appID, err.Error())
	}

	return runResult{analysis: analysis}
}

func errorResult(appID, message string) runResult {
	return runResult{errRow: &datamodels.AnalysisError{ApplicationID: appID, Error: message}}
}

// publishResults concatenates the per-run result sets and publishes each as
// its own sample type.
func publishResults(results []runResult, i *integration.Integration, args arguments.ArgumentList) {
	var stageRows, metricRows, predictionRows, recommendationRows, errorRows []interface{}

	for _, r := range results {
		if r.errRow != nil {
			errorRows = append(errorRows, *r.errRow)
			continue
		}
		for _, row := range r.analysis.StageSummaries {
			stageRows = append(stageRows, row)
		}
		for _, row := range r.analysis.Metrics {
			metricRows = append(metricRows, row)
		}
		for _, row := range r.analysis.Predictions {
			predictionRows = append(predictionRows, row)
		}
		for _, row := range r.analysis.Recommendations {
			recommendationRows = append(recommendationRows, row)
		}
	}

	samples := []struct {
		name string
		rows []interface{}
	}{
		{constants.StageSummarySample, stageRows},
		{constants.AppMetricSample, metricRows},
		{constants.ScalingPredictionSample, predictionRows},
		{constants.RecommendationSample, recommendationRows},
		{constants.AnalysisErrorSample, errorRows},
	}

	for _, sample := range samples {
		if len(sample.rows) == 0 {
			continue
		}
		if err := commonutils.IngestMetric(sample.rows, sample.name, i, args); err != nil {
			log.Error("Error publishing %s rows: %v", sample.name, err)
		}
	}
}
