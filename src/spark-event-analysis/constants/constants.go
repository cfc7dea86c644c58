package constants

import "time"

const (
	IntegrationName = "com.newrelic.sparklens"
	NodeEntityType  = "node"
	// MetricSetLimit defines the maximum number of metric sets published in a single batch.
	MetricSetLimit = 100
	// TimeoutDuration defines the timeout duration for event-store queries.
	TimeoutDuration = 5 * time.Second
	// EventCategory is the row category that carries Spark listener events in the store.
	EventCategory = "EventLog"
	// TopBottleneckStages is the number of stage summaries reported per application,
	// ranked by stage execution window. Fixed policy, not configurable.
	TopBottleneckStages = 5
	// ArtifactTypeNotebook denotes an interactive notebook artifact in the
	// application metadata.
	ArtifactTypeNotebook = "SynapseNotebook"
)

// Sample names for the published result sets, one per output table of the
// analysis.
const (
	StageSummarySample      = "SparkStageSummarySample"
	AppMetricSample         = "SparkAppMetricSample"
	ScalingPredictionSample = "SparkScalingPredictionSample"
	RecommendationSample    = "SparkRecommendationSample"
	AnalysisErrorSample     = "SparkAnalysisErrorSample"
)

// Metric names emitted as SparkAppMetricSample rows.
const (
	MetricApplicationDurationSec = "application_duration_sec"
	MetricExecutorWallClockSec   = "executor_wall_clock_sec"
	MetricDriverWallClockSec     = "driver_wall_clock_sec"
	MetricExecutorTimePct        = "executor_time_pct"
	MetricDriverTimePct          = "driver_time_pct"
	MetricMaxExecutors           = "max_executors"
	MetricCriticalPathSec        = "critical_path_sec"
)

// ExecutorMultipliers are the what-if executor-count multipliers evaluated by
// the scaling predictor.
var ExecutorMultipliers = []float64{1.0, 2.0, 3.0, 4.0, 5.0}
