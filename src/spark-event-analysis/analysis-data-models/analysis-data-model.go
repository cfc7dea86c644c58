package analysis_data_models

import (
	"database/sql"
)

// EventType discriminates the decoded Spark listener event variants.
type EventType string

const (
	EventTypeApplicationStart EventType = "SparkListenerApplicationStart"
	EventTypeApplicationEnd   EventType = "SparkListenerApplicationEnd"
	EventTypeTaskEnd          EventType = "SparkListenerTaskEnd"
)

// EventRecord is one decoded lifecycle event from the event log. TimestampMs
// is populated for application start/end events; Task is populated for task
// end events.
type EventRecord struct {
	Type        EventType
	TimestampMs int64
	Task        *TaskRecord
}

// TaskRecord is one completed task attempt. Launch/finish times and the
// metric counters are pointers because the event log may omit any of them;
// an absent value is unusable data, not zero.
type TaskRecord struct {
	StageID             int64  `json:"stage_id"`
	StageAttemptID      int64  `json:"stage_attempt_id"`
	TaskID              int64  `json:"task_id"`
	ExecutorID          string `json:"executor_id"`
	Failed              bool   `json:"failed"`
	LaunchTimeMs        *int64 `json:"launch_time_ms"`
	FinishTimeMs        *int64 `json:"finish_time_ms"`
	RunTimeMs           *int64 `json:"run_time_ms"`
	InputBytes          *int64 `json:"input_bytes"`
	InputRecords        *int64 `json:"input_records"`
	OutputBytes         *int64 `json:"output_bytes"`
	OutputRecords       *int64 `json:"output_records"`
	ShuffleReadBytes    *int64 `json:"shuffle_read_bytes"`
	ShuffleReadRecords  *int64 `json:"shuffle_read_records"`
	ShuffleWriteBytes   *int64 `json:"shuffle_write_bytes"`
	ShuffleWriteRecords *int64 `json:"shuffle_write_records"`
}

// ApplicationMetadata is one row per application run, queried from the
// metadata table populated by the ingestion pipeline. The configuration
// flags are tri-state: invalid means the flag was never reported.
type ApplicationMetadata struct {
	ApplicationID            string         `json:"application_id" db:"application_id"`
	ApplicationName          sql.NullString `json:"application_name" db:"application_name"`
	ArtifactID               sql.NullString `json:"artifact_id" db:"artifact_id"`
	ArtifactType             sql.NullString `json:"artifact_type" db:"artifact_type"`
	CapacityID               sql.NullString `json:"capacity_id" db:"capacity_id"`
	ExecutorMin              sql.NullInt64  `json:"executor_min" db:"executor_min"`
	ExecutorMax              sql.NullInt64  `json:"executor_max" db:"executor_max"`
	IsHighConcurrencyEnabled sql.NullBool   `json:"is_high_concurrency_enabled" db:"is_high_concurrency_enabled"`
	NativeExecutionEnabled   sql.NullString `json:"native_execution_enabled" db:"native_execution_enabled"`
}

// MetricsResult is one named application-level scalar, rounded to 2 decimals.
type MetricsResult struct {
	ApplicationID string  `json:"application_id"`
	Metric        string  `json:"metric"`
	Value         float64 `json:"value"`
}

// StageSummary is the per-(stage, attempt) statistical summary. The
// execution-window fields are nil when no task in the stage carried both a
// launch and a finish timestamp.
type StageSummary struct {
	ApplicationID          string   `json:"application_id"`
	StageID                int64    `json:"stage_id"`
	StageAttemptID         int64    `json:"stage_attempt_id"`
	NumTasks               int      `json:"num_tasks"`
	NumExecutors           int      `json:"num_executors"`
	MinDurationSec         float64  `json:"min_duration_sec"`
	MaxDurationSec         float64  `json:"max_duration_sec"`
	AvgDurationSec         float64  `json:"avg_duration_sec"`
	P75DurationSec         float64  `json:"p75_duration_sec"`
	AvgShuffleReadBytes    float64  `json:"avg_shuffle_read_bytes"`
	MaxShuffleReadBytes    float64  `json:"max_shuffle_read_bytes"`
	AvgShuffleReadRecords  float64  `json:"avg_shuffle_read_records"`
	MaxShuffleReadRecords  float64  `json:"max_shuffle_read_records"`
	AvgShuffleWriteBytes   float64  `json:"avg_shuffle_write_bytes"`
	MaxShuffleWriteBytes   float64  `json:"max_shuffle_write_bytes"`
	AvgShuffleWriteRecords float64  `json:"avg_shuffle_write_records"`
	MaxShuffleWriteRecords float64  `json:"max_shuffle_write_records"`
	AvgInputBytes          float64  `json:"avg_input_bytes"`
	MaxInputBytes          float64  `json:"max_input_bytes"`
	AvgInputRecords        float64  `json:"avg_input_records"`
	MaxInputRecords        float64  `json:"max_input_records"`
	AvgOutputBytes         float64  `json:"avg_output_bytes"`
	MaxOutputBytes         float64  `json:"max_output_bytes"`
	AvgOutputRecords       float64  `json:"avg_output_records"`
	MaxOutputRecords       float64  `json:"max_output_records"`
	MinLaunchTimeMs        *int64   `json:"min_launch_time_ms"`
	MaxFinishTimeMs        *int64   `json:"max_finish_time_ms"`
	ExecutionTimeSec       *float64 `json:"stage_execution_time_sec"`
}

// ScalingPrediction is one what-if row per executor-count multiplier.
type ScalingPrediction struct {
	ApplicationID              string `json:"application_id"`
	ExecutorCount              int    `json:"executor_count"`
	ExecutorMultiplier         string `json:"executor_multiplier"`
	EstimatedExecutorWallClock string `json:"estimated_executor_wall_clock"`
	EstimatedTotalDuration     string `json:"estimated_total_duration"`
}

// Recommendation pairs an application id with one piece of advisory text.
type Recommendation struct {
	ApplicationID  string `json:"application_id"`
	Recommendation string `json:"recommendation"`
}

// AnalysisError is the placeholder row emitted when one application run's
// analysis fails; the batch continues with the remaining runs.
type AnalysisError struct {
	ApplicationID string `json:"application_id"`
	Error         string `json:"error"`
}

// ApplicationAnalysis bundles the four result sets of one successful
// application-run analysis. Value records only; nothing here is mutated
// after AnalyzeApplication returns.
type ApplicationAnalysis struct {
	ApplicationID   string
	StageSummaries  []StageSummary
	Metrics         []MetricsResult
	Predictions     []ScalingPrediction
	Recommendations []Recommendation
}
