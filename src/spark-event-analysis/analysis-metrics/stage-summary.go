package analysis_metrics

import (
	"sort"

	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
)

type stageKey struct {
	stageID   int64
	attemptID int64
}

// SummarizeStages computes the per-(stage, attempt) statistical summary over
// the given tasks and returns the top bottleneck stages ranked by descending
// stage execution window. Stages with no usable launch/finish data still
// appear, with nil window fields, ranked after every stage with a window.
func SummarizeStages(appID string, tasks []datamodels.TaskRecord) []datamodels.StageSummary {
	grouped := make(map[stageKey][]datamodels.TaskRecord)
	for _, t := range tasks {
		key := stageKey{stageID: t.StageID, attemptID: t.StageAttemptID}
		grouped[key] = append(grouped[key], t)
	}

	summaries := make([]datamodels.StageSummary, 0, len(grouped))
	for key, stageTasks := range grouped {
		summaries = append(summaries, summarizeStage(appID, key, stageTasks))
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].ExecutionTimeSec, summaries[j].ExecutionTimeSec
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		if summaries[i].StageID != summaries[j].StageID {
			return summaries[i].StageID < summaries[j].StageID
		}
		return summaries[i].StageAttemptID < summaries[j].StageAttemptID
	})

	if len(summaries) > constants.TopBottleneckStages {
		summaries = summaries[:constants.TopBottleneckStages]
	}
	return summaries
}

func summarizeStage(appID string, key stageKey, stageTasks []datamodels.TaskRecord) datamodels.StageSummary {
	summary := datamodels.StageSummary{
		ApplicationID:  appID,
		StageID:        key.stageID,
		StageAttemptID: key.attemptID,
		NumTasks:       len(stageTasks),
	}

	executors := make(map[string]struct{})
	var durations []float64
	var minLaunch, maxFinish *int64

	for _, t := range stageTasks {
		executors[t.ExecutorID] = struct{}{}
		if t.RunTimeMs != nil {
			durations = append(durations, float64(*t.RunTimeMs)/1000.0)
		}
		if t.LaunchTimeMs != nil && (minLaunch == nil || *t.LaunchTimeMs < *minLaunch) {
			v := *t.LaunchTimeMs
			minLaunch = &v
		}
		if t.FinishTimeMs != nil && (maxFinish == nil || *t.FinishTimeMs > *maxFinish) {
			v := *t.FinishTimeMs
			maxFinish = &v
		}
	}
	summary.NumExecutors = len(executors)

	if len(durations) > 0 {
		sort.Float64s(durations)
		summary.MinDurationSec = durations[0]
		summary.MaxDurationSec = durations[len(durations)-1]
		summary.AvgDurationSec = mean(durations)
		summary.P75DurationSec = percentileNearestRank(durations, 0.75)
	}

	summary.AvgShuffleReadBytes, summary.MaxShuffleReadBytes = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.ShuffleReadBytes })
	summary.AvgShuffleReadRecords, summary.MaxShuffleReadRecords = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.ShuffleReadRecords })
	summary.AvgShuffleWriteBytes, summary.MaxShuffleWriteBytes = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.ShuffleWriteBytes })
	summary.AvgShuffleWriteRecords, summary.MaxShuffleWriteRecords = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.ShuffleWriteRecords })
	summary.AvgInputBytes, summary.MaxInputBytes = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.InputBytes })
	summary.AvgInputRecords, summary.MaxInputRecords = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.InputRecords })
	summary.AvgOutputBytes, summary.MaxOutputBytes = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.OutputBytes })
	summary.AvgOutputRecords, summary.MaxOutputRecords = avgAndMax(stageTasks, func(t datamodels.TaskRecord) *int64 { return t.OutputRecords })

	summary.MinLaunchTimeMs = minLaunch
	summary.MaxFinishTimeMs = maxFinish
	if minLaunch != nil && maxFinish != nil {
		window := float64(*maxFinish-*minLaunch) / 1000.0
		summary.ExecutionTimeSec = &window
	}

	return summary
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentileNearestRank returns the nearest-rank percentile of an ascending
// sorted slice. Approximate by design; callers must not expect interpolation.
func percentileNearestRank(sorted []float64, p float64) float64 {
	rank := int(p*float64(len(sorted)) + 0.9999999)
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// avgAndMax aggregates an optional task counter, ignoring tasks where it is
// absent. Both results are 0 when no task reported the counter.
func avgAndMax(tasks []datamodels.TaskRecord, field func(datamodels.TaskRecord) *int64) (avg, max float64) {
	var sum float64
	var n int
	for _, t := range tasks {
		v := field(t)
		if v == nil {
			continue
		}
		f := float64(*v)
		sum += f
		if n == 0 || f > max {
			max = f
		}
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), max
}
