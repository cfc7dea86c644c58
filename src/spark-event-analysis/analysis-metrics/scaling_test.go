package analysis_metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMinutesSeconds(t *testing.T, formatted string) float64 {
	t.Helper()
	var m, s int
	_, err := fmt.Sscanf(formatted, "%dm %ds", &m, &s)
	require.NoError(t, err)
	return float64(m*60 + s)
}

func TestPredictRuntimeScaling(t *testing.T) {
	t.Run("returns one row per multiplier", func(t *testing.T) {
		predictions := PredictRuntimeScaling("app-1", 600_000, 120_000, 4, 300, 60)
		require.Len(t, predictions, 5)

		assert.Equal(t, "app-1", predictions[0].ApplicationID)
		assert.Equal(t, []int{4, 8, 12, 16, 20}, []int{
			predictions[0].ExecutorCount,
			predictions[1].ExecutorCount,
			predictions[2].ExecutorCount,
			predictions[3].ExecutorCount,
			predictions[4].ExecutorCount,
		})
		assert.Equal(t, "100%", predictions[0].ExecutorMultiplier)
		assert.Equal(t, "500%", predictions[4].ExecutorMultiplier)
	})

	t.Run("estimated executor time is non-increasing with more executors", func(t *testing.T) {
		predictions := PredictRuntimeScaling("app-1", 600_000, 120_000, 2, 300, 45)
		require.Len(t, predictions, 5)

		previous := parseMinutesSeconds(t, predictions[0].EstimatedExecutorWallClock)
		for _, p := range predictions[1:] {
			current := parseMinutesSeconds(t, p.EstimatedExecutorWallClock)
			assert.LessOrEqual(t, current, previous)
			previous = current
		}
	})

	t.Run("executor count never drops below one", func(t *testing.T) {
		predictions := PredictRuntimeScaling("app-1", 600_000, 120_000, 0, 300, 60)
		require.Len(t, predictions, 5)
		for _, p := range predictions {
			assert.GreaterOrEqual(t, p.ExecutorCount, 1)
		}
	})

	t.Run("zero total task time yields no predictions", func(t *testing.T) {
		assert.Empty(t, PredictRuntimeScaling("app-1", 0, 0, 4, 300, 60))
	})

	t.Run("zero executor wall clock yields no predictions", func(t *testing.T) {
		assert.Empty(t, PredictRuntimeScaling("app-1", 600_000, 120_000, 4, 0, 60))
	})

	t.Run("single multiplier reproduces the critical path floor", func(t *testing.T) {
		// All work on the critical path: more executors change nothing.
		predictions := PredictRuntimeScaling("app-1", 120_000, 120_000, 1, 120, 0)
		require.Len(t, predictions, 5)
		for _, p := range predictions {
			assert.Equal(t, 120.0, parseMinutesSeconds(t, p.EstimatedExecutorWallClock))
		}
	})
}

func TestFormatMinutesSeconds(t *testing.T) {
	assert.Equal(t, "0m 0s", formatMinutesSeconds(0))
	assert.Equal(t, "0m 59s", formatMinutesSeconds(59.9))
	assert.Equal(t, "2m 5s", formatMinutesSeconds(125))
	assert.Equal(t, "12m 34s", formatMinutesSeconds(754.2))
}
