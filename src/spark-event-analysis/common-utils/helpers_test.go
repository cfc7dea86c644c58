package common_utils

import (
	"testing"

	"github.com/newrelic/infra-integrations-sdk/v3/integration"
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNodeEntity(t *testing.T) {
	i, err := integration.New("test-integration", "1.0.0")
	require.NoError(t, err)

	t.Run("local entity", func(t *testing.T) {
		e, err := CreateNodeEntity(i, false, "localhost", 3306)
		require.NoError(t, err)
		assert.Equal(t, i.LocalEntity(), e)
	})

	t.Run("remote entity", func(t *testing.T) {
		e, err := CreateNodeEntity(i, true, "store-host", 3306)
		require.NoError(t, err)
		assert.Equal(t, "store-host:3306", e.Metadata.Name)
	})
}

func TestSetMetricsFromModel(t *testing.T) {
	i, err := integration.New("test-integration", "1.0.0")
	require.NoError(t, err)
	e := i.LocalEntity()

	t.Run("metric result row", func(t *testing.T) {
		ms := MetricSet(e, "SparkAppMetricSample", "localhost", 3306, false)
		err := setMetricsFromModel(ms, datamodels.MetricsResult{
			ApplicationID: "app-1",
			Metric:        "application_duration_sec",
			Value:         123.45,
		})
		require.NoError(t, err)

		assert.Equal(t, "app-1", ms.Metrics["application_id"])
		assert.Equal(t, "application_duration_sec", ms.Metrics["metric"])
		assert.Equal(t, 123.45, ms.Metrics["value"])
	})

	t.Run("nil optional fields are omitted", func(t *testing.T) {
		ms := MetricSet(e, "SparkStageSummarySample", "localhost", 3306, false)
		err := setMetricsFromModel(ms, datamodels.StageSummary{
			ApplicationID: "app-1",
			StageID:       4,
			NumTasks:      2,
		})
		require.NoError(t, err)

		assert.Equal(t, float64(4), ms.Metrics["stage_id"])
		assert.Equal(t, float64(2), ms.Metrics["num_tasks"])
		_, present := ms.Metrics["stage_execution_time_sec"]
		assert.False(t, present)
	})

	t.Run("booleans become attributes", func(t *testing.T) {
		ms := MetricSet(e, "SparkTaskSample", "localhost", 3306, false)
		err := setMetricsFromModel(ms, struct {
			Failed bool `json:"failed"`
		}{Failed: true})
		require.NoError(t, err)
		assert.Equal(t, "true", ms.Metrics["failed"])
	})
}
