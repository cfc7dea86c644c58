package eventdecoder

import (
	"testing"

	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	eventstore "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskEndPayload = `{
    "Event": "SparkListenerTaskEnd",
    "Stage ID": 3,
    "Stage Attempt ID": 1,
    "Task Info": {
        "Task ID": 42,
        "Executor ID": "7",
        "Launch Time": 1700000000000,
        "Finish Time": 1700000060000,
        "Failed": false
    },
    "Task Metrics": {
        "Executor Run Time": 58000,
        "Input Metrics": {"Bytes Read": 1048576, "Records Read": 1000},
        "Output Metrics": {"Bytes Written": 2048, "Records Written": 10},
        "Shuffle Read Metrics": {"Remote Bytes Read": 4096, "Total Records Read": 20},
        "Shuffle Write Metrics": {"Shuffle Bytes Written": 8192, "Shuffle Records Written": 40}
    }
}`

func TestDecodeEvent(t *testing.T) {
	t.Run("application start", func(t *testing.T) {
		record, err := DecodeEvent([]byte(`{"Event": "SparkListenerApplicationStart", "Timestamp": 1700000000000}`))
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, datamodels.EventTypeApplicationStart, record.Type)
		assert.Equal(t, int64(1700000000000), record.TimestampMs)
		assert.Nil(t, record.Task)
	})

	t.Run("application end", func(t *testing.T) {
		record, err := DecodeEvent([]byte(`{"Event": "SparkListenerApplicationEnd", "Timestamp": 1700000090000}`))
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, datamodels.EventTypeApplicationEnd, record.Type)
	})

	t.Run("task end with full metrics", func(t *testing.T) {
		record, err := DecodeEvent([]byte(taskEndPayload))
		require.NoError(t, err)
		require.NotNil(t, record)
		require.NotNil(t, record.Task)

		task := record.Task
		assert.Equal(t, int64(3), task.StageID)
		assert.Equal(t, int64(1), task.StageAttemptID)
		assert.Equal(t, int64(42), task.TaskID)
		assert.Equal(t, "7", task.ExecutorID)
		assert.False(t, task.Failed)
		assert.Equal(t, int64(1700000000000), *task.LaunchTimeMs)
		assert.Equal(t, int64(1700000060000), *task.FinishTimeMs)
		assert.Equal(t, int64(58000), *task.RunTimeMs)
		assert.Equal(t, int64(1048576), *task.InputBytes)
		assert.Equal(t, int64(1000), *task.InputRecords)
		assert.Equal(t, int64(2048), *task.OutputBytes)
		assert.Equal(t, int64(10), *task.OutputRecords)
		assert.Equal(t, int64(4096), *task.ShuffleReadBytes)
		assert.Equal(t, int64(20), *task.ShuffleReadRecords)
		assert.Equal(t, int64(8192), *task.ShuffleWriteBytes)
		assert.Equal(t, int64(40), *task.ShuffleWriteRecords)
	})

	t.Run("task end with absent metrics keeps nil fields", func(t *testing.T) {
		payload := `{
            "Event": "SparkListenerTaskEnd",
            "Stage ID": 1,
            "Task Info": {"Task ID": 5, "Executor ID": "1", "Failed": true}
        }`
		record, err := DecodeEvent([]byte(payload))
		require.NoError(t, err)
		require.NotNil(t, record.Task)
		assert.True(t, record.Task.Failed)
		assert.Nil(t, record.Task.LaunchTimeMs)
		assert.Nil(t, record.Task.FinishTimeMs)
		assert.Nil(t, record.Task.RunTimeMs)
		assert.Nil(t, record.Task.ShuffleReadBytes)
	})

	t.Run("unconsumed event types are dropped silently", func(t *testing.T) {
		record, err := DecodeEvent([]byte(`{"Event": "SparkListenerStageCompleted"}`))
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("payload without Event field is rejected", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{"Timestamp": 1700000000000}`))
		assert.Error(t, err)
	})

	t.Run("lifecycle event without timestamp is rejected", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{"Event": "SparkListenerApplicationStart"}`))
		assert.Error(t, err)
	})

	t.Run("task finishing before launch is rejected", func(t *testing.T) {
		payload := `{
            "Event": "SparkListenerTaskEnd",
            "Stage ID": 1,
            "Task Info": {"Task ID": 5, "Executor ID": "1", "Launch Time": 2000, "Finish Time": 1000}
        }`
		_, err := DecodeEvent([]byte(payload))
		assert.Error(t, err)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestDecodeEventRows(t *testing.T) {
	rows := []eventstore.RawEventRow{
		{Payload: `{"Event": "SparkListenerApplicationStart", "Timestamp": 1700000000000}`},
		{Payload: `{"Event": "SparkListenerEnvironmentUpdate"}`},
		{Payload: `{broken`},
		{Payload: `{"Event": "SparkListenerApplicationEnd", "Timestamp": 1700000090000}`},
	}

	events := DecodeEventRows(rows)
	require.Len(t, events, 2)
	assert.Equal(t, datamodels.EventTypeApplicationStart, events[0].Type)
	assert.Equal(t, datamodels.EventTypeApplicationEnd, events[1].Type)
}
