package eventdecoder

import (
	"fmt"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/newrelic/infra-integrations-sdk/v3/log"
	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	eventstore "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-store"
	"github.com/xeipuuv/gojsonschema"
)

// eventPayloadSchema captures the minimal invariants every listener-event
// payload must satisfy before field extraction is attempted. The payloads are
// otherwise semi-structured; everything beyond this is optional per event
// type.
const eventPayloadSchema = `{
    "type": "object",
    "required": ["Event"],
    "properties": {
        "Event": {"type": "string"},
        "Timestamp": {"type": "integer"},
        "Stage ID": {"type": "integer"},
        "Stage Attempt ID": {"type": "integer"},
        "Task Info": {"type": "object"},
        "Task Metrics": {"type": "object"}
    }
}`

var compiledPayloadSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(eventPayloadSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded event payload schema: %v", err))
	}
	compiledPayloadSchema = schema
}

// DecodeEventRows decodes raw payload rows into event records. Rows that fail
// schema validation or field extraction are skipped with a warning; event
// types the analysis does not consume are dropped silently.
func DecodeEventRows(rows []eventstore.RawEventRow) []datamodels.EventRecord {
	var events []datamodels.EventRecord
	for _, row := range rows {
		record, err := DecodeEvent([]byte(row.Payload))
		if err != nil {
			log.Warn("Skipping undecodable event payload: %v", err)
			continue
		}
		if record != nil {
			events = append(events, *record)
		}
	}
	return events
}

// DecodeEvent decodes one listener-event payload. Returns (nil, nil) for
// event types the analysis does not consume.
func DecodeEvent(payload []byte) (*datamodels.EventRecord, error) {
	result, err := compiledPayloadSchema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to validate event payload: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("event payload rejected by schema: %v", result.Errors())
	}

	js, err := simplejson.NewJson(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	eventType, err := js.Get("Event").String()
	if err != nil {
		return nil, fmt.Errorf("event payload has no Event field: %w", err)
	}

	switch datamodels.EventType(eventType) {
	case datamodels.EventTypeApplicationStart, datamodels.EventTypeApplicationEnd:
		timestampMs, err := js.Get("Timestamp").Int64()
		if err != nil {
			return nil, fmt.Errorf("%s event has no usable Timestamp: %w", eventType, err)
		}
		return &datamodels.EventRecord{
			Type:        datamodels.EventType(eventType),
			TimestampMs: timestampMs,
		}, nil
	case datamodels.EventTypeTaskEnd:
		task, err := decodeTask(js)
		if err != nil {
			return nil, err
		}
		return &datamodels.EventRecord{
			Type: datamodels.EventTypeTaskEnd,
			Task: task,
		}, nil
	default:
		return nil, nil
	}
}

func decodeTask(js *simplejson.Json) (*datamodels.TaskRecord, error) {
	stageID, err := js.Get("Stage ID").Int64()
	if err != nil {
		return nil, fmt.Errorf("task end event has no usable Stage ID: %w", err)
	}
	taskID, err := js.GetPath("Task Info", "Task ID").Int64()
	if err != nil {
		return nil, fmt.Errorf("task end event has no usable Task ID: %w", err)
	}

	task := datamodels.TaskRecord{
		StageID:             stageID,
		StageAttemptID:      js.Get("Stage Attempt ID").MustInt64(0),
		TaskID:              taskID,
		ExecutorID:          js.GetPath("Task Info", "Executor ID").MustString(""),
		Failed:              js.GetPath("Task Info", "Failed").MustBool(false),
		LaunchTimeMs:        optInt64(js, "Task Info", "Launch Time"),
		FinishTimeMs:        optInt64(js, "Task Info", "Finish Time"),
		RunTimeMs:           optInt64(js, "Task Metrics", "Executor Run Time"),
		InputBytes:          optInt64(js, "Task Metrics", "Input Metrics", "Bytes Read"),
		InputRecords:        optInt64(js, "Task Metrics", "Input Metrics", "Records Read"),
		OutputBytes:         optInt64(js, "Task Metrics", "Output Metrics", "Bytes Written"),
		OutputRecords:       optInt64(js, "Task Metrics", "Output Metrics", "Records Written"),
		ShuffleReadBytes:    optInt64(js, "Task Metrics", "Shuffle Read Metrics", "Remote Bytes Read"),
		ShuffleReadRecords:  optInt64(js, "Task Metrics", "Shuffle Read Metrics", "Total Records Read"),
		ShuffleWriteBytes:   optInt64(js, "Task Metrics", "Shuffle Write Metrics", "Shuffle Bytes Written"),
		ShuffleWriteRecords: optInt64(js, "Task Metrics", "Shuffle Write Metrics", "Shuffle Records Written"),
	}

	if task.LaunchTimeMs != nil && task.FinishTimeMs != nil && *task.FinishTimeMs < *task.LaunchTimeMs {
		return nil, fmt.Errorf("task %d finished before it launched", task.TaskID)
	}

	return &task, nil
}

// optInt64 extracts an optional integer field; absence is unusable data, not
// zero.
func optInt64(js *simplejson.Json, path ...string) *int64 {
	v, err := js.GetPath(path...).Int64()
	if err != nil {
		return nil
	}
	return &v
}
