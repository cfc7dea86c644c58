package queries

const (
	// ApplicationIDs lists every application id with event-log rows that has
	// not been analyzed yet.
	ApplicationIDs = `SELECT DISTINCT el.application_id FROM spark_event_logs el
            WHERE el.category = ?
            AND el.application_id NOT IN (SELECT sam.application_id FROM spark_analyzed_applications sam);`

	// EventLogPayloads fetches the raw listener-event payloads of one
	// application run in ingestion order.
	EventLogPayloads = `SELECT el.payload FROM spark_event_logs el
            WHERE el.category = ? AND el.application_id = ?
            ORDER BY el.id;`

	// ApplicationMetadataRow fetches the metadata row of one application run.
	ApplicationMetadataRow = `SELECT am.application_id, am.application_name, am.artifact_id, am.artifact_type, am.capacity_id,
            am.executor_min, am.executor_max, am.is_high_concurrency_enabled, am.native_execution_enabled
            FROM spark_application_metadata am
            WHERE am.application_id = ?
            LIMIT 1;`
)
