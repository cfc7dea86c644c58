package eventstore

import (
	"fmt"

	datamodels "github.com/newrelic/nri-sparklens/src/spark-event-analysis/analysis-data-models"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
	queries "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-store/queries"
)

type applicationIDRow struct {
	ApplicationID string `db:"application_id"`
}

// RawEventRow is one undecoded listener-event payload as stored by the
// ingestion pipeline.
type RawEventRow struct {
	Payload string `db:"payload"`
}

// FetchApplicationIDs returns the ids of the application runs awaiting
// analysis, in store order.
func FetchApplicationIDs(db DataSource) ([]string, error) {
	rows, err := CollectRows[applicationIDRow](db, queries.ApplicationIDs, constants.EventCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to list application ids: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ApplicationID)
	}
	return ids, nil
}

// FetchEventRows returns the raw event payloads of one application run in
// ingestion order.
func FetchEventRows(db DataSource, applicationID string) ([]RawEventRow, error) {
	rows, err := CollectRows[RawEventRow](db, queries.EventLogPayloads, constants.EventCategory, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event rows for application %s: %w", applicationID, err)
	}
	return rows, nil
}

// FetchApplicationMetadata returns the metadata row of one application run.
// A run with event rows but no metadata row gets an id-only record; the
// configuration flags stay absent.
func FetchApplicationMetadata(db DataSource, applicationID string) (datamodels.ApplicationMetadata, error) {
	rows, err := CollectRows[datamodels.ApplicationMetadata](db, queries.ApplicationMetadataRow, applicationID)
	if err != nil {
		return datamodels.ApplicationMetadata{}, fmt.Errorf("failed to fetch metadata for application %s: %w", applicationID, err)
	}
	if len(rows) == 0 {
		return datamodels.ApplicationMetadata{ApplicationID: applicationID}, nil
	}
	return rows[0], nil
}
