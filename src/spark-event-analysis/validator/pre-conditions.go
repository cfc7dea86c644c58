package validator

import (
	"fmt"

	"github.com/newrelic/infra-integrations-sdk/v3/log"
	eventstore "github.com/newrelic/nri-sparklens/src/spark-event-analysis/event-store"
)

var requiredTables = []string{"spark_event_logs", "spark_application_metadata"}

// ValidatePreconditions checks that the event store carries the tables the
// analysis reads before the batch starts.
func ValidatePreconditions(db eventstore.DataSource) bool {
	for _, table := range requiredTables {
		present, err := tableExists(db, table)
		if err != nil {
			log.Error("Failed to check for table %s: %v", table, err)
			return false
		}
		if !present {
			log.Error("Required table %s is missing from the event store.", table)
			logIngestionSetupInstructions(table)
			return false
		}
	}
	return true
}

// tableExists checks for one table in the connected database.
func tableExists(db eventstore.DataSource, table string) (bool, error) {
	rows, err := db.QueryX(fmt.Sprintf("SHOW TABLES LIKE '%s';", table))
	if err != nil {
		return false, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	return rows.Next(), nil
}

func logIngestionSetupInstructions(table string) {
	log.Warn("The table %s is created by the event-log ingestion pipeline. "+
		"Verify the pipeline is running and pointed at this database before re-running the analysis.", table)
}
