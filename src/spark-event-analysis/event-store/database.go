package eventstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/newrelic/go-agent/v3/integrations/nrmysql"
	"github.com/newrelic/go-agent/v3/newrelic"
	arguments "github.com/newrelic/nri-sparklens/src/args"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
	sparkapm "github.com/newrelic/nri-sparklens/src/spark-event-analysis/spark-apm"
)

type DataSource interface {
	Close()
	QueryX(string) (*sqlx.Rows, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

type Database struct {
	source *sqlx.DB
}

// GenerateDSN builds the event-store DSN from the integration arguments.
func GenerateDSN(args arguments.ArgumentList) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		args.Username, args.Password, args.Hostname, args.Port, args.Database)
}

func OpenSQLXDB(dsn string) (DataSource, error) {
	source, err := sqlx.Open("nrmysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening DSN: %w", err)
	}

	db := Database{
		source: source,
	}

	return &db, nil
}

func (db *Database) Close() {
	db.source.Close()
}

func (db *Database) QueryX(query string) (*sqlx.Rows, error) {
	rows, err := db.source.Queryx(query)
	return rows, err
}

// QueryxContext wraps the store query in an APM datastore segment when a
// transaction is active.
func (db *Database) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	if sparkapm.Txn != nil {
		ctx = newrelic.NewContext(ctx, sparkapm.Txn)
		s := newrelic.DatastoreSegment{
			StartTime:          sparkapm.Txn.StartSegmentNow(),
			Product:            newrelic.DatastoreMySQL,
			Operation:          "SELECT",
			ParameterizedQuery: query,
		}
		defer s.End()
	}
	return db.source.QueryxContext(ctx, query, args...)
}

// CollectRows runs a prepared query against the store and scans every row
// into T.
func CollectRows[T any](db DataSource, preparedQuery string, preparedArgs ...interface{}) ([]T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.TimeoutDuration)
	defer cancel()

	rows, err := db.QueryxContext(ctx, preparedQuery, preparedArgs...)
	if err != nil {
		return []T{}, err
	}
	defer rows.Close()

	var collected []T
	for rows.Next() {
		var row T
		if err := rows.StructScan(&row); err != nil {
			return []T{}, err
		}
		collected = append(collected, row)
	}
	if err := rows.Err(); err != nil {
		return []T{}, err
	}

	return collected, nil
}
