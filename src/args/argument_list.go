package args

import (
	sdk_args "github.com/newrelic/infra-integrations-sdk/v3/args"
)

// ArgumentList is the integration argument list, populated from CLI flags and
// environment variables by the SDK.
type ArgumentList struct {
	sdk_args.DefaultArgumentList

	Hostname         string `default:"localhost" help:"Hostname or IP of the Spark event store."`
	Port             int    `default:"3306" help:"Port of the Spark event store."`
	Username         string `default:"" help:"Username for accessing the event store."`
	Password         string `default:"" help:"Password for the given user."`
	Database         string `default:"spark_telemetry" help:"Database holding the ingested Spark event logs."`
	RemoteMonitoring bool   `default:"false" help:"Identifies the monitored entity as remote. In doubt: set to true."`
	ShowVersion      bool   `default:"false" help:"Print build information and exit."`
	LicenseKey       string `default:"" help:"License key for APM reporting of the analysis run itself."`
	AppName          string `default:"" help:"APM application name; empty disables APM reporting."`
}
