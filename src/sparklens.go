//go:generate goversioninfo
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/infra-integrations-sdk/v3/integration"
	"github.com/newrelic/infra-integrations-sdk/v3/log"
	arguments "github.com/newrelic/nri-sparklens/src/args"
	sparkeventanalysis "github.com/newrelic/nri-sparklens/src/spark-event-analysis"
	commonutils "github.com/newrelic/nri-sparklens/src/spark-event-analysis/common-utils"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
	sparkapm "github.com/newrelic/nri-sparklens/src/spark-event-analysis/spark-apm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	args               arguments.ArgumentList
	integrationVersion = "0.0.0"
	gitCommit          = ""
	buildDate          = ""
)

func main() {
	i, err := integration.New(constants.IntegrationName, integrationVersion, integration.Args(&args))
	commonutils.FatalIfErr(err)

	sparkapm.ArgsKey = args.LicenseKey
	sparkapm.ArgsAppName = args.AppName
	sparkapm.InitNewRelicApp()

	if sparkapm.ArgsAppName != "" {
		defer sparkapm.NewrelicApp.Shutdown(10 * time.Second)
	}

	if args.ShowVersion {
		fmt.Printf(
			"New Relic %s integration Version: %s, Platform: %s, GoVersion: %s, GitCommit: %s, BuildDate: %s\n",
			cases.Title(language.Und).String(strings.Replace(constants.IntegrationName, "com.newrelic.", "", 1)),
			integrationVersion,
			fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			runtime.Version(),
			gitCommit,
			buildDate)
		os.Exit(0)
	}

	log.SetupLogging(args.Verbose)

	txn := sparkapm.NewrelicApp.StartTransaction("SparkEventLogAnalysis")
	if txn != nil {
		sparkapm.Txn = txn
		defer txn.End()
	}

	e, err := commonutils.CreateNodeEntity(i, args.RemoteMonitoring, args.Hostname, args.Port)
	commonutils.FatalIfErr(err)

	sparkeventanalysis.PopulateAnalysisMetrics(args, e, i)

	commonutils.FatalIfErr(i.Publish())
}
