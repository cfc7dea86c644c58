//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os/exec"
	"strconv"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

var (
	iName = "sparklens"

	// event store config
	defaultBinPath  = "/nri-sparklens"
	defaultUser     = "root"
	defaultPass     = "DBpwd1234"
	defaultHostname = "localhost"
	defaultPort     = 3306
	defaultDB       = "spark_telemetry"

	// cli flags
	binPath  = flag.String("bin", defaultBinPath, "Integration binary path")
	user     = flag.String("user", defaultUser, "Event store user name")
	psw      = flag.String("psw", defaultPass, "Event store user password")
	hostname = flag.String("hostname", defaultHostname, "Event store hostname")
	port     = flag.Int("port", defaultPort, "Event store port")
	database = flag.String("database", defaultDB, "Event store database")
)

// integrationPayloadSchema validates the SDK v3 payload emitted by one run of
// the integration against the contract the persistence side depends on.
const integrationPayloadSchema = `{
    "type": "object",
    "required": ["name", "protocol_version", "integration_version", "data"],
    "properties": {
        "name": {"const": "com.newrelic.sparklens"},
        "data": {
            "type": "array",
            "items": {
                "type": "object",
                "required": ["metrics", "inventory", "events"],
                "properties": {
                    "metrics": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "required": ["event_type", "application_id"],
                            "properties": {
                                "event_type": {
                                    "enum": [
                                        "SparkStageSummarySample",
                                        "SparkAppMetricSample",
                                        "SparkScalingPredictionSample",
                                        "SparkRecommendationSample",
                                        "SparkAnalysisErrorSample"
                                    ]
                                },
                                "application_id": {"type": "string"}
                            }
                        }
                    }
                }
            }
        }
    }
}`

func runIntegration(t *testing.T, extraEnv ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(*binPath)
	cmd.Env = append(cmd.Env,
		"HOSTNAME="+*hostname,
		"PORT="+strconv.Itoa(*port),
		"USERNAME="+*user,
		"PASSWORD="+*psw,
		"DATABASE="+*database,
		"VERBOSE=true",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	var outbuf, errbuf bytes.Buffer
	cmd.Stdout = &outbuf
	cmd.Stderr = &errbuf

	start := time.Now()
	err := cmd.Run()
	log.Infof("%s integration run took %v", iName, time.Since(start))

	stdout := outbuf.String()
	stderr := errbuf.String()
	if stderr != "" {
		log.Debugf("integration stderr: %s", stderr)
	}
	return stdout, stderr, err
}

func TestIntegrationOutputSchema(t *testing.T) {
	stdout, stderr, err := runIntegration(t)
	require.NoError(t, err, "integration exited with error, stderr: %s", stderr)
	require.NotEmpty(t, stdout, "integration produced no output")

	schemaLoader := gojsonschema.NewStringLoader(integrationPayloadSchema)
	documentLoader := gojsonschema.NewStringLoader(stdout)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	require.NoError(t, err)
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Errorf("schema violation: %s", desc)
		}
	}
	assert.True(t, result.Valid(), "integration output does not match the payload schema")
}

func TestIntegrationEmitsAllSampleTypes(t *testing.T) {
	stdout, stderr, err := runIntegration(t)
	require.NoError(t, err, "integration exited with error, stderr: %s", stderr)

	var payload struct {
		Data []struct {
			Metrics []map[string]interface{} `json:"metrics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))

	seen := map[string]int{}
	for _, entity := range payload.Data {
		for _, ms := range entity.Metrics {
			if eventType, ok := ms["event_type"].(string); ok {
				seen[eventType]++
			}
		}
	}

	// The seeded fixture contains one complete application run, so every
	// result set except the error sample must be present.
	for _, sample := range []string{
		"SparkStageSummarySample",
		"SparkAppMetricSample",
		"SparkScalingPredictionSample",
		"SparkRecommendationSample",
	} {
		assert.Greater(t, seen[sample], 0, fmt.Sprintf("expected at least one %s row", sample))
	}
	assert.LessOrEqual(t, seen["SparkStageSummarySample"], 5)
}
