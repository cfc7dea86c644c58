package common_utils

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/newrelic/infra-integrations-sdk/v3/data/attribute"
	"github.com/newrelic/infra-integrations-sdk/v3/data/metric"
	"github.com/newrelic/infra-integrations-sdk/v3/integration"
	"github.com/newrelic/infra-integrations-sdk/v3/log"
	arguments "github.com/newrelic/nri-sparklens/src/args"
	constants "github.com/newrelic/nri-sparklens/src/spark-event-analysis/constants"
)

func CreateNodeEntity(
	i *integration.Integration,
	remoteMonitoring bool,
	hostname string,
	port int,
) (*integration.Entity, error) {

	if remoteMonitoring {
		return i.Entity(fmt.Sprint(hostname, ":", port), constants.NodeEntityType)
	}
	return i.LocalEntity(), nil
}

func MetricSet(e *integration.Entity, eventType, hostname string, port int, remoteMonitoring bool) *metric.Set {
	if remoteMonitoring {
		return e.NewMetricSet(
			eventType,
			attribute.Attr("hostname", hostname),
			attribute.Attr("port", strconv.Itoa(port)),
		)
	}

	return e.NewMetricSet(
		eventType,
		attribute.Attr("port", strconv.Itoa(port)),
	)
}

func FatalIfErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// IngestMetric publishes one metric set per model under the given sample
// name, flushing the integration payload every MetricSetLimit sets.
func IngestMetric(metricList []interface{}, sampleName string, i *integration.Integration, args arguments.ArgumentList) error {
	e, err := CreateNodeEntity(i, args.RemoteMonitoring, args.Hostname, args.Port)
	if err != nil {
		return fmt.Errorf("error creating entity: %w", err)
	}

	metricCount := 0
	for _, model := range metricList {
		if model == nil {
			continue
		}

		ms := MetricSet(e, sampleName, args.Hostname, args.Port, args.RemoteMonitoring)
		if err := setMetricsFromModel(ms, model); err != nil {
			log.Warn("Skipping %s row: %v", sampleName, err)
			continue
		}

		metricCount++
		if metricCount == constants.MetricSetLimit {
			metricCount = 0
			if err := i.Publish(); err != nil {
				return fmt.Errorf("error publishing metrics: %w", err)
			}
			e, err = CreateNodeEntity(i, args.RemoteMonitoring, args.Hostname, args.Port)
			if err != nil {
				return fmt.Errorf("error creating entity: %w", err)
			}
		}
	}

	if metricCount > 0 {
		if err := i.Publish(); err != nil {
			return fmt.Errorf("error publishing metrics: %w", err)
		}
	}
	return nil
}

// setMetricsFromModel flattens a result struct into the metric set through
// its json tags: numbers become gauges, everything else an attribute. Null
// fields are omitted.
func setMetricsFromModel(ms *metric.Set, model interface{}) error {
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("error marshaling model: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("error unmarshaling model: %w", err)
	}

	for name, value := range fields {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			err = ms.SetMetric(name, v, metric.GAUGE)
		case bool:
			err = ms.SetMetric(name, strconv.FormatBool(v), metric.ATTRIBUTE)
		default:
			err = ms.SetMetric(name, fmt.Sprintf("%v", v), metric.ATTRIBUTE)
		}
		if err != nil {
			log.Warn("Error setting metric %s: %v", name, err)
		}
	}
	return nil
}
