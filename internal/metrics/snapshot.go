package metrics

import (
	"fmt"
	"strings"
)

// Snapshot gathers every counter and gauge into a flat map keyed by
// name{label="value",...}. Series that were never touched are absent.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	values := make(map[string]float64)

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()

			if pairs := metric.GetLabel(); len(pairs) > 0 {
				labels := make([]string, 0, len(pairs))
				for _, pair := range pairs {
					labels = append(labels, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
				}

				key += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case metric.GetCounter() != nil:
				values[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[key] = metric.GetGauge().GetValue()
			}
		}
	}

	return values, nil
}
