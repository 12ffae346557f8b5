// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports section timings in the Prometheus text format.
// Each instance owns its registry, so runs never share series.
type Metrics struct {
	reg *prometheus.Registry

	// sectionWall is the accumulated wall time per section
	sectionWall *prometheus.GaugeVec
	// sectionCalls counts Enter/Leave pairs per section
	sectionCalls *prometheus.CounterVec
	// validationFailures counts variants that failed the consistency check
	validationFailures *prometheus.CounterVec
}

// NewMetrics registers the lvbench series on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sectionWall: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lvbench_section_wall_seconds",
			Help: "Accumulated wall time of a timing section in seconds",
		}, []string{"case", "section"}),
		sectionCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lvbench_section_calls_total",
			Help: "Number of times a timing section was entered",
		}, []string{"case", "section"}),
		validationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lvbench_validation_failures_total",
			Help: "Variants whose result differed from the reference",
		}, []string{"case"}),
	}
}

// Registry exposes the underlying registry (for gathering in tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveSections records the final state of every section.
func (m *Metrics) ObserveSections(caseName string, sections []Section) {
	for _, s := range sections {
		m.sectionWall.WithLabelValues(caseName, s.Name).Set(s.Wall.Seconds())
		m.sectionCalls.WithLabelValues(caseName, s.Name).Add(float64(s.Calls))
	}
}

// ValidationFailure counts one failed variant.
func (m *Metrics) ValidationFailure(caseName string) {
	m.validationFailures.WithLabelValues(caseName).Inc()
}

// WriteTextfile writes all series to path in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("Metrics.WriteTextfile(%q): %w", path, err)
	}

	return nil
}
