package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const metricNamespace = "nimp"

// SummaryMetrics exports the totals of a summarized log for the node
// exporter textfile collector.
type SummaryMetrics struct {
	registry *prometheus.Registry
	Errors   prometheus.Gauge
	Warnings prometheus.Gauge
	Assets   prometheus.Gauge
	Lines    prometheus.Counter
}

func NewSummaryMetrics(labels prometheus.Labels) *SummaryMetrics {
	m := &SummaryMetrics{
		registry: prometheus.NewRegistry(),
		Errors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricNamespace,
			Subsystem:   "summary",
			Name:        "errors",
			Help:        "Distinct error messages in the summarized log",
			ConstLabels: labels,
		}),
		Warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricNamespace,
			Subsystem:   "summary",
			Name:        "warnings",
			Help:        "Distinct warning messages in the summarized log",
			ConstLabels: labels,
		}),
		Assets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricNamespace,
			Subsystem:   "summary",
			Name:        "assets",
			Help:        "Assets with at least one error or warning",
			ConstLabels: labels,
		}),
		Lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Subsystem:   "summary",
			Name:        "lines_total",
			Help:        "Log lines read",
			ConstLabels: labels,
		}),
	}
	m.registry.MustRegister(m.Errors, m.Warnings, m.Assets, m.Lines)
	return m
}

// Set records the totals of a run.
func (m *SummaryMetrics) Set(errors, warnings, assets, lines int) {
	m.Errors.Set(float64(errors))
	m.Warnings.Set(float64(warnings))
	m.Assets.Set(float64(assets))
	m.Lines.Add(float64(lines))
}

// WriteTextfile atomically writes the metrics to filename.
func (m *SummaryMetrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, m.registry); err != nil {
		return err
	}
	logrus.Debugf("Wrote metrics to %s", filename)
	return nil
}
