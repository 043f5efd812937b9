package console

import "github.com/prometheus/client_golang/prometheus"

type collector struct {
	c         *Console
	lines     *prometheus.Desc
	dropped   *prometheus.Desc
	truncated *prometheus.Desc
}

// NewCollector exports the console Stats as Prometheus counters under
// namespace_console_*.
func NewCollector(c *Console, namespace string) prometheus.Collector {
	labels := prometheus.Labels{"device": c.cfg.Device}
	return &collector{
		c: c,
		lines: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "console", "lines_total"),
			"Lines queued for the console reader.", nil, labels),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "console", "dropped_bytes_total"),
			"Bytes dropped because no line buffer was free.", nil, labels),
		truncated: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "console", "truncated_bytes_total"),
			"Bytes discarded past the maximum line length.", nil, labels),
	}
}

func (m *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.lines
	ch <- m.dropped
	ch <- m.truncated
}

func (m *collector) Collect(ch chan<- prometheus.Metric) {
	s := m.c.Stats()
	ch <- prometheus.MustNewConstMetric(m.lines, prometheus.CounterValue, float64(s.Lines))
	ch <- prometheus.MustNewConstMetric(m.dropped, prometheus.CounterValue, float64(s.DroppedBytes))
	ch <- prometheus.MustNewConstMetric(m.truncated, prometheus.CounterValue, float64(s.TruncatedBytes))
}
