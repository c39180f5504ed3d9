package metrics

import (
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Rows     *prometheus.CounterVec
	Duration prometheus.Histogram
	Failures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datagen_rows_generated_total",
			Help: "Rows generated, by table.",
		}, []string{"table"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "datagen_generate_seconds",
			Help:    "Wall time of one dataset generation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datagen_generate_failures_total",
			Help: "Generation requests rejected, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.Rows, m.Duration, m.Failures)
	return m
}

func (m *Metrics) Observe(ds *dataset.Dataset, took time.Duration) {
	m.Rows.WithLabelValues("customers").Add(float64(len(ds.Customers)))
	m.Rows.WithLabelValues("orders").Add(float64(len(ds.Orders)))
	m.Duration.Observe(took.Seconds())
}
