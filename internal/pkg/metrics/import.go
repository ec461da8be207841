package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics 匯入與合併相關指標。nil 接收者上的方法不做任何事。
type ImportMetrics struct {
	Imports           *prometheus.CounterVec
	ImportDuration    *prometheus.HistogramVec
	SkippedRows       prometheus.Counter
	Consolidations    *prometheus.CounterVec
	ConsolidatedLines prometheus.Histogram
}

// NewImportMetrics 創建並註冊匯入指標
func NewImportMetrics(registry *prometheus.Registry) (*ImportMetrics, error) {
	m := &ImportMetrics{
		Imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Total number of recipe imports by format and result",
		}, []string{"format", "result"}),

		ImportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time spent parsing recipe documents",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"format"}),

		SkippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_skipped_rows_total",
			Help:      "Total number of CSV rows skipped during import",
		}),

		Consolidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consolidations_total",
			Help:      "Total number of ingredient consolidations by kind",
		}, []string{"kind"}),

		ConsolidatedLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "consolidated_lines",
			Help:      "Number of lines produced by a consolidation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	if err := register(registry, m.Imports, m.ImportDuration, m.SkippedRows, m.Consolidations, m.ConsolidatedLines); err != nil {
		return nil, fmt.Errorf("failed to register import metrics: %w", err)
	}
	return m, nil
}

// ObserveImport 記錄一次匯入
func (m *ImportMetrics) ObserveImport(format string, skipped int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Imports.WithLabelValues(format, result).Inc()
	m.ImportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if skipped > 0 {
		m.SkippedRows.Add(float64(skipped))
	}
}

// ObserveConsolidation 記錄一次合併（kind: recipe, shopping_list, caterer）
func (m *ImportMetrics) ObserveConsolidation(kind string, lines int) {
	if m == nil {
		return
	}
	m.Consolidations.WithLabelValues(kind).Inc()
	m.ConsolidatedLines.Observe(float64(lines))
}
