package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archlens_analysis_duration_seconds",
			Help:    "Roll-up analysis duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"rollup_mode"},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archlens_analysis_total",
			Help: "Total roll-up analysis runs",
		},
		[]string{"status"},
	)

	ExportTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archlens_export_total",
			Help: "Total SVG exports",
		},
		[]string{"status"},
	)

	CatalogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archlens_catalog_writes_total",
			Help: "Total catalog write operations",
		},
		[]string{"collection", "operation"},
	)

	ItemsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archlens_items_total",
			Help: "Items in the catalog",
		},
	)

	RelationshipsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archlens_relationships_total",
			Help: "Relationship rows in the catalog",
		},
	)
)

func Init() {
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(ExportTotal)
	prometheus.MustRegister(CatalogWrites)
	prometheus.MustRegister(ItemsTotal)
	prometheus.MustRegister(RelationshipsTotal)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
