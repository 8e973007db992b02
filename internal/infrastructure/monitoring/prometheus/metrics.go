package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the dashboard's metrics. Its methods plug into the memo
// layer, the catalog service, the retry wrapper and the HTTP middleware.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	QueryDuration HistogramVec
	QueryErrors   CounterVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	RetryAttemptsTotal CounterVec

	GraphNodes         HistogramVec
	NetworkExports     CounterVec
	NetworkExportBytes HistogramVec
	EventsPublished    CounterVec

	DBPoolOpen        GaugeVec
	DBPoolInUse       GaugeVec
	HealthCheckStatus GaugeVec
}

var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultQueryDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultGraphSizeBuckets     = []float64{1, 5, 10, 25, 50, 100, 200}
	DefaultSizeBuckets          = []float64{1e3, 1e4, 5e4, 1e5, 5e5, 1e6}
)

// NewAppMetrics registers every dashboard metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method"),

		QueryDuration: collector.RegisterHistogram("catalog_query_duration_seconds", "Uncached catalog query duration", DefaultQueryDurationBuckets, "operation"),
		QueryErrors:   collector.RegisterCounter("catalog_query_errors_total", "Catalog queries that failed", "operation"),

		CacheHitsTotal:   collector.RegisterCounter("memo_hits_total", "Memoized results served", "operation"),
		CacheMissesTotal: collector.RegisterCounter("memo_misses_total", "Memo lookups that loaded", "operation"),

		RetryAttemptsTotal: collector.RegisterCounter("retry_attempts_total", "Retried orchestration attempts", "operation"),

		GraphNodes:         collector.RegisterHistogram("network_graph_nodes", "Nodes per built interaction graph", DefaultGraphSizeBuckets, "policy"),
		NetworkExports:     collector.RegisterCounter("network_exports_total", "Network document exports", "status"),
		NetworkExportBytes: collector.RegisterHistogram("network_export_bytes", "Exported network document size", DefaultSizeBuckets),
		EventsPublished:    collector.RegisterCounter("events_published_total", "Export events written to the broker", "topic", "status"),

		DBPoolOpen:        collector.RegisterGauge("db_pool_open_connections", "Open database connections", "db"),
		DBPoolInUse:       collector.RegisterGauge("db_pool_in_use_connections", "Database connections in use", "db"),
		HealthCheckStatus: collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component"),
	}
}

func (m *AppMetrics) RecordCacheHit(operation string) {
	m.CacheHitsTotal.WithLabelValues(operation).Inc()
}

func (m *AppMetrics) RecordCacheMiss(operation string) {
	m.CacheMissesTotal.WithLabelValues(operation).Inc()
}

// ObserveQuery records one uncached catalog load.
func (m *AppMetrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	m.QueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.QueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRetry counts an attempt after the first.
func (m *AppMetrics) RecordRetry(operation string) {
	m.RetryAttemptsTotal.WithLabelValues(operation).Inc()
}

func (m *AppMetrics) RecordGraph(policy string, nodes int) {
	m.GraphNodes.WithLabelValues(policy).Observe(float64(nodes))
}

func (m *AppMetrics) RecordExport(size int64, err error) {
	if err != nil {
		m.NetworkExports.WithLabelValues("failure").Inc()
		return
	}
	m.NetworkExports.WithLabelValues("success").Inc()
	m.NetworkExportBytes.WithLabelValues().Observe(float64(size))
}

func (m *AppMetrics) RecordEvent(topic string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.EventsPublished.WithLabelValues(topic, status).Inc()
}

func (m *AppMetrics) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *AppMetrics) RecordPool(db string, open, inUse int) {
	m.DBPoolOpen.WithLabelValues(db).Set(float64(open))
	m.DBPoolInUse.WithLabelValues(db).Set(float64(inUse))
}

func (m *AppMetrics) RecordHealth(component string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
