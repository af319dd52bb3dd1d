package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках ничего не делают.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	// Business
	AppointmentsBooked    prometheus.Counter
	AppointmentsCancelled prometheus.Counter
	ValidationRejections  *prometheus.CounterVec
}

// New регистрирует метрики в registerer. namespace обычно равен имени сервиса.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		}),

		DBQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		}, []string{"operation", "status"}),
		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}),
		DBInUse: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}),
		DBIdle: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}),
		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),

		AppointmentsBooked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Total number of booked appointments",
		}),
		AppointmentsCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_cancelled_total",
			Help:      "Total number of cancelled appointments",
		}),
		ValidationRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Requests rejected by validation, by error code",
		}, []string{"code"}),
	}
}

// ObserveHTTPRequest записывает результат HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает результат запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncBooked увеличивает счетчик созданных записей
func (m *Metrics) IncBooked() {
	if m == nil {
		return
	}
	m.AppointmentsBooked.Inc()
}

// IncCancelled увеличивает счетчик отмененных записей
func (m *Metrics) IncCancelled() {
	if m == nil {
		return
	}
	m.AppointmentsCancelled.Inc()
}

// IncValidationRejection увеличивает счетчик отказов по коду ошибки
func (m *Metrics) IncValidationRejection(code string) {
	if m == nil {
		return
	}
	m.ValidationRejections.WithLabelValues(code).Inc()
}

// SetPoolStats обновляет метрики connection pool
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(stats.OpenConnections))
	m.DBInUse.Set(float64(stats.InUse))
	m.DBIdle.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}

// IncInFlight увеличивает число обрабатываемых HTTP запросов
func (m *Metrics) IncInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Inc()
}

// DecInFlight уменьшает число обрабатываемых HTTP запросов
func (m *Metrics) DecInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Dec()
}
