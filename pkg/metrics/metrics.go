package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBConnections     *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBWaitDurationSec *prometheus.GaugeVec

	HorizonRuns     *prometheus.CounterVec
	HorizonCourts   *prometheus.CounterVec
	SlotsGenerated  *prometheus.CounterVec
	SlotsPurged     *prometheus.CounterVec
	HorizonDuration *prometheus.HistogramVec

	ReservationOutcomes *prometheus.CounterVec
}

// New создает и регистрирует метрики в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		DBWaitDurationSec: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_duration_seconds",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		HorizonRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_horizon_runs_total",
			Help: "Slot horizon maintenance runs by result",
		}, []string{"service", "result"}),

		HorizonCourts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_horizon_courts_total",
			Help: "Courts processed by slot horizon maintenance by result",
		}, []string{"service", "result"}),

		SlotsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slots_generated_total",
			Help: "Slots inserted by horizon maintenance",
		}, []string{"service"}),

		SlotsPurged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slots_purged_total",
			Help: "Expired available slots deleted by horizon maintenance",
		}, []string{"service"}),

		HorizonDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slot_horizon_run_duration_seconds",
			Help:    "Duration of a horizon maintenance run",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"service"}),

		ReservationOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Reserve and cancel operations by outcome",
		}, []string{"service", "operation", "outcome"}),
	}
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHorizonRun фиксирует завершение прогона генерации слотов
func (m *Metrics) ObserveHorizonRun(result string, seconds float64) {
	if m == nil {
		return
	}
	m.HorizonRuns.WithLabelValues(m.serviceName, result).Inc()
	m.HorizonDuration.WithLabelValues(m.serviceName).Observe(seconds)
}

// ObserveHorizonCourt фиксирует результат обработки одного корта
func (m *Metrics) ObserveHorizonCourt(result string, slotsInserted int) {
	if m == nil {
		return
	}
	m.HorizonCourts.WithLabelValues(m.serviceName, result).Inc()
	if slotsInserted > 0 {
		m.SlotsGenerated.WithLabelValues(m.serviceName).Add(float64(slotsInserted))
	}
}

// AddSlotsPurged фиксирует удалённые просроченные слоты
func (m *Metrics) AddSlotsPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsPurged.WithLabelValues(m.serviceName).Add(float64(n))
}

// ObserveReservation фиксирует исход операции бронирования или отмены
func (m *Metrics) ObserveReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationOutcomes.WithLabelValues(m.serviceName, operation, outcome).Inc()
}
