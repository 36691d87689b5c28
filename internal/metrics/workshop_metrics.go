package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkshopMetrics содержит метрики складского сервиса.
type WorkshopMetrics struct {
	// Счётчики HTTP-запросов по обработчику, методу и коду ответа
	httpRequests *prometheus.CounterVec

	// Гистограмма времени обработки по обработчику
	httpDuration *prometheus.HistogramVec

	// Счётчики отклонённых записей
	integrityRejections prometheus.Counter
	shapeRejections     prometheus.Counter
}

// NewWorkshopMetrics создаёт метрики склада в default-реестре.
func NewWorkshopMetrics() *WorkshopMetrics {
	return newWorkshopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newWorkshopMetricsWithRegisterer(registerer prometheus.Registerer) *WorkshopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &WorkshopMetrics{
		httpRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "workshop_http_requests_total",
			Help: "Total number of HTTP requests by handler, method and status code",
		}, []string{"handler", "method", "code"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "workshop_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"handler"}),
		integrityRejections: registerCounter(registerer, prometheus.CounterOpts{
			Name: "workshop_integrity_rejections_total",
			Help: "Total number of writes rejected by product validation",
		}),
		shapeRejections: registerCounter(registerer, prometheus.CounterOpts{
			Name: "workshop_shape_rejections_total",
			Help: "Total number of writes rejected by path/body id mismatch",
		}),
	}
}

// RecordHTTPRequest фиксирует завершённый HTTP-запрос.
func (m *WorkshopMetrics) RecordHTTPRequest(handler, method string, code int, duration time.Duration) {
	m.httpRequests.WithLabelValues(handler, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(handler).Observe(duration.Seconds())
}

// RecordIntegrityRejection увеличивает счётчик отказов ссылочной целостности.
func (m *WorkshopMetrics) RecordIntegrityRejection() {
	m.integrityRejections.Inc()
}

// RecordShapeRejection увеличивает счётчик отказов формы запроса.
func (m *WorkshopMetrics) RecordShapeRejection() {
	m.shapeRejections.Inc()
}
