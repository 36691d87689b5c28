package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics содержит метрики сервиса каталога.
type CatalogMetrics struct {
	// Счётчики GraphQL-операций по имени и исходу
	graphqlRequests *prometheus.CounterVec

	// Гистограмма времени выполнения GraphQL-запросов
	graphqlDuration prometheus.Histogram

	// Счётчик обращений к библиографической системе по исходу
	libraryLookups *prometheus.CounterVec
}

// NewCatalogMetrics создаёт метрики каталога в default-реестре.
func NewCatalogMetrics() *CatalogMetrics {
	return newCatalogMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCatalogMetricsWithRegisterer(registerer prometheus.Registerer) *CatalogMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CatalogMetrics{
		graphqlRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookshop_graphql_requests_total",
			Help: "Total number of GraphQL operations by name and outcome",
		}, []string{"operation", "outcome"}),
		graphqlDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "bookshop_graphql_request_duration_seconds",
			Help:    "Duration of GraphQL request execution in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		libraryLookups: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookshop_library_lookups_total",
			Help: "Total number of bibliographic lookups by outcome",
		}, []string{"outcome"}),
	}
}

// RecordGraphQLRequest фиксирует исход одной GraphQL-операции.
func (m *CatalogMetrics) RecordGraphQLRequest(operation, outcome string) {
	m.graphqlRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordGraphQLDuration записывает время выполнения запроса.
func (m *CatalogMetrics) RecordGraphQLDuration(duration time.Duration) {
	m.graphqlDuration.Observe(duration.Seconds())
}

// RecordLibraryLookup фиксирует исход обращения к библиотеке:
// "hit", "miss" или "error".
func (m *CatalogMetrics) RecordLibraryLookup(outcome string) {
	m.libraryLookups.WithLabelValues(outcome).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
