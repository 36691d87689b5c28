package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestWorkshopMetricsRecordsRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newWorkshopMetricsWithRegisterer(registry)

	m.RecordHTTPRequest("physical-inventory", "GET", 200, 5*time.Millisecond)
	m.RecordHTTPRequest("physical-inventory", "GET", 200, 7*time.Millisecond)
	m.RecordHTTPRequest("digital-inventory", "POST", 400, time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	if !found["workshop_http_requests_total"] {
		t.Error("workshop_http_requests_total not registered")
	}
	if !found["workshop_http_request_duration_seconds"] {
		t.Error("workshop_http_request_duration_seconds not registered")
	}
}

func TestWorkshopMetricsRejectionCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newWorkshopMetricsWithRegisterer(registry)

	m.RecordIntegrityRejection()
	m.RecordIntegrityRejection()
	m.RecordShapeRejection()

	if got := counterValue(t, m.integrityRejections); got != 2 {
		t.Errorf("integrity rejections = %v, want 2", got)
	}
	if got := counterValue(t, m.shapeRejections); got != 1 {
		t.Errorf("shape rejections = %v, want 1", got)
	}
}

func TestCatalogMetricsDoubleRegistrationIsReused(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newCatalogMetricsWithRegisterer(registry)
	second := newCatalogMetricsWithRegisterer(registry)

	first.RecordGraphQLRequest("products", "ok")
	second.RecordGraphQLRequest("products", "ok")
	second.RecordLibraryLookup("miss")
	second.RecordGraphQLDuration(3 * time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	for _, fam := range families {
		if fam.GetName() != "bookshop_graphql_requests_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if metric.GetCounter().GetValue() != 2 {
				t.Errorf("expected both instances to share one counter, got %v", metric.GetCounter().GetValue())
			}
		}
	}
}
