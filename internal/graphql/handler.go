package graphql

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/metrics"
)

// Handler обслуживает POST /graphql.
type Handler struct {
	schema  graphql.Schema
	metrics *metrics.CatalogMetrics
	logger  *log.Entry
}

// NewHandler конструирует HTTP-обработчик GraphQL. metrics может быть nil.
func NewHandler(schema graphql.Schema, m *metrics.CatalogMetrics, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "graphql-handler")
	}
	return &Handler{schema: schema, metrics: m, logger: logger}
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	if h.metrics != nil {
		outcome := "ok"
		if len(result.Errors) > 0 {
			outcome = "error"
		}
		operation := req.OperationName
		if operation == "" {
			operation = "anonymous"
		}
		h.metrics.RecordGraphQLRequest(operation, outcome)
		h.metrics.RecordGraphQLDuration(time.Since(start))
	}

	if len(result.Errors) > 0 {
		h.logger.WithField("errors", result.Errors).Debug("graphql request finished with errors")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.WithError(err).Error("failed to encode graphql response")
	}
}
