package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/metrics"
	"github.com/vladislavdragonenkov/bookshop/internal/service/inventory"
)

// Handler обслуживает REST API склада.
type Handler struct {
	physical *inventory.PhysicalService
	digital  *inventory.DigitalService
	metrics  *metrics.WorkshopMetrics
	logger   *log.Entry
}

// NewHandler конструирует REST-обработчик. metrics может быть nil.
func NewHandler(physical *inventory.PhysicalService, digital *inventory.DigitalService, m *metrics.WorkshopMetrics, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "workshop-rest")
	}
	return &Handler{physical: physical, digital: digital, metrics: m, logger: logger}
}

// RegisterRoutes регистрирует маршруты склада на mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/physical-inventory", h.instrument("physical-inventory", h.listPhysical))
	mux.HandleFunc("GET /api/physical-inventory/{productId}", h.instrument("physical-inventory", h.getPhysical))
	mux.HandleFunc("POST /api/physical-inventory", h.instrument("physical-inventory", h.createPhysical))
	mux.HandleFunc("PUT /api/physical-inventory/{productId}", h.instrument("physical-inventory", h.updatePhysical))
	mux.HandleFunc("DELETE /api/physical-inventory/{productId}", h.instrument("physical-inventory", h.deletePhysical))

	mux.HandleFunc("GET /api/digital-inventory", h.instrument("digital-inventory", h.listDigital))
	mux.HandleFunc("GET /api/digital-inventory/{productId}", h.instrument("digital-inventory", h.getDigital))
	mux.HandleFunc("POST /api/digital-inventory", h.instrument("digital-inventory", h.createDigital))
	mux.HandleFunc("PUT /api/digital-inventory/{productId}", h.instrument("digital-inventory", h.updateDigital))
	mux.HandleFunc("DELETE /api/digital-inventory/{productId}", h.instrument("digital-inventory", h.deleteDigital))
}

type physicalInventoryDTO struct {
	ProductID string `json:"productId"`
	Stock     int32  `json:"stock"`
	Location  string `json:"location"`
}

type digitalInventoryDTO struct {
	ProductID     string `json:"productId"`
	DigitalFile   string `json:"digitalFile"`
	LicensesTotal int32  `json:"licensesTotal"`
	LicensesSold  int32  `json:"licensesSold"`
}

type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

func toPhysicalDTO(inv domain.PhysicalInventory) physicalInventoryDTO {
	return physicalInventoryDTO{ProductID: inv.ProductID, Stock: inv.Stock, Location: inv.Location}
}

func (d physicalInventoryDTO) toDomain() domain.PhysicalInventory {
	return domain.PhysicalInventory{ProductID: d.ProductID, Stock: d.Stock, Location: d.Location}
}

func toDigitalDTO(inv domain.DigitalInventory) digitalInventoryDTO {
	return digitalInventoryDTO{
		ProductID:     inv.ProductID,
		DigitalFile:   inv.DigitalFile,
		LicensesTotal: inv.LicensesTotal,
		LicensesSold:  inv.LicensesSold,
	}
}

func (d digitalInventoryDTO) toDomain() domain.DigitalInventory {
	return domain.DigitalInventory{
		ProductID:     d.ProductID,
		DigitalFile:   d.DigitalFile,
		LicensesTotal: d.LicensesTotal,
		LicensesSold:  d.LicensesSold,
	}
}

func (h *Handler) listPhysical(w http.ResponseWriter, r *http.Request) {
	records, err := h.physical.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]physicalInventoryDTO, 0, len(records))
	for _, inv := range records {
		dtos = append(dtos, toPhysicalDTO(inv))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) getPhysical(w http.ResponseWriter, r *http.Request) {
	inv, err := h.physical.Get(r.PathValue("productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPhysicalDTO(inv))
}

func (h *Handler) createPhysical(w http.ResponseWriter, r *http.Request) {
	var dto physicalInventoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.physical.Create(r.Context(), dto.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toPhysicalDTO(created))
}

func (h *Handler) updatePhysical(w http.ResponseWriter, r *http.Request) {
	var dto physicalInventoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.physical.Update(r.Context(), r.PathValue("productId"), dto.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPhysicalDTO(updated))
}

func (h *Handler) deletePhysical(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.physical.Delete(r.PathValue("productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Отсутствующая запись — это 404, а не ошибка: повторное удаление
	// безопасно, но сообщает, что удалять было нечего.
	if !deleted {
		h.writeError(w, domain.ErrInventoryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDigital(w http.ResponseWriter, r *http.Request) {
	records, err := h.digital.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]digitalInventoryDTO, 0, len(records))
	for _, inv := range records {
		dtos = append(dtos, toDigitalDTO(inv))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) getDigital(w http.ResponseWriter, r *http.Request) {
	inv, err := h.digital.Get(r.PathValue("productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDigitalDTO(inv))
}

func (h *Handler) createDigital(w http.ResponseWriter, r *http.Request) {
	var dto digitalInventoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.digital.Create(r.Context(), dto.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toDigitalDTO(created))
}

func (h *Handler) updateDigital(w http.ResponseWriter, r *http.Request) {
	var dto digitalInventoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.digital.Update(r.Context(), r.PathValue("productId"), dto.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDigitalDTO(updated))
}

func (h *Handler) deleteDigital(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.digital.Delete(r.PathValue("productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		h.writeError(w, domain.ErrInventoryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError переводит прикладную ошибку в HTTP-статус и JSON-тело.
// Отказ целостности и несовпадение идентификаторов обе относятся к классу
// "плохой запрос": каталог не подтвердил ссылку либо запрос внутренне
// противоречив.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsRequestShape(err):
		if h.metrics != nil {
			h.metrics.RecordShapeRejection()
		}
		h.writeErrorStatus(w, http.StatusBadRequest, err.Error())
	case domain.IsReferentialIntegrity(err):
		if h.metrics != nil {
			h.metrics.RecordIntegrityRejection()
		}
		h.writeErrorStatus(w, http.StatusBadRequest, err.Error())
	case domain.IsValidation(err):
		h.writeErrorStatus(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInventoryNotFound):
		h.writeErrorStatus(w, http.StatusNotFound, err.Error())
	default:
		h.logger.WithError(err).Error("request failed")
		h.writeErrorStatus(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeErrorStatus(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Error("failed to encode response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument оборачивает обработчик записью метрик запроса.
func (h *Handler) instrument(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		h.metrics.RecordHTTPRequest(name, r.Method, recorder.status, time.Since(start))
	}
}
