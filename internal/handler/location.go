package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/service"
)

// LocationHandler handles HTTP requests for the location service.
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(svc *service.LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// HandleReport handles POST /location requests. A 201 means the report
// row is stored; geofence evaluation and alerting happen after the
// write and cannot turn a stored report into a failed request.
func (h *LocationHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ReportLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	_, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		if isMissingFieldError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing required location data."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error while storing location data."))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Location data received successfully.",
	})
}

// HandleHistory handles GET /location/{touristId} requests.
func (h *LocationHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	touristID, err := strconv.ParseInt(chi.URLParam(r, "touristId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid tourist id"))
		return
	}

	reports, err := h.service.History(r.Context(), touristID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error retrieving location history."))
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

func isMissingFieldError(err error) bool {
	return errors.Is(err, service.ErrTouristIDRequired) ||
		errors.Is(err, service.ErrLatitudeRequired) ||
		errors.Is(err, service.ErrLongitudeRequired) ||
		errors.Is(err, service.ErrTimestampRequired)
}
