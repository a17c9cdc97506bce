package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/repository"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/service"
)

// NotificationHandler handles HTTP requests for the notification service.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// HandleCreate handles POST /notifications requests.
func (h *NotificationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	n, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserIDRequired), errors.Is(err, service.ErrMessageRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse("userId and message are required."))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error while storing notification."))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "Notification created successfully!",
		"notification": n,
	})
}

// HandleList handles GET /notifications/{userId} requests.
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	notifications, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error retrieving notifications."))
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead handles PATCH /notifications/{id}/read requests.
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid notification id"))
		return
	}

	n, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Notification not found."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error updating notification."))
		return
	}

	writeJSON(w, http.StatusOK, n)
}
