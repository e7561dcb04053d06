package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

const (
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidParams         = "некорректные параметры запроса"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректное уведомление"
	msgNotificationNotFound  = "уведомление не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications
// Query params: unread (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	unreadOnly := false
	if raw := handlers.QueryString(r, "unread"); raw != nil {
		var err error
		if unreadOnly, err = strconv.ParseBool(*raw); err != nil {
			h.logger.Warn("GET /notifications - Invalid unread flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// MarkRead PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /notifications/{id}/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	notificationID, err := handlers.PathUUID(r, "notificationId")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, userID); err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Not found: notification_id=%s, user_id=%s", notificationID, userID)
			handlers.RespondNotFound(w, msgNotificationNotFound)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed: notification_id=%s, error=%v", notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// Send POST /api/v1/admin/notifications
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /admin/notifications - Invalid notification: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/notifications - Failed to send: user_id=%s, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/notifications - Notification sent: notification_id=%s, user_id=%s", result.ID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
