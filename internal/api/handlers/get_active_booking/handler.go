package get_active_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNoActiveBooking = "нет текущего бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/active - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetActiveBooking(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNoActiveBooking):
			h.logger.Info("GET /bookings/active - No active booking: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNoActiveBooking)

		default:
			h.logger.Error("GET /bookings/active - Failed to get active booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/active - Active booking retrieved: booking_id=%s, user_id=%s", booking.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
