package transition_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequest     = "некорректный запрос на смену статуса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход недоступен из текущего статуса бронирования"
)

// Handler один обработчик на каждое событие жизненного цикла
type Handler struct {
	useCase TransitionBookingUseCase
	event   domain.BookingEvent
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, event domain.BookingEvent, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		event:   event,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{cancel|entry|exit}
// и PATCH /api/v1/admin/bookings/{bookingId}/{expire|fine}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", h.event, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/%s - Missing user ID", h.event)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid request body: %v", h.event, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	route := "PATCH /bookings/{id}/" + string(h.event)
	actor := transitionBooking.Actor{UserID: principal.UserID, Role: principal.Role}
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, h.event, actor))
	if err != nil {
		respondError(w, h.logger, route, bookingID, principal.UserID, err)
		return
	}

	h.logger.Info("%s - Booking updated successfully: booking_id=%s, status=%s, user_id=%s",
		route, bookingID, result.Status, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func respondError(w http.ResponseWriter, logger Logger, route string, bookingID, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, transitionBooking.ErrInvalidInput):
		logger.Warn("%s - Invalid request: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)

	case errors.Is(err, transitionBooking.ErrBookingNotFound):
		logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, transitionBooking.ErrAccessDenied):
		logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, transitionBooking.ErrInvalidTransition):
		logger.Warn("%s - Invalid transition: booking_id=%s", route, bookingID)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, transitionBooking.ErrStoreUnavailable):
		logger.Error("%s - Store unavailable: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondServiceUnavailable(w)

	default:
		logger.Error("%s - Failed to update booking: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
