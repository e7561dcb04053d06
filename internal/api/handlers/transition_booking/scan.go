package transition_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/qrcode"
	transitionBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
)

const (
	msgInvalidQRData    = "QR-код не распознан"
	msgInvalidScanEvent = "событие сканирования должно быть entry или exit"
)

// ScanHandler отмечает въезд или выезд по содержимому QR-кода бронирования
type ScanHandler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewScanHandler(useCase TransitionBookingUseCase, logger Logger) *ScanHandler {
	return &ScanHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/scan
func (h *ScanHandler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/scan"

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ScanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event := domain.BookingEvent(req.Event)
	if event != domain.EventEntry && event != domain.EventExit {
		h.logger.Warn("%s - Unsupported event: %q", route, req.Event)
		handlers.RespondBadRequest(w, msgInvalidScanEvent)
		return
	}

	bookingID, err := qrcode.ParseBookingID(req.QRData)
	if err != nil {
		h.logger.Warn("%s - Invalid QR payload: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidQRData)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
		BookingID:   bookingID,
		Event:       event,
		Actor:       transitionBooking.Actor{UserID: principal.UserID, Role: principal.Role},
		EffectiveAt: req.EffectiveAt,
	})
	if err != nil {
		respondError(w, h.logger, route, bookingID, principal.UserID, err)
		return
	}

	h.logger.Info("%s - Booking %s recorded: booking_id=%s, status=%s, user_id=%s",
		route, event, bookingID, result.Status, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
