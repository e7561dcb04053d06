package get_occupancy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getOccupancy "github.com/m04kA/SMC-ParkingService/internal/usecase/get_occupancy"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/occupancy
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /admin/occupancy - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOccupancy.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getOccupancy.ErrStoreUnavailable):
			h.logger.Error("GET /admin/occupancy - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/occupancy - Failed to build report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/occupancy - Report built: date=%s, occupied=%d/%d",
		result.Date.Format(domain.DateFormat), result.Overall.Occupied, result.Overall.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
