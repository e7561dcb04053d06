package get_available_spots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	getAvailableSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_spots"
)

const (
	msgInvalidBuildingID = "некорректный ID здания"
	msgInvalidSpotTypeID = "некорректный ID типа места"
	msgMissingParams     = "параметры date, startTime и endTime обязательны"
	msgInvalidParams     = "некорректный формат: date YYYY-MM-DD, startTime и endTime HH:MM"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidRequest    = "некорректный запрос: проверьте окно, дату и здание"
)

type Handler struct {
	useCase GetAvailableSpotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSpotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/buildings/{buildingId}/available-spots
// Query params: date, startTime, endTime (обязательные), spotTypeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /buildings/{id}/available-spots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	buildingID, err := handlers.PathUUID(r, "buildingId")
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/available-spots - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	spotTypeID, err := handlers.QueryUUID(r, "spotTypeId")
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/available-spots - Invalid spot type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotTypeID)
		return
	}

	query := r.URL.Query()
	dateStr, startStr, endStr := query.Get("date"), query.Get("startTime"), query.Get("endTime")
	if dateStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /buildings/{id}/available-spots - Missing window params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(userID, buildingID, dateStr, startStr, endStr, spotTypeID)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/available-spots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSpots.ErrInvalidInput):
			h.logger.Warn("GET /buildings/{id}/available-spots - Invalid request: building_id=%s, error=%v", buildingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSpots.ErrStoreUnavailable):
			h.logger.Error("GET /buildings/{id}/available-spots - Store unavailable: building_id=%s, error=%v", buildingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /buildings/{id}/available-spots - Failed to get availability: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /buildings/{id}/available-spots - Availability retrieved: building_id=%s, available=%d/%d",
		buildingID, result.AvailableCount, result.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
