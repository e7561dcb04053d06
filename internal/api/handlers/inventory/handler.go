package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBuildingID  = "некорректный ID здания"
	msgInvalidSpotID      = "некорректный ID места"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные"
	msgBuildingNotFound   = "здание не найдено"
	msgSpotTypeNotFound   = "тип места не найден"
	msgSpotNotFound       = "место не найдено"
	msgAlreadyExists      = "запись с таким кодом, именем или номером уже существует"
	msgMissingIsActive    = "поле isActive обязательно"
)

// Handler обработчики справочника зданий, типов мест и мест
type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListActiveBuildings GET /api/v1/buildings
func (h *Handler) ListActiveBuildings(w http.ResponseWriter, r *http.Request) {
	h.listBuildings(w, r, true, "GET /buildings")
}

// ListAllBuildings GET /api/v1/admin/buildings
func (h *Handler) ListAllBuildings(w http.ResponseWriter, r *http.Request) {
	h.listBuildings(w, r, false, "GET /admin/buildings")
}

func (h *Handler) listBuildings(w http.ResponseWriter, r *http.Request, onlyActive bool, route string) {
	result, err := h.service.ListBuildings(r.Context(), onlyActive)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Buildings retrieved successfully: count=%d", route, len(result.Buildings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateBuilding POST /api/v1/admin/buildings
func (h *Handler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBuildingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/buildings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBuilding(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/buildings", err)
		return
	}

	h.logger.Info("POST /admin/buildings - Building created successfully: building_id=%s, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateBuilding PATCH /api/v1/admin/buildings/{buildingId}
func (h *Handler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	buildingID, err := handlers.PathUUID(r, "buildingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/buildings/{id} - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	var req models.UpdateBuildingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/buildings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateBuilding(r.Context(), buildingID, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/buildings/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/buildings/{id} - Building updated successfully: building_id=%s, active=%t",
		buildingID, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListSpotTypes GET /api/v1/spot-types
func (h *Handler) ListSpotTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpotTypes(r.Context())
	if err != nil {
		h.respondError(w, "GET /spot-types", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateSpotType POST /api/v1/admin/spot-types
func (h *Handler) CreateSpotType(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpotTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spot-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpotType(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/spot-types", err)
		return
	}

	h.logger.Info("POST /admin/spot-types - Spot type created successfully: spot_type_id=%s, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListSpots GET /api/v1/admin/spots
// Query params: buildingId, spotTypeId, onlyActive (опционально)
func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	req, err := toListSpotsRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/spots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListSpots(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/spots", err)
		return
	}

	h.logger.Info("GET /admin/spots - Spots retrieved successfully: count=%d", len(result.Spots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateSpot POST /api/v1/admin/spots
func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpot(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/spots", err)
		return
	}

	h.logger.Info("POST /admin/spots - Spot created successfully: spot_id=%s, number=%d", result.ID, result.SpotNumber)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// SetSpotActive PATCH /api/v1/admin/spots/{spotId}
func (h *Handler) SetSpotActive(w http.ResponseWriter, r *http.Request) {
	spotID, err := handlers.PathUUID(r, "spotId")
	if err != nil {
		h.logger.Warn("PATCH /admin/spots/{id} - Invalid spot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	var req SetSpotActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/spots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsActive == nil {
		handlers.RespondBadRequest(w, msgMissingIsActive)
		return
	}

	result, err := h.service.SetSpotActive(r.Context(), spotID, *req.IsActive)
	if err != nil {
		h.respondError(w, "PATCH /admin/spots/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/spots/{id} - Spot updated successfully: spot_id=%s, active=%t", spotID, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GenerateSpots POST /api/v1/admin/buildings/{buildingId}/spots
func (h *Handler) GenerateSpots(w http.ResponseWriter, r *http.Request) {
	buildingID, err := handlers.PathUUID(r, "buildingId")
	if err != nil {
		h.logger.Warn("POST /admin/buildings/{id}/spots - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	var req GenerateSpotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/buildings/{id}/spots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.GenerateSpots(r.Context(), &models.GenerateSpotsRequest{
		BuildingID: buildingID,
		SpotTypeID: req.SpotTypeID,
		Count:      req.Count,
	})
	if err != nil {
		h.respondError(w, "POST /admin/buildings/{id}/spots", err)
		return
	}

	h.logger.Info("POST /admin/buildings/{id}/spots - Spots generated successfully: building_id=%s, count=%d",
		buildingID, len(result.Spots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, inventory.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, inventory.ErrBuildingNotFound):
		h.logger.Warn("%s - Building not found", route)
		handlers.RespondNotFound(w, msgBuildingNotFound)

	case errors.Is(err, inventory.ErrSpotTypeNotFound):
		h.logger.Warn("%s - Spot type not found", route)
		handlers.RespondNotFound(w, msgSpotTypeNotFound)

	case errors.Is(err, inventory.ErrSpotNotFound):
		h.logger.Warn("%s - Spot not found", route)
		handlers.RespondNotFound(w, msgSpotNotFound)

	case errors.Is(err, inventory.ErrAlreadyExists):
		h.logger.Warn("%s - Already exists: %v", route, err)
		handlers.RespondConflict(w, msgAlreadyExists)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}

func toListSpotsRequest(r *http.Request) (*models.ListSpotsRequest, error) {
	buildingID, err := handlers.QueryUUID(r, "buildingId")
	if err != nil {
		return nil, err
	}

	spotTypeID, err := handlers.QueryUUID(r, "spotTypeId")
	if err != nil {
		return nil, err
	}

	req := &models.ListSpotsRequest{BuildingID: buildingID, SpotTypeID: spotTypeID}
	if raw := handlers.QueryString(r, "onlyActive"); raw != nil {
		req.OnlyActive, err = strconv.ParseBool(*raw)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}
