package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/users"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные профиля"
	msgProfileNotFound    = "профиль не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Me GET /api/v1/profile
// Профиль создается при первом обращении по данным токена
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /profile - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.EnsureProfile(r.Context(), &models.EnsureProfileRequest{
		UserID: principal.UserID,
		Email:  principal.Email,
		Role:   principal.Role,
	})
	if err != nil {
		h.respondError(w, "GET /profile", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListProfiles(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/users", err)
		return
	}

	h.logger.Info("GET /admin/users - Profiles retrieved successfully: count=%d", len(result.Profiles))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// AssignRole PATCH /api/v1/admin/users/{userId}/role
func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathUUID(r, "userId")
	if err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/role - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.AssignRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignRole(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/users/{id}/role", err)
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/role - Role assigned: user_id=%s, role=%s", userID, result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, users.ErrProfileNotFound):
		h.logger.Warn("%s - Profile not found", route)
		handlers.RespondNotFound(w, msgProfileNotFound)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
