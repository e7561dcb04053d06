package command

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	eventStreamHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/event_stream"
	getActiveBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_active_booking"
	getAllBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_all_bookings"
	getAvailableSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_spots"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getOccupancyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_occupancy"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	inventoryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/inventory"
	notificationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/notifications"
	transitionBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/transition_booking"
	usersHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/users"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
)

type routeHandlers struct {
	createBooking     *createBookingHandler.Handler
	getAvailableSpots *getAvailableSpotsHandler.Handler
	getBooking        *getBookingHandler.Handler
	getUserBookings   *getUserBookingsHandler.Handler
	getActiveBooking  *getActiveBookingHandler.Handler
	getAllBookings    *getAllBookingsHandler.Handler
	getOccupancy      *getOccupancyHandler.Handler
	cancelBooking     *transitionBookingHandler.Handler
	recordEntry       *transitionBookingHandler.Handler
	recordExit        *transitionBookingHandler.Handler
	expireBooking     *transitionBookingHandler.Handler
	fineBooking       *transitionBookingHandler.Handler
	scanBooking       *transitionBookingHandler.ScanHandler
	inventory         *inventoryHandler.Handler
	users             *usersHandler.Handler
	notifications     *notificationsHandler.Handler
	eventStream       *eventStreamHandler.Handler
}

func registerRoutes(r *mux.Router, h routeHandlers, auth mux.MiddlewareFunc) {
	// Health check (публичный)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth)

	// --- Инвентарь ---
	protected.HandleFunc("/buildings", h.inventory.ListActiveBuildings).Methods(http.MethodGet)
	protected.HandleFunc("/spot-types", h.inventory.ListSpotTypes).Methods(http.MethodGet)

	// Доступность мест здания на окно
	protected.HandleFunc("/buildings/{buildingId}/available-spots",
		h.getAvailableSpots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.getUserBookings.Handle).Methods(http.MethodGet)

	// /bookings/active регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/active", h.getActiveBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.getBooking.Handle).Methods(http.MethodGet)

	// Переходы статуса владельцем
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/entry", h.recordEntry.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/exit", h.recordExit.Handle).Methods(http.MethodPatch)

	// Въезд и выезд по QR-коду с терминала
	protected.HandleFunc("/bookings/scan", h.scanBooking.Handle).Methods(http.MethodPatch)

	// --- Пользователь ---
	protected.HandleFunc("/profile", h.users.Me).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", h.notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", h.notifications.MarkRead).Methods(http.MethodPatch)

	// Лента изменений (WebSocket)
	protected.HandleFunc("/events", h.eventStream.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// Здания
	admin.HandleFunc("/buildings", h.inventory.ListAllBuildings).Methods(http.MethodGet)
	admin.HandleFunc("/buildings", h.inventory.CreateBuilding).Methods(http.MethodPost)
	admin.HandleFunc("/buildings/{buildingId}", h.inventory.UpdateBuilding).Methods(http.MethodPatch)
	admin.HandleFunc("/buildings/{buildingId}/spots", h.inventory.GenerateSpots).Methods(http.MethodPost)

	// Типы мест и места
	admin.HandleFunc("/spot-types", h.inventory.CreateSpotType).Methods(http.MethodPost)
	admin.HandleFunc("/spots", h.inventory.ListSpots).Methods(http.MethodGet)
	admin.HandleFunc("/spots", h.inventory.CreateSpot).Methods(http.MethodPost)
	admin.HandleFunc("/spots/{spotId}", h.inventory.SetSpotActive).Methods(http.MethodPatch)

	// Бронирования
	admin.HandleFunc("/bookings", h.getAllBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/expire", h.expireBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/fine", h.fineBooking.Handle).Methods(http.MethodPatch)

	// Дашборд
	admin.HandleFunc("/occupancy", h.getOccupancy.Handle).Methods(http.MethodGet)

	// Пользователи и уведомления
	admin.HandleFunc("/users", h.users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/role", h.users.AssignRole).Methods(http.MethodPatch)
	admin.HandleFunc("/notifications", h.notifications.Send).Methods(http.MethodPost)
}
