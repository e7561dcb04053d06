package command

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

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
	"github.com/m04kA/SMC-ParkingService/internal/app"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/qrcode"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	inventoryService "github.com/m04kA/SMC-ParkingService/internal/service/inventory"
	notificationsService "github.com/m04kA/SMC-ParkingService/internal/service/notifications"
	usersService "github.com/m04kA/SMC-ParkingService/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getAvailableSpotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_spots"
	getOccupancyUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_occupancy"
	transitionBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

// application собранный граф зависимостей сервиса
type application struct {
	router  *mux.Router
	sweeper *app.Sweeper
	store   *storage
}

// Close останавливает sweeper и освобождает хранилище
func (a *application) Close() {
	if a.sweeper != nil {
		a.sweeper.Stop()
	}
	a.store.close()
}

// newApplication собирает репозитории, use cases, сервисы и роутер.
// collector равен nil, если метрики выключены
func newApplication(ctx context.Context, cfg *config.Config, collector *metrics.Metrics, log *logger.Logger) (*application, error) {
	location, err := cfg.Booking.Location()
	if err != nil {
		return nil, fmt.Errorf("booking.timezone: %w", err)
	}

	// Хранилище
	var store *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = newMemoryStorage()
		log.Warn("Using in-memory storage: data is lost on restart")
	default:
		store, err = newPostgresStorage(ctx, cfg, collector, log)
		if err != nil {
			return nil, err
		}
	}

	// Интеграции
	broker := events.NewBroker(log)
	notificationSink := notifier.New(store.notifications, broker, log)
	qrEncoder := qrcode.NewEncoder(cfg.Booking.QRSize)
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.spots,
		store.buildings,
		qrEncoder,
		broker,
		collector,
		store.tx,
		log,
	).WithTimeProvider(&createBookingUC.RealTimeProvider{Location: location})

	getAvailableSpotsUseCase := getAvailableSpotsUC.NewUseCase(
		store.buildings,
		store.spots,
		store.bookings,
		store.tx,
		log,
	).WithTimeProvider(&getAvailableSpotsUC.RealTimeProvider{Location: location})

	getOccupancyUseCase := getOccupancyUC.NewUseCase(
		store.buildings,
		store.spotTypes,
		store.spots,
		store.bookings,
		store.tx,
		log,
	).WithTimeProvider(&getOccupancyUC.RealTimeProvider{Location: location})

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		store.bookings,
		notificationSink,
		broker,
		collector,
		store.tx,
		cfg.Booking.FineAmount,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(store.bookings, store.spots, store.buildings, location, log)
	inventorySvc := inventoryService.NewService(store.buildings, store.spotTypes, store.spots, store.tx, log)
	userSvc := usersService.NewService(store.profiles, log)
	notificationSvc := notificationsService.NewService(store.notifications, notificationSink, log)

	// Handlers
	h := routeHandlers{
		createBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		getAvailableSpots: getAvailableSpotsHandler.NewHandler(getAvailableSpotsUseCase, log),
		getBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		getUserBookings:   getUserBookingsHandler.NewHandler(bookingSvc, log),
		getActiveBooking:  getActiveBookingHandler.NewHandler(bookingSvc, log),
		getAllBookings:    getAllBookingsHandler.NewHandler(bookingSvc, log),
		getOccupancy:      getOccupancyHandler.NewHandler(getOccupancyUseCase, log),
		cancelBooking:     transitionBookingHandler.NewHandler(transitionBookingUseCase, domain.EventCancel, log),
		recordEntry:       transitionBookingHandler.NewHandler(transitionBookingUseCase, domain.EventEntry, log),
		recordExit:        transitionBookingHandler.NewHandler(transitionBookingUseCase, domain.EventExit, log),
		expireBooking:     transitionBookingHandler.NewHandler(transitionBookingUseCase, domain.EventExpire, log),
		fineBooking:       transitionBookingHandler.NewHandler(transitionBookingUseCase, domain.EventFine, log),
		scanBooking:       transitionBookingHandler.NewScanHandler(transitionBookingUseCase, log),
		inventory:         inventoryHandler.NewHandler(inventorySvc, log),
		users:             usersHandler.NewHandler(userSvc, log),
		notifications:     notificationsHandler.NewHandler(notificationSvc, log),
		eventStream:       eventStreamHandler.NewHandler(broker, log),
	}

	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if collector != nil {
		r.Use(middleware.MetricsMiddleware(collector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	registerRoutes(r, h, middleware.Auth(verifier, userSvc, log))

	a := &application{
		router: r,
		store:  store,
	}

	// Фоновое истечение и штрафы
	if cfg.Sweeper.Enabled {
		a.sweeper = app.NewSweeper(
			store.bookings,
			transitionBookingUseCase,
			time.Duration(cfg.Sweeper.Interval)*time.Second,
			time.Duration(cfg.Booking.FineGraceMinutes)*time.Minute,
			location,
			log,
		)
	}

	return a, nil
}
