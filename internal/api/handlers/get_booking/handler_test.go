package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, role domain.Role) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, userID, role)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc BookingService, principal *identity.Principal, bookingID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), *principal))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	bookingID := uuid.New()
	user := &identity.Principal{UserID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		principal  *identity.Principal
		bookingID  string
		svcErr     error
		wantStatus int
	}{
		{"ok", user, bookingID.String(), nil, http.StatusOK},
		{"bad id", user, "17", nil, http.StatusBadRequest},
		{"no principal", nil, bookingID.String(), nil, http.StatusUnauthorized},
		{"not found", user, bookingID.String(), bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", user, bookingID.String(), bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", user, bookingID.String(), bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.svcErr != nil {
				svc.On("GetByID", mock.Anything, bookingID, user.UserID, domain.RoleUser).Return(nil, tt.svcErr)
			} else {
				svc.On("GetByID", mock.Anything, bookingID, user.UserID, domain.RoleUser).
					Return(&models.BookingResponse{ID: bookingID, UserID: user.UserID}, nil)
			}

			w := serve(svc, tt.principal, tt.bookingID)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
