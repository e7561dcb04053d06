package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(t *testing.T, userID uuid.UUID, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != uuid.Nil {
		r = r.WithContext(middleware.WithPrincipal(r.Context(), identity.Principal{UserID: userID, Role: domain.RoleUser}))
	}
	return r
}

func TestHandle_Created(t *testing.T) {
	userID, spotID := uuid.New(), uuid.New()
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.UserID == userID && req.SpotID == spotID &&
			req.StartTime == "09:00" && req.EndTime == "10:30" &&
			req.Date.Format(domain.DateFormat) == "2025-06-01"
	})).Return(&createBooking.Response{
		ID:         uuid.New(),
		UserID:     userID,
		SpotID:     spotID,
		SpotNumber: 7,
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "10:30",
		Status:     string(domain.StatusActive),
	}, nil)

	body := fmt.Sprintf(`{"spotId":%q,"date":"2025-06-01","startTime":"09:00","endTime":"10:30"}`, spotID)
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, newRequest(t, userID, body))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.SpotNumber)
	assert.Equal(t, "2025-06-01", resp.Date)
	assert.Equal(t, "active", resp.Status)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	userID := uuid.New()
	validBody := fmt.Sprintf(`{"spotId":%q,"date":"2025-06-01","startTime":"09:00","endTime":"10:00"}`, uuid.New())

	tests := []struct {
		name       string
		userID     uuid.UUID
		body       string
		ucErr      error
		wantStatus int
	}{
		{"no principal", uuid.Nil, validBody, nil, http.StatusUnauthorized},
		{"malformed json", userID, `{"spotId":`, nil, http.StatusBadRequest},
		{"unknown field", userID, `{"userId":"x"}`, nil, http.StatusBadRequest},
		{"bad spot id", userID, `{"spotId":"42","date":"2025-06-01","startTime":"09:00","endTime":"10:00"}`, nil, http.StatusBadRequest},
		{"bad time", userID, fmt.Sprintf(`{"spotId":%q,"date":"2025-06-01","startTime":"9am","endTime":"10:00"}`, uuid.New()), nil, http.StatusBadRequest},
		{"invalid input", userID, validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"conflict", userID, validBody, createBooking.ErrSpotUnavailable, http.StatusConflict},
		{"store unavailable", userID, validBody, fmt.Errorf("%w: timeout", createBooking.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"internal", userID, validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, newRequest(t, tt.userID, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
