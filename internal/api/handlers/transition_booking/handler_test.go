package transition_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/qrcode"
	transitionBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	router  *mux.Router
	store   *memory.Store
	booking *domain.Booking
	owner   identity.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	b, err := store.Buildings().Create(ctx, &domain.Building{Code: "J2-A", Name: "J2 Block A", IsActive: true})
	require.NoError(t, err)
	spots, err := store.Spots().CreateBatch(ctx, b.ID, memory.RegularSpotTypeID, 1, 1)
	require.NoError(t, err)

	owner := identity.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		UserID: owner.UserID,
		SpotID: spots[0].ID,
		Window: domain.TimeWindow{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Start: "09:00", End: "10:00"},
		Status: domain.StatusActive,
	})
	require.NoError(t, err)

	uc := transitionBooking.NewUseCase(store.Bookings(), nil, nil, nil, memory.NewTxManager(), 0, logger.NewNop()).
		WithTimeProvider(fixedTime{time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)})

	r := mux.NewRouter()
	for _, event := range []domain.BookingEvent{domain.EventCancel, domain.EventEntry, domain.EventExit} {
		r.HandleFunc("/api/v1/bookings/{bookingId}/"+string(event), NewHandler(uc, event, logger.NewNop()).Handle).Methods(http.MethodPatch)
	}
	for _, event := range []domain.BookingEvent{domain.EventExpire, domain.EventFine} {
		r.HandleFunc("/api/v1/admin/bookings/{bookingId}/"+string(event), NewHandler(uc, event, logger.NewNop()).Handle).Methods(http.MethodPatch)
	}

	r.HandleFunc("/api/v1/bookings/scan", NewScanHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	return &fixture{router: r, store: store, booking: booking, owner: owner}
}

func (f *fixture) patch(principal identity.Principal, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, url, nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) userURL(event string) string {
	return "/api/v1/bookings/" + f.booking.ID.String() + "/" + event
}

func (f *fixture) adminURL(event string) string {
	return "/api/v1/admin/bookings/" + f.booking.ID.String() + "/" + event
}

func TestHandle_EntryThenExit(t *testing.T) {
	f := newFixture(t)

	w := f.patch(f.owner, f.userURL("entry"), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.patch(f.owner, f.userURL("exit"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.NotNil(t, resp.EntryTime)
	assert.NotNil(t, resp.ExitTime)

	// Из терминального статуса переходов нет
	w = f.patch(f.owner, f.userURL("cancel"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandle_ExitWithoutEntry(t *testing.T) {
	f := newFixture(t)

	w := f.patch(f.owner, f.userURL("exit"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandle_FineByAdmin(t *testing.T) {
	f := newFixture(t)
	admin := identity.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	w := f.patch(admin, f.adminURL("fine"), `{"fineAmount":25}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fined", resp.Status)
	require.NotNil(t, resp.FineAmount)
	assert.Equal(t, 25.0, *resp.FineAmount)
}

func TestHandle_Errors(t *testing.T) {
	stranger := identity.Principal{UserID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		principal  func(f *fixture) identity.Principal
		url        func(f *fixture) string
		body       string
		wantStatus int
	}{
		{
			name:       "foreign booking",
			principal:  func(*fixture) identity.Principal { return stranger },
			url:        func(f *fixture) string { return f.userURL("cancel") },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "owner cannot expire",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			url:        func(f *fixture) string { return f.adminURL("expire") },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown booking",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			url:        func(*fixture) string { return "/api/v1/bookings/" + uuid.NewString() + "/cancel" },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad booking id",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			url:        func(*fixture) string { return "/api/v1/bookings/abc/cancel" },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "fine amount on cancel",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			url:        func(f *fixture) string { return f.userURL("cancel") },
			body:       `{"fineAmount":5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			url:        func(f *fixture) string { return f.userURL("cancel") },
			body:       `{"fineAmount":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.patch(tt.principal(f), tt.url(f), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_EntryWithEffectiveAt(t *testing.T) {
	f := newFixture(t)

	w := f.patch(f.owner, f.userURL("entry"), `{"effectiveAt":"2025-06-01T08:58:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.EntryTime)
	assert.Equal(t, "2025-06-01T08:58:00Z", *resp.EntryTime)

	// Отметка времени для отмены не принимается
	w = f.patch(f.owner, f.userURL("cancel"), `{"effectiveAt":"2025-06-01T08:58:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandle_ChunkedBodyIsDecoded(t *testing.T) {
	f := newFixture(t)
	admin := identity.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	req := httptest.NewRequest(http.MethodPatch, f.adminURL("fine"), nil)
	req.Body = io.NopCloser(strings.NewReader(`{"fineAmount":40}`))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req = req.WithContext(middleware.WithPrincipal(req.Context(), admin))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.FineAmount)
	assert.Equal(t, 40.0, *resp.FineAmount)
}

func TestScan_EntryThenExit(t *testing.T) {
	f := newFixture(t)

	raw, err := json.Marshal(qrcode.NewBookingQRData(f.booking))
	require.NoError(t, err)
	body := func(event string) string {
		payload, err := json.Marshal(ScanRequest{QRData: string(raw), Event: event})
		require.NoError(t, err)
		return string(payload)
	}

	w := f.patch(f.owner, "/api/v1/bookings/scan", body("entry"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.patch(f.owner, "/api/v1/bookings/scan", body("exit"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.booking.ID, resp.ID)
	assert.Equal(t, "completed", resp.Status)

	// Повторное сканирование завершенного бронирования
	w = f.patch(f.owner, "/api/v1/bookings/scan", body("entry"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScan_Errors(t *testing.T) {
	stranger := identity.Principal{UserID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		principal  func(f *fixture) identity.Principal
		body       func(f *fixture) string
		wantStatus int
	}{
		{
			name:      "not a qr payload",
			principal: func(f *fixture) identity.Principal { return f.owner },
			body: func(*fixture) string {
				return `{"qrData":"hello","event":"entry"}`
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "cancel is not a scan event",
			principal: func(f *fixture) identity.Principal { return f.owner },
			body: func(f *fixture) string {
				return `{"qrData":"{\"bookingId\":\"` + f.booking.ID.String() + `\"}","event":"cancel"}`
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "unknown booking",
			principal: func(f *fixture) identity.Principal { return f.owner },
			body: func(*fixture) string {
				return `{"qrData":"{\"bookingId\":\"` + uuid.NewString() + `\"}","event":"entry"}`
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "foreign booking",
			principal: func(*fixture) identity.Principal { return stranger },
			body: func(f *fixture) string {
				return `{"qrData":"{\"bookingId\":\"` + f.booking.ID.String() + `\"}","event":"entry"}`
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "empty body",
			principal:  func(f *fixture) identity.Principal { return f.owner },
			body:       func(*fixture) string { return "" },
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.patch(tt.principal(f), "/api/v1/bookings/scan", tt.body(f))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
