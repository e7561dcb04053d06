package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipal(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(p.UserID.String() + " " + string(p.Role)))
}

func TestAuth(t *testing.T) {
	verifier := identity.NewVerifier("secret", "")
	userID := uuid.New()

	token, err := verifier.Issue(userID, domain.RoleUser, "u@uni.test", time.Hour)
	require.NoError(t, err)
	expired, err := verifier.Issue(userID, domain.RoleUser, "u@uni.test", -time.Minute)
	require.NoError(t, err)
	foreign, err := identity.NewVerifier("other", "").Issue(userID, domain.RoleAdmin, "", time.Hour)
	require.NoError(t, err)

	handler := Auth(verifier, nil, logger.NewNop())(http.HandlerFunc(echoUser))

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"query token", "", "?access_token=" + token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"basic scheme", "Basic " + token, "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized},
		{"wrong signature", "Bearer " + foreign, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String()+" user", rec.Body.String())
			}
		})
	}
}

type stubRoles struct {
	roles map[uuid.UUID]domain.Role
	err   error
}

func (s stubRoles) ResolveRole(_ context.Context, userID uuid.UUID) (domain.Role, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	role, ok := s.roles[userID]
	return role, ok, nil
}

func TestAuth_StoredRoleOverridesClaim(t *testing.T) {
	verifier := identity.NewVerifier("secret", "")
	promoted := uuid.New()
	demoted := uuid.New()
	newcomer := uuid.New()

	roles := stubRoles{roles: map[uuid.UUID]domain.Role{
		promoted: domain.RoleAdmin,
		demoted:  domain.RoleUser,
	}}

	tests := []struct {
		name       string
		userID     uuid.UUID
		claim      domain.Role
		roles      RoleResolver
		wantStatus int
		wantRole   domain.Role
	}{
		{"promoted user", promoted, domain.RoleUser, roles, http.StatusOK, domain.RoleAdmin},
		{"demoted admin", demoted, domain.RoleAdmin, roles, http.StatusOK, domain.RoleUser},
		{"no profile keeps claim", newcomer, domain.RoleAdmin, roles, http.StatusOK, domain.RoleAdmin},
		{"resolver failure", promoted, domain.RoleUser, stubRoles{err: errors.New("db down")}, http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := verifier.Issue(tt.userID, tt.claim, "u@uni.test", time.Hour)
			require.NoError(t, err)

			handler := Auth(verifier, tt.roles, logger.NewNop())(http.HandlerFunc(echoUser))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.userID.String()+" "+string(tt.wantRole), rec.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(echoUser))

	run := func(p *identity.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/occupancy", nil)
		if p != nil {
			req = req.WithContext(WithPrincipal(req.Context(), *p))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil))
	assert.Equal(t, http.StatusForbidden, run(&identity.Principal{UserID: uuid.New(), Role: domain.RoleUser}))
	assert.Equal(t, http.StatusOK, run(&identity.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "parking-test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "parking-test"))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("parking-test", http.MethodGet, "/api/v1/bookings/{bookingId}", "404"))
	assert.Equal(t, 2.0, count)
}
