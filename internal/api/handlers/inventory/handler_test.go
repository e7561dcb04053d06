package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func newRouter() *mux.Router {
	store := memory.NewStore()
	svc := inventory.NewService(store.Buildings(), store.SpotTypes(), store.Spots(), memory.NewTxManager(), logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/buildings", h.ListActiveBuildings).Methods(http.MethodGet)
	r.HandleFunc("/spot-types", h.ListSpotTypes).Methods(http.MethodGet)
	r.HandleFunc("/admin/buildings", h.ListAllBuildings).Methods(http.MethodGet)
	r.HandleFunc("/admin/buildings", h.CreateBuilding).Methods(http.MethodPost)
	r.HandleFunc("/admin/buildings/{buildingId}", h.UpdateBuilding).Methods(http.MethodPatch)
	r.HandleFunc("/admin/buildings/{buildingId}/spots", h.GenerateSpots).Methods(http.MethodPost)
	r.HandleFunc("/admin/spot-types", h.CreateSpotType).Methods(http.MethodPost)
	r.HandleFunc("/admin/spots", h.ListSpots).Methods(http.MethodGet)
	r.HandleFunc("/admin/spots", h.CreateSpot).Methods(http.MethodPost)
	r.HandleFunc("/admin/spots/{spotId}", h.SetSpotActive).Methods(http.MethodPatch)
	return r
}

func do(r *mux.Router, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestInventoryFlow(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/admin/buildings", `{"code":"J2-A","name":"J2 Block A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	building := decode[models.BuildingResponse](t, w)
	assert.True(t, building.IsActive)

	w = do(r, http.MethodPost, "/admin/buildings", `{"code":"J2-A","name":"Duplicate"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	body := `{"spotTypeId":"` + memory.RegularSpotTypeID.String() + `","count":3}`
	w = do(r, http.MethodPost, "/admin/buildings/"+building.ID.String()+"/spots", body)
	require.Equal(t, http.StatusCreated, w.Code)
	generated := decode[models.SpotListResponse](t, w)
	require.Len(t, generated.Spots, 3)
	assert.Equal(t, 1, generated.Spots[0].SpotNumber)
	assert.Equal(t, 3, generated.Spots[2].SpotNumber)

	// Нумерация продолжается после последнего места
	w = do(r, http.MethodPost, "/admin/buildings/"+building.ID.String()+"/spots", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 4, decode[models.SpotListResponse](t, w).Spots[0].SpotNumber)

	w = do(r, http.MethodPatch, "/admin/spots/"+generated.Spots[1].ID.String(), `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.SpotResponse](t, w).IsActive)

	w = do(r, http.MethodGet, "/admin/spots?buildingId="+building.ID.String()+"&onlyActive=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.SpotListResponse](t, w).Spots, 5)

	w = do(r, http.MethodPatch, "/admin/buildings/"+building.ID.String(), `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/buildings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.BuildingListResponse](t, w).Buildings)

	w = do(r, http.MethodGet, "/admin/buildings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.BuildingListResponse](t, w).Buildings, 1)
}

func TestSpotTypes(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/admin/spot-types", `{"name":"EV","isShaded":false}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ev", decode[models.SpotTypeResponse](t, w).Name)

	w = do(r, http.MethodGet, "/spot-types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.SpotTypeListResponse](t, w).SpotTypes, 4)
}

func TestErrors(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		wantStatus int
	}{
		{"empty code", http.MethodPost, "/admin/buildings", `{"code":"","name":"X"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/admin/buildings", `{"code":"A","name":"X","floors":3}`, http.StatusBadRequest},
		{"unknown building", http.MethodPatch, "/admin/buildings/" + memory.RegularSpotTypeID.String(), `{"isActive":false}`, http.StatusNotFound},
		{"bad building id", http.MethodPatch, "/admin/buildings/1", `{"isActive":false}`, http.StatusBadRequest},
		{"generate zero", http.MethodPost, "/admin/buildings/" + memory.RegularSpotTypeID.String() + "/spots", `{"spotTypeId":"` + memory.RegularSpotTypeID.String() + `","count":0}`, http.StatusBadRequest},
		{"missing isActive", http.MethodPatch, "/admin/spots/" + memory.RegularSpotTypeID.String(), `{}`, http.StatusBadRequest},
		{"bad onlyActive", http.MethodGet, "/admin/spots?onlyActive=maybe", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
