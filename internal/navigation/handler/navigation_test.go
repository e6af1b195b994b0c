package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusmove/internal/navigation/places"
	"campusmove/internal/navigation/service"
	"campusmove/internal/navigation/session"
	apperrors "campusmove/pkg/errors"
	"campusmove/pkg/logger"
	"campusmove/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNavigationService struct {
	createSessionFunc     func(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error)
	getSessionFunc        func(ctx context.Context, id string) (*session.Snapshot, error)
	updateLocationFunc    func(ctx context.Context, id string, req *model.LocationUpdateRequest) (*session.Snapshot, error)
	routeToFunc           func(ctx context.Context, id string, req *model.RouteToRequest) (*session.Snapshot, error)
	moveMarkersFunc       func(ctx context.Context, id string, req *model.MoveMarkersRequest) (*session.Snapshot, error)
	setModeFunc           func(ctx context.Context, id string, req *model.SetModeRequest) (*session.Snapshot, error)
	toggleStyleFunc       func(ctx context.Context, id string) (*session.Snapshot, error)
	recenterFunc          func(ctx context.Context, id string) (*session.Snapshot, error)
	closeSessionFunc      func(ctx context.Context, id string) error
	nearestLocationsFunc  func(ctx context.Context, point model.LatLng, limit int) ([]places.NearbyPin, error)
	getClientStateFunc    func(ctx context.Context, clientID string) (*model.ViewState, error)
	importClientStateFunc func(ctx context.Context, clientID string, raw []byte) (*model.ViewState, error)
}

var _ service.NavigationService = (*mockNavigationService)(nil)

func snap(id string) *session.Snapshot {
	return &session.Snapshot{ID: id, ClientID: "client-1", Phase: session.PhaseMapRendered, POIs: []session.Marker{}}
}

func (m *mockNavigationService) CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error) {
	if m.createSessionFunc != nil {
		return m.createSessionFunc(ctx, req)
	}
	return snap("sess-1"), nil
}

func (m *mockNavigationService) GetSession(ctx context.Context, id string) (*session.Snapshot, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, id)
	}
	return snap(id), nil
}

func (m *mockNavigationService) UpdateLocation(ctx context.Context, id string, req *model.LocationUpdateRequest) (*session.Snapshot, error) {
	if m.updateLocationFunc != nil {
		return m.updateLocationFunc(ctx, id, req)
	}
	return snap(id), nil
}

func (m *mockNavigationService) RouteTo(ctx context.Context, id string, req *model.RouteToRequest) (*session.Snapshot, error) {
	if m.routeToFunc != nil {
		return m.routeToFunc(ctx, id, req)
	}
	return snap(id), nil
}

func (m *mockNavigationService) MoveMarkers(ctx context.Context, id string, req *model.MoveMarkersRequest) (*session.Snapshot, error) {
	if m.moveMarkersFunc != nil {
		return m.moveMarkersFunc(ctx, id, req)
	}
	return snap(id), nil
}

func (m *mockNavigationService) SetMode(ctx context.Context, id string, req *model.SetModeRequest) (*session.Snapshot, error) {
	if m.setModeFunc != nil {
		return m.setModeFunc(ctx, id, req)
	}
	return snap(id), nil
}

func (m *mockNavigationService) ToggleStyle(ctx context.Context, id string) (*session.Snapshot, error) {
	if m.toggleStyleFunc != nil {
		return m.toggleStyleFunc(ctx, id)
	}
	return snap(id), nil
}

func (m *mockNavigationService) Recenter(ctx context.Context, id string) (*session.Snapshot, error) {
	if m.recenterFunc != nil {
		return m.recenterFunc(ctx, id)
	}
	return snap(id), nil
}

func (m *mockNavigationService) CloseSession(ctx context.Context, id string) error {
	if m.closeSessionFunc != nil {
		return m.closeSessionFunc(ctx, id)
	}
	return nil
}

func (m *mockNavigationService) Locations(ctx context.Context) []model.LocationPin {
	return places.Pins()
}

func (m *mockNavigationService) NearestLocations(ctx context.Context, point model.LatLng, limit int) ([]places.NearbyPin, error) {
	if m.nearestLocationsFunc != nil {
		return m.nearestLocationsFunc(ctx, point, limit)
	}
	return places.Nearest(point, limit), nil
}

func (m *mockNavigationService) Walkways(ctx context.Context) places.WalkwayOverlay {
	return places.Walkways()
}

func (m *mockNavigationService) GetClientState(ctx context.Context, clientID string) (*model.ViewState, error) {
	if m.getClientStateFunc != nil {
		return m.getClientStateFunc(ctx, clientID)
	}
	vs := model.DefaultViewState()
	return &vs, nil
}

func (m *mockNavigationService) ImportClientState(ctx context.Context, clientID string, raw []byte) (*model.ViewState, error) {
	if m.importClientStateFunc != nil {
		return m.importClientStateFunc(ctx, clientID, raw)
	}
	vs := model.DefaultViewState()
	return &vs, nil
}

func (m *mockNavigationService) Close() error {
	return nil
}

func serve(svc service.NavigationService, method, target, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewNavigationHandler(svc, logger.Discard()).RegisterRoutes(router)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateSession(t *testing.T) {
	var received *model.CreateSessionRequest
	svc := &mockNavigationService{createSessionFunc: func(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error) {
		received = req
		return snap("sess-1"), nil
	}}

	rr := serve(svc, http.MethodPost, "/api/v1/navigation/sessions", `{"client_id":"abc","location":{"lat":-26.19,"lng":28.03}}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"sess-1"`)
	require.NotNil(t, received)
	assert.Equal(t, "abc", received.ClientID)
	assert.Equal(t, &model.LatLng{Lat: -26.19, Lng: 28.03}, received.Location)
}

func TestCreateSession_EmptyBody(t *testing.T) {
	called := false
	svc := &mockNavigationService{createSessionFunc: func(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error) {
		called = true
		assert.Nil(t, req.Location)
		return snap("sess-1"), nil
	}}

	rr := serve(svc, http.MethodPost, "/api/v1/navigation/sessions", "")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, called)
}

func TestCreateSession_MalformedBody(t *testing.T) {
	rr := serve(&mockNavigationService{}, http.MethodPost, "/api/v1/navigation/sessions", `{"client_id":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"code":"INVALID_INPUT","message":"Invalid request body"}`, rr.Body.String())
}

func TestRouteTo_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no route",
			err:        apperrors.NoRoute(service.MessageNoRoute),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":"NO_ROUTE","message":"No route could be found between the origin and destination."}`,
		},
		{
			name:       "not ready",
			err:        apperrors.Conflict(service.MessageNotReady),
			wantStatus: http.StatusConflict,
			wantBody:   `{"code":"CONFLICT","message":"Unable to access your location or the map is not loaded. Please try again."}`,
		},
		{
			name:       "upstream",
			err:        apperrors.Upstream("Directions request failed", nil),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"code":"UPSTREAM_ERROR","message":"Directions request failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNavigationService{routeToFunc: func(ctx context.Context, id string, req *model.RouteToRequest) (*session.Snapshot, error) {
				return nil, tt.err
			}}

			rr := serve(svc, http.MethodPost, "/api/v1/navigation/sessions/sess-1/route", `{"destination":{"lat":-26.19,"lng":28.03}}`)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestSessionRoutes(t *testing.T) {
	var gotID string
	var gotMode string
	var gotMarkers *model.MoveMarkersRequest
	svc := &mockNavigationService{
		getSessionFunc: func(ctx context.Context, id string) (*session.Snapshot, error) {
			gotID = id
			return snap(id), nil
		},
		setModeFunc: func(ctx context.Context, id string, req *model.SetModeRequest) (*session.Snapshot, error) {
			gotMode = req.Mode
			return snap(id), nil
		},
		moveMarkersFunc: func(ctx context.Context, id string, req *model.MoveMarkersRequest) (*session.Snapshot, error) {
			gotMarkers = req
			return snap(id), nil
		},
	}

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/navigation/sessions/sess-9", "", http.StatusOK},
		{http.MethodPut, "/api/v1/navigation/sessions/sess-9/location", `{"location":{"lat":-26.19,"lng":28.03}}`, http.StatusOK},
		{http.MethodPatch, "/api/v1/navigation/sessions/sess-9/markers", `{"destination":{"lat":-26.2,"lng":28.04}}`, http.StatusOK},
		{http.MethodPut, "/api/v1/navigation/sessions/sess-9/mode", `{"mode":"BICYCLING"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/navigation/sessions/sess-9/style/toggle", "", http.StatusOK},
		{http.MethodPost, "/api/v1/navigation/sessions/sess-9/recenter", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/navigation/sessions/sess-9", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := serve(svc, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}

	assert.Equal(t, "sess-9", gotID)
	assert.Equal(t, "BICYCLING", gotMode)
	require.NotNil(t, gotMarkers)
	assert.Nil(t, gotMarkers.Origin)
	assert.Equal(t, &model.LatLng{Lat: -26.2, Lng: 28.04}, gotMarkers.Destination)
}

func TestCloseSession_NotFound(t *testing.T) {
	svc := &mockNavigationService{closeSessionFunc: func(ctx context.Context, id string) error {
		return apperrors.NotFoundWithID("Navigation session", id)
	}}

	rr := serve(svc, http.MethodDelete, "/api/v1/navigation/sessions/ghost", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Navigation session not found","details":{"resource":"Navigation session","id":"ghost"}}`, rr.Body.String())
}

func TestLocations(t *testing.T) {
	rr := serve(&mockNavigationService{}, http.MethodGet, "/api/v1/navigation/locations", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Bus Station"`)
	assert.Contains(t, rr.Body.String(), `"width":30`)
}

func TestNearestLocations(t *testing.T) {
	var gotPoint model.LatLng
	var gotLimit int
	svc := &mockNavigationService{nearestLocationsFunc: func(ctx context.Context, point model.LatLng, limit int) ([]places.NearbyPin, error) {
		gotPoint, gotLimit = point, limit
		return places.Nearest(point, 1), nil
	}}

	rr := serve(svc, http.MethodGet, "/api/v1/navigation/locations/nearest?lat=-26.1907&lng=28.0282&limit=1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.LatLng{Lat: -26.1907, Lng: 28.0282}, gotPoint)
	assert.Equal(t, 1, gotLimit)
	assert.Contains(t, rr.Body.String(), `"distance_meters"`)

	for _, target := range []string{
		"/api/v1/navigation/locations/nearest?lng=28.0282",
		"/api/v1/navigation/locations/nearest?lat=abc&lng=28.0282",
		"/api/v1/navigation/locations/nearest?lat=-26.19&lng=28.02&limit=many",
	} {
		rr := serve(svc, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestWalkways(t *testing.T) {
	rr := serve(&mockNavigationService{}, http.MethodGet, "/api/v1/navigation/walkways", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"FeatureCollection"`)
	assert.Contains(t, rr.Body.String(), `"line-color":"#FFF"`)
}

func TestClientState(t *testing.T) {
	var gotRaw string
	var gotClient string
	svc := &mockNavigationService{
		importClientStateFunc: func(ctx context.Context, clientID string, raw []byte) (*model.ViewState, error) {
			gotClient, gotRaw = clientID, string(raw)
			vs := model.DefaultViewState()
			vs.DarkStyle = false
			return &vs, nil
		},
		getClientStateFunc: func(ctx context.Context, clientID string) (*model.ViewState, error) {
			return nil, apperrors.NotFound("View state not found")
		},
	}

	legacy := `{"isDarkStyle":"false"}`
	rr := serve(svc, http.MethodPut, "/api/v1/navigation/clients/client-1/state", legacy)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "client-1", gotClient)
	assert.Equal(t, legacy, gotRaw)
	assert.Contains(t, rr.Body.String(), `"dark_style":false`)
	assert.Contains(t, rr.Body.String(), `"schema_version":1`)

	rr = serve(svc, http.MethodGet, "/api/v1/navigation/clients/client-2/state", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
