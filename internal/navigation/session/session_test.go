package session

import (
	"errors"
	"testing"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	campus  = model.LatLng{Lat: -26.1893, Lng: 28.0271}
	library = model.LatLng{Lat: -26.1905, Lng: 28.0300}
	hall    = model.LatLng{Lat: -26.1920, Lng: 28.0260}
)

func renderedSession(t *testing.T, state model.ViewState) *Session {
	t.Helper()
	s := New("sess-1", "client-1", state, DefaultPOIs())
	require.NoError(t, s.BeginLoad())
	s.CompleteLoad(nil)
	rendered, err := s.SetLocation(campus, LocationDevice)
	require.NoError(t, err)
	require.True(t, rendered)
	return s
}

func TestSession_RenderRequiresProviderAndLocation(t *testing.T) {
	s := New("sess-1", "client-1", model.DefaultViewState(), DefaultPOIs())
	assert.Equal(t, PhaseUnloaded, s.Snapshot().Phase)

	rendered, err := s.SetLocation(campus, LocationDevice)
	require.NoError(t, err)
	assert.False(t, rendered)

	require.NoError(t, s.BeginLoad())
	assert.Equal(t, PhaseLoadingSDK, s.Snapshot().Phase)

	assert.True(t, s.CompleteLoad(nil))
	snap := s.Snapshot()
	assert.Equal(t, PhaseMapRendered, snap.Phase)
	require.NotNil(t, snap.Map)
	assert.Equal(t, campus, snap.Map.Center)
	assert.Equal(t, DefaultZoom, snap.Map.Zoom)
	assert.True(t, snap.Map.Dark)
	assert.NotEmpty(t, snap.Map.Styles)
	assert.Equal(t, Controls{Zoom: true, StreetView: true}, snap.Map.Controls)
	require.NotNil(t, snap.UserMarker)
	assert.Equal(t, "#4285F4", snap.UserMarker.Symbol.FillColor)
	assert.Equal(t, 7, snap.UserMarker.Symbol.Scale)
	assert.Len(t, snap.POIs, 9)
}

func TestSession_POIMarkersCarryInfoWindow(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())
	snap := s.Snapshot()

	require.Len(t, snap.POIs, 9)
	for _, poi := range snap.POIs {
		require.NotNil(t, poi.Info, poi.Title)
		assert.Equal(t, poi.Title, poi.Info.Heading)
		assert.Equal(t, "Lat: "+formatCoord(poi.Position.Lat)+", Lng: "+formatCoord(poi.Position.Lng), poi.Info.Body)
	}

	assert.Equal(t, "Lat: -26.1893, Lng: 28.0271", poiInfo(model.LocationPin{Name: "Library", Lat: -26.1893, Lng: 28.0271}).Body)
	assert.Nil(t, snap.UserMarker.Info)
}

func TestSession_RendersOnce(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	rendered, err := s.SetLocation(library, LocationDevice)
	require.NoError(t, err)
	assert.False(t, rendered)

	snap := s.Snapshot()
	assert.Equal(t, campus, snap.Map.Center)
	assert.Equal(t, library, *snap.Location)
	assert.Equal(t, library, snap.UserMarker.Position)
}

func TestSession_LoadFailureIsFinal(t *testing.T) {
	s := New("sess-1", "client-1", model.DefaultViewState(), nil)
	require.NoError(t, s.BeginLoad())
	assert.False(t, s.CompleteLoad(errors.New("api key missing")))

	rendered, err := s.SetLocation(campus, LocationFallback)
	require.NoError(t, err)
	assert.False(t, rendered)

	snap := s.Snapshot()
	assert.Equal(t, PhaseLoadFailed, snap.Phase)
	assert.Equal(t, "api key missing", snap.LoadError)
	assert.Nil(t, snap.Map)

	_, err = s.RouteTo(library)
	assert.ErrorIs(t, err, naverrors.ErrNotReady)
}

func TestSession_RouteToUsesLocationAsOrigin(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	req, err := s.RouteTo(library)
	require.NoError(t, err)
	assert.Equal(t, campus, req.Origin)
	assert.Equal(t, library, req.Destination)
	assert.Equal(t, model.TravelModeWalking, req.Mode)
	assert.Equal(t, uint64(1), req.Generation)

	snap := s.Snapshot()
	assert.Equal(t, campus, snap.Origin.Position)
	assert.Equal(t, library, snap.Destination.Position)
	assert.True(t, snap.Destination.Draggable)
}

func TestSession_LatestRequestWins(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	first, err := s.RouteTo(library)
	require.NoError(t, err)
	second, err := s.RouteTo(hall)
	require.NoError(t, err)

	newer := &model.Leg{StartLocation: campus, EndLocation: hall, Distance: model.TextValue{Text: "200 m"}}
	older := &model.Leg{StartLocation: campus, EndLocation: library, Distance: model.TextValue{Text: "400 m"}}

	assert.True(t, s.ApplyRoute(second, newer))
	assert.False(t, s.ApplyRoute(first, older))
	assert.False(t, s.IsCurrent(first))

	snap := s.Snapshot()
	assert.Equal(t, PhaseRouteComputed, snap.Phase)
	assert.Equal(t, hall, snap.Destination.Position)
	assert.Equal(t, "200 m", snap.Overlay.Distance)
}

func TestSession_ApplyRouteSnapsMarkers(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())
	req, err := s.RouteTo(library)
	require.NoError(t, err)

	snapped := model.LatLng{Lat: -26.19051, Lng: 28.02998}
	require.True(t, s.ApplyRoute(req, &model.Leg{StartLocation: campus, EndLocation: snapped}))

	assert.Equal(t, snapped, s.Snapshot().Destination.Position)
	vs := s.ViewState()
	require.NotNil(t, vs.Route)
	assert.Equal(t, snapped, vs.Route.Destination)
}

func TestSession_MoveMarkers(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	_, err := s.MoveMarkers(&library, nil)
	assert.ErrorIs(t, err, naverrors.ErrNoMarkers)

	_, err = s.RouteTo(library)
	require.NoError(t, err)

	req, err := s.MoveMarkers(nil, &hall)
	require.NoError(t, err)
	assert.Equal(t, campus, req.Origin)
	assert.Equal(t, hall, req.Destination)
	assert.Equal(t, uint64(2), req.Generation)
}

func TestSession_SetMode(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	_, recompute, err := s.SetMode(model.TravelModeDriving)
	require.NoError(t, err)
	assert.False(t, recompute)
	assert.Equal(t, model.TravelModeDriving, s.Snapshot().TravelMode)

	_, err = s.RouteTo(library)
	require.NoError(t, err)

	req, recompute, err := s.SetMode(model.TravelModeWheelchair)
	require.NoError(t, err)
	assert.True(t, recompute)
	assert.Equal(t, model.TravelModeWheelchair, req.Mode)
}

func TestSession_ToggleStyle(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())

	require.NoError(t, s.ToggleStyle())
	snap := s.Snapshot()
	assert.False(t, snap.DarkStyle)
	assert.False(t, snap.Map.Dark)
	assert.Empty(t, snap.Map.Styles)
	assert.NotNil(t, snap.Map.Styles)
	assert.False(t, s.ViewState().DarkStyle)

	require.NoError(t, s.ToggleStyle())
	assert.NotEmpty(t, s.Snapshot().Map.Styles)
}

func TestSession_Recenter(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())
	_, err := s.SetLocation(hall, LocationDevice)
	require.NoError(t, err)

	require.NoError(t, s.Recenter())
	assert.Equal(t, hall, s.Snapshot().Map.Center)
}

func TestSession_PersistedStateRestored(t *testing.T) {
	persisted := model.Route{Origin: library, Destination: hall}
	state := model.ViewState{
		SchemaVersion: model.CurrentViewStateVersion,
		Route:         &persisted,
		Directions:    &model.Leg{Distance: model.TextValue{Text: "300 m"}},
		DarkStyle:     false,
		TravelMode:    model.TravelModeBicycling,
	}
	s := New("sess-1", "client-1", state, nil)

	_, ok := s.PersistedRoute()
	assert.False(t, ok)
	assert.Equal(t, "300 m", s.Snapshot().Overlay.Distance)

	require.NoError(t, s.BeginLoad())
	s.CompleteLoad(nil)
	_, err := s.SetLocation(campus, LocationDevice)
	require.NoError(t, err)

	route, ok := s.PersistedRoute()
	require.True(t, ok)
	req, err := s.Restore(route)
	require.NoError(t, err)
	assert.Equal(t, library, req.Origin)
	assert.Equal(t, hall, req.Destination)
	assert.Equal(t, model.TravelModeBicycling, req.Mode)

	snap := s.Snapshot()
	assert.False(t, snap.Map.Dark)
	assert.Equal(t, library, snap.Origin.Position)
}

func TestSession_OverlayRendering(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())
	_, _, err := s.SetMode(model.TravelModeWheelchair)
	require.NoError(t, err)
	req, err := s.RouteTo(library)
	require.NoError(t, err)

	leg := &model.Leg{
		EndLocation: library,
		Distance:    model.TextValue{Text: "0.4 km", Value: 400},
		Duration:    model.TextValue{Text: "5 mins", Value: 300},
		Steps: []model.Step{
			{Instructions: "<b>Walk</b> north toward Yale Rd", Distance: model.TextValue{Text: "0.4 km"}},
		},
	}
	require.True(t, s.ApplyRoute(req, leg))

	o := s.Snapshot().Overlay
	require.NotNil(t, o)
	assert.Equal(t, "5 mins", o.Duration)
	assert.Equal(t, model.TravelModeWheelchair, o.Mode)
	assert.NotEmpty(t, o.Disclaimer)
	require.Len(t, o.Steps, 1)
	assert.Equal(t, "<b>proceed</b> north toward Yale Rd", o.Steps[0].HTML)
	assert.Equal(t, "proceed north toward Yale Rd", o.Steps[0].Text)
}

func TestSession_Closed(t *testing.T) {
	s := renderedSession(t, model.DefaultViewState())
	s.Close()

	_, err := s.RouteTo(library)
	assert.ErrorIs(t, err, naverrors.ErrSessionClosed)
	assert.ErrorIs(t, s.ToggleStyle(), naverrors.ErrSessionClosed)
	assert.Equal(t, PhaseClosed, s.Snapshot().Phase)
}
