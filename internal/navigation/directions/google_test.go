package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleOKBody = `{
  "status": "OK",
  "routes": [{
    "legs": [{
      "start_address": "Library Lawns",
      "end_address": "Great Hall",
      "start_location": {"lat": -26.1893, "lng": 28.0271},
      "end_location": {"lat": -26.1907, "lng": 28.0282},
      "distance": {"text": "0.3 km", "value": 310},
      "duration": {"text": "4 mins", "value": 240},
      "steps": [
        {
          "html_instructions": "Walk <b>south</b>",
          "distance": {"text": "0.2 km", "value": 200},
          "duration": {"text": "3 mins", "value": 160},
          "start_location": {"lat": -26.1893, "lng": 28.0271},
          "end_location": {"lat": -26.19, "lng": 28.0275},
          "travel_mode": "WALKING"
        },
        {
          "html_instructions": "Climb the stairs",
          "distance": {"text": "0.1 km", "value": 110},
          "duration": {"text": "1 min", "value": 80},
          "start_location": {"lat": -26.19, "lng": 28.0275},
          "end_location": {"lat": -26.1907, "lng": 28.0282},
          "travel_mode": "WALKING",
          "maneuver": "straight"
        }
      ]
    }]
  }]
}`

func newGoogleServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleProvider_Route(t *testing.T) {
	var gotQuery map[string]string
	srv := newGoogleServer(t, http.StatusOK, googleOKBody, func(r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"origin":      q.Get("origin"),
			"destination": q.Get("destination"),
			"mode":        q.Get("mode"),
			"key":         q.Get("key"),
		}
	})

	p := NewGoogleProvider(srv.URL, "test-key", time.Second)
	leg, err := p.Route(context.Background(), Request{
		Origin:      model.LatLng{Lat: -26.1893, Lng: 28.0271},
		Destination: model.LatLng{Lat: -26.1907, Lng: 28.0282},
		Mode:        model.TravelModeWheelchair,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"origin":      "-26.1893,28.0271",
		"destination": "-26.1907,28.0282",
		"mode":        "walking",
		"key":         "test-key",
	}, gotQuery)
	assert.Equal(t, "0.3 km", leg.Distance.Text)
	assert.Equal(t, 240, leg.Duration.Value)
	assert.Equal(t, model.LatLng{Lat: -26.1907, Lng: 28.0282}, leg.EndLocation)
	require.Len(t, leg.Steps, 2)
	assert.Equal(t, "Walk <b>south</b>", leg.Steps[0].Instructions)
	assert.Equal(t, "straight", leg.Steps[1].Maneuver)
}

func TestGoogleProvider_RouteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		mode    model.TravelMode
		wantErr error
	}{
		{
			name:    "zero results",
			status:  http.StatusOK,
			body:    `{"status":"ZERO_RESULTS","routes":[]}`,
			mode:    model.TravelModeWalking,
			wantErr: naverrors.ErrNoRoute,
		},
		{
			name:    "ok without routes",
			status:  http.StatusOK,
			body:    `{"status":"OK","routes":[]}`,
			mode:    model.TravelModeWalking,
			wantErr: naverrors.ErrNoRoute,
		},
		{
			name:    "request denied",
			status:  http.StatusOK,
			body:    `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`,
			mode:    model.TravelModeDriving,
			wantErr: naverrors.ErrProviderFailure,
		},
		{
			name:    "malformed body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			mode:    model.TravelModeTransit,
			wantErr: naverrors.ErrProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGoogleServer(t, tt.status, tt.body, nil)
			p := NewGoogleProvider(srv.URL, "k", time.Second)

			leg, err := p.Route(context.Background(), Request{Mode: tt.mode})
			assert.Nil(t, leg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGoogleProvider_Load(t *testing.T) {
	assert.ErrorIs(t, NewGoogleProvider("http://unused", "", time.Second).Load(context.Background()), naverrors.ErrProviderNotConfigured)
	assert.NoError(t, NewGoogleProvider("http://unused", "k", time.Second).Load(context.Background()))
}

func TestGoogleProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGoogleProvider(url, "google-secret-key", time.Second).Route(context.Background(), Request{
		Origin:      model.LatLng{Lat: 1, Lng: 2},
		Destination: model.LatLng{Lat: 3, Lng: 4},
		Mode:        model.TravelModeWalking,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, naverrors.ErrProviderFailure)
	assert.NotContains(t, err.Error(), "google-secret-key")
	assert.NotContains(t, err.Error(), "key=")
}
