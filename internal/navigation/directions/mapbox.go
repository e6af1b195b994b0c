package directions

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/client"
	"campusmove/pkg/model"
)

const (
	ProviderMapbox = "mapbox"

	mapboxCodeOK        = "Ok"
	mapboxCodeNoRoute   = "NoRoute"
	mapboxCodeNoSegment = "NoSegment"
)

// Mapbox has no public transit profile.
var mapboxProfiles = map[model.TravelMode]string{
	model.TravelModeWalking:   "walking",
	model.TravelModeDriving:   "driving",
	model.TravelModeBicycling: "cycling",
}

type MapboxProvider struct {
	token string
	http  *client.HttpClient
}

func NewMapboxProvider(directionsURL, token string, timeout time.Duration) *MapboxProvider {
	return &MapboxProvider{
		token: token,
		http:  client.NewHttpClient(directionsURL, timeout),
	}
}

func (p *MapboxProvider) Name() string {
	return ProviderMapbox
}

func (p *MapboxProvider) Load(_ context.Context) error {
	if p.token == "" {
		return fmt.Errorf("%w: mapbox access token is empty", naverrors.ErrProviderNotConfigured)
	}
	return nil
}

type mapboxResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Routes    []mapboxRoute    `json:"routes"`
	Waypoints []mapboxWaypoint `json:"waypoints"`
}

type mapboxRoute struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Legs     []mapboxLeg `json:"legs"`
}

type mapboxLeg struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Summary  string       `json:"summary"`
	Steps    []mapboxStep `json:"steps"`
}

type mapboxStep struct {
	Distance float64        `json:"distance"`
	Duration float64        `json:"duration"`
	Mode     string         `json:"mode"`
	Name     string         `json:"name"`
	Maneuver mapboxManeuver `json:"maneuver"`
}

type mapboxManeuver struct {
	Instruction string     `json:"instruction"`
	Type        string     `json:"type"`
	Modifier    string     `json:"modifier"`
	Location    [2]float64 `json:"location"`
}

type mapboxWaypoint struct {
	Name     string     `json:"name"`
	Location [2]float64 `json:"location"`
}

func (p *MapboxProvider) Route(ctx context.Context, req Request) (*model.Leg, error) {
	profile, ok := mapboxProfiles[req.Mode.ProviderMode()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", naverrors.ErrUnsupportedMode, req.Mode)
	}

	path := "/" + profile + "/" + formatLngLat(req.Origin) + ";" + formatLngLat(req.Destination)
	query := url.Values{}
	query.Set("steps", "true")
	query.Set("overview", "false")
	query.Set("access_token", p.token)

	resp, err := p.http.GET(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", naverrors.ErrProviderFailure, err)
	}

	var body mapboxResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response (status %d): %w", naverrors.ErrProviderFailure, resp.StatusCode, err)
	}

	switch {
	case body.Code == mapboxCodeNoRoute || body.Code == mapboxCodeNoSegment:
		return nil, fmt.Errorf("%w: %s", naverrors.ErrNoRoute, body.Code)
	case !resp.IsSuccess() || body.Code != mapboxCodeOK:
		return nil, fmt.Errorf("%w: status %d code %s: %s", naverrors.ErrProviderFailure, resp.StatusCode, body.Code, body.Message)
	}

	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: empty route list", naverrors.ErrNoRoute)
	}

	return toMapboxLeg(body.Routes[0].Legs[0], body.Waypoints, req), nil
}

func toMapboxLeg(l mapboxLeg, waypoints []mapboxWaypoint, req Request) *model.Leg {
	leg := &model.Leg{
		StartLocation: req.Origin,
		EndLocation:   req.Destination,
		Distance:      distanceText(l.Distance),
		Duration:      durationText(l.Duration),
		Steps:         make([]model.Step, 0, len(l.Steps)),
	}
	if len(waypoints) >= 2 {
		first, last := waypoints[0], waypoints[len(waypoints)-1]
		leg.StartLocation = fromLngLat(first.Location)
		leg.EndLocation = fromLngLat(last.Location)
		leg.StartAddress = first.Name
		leg.EndAddress = last.Name
	}

	for i, s := range l.Steps {
		start := fromLngLat(s.Maneuver.Location)
		end := start
		if i+1 < len(l.Steps) {
			end = fromLngLat(l.Steps[i+1].Maneuver.Location)
		}
		leg.Steps = append(leg.Steps, model.Step{
			Instructions:  s.Maneuver.Instruction,
			Distance:      distanceText(s.Distance),
			Duration:      durationText(s.Duration),
			StartLocation: start,
			EndLocation:   end,
			TravelMode:    s.Mode,
			Maneuver:      s.Maneuver.Type,
		})
	}
	return leg
}

func formatLngLat(p model.LatLng) string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

func fromLngLat(c [2]float64) model.LatLng {
	return model.LatLng{Lat: c[1], Lng: c[0]}
}

func distanceText(meters float64) model.TextValue {
	v := int(math.Round(meters))
	if v < 1000 {
		return model.TextValue{Text: fmt.Sprintf("%d m", v), Value: v}
	}
	return model.TextValue{Text: fmt.Sprintf("%.1f km", float64(v)/1000), Value: v}
}

func durationText(seconds float64) model.TextValue {
	v := int(math.Round(seconds))
	mins := int(math.Round(seconds / 60))
	if mins < 1 {
		mins = 1
	}
	hours, mins := mins/60, mins%60

	var text string
	switch {
	case hours == 0:
		text = plural(mins, "min")
	case mins == 0:
		text = plural(hours, "hour")
	default:
		text = plural(hours, "hour") + " " + plural(mins, "min")
	}
	return model.TextValue{Text: text, Value: v}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
