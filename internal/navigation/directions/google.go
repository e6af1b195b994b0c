package directions

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/client"
	"campusmove/pkg/model"
)

const (
	ProviderGoogle = "google"

	googleStatusOK          = "OK"
	googleStatusZeroResults = "ZERO_RESULTS"
	googleStatusNotFound    = "NOT_FOUND"
)

var googleModes = map[model.TravelMode]string{
	model.TravelModeWalking:   "walking",
	model.TravelModeDriving:   "driving",
	model.TravelModeBicycling: "bicycling",
	model.TravelModeTransit:   "transit",
}

type GoogleProvider struct {
	apiKey string
	http   *client.HttpClient
}

func NewGoogleProvider(directionsURL, apiKey string, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		apiKey: apiKey,
		http:   client.NewHttpClient(directionsURL, timeout),
	}
}

func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

func (p *GoogleProvider) Load(_ context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: google maps api key is empty", naverrors.ErrProviderNotConfigured)
	}
	return nil
}

type googleResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Routes       []googleRoute `json:"routes"`
}

type googleRoute struct {
	Legs []googleLeg `json:"legs"`
}

type googleLeg struct {
	StartAddress  string          `json:"start_address"`
	EndAddress    string          `json:"end_address"`
	StartLocation model.LatLng    `json:"start_location"`
	EndLocation   model.LatLng    `json:"end_location"`
	Distance      model.TextValue `json:"distance"`
	Duration      model.TextValue `json:"duration"`
	Steps         []googleStep    `json:"steps"`
}

type googleStep struct {
	HTMLInstructions string          `json:"html_instructions"`
	Distance         model.TextValue `json:"distance"`
	Duration         model.TextValue `json:"duration"`
	StartLocation    model.LatLng    `json:"start_location"`
	EndLocation      model.LatLng    `json:"end_location"`
	TravelMode       string          `json:"travel_mode"`
	Maneuver         string          `json:"maneuver"`
}

func (p *GoogleProvider) Route(ctx context.Context, req Request) (*model.Leg, error) {
	mode, ok := googleModes[req.Mode.ProviderMode()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", naverrors.ErrUnsupportedMode, req.Mode)
	}

	query := url.Values{}
	query.Set("origin", formatLatLng(req.Origin))
	query.Set("destination", formatLatLng(req.Destination))
	query.Set("mode", mode)
	query.Set("key", p.apiKey)

	resp, err := p.http.GET(ctx, "", query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", naverrors.ErrProviderFailure, err)
	}

	var body googleResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response (status %d): %w", naverrors.ErrProviderFailure, resp.StatusCode, err)
	}

	switch body.Status {
	case googleStatusOK:
	case googleStatusZeroResults, googleStatusNotFound:
		return nil, fmt.Errorf("%w: %s", naverrors.ErrNoRoute, body.Status)
	default:
		return nil, fmt.Errorf("%w: status %s: %s", naverrors.ErrProviderFailure, body.Status, body.ErrorMessage)
	}

	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: empty route list", naverrors.ErrNoRoute)
	}

	return body.Routes[0].Legs[0].toLeg(), nil
}

func (l googleLeg) toLeg() *model.Leg {
	steps := make([]model.Step, 0, len(l.Steps))
	for _, s := range l.Steps {
		steps = append(steps, model.Step{
			Instructions:  s.HTMLInstructions,
			Distance:      s.Distance,
			Duration:      s.Duration,
			StartLocation: s.StartLocation,
			EndLocation:   s.EndLocation,
			TravelMode:    s.TravelMode,
			Maneuver:      s.Maneuver,
		})
	}
	return &model.Leg{
		StartAddress:  l.StartAddress,
		EndAddress:    l.EndAddress,
		StartLocation: l.StartLocation,
		EndLocation:   l.EndLocation,
		Distance:      l.Distance,
		Duration:      l.Duration,
		Steps:         steps,
	}
}

func formatLatLng(p model.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
