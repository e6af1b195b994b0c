package model

import (
	"strings"
	"time"
)

type LatLng struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type TravelMode string

const (
	TravelModeWalking    TravelMode = "WALKING"
	TravelModeDriving    TravelMode = "DRIVING"
	TravelModeBicycling  TravelMode = "BICYCLING"
	TravelModeTransit    TravelMode = "TRANSIT"
	TravelModeWheelchair TravelMode = "WHEELCHAIR"
)

func ParseTravelMode(s string) (TravelMode, bool) {
	m := TravelMode(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case TravelModeWalking, TravelModeDriving, TravelModeBicycling, TravelModeTransit, TravelModeWheelchair:
		return m, true
	}
	return "", false
}

// ProviderMode is the mode sent to a directions provider. Wheelchair routes
// are requested as walking routes and filtered afterwards.
func (m TravelMode) ProviderMode() TravelMode {
	if m == TravelModeWheelchair {
		return TravelModeWalking
	}
	return m
}

type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type Step struct {
	Instructions  string    `json:"instructions"`
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	StartLocation LatLng    `json:"start_location"`
	EndLocation   LatLng    `json:"end_location"`
	TravelMode    string    `json:"travel_mode,omitempty"`
	Maneuver      string    `json:"maneuver,omitempty"`
}

// Leg is the first leg of the first route of a directions response.
type Leg struct {
	StartAddress  string    `json:"start_address,omitempty"`
	EndAddress    string    `json:"end_address,omitempty"`
	StartLocation LatLng    `json:"start_location"`
	EndLocation   LatLng    `json:"end_location"`
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	Steps         []Step    `json:"steps"`
}

type Route struct {
	Origin      LatLng `json:"origin"`
	Destination LatLng `json:"destination"`
}

type LocationPin struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Icon Icon    `json:"icon"`
}

type Icon struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

const CurrentViewStateVersion = 1

// ViewState is the per-client state that survives across sessions.
type ViewState struct {
	SchemaVersion int        `json:"schema_version"`
	Route         *Route     `json:"route,omitempty"`
	Directions    *Leg       `json:"directions,omitempty"`
	DarkStyle     bool       `json:"dark_style"`
	TravelMode    TravelMode `json:"travel_mode"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func DefaultViewState() ViewState {
	return ViewState{
		SchemaVersion: CurrentViewStateVersion,
		DarkStyle:     true,
		TravelMode:    TravelModeWalking,
	}
}

type CreateSessionRequest struct {
	ClientID         string  `json:"client_id"`
	Location         *LatLng `json:"location,omitempty"`
	GeolocationError string  `json:"geolocation_error,omitempty"`
}

type LocationUpdateRequest struct {
	Location *LatLng `json:"location" validate:"required"`
}

type RouteToRequest struct {
	Destination *LatLng `json:"destination" validate:"required"`
}

type MoveMarkersRequest struct {
	Origin      *LatLng `json:"origin,omitempty" validate:"required_without=Destination"`
	Destination *LatLng `json:"destination,omitempty" validate:"required_without=Origin"`
}

type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,travelmode"`
}
