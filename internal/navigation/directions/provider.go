package directions

import (
	"context"

	"campusmove/pkg/model"
)

type Request struct {
	Origin      model.LatLng
	Destination model.LatLng
	Mode        model.TravelMode
}

// Provider computes the first leg of a route between two points.
//
// Load plays the part of loading the maps SDK: it fails when the provider has
// no credentials and is called once per session.
type Provider interface {
	Name() string
	Load(ctx context.Context) error
	Route(ctx context.Context, req Request) (*model.Leg, error)
}
