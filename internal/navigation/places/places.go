// Package places holds the static campus points of interest and the walkway
// overlay drawn on the map.
package places

import (
	"math"
	"sort"

	"campusmove/pkg/model"
)

// Fallback is used when the client cannot supply a device location.
var Fallback = model.LatLng{Lat: -26.1893, Lng: 28.0271}

const iconSize = 30

var (
	IconBicycle    = icon("https://img.icons8.com/?size=100&id=24077&format=png&color=000000")
	IconSkateboard = icon("https://img.icons8.com/?size=100&id=22466&format=png&color=000000")
	IconBus        = icon("https://img.icons8.com/?size=100&id=rbzJQybQmfOt&format=png&color=000000")
	IconDefault    = icon("https://img.icons8.com/?size=100&id=77850&format=png&color=000000")
)

const (
	BicycleStation    = "Bicycle Rental Station"
	SkateboardStation = "Skateboard Rental Station"
	BusStation        = "Bus Station"
)

var pins = []model.LocationPin{
	pin(BicycleStation, -26.188, 28.025),
	pin(SkateboardStation, -26.189, 28.028),
	pin(BicycleStation, -26.188, 28.029),
	pin(SkateboardStation, -26.192, 28.028),
	pin(BicycleStation, -26.191, 28.025),
	pin(SkateboardStation, -26.19, 28.026),
	pin(BicycleStation, -26.191, 28.029),
	pin(SkateboardStation, -26.189, 28.03),
	pin(BusStation, -26.1907, 28.0282),
}

func icon(url string) model.Icon {
	return model.Icon{URL: url, Width: iconSize, Height: iconSize}
}

func pin(name string, lat, lng float64) model.LocationPin {
	return model.LocationPin{Name: name, Lat: lat, Lng: lng, Icon: IconFor(name)}
}

// IconFor picks the marker icon from the pin name.
func IconFor(name string) model.Icon {
	switch name {
	case BicycleStation:
		return IconBicycle
	case SkateboardStation:
		return IconSkateboard
	case BusStation:
		return IconBus
	default:
		return IconDefault
	}
}

// Pins returns a copy of the static pins.
func Pins() []model.LocationPin {
	out := make([]model.LocationPin, len(pins))
	copy(out, pins)
	return out
}

type NearbyPin struct {
	model.LocationPin
	DistanceMeters float64 `json:"distance_meters"`
}

// Nearest returns up to limit pins ordered by great-circle distance from p.
func Nearest(p model.LatLng, limit int) []NearbyPin {
	out := make([]NearbyPin, 0, len(pins))
	for _, lp := range pins {
		out = append(out, NearbyPin{
			LocationPin:    lp,
			DistanceMeters: Haversine(p, model.LatLng{Lat: lp.Lat, Lng: lp.Lng}),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

const earthRadiusMeters = 6371000.0

func Haversine(a, b model.LatLng) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
