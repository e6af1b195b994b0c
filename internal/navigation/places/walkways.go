package places

import "campusmove/pkg/model"

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry coordinates are [lng, lat] pairs.
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type LinePaint struct {
	Color string `json:"line-color"`
	Width int    `json:"line-width"`
}

type WalkwayOverlay struct {
	Origin      model.LatLng      `json:"origin"`
	Destination model.LatLng      `json:"destination"`
	Zoom        int               `json:"zoom"`
	Profile     string            `json:"profile"`
	Unit        string            `json:"unit"`
	Paint       LinePaint         `json:"paint"`
	Data        FeatureCollection `json:"data"`
}

func dms(deg, min, sec float64) float64 {
	return deg + min/60 + sec/3600
}

var (
	walkwayOrigin      = model.LatLng{Lat: -dms(26, 11, 20), Lng: dms(28, 1, 39)}
	walkwayDestination = model.LatLng{Lat: -dms(26, 11, 40), Lng: dms(28, 1, 20)}
)

var walkwayLines = [][][2]float64{
	{
		{28.0275496235991, -26.191719275369223},
		{28.02747007853489, -26.191539827653727},
		{28.02743523365001, -26.19127569614509},
		{28.027381042422178, -26.190896506988956},
	},
	{
		{28.02654364409605, -26.191108133066066},
		{28.02640328890581, -26.190556208790973},
		{28.026275460481656, -26.18991551651743},
		{28.02607141043393, -26.189906502184492},
		{28.026039349645885, -26.189595221799458},
		{28.027132326991165, -26.189470322200677},
	},
	{
		{28.027050567549793, -26.188956510851526},
		{28.025878989901543, -26.18906331259837},
		{28.02487708444201, -26.18923853758075},
		{28.024924705040036, -26.189578312148782},
	},
	{
		{28.02575511000802, -26.18814538906875},
		{28.025864962648086, -26.188782278908292},
		{28.025901469672334, -26.189056231696256},
		{28.025925572247985, -26.189615921816973},
		{28.026037923743303, -26.189595926953743},
	},
	{
		{28.024872388441793, -26.18923142609126},
		{28.024735892340573, -26.188384860028393},
	},
	{
		{28.026392718765493, -26.190543241294442},
		{28.02559430985133, -26.190618836962116},
	},
	{
		{28.030632027115104, -26.19148783987091},
		{28.03046459897726, -26.18999271818867},
		{28.0304206507208, -26.189592709270705},
		{28.030298528339472, -26.189330734251655},
	},
	{
		{28.030553708489464, -26.190790430970544},
		{28.02980387206955, -26.19086205838824},
		{28.029464584336324, -26.190876518322327},
		{28.029000522632856, -26.19100326027082},
	},
}

// Walkways builds the walkway overlay as a GeoJSON feature collection of line strings.
func Walkways() WalkwayOverlay {
	features := make([]Feature, 0, len(walkwayLines))
	for _, line := range walkwayLines {
		coords := make([][2]float64, len(line))
		copy(coords, line)
		features = append(features, Feature{
			Type:       "Feature",
			Properties: map[string]any{},
			Geometry:   Geometry{Type: "LineString", Coordinates: coords},
		})
	}

	return WalkwayOverlay{
		Origin:      walkwayOrigin,
		Destination: walkwayDestination,
		Zoom:        15,
		Profile:     "mapbox/walking",
		Unit:        "metric",
		Paint:       LinePaint{Color: "#FFF", Width: 6},
		Data:        FeatureCollection{Type: "FeatureCollection", Features: features},
	}
}
