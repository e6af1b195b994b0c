package session

// StyleRule is one entry of a map style table.
type StyleRule struct {
	FeatureType string   `json:"featureType,omitempty"`
	ElementType string   `json:"elementType,omitempty"`
	Stylers     []Styler `json:"stylers"`
}

type Styler map[string]string

var darkStyle = []StyleRule{
	{ElementType: "geometry", Stylers: []Styler{{"color": "#242f3e"}}},
	{ElementType: "labels.text.stroke", Stylers: []Styler{{"color": "#242f3e"}}},
	{ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#746855"}}},
	{FeatureType: "administrative.locality", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#d59563"}}},
	{FeatureType: "poi", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#d59563"}}},
	{FeatureType: "poi.park", ElementType: "geometry", Stylers: []Styler{{"color": "#263c3f"}}},
	{FeatureType: "poi.park", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#6b9a76"}}},
	{FeatureType: "road", ElementType: "geometry", Stylers: []Styler{{"color": "#38414e"}}},
	{FeatureType: "road", ElementType: "geometry.stroke", Stylers: []Styler{{"color": "#212a37"}}},
	{FeatureType: "road", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#9ca5b3"}}},
	{FeatureType: "road.highway", ElementType: "geometry", Stylers: []Styler{{"color": "#746855"}}},
	{FeatureType: "road.highway", ElementType: "geometry.stroke", Stylers: []Styler{{"color": "#1f2835"}}},
	{FeatureType: "transit", ElementType: "geometry", Stylers: []Styler{{"color": "#2f3948"}}},
	{FeatureType: "transit.station", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#d59563"}}},
	{FeatureType: "water", ElementType: "geometry", Stylers: []Styler{{"color": "#17263c"}}},
	{FeatureType: "water", ElementType: "labels.text.fill", Stylers: []Styler{{"color": "#515c6d"}}},
}

// StyleTable returns the style rules for the given mode. The light style is
// the provider default, an empty table.
func StyleTable(dark bool) []StyleRule {
	if !dark {
		return []StyleRule{}
	}
	out := make([]StyleRule, len(darkStyle))
	copy(out, darkStyle)
	return out
}
