package session

import (
	"strconv"
	"sync"
	"time"

	"campusmove/internal/navigation/directions"
	naverrors "campusmove/internal/navigation/errors"
	"campusmove/internal/navigation/places"
	"campusmove/pkg/model"
	"campusmove/pkg/sanitizer"
)

type Phase string

const (
	PhaseUnloaded      Phase = "Unloaded"
	PhaseLoadingSDK    Phase = "LoadingSDK"
	PhaseLoadFailed    Phase = "LoadFailed"
	PhaseSDKReady      Phase = "SDKReady"
	PhaseMapRendered   Phase = "MapRendered"
	PhaseRouteComputed Phase = "RouteComputed"
	PhaseClosed        Phase = "Closed"
)

const (
	LocationDevice   = "device"
	LocationFallback = "fallback"

	DefaultZoom = 17
)

type Controls struct {
	Fullscreen bool `json:"fullscreen"`
	MapType    bool `json:"map_type"`
	Zoom       bool `json:"zoom"`
	StreetView bool `json:"street_view"`
}

var defaultControls = Controls{Zoom: true, StreetView: true}

type MapView struct {
	Center   model.LatLng `json:"center"`
	Zoom     int          `json:"zoom"`
	Dark     bool         `json:"dark"`
	Styles   []StyleRule  `json:"styles"`
	Controls Controls     `json:"controls"`
}

type MarkerKind string

const (
	MarkerUser        MarkerKind = "user"
	MarkerOrigin      MarkerKind = "origin"
	MarkerDestination MarkerKind = "destination"
	MarkerPOI         MarkerKind = "poi"
)

type Symbol struct {
	Path         string  `json:"path"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
	StrokeColor  string  `json:"stroke_color"`
	StrokeWeight int     `json:"stroke_weight"`
	Scale        int     `json:"scale"`
}

var userSymbol = Symbol{
	Path:         "circle",
	FillColor:    "#4285F4",
	FillOpacity:  1,
	StrokeColor:  "#FFFFFF",
	StrokeWeight: 2,
	Scale:        7,
}

type Marker struct {
	Kind      MarkerKind   `json:"kind"`
	Position  model.LatLng `json:"position"`
	Title     string       `json:"title,omitempty"`
	Draggable bool         `json:"draggable"`
	Icon      *model.Icon  `json:"icon,omitempty"`
	Symbol    *Symbol      `json:"symbol,omitempty"`
	Info      *InfoWindow  `json:"info,omitempty"`
}

// InfoWindow is the popup opened when a POI marker is clicked.
type InfoWindow struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func poiInfo(p model.LocationPin) *InfoWindow {
	return &InfoWindow{
		Heading: p.Name,
		Body:    "Lat: " + formatCoord(p.Lat) + ", Lng: " + formatCoord(p.Lng),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type OverlayStep struct {
	HTML     string `json:"html"`
	Text     string `json:"text"`
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

type Overlay struct {
	Distance   string           `json:"distance"`
	Duration   string           `json:"duration"`
	Steps      []OverlayStep    `json:"steps"`
	Mode       model.TravelMode `json:"mode"`
	Disclaimer string           `json:"disclaimer,omitempty"`
}

type Snapshot struct {
	ID             string           `json:"id"`
	ClientID       string           `json:"client_id"`
	Phase          Phase            `json:"phase"`
	LoadError      string           `json:"load_error,omitempty"`
	Location       *model.LatLng    `json:"location,omitempty"`
	LocationSource string           `json:"location_source,omitempty"`
	Map            *MapView         `json:"map,omitempty"`
	UserMarker     *Marker          `json:"user_marker,omitempty"`
	Origin         *Marker          `json:"origin,omitempty"`
	Destination    *Marker          `json:"destination,omitempty"`
	POIs           []Marker         `json:"pois"`
	Overlay        *Overlay         `json:"overlay,omitempty"`
	DarkStyle      bool             `json:"dark_style"`
	TravelMode     model.TravelMode `json:"travel_mode"`
	Generation     uint64           `json:"generation"`
	CreatedAt      time.Time        `json:"created_at"`
}

// RouteRequest is a directions request issued by a session. Generation
// identifies it; only the latest generation may update the session.
type RouteRequest struct {
	Generation  uint64
	Origin      model.LatLng
	Destination model.LatLng
	Mode        model.TravelMode
}

// Session is the server-side state of one open map. All methods are safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	clientID string
	phase    Phase
	loadErr  error

	location       *model.LatLng
	locationSource string
	view           *MapView
	pois           []model.LocationPin

	origin      *model.LatLng
	destination *model.LatLng
	route       *model.Route
	directions  *model.Leg
	legMode     model.TravelMode

	dark       bool
	mode       model.TravelMode
	generation uint64

	createdAt  time.Time
	lastActive time.Time
	now        func() time.Time
}

// New starts a session in the Unloaded phase from the client's persisted state.
func New(id, clientID string, state model.ViewState, pois []model.LocationPin) *Session {
	mode := state.TravelMode
	if _, ok := model.ParseTravelMode(string(mode)); !ok {
		mode = model.TravelModeWalking
	}

	s := &Session{
		id:         id,
		clientID:   clientID,
		phase:      PhaseUnloaded,
		pois:       pois,
		route:      state.Route,
		directions: state.Directions,
		legMode:    mode,
		dark:       state.DarkStyle,
		mode:       mode,
		now:        time.Now,
	}
	s.createdAt = s.now()
	s.lastActive = s.createdAt
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ClientID() string {
	return s.clientID
}

func (s *Session) BeginLoad() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return naverrors.ErrSessionClosed
	}
	if s.phase == PhaseUnloaded {
		s.phase = PhaseLoadingSDK
	}
	s.touch()
	return nil
}

// CompleteLoad records the outcome of loading the provider. A failed load is
// final; the map is never rendered for this session. It reports whether the
// map was rendered as a result.
func (s *Session) CompleteLoad(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLoadingSDK {
		return false
	}
	if err != nil {
		s.loadErr = err
		s.phase = PhaseLoadFailed
		return false
	}
	s.phase = PhaseSDKReady
	return s.tryRender()
}

// SetLocation records the user's position. The first position after the
// provider is loaded renders the map; later ones only move the user marker.
func (s *Session) SetLocation(loc model.LatLng, source string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return false, naverrors.ErrSessionClosed
	}
	s.location = &loc
	s.locationSource = source
	s.touch()
	return s.tryRender(), nil
}

func (s *Session) tryRender() bool {
	if s.phase != PhaseSDKReady || s.location == nil || s.view != nil {
		return false
	}
	s.view = &MapView{
		Center:   *s.location,
		Zoom:     DefaultZoom,
		Dark:     s.dark,
		Styles:   StyleTable(s.dark),
		Controls: defaultControls,
	}
	s.phase = PhaseMapRendered
	return true
}

func (s *Session) ready() bool {
	return s.view != nil && s.location != nil
}

// PersistedRoute returns the route restored from storage, if the map is up
// and one exists.
func (s *Session) PersistedRoute() (model.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == nil || s.route == nil {
		return model.Route{}, false
	}
	return *s.route, true
}

// RouteTo places the origin marker on the user's location and the destination
// marker at dest.
func (s *Session) RouteTo(dest model.LatLng) (RouteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return RouteRequest{}, naverrors.ErrSessionClosed
	}
	if !s.ready() {
		return RouteRequest{}, naverrors.ErrNotReady
	}
	return s.placeEndpoints(*s.location, dest), nil
}

// Restore places persisted endpoints verbatim, without consulting the
// user's location.
func (s *Session) Restore(route model.Route) (RouteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return RouteRequest{}, naverrors.ErrSessionClosed
	}
	if s.view == nil {
		return RouteRequest{}, naverrors.ErrNotReady
	}
	return s.placeEndpoints(route.Origin, route.Destination), nil
}

func (s *Session) placeEndpoints(origin, dest model.LatLng) RouteRequest {
	s.origin = &origin
	s.destination = &dest
	s.route = &model.Route{Origin: origin, Destination: dest}
	return s.nextRequest()
}

// MoveMarkers applies a drag of either endpoint.
func (s *Session) MoveMarkers(origin, dest *model.LatLng) (RouteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return RouteRequest{}, naverrors.ErrSessionClosed
	}
	if s.origin == nil || s.destination == nil {
		return RouteRequest{}, naverrors.ErrNoMarkers
	}
	if origin != nil {
		o := *origin
		s.origin = &o
	}
	if dest != nil {
		d := *dest
		s.destination = &d
	}
	return s.nextRequest(), nil
}

// SetMode changes the travel mode. When both markers are placed it returns a
// request to recompute the route in the new mode.
func (s *Session) SetMode(mode model.TravelMode) (RouteRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return RouteRequest{}, false, naverrors.ErrSessionClosed
	}
	s.mode = mode
	if s.origin == nil || s.destination == nil {
		s.touch()
		return RouteRequest{}, false, nil
	}
	return s.nextRequest(), true, nil
}

func (s *Session) nextRequest() RouteRequest {
	s.generation++
	s.touch()
	return RouteRequest{
		Generation:  s.generation,
		Origin:      *s.origin,
		Destination: *s.destination,
		Mode:        s.mode,
	}
}

// ApplyRoute stores a computed leg. It returns false, leaving the session
// untouched, when a newer request has been issued since req.
func (s *Session) ApplyRoute(req RouteRequest, leg *model.Leg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed || req.Generation != s.generation {
		return false
	}
	start, end := leg.StartLocation, leg.EndLocation
	s.origin = &start
	s.destination = &end
	s.route = &model.Route{Origin: start, Destination: end}
	s.directions = leg
	s.legMode = req.Mode
	s.phase = PhaseRouteComputed
	s.touch()
	return true
}

// IsCurrent reports whether req is still the latest request.
func (s *Session) IsCurrent(req RouteRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return req.Generation == s.generation
}

// ToggleStyle flips between the dark and light style and re-applies the
// style table to the live map view.
func (s *Session) ToggleStyle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return naverrors.ErrSessionClosed
	}
	s.dark = !s.dark
	if s.view != nil {
		s.view.Dark = s.dark
		s.view.Styles = StyleTable(s.dark)
	}
	s.touch()
	return nil
}

// Recenter pans the map to the user's location. Without a map or a location
// it does nothing.
func (s *Session) Recenter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return naverrors.ErrSessionClosed
	}
	if s.ready() {
		s.view.Center = *s.location
	}
	s.touch()
	return nil
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseClosed
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.lastActive = s.now()
}

// ViewState is the part of the session that outlives it.
func (s *Session) ViewState() model.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs := model.DefaultViewState()
	vs.DarkStyle = s.dark
	vs.TravelMode = s.mode
	vs.UpdatedAt = s.now().UTC()
	if s.route != nil {
		r := *s.route
		vs.Route = &r
	}
	vs.Directions = s.directions
	return vs
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:             s.id,
		ClientID:       s.clientID,
		Phase:          s.phase,
		LocationSource: s.locationSource,
		POIs:           []Marker{},
		DarkStyle:      s.dark,
		TravelMode:     s.mode,
		Generation:     s.generation,
		CreatedAt:      s.createdAt,
	}
	if s.loadErr != nil {
		snap.LoadError = s.loadErr.Error()
	}
	if s.location != nil {
		loc := *s.location
		snap.Location = &loc
	}
	if s.directions != nil {
		snap.Overlay = renderOverlay(s.directions, s.legMode)
	}
	if s.view == nil {
		return snap
	}

	view := *s.view
	view.Styles = append([]StyleRule{}, s.view.Styles...)
	snap.Map = &view
	if s.location != nil {
		sym := userSymbol
		snap.UserMarker = &Marker{Kind: MarkerUser, Position: *s.location, Title: "Your location", Symbol: &sym}
	}
	if s.origin != nil {
		snap.Origin = &Marker{Kind: MarkerOrigin, Position: *s.origin, Title: "Origin", Draggable: true}
	}
	if s.destination != nil {
		snap.Destination = &Marker{Kind: MarkerDestination, Position: *s.destination, Title: "Destination", Draggable: true}
	}
	for _, p := range s.pois {
		icon := p.Icon
		snap.POIs = append(snap.POIs, Marker{
			Kind:     MarkerPOI,
			Position: model.LatLng{Lat: p.Lat, Lng: p.Lng},
			Title:    p.Name,
			Icon:     &icon,
			Info:     poiInfo(p),
		})
	}
	return snap
}

func renderOverlay(leg *model.Leg, mode model.TravelMode) *Overlay {
	o := &Overlay{
		Distance: leg.Distance.Text,
		Duration: leg.Duration.Text,
		Steps:    make([]OverlayStep, 0, len(leg.Steps)),
		Mode:     mode,
	}
	for _, st := range leg.Steps {
		html := sanitizer.ReplaceFold(st.Instructions, "walk", "proceed")
		o.Steps = append(o.Steps, OverlayStep{
			HTML:     html,
			Text:     sanitizer.StripTags(html),
			Distance: st.Distance.Text,
			Duration: st.Duration.Text,
		})
	}
	if mode == model.TravelModeWheelchair {
		o.Disclaimer = directions.Disclaimer
	}
	return o
}

// DefaultPOIs is the pin set every session shows.
func DefaultPOIs() []model.LocationPin {
	return places.Pins()
}
