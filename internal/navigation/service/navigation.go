package service

import (
	"context"
	"errors"
	"time"

	"campusmove/internal/navigation/directions"
	naverrors "campusmove/internal/navigation/errors"
	"campusmove/internal/navigation/places"
	"campusmove/internal/navigation/repository"
	"campusmove/internal/navigation/session"
	"campusmove/internal/navigation/validator"
	"campusmove/pkg/config"
	apperrors "campusmove/pkg/errors"
	"campusmove/pkg/metrics"
	"campusmove/pkg/model"
	"campusmove/pkg/sanitizer"

	"github.com/google/uuid"
)

const (
	MessageNoRoute  = "No route could be found between the origin and destination."
	MessageNotReady = "Unable to access your location or the map is not loaded. Please try again."

	messageNoMarkers        = "No route markers to move"
	messageUnsupportedMode  = "Travel mode is not supported by the directions provider"
	messageDirectionsFailed = "Directions request failed"
	directionsServiceName   = "Directions provider"
	messageViewStateMissing = "View state not found"
	messageClientIDRequired = "client id is required"
)

const (
	statusOK          = "ok"
	statusNoRoute     = "no_route"
	statusUnsupported = "unsupported"
	statusError       = "error"
)

type NavigationService interface {
	CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error)
	GetSession(ctx context.Context, id string) (*session.Snapshot, error)
	UpdateLocation(ctx context.Context, id string, req *model.LocationUpdateRequest) (*session.Snapshot, error)
	RouteTo(ctx context.Context, id string, req *model.RouteToRequest) (*session.Snapshot, error)
	MoveMarkers(ctx context.Context, id string, req *model.MoveMarkersRequest) (*session.Snapshot, error)
	SetMode(ctx context.Context, id string, req *model.SetModeRequest) (*session.Snapshot, error)
	ToggleStyle(ctx context.Context, id string) (*session.Snapshot, error)
	Recenter(ctx context.Context, id string) (*session.Snapshot, error)
	CloseSession(ctx context.Context, id string) error

	Locations(ctx context.Context) []model.LocationPin
	NearestLocations(ctx context.Context, point model.LatLng, limit int) ([]places.NearbyPin, error)
	Walkways(ctx context.Context) places.WalkwayOverlay

	GetClientState(ctx context.Context, clientID string) (*model.ViewState, error)
	ImportClientState(ctx context.Context, clientID string, raw []byte) (*model.ViewState, error)

	Close() error
}

type navigationService struct {
	provider  directions.Provider
	repo      repository.ViewStateRepository
	validator *validator.NavigationValidator
	sessions  *registry
	cfg       *config.Config
}

func NewNavigationService(
	provider directions.Provider,
	repo repository.ViewStateRepository,
	validator *validator.NavigationValidator,
	cfg *config.Config,
) NavigationService {
	return &navigationService{
		provider:  provider,
		repo:      repo,
		validator: validator,
		sessions:  newRegistry(cfg.SessionIdleTTL),
		cfg:       cfg,
	}
}

// CreateSession opens a map for a client. The provider is loaded once; if that
// fails the session stays without a map. A persisted route is restored with
// its own endpoints and recomputed.
func (s *navigationService) CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*session.Snapshot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	clientID := sanitizer.NormalizeClientID(req.ClientID)
	if clientID == "" {
		clientID = uuid.NewString()
	}

	sess := session.New(uuid.NewString(), clientID, s.loadViewState(ctx, clientID), session.DefaultPOIs())
	s.sessions.add(sess)
	log := s.cfg.Log.With("session_id", sess.ID(), "client_id", clientID)

	if err := sess.BeginLoad(); err != nil {
		return nil, s.translateSessionError(sess.ID(), err)
	}
	loadErr := s.provider.Load(ctx)
	if loadErr != nil {
		log.Error("Failed to load directions provider",
			"provider", s.provider.Name(),
			"error", loadErr,
		)
	}
	sess.CompleteLoad(loadErr)

	loc, source := places.Fallback, session.LocationFallback
	switch {
	case req.GeolocationError != "":
		log.Warn("Geolocation failed, using fallback location", "error", req.GeolocationError)
	case req.Location == nil:
		log.Warn("No location supplied, using fallback location")
	default:
		loc, source = *req.Location, session.LocationDevice
	}
	if _, err := sess.SetLocation(loc, source); err != nil {
		return nil, s.translateSessionError(sess.ID(), err)
	}

	if route, ok := sess.PersistedRoute(); ok {
		routeReq, err := sess.Restore(route)
		if err == nil {
			err = s.computeRoute(ctx, sess, routeReq)
		}
		if err != nil {
			log.Warn("Failed to restore persisted route", "error", err)
		}
	}

	log.Info("Navigation session created",
		"location_source", source,
		"sessions", s.sessions.len(),
	)
	return snapshot(sess), nil
}

func (s *navigationService) GetSession(_ context.Context, id string) (*session.Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// UpdateLocation moves the user marker only. The map is not rebuilt and the
// route is not recomputed.
func (s *navigationService) UpdateLocation(_ context.Context, id string, req *model.LocationUpdateRequest) (*session.Snapshot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if _, err := sess.SetLocation(*req.Location, session.LocationDevice); err != nil {
		return nil, s.translateSessionError(id, err)
	}
	return snapshot(sess), nil
}

func (s *navigationService) RouteTo(ctx context.Context, id string, req *model.RouteToRequest) (*session.Snapshot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	routeReq, err := sess.RouteTo(*req.Destination)
	if err != nil {
		return nil, s.translateSessionError(id, err)
	}
	s.persist(ctx, sess)

	if err := s.computeRoute(ctx, sess, routeReq); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *navigationService) MoveMarkers(ctx context.Context, id string, req *model.MoveMarkersRequest) (*session.Snapshot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	routeReq, err := sess.MoveMarkers(req.Origin, req.Destination)
	if err != nil {
		return nil, s.translateSessionError(id, err)
	}
	if err := s.computeRoute(ctx, sess, routeReq); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *navigationService) SetMode(ctx context.Context, id string, req *model.SetModeRequest) (*session.Snapshot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	mode, _ := model.ParseTravelMode(req.Mode)

	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	routeReq, recompute, err := sess.SetMode(mode)
	if err != nil {
		return nil, s.translateSessionError(id, err)
	}
	if !recompute {
		s.persist(ctx, sess)
		return snapshot(sess), nil
	}
	if err := s.computeRoute(ctx, sess, routeReq); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *navigationService) ToggleStyle(ctx context.Context, id string) (*session.Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := sess.ToggleStyle(); err != nil {
		return nil, s.translateSessionError(id, err)
	}
	s.persist(ctx, sess)
	return snapshot(sess), nil
}

func (s *navigationService) Recenter(_ context.Context, id string) (*session.Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Recenter(); err != nil {
		return nil, s.translateSessionError(id, err)
	}
	return snapshot(sess), nil
}

func (s *navigationService) CloseSession(_ context.Context, id string) error {
	sess, ok := s.sessions.remove(id)
	if !ok {
		return apperrors.NotFoundWithID("Navigation session", id)
	}
	sess.Close()
	s.cfg.Log.Info("Navigation session closed", "session_id", id, "sessions", s.sessions.len())
	return nil
}

func (s *navigationService) Locations(_ context.Context) []model.LocationPin {
	return places.Pins()
}

func (s *navigationService) NearestLocations(_ context.Context, point model.LatLng, limit int) ([]places.NearbyPin, error) {
	if err := s.validator.ValidateLatLng(point); err != nil {
		return nil, invalidInput("Invalid coordinates", err)
	}
	total := len(places.Pins())
	if limit <= 0 {
		limit = total
	}
	return places.Nearest(point, sanitizer.ClampInt(limit, 1, total)), nil
}

func (s *navigationService) Walkways(_ context.Context) places.WalkwayOverlay {
	return places.Walkways()
}

func (s *navigationService) GetClientState(ctx context.Context, clientID string) (*model.ViewState, error) {
	clientID = sanitizer.NormalizeClientID(clientID)
	if clientID == "" {
		return nil, apperrors.InvalidInput(messageClientIDRequired)
	}

	state, err := s.repo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, naverrors.ErrViewStateNotFound) {
			return nil, apperrors.NotFound(messageViewStateMissing)
		}
		s.cfg.Log.Error("Failed to read view state", "client_id", clientID, "error", err)
		return nil, apperrors.Internal("Failed to read view state", err)
	}
	return state, nil
}

// ImportClientState stores a client's view state, migrating the legacy
// browser storage blob when that is what was sent.
func (s *navigationService) ImportClientState(ctx context.Context, clientID string, raw []byte) (*model.ViewState, error) {
	clientID = sanitizer.NormalizeClientID(clientID)
	if clientID == "" {
		return nil, apperrors.InvalidInput(messageClientIDRequired)
	}

	state, err := repository.DecodeViewState(raw)
	if err != nil {
		s.cfg.Log.Warn("Rejected view state import", "client_id", clientID, "error", err)
		if errors.Is(err, naverrors.ErrUnsupportedSchemaVersion) {
			return nil, apperrors.Validation("Unsupported view state schema version", map[string]any{
				"error":                  err.Error(),
				"current_schema_version": model.CurrentViewStateVersion,
			})
		}
		return nil, invalidInput("Invalid view state", err)
	}

	state.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, clientID, state); err != nil {
		s.cfg.Log.Error("Failed to save view state", "client_id", clientID, "error", err)
		return nil, apperrors.Internal("Failed to save view state", err)
	}

	s.cfg.Log.Info("View state imported", "client_id", clientID, "has_route", state.Route != nil)
	return &state, nil
}

func (s *navigationService) Close() error {
	s.sessions.stop()
	return nil
}

// computeRoute calls the provider outside the session lock. The response is
// applied only if no newer request was issued in the meantime.
func (s *navigationService) computeRoute(ctx context.Context, sess *session.Session, req session.RouteRequest) error {
	start := time.Now()
	leg, err := s.provider.Route(ctx, directions.Request{
		Origin:      req.Origin,
		Destination: req.Destination,
		Mode:        req.Mode,
	})
	metrics.RecordDirectionsRequest(s.provider.Name(), routeStatus(err), time.Since(start))

	if err != nil {
		if !sess.IsCurrent(req) {
			s.discardStale(sess, req)
			return nil
		}
		return s.translateRouteError(sess, req, err)
	}

	if req.Mode == model.TravelModeWheelchair {
		leg.Steps = directions.FilterWheelchairSteps(leg.Steps)
	}
	if !sess.ApplyRoute(req, leg) {
		s.discardStale(sess, req)
		return nil
	}

	s.persist(ctx, sess)
	return nil
}

func (s *navigationService) discardStale(sess *session.Session, req session.RouteRequest) {
	metrics.DirectionsStaleResponses.Inc()
	s.cfg.Log.Debug("Discarding superseded directions response",
		"session_id", sess.ID(),
		"generation", req.Generation,
	)
}

// persist is best effort: a failed write costs the client its restored
// route, not the current request.
func (s *navigationService) persist(ctx context.Context, sess *session.Session) {
	if err := s.repo.Save(ctx, sess.ClientID(), sess.ViewState()); err != nil {
		s.cfg.Log.Error("Failed to persist view state",
			"session_id", sess.ID(),
			"client_id", sess.ClientID(),
			"error", err,
		)
	}
}

func (s *navigationService) loadViewState(ctx context.Context, clientID string) model.ViewState {
	state, err := s.repo.Get(ctx, clientID)
	switch {
	case err == nil:
		return *state
	case errors.Is(err, naverrors.ErrViewStateNotFound):
	default:
		s.cfg.Log.Error("Failed to load view state, using defaults", "client_id", clientID, "error", err)
	}
	return model.DefaultViewState()
}

func (s *navigationService) session(id string) (*session.Session, error) {
	sess, ok := s.sessions.get(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Navigation session", id)
	}
	return sess, nil
}

func (s *navigationService) validate(req any) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Navigation request validation failed", "error", err)
		return invalidInput("Invalid navigation request", err)
	}
	return nil
}

func (s *navigationService) translateSessionError(id string, err error) error {
	switch {
	case errors.Is(err, naverrors.ErrNotReady):
		s.cfg.Log.Warn("Route requested before location or map was available", "session_id", id)
		return apperrors.Conflict(MessageNotReady)
	case errors.Is(err, naverrors.ErrNoMarkers):
		return apperrors.Conflict(messageNoMarkers)
	case errors.Is(err, naverrors.ErrSessionClosed):
		return apperrors.NotFoundWithID("Navigation session", id)
	default:
		return apperrors.Internal("Internal server error", err)
	}
}

func (s *navigationService) translateRouteError(sess *session.Session, req session.RouteRequest, err error) error {
	log := s.cfg.Log.With(
		"session_id", sess.ID(),
		"provider", s.provider.Name(),
		"mode", req.Mode,
		"error", err,
	)
	switch {
	case errors.Is(err, naverrors.ErrNoRoute):
		log.Warn("No route found")
		return apperrors.NoRoute(MessageNoRoute)
	case errors.Is(err, naverrors.ErrUnsupportedMode):
		log.Warn("Travel mode not supported")
		return apperrors.InvalidInput(messageUnsupportedMode).WithDetails(map[string]any{
			"mode":     string(req.Mode),
			"provider": s.provider.Name(),
		})
	case errors.Is(err, naverrors.ErrProviderNotConfigured):
		log.Error("Directions provider not configured")
		return apperrors.Conflict(MessageNotReady)
	case errors.Is(err, naverrors.ErrProviderUnavailable):
		log.Warn("Directions provider circuit open")
		return apperrors.Unavailable(directionsServiceName)
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("Directions request timed out")
		return apperrors.Timeout(messageDirectionsFailed)
	default:
		log.Error("Directions request failed")
		return apperrors.Upstream(messageDirectionsFailed, err)
	}
}

func routeStatus(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, naverrors.ErrNoRoute):
		return statusNoRoute
	case errors.Is(err, naverrors.ErrUnsupportedMode):
		return statusUnsupported
	default:
		return statusError
	}
}

func invalidInput(message string, err error) error {
	return apperrors.InvalidInput(message).WithDetails(map[string]any{
		"error": err.Error(),
	})
}

func snapshot(sess *session.Session) *session.Snapshot {
	snap := sess.Snapshot()
	return &snap
}
