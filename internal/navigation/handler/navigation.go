package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"campusmove/internal/navigation/service"
	apperrors "campusmove/pkg/errors"
	httputil "campusmove/pkg/http"
	"campusmove/pkg/logger"
	"campusmove/pkg/model"
)

const basePath = "/api/v1/navigation"

type NavigationHandler struct {
	service service.NavigationService
	log     *logger.Logger
}

func NewNavigationHandler(service service.NavigationService, log *logger.Logger) *NavigationHandler {
	return &NavigationHandler{
		service: service,
		log:     log,
	}
}

func (h *NavigationHandler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateSessionRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r.Body, &req); err != nil {
			h.writeError(w, "CreateSession", err)
			return
		}
	}

	snap, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CreateSession", err)
		return
	}

	if err := httputil.WriteCreated(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateSession", "operation", "WriteCreated", "error", err)
	}
}

func (h *NavigationHandler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.GetSession(r.Context(), ps.ByName("id"))
	h.respond(w, "GetSession", snap, err)
}

func (h *NavigationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.LocationUpdateRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.writeError(w, "UpdateLocation", err)
		return
	}
	snap, err := h.service.UpdateLocation(r.Context(), ps.ByName("id"), &req)
	h.respond(w, "UpdateLocation", snap, err)
}

func (h *NavigationHandler) RouteTo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.RouteToRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.writeError(w, "RouteTo", err)
		return
	}
	snap, err := h.service.RouteTo(r.Context(), ps.ByName("id"), &req)
	h.respond(w, "RouteTo", snap, err)
}

func (h *NavigationHandler) MoveMarkers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.MoveMarkersRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.writeError(w, "MoveMarkers", err)
		return
	}
	snap, err := h.service.MoveMarkers(r.Context(), ps.ByName("id"), &req)
	h.respond(w, "MoveMarkers", snap, err)
}

func (h *NavigationHandler) SetMode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.SetModeRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.writeError(w, "SetMode", err)
		return
	}
	snap, err := h.service.SetMode(r.Context(), ps.ByName("id"), &req)
	h.respond(w, "SetMode", snap, err)
}

func (h *NavigationHandler) ToggleStyle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.ToggleStyle(r.Context(), ps.ByName("id"))
	h.respond(w, "ToggleStyle", snap, err)
}

func (h *NavigationHandler) Recenter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Recenter(r.Context(), ps.ByName("id"))
	h.respond(w, "Recenter", snap, err)
}

func (h *NavigationHandler) CloseSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.CloseSession(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "CloseSession", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *NavigationHandler) Locations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.respond(w, "Locations", h.service.Locations(r.Context()), nil)
}

func (h *NavigationHandler) NearestLocations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		h.writeError(w, "NearestLocations", apperrors.InvalidInput("lat and lng query parameters must be numbers"))
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "NearestLocations", apperrors.InvalidInput("limit must be an integer"))
			return
		}
		limit = n
	}

	pins, err := h.service.NearestLocations(r.Context(), model.LatLng{Lat: lat, Lng: lng}, limit)
	h.respond(w, "NearestLocations", pins, err)
}

func (h *NavigationHandler) Walkways(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.respond(w, "Walkways", h.service.Walkways(r.Context()), nil)
}

func (h *NavigationHandler) GetClientState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.service.GetClientState(r.Context(), ps.ByName("id"))
	h.respond(w, "GetClientState", state, err)
}

func (h *NavigationHandler) ImportClientState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "ImportClientState", apperrors.InvalidInput("Invalid request body"))
		return
	}
	state, err := h.service.ImportClientState(r.Context(), ps.ByName("id"), raw)
	h.respond(w, "ImportClientState", state, err)
}

func (h *NavigationHandler) respond(w http.ResponseWriter, handler string, data any, err error) {
	if err != nil {
		h.writeError(w, handler, err)
		return
	}
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *NavigationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *NavigationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(basePath+"/sessions", h.CreateSession)
	router.GET(basePath+"/sessions/:id", h.GetSession)
	router.DELETE(basePath+"/sessions/:id", h.CloseSession)
	router.PUT(basePath+"/sessions/:id/location", h.UpdateLocation)
	router.POST(basePath+"/sessions/:id/route", h.RouteTo)
	router.PATCH(basePath+"/sessions/:id/markers", h.MoveMarkers)
	router.PUT(basePath+"/sessions/:id/mode", h.SetMode)
	router.POST(basePath+"/sessions/:id/style/toggle", h.ToggleStyle)
	router.POST(basePath+"/sessions/:id/recenter", h.Recenter)

	router.GET(basePath+"/locations", h.Locations)
	router.GET(basePath+"/locations/nearest", h.NearestLocations)
	router.GET(basePath+"/walkways", h.Walkways)

	router.GET(basePath+"/clients/:id/state", h.GetClientState)
	router.PUT(basePath+"/clients/:id/state", h.ImportClientState)
}
