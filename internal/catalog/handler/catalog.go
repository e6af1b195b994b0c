package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campusmove/internal/catalog/service"
	httputil "campusmove/pkg/http"
	"campusmove/pkg/logger"
	"campusmove/pkg/model"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) GetSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeList(w, r, "GetSchedule", h.service.GetSchedules)
}

func (h *CatalogHandler) GetRent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeList(w, r, "GetRent", h.service.GetRentalInventory)
}

func (h *CatalogHandler) GetLocations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeList(w, r, "GetLocations", h.service.GetLocations)
}

func (h *CatalogHandler) writeList(w http.ResponseWriter, r *http.Request, name string, fetch func(context.Context) ([]model.Document, error)) {
	docs, err := fetch(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, docs); err != nil {
		h.log.Error("failed to write success response", "handler", name, "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/getSchedule", h.GetSchedule)
	router.GET("/getRent", h.GetRent)
	router.GET("/getLocations", h.GetLocations)
}
