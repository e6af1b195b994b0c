package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campusmove/internal/rentals/service"
	httputil "campusmove/pkg/http"
	"campusmove/pkg/logger"
	"campusmove/pkg/model"
)

type RentalHandler struct {
	service service.RentalService
	log     *logger.Logger
}

func NewRentalHandler(service service.RentalService, log *logger.Logger) *RentalHandler {
	return &RentalHandler{
		service: service,
		log:     log,
	}
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RentRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Rent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Rent(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Rent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, service.MessageRented); err != nil {
		h.log.Error("failed to write success response", "handler", "Rent", "operation", "WriteMessage", "error", err)
	}
}

func (h *RentalHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/rent", h.Rent)
}
