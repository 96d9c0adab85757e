package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/utils"
	"github.com/sagarsaathi/saathi/services/trips"
)

// AdminHandler serves the safety monitor endpoints
type AdminHandler struct {
	tripUC     trips.TripUC
	distressUC trips.DistressUC
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(tripUC trips.TripUC, distressUC trips.DistressUC) *AdminHandler {
	return &AdminHandler{
		tripUC:     tripUC,
		distressUC: distressUC,
	}
}

// ListActiveTrips handles GET /admin/trips/active
func (h *AdminHandler) ListActiveTrips(c echo.Context) error {
	list, err := h.tripUC.ListActiveTrips(c.Request().Context())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Active trips retrieved successfully", list)
}

// AcknowledgeDistress handles PUT /admin/trips/:id/distress/:seq/ack
func (h *AdminHandler) AcknowledgeDistress(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid distress sequence number")
	}

	event, err := h.distressUC.AcknowledgeDistress(c.Request().Context(), c.Param("id"), seq, caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Distress alert acknowledged", event)
}
