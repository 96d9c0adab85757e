package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/middleware"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/internal/utils"
	"github.com/sagarsaathi/saathi/services/trips"
)

// TripHandler handles HTTP requests for trip operations
type TripHandler struct {
	tripUC     trips.TripUC
	locationUC trips.LocationUC
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripUC trips.TripUC, locationUC trips.LocationUC) *TripHandler {
	return &TripHandler{
		tripUC:     tripUC,
		locationUC: locationUC,
	}
}

// identity returns the caller and tags the New Relic transaction with the trip id
func identity(c echo.Context) (models.Identity, bool) {
	if tripID := c.Param("id"); tripID != "" {
		middleware.SetTripID(c, tripID)
	}
	return middleware.IdentityFrom(c)
}

// CreateTrip handles POST /trips
func (h *TripHandler) CreateTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for trip creation",
			logger.Err(err),
			logger.SubjectID(caller.SubjectID))
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	trip, err := h.tripUC.CreateTrip(c.Request().Context(), caller, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Trip created successfully", trip)
}

// ListTrips handles GET /trips?status=PENDING, the driver queue
func (h *TripHandler) ListTrips(c echo.Context) error {
	status := models.TripStatus(strings.ToUpper(c.QueryParam("status")))
	if status != "" && status != models.TripStatusPending {
		return utils.BadRequestResponse(c, "Only status=PENDING can be listed")
	}

	list, err := h.tripUC.ListPendingTrips(c.Request().Context())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", list)
}

// ListMyTrips handles GET /trips/mine
func (h *TripHandler) ListMyTrips(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	list, err := h.tripUC.ListTripsForRequester(c.Request().Context(), caller.SubjectID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", list)
}

// GetTrip handles GET /trips/:id
func (h *TripHandler) GetTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trip, err := h.tripUC.GetTrip(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", trip)
}

// GetLocation handles GET /trips/:id/location
func (h *TripHandler) GetLocation(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	loc, err := h.locationUC.GetLocation(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", loc)
}

// AcceptTrip handles PUT /trips/:id/accept. A driverId in the body must be the caller.
func (h *TripHandler) AcceptTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.AcceptTripRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}
	}
	if req.DriverID != "" && req.DriverID != caller.SubjectID {
		return utils.ForbiddenResponse(c, "driverId does not match the authenticated driver")
	}

	trip, err := h.tripUC.AcceptTrip(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip accepted", trip)
}

// StartTrip handles PUT /trips/:id/start
func (h *TripHandler) StartTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trip, err := h.tripUC.StartTrip(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip started", trip)
}

// CompleteTrip handles PUT /trips/:id/complete
func (h *TripHandler) CompleteTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trip, err := h.tripUC.CompleteTrip(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip completed", trip)
}

// CancelTrip handles PUT /trips/:id/cancel
func (h *TripHandler) CancelTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CancelTripRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}
	}

	trip, err := h.tripUC.CancelTrip(c.Request().Context(), c.Param("id"), caller, req.Reason)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip cancelled", trip)
}

// RateTrip handles PUT /trips/:id/rating
func (h *TripHandler) RateTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.RateTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	trip, err := h.tripUC.RateTrip(c.Request().Context(), c.Param("id"), caller, req.Rating)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip rated", trip)
}

// DeleteTrip handles DELETE /trips/:id
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	caller, ok := identity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.tripUC.DeleteTrip(c.Request().Context(), c.Param("id"), caller); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip deleted", nil)
}
