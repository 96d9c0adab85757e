package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/middleware"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	ws "github.com/sagarsaathi/saathi/internal/pkg/websocket"
	"github.com/sagarsaathi/saathi/services/trips/handler/http"
	"github.com/sagarsaathi/saathi/services/trips/handler/websocket"
)

// Handler coordinates all protocol handlers for the trips service
type Handler struct {
	tripHandler     *http.TripHandler
	adminHandler    *http.AdminHandler
	realtimeHandler *websocket.RealtimeHandler
	manager         *ws.Manager
	auth            middleware.Authenticator
}

// NewHandler creates and initializes all handlers
func NewHandler(
	tripHandler *http.TripHandler,
	adminHandler *http.AdminHandler,
	realtimeHandler *websocket.RealtimeHandler,
	manager *ws.Manager,
	auth middleware.Authenticator,
) *Handler {
	return &Handler{
		tripHandler:     tripHandler,
		adminHandler:    adminHandler,
		realtimeHandler: realtimeHandler,
		manager:         manager,
		auth:            auth,
	}
}

// RegisterRoutes registers all protocol handlers and their routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	protected := e.Group("", middleware.JWTAuthMiddleware(h.auth))

	tripGroup := protected.Group("/trips")
	tripGroup.POST("", h.tripHandler.CreateTrip, middleware.RequireRoles(models.RoleUser))
	tripGroup.GET("", h.tripHandler.ListTrips, middleware.RequireRoles(models.RoleDriver, models.RoleAdmin))
	tripGroup.GET("/mine", h.tripHandler.ListMyTrips)
	tripGroup.GET("/:id", h.tripHandler.GetTrip)
	tripGroup.GET("/:id/location", h.tripHandler.GetLocation)
	tripGroup.PUT("/:id/accept", h.tripHandler.AcceptTrip, middleware.RequireRoles(models.RoleDriver))
	tripGroup.PUT("/:id/start", h.tripHandler.StartTrip)
	tripGroup.PUT("/:id/complete", h.tripHandler.CompleteTrip)
	tripGroup.PUT("/:id/cancel", h.tripHandler.CancelTrip)
	tripGroup.PUT("/:id/rating", h.tripHandler.RateTrip)
	tripGroup.DELETE("/:id", h.tripHandler.DeleteTrip)

	adminGroup := protected.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	adminGroup.GET("/trips/active", h.adminHandler.ListActiveTrips)
	adminGroup.PUT("/trips/:id/distress/:seq/ack", h.adminHandler.AcknowledgeDistress)

	// the manager authenticates the handshake itself so browsers can pass ?token=
	e.GET("/ws", h.manager.HandleConnection)
}
