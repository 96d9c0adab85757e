package websocket

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	ws "github.com/sagarsaathi/saathi/internal/pkg/websocket"
	"github.com/sagarsaathi/saathi/services/trips"
)

// RealtimeHandler routes inbound realtime events to the trip usecases
type RealtimeHandler struct {
	manager    *ws.Manager
	locationUC trips.LocationUC
	distressUC trips.DistressUC
}

// NewRealtimeHandler creates the handler and installs it on manager
func NewRealtimeHandler(manager *ws.Manager, locationUC trips.LocationUC, distressUC trips.DistressUC) *RealtimeHandler {
	h := &RealtimeHandler{
		manager:    manager,
		locationUC: locationUC,
		distressUC: distressUC,
	}
	manager.SetMessageHandler(h.HandleMessage)
	return h
}

// HandleMessage dispatches one client event. Events from one session are
// handled in the order they were received.
func (h *RealtimeHandler) HandleMessage(ctx context.Context, s *ws.Session, msg models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinTrip:
		h.handleJoinTrip(ctx, s, msg.Data)
	case constants.EventLeaveTrip:
		h.handleLeaveTrip(s, msg.Data)
	case constants.EventLocationUpdate:
		h.handleLocationUpdate(ctx, s, msg.Data)
	case constants.EventTriggerSOS:
		h.handleTriggerSOS(ctx, s, msg.Data)
	case constants.EventPing:
		s.Send(constants.EventPong, nil)
	default:
		s.SendError(constants.ErrorUnknownEvent, "Unknown event: "+msg.Event)
	}
}

func (h *RealtimeHandler) handleJoinTrip(ctx context.Context, s *ws.Session, data json.RawMessage) {
	var req models.TripRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.TripID) == "" {
		s.SendError(constants.ErrorInvalidFormat, "Invalid join-trip format")
		return
	}

	if err := h.manager.Join(ctx, s, req.TripID); err != nil {
		h.reportError(s, constants.EventJoinTrip, req.TripID, err)
		return
	}

	logger.Debug("Session joined trip room", logger.SessionID(s.ID), logger.TripID(req.TripID))
	s.Send(constants.EventJoinedTrip, models.TripRoomAck{TripID: req.TripID})
}

func (h *RealtimeHandler) handleLeaveTrip(s *ws.Session, data json.RawMessage) {
	var req models.TripRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.TripID == "" {
		s.SendError(constants.ErrorInvalidFormat, "Invalid leave-trip format")
		return
	}
	h.manager.Leave(s, req.TripID)
}

func (h *RealtimeHandler) handleLocationUpdate(ctx context.Context, s *ws.Session, data json.RawMessage) {
	var req models.LocationUpdateRequest
	if err := json.Unmarshal(data, &req); err != nil || req.TripID == "" {
		s.SendError(constants.ErrorInvalidFormat, "Invalid location-update format")
		return
	}

	if _, err := h.locationUC.PublishLocation(ctx, req.TripID, req.Location, s.Identity); err != nil {
		h.reportError(s, constants.EventLocationUpdate, req.TripID, err)
	}
}

func (h *RealtimeHandler) handleTriggerSOS(ctx context.Context, s *ws.Session, data json.RawMessage) {
	var req models.SOSRequest
	if err := json.Unmarshal(data, &req); err != nil || req.TripID == "" {
		s.SendError(constants.ErrorInvalidFormat, "Invalid trigger-sos format")
		return
	}

	if _, err := h.distressUC.TriggerDistress(ctx, req.TripID, req.Location, s.Identity); err != nil {
		h.reportError(s, constants.EventTriggerSOS, req.TripID, err)
	}
}

// reportError drops unauthorized and unknown-trip events without a reply so
// a client cannot probe which trips exist. Everything else is echoed back.
func (h *RealtimeHandler) reportError(s *ws.Session, event, tripID string, err error) {
	fields := []logger.Field{
		logger.SessionID(s.ID),
		logger.SubjectID(s.Identity.SubjectID),
		logger.TripID(tripID),
		logger.String("event", event),
		logger.Err(err),
	}

	switch apperror.KindOf(err) {
	case apperror.KindUnauthorized, apperror.KindNotFound:
		logger.Warn("Realtime event dropped", fields...)
	case apperror.KindValidation:
		s.SendError(constants.ErrorValidationFailed, apperror.Message(err))
	case apperror.KindInvalidState:
		s.SendError(constants.ErrorInvalidState, apperror.Message(err))
	default:
		logger.Error("Realtime event failed", fields...)
		s.SendError(constants.ErrorInternalError, apperror.Message(err))
	}
}
