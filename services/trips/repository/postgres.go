package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/database"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/services/trips"
)

const tripColumns = `id, requester_id, driver_id, origin_address, origin_lat, origin_lng,
	group_size, start_date, end_date, status, last_lat, last_lng, last_geohash, last_location_at,
	distress_triggered, rating, lead_fee_paid, cancel_reason, cancelled_by,
	created_at, updated_at, accepted_at, started_at, completed_at, cancelled_at`

type tripRow struct {
	ID                string          `db:"id"`
	RequesterID       string          `db:"requester_id"`
	DriverID          sql.NullString  `db:"driver_id"`
	OriginAddress     string          `db:"origin_address"`
	OriginLat         float64         `db:"origin_lat"`
	OriginLng         float64         `db:"origin_lng"`
	GroupSize         int             `db:"group_size"`
	StartDate         time.Time       `db:"start_date"`
	EndDate           time.Time       `db:"end_date"`
	Status            string          `db:"status"`
	LastLat           sql.NullFloat64 `db:"last_lat"`
	LastLng           sql.NullFloat64 `db:"last_lng"`
	LastGeohash       sql.NullString  `db:"last_geohash"`
	LastLocationAt    sql.NullTime    `db:"last_location_at"`
	DistressTriggered bool            `db:"distress_triggered"`
	Rating            sql.NullInt32   `db:"rating"`
	LeadFeePaid       bool            `db:"lead_fee_paid"`
	CancelReason      string          `db:"cancel_reason"`
	CancelledBy       string          `db:"cancelled_by"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
	AcceptedAt        sql.NullTime    `db:"accepted_at"`
	StartedAt         sql.NullTime    `db:"started_at"`
	CompletedAt       sql.NullTime    `db:"completed_at"`
	CancelledAt       sql.NullTime    `db:"cancelled_at"`
}

type stopRow struct {
	TripID  string  `db:"trip_id"`
	Seq     int     `db:"seq"`
	Address string  `db:"address"`
	Lat     float64 `db:"lat"`
	Lng     float64 `db:"lng"`
}

type distressRow struct {
	TripID      string    `db:"trip_id"`
	Seq         int       `db:"seq"`
	TriggeredAt time.Time `db:"triggered_at"`
	Lat         float64   `db:"lat"`
	Lng         float64   `db:"lng"`
	HandledBy   string    `db:"handled_by"`
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func (r tripRow) toTrip() *models.Trip {
	trip := &models.Trip{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Origin: models.Place{
			Address:     r.OriginAddress,
			Coordinates: models.Coordinates{Lat: r.OriginLat, Lng: r.OriginLng},
		},
		Stops:             []models.Stop{},
		GroupSize:         r.GroupSize,
		StartDate:         r.StartDate.UTC(),
		EndDate:           r.EndDate.UTC(),
		Status:            models.TripStatus(r.Status),
		DistressTriggered: r.DistressTriggered,
		DistressHistory:   []models.DistressEvent{},
		LeadFeePaid:       r.LeadFeePaid,
		CancelReason:      r.CancelReason,
		CancelledBy:       r.CancelledBy,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
		AcceptedAt:        nullTime(r.AcceptedAt),
		StartedAt:         nullTime(r.StartedAt),
		CompletedAt:       nullTime(r.CompletedAt),
		CancelledAt:       nullTime(r.CancelledAt),
	}
	if r.DriverID.Valid {
		driverID := r.DriverID.String
		trip.DriverID = &driverID
	}
	if r.Rating.Valid {
		rating := int(r.Rating.Int32)
		trip.Rating = &rating
	}
	if r.LastLocationAt.Valid {
		trip.LastKnownLocation = &models.LastKnownLocation{
			Coordinates: models.Coordinates{Lat: r.LastLat.Float64, Lng: r.LastLng.Float64},
			Geohash:     r.LastGeohash.String,
			UpdatedAt:   r.LastLocationAt.Time.UTC(),
		}
	}
	return trip
}

func statusStrings(statuses []models.TripStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// TripRepo is the Postgres record store
type TripRepo struct {
	db *sqlx.DB
}

// NewTripRepository creates a Postgres-backed trip repository
func NewTripRepository(client *database.PostgresClient) trips.TripRepo {
	return &TripRepo{db: client.GetDB()}
}

// CreateTrip inserts the trip with its stops and sets the requester's active trip
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Persistence(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO trips (
			id, requester_id, origin_address, origin_lat, origin_lng, group_size,
			start_date, end_date, status, lead_fee_paid, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.ExecContext(ctx, query,
		trip.ID, trip.RequesterID, trip.Origin.Address, trip.Origin.Lat, trip.Origin.Lng, trip.GroupSize,
		trip.StartDate, trip.EndDate, string(trip.Status), trip.LeadFeePaid, trip.CreatedAt, trip.UpdatedAt)
	if err != nil {
		return apperror.Persistence(err, "failed to insert trip")
	}

	for _, stop := range trip.Stops {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_stops (trip_id, seq, address, lat, lng) VALUES ($1, $2, $3, $4, $5)`,
			trip.ID, stop.Order, stop.Address, stop.Lat, stop.Lng)
		if err != nil {
			return apperror.Persistence(err, "failed to insert trip stop")
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, active_trip_id) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET active_trip_id = EXCLUDED.active_trip_id`,
		trip.RequesterID, trip.ID)
	if err != nil {
		return apperror.Persistence(err, "failed to set active trip")
	}

	if err = tx.Commit(); err != nil {
		return apperror.Persistence(err, "failed to commit transaction")
	}
	return nil
}

// GetTrip loads a trip with its stops and distress history
func (r *TripRepo) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var row tripRow
	err := r.db.GetContext(ctx, &row, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("trip %s not found", tripID)
		}
		return nil, apperror.Persistence(err, "failed to get trip")
	}

	result, err := r.hydrate(ctx, []tripRow{row})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// ListTripsByStatus returns trips in any of statuses, newest first
func (r *TripRepo) ListTripsByStatus(ctx context.Context, statuses ...models.TripStatus) ([]*models.Trip, error) {
	if len(statuses) == 0 {
		return []*models.Trip{}, nil
	}
	query, args, err := sqlx.In(
		`SELECT `+tripColumns+` FROM trips WHERE status IN (?) ORDER BY created_at DESC, id DESC`,
		statusStrings(statuses))
	if err != nil {
		return nil, apperror.Persistence(err, "failed to build trip query")
	}
	return r.list(ctx, r.db.Rebind(query), args...)
}

// ListTripsByRequester returns every trip of requesterID, newest first
func (r *TripRepo) ListTripsByRequester(ctx context.Context, requesterID string) ([]*models.Trip, error) {
	return r.list(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE requester_id = $1 ORDER BY created_at DESC, id DESC`,
		requesterID)
}

func (r *TripRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Trip, error) {
	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Persistence(err, "failed to list trips")
	}
	if len(rows) == 0 {
		return []*models.Trip{}, nil
	}
	return r.hydrate(ctx, rows)
}

// hydrate attaches stops and distress history with one query each
func (r *TripRepo) hydrate(ctx context.Context, rows []tripRow) ([]*models.Trip, error) {
	ids := make([]string, len(rows))
	byID := make(map[string]*models.Trip, len(rows))
	result := make([]*models.Trip, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		result[i] = row.toTrip()
		byID[row.ID] = result[i]
	}

	query, args, err := sqlx.In(
		`SELECT trip_id, seq, address, lat, lng FROM trip_stops WHERE trip_id IN (?) ORDER BY trip_id, seq`, ids)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to build stops query")
	}
	var stops []stopRow
	if err := r.db.SelectContext(ctx, &stops, r.db.Rebind(query), args...); err != nil {
		return nil, apperror.Persistence(err, "failed to load trip stops")
	}
	for _, s := range stops {
		if trip, ok := byID[s.TripID]; ok {
			trip.Stops = append(trip.Stops, models.Stop{
				Place: models.Place{Address: s.Address, Coordinates: models.Coordinates{Lat: s.Lat, Lng: s.Lng}},
				Order: s.Seq,
			})
		}
	}

	query, args, err = sqlx.In(
		`SELECT trip_id, seq, triggered_at, lat, lng, handled_by FROM trip_distress_events
		WHERE trip_id IN (?) ORDER BY trip_id, seq`, ids)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to build distress query")
	}
	var events []distressRow
	if err := r.db.SelectContext(ctx, &events, r.db.Rebind(query), args...); err != nil {
		return nil, apperror.Persistence(err, "failed to load distress history")
	}
	for _, e := range events {
		if trip, ok := byID[e.TripID]; ok {
			trip.DistressHistory = append(trip.DistressHistory, e.toEvent())
		}
	}

	return result, nil
}

func (e distressRow) toEvent() models.DistressEvent {
	return models.DistressEvent{
		Seq:         e.Seq,
		TriggeredAt: e.TriggeredAt.UTC(),
		Coordinates: models.Coordinates{Lat: e.Lat, Lng: e.Lng},
		HandledBy:   e.HandledBy,
	}
}

// TransitionTrip applies a status change in one conditional UPDATE so that two
// racing callers cannot both move the trip out of the same status
func (r *TripRepo) TransitionTrip(ctx context.Context, t models.TripTransition) (*models.Trip, error) {
	if len(t.From) == 0 {
		return nil, apperror.InvalidState("no status can transition to %s", t.To)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query, args, err := sqlx.In(`
		UPDATE trips SET
			status = ?,
			updated_at = ?,
			driver_id = COALESCE(NULLIF(?, ''), driver_id),
			accepted_at = CASE WHEN status = 'PENDING' AND ? = 'CONFIRMED' THEN ? ELSE accepted_at END,
			started_at = CASE WHEN ? = 'IN_PROGRESS' THEN ? ELSE started_at END,
			completed_at = CASE WHEN ? = 'COMPLETED' THEN ? ELSE completed_at END,
			cancelled_at = CASE WHEN ? = 'CANCELLED' THEN ? ELSE cancelled_at END,
			cancel_reason = CASE WHEN ? = 'CANCELLED' THEN ? ELSE cancel_reason END,
			cancelled_by = CASE WHEN ? = 'CANCELLED' THEN ? ELSE cancelled_by END
		WHERE id = ? AND status IN (?)
		RETURNING requester_id`,
		string(t.To), t.At, t.DriverID,
		string(t.To), t.At,
		string(t.To), t.At,
		string(t.To), t.At,
		string(t.To), t.At,
		string(t.To), t.Reason,
		string(t.To), t.ActorID,
		t.TripID, statusStrings(t.From))
	if err != nil {
		return nil, apperror.Persistence(err, "failed to build transition query")
	}

	var requesterID string
	err = tx.QueryRowxContext(ctx, tx.Rebind(query), args...).Scan(&requesterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, classifyMiss(ctx, tx, t.TripID, fmt.Sprintf("cannot move to %s", t.To))
		}
		return nil, apperror.Persistence(err, "failed to update trip status")
	}

	if t.ClearActiveTrip {
		if err := clearActiveTrip(ctx, tx, requesterID, t.TripID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, apperror.Persistence(err, "failed to commit transaction")
	}
	return r.GetTrip(ctx, t.TripID)
}

// classifyMiss explains why a conditional write touched no row
func classifyMiss(ctx context.Context, q sqlx.QueryerContext, tripID, action string) error {
	var status string
	err := sqlx.GetContext(ctx, q, &status, `SELECT status FROM trips WHERE id = $1`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound("trip %s not found", tripID)
		}
		return apperror.Persistence(err, "failed to read trip status")
	}
	return apperror.InvalidState("trip %s is %s: %s", tripID, status, action)
}

func clearActiveTrip(ctx context.Context, tx *sqlx.Tx, requesterID, tripID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET active_trip_id = NULL WHERE id = $1 AND active_trip_id = $2`,
		requesterID, tripID)
	if err != nil {
		return apperror.Persistence(err, "failed to clear active trip")
	}
	return nil
}

// UpdateLastKnownLocation writes the position unless a newer one is already stored
func (r *TripRepo) UpdateLastKnownLocation(ctx context.Context, tripID string, loc models.LastKnownLocation) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE trips SET last_lat = $2, last_lng = $3, last_geohash = $4, last_location_at = $5
		WHERE id = $1 AND (last_location_at IS NULL OR last_location_at <= $5)`,
		tripID, loc.Lat, loc.Lng, loc.Geohash, loc.UpdatedAt)
	if err != nil {
		return apperror.Persistence(err, "failed to update last known location")
	}
	return nil
}

// AppendDistressEvent raises the distress flag and appends the next incident.
// The trip row lock serializes sequence allocation.
func (r *TripRepo) AppendDistressEvent(ctx context.Context, tripID string, at time.Time, coords models.Coordinates) (*models.DistressEvent, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var status string
	err = tx.GetContext(ctx, &status, `SELECT status FROM trips WHERE id = $1 FOR UPDATE`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("trip %s not found", tripID)
		}
		return nil, apperror.Persistence(err, "failed to lock trip")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET distress_triggered = TRUE, updated_at = $2 WHERE id = $1`, tripID, at)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to set distress flag")
	}

	var seq int
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO trip_distress_events (trip_id, seq, triggered_at, lat, lng)
		SELECT $1, COALESCE(MAX(seq), 0) + 1, $2, $3, $4 FROM trip_distress_events WHERE trip_id = $1
		RETURNING seq`,
		tripID, at, coords.Lat, coords.Lng).Scan(&seq)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to append distress event")
	}

	if err = tx.Commit(); err != nil {
		return nil, apperror.Persistence(err, "failed to commit transaction")
	}
	return &models.DistressEvent{Seq: seq, TriggeredAt: at, Coordinates: coords}, nil
}

// AcknowledgeDistress marks one unhandled incident as handled by adminID
func (r *TripRepo) AcknowledgeDistress(ctx context.Context, tripID string, seq int, adminID string) (*models.DistressEvent, error) {
	var row distressRow
	err := r.db.GetContext(ctx, &row, `
		UPDATE trip_distress_events SET handled_by = $3
		WHERE trip_id = $1 AND seq = $2 AND handled_by = ''
		RETURNING trip_id, seq, triggered_at, lat, lng, handled_by`,
		tripID, seq, adminID)
	if err == nil {
		event := row.toEvent()
		return &event, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.Persistence(err, "failed to acknowledge distress")
	}

	var handledBy string
	err = r.db.GetContext(ctx, &handledBy,
		`SELECT handled_by FROM trip_distress_events WHERE trip_id = $1 AND seq = $2`, tripID, seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("distress event %d of trip %s not found", seq, tripID)
		}
		return nil, apperror.Persistence(err, "failed to read distress event")
	}
	return nil, apperror.InvalidState("distress event %d already handled by %s", seq, handledBy)
}

// SetRating records the requester's rating once, on a completed trip
func (r *TripRepo) SetRating(ctx context.Context, tripID string, rating int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trips SET rating = $2, updated_at = $3
		WHERE id = $1 AND status = 'COMPLETED' AND rating IS NULL`,
		tripID, rating, models.Now())
	if err != nil {
		return apperror.Persistence(err, "failed to rate trip")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(err, "failed to rate trip")
	}
	if n == 0 {
		return classifyMiss(ctx, r.db, tripID, "only an unrated completed trip can be rated")
	}
	return nil
}

// DeleteTrip removes a terminal trip that has no unhandled distress incident
func (r *TripRepo) DeleteTrip(ctx context.Context, tripID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Persistence(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var requesterID string
	err = tx.QueryRowxContext(ctx, `
		DELETE FROM trips t
		WHERE t.id = $1 AND t.status IN ('COMPLETED', 'CANCELLED')
		AND NOT EXISTS (SELECT 1 FROM trip_distress_events d WHERE d.trip_id = t.id AND d.handled_by = '')
		RETURNING requester_id`, tripID).Scan(&requesterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classifyMiss(ctx, tx, tripID, "only a terminal trip without open distress can be deleted")
		}
		return apperror.Persistence(err, "failed to delete trip")
	}

	if err := clearActiveTrip(ctx, tx, requesterID, tripID); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperror.Persistence(err, "failed to commit transaction")
	}
	return nil
}

// GetDriver loads a driver's vetting state
func (r *TripRepo) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.GetContext(ctx, &driver,
		`SELECT id, is_verified, is_suspended, strike_count FROM drivers WHERE id = $1`, driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("driver %s not found", driverID)
		}
		return nil, apperror.Persistence(err, "failed to get driver")
	}
	return &driver, nil
}

// AddDriverStrike increments a driver's cancellation strikes
func (r *TripRepo) AddDriverStrike(ctx context.Context, driverID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET strike_count = strike_count + 1 WHERE id = $1`, driverID)
	if err != nil {
		return apperror.Persistence(err, "failed to add driver strike")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("driver %s not found", driverID)
	}
	return nil
}
