package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/database"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripColumnNames = []string{
	"id", "requester_id", "driver_id", "origin_address", "origin_lat", "origin_lng",
	"group_size", "start_date", "end_date", "status", "last_lat", "last_lng", "last_geohash", "last_location_at",
	"distress_triggered", "rating", "lead_fee_paid", "cancel_reason", "cancelled_by",
	"created_at", "updated_at", "accepted_at", "started_at", "completed_at", "cancelled_at",
}

var (
	startDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	endDate   = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	createdAt = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
)

func setupTripRepoTest(t *testing.T) (*TripRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "pgx")
	repo := NewTripRepository(database.NewPostgresClientFromDB(sqlxDB)).(*TripRepo)

	return repo, mock, func() { _ = sqlxDB.Close() }
}

func pendingTripRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	return rows.AddRow(id, "U1", nil, "Bengaluru", 12.97, 77.59,
		2, startDate, endDate, "PENDING", nil, nil, nil, nil,
		false, nil, false, "", "",
		createdAt, createdAt, nil, nil, nil, nil)
}

func confirmedTripRow(rows *sqlmock.Rows, id, driverID string) *sqlmock.Rows {
	return rows.AddRow(id, "U1", driverID, "Bengaluru", 12.97, 77.59,
		2, startDate, endDate, "CONFIRMED", 12.5, 77.1, "tdr1", createdAt.Add(time.Minute),
		true, nil, false, "", "",
		createdAt, createdAt, createdAt, nil, nil, nil)
}

func expectChildren(mock sqlmock.Sqlmock, ids ...string) {
	stops := sqlmock.NewRows([]string{"trip_id", "seq", "address", "lat", "lng"})
	for _, id := range ids {
		stops.AddRow(id, 1, "Mysuru", 12.29, 76.63)
	}
	mock.ExpectQuery("FROM trip_stops WHERE trip_id IN").WillReturnRows(stops)
	mock.ExpectQuery("FROM trip_distress_events WHERE trip_id IN").
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "seq", "triggered_at", "lat", "lng", "handled_by"}))
}

func TestTripRepo_GetTrip(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, trip *models.Trip, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM trips WHERE id = \\$1").
					WithArgs("t-1").
					WillReturnRows(confirmedTripRow(sqlmock.NewRows(tripColumnNames), "t-1", "D1"))
				mock.ExpectQuery("FROM trip_stops WHERE trip_id IN").
					WithArgs("t-1").
					WillReturnRows(sqlmock.NewRows([]string{"trip_id", "seq", "address", "lat", "lng"}).
						AddRow("t-1", 1, "Mysuru", 12.29, 76.63).
						AddRow("t-1", 2, "Ooty", 11.41, 76.69))
				mock.ExpectQuery("FROM trip_distress_events WHERE trip_id IN").
					WithArgs("t-1").
					WillReturnRows(sqlmock.NewRows([]string{"trip_id", "seq", "triggered_at", "lat", "lng", "handled_by"}).
						AddRow("t-1", 1, createdAt, 12.9, 77.6, "A1"))
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				require.NoError(t, err)
				assert.Equal(t, models.TripStatusConfirmed, trip.Status)
				assert.Equal(t, "D1", trip.AssignedDriver())
				require.Len(t, trip.Stops, 2)
				assert.Equal(t, 2, trip.Stops[1].Order)
				require.Len(t, trip.DistressHistory, 1)
				assert.Equal(t, "A1", trip.DistressHistory[0].HandledBy)
				require.NotNil(t, trip.LastKnownLocation)
				assert.Equal(t, "tdr1", trip.LastKnownLocation.Geohash)
				assert.NotNil(t, trip.AcceptedAt)
				assert.Nil(t, trip.Rating)
			},
		},
		{
			name: "Not Found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM trips WHERE id = \\$1").
					WithArgs("t-1").
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				assert.ErrorIs(t, err, apperror.ErrNotFound)
				assert.Nil(t, trip)
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM trips WHERE id = \\$1").
					WithArgs("t-1").
					WillReturnError(errors.New("connection reset"))
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				assert.ErrorIs(t, err, apperror.ErrPersistence)
				assert.Contains(t, err.Error(), "failed to get trip")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupTripRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			trip, err := repo.GetTrip(context.Background(), "t-1")

			tc.assertFunc(t, trip, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripRepo_CreateTrip(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	trip := &models.Trip{
		ID:          "t-1",
		RequesterID: "U1",
		Origin:      models.Place{Address: "Bengaluru", Coordinates: models.Coordinates{Lat: 12.97, Lng: 77.59}},
		Stops: []models.Stop{
			{Place: models.Place{Address: "Mysuru", Coordinates: models.Coordinates{Lat: 12.29, Lng: 76.63}}, Order: 1},
		},
		GroupSize: 2,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.TripStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WithArgs("t-1", "U1", "Bengaluru", 12.97, 77.59, 2, startDate, endDate, "PENDING", false, createdAt, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_stops").
		WithArgs("t-1", 1, "Mysuru", 12.29, 76.63).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("U1", "t-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateTrip(context.Background(), trip))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_CreateTripRollsBackOnStopFailure(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_stops").WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.CreateTrip(context.Background(), &models.Trip{
		ID: "t-1", RequesterID: "U1", Status: models.TripStatusPending,
		Stops: []models.Stop{{Order: 1}, {Order: 1}},
	})
	assert.ErrorIs(t, err, apperror.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_TransitionTrip(t *testing.T) {
	at := createdAt.Add(time.Hour)

	testCases := []struct {
		name       string
		transition models.TripTransition
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, trip *models.Trip, err error)
	}{
		{
			name: "Accept wins",
			transition: models.TripTransition{
				TripID: "t-1", From: []models.TripStatus{models.TripStatusPending},
				To: models.TripStatusConfirmed, DriverID: "D1", At: at,
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE trips SET").
					WithArgs("CONFIRMED", at, "D1",
						"CONFIRMED", at, "CONFIRMED", at, "CONFIRMED", at, "CONFIRMED", at,
						"CONFIRMED", "", "CONFIRMED", "",
						"t-1", "PENDING").
					WillReturnRows(sqlmock.NewRows([]string{"requester_id"}).AddRow("U1"))
				mock.ExpectCommit()
				mock.ExpectQuery("FROM trips WHERE id = \\$1").
					WithArgs("t-1").
					WillReturnRows(confirmedTripRow(sqlmock.NewRows(tripColumnNames), "t-1", "D1"))
				expectChildren(mock, "t-1")
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				require.NoError(t, err)
				assert.Equal(t, models.TripStatusConfirmed, trip.Status)
				assert.Equal(t, "D1", trip.AssignedDriver())
			},
		},
		{
			name: "Accept loses race",
			transition: models.TripTransition{
				TripID: "t-1", From: []models.TripStatus{models.TripStatusPending},
				To: models.TripStatusConfirmed, DriverID: "D2", At: at,
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE trips SET").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT status FROM trips WHERE id = \\$1").
					WithArgs("t-1").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("CONFIRMED"))
				mock.ExpectRollback()
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				assert.ErrorIs(t, err, apperror.ErrInvalidState)
				assert.Contains(t, err.Error(), "CONFIRMED")
				assert.Nil(t, trip)
			},
		},
		{
			name: "Missing trip",
			transition: models.TripTransition{
				TripID: "t-1", From: []models.TripStatus{models.TripStatusInProgress},
				To: models.TripStatusCompleted, At: at,
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE trips SET").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT status FROM trips WHERE id = \\$1").WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				assert.ErrorIs(t, err, apperror.ErrNotFound)
			},
		},
		{
			name: "Cancel clears active trip",
			transition: models.TripTransition{
				TripID: "t-1", From: models.SourcesOf(models.TripStatusCancelled),
				To: models.TripStatusCancelled, Reason: "plans changed", ActorID: "U1",
				ClearActiveTrip: true, At: at,
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE trips SET").
					WillReturnRows(sqlmock.NewRows([]string{"requester_id"}).AddRow("U1"))
				mock.ExpectExec("UPDATE users SET active_trip_id = NULL").
					WithArgs("U1", "t-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				mock.ExpectQuery("FROM trips WHERE id = \\$1").
					WillReturnRows(pendingTripRow(sqlmock.NewRows(tripColumnNames), "t-1"))
				expectChildren(mock, "t-1")
			},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				require.NoError(t, err)
				assert.NotNil(t, trip)
			},
		},
		{
			name:       "No source status",
			transition: models.TripTransition{TripID: "t-1", To: models.TripStatusPending, At: at},
			mockSetup:  func(mock sqlmock.Sqlmock) {},
			assertFunc: func(t *testing.T, trip *models.Trip, err error) {
				assert.ErrorIs(t, err, apperror.ErrInvalidState)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupTripRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			trip, err := repo.TransitionTrip(context.Background(), tc.transition)

			tc.assertFunc(t, trip, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripRepo_ListTripsByStatus(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows(tripColumnNames)
	confirmedTripRow(rows, "t-2", "D1")
	mock.ExpectQuery("FROM trips WHERE status IN \\(\\$1, \\$2\\) ORDER BY created_at DESC").
		WithArgs("CONFIRMED", "IN_PROGRESS").
		WillReturnRows(rows)
	expectChildren(mock, "t-2")

	trips, err := repo.ListTripsByStatus(context.Background(), models.TripStatusConfirmed, models.TripStatusInProgress)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Len(t, trips[0].Stops, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_ListTripsByRequesterEmpty(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("FROM trips WHERE requester_id = \\$1").
		WithArgs("U1").
		WillReturnRows(sqlmock.NewRows(tripColumnNames))

	trips, err := repo.ListTripsByRequester(context.Background(), "U1")
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_UpdateLastKnownLocation(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	at := createdAt.Add(time.Minute)
	mock.ExpectExec("UPDATE trips SET last_lat").
		WithArgs("t-1", 12.9, 77.6, "tdr1", at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLastKnownLocation(context.Background(), "t-1", models.LastKnownLocation{
		Coordinates: models.Coordinates{Lat: 12.9, Lng: 77.6}, Geohash: "tdr1", UpdatedAt: at,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_AppendDistressEvent(t *testing.T) {
	at := createdAt.Add(time.Hour)
	coords := models.Coordinates{Lat: 12.9, Lng: 77.6}

	t.Run("Success", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM trips WHERE id = \\$1 FOR UPDATE").
			WithArgs("t-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))
		mock.ExpectExec("UPDATE trips SET distress_triggered = TRUE").
			WithArgs("t-1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO trip_distress_events").
			WithArgs("t-1", at, 12.9, 77.6).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(3))
		mock.ExpectCommit()

		event, err := repo.AppendDistressEvent(context.Background(), "t-1", at, coords)
		require.NoError(t, err)
		assert.Equal(t, 3, event.Seq)
		assert.Equal(t, coords, event.Coordinates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert fails", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))
		mock.ExpectExec("UPDATE trips SET distress_triggered = TRUE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO trip_distress_events").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		event, err := repo.AppendDistressEvent(context.Background(), "t-1", at, coords)
		assert.ErrorIs(t, err, apperror.ErrPersistence)
		assert.Nil(t, event)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing trip", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.AppendDistressEvent(context.Background(), "t-1", at, coords)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepo_AcknowledgeDistress(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectQuery("UPDATE trip_distress_events SET handled_by").
			WithArgs("t-1", 1, "A1").
			WillReturnRows(sqlmock.NewRows([]string{"trip_id", "seq", "triggered_at", "lat", "lng", "handled_by"}).
				AddRow("t-1", 1, createdAt, 12.9, 77.6, "A1"))

		event, err := repo.AcknowledgeDistress(context.Background(), "t-1", 1, "A1")
		require.NoError(t, err)
		assert.Equal(t, "A1", event.HandledBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already handled", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectQuery("UPDATE trip_distress_events SET handled_by").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT handled_by FROM trip_distress_events").
			WithArgs("t-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"handled_by"}).AddRow("A2"))

		_, err := repo.AcknowledgeDistress(context.Background(), "t-1", 1, "A1")
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
		assert.Contains(t, err.Error(), "A2")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown event", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectQuery("UPDATE trip_distress_events SET handled_by").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT handled_by FROM trip_distress_events").WillReturnError(sql.ErrNoRows)

		_, err := repo.AcknowledgeDistress(context.Background(), "t-1", 9, "A1")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepo_SetRating(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE trips SET rating").
		WithArgs("t-1", 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM trips WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))

	err := repo.SetRating(context.Background(), "t-1", 5)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_DeleteTrip(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM trips").
			WithArgs("t-1").
			WillReturnRows(sqlmock.NewRows([]string{"requester_id"}).AddRow("U1"))
		mock.ExpectExec("UPDATE users SET active_trip_id = NULL").
			WithArgs("U1", "t-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteTrip(context.Background(), "t-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not terminal", func(t *testing.T) {
		repo, mock, cleanup := setupTripRepoTest(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM trips").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT status FROM trips WHERE id = \\$1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("CONFIRMED"))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.DeleteTrip(context.Background(), "t-1"), apperror.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepo_Drivers(t *testing.T) {
	repo, mock, cleanup := setupTripRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("FROM drivers WHERE id = \\$1").
		WithArgs("D1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_verified", "is_suspended", "strike_count"}).
			AddRow("D1", true, false, 2))
	mock.ExpectQuery("FROM drivers WHERE id = \\$1").
		WithArgs("D9").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE drivers SET strike_count = strike_count \\+ 1").
		WithArgs("D1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET strike_count = strike_count \\+ 1").
		WithArgs("D9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	driver, err := repo.GetDriver(context.Background(), "D1")
	require.NoError(t, err)
	assert.True(t, driver.CanAcceptTrips())
	assert.Equal(t, 2, driver.StrikeCount)

	_, err = repo.GetDriver(context.Background(), "D9")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.NoError(t, repo.AddDriverStrike(context.Background(), "D1"))
	assert.ErrorIs(t, repo.AddDriverStrike(context.Background(), "D9"), apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
