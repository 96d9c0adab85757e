package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/services/trips/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rider  = models.Identity{SubjectID: "user-1", Role: models.RoleUser}
	driver = models.Identity{SubjectID: "driver-1", Role: models.RoleDriver}
	admin  = models.Identity{SubjectID: "admin-1", Role: models.RoleAdmin}
)

// newContext builds an echo context as if JWTAuthMiddleware already ran
func newContext(method, target, body string, caller *models.Identity, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if caller != nil {
		c.Set(constants.ContextKeyIdentity, *caller)
	}
	var names, values []string
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateTrip_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	body := `{
		"origin": {"address": "Pune", "lat": 18.52, "lng": 73.85},
		"stops": [{"address": "Mumbai", "lat": 19.07, "lng": 72.87}],
		"groupSize": 2,
		"startDate": "2026-11-01T08:00:00Z",
		"endDate": "2026-11-03T08:00:00Z"
	}`
	c, rec := newContext(http.MethodPost, "/trips", body, &rider, nil)

	mockTripUC.EXPECT().CreateTrip(gomock.Any(), rider, gomock.Any()).DoAndReturn(
		func(_ interface{}, _ models.Identity, req models.CreateTripRequest) (*models.Trip, error) {
			assert.Equal(t, "Pune", req.Origin.Address)
			assert.Equal(t, 19.07, req.Stops[0].Lat)
			assert.Equal(t, 2, req.GroupSize)
			return &models.Trip{ID: "trip-1", RequesterID: rider.SubjectID, Status: models.TripStatusPending}, nil
		})

	require.NoError(t, handler.CreateTrip(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	response := decode(t, rec)
	assert.Equal(t, true, response["success"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "trip-1", data["id"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Nil(t, data["driverId"])
}

func TestCreateTrip_InvalidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewTripHandler(mocks.NewMockTripUC(ctrl), mocks.NewMockLocationUC(ctrl))
	c, rec := newContext(http.MethodPost, "/trips", `{"groupSize": "many"`, &rider, nil)

	require.NoError(t, handler.CreateTrip(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewTripHandler(mocks.NewMockTripUC(ctrl), mocks.NewMockLocationUC(ctrl))
	c, rec := newContext(http.MethodPost, "/trips", `{}`, nil, nil)

	require.NoError(t, handler.CreateTrip(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListTrips_StatusFilter(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		expectCall bool
		wantCode   int
	}{
		{"pending", "?status=PENDING", true, http.StatusOK},
		{"lowercase pending", "?status=pending", true, http.StatusOK},
		{"default", "", true, http.StatusOK},
		{"unsupported status", "?status=COMPLETED", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTripUC := mocks.NewMockTripUC(ctrl)
			if tt.expectCall {
				mockTripUC.EXPECT().ListPendingTrips(gomock.Any()).Return([]*models.Trip{{ID: "trip-1"}}, nil)
			}
			handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))
			c, rec := newContext(http.MethodGet, "/trips"+tt.query, "", &driver, nil)

			require.NoError(t, handler.ListTrips(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetTrip_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", apperror.NotFound("trip trip-1 not found"), http.StatusNotFound, "trip trip-1 not found"},
		{"forbidden", apperror.Unauthorized("not allowed to view trip trip-1"), http.StatusForbidden, "not allowed to view trip trip-1"},
		{"store failure is masked", apperror.Persistence(assert.AnError, "query failed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTripUC := mocks.NewMockTripUC(ctrl)
			mockTripUC.EXPECT().GetTrip(gomock.Any(), "trip-1", rider).Return(nil, tt.err)

			handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))
			c, rec := newContext(http.MethodGet, "/trips/trip-1", "", &rider, map[string]string{"id": "trip-1"})

			require.NoError(t, handler.GetTrip(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			response := decode(t, rec)
			assert.Equal(t, false, response["success"])
			assert.Equal(t, tt.wantMsg, response["error"])
		})
	}
}

func TestAcceptTrip(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCall bool
		ucErr      error
		wantCode   int
	}{
		{"empty body", "", true, nil, http.StatusOK},
		{"matching driver id", `{"driverId": "driver-1"}`, true, nil, http.StatusOK},
		{"someone else's driver id", `{"driverId": "driver-2"}`, false, nil, http.StatusForbidden},
		{"already taken", "", true, apperror.InvalidState("trip trip-1 is CONFIRMED"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTripUC := mocks.NewMockTripUC(ctrl)
			if tt.expectCall {
				var trip *models.Trip
				if tt.ucErr == nil {
					driverID := driver.SubjectID
					trip = &models.Trip{ID: "trip-1", DriverID: &driverID, Status: models.TripStatusConfirmed}
				}
				mockTripUC.EXPECT().AcceptTrip(gomock.Any(), "trip-1", driver).Return(trip, tt.ucErr)
			}

			handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))
			c, rec := newContext(http.MethodPut, "/trips/trip-1/accept", tt.body, &driver, map[string]string{"id": "trip-1"})

			require.NoError(t, handler.AcceptTrip(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestStartAndCompleteTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	mockTripUC.EXPECT().StartTrip(gomock.Any(), "trip-1", driver).
		Return(&models.Trip{ID: "trip-1", Status: models.TripStatusInProgress}, nil)
	mockTripUC.EXPECT().CompleteTrip(gomock.Any(), "trip-1", driver).
		Return(nil, apperror.InvalidState("trip trip-1 is PENDING"))

	c, rec := newContext(http.MethodPut, "/trips/trip-1/start", "", &driver, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.StartTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPut, "/trips/trip-1/complete", "", &driver, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.CompleteTrip(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelTrip_PassesReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	mockTripUC.EXPECT().CancelTrip(gomock.Any(), "trip-1", rider, "plans changed").
		Return(&models.Trip{ID: "trip-1", Status: models.TripStatusCancelled, CancelReason: "plans changed"}, nil)

	c, rec := newContext(http.MethodPut, "/trips/trip-1/cancel", `{"reason": "plans changed"}`, &rider, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.CancelTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "CANCELLED", data["status"])
	assert.Equal(t, "plans changed", data["cancelReason"])
}

func TestRateTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	mockTripUC.EXPECT().RateTrip(gomock.Any(), "trip-1", rider, 9).Return(nil, apperror.Validation("rating must be between 1 and 5"))

	c, rec := newContext(http.MethodPut, "/trips/trip-1/rating", `{"rating": 9}`, &rider, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.RateTrip(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rating must be between 1 and 5", decode(t, rec)["error"])
}

func TestDeleteTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	mockTripUC.EXPECT().DeleteTrip(gomock.Any(), "trip-1", rider).Return(nil)

	c, rec := newContext(http.MethodDelete, "/trips/trip-1", "", &rider, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.DeleteTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLocationUC := mocks.NewMockLocationUC(ctrl)
	handler := NewTripHandler(mocks.NewMockTripUC(ctrl), mockLocationUC)

	mockLocationUC.EXPECT().GetLocation(gomock.Any(), "trip-1", rider).
		Return(&models.LastKnownLocation{Coordinates: models.Coordinates{Lat: 18.5, Lng: 73.8}, Geohash: "tek5"}, nil)

	c, rec := newContext(http.MethodGet, "/trips/trip-1/location", "", &rider, map[string]string{"id": "trip-1"})
	require.NoError(t, handler.GetLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 18.5, data["lat"])
	assert.Equal(t, "tek5", data["geohash"])
}

func TestListMyTrips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTripUC := mocks.NewMockTripUC(ctrl)
	handler := NewTripHandler(mockTripUC, mocks.NewMockLocationUC(ctrl))

	mockTripUC.EXPECT().ListTripsForRequester(gomock.Any(), rider.SubjectID).Return([]*models.Trip{}, nil)

	c, rec := newContext(http.MethodGet, "/trips/mine", "", &rider, nil)
	require.NoError(t, handler.ListMyTrips(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
