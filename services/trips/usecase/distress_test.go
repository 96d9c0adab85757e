package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/services/trips/mocks"
	"github.com/sagarsaathi/saathi/services/trips/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemoryTrip(t *testing.T, repo *repository.MemoryTripRepo, status models.TripStatus) *models.Trip {
	t.Helper()
	trip := tripWithStatus(status, driver1.SubjectID)
	trip.CreatedAt = models.Now()
	trip.UpdatedAt = trip.CreatedAt
	require.NoError(t, repo.CreateTrip(context.Background(), trip))
	return trip
}

func TestTriggerDistress_EveryTriggerIsBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryTripRepository()
	trip := seedMemoryTrip(t, repo, models.TripStatusInProgress)

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	gw := mocks.NewMockTripGW(ctrl)

	var seqs []int
	broadcaster.EXPECT().BroadcastToRole(models.RoleAdmin, constants.EventSOSAlert, gomock.Any()).DoAndReturn(
		func(_ models.Role, _ string, data interface{}) int {
			alert := data.(*models.SOSAlertEvent)
			assert.Equal(t, trip.ID, alert.TripID)
			assert.Equal(t, pune, alert.Location)
			seqs = append(seqs, alert.Seq)
			return 1
		}).Times(2)
	gw.EXPECT().PublishSOS(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	uc, err := NewDistressUC(testConfig(), repo, gw, broadcaster)
	require.NoError(t, err)

	first, err := uc.TriggerDistress(context.Background(), trip.ID, pune, requester)
	require.NoError(t, err)
	assert.Equal(t, requester.SubjectID, first.TriggeredBy)
	assert.Equal(t, driver1.SubjectID, first.DriverID)

	second, err := uc.TriggerDistress(context.Background(), trip.ID, pune, driver1)
	require.NoError(t, err)
	assert.Equal(t, driver1.SubjectID, second.TriggeredBy)

	assert.Equal(t, []int{1, 2}, seqs)

	stored, err := repo.GetTrip(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.True(t, stored.DistressTriggered)
	assert.Len(t, stored.DistressHistory, 2)
}

func TestTriggerDistress_NoMonitorsOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryTripRepository()
	trip := seedMemoryTrip(t, repo, models.TripStatusPending)

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	gw := mocks.NewMockTripGW(ctrl)
	broadcaster.EXPECT().BroadcastToRole(models.RoleAdmin, constants.EventSOSAlert, gomock.Any()).Return(0)
	gw.EXPECT().PublishSOS(gomock.Any(), gomock.Any()).Return(assert.AnError)

	uc, err := NewDistressUC(testConfig(), repo, gw, broadcaster)
	require.NoError(t, err)

	alert, err := uc.TriggerDistress(context.Background(), trip.ID, pune, requester)
	require.NoError(t, err)
	assert.Equal(t, 1, alert.Seq)
}

func TestTriggerDistress_PersistFailureIsNotBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTripRepo(ctrl)
	mockRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(tripWithStatus(models.TripStatusInProgress, driver1.SubjectID), nil)
	mockRepo.EXPECT().AppendDistressEvent(gomock.Any(), "trip-1", gomock.Any(), pune).
		Return(nil, apperror.Persistence(assert.AnError, "insert failed"))

	// broadcaster and gateway carry no expectations
	uc, err := NewDistressUC(testConfig(), mockRepo, mocks.NewMockTripGW(ctrl), mocks.NewMockBroadcaster(ctrl))
	require.NoError(t, err)

	alert, err := uc.TriggerDistress(context.Background(), "trip-1", pune, requester)
	assert.Nil(t, alert)
	assert.ErrorIs(t, err, apperror.ErrPersistence)
}

func TestTriggerDistress_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		coords  models.Coordinates
		sender  models.Identity
		trip    *models.Trip
		wantErr error
	}{
		{"invalid coordinates", models.Coordinates{Lat: -91}, requester, nil, apperror.ErrValidation},
		{"outsider", pune, driver2, tripWithStatus(models.TripStatusInProgress, driver1.SubjectID), apperror.ErrUnauthorized},
		{"admin is not a participant", pune, admin, tripWithStatus(models.TripStatusInProgress, driver1.SubjectID), apperror.ErrUnauthorized},
		{"finished trip", pune, requester, tripWithStatus(models.TripStatusCompleted, driver1.SubjectID), apperror.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockTripRepo(ctrl)
			if tt.trip != nil {
				mockRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(tt.trip, nil)
			}

			uc, err := NewDistressUC(testConfig(), mockRepo, mocks.NewMockTripGW(ctrl), mocks.NewMockBroadcaster(ctrl))
			require.NoError(t, err)

			_, err = uc.TriggerDistress(context.Background(), "trip-1", tt.coords, tt.sender)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAcknowledgeDistress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryTripRepository()
	trip := seedMemoryTrip(t, repo, models.TripStatusInProgress)
	_, err := repo.AppendDistressEvent(context.Background(), trip.ID, time.Now().UTC(), pune)
	require.NoError(t, err)

	uc, err := NewDistressUC(testConfig(), repo, mocks.NewMockTripGW(ctrl), mocks.NewMockBroadcaster(ctrl))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = uc.AcknowledgeDistress(ctx, trip.ID, 1, requester)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = uc.AcknowledgeDistress(ctx, trip.ID, 0, admin)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = uc.AcknowledgeDistress(ctx, trip.ID, 2, admin)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	event, err := uc.AcknowledgeDistress(ctx, trip.ID, 1, admin)
	require.NoError(t, err)
	assert.Equal(t, admin.SubjectID, event.HandledBy)

	_, err = uc.AcknowledgeDistress(ctx, trip.ID, 1, admin)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	stored, err := repo.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.True(t, stored.DistressTriggered)
	assert.False(t, stored.HasActiveDistress())
}
