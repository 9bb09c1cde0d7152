package itinerary

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/galagram/galagram-api/internal/types"
)

type MockItineraryRepo struct {
	mock.Mock
}

func (m *MockItineraryRepo) CreateItinerary(ctx context.Context, userID uuid.UUID, title, destination string, startDate, endDate time.Time) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, title, destination, startDate, endDate)
	it, _ := args.Get(0).(*types.Itinerary)
	return it, args.Error(1)
}

func (m *MockItineraryRepo) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID)
	it, _ := args.Get(0).(*types.Itinerary)
	return it, args.Error(1)
}

func (m *MockItineraryRepo) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID)
	its, _ := args.Get(0).([]types.Itinerary)
	return its, args.Error(1)
}

func (m *MockItineraryRepo) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

func (m *MockItineraryRepo) AddActivity(ctx context.Context, itineraryID uuid.UUID, req types.AddActivityRequest) (*types.Activity, error) {
	args := m.Called(ctx, itineraryID, req)
	a, _ := args.Get(0).(*types.Activity)
	return a, args.Error(1)
}

func (m *MockItineraryRepo) DeleteActivity(ctx context.Context, itineraryID, activityID uuid.UUID) error {
	args := m.Called(ctx, itineraryID, activityID)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceImpl_CreateItinerary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name      string
		req       types.CreateItineraryRequest
		wantField string
	}{
		{
			name:      "blank title",
			req:       types.CreateItineraryRequest{Title: "   ", Destination: "Boracay", StartDate: "2026-01-10", EndDate: "2026-01-12"},
			wantField: "title",
		},
		{
			name:      "blank destination",
			req:       types.CreateItineraryRequest{Title: "Trip", Destination: "", StartDate: "2026-01-10", EndDate: "2026-01-12"},
			wantField: "destination",
		},
		{
			name:      "malformed start date",
			req:       types.CreateItineraryRequest{Title: "Trip", Destination: "Boracay", StartDate: "10-01-2026", EndDate: "2026-01-12"},
			wantField: "startDate",
		},
		{
			name:      "start after end",
			req:       types.CreateItineraryRequest{Title: "Trip", Destination: "Boracay", StartDate: "2026-01-15", EndDate: "2026-01-12"},
			wantField: "startDate",
		},
	}

	for _, tc := range cases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			repo := new(MockItineraryRepo)
			svc := newTestService(repo)

			_, err := svc.CreateItinerary(ctx, userID, tc.req)

			var ve *types.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.wantField, ve.Field)
			repo.AssertNotCalled(t, "CreateItinerary")
		})
	}

	t.Run("persists a valid request with parsed dates", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		created := &types.Itinerary{ID: uuid.New(), UserID: userID, Title: "Trip", Destination: "Boracay", StartDate: start, EndDate: end}
		repo.On("CreateItinerary", ctx, userID, "Trip", "Boracay", start, end).Return(created, nil)

		it, err := svc.CreateItinerary(ctx, userID, types.CreateItineraryRequest{
			Title: "Trip", Destination: "Boracay", StartDate: "2026-01-10", EndDate: "2026-01-12",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, it.DayCount())
		repo.AssertExpectations(t)
	})

	t.Run("accepts a single-day trip", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		day := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
		created := &types.Itinerary{ID: uuid.New(), UserID: userID, Title: "Pahiyas", Destination: "Lucban", StartDate: day, EndDate: day}
		repo.On("CreateItinerary", ctx, userID, "Pahiyas", "Lucban", day, day).Return(created, nil)

		it, err := svc.CreateItinerary(ctx, userID, types.CreateItineraryRequest{
			Title: "Pahiyas", Destination: "Lucban", StartDate: "2026-05-15", EndDate: "2026-05-15",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, it.DayCount())
	})
}

func TestServiceImpl_AddActivity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	threeDayTrip := &types.Itinerary{
		ID:          itineraryID,
		UserID:      userID,
		Title:       "Trip",
		Destination: "Boracay",
		StartDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("rejects a day outside the trip span", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(threeDayTrip, nil)

		_, err := svc.AddActivity(ctx, userID, itineraryID, types.AddActivityRequest{
			Name: "Island hopping", Day: 4, Time: "09:00",
		})

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "day", ve.Field)
		repo.AssertNotCalled(t, "AddActivity")
	})

	t.Run("rejects day zero", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(threeDayTrip, nil)

		_, err := svc.AddActivity(ctx, userID, itineraryID, types.AddActivityRequest{
			Name: "Island hopping", Day: 0, Time: "09:00",
		})

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "day", ve.Field)
	})

	t.Run("rejects unpadded times", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		_, err := svc.AddActivity(ctx, userID, itineraryID, types.AddActivityRequest{
			Name: "Breakfast", Day: 1, Time: "9:00",
		})

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "time", ve.Field)
		repo.AssertNotCalled(t, "GetItinerary")
	})

	t.Run("stores a valid activity on the last day", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		req := types.AddActivityRequest{Name: "Sunset sail", Day: 3, Time: "17:30"}
		stored := &types.Activity{ID: uuid.New(), ItineraryID: itineraryID, Name: "Sunset sail", Day: 3, Time: "17:30"}

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(threeDayTrip, nil)
		repo.On("AddActivity", ctx, itineraryID, req).Return(stored, nil)

		activity, err := svc.AddActivity(ctx, userID, itineraryID, req)
		require.NoError(t, err)
		assert.Equal(t, stored, activity)
		repo.AssertExpectations(t)
	})

	t.Run("refuses activities on another user's itinerary", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(nil, ErrItineraryNotFound)

		_, err := svc.AddActivity(ctx, userID, itineraryID, types.AddActivityRequest{
			Name: "Island hopping", Day: 1, Time: "09:00",
		})
		assert.ErrorIs(t, err, ErrItineraryNotFound)
	})
}

func TestServiceImpl_Export(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	trip := &types.Itinerary{
		ID:          itineraryID,
		UserID:      userID,
		Title:       "Boracay Getaway",
		Destination: "Boracay",
		StartDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("text export reads the itinerary once", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(trip, nil).Once()

		export, err := svc.Export(ctx, userID, itineraryID, "")
		require.NoError(t, err)
		assert.Equal(t, "Boracay_Getaway.txt", export.Filename)
		assert.Equal(t, "text/plain; charset=utf-8", export.ContentType)
		assert.Contains(t, string(export.Data), "Destination: Boracay")
		repo.AssertExpectations(t)
	})

	t.Run("pdf export also takes a single read", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(trip, nil).Once()

		export, err := svc.Export(ctx, userID, itineraryID, "pdf")
		require.NoError(t, err)
		assert.Equal(t, "Boracay_Getaway.pdf", export.Filename)
		assert.Equal(t, "application/pdf", export.ContentType)
		require.Greater(t, len(export.Data), 4)
		assert.Equal(t, "%PDF", string(export.Data[:4]))
		repo.AssertExpectations(t)
	})

	t.Run("unknown itineraries do not export", func(t *testing.T) {
		repo := new(MockItineraryRepo)
		svc := newTestService(repo)

		repo.On("GetItinerary", ctx, userID, itineraryID).Return(nil, ErrItineraryNotFound)

		_, err := svc.Export(ctx, userID, itineraryID, "pdf")
		assert.ErrorIs(t, err, ErrItineraryNotFound)
	})
}
