package destination

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/galagram/galagram-api/internal/types"
)

type MockDestinationRepo struct {
	mock.Mock
}

func (m *MockDestinationRepo) GetDestinations(ctx context.Context, filter types.DestinationFilter) ([]types.Destination, error) {
	args := m.Called(ctx, filter)
	dest, _ := args.Get(0).([]types.Destination)
	return dest, args.Error(1)
}

func (m *MockDestinationRepo) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	args := m.Called(ctx, id)
	dest, _ := args.Get(0).(*types.Destination)
	return dest, args.Error(1)
}

func (m *MockDestinationRepo) CreateDestination(ctx context.Context, req types.CreateDestinationRequest) (*types.Destination, error) {
	args := m.Called(ctx, req)
	dest, _ := args.Get(0).(*types.Destination)
	return dest, args.Error(1)
}

func (m *MockDestinationRepo) UpdateDestination(ctx context.Context, id uuid.UUID, req types.CreateDestinationRequest) (*types.Destination, error) {
	args := m.Called(ctx, id, req)
	dest, _ := args.Get(0).(*types.Destination)
	return dest, args.Error(1)
}

func (m *MockDestinationRepo) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDestinationRepo) AddFavorite(ctx context.Context, userID, destinationID uuid.UUID) error {
	args := m.Called(ctx, userID, destinationID)
	return args.Error(0)
}

func (m *MockDestinationRepo) RemoveFavorite(ctx context.Context, userID, destinationID uuid.UUID) error {
	args := m.Called(ctx, userID, destinationID)
	return args.Error(0)
}

func (m *MockDestinationRepo) IsFavorited(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, destinationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDestinationRepo) GetFavorites(ctx context.Context, userID uuid.UUID) ([]types.Destination, error) {
	args := m.Called(ctx, userID)
	dest, _ := args.Get(0).([]types.Destination)
	return dest, args.Error(1)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceImpl_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	destinationID := uuid.New()
	dest := &types.Destination{ID: destinationID.String(), Name: "Boracay"}

	t.Run("adds when not yet favorited", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		repo.On("GetDestination", ctx, destinationID).Return(dest, nil)
		repo.On("IsFavorited", ctx, userID, destinationID).Return(false, nil)
		repo.On("AddFavorite", ctx, userID, destinationID).Return(nil)

		favorited, err := svc.ToggleFavorite(ctx, userID, destinationID)
		require.NoError(t, err)
		assert.True(t, favorited)
		repo.AssertExpectations(t)
	})

	t.Run("removes when already favorited", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		repo.On("GetDestination", ctx, destinationID).Return(dest, nil)
		repo.On("IsFavorited", ctx, userID, destinationID).Return(true, nil)
		repo.On("RemoveFavorite", ctx, userID, destinationID).Return(nil)

		favorited, err := svc.ToggleFavorite(ctx, userID, destinationID)
		require.NoError(t, err)
		assert.False(t, favorited)
		repo.AssertExpectations(t)
	})

	t.Run("keeps the prior state when the write fails", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		repo.On("GetDestination", ctx, destinationID).Return(dest, nil)
		repo.On("IsFavorited", ctx, userID, destinationID).Return(false, nil)
		repo.On("AddFavorite", ctx, userID, destinationID).Return(errors.New("connection reset"))

		favorited, err := svc.ToggleFavorite(ctx, userID, destinationID)
		require.Error(t, err)
		assert.False(t, favorited)
	})

	t.Run("rejects unknown destinations", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		repo.On("GetDestination", ctx, destinationID).Return(nil, ErrNotFound)

		_, err := svc.ToggleFavorite(ctx, userID, destinationID)
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "AddFavorite")
		repo.AssertNotCalled(t, "RemoveFavorite")
	})

	t.Run("rejects a second toggle while one is unresolved", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		started := make(chan struct{})
		release := make(chan struct{})

		repo.On("GetDestination", ctx, destinationID).Return(dest, nil)
		repo.On("IsFavorited", ctx, userID, destinationID).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(false, nil)
		repo.On("AddFavorite", ctx, userID, destinationID).Return(nil)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleFavorite(ctx, userID, destinationID)
			assert.NoError(t, err)
		}()

		<-started
		_, err := svc.ToggleFavorite(ctx, userID, destinationID)
		assert.ErrorIs(t, err, ErrToggleInFlight)

		close(release)
		wg.Wait()
	})

	t.Run("invalidates the cached favorites list", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		repo.On("GetFavorites", ctx, userID).Return([]types.Destination{}, nil).Once()
		_, err := svc.GetFavorites(ctx, userID)
		require.NoError(t, err)

		// Served from cache, no second repo call.
		_, err = svc.GetFavorites(ctx, userID)
		require.NoError(t, err)

		repo.On("GetDestination", ctx, destinationID).Return(dest, nil)
		repo.On("IsFavorited", ctx, userID, destinationID).Return(false, nil)
		repo.On("AddFavorite", ctx, userID, destinationID).Return(nil)
		_, err = svc.ToggleFavorite(ctx, userID, destinationID)
		require.NoError(t, err)

		repo.On("GetFavorites", ctx, userID).Return([]types.Destination{*dest}, nil).Once()
		favorites, err := svc.GetFavorites(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)
		repo.AssertExpectations(t)
	})
}

func TestServiceImpl_CreateDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a blank name", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		_, err := svc.CreateDestination(ctx, types.CreateDestinationRequest{Name: "  ", Location: "Palawan"})

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
		repo.AssertNotCalled(t, "CreateDestination")
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		repo := new(MockDestinationRepo)
		svc := newTestService(repo)

		_, err := svc.CreateDestination(ctx, types.CreateDestinationRequest{Name: "El Nido", Location: "Palawan", Rating: 9})

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "rating", ve.Field)
	})
}
