package destination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/galagram/galagram-api/app/observability/metrics"
	"github.com/galagram/galagram-api/internal/types"
)

// ErrToggleInFlight reports that a favorite toggle for the same user and
// destination has not resolved yet.
var ErrToggleInFlight = errors.New("favorite toggle already in progress")

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetDestinations(ctx context.Context, filter types.DestinationFilter) ([]types.Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
	CreateDestination(ctx context.Context, req types.CreateDestinationRequest) (*types.Destination, error)
	UpdateDestination(ctx context.Context, id uuid.UUID, req types.CreateDestinationRequest) (*types.Destination, error)
	DeleteDestination(ctx context.Context, id uuid.UUID) error

	ToggleFavorite(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]types.Destination, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository

	favoritesCache *cache.Cache

	pendingMu sync.Mutex
	pending   map[string]struct{}
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		repo:           repo,
		favoritesCache: cache.New(5*time.Minute, 10*time.Minute),
		pending:        map[string]struct{}{},
	}
}

func (s *ServiceImpl) GetDestinations(ctx context.Context, filter types.DestinationFilter) ([]types.Destination, error) {
	return s.repo.GetDestinations(ctx, filter)
}

func (s *ServiceImpl) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	return s.repo.GetDestination(ctx, id)
}

func (s *ServiceImpl) CreateDestination(ctx context.Context, req types.CreateDestinationRequest) (*types.Destination, error) {
	if err := validateDestinationRequest(req); err != nil {
		return nil, err
	}
	return s.repo.CreateDestination(ctx, req)
}

func (s *ServiceImpl) UpdateDestination(ctx context.Context, id uuid.UUID, req types.CreateDestinationRequest) (*types.Destination, error) {
	if err := validateDestinationRequest(req); err != nil {
		return nil, err
	}
	return s.repo.UpdateDestination(ctx, id, req)
}

func (s *ServiceImpl) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDestination(ctx, id)
}

// ToggleFavorite flips the favorite state of a destination for a user and
// returns the new state. The result reflects the store, not a local guess:
// callers see the change only after the write is confirmed. While a toggle
// for the same pair is unresolved, further toggles are rejected.
func (s *ServiceImpl) ToggleFavorite(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	key := userID.String() + ":" + destinationID.String()

	s.pendingMu.Lock()
	if _, inFlight := s.pending[key]; inFlight {
		s.pendingMu.Unlock()
		return false, ErrToggleInFlight
	}
	s.pending[key] = struct{}{}
	s.pendingMu.Unlock()

	defer func() {
		s.pendingMu.Lock()
		delete(s.pending, key)
		s.pendingMu.Unlock()
	}()

	if _, err := s.repo.GetDestination(ctx, destinationID); err != nil {
		return false, err
	}

	favorited, err := s.repo.IsFavorited(ctx, userID, destinationID)
	if err != nil {
		return false, err
	}

	if favorited {
		err = s.repo.RemoveFavorite(ctx, userID, destinationID)
	} else {
		err = s.repo.AddFavorite(ctx, userID, destinationID)
	}
	if err != nil {
		return favorited, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.favoritesCache.Delete(userID.String())
	metrics.Get().FavoriteTogglesTotal.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Favorite toggled",
		slog.String("user_id", userID.String()),
		slog.String("destination_id", destinationID.String()),
		slog.Bool("favorited", !favorited))
	return !favorited, nil
}

func (s *ServiceImpl) GetFavorites(ctx context.Context, userID uuid.UUID) ([]types.Destination, error) {
	if cached, found := s.favoritesCache.Get(userID.String()); found {
		if favorites, ok := cached.([]types.Destination); ok {
			return favorites, nil
		}
	}
	favorites, err := s.repo.GetFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.favoritesCache.Set(userID.String(), favorites, cache.DefaultExpiration)
	return favorites, nil
}

func validateDestinationRequest(req types.CreateDestinationRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return types.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return types.NewValidationError("location", "location is required")
	}
	if req.Rating < 0 || req.Rating > 5 {
		return types.NewValidationError("rating", "rating must be between 0 and 5")
	}
	return nil
}
