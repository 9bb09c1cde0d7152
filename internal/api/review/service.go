package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/galagram/galagram-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error)
	GetReviews(ctx context.Context, filter types.ReviewFilter) ([]types.Review, error)
	GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
	LikeReview(ctx context.Context, reviewID uuid.UUID) (int, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) CreateReview(ctx context.Context, userID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error) {
	if strings.TrimSpace(req.Place) == "" {
		return nil, types.NewValidationError("place", "place is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, types.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		return nil, types.NewValidationError("review", "review text is required")
	}
	return s.repo.CreateReview(ctx, userID, req)
}

func (s *ServiceImpl) GetReviews(ctx context.Context, filter types.ReviewFilter) ([]types.Review, error) {
	return s.repo.GetReviews(ctx, filter)
}

func (s *ServiceImpl) GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error) {
	return s.repo.GetReview(ctx, reviewID)
}

func (s *ServiceImpl) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, types.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if req.ReviewText != nil && strings.TrimSpace(*req.ReviewText) == "" {
		return nil, types.NewValidationError("review", "review text cannot be blank")
	}
	return s.repo.UpdateReview(ctx, userID, reviewID, req)
}

func (s *ServiceImpl) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	return s.repo.DeleteReview(ctx, userID, reviewID)
}

func (s *ServiceImpl) LikeReview(ctx context.Context, reviewID uuid.UUID) (int, error) {
	return s.repo.LikeReview(ctx, reviewID)
}
