package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galagram/galagram-api/internal/types"
)

var ErrReviewNotFound = errors.New("review not found")

var _ Repository = (*PostgresReviewRepo)(nil)

type Repository interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error)
	GetReviews(ctx context.Context, filter types.ReviewFilter) ([]types.Review, error)
	GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
	LikeReview(ctx context.Context, reviewID uuid.UUID) (int, error)
}

type PostgresReviewRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresReviewRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresReviewRepo {
	return &PostgresReviewRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const reviewSelect = `
    SELECT r.id, r.user_id, u.username, r.destination_name, r.location, r.category,
           r.rating, r.review_text, r.images, r.likes_count, r.comments_count, r.created_at
    FROM reviews r
    JOIN users u ON u.id = r.user_id`

func scanReview(row pgx.Row) (*types.Review, error) {
	var rev types.Review
	err := row.Scan(&rev.ID, &rev.UserID, &rev.Author, &rev.Place, &rev.Location,
		&rev.Category, &rev.Rating, &rev.ReviewText, &rev.Images,
		&rev.LikesCount, &rev.CommentsCount, &rev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *PostgresReviewRepo) CreateReview(ctx context.Context, userID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error) {
	images := req.Images
	if images == nil {
		images = []string{}
	}

	var reviewID uuid.UUID
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO reviews (user_id, destination_name, location, category, rating, review_text, images)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id`,
		userID, req.Place, req.Location, req.Category, req.Rating, req.ReviewText, images,
	).Scan(&reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.InfoContext(ctx, "Review created",
		slog.String("review_id", reviewID.String()),
		slog.String("place", req.Place))
	return r.GetReview(ctx, reviewID)
}

// GetReviews returns the public feed, newest first.
func (r *PostgresReviewRepo) GetReviews(ctx context.Context, filter types.ReviewFilter) ([]types.Review, error) {
	query := reviewSelect + ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND r.category = $%d", argPos)
		args = append(args, filter.Category)
		argPos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (r.destination_name ILIKE $%d OR r.location ILIKE $%d OR r.review_text ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []types.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresReviewRepo) GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error) {
	rev, err := scanReview(r.pgpool.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	return rev, nil
}

func (r *PostgresReviewRepo) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error) {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE reviews
         SET rating = COALESCE($3, rating),
             review_text = COALESCE($4, review_text)
         WHERE id = $1 AND user_id = $2`,
		reviewID, userID, req.Rating, req.ReviewText)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrReviewNotFound
	}
	return r.GetReview(ctx, reviewID)
}

func (r *PostgresReviewRepo) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM reviews WHERE id = $1 AND user_id = $2`,
		reviewID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *PostgresReviewRepo) LikeReview(ctx context.Context, reviewID uuid.UUID) (int, error) {
	var likes int
	err := r.pgpool.QueryRow(ctx,
		`UPDATE reviews SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count`,
		reviewID,
	).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrReviewNotFound
		}
		return 0, fmt.Errorf("failed to like review: %w", err)
	}
	return likes, nil
}
