package destination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galagram/galagram-api/internal/types"
)

var ErrNotFound = errors.New("destination not found")

var _ Repository = (*PostgresDestinationRepo)(nil)
var _ PGXQuerier = (*pgxpool.Pool)(nil)

// PGXQuerier is the slice of pgxpool.Pool the repository needs.
type PGXQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetDestinations(ctx context.Context, filter types.DestinationFilter) ([]types.Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
	CreateDestination(ctx context.Context, req types.CreateDestinationRequest) (*types.Destination, error)
	UpdateDestination(ctx context.Context, id uuid.UUID, req types.CreateDestinationRequest) (*types.Destination, error)
	DeleteDestination(ctx context.Context, id uuid.UUID) error

	AddFavorite(ctx context.Context, userID, destinationID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, destinationID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]types.Destination, error)
}

type PostgresDestinationRepo struct {
	logger *slog.Logger
	pgpool PGXQuerier
}

func NewPostgresDestinationRepo(pgpool PGXQuerier, logger *slog.Logger) *PostgresDestinationRepo {
	return &PostgresDestinationRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const destinationColumns = `id, name, description, rating, category, location, image_url, price_range, activities`

func scanDestination(row pgx.Row) (*types.Destination, error) {
	var d types.Destination
	var id uuid.UUID
	err := row.Scan(&id, &d.Name, &d.Description, &d.Rating, &d.Category,
		&d.Location, &d.Image, &d.PriceRange, &d.Activities)
	if err != nil {
		return nil, err
	}
	d.ID = id.String()
	return &d, nil
}

func (r *PostgresDestinationRepo) GetDestinations(ctx context.Context, filter types.DestinationFilter) ([]types.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, filter.Category)
		argPos++
	}
	if filter.MinRating > 0 {
		query += fmt.Sprintf(" AND rating >= $%d", argPos)
		args = append(args, filter.MinRating)
		argPos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR location ILIKE $%d OR description ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	query += " ORDER BY rating DESC, name ASC"

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	var destinations []types.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

func (r *PostgresDestinationRepo) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id)
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch destination: %w", err)
	}
	return d, nil
}

func (r *PostgresDestinationRepo) CreateDestination(ctx context.Context, req types.CreateDestinationRequest) (*types.Destination, error) {
	row := r.pgpool.QueryRow(ctx,
		`INSERT INTO destinations (name, description, rating, category, location, image_url, price_range, activities)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING `+destinationColumns,
		req.Name, req.Description, req.Rating, req.Category,
		req.Location, req.Image, req.PriceRange, req.Activities)
	d, err := scanDestination(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	r.logger.InfoContext(ctx, "Destination created", slog.String("name", req.Name))
	return d, nil
}

func (r *PostgresDestinationRepo) UpdateDestination(ctx context.Context, id uuid.UUID, req types.CreateDestinationRequest) (*types.Destination, error) {
	row := r.pgpool.QueryRow(ctx,
		`UPDATE destinations
         SET name = $2, description = $3, rating = $4, category = $5,
             location = $6, image_url = $7, price_range = $8, activities = $9
         WHERE id = $1
         RETURNING `+destinationColumns,
		id, req.Name, req.Description, req.Rating, req.Category,
		req.Location, req.Image, req.PriceRange, req.Activities)
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}
	return d, nil
}

func (r *PostgresDestinationRepo) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresDestinationRepo) AddFavorite(ctx context.Context, userID, destinationID uuid.UUID) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO user_favorites (user_id, destination_id) VALUES ($1, $2)
         ON CONFLICT (user_id, destination_id) DO NOTHING`,
		userID, destinationID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *PostgresDestinationRepo) RemoveFavorite(ctx context.Context, userID, destinationID uuid.UUID) error {
	_, err := r.pgpool.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND destination_id = $2`,
		userID, destinationID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *PostgresDestinationRepo) IsFavorited(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND destination_id = $2)`,
		userID, destinationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *PostgresDestinationRepo) GetFavorites(ctx context.Context, userID uuid.UUID) ([]types.Destination, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT d.id, d.name, d.description, d.rating, d.category, d.location, d.image_url, d.price_range, d.activities
         FROM user_favorites f
         JOIN destinations d ON d.id = f.destination_id
         WHERE f.user_id = $1
         ORDER BY f.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []types.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, *d)
	}
	return favorites, rows.Err()
}
