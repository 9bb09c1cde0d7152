package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galagram/galagram-api/internal/types"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrActivityNotFound  = errors.New("activity not found")
)

var _ Repository = (*PostgresItineraryRepo)(nil)

type Repository interface {
	CreateItinerary(ctx context.Context, userID uuid.UUID, title, destination string, startDate, endDate time.Time) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
	AddActivity(ctx context.Context, itineraryID uuid.UUID, req types.AddActivityRequest) (*types.Activity, error)
	DeleteActivity(ctx context.Context, itineraryID, activityID uuid.UUID) error
}

type PostgresItineraryRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresItineraryRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresItineraryRepo {
	return &PostgresItineraryRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresItineraryRepo) CreateItinerary(ctx context.Context, userID uuid.UUID, title, destination string, startDate, endDate time.Time) (*types.Itinerary, error) {
	var it types.Itinerary
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO itineraries (user_id, title, destination, start_date, end_date)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, user_id, title, destination, start_date, end_date, created_at`,
		userID, title, destination, startDate, endDate,
	).Scan(&it.ID, &it.UserID, &it.Title, &it.Destination, &it.StartDate, &it.EndDate, &it.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary: %w", err)
	}
	it.Activities = []types.Activity{}

	r.logger.InfoContext(ctx, "Itinerary created",
		slog.String("itinerary_id", it.ID.String()),
		slog.String("destination", destination))
	return &it, nil
}

func (r *PostgresItineraryRepo) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	var it types.Itinerary
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, user_id, title, destination, start_date, end_date, created_at
         FROM itineraries WHERE id = $1 AND user_id = $2`,
		itineraryID, userID,
	).Scan(&it.ID, &it.UserID, &it.Title, &it.Destination, &it.StartDate, &it.EndDate, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to fetch itinerary: %w", err)
	}

	activities, err := r.getActivities(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	it.Activities = activities
	return &it, nil
}

// GetItineraries returns the user's itineraries newest first, each with its
// activities ordered by day then time-of-day.
func (r *PostgresItineraryRepo) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, user_id, title, destination, start_date, end_date, created_at
         FROM itineraries WHERE user_id = $1
         ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []types.Itinerary
	for rows.Next() {
		var it types.Itinerary
		if err := rows.Scan(&it.ID, &it.UserID, &it.Title, &it.Destination,
			&it.StartDate, &it.EndDate, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range itineraries {
		activities, err := r.getActivities(ctx, itineraries[i].ID)
		if err != nil {
			return nil, err
		}
		itineraries[i].Activities = activities
	}
	return itineraries, nil
}

func (r *PostgresItineraryRepo) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM itineraries WHERE id = $1 AND user_id = $2`,
		itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItineraryNotFound
	}
	return nil
}

func (r *PostgresItineraryRepo) AddActivity(ctx context.Context, itineraryID uuid.UUID, req types.AddActivityRequest) (*types.Activity, error) {
	var a types.Activity
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO itinerary_activities (itinerary_id, name, day_number, time, notes)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, itinerary_id, name, day_number, time, notes`,
		itineraryID, req.Name, req.Day, req.Time, req.Notes,
	).Scan(&a.ID, &a.ItineraryID, &a.Name, &a.Day, &a.Time, &a.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}
	return &a, nil
}

func (r *PostgresItineraryRepo) DeleteActivity(ctx context.Context, itineraryID, activityID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM itinerary_activities WHERE id = $1 AND itinerary_id = $2`,
		activityID, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *PostgresItineraryRepo) getActivities(ctx context.Context, itineraryID uuid.UUID) ([]types.Activity, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, itinerary_id, name, day_number, time, notes
         FROM itinerary_activities WHERE itinerary_id = $1
         ORDER BY day_number ASC, time ASC`,
		itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []types.Activity{}
	for rows.Next() {
		var a types.Activity
		if err := rows.Scan(&a.ID, &a.ItineraryID, &a.Name, &a.Day, &a.Time, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
