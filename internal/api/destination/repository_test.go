package destination

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galagram/galagram-api/internal/types"
)

var spaceRuns = regexp.MustCompile(`\s+`)

// matchNormalized compares SQL with runs of whitespace collapsed, so
// multiline query literals can be asserted on a single line.
func matchNormalized(expectedSQL, actualSQL string) error {
	if spaceRuns.ReplaceAllString(strings.TrimSpace(actualSQL), " ") !=
		spaceRuns.ReplaceAllString(strings.TrimSpace(expectedSQL), " ") {
		return fmt.Errorf("query %q does not match expected %q", actualSQL, expectedSQL)
	}
	return nil
}

func newMockRepo(t *testing.T) (*PostgresDestinationRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherFunc(matchNormalized)))
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresDestinationRepo(mockPool, logger), mockPool
}

func destinationRows(ids ...uuid.UUID) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "description", "rating", "category", "location", "image_url", "price_range", "activities"})
	for i, id := range ids {
		rows.AddRow(id, "Destination "+string(rune('A'+i)), "A beautiful destination in the Philippines.",
			4.5, types.CategoryBeach, "Philippines", "https://example.com/img.jpg", "₱₱", []string{"Sightseeing"})
	}
	return rows
}

func TestPostgresDestinationRepo_GetDestinations(t *testing.T) {
	ctx := context.Background()

	t.Run("applies category, rating and search filters", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectQuery(`SELECT id, name, description, rating, category, location, image_url, price_range, activities FROM destinations WHERE 1=1 AND category = $1 AND rating >= $2 AND (name ILIKE $3 OR location ILIKE $3 OR description ILIKE $3) ORDER BY rating DESC, name ASC`).
			WithArgs(types.CategoryBeach, 4.0, "%bora%").
			WillReturnRows(destinationRows(id))

		got, err := repo.GetDestinations(ctx, types.DestinationFilter{
			Category:  types.CategoryBeach,
			MinRating: 4.0,
			Search:    "bora",
		})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id.String(), got[0].ID)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("returns no rows for an empty catalog", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectQuery(`SELECT id, name, description, rating, category, location, image_url, price_range, activities FROM destinations WHERE 1=1 ORDER BY rating DESC, name ASC`).
			WillReturnRows(destinationRows())

		got, err := repo.GetDestinations(ctx, types.DestinationFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresDestinationRepo_GetDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches a single destination by id", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectQuery(`SELECT id, name, description, rating, category, location, image_url, price_range, activities FROM destinations WHERE id = $1`).
			WithArgs(id).
			WillReturnRows(destinationRows(id))

		got, err := repo.GetDestination(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id.String(), got.ID)
		assert.Equal(t, "https://example.com/img.jpg", got.Image)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestSelectedColumnsExistInSchema(t *testing.T) {
	ddl, err := os.ReadFile("../../../app/db/migrations/000001_init.up.sql")
	require.NoError(t, err)

	table := string(ddl)
	start := strings.Index(table, "CREATE TABLE destinations")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(table[start:], ");")
	require.GreaterOrEqual(t, end, 0)
	table = table[start : start+end]

	for _, column := range strings.Split(destinationColumns, ", ") {
		assert.Contains(t, table, column, "destinations query selects a column the schema does not define")
	}
}

func TestPostgresDestinationRepo_DeleteDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("reports not found when nothing was deleted", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectExec(`DELETE FROM destinations WHERE id = $1`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeleteDestination(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresDestinationRepo_Favorites(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	destinationID := uuid.New()

	t.Run("add is idempotent via upsert", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectExec(`INSERT INTO user_favorites (user_id, destination_id) VALUES ($1, $2) ON CONFLICT (user_id, destination_id) DO NOTHING`).
			WithArgs(userID, destinationID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.AddFavorite(ctx, userID, destinationID))
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("lists favorites newest first", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectQuery(`SELECT d.id, d.name, d.description, d.rating, d.category, d.location, d.image_url, d.price_range, d.activities FROM user_favorites f JOIN destinations d ON d.id = f.destination_id WHERE f.user_id = $1 ORDER BY f.created_at DESC`).
			WithArgs(userID).
			WillReturnRows(destinationRows(destinationID))

		got, err := repo.GetFavorites(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, destinationID.String(), got[0].ID)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("membership check", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		mockPool.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND destination_id = $2)`).
			WithArgs(userID, destinationID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		favorited, err := repo.IsFavorited(ctx, userID, destinationID)
		require.NoError(t, err)
		assert.True(t, favorited)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}
