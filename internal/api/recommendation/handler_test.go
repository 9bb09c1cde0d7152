package recommendation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/galagram/galagram-api/internal/types"
)

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) GetRecommendations(ctx context.Context, userID *uuid.UUID, destination, category string) types.RecommendationResult {
	args := m.Called(ctx, userID, destination, category)
	result, _ := args.Get(0).(types.RecommendationResult)
	return result
}

func (m *MockRecommendationService) GetFoodRecommendations(ctx context.Context, userID *uuid.UUID, destination string) types.RecommendationResult {
	args := m.Called(ctx, userID, destination)
	result, _ := args.Get(0).(types.RecommendationResult)
	return result
}

func (m *MockRecommendationService) GetAccommodationRecommendations(ctx context.Context, userID *uuid.UUID, destination, budget string) types.RecommendationResult {
	args := m.Called(ctx, userID, destination, budget)
	result, _ := args.Get(0).(types.RecommendationResult)
	return result
}

func (m *MockRecommendationService) Search(ctx context.Context, userID *uuid.UUID, destination, budget string) *types.SearchResults {
	args := m.Called(ctx, userID, destination, budget)
	results, _ := args.Get(0).(*types.SearchResults)
	return results
}

func (m *MockRecommendationService) GenerateItinerarySuggestion(ctx context.Context, destination string, days int) types.ItinerarySuggestion {
	args := m.Called(ctx, destination, days)
	suggestion, _ := args.Get(0).(types.ItinerarySuggestion)
	return suggestion
}

func (m *MockRecommendationService) Chat(ctx context.Context, userID uuid.UUID, message string) (types.ChatMessage, error) {
	args := m.Called(ctx, userID, message)
	msg, _ := args.Get(0).(types.ChatMessage)
	return msg, args.Error(1)
}

func (m *MockRecommendationService) ChatHistory(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error) {
	args := m.Called(ctx, userID)
	history, _ := args.Get(0).([]types.ChatMessage)
	return history, args.Error(1)
}

func (m *MockRecommendationService) Configured() bool {
	return m.Called().Bool(0)
}

func newTestHandler(svc Service) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandler_GetRecommendations(t *testing.T) {
	t.Run("an omitted category resolves as the attractions category", func(t *testing.T) {
		svc := new(MockRecommendationService)
		svc.On("GetRecommendations", mock.Anything, (*uuid.UUID)(nil), "Boracay", categoryAttractions).
			Return(types.RecommendationResult{Fallback: true})
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?destination=Boracay", nil)
		rec := httptest.NewRecorder()
		h.GetRecommendations(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("requires a destination", func(t *testing.T) {
		svc := new(MockRecommendationService)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
		rec := httptest.NewRecorder()
		h.GetRecommendations(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetRecommendations")
	})
}
