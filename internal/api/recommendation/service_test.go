package recommendation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/galagram/galagram-api/internal/api/generative_ai"
	"github.com/galagram/galagram-api/internal/types"
)

type MockRecommendationRepo struct {
	mock.Mock
}

func (m *MockRecommendationRepo) SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) error {
	args := m.Called(ctx, userID, role, content)
	return args.Error(0)
}

func (m *MockRecommendationRepo) GetChatHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error) {
	args := m.Called(ctx, userID, limit)
	history, _ := args.Get(0).([]types.ChatMessage)
	return history, args.Error(1)
}

func (m *MockRecommendationRepo) LogRecommendation(ctx context.Context, userID *uuid.UUID, destination, category string, fallback bool, latencyMs int64) error {
	args := m.Called(ctx, userID, destination, category, fallback, latencyMs)
	return args.Error(0)
}

// newUnconfiguredService has no AI client, so every request resolves against
// the static tables.
func newUnconfiguredService(repo Repository) *ServiceImpl {
	return NewService(nil, repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceImpl_GetRecommendations_Unconfigured(t *testing.T) {
	ctx := context.Background()

	t.Run("serves fallback data and flags it", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("LogRecommendation", mock.Anything, (*uuid.UUID)(nil), "Boracay", categoryAttractions, true, mock.AnythingOfType("int64")).
			Return(nil)
		svc := newUnconfiguredService(repo)

		result := svc.GetRecommendations(ctx, nil, "Boracay", categoryAttractions)

		assert.True(t, result.Fallback)
		assert.Len(t, result.Recommendations, 6)
		repo.AssertExpectations(t)
	})

	t.Run("food category routes to the restaurant table", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("LogRecommendation", mock.Anything, (*uuid.UUID)(nil), "Lucban", categoryFood, true, mock.AnythingOfType("int64")).
			Return(nil)
		svc := newUnconfiguredService(repo)

		result := svc.GetFoodRecommendations(ctx, nil, "Lucban")

		assert.True(t, result.Fallback)
		assert.Len(t, result.Recommendations, 5)
	})

	t.Run("budget qualifier still reaches the accommodation table", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("LogRecommendation", mock.Anything, (*uuid.UUID)(nil), "Boracay", categoryAccommodations+" (luxury budget)", true, mock.AnythingOfType("int64")).
			Return(nil)
		svc := newUnconfiguredService(repo)

		result := svc.GetAccommodationRecommendations(ctx, nil, "Boracay", "luxury")

		assert.True(t, result.Fallback)
		assert.Len(t, result.Recommendations, 5)
	})
}

func TestServiceImpl_Search_Unconfigured(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRecommendationRepo)
	repo.On("LogRecommendation", mock.Anything, (*uuid.UUID)(nil), mock.Anything, mock.Anything, true, mock.AnythingOfType("int64")).
		Return(nil)
	svc := newUnconfiguredService(repo)

	results := svc.Search(ctx, nil, "Cebu", "all")

	require.NotNil(t, results)
	assert.Len(t, results.Destinations, 6)
	assert.Len(t, results.Restaurants, 5)
	assert.Len(t, results.Accommodations, 5)

	// Normalization ran: records are canonical with synthesized ids.
	assert.Equal(t, "fallback-0", results.Destinations[0].ID)
	assert.NotEmpty(t, results.Destinations[0].Description)
	for _, d := range results.Restaurants {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Image)
	}
}

func TestServiceImpl_GenerateItinerarySuggestion_Unconfigured(t *testing.T) {
	ctx := context.Background()
	svc := newUnconfiguredService(new(MockRecommendationRepo))

	t.Run("Lucban gets the festival plan", func(t *testing.T) {
		got := svc.GenerateItinerarySuggestion(ctx, "Lucban, Quezon", 3)
		assert.True(t, got.Fallback)
		assert.Contains(t, got.Itinerary, "Pahiyas Festival")
	})

	t.Run("other destinations get the generic template", func(t *testing.T) {
		got := svc.GenerateItinerarySuggestion(ctx, "Siargao", 3)
		assert.True(t, got.Fallback)
		assert.Contains(t, got.Itinerary, "Siargao")
		assert.NotContains(t, got.Itinerary, "Pahiyas")
	})

	t.Run("non-positive day counts still produce a plan", func(t *testing.T) {
		got := svc.GenerateItinerarySuggestion(ctx, "Bohol", 0)
		assert.True(t, got.Fallback)
		assert.NotEmpty(t, got.Itinerary)
	})
}

func TestServiceImpl_Chat(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects empty messages", func(t *testing.T) {
		svc := newUnconfiguredService(new(MockRecommendationRepo))

		_, err := svc.Chat(ctx, userID, "   ")

		var ve *types.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "message", ve.Field)
	})

	t.Run("persists both sides of the exchange", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		svc := newUnconfiguredService(repo)

		repo.On("SaveChatMessage", mock.Anything, userID, "user", "Tell me about Boracay").Return(nil)
		repo.On("SaveChatMessage", mock.Anything, userID, "assistant", mock.AnythingOfType("string")).Return(nil)

		reply, err := svc.Chat(ctx, userID, "Tell me about Boracay")
		require.NoError(t, err)
		assert.Equal(t, "assistant", reply.Role)
		assert.Contains(t, reply.Content, "White Beach")
		repo.AssertExpectations(t)
	})

	t.Run("keyword routing of canned replies", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("SaveChatMessage", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)
		svc := newUnconfiguredService(repo)

		cases := []struct {
			message string
			want    string
		}{
			{"What happens at the Pahiyas festival?", "Pahiyas Festival"},
			{"Is Palawan worth visiting?", "Last Frontier"},
			{"Where should I eat?", "adobo"},
			{"Hello there", "I'm here to help you explore the Philippines"},
		}
		for _, tc := range cases {
			reply, err := svc.Chat(ctx, userID, tc.message)
			require.NoError(t, err)
			assert.Contains(t, reply.Content, tc.want)
		}
	})

	t.Run("session open failure degrades to the apology reply", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		svc := NewService(&generativeAI.AIClient{}, repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

		got := svc.liveChatReply(ctx, nil, "Tell me about Boracay")
		assert.Contains(t, got, "I apologize")
	})

	t.Run("recent turns map transcript rows into session seed", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("GetChatHistory", mock.Anything, userID, 10).Return([]types.ChatMessage{
			{Role: "user", Content: "Tell me about Boracay"},
			{Role: "assistant", Content: "Boracay is known for White Beach."},
		}, nil)
		svc := newUnconfiguredService(repo)

		turns := svc.recentTurns(ctx, userID)
		require.Len(t, turns, 2)
		assert.Equal(t, generativeAI.ChatTurn{Role: "user", Text: "Tell me about Boracay"}, turns[0])
		assert.Equal(t, "assistant", turns[1].Role)
		repo.AssertExpectations(t)
	})

	t.Run("a history load failure starts the session without context", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("GetChatHistory", mock.Anything, userID, 10).Return(nil, assert.AnError)
		svc := newUnconfiguredService(repo)

		assert.Empty(t, svc.recentTurns(ctx, userID))
		repo.AssertExpectations(t)
	})

	t.Run("a transcript write failure never fails the turn", func(t *testing.T) {
		repo := new(MockRecommendationRepo)
		repo.On("SaveChatMessage", mock.Anything, userID, mock.Anything, mock.Anything).
			Return(assert.AnError)
		svc := newUnconfiguredService(repo)

		reply, err := svc.Chat(ctx, userID, "Tell me about Boracay")
		require.NoError(t, err)
		assert.NotEmpty(t, reply.Content)
	})
}

func TestServiceImpl_Configured(t *testing.T) {
	svc := newUnconfiguredService(new(MockRecommendationRepo))
	assert.False(t, svc.Configured())
}
