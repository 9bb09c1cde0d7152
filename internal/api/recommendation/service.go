package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/galagram/galagram-api/app/observability/metrics"
	generativeAI "github.com/galagram/galagram-api/internal/api/generative_ai"
	"github.com/galagram/galagram-api/internal/types"
)

const (
	categoryAttractions    = "tourist attractions and places to visit"
	categoryFood           = "restaurants and food places"
	categoryAccommodations = "hotels and accommodations"
)

var _ Service = (*ServiceImpl)(nil)

// Service resolves travel recommendations against the live model when a
// credential is configured and degrades to static fallback data otherwise.
// Recommendation lookups never fail; only the fallback flag tells the caller
// which source served the data.
type Service interface {
	GetRecommendations(ctx context.Context, userID *uuid.UUID, destination, category string) types.RecommendationResult
	GetFoodRecommendations(ctx context.Context, userID *uuid.UUID, destination string) types.RecommendationResult
	GetAccommodationRecommendations(ctx context.Context, userID *uuid.UUID, destination, budget string) types.RecommendationResult
	Search(ctx context.Context, userID *uuid.UUID, destination, budget string) *types.SearchResults
	GenerateItinerarySuggestion(ctx context.Context, destination string, days int) types.ItinerarySuggestion
	Chat(ctx context.Context, userID uuid.UUID, message string) (types.ChatMessage, error)
	ChatHistory(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error)
	Configured() bool
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient *generativeAI.AIClient
	repo     Repository
	cache    *cache.Cache
}

// NewService builds the resolver. aiClient may be nil, which means every
// request short-circuits to fallback data without a network attempt.
func NewService(aiClient *generativeAI.AIClient, repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		repo:     repo,
		cache:    cache.New(30*time.Minute, 10*time.Minute),
	}
}

func (s *ServiceImpl) Configured() bool {
	return s.aiClient.Configured()
}

func (s *ServiceImpl) GetRecommendations(ctx context.Context, userID *uuid.UUID, destination, category string) types.RecommendationResult {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "GetRecommendations", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.String("category", category),
	))
	defer span.End()

	start := time.Now()
	result := s.resolve(ctx, destination, category)
	s.record(ctx, userID, destination, category, result.Fallback, time.Since(start))

	span.SetAttributes(attribute.Bool("fallback", result.Fallback))
	span.SetStatus(codes.Ok, "Recommendations resolved")
	return result
}

func (s *ServiceImpl) GetFoodRecommendations(ctx context.Context, userID *uuid.UUID, destination string) types.RecommendationResult {
	return s.GetRecommendations(ctx, userID, destination, categoryFood)
}

func (s *ServiceImpl) GetAccommodationRecommendations(ctx context.Context, userID *uuid.UUID, destination, budget string) types.RecommendationResult {
	category := categoryAccommodations
	if budget != "" && budget != "all" {
		category = fmt.Sprintf("%s (%s budget)", categoryAccommodations, budget)
	}
	return s.GetRecommendations(ctx, userID, destination, category)
}

// resolve serves one category from cache, the live model or the static table,
// in that order. Any API or parse failure silently becomes fallback data.
func (s *ServiceImpl) resolve(ctx context.Context, destination, category string) types.RecommendationResult {
	cacheKey := recommendationCacheKey(destination, category)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(types.RecommendationResult)
	}

	if !s.aiClient.Configured() {
		return types.RecommendationResult{Recommendations: FallbackFor(category), Fallback: true}
	}

	raw, err := s.aiClient.GenerateContent(ctx, recommendationSystemPrompt, recommendationPrompt(category, destination))
	if err != nil {
		s.logger.WarnContext(ctx, "Recommendation API call failed, using fallback",
			slog.String("destination", destination),
			slog.String("category", category),
			slog.Any("error", err))
		return types.RecommendationResult{Recommendations: FallbackFor(category), Fallback: true}
	}

	items, err := decodeRecommendationList(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to parse recommendation response, using fallback",
			slog.String("destination", destination),
			slog.Any("error", err))
		return types.RecommendationResult{Recommendations: FallbackFor(category), Fallback: true}
	}

	result := types.RecommendationResult{Recommendations: items, Fallback: false}
	s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result
}

// Search fans out the three category lookups concurrently and normalizes each
// into Destination records. Categories fall back independently: one failing
// sub-query does not drag the others onto fallback data.
func (s *ServiceImpl) Search(ctx context.Context, userID *uuid.UUID, destination, budget string) *types.SearchResults {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("destination", destination),
	))
	defer span.End()

	var placesRes, foodRes, stayRes types.RecommendationResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		placesRes = s.GetRecommendations(gctx, userID, destination, categoryAttractions)
		return nil
	})
	g.Go(func() error {
		foodRes = s.GetFoodRecommendations(gctx, userID, destination)
		return nil
	})
	g.Go(func() error {
		stayRes = s.GetAccommodationRecommendations(gctx, userID, destination, budget)
		return nil
	})
	// Sub-queries never return errors; Wait only joins them.
	_ = g.Wait()

	span.SetStatus(codes.Ok, "Search resolved")
	return &types.SearchResults{
		Destinations:   NormalizeRecommendations(placesRes.Recommendations, categoryAttractions, placesRes.Fallback),
		Restaurants:    NormalizeRecommendations(foodRes.Recommendations, categoryFood, foodRes.Fallback),
		Accommodations: NormalizeRecommendations(stayRes.Recommendations, categoryAccommodations, stayRes.Fallback),
	}
}

// GenerateItinerarySuggestion returns formatted multi-day plan text. Without
// a credential a keyword-matched canned plan is served.
func (s *ServiceImpl) GenerateItinerarySuggestion(ctx context.Context, destination string, days int) types.ItinerarySuggestion {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "GenerateItinerarySuggestion", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.Int("days", days),
	))
	defer span.End()

	if days <= 0 {
		days = 3
	}

	if !s.aiClient.Configured() {
		span.SetAttributes(attribute.Bool("fallback", true))
		return types.ItinerarySuggestion{Itinerary: cannedItinerary(destination), Fallback: true}
	}

	text, err := s.aiClient.GenerateContent(ctx, itinerarySystemPrompt, itineraryPrompt(destination, days))
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.WarnContext(ctx, "Itinerary suggestion call failed, using canned plan",
			slog.String("destination", destination),
			slog.Any("error", err))
		span.SetAttributes(attribute.Bool("fallback", true))
		return types.ItinerarySuggestion{Itinerary: cannedItinerary(destination), Fallback: true}
	}

	span.SetStatus(codes.Ok, "Itinerary suggested")
	return types.ItinerarySuggestion{Itinerary: text, Fallback: false}
}

// Chat answers one user turn and persists both sides of the exchange. The
// transcript write is best-effort: a storage error is logged, never surfaced.
func (s *ServiceImpl) Chat(ctx context.Context, userID uuid.UUID, message string) (types.ChatMessage, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Chat")
	defer span.End()

	if strings.TrimSpace(message) == "" {
		return types.ChatMessage{}, types.NewValidationError("message", "message must not be empty")
	}

	var turns []generativeAI.ChatTurn
	if s.aiClient.Configured() {
		turns = s.recentTurns(ctx, userID)
	}

	if err := s.repo.SaveChatMessage(ctx, userID, "user", message); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist user chat message", slog.Any("error", err))
	}

	var content string
	if !s.aiClient.Configured() {
		content = cannedChatReply(message)
	} else {
		content = s.liveChatReply(ctx, turns, message)
	}

	reply := types.ChatMessage{Role: "assistant", Content: content}
	if err := s.repo.SaveChatMessage(ctx, userID, reply.Role, reply.Content); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist assistant chat message", slog.Any("error", err))
	}

	span.SetStatus(codes.Ok, "Chat turn completed")
	return reply, nil
}

func (s *ServiceImpl) ChatHistory(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error) {
	history, err := s.repo.GetChatHistory(ctx, userID, 50)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load chat history", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return history, nil
}

// recentTurns loads the last stored transcript turns for replay into a chat
// session. A storage error means the session simply starts without context.
func (s *ServiceImpl) recentTurns(ctx context.Context, userID uuid.UUID) []generativeAI.ChatTurn {
	history, err := s.repo.GetChatHistory(ctx, userID, 10)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load chat history for session", slog.Any("error", err))
		return nil
	}
	turns := make([]generativeAI.ChatTurn, 0, len(history))
	for _, turn := range history {
		turns = append(turns, generativeAI.ChatTurn{Role: turn.Role, Text: turn.Content})
	}
	return turns
}

// liveChatReply opens a model chat session seeded with prior turns and sends
// the new message. Any failure degrades to a generic apology so the endpoint
// never errors on model trouble.
func (s *ServiceImpl) liveChatReply(ctx context.Context, turns []generativeAI.ChatTurn, message string) string {
	const apology = "I apologize, but I encountered an issue processing your request. Please try again later."

	session, err := s.aiClient.StartChatSession(ctx, chatSystemPrompt, turns)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to open chat session", slog.Any("error", err))
		return apology
	}
	reply, err := session.SendMessage(ctx, message)
	if err != nil {
		s.logger.WarnContext(ctx, "Chat completion failed", slog.Any("error", err))
		return apology
	}
	return reply
}

// record updates metrics and the persistent log for one resolver call.
func (s *ServiceImpl) record(ctx context.Context, userID *uuid.UUID, destination, category string, fallback bool, latency time.Duration) {
	if m := metrics.Get(); m != nil {
		m.RecommendationRequestsTotal.Add(ctx, 1)
		m.RecommendationDurationSecs.Record(ctx, latency.Seconds())
		if fallback {
			m.RecommendationFallbacksTotal.Add(ctx, 1)
		}
	}
	if s.repo == nil {
		return
	}
	if err := s.repo.LogRecommendation(ctx, userID, destination, category, fallback, latency.Milliseconds()); err != nil {
		s.logger.DebugContext(ctx, "Failed to log recommendation call", slog.Any("error", err))
	}
}

func recommendationCacheKey(destination, category string) string {
	return fmt.Sprintf("rec:%s:%s", strings.ToLower(destination), strings.ToLower(category))
}
