package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/galagram/galagram-api/internal/api"
	"github.com/galagram/galagram-api/internal/api/auth"
	"github.com/galagram/galagram-api/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetRecommendations serves one category of suggestions for a destination.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "GetRecommendations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetRecommendations"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		l.ErrorContext(ctx, "Destination is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Destination is required")
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = categoryAttractions
	}

	result := h.service.GetRecommendations(ctx, userIDFromContext(ctx), destination, category)
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// Search runs the combined destinations/food/accommodations lookup and
// returns normalized records for all three categories.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Search"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		l.ErrorContext(ctx, "Destination is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Destination is required")
		return
	}
	budget := r.URL.Query().Get("budget")

	results := h.service.Search(ctx, userIDFromContext(ctx), destination, budget)
	api.WriteJSONResponse(w, r, http.StatusOK, results)
}

// SuggestItinerary generates a multi-day plan as formatted text.
func (h *Handler) SuggestItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "SuggestItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SuggestItinerary"))

	var req struct {
		Destination string `json:"destination"`
		Days        int    `json:"days"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Destination is required")
		return
	}

	suggestion := h.service.GenerateItinerarySuggestion(ctx, req.Destination, req.Days)
	api.WriteJSONResponse(w, r, http.StatusOK, suggestion)
}

// Chat handles one turn of the travel assistant conversation.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "Chat", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Chat"))

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.service.Chat(ctx, userID, req.Message)
	if err != nil {
		var vErr *types.ValidationError
		if errors.As(err, &vErr) {
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
			return
		}
		l.ErrorContext(ctx, "Chat turn failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, reply)
}

// ChatHistory returns the stored transcript for the authenticated user.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "ChatHistory", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat/history"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ChatHistory"))

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	history, err := h.service.ChatHistory(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to load chat history", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	if history == nil {
		history = []types.ChatMessage{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, history)
}

// Status reports whether a live recommendation credential is configured.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]bool{
		"configured": h.service.Configured(),
	})
}

// userIDFromContext returns the caller's id when present; recommendation
// endpoints also serve anonymous traffic.
func userIDFromContext(ctx context.Context) *uuid.UUID {
	idStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || idStr == "" {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &id
}

func authenticatedUserID(ctx context.Context) (uuid.UUID, bool) {
	id := userIDFromContext(ctx)
	if id == nil {
		return uuid.Nil, false
	}
	return *id, true
}
