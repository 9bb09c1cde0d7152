package review

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
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

// GetReviews serves the public review feed, optionally filtered by category
// or free-text search.
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "GetReviews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews"),
	))
	defer span.End()

	filter := types.ReviewFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	reviews, err := h.service.GetReviews(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, "listing reviews failed")
		h.logger.ErrorContext(ctx, "Failed to list reviews", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not list reviews")
		return
	}
	if reviews == nil {
		reviews = []types.Review{}
	}

	span.SetAttributes(attribute.Int("reviews.count", len(reviews)))
	span.SetStatus(codes.Ok, "reviews listed")
	api.WriteJSONResponse(w, r, http.StatusOK, reviews)
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "CreateReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.CreateReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.service.CreateReview(ctx, userID, req)
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
			return
		}
		span.SetStatus(codes.Error, "creating review failed")
		h.logger.ErrorContext(ctx, "Failed to create review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not create review")
		return
	}

	span.SetStatus(codes.Ok, "review created")
	api.WriteJSONResponse(w, r, http.StatusCreated, review)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "UpdateReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews/{reviewID}"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid review id")
		return
	}

	var req types.UpdateReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.service.UpdateReview(ctx, userID, reviewID, req)
	if err != nil {
		var ve *types.ValidationError
		switch {
		case errors.As(err, &ve):
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrReviewNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "review not found")
		default:
			span.SetStatus(codes.Error, "updating review failed")
			h.logger.ErrorContext(ctx, "Failed to update review", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "could not update review")
		}
		return
	}

	span.SetStatus(codes.Ok, "review updated")
	api.WriteJSONResponse(w, r, http.StatusOK, review)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "DeleteReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews/{reviewID}"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.service.DeleteReview(ctx, userID, reviewID); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "review not found")
			return
		}
		span.SetStatus(codes.Error, "deleting review failed")
		h.logger.ErrorContext(ctx, "Failed to delete review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not delete review")
		return
	}

	span.SetStatus(codes.Ok, "review deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LikeReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "LikeReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews/{reviewID}/like"),
	))
	defer span.End()

	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid review id")
		return
	}

	likes, err := h.service.LikeReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "review not found")
			return
		}
		span.SetStatus(codes.Error, "liking review failed")
		h.logger.ErrorContext(ctx, "Failed to like review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not like review")
		return
	}

	span.SetStatus(codes.Ok, "review liked")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]int{"likes": likes})
}

func authenticatedUserID(ctx context.Context) (uuid.UUID, bool) {
	idStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
