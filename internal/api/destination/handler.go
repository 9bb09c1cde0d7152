package destination

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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

// GetDestinations lists catalog entries, optionally filtered by category,
// minimum rating and a free-text search over name, location and description.
func (h *Handler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations"),
	))
	defer span.End()

	filter := types.DestinationFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "minRating must be a number")
			return
		}
		filter.MinRating = minRating
	}

	destinations, err := h.service.GetDestinations(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, "listing destinations failed")
		h.logger.ErrorContext(ctx, "Failed to list destinations", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not list destinations")
		return
	}
	if destinations == nil {
		destinations = []types.Destination{}
	}

	span.SetAttributes(attribute.Int("destinations.count", len(destinations)))
	span.SetStatus(codes.Ok, "destinations listed")
	api.WriteJSONResponse(w, r, http.StatusOK, destinations)
}

func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetDestination", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations/{destinationID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "destinationID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid destination id")
		return
	}

	destination, err := h.service.GetDestination(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "destination not found")
			return
		}
		span.SetStatus(codes.Error, "fetching destination failed")
		h.logger.ErrorContext(ctx, "Failed to fetch destination", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not fetch destination")
		return
	}

	span.SetStatus(codes.Ok, "destination fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, destination)
}

func (h *Handler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "CreateDestination", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/destinations"),
	))
	defer span.End()

	var req types.CreateDestinationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	destination, err := h.service.CreateDestination(ctx, req)
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
			return
		}
		span.SetStatus(codes.Error, "creating destination failed")
		h.logger.ErrorContext(ctx, "Failed to create destination", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not create destination")
		return
	}

	span.SetStatus(codes.Ok, "destination created")
	api.WriteJSONResponse(w, r, http.StatusCreated, destination)
}

func (h *Handler) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "UpdateDestination", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/destinations/{destinationID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "destinationID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid destination id")
		return
	}

	var req types.CreateDestinationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	destination, err := h.service.UpdateDestination(ctx, id, req)
	if err != nil {
		var ve *types.ValidationError
		switch {
		case errors.As(err, &ve):
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "destination not found")
		default:
			span.SetStatus(codes.Error, "updating destination failed")
			h.logger.ErrorContext(ctx, "Failed to update destination", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "could not update destination")
		}
		return
	}

	span.SetStatus(codes.Ok, "destination updated")
	api.WriteJSONResponse(w, r, http.StatusOK, destination)
}

func (h *Handler) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "DeleteDestination", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/destinations/{destinationID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "destinationID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid destination id")
		return
	}

	if err := h.service.DeleteDestination(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "destination not found")
			return
		}
		span.SetStatus(codes.Error, "deleting destination failed")
		h.logger.ErrorContext(ctx, "Failed to delete destination", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not delete destination")
		return
	}

	span.SetStatus(codes.Ok, "destination deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite flips the caller's favorite state for a destination.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "ToggleFavorite", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/favorites/{destinationID}"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	destinationID, err := uuid.Parse(chi.URLParam(r, "destinationID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid destination id")
		return
	}

	favorited, err := h.service.ToggleFavorite(ctx, userID, destinationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrToggleInFlight):
			api.ErrorResponse(w, r, http.StatusConflict, "favorite toggle already in progress")
		case errors.Is(err, ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "destination not found")
		default:
			span.SetStatus(codes.Error, "toggling favorite failed")
			h.logger.ErrorContext(ctx, "Failed to toggle favorite", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "could not toggle favorite")
		}
		return
	}

	span.SetAttributes(attribute.Bool("favorite.favorited", favorited))
	span.SetStatus(codes.Ok, "favorite toggled")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetFavorites", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/favorites"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	favorites, err := h.service.GetFavorites(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, "listing favorites failed")
		h.logger.ErrorContext(ctx, "Failed to list favorites", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not list favorites")
		return
	}
	if favorites == nil {
		favorites = []types.Destination{}
	}

	span.SetAttributes(attribute.Int("favorites.count", len(favorites)))
	span.SetStatus(codes.Ok, "favorites listed")
	api.WriteJSONResponse(w, r, http.StatusOK, favorites)
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
