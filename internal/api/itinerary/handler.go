package itinerary

import (
	"context"
	"errors"
	"fmt"
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

func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.CreateItinerary(ctx, userID, req)
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
			return
		}
		span.SetStatus(codes.Error, "creating itinerary failed")
		h.logger.ErrorContext(ctx, "Failed to create itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not create itinerary")
		return
	}

	span.SetAttributes(attribute.String("itinerary.id", it.ID.String()))
	span.SetStatus(codes.Ok, "itinerary created")
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

func (h *Handler) GetItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItineraries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	itineraries, err := h.service.GetItineraries(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, "listing itineraries failed")
		h.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "could not list itineraries")
		return
	}
	if itineraries == nil {
		itineraries = []types.Itinerary{}
	}

	span.SetAttributes(attribute.Int("itineraries.count", len(itineraries)))
	span.SetStatus(codes.Ok, "itineraries listed")
	api.WriteJSONResponse(w, r, http.StatusOK, itineraries)
}

func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	userID, itineraryID, ok := requestIdentity(w, r, ctx)
	if !ok {
		return
	}

	it, err := h.service.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		h.respondItineraryError(ctx, w, r, span, err, "fetching itinerary failed")
		return
	}

	span.SetStatus(codes.Ok, "itinerary fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

func (h *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DeleteItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	userID, itineraryID, ok := requestIdentity(w, r, ctx)
	if !ok {
		return
	}

	if err := h.service.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		h.respondItineraryError(ctx, w, r, span, err, "deleting itinerary failed")
		return
	}

	span.SetStatus(codes.Ok, "itinerary deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "AddActivity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}/activities"),
	))
	defer span.End()

	userID, itineraryID, ok := requestIdentity(w, r, ctx)
	if !ok {
		return
	}

	var req types.AddActivityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.service.AddActivity(ctx, userID, itineraryID, req)
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			api.ErrorResponse(w, r, http.StatusBadRequest, ve.Error())
			return
		}
		h.respondItineraryError(ctx, w, r, span, err, "adding activity failed")
		return
	}

	span.SetStatus(codes.Ok, "activity added")
	api.WriteJSONResponse(w, r, http.StatusCreated, activity)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DeleteActivity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}/activities/{activityID}"),
	))
	defer span.End()

	userID, itineraryID, ok := requestIdentity(w, r, ctx)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(chi.URLParam(r, "activityID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := h.service.DeleteActivity(ctx, userID, itineraryID, activityID); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "activity not found")
			return
		}
		h.respondItineraryError(ctx, w, r, span, err, "deleting activity failed")
		return
	}

	span.SetStatus(codes.Ok, "activity deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ExportItinerary streams the itinerary as a download. The format query
// parameter selects pdf or plain text; text is the default.
func (h *Handler) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ExportItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}/export"),
	))
	defer span.End()

	userID, itineraryID, ok := requestIdentity(w, r, ctx)
	if !ok {
		return
	}

	export, err := h.service.Export(ctx, userID, itineraryID, r.URL.Query().Get("format"))
	if err != nil {
		h.respondItineraryError(ctx, w, r, span, err, "exporting itinerary failed")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)

	span.SetStatus(codes.Ok, "itinerary exported")
}

func (h *Handler) respondItineraryError(ctx context.Context, w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	if errors.Is(err, ErrItineraryNotFound) {
		api.ErrorResponse(w, r, http.StatusNotFound, "itinerary not found")
		return
	}
	span.SetStatus(codes.Error, msg)
	h.logger.ErrorContext(ctx, "Itinerary operation failed", slog.Any("error", err))
	api.ErrorResponse(w, r, http.StatusInternalServerError, msg)
}

func requestIdentity(w http.ResponseWriter, r *http.Request, ctx context.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	itineraryID, err := uuid.Parse(chi.URLParam(r, "itineraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid itinerary id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, itineraryID, true
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
