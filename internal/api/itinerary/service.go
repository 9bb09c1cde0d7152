package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/galagram/galagram-api/internal/types"
)

const dateLayout = "2006-01-02"

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	CreateItinerary(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
	AddActivity(ctx context.Context, userID, itineraryID uuid.UUID, req types.AddActivityRequest) (*types.Activity, error)
	DeleteActivity(ctx context.Context, userID, itineraryID, activityID uuid.UUID) error
	Export(ctx context.Context, userID, itineraryID uuid.UUID, format string) (*ExportedItinerary, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) CreateItinerary(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, types.NewValidationError("destination", "destination is required")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, types.NewValidationError("startDate", "startDate must be a YYYY-MM-DD date")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, types.NewValidationError("endDate", "endDate must be a YYYY-MM-DD date")
	}
	if startDate.After(endDate) {
		return nil, types.NewValidationError("startDate", "startDate must not be after endDate")
	}

	return s.repo.CreateItinerary(ctx, userID, strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Destination), startDate, endDate)
}

func (s *ServiceImpl) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	return s.repo.GetItineraries(ctx, userID)
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	return s.repo.GetItinerary(ctx, userID, itineraryID)
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	if err := s.repo.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Itinerary deleted",
		slog.String("itinerary_id", itineraryID.String()))
	return nil
}

// AddActivity validates the activity against its itinerary before anything
// is written. The day must land inside the itinerary's date span.
func (s *ServiceImpl) AddActivity(ctx context.Context, userID, itineraryID uuid.UUID, req types.AddActivityRequest) (*types.Activity, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, types.NewValidationError("name", "activity name is required")
	}
	if !timeOfDayPattern.MatchString(req.Time) {
		return nil, types.NewValidationError("time", "time must be a zero-padded HH:MM value")
	}

	it, err := s.repo.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}
	if req.Day < 1 || req.Day > it.DayCount() {
		return nil, types.NewValidationError("day",
			fmt.Sprintf("day must be between 1 and %d", it.DayCount()))
	}

	req.Name = strings.TrimSpace(req.Name)
	return s.repo.AddActivity(ctx, itineraryID, req)
}

func (s *ServiceImpl) DeleteActivity(ctx context.Context, userID, itineraryID, activityID uuid.UUID) error {
	// Ownership check first so one user cannot prune another's plan.
	if _, err := s.repo.GetItinerary(ctx, userID, itineraryID); err != nil {
		return err
	}
	return s.repo.DeleteActivity(ctx, itineraryID, activityID)
}

// Export renders one downloadable representation of the itinerary with a
// single store read. Format "pdf" selects the PDF rendering; anything else
// gets the plain-text share format.
func (s *ServiceImpl) Export(ctx context.Context, userID, itineraryID uuid.UUID, format string) (*ExportedItinerary, error) {
	it, err := s.repo.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}
	recordExport(ctx)

	filename := strings.ReplaceAll(it.Title, " ", "_")
	if format == "pdf" {
		data, err := renderPDF(*it)
		if err != nil {
			return nil, err
		}
		return &ExportedItinerary{
			Filename:    filename + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	}
	return &ExportedItinerary{
		Filename:    filename + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(renderText(*it)),
	}, nil
}
