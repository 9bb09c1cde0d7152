package types

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary owns its activities exclusively; deleting an itinerary cascades
// to them at the store. Activities are always presented sorted by day
// ascending, then time-of-day ascending.
type Itinerary struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	Activities  []Activity `json:"activities"`
}

// DayCount returns the inclusive length of the itinerary's date span.
// A single-day trip counts as 1.
func (i Itinerary) DayCount() int {
	span := i.EndDate.Sub(i.StartDate)
	if span < 0 {
		span = -span
	}
	return int(span.Hours()/24) + 1
}

// Activity cannot outlive its itinerary. Day is 1-based and bounded by the
// itinerary's DayCount; Time is zero-padded HH:MM so lexicographic order is
// chronological order.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	ItineraryID uuid.UUID `json:"itinerary_id"`
	Name        string    `json:"name"`
	Day         int       `json:"day"`
	Time        string    `json:"time"`
	Notes       string    `json:"notes,omitempty"`
}

// CreateItineraryRequest carries calendar dates as YYYY-MM-DD strings; the
// service parses and validates start <= end before anything is persisted.
type CreateItineraryRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type AddActivityRequest struct {
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Time  string `json:"time"`
	Notes string `json:"notes,omitempty"`
}
