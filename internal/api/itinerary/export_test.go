package itinerary

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galagram/galagram-api/internal/types"
)

func sampleItinerary() types.Itinerary {
	id := uuid.New()
	return types.Itinerary{
		ID:          id,
		UserID:      uuid.New(),
		Title:       "Boracay Getaway",
		Destination: "Boracay",
		StartDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Activities: []types.Activity{
			{ID: uuid.New(), ItineraryID: id, Name: "Beach walk", Day: 1, Time: "07:00"},
			{ID: uuid.New(), ItineraryID: id, Name: "Island hopping", Day: 1, Time: "09:30", Notes: "Bring sunscreen"},
			{ID: uuid.New(), ItineraryID: id, Name: "Sunset sail", Day: 3, Time: "17:30"},
		},
	}
}

func TestRenderText(t *testing.T) {
	t.Run("renders header, day blocks and notes", func(t *testing.T) {
		got := renderText(sampleItinerary())

		want := "Boracay Getaway\n" +
			"Destination: Boracay\n" +
			"Dates: 1/10/2026 - 1/12/2026\n" +
			"\n" +
			"Day 1:\n" +
			"  07:00 - Beach walk\n" +
			"  09:30 - Island hopping\n" +
			"    Note: Bring sunscreen\n" +
			"\n" +
			"Day 3:\n" +
			"  17:30 - Sunset sail\n" +
			"\n"
		assert.Equal(t, want, got)
	})

	t.Run("omits day blocks for an empty plan", func(t *testing.T) {
		it := sampleItinerary()
		it.Activities = nil

		got := renderText(it)
		assert.NotContains(t, got, "Day")
		assert.Contains(t, got, "Boracay Getaway\n")
	})
}

func TestRenderPDF(t *testing.T) {
	data, err := renderPDF(sampleItinerary())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDaysWithActivities(t *testing.T) {
	it := sampleItinerary()
	assert.Equal(t, []int{1, 3}, daysWithActivities(it))

	it.Activities = nil
	assert.Empty(t, daysWithActivities(it))
}
