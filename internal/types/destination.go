package types

import (
	"time"

	"github.com/google/uuid"
)

// Destination categories used by the catalog and the explore filters.
const (
	CategoryBeach         = "Beach"
	CategoryIsland        = "Island"
	CategoryMountain      = "Mountain"
	CategoryCultural      = "Cultural"
	CategoryHistorical    = "Historical"
	CategoryNaturalWonder = "Natural Wonder"
)

// Destination is the canonical record every page consumes, whether it came
// from the catalog, a live recommendation call or the static fallback table.
// Records are value objects: never mutated after construction, only replaced
// wholesale on refresh. The ID is opaque - catalog rows carry a UUID string,
// normalized recommendations carry a synthesized id.
type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Image       string   `json:"image"`
	PriceRange  string   `json:"priceRange"`
	Activities  []string `json:"activities"`
}

// DestinationFilter narrows catalog queries. Zero values mean "no filter".
type DestinationFilter struct {
	Category  string  `json:"category"`
	MinRating float64 `json:"min_rating"`
	Search    string  `json:"search"`
}

// CreateDestinationRequest is the admin console payload for catalog rows.
type CreateDestinationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Image       string   `json:"image"`
	PriceRange  string   `json:"priceRange"`
	Activities  []string `json:"activities"`
}

// Favorite is the (user, destination) join row. Set semantics: the pair
// exists at most once, enforced by a unique constraint.
type Favorite struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	CreatedAt     time.Time `json:"created_at"`
}
