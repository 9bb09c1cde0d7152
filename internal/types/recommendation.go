package types

// RawRecommendation is one loosely-typed item from a recommendation payload,
// either live model output or a static fallback row. Rating is left untyped
// because upstream returns it as a JSON number or a quoted string
// interchangeably; the normalization pipeline parses it.
type RawRecommendation struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      any      `json:"rating,omitempty"`
	Location    string   `json:"location,omitempty"`
	Category    string   `json:"category,omitempty"`
	Image       string   `json:"image,omitempty"`
	PriceRange  string   `json:"priceRange,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

// RecommendationResult is what the fallback resolver hands back: the raw
// payload plus whether it was served from static data. Callers never see the
// underlying API or parse error, only the fallback signal.
type RecommendationResult struct {
	Recommendations []RawRecommendation `json:"recommendations"`
	Fallback        bool                `json:"fallback"`
}

// SearchResults bundles the three recommendation categories fetched together
// for a destination search. Each category falls back independently.
type SearchResults struct {
	Destinations   []Destination `json:"destinations"`
	Restaurants    []Destination `json:"restaurants"`
	Accommodations []Destination `json:"accommodations"`
}

// ItinerarySuggestion is the AI planner output: formatted multi-line text
// grouped by day, not structured data.
type ItinerarySuggestion struct {
	Itinerary string `json:"itinerary"`
	Fallback  bool   `json:"fallback"`
}

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
