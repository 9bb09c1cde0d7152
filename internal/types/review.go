package types

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Author        string    `json:"user"`
	Place         string    `json:"place"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	Rating        int       `json:"rating"`
	ReviewText    string    `json:"review"`
	Images        []string  `json:"images"`
	LikesCount    int       `json:"likes"`
	CommentsCount int       `json:"comments"`
	CreatedAt     time.Time `json:"date"`
}

type CreateReviewRequest struct {
	Place      string   `json:"place"`
	Location   string   `json:"location"`
	Category   string   `json:"category"`
	Rating     int      `json:"rating"`
	ReviewText string   `json:"review"`
	Images     []string `json:"images,omitempty"`
}

type UpdateReviewRequest struct {
	Rating     *int    `json:"rating,omitempty"`
	ReviewText *string `json:"review,omitempty"`
}

// ReviewFilter narrows the public review feed.
type ReviewFilter struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}
