package domain

import (
	"fmt"
	"strings"
	"time"
)

// Movie is a catalog entry. It carries no scheduling state of its own;
// sessions reference it by ID.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title, required.
//  Description – synopsis shown on detail pages.
//  ImageURL    – poster reference.
//  DurationMin – running time in minutes, must be positive.
//  Genre       – free-form genre label.
//  AgeRating   – e.g. "L", "12", "16", "18".
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	DurationMin uint32    `json:"duration_min"`
	Genre       string    `json:"genre"`
	AgeRating   string    `json:"age_rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the movie's required fields before persistence.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: movie title is required", ErrValidation)
	}
	if m.DurationMin == 0 {
		return fmt.Errorf("%w: movie duration must be positive", ErrValidation)
	}
	return nil
}
