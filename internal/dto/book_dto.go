package dto

import (
	"time"

	"building-book-be/internal/projection"

	"github.com/google/uuid"
)

type BookSectionResponse struct {
	Id        uuid.UUID         `json:"id"`
	Type      string            `json:"type"`
	SectionId string            `json:"section_id,omitempty"` // UI catalog id; empty if the type is unknown to this catalog
	Content   map[string]string `json:"content"`
	Complete  bool              `json:"complete"`
	UpdatedAt *time.Time        `json:"updated_at"`
}

type ShowBookResponse struct {
	Id         uuid.UUID                  `json:"id"`
	BuildingId uuid.UUID                  `json:"building_id"`
	Source     string                     `json:"source"`
	Sections   []BookSectionResponse      `json:"sections"`
	Progress   projection.ProgressMetrics `json:"progress"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  *time.Time                 `json:"updated_at"`
}

type ProgressResponse struct {
	BuildingId     uuid.UUID `json:"building_id"`
	CompletedCount int       `json:"completed_count"`
	Percentage     int       `json:"percentage"`
}

// SectionSavedMessage rides the in-process bus after every successful
// section upsert and is forwarded to the event bus for dashboard views.
type SectionSavedMessage struct {
	BookId         uuid.UUID `json:"book_id"`
	BuildingId     uuid.UUID `json:"building_id"`
	SectionType    string    `json:"section_type"`
	Complete       bool      `json:"complete"`
	CompletedCount int       `json:"completed_count"`
	Percentage     int       `json:"percentage"`
}
