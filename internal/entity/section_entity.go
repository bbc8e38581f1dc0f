package entity

import (
	"time"

	"building-book-be/internal/catalog"

	"github.com/google/uuid"
)

// Section is one persisted topical division of a Book. Content is an
// opaque field-name to value mapping; the core never interprets it.
type Section struct {
	Id        uuid.UUID
	BookId    uuid.UUID
	Type      catalog.SectionType
	Content   map[string]string
	Complete  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
