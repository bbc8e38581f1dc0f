package entity

import (
	"time"

	"building-book-be/internal/catalog"

	"github.com/google/uuid"
)

// Book ingestion origins.
const (
	SourceManual = "manual"
	SourcePdf    = "pdf"
)

type Book struct {
	Id         uuid.UUID
	BuildingId uuid.UUID
	Source     string
	Sections   []*Section
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// SectionByType returns the book's section of the given canonical type,
// or nil. A well-formed book holds at most one section per type.
func (b *Book) SectionByType(t catalog.SectionType) *Section {
	for _, s := range b.Sections {
		if s.Type == t {
			return s
		}
	}
	return nil
}
