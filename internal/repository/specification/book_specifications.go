package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByBuildingID filters books by their owning building
type ByBuildingID struct {
	BuildingID uuid.UUID
}

func (s ByBuildingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("building_id = ?", s.BuildingID)
}

// ByBookID filters sections by their parent book
type ByBookID struct {
	BookID uuid.UUID
}

func (s ByBookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("book_id = ?", s.BookID)
}

// BySectionType filters sections by canonical type
type BySectionType struct {
	SectionType string
}

func (s BySectionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section_type = ?", s.SectionType)
}
