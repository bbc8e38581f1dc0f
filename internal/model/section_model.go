package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section rows are unique per (book, type): the backend must never hold
// two sections of the same canonical type for one book.
type Section struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_book_section_type"`
	SectionType string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_book_section_type"`
	Content     datatypes.JSONMap
	Complete    bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Section) TableName() string {
	return "digital_book_sections"
}
