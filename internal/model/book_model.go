package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BuildingId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Source     string         `gorm:"type:varchar(32);not null;default:'manual'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Book) TableName() string {
	return "digital_books"
}
