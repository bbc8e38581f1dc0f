package mapper

import (
	"fmt"
	"time"

	"building-book-be/internal/catalog"
	"building-book-be/internal/entity"
	"building-book-be/internal/model"

	"gorm.io/datatypes"
)

type SectionMapper struct{}

func NewSectionMapper() *SectionMapper {
	return &SectionMapper{}
}

func (m *SectionMapper) ToEntity(s *model.Section) *entity.Section {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	content := make(map[string]string, len(s.Content))
	for k, v := range s.Content {
		if str, ok := v.(string); ok {
			content[k] = str
		} else {
			content[k] = fmt.Sprint(v)
		}
	}

	return &entity.Section{
		Id:        s.Id,
		BookId:    s.BookId,
		Type:      catalog.SectionType(s.SectionType),
		Content:   content,
		Complete:  s.Complete,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *SectionMapper) ToModel(s *entity.Section) *model.Section {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	content := make(datatypes.JSONMap, len(s.Content))
	for k, v := range s.Content {
		content[k] = v
	}

	return &model.Section{
		Id:          s.Id,
		BookId:      s.BookId,
		SectionType: string(s.Type),
		Content:     content,
		Complete:    s.Complete,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *SectionMapper) ToEntities(sections []*model.Section) []*entity.Section {
	entities := make([]*entity.Section, len(sections))
	for i, s := range sections {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
