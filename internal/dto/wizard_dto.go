package dto

import (
	"building-book-be/internal/catalog"
	"building-book-be/internal/projection"
	"building-book-be/internal/store"

	"github.com/google/uuid"
)

type InitWizardRequest struct {
	StartSectionId string `json:"start_section_id"`
	Source         string `json:"source" validate:"omitempty,oneof=manual pdf"`
}

type WizardStateResponse struct {
	BuildingId          uuid.UUID                  `json:"building_id"`
	State               string                     `json:"state"`
	StepIndex           int                        `json:"step_index"`
	SectionId           string                     `json:"section_id,omitempty"`
	CompletedSectionIds []string                   `json:"completed_section_ids"`
	Progress            projection.ProgressMetrics `json:"progress"`
}

type WizardStepResponse struct {
	Definition    catalog.SectionDefinition `json:"definition"`
	StepIndex     int                       `json:"step_index"`
	Content       map[string]string         `json:"content"`
	Valid         bool                      `json:"valid"`
	MissingFields []string                  `json:"missing_fields"`
	Attachments   []store.FileRef           `json:"attachments"`
}

type SetFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type AttachDocumentsRequest struct {
	Files []AttachedFileRequest `json:"files" validate:"required,min=1,dive"`
}

type AttachedFileRequest struct {
	Name     string `json:"name" validate:"required"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Url      string `json:"url"`
}
