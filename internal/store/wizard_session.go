package store

import (
	"sync"

	"building-book-be/internal/entity"

	"github.com/google/uuid"
)

// Wizard session states. Initialization is synchronous, so the transient
// Loading state never rests in the store; a session is saved only once it
// lands in one of these.
const (
	StateEditing     = "EDITING"
	StateUnavailable = "UNAVAILABLE"
	StateFinished    = "FINISHED"
)

// FileRef points at an attached document. Storage and linkage to the
// section's persisted content belong to the upload subsystem; the wizard
// only keeps these for display.
type FileRef struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Url      string `json:"url,omitempty"`
}

// WizardSession is the in-memory editing state for one building's digital
// book. FormData is keyed by BOTH the UI catalog id and the canonical
// type (both keys share one underlying map), so lookups succeed either
// way. Completed is a pure projection of the book's complete sections,
// recomputed after every successful save, never hand-mutated.
type WizardSession struct {
	mu sync.Mutex

	BuildingId  uuid.UUID
	State       string
	StepIndex   int
	Book        *entity.Book
	FormData    map[string]map[string]string
	Completed   map[string]bool
	Attachments map[string][]FileRef
}

func NewWizardSession(buildingId uuid.UUID) *WizardSession {
	return &WizardSession{
		BuildingId:  buildingId,
		FormData:    make(map[string]map[string]string),
		Completed:   make(map[string]bool),
		Attachments: make(map[string][]FileRef),
	}
}

// Lock serializes save-triggering actions on the session so a duplicate
// user action cannot issue a second save while one is outstanding.
func (s *WizardSession) Lock() {
	s.mu.Lock()
}

func (s *WizardSession) Unlock() {
	s.mu.Unlock()
}

// SeedFormData registers one section's content under both identity keys.
func (s *WizardSession) SeedFormData(uiId, canonicalType string, content map[string]string) {
	if content == nil {
		content = make(map[string]string)
	}
	s.FormData[uiId] = content
	s.FormData[canonicalType] = content
}

// FormDataFor returns the form content for a UI catalog id, creating (and
// double-keying) an empty map the first time a step is touched.
func (s *WizardSession) FormDataFor(uiId, canonicalType string) map[string]string {
	if content, ok := s.FormData[uiId]; ok {
		return content
	}
	content := make(map[string]string)
	s.SeedFormData(uiId, canonicalType, content)
	return content
}

// CompletedIds returns the completed UI catalog ids.
func (s *WizardSession) CompletedIds() []string {
	ids := make([]string, 0, len(s.Completed))
	for id := range s.Completed {
		ids = append(ids, id)
	}
	return ids
}
