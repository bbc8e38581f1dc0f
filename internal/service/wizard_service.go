package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"building-book-be/internal/apperror"
	"building-book-be/internal/catalog"
	"building-book-be/internal/dto"
	"building-book-be/internal/pkg/logger"
	"building-book-be/internal/projection"
	"building-book-be/internal/repository/memory"
	"building-book-be/internal/store"

	"github.com/google/uuid"
)

// IWizardService drives the digital-book wizard: one session per
// building, stepping through the 8 catalog sections with draft/complete
// persistence. A transition has not happened until its save resolved.
type IWizardService interface {
	Initialize(ctx context.Context, buildingId uuid.UUID, req *dto.InitWizardRequest) (*dto.WizardStateResponse, error)
	CurrentStep(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStepResponse, error)
	SetField(ctx context.Context, buildingId uuid.UUID, req *dto.SetFieldRequest) error
	GoNext(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error)
	GoPrevious(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error)
	SaveDraft(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error)
	AttachDocuments(ctx context.Context, buildingId uuid.UUID, req *dto.AttachDocumentsRequest) error
}

type wizardService struct {
	bookService      IBookService
	sessions         *memory.WizardSessionRepository
	resolver         *catalog.Resolver
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewWizardService(
	bookService IBookService,
	sessions *memory.WizardSessionRepository,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IWizardService {
	return &wizardService{
		bookService:      bookService,
		sessions:         sessions,
		resolver:         catalog.NewResolver(),
		publisherService: publisherService,
		logger:           sysLogger,
	}
}

func (c *wizardService) Initialize(ctx context.Context, buildingId uuid.UUID, req *dto.InitWizardRequest) (*dto.WizardStateResponse, error) {
	startIndex := 0
	if req.StartSectionId != "" {
		startIndex = catalog.IndexOf(req.StartSectionId)
		if startIndex < 0 {
			return nil, &apperror.UnknownSectionError{Value: req.StartSectionId}
		}
	}

	book, err := c.bookService.GetOrCreate(ctx, buildingId, req.Source)
	if err != nil {
		// No real book id means saves would have no target: editing is
		// disallowed rather than faking an empty unsaved book
		c.logger.Error("WIZARD", "Initialization failed, session unavailable", map[string]interface{}{
			"building_id": buildingId,
			"error":       err.Error(),
		})
		session := store.NewWizardSession(buildingId)
		session.State = store.StateUnavailable
		c.sessions.Save(session)
		return nil, &apperror.UnavailableError{BuildingId: buildingId.String()}
	}

	session := store.NewWizardSession(buildingId)
	session.Book = book
	session.State = store.StateEditing
	session.StepIndex = startIndex

	for _, sec := range book.Sections {
		uiId, ok := c.resolver.ToUiId(sec.Type)
		if !ok {
			// Backend type newer than this catalog; invisible to the wizard
			continue
		}
		content := make(map[string]string, len(sec.Content))
		for k, v := range sec.Content {
			content[k] = v
		}
		session.SeedFormData(uiId, string(sec.Type), content)
	}
	c.recomputeCompleted(session)

	c.sessions.Save(session)
	c.logger.Info("WIZARD", "Session initialized", map[string]interface{}{
		"building_id": buildingId,
		"book_id":     book.Id,
		"start_step":  startIndex,
	})

	return c.stateResponse(session), nil
}

func (c *wizardService) CurrentStep(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStepResponse, error) {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	def, _ := catalog.ByIndex(session.StepIndex)
	content := session.FormDataFor(def.Id, c.canonicalOf(def.Id))
	missing := missingRequired(def, content)

	attachments := session.Attachments[def.Id]
	if attachments == nil {
		attachments = make([]store.FileRef, 0)
	}

	return &dto.WizardStepResponse{
		Definition:    def,
		StepIndex:     session.StepIndex,
		Content:       content,
		Valid:         len(missing) == 0,
		MissingFields: missing,
		Attachments:   attachments,
	}, nil
}

func (c *wizardService) SetField(ctx context.Context, buildingId uuid.UUID, req *dto.SetFieldRequest) error {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()

	def, _ := catalog.ByIndex(session.StepIndex)
	content := session.FormDataFor(def.Id, c.canonicalOf(def.Id))
	content[req.Field] = req.Value
	c.sessions.Save(session)
	return nil
}

// GoNext validates the current step, saves it as complete and advances.
// If validation fails the transition is refused with no partial save; if
// the save fails the step does not change and edits stay intact.
func (c *wizardService) GoNext(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error) {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	def, _ := catalog.ByIndex(session.StepIndex)
	content := session.FormDataFor(def.Id, c.canonicalOf(def.Id))
	if missing := missingRequired(def, content); len(missing) > 0 {
		return nil, &apperror.ValidationError{SectionId: def.Id, Missing: missing}
	}

	if err := c.saveStep(ctx, session, def, true); err != nil {
		return nil, err
	}

	if session.StepIndex == catalog.StepCount()-1 {
		session.State = store.StateFinished
	} else {
		session.StepIndex++
	}
	c.sessions.Save(session)

	return c.stateResponse(session), nil
}

// GoPrevious drafts the current step best-effort and steps back. A save
// failure on the way back is logged, never blocking: losing a draft is
// less harmful than trapping the user on a step.
func (c *wizardService) GoPrevious(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error) {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	if session.StepIndex == 0 {
		return c.stateResponse(session), nil
	}

	def, _ := catalog.ByIndex(session.StepIndex)
	if err := c.saveStep(ctx, session, def, false); err != nil {
		c.logger.Warn("WIZARD", "Draft save failed on back-navigation", map[string]interface{}{
			"building_id": buildingId,
			"section_id":  def.Id,
			"error":       err.Error(),
		})
	}

	session.StepIndex--
	c.sessions.Save(session)
	return c.stateResponse(session), nil
}

// SaveDraft persists the current step with complete=false, no validation
// required, staying on the step.
func (c *wizardService) SaveDraft(ctx context.Context, buildingId uuid.UUID) (*dto.WizardStateResponse, error) {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	def, _ := catalog.ByIndex(session.StepIndex)
	if err := c.saveStep(ctx, session, def, false); err != nil {
		return nil, err
	}

	c.sessions.Save(session)
	return c.stateResponse(session), nil
}

func (c *wizardService) AttachDocuments(ctx context.Context, buildingId uuid.UUID, req *dto.AttachDocumentsRequest) error {
	session, err := c.editingSession(buildingId)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()

	def, _ := catalog.ByIndex(session.StepIndex)
	for _, f := range req.Files {
		session.Attachments[def.Id] = append(session.Attachments[def.Id], store.FileRef{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
			Url:      f.Url,
		})
	}
	c.sessions.Save(session)
	return nil
}

// saveStep upserts one section on the book and adopts the returned book
// as the new authoritative snapshot. On failure the session is left
// exactly as it was.
func (c *wizardService) saveStep(ctx context.Context, session *store.WizardSession, def catalog.SectionDefinition, complete bool) error {
	sectionType, err := c.resolver.ToCanonicalType(def.Id)
	if err != nil {
		return err
	}

	content := session.FormDataFor(def.Id, string(sectionType))
	book, err := c.bookService.UpsertSection(ctx, session.Book.Id, sectionType, content, complete)
	if err != nil {
		return err
	}

	session.Book = book
	c.recomputeCompleted(session)
	c.publishSectionSaved(ctx, session, sectionType, complete)
	return nil
}

func (c *wizardService) publishSectionSaved(ctx context.Context, session *store.WizardSession, sectionType catalog.SectionType, complete bool) {
	metrics := projection.Progress(session.Book, c.resolver)
	msg := dto.SectionSavedMessage{
		BookId:         session.Book.Id,
		BuildingId:     session.BuildingId,
		SectionType:    string(sectionType),
		Complete:       complete,
		CompletedCount: metrics.CompletedCount,
		Percentage:     metrics.Percentage,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Progress fan-out is auxiliary; a publish failure never fails a save
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("WIZARD", "Failed to publish section-saved event", map[string]interface{}{
			"building_id": session.BuildingId,
			"error":       err.Error(),
		})
	}
}

func (c *wizardService) recomputeCompleted(session *store.WizardSession) {
	completed := make(map[string]bool)
	for _, sec := range session.Book.Sections {
		if !sec.Complete {
			continue
		}
		if uiId, ok := c.resolver.ToUiId(sec.Type); ok {
			completed[uiId] = true
		}
	}
	session.Completed = completed
}

func (c *wizardService) editingSession(buildingId uuid.UUID) (*store.WizardSession, error) {
	session, found := c.sessions.Get(buildingId)
	if !found {
		return nil, &apperror.NotFoundError{Resource: "wizard session", Id: buildingId.String()}
	}
	switch session.State {
	case store.StateUnavailable:
		return nil, &apperror.UnavailableError{BuildingId: buildingId.String()}
	case store.StateFinished:
		return nil, &apperror.ConflictError{Resource: "wizard session", Detail: "wizard already finished for building " + buildingId.String()}
	}
	return session, nil
}

func (c *wizardService) canonicalOf(uiId string) string {
	t, err := c.resolver.ToCanonicalType(uiId)
	if err != nil {
		return uiId
	}
	return string(t)
}

func (c *wizardService) stateResponse(session *store.WizardSession) *dto.WizardStateResponse {
	sectionId := ""
	if session.State == store.StateEditing {
		if def, ok := catalog.ByIndex(session.StepIndex); ok {
			sectionId = def.Id
		}
	}

	completed := session.CompletedIds()
	sort.Strings(completed)

	return &dto.WizardStateResponse{
		BuildingId:          session.BuildingId,
		State:               session.State,
		StepIndex:           session.StepIndex,
		SectionId:           sectionId,
		CompletedSectionIds: completed,
		Progress:            projection.Progress(session.Book, c.resolver),
	}
}

func missingRequired(def catalog.SectionDefinition, content map[string]string) []string {
	missing := make([]string, 0)
	for _, f := range def.Fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(content[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
