package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"building-book-be/internal/apperror"
	"building-book-be/internal/catalog"
	"building-book-be/internal/dto"
	"building-book-be/internal/entity"
	"building-book-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookService keeps books in memory behind the IBookService contract,
// with injectable failures for the fetch and upsert paths.
type fakeBookService struct {
	mu          sync.Mutex
	books       map[uuid.UUID]*entity.Book
	getErr      error
	upsertErr   error
	createCalls int
	upsertCalls int
}

func newFakeBookService() *fakeBookService {
	return &fakeBookService{
		books: make(map[uuid.UUID]*entity.Book),
	}
}

func (f *fakeBookService) GetByBuilding(ctx context.Context, buildingId uuid.UUID) (*entity.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	book, ok := f.books[buildingId]
	if !ok {
		return nil, &apperror.NotFoundError{Resource: "digital book", Id: buildingId.String()}
	}
	return copyBook(book), nil
}

func (f *fakeBookService) Create(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if source == "" {
		source = entity.SourceManual
	}
	book := &entity.Book{
		Id:         uuid.New(),
		BuildingId: buildingId,
		Source:     source,
		Sections:   make([]*entity.Section, 0),
		CreatedAt:  time.Now(),
	}
	f.books[buildingId] = book
	return copyBook(book), nil
}

func (f *fakeBookService) GetOrCreate(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error) {
	book, err := f.GetByBuilding(ctx, buildingId)
	if err == nil {
		return book, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	return f.Create(ctx, buildingId, source)
}

func (f *fakeBookService) UpsertSection(ctx context.Context, bookId uuid.UUID, sectionType catalog.SectionType, content map[string]string, complete bool) (*entity.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upsertCalls++

	var book *entity.Book
	for _, b := range f.books {
		if b.Id == bookId {
			book = b
			break
		}
	}
	if book == nil {
		return nil, &apperror.NotFoundError{Resource: "digital book", Id: bookId.String()}
	}

	stored := copyContent(content)
	if existing := book.SectionByType(sectionType); existing != nil {
		existing.Content = stored
		existing.Complete = complete
	} else {
		book.Sections = append(book.Sections, &entity.Section{
			Id:       uuid.New(),
			BookId:   bookId,
			Type:     sectionType,
			Content:  stored,
			Complete: complete,
		})
	}
	return copyBook(book), nil
}

func (f *fakeBookService) Show(ctx context.Context, buildingId uuid.UUID) (*dto.ShowBookResponse, error) {
	return nil, &apperror.NotFoundError{Resource: "digital book", Id: buildingId.String()}
}

func (f *fakeBookService) Progress(ctx context.Context, buildingId uuid.UUID) (*dto.ProgressResponse, error) {
	return &dto.ProgressResponse{BuildingId: buildingId}, nil
}

func copyBook(b *entity.Book) *entity.Book {
	cp := *b
	cp.Sections = make([]*entity.Section, len(b.Sections))
	for i, s := range b.Sections {
		sc := *s
		sc.Content = copyContent(s.Content)
		cp.Sections[i] = &sc
	}
	return &cp
}

func copyContent(content map[string]string) map[string]string {
	cp := make(map[string]string, len(content))
	for k, v := range content {
		cp[k] = v
	}
	return cp
}

type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newWizardFixture() (IWizardService, *fakeBookService, *capturePublisher) {
	books := newFakeBookService()
	publisher := &capturePublisher{}
	svc := NewWizardService(books, memory.NewWizardSessionRepository(), publisher, nopLogger{})
	return svc, books, publisher
}

func fillGeneralData(t *testing.T, svc IWizardService, buildingId uuid.UUID) {
	t.Helper()
	fields := map[string]string{
		"address":             "Calle Mayor 12",
		"cadastral_reference": "9872023VH5797S0001WX",
		"construction_year":   "1987",
		"property_type":       "Residencial",
		"total_area":          "2450",
	}
	for field, value := range fields {
		err := svc.SetField(context.Background(), buildingId, &dto.SetFieldRequest{Field: field, Value: value})
		require.NoError(t, err)
	}
}

func TestInitializeFreshBuilding(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()

	state, err := svc.Initialize(context.Background(), buildingId, &dto.InitWizardRequest{})
	require.NoError(t, err)

	assert.Equal(t, "EDITING", state.State)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, catalog.SectionGeneralData, state.SectionId)
	assert.Empty(t, state.CompletedSectionIds)
	assert.Equal(t, 0, state.Progress.Percentage)
	assert.Equal(t, 1, books.createCalls)
}

func TestInitializeIsIdempotent(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{})
	require.NoError(t, err)
	_, err = svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, books.createCalls, "second mount must reuse the existing book")
	assert.Len(t, books.books, 1)
}

func TestInitializeAtStartSection(t *testing.T) {
	svc, _, _ := newWizardFixture()
	buildingId := uuid.New()

	state, err := svc.Initialize(context.Background(), buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionMaintenance})
	require.NoError(t, err)

	assert.Equal(t, 3, state.StepIndex)
	assert.Equal(t, catalog.SectionMaintenance, state.SectionId)
}

func TestInitializeUnknownStartSection(t *testing.T) {
	svc, books, _ := newWizardFixture()

	_, err := svc.Initialize(context.Background(), uuid.New(), &dto.InitWizardRequest{StartSectionId: "swimming_pools"})

	var unknownErr *apperror.UnknownSectionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, 0, books.createCalls, "rejected before touching the backend")
}

func TestInitializeBackendUnavailable(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()
	books.getErr = &apperror.FetchError{Op: "get book by building", Err: assert.AnError}

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{})
	assert.True(t, apperror.IsUnavailable(err))

	// The parked session refuses every editing action the same way.
	_, err = svc.SaveDraft(ctx, buildingId)
	assert.True(t, apperror.IsUnavailable(err))
	_, err = svc.GoNext(ctx, buildingId)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, 0, books.upsertCalls)
}

func TestNoSessionIsNotFound(t *testing.T) {
	svc, _, _ := newWizardFixture()

	_, err := svc.CurrentStep(context.Background(), uuid.New())

	var notFoundErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestGoNextCompletesSection(t *testing.T) {
	svc, books, publisher := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{})
	require.NoError(t, err)
	fillGeneralData(t, svc, buildingId)

	state, err := svc.GoNext(ctx, buildingId)
	require.NoError(t, err)

	assert.Equal(t, 1, state.StepIndex)
	assert.Equal(t, catalog.SectionBuildingFeatures, state.SectionId)
	assert.Equal(t, []string{catalog.SectionGeneralData}, state.CompletedSectionIds)
	assert.Equal(t, 1, state.Progress.CompletedCount)
	assert.Equal(t, 13, state.Progress.Percentage)
	assert.Equal(t, 1, books.upsertCalls)
	assert.Equal(t, 1, publisher.count())

	book := books.books[buildingId]
	section := book.SectionByType(catalog.TypeGeneralData)
	require.NotNil(t, section)
	assert.True(t, section.Complete)
	assert.Equal(t, "Calle Mayor 12", section.Content["address"])
}

func TestGoNextBlockedByValidation(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionCertificates})
	require.NoError(t, err)
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "energy_certificate_number", Value: "CEE-2024-0042"})
	require.NoError(t, err)

	_, err = svc.GoNext(ctx, buildingId)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, catalog.SectionCertificates, validationErr.SectionId)
	assert.Equal(t, []string{"energy_rating"}, validationErr.Missing)
	assert.Equal(t, 0, books.upsertCalls, "a refused transition must not save")

	step, err := svc.CurrentStep(ctx, buildingId)
	require.NoError(t, err)
	assert.Equal(t, 2, step.StepIndex, "step unchanged after refused transition")
	assert.Equal(t, "CEE-2024-0042", step.Content["energy_certificate_number"], "edits stay intact")
}

func TestWhitespaceDoesNotSatisfyRequired(t *testing.T) {
	svc, _, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionMaintenance})
	require.NoError(t, err)
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "maintenance_company", Value: "   "})
	require.NoError(t, err)

	_, err = svc.GoNext(ctx, buildingId)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"maintenance_company"}, validationErr.Missing)
}

func TestGoNextSaveFailureKeepsState(t *testing.T) {
	svc, books, publisher := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{})
	require.NoError(t, err)
	fillGeneralData(t, svc, buildingId)
	books.upsertErr = &apperror.SaveError{Op: "upsert section", Err: assert.AnError}

	_, err = svc.GoNext(ctx, buildingId)
	require.Error(t, err)

	step, stepErr := svc.CurrentStep(ctx, buildingId)
	require.NoError(t, stepErr)
	assert.Equal(t, 0, step.StepIndex, "failed save must not advance")
	assert.Equal(t, "Calle Mayor 12", step.Content["address"], "edits survive the failure")
	assert.Equal(t, 0, publisher.count())

	// The backend recovers and the same transition goes through.
	books.upsertErr = nil
	state, err := svc.GoNext(ctx, buildingId)
	require.NoError(t, err)
	assert.Equal(t, 1, state.StepIndex)
}

func TestSaveDraftKeepsCompletion(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionMaintenance})
	require.NoError(t, err)
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "plan_summary", Value: "Revisión anual de cubierta"})
	require.NoError(t, err)

	state, err := svc.SaveDraft(ctx, buildingId)
	require.NoError(t, err)

	assert.Equal(t, 3, state.StepIndex, "draft save stays on the step")
	assert.Empty(t, state.CompletedSectionIds, "a draft never counts as complete")
	assert.Equal(t, 0, state.Progress.Percentage)

	section := books.books[buildingId].SectionByType(catalog.TypeMaintenance)
	require.NotNil(t, section)
	assert.False(t, section.Complete)
	assert.Equal(t, "Revisión anual de cubierta", section.Content["plan_summary"])
}

func TestDraftRoundTrip(t *testing.T) {
	svc, _, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionInsurance})
	require.NoError(t, err)
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "insurer", Value: "Mapfre"})
	require.NoError(t, err)
	_, err = svc.SaveDraft(ctx, buildingId)
	require.NoError(t, err)

	// A later mount seeds the session from persisted content.
	_, err = svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionInsurance})
	require.NoError(t, err)

	step, err := svc.CurrentStep(ctx, buildingId)
	require.NoError(t, err)
	assert.Equal(t, "Mapfre", step.Content["insurer"])
	assert.False(t, step.Valid, "policy_number still missing")
	assert.Contains(t, step.MissingFields, "policy_number")
}

func TestGoPreviousIsBestEffort(t *testing.T) {
	svc, books, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionBuildingFeatures})
	require.NoError(t, err)
	books.upsertErr = &apperror.SaveError{Op: "upsert section", Err: assert.AnError}

	state, err := svc.GoPrevious(ctx, buildingId)
	require.NoError(t, err, "a draft failure never blocks back-navigation")
	assert.Equal(t, 0, state.StepIndex)

	// Already on the first step: stays put.
	state, err = svc.GoPrevious(ctx, buildingId)
	require.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
}

func TestFinishOnLastStep(t *testing.T) {
	svc, _, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionDocumentation})
	require.NoError(t, err)
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "occupancy_license", Value: "LPO-1987-445"})
	require.NoError(t, err)

	state, err := svc.GoNext(ctx, buildingId)
	require.NoError(t, err)
	assert.Equal(t, "FINISHED", state.State)
	assert.Equal(t, []string{catalog.SectionDocumentation}, state.CompletedSectionIds)

	// A finished wizard refuses further editing.
	err = svc.SetField(ctx, buildingId, &dto.SetFieldRequest{Field: "registry_data", Value: "Tomo 4"})
	assert.True(t, apperror.IsConflict(err))
}

func TestAttachDocuments(t *testing.T) {
	svc, _, _ := newWizardFixture()
	buildingId := uuid.New()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, buildingId, &dto.InitWizardRequest{StartSectionId: catalog.SectionCertificates})
	require.NoError(t, err)

	err = svc.AttachDocuments(ctx, buildingId, &dto.AttachDocumentsRequest{
		Files: []dto.AttachedFileRequest{
			{Name: "certificado-energetico.pdf", Size: 182344, MimeType: "application/pdf"},
		},
	})
	require.NoError(t, err)

	step, err := svc.CurrentStep(ctx, buildingId)
	require.NoError(t, err)
	require.Len(t, step.Attachments, 1)
	assert.Equal(t, "certificado-energetico.pdf", step.Attachments[0].Name)
}
