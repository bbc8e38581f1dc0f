package service

import (
	"context"
	"fmt"
	"time"

	"building-book-be/internal/apperror"
	"building-book-be/internal/catalog"
	"building-book-be/internal/dto"
	"building-book-be/internal/entity"
	"building-book-be/internal/projection"
	"building-book-be/internal/repository/specification"
	"building-book-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IBookService is the book repository boundary the wizard consumes:
// get-book-by-building, create-book, upsert-section. Upserts return the
// full refreshed book, which is authoritative for completion state.
type IBookService interface {
	GetByBuilding(ctx context.Context, buildingId uuid.UUID) (*entity.Book, error)
	Create(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error)
	GetOrCreate(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error)
	UpsertSection(ctx context.Context, bookId uuid.UUID, sectionType catalog.SectionType, content map[string]string, complete bool) (*entity.Book, error)
	Show(ctx context.Context, buildingId uuid.UUID) (*dto.ShowBookResponse, error)
	Progress(ctx context.Context, buildingId uuid.UUID) (*dto.ProgressResponse, error)
}

type bookService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *catalog.Resolver
}

func NewBookService(uowFactory unitofwork.RepositoryFactory) IBookService {
	return &bookService{
		uowFactory: uowFactory,
		resolver:   catalog.NewResolver(),
	}
}

func (c *bookService) GetByBuilding(ctx context.Context, buildingId uuid.UUID) (*entity.Book, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx, specification.ByBuildingID{BuildingID: buildingId})
	if err != nil {
		return nil, &apperror.FetchError{Op: "get book by building", Err: err}
	}
	if book == nil {
		return nil, &apperror.NotFoundError{Resource: "digital book", Id: buildingId.String()}
	}

	if err := c.loadSections(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (c *bookService) Create(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error) {
	if source == "" {
		source = entity.SourceManual
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	book := entity.Book{
		Id:         uuid.New(),
		BuildingId: buildingId,
		Source:     source,
		CreatedAt:  time.Now(),
	}

	if err := uow.BookRepository().Create(ctx, &book); err != nil {
		return nil, &apperror.SaveError{Op: "create book", Err: err}
	}

	book.Sections = make([]*entity.Section, 0)
	return &book, nil
}

// GetOrCreate is the idempotent mount path: repeated or concurrent calls
// for one building must never back it with two distinct books. The unique
// index on building_id rejects the losing creator; that conflict is
// resolved by fetching again and using the existing book.
func (c *bookService) GetOrCreate(ctx context.Context, buildingId uuid.UUID, source string) (*entity.Book, error) {
	book, err := c.GetByBuilding(ctx, buildingId)
	if err == nil {
		return book, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	created, createErr := c.Create(ctx, buildingId, source)
	if createErr == nil {
		return created, nil
	}

	// Lost a create race: the existing book wins
	if existing, fetchErr := c.GetByBuilding(ctx, buildingId); fetchErr == nil {
		return existing, nil
	}
	return nil, createErr
}

func (c *bookService) UpsertSection(ctx context.Context, bookId uuid.UUID, sectionType catalog.SectionType, content map[string]string, complete bool) (*entity.Book, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx, specification.ByID{ID: bookId})
	if err != nil {
		return nil, &apperror.SaveError{Op: "upsert section", Err: err}
	}
	if book == nil {
		return nil, &apperror.NotFoundError{Resource: "digital book", Id: bookId.String()}
	}

	existing, err := uow.SectionRepository().FindOne(ctx,
		specification.ByBookID{BookID: bookId},
		specification.BySectionType{SectionType: string(sectionType)},
	)
	if err != nil {
		return nil, &apperror.SaveError{Op: "upsert section", Err: err}
	}

	if existing == nil {
		section := entity.Section{
			Id:        uuid.New(),
			BookId:    bookId,
			Type:      sectionType,
			Content:   content,
			Complete:  complete,
			CreatedAt: time.Now(),
		}
		if err := uow.SectionRepository().Create(ctx, &section); err != nil {
			return nil, &apperror.SaveError{Op: "create section", Err: err}
		}
	} else {
		now := time.Now()
		existing.Content = content
		existing.Complete = complete
		existing.UpdatedAt = &now
		if err := uow.SectionRepository().Update(ctx, existing); err != nil {
			return nil, &apperror.SaveError{Op: "update section", Err: err}
		}
	}

	// Re-read so the caller replaces its snapshot with what was actually
	// persisted, sections included
	if err := c.loadSections(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Show is the audit-panel read: the raw book with per-section completion
// flags and the derived progress metrics.
func (c *bookService) Show(ctx context.Context, buildingId uuid.UUID) (*dto.ShowBookResponse, error) {
	book, err := c.GetByBuilding(ctx, buildingId)
	if err != nil {
		return nil, err
	}

	sections := make([]dto.BookSectionResponse, 0, len(book.Sections))
	for _, s := range book.Sections {
		uiId, _ := c.resolver.ToUiId(s.Type)
		sections = append(sections, dto.BookSectionResponse{
			Id:        s.Id,
			Type:      string(s.Type),
			SectionId: uiId,
			Content:   s.Content,
			Complete:  s.Complete,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return &dto.ShowBookResponse{
		Id:         book.Id,
		BuildingId: book.BuildingId,
		Source:     book.Source,
		Sections:   sections,
		Progress:   projection.Progress(book, c.resolver),
		CreatedAt:  book.CreatedAt,
		UpdatedAt:  book.UpdatedAt,
	}, nil
}

// Progress serves any external view displaying digital-book progress. A
// building without a book simply has zero progress, not an error.
func (c *bookService) Progress(ctx context.Context, buildingId uuid.UUID) (*dto.ProgressResponse, error) {
	book, err := c.GetByBuilding(ctx, buildingId)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &dto.ProgressResponse{BuildingId: buildingId}, nil
		}
		return nil, err
	}

	metrics := projection.Progress(book, c.resolver)
	return &dto.ProgressResponse{
		BuildingId:     buildingId,
		CompletedCount: metrics.CompletedCount,
		Percentage:     metrics.Percentage,
	}, nil
}

func (c *bookService) loadSections(ctx context.Context, book *entity.Book) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sections, err := uow.SectionRepository().FindAll(ctx,
		specification.ByBookID{BookID: book.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return &apperror.FetchError{Op: "load book sections", Err: err}
	}

	seen := make(map[catalog.SectionType]bool, len(sections))
	for _, s := range sections {
		if seen[s.Type] {
			return &apperror.ConflictError{
				Resource: "digital book",
				Detail:   fmt.Sprintf("book %s holds duplicate sections of type %s", book.Id, s.Type),
			}
		}
		seen[s.Type] = true
	}

	book.Sections = sections
	return nil
}
