package contract

import (
	"context"

	"building-book-be/internal/entity"
	"building-book-be/internal/repository/specification"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Book, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
