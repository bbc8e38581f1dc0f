package unitofwork

import (
	"context"

	"building-book-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookRepository() contract.BookRepository
	SectionRepository() contract.SectionRepository
}
