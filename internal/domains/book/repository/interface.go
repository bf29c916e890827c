package repository

import (
	"context"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/pkg/pagination"
)

// RepositoryInterface is the catalog's persistence port. Lookups return
// (nil, nil) when no record matches. Each mutation is one atomic commit:
// either the change is durable or prior state is untouched.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)

	// FindPage enumerates the catalog in insertion order (ascending id).
	FindPage(ctx context.Context, pageNumber, pageSize int) (*pagination.Page[model.Book], error)

	// Create persists a new record and assigns its ID. A duplicate title at
	// commit time returns model.ErrTitleAlreadyExists.
	Create(ctx context.Context, book *model.Book) error

	// Update persists an in-place mutation. A duplicate title at commit
	// time returns model.ErrTitleAlreadyExists.
	Update(ctx context.Context, book *model.Book) error

	Delete(ctx context.Context, book *model.Book) error
}
