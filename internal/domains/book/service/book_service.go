package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/domains/book/repository"
	"bookmanager-backend/internal/infrastructure/storage"
	"bookmanager-backend/internal/shared/response"
	"bookmanager-backend/pkg/cache"
	"bookmanager-backend/pkg/logger"
)

const (
	listCacheTTL     = 10 * time.Minute
	detailCacheTTL   = 10 * time.Minute
	listCachePattern = "books:list:*"
)

// BookService orchestrates the repository and the cover store under the
// catalog's business rules: title uniqueness, UTC timestamp stamping and
// cover lifecycle coupling. One unit of work per call; no state is shared
// across requests.
type BookService struct {
	repo  repository.RepositoryInterface
	store storage.CoverStore
	cache cache.Cache
}

func NewService(repo repository.RepositoryInterface, store storage.CoverStore, c cache.Cache) ServiceInterface {
	return &BookService{repo: repo, store: store, cache: c}
}

// List returns one page of the catalog. An empty page is classified as
// not-found, but the envelope still carries the pagination metadata so the
// caller can read the total count.
func (s *BookService) List(ctx context.Context, pageNumber, pageSize int) (*response.Response, error) {
	cacheKey := fmt.Sprintf("books:list:%d:%d", pageNumber, pageSize)

	var cached response.Response
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		logger.Warn("list cache read failed", err)
	} else if found {
		return &cached, nil
	}

	page, err := s.repo.FindPage(ctx, pageNumber, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if len(page.Items) == 0 {
		return &response.Response{
			StatusCode: http.StatusNotFound,
			Message:    "No books were found.",
			Details:    []model.BookResponse{},
			Pagination: &page.Meta,
		}, nil
	}

	resp := &response.Response{
		StatusCode: http.StatusOK,
		Message:    "Books retrieved successfully.",
		Details:    model.ToBookResponses(page.Items),
		Pagination: &page.Meta,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, listCacheTTL); err != nil {
		logger.Warn("list cache write failed", err)
	}

	return resp, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*response.Response, error) {
	if id <= 0 {
		return response.BadRequest("Invalid book identifier. The book ID must be a valid positive number."), nil
	}

	cacheKey := detailCacheKey(id)

	var cached response.Response
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		logger.Warn("detail cache read failed", err)
	} else if found {
		return &cached, nil
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if book == nil {
		return response.NotFound("Book not found."), nil
	}

	resp := response.OK("Book retrieved successfully.", model.ToBookResponse(book))

	if err := s.cache.Set(ctx, cacheKey, resp, detailCacheTTL); err != nil {
		logger.Warn("detail cache write failed", err)
	}

	return resp, nil
}

// Create validates, optionally stores the cover, stamps PublishDate to the
// current UTC time and commits. A failed cover write aborts before anything
// is persisted; a failed commit cleans up the freshly written file
// (best-effort).
func (s *BookService) Create(ctx context.Context, req model.BookRequest) (*response.Response, error) {
	if err := req.Validate(); err != nil {
		return response.BadRequest(err.Error()), nil
	}

	existing, err := s.repo.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if existing != nil {
		return response.BadRequest(fmt.Sprintf("A book with the title '%s' already exists.", req.Title)), nil
	}

	book := model.ToBookEntity(req)

	if req.Image != nil {
		path, err := s.store.Save(ctx, req.Image.Data, req.Image.FileName)
		if err != nil {
			return nil, fmt.Errorf("save cover: %w", err)
		}
		book.CoverPath = path
	}

	book.PublishDate = time.Now().UTC()

	if err := s.repo.Create(ctx, book); err != nil {
		s.discardCover(ctx, book.CoverPath)
		if errors.Is(err, model.ErrTitleAlreadyExists) {
			// Unique-constraint backstop for the check-then-act window.
			return response.BadRequest(fmt.Sprintf("A book with the title '%s' already exists.", req.Title)), nil
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.invalidateList(ctx)

	return response.Created("Book created successfully.", model.ToBookResponse(book)), nil
}

// Update applies the request onto the stored record, re-normalizes its
// timestamps to UTC and stamps UpdateDate. A new image replaces the old
// cover: the old file is deleted before the new one is written, trading an
// orphaned-delete risk for never having two live covers.
func (s *BookService) Update(ctx context.Context, id int64, req model.BookRequest) (*response.Response, error) {
	if err := req.Validate(); err != nil {
		return response.BadRequest(err.Error()), nil
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if book == nil {
		return response.NotFound("Book not found."), nil
	}

	existing, err := s.repo.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if existing != nil && existing.ID != id {
		return response.BadRequest(fmt.Sprintf("Cannot update the book. Another book with the title '%s' already exists.", req.Title)), nil
	}

	model.ApplyUpdates(book, req)

	book.PublishDate = book.PublishDate.UTC()
	now := time.Now().UTC()
	book.UpdateDate = &now

	newCover := ""
	if req.Image != nil {
		if err := s.store.DeleteIfExists(ctx, book.CoverPath); err != nil {
			return nil, fmt.Errorf("delete old cover: %w", err)
		}
		newCover, err = s.store.Save(ctx, req.Image.Data, req.Image.FileName)
		if err != nil {
			return nil, fmt.Errorf("save cover: %w", err)
		}
		book.CoverPath = newCover
	}

	if err := s.repo.Update(ctx, book); err != nil {
		s.discardCover(ctx, newCover)
		if errors.Is(err, model.ErrTitleAlreadyExists) {
			return response.BadRequest(fmt.Sprintf("Cannot update the book. Another book with the title '%s' already exists.", req.Title)), nil
		}
		if errors.Is(err, model.ErrBookNotFound) {
			return response.NotFound("Book not found."), nil
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.invalidate(ctx, id)

	return response.OK("Book updated successfully.", model.ToBookResponse(book)), nil
}

// DeleteImage removes the cover file (a no-op when there is none) and
// clears the cover path. Repeatable: a book without a cover yields the same
// OK outcome.
func (s *BookService) DeleteImage(ctx context.Context, id int64) (*response.Response, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if book == nil {
		return response.NotFound("Book not found."), nil
	}

	if err := s.store.DeleteIfExists(ctx, book.CoverPath); err != nil {
		return nil, fmt.Errorf("delete cover: %w", err)
	}

	book.CoverPath = ""
	now := time.Now().UTC()
	book.UpdateDate = &now

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.invalidate(ctx, id)

	return response.OK("Book image deleted successfully.", model.ToBookResponse(book)), nil
}

// Delete removes the cover file (if any) and then the record. Deletion is
// permanent; IDs are never reused.
func (s *BookService) Delete(ctx context.Context, id int64) (*response.Response, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if book == nil {
		return response.NotFound("Book not found."), nil
	}

	if err := s.store.DeleteIfExists(ctx, book.CoverPath); err != nil {
		return nil, fmt.Errorf("delete cover: %w", err)
	}

	if err := s.repo.Delete(ctx, book); err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}

	s.invalidate(ctx, id)

	return response.OK("Book deleted successfully.", nil), nil
}

// discardCover best-effort removes a freshly written cover after a failed
// commit so it does not leak. Failures are logged, not surfaced.
func (s *BookService) discardCover(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.DeleteIfExists(ctx, path); err != nil {
		logger.Warn("failed to clean up orphaned cover "+path, err)
	}
}

func (s *BookService) invalidateList(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		logger.Warn("list cache invalidation failed", err)
	}
}

func (s *BookService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, detailCacheKey(id)); err != nil {
		logger.Warn("detail cache invalidation failed", err)
	}
	s.invalidateList(ctx)
}

func detailCacheKey(id int64) string {
	return fmt.Sprintf("books:detail:%d", id)
}
