package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/shared/response"
	"bookmanager-backend/pkg/pagination"
)

// ---- in-memory fakes ----

type memRepo struct {
	nextID    int64
	books     []model.Book
	createErr error // injected commit failure
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*model.Book, error) {
	for i := range r.books {
		if r.books[i].ID == id {
			b := r.books[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindByTitle(_ context.Context, title string) (*model.Book, error) {
	for i := range r.books {
		if r.books[i].Title == title {
			b := r.books[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindPage(_ context.Context, pageNumber, pageSize int) (*pagination.Page[model.Book], error) {
	page := pagination.Paginate(r.books, pageNumber, pageSize)
	return &page, nil
}

func (r *memRepo) Create(_ context.Context, book *model.Book) error {
	if r.createErr != nil {
		return r.createErr
	}
	for i := range r.books {
		if r.books[i].Title == book.Title {
			return model.ErrTitleAlreadyExists
		}
	}
	r.nextID++
	book.ID = r.nextID
	r.books = append(r.books, *book)
	return nil
}

func (r *memRepo) Update(_ context.Context, book *model.Book) error {
	for i := range r.books {
		if r.books[i].ID != book.ID && r.books[i].Title == book.Title {
			return model.ErrTitleAlreadyExists
		}
	}
	for i := range r.books {
		if r.books[i].ID == book.ID {
			r.books[i] = *book
			return nil
		}
	}
	return model.ErrBookNotFound
}

func (r *memRepo) Delete(_ context.Context, book *model.Book) error {
	for i := range r.books {
		if r.books[i].ID == book.ID {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return nil
}

type memStore struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
	seq     int
}

func newMemStore() *memStore {
	return &memStore{saved: map[string][]byte{}}
}

func (s *memStore) Save(_ context.Context, data []byte, originalName string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.seq++
	path := fmt.Sprintf("/images/books/cover-%d%s", s.seq, filepath.Ext(originalName))
	s.saved[path] = data
	return path, nil
}

func (s *memStore) DeleteIfExists(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	delete(s.saved, path)
	s.deleted = append(s.deleted, path)
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error)         { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error  { return nil }
func (noopCache) Delete(context.Context, ...string) error                        { return nil }
func (noopCache) DeletePattern(context.Context, string) error                    { return nil }
func (noopCache) Ping(context.Context) error                                     { return nil }

func newTestService() (*BookService, *memRepo, *memStore) {
	repo := &memRepo{}
	store := newMemStore()
	svc := NewService(repo, store, noopCache{}).(*BookService)
	return svc, repo, store
}

func dune() model.BookRequest {
	return model.BookRequest{Title: "Dune", Description: "Desert planet.", Author: "Herbert"}
}

func bookDetails(t *testing.T, resp *response.Response) model.BookResponse {
	t.Helper()
	details, ok := resp.Details.(model.BookResponse)
	require.True(t, ok, "expected BookResponse details, got %T", resp.Details)
	return details
}

// ---- tests ----

func TestCreateBook(t *testing.T) {
	svc, _, _ := newTestService()
	before := time.Now().UTC()

	resp, err := svc.Create(context.Background(), dune())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := bookDetails(t, resp)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Dune", created.Title)
	assert.Empty(t, created.CoverPath)
	assert.Nil(t, created.UpdateDate)
	assert.Equal(t, time.UTC, created.PublishDate.Location())
	assert.False(t, created.PublishDate.Before(before))
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dune())
	require.NoError(t, err)

	resp, err := svc.Create(ctx, dune())
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Message, "already exists")
	assert.Len(t, repo.books, 1)
}

func TestCreateAllowsDistinctTitle(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dune())
	require.NoError(t, err)

	second := dune()
	second.Title = "Dune Messiah"
	resp, err := svc.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, repo.books, 2)
}

func TestCreateValidationFailure(t *testing.T) {
	svc, repo, _ := newTestService()

	req := dune()
	req.Title = ""
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.books)
}

func TestCreateWithImage(t *testing.T) {
	svc, _, store := newTestService()

	req := dune()
	req.Image = &model.ImageUpload{FileName: "cover.jpg", Data: []byte("jpeg")}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	created := bookDetails(t, resp)
	require.NotEmpty(t, created.CoverPath)
	assert.Contains(t, store.saved, created.CoverPath)
}

func TestCreateStorageFailureAbortsBeforePersist(t *testing.T) {
	svc, repo, store := newTestService()
	store.saveErr = fmt.Errorf("disk full")

	req := dune()
	req.Image = &model.ImageUpload{FileName: "cover.jpg", Data: []byte("jpeg")}

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, repo.books, "nothing may be persisted after a failed file write")
}

// Two racing creates can both pass the pre-check; the repository's unique
// constraint is the backstop and must yield the same duplicate outcome,
// without leaking the freshly written cover.
func TestCreateConstraintViolationAtCommit(t *testing.T) {
	svc, repo, store := newTestService()
	repo.createErr = model.ErrTitleAlreadyExists

	req := dune()
	req.Image = &model.ImageUpload{FileName: "cover.png", Data: []byte("png")}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Message, "already exists")
	assert.Empty(t, store.saved, "orphaned cover must be cleaned up")
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, id := range []int64{0, -3} {
		resp, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id %d", id)
	}

	resp, err := svc.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = svc.Create(ctx, dune())
	require.NoError(t, err)

	resp, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dune", bookDetails(t, resp).Title)
}

func TestUpdateRejectsTitleHeldByAnotherBook(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dune())
	require.NoError(t, err)
	second := dune()
	second.Title = "Dune Messiah"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	update := dune() // tries to take book 1's title
	resp, err := svc.Update(ctx, 2, update)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Message, "already exists")
}

func TestUpdateKeepsOwnTitle(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	createResp, err := svc.Create(ctx, dune())
	require.NoError(t, err)
	publishDate := bookDetails(t, createResp).PublishDate

	update := dune()
	update.Description = "Revised description."
	resp, err := svc.Update(ctx, 1, update)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := bookDetails(t, resp)
	assert.Equal(t, "Revised description.", updated.Description)
	assert.Equal(t, publishDate, updated.PublishDate, "publish date is preserved on update")
	require.NotNil(t, updated.UpdateDate)
	assert.Equal(t, time.UTC, updated.UpdateDate.Location())
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Update(context.Background(), 99, dune())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateNormalizesReleaseDateToUTC(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dune())
	require.NoError(t, err)

	loc := time.FixedZone("UTC-5", -5*3600)
	release := time.Date(2024, 6, 1, 8, 0, 0, 0, loc)
	update := dune()
	update.ReleaseDate = &release

	resp, err := svc.Update(ctx, 1, update)
	require.NoError(t, err)

	updated := bookDetails(t, resp)
	require.NotNil(t, updated.ReleaseDate)
	assert.Equal(t, time.UTC, updated.ReleaseDate.Location())
	assert.True(t, updated.ReleaseDate.Equal(release))
}

func TestUpdateReplacesCover(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	req := dune()
	req.Image = &model.ImageUpload{FileName: "old.jpg", Data: []byte("old")}
	createResp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	oldPath := bookDetails(t, createResp).CoverPath

	update := dune()
	update.Image = &model.ImageUpload{FileName: "new.jpg", Data: []byte("new")}
	resp, err := svc.Update(ctx, 1, update)
	require.NoError(t, err)

	newPath := bookDetails(t, resp).CoverPath
	assert.NotEqual(t, oldPath, newPath)
	assert.Contains(t, store.deleted, oldPath, "old cover removed before the new one is assigned")
	assert.NotContains(t, store.saved, oldPath)
	assert.Contains(t, store.saved, newPath)
}

func TestDeleteImage(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	req := dune()
	req.Image = &model.ImageUpload{FileName: "cover.jpg", Data: []byte("jpeg")}
	createResp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	coverPath := bookDetails(t, createResp).CoverPath

	resp, err := svc.DeleteImage(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, bookDetails(t, resp).CoverPath)
	assert.NotContains(t, store.saved, coverPath)

	// Idempotent: no cover left, same OK outcome, no error.
	resp, err = svc.DeleteImage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteImageNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.DeleteImage(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteRemovesCoverFile(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	req := dune()
	req.Image = &model.ImageUpload{FileName: "cover.jpg", Data: []byte("jpeg")}
	createResp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	coverPath := bookDetails(t, createResp).CoverPath

	resp, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, resp.Details)
	assert.NotContains(t, store.saved, coverPath)

	getResp, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestDeleteWithoutCoverTouchesNoFiles(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dune())
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, store.deleted)
}

func TestListEmptyCatalog(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, []model.BookResponse{}, resp.Details)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 0, resp.Pagination.TotalCount)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		req := dune()
		req.Title = fmt.Sprintf("Book %02d", i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, 2, 5)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items, ok := resp.Details.([]model.BookResponse)
	require.True(t, ok)
	require.Len(t, items, 5)
	assert.Equal(t, "Book 06", items[0].Title)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 12, resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	require.NotNil(t, resp.Pagination.PreviousPage)
	assert.Equal(t, 1, *resp.Pagination.PreviousPage)
	require.NotNil(t, resp.Pagination.NextPage)
	assert.Equal(t, 3, *resp.Pagination.NextPage)
}

// Full lifecycle: create, duplicate rejection, rename, delete, gone.
func TestCatalogLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	createResp, err := svc.Create(ctx, dune())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	assert.Equal(t, int64(1), bookDetails(t, createResp).ID)

	dupResp, err := svc.Create(ctx, dune())
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, dupResp.StatusCode)

	rename := dune()
	rename.Title = "Dune Messiah"
	updateResp, err := svc.Update(ctx, 1, rename)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	assert.NotNil(t, bookDetails(t, updateResp).UpdateDate)

	deleteResp, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, deleteResp.StatusCode)

	getResp, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestExportBuildsWorkbook(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, title := range []string{"Dune", "Dune Messiah"} {
		req := dune()
		req.Title = title
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	f, err := svc.Export(ctx)
	require.NoError(t, err)

	title, err := f.GetCellValue("Books", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Dune", title)

	title, err = f.GetCellValue("Books", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", title)
}
