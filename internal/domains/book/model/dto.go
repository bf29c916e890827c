package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ImageUpload carries an optional cover attachment from a multipart request.
type ImageUpload struct {
	FileName string
	Data     []byte
}

// BookRequest is the create/update payload. Create and update share one
// shape; the image attachment is optional on both.
type BookRequest struct {
	Title       string       `json:"title" form:"title"`
	Description string       `json:"description" form:"description"`
	Author      string       `json:"author" form:"author"`
	ReleaseDate *time.Time   `json:"release_date,omitempty" form:"-"`
	Image       *ImageUpload `json:"-" form:"-"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required),
	)
}

// BookResponse mirrors the entity for transport.
type BookResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      string     `json:"author"`
	CoverPath   string     `json:"cover_path,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	PublishDate time.Time  `json:"publish_date"`
	UpdateDate  *time.Time `json:"update_date,omitempty"`
}

// ToBookEntity maps a request into a fresh entity. PublishDate, CoverPath
// and ID are owned by the service and repository, not the request.
func ToBookEntity(req BookRequest) *Book {
	return &Book{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		ReleaseDate: utcOrNil(req.ReleaseDate),
	}
}

// ApplyUpdates copies the request fields onto an existing entity in place.
// PublishDate is preserved; the service re-normalizes timestamps and stamps
// UpdateDate.
func ApplyUpdates(book *Book, req BookRequest) {
	book.Title = req.Title
	book.Description = req.Description
	book.Author = req.Author
	book.ReleaseDate = utcOrNil(req.ReleaseDate)
}

func ToBookResponse(book *Book) BookResponse {
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Author:      book.Author,
		CoverPath:   book.CoverPath,
		ReleaseDate: book.ReleaseDate,
		PublishDate: book.PublishDate,
		UpdateDate:  book.UpdateDate,
	}
}

func ToBookResponses(books []Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = ToBookResponse(&books[i])
	}
	return out
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
