package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookRequestValidate(t *testing.T) {
	valid := BookRequest{Title: "Dune", Description: "Desert planet.", Author: "Herbert"}

	tests := []struct {
		name    string
		mutate  func(*BookRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *BookRequest) {}},
		{name: "missing title", mutate: func(r *BookRequest) { r.Title = "" }, wantErr: true},
		{name: "title too long", mutate: func(r *BookRequest) { r.Title = strings.Repeat("x", 151) }, wantErr: true},
		{name: "title at limit", mutate: func(r *BookRequest) { r.Title = strings.Repeat("x", 150) }},
		{name: "missing description", mutate: func(r *BookRequest) { r.Description = "" }, wantErr: true},
		{name: "description too long", mutate: func(r *BookRequest) { r.Description = strings.Repeat("x", 501) }, wantErr: true},
		{name: "missing author", mutate: func(r *BookRequest) { r.Author = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToBookEntityNormalizesReleaseDateToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	release := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)

	book := ToBookEntity(BookRequest{Title: "t", Description: "d", Author: "a", ReleaseDate: &release})

	assert.Equal(t, time.UTC, book.ReleaseDate.Location())
	assert.True(t, book.ReleaseDate.Equal(release))
}

func TestApplyUpdatesPreservesPublishDateAndCover(t *testing.T) {
	published := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	book := &Book{ID: 7, Title: "old", Description: "old", Author: "old", CoverPath: "/images/books/x.jpg", PublishDate: published}

	ApplyUpdates(book, BookRequest{Title: "new", Description: "new desc", Author: "new author"})

	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, "new", book.Title)
	assert.Equal(t, "/images/books/x.jpg", book.CoverPath)
	assert.Equal(t, published, book.PublishDate)
	assert.Nil(t, book.ReleaseDate)
}
