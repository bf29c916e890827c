package model

import "time"

// Book is the catalog entry. IDs are database-assigned, immutable and never
// reused. Titles are unique across all entries (case-sensitive exact match,
// backed by a unique index). CoverPath is empty when the book has no cover;
// when set it references a live file in the cover store.
type Book struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Author      string     `json:"author" db:"author"`
	CoverPath   string     `json:"cover_path" db:"cover_path"`
	ReleaseDate *time.Time `json:"release_date,omitempty" db:"release_date"`
	PublishDate time.Time  `json:"publish_date" db:"publish_date"`
	UpdateDate  *time.Time `json:"update_date,omitempty" db:"update_date"`
}
