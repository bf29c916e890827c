// Package pagination turns an ordered collection into bounded pages plus
// navigation metadata. It applies no sorting of its own; callers supply a
// pre-ordered source.
package pagination

// DefaultPageSize is used when the caller passes a non-positive page size.
const DefaultPageSize = 10

// Meta describes a page's position within the full collection.
type Meta struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalCount   int  `json:"total_count"`
	TotalPages   int  `json:"total_pages"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
}

// Page is one bounded slice of the collection together with its metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Meta
}

// Clamp normalizes paging inputs: pageNumber below 1 becomes 1, pageSize
// below 1 becomes DefaultPageSize. Out-of-range values are corrected
// silently rather than rejected.
func Clamp(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return pageNumber, pageSize
}

// Paginate slices the source into the requested page, preserving source
// order. A page number past the last page yields empty items with correct
// metadata; it is not an error.
func Paginate[T any](source []T, pageNumber, pageSize int) Page[T] {
	pageNumber, pageSize = Clamp(pageNumber, pageSize)

	items := []T{}
	offset := (pageNumber - 1) * pageSize
	if offset < len(source) {
		end := offset + pageSize
		if end > len(source) {
			end = len(source)
		}
		items = source[offset:end]
	}

	return NewPage(items, len(source), pageNumber, pageSize)
}

// NewPage derives page metadata for items that were already bounded by the
// data source (e.g. a LIMIT/OFFSET query). totalCount is the size of the
// full collection, not of items.
func NewPage[T any](items []T, totalCount, pageNumber, pageSize int) Page[T] {
	pageNumber, pageSize = Clamp(pageNumber, pageSize)

	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	page := Page[T]{
		Items: items,
		Meta: Meta{
			CurrentPage: pageNumber,
			PageSize:    pageSize,
			TotalCount:  totalCount,
			TotalPages:  totalPages,
		},
	}

	if pageNumber > 1 {
		prev := pageNumber - 1
		page.PreviousPage = &prev
	}
	if pageNumber < totalPages {
		next := pageNumber + 1
		page.NextPage = &next
	}

	return page
}
