package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bookmanager-backend/internal/domains/book/model"
)

const exportPageSize = 100

// Export builds an xlsx workbook of the whole catalog, walking it page by
// page in insertion order.
func (s *BookService) Export(ctx context.Context) (*excelize.File, error) {
	var books []model.Book

	for pageNumber := 1; ; pageNumber++ {
		page, err := s.repo.FindPage(ctx, pageNumber, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("export books: %w", err)
		}
		books = append(books, page.Items...)
		if page.NextPage == nil {
			break
		}
	}

	return buildBooksWorkbook(books)
}

func buildBooksWorkbook(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheetName = "Books"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Title", "Author", "Description", "Publish Date", "Release Date", "Update Date", "Cover"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "H1", style)
	}

	const dateLayout = "2006-01-02 15:04:05"
	for i, b := range books {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}

		_ = f.SetCellValue(sheetName, cell(1), b.ID)
		_ = f.SetCellValue(sheetName, cell(2), b.Title)
		_ = f.SetCellValue(sheetName, cell(3), b.Author)
		_ = f.SetCellValue(sheetName, cell(4), b.Description)
		_ = f.SetCellValue(sheetName, cell(5), b.PublishDate.Format(dateLayout))
		if b.ReleaseDate != nil {
			_ = f.SetCellValue(sheetName, cell(6), b.ReleaseDate.Format(dateLayout))
		}
		if b.UpdateDate != nil {
			_ = f.SetCellValue(sheetName, cell(7), b.UpdateDate.Format(dateLayout))
		}
		_ = f.SetCellValue(sheetName, cell(8), b.CoverPath)
	}

	_ = f.SetColWidth(sheetName, "A", "H", 24)

	return f, nil
}
