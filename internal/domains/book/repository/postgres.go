package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/pkg/database"
	"bookmanager-backend/pkg/pagination"
)

const bookColumns = "id, title, description, author, cover_path, release_date, publish_date, update_date"

// uniqueViolation is the Postgres error code for a unique constraint.
// The title index is the authoritative guard against the check-then-act
// race between concurrent writers.
const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE id = $1", bookColumns)
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	// Exact case-sensitive match, same as the unique index.
	query := fmt.Sprintf("SELECT %s FROM books WHERE title = $1", bookColumns)
	return r.findOne(ctx, query, title)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Book, error) {
	var book model.Book
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&book.ID,
		&book.Title,
		&book.Description,
		&book.Author,
		&book.CoverPath,
		&book.ReleaseDate,
		&book.PublishDate,
		&book.UpdateDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query book: %w", err)
	}
	return &book, nil
}

func (r *postgresRepository) FindPage(ctx context.Context, pageNumber, pageSize int) (*pagination.Page[model.Book], error) {
	pageNumber, pageSize = pagination.Clamp(pageNumber, pageSize)

	var totalCount int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM books").Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM books ORDER BY id LIMIT $1 OFFSET $2", bookColumns)
	rows, err := r.pool.Query(ctx, query, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Description,
			&book.Author,
			&book.CoverPath,
			&book.ReleaseDate,
			&book.PublishDate,
			&book.UpdateDate,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	page := pagination.NewPage(books, totalCount, pageNumber, pageSize)
	return &page, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO books (title, description, author, cover_path, release_date, publish_date, update_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			book.Title,
			book.Description,
			book.Author,
			book.CoverPath,
			book.ReleaseDate,
			book.PublishDate,
			book.UpdateDate,
		).Scan(&book.ID)
	})
	if isUniqueViolation(err) {
		return model.ErrTitleAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE books
			 SET title = $1, description = $2, author = $3, cover_path = $4,
			     release_date = $5, publish_date = $6, update_date = $7
			 WHERE id = $8`,
			book.Title,
			book.Description,
			book.Author,
			book.CoverPath,
			book.ReleaseDate,
			book.PublishDate,
			book.UpdateDate,
			book.ID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return nil
	})
	if isUniqueViolation(err) {
		return model.ErrTitleAlreadyExists
	}
	if err != nil && !errors.Is(err, model.ErrBookNotFound) {
		return fmt.Errorf("update book: %w", err)
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, book *model.Book) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "DELETE FROM books WHERE id = $1", book.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
