package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

const bookColumns = `id, title, author, year, count_pages, seller_id`

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	query := `
		INSERT INTO books (title, author, year, count_pages, seller_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + bookColumns

	row := r.db.QueryRow(ctx, query, b.Title, b.Author, b.Year, b.CountPages, b.SellerID)
	created, err := scanBook(row)
	if err != nil {
		if isPgCode(err, foreignKeyViolation) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	return scanBook(row)
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
}

func (r *BookRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books WHERE seller_id = $1 ORDER BY id`, sellerID)
}

func (r *BookRepository) Update(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	query := `
		UPDATE books
		SET    title = $2, author = $3, year = $4, count_pages = $5, seller_id = $6
		WHERE  id = $1
		RETURNING ` + bookColumns

	row := r.db.QueryRow(ctx, query, b.ID, b.Title, b.Author, b.Year, b.CountPages, b.SellerID)
	updated, err := scanBook(row)
	if err != nil {
		if isPgCode(err, foreignKeyViolation) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) DeleteBySeller(ctx context.Context, sellerID int64) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE seller_id = $1`, sellerID)
	if err != nil {
		return 0, fmt.Errorf("delete books by seller: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *BookRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func (r *BookRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}
