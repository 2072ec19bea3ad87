package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const sellerColumns = `id, first_name, last_name, email, password_hash`

type SellerRepository struct {
	db DBTX
}

func NewSellerRepository(db DBTX) *SellerRepository {
	return &SellerRepository{db: db}
}

func (r *SellerRepository) Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	query := `
		INSERT INTO sellers (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + sellerColumns

	row := r.db.QueryRow(ctx, query, s.FirstName, s.LastName, s.Email, s.PasswordHash)
	created, err := scanSeller(row)
	if err != nil {
		if isPgCode(err, uniqueViolation) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *SellerRepository) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1`, id)
	return scanSeller(row)
}

// GetForUpdate takes a FOR UPDATE lock, which conflicts with the KEY SHARE
// lock a concurrent books insert needs for its foreign key check. Only
// meaningful inside Store.InTx.
func (r *SellerRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Seller, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1 FOR UPDATE`, id)
	return scanSeller(row)
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE email = $1`, email)
	return scanSeller(row)
}

func (r *SellerRepository) List(ctx context.Context) ([]*domain.Seller, error) {
	rows, err := r.db.Query(ctx, `SELECT `+sellerColumns+` FROM sellers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var sellers []*domain.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellers: %w", err)
	}
	return sellers, nil
}

func (r *SellerRepository) UpdateProfile(ctx context.Context, id int64, p domain.SellerProfile) (*domain.Seller, error) {
	query := `
		UPDATE sellers
		SET    first_name = $2, last_name = $3, email = $4
		WHERE  id = $1
		RETURNING ` + sellerColumns

	row := r.db.QueryRow(ctx, query, id, p.FirstName, p.LastName, p.Email)
	updated, err := scanSeller(row)
	if err != nil {
		if isPgCode(err, uniqueViolation) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *SellerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		if isPgCode(err, foreignKeyViolation) {
			return domain.ErrSellerHasBooks
		}
		return fmt.Errorf("delete seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}

func (r *SellerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sellers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sellers: %w", err)
	}
	return n, nil
}

func scanSeller(row rowScanner) (*domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, fmt.Errorf("scan seller: %w", err)
	}
	return &s, nil
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
