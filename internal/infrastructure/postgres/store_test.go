package postgres_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStore connects to TEST_DATABASE_URL, migrates it and empties both
// tables. Tests are skipped when the variable is unset.
func newStore(t *testing.T) *postgres.Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, postgres.MigrateUp(url))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE books, sellers RESTART IDENTITY`)
	require.NoError(t, err)

	return postgres.NewStore(pool)
}

func seedSeller(t *testing.T, s repository.Store, email string) *domain.Seller {
	t.Helper()
	created, err := s.Sellers().Create(context.Background(), &domain.Seller{
		FirstName: "Ivan", LastName: "Popov", Email: email, PasswordHash: "hash",
	})
	require.NoError(t, err)
	return created
}

func TestSellers_UniqueEmail(t *testing.T) {
	s := newStore(t)
	seedSeller(t, s, "popov@yandex.ru")

	_, err := s.Sellers().Create(context.Background(), &domain.Seller{Email: "popov@yandex.ru", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSellers_GetMissing(t *testing.T) {
	s := newStore(t)

	_, err := s.Sellers().GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}

func TestBooks_ForeignKeyGuards(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seller := seedSeller(t, s, "popov@yandex.ru")

	_, err := s.Books().Create(ctx, &domain.Book{Title: "Orphan", Author: "Nobody", SellerID: seller.ID + 100})
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)

	_, err = s.Books().Create(ctx, &domain.Book{Title: "Eugeny Onegin", Author: "Pushkin", Year: 2001, CountPages: 104, SellerID: seller.ID})
	require.NoError(t, err)

	err = s.Sellers().Delete(ctx, seller.ID)
	assert.ErrorIs(t, err, domain.ErrSellerHasBooks)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seller := seedSeller(t, s, "popov@yandex.ru")
	_, err := s.Books().Create(ctx, &domain.Book{Title: "Eugeny Onegin", Author: "Pushkin", SellerID: seller.ID})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.InTx(ctx, func(tx repository.Store) error {
		n, err := tx.Books().DeleteBySeller(ctx, seller.ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return boom
	})
	require.ErrorIs(t, err, boom)

	books, err := s.Books().ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestInTx_CommitsCascade(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seller := seedSeller(t, s, "popov@yandex.ru")
	_, err := s.Books().Create(ctx, &domain.Book{Title: "Eugeny Onegin", Author: "Pushkin", SellerID: seller.ID})
	require.NoError(t, err)

	err = s.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Books().DeleteBySeller(ctx, seller.ID); err != nil {
			return err
		}
		return tx.Sellers().Delete(ctx, seller.ID)
	})
	require.NoError(t, err)

	n, err := s.Books().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = s.Sellers().GetByID(ctx, seller.ID)
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}

func TestGetForUpdate_BlocksConcurrentBookInsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seller := seedSeller(t, s, "popov@yandex.ru")

	err := s.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Sellers().GetForUpdate(ctx, seller.ID); err != nil {
			return err
		}

		// The FK check of an insert outside the tx has to wait for the lock.
		insertCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
		_, err := s.Books().Create(insertCtx, &domain.Book{Title: "Late", Author: "Pushkin", SellerID: seller.ID})
		assert.Error(t, err)
		assert.ErrorIs(t, insertCtx.Err(), context.DeadlineExceeded)

		if _, err := tx.Books().DeleteBySeller(ctx, seller.ID); err != nil {
			return err
		}
		return tx.Sellers().Delete(ctx, seller.ID)
	})
	require.NoError(t, err)

	n, err := s.Books().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBooks_AcceptsRequestLimits(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seller := seedSeller(t, s, "popov@yandex.ru")

	created, err := s.Books().Create(ctx, &domain.Book{
		Title:      strings.Repeat("ё", 200),
		Author:     strings.Repeat("ш", 100),
		Year:       9999,
		CountPages: 2147483647,
		SellerID:   seller.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, created.CountPages)
}
