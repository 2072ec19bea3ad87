package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/infrastructure/memory"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/matryer/is"
)

var ctx = context.Background()

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.NewStore()
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func seedSeller(t *testing.T, store *memory.Store, email string) *domain.Seller {
	t.Helper()
	s, err := store.Sellers().Create(ctx, &domain.Seller{
		FirstName:    "Ivan",
		LastName:     "Popov",
		Email:        email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return s
}

func TestSellers(t *testing.T) {
	t.Run("creates sellers with increasing ids", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)

		first := seedSeller(t, store, "popov@yandex.ru")
		second := seedSeller(t, store, "ivanova@mail.ru")

		is.True(first.ID > 0)
		is.True(second.ID > first.ID)

		all, err := store.Sellers().List(ctx)
		is.NoErr(err)
		is.Equal(len(all), 2)
		is.Equal(all[0].ID, first.ID)
		is.Equal(all[1].ID, second.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		seedSeller(t, store, "popov@yandex.ru")

		_, err := store.Sellers().Create(ctx, &domain.Seller{Email: "popov@yandex.ru"})
		is.True(errors.Is(err, domain.ErrEmailTaken))
	})

	t.Run("find by email is an exact match", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")

		found, err := store.Sellers().FindByEmail(ctx, "popov@yandex.ru")
		is.NoErr(err)
		is.Equal(found.ID, s.ID)

		_, err = store.Sellers().FindByEmail(ctx, "POPOV@yandex.ru")
		is.True(errors.Is(err, domain.ErrSellerNotFound))
	})

	t.Run("update profile keeps the password hash", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")

		updated, err := store.Sellers().UpdateProfile(ctx, s.ID, domain.SellerProfile{
			FirstName: "Updated",
			LastName:  "Seller",
			Email:     "updated@yandex.ru",
		})
		is.NoErr(err)
		is.Equal(updated.FirstName, "Updated")
		is.Equal(updated.Email, "updated@yandex.ru")
		is.Equal(updated.PasswordHash, "hash")

		_, err = store.Sellers().FindByEmail(ctx, "popov@yandex.ru")
		is.True(errors.Is(err, domain.ErrSellerNotFound))
	})

	t.Run("update profile of a missing seller returns not found", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)

		_, err := store.Sellers().UpdateProfile(ctx, 42, domain.SellerProfile{Email: "x@y.z"})
		is.True(errors.Is(err, domain.ErrSellerNotFound))
	})

	t.Run("returned sellers are copies", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")

		s.FirstName = "Mutated"
		fetched, err := store.Sellers().GetByID(ctx, s.ID)
		is.NoErr(err)
		is.Equal(fetched.FirstName, "Ivan")
	})
}

func TestBooks(t *testing.T) {
	t.Run("book requires an existing seller", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)

		_, err := store.Books().Create(ctx, &domain.Book{Title: "Orphan", SellerID: 99})
		is.True(errors.Is(err, domain.ErrSellerNotFound))
	})

	t.Run("list by seller returns only that seller's books", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		a := seedSeller(t, store, "a@example.com")
		b := seedSeller(t, store, "b@example.com")

		_, err := store.Books().Create(ctx, &domain.Book{Title: "A1", SellerID: a.ID})
		is.NoErr(err)
		_, err = store.Books().Create(ctx, &domain.Book{Title: "B1", SellerID: b.ID})
		is.NoErr(err)
		_, err = store.Books().Create(ctx, &domain.Book{Title: "A2", SellerID: a.ID})
		is.NoErr(err)

		owned, err := store.Books().ListBySeller(ctx, a.ID)
		is.NoErr(err)
		is.Equal(len(owned), 2)
		is.Equal(owned[0].Title, "A1")
		is.Equal(owned[1].Title, "A2")

		all, err := store.Books().List(ctx)
		is.NoErr(err)
		is.Equal(len(all), 3)
	})

	t.Run("seller with books cannot be deleted directly", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")
		_, err := store.Books().Create(ctx, &domain.Book{Title: "Eugeny Onegin", SellerID: s.ID})
		is.NoErr(err)

		err = store.Sellers().Delete(ctx, s.ID)
		is.True(errors.Is(err, domain.ErrSellerHasBooks))

		n, err := store.Books().DeleteBySeller(ctx, s.ID)
		is.NoErr(err)
		is.Equal(n, 1)
		is.NoErr(store.Sellers().Delete(ctx, s.ID))
	})

	t.Run("deleting a missing book returns not found", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)

		err := store.Books().Delete(ctx, 7)
		is.True(errors.Is(err, domain.ErrBookNotFound))
	})
}

func TestInTx(t *testing.T) {
	t.Run("commits every write when fn succeeds", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")

		err := store.InTx(ctx, func(tx repository.Store) error {
			if _, err := tx.Books().Create(ctx, &domain.Book{Title: "One", SellerID: s.ID}); err != nil {
				return err
			}
			_, err := tx.Books().Create(ctx, &domain.Book{Title: "Two", SellerID: s.ID})
			return err
		})
		is.NoErr(err)

		n, err := store.Books().Count(ctx)
		is.NoErr(err)
		is.Equal(n, 2)
	})

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")
		_, err := store.Books().Create(ctx, &domain.Book{Title: "Kept", SellerID: s.ID})
		is.NoErr(err)

		boom := errors.New("boom")
		err = store.InTx(ctx, func(tx repository.Store) error {
			if _, err := tx.Books().DeleteBySeller(ctx, s.ID); err != nil {
				return err
			}
			return boom
		})
		is.True(errors.Is(err, boom))

		books, err := store.Books().ListBySeller(ctx, s.ID)
		is.NoErr(err)
		is.Equal(len(books), 1)
	})

	t.Run("nested InTx joins the outer transaction", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)
		s := seedSeller(t, store, "popov@yandex.ru")

		boom := errors.New("boom")
		err := store.InTx(ctx, func(tx repository.Store) error {
			if err := tx.InTx(ctx, func(inner repository.Store) error {
				_, err := inner.Books().Create(ctx, &domain.Book{Title: "Inner", SellerID: s.ID})
				return err
			}); err != nil {
				return err
			}
			return boom
		})
		is.True(errors.Is(err, boom))

		n, err := store.Books().Count(ctx)
		is.NoErr(err)
		is.Equal(n, 0)
	})

	t.Run("reads inside the transaction see its own writes", func(t *testing.T) {
		is := is.New(t)
		store := newStore(t)

		err := store.InTx(ctx, func(tx repository.Store) error {
			created, err := tx.Sellers().Create(ctx, &domain.Seller{Email: "tx@example.com"})
			if err != nil {
				return err
			}
			found, err := tx.Sellers().GetByID(ctx, created.ID)
			if err != nil {
				return err
			}
			is.Equal(found.Email, "tx@example.com")
			return nil
		})
		is.NoErr(err)
	})
}

func TestGetForUpdate_BlocksBookInsertUntilCommit(t *testing.T) {
	is := is.New(t)
	store := newStore(t)
	s := seedSeller(t, store, "popov@yandex.ru")

	locked := make(chan struct{})
	inserted := make(chan error, 1)

	go func() {
		<-locked
		_, err := store.Books().Create(ctx, &domain.Book{Title: "Late", Author: "Pushkin", SellerID: s.ID})
		inserted <- err
	}()

	err := store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Sellers().GetForUpdate(ctx, s.ID); err != nil {
			return err
		}
		close(locked)
		select {
		case err := <-inserted:
			t.Errorf("insert finished while seller was locked: %v", err)
		case <-time.After(50 * time.Millisecond):
		}
		if _, err := tx.Books().DeleteBySeller(ctx, s.ID); err != nil {
			return err
		}
		return tx.Sellers().Delete(ctx, s.ID)
	})
	is.NoErr(err)

	is.True(errors.Is(<-inserted, domain.ErrSellerNotFound)) // insert runs after the delete commits
	n, err := store.Books().Count(ctx)
	is.NoErr(err)
	is.Equal(n, 0)
}

func TestGetForUpdate_Missing(t *testing.T) {
	is := is.New(t)
	store := newStore(t)

	_, err := store.Sellers().GetForUpdate(ctx, 99)
	is.True(errors.Is(err, domain.ErrSellerNotFound))
}
