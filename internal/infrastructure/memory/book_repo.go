package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/hashicorp/go-memdb"
)

type BookRepository struct {
	store *Store
}

func (r *BookRepository) Create(_ context.Context, b *domain.Book) (*domain.Book, error) {
	var created *domain.Book
	err := r.store.write(func(txn *memdb.Txn) error {
		if _, err := sellerByID(txn, b.SellerID); err != nil {
			return err
		}

		rec := *b
		rec.ID = r.store.seq.books.Add(1)
		if err := txn.Insert(tableBooks, &rec); err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		created = cloneBook(&rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BookRepository) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	var found *domain.Book
	err := r.store.read(func(txn *memdb.Txn) error {
		b, err := bookByID(txn, id)
		if err != nil {
			return err
		}
		found = cloneBook(b)
		return nil
	})
	return found, err
}

func (r *BookRepository) List(_ context.Context) ([]*domain.Book, error) {
	return r.list("id")
}

func (r *BookRepository) ListBySeller(_ context.Context, sellerID int64) ([]*domain.Book, error) {
	return r.list("seller_id", sellerID)
}

func (r *BookRepository) Update(_ context.Context, b *domain.Book) (*domain.Book, error) {
	var updated *domain.Book
	err := r.store.write(func(txn *memdb.Txn) error {
		if _, err := bookByID(txn, b.ID); err != nil {
			return err
		}
		if _, err := sellerByID(txn, b.SellerID); err != nil {
			return err
		}

		rec := *b
		if err := txn.Insert(tableBooks, &rec); err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		updated = cloneBook(&rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BookRepository) Delete(_ context.Context, id int64) error {
	return r.store.write(func(txn *memdb.Txn) error {
		existing, err := bookByID(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(tableBooks, existing); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}

func (r *BookRepository) DeleteBySeller(_ context.Context, sellerID int64) (int, error) {
	var n int
	err := r.store.write(func(txn *memdb.Txn) error {
		var err error
		n, err = txn.DeleteAll(tableBooks, "seller_id", sellerID)
		if err != nil {
			return fmt.Errorf("delete books by seller: %w", err)
		}
		return nil
	})
	return n, err
}

func (r *BookRepository) Count(_ context.Context) (int, error) {
	var n int
	err := r.store.read(func(txn *memdb.Txn) error {
		var err error
		n, err = count(txn, tableBooks)
		return err
	})
	return n, err
}

func (r *BookRepository) list(index string, args ...any) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.store.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(tableBooks, index, args...)
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			books = append(books, cloneBook(obj.(*domain.Book)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func bookByID(txn *memdb.Txn, id int64) (*domain.Book, error) {
	obj, err := txn.First(tableBooks, "id", id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if obj == nil {
		return nil, domain.ErrBookNotFound
	}
	return obj.(*domain.Book), nil
}

func cloneBook(b *domain.Book) *domain.Book {
	c := *b
	return &c
}
