// Package memory is a go-memdb backed implementation of repository.Store.
// It mirrors the postgres schema rules (unique email, books.seller_id
// foreign key without cascade) so usecases behave the same on both stores.
package memory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/hashicorp/go-memdb"
)

const (
	tableSellers = "sellers"
	tableBooks   = "books"
)

type Store struct {
	db  *memdb.MemDB
	seq *sequence
	txn *memdb.Txn // set only on transaction-bound stores
}

type sequence struct {
	sellers atomic.Int64
	books   atomic.Int64
}

func NewStore() (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableSellers: {
				Name: tableSellers,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"email": {
						Name:    "email",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "Email"},
					},
				},
			},
			tableBooks: {
				Name: tableBooks,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"seller_id": {
						Name:    "seller_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "SellerID"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &Store{db: db, seq: &sequence{}}, nil
}

func (s *Store) Sellers() repository.SellerRepository {
	return &SellerRepository{store: s}
}

func (s *Store) Books() repository.BookRepository {
	return &BookRepository{store: s}
}

func (s *Store) InTx(_ context.Context, fn func(tx repository.Store) error) error {
	if s.txn != nil {
		return fn(s)
	}

	txn := s.db.Txn(true)
	// Abort after Commit is a no-op; otherwise it discards every write made by fn.
	defer txn.Abort()

	if err := fn(&Store{db: s.db, seq: s.seq, txn: txn}); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) read(fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

// write runs fn in the store's transaction, or in a single-statement one
// when the store is not transaction-bound.
func (s *Store) write(fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func count(txn *memdb.Txn, table string) (int, error) {
	it, err := txn.Get(table, "id")
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", table, err)
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}
