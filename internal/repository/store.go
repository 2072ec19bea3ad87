package repository

import "context"

// Store is one unit of work over the catalog tables.
// Usecases depend on this interface, so postgres and the in-memory store are interchangeable.
type Store interface {
	Sellers() SellerRepository
	Books() BookRepository

	// InTx runs fn against a transaction-bound Store. The transaction commits
	// when fn returns nil and rolls back otherwise, including on panic.
	// Calling InTx on a transaction-bound Store joins the outer transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
}
