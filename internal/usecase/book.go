package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
)

type BookUsecase struct {
	store repository.Store
}

func NewBookUsecase(store repository.Store) *BookUsecase {
	return &BookUsecase{store: store}
}

type BookInput struct {
	Title      string
	Author     string
	Year       int
	CountPages int
	SellerID   int64
}

func (u *BookUsecase) CreateBook(ctx context.Context, caller *domain.Seller, input BookInput) (*domain.Book, error) {
	if err := AuthorizeOwnerWrite(caller, input.SellerID); err != nil {
		return nil, err
	}

	created, err := u.store.Books().Create(ctx, &domain.Book{
		Title:      input.Title,
		Author:     input.Author,
		Year:       input.Year,
		CountPages: input.CountPages,
		SellerID:   input.SellerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

func (u *BookUsecase) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := u.store.Books().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (u *BookUsecase) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := u.store.Books().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// UpdateBook replaces every field of the book. Existence is checked before
// ownership, and both before anything is written. The new SellerID may name
// another existing seller.
func (u *BookUsecase) UpdateBook(ctx context.Context, caller *domain.Seller, id int64, input BookInput) (*domain.Book, error) {
	var updated *domain.Book
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Books().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := AuthorizeOwnerWrite(caller, existing.SellerID); err != nil {
			return err
		}

		updated, err = tx.Books().Update(ctx, &domain.Book{
			ID:         id,
			Title:      input.Title,
			Author:     input.Author,
			Year:       input.Year,
			CountPages: input.CountPages,
			SellerID:   input.SellerID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return updated, nil
}

// DeleteBook is idempotent: a missing book is not an error.
func (u *BookUsecase) DeleteBook(ctx context.Context, id int64) error {
	if err := u.store.Books().Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrBookNotFound) {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
