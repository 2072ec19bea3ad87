package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/bookstore-catalog/internal/credential"
	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/email"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
)

type SellerUsecase struct {
	store  repository.Store
	hasher *credential.Hasher
	mailer email.Sender
	logger *slog.Logger
}

func NewSellerUsecase(store repository.Store, hasher *credential.Hasher, mailer email.Sender, logger *slog.Logger) *SellerUsecase {
	return &SellerUsecase{
		store:  store,
		hasher: hasher,
		mailer: mailer,
		logger: logger.With("component", "seller_usecase"),
	}
}

type RegisterSellerInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RegisterSeller stores a new seller with a hashed credential and sends a
// welcome email. A failed email is logged and does not fail registration.
func (u *SellerUsecase) RegisterSeller(ctx context.Context, input RegisterSellerInput) (*domain.Seller, error) {
	if len(input.Password) > credential.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := u.store.Sellers().Create(ctx, &domain.Seller{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("register seller: %w", err)
	}

	if err := u.mailer.Send(ctx, email.Welcome(created.FirstName, created.LastName, created.Email)); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "seller_id", created.ID, "error", err)
	}

	return created, nil
}

// ListSellers returns every seller with the books it owns.
func (u *SellerUsecase) ListSellers(ctx context.Context) ([]*domain.SellerWithBooks, error) {
	sellers, err := u.store.Sellers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	books, err := u.store.Books().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}

	owned := make(map[int64][]*domain.Book, len(sellers))
	for _, b := range books {
		owned[b.SellerID] = append(owned[b.SellerID], b)
	}

	result := make([]*domain.SellerWithBooks, 0, len(sellers))
	for _, s := range sellers {
		result = append(result, &domain.SellerWithBooks{Seller: s, Books: owned[s.ID]})
	}
	return result, nil
}

func (u *SellerUsecase) GetSeller(ctx context.Context, id int64) (*domain.SellerWithBooks, error) {
	s, err := u.store.Sellers().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	books, err := u.store.Books().ListBySeller(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seller books: %w", err)
	}
	return &domain.SellerWithBooks{Seller: s, Books: books}, nil
}

// UpdateSellerProfile changes names and email only. Any caller may update any
// seller, matching the published API.
func (u *SellerUsecase) UpdateSellerProfile(ctx context.Context, id int64, p domain.SellerProfile) (*domain.Seller, error) {
	updated, err := u.store.Sellers().UpdateProfile(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("update seller: %w", err)
	}
	return updated, nil
}

// DeleteSeller removes the seller and every book it owns in one transaction.
// The seller row is locked before its books are removed, so a concurrent
// book insert waits and then fails instead of breaking the delete. Deleting a
// missing seller succeeds.
func (u *SellerUsecase) DeleteSeller(ctx context.Context, id int64) error {
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Sellers().GetForUpdate(ctx, id); err != nil {
			if errors.Is(err, domain.ErrSellerNotFound) {
				return nil
			}
			return err
		}

		removed, err := tx.Books().DeleteBySeller(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Sellers().Delete(ctx, id); err != nil {
			return err
		}

		u.logger.InfoContext(ctx, "seller deleted", "seller_id", id, "books_removed", removed)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	return nil
}
