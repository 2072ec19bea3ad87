package repository

import (
	"context"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
)

//go:generate mockgen -source=seller.go -destination=mocks/seller_mock.go -package=mocks

type SellerRepository interface {
	Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error)
	GetByID(ctx context.Context, id int64) (*domain.Seller, error)
	// GetForUpdate reads the seller and holds a row lock until the surrounding
	// transaction ends, so no book can be attached to it meanwhile.
	GetForUpdate(ctx context.Context, id int64) (*domain.Seller, error)
	// FindByEmail is an exact match on the login identifier.
	FindByEmail(ctx context.Context, email string) (*domain.Seller, error)
	List(ctx context.Context) ([]*domain.Seller, error)
	UpdateProfile(ctx context.Context, id int64, p domain.SellerProfile) (*domain.Seller, error)
	// Delete fails with ErrSellerHasBooks while any book still references the seller.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
